package catalogservice

// Service модель услуги из каталога
type Service struct {
	ID                       int64    `json:"id"`
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	Price                    *float64 `json:"price"`
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`
	IsActive                 bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога услуг
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
