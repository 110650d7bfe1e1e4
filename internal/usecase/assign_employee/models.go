package assign_employee

import (
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

// Request модель запроса на поиск свободного техника
type Request struct {
	Date       time.Time // Дата записи (без времени)
	TimeWindow string    // Текстовое окно вида "10:00 AM - 11:00 AM"
}

// Response результат подбора техника.
// Employee == nil - валидный бизнес-результат: свободных техников нет,
// запись остается неназначенной (pending).
type Response struct {
	Employee *domain.Employee
}
