package create_appointment

import (
	"time"

	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID       int64            // ID пользователя
	VehicleID    int64            // ID автомобиля
	ServiceIDs   []int64          // Выбранные услуги
	VehicleCount int              // Количество автомобилей (>= 1)
	Date         time.Time        // Дата записи (без времени)
	StartTime    types.TimeString // Время начала ("10:00")
	Notes        *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	UserID          int64            // ID пользователя
	VehicleID       int64            // ID автомобиля
	ServiceIDs      []int64          // Услуги
	VehicleCount    int              // Количество автомобилей
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Эффективная длительность
	Status          string           // Статус (confirmed при назначенном технике, иначе pending)

	// Автоназначение: nil = свободного техника не нашлось, запись ждет назначения
	AssignedEmployeeID *int64

	// Денормализованные данные
	ServiceNames string  // Названия услуг через запятую
	TotalPrice   float64 // Суммарная цена
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
