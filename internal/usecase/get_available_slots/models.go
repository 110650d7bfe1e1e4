package get_available_slots

import (
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID       int64     // ID пользователя (для логирования, не влияет на результат)
	Date         time.Time // Дата для получения слотов (без времени)
	ServiceIDs   []int64   // Выбранные услуги
	VehicleCount int       // Количество автомобилей (>= 1)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time           // Дата, на которую запрашивались слоты
	DurationMinutes int                 // Эффективная длительность с учетом количества автомобилей
	Slots           []domain.TimeSlot   // Слоты с остаточной вместимостью > 0
	Summary         domain.SlotsSummary // Классификация всех прошедших фильтры слотов
	Message         *string             // Пояснение для нерабочего дня (не ошибка)
}
