package check_slot_capacity

import (
	"time"

	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// Request модель запроса проверки занятости слота
type Request struct {
	Date            time.Time        // Дата (без времени)
	StartTime       types.TimeString // Время начала слота ("10:00")
	DurationMinutes int              // Длительность окна в минутах
}

// Response результат проверки занятости.
// Значения консультативные: резервирование выполняет только create_appointment
// внутри сериализуемой транзакции.
type Response struct {
	IsAvailable       bool
	CapacityUsed      int
	CapacityRemaining int
	CapacityTotal     int
}
