package get_available_slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	getAvailableSlots "github.com/Serryudy/EAD-sub000/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Summary         SlotsSummary    `json:"summary"`
	Message         *string         `json:"message,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DisplayStart      string `json:"displayStart"` // "9:00 AM"
	DisplayEnd        string `json:"displayEnd"`
	CapacityUsed      int    `json:"capacityUsed"`
	CapacityRemaining int    `json:"capacityRemaining"`
	CapacityTotal     int    `json:"capacityTotal"`
}

// SlotsSummary классификация слотов дня
type SlotsSummary struct {
	FullyAvailable      int `json:"fullyAvailable"`
	LimitedAvailability int `json:"limitedAvailability"`
	FullyBooked         int `json:"fullyBooked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:         slot.StartTime.String(),
			EndTime:           slot.EndTime.String(),
			DisplayStart:      slot.DisplayStart,
			DisplayEnd:        slot.DisplayEnd,
			CapacityUsed:      slot.CapacityUsed,
			CapacityRemaining: slot.CapacityRemaining,
			CapacityTotal:     slot.CapacityTotal,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Summary: SlotsSummary{
			FullyAvailable:      resp.Summary.FullyAvailable,
			LimitedAvailability: resp.Summary.LimitedAvailability,
			FullyBooked:         resp.Summary.FullyBooked,
		},
		Message: resp.Message,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID int64, dateStr, serviceIDsStr, vehicleCountStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	// Парсим список услуг: "1,2,3"
	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		return nil, err
	}

	// Количество автомобилей по умолчанию 1
	vehicleCount := 1
	if vehicleCountStr != "" {
		vehicleCount, err = strconv.Atoi(vehicleCountStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		UserID:       userID,
		Date:         date,
		ServiceIDs:   serviceIDs,
		VehicleCount: vehicleCount,
	}, nil
}

func parseServiceIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	serviceIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid service id %q: %w", part, err)
		}
		serviceIDs = append(serviceIDs, id)
	}
	return serviceIDs, nil
}
