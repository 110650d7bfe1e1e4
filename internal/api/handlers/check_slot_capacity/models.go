package check_slot_capacity

import (
	"strconv"
	"time"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	checkSlotCapacity "github.com/Serryudy/EAD-sub000/internal/usecase/check_slot_capacity"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// SlotCapacityResponse HTTP response model
type SlotCapacityResponse struct {
	IsAvailable       bool `json:"isAvailable"`
	CapacityUsed      int  `json:"capacityUsed"`
	CapacityRemaining int  `json:"capacityRemaining"`
	CapacityTotal     int  `json:"capacityTotal"`
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Пустая длительность означает legacy-режим: usecase подставит значение
// по умолчанию.
func ToUseCaseRequest(dateStr, timeStr, durationStr string) (*checkSlotCapacity.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
	}

	return &checkSlotCapacity.Request{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlotCapacity.Response) *SlotCapacityResponse {
	return &SlotCapacityResponse{
		IsAvailable:       resp.IsAvailable,
		CapacityUsed:      resp.CapacityUsed,
		CapacityRemaining: resp.CapacityRemaining,
		CapacityTotal:     resp.CapacityTotal,
	}
}
