package domain

import "github.com/Serryudy/EAD-sub000/pkg/types"

// TimeSlot represents a bookable time window with its capacity state.
// Slots are computed fresh on every request and never persisted.
type TimeSlot struct {
	StartTime         types.TimeString
	EndTime           types.TimeString
	DisplayStart      string // 12-часовой формат для UI ("9:00 AM")
	DisplayEnd        string
	CapacityUsed      int
	CapacityTotal     int
	CapacityRemaining int
	IsAvailable       bool
}

// IsFull returns true if the slot has no remaining capacity
func (s *TimeSlot) IsFull() bool {
	return s.CapacityRemaining <= 0
}

// IsLimited returns true if exactly one spot remains
func (s *TimeSlot) IsLimited() bool {
	return s.CapacityRemaining == 1
}

// IsFullyAvailable returns true if more than one spot remains
func (s *TimeSlot) IsFullyAvailable() bool {
	return s.CapacityRemaining > 1
}

// SlotsSummary classifies the slots of a day for the booking UI
type SlotsSummary struct {
	FullyAvailable      int // CapacityRemaining > 1
	LimitedAvailability int // CapacityRemaining == 1
	FullyBooked         int // CapacityRemaining == 0 (не попадают в список)
}
