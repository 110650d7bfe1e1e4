package check_slot_capacity

import (
	"context"

	checkSlotCapacity "github.com/Serryudy/EAD-sub000/internal/usecase/check_slot_capacity"
)

type CheckSlotCapacityUseCase interface {
	Execute(ctx context.Context, req *checkSlotCapacity.Request) (*checkSlotCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
