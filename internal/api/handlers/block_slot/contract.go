package block_slot

import (
	"context"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

type SlotService interface {
	Block(ctx context.Context, slotID int64) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
