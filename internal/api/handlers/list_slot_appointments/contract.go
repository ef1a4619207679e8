package list_slot_appointments

import (
	"context"

	"github.com/m04kA/ATL-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListBySlot(ctx context.Context, slotID int64, caller models.Caller) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
