package update_appointment_status

import (
	"context"

	updateStatus "github.com/m04kA/ATL-AppointmentService/internal/usecase/update_appointment_status"
)

type UpdateAppointmentStatusUseCase interface {
	Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
