package update_appointment_status

import (
	"fmt"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if !req.TargetStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}

	if req.Reason != nil {
		if req.TargetStatus != domain.StatusCancelled {
			return fmt.Errorf("%w: reason is only allowed when cancelling", ErrInvalidInput)
		}
		if len(*req.Reason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	if req.Caller.UserID <= 0 {
		return fmt.Errorf("%w: caller userID must be positive", ErrInvalidInput)
	}

	return nil
}

// checkAccess проверяет права вызывающего на переход
// Персоналу доступны все переходы. Клиент может только отменять
// собственные записи; walk-in записи (без customerID) управляет персонал
func checkAccess(a *domain.Appointment, req *Request) error {
	if req.Caller.IsStaff {
		return nil
	}

	if req.TargetStatus != domain.StatusCancelled {
		return fmt.Errorf("%w: customers may only cancel appointments", ErrAccessDenied)
	}

	if a.CustomerID == nil || *a.CustomerID != req.Caller.UserID {
		return fmt.Errorf("%w: appointment belongs to another customer", ErrAccessDenied)
	}

	return nil
}
