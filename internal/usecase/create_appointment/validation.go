package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if !domain.ValidateTypes(req.PrimaryType, req.SecondaryTypes) {
		return fmt.Errorf("%w: invalid primary/secondary type combination", ErrInvalidInput)
	}

	if req.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduledTime is required", ErrInvalidInput)
	}
	if err := req.ScheduledTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid scheduledTime format: %v", ErrInvalidInput, err)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.OrderID != nil && *req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotDate проверяет, что дата слота не в прошлом и не дальше
// горизонта бронирования (0..horizonDays дней от сегодня включительно)
// Персонал горизонтом не ограничен
func validateSlotDate(slotDate time.Time, now time.Time, horizonDays int, staffInitiated bool) error {
	dateOnly := time.Date(slotDate.Year(), slotDate.Month(), slotDate.Day(), 0, 0, 0, 0, slotDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}

	if staffInitiated {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, horizonDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, horizonDays)
	}

	return nil
}

// validateScheduledTime проверяет, что время лежит на сетке слота и запись
// целиком помещается в его границы. Обе проверки используют ту же функцию
// domain.TimeGrid, что и выдача доступных слотов
func validateScheduledTime(slot *domain.WorkingSlot, req *Request, gridInterval int, duration int) error {
	if !domain.IsGridPoint(slot, req.ScheduledTime, gridInterval) {
		return fmt.Errorf("%w: %s is not a grid point of slot %d",
			ErrInvalidTime, req.ScheduledTime, slot.ID)
	}

	if !slot.Contains(req.ScheduledTime, duration) {
		return fmt.Errorf("%w: %s + %d minutes does not fit into slot %d (%s-%s)",
			ErrInvalidTime, req.ScheduledTime, duration, slot.ID, slot.StartTime, slot.EndTime)
	}

	return nil
}
