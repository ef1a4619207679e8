package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/pkg/metrics"
)

// UseCase use case смены статуса записи
// Переходы: pending → confirmed → done, любой нетерминальный → cancelled.
// Повторный перевод в текущий статус - идемпотентный no-op.
// Отмена освобождает место в слоте, done место не возвращает
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	orderSync       OrderSyncService
	txManager       TransactionManager
	cache           SlotCache
	metrics         *metrics.Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	orderSync OrderSyncService,
	txManager TransactionManager,
	cache SlotCache,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		orderSync:       orderSync,
		txManager:       txManager,
		cache:           cache,
		metrics:         m,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: id=%d, target=%s, userID=%d, staff=%v",
		req.AppointmentID, req.TargetStatus, req.Caller.UserID, req.Caller.IsStaff)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	var (
		result  *domain.Appointment
		changed bool
	)

	// 2. Чтение, проверка перехода и запись - в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем запись с блокировкой строки (FOR UPDATE)
		a, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Проверка доступа: клиент может только отменять свои записи
		if err := checkAccess(a, req); err != nil {
			uc.logger.Warn("UpdateAppointmentStatus: access denied for userID=%d on appointment id=%d",
				req.Caller.UserID, a.ID)
			return err
		}

		// 2.3. Повтор текущего статуса - успех без побочных эффектов
		if a.Status == req.TargetStatus {
			uc.logger.Info("UpdateAppointmentStatus: appointment id=%d already %s, no-op", a.ID, a.Status)
			result = a
			return nil
		}

		// 2.4. Проверяем допустимость перехода
		if !a.Status.CanTransitionTo(req.TargetStatus) {
			uc.logger.Warn("UpdateAppointmentStatus: transition %s → %s is not allowed for appointment id=%d",
				a.Status, req.TargetStatus, a.ID)
			return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, a.Status, req.TargetStatus)
		}

		// 2.5. Применяем переход
		if req.TargetStatus == domain.StatusCancelled {
			if err := uc.appointmentRepo.Cancel(txCtx, a.ID, req.Reason); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to cancel appointment id=%d: %v", a.ID, err)
				return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
			}

			// Отмена возвращает место в слот
			if err := uc.slotRepo.DecrementBooked(txCtx, a.SlotID); err != nil {
				if errors.Is(err, slotRepo.ErrNothingBooked) {
					// Счетчик уже на нуле: фиксируем расхождение, но отмену не блокируем
					uc.logger.Warn("UpdateAppointmentStatus: slot id=%d booked count already zero on cancel of appointment id=%d",
						a.SlotID, a.ID)
				} else {
					uc.logger.Error("UpdateAppointmentStatus: failed to decrement booked count for slot id=%d: %v",
						a.SlotID, err)
					return fmt.Errorf("%w: failed to decrement booked count: %v", ErrInternal, err)
				}
			}
		} else {
			if err := uc.appointmentRepo.UpdateStatus(txCtx, a.ID, req.TargetStatus); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to update status of appointment id=%d: %v", a.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
		}

		// 2.6. Перечитываем запись для актуальных полей
		updated, err := uc.appointmentRepo.GetByID(txCtx, a.ID)
		if err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to reload appointment id=%d: %v", a.ID, err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
		}

		result = updated
		changed = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Побочные эффекты после коммита: кеш, метрики, события
	// Ошибки доставки событий не влияют на результат
	if changed {
		switch result.Status {
		case domain.StatusCancelled:
			uc.cache.Invalidate(ctx)
			uc.metrics.IncAppointmentCancelled(string(result.PrimaryType))
			if err := uc.orderSync.OnAppointmentCancelled(ctx, result, req.Reason); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to publish cancellation event for appointment id=%d: %v",
					result.ID, err)
			}
		case domain.StatusDone:
			if err := uc.orderSync.OnAppointmentCompleted(ctx, result); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to publish completion event for appointment id=%d: %v",
					result.ID, err)
			}
		}

		uc.logger.Info("UpdateAppointmentStatus: appointment id=%d → %s", result.ID, result.Status)
	}

	return &Response{
		ID:                 result.ID,
		SlotID:             result.SlotID,
		CustomerID:         result.CustomerID,
		OrderID:            result.OrderID,
		PrimaryType:        result.PrimaryType,
		SecondaryTypes:     result.SecondaryTypes,
		ScheduledTime:      result.ScheduledTime,
		DurationMinutes:    result.DurationMinutes,
		Status:             result.Status,
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
		UpdatedAt:          result.UpdatedAt,
		Changed:            changed,
	}, nil
}
