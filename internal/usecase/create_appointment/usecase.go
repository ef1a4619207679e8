package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	orderClient "github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
	"github.com/m04kA/ATL-AppointmentService/pkg/metrics"
)

// UseCase use case создания записи на визит
// Единственная точка, где занимаются места слотов. Авторитетная проверка
// вместимости живет здесь: клиентская картина доступности всегда устаревший
// снимок и перепроверяется при создании.
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	orderClient     OrderServiceClient
	txManager       TransactionManager
	cache           SlotCache
	timeProvider    TimeProvider
	metrics         *metrics.Metrics
	logger          Logger

	gridInterval int
	horizonDays  int
}

// NewUseCase создает новый экземпляр use case
// m может быть nil при выключенных метриках
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	orderClient OrderServiceClient,
	txManager TransactionManager,
	cache SlotCache,
	m *metrics.Metrics,
	logger Logger,
	gridInterval int,
	horizonDays int,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		orderClient:     orderClient,
		txManager:       txManager,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		metrics:         m,
		logger:          logger,
		gridInterval:    gridInterval,
		horizonDays:     horizonDays,
	}
}

// Execute выполняет use case создания записи
// Проверка вместимости и вставка записи выполняются в одной сериализуемой
// транзакции: из двух конкурентных запросов на последнее место слота ровно
// один завершается успехом, второй получает ErrSlotFull
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: slot=%d, type=%s, time=%s, staff=%v",
		req.SlotID, req.PrimaryType, req.ScheduledTime, req.StaffInitiated)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Если запись привязана к заказу, проверяем его существование
	// При недоступном OrderService продолжаем: привязка к заказу не должна
	// блокировать запись, консистентность добьет координатор по событиям
	if req.OrderID != nil {
		order, err := uc.orderClient.GetOrderWithGracefulDegradation(ctx, *req.OrderID)
		if err != nil {
			if errors.Is(err, orderClient.ErrOrderNotFound) {
				uc.logger.Warn("CreateAppointment: order id=%d not found", *req.OrderID)
				return nil, ErrOrderNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get order id=%d: %v", *req.OrderID, err)
			return nil, fmt.Errorf("%w: failed to get order: %w", ErrInternal, err)
		}
		if order != nil && domain.OrderStatus(order.Status).IsTerminal() {
			uc.logger.Warn("CreateAppointment: order id=%d is %s", *req.OrderID, order.Status)
			return nil, fmt.Errorf("%w: order is already %s", ErrInvalidInput, order.Status)
		}
	}

	duration := domain.ComputeDuration(req.PrimaryType, req.SecondaryTypes)

	var result *domain.Appointment

	// 3. Проверка вместимости и запись - единая атомарная операция
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем слот с блокировкой строки (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateAppointment: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 3.2. Заблокированный слот не принимает записи
		if slot.Status != domain.SlotAvailable {
			uc.logger.Warn("CreateAppointment: slot id=%d is blocked", req.SlotID)
			return ErrSlotBlocked
		}

		// 3.3. Дата слота в допустимом окне
		if err := validateSlotDate(slot.Date, now, uc.horizonDays, req.StaffInitiated); err != nil {
			uc.logger.Warn("CreateAppointment: slot date validation failed: %v", err)
			return err
		}

		// 3.4. Есть ли свободное место
		if slot.IsFull() {
			uc.logger.Warn("CreateAppointment: slot id=%d is full (%d/%d)",
				req.SlotID, slot.BookedCount, slot.Capacity)
			return ErrSlotFull
		}

		// 3.5. Время на сетке и запись помещается в границы слота
		if err := validateScheduledTime(slot, req, uc.gridInterval, duration); err != nil {
			uc.logger.Warn("CreateAppointment: time validation failed: %v", err)
			return err
		}

		// 3.6. Статус новой записи зависит от инициатора
		status := domain.StatusPending
		if req.StaffInitiated {
			status = domain.StatusConfirmed
		}

		// 3.7. Сначала запись, затем инкремент занятости: место фиксируется
		// только после того, как запись durable в рамках транзакции
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SlotID:          req.SlotID,
			CustomerID:      req.CustomerID,
			OrderID:         req.OrderID,
			PrimaryType:     req.PrimaryType,
			SecondaryTypes:  req.SecondaryTypes,
			ScheduledTime:   req.ScheduledTime,
			DurationMinutes: duration,
			Status:          status,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		if err := uc.slotRepo.IncrementBooked(txCtx, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotFull) {
				return ErrSlotFull
			}
			uc.logger.Error("CreateAppointment: failed to increment booked count: %v", err)
			return fmt.Errorf("%w: failed to increment booked count: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotFull) {
			uc.metrics.IncSlotFullRejection(string(req.PrimaryType))
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	uc.metrics.IncAppointmentCreated(string(result.PrimaryType), string(result.Status))

	uc.logger.Info("CreateAppointment: created appointment id=%d, slot=%d, status=%s",
		result.ID, result.SlotID, result.Status)

	estimatedEnd, _ := result.ScheduledTime.AddMinutes(result.DurationMinutes)

	return &Response{
		ID:              result.ID,
		SlotID:          result.SlotID,
		CustomerID:      result.CustomerID,
		OrderID:         result.OrderID,
		PrimaryType:     result.PrimaryType,
		SecondaryTypes:  result.SecondaryTypes,
		ScheduledTime:   result.ScheduledTime,
		EstimatedEnd:    estimatedEnd,
		DurationMinutes: result.DurationMinutes,
		Status:          result.Status,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
