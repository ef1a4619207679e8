package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots/models"
)

// Service операции персонала над рабочими слотами
// booked_count здесь не трогается - им владеют usecases создания/отмены записей
type Service struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	cache           SlotCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, appointmentRepo AppointmentRepository, cache SlotCache, logger Logger) *Service {
	return &Service{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Create создает рабочий слот
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: date=%s, start=%s, end=%s, capacity=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Capacity)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, &domain.WorkingSlot{
		TailorID:    req.TailorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		BookedCount: 0,
		Status:      domain.SlotAvailable,
	})
	if err != nil {
		s.logger.Error("CreateSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("CreateSlot: created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// List получает слоты за период для персонала (включая BLOCKED и заполненные)
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: from=%s, to=%s",
		req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))

	if req.DateTo.Before(req.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListWithFilter(ctx, domain.SlotFilter{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		TailorID: req.TailorID,
	})
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Block блокирует слот для новых бронирований
// Слот с активными (pending/confirmed) записями заблокировать нельзя:
// вместо этого возвращается список затронутых записей, персонал должен
// сначала разобраться с ними вручную. Статусы done/cancelled блокировке
// не мешают. booked_count не изменяется.
func (s *Service) Block(ctx context.Context, slotID int64) ([]*domain.Appointment, error) {
	s.logger.Info("BlockSlot: blocking slot id=%d", slotID)

	if _, err := s.getSlot(ctx, slotID); err != nil {
		return nil, err
	}

	active, err := s.appointmentRepo.ListBySlot(ctx, slotID, true)
	if err != nil {
		s.logger.Error("BlockSlot: appointment repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Block - appointment repository error: %v", ErrInternal, err)
	}

	if len(active) > 0 {
		s.logger.Warn("BlockSlot: slot id=%d has %d active appointments", slotID, len(active))
		return active, ErrSlotHasActiveAppointments
	}

	if err := s.slotRepo.UpdateStatus(ctx, slotID, domain.SlotBlocked); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("BlockSlot: repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("BlockSlot: slot id=%d blocked", slotID)
	return nil, nil
}

// Unblock снимает блокировку слота
func (s *Service) Unblock(ctx context.Context, slotID int64) error {
	s.logger.Info("UnblockSlot: unblocking slot id=%d", slotID)

	if err := s.slotRepo.UpdateStatus(ctx, slotID, domain.SlotAvailable); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UnblockSlot: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("UnblockSlot: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("UnblockSlot: slot id=%d unblocked", slotID)
	return nil
}

// Delete удаляет слот без занятых мест
func (s *Service) Delete(ctx context.Context, slotID int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", slotID)

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("DeleteSlot: slot id=%d not found", slotID)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotHasBookings):
			s.logger.Warn("DeleteSlot: slot id=%d has booked appointments", slotID)
			return ErrSlotHasBookings
		default:
			s.logger.Error("DeleteSlot: repository error for slot=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("DeleteSlot: slot id=%d deleted", slotID)
	return nil
}

func (s *Service) getSlot(ctx context.Context, slotID int64) (*domain.WorkingSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("slot repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: slot repository error: %v", ErrInternal, err)
	}
	return slot, nil
}

func validateCreateRequest(req *models.CreateSlotRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if req.Capacity < domain.MinSlotCapacity || req.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}
	return nil
}
