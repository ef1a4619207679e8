package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/internal/service/appointments/models"
)

// Service read-сторона работы с записями
// Все мутации проходят через usecases; здесь только чтение с проверкой прав
type Service struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи; персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, caller models.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, caller.UserID)

	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(a, caller); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", caller.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(a), nil
}

// ListBySlot получает записи, удерживающие места слота
// Используется персоналом для просмотра занятости; клиентам недоступно
func (s *Service) ListBySlot(ctx context.Context, slotID int64, caller models.Caller) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListBySlot: fetching appointments for slot=%d by user=%d", slotID, caller.UserID)

	if !caller.IsStaff {
		s.logger.Warn("ListBySlot: access denied for user=%d", caller.UserID)
		return nil, ErrAccessDenied
	}

	// Проверяем, что слот существует, чтобы вернуть осмысленную 404
	if _, err := s.slotRepo.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("ListBySlot: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ListBySlot: slot repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - slot repository error: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.ListBySlot(ctx, slotID, false)
	if err != nil {
		s.logger.Error("ListBySlot: repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySlot: fetched %d appointments for slot=%d", len(appointments), slotID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListByCustomer получает историю записей клиента
// Клиент видит только свою историю; персонал - историю любого клиента
func (s *Service) ListByCustomer(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByCustomer: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	if !req.Caller.IsStaff && req.Caller.UserID != req.CustomerID {
		s.logger.Warn("ListByCustomer: access denied for user=%d to customer=%d", req.Caller.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByCustomer: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.ListByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("ListByCustomer: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: ListByCustomer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByCustomer: fetched %d appointments for customer=%d", len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// checkAccess проверяет право пользователя видеть запись
func (s *Service) checkAccess(a *domain.Appointment, caller models.Caller) error {
	if caller.IsStaff {
		return nil
	}
	if a.CustomerID != nil && *a.CustomerID == caller.UserID {
		return nil
	}
	return ErrAccessDenied
}
