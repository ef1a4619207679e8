package slots

import (
	"context"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.WorkingSlot) (*domain.WorkingSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error)
	ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListBySlot(ctx context.Context, slotID int64, onlyActive bool) ([]*domain.Appointment, error)
}

// SlotCache кеш доступных слотов, инвалидируемый при изменениях
type SlotCache interface {
	Invalidate(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
