package update_appointment_status

import (
	"context"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DecrementBooked(ctx context.Context, id int64) error
}

// OrderSyncService координатор статусов заказов
// Вызовы выполняются после коммита транзакции; их ошибки не влияют на
// результат смены статуса записи
type OrderSyncService interface {
	OnAppointmentCompleted(ctx context.Context, a *domain.Appointment) error
	OnAppointmentCancelled(ctx context.Context, a *domain.Appointment, reason *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
