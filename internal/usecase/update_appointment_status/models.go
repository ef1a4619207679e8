package update_appointment_status

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// Caller данные о вызывающем пользователе
type Caller struct {
	UserID  int64
	IsStaff bool
}

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64                    // ID записи
	TargetStatus  domain.AppointmentStatus // Целевой статус
	Reason        *string                  // Причина отмены (только для cancelled)
	Caller        Caller                   // Кто инициирует переход
}

// Response модель ответа со сменой статуса
type Response struct {
	ID                 int64
	SlotID             int64
	CustomerID         *int64
	OrderID            *int64
	PrimaryType        domain.AppointmentType
	SecondaryTypes     []domain.AppointmentType
	ScheduledTime      types.TimeString
	DurationMinutes    int
	Status             domain.AppointmentStatus
	CancellationReason *string
	CancelledAt        *time.Time
	UpdatedAt          time.Time

	// Changed false, если переход был идемпотентным no-op
	Changed bool
}
