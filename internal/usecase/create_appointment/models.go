package create_appointment

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SlotID         int64                    // ID рабочего слота
	PrimaryType    domain.AppointmentType   // Основная услуга визита
	SecondaryTypes []domain.AppointmentType // Дополнительные услуги (без дублей и без основной)
	ScheduledTime  types.TimeString         // Время начала (точка сетки слота)
	CustomerID     *int64                   // ID клиента (nil для walk-in)
	OrderID        *int64                   // ID заказа (опционально)
	Notes          *string                  // Заметки (опционально)
	StaffInitiated bool                     // Создано персоналом (запись сразу confirmed)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	SlotID          int64
	CustomerID      *int64
	OrderID         *int64
	PrimaryType     domain.AppointmentType
	SecondaryTypes  []domain.AppointmentType
	ScheduledTime   types.TimeString
	EstimatedEnd    types.TimeString
	DurationMinutes int
	Status          domain.AppointmentStatus
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
