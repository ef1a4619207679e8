package models

import (
	"errors"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Caller идентификация вызывающего пользователя (из заголовков gateway)
type Caller struct {
	UserID  int64
	IsStaff bool
}

// GetCustomerAppointmentsRequest запрос истории записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64
	Status     *string
	Caller     Caller
}

// AppointmentResponse модель записи для ответов сервиса
type AppointmentResponse struct {
	ID              int64    `json:"id"`
	SlotID          int64    `json:"slotId"`
	CustomerID      *int64   `json:"customerId,omitempty"`
	OrderID         *int64   `json:"orderId,omitempty"`
	PrimaryType     string   `json:"type"`
	SecondaryTypes  []string `json:"secondaryTypes"`
	ScheduledTime   string   `json:"startTime"`
	EstimatedEnd    string   `json:"estimatedEndTime,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	StatusLabel     string   `json:"statusLabel"`
	TypeLabel       string   `json:"typeLabel"`
	Notes           *string  `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в response-модель
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	secondary := make([]string, len(a.SecondaryTypes))
	for i, t := range a.SecondaryTypes {
		secondary[i] = string(t)
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		SlotID:          a.SlotID,
		CustomerID:      a.CustomerID,
		OrderID:         a.OrderID,
		PrimaryType:     string(a.PrimaryType),
		SecondaryTypes:  secondary,
		ScheduledTime:   a.ScheduledTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		StatusLabel:     a.Status.Label(),
		TypeLabel:       a.PrimaryType.Label(),
		Notes:           a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}

	if end, err := a.ScheduledTime.AddMinutes(a.DurationMinutes); err == nil {
		resp.EstimatedEnd = end.String()
	}

	return resp
}

// FromDomainAppointmentList конвертирует список доменных записей
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = FromDomainAppointment(a)
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}

// ToDomainAppointmentStatus валидирует и конвертирует строку статуса
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
