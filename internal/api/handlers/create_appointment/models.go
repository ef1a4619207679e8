package create_appointment

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/ATL-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SlotID         int64    `json:"slotId"`
	Type           string   `json:"type"`
	SecondaryTypes []string `json:"secondaryTypes,omitempty"`
	StartTime      string   `json:"startTime"` // "10:30"
	CustomerID     *int64   `json:"customerId,omitempty"`
	OrderID        *int64   `json:"orderId,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64    `json:"id"`
	SlotID           int64    `json:"slotId"`
	CustomerID       *int64   `json:"customerId,omitempty"`
	OrderID          *int64   `json:"orderId,omitempty"`
	Type             string   `json:"type"`
	SecondaryTypes   []string `json:"secondaryTypes"`
	StartTime        string   `json:"startTime"`
	EstimatedEndTime string   `json:"estimatedEndTime"`
	DurationMinutes  int      `json:"durationMinutes"`
	Status           string   `json:"status"`
	Notes            *string  `json:"notes,omitempty"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(callerID int64, isStaff bool) (*createAppointment.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	secondary := make([]domain.AppointmentType, len(r.SecondaryTypes))
	for i, t := range r.SecondaryTypes {
		secondary[i] = domain.AppointmentType(t)
	}

	// Персонал может создавать записи на других клиентов и walk-in записи
	// без клиента; обычный пользователь записывает только себя
	customerID := r.CustomerID
	if !isStaff {
		customerID = &callerID
	}

	return &createAppointment.Request{
		SlotID:         r.SlotID,
		PrimaryType:    domain.AppointmentType(r.Type),
		SecondaryTypes: secondary,
		ScheduledTime:  startTime,
		CustomerID:     customerID,
		OrderID:        r.OrderID,
		Notes:          r.Notes,
		StaffInitiated: isStaff,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	secondary := make([]string, len(resp.SecondaryTypes))
	for i, t := range resp.SecondaryTypes {
		secondary[i] = string(t)
	}

	return &AppointmentResponse{
		ID:               resp.ID,
		SlotID:           resp.SlotID,
		CustomerID:       resp.CustomerID,
		OrderID:          resp.OrderID,
		Type:             string(resp.PrimaryType),
		SecondaryTypes:   secondary,
		StartTime:        resp.ScheduledTime.String(),
		EstimatedEndTime: resp.EstimatedEnd.String(),
		DurationMinutes:  resp.DurationMinutes,
		Status:           string(resp.Status),
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
