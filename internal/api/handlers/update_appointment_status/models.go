package update_appointment_status

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	updateStatus "github.com/m04kA/ATL-AppointmentService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID                 int64   `json:"id"`
	SlotID             int64   `json:"slotId"`
	Status             string  `json:"status"`
	StatusLabel        string  `json:"statusLabel"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	out := &UpdateStatusResponse{
		ID:                 resp.ID,
		SlotID:             resp.SlotID,
		Status:             string(resp.Status),
		StatusLabel:        resp.Status.Label(),
		CancellationReason: resp.CancellationReason,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID, userID int64, isStaff bool) *updateStatus.Request {
	return &updateStatus.Request{
		AppointmentID: appointmentID,
		TargetStatus:  domain.AppointmentStatus(r.Status),
		Reason:        r.Reason,
		Caller: updateStatus.Caller{
			UserID:  userID,
			IsStaff: isStaff,
		},
	}
}
