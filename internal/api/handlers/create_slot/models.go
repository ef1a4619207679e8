package create_slot

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	TailorID  *int64 `json:"tailorId,omitempty"`
	Date      string `json:"date"`      // "2026-09-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
	Capacity  int    `json:"capacity"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSlotRequest) ToServiceRequest() (*models.CreateSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateSlotRequest{
		TailorID:  r.TailorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  r.Capacity,
	}, nil
}
