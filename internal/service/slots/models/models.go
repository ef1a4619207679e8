package models

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// CreateSlotRequest запрос на создание рабочего слота
type CreateSlotRequest struct {
	TailorID  *int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// ListSlotsRequest запрос списка слотов для персонала
// В отличие от публичной выдачи включает заблокированные и заполненные слоты
type ListSlotsRequest struct {
	DateFrom time.Time
	DateTo   time.Time
	TailorID *int64
}

// SlotResponse модель слота для ответов сервиса
type SlotResponse struct {
	ID          int64  `json:"id"`
	TailorID    *int64 `json:"tailorId,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Remaining   int    `json:"remaining"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []*SlotResponse `json:"slots"`
	Total int             `json:"total"`
}

// FromDomainSlot конвертирует доменный слот в response-модель
func FromDomainSlot(s *domain.WorkingSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		TailorID:    s.TailorID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Capacity:    s.Capacity,
		BookedCount: s.BookedCount,
		Remaining:   s.Remaining(),
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSlotList конвертирует список доменных слотов
func FromDomainSlotList(slots []*domain.WorkingSlot) *SlotListResponse {
	out := make([]*SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = FromDomainSlot(s)
	}
	return &SlotListResponse{Slots: out, Total: len(out)}
}
