package domain

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// SlotStatus represents the staff-controlled availability flag of a slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBlocked   SlotStatus = "BLOCKED"
)

// WorkingSlot represents a tailor's fixed-capacity time block on a given day.
// TailorID is nil when the slot is served by any available tailor.
// Capacity models how many customers the slot serves in parallel; it is not
// a continuous timeline, so appointment durations do not affect it.
type WorkingSlot struct {
	ID          int64
	TailorID    *int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	BookedCount int
	Status      SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns the number of free capacity units.
func (s *WorkingSlot) Remaining() int {
	remaining := s.Capacity - s.BookedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFull returns true if every capacity unit is taken.
func (s *WorkingSlot) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// IsBookable returns true if the slot can accept another appointment.
func (s *WorkingSlot) IsBookable() bool {
	return s.Status == SlotAvailable && !s.IsFull()
}

// Contains reports whether an appointment starting at t with the given
// duration fits inside the slot bounds: t >= start and t+duration <= end.
func (s *WorkingSlot) Contains(t types.TimeString, durationMinutes int) bool {
	if t.IsBefore(s.StartTime) {
		return false
	}
	end, err := t.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(s.EndTime)
}

// SlotFilter фильтр для выборки рабочих слотов
type SlotFilter struct {
	DateFrom    time.Time // Начало периода (обязательно)
	DateTo      time.Time // Конец периода (обязательно)
	TailorID    *int64    // Фильтр по портному (опционально)
	MinCapacity int       // Минимум свободных мест (по умолчанию 1)
	OnlyBookable bool     // Только AVAILABLE слоты со свободными местами
}
