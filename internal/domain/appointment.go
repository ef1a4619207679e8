package domain

import (
	"time"

	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusDone      AppointmentStatus = "done"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentType represents the service performed during an appointment
type AppointmentType string

const (
	TypeConsult AppointmentType = "consult"
	TypeMeasure AppointmentType = "measure"
	TypeFitting AppointmentType = "fitting"
	TypePickup  AppointmentType = "pickup"
)

// Appointment represents one customer visit occupying one capacity unit
// of a WorkingSlot. CustomerID is nil for walk-ins, OrderID is nil for
// appointments not tied to an order.
type Appointment struct {
	ID              int64
	SlotID          int64
	CustomerID      *int64
	OrderID         *int64
	PrimaryType     AppointmentType
	SecondaryTypes  []AppointmentType
	ScheduledTime   types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true for statuses that admit no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// IsValid returns true if the status is one of the known values.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// IsValid returns true if the type is one of the known values.
func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeConsult, TypeMeasure, TypeFitting, TypePickup:
		return true
	}
	return false
}

// appointmentTransitions допустимые переходы статусов
// pending → confirmed → done; отмена из любого нетерминального статуса
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDone, StatusCancelled},
	StatusDone:      {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the status change from s to target is legal.
// A transition to the same status is not listed here; callers treat it as an
// idempotent no-op.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// HoldsCapacity returns true if the appointment consumes a capacity unit
// of its slot. Cancelled appointments release their unit; done keeps it
// (the visit happened).
func (a *Appointment) HoldsCapacity() bool {
	return a.Status != StatusCancelled
}

// IsActive returns true for appointments still awaiting completion.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// baseDurations длительность каждого типа услуги в минутах
var baseDurations = map[AppointmentType]int{
	TypeConsult: 20,
	TypeMeasure: 40,
	TypeFitting: 30,
	TypePickup:  15,
}

// BaseDuration returns the base duration in minutes for a service type.
func BaseDuration(t AppointmentType) int {
	return baseDurations[t]
}

// ComputeDuration returns the total duration of an appointment:
// the primary type's base duration plus the base duration of every
// secondary type bundled into the same visit.
func ComputeDuration(primary AppointmentType, secondary []AppointmentType) int {
	total := baseDurations[primary]
	for _, t := range secondary {
		total += baseDurations[t]
	}
	return total
}

// ValidateTypes checks that the primary type is known and the secondary
// types are a set of known values excluding the primary.
func ValidateTypes(primary AppointmentType, secondary []AppointmentType) bool {
	if !primary.IsValid() {
		return false
	}
	seen := make(map[AppointmentType]bool, len(secondary))
	for _, t := range secondary {
		if !t.IsValid() || t == primary || seen[t] {
			return false
		}
		seen[t] = true
	}
	return true
}
