package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name      string
		primary   AppointmentType
		secondary []AppointmentType
		want      int
	}{
		{"consult alone", TypeConsult, nil, 20},
		{"measure alone", TypeMeasure, nil, 40},
		{"fitting alone", TypeFitting, nil, 30},
		{"pickup alone", TypePickup, nil, 15},
		{"consult with measure", TypeConsult, []AppointmentType{TypeMeasure}, 60},
		{"fitting with pickup", TypeFitting, []AppointmentType{TypePickup}, 45},
		{"all four", TypeConsult, []AppointmentType{TypeMeasure, TypeFitting, TypePickup}, 105},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDuration(tt.primary, tt.secondary))
		})
	}
}

func TestValidateTypes(t *testing.T) {
	tests := []struct {
		name      string
		primary   AppointmentType
		secondary []AppointmentType
		want      bool
	}{
		{"valid primary only", TypeMeasure, nil, true},
		{"valid with secondaries", TypeConsult, []AppointmentType{TypeMeasure, TypeFitting}, true},
		{"unknown primary", AppointmentType("massage"), nil, false},
		{"unknown secondary", TypeConsult, []AppointmentType{"spa"}, false},
		{"secondary duplicates primary", TypeConsult, []AppointmentType{TypeConsult}, false},
		{"duplicate secondaries", TypeConsult, []AppointmentType{TypeMeasure, TypeMeasure}, false},
		{"empty primary", AppointmentType(""), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTypes(tt.primary, tt.secondary))
		})
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDone, false},
		{StatusConfirmed, StatusDone, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusDone, StatusCancelled, false},
		{StatusDone, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusDone.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestHoldsCapacity(t *testing.T) {
	// Завершенная запись продолжает занимать место: визит состоялся
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusDone} {
		a := &Appointment{Status: status}
		assert.True(t, a.HoldsCapacity(), "status %s", status)
	}

	cancelled := &Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.HoldsCapacity())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderDraft, OrderWaitingForQuote, true},
		{OrderWaitingForQuote, OrderConfirmed, true},
		{OrderConfirmed, OrderInProgress, true},
		{OrderInProgress, OrderFitting, true},
		{OrderFitting, OrderCompleted, true},
		// Доработка после неудачной примерки
		{OrderFitting, OrderInProgress, true},
		{OrderCompleted, OrderInProgress, false},
		{OrderDraft, OrderCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
