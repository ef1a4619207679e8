package update_appointment_status

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
)

// --- фейки ---

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *f.appointment
	return &out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	f.appointment.Status = status
	f.appointment.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, reason *string) error {
	now := time.Now()
	f.appointment.Status = domain.StatusCancelled
	f.appointment.CancellationReason = reason
	f.appointment.CancelledAt = &now
	f.appointment.UpdatedAt = now
	return nil
}

type fakeSlotRepo struct {
	bookedCount int
	decrements  int
	nothingErr  bool
}

func (f *fakeSlotRepo) DecrementBooked(ctx context.Context, id int64) error {
	if f.nothingErr || f.bookedCount == 0 {
		return slotRepo.ErrNothingBooked
	}
	f.bookedCount--
	f.decrements++
	return nil
}

type fakeOrderSync struct {
	completed []*domain.Appointment
	cancelled []*domain.Appointment
}

func (f *fakeOrderSync) OnAppointmentCompleted(ctx context.Context, a *domain.Appointment) error {
	f.completed = append(f.completed, a)
	return nil
}

func (f *fakeOrderSync) OnAppointmentCancelled(ctx context.Context, a *domain.Appointment, reason *string) error {
	f.cancelled = append(f.cancelled, a)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct{ invalidated int }

func (f *fakeCache) Invalidate(ctx context.Context) { f.invalidated++ }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- хелперы ---

type testEnv struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	slots        *fakeSlotRepo
	orderSync    *fakeOrderSync
	cache        *fakeCache
}

func newTestEnv(a *domain.Appointment) *testEnv {
	env := &testEnv{
		appointments: &fakeAppointmentRepo{appointment: a},
		slots:        &fakeSlotRepo{bookedCount: 1},
		orderSync:    &fakeOrderSync{},
		cache:        &fakeCache{},
	}
	env.uc = NewUseCase(
		env.appointments,
		env.slots,
		env.orderSync,
		passthroughTxManager{},
		env.cache,
		nil,
		nopLogger{},
	)
	return env
}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            10,
		SlotID:        1,
		CustomerID:    ptr.Ptr(int64(100)),
		PrimaryType:   domain.TypeFitting,
		ScheduledTime: "11:00",
		Status:        domain.StatusPending,
	}
}

func staffCaller() Caller    { return Caller{UserID: 1, IsStaff: true} }
func customerCaller() Caller { return Caller{UserID: 100, IsStaff: false} }

// --- тесты ---

func TestConfirmPendingAppointment(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusConfirmed,
		Caller:        staffCaller(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.True(t, resp.Changed)
	assert.Empty(t, env.orderSync.completed)
	assert.Zero(t, env.slots.decrements, "confirm keeps capacity")
}

func TestSameStatusIsIdempotentNoop(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusPending,
		Caller:        staffCaller(),
	})
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Zero(t, env.cache.invalidated)
	assert.Empty(t, env.orderSync.cancelled)
}

func TestInvalidTransitionRejected(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.AppointmentStatus
		target domain.AppointmentStatus
	}{
		{"pending to done skips confirmation", domain.StatusPending, domain.StatusDone},
		{"done is terminal", domain.StatusDone, domain.StatusCancelled},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusConfirmed},
		{"confirmed cannot revert", domain.StatusConfirmed, domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := pendingAppointment()
			a.Status = tt.from
			env := newTestEnv(a)

			_, err := env.uc.Execute(context.Background(), &Request{
				AppointmentID: 10,
				TargetStatus:  tt.target,
				Caller:        staffCaller(),
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCancelReleasesCapacity(t *testing.T) {
	env := newTestEnv(pendingAppointment())
	reason := "клиент попросил перенести"

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusCancelled,
		Reason:        &reason,
		Caller:        customerCaller(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, &reason, resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, 1, env.slots.decrements)
	assert.Equal(t, 1, env.cache.invalidated)
	require.Len(t, env.orderSync.cancelled, 1)
}

func TestCancelSurvivesZeroBookedCount(t *testing.T) {
	// Расхождение счетчика не должно блокировать отмену
	env := newTestEnv(pendingAppointment())
	env.slots.nothingErr = true

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusCancelled,
		Caller:        staffCaller(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
}

func TestDoneKeepsCapacityAndNotifiesCoordinator(t *testing.T) {
	a := pendingAppointment()
	a.Status = domain.StatusConfirmed
	a.OrderID = ptr.Ptr(int64(7))
	env := newTestEnv(a)

	resp, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusDone,
		Caller:        staffCaller(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDone, resp.Status)
	assert.Zero(t, env.slots.decrements, "done keeps the seat")
	require.Len(t, env.orderSync.completed, 1)
	assert.Equal(t, int64(7), *env.orderSync.completed[0].OrderID)
}

func TestCustomerMayOnlyCancelOwnAppointment(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	// Чужая запись
	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusCancelled,
		Caller:        Caller{UserID: 999},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Клиент не может подтверждать даже свою запись
	_, err = env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusConfirmed,
		Caller:        customerCaller(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestWalkInAppointmentIsStaffOnly(t *testing.T) {
	a := pendingAppointment()
	a.CustomerID = nil
	env := newTestEnv(a)

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 10,
		TargetStatus:  domain.StatusCancelled,
		Caller:        customerCaller(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAppointmentNotFound(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.uc.Execute(context.Background(), &Request{
		AppointmentID: 404,
		TargetStatus:  domain.StatusCancelled,
		Caller:        staffCaller(),
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestValidationErrors(t *testing.T) {
	env := newTestEnv(pendingAppointment())
	reason := "reason"

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero appointment id", &Request{AppointmentID: 0, TargetStatus: domain.StatusDone, Caller: staffCaller()}},
		{"unknown status", &Request{AppointmentID: 10, TargetStatus: "archived", Caller: staffCaller()}},
		{"reason without cancel", &Request{AppointmentID: 10, TargetStatus: domain.StatusConfirmed, Reason: &reason, Caller: staffCaller()}},
		{"reason too long", &Request{
			AppointmentID: 10,
			TargetStatus:  domain.StatusCancelled,
			Reason:        ptr.Ptr(strings.Repeat("x", domain.MaxCancellationReasonLength+1)),
			Caller:        staffCaller(),
		}},
		{"missing caller", &Request{AppointmentID: 10, TargetStatus: domain.StatusDone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
