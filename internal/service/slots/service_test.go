package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/internal/service/slots/models"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
)

// --- фейки ---

type fakeSlotRepo struct {
	slot       *domain.WorkingSlot
	lastStatus domain.SlotStatus
	deleted    bool
	deleteErr  error
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *domain.WorkingSlot) (*domain.WorkingSlot, error) {
	out := *s
	out.ID = 1
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error) {
	if f.slot == nil || f.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	out := *f.slot
	return &out, nil
}

func (f *fakeSlotRepo) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error) {
	if f.slot == nil {
		return nil, nil
	}
	return []*domain.WorkingSlot{f.slot}, nil
}

func (f *fakeSlotRepo) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	if f.slot == nil || f.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	f.slot.Status = status
	f.lastStatus = status
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	return nil
}

type fakeAppointmentRepo struct {
	active []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListBySlot(ctx context.Context, slotID int64, onlyActive bool) ([]*domain.Appointment, error) {
	return f.active, nil
}

type fakeCache struct{ invalidated int }

func (f *fakeCache) Invalidate(ctx context.Context) { f.invalidated++ }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- хелперы ---

func newTestService(slot *domain.WorkingSlot, active []*domain.Appointment) (*Service, *fakeSlotRepo, *fakeCache) {
	repo := &fakeSlotRepo{slot: slot}
	cache := &fakeCache{}
	svc := NewService(repo, &fakeAppointmentRepo{active: active}, cache, nopLogger{})
	return svc, repo, cache
}

func availableSlot() *domain.WorkingSlot {
	return &domain.WorkingSlot{
		ID:        1,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "18:00",
		Capacity:  3,
		Status:    domain.SlotAvailable,
	}
}

// --- тесты ---

func TestCreateSlot(t *testing.T) {
	svc, _, cache := newTestService(nil, nil)

	resp, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		TailorID:  ptr.Ptr(int64(5)),
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "18:00",
		Capacity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "AVAILABLE", resp.Status)
	assert.Equal(t, 0, resp.BookedCount)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateSlotValidation(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *models.CreateSlotRequest
	}{
		{"start after end", &models.CreateSlotRequest{Date: date, StartTime: "18:00", EndTime: "09:00", Capacity: 3}},
		{"start equals end", &models.CreateSlotRequest{Date: date, StartTime: "09:00", EndTime: "09:00", Capacity: 3}},
		{"zero capacity", &models.CreateSlotRequest{Date: date, StartTime: "09:00", EndTime: "18:00", Capacity: 0}},
		{"capacity too big", &models.CreateSlotRequest{Date: date, StartTime: "09:00", EndTime: "18:00", Capacity: 51}},
		{"bad time", &models.CreateSlotRequest{Date: date, StartTime: "9am", EndTime: "18:00", Capacity: 3}},
		{"missing date", &models.CreateSlotRequest{StartTime: "09:00", EndTime: "18:00", Capacity: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBlockSlot(t *testing.T) {
	svc, repo, cache := newTestService(availableSlot(), nil)

	affected, err := svc.Block(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, affected)
	assert.Equal(t, domain.SlotBlocked, repo.lastStatus)
	assert.Equal(t, 1, cache.invalidated)
}

func TestBlockSlotWithActiveAppointmentsRefused(t *testing.T) {
	active := []*domain.Appointment{
		{ID: 10, SlotID: 1, Status: domain.StatusPending},
		{ID: 11, SlotID: 1, Status: domain.StatusConfirmed},
	}
	svc, repo, cache := newTestService(availableSlot(), active)

	affected, err := svc.Block(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotHasActiveAppointments)
	assert.Len(t, affected, 2, "caller receives the affected appointments")
	assert.NotEqual(t, domain.SlotBlocked, repo.lastStatus)
	assert.Zero(t, cache.invalidated)
}

func TestBlockSlotWithOnlyFinishedAppointments(t *testing.T) {
	// done и cancelled записи блокировке не мешают: репозиторий их
	// не возвращает в списке активных
	svc, repo, _ := newTestService(availableSlot(), nil)

	_, err := svc.Block(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBlocked, repo.lastStatus)
}

func TestBlockSlotNotFound(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)

	_, err := svc.Block(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUnblockSlot(t *testing.T) {
	slot := availableSlot()
	slot.Status = domain.SlotBlocked
	svc, repo, cache := newTestService(slot, nil)

	require.NoError(t, svc.Unblock(context.Background(), 1))
	assert.Equal(t, domain.SlotAvailable, repo.lastStatus)
	assert.Equal(t, 1, cache.invalidated)
}

func TestDeleteSlotWithBookingsRefused(t *testing.T) {
	svc, repo, cache := newTestService(availableSlot(), nil)
	repo.deleteErr = slotRepo.ErrSlotHasBookings

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotHasBookings)
	assert.False(t, repo.deleted)
	assert.Zero(t, cache.invalidated)
}

func TestDeleteSlot(t *testing.T) {
	svc, repo, cache := newTestService(availableSlot(), nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.True(t, repo.deleted)
	assert.Equal(t, 1, cache.invalidated)
}
