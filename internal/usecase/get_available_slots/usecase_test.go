package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
	"github.com/m04kA/ATL-AppointmentService/pkg/types"
)

// --- фейки ---

type fakeSlotRepo struct {
	slots      []*domain.WorkingSlot
	lastFilter domain.SlotFilter
	calls      int
}

func (f *fakeSlotRepo) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error) {
	f.calls++
	f.lastFilter = filter
	return f.slots, nil
}

type memoryCache struct {
	store map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, ok := c.store[key]
	return data, ok
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte) {
	c.store[key] = value
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- хелперы ---

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeSlotRepo, cache SlotCache) *UseCase {
	uc := NewUseCase(repo, cache, nopLogger{}, 30)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func testSlot(id int64, start, end types.TimeString, booked int) *domain.WorkingSlot {
	return &domain.WorkingSlot{
		ID:          id,
		Date:        time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   start,
		EndTime:     end,
		Capacity:    3,
		BookedCount: booked,
		Status:      domain.SlotAvailable,
	}
}

func validRequest() *Request {
	return &Request{
		DateFrom: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
	}
}

// --- тесты ---

func TestAvailableSlotsGridPoints(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.WorkingSlot{
		testSlot(1, "08:00", "09:00", 0),
	}}
	uc := newTestUseCase(repo, newMemoryCache())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, []types.TimeString{"08:00", "08:30"}, resp.Slots[0].AvailableTimes)
	assert.Equal(t, 3, resp.Slots[0].Remaining)
	assert.True(t, repo.lastFilter.OnlyBookable)
}

func TestAvailableSlotsFilterByDuration(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.WorkingSlot{
		testSlot(1, "09:00", "10:00", 0),
	}}
	uc := newTestUseCase(repo, newMemoryCache())

	// Визит на 40 минут: 09:30 + 40 не помещается до 10:00
	req := validRequest()
	req.PrimaryType = domain.TypeMeasure

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, []types.TimeString{"09:00"}, resp.Slots[0].AvailableTimes)
	assert.Equal(t, 40, resp.DurationMinutes)
}

func TestAvailableSlotsDropsSlotsWhereNothingFits(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.WorkingSlot{
		testSlot(1, "09:00", "09:30", 0), // 40 минут не помещаются никуда
		testSlot(2, "10:00", "12:00", 0),
	}}
	uc := newTestUseCase(repo, newMemoryCache())

	req := validRequest()
	req.PrimaryType = domain.TypeMeasure

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(2), resp.Slots[0].SlotID)
}

func TestAvailableSlotsMinCapacityFilter(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.WorkingSlot{
		testSlot(1, "09:00", "18:00", 0),
	}}
	uc := newTestUseCase(repo, newMemoryCache())

	req := validRequest()
	req.MinCapacity = 2

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lastFilter.MinCapacity)

	// Без параметра действует минимум в одно место
	_, err = uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.MinCapacity)

	// Разные minCapacity кешируются раздельно
	assert.Equal(t, 2, repo.calls)
}

func TestAvailableSlotsCaching(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.WorkingSlot{
		testSlot(1, "09:00", "18:00", 1),
	}}
	cache := newMemoryCache()
	uc := newTestUseCase(repo, cache)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	// Повторный запрос обслуживается из кеша
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsPastDatesClamped(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, newMemoryCache())

	req := validRequest()
	req.DateFrom = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Нижняя граница поднята до сегодняшнего дня
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.lastFilter.DateFrom)
}

func TestAvailableSlotsValidation(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, newMemoryCache())

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"inverted range", func(r *Request) { r.DateTo = r.DateFrom.AddDate(0, 0, -1) }, ErrInvalidDateRange},
		{"range too wide", func(r *Request) { r.DateTo = r.DateFrom.AddDate(0, 0, 45) }, ErrInvalidDateRange},
		{"missing dates", func(r *Request) { r.DateFrom = time.Time{}; r.DateTo = time.Time{} }, ErrInvalidInput},
		{"bad tailor id", func(r *Request) { r.TailorID = ptr.Ptr(int64(0)) }, ErrInvalidInput},
		{"negative min capacity", func(r *Request) { r.MinCapacity = -1 }, ErrInvalidInput},
		{"unknown type", func(r *Request) { r.PrimaryType = "spa" }, ErrInvalidInput},
		{"secondaries without primary", func(r *Request) {
			r.SecondaryTypes = []domain.AppointmentType{domain.TypeConsult}
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
