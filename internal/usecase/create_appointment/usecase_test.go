package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
)

// --- фейки ---

type fakeAppointmentRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	out := *a
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = append(f.created, &out)
	return &out, nil
}

type fakeSlotRepo struct {
	mu   sync.Mutex
	slot *domain.WorkingSlot
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil || f.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	out := *f.slot
	return &out, nil
}

func (f *fakeSlotRepo) IncrementBooked(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot == nil || f.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	if f.slot.BookedCount >= f.slot.Capacity {
		return slotRepo.ErrSlotFull
	}
	f.slot.BookedCount++
	return nil
}

type fakeOrderClient struct {
	order *orderservice.Order
	err   error
}

func (f *fakeOrderClient) GetOrderWithGracefulDegradation(ctx context.Context, orderID int64) (*orderservice.Order, error) {
	return f.order, f.err
}

// serialTxManager прогоняет транзакции по одной, как это делает
// сериализуемый уровень изоляции для конфликтующих транзакций
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeCache) Invalidate(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- хелперы ---

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestSlot() *domain.WorkingSlot {
	return &domain.WorkingSlot{
		ID:        1,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "18:00",
		Capacity:  3,
		Status:    domain.SlotAvailable,
	}
}

type testEnv struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	slots        *fakeSlotRepo
	orders       *fakeOrderClient
	cache        *fakeCache
}

func newTestEnv(slot *domain.WorkingSlot) *testEnv {
	env := &testEnv{
		appointments: &fakeAppointmentRepo{},
		slots:        &fakeSlotRepo{slot: slot},
		orders:       &fakeOrderClient{},
		cache:        &fakeCache{},
	}
	env.uc = NewUseCase(
		env.appointments,
		env.slots,
		env.orders,
		&serialTxManager{},
		env.cache,
		nil,
		nopLogger{},
		30,
		14,
	)
	env.uc.timeProvider = fixedTime{now: testNow}
	return env
}

func validRequest() *Request {
	return &Request{
		SlotID:        1,
		PrimaryType:   domain.TypeMeasure,
		ScheduledTime: "10:00",
		CustomerID:    ptr.Ptr(int64(100)),
	}
}

// --- тесты ---

func TestCreateAppointmentSuccess(t *testing.T) {
	env := newTestEnv(newTestSlot())

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status, "customer booking starts pending")
	assert.Equal(t, 40, resp.DurationMinutes)
	assert.Equal(t, "10:40", resp.EstimatedEnd.String())
	assert.Equal(t, 1, env.slots.slot.BookedCount)
	assert.Equal(t, 1, env.cache.invalidated)
}

func TestCreateAppointmentStaffInitiatedIsConfirmed(t *testing.T) {
	env := newTestEnv(newTestSlot())

	req := validRequest()
	req.StaffInitiated = true
	req.CustomerID = nil // walk-in

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Nil(t, resp.CustomerID)
}

func TestCreateAppointmentSecondaryTypesExtendDuration(t *testing.T) {
	env := newTestEnv(newTestSlot())

	req := validRequest()
	req.PrimaryType = domain.TypeConsult
	req.SecondaryTypes = []domain.AppointmentType{domain.TypeMeasure}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestCreateAppointmentSlotNotFound(t *testing.T) {
	env := newTestEnv(newTestSlot())

	req := validRequest()
	req.SlotID = 99

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateAppointmentSlotBlocked(t *testing.T) {
	slot := newTestSlot()
	slot.Status = domain.SlotBlocked
	env := newTestEnv(slot)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestCreateAppointmentSlotFull(t *testing.T) {
	slot := newTestSlot()
	slot.Capacity = 1
	slot.BookedCount = 1
	env := newTestEnv(slot)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Empty(t, env.appointments.created)
}

func TestCreateAppointmentOffGridTime(t *testing.T) {
	env := newTestEnv(newTestSlot())

	req := validRequest()
	req.ScheduledTime = "10:15"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCreateAppointmentDoesNotFitSlotBounds(t *testing.T) {
	env := newTestEnv(newTestSlot())

	// 17:30 + 40 минут выходит за границу 18:00
	req := validRequest()
	req.ScheduledTime = "17:30"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCreateAppointmentDateInPast(t *testing.T) {
	slot := newTestSlot()
	slot.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(slot)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestCreateAppointmentBeyondHorizon(t *testing.T) {
	slot := newTestSlot()
	slot.Date = testNow.AddDate(0, 0, 15)
	env := newTestEnv(slot)

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	// Персонал горизонтом не ограничен
	req := validRequest()
	req.StaffInitiated = true
	_, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateAppointmentOrderNotFound(t *testing.T) {
	env := newTestEnv(newTestSlot())
	env.orders.err = orderservice.ErrOrderNotFound

	req := validRequest()
	req.OrderID = ptr.Ptr(int64(500))

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreateAppointmentOrderServiceDownProceeds(t *testing.T) {
	env := newTestEnv(newTestSlot())
	// GetOrderWithGracefulDegradation вернул (nil, nil): сервис недоступен
	env.orders.order = nil
	env.orders.err = nil

	req := validRequest()
	req.OrderID = ptr.Ptr(int64(500))

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(500), *resp.OrderID)
}

func TestCreateAppointmentInvalidInput(t *testing.T) {
	env := newTestEnv(newTestSlot())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero slot id", func(r *Request) { r.SlotID = 0 }},
		{"unknown type", func(r *Request) { r.PrimaryType = "spa" }},
		{"secondary duplicates primary", func(r *Request) {
			r.SecondaryTypes = []domain.AppointmentType{r.PrimaryType}
		}},
		{"missing time", func(r *Request) { r.ScheduledTime = "" }},
		{"negative customer id", func(r *Request) { r.CustomerID = ptr.Ptr(int64(-1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAppointmentConcurrentLastSeat(t *testing.T) {
	slot := newTestSlot()
	slot.Capacity = 1
	env := newTestEnv(slot)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	// Ровно один запрос получает последнее место
	var full, ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrSlotFull):
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, env.slots.slot.BookedCount)
	assert.Len(t, env.appointments.created, 1)
}
