package ordersync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/internal/events"
	"github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
)

type fakeOrderClient struct {
	order *orderservice.Order
	err   error
}

func (f *fakeOrderClient) GetOrderWithGracefulDegradation(ctx context.Context, orderID int64) (*orderservice.Order, error) {
	return f.order, f.err
}

type capturePublisher struct {
	published []events.AppointmentEvent
}

func (p *capturePublisher) Publish(ctx context.Context, event events.AppointmentEvent) error {
	p.published = append(p.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doneAppointment(primary domain.AppointmentType, orderID *int64) *domain.Appointment {
	return &domain.Appointment{
		ID:          1,
		SlotID:      2,
		CustomerID:  ptr.Ptr(int64(100)),
		OrderID:     orderID,
		PrimaryType: primary,
		Status:      domain.StatusDone,
	}
}

func TestPickupDoneProposesOrderCompleted(t *testing.T) {
	client := &fakeOrderClient{order: &orderservice.Order{ID: 7, Status: string(domain.OrderFitting)}}
	pub := &capturePublisher{}
	svc := NewService(client, pub, nopLogger{})

	err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypePickup, ptr.Ptr(int64(7))))
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	event := pub.published[0]
	assert.Equal(t, events.EventAppointmentCompleted, event.Event)
	require.NotNil(t, event.ProposedOrderStatus)
	assert.Equal(t, string(domain.OrderCompleted), *event.ProposedOrderStatus)
}

func TestPickupDoneSkipsTerminalOrder(t *testing.T) {
	client := &fakeOrderClient{order: &orderservice.Order{ID: 7, Status: string(domain.OrderCompleted)}}
	pub := &capturePublisher{}
	svc := NewService(client, pub, nopLogger{})

	err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypePickup, ptr.Ptr(int64(7))))
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Nil(t, pub.published[0].ProposedOrderStatus)
}

func TestPickupDoneProposesBlindlyWhenOrderServiceDown(t *testing.T) {
	// (nil, nil) = OrderService недоступен: решение все равно за ним
	client := &fakeOrderClient{}
	pub := &capturePublisher{}
	svc := NewService(client, pub, nopLogger{})

	err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypePickup, ptr.Ptr(int64(7))))
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	require.NotNil(t, pub.published[0].ProposedOrderStatus)
	assert.Equal(t, string(domain.OrderCompleted), *pub.published[0].ProposedOrderStatus)
}

func TestFittingDoneProposesOnlyFromInProgress(t *testing.T) {
	tests := []struct {
		orderStatus  domain.OrderStatus
		wantProposal bool
	}{
		{domain.OrderInProgress, true},
		{domain.OrderFitting, false},
		{domain.OrderConfirmed, false},
		{domain.OrderCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.orderStatus), func(t *testing.T) {
			client := &fakeOrderClient{order: &orderservice.Order{ID: 7, Status: string(tt.orderStatus)}}
			pub := &capturePublisher{}
			svc := NewService(client, pub, nopLogger{})

			err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypeFitting, ptr.Ptr(int64(7))))
			require.NoError(t, err)
			require.Len(t, pub.published, 1)

			if tt.wantProposal {
				require.NotNil(t, pub.published[0].ProposedOrderStatus)
				assert.Equal(t, string(domain.OrderFitting), *pub.published[0].ProposedOrderStatus)
			} else {
				assert.Nil(t, pub.published[0].ProposedOrderStatus)
			}
		})
	}
}

func TestConsultDoneNeverProposes(t *testing.T) {
	client := &fakeOrderClient{order: &orderservice.Order{ID: 7, Status: string(domain.OrderInProgress)}}
	pub := &capturePublisher{}
	svc := NewService(client, pub, nopLogger{})

	err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypeConsult, ptr.Ptr(int64(7))))
	require.NoError(t, err)
	require.Len(t, pub.published, 1)
	assert.Nil(t, pub.published[0].ProposedOrderStatus)
}

func TestCompletedWithoutOrderPublishesPlainEvent(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewService(&fakeOrderClient{}, pub, nopLogger{})

	err := svc.OnAppointmentCompleted(context.Background(), doneAppointment(domain.TypePickup, nil))
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Nil(t, pub.published[0].ProposedOrderStatus)
	assert.Nil(t, pub.published[0].OrderID)
}

func TestCancelledPublishesReason(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewService(&fakeOrderClient{}, pub, nopLogger{})

	a := doneAppointment(domain.TypeFitting, ptr.Ptr(int64(7)))
	a.Status = domain.StatusCancelled
	reason := "клиент заболел"

	err := svc.OnAppointmentCancelled(context.Background(), a, &reason)
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	event := pub.published[0]
	assert.Equal(t, events.EventAppointmentCancelled, event.Event)
	assert.Equal(t, &reason, event.Reason)
	assert.Nil(t, event.ProposedOrderStatus)
}
