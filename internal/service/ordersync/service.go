package ordersync

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/ATL-AppointmentService/internal/domain"
	"github.com/m04kA/ATL-AppointmentService/internal/events"
	"github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
	"github.com/m04kA/ATL-AppointmentService/pkg/ptr"
)

// Service координатор статусов заказов
// Превращает завершение записей в предложения смены статуса заказа.
// Предложение публикуется как событие; OrderService сам решает, применять ли
// переход (персонал может вместо COMPLETED вернуть заказ в работу на доработку).
// Координатор никогда не пишет статус заказа напрямую.
type Service struct {
	orderClient OrderServiceClient
	publisher   EventPublisher
	logger      Logger
}

// NewService создает координатор статусов заказов
func NewService(orderClient OrderServiceClient, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		orderClient: orderClient,
		publisher:   publisher,
		logger:      logger,
	}
}

// OnAppointmentCompleted обрабатывает завершение записи
// Правила предложений:
//   - pickup завершен и запись привязана к заказу → предложить COMPLETED
//   - fitting завершен и заказ сейчас IN_PROGRESS → предложить FITTING
//
// Ошибки доставки события логируются и возвращаются; вызывающий код их
// игнорирует - смена статуса записи не должна зависеть от брокера
func (s *Service) OnAppointmentCompleted(ctx context.Context, a *domain.Appointment) error {
	event := events.AppointmentEvent{
		Event:         events.EventAppointmentCompleted,
		AppointmentID: a.ID,
		SlotID:        a.SlotID,
		CustomerID:    a.CustomerID,
		OrderID:       a.OrderID,
		PrimaryType:   string(a.PrimaryType),
		Status:        string(a.Status),
		OccurredAt:    time.Now().UTC(),
	}

	if a.OrderID != nil {
		if proposed := s.proposeOrderStatus(ctx, a); proposed != nil {
			event.ProposedOrderStatus = ptr.Ptr(string(*proposed))
			s.logger.Info("ordersync: appointment id=%d (%s) proposes order id=%d → %s",
				a.ID, a.PrimaryType, *a.OrderID, *proposed)
		}
	}

	return s.publisher.Publish(ctx, event)
}

// OnAppointmentCancelled обрабатывает отмену записи
// Никакого влияния на заказ не предлагается - отмена только фиксируется
// событием, чтобы OrderService мог ее залогировать
func (s *Service) OnAppointmentCancelled(ctx context.Context, a *domain.Appointment, reason *string) error {
	event := events.AppointmentEvent{
		Event:         events.EventAppointmentCancelled,
		AppointmentID: a.ID,
		SlotID:        a.SlotID,
		CustomerID:    a.CustomerID,
		OrderID:       a.OrderID,
		PrimaryType:   string(a.PrimaryType),
		Status:        string(a.Status),
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}

	return s.publisher.Publish(ctx, event)
}

// proposeOrderStatus возвращает предлагаемый статус заказа или nil
func (s *Service) proposeOrderStatus(ctx context.Context, a *domain.Appointment) *domain.OrderStatus {
	switch a.PrimaryType {
	case domain.TypePickup:
		// Выдача состоялась - заказ можно закрывать
		// Если заказ недоступен или уже терминален, предложение не имеет смысла
		order, err := s.orderClient.GetOrderWithGracefulDegradation(ctx, *a.OrderID)
		if err != nil {
			if errors.Is(err, orderservice.ErrOrderNotFound) {
				s.logger.Warn("ordersync: order id=%d not found, skipping proposal", *a.OrderID)
			}
			return nil
		}
		if order == nil {
			// OrderService недоступен: предлагаем вслепую, решение все равно за ним
			return ptr.Ptr(domain.OrderCompleted)
		}
		if domain.OrderStatus(order.Status).IsTerminal() {
			s.logger.Info("ordersync: order id=%d already %s, skipping proposal", order.ID, order.Status)
			return nil
		}
		return ptr.Ptr(domain.OrderCompleted)

	case domain.TypeFitting:
		// Примерка прошла - заказ переходит на этап примерки,
		// но только из IN_PROGRESS (повторная примерка после доработки
		// снова пройдет через IN_PROGRESS → FITTING)
		order, err := s.orderClient.GetOrderWithGracefulDegradation(ctx, *a.OrderID)
		if err != nil || order == nil {
			return nil
		}
		if domain.OrderStatus(order.Status) != domain.OrderInProgress {
			s.logger.Info("ordersync: order id=%d is %s, not IN_PROGRESS, skipping fitting proposal",
				order.ID, order.Status)
			return nil
		}
		return ptr.Ptr(domain.OrderFitting)
	}

	return nil
}
