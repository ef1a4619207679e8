package ordersync

import (
	"context"

	"github.com/m04kA/ATL-AppointmentService/internal/events"
	"github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
)

// OrderServiceClient интерфейс клиента для OrderService
type OrderServiceClient interface {
	GetOrderWithGracefulDegradation(ctx context.Context, orderID int64) (*orderservice.Order, error)
}

// EventPublisher интерфейс публикации событий записей
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
