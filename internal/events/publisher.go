package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/ATL-AppointmentService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события записей в RabbitMQ
// Ошибки публикации логируются и возвращаются, но вызывающий код их
// игнорирует: доставка события не должна ломать основной запрос
type Publisher interface {
	Publish(ctx context.Context, event AppointmentEvent) error
}

// RabbitPublisher публикует события в durable-очередь RabbitMQ
// Соединение открывается на каждую публикацию: частота событий низкая,
// а переживать обрывы соединения брокера так проще
type RabbitPublisher struct {
	url     string
	queue   string
	log     Logger
	metrics *metrics.Metrics
}

// NewRabbitPublisher создает издателя событий
// metrics может быть nil, если метрики выключены
func NewRabbitPublisher(url, queue string, log Logger, m *metrics.Metrics) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queue, log: log, metrics: m}
}

// Publish публикует событие в очередь
// Сообщения помечаются persistent, очередь объявляется durable (идемпотентно)
func (p *RabbitPublisher) Publish(ctx context.Context, event AppointmentEvent) error {
	err := p.publish(ctx, event)

	if p.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		p.metrics.EventsPublishedTotal.WithLabelValues(event.Event, status).Inc()
	}

	return err
}

func (p *RabbitPublisher) publish(ctx context.Context, event AppointmentEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("events: rabbitmq dial failed: %v", err)
		return fmt.Errorf("events: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("events: rabbitmq channel open failed: %v", err)
		return fmt.Errorf("events: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.log.Error("events: queue declare failed: %v", err)
		return fmt.Errorf("events: queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: marshal event failed: %v", err)
		return fmt.Errorf("events: marshal: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.log.Error("events: publish failed: %v", err)
		return fmt.Errorf("events: publish: %w", err)
	}

	p.log.Info("events: published %s for appointment id=%d", event.Event, event.AppointmentID)
	return nil
}

// NoopPublisher заглушка для выключенной публикации событий
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(ctx context.Context, event AppointmentEvent) error {
	return nil
}
