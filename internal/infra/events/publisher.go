package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dkoval/barbershop-booking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирования в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   Logger
}

// NewPublisher подключается к RabbitMQ и декларирует durable topic exchange
func NewPublisher(url, exchange string, logger Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// BookingCreated публикует событие создания бронирования
func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, KeyBookingCreated, b)
}

// BookingCancelled публикует событие отмены бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, KeyBookingCancelled, b)
}

// BookingStatusChanged публикует событие смены статуса бронирования
func (p *Publisher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, KeyBookingStatusChanged, b)
}

func (p *Publisher) publish(ctx context.Context, key string, b *domain.Booking) error {
	event := BookingEvent{
		EventID:     uuid.NewString(),
		BookingID:   b.ID,
		BarberID:    b.BarberID,
		ServiceID:   b.ServiceID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		Status:      string(b.Status),
		OccurredAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", key, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("events: publish %s: %w", key, err)
	}

	p.logger.Info("events: published %s booking_id=%d event_id=%s", key, b.ID, event.EventID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
