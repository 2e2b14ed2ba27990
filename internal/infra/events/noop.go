package events

import (
	"context"

	"github.com/dkoval/barbershop-booking/internal/domain"
)

// NoopPublisher заглушка, когда публикация событий выключена в конфигурации
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) BookingCreated(ctx context.Context, b *domain.Booking) error       { return nil }
func (NoopPublisher) BookingCancelled(ctx context.Context, b *domain.Booking) error     { return nil }
func (NoopPublisher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error { return nil }
func (NoopPublisher) Close() error                                                      { return nil }
