package events

import "time"

// Routing keys событий бронирования
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingCancelled     = "booking.cancelled"
	KeyBookingStatusChanged = "booking.status_changed"
)

// BookingEvent событие жизненного цикла бронирования.
// Контактные данные клиента в событие не попадают.
type BookingEvent struct {
	EventID     string    `json:"eventId"`
	BookingID   int64     `json:"bookingId"`
	BarberID    int64     `json:"barberId"`
	ServiceID   int64     `json:"serviceId"`
	BookingDate string    `json:"bookingDate"` // "2025-10-15"
	StartTime   string    `json:"startTime"`   // "10:00"
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}
