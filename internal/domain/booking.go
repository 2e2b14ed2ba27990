package domain

import (
	"time"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// statusTransitions defines the allowed status transitions.
// completed and cancelled are terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a single appointment in the barbershop.
// Customer contact fields are denormalized at booking time and do not
// reference a user account; the service name and price are captured
// from the service row so history survives catalog edits.
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceID     int64
	BarberID      int64
	BookingDate   time.Time
	StartTime     types.TimeString
	Status        BookingStatus
	Notes         *string

	// Denormalized data for history
	ServiceName string
	TotalPrice  float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// BookingsFilter фильтр для выборки бронирований (административный список)
type BookingsFilter struct {
	Date            *time.Time     // Конкретная дата (опционально)
	BarberID        *int64         // Фильтр по барберу (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые бронирования
}
