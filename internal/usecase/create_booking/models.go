package create_booking

import (
	"time"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceID     int64
	BarberID      int64
	BookingDate   time.Time
	StartTime     types.TimeString
	Notes         *string
}

// Response результат создания бронирования
type Response struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceID     int64
	BarberID      int64
	BookingDate   time.Time
	StartTime     types.TimeString
	Status        string
	ServiceName   string
	TotalPrice    float64
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
