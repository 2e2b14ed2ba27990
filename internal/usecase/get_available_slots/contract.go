package get_available_slots

import (
	"context"
	"time"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveStartTimes получает времена начала активных бронирований барбера на дату
	GetActiveStartTimes(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
