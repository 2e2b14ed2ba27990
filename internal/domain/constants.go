package domain

// Default slot catalog values (09:00 .. 20:30, 30-minute step, 24 slots)
const (
	DefaultOpenTime    = "09:00"
	DefaultCloseTime   = "21:00"
	DefaultStepMinutes = 30
)

// Business validation constants
const (
	MinStepMinutes = 5
	MaxStepMinutes = 240

	MaxCustomerNameLength       = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	MinPasswordLength = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых слот считается свободным
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
