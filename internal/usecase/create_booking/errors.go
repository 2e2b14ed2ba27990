package create_booking

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrBarberNotFound    = errors.New("barber not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrSlotNotInSchedule = errors.New("start time is outside the working schedule")
	ErrDateInPast        = errors.New("booking date is in the past")
	ErrSlotTaken         = errors.New("slot is already taken")
	ErrInternal          = errors.New("internal error")
)
