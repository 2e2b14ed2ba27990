package domain

import "time"

// Barber represents a barber offered for booking
type Barber struct {
	ID        int64
	Name      string
	Specialty *string
	Bio       *string
	PhotoURL  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
