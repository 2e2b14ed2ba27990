package domain

import (
	"errors"
	"fmt"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

var (
	// ErrInvalidCatalog возвращается при некорректных параметрах каталога слотов
	ErrInvalidCatalog = errors.New("domain: invalid slot catalog")
)

// SlotCatalog is the fixed ordered set of bookable start times.
// Built once at startup from configuration and never mutated;
// availability is always this list minus the occupied times.
type SlotCatalog struct {
	times []types.TimeString
	index map[types.TimeString]struct{}
}

// NewSlotCatalog generates the catalog from opening time to closing time
// with a fixed step. A slot is included only if it ends no later than closeTime.
func NewSlotCatalog(openTime, closeTime types.TimeString, stepMinutes int) (*SlotCatalog, error) {
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidCatalog, err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidCatalog, err)
	}
	if stepMinutes < MinStepMinutes || stepMinutes > MaxStepMinutes {
		return nil, fmt.Errorf("%w: step must be between %d and %d minutes", ErrInvalidCatalog, MinStepMinutes, MaxStepMinutes)
	}
	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidCatalog, openTime, closeTime)
	}

	// Генерируем слоты от открытия до закрытия с фиксированным шагом
	times := make([]types.TimeString, 0)
	index := make(map[types.TimeString]struct{})

	current := openTime
	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		times = append(times, current)
		index[current] = struct{}{}
		current = slotEnd
	}

	if len(times) == 0 {
		return nil, fmt.Errorf("%w: no slots fit between %s and %s", ErrInvalidCatalog, openTime, closeTime)
	}

	return &SlotCatalog{times: times, index: index}, nil
}

// DefaultSlotCatalog returns the catalog built from the default values
func DefaultSlotCatalog() *SlotCatalog {
	catalog, err := NewSlotCatalog(
		types.TimeString(DefaultOpenTime),
		types.TimeString(DefaultCloseTime),
		DefaultStepMinutes,
	)
	if err != nil {
		// Дефолтные константы валидны, сюда попасть нельзя
		panic(err)
	}
	return catalog
}

// Times returns a copy of the catalog in order
func (c *SlotCatalog) Times() []types.TimeString {
	out := make([]types.TimeString, len(c.times))
	copy(out, c.times)
	return out
}

// Contains returns true if t is a member of the catalog
func (c *SlotCatalog) Contains(t types.TimeString) bool {
	_, ok := c.index[t]
	return ok
}

// Len returns the number of slots in the catalog
func (c *SlotCatalog) Len() int {
	return len(c.times)
}
