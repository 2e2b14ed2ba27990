package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

func TestDefaultSlotCatalog(t *testing.T) {
	catalog := DefaultSlotCatalog()

	// 09:00 .. 20:30 с шагом 30 минут = 24 слота
	require.Equal(t, 24, catalog.Len())

	times := catalog.Times()
	assert.Equal(t, types.TimeString("09:00"), times[0])
	assert.Equal(t, types.TimeString("09:30"), times[1])
	assert.Equal(t, types.TimeString("20:30"), times[len(times)-1])

	// 21:00 не входит: слот должен заканчиваться не позже закрытия
	assert.False(t, catalog.Contains("21:00"))
	assert.True(t, catalog.Contains("09:00"))
	assert.True(t, catalog.Contains("20:30"))
	assert.False(t, catalog.Contains("09:15"))
	assert.False(t, catalog.Contains("08:30"))
}

func TestNewSlotCatalog(t *testing.T) {
	t.Run("hour step", func(t *testing.T) {
		catalog, err := NewSlotCatalog("10:00", "14:00", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00", "13:00"}, catalog.Times())
	})

	t.Run("last slot must end by close time", func(t *testing.T) {
		// 45-минутные слоты в окне 10:00-12:00: 10:00 и 10:45; слот 11:30
		// закончился бы в 12:15 и потому не входит
		catalog, err := NewSlotCatalog("10:00", "12:00", 45)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"10:00", "10:45"}, catalog.Times())
	})

	t.Run("open after close", func(t *testing.T) {
		_, err := NewSlotCatalog("21:00", "09:00", 30)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("open equals close", func(t *testing.T) {
		_, err := NewSlotCatalog("09:00", "09:00", 30)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("invalid open time", func(t *testing.T) {
		_, err := NewSlotCatalog("9am", "21:00", 30)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("step out of range", func(t *testing.T) {
		_, err := NewSlotCatalog("09:00", "21:00", 0)
		assert.ErrorIs(t, err, ErrInvalidCatalog)

		_, err = NewSlotCatalog("09:00", "21:00", 600)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("window too small for step", func(t *testing.T) {
		_, err := NewSlotCatalog("09:00", "09:20", 30)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestSlotCatalog_TimesReturnsCopy(t *testing.T) {
	catalog := DefaultSlotCatalog()

	times := catalog.Times()
	times[0] = "00:00"

	assert.Equal(t, types.TimeString("09:00"), catalog.Times()[0])
}
