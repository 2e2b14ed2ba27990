package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/barbershop-booking/internal/domain"
	"github.com/dkoval/barbershop-booking/pkg/types"
)

// Mock repository for testing

type mockBookingRepository struct {
	getActiveStartTimesFunc func(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error)
}

func (m *mockBookingRepository) GetActiveStartTimes(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error) {
	if m.getActiveStartTimesFunc != nil {
		return m.getActiveStartTimesFunc(ctx, date, barberID)
	}
	return nil, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mockBookingRepository) *UseCase {
	return NewUseCase(repo, domain.DefaultSlotCatalog(), noopLogger{})
}

func TestExecute_FullCatalogWhenNoBookings(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{})

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 24)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("20:30"), resp.Slots[23])
}

func TestExecute_TakenSlotsAreExcluded(t *testing.T) {
	repo := &mockBookingRepository{
		getActiveStartTimesFunc: func(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error) {
			return []types.TimeString{"10:00", "15:30"}, nil
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 22)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("15:30"))

	// Порядок сетки сохраняется
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1])
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[2])
}

func TestExecute_AllSlotsTaken(t *testing.T) {
	repo := &mockBookingRepository{
		getActiveStartTimesFunc: func(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error) {
			return domain.DefaultSlotCatalog().Times(), nil
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate})
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TimesOutsideCatalogDoNotAffectResult(t *testing.T) {
	// Времена вне сетки (например, оставшиеся от старой конфигурации)
	// не должны ломать вычитание
	repo := &mockBookingRepository{
		getActiveStartTimesFunc: func(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error) {
			return []types.TimeString{"08:00", "09:15", "22:00"}, nil
		},
	}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 24)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{})

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BarberID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &mockBookingRepository{
		getActiveStartTimesFunc: func(ctx context.Context, date time.Time, barberID int64) ([]types.TimeString, error) {
			return nil, assert.AnError
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
