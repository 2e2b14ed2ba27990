package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/barbershop-booking/internal/domain"
	bookingRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/booking"
	"github.com/dkoval/barbershop-booking/internal/service/bookings/models"
	"github.com/dkoval/barbershop-booking/pkg/ptr"
)

// Mock repository for testing

type mockBookingRepository struct {
	getByIDFunc            func(ctx context.Context, id int64) (*domain.Booking, error)
	getByCustomerEmailFunc func(ctx context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error)
	listFunc               func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	updateStatusFunc       func(ctx context.Context, id int64, status domain.BookingStatus) error
	cancelFunc             func(ctx context.Context, id int64, reason string) error
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepository) GetByCustomerEmail(ctx context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if m.getByCustomerEmailFunc != nil {
		return m.getByCustomerEmailFunc(ctx, email, status)
	}
	return nil, nil
}

func (m *mockBookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) Cancel(ctx context.Context, id int64, reason string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id, reason)
	}
	return nil
}

type mockEventPublisher struct {
	cancelled     []*domain.Booking
	statusChanged []*domain.Booking
}

func (m *mockEventPublisher) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	m.cancelled = append(m.cancelled, b)
	return nil
}

func (m *mockEventPublisher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error {
	m.statusChanged = append(m.statusChanged, b)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Test helpers

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            10,
		CustomerName:  "Петр Петров",
		CustomerEmail: "petr@example.com",
		CustomerPhone: "+79991234567",
		ServiceID:     1,
		BarberID:      2,
		BookingDate:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		Status:        status,
		ServiceName:   "Стрижка",
		TotalPrice:    1500,
	}
}

func repoWith(booking *domain.Booking) *mockBookingRepository {
	return &mockBookingRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Booking, error) {
			if booking != nil && id == booking.ID {
				copied := *booking
				return &copied, nil
			}
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
}

var (
	owner    = models.Requester{Email: "petr@example.com"}
	stranger = models.Requester{Email: "someone@example.com"}
	admin    = models.Requester{Email: "admin@example.com", IsAdmin: true}
)

// Tests

func TestGetByID(t *testing.T) {
	svc := NewService(repoWith(testBooking(domain.StatusPending)), &mockEventPublisher{}, noopLogger{})

	t.Run("owner can read own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 10, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "2025-10-15", resp.BookingDate)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, models.Requester{Email: "Petr@Example.com"})
		assert.NoError(t, err)
	})

	t.Run("admin can read any booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, admin)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, stranger)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, owner)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetCustomerBookings(t *testing.T) {
	t.Run("passes status filter to repository", func(t *testing.T) {
		var gotStatus *domain.BookingStatus
		repo := &mockBookingRepository{
			getByCustomerEmailFunc: func(ctx context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error) {
				gotStatus = status
				return []*domain.Booking{testBooking(domain.StatusPending)}, nil
			},
		}
		svc := NewService(repo, &mockEventPublisher{}, noopLogger{})

		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			Email:  "petr@example.com",
			Status: ptr.Ptr("pending"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		require.NotNil(t, gotStatus)
		assert.Equal(t, domain.StatusPending, *gotStatus)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(&mockBookingRepository{}, &mockEventPublisher{}, noopLogger{})

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			Email:  "petr@example.com",
			Status: ptr.Ptr("bogus"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty email", func(t *testing.T) {
		svc := NewService(&mockBookingRepository{}, &mockEventPublisher{}, noopLogger{})

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		events := &mockEventPublisher{}
		var cancelReason string
		repo := repoWith(testBooking(domain.StatusPending))
		repo.cancelFunc = func(ctx context.Context, id int64, reason string) error {
			cancelReason = reason
			return nil
		}
		svc := NewService(repo, events, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
			Requester:          owner,
			CancellationReason: "не успеваю",
		})
		require.NoError(t, err)
		assert.Equal(t, "не успеваю", cancelReason)

		require.Len(t, events.cancelled, 1)
		assert.Equal(t, domain.StatusCancelled, events.cancelled[0].Status)
	})

	t.Run("confirmed booking can be cancelled", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusConfirmed)), &mockEventPublisher{}, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{Requester: owner})
		assert.NoError(t, err)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusCompleted)), &mockEventPublisher{}, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{Requester: owner})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusCancelled)), &mockEventPublisher{}, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{Requester: owner})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		events := &mockEventPublisher{}
		svc := NewService(repoWith(testBooking(domain.StatusPending)), events, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{Requester: stranger})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, events.cancelled)
	})

	t.Run("admin cancels foreign booking", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusPending)), &mockEventPublisher{}, noopLogger{})

		err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{Requester: admin})
		assert.NoError(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		events := &mockEventPublisher{}
		var gotStatus domain.BookingStatus
		repo := repoWith(testBooking(domain.StatusPending))
		repo.updateStatusFunc = func(ctx context.Context, id int64, status domain.BookingStatus) error {
			gotStatus = status
			return nil
		}
		svc := NewService(repo, events, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, gotStatus)

		require.Len(t, events.statusChanged, 1)
		assert.Equal(t, domain.StatusConfirmed, events.statusChanged[0].Status)
	})

	t.Run("confirmed to completed", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusConfirmed)), &mockEventPublisher{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Status: "completed"})
		assert.NoError(t, err)
	})

	t.Run("pending to completed is rejected", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusPending)), &mockEventPublisher{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal statuses are frozen", func(t *testing.T) {
		for _, from := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
			svc := NewService(repoWith(testBooking(from)), &mockEventPublisher{}, noopLogger{})

			for _, to := range []string{"pending", "confirmed", "completed", "cancelled"} {
				err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Status: to})
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewService(repoWith(testBooking(domain.StatusPending)), &mockEventPublisher{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{Status: "bogus"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc := NewService(repoWith(nil), &mockEventPublisher{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "confirmed"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("converts filter", func(t *testing.T) {
		var gotFilter domain.BookingsFilter
		repo := &mockBookingRepository{
			listFunc: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
				gotFilter = filter
				return nil, nil
			},
		}
		svc := NewService(repo, &mockEventPublisher{}, noopLogger{})

		date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Date:            &date,
			BarberID:        ptr.Ptr(int64(2)),
			Status:          ptr.Ptr("confirmed"),
			IncludeInactive: true,
		})
		require.NoError(t, err)

		require.NotNil(t, gotFilter.Date)
		assert.Equal(t, date, *gotFilter.Date)
		require.NotNil(t, gotFilter.BarberID)
		assert.Equal(t, int64(2), *gotFilter.BarberID)
		require.NotNil(t, gotFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *gotFilter.Status)
		assert.True(t, gotFilter.IncludeInactive)
	})

	t.Run("invalid status in filter", func(t *testing.T) {
		svc := NewService(&mockBookingRepository{}, &mockEventPublisher{}, noopLogger{})

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("bogus")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		svc := NewService(&mockBookingRepository{}, &mockEventPublisher{}, noopLogger{})

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})
}
