package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval/barbershop-booking/internal/domain"
	barberRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/barber"
	bookingRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/booking"
	"github.com/dkoval/barbershop-booking/pkg/ptr"
	"github.com/dkoval/barbershop-booking/pkg/types"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc     func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	findActiveFunc func(ctx context.Context, date time.Time, startTime types.TimeString, barberID int64) (*domain.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	created := *booking
	created.ID = 1
	return &created, nil
}

func (m *mockBookingRepository) FindActive(ctx context.Context, date time.Time, startTime types.TimeString, barberID int64) (*domain.Booking, error) {
	if m.findActiveFunc != nil {
		return m.findActiveFunc(ctx, date, startTime, barberID)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type mockBarberRepository struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Barber, error)
}

func (m *mockBarberRepository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.Barber{ID: id, Name: "Иван", IsActive: true}, nil
}

type mockServiceRepository struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Service, error)
}

func (m *mockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &domain.Service{ID: id, Name: "Стрижка", Price: 1500, DurationMinutes: 30, IsActive: true}, nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockEventPublisher struct {
	created []*domain.Booking
	err     error
}

func (m *mockEventPublisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	m.created = append(m.created, b)
	return m.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Test helpers

var testNow = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func newTestUseCase(
	bookings *mockBookingRepository,
	barbers *mockBarberRepository,
	services *mockServiceRepository,
	events *mockEventPublisher,
) *UseCase {
	uc := NewUseCase(
		bookings,
		barbers,
		services,
		domain.DefaultSlotCatalog(),
		&mockTxManager{},
		events,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Петр Петров",
		CustomerEmail: "petr@example.com",
		CustomerPhone: "+79991234567",
		ServiceID:     1,
		BarberID:      2,
		BookingDate:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
	}
}

// Tests

func TestExecute_Success(t *testing.T) {
	events := &mockEventPublisher{}
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, events)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	// Событие опубликовано после создания
	require.Len(t, events.created, 1)
	assert.Equal(t, int64(1), events.created[0].ID)
}

func TestExecute_NormalizesCustomerFields(t *testing.T) {
	var saved *domain.Booking
	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			saved = booking
			created := *booking
			created.ID = 7
			return &created, nil
		},
	}
	uc := newTestUseCase(bookings, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	req := validRequest()
	req.CustomerName = "  Петр Петров  "
	req.CustomerEmail = " Petr@Example.COM "

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "Петр Петров", saved.CustomerName)
	assert.Equal(t, "petr@example.com", saved.CustomerEmail)
}

func TestExecute_SlotTaken(t *testing.T) {
	existing := &domain.Booking{ID: 99, Status: domain.StatusConfirmed, CustomerEmail: "other@example.com"}
	bookings := &mockBookingRepository{
		findActiveFunc: func(ctx context.Context, date time.Time, startTime types.TimeString, barberID int64) (*domain.Booking, error) {
			return existing, nil
		},
	}
	events := &mockEventPublisher{}
	uc := newTestUseCase(bookings, &mockBarberRepository{}, &mockServiceRepository{}, events)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)

	// Данные занявшего слот клиента не попадают в ошибку
	assert.NotContains(t, err.Error(), "other@example.com")
	assert.Empty(t, events.created)
}

func TestExecute_SlotTakenByUniqueIndex(t *testing.T) {
	// Гонка: FindActive не увидел конкурента, но вставка уперлась в индекс
	bookings := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		},
	}
	uc := newTestUseCase(bookings, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_SlotNotInSchedule(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	tests := []types.TimeString{"09:15", "08:30", "21:00", "23:59"}
	for _, startTime := range tests {
		req := validRequest()
		req.StartTime = startTime

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotInSchedule, "time %s", startTime)
	}
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	req := validRequest()
	req.BookingDate = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_SameDayIsAllowed(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	req := validRequest()
	req.BookingDate = testNow

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BarberNotFound(t *testing.T) {
	barbers := &mockBarberRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Barber, error) {
			return nil, barberRepo.ErrBarberNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepository{}, barbers, &mockServiceRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InactiveBarber(t *testing.T) {
	barbers := &mockBarberRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Barber, error) {
			return &domain.Barber{ID: id, Name: "Иван", IsActive: false}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepository{}, barbers, &mockServiceRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	services := &mockServiceRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.Service, error) {
			return &domain.Service{ID: id, Name: "Стрижка", IsActive: false}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, services, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, &mockEventPublisher{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"empty name", func(req *Request) { req.CustomerName = "  " }},
		{"empty email", func(req *Request) { req.CustomerEmail = "" }},
		{"email without at sign", func(req *Request) { req.CustomerEmail = "not-an-email" }},
		{"empty phone", func(req *Request) { req.CustomerPhone = "" }},
		{"zero service id", func(req *Request) { req.ServiceID = 0 }},
		{"negative barber id", func(req *Request) { req.BarberID = -1 }},
		{"zero date", func(req *Request) { req.BookingDate = time.Time{} }},
		{"empty start time", func(req *Request) { req.StartTime = "" }},
		{"malformed start time", func(req *Request) { req.StartTime = "9am" }},
		{"notes too long", func(req *Request) {
			long := make([]byte, domain.MaxNotesLength+1)
			for i := range long {
				long[i] = 'a'
			}
			req.Notes = ptr.Ptr(string(long))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	events := &mockEventPublisher{err: assert.AnError}
	uc := newTestUseCase(&mockBookingRepository{}, &mockBarberRepository{}, &mockServiceRepository{}, events)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}
