package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkoval/barbershop-booking/internal/domain"
	barberRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/barber"
	bookingRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/booking"
	serviceRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	catalog      *domain.SlotCatalog
	txManager    TransactionManager
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	catalog *domain.SlotCatalog,
	txManager TransactionManager,
	events EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		catalog:      catalog,
		txManager:    txManager,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s",
		req.BarberID, req.ServiceID, req.BookingDate.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что время попадает в сетку слотов
	if !uc.catalog.Contains(req.StartTime) {
		uc.logger.Warn("CreateBooking: startTime=%s is not in the slot schedule", req.StartTime)
		return nil, ErrSlotNotInSchedule
	}

	// 3. Валидация даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.BookingDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем барбера
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsActive {
		uc.logger.Warn("CreateBooking: barber id=%d is not active", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 5. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем занятость слота с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.FindActive(txCtx, req.BookingDate, req.StartTime, req.BarberID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
		}
		if existing != nil {
			// Не раскрываем данные существующего бронирования
			uc.logger.Warn("CreateBooking: slot %s %s barber=%d is taken",
				req.BookingDate.Format(domain.DateFormat), req.StartTime, req.BarberID)
			return ErrSlotTaken
		}

		// 6.2. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: normalizeEmail(req.CustomerEmail),
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			ServiceID:     req.ServiceID,
			BarberID:      req.BarberID,
			BookingDate:   req.BookingDate,
			StartTime:     req.StartTime,
			Status:        domain.StatusPending,
			ServiceName:   service.Name,
			TotalPrice:    service.Price,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Частичный уникальный индекс — вторая линия защиты от гонки
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken (unique index), date=%s time=%s barber=%d",
					req.BookingDate.Format(domain.DateFormat), req.StartTime, req.BarberID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Публикуем событие после коммита; ошибка публикации не отменяет бронирование
	if pubErr := uc.events.BookingCreated(ctx, result); pubErr != nil {
		uc.logger.Error("CreateBooking: failed to publish booking.created event for id=%d: %v", result.ID, pubErr)
	}

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		ServiceID:     result.ServiceID,
		BarberID:      result.BarberID,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		ServiceName:   result.ServiceName,
		TotalPrice:    result.TotalPrice,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// normalizeEmail приводит email к нижнему регистру без пробелов по краям
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
