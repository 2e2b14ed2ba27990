package get_available_slots

import (
	"context"
	"fmt"

	"github.com/dkoval/barbershop-booking/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo BookingRepository
	catalog     *domain.SlotCatalog
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, catalog *domain.SlotCatalog, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Для барбера без бронирований (в том числе несуществующего) возвращается полная сетка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s",
		req.BarberID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем времена начала активных бронирований барбера на дату
	taken, err := uc.bookingRepo.GetActiveStartTimes(ctx, req.Date, req.BarberID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get active bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
	}

	// 3. Вычитаем занятые времена из сетки слотов
	slots := filterFreeSlots(uc.catalog, taken)

	uc.logger.Info("GetAvailableSlots: %d/%d slots free for barber=%d, date=%s",
		len(slots), uc.catalog.Len(), req.BarberID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:     req.Date,
		BarberID: req.BarberID,
		Slots:    slots,
	}, nil
}
