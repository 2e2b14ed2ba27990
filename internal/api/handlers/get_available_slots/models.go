package get_available_slots

import (
	"time"

	"github.com/dkoval/barbershop-booking/internal/domain"
	getAvailableSlots "github.com/dkoval/barbershop-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string   `json:"date"`
	BarberID int64    `json:"barberId"`
	Slots    []string `json:"slots"` // времена начала в порядке сетки, "HH:MM"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		BarberID: resp.BarberID,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(barberID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BarberID: barberID,
		Date:     date,
	}, nil
}
