package get_available_slots

import (
	"time"

	"github.com/dkoval/barbershop-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BarberID int64     // ID барбера
	Date     time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time          // Дата, на которую запрашивались слоты
	BarberID int64              // ID барбера
	Slots    []types.TimeString // Свободные времена начала в порядке сетки
}
