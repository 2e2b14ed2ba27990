package cancel_booking

import (
	"github.com/dkoval/barbershop-booking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(requester models.Requester) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Requester:          requester,
		CancellationReason: r.CancellationReason,
	}
}
