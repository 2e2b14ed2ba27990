package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/dkoval/barbershop-booking/internal/api/handlers"
	"github.com/dkoval/barbershop-booking/internal/api/middleware"
	"github.com/dkoval/barbershop-booking/internal/service/bookings"
	"github.com/dkoval/barbershop-booking/internal/service/bookings/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/my/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.GetCustomerBookingsRequest{
		Email: claims.Email,
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /my/bookings - Invalid input: email=%s, error=%v", claims.Email, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /my/bookings - Failed to get bookings: email=%s, error=%v", claims.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /my/bookings - Retrieved %d bookings for email=%s", len(result.Bookings), claims.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
