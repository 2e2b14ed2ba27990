package barbers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkoval/barbershop-booking/internal/api/handlers"
	"github.com/dkoval/barbershop-booking/internal/service/catalog"
	"github.com/dkoval/barbershop-booking/internal/service/catalog/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "барбер не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/barbers
// Query params: includeInactive (опционально, только для админа имеет смысл)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("includeInactive") != "true"

	result, err := h.service.ListBarbers(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /barbers - Failed to list barbers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/barbers/{barberId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.parseBarberID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetBarber(r.Context(), barberID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /barbers/{id} - Failed to get barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/barbers
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBarber(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /barbers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /barbers - Failed to create barber: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /barbers - Barber created successfully: barber_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/barbers/{barberId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.parseBarberID(w, r)
	if !ok {
		return
	}

	var req models.UpdateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateBarber(r.Context(), barberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id} - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /barbers/{id} - Failed to update barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id} - Barber updated successfully: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate DELETE /api/v1/barbers/{barberId}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.parseBarberID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeactivateBarber(r.Context(), barberID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("DELETE /barbers/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /barbers/{id} - Failed to deactivate barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /barbers/{id} - Barber deactivated successfully: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) parseBarberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid barber ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return 0, false
	}
	return barberID, true
}
