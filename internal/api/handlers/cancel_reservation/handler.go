package cancel_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

const (
	msgInvalidID          = "некорректный ID тура или бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{tourId}/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TourID = tourID
	req.ReservationID = reservationID

	ok, err := h.service.Cancel(r.Context(), &req)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel: reservation_id=%d, error=%v", reservationID, err)
		} else {
			h.logger.Warn("POST /reservations/{id}/cancel - Rejected: reservation_id=%d, kind=%s", reservationID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation canceled: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, CancelReservationResponse{Success: ok})
}
