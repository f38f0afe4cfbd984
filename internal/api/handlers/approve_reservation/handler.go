package approve_reservation

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

// Handle POST /api/v1/reservations/{tourId}/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.ApproveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TourID = tourID
	req.ReservationID = reservationID

	result, err := h.service.Approve(r.Context(), &req)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /reservations/{id}/approve - Failed to approve: reservation_id=%d, error=%v", reservationID, err)
		} else {
			h.logger.Warn("POST /reservations/{id}/approve - Rejected: reservation_id=%d, kind=%s", reservationID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /reservations/{id}/approve - Reservation approved: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
