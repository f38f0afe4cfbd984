package reschedule_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	msgInvalidID          = "некорректный ID тура или бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{tourId}/{reservationId}/update
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/update - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/update - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/update - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tourID, reservationID))
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /reservations/{id}/update - Failed to reschedule: reservation_id=%d, error=%v", reservationID, err)
		} else {
			h.logger.Warn("POST /reservations/{id}/update - Rejected: reservation_id=%d, kind=%s", reservationID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /reservations/{id}/update - Reschedule finished: reservation_id=%d, success=%t",
		reservationID, result.Rescheduled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
