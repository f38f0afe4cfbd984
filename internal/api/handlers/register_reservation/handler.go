package register_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	msgInvalidTourID      = "некорректный ID тура"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase RegisterReservationUseCase
	logger  Logger
}

func NewHandler(useCase RegisterReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{tourId}/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("POST /reservations/{tourId}/register - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	var req RegisterReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{tourId}/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tourID))
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /reservations/{tourId}/register - Failed to register: tour_id=%d, error=%v", tourID, err)
		} else {
			h.logger.Warn("POST /reservations/{tourId}/register - Rejected: tour_id=%d, kind=%s", tourID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /reservations/{tourId}/register - Reservation registered: reservation_id=%d, status=%s",
		result.ReservationID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
