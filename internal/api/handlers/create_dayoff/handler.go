package create_dayoff

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	msgInvalidTourID      = "некорректный ID тура"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTourIDMismatch     = "ID тура в пути и в теле запроса не совпадают"
)

type Handler struct {
	useCase CreateDayoffUseCase
	logger  Logger
}

func NewHandler(useCase CreateDayoffUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tours/seller/{tourId}/dayoffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("POST /tours/seller/{tourId}/dayoffs - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	var req CreateDayoffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tours/seller/{tourId}/dayoffs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.TourID != 0 && req.TourID != tourID {
		h.logger.Warn("POST /tours/seller/{tourId}/dayoffs - Tour ID mismatch: path=%d, body=%d", tourID, req.TourID)
		handlers.RespondBadRequest(w, msgTourIDMismatch)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tourID))
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /tours/seller/{tourId}/dayoffs - Failed: tour_id=%d, error=%v", tourID, err)
		} else {
			h.logger.Warn("POST /tours/seller/{tourId}/dayoffs - Rejected: tour_id=%d, kind=%s", tourID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /tours/seller/{tourId}/dayoffs - Dayoff created: tour_id=%d, dayoff_id=%d", tourID, result.Dayoff.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
