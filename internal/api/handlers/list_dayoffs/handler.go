package list_dayoffs

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const msgInvalidTourID = "некорректный ID тура"

type Handler struct {
	service DayoffService
	logger  Logger
}

func NewHandler(service DayoffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/seller/{sellerName}/{tourId}/dayoffs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sellerName := mux.Vars(r)["sellerName"]

	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/dayoffs - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	result, err := h.service.List(r.Context(), sellerName, tourID)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("GET /tours/seller/{sellerName}/{tourId}/dayoffs - Failed: tour_id=%d, error=%v", tourID, err)
		} else {
			h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/dayoffs - Rejected: tour_id=%d, kind=%s", tourID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
