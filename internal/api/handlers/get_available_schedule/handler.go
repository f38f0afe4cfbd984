package get_available_schedule

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidTourID    = "некорректный ID тура"
	msgInvalidYearMonth = "параметры year и month обязательны"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/seller/{sellerName}/{tourId}/available-schedule?year=&month=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sellerName := mux.Vars(r)["sellerName"]

	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/available-schedule - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	year, yearErr := handlers.QueryInt(r, "year")
	month, monthErr := handlers.QueryInt(r, "month")
	if yearErr != nil || monthErr != nil || year == nil || month == nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/available-schedule - Invalid year/month: %q/%q",
			r.URL.Query().Get("year"), r.URL.Query().Get("month"))
		handlers.RespondBadRequest(w, msgInvalidYearMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		SellerName: sellerName,
		TourID:     tourID,
		Year:       *year,
		Month:      *month,
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("GET /tours/seller/{sellerName}/{tourId}/available-schedule - Failed: tour_id=%d, error=%v", tourID, err)
		} else {
			h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/available-schedule - Rejected: tour_id=%d, kind=%s", tourID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
