package list_tour_reservations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/tours/seller/{sellerName}/{tourId}/reservations
// Query params: status, year, month (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sellerName := mux.Vars(r)["sellerName"]

	tourID, err := handlers.PathInt64(r, "tourId")
	if err != nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/reservations - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	req := &models.ListTourReservationsRequest{SellerName: sellerName, TourID: tourID}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if req.Year, err = handlers.QueryInt(r, "year"); err != nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if req.Month, err = handlers.QueryInt(r, "month"); err != nil {
		h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListTourReservations(r.Context(), req)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("GET /tours/seller/{sellerName}/{tourId}/reservations - Failed: tour_id=%d, error=%v", tourID, err)
		} else {
			h.logger.Warn("GET /tours/seller/{sellerName}/{tourId}/reservations - Rejected: tour_id=%d, kind=%s", tourID, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /tours/seller/{sellerName}/{tourId}/reservations - Reservations retrieved: tour_id=%d, count=%d",
		tourID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
