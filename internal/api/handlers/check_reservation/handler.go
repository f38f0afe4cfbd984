package check_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/reservations/check
// Неизвестный токен дает 200 с пустым объектом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CheckByToken(r.Context(), &req)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("POST /reservations/check - Failed to check token: error=%v", err)
		} else {
			h.logger.Warn("POST /reservations/check - Rejected: seller=%s, kind=%s", req.SellerName, domain.KindOf(err))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /reservations/check - Checked: found=%t", !result.IsEmpty())
	handlers.RespondJSON(w, http.StatusOK, result)
}
