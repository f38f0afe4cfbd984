package approve_reservation

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Approve(ctx context.Context, req *models.ApproveRequest) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
