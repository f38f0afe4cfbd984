package register_reservation

import (
	"context"

	registerReservation "github.com/m04kA/SMC-TourBookingService/internal/usecase/register_reservation"
)

type RegisterReservationUseCase interface {
	Execute(ctx context.Context, req *registerReservation.Request) (*registerReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
