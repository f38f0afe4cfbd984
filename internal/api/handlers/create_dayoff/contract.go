package create_dayoff

import (
	"context"

	createDayoff "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_dayoff"
)

type CreateDayoffUseCase interface {
	Execute(ctx context.Context, req *createDayoff.Request) (*createDayoff.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
