package list_dayoffs

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/dayoffs/models"
)

type DayoffService interface {
	List(ctx context.Context, sellerName string, tourID int64) (*models.DayoffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
