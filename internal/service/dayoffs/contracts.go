package dayoffs

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	GetBySellerAndID(ctx context.Context, sellerName string, id int64) (*domain.Tour, error)
}

// DayoffRepository интерфейс репозитория выходных дней
type DayoffRepository interface {
	GetByTourID(ctx context.Context, tourID int64) ([]*domain.Dayoff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
