package get_availability

import (
	"context"
	"time"

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

// AvailabilityCache интерфейс кэша доступности.
// Get возвращает (nil, nil) при промахе, Set не пишет запись, если generation устарел
type AvailabilityCache interface {
	Get(ctx context.Context, tourID int64, year, month int) (*domain.Availability, error)
	Generation(ctx context.Context, tourID int64) (int64, error)
	Set(ctx context.Context, availability *domain.Availability, generation int64, ttl time.Duration) (bool, error)
}

// Metrics счетчик обращений к кэшу
type Metrics interface {
	CacheLookup(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
