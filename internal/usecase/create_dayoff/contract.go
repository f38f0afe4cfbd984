package create_dayoff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

// DayoffRepository интерфейс репозитория выходных дней
type DayoffRepository interface {
	Create(ctx context.Context, dayoff *domain.Dayoff) (*domain.Dayoff, error)
	GetByTourID(ctx context.Context, tourID int64) ([]*domain.Dayoff, error)
}

// AvailabilityCache интерфейс кэша доступности
type AvailabilityCache interface {
	BumpGeneration(ctx context.Context, tourID int64) (int64, error)
	InvalidateTour(ctx context.Context, tourID int64) error
	Set(ctx context.Context, availability *domain.Availability, generation int64, ttl time.Duration) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
