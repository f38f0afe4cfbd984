package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	GetDetailsByToken(ctx context.Context, token string) (*domain.ReservationDetails, error)
	ListByTour(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	GetBySellerAndID(ctx context.Context, sellerName string, id int64) (*domain.Tour, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ReservationOutcome(operation, status string)
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
