package register_reservation

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	// GetByID внутри транзакции блокирует строку тура
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

// DayoffRepository интерфейс репозитория выходных дней
type DayoffRepository interface {
	GetByTourID(ctx context.Context, tourID int64) ([]*domain.Dayoff, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByTourAndDate(ctx context.Context, tourID int64, date string) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ReservationOutcome(operation, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
