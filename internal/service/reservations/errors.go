package reservations

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "reservations: invalid input data")

	// ErrInvalidStatus возвращается при неизвестном статусе в фильтре
	ErrInvalidStatus = domain.NewError(domain.KindInvalidInput, "reservations: invalid reservation status")
)
