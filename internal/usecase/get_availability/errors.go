package get_availability

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "get_availability: invalid input data")
