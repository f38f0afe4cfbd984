package create_dayoff

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "create_dayoff: invalid input data")
