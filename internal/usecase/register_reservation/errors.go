package register_reservation

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "register_reservation: invalid input data")
