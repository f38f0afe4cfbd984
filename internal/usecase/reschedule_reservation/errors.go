package reschedule_reservation

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = domain.NewError(domain.KindInvalidInput, "reschedule_reservation: invalid input data")
