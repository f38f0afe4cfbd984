package reschedule_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает новую дату
func validateRequest(req *Request) (time.Time, error) {
	if req.TourID <= 0 {
		return time.Time{}, fmt.Errorf("%w: tourId must be positive", ErrInvalidInput)
	}

	if req.ReservationID < 0 {
		return time.Time{}, fmt.Errorf("%w: reservationId must not be negative", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		return time.Time{}, fmt.Errorf("%w: username and phoneNumber are required", ErrInvalidInput)
	}

	if _, err := domain.ParseDate(req.OriginalDate); err != nil {
		return time.Time{}, fmt.Errorf("%w: original_reservation_date: %v", ErrInvalidInput, err)
	}

	newDate, err := domain.ParseDate(req.NewDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: update_reservation_date: %v", ErrInvalidInput, err)
	}

	return newDate, nil
}
