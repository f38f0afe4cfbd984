package register_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает разобранную дату
func validateRequest(req *Request) (time.Time, error) {
	if req.TourID <= 0 {
		return time.Time{}, fmt.Errorf("%w: tourId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Username) == "" || len(req.Username) > domain.MaxUsernameLength {
		return time.Time{}, fmt.Errorf("%w: username is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxUsernameLength)
	}

	if strings.TrimSpace(req.PhoneNumber) == "" || len(req.PhoneNumber) > domain.MaxPhoneNumberLength {
		return time.Time{}, fmt.Errorf("%w: phoneNumber is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxPhoneNumberLength)
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, nil
}
