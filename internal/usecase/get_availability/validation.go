package get_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TourID <= 0 {
		return fmt.Errorf("%w: tourId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SellerName) == "" {
		return fmt.Errorf("%w: sellerName is required", ErrInvalidInput)
	}

	if err := domain.ValidateYearMonth(req.Year, req.Month); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
