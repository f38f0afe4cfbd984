package create_dayoff

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует запрос и собирает правило
func validateRequest(req *Request) (domain.DayoffRule, error) {
	if req.TourID <= 0 {
		return nil, fmt.Errorf("%w: tourId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SellerName) == "" {
		return nil, fmt.Errorf("%w: sellerName is required", ErrInvalidInput)
	}

	rule, err := domain.NewDayoffRule(req.Rule)
	if err != nil {
		return nil, err
	}

	return rule, nil
}

// resolvePeriod выбирает месяц, для которого доступность пересчитывается сразу
func resolvePeriod(req *Request, rule domain.DayoffRule, now time.Time) (int, int, error) {
	year, month := req.Year, req.Month

	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		if annual, ok := rule.(domain.AnnualDateRule); ok {
			month = int(annual.Month)
		} else {
			month = int(now.Month())
		}
	}

	if err := domain.ValidateYearMonth(year, month); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return year, month, nil
}
