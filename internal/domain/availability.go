package domain

import (
	"fmt"
	"time"
)

// Availability open days of a tour for one month
type Availability struct {
	TourID            int64
	TourTitle         string
	SellerName        string
	Year              int
	Month             int
	AvailableSchedule []int
}

// NewAvailability вычисляет доступные дни месяца для тура
func NewAvailability(tour *Tour, year, month int, rules []DayoffRule) *Availability {
	return &Availability{
		TourID:            tour.ID,
		TourTitle:         tour.Title,
		SellerName:        tour.SellerName,
		Year:              year,
		Month:             month,
		AvailableSchedule: ComputeAvailability(year, time.Month(month), rules),
	}
}

// AvailabilityCacheKey ключ кэша SCHEDULE:{tourId}:{year}:{month}
func AvailabilityCacheKey(tourID int64, year, month int) string {
	return fmt.Sprintf("SCHEDULE:%d:%d:%d", tourID, year, month)
}

// AvailabilityCachePattern шаблон всех месяцев тура в кэше
func AvailabilityCachePattern(tourID int64) string {
	return fmt.Sprintf("SCHEDULE:%d:*", tourID)
}

// AvailabilityGenerationKey счетчик изменений правил тура.
// Не попадает под AvailabilityCachePattern, поэтому переживает сброс кэша тура
func AvailabilityGenerationKey(tourID int64) string {
	return fmt.Sprintf("SCHEDULE_GEN:%d", tourID)
}
