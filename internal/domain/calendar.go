package domain

import (
	"fmt"
	"time"
)

// IsBlocked reports whether any rule matches the date.
// Only the calendar date is considered; time of day and location are ignored.
func IsBlocked(date time.Time, rules []DayoffRule) bool {
	for _, rule := range rules {
		if matches(rule, date) {
			return true
		}
	}
	return false
}

func matches(rule DayoffRule, date time.Time) bool {
	switch r := rule.(type) {
	case AnnualDateRule:
		return date.Month() == r.Month && date.Day() == r.Day
	case WeeklyRule:
		return date.Weekday() == r.Weekday
	default:
		panic(fmt.Sprintf("domain: unknown dayoff rule %T", rule))
	}
}

// ComputeAvailability returns the ascending days of the month not blocked by any rule
func ComputeAvailability(year int, month time.Month, rules []DayoffRule) []int {
	applicable := rulesForMonth(month, rules)

	days := DaysInMonth(year, month)
	available := make([]int, 0, days)
	for day := 1; day <= days; day++ {
		if !IsBlocked(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), applicable) {
			available = append(available, day)
		}
	}
	return available
}

// rulesForMonth отбрасывает годовые правила других месяцев, недельные правила сохраняются всегда
func rulesForMonth(month time.Month, rules []DayoffRule) []DayoffRule {
	filtered := make([]DayoffRule, 0, len(rules))
	for _, rule := range rules {
		if annual, ok := rule.(AnnualDateRule); ok && annual.Month != month {
			continue
		}
		filtered = append(filtered, rule)
	}
	return filtered
}

// DaysInMonth number of days in the month, leap years included
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate разбирает дату в формате YYYY-MM-DD (UTC, полночь)
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, value)
	}
	return date, nil
}

// DaysBetween whole days from today's calendar date to the target date.
// Negative when the target is in the past.
func DaysBetween(today, target time.Time) int {
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ValidateYearMonth проверяет диапазон года и месяца запроса
func ValidateYearMonth(year, month int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidInput, month)
	}
	return nil
}
