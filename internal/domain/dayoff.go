package domain

import (
	"fmt"
	"time"
)

// DayoffKind discriminant of a day-off rule as persisted and exchanged over the API
type DayoffKind string

const (
	DayoffAnnualDate DayoffKind = "ANNUAL_DATE"
	DayoffWeekly     DayoffKind = "WEEKLY"
)

// ErrInvalidDayoffRule возвращается при некорректных полях правила
var ErrInvalidDayoffRule = NewError(KindInvalidInput, "invalid dayoff rule")

// DayoffRule recurring exclusion on a tour calendar.
// Implemented only by AnnualDateRule and WeeklyRule.
type DayoffRule interface {
	Kind() DayoffKind
	Validate() error
	isDayoffRule()
}

// AnnualDateRule blocks the same month and day every year
type AnnualDateRule struct {
	Month time.Month
	Day   int
}

func (AnnualDateRule) Kind() DayoffKind { return DayoffAnnualDate }
func (AnnualDateRule) isDayoffRule()    {}

// Validate допускает 29 февраля: правило срабатывает только в високосные годы
func (r AnnualDateRule) Validate() error {
	if r.Month < time.January || r.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDayoffRule, r.Month)
	}
	if r.Day < 1 || r.Day > DaysInMonth(2000, r.Month) {
		return fmt.Errorf("%w: day %d out of range for %s", ErrInvalidDayoffRule, r.Day, r.Month)
	}
	return nil
}

// WeeklyRule blocks one weekday every week
type WeeklyRule struct {
	Weekday time.Weekday
}

func (WeeklyRule) Kind() DayoffKind { return DayoffWeekly }
func (WeeklyRule) isDayoffRule()    {}

func (r WeeklyRule) Validate() error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidDayoffRule, r.Weekday)
	}
	return nil
}

// Dayoff persisted day-off rule of a tour
type Dayoff struct {
	ID        int64
	TourID    int64
	Rule      DayoffRule
	CreatedAt time.Time
}

// DayoffFields плоское представление правила: заполнены только поля его вида
type DayoffFields struct {
	Kind    DayoffKind
	Month   *int
	Day     *int
	Weekday *int
}

// NewDayoffRule собирает правило из плоских полей и валидирует его
func NewDayoffRule(f DayoffFields) (DayoffRule, error) {
	var rule DayoffRule

	switch f.Kind {
	case DayoffAnnualDate:
		if f.Month == nil || f.Day == nil {
			return nil, fmt.Errorf("%w: %s requires month and day", ErrInvalidDayoffRule, f.Kind)
		}
		rule = AnnualDateRule{Month: time.Month(*f.Month), Day: *f.Day}
	case DayoffWeekly:
		if f.Weekday == nil {
			return nil, fmt.Errorf("%w: %s requires weekday", ErrInvalidDayoffRule, f.Kind)
		}
		rule = WeeklyRule{Weekday: time.Weekday(*f.Weekday)}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDayoffRule, f.Kind)
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

// FieldsOf обратное преобразование для хранения и ответов API
func FieldsOf(rule DayoffRule) DayoffFields {
	switch r := rule.(type) {
	case AnnualDateRule:
		month, day := int(r.Month), r.Day
		return DayoffFields{Kind: DayoffAnnualDate, Month: &month, Day: &day}
	case WeeklyRule:
		weekday := int(r.Weekday)
		return DayoffFields{Kind: DayoffWeekly, Weekday: &weekday}
	default:
		panic(fmt.Sprintf("domain: unknown dayoff rule %T", rule))
	}
}

// RulesOf извлекает правила из списка выходных
func RulesOf(dayoffs []*Dayoff) []DayoffRule {
	rules := make([]DayoffRule, 0, len(dayoffs))
	for _, d := range dayoffs {
		rules = append(rules, d.Rule)
	}
	return rules
}
