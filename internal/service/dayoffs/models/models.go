package models

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// DayoffResponse правило выходного дня.
// Для ANNUAL_DATE заполнены month и date, для WEEKLY - day (0 = воскресенье)
type DayoffResponse struct {
	ID        int64     `json:"id"`
	TourID    int64     `json:"tourId"`
	Type      string    `json:"type"`
	Month     *int      `json:"month,omitempty"`
	Date      *int      `json:"date,omitempty"`
	Day       *int      `json:"day,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayoffListResponse ответ со списком правил тура
type DayoffListResponse struct {
	TourID  int64            `json:"tourId"`
	Dayoffs []DayoffResponse `json:"dayoffs"`
}

// FromDomainDayoff конвертирует domain модель в DTO
func FromDomainDayoff(d *domain.Dayoff) DayoffResponse {
	fields := domain.FieldsOf(d.Rule)
	return DayoffResponse{
		ID:        d.ID,
		TourID:    d.TourID,
		Type:      string(fields.Kind),
		Month:     fields.Month,
		Date:      fields.Day,
		Day:       fields.Weekday,
		CreatedAt: d.CreatedAt,
	}
}

// FromDomainDayoffList конвертирует список domain моделей в DTO
func FromDomainDayoffList(tourID int64, dayoffs []*domain.Dayoff) *DayoffListResponse {
	resp := &DayoffListResponse{
		TourID:  tourID,
		Dayoffs: make([]DayoffResponse, 0, len(dayoffs)),
	}
	for _, d := range dayoffs {
		resp.Dayoffs = append(resp.Dayoffs, FromDomainDayoff(d))
	}
	return resp
}
