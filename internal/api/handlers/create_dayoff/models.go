package create_dayoff

import (
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	dayoffModels "github.com/m04kA/SMC-TourBookingService/internal/service/dayoffs/models"
	createDayoff "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_dayoff"
)

// typeDate прежнее имя ANNUAL_DATE в API
const typeDate = "DATE"

// CreateDayoffRequest HTTP request model.
// ANNUAL_DATE (или DATE): month + date; WEEKLY: day (0 = воскресенье).
// year и month также задают месяц, доступность которого пересчитывается сразу
type CreateDayoffRequest struct {
	SellerName string `json:"sellerName"`
	TourID     int64  `json:"tourId,omitempty"`
	Type       string `json:"type"`
	Month      *int   `json:"month,omitempty"`
	Date       *int   `json:"date,omitempty"`
	Day        *int   `json:"day,omitempty"`
	Year       *int   `json:"year,omitempty"`
}

// CreateDayoffResponse HTTP response model
type CreateDayoffResponse struct {
	Dayoff            dayoffModels.DayoffResponse `json:"dayoff"`
	Year              int                         `json:"year"`
	Month             int                         `json:"month"`
	AvailableSchedule []int                       `json:"availableSchedule"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateDayoffRequest) ToUseCaseRequest(tourID int64) *createDayoff.Request {
	kind := domain.DayoffKind(strings.ToUpper(r.Type))
	if kind == typeDate {
		kind = domain.DayoffAnnualDate
	}

	req := &createDayoff.Request{
		SellerName: r.SellerName,
		TourID:     tourID,
		Rule: domain.DayoffFields{
			Kind:    kind,
			Month:   r.Month,
			Day:     r.Date,
			Weekday: r.Day,
		},
	}
	if r.Year != nil {
		req.Year = *r.Year
	}
	if r.Month != nil {
		req.Month = *r.Month
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createDayoff.Response) *CreateDayoffResponse {
	return &CreateDayoffResponse{
		Dayoff:            dayoffModels.FromDomainDayoff(resp.Dayoff),
		Year:              resp.Availability.Year,
		Month:             resp.Availability.Month,
		AvailableSchedule: resp.Availability.AvailableSchedule,
	}
}
