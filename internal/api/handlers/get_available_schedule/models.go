package get_available_schedule

import (
	getAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_availability"
)

// AvailableScheduleResponse HTTP response model
type AvailableScheduleResponse struct {
	TourID            int64  `json:"tourId"`
	TourTitle         string `json:"tourTitle"`
	SellerName        string `json:"sellerName"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	AvailableSchedule []int  `json:"availableSchedule"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailableScheduleResponse {
	return &AvailableScheduleResponse{
		TourID:            resp.TourID,
		TourTitle:         resp.TourTitle,
		SellerName:        resp.SellerName,
		Year:              resp.Year,
		Month:             resp.Month,
		AvailableSchedule: resp.AvailableSchedule,
	}
}
