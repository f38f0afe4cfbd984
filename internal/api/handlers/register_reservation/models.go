package register_reservation

import (
	registerReservation "github.com/m04kA/SMC-TourBookingService/internal/usecase/register_reservation"
)

// RegisterReservationRequest HTTP request model
type RegisterReservationRequest struct {
	Username        string `json:"username"`
	PhoneNumber     string `json:"phoneNumber"`
	ReservationDate string `json:"reservation_date"` // "2023-03-10"
}

// ReservationStatusResponse HTTP response model
type ReservationStatusResponse struct {
	ReservationID int64   `json:"reservationId"`
	Status        string  `json:"status"`
	Token         *string `json:"token,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RegisterReservationRequest) ToUseCaseRequest(tourID int64) *registerReservation.Request {
	return &registerReservation.Request{
		TourID:      tourID,
		Date:        r.ReservationDate,
		Username:    r.Username,
		PhoneNumber: r.PhoneNumber,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *registerReservation.Response) *ReservationStatusResponse {
	return &ReservationStatusResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		Token:         resp.Token,
	}
}
