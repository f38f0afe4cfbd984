package reschedule_reservation

import (
	rescheduleReservation "github.com/m04kA/SMC-TourBookingService/internal/usecase/reschedule_reservation"
)

// RescheduleReservationRequest HTTP request model
type RescheduleReservationRequest struct {
	Username                string `json:"username"`
	PhoneNumber             string `json:"phoneNumber"`
	OriginalReservationDate string `json:"original_reservation_date"`
	UpdateReservationDate   string `json:"update_reservation_date"`
}

// RescheduleReservationResponse HTTP response model.
// success=false: на новую дату мест нет, бронирование не изменено
type RescheduleReservationResponse struct {
	Success bool    `json:"success"`
	Status  string  `json:"status"`
	Token   *string `json:"token,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleReservationRequest) ToUseCaseRequest(tourID, reservationID int64) *rescheduleReservation.Request {
	return &rescheduleReservation.Request{
		TourID:        tourID,
		ReservationID: reservationID,
		Username:      r.Username,
		PhoneNumber:   r.PhoneNumber,
		OriginalDate:  r.OriginalReservationDate,
		NewDate:       r.UpdateReservationDate,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *RescheduleReservationResponse {
	return &RescheduleReservationResponse{
		Success: resp.Rescheduled,
		Status:  resp.Status,
		Token:   resp.Token,
	}
}
