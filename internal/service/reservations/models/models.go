package models

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Request модели

// ApproveRequest запрос продавца на подтверждение бронирования
type ApproveRequest struct {
	TourID        int64  `json:"-"`
	ReservationID int64  `json:"-"`
	SellerName    string `json:"sellerName"`
}

// CancelRequest запрос клиента на отмену бронирования
type CancelRequest struct {
	TourID          int64  `json:"-"`
	ReservationID   int64  `json:"-"`
	Username        string `json:"username"`
	PhoneNumber     string `json:"phoneNumber"`
	ReservationDate string `json:"reservation_date"`
}

// CheckRequest запрос статуса бронирования по токену
type CheckRequest struct {
	Token      string `json:"token"`
	SellerName string `json:"sellerName"`
}

// ListTourReservationsRequest запрос списка бронирований тура
type ListTourReservationsRequest struct {
	SellerName string
	TourID     int64
	Status     *string // опционально
	Year       *int    // опционально
	Month      *int    // опционально, вместе с Year
}

// Response модели

// StatusResponse статус бронирования и токен
type StatusResponse struct {
	Status string  `json:"status"`
	Token  *string `json:"token,omitempty"`
}

// CheckResponse результат проверки токена. Пустой, если токен не найден
type CheckResponse struct {
	Token           string `json:"token,omitempty"`
	SellerName      string `json:"sellerName,omitempty"`
	Status          string `json:"status,omitempty"`
	ReservationDate string `json:"reservationDate,omitempty"`
	TourTitle       string `json:"tourTitle,omitempty"`
}

// IsEmpty сообщает, что бронирование по токену не найдено
func (r *CheckResponse) IsEmpty() bool {
	return r.Status == ""
}

// ReservationResponse бронирование в списке продавца
type ReservationResponse struct {
	ID              int64     `json:"id"`
	TourID          int64     `json:"tourId"`
	Status          string    `json:"status"`
	Token           *string   `json:"token,omitempty"`
	ReservationDate string    `json:"reservation_date"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	Day             int       `json:"date"`
	Username        string    `json:"username"`
	PhoneNumber     string    `json:"phoneNumber"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainCheck конвертирует найденное бронирование в ответ проверки токена
func FromDomainCheck(d *domain.ReservationDetails, token string) *CheckResponse {
	return &CheckResponse{
		Token:           token,
		SellerName:      d.SellerName,
		Status:          string(d.Status),
		ReservationDate: d.Date,
		TourTitle:       d.TourTitle,
	}
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		TourID:          r.TourID,
		Status:          string(r.Status),
		Token:           r.Token,
		ReservationDate: r.Date,
		Year:            r.Year,
		Month:           r.Month,
		Day:             r.Day,
		Username:        r.Username,
		PhoneNumber:     r.PhoneNumber,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}
