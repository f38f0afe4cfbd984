package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "PENDING"
	StatusApproved ReservationStatus = "APPROVED"
	StatusCanceled ReservationStatus = "CANCELED"
)

// IsValid сообщает, что статус входит в допустимый набор
func (s ReservationStatus) IsValid() bool {
	for _, status := range ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Reservation represents a customer reservation of a tour date
type Reservation struct {
	ID     int64
	TourID int64

	// Token выдается при подтверждении. После отмены может остаться устаревшее значение
	Token  *string
	Status ReservationStatus

	// Date canonical YYYY-MM-DD form, Year/Month/Day decomposed for range queries
	Date  string
	Year  int
	Month int
	Day   int

	Username    string
	PhoneNumber string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetDate заполняет строковую и разложенную форму даты
func (r *Reservation) SetDate(date time.Time) {
	r.Date = date.Format(DateFormat)
	r.Year = date.Year()
	r.Month = int(date.Month())
	r.Day = date.Day()
}

// MatchesIdentity точное сравнение данных клиента и даты
func (r *Reservation) MatchesIdentity(username, phoneNumber, date string) bool {
	return r.Username == username && r.PhoneNumber == phoneNumber && r.Date == date
}

// IsApproved returns true only for APPROVED; a canceled reservation with a stale token is not approved
func (r *Reservation) IsApproved() bool {
	return r.Status == StatusApproved
}

// IsCanceled returns true if the reservation has been canceled
func (r *Reservation) IsCanceled() bool {
	return r.Status == StatusCanceled
}

// ReservationFilter фильтр для списка бронирований тура
type ReservationFilter struct {
	TourID int64              // Обязательный параметр
	Status *ReservationStatus // опционально
	Year   *int               // опционально
	Month  *int               // опционально, учитывается вместе с Year
}

// ReservationDetails бронирование с денормализованными данными тура
type ReservationDetails struct {
	Reservation
	TourTitle  string
	SellerName string
}
