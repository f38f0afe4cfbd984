package reschedule_reservation

// Request модель запроса на перенос бронирования
type Request struct {
	TourID        int64  // ID тура
	ReservationID int64  // ID из пути запроса, 0 если не указан
	Username      string // Имя клиента
	PhoneNumber   string // Телефон клиента
	OriginalDate  string // Текущая дата бронирования YYYY-MM-DD
	NewDate       string // Желаемая дата YYYY-MM-DD
}

// Response результат переноса.
// Rescheduled=false: на новую дату бронирование ушло бы в ожидание, поэтому оно не изменено
type Response struct {
	Rescheduled bool
	Status      string
	Token       *string
}
