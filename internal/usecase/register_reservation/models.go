package register_reservation

// Request модель запроса на регистрацию бронирования
type Request struct {
	TourID      int64  // ID тура
	Date        string // Дата в формате YYYY-MM-DD
	Username    string // Имя клиента
	PhoneNumber string // Телефон клиента
}

// Response модель ответа
type Response struct {
	ReservationID int64
	Status        string
	Token         *string // только для APPROVED
}
