package get_availability

// Request модель запроса доступных дней тура
type Request struct {
	SellerName string // Имя продавца из пути запроса
	TourID     int64  // ID тура
	Year       int    // Год
	Month      int    // Месяц 1..12
}

// Response доступные дни месяца
type Response struct {
	TourID            int64
	TourTitle         string
	SellerName        string
	Year              int
	Month             int
	AvailableSchedule []int // Номера дней по возрастанию
}
