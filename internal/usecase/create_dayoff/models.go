package create_dayoff

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// Request модель запроса на добавление выходного дня
type Request struct {
	SellerName string              // Продавец, от имени которого выполняется запрос
	TourID     int64               // ID тура
	Rule       domain.DayoffFields // Правило в плоском виде
	Year       int                 // Год пересчета доступности, 0 - текущий
	Month      int                 // Месяц пересчета доступности, 0 - месяц правила или текущий
}

// Response созданное правило и пересчитанная доступность
type Response struct {
	Dayoff       *domain.Dayoff
	Availability *domain.Availability
}
