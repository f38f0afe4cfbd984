package dayoffs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/dayoffs/models"
)

// Service сервис чтения правил выходных дней
type Service struct {
	tourRepo   TourRepository
	dayoffRepo DayoffRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса выходных дней
func NewService(tourRepo TourRepository, dayoffRepo DayoffRepository, logger Logger) *Service {
	return &Service{
		tourRepo:   tourRepo,
		dayoffRepo: dayoffRepo,
		logger:     logger,
	}
}

// List возвращает правила выходных тура продавца
func (s *Service) List(ctx context.Context, sellerName string, tourID int64) (*models.DayoffListResponse, error) {
	s.logger.Info("ListDayoffs: seller=%s, tour=%d", sellerName, tourID)

	tour, err := s.tourRepo.GetBySellerAndID(ctx, sellerName, tourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("ListDayoffs: tour id=%d of seller %s not found", tourID, sellerName)
			return nil, domain.ErrTourNotFound
		}
		s.logger.Error("ListDayoffs: failed to get tour id=%d: %v", tourID, err)
		return nil, fmt.Errorf("%w: ListDayoffs - failed to get tour: %w", domain.ErrInternal, err)
	}

	dayoffs, err := s.dayoffRepo.GetByTourID(ctx, tour.ID)
	if err != nil {
		s.logger.Error("ListDayoffs: repository error for tour id=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: ListDayoffs - repository error: %w", domain.ErrInternal, err)
	}

	return models.FromDomainDayoffList(tour.ID, dayoffs), nil
}
