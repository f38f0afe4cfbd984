package create_dayoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

// UseCase use case добавления выходного дня тура
type UseCase struct {
	tourRepo     TourRepository
	dayoffRepo   DayoffRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
	ttl          time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tourRepo TourRepository,
	dayoffRepo DayoffRepository,
	cache AvailabilityCache,
	logger Logger,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		tourRepo:     tourRepo,
		dayoffRepo:   dayoffRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		ttl:          ttl,
	}
}

// Execute сохраняет правило и обновляет кэш доступности.
// Все закэшированные месяцы тура сбрасываются, запрошенный месяц пересчитывается сразу.
// Ошибки кэша логируются и не возвращаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateDayoff: seller=%s, tour=%d, kind=%s", req.SellerName, req.TourID, req.Rule.Kind)

	// 1. Валидация входных данных
	rule, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateDayoff: validation failed: %v", err)
		return nil, err
	}

	year, month, err := resolvePeriod(req, rule, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("CreateDayoff: validation failed: %v", err)
		return nil, err
	}

	// 2. Тур и владелец
	tour, err := uc.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			uc.logger.Warn("CreateDayoff: tour id=%d not found", req.TourID)
			return nil, domain.ErrTourNotFound
		}
		uc.logger.Error("CreateDayoff: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %w", domain.ErrInternal, err)
	}

	if !tour.IsOwnedBy(req.SellerName) {
		uc.logger.Warn("CreateDayoff: seller %s does not own tour id=%d", req.SellerName, tour.ID)
		return nil, domain.ErrForbidden
	}

	// 3. Сохранение правила
	created, err := uc.dayoffRepo.Create(ctx, &domain.Dayoff{TourID: tour.ID, Rule: rule})
	if err != nil {
		uc.logger.Error("CreateDayoff: failed to create dayoff for tour id=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: failed to create dayoff: %w", domain.ErrInternal, err)
	}

	// 4. Новый счетчик изменений до чтения правил: параллельные чтения
	// со старыми правилами больше не смогут записать кэш
	generation, cacheable := uc.bumpGeneration(ctx, tour.ID)

	// 5. Пересчет доступности
	dayoffs, err := uc.dayoffRepo.GetByTourID(ctx, tour.ID)
	if err != nil {
		uc.logger.Error("CreateDayoff: failed to get dayoffs for tour id=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: failed to get dayoffs: %w", domain.ErrInternal, err)
	}
	availability := domain.NewAvailability(tour, year, month, domain.RulesOf(dayoffs))

	// 6. Кэш
	uc.refreshCache(ctx, availability, generation, cacheable)

	uc.logger.Info("CreateDayoff: created dayoff id=%d for tour id=%d, %d open days in %d-%02d",
		created.ID, tour.ID, len(availability.AvailableSchedule), year, month)

	return &Response{Dayoff: created, Availability: availability}, nil
}

func (uc *UseCase) bumpGeneration(ctx context.Context, tourID int64) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}

	generation, err := uc.cache.BumpGeneration(ctx, tourID)
	if err != nil {
		uc.logger.Warn("CreateDayoff: cache generation bump failed for tour=%d: %v", tourID, err)
		return 0, false
	}
	return generation, true
}

// refreshCache сбрасывает все месяцы тура и записывает пересчитанный месяц.
// Без счетчика запись пропускается, сброс выполняется всё равно
func (uc *UseCase) refreshCache(ctx context.Context, availability *domain.Availability, generation int64, cacheable bool) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.InvalidateTour(ctx, availability.TourID); err != nil {
		uc.logger.Warn("CreateDayoff: cache invalidation failed for tour=%d: %v", availability.TourID, err)
	}
	if !cacheable {
		return
	}

	stored, err := uc.cache.Set(ctx, availability, generation, uc.ttl)
	switch {
	case err != nil:
		uc.logger.Warn("CreateDayoff: cache write failed for tour=%d: %v", availability.TourID, err)
	case !stored:
		uc.logger.Info("CreateDayoff: newer dayoff of tour=%d already changed the cache, write skipped", availability.TourID)
	}
}
