package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

// UseCase use case получения доступных дней тура за месяц
type UseCase struct {
	tourRepo   TourRepository
	dayoffRepo DayoffRepository
	cache      AvailabilityCache
	metrics    Metrics
	logger     Logger
	ttl        time.Duration
	group      singleflight.Group
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil, тогда доступность всегда вычисляется заново
func NewUseCase(
	tourRepo TourRepository,
	dayoffRepo DayoffRepository,
	cache AvailabilityCache,
	metrics Metrics,
	logger Logger,
	ttl time.Duration,
) *UseCase {
	return &UseCase{
		tourRepo:   tourRepo,
		dayoffRepo: dayoffRepo,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		ttl:        ttl,
	}
}

// Execute возвращает доступные дни месяца.
// Сначала читается кэш, при промахе доступность вычисляется по правилам выходных и записывается в кэш.
// Ошибки кэша не возвращаются клиенту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: seller=%s, tour=%d, %d-%02d", req.SellerName, req.TourID, req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Кэш
	if cached := uc.fromCache(ctx, req); cached != nil {
		return toResponse(cached), nil
	}

	// 3. Вычисление, конкурентные промахи по одному ключу объединяются.
	// Отключение первого клиента не должно отменять вычисление для остальных
	key := domain.AvailabilityCacheKey(req.TourID, req.Year, req.Month) + ":" + req.SellerName
	computeCtx := context.WithoutCancel(ctx)
	v, err, shared := uc.group.Do(key, func() (interface{}, error) {
		return uc.compute(computeCtx, req)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		uc.logger.Info("GetAvailability: shared computation for tour=%d, %d-%02d", req.TourID, req.Year, req.Month)
	}

	return toResponse(v.(*domain.Availability)), nil
}

// fromCache возвращает запись кэша, если она есть и принадлежит продавцу из запроса
func (uc *UseCase) fromCache(ctx context.Context, req *Request) *domain.Availability {
	if uc.cache == nil {
		return nil
	}

	cached, err := uc.cache.Get(ctx, req.TourID, req.Year, req.Month)
	if err != nil {
		uc.metrics.CacheLookup(metrics.CacheError)
		uc.logger.Warn("GetAvailability: cache read failed for tour=%d: %v", req.TourID, err)
		return nil
	}
	if cached == nil {
		uc.metrics.CacheLookup(metrics.CacheMiss)
		return nil
	}
	if cached.SellerName != req.SellerName {
		uc.metrics.CacheLookup(metrics.CacheMiss)
		return nil
	}

	uc.metrics.CacheLookup(metrics.CacheHit)
	return cached
}

func (uc *UseCase) compute(ctx context.Context, req *Request) (*domain.Availability, error) {
	// Счетчик читается до правил: если правила изменятся, запись ниже не попадет в кэш
	generation, cacheable := uc.generation(ctx, req.TourID)

	tour, err := uc.tourRepo.GetBySellerAndID(ctx, req.SellerName, req.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			uc.logger.Warn("GetAvailability: tour id=%d of seller %s not found", req.TourID, req.SellerName)
			return nil, domain.ErrTourNotFound
		}
		uc.logger.Error("GetAvailability: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to get tour: %w", domain.ErrInternal, err)
	}

	dayoffs, err := uc.dayoffRepo.GetByTourID(ctx, tour.ID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get dayoffs for tour id=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: failed to get dayoffs: %w", domain.ErrInternal, err)
	}

	availability := domain.NewAvailability(tour, req.Year, req.Month, domain.RulesOf(dayoffs))

	if cacheable {
		stored, err := uc.cache.Set(ctx, availability, generation, uc.ttl)
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailability: cache write failed for tour=%d: %v", tour.ID, err)
		case !stored:
			uc.logger.Info("GetAvailability: dayoffs of tour=%d changed during computation, cache write skipped", tour.ID)
		}
	}

	uc.logger.Info("GetAvailability: computed %d open days for tour=%d, %d-%02d",
		len(availability.AvailableSchedule), tour.ID, req.Year, req.Month)

	return availability, nil
}

func (uc *UseCase) generation(ctx context.Context, tourID int64) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}

	generation, err := uc.cache.Generation(ctx, tourID)
	if err != nil {
		uc.logger.Warn("GetAvailability: cache generation read failed for tour=%d: %v", tourID, err)
		return 0, false
	}
	return generation, true
}

func toResponse(a *domain.Availability) *Response {
	schedule := a.AvailableSchedule
	if schedule == nil {
		schedule = []int{}
	}
	return &Response{
		TourID:            a.TourID,
		TourTitle:         a.TourTitle,
		SellerName:        a.SellerName,
		Year:              a.Year,
		Month:             a.Month,
		AvailableSchedule: schedule,
	}
}
