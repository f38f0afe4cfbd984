package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const scanBatchSize = 100

// entry формат значения в Redis
type entry struct {
	TourID            int64  `json:"tourId"`
	TourTitle         string `json:"tourTitle"`
	SellerName        string `json:"sellerName"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	AvailableSchedule []int  `json:"availableSchedule"`
}

// Cache кэш доступных дней тура в Redis
type Cache struct {
	client *redis.Client
}

// NewCache создает кэш доступности
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get возвращает запись или (nil, nil), если её нет
func (c *Cache) Get(ctx context.Context, tourID int64, year, month int) (*domain.Availability, error) {
	key := domain.AvailabilityCacheKey(tourID, year, month)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get %s: %w", ErrRedis, key, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: Get %s: %w", ErrDecode, key, err)
	}

	return &domain.Availability{
		TourID:            e.TourID,
		TourTitle:         e.TourTitle,
		SellerName:        e.SellerName,
		Year:              e.Year,
		Month:             e.Month,
		AvailableSchedule: e.AvailableSchedule,
	}, nil
}

// Set записывает запись с TTL, если счетчик изменений тура всё ещё равен generation.
// Возвращает false, если правила тура успели измениться и запись устарела
func (c *Cache) Set(ctx context.Context, availability *domain.Availability, generation int64, ttl time.Duration) (bool, error) {
	key := domain.AvailabilityCacheKey(availability.TourID, availability.Year, availability.Month)
	genKey := domain.AvailabilityGenerationKey(availability.TourID)

	schedule := availability.AvailableSchedule
	if schedule == nil {
		schedule = []int{}
	}

	data, err := json.Marshal(entry{
		TourID:            availability.TourID,
		TourTitle:         availability.TourTitle,
		SellerName:        availability.SellerName,
		Year:              availability.Year,
		Month:             availability.Month,
		AvailableSchedule: schedule,
	})
	if err != nil {
		return false, fmt.Errorf("%w: Set %s: %w", ErrEncode, key, err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		// счетчик изменился между чтением и записью
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Set %s: %w", ErrRedis, key, err)
	}
	return stored, nil
}

// Generation текущий счетчик изменений правил тура (0, если правил не меняли)
func (c *Cache) Generation(ctx context.Context, tourID int64) (int64, error) {
	genKey := domain.AvailabilityGenerationKey(tourID)

	generation, err := readGeneration(ctx, c.client, genKey)
	if err != nil {
		return 0, fmt.Errorf("%w: Generation %s: %w", ErrRedis, genKey, err)
	}
	return generation, nil
}

// BumpGeneration увеличивает счетчик изменений правил тура.
// После этого записи, вычисленные по старым правилам, не попадут в кэш
func (c *Cache) BumpGeneration(ctx context.Context, tourID int64) (int64, error) {
	genKey := domain.AvailabilityGenerationKey(tourID)

	generation, err := c.client.Incr(ctx, genKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: BumpGeneration %s: %w", ErrRedis, genKey, err)
	}
	return generation, nil
}

// InvalidateTour удаляет все закэшированные месяцы тура
func (c *Cache) InvalidateTour(ctx context.Context, tourID int64) error {
	pattern := domain.AvailabilityCachePattern(tourID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("%w: InvalidateTour scan %s: %w", ErrRedis, pattern, err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: InvalidateTour del: %w", ErrRedis, err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, g getter, key string) (int64, error) {
	generation, err := g.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}
