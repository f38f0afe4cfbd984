package create_dayoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-TourBookingService/internal/infra/cache/availability"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

type fakeTours struct{}

func (fakeTours) GetByID(_ context.Context, id int64) (*domain.Tour, error) {
	if id != 1 {
		return nil, tourRepo.ErrTourNotFound
	}
	return &domain.Tour{ID: 1, Title: "Hallasan sunrise", SellerName: "jeju-tours"}, nil
}

type memDayoffs struct {
	items     []*domain.Dayoff
	createErr error
}

func (m *memDayoffs) Create(_ context.Context, d *domain.Dayoff) (*domain.Dayoff, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	d.ID = int64(len(m.items) + 1)
	m.items = append(m.items, d)
	return d, nil
}

func (m *memDayoffs) GetByTourID(_ context.Context, tourID int64) ([]*domain.Dayoff, error) {
	var out []*domain.Dayoff
	for _, d := range m.items {
		if d.TourID == tourID {
			out = append(out, d)
		}
	}
	return out, nil
}

type recordingCache struct {
	calls         []string
	bumpErr       error
	invalidateErr error
	setErr        error
	generation    int64
	stored        *domain.Availability
}

func (c *recordingCache) BumpGeneration(_ context.Context, _ int64) (int64, error) {
	c.calls = append(c.calls, "bump")
	if c.bumpErr != nil {
		return 0, c.bumpErr
	}
	c.generation++
	return c.generation, nil
}

func (c *recordingCache) InvalidateTour(_ context.Context, _ int64) error {
	c.calls = append(c.calls, "invalidate")
	return c.invalidateErr
}

func (c *recordingCache) Set(_ context.Context, a *domain.Availability, generation int64, _ time.Duration) (bool, error) {
	c.calls = append(c.calls, "set")
	if c.setErr != nil {
		return false, c.setErr
	}
	if generation != c.generation {
		return false, nil
	}
	c.stored = a
	return true, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func intPtr(v int) *int { return &v }

func weekly(day time.Weekday) domain.DayoffFields {
	return domain.DayoffFields{Kind: domain.DayoffWeekly, Weekday: intPtr(int(day))}
}

func newUseCase(dayoffs *memDayoffs, cache AvailabilityCache) *UseCase {
	uc := NewUseCase(fakeTours{}, dayoffs, cache, nopLogger{}, time.Hour)
	uc.timeProvider = fixedTime{now: time.Date(2023, time.February, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_PersistsAndRecomputes(t *testing.T) {
	dayoffs := &memDayoffs{}
	cache := &recordingCache{}
	uc := newUseCase(dayoffs, cache)

	resp, err := uc.Execute(context.Background(), &Request{
		SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday), Year: 2023, Month: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Dayoff.ID)
	assert.Equal(t, domain.WeeklyRule{Weekday: time.Sunday}, resp.Dayoff.Rule)
	assert.Len(t, resp.Availability.AvailableSchedule, 27)
	assert.Equal(t, []string{"bump", "invalidate", "set"}, cache.calls)
	assert.Equal(t, resp.Availability, cache.stored)
}

func TestExecute_DefaultPeriod(t *testing.T) {
	uc := newUseCase(&memDayoffs{}, &recordingCache{})

	resp, err := uc.Execute(context.Background(), &Request{
		SellerName: "jeju-tours", TourID: 1,
		Rule: domain.DayoffFields{Kind: domain.DayoffAnnualDate, Month: intPtr(5), Day: intPtr(5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2023, resp.Availability.Year)
	assert.Equal(t, 5, resp.Availability.Month)
	assert.NotContains(t, resp.Availability.AvailableSchedule, 5)

	resp, err = uc.Execute(context.Background(), &Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Monday)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Availability.Month)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want domain.ErrorKind
	}{
		{"unknown tour", &Request{SellerName: "jeju-tours", TourID: 9, Rule: weekly(time.Sunday)}, domain.KindNotFound},
		{"other seller", &Request{SellerName: "busan-tours", TourID: 1, Rule: weekly(time.Sunday)}, domain.KindForbidden},
		{"bad weekday", &Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(7)}, domain.KindInvalidInput},
		{"bad month", &Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday), Month: 13}, domain.KindInvalidInput},
		{"missing seller", &Request{TourID: 1, Rule: weekly(time.Sunday)}, domain.KindInvalidInput},
		{
			"annual without day",
			&Request{SellerName: "jeju-tours", TourID: 1, Rule: domain.DayoffFields{Kind: domain.DayoffAnnualDate, Month: intPtr(3)}},
			domain.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dayoffs := &memDayoffs{}
			cache := &recordingCache{}
			_, err := newUseCase(dayoffs, cache).Execute(context.Background(), tt.req)

			assert.Equal(t, tt.want, domain.KindOf(err))
			assert.Empty(t, dayoffs.items)
			assert.Empty(t, cache.calls)
		})
	}
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	cache := &recordingCache{}
	_, err := newUseCase(&memDayoffs{createErr: errors.New("disk full")}, cache).Execute(context.Background(),
		&Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday)})

	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, cache.calls)
}

func TestExecute_CacheErrorsAreSwallowed(t *testing.T) {
	cache := &recordingCache{invalidateErr: errors.New("down"), setErr: errors.New("down")}

	resp, err := newUseCase(&memDayoffs{}, cache).Execute(context.Background(),
		&Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday), Year: 2023, Month: 3})

	require.NoError(t, err)
	assert.Len(t, resp.Availability.AvailableSchedule, 27)
	assert.Equal(t, []string{"bump", "invalidate", "set"}, cache.calls)
}

func TestExecute_NoCacheWriteWithoutGeneration(t *testing.T) {
	cache := &recordingCache{bumpErr: errors.New("down")}

	resp, err := newUseCase(&memDayoffs{}, cache).Execute(context.Background(),
		&Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday), Year: 2023, Month: 3})

	require.NoError(t, err)
	assert.Len(t, resp.Availability.AvailableSchedule, 27)
	assert.Equal(t, []string{"bump", "invalidate"}, cache.calls)
	assert.Nil(t, cache.stored)
}

func TestExecute_DropsOtherCachedMonthsInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := availabilityCache.NewCache(client)
	ctx := context.Background()

	stale := &domain.Availability{TourID: 1, SellerName: "jeju-tours", Year: 2023, Month: 4, AvailableSchedule: []int{1, 2}}
	_, err := cache.Set(ctx, stale, 0, time.Hour)
	require.NoError(t, err)
	other := &domain.Availability{TourID: 2, SellerName: "busan-tours", Year: 2023, Month: 4, AvailableSchedule: []int{1}}
	_, err = cache.Set(ctx, other, 0, time.Hour)
	require.NoError(t, err)

	_, err = newUseCase(&memDayoffs{}, cache).Execute(ctx,
		&Request{SellerName: "jeju-tours", TourID: 1, Rule: weekly(time.Sunday), Year: 2023, Month: 3})
	require.NoError(t, err)

	assert.False(t, mr.Exists(domain.AvailabilityCacheKey(1, 2023, 4)))
	assert.True(t, mr.Exists(domain.AvailabilityCacheKey(2, 2023, 4)))

	march, err := cache.Get(ctx, 1, 2023, 3)
	require.NoError(t, err)
	require.NotNil(t, march)
	assert.Len(t, march.AvailableSchedule, 27)
}
