package get_availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-TourBookingService/internal/infra/cache/availability"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	createDayoff "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_dayoff"
)

type fakeTours struct {
	calls atomic.Int32
	hook  func()
}

func (f *fakeTours) GetBySellerAndID(ctx context.Context, sellerName string, id int64) (*domain.Tour, error) {
	f.calls.Add(1)
	if f.hook != nil {
		f.hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id != 1 || sellerName != "jeju-tours" {
		return nil, tourRepo.ErrTourNotFound
	}
	return &domain.Tour{ID: 1, Title: "Hallasan sunrise", SellerName: "jeju-tours"}, nil
}

type fakeDayoffs struct {
	rules []domain.DayoffRule
	err   error
}

func (f *fakeDayoffs) GetByTourID(_ context.Context, tourID int64) ([]*domain.Dayoff, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Dayoff, 0, len(f.rules))
	for _, rule := range f.rules {
		out = append(out, &domain.Dayoff{TourID: tourID, Rule: rule})
	}
	return out, nil
}

type fakeCache struct {
	mu         sync.Mutex
	entries    map[string]*domain.Availability
	generation int64
	getErr     error
	genErr     error
	setErr     error
	ttls       []time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.Availability{}}
}

func (c *fakeCache) Get(_ context.Context, tourID int64, year, month int) (*domain.Availability, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[domain.AvailabilityCacheKey(tourID, year, month)], nil
}

func (c *fakeCache) Generation(_ context.Context, _ int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.genErr
}

func (c *fakeCache) Set(_ context.Context, a *domain.Availability, generation int64, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return false, c.setErr
	}
	if generation != c.generation {
		return false, nil
	}
	c.entries[domain.AvailabilityCacheKey(a.TourID, a.Year, a.Month)] = a
	c.ttls = append(c.ttls, ttl)
	return true, nil
}

type fakeMetrics struct {
	mu      sync.Mutex
	lookups map[string]int
}

func (m *fakeMetrics) CacheLookup(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookups == nil {
		m.lookups = map[string]int{}
	}
	m.lookups[result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc      *UseCase
	tours   *fakeTours
	dayoffs *fakeDayoffs
	cache   *fakeCache
	metrics *fakeMetrics
}

func newFixture(rules ...domain.DayoffRule) *fixture {
	f := &fixture{
		tours:   &fakeTours{},
		dayoffs: &fakeDayoffs{rules: rules},
		cache:   newFakeCache(),
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.tours, f.dayoffs, f.cache, f.metrics, nopLogger{}, 72*time.Hour)
	return f
}

func march2023() *Request {
	return &Request{SellerName: "jeju-tours", TourID: 1, Year: 2023, Month: 3}
}

func TestExecute_MissComputesAndPopulates(t *testing.T) {
	f := newFixture(domain.WeeklyRule{Weekday: time.Sunday}, domain.AnnualDateRule{Month: time.March, Day: 1})

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)

	assert.Equal(t, "Hallasan sunrise", resp.TourTitle)
	assert.Equal(t, "jeju-tours", resp.SellerName)
	assert.Len(t, resp.AvailableSchedule, 26)
	assert.NotContains(t, resp.AvailableSchedule, 1)
	assert.NotContains(t, resp.AvailableSchedule, 5)
	assert.Contains(t, resp.AvailableSchedule, 31)

	cached := f.cache.entries[domain.AvailabilityCacheKey(1, 2023, 3)]
	require.NotNil(t, cached)
	assert.Equal(t, resp.AvailableSchedule, cached.AvailableSchedule)
	assert.Equal(t, []time.Duration{72 * time.Hour}, f.cache.ttls)
	assert.Equal(t, 1, f.metrics.lookups["miss"])
}

func TestExecute_HitAvoidsStore(t *testing.T) {
	f := newFixture()
	f.cache.entries[domain.AvailabilityCacheKey(1, 2023, 3)] = &domain.Availability{
		TourID: 1, TourTitle: "cached", SellerName: "jeju-tours", Year: 2023, Month: 3,
		AvailableSchedule: []int{2, 3},
	}

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)

	assert.Equal(t, "cached", resp.TourTitle)
	assert.Equal(t, []int{2, 3}, resp.AvailableSchedule)
	assert.Zero(t, f.tours.calls.Load())
	assert.Equal(t, 1, f.metrics.lookups["hit"])
}

func TestExecute_HitOfAnotherSellerIsIgnored(t *testing.T) {
	f := newFixture()
	f.cache.entries[domain.AvailabilityCacheKey(1, 2023, 3)] = &domain.Availability{
		TourID: 1, SellerName: "jeju-tours", Year: 2023, Month: 3, AvailableSchedule: []int{2},
	}

	req := march2023()
	req.SellerName = "busan-tours"
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Equal(t, int32(1), f.tours.calls.Load())
}

func TestExecute_CacheErrorsAreSwallowed(t *testing.T) {
	f := newFixture(domain.WeeklyRule{Weekday: time.Sunday})
	f.cache.getErr = errors.New("connection refused")
	f.cache.setErr = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)
	assert.Len(t, resp.AvailableSchedule, 27)
	assert.Equal(t, 1, f.metrics.lookups["error"])
}

func TestExecute_WithoutCache(t *testing.T) {
	f := newFixture()
	f.uc.cache = nil

	resp, err := f.uc.Execute(context.Background(), &Request{SellerName: "jeju-tours", TourID: 1, Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Len(t, resp.AvailableSchedule, 29)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{SellerName: "jeju-tours", TourID: 1, Year: 2023, Month: 13})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = f.uc.Execute(context.Background(), &Request{SellerName: "jeju-tours", TourID: 2, Year: 2023, Month: 3})
	assert.ErrorIs(t, err, domain.ErrTourNotFound)

	f.dayoffs.err = errors.New("timeout")
	_, err = f.uc.Execute(context.Background(), march2023())
	assert.ErrorIs(t, err, domain.ErrInternal)

	assert.Empty(t, f.cache.entries)
}

func TestExecute_FullyBlockedMonthReturnsEmptySchedule(t *testing.T) {
	rules := make([]domain.DayoffRule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		rules = append(rules, domain.WeeklyRule{Weekday: d})
	}
	f := newFixture(rules...)

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)
	assert.NotNil(t, resp.AvailableSchedule)
	assert.Empty(t, resp.AvailableSchedule)
}

func TestExecute_ConcurrentMissesAreCoalesced(t *testing.T) {
	f := newFixture()
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.tours.hook = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make(chan *Response, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.uc.Execute(context.Background(), march2023())
			if err == nil {
				results <- resp
			}
		}()
	}

	<-entered
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	assert.Equal(t, int32(1), f.tours.calls.Load())
	count := 0
	for resp := range results {
		assert.Len(t, resp.AvailableSchedule, 31)
		count++
	}
	assert.Equal(t, callers, count)
}

func TestExecute_GenerationErrorSkipsCacheWrite(t *testing.T) {
	f := newFixture()
	f.cache.genErr = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)
	assert.Len(t, resp.AvailableSchedule, 31)
	assert.Empty(t, f.cache.entries)
}

func TestExecute_OutdatedGenerationIsNotCached(t *testing.T) {
	f := newFixture()
	f.tours.hook = func() {
		f.cache.mu.Lock()
		f.cache.generation++
		f.cache.mu.Unlock()
	}

	resp, err := f.uc.Execute(context.Background(), march2023())
	require.NoError(t, err)
	assert.Len(t, resp.AvailableSchedule, 31)
	assert.Empty(t, f.cache.entries)
}

func TestExecute_CanceledFirstCallerDoesNotFailSharedComputation(t *testing.T) {
	f := newFixture()
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.tours.hook = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)

	var firstErr, secondErr error
	var second *Response
	go func() {
		defer wg.Done()
		_, firstErr = f.uc.Execute(firstCtx, march2023())
	}()
	<-entered
	go func() {
		defer wg.Done()
		second, secondErr = f.uc.Execute(context.Background(), march2023())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)
	wg.Wait()

	assert.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.Len(t, second.AvailableSchedule, 31)
	assert.Equal(t, int32(1), f.tours.calls.Load())
}

// sharedTours и sharedDayoffs общие для чтения доступности и добавления выходного
type sharedTours struct{}

func (sharedTours) GetByID(_ context.Context, id int64) (*domain.Tour, error) {
	if id != 1 {
		return nil, tourRepo.ErrTourNotFound
	}
	return &domain.Tour{ID: 1, Title: "Hallasan sunrise", SellerName: "jeju-tours"}, nil
}

func (s sharedTours) GetBySellerAndID(ctx context.Context, sellerName string, id int64) (*domain.Tour, error) {
	tour, err := s.GetByID(ctx, id)
	if err != nil || tour.SellerName != sellerName {
		return nil, tourRepo.ErrTourNotFound
	}
	return tour, nil
}

type sharedDayoffs struct {
	mu     sync.Mutex
	items  []*domain.Dayoff
	onRead func()
}

func (s *sharedDayoffs) Create(_ context.Context, d *domain.Dayoff) (*domain.Dayoff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = int64(len(s.items) + 1)
	s.items = append(s.items, d)
	return d, nil
}

// GetByTourID отдает снимок правил, затем однократно вызывает onRead
func (s *sharedDayoffs) GetByTourID(_ context.Context, tourID int64) ([]*domain.Dayoff, error) {
	s.mu.Lock()
	var out []*domain.Dayoff
	for _, d := range s.items {
		if d.TourID == tourID {
			out = append(out, d)
		}
	}
	hook := s.onRead
	s.onRead = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func TestExecute_DayoffCreatedDuringComputationReachesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := availabilityCache.NewCache(client)
	ctx := context.Background()

	store := &sharedDayoffs{}
	reader := NewUseCase(sharedTours{}, store, cache, &fakeMetrics{}, nopLogger{}, 72*time.Hour)
	writer := createDayoff.NewUseCase(sharedTours{}, store, cache, nopLogger{}, 72*time.Hour)

	sunday := int(time.Sunday)
	store.onRead = func() {
		_, err := writer.Execute(ctx, &createDayoff.Request{
			SellerName: "jeju-tours",
			TourID:     1,
			Rule:       domain.DayoffFields{Kind: domain.DayoffWeekly, Weekday: &sunday},
			Year:       2023,
			Month:      3,
		})
		require.NoError(t, err)
	}

	// чтение началось до нового правила и видит старые правила
	first, err := reader.Execute(ctx, march2023())
	require.NoError(t, err)
	assert.Len(t, first.AvailableSchedule, 31)

	cached, err := cache.Get(ctx, 1, 2023, 3)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Len(t, cached.AvailableSchedule, 27)

	second, err := reader.Execute(ctx, march2023())
	require.NoError(t, err)
	assert.Len(t, second.AvailableSchedule, 27)
	assert.NotContains(t, second.AvailableSchedule, 5)
}
