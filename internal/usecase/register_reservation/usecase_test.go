package register_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

// --- fakes ---

type fakeTours struct {
	getByID func(ctx context.Context, id int64) (*domain.Tour, error)
}

func (f *fakeTours) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	return f.getByID(ctx, id)
}

type fakeDayoffs struct {
	getByTourID func(ctx context.Context, tourID int64) ([]*domain.Dayoff, error)
}

func (f *fakeDayoffs) GetByTourID(ctx context.Context, tourID int64) ([]*domain.Dayoff, error) {
	return f.getByTourID(ctx, tourID)
}

// memReservations in-memory хранилище бронирований
type memReservations struct {
	mu        sync.Mutex
	items     []*domain.Reservation
	createErr error
}

func (m *memReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	r.ID = int64(len(m.items) + 1)
	cp := *r
	m.items = append(m.items, &cp)
	return r, nil
}

func (m *memReservations) GetByTourAndDate(_ context.Context, tourID int64, date string) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Reservation
	for _, r := range m.items {
		if r.TourID == tourID && r.Date == date {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// lockingTx сериализует транзакции мьютексом, как блокировка строки тура
type lockingTx struct {
	mu    sync.Mutex
	calls int
}

func (tx *lockingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *fakeMetrics) ReservationOutcome(operation, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[operation+":"+status]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc           *UseCase
	reservations *memReservations
	tx           *lockingTx
	metrics      *fakeMetrics
}

func newFixture(t *testing.T, rules ...domain.DayoffRule) *fixture {
	t.Helper()

	tours := &fakeTours{getByID: func(_ context.Context, id int64) (*domain.Tour, error) {
		if id != 1 {
			return nil, tourRepo.ErrTourNotFound
		}
		return &domain.Tour{ID: 1, Title: "Hallasan sunrise", SellerName: "jeju-tours"}, nil
	}}
	dayoffs := &fakeDayoffs{getByTourID: func(_ context.Context, tourID int64) ([]*domain.Dayoff, error) {
		out := make([]*domain.Dayoff, 0, len(rules))
		for i, rule := range rules {
			out = append(out, &domain.Dayoff{ID: int64(i + 1), TourID: tourID, Rule: rule})
		}
		return out, nil
	}}

	f := &fixture{
		reservations: &memReservations{},
		tx:           &lockingTx{},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(tours, dayoffs, f.reservations, f.tx, f.metrics, nopLogger{}, domain.DefaultAutoApproveThreshold)

	var seq int
	var seqMu sync.Mutex
	f.uc.newToken = func() string {
		seqMu.Lock()
		defer seqMu.Unlock()
		seq++
		return fmt.Sprintf("token-%d", seq)
	}
	return f
}

func request(username, date string) *Request {
	return &Request{TourID: 1, Date: date, Username: username, PhoneNumber: "010-0000-0000"}
}

// --- tests ---

func TestExecute_CapacityThreshold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		resp, err := f.uc.Execute(ctx, request(fmt.Sprintf("user-%d", i), "2023-03-10"))
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status, "registration #%d", i)
		require.NotNil(t, resp.Token)
	}

	resp, err := f.uc.Execute(ctx, request("user-6", "2023-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Nil(t, resp.Token)

	// другая дата не затронута
	resp, err = f.uc.Execute(ctx, request("user-7", "2023-03-11"))
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)

	assert.Equal(t, 6, f.metrics.outcomes["register:APPROVED"])
	assert.Equal(t, 1, f.metrics.outcomes["register:PENDING"])
}

func TestExecute_StoresDecomposedDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request("kim", "2024-02-29"))
	require.NoError(t, err)

	require.Len(t, f.reservations.items, 1)
	stored := f.reservations.items[0]
	assert.Equal(t, "2024-02-29", stored.Date)
	assert.Equal(t, 2024, stored.Year)
	assert.Equal(t, 2, stored.Month)
	assert.Equal(t, 29, stored.Day)
	assert.Equal(t, "token-1", *stored.Token)
}

func TestExecute_ScheduleUnavailable(t *testing.T) {
	f := newFixture(t, domain.WeeklyRule{Weekday: time.Sunday}, domain.AnnualDateRule{Month: time.March, Day: 2})

	_, err := f.uc.Execute(context.Background(), request("kim", "2023-03-05"))
	assert.ErrorIs(t, err, domain.ErrScheduleUnavailable)

	_, err = f.uc.Execute(context.Background(), request("kim", "2031-03-02"))
	assert.ErrorIs(t, err, domain.ErrScheduleUnavailable)

	assert.Empty(t, f.reservations.items)
}

func TestExecute_DuplicateApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("kim", "2023-03-10"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("kim", "2023-03-10"))
	assert.ErrorIs(t, err, domain.ErrDuplicateApproval)
	assert.Equal(t, domain.KindDuplicateApproval, domain.KindOf(err))

	// тот же клиент на другую дату допускается
	_, err = f.uc.Execute(ctx, request("kim", "2023-03-11"))
	assert.NoError(t, err)
}

func TestExecute_PendingDoesNotCountAsDuplicate(t *testing.T) {
	f := newFixture(t)
	f.uc.threshold = 1
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("lee", "2023-03-10"))
	require.NoError(t, err)

	first, err := f.uc.Execute(ctx, request("kim", "2023-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", first.Status)

	second, err := f.uc.Execute(ctx, request("kim", "2023-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "PENDING", second.Status)
}

func TestExecute_TourNotFound(t *testing.T) {
	f := newFixture(t)

	req := request("kim", "2023-03-10")
	req.TourID = 99
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrTourNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	for name, req := range map[string]*Request{
		"bad date":      request("kim", "2023/03/10"),
		"empty user":    request(" ", "2023-03-10"),
		"missing phone": {TourID: 1, Date: "2023-03-10", Username: "kim"},
		"zero tour":     {TourID: 0, Date: "2023-03-10", Username: "kim", PhoneNumber: "1"},
	} {
		_, err := f.uc.Execute(context.Background(), req)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err), name)
	}
	assert.Zero(t, f.tx.calls)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.reservations.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request("kim", "2023-03-10"))

	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestExecute_TransactionFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = txFunc(func(context.Context, func(context.Context) error) error {
		return errors.New("commit failed")
	})

	_, err := f.uc.Execute(context.Background(), request("kim", "2023-03-10"))
	assert.ErrorIs(t, err, domain.ErrInternal)
}

type txFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f txFunc) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

func TestExecute_ConcurrentRegistrationsNeverExceedThreshold(t *testing.T) {
	f := newFixture(t)

	const workers = 40
	var wg sync.WaitGroup
	statuses := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.uc.Execute(context.Background(), request(fmt.Sprintf("user-%d", i), "2023-03-10"))
			if err == nil {
				statuses <- resp.Status
			}
		}(i)
	}
	wg.Wait()
	close(statuses)

	counts := map[string]int{}
	for s := range statuses {
		counts[s]++
	}
	assert.Equal(t, domain.DefaultAutoApproveThreshold, counts["APPROVED"])
	assert.Equal(t, workers-domain.DefaultAutoApproveThreshold, counts["PENDING"])
}
