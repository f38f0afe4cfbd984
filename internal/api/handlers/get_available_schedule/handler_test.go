package get_available_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_availability"
)

type fakeUseCase struct {
	got  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func get(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/tours/seller/{sellerName}/{tourId}/available-schedule",
		NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Schedule(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		TourID:            1,
		TourTitle:         "Hallasan sunrise",
		SellerName:        "jeju-tours",
		Year:              2023,
		Month:             2,
		AvailableSchedule: []int{1, 2, 3},
	}}

	rec := get(uc, "/api/v1/tours/seller/jeju-tours/1/available-schedule?year=2023&month=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &getAvailability.Request{SellerName: "jeju-tours", TourID: 1, Year: 2023, Month: 2}, uc.got)
	assert.JSONEq(t, `{"tourId":1,"tourTitle":"Hallasan sunrise","sellerName":"jeju-tours",
		"year":2023,"month":2,"availableSchedule":[1,2,3]}`, rec.Body.String())
}

func TestHandle_EmptyScheduleIsArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{TourID: 1, Year: 2023, Month: 2, AvailableSchedule: []int{}}}

	rec := get(uc, "/api/v1/tours/seller/jeju-tours/1/available-schedule?year=2023&month=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"availableSchedule":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "missing month", target: "/api/v1/tours/seller/jeju-tours/1/available-schedule?year=2023", status: http.StatusBadRequest},
		{name: "non numeric year", target: "/api/v1/tours/seller/jeju-tours/1/available-schedule?year=x&month=2", status: http.StatusBadRequest},
		{name: "bad tour id", target: "/api/v1/tours/seller/jeju-tours/0/available-schedule?year=2023&month=2", status: http.StatusBadRequest},
		{name: "month out of range", target: "/api/v1/tours/seller/jeju-tours/1/available-schedule?year=2023&month=13",
			err: domain.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "foreign tour", target: "/api/v1/tours/seller/other/1/available-schedule?year=2023&month=2",
			err: domain.ErrTourNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
