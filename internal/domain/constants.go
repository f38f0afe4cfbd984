package domain

import "time"

// Default configuration values
const (
	DefaultAutoApproveThreshold    = 5
	DefaultCancellationWindowDays  = 3
	DefaultAvailabilityCacheTTL    = 72 * time.Hour
	DefaultSerializationRetryCount = 3
)

// Business validation constants
const (
	MaxUsernameLength    = 100
	MaxPhoneNumberLength = 32
	MinYear              = 1970
	MaxYear              = 9999
)

// DateFormat canonical reservation date layout (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// ReservationStatuses все допустимые статусы бронирования
var ReservationStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
	StatusCanceled,
}
