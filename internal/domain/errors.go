package domain

import "errors"

// ErrorKind closed set of failure categories surfaced by the core
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidInput
	KindScheduleUnavailable
	KindDuplicateApproval
	KindAlreadyApproved
	KindAlreadyCanceled
	KindCancellationWindowClosed
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidInput:
		return "InvalidInput"
	case KindScheduleUnavailable:
		return "ScheduleUnavailable"
	case KindDuplicateApproval:
		return "DuplicateApproval"
	case KindAlreadyApproved:
		return "AlreadyApproved"
	case KindAlreadyCanceled:
		return "AlreadyCanceled"
	case KindCancellationWindowClosed:
		return "CancellationWindowClosed"
	case KindForbidden:
		return "Forbidden"
	default:
		return "Internal"
	}
}

// Error доменная ошибка с категорией
type Error struct {
	kind ErrorKind
	msg  string
}

// NewError создает доменную ошибку указанной категории
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Kind категория ошибки
func (e *Error) Kind() ErrorKind {
	return e.kind
}

var (
	// ErrTourNotFound возвращается, когда тур не найден
	ErrTourNotFound = NewError(KindNotFound, "tour not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = NewError(KindNotFound, "reservation not found")

	// ErrSellerNotFound возвращается, когда продавец не найден
	ErrSellerNotFound = NewError(KindNotFound, "seller not found")

	// ErrScheduleUnavailable возвращается, когда дата закрыта выходным днём тура
	ErrScheduleUnavailable = NewError(KindScheduleUnavailable, "schedule is unavailable on this date")

	// ErrDuplicateApproval возвращается, когда на эту дату уже есть подтверждённое бронирование клиента
	ErrDuplicateApproval = NewError(KindDuplicateApproval, "reservation is already approved for this customer and date")

	// ErrAlreadyApproved возвращается при повторном подтверждении
	ErrAlreadyApproved = NewError(KindAlreadyApproved, "reservation is already approved")

	// ErrAlreadyCanceled возвращается при повторной отмене
	ErrAlreadyCanceled = NewError(KindAlreadyCanceled, "reservation is already canceled")

	// ErrCancellationWindowClosed возвращается, когда до даты тура осталось меньше допустимого числа дней
	ErrCancellationWindowClosed = NewError(KindCancellationWindowClosed, "cancellation window is closed")

	// ErrForbidden возвращается при несовпадении продавца или данных клиента
	ErrForbidden = NewError(KindForbidden, "access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = NewError(KindInvalidInput, "invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = NewError(KindInternal, "internal error")
)

// KindOf классифицирует ошибку. Неизвестные ошибки считаются внутренними
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindInternal
}
