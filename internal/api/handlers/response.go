package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

const (
	msgInternalError            = "внутренняя ошибка сервера"
	msgInvalidInput             = "некорректные входные данные"
	msgNotFound                 = "ресурс не найден"
	msgTourNotFound             = "тур не найден"
	msgReservationNotFound      = "бронирование не найдено"
	msgScheduleUnavailable      = "на выбранную дату тур не проводится"
	msgDuplicateApproval        = "на эту дату уже есть подтвержденное бронирование клиента"
	msgAlreadyApproved          = "бронирование уже подтверждено"
	msgAlreadyCanceled          = "бронирование уже отменено"
	msgCancellationWindowClosed = "срок отмены бронирования истек"
	msgForbidden                = "доступ запрещен"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса размером не больше maxBodyBytes
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError переводит категорию доменной ошибки в HTTP статус.
// Текст внутренних ошибок клиенту не отдается
func RespondDomainError(w http.ResponseWriter, err error) {
	status, message := StatusOf(err)
	RespondError(w, status, message)
}

// StatusOf HTTP статус и сообщение для ошибки
func StatusOf(err error) (int, string) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		switch {
		case errors.Is(err, domain.ErrTourNotFound):
			return http.StatusNotFound, msgTourNotFound
		case errors.Is(err, domain.ErrReservationNotFound):
			return http.StatusNotFound, msgReservationNotFound
		}
		return http.StatusNotFound, msgNotFound
	case domain.KindInvalidInput:
		return http.StatusBadRequest, msgInvalidInput
	case domain.KindScheduleUnavailable:
		return http.StatusUnprocessableEntity, msgScheduleUnavailable
	case domain.KindDuplicateApproval:
		return http.StatusConflict, msgDuplicateApproval
	case domain.KindAlreadyApproved:
		return http.StatusConflict, msgAlreadyApproved
	case domain.KindAlreadyCanceled:
		return http.StatusConflict, msgAlreadyCanceled
	case domain.KindCancellationWindowClosed:
		return http.StatusUnprocessableEntity, msgCancellationWindowClosed
	case domain.KindForbidden:
		return http.StatusForbidden, msgForbidden
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
