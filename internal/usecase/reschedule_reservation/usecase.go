package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

const operation = "reschedule"

// UseCase use case переноса ожидающего бронирования на другую дату
type UseCase struct {
	tourRepo        TourRepository
	dayoffRepo      DayoffRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	threshold       int
	newToken        func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tourRepo TourRepository,
	dayoffRepo DayoffRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	threshold int,
) *UseCase {
	return &UseCase{
		tourRepo:        tourRepo,
		dayoffRepo:      dayoffRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		threshold:       threshold,
		newToken:        uuid.NewString,
	}
}

// Execute переносит бронирование в статусе PENDING.
// Новая дата проходит те же проверки, что и при регистрации. Если на новую дату
// бронирование было бы подтверждено, дата меняется и выдается новый токен;
// если оно осталось бы в ожидании, бронирование не меняется и возвращается Rescheduled=false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: tour=%d, reservation=%d, username=%s, %s -> %s",
		req.TourID, req.ReservationID, req.Username, req.OriginalDate, req.NewDate)

	// 1. Валидация входных данных
	newDate, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Под той же блокировкой тура, что и регистрация
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = nil

		tour, err := uc.tourRepo.GetByID(txCtx, req.TourID)
		if err != nil {
			if errors.Is(err, tourRepo.ErrTourNotFound) {
				uc.logger.Warn("RescheduleReservation: tour id=%d not found", req.TourID)
				return domain.ErrTourNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get tour id=%d: %v", req.TourID, err)
			return fmt.Errorf("%w: failed to get tour: %w", domain.ErrInternal, err)
		}

		// 2.1. Поиск бронирования по данным клиента
		matches, err := uc.reservationRepo.FindByIdentity(txCtx, tour.ID, req.Username, req.PhoneNumber, req.OriginalDate)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to find reservation: %v", err)
			return fmt.Errorf("%w: failed to find reservation: %w", domain.ErrInternal, err)
		}
		if len(matches) == 0 {
			uc.logger.Warn("RescheduleReservation: no reservation for %s on %s in tour id=%d",
				req.Username, req.OriginalDate, tour.ID)
			return domain.ErrReservationNotFound
		}

		reservation := pickReservation(matches, req.ReservationID)
		if reservation == nil {
			uc.logger.Warn("RescheduleReservation: reservation id=%d not found for %s on %s",
				req.ReservationID, req.Username, req.OriginalDate)
			return domain.ErrReservationNotFound
		}
		if !reservation.MatchesIdentity(req.Username, req.PhoneNumber, req.OriginalDate) {
			return domain.ErrForbidden
		}

		switch reservation.Status {
		case domain.StatusApproved:
			uc.logger.Warn("RescheduleReservation: reservation id=%d is already approved", reservation.ID)
			return domain.ErrAlreadyApproved
		case domain.StatusCanceled:
			uc.logger.Warn("RescheduleReservation: reservation id=%d is canceled", reservation.ID)
			return domain.ErrAlreadyCanceled
		}

		// 2.2. Проверки регистрации для новой даты
		dayoffs, err := uc.dayoffRepo.GetByTourID(txCtx, tour.ID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get dayoffs for tour id=%d: %v", tour.ID, err)
			return fmt.Errorf("%w: failed to get dayoffs: %w", domain.ErrInternal, err)
		}
		if domain.IsBlocked(newDate, domain.RulesOf(dayoffs)) {
			uc.logger.Warn("RescheduleReservation: tour id=%d is closed on %s", tour.ID, req.NewDate)
			return domain.ErrScheduleUnavailable
		}

		onNewDate, err := uc.reservationRepo.GetByTourAndDate(txCtx, tour.ID, req.NewDate)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", domain.ErrInternal, err)
		}
		if domain.HasApprovedDuplicate(onNewDate, req.Username, req.PhoneNumber, req.NewDate) {
			return domain.ErrDuplicateApproval
		}

		if domain.DecideStatus(req.NewDate, onNewDate, uc.threshold) != domain.StatusApproved {
			uc.logger.Info("RescheduleReservation: %s is full, reservation id=%d left unchanged",
				req.NewDate, reservation.ID)
			result = &Response{Rescheduled: false, Status: string(reservation.Status)}
			return nil
		}

		// 2.3. Подтверждаем на новую дату с новым токеном
		token := uc.newToken()
		reservation.SetDate(newDate)
		reservation.Status = domain.StatusApproved
		reservation.Token = &token

		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			uc.logger.Error("RescheduleReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", domain.ErrInternal, err)
		}

		result = &Response{Rescheduled: true, Status: string(reservation.Status), Token: reservation.Token}
		return nil
	})
	if err != nil {
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			return nil, err
		}
		uc.logger.Error("RescheduleReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", domain.ErrInternal, err)
	}

	uc.metrics.ReservationOutcome(operation, result.Status)
	uc.logger.Info("RescheduleReservation: rescheduled=%t, status=%s", result.Rescheduled, result.Status)

	return result, nil
}

// pickReservation выбирает бронирование с ID из пути, без ID - первое совпадение
func pickReservation(matches []*domain.Reservation, reservationID int64) *domain.Reservation {
	if reservationID == 0 {
		return matches[0]
	}
	for _, r := range matches {
		if r.ID == reservationID {
			return r
		}
	}
	return nil
}
