package register_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
)

const operation = "register"

// UseCase use case регистрации бронирования
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

// NewUseCase создает новый экземпляр use case.
// threshold - число подтвержденных бронирований на дату, после которого новые ждут подтверждения продавцом
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

// Execute регистрирует бронирование.
// Проверка выходных, подсчет мест и вставка выполняются в сериализуемой транзакции
// под блокировкой строки тура, поэтому порог не превышается при конкурентных запросах.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegisterReservation: tour=%d, date=%s, username=%s", req.TourID, req.Date, req.Username)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RegisterReservation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 2. Все чтения и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Тур с блокировкой строки
		tour, err := uc.tourRepo.GetByID(txCtx, req.TourID)
		if err != nil {
			if errors.Is(err, tourRepo.ErrTourNotFound) {
				uc.logger.Warn("RegisterReservation: tour id=%d not found", req.TourID)
				return domain.ErrTourNotFound
			}
			uc.logger.Error("RegisterReservation: failed to get tour id=%d: %v", req.TourID, err)
			return fmt.Errorf("%w: failed to get tour: %w", domain.ErrInternal, err)
		}

		// 2.2. Выходные дни тура
		dayoffs, err := uc.dayoffRepo.GetByTourID(txCtx, tour.ID)
		if err != nil {
			uc.logger.Error("RegisterReservation: failed to get dayoffs for tour id=%d: %v", tour.ID, err)
			return fmt.Errorf("%w: failed to get dayoffs: %w", domain.ErrInternal, err)
		}

		if domain.IsBlocked(date, domain.RulesOf(dayoffs)) {
			uc.logger.Warn("RegisterReservation: tour id=%d is closed on %s", tour.ID, req.Date)
			return domain.ErrScheduleUnavailable
		}

		// 2.3. Бронирования на эту дату
		reservations, err := uc.reservationRepo.GetByTourAndDate(txCtx, tour.ID, req.Date)
		if err != nil {
			uc.logger.Error("RegisterReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", domain.ErrInternal, err)
		}

		if domain.HasApprovedDuplicate(reservations, req.Username, req.PhoneNumber, req.Date) {
			uc.logger.Warn("RegisterReservation: duplicate approved reservation for %s on %s", req.Username, req.Date)
			return domain.ErrDuplicateApproval
		}

		// 2.4. Политика автоподтверждения
		status := domain.DecideStatus(req.Date, reservations, uc.threshold)

		reservation := &domain.Reservation{
			TourID:      tour.ID,
			Status:      status,
			Username:    req.Username,
			PhoneNumber: req.PhoneNumber,
		}
		reservation.SetDate(date)
		if status == domain.StatusApproved {
			token := uc.newToken()
			reservation.Token = &token
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("RegisterReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", domain.ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			return nil, err
		}
		uc.logger.Error("RegisterReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", domain.ErrInternal, err)
	}

	uc.metrics.ReservationOutcome(operation, string(result.Status))
	uc.logger.Info("RegisterReservation: created reservation id=%d with status=%s", result.ID, result.Status)

	return &Response{
		ReservationID: result.ID,
		Status:        string(result.Status),
		Token:         result.Token,
	}, nil
}
