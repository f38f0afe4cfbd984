package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/reservation"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reservations/models"
)

// Service сервис переходов состояния бронирований: подтверждение, отмена, проверка по токену
type Service struct {
	reservationRepo ReservationRepository
	tourRepo        TourRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	windowDays      int
	newToken        func() string
}

// NewService создает новый экземпляр сервиса бронирований.
// windowDays - минимальное число полных дней до даты бронирования, при котором отмена еще разрешена
func NewService(
	reservationRepo ReservationRepository,
	tourRepo TourRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	windowDays int,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		tourRepo:        tourRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		windowDays:      windowDays,
		newToken:        uuid.NewString,
	}
}

// Approve подтверждает бронирование от имени продавца тура и выдает новый токен
func (s *Service) Approve(ctx context.Context, req *models.ApproveRequest) (*models.StatusResponse, error) {
	s.logger.Info("Approve: reservation id=%d by seller=%s", req.ReservationID, req.SellerName)

	if req.ReservationID <= 0 || strings.TrimSpace(req.SellerName) == "" {
		return nil, fmt.Errorf("%w: reservationId and sellerName are required", ErrInvalidInput)
	}

	var result *models.StatusResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.getDetails(txCtx, "Approve", req.TourID, req.ReservationID)
		if err != nil {
			return err
		}

		if details.IsApproved() {
			s.logger.Warn("Approve: reservation id=%d is already approved", details.ID)
			return domain.ErrAlreadyApproved
		}

		if details.SellerName != req.SellerName {
			s.logger.Warn("Approve: seller %s does not own reservation id=%d", req.SellerName, details.ID)
			return domain.ErrForbidden
		}

		token := s.newToken()
		details.Status = domain.StatusApproved
		details.Token = &token

		if err := s.update(txCtx, "Approve", &details.Reservation); err != nil {
			return err
		}

		result = &models.StatusResponse{Status: string(details.Status), Token: details.Token}
		return nil
	})
	if err != nil {
		return nil, s.classify("Approve", err)
	}

	s.metrics.ReservationOutcome("approve", result.Status)
	s.logger.Info("Approve: reservation id=%d approved", req.ReservationID)
	return result, nil
}

// Cancel отменяет бронирование по данным клиента.
// Отмена разрешена, пока до даты бронирования остается не меньше windowDays полных дней.
// Токен не сбрасывается
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) (bool, error) {
	s.logger.Info("Cancel: reservation id=%d by username=%s", req.ReservationID, req.Username)

	if req.ReservationID <= 0 {
		return false, fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		details, err := s.getDetails(txCtx, "Cancel", req.TourID, req.ReservationID)
		if err != nil {
			return err
		}

		if details.IsCanceled() {
			s.logger.Warn("Cancel: reservation id=%d is already canceled", details.ID)
			return domain.ErrAlreadyCanceled
		}

		if !details.MatchesIdentity(req.Username, req.PhoneNumber, req.ReservationDate) {
			s.logger.Warn("Cancel: identity mismatch for reservation id=%d", details.ID)
			return domain.ErrForbidden
		}

		reservationDate, err := domain.ParseDate(details.Date)
		if err != nil {
			return fmt.Errorf("%w: stored date %q: %w", domain.ErrInternal, details.Date, err)
		}

		if left := domain.DaysBetween(s.timeProvider.Now(), reservationDate); left < s.windowDays {
			s.logger.Warn("Cancel: reservation id=%d is %d days away, window is %d days", details.ID, left, s.windowDays)
			return domain.ErrCancellationWindowClosed
		}

		details.Status = domain.StatusCanceled
		return s.update(txCtx, "Cancel", &details.Reservation)
	})
	if err != nil {
		return false, s.classify("Cancel", err)
	}

	s.metrics.ReservationOutcome("cancel", string(domain.StatusCanceled))
	s.logger.Info("Cancel: reservation id=%d canceled", req.ReservationID)
	return true, nil
}

// CheckByToken возвращает статус бронирования по токену.
// Неизвестный или некорректный токен дает пустой ответ, а не ошибку
func (s *Service) CheckByToken(ctx context.Context, req *models.CheckRequest) (*models.CheckResponse, error) {
	s.logger.Info("CheckByToken: seller=%s", req.SellerName)

	if _, err := uuid.Parse(req.Token); err != nil {
		s.logger.Info("CheckByToken: token is not a UUID, nothing to look up")
		return &models.CheckResponse{}, nil
	}

	details, err := s.reservationRepo.GetDetailsByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Info("CheckByToken: token not found")
			return &models.CheckResponse{}, nil
		}
		s.logger.Error("CheckByToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: CheckByToken - repository error: %w", domain.ErrInternal, err)
	}

	if details.SellerName != req.SellerName {
		s.logger.Warn("CheckByToken: seller %s does not own reservation id=%d", req.SellerName, details.ID)
		return nil, domain.ErrForbidden
	}

	return models.FromDomainCheck(details, req.Token), nil
}

// ListTourReservations возвращает бронирования тура продавца с фильтрацией
func (s *Service) ListTourReservations(ctx context.Context, req *models.ListTourReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListTourReservations: seller=%s, tour=%d", req.SellerName, req.TourID)

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("ListTourReservations: invalid filter: %v", err)
		return nil, err
	}

	tour, err := s.tourRepo.GetBySellerAndID(ctx, req.SellerName, req.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("ListTourReservations: tour id=%d of seller %s not found", req.TourID, req.SellerName)
			return nil, domain.ErrTourNotFound
		}
		s.logger.Error("ListTourReservations: failed to get tour id=%d: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: ListTourReservations - failed to get tour: %w", domain.ErrInternal, err)
	}
	filter.TourID = tour.ID

	list, err := s.reservationRepo.ListByTour(ctx, filter)
	if err != nil {
		s.logger.Error("ListTourReservations: repository error for tour id=%d: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: ListTourReservations - repository error: %w", domain.ErrInternal, err)
	}

	s.logger.Info("ListTourReservations: fetched %d reservations for tour id=%d", len(list), tour.ID)
	return models.FromDomainReservationList(list), nil
}

// Вспомогательные методы

// getDetails загружает бронирование; бронирование другого тура считается отсутствующим
func (s *Service) getDetails(ctx context.Context, op string, tourID, reservationID int64) (*domain.ReservationDetails, error) {
	details, err := s.reservationRepo.GetDetailsByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, reservationID)
			return nil, domain.ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, reservationID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", domain.ErrInternal, op, err)
	}

	if tourID != 0 && details.TourID != tourID {
		s.logger.Warn("%s: reservation id=%d belongs to tour id=%d, not %d", op, reservationID, details.TourID, tourID)
		return nil, domain.ErrReservationNotFound
	}

	return details, nil
}

func (s *Service) update(ctx context.Context, op string, reservation *domain.Reservation) error {
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return domain.ErrReservationNotFound
		}
		s.logger.Error("%s: failed to update reservation id=%d: %v", op, reservation.ID, err)
		return fmt.Errorf("%w: %s - repository error: %w", domain.ErrInternal, op, err)
	}
	return nil
}

// classify оставляет доменные ошибки как есть, остальное считается внутренней ошибкой
func (s *Service) classify(op string, err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("%s: transaction failed: %v", op, err)
	return fmt.Errorf("%w: %s - transaction failed: %w", domain.ErrInternal, op, err)
}

func toDomainFilter(req *models.ListTourReservationsRequest) (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{TourID: req.TourID}

	if req.TourID <= 0 || strings.TrimSpace(req.SellerName) == "" {
		return filter, fmt.Errorf("%w: tourId and sellerName are required", ErrInvalidInput)
	}

	if req.Status != nil {
		status := domain.ReservationStatus(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	if req.Month != nil && req.Year == nil {
		return filter, fmt.Errorf("%w: month requires year", ErrInvalidInput)
	}
	if req.Year != nil {
		month := 1
		if req.Month != nil {
			month = *req.Month
		}
		if err := domain.ValidateYearMonth(*req.Year, month); err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Year = req.Year
		filter.Month = req.Month
	}

	return filter, nil
}
