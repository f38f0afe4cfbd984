package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"r.id",
	"r.tour_id",
	"r.token",
	"r.status",
	"r.reservation_date",
	"r.year",
	"r.month",
	"r.day",
	"r.username",
	"r.phone_number",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Подсчет мест и вставка должны выполняться в одной транзакции с блокировкой тура.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"tour_id",
			"token",
			"status",
			"reservation_date",
			"year",
			"month",
			"day",
			"username",
			"phone_number",
		).
		Values(
			reservation.TourID,
			reservation.Token,
			string(reservation.Status),
			reservation.Date,
			reservation.Year,
			reservation.Month,
			reservation.Day,
			reservation.Username,
			reservation.PhoneNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetDetailsByID получает бронирование вместе с названием тура и именем продавца
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	return r.getDetails(ctx, "GetDetailsByID", squirrel.Eq{"r.id": id})
}

// GetDetailsByToken получает бронирование по токену
func (r *Repository) GetDetailsByToken(ctx context.Context, token string) (*domain.ReservationDetails, error) {
	return r.getDetails(ctx, "GetDetailsByToken", squirrel.Eq{"r.token": token})
}

func (r *Repository) getDetails(ctx context.Context, op string, where squirrel.Eq) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(append(reservationColumns, "t.title", "s.name")...).
		From("reservations r").
		Join("tours t ON t.id = r.tour_id").
		Join("sellers s ON s.id = t.seller_id").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var details domain.ReservationDetails
	dest := append(scanTargets(&details.Reservation), &details.TourTitle, &details.SellerName)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
	}

	return &details, nil
}

// GetByTourAndDate получает все бронирования тура на дату (любого статуса)
func (r *Repository) GetByTourAndDate(ctx context.Context, tourID int64, date string) ([]*domain.Reservation, error) {
	return r.list(ctx, "GetByTourAndDate", psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.tour_id": tourID, "r.reservation_date": date}).
		OrderBy("r.id ASC"))
}

// FindByIdentity ищет бронирования клиента на дату в туре.
// Неотмененные бронирования идут первыми.
func (r *Repository) FindByIdentity(ctx context.Context, tourID int64, username, phoneNumber, date string) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{
			"r.tour_id":          tourID,
			"r.username":         username,
			"r.phone_number":     phoneNumber,
			"r.reservation_date": date,
		}).
		OrderBy("(r.status = 'CANCELED') ASC", "r.id DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	return r.list(ctx, "FindByIdentity", selectBuilder)
}

// ListByTour получает бронирования тура с фильтрацией по статусу и месяцу
func (r *Repository) ListByTour(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.tour_id": filter.TourID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": string(*filter.Status)})
	}
	if filter.Year != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.year": *filter.Year})
		if filter.Month != nil {
			selectBuilder = selectBuilder.Where(squirrel.Eq{"r.month": *filter.Month})
		}
	}

	return r.list(ctx, "ListByTour", selectBuilder.OrderBy("r.reservation_date ASC", "r.id ASC"))
}

// Update сохраняет статус, токен и дату бронирования
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", string(reservation.Status)).
		Set("token", reservation.Token).
		Set("reservation_date", reservation.Date).
		Set("year", reservation.Year).
		Set("month", reservation.Month).
		Set("day", reservation.Day).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(scanTargets(&reservation)...); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return reservations, nil
}

// scanTargets порядок совпадает с reservationColumns
func scanTargets(r *domain.Reservation) []interface{} {
	return []interface{}{
		&r.ID,
		&r.TourID,
		&r.Token,
		(*string)(&r.Status),
		&r.Date,
		&r.Year,
		&r.Month,
		&r.Day,
		&r.Username,
		&r.PhoneNumber,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}
