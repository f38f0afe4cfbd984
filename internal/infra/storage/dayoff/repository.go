package dayoff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

// Repository репозиторий выходных дней туров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет правило. Поля чужого вида записываются как NULL
func (r *Repository) Create(ctx context.Context, dayoff *domain.Dayoff) (*domain.Dayoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fields := domain.FieldsOf(dayoff.Rule)

	query, args, err := psqlbuilder.Insert("dayoffs").
		Columns(
			"tour_id",
			"kind",
			"month",
			"day_of_month",
			"weekday",
		).
		Values(
			dayoff.TourID,
			string(fields.Kind),
			fields.Month,
			fields.Day,
			fields.Weekday,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dayoff.ID,
		&dayoff.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return dayoff, nil
}

// GetByTourID получает все правила тура в порядке создания
func (r *Repository) GetByTourID(ctx context.Context, tourID int64) ([]*domain.Dayoff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tour_id",
		"kind",
		"month",
		"day_of_month",
		"weekday",
		"created_at",
	).
		From("dayoffs").
		Where(squirrel.Eq{"tour_id": tourID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDayoffs(rows)
}

// scanDayoffs сканирует строки и собирает типизированные правила
func (r *Repository) scanDayoffs(rows *sql.Rows) ([]*domain.Dayoff, error) {
	dayoffs := make([]*domain.Dayoff, 0)

	for rows.Next() {
		var (
			dayoff              domain.Dayoff
			kind                string
			month, day, weekday sql.NullInt16
		)

		err := rows.Scan(
			&dayoff.ID,
			&dayoff.TourID,
			&kind,
			&month,
			&day,
			&weekday,
			&dayoff.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDayoffs - scan row: %w", ErrScanRow, err)
		}

		rule, err := domain.NewDayoffRule(domain.DayoffFields{
			Kind:    domain.DayoffKind(kind),
			Month:   nullableInt(month),
			Day:     nullableInt(day),
			Weekday: nullableInt(weekday),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: dayoff id=%d: %w", ErrInvalidRule, dayoff.ID, err)
		}
		dayoff.Rule = rule

		dayoffs = append(dayoffs, &dayoff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDayoffs - rows error: %w", ErrScanRow, err)
	}

	return dayoffs, nil
}

func nullableInt(v sql.NullInt16) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int16)
	return &n
}
