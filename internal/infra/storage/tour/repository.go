package tour

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

// Repository репозиторий туров (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория туров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тур с именем продавца.
// Внутри транзакции строка тура блокируется (FOR UPDATE OF t): это сериализует
// регистрацию и перенос бронирований одного тура.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"t.id": id})
}

// GetBySellerAndID получает тур по имени продавца и ID
func (r *Repository) GetBySellerAndID(ctx context.Context, sellerName string, id int64) (*domain.Tour, error) {
	return r.get(ctx, "GetBySellerAndID", squirrel.Eq{"t.id": id, "s.name": sellerName})
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Eq) (*domain.Tour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"t.id",
		"t.title",
		"t.seller_id",
		"s.name",
		"t.created_at",
		"t.updated_at",
	).
		From("tours t").
		Join("sellers s ON s.id = t.seller_id").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF t")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var tour domain.Tour
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tour.ID,
		&tour.Title,
		&tour.SellerID,
		&tour.SellerName,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan tour: %w", ErrScanRow, op, err)
	}

	return &tour, nil
}
