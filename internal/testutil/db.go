// Package testutil provides shared helpers for repository integration tests.
// Helpers skip automatically when TEST_DATABASE_URL is not set, so unit tests
// run without a database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/m04kA/SMC-TourBookingService/migrations"
)

// EnvDatabaseURL переменная окружения с DSN тестовой базы
const EnvDatabaseURL = "TEST_DATABASE_URL"

// NewSQLDB opens a *sql.DB for TEST_DATABASE_URL, skipping the test when it is unset.
// The connection is closed when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MigrateForTestMain applies all migrations when TEST_DATABASE_URL is set.
// Intended for TestMain, where no *testing.T is available.
func MigrateForTestMain() {
	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		return
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic("testutil.MigrateForTestMain: open: " + err.Error())
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		panic("testutil.MigrateForTestMain: create goose provider: " + err.Error())
	}
	if _, err := provider.Up(context.Background()); err != nil {
		panic("testutil.MigrateForTestMain: run migrations: " + err.Error())
	}
}

// Truncate очищает все таблицы и сбрасывает последовательности
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(context.Background(),
		`TRUNCATE reservations, dayoffs, tours, sellers RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("testutil.Truncate: %v", err)
	}
}

// SeedTour создает продавца (если нужно) и тур, возвращает id тура
func SeedTour(t *testing.T, db *sql.DB, sellerName, title string) int64 {
	t.Helper()
	ctx := context.Background()

	var sellerID int64
	err := db.QueryRowContext(ctx,
		`INSERT INTO sellers (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, sellerName).Scan(&sellerID)
	if err != nil {
		t.Fatalf("testutil.SeedTour: seller: %v", err)
	}

	var tourID int64
	err = db.QueryRowContext(ctx,
		`INSERT INTO tours (seller_id, title) VALUES ($1, $2) RETURNING id`,
		sellerID, title).Scan(&tourID)
	if err != nil {
		t.Fatalf("testutil.SeedTour: tour: %v", err)
	}

	return tourID
}
