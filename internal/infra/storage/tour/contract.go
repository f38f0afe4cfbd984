package tour

import "github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"

// DBExecutor исполнитель запросов: *dbmetrics.DB, *sql.DB или транзакция
type DBExecutor = dbmetrics.DBExecutor
