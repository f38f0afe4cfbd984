package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	approveReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/cancel_reservation"
	checkReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/check_reservation"
	createDayoffHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/create_dayoff"
	getAvailableScheduleHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_available_schedule"
	listDayoffsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/list_dayoffs"
	listTourReservationsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/list_tour_reservations"
	registerReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/register_reservation"
	rescheduleReservationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/reschedule_reservation"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/config"
	availabilityCache "github.com/m04kA/SMC-TourBookingService/internal/infra/cache/availability"
	dayoffRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/dayoff"
	reservationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/reservation"
	tourRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/tour"
	dayoffsService "github.com/m04kA/SMC-TourBookingService/internal/service/dayoffs"
	reservationsService "github.com/m04kA/SMC-TourBookingService/internal/service/reservations"
	createDayoffUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_dayoff"
	getAvailabilityUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/get_availability"
	registerReservationUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/register_reservation"
	rescheduleReservationUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/reschedule_reservation"
	"github.com/m04kA/SMC-TourBookingService/migrations"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/redisclient"
	"github.com/m04kA/SMC-TourBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TourBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если выключены, коллектор nil и все вызовы пустые)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
		if err != nil {
			log.Fatal("Failed to create migration provider: %v", err)
		}
		results, err := provider.Up(context.Background())
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %d", len(results))
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, metricsCollector)
	}

	// Подключаемся к Redis. Без Redis сервис работает, доступность считается из БД
	var (
		scheduleCache getAvailabilityUC.AvailabilityCache
		dayoffCache   createDayoffUC.AvailabilityCache
	)
	if cfg.Cache.Enabled {
		redisClient, err := redisclient.New(context.Background(), redisclient.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  time.Duration(cfg.Redis.DialTimeout) * time.Millisecond,
			ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Millisecond,
		})
		if err != nil {
			log.Warn("Redis unavailable, availability cache disabled: %v", err)
			_ = redisClient.Close()
		} else {
			defer redisClient.Close()
			cache := availabilityCache.NewCache(redisClient)
			scheduleCache = cache
			dayoffCache = cache
			log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Cache.TTL())
		}
	}

	// Инициализируем репозитории
	tourRepository := tourRepo.NewRepository(wrappedDB)
	dayoffRepository := dayoffRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Database.SerializationRetries)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		tourRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Reservation.CancellationWindowDays,
	)
	dayoffSvc := dayoffsService.NewService(tourRepository, dayoffRepository, log)

	// Инициализируем use cases
	registerReservationUseCase := registerReservationUC.NewUseCase(
		tourRepository,
		dayoffRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Reservation.AutoApproveThreshold,
	)
	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		tourRepository,
		dayoffRepository,
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Reservation.AutoApproveThreshold,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		tourRepository,
		dayoffRepository,
		scheduleCache,
		metricsCollector,
		log,
		cfg.Cache.TTL(),
	)
	createDayoffUseCase := createDayoffUC.NewUseCase(
		tourRepository,
		dayoffRepository,
		dayoffCache,
		log,
		cfg.Cache.TTL(),
	)

	// Инициализируем handlers
	registerReservation := registerReservationHandler.NewHandler(registerReservationUseCase, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	checkReservation := checkReservationHandler.NewHandler(reservationSvc, log)
	listTourReservations := listTourReservationsHandler.NewHandler(reservationSvc, log)
	getAvailableSchedule := getAvailableScheduleHandler.NewHandler(getAvailabilityUseCase, log)
	createDayoff := createDayoffHandler.NewHandler(createDayoffUseCase, log)
	listDayoffs := listDayoffsHandler.NewHandler(dayoffSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ПОКУПАТЕЛИ: бронирования
	// ============================================================

	api.HandleFunc("/reservations/check", checkReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{tourId}/register", registerReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{tourId}/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{tourId}/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{tourId}/{reservationId}/update", rescheduleReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ПРОДАВЦЫ: управление туром
	// ============================================================

	api.HandleFunc("/tours/seller/{tourId}/dayoffs", createDayoff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/tours/seller/{sellerName}/{tourId}/dayoffs", listDayoffs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tours/seller/{sellerName}/{tourId}/reservations", listTourReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tours/seller/{sellerName}/{tourId}/available-schedule", getAvailableSchedule.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
