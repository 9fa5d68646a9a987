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
	"github.com/subosito/gotenv"

	createUnitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_unit"
	finalizeReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/finalize_reservation"
	getUnitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_unit"
	listAvailableUnitsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_available_units"
	releaseHoldHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/release_hold"
	reserveUnitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reserve_unit"
	runSweepHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/run_sweep"
	updateAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_unit_availability"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	unitsService "github.com/m04kA/SMC-ReservationService/internal/service/units"
	finalizeReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/finalize_reservation"
	listAvailableUnitsUC "github.com/m04kA/SMC-ReservationService/internal/usecase/list_available_units"
	reserveUnitUC "github.com/m04kA/SMC-ReservationService/internal/usecase/reserve_unit"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	// Подтягиваем .env (если есть) до чтения конфигурации
	_ = gotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Секреты из окружения перекрывают config.toml
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Накатываем миграции (если включено)
	if cfg.Database.Migrate {
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set goose dialect: %v", err)
		}
		if err := goose.Up(db, "migrations"); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var capacityRepository *capacityRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		capacityRepository = capacityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(capacityRepository, log)
	unitsSvc := unitsService.NewService(capacityRepository, log)

	// Инициализируем use cases
	reserveUnitUseCase := reserveUnitUC.NewUseCase(
		capacityRepository,
		txMgr,
		cfg.Reservation.DefaultHoldTTL(),
		cfg.Reservation.MaxHoldTTL(),
		log,
	)

	listAvailableUnitsUseCase := listAvailableUnitsUC.NewUseCase(
		capacityRepository,
		reservationsSvc,
		log,
	)

	finalizeReservationUseCase := finalizeReservationUC.NewUseCase(
		capacityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listAvailableUnits := listAvailableUnitsHandler.NewHandler(listAvailableUnitsUseCase, log)
	reserveUnit := reserveUnitHandler.NewHandler(reserveUnitUseCase, log)
	releaseHold := releaseHoldHandler.NewHandler(reservationsSvc, log)
	finalizeReservation := finalizeReservationHandler.NewHandler(finalizeReservationUseCase, log)
	getUnit := getUnitHandler.NewHandler(unitsSvc, log)
	createUnit := createUnitHandler.NewHandler(unitsSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(unitsSvc, log)
	runSweep := runSweepHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Выдача доступных юнитов плана
	api.HandleFunc("/plans/{planId}/available-units",
		listAvailableUnits.Handle).Methods(http.MethodGet)

	// Карточка юнита с активными холдами
	api.HandleFunc("/units/{unitId}", getUnit.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервирование ---
	// Взятие или продление холда
	protected.HandleFunc("/units/{unitId}/hold", reserveUnit.Handle).Methods(http.MethodPost)

	// Снятие холда (идемпотентное)
	protected.HandleFunc("/units/{unitId}/hold", releaseHold.Handle).Methods(http.MethodDelete)

	// Финализация: конвертация холда в бронь
	protected.HandleFunc("/units/{unitId}/finalize", finalizeReservation.Handle).Methods(http.MethodPost)

	// --- Операторские ручки ---
	// Создание capacity unit
	protected.HandleFunc("/units", createUnit.Handle).Methods(http.MethodPost)

	// Переключение доступности юнита
	protected.HandleFunc("/units/{unitId}/availability", updateAvailability.Handle).Methods(http.MethodPatch)

	// Ручной запуск уборки истёкших холдов
	protected.HandleFunc("/maintenance/sweep", runSweep.Handle).Methods(http.MethodPost)

	// Фоновая уборка истёкших холдов
	stopSweepCh := make(chan struct{})
	sweepDoneCh := make(chan struct{})
	go func() {
		defer close(sweepDoneCh)
		ticker := time.NewTicker(cfg.Reservation.SweepInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				reclaimed, err := reservationsSvc.SweepExpired(context.Background())
				if err != nil {
					log.Error("Background sweep failed: %v", err)
					continue
				}
				if reclaimed > 0 {
					log.Info("Background sweep reclaimed %d expired holds", reclaimed)
				}
				if cfg.Metrics.Enabled {
					metricsCollector.HoldsReclaimedTotal.Add(float64(reclaimed))
				}
			case <-stopSweepCh:
				return
			}
		}
	}()
	log.Info("Background sweeper started (interval=%s)", cfg.Reservation.SweepInterval())

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

	// Останавливаем фоновый sweeper
	close(stopSweepCh)
	<-sweepDoneCh
	log.Info("Background sweeper stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
