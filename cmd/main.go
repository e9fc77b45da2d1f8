package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SlotBookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/get_user_bookings"
	holidaysHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/holidays"
	settingsHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/settings"
	workingHoursHandler "github.com/m04kA/SMC-SlotBookingService/internal/api/handlers/working_hours"
	"github.com/m04kA/SMC-SlotBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/database"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	availabilityService "github.com/m04kA/SMC-SlotBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SlotBookingService/internal/service/calendar"
	cancelBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
	getAvailableDaysUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_slots"
	sweepExpiredUC "github.com/m04kA/SMC-SlotBookingService/internal/usecase/sweep_expired"
	"github.com/m04kA/SMC-SlotBookingService/internal/worker/expiry"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
)

// configPathEnv переменная окружения с путем к файлу конфигурации
const configPathEnv = "SLOTS_CONFIG"

type eventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
}

func main() {
	configPath := os.Getenv(configPathEnv)
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SlotBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	rawDB, txManager, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer rawDB.Close()

	stopStatsCh := make(chan struct{})
	defer close(stopStatsCh)
	db := dbmetrics.WrapWithDefault(rawDB, metricsCollector, cfg.Metrics.ServiceName, stopStatsCh)
	txMgr := txManager(db)

	builder, err := database.Dialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Failed to select SQL dialect: %v", err)
	}

	applied, err := database.Migrate(ctx, db, builder, log)
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database ready (driver=%s, migrations applied=%d)", cfg.Database.Driver, applied)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(db, builder)
	calendarRepository := calendarRepo.NewRepository(db, builder)

	// Настройки из конфигурации записываются только при первом запуске
	defaults, err := cfg.Booking.Settings()
	if err != nil {
		log.Fatal("Invalid booking settings: %v", err)
	}
	seeded, err := calendarRepository.EnsureSettings(ctx, defaults)
	if err != nil {
		log.Fatal("Failed to seed booking settings: %v", err)
	}
	if seeded {
		log.Info("Booking settings seeded from config (horizon=%d days, offset=UTC%+d)",
			defaults.HorizonDays, defaults.TimezoneOffsetHours)
	}

	// Публикация событий (RabbitMQ или заглушка)
	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %q", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Сервисы
	availabilitySvc := availabilityService.NewService(calendarRepository, bookingRepository, log)
	calendarSvc := calendarService.NewService(calendarRepository, bookingRepository, txMgr, log)

	// Use cases
	sweepExpiredUseCase := sweepExpiredUC.NewUseCase(bookingRepository, calendarRepository, publisher, metricsCollector, log)
	bookingSvc := bookingsService.NewService(bookingRepository, sweepExpiredUseCase, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		calendarRepository,
		availabilitySvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		calendarRepository,
		availabilitySvc,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(calendarRepository, availabilitySvc, log)
	getAvailableDaysUseCase := getAvailableDaysUC.NewUseCase(calendarRepository, availabilitySvc, log)

	// Handlers
	handlers := api.Handlers{
		Availability:  getAvailabilityHandler.NewHandler(getAvailableSlotsUseCase, getAvailableDaysUseCase, log),
		CreateBooking: createBookingHandler.NewHandler(createBookingUseCase, log),
		UserBookings:  getUserBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:    getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking: cancelBookingHandler.NewHandler(cancelBookingUseCase, log),
		AdminBookings: getAdminBookingsHandler.NewHandler(bookingSvc, log),
		Settings:      settingsHandler.NewHandler(calendarSvc, log),
		WorkingHours:  workingHoursHandler.NewHandler(calendarSvc, log),
		Holidays:      holidaysHandler.NewHandler(calendarSvc, log),
	}

	opts := api.Options{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		RequestTimeout: cfg.Server.RequestTimeoutDuration(),
		Health: func(w http.ResponseWriter, r *http.Request) {
			if err := rawDB.PingContext(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	router := api.NewRouter(handlers, opts, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Sweeper.Enabled {
		worker := expiry.NewWorker(sweepExpiredUseCase, log, expiry.Config{
			Interval:   time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute,
			RunTimeout: time.Duration(cfg.Sweeper.RunTimeout) * time.Second,
			RunOnStart: true,
		})
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	// Graceful shutdown по сигналу или при падении одной из горутин
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server exited gracefully")
}

// openDatabase открывает соединение по драйверу из конфигурации
// и возвращает фабрику менеджера транзакций под этот драйвер
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, func(txmanager.TxBeginner) *txmanager.TransactionManager, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := database.OpenSQLite(ctx, cfg.Path, cfg.BusyTimeoutMs)
		if err != nil {
			return nil, nil, err
		}
		return db, txmanager.NewDefaultIsolation, nil
	default:
		db, err := database.OpenPostgres(ctx, cfg.DSN(), database.PoolOptions{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		return db, txmanager.NewTransactionManager, nil
	}
}
