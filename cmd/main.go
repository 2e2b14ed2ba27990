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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/auth"
	barbersHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/barbers"
	cancelBookingHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/get_my_bookings"
	listBookingsHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/list_bookings"
	servicesHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/services"
	updateBookingStatusHandler "github.com/dkoval/barbershop-booking/internal/api/handlers/update_booking_status"
	"github.com/dkoval/barbershop-booking/internal/api/middleware"
	"github.com/dkoval/barbershop-booking/internal/config"
	"github.com/dkoval/barbershop-booking/internal/domain"
	"github.com/dkoval/barbershop-booking/internal/infra/events"
	barberRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/barber"
	bookingRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/booking"
	serviceRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/service"
	userRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/user"
	accountsService "github.com/dkoval/barbershop-booking/internal/service/accounts"
	bookingsService "github.com/dkoval/barbershop-booking/internal/service/bookings"
	catalogService "github.com/dkoval/barbershop-booking/internal/service/catalog"
	createBookingUC "github.com/dkoval/barbershop-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/dkoval/barbershop-booking/internal/usecase/get_available_slots"
	"github.com/dkoval/barbershop-booking/pkg/authtoken"
	"github.com/dkoval/barbershop-booking/pkg/dbmetrics"
	"github.com/dkoval/barbershop-booking/pkg/logger"
	"github.com/dkoval/barbershop-booking/pkg/metrics"
	"github.com/dkoval/barbershop-booking/pkg/simpletxmanager"
	"github.com/dkoval/barbershop-booking/pkg/txmanager"
	"github.com/dkoval/barbershop-booking/pkg/types"
)

// EventPublisher объединяет интерфейсы публикации событий для wiring
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
	BookingStatusChanged(ctx context.Context, b *domain.Booking) error
	Close() error
}

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

	log.Info("Starting barbershop-booking...")
	log.Info("Configuration loaded from config.toml")

	// Собираем каталог слотов из конфигурации
	catalog, err := buildSlotCatalog(cfg)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog built: %d slots (%s - %s, step %d min)",
		catalog.Len(), cfg.Slots.OpenTime, cfg.Slots.CloseTime, cfg.Slots.StepMinutes)

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

	// Инициализируем публикацию событий
	var publisher EventPublisher
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = p
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		publisher = events.NewNoopPublisher()
		log.Info("Event publishing disabled")
	}
	defer publisher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		barberRepository  *barberRepo.Repository
		serviceRepository *serviceRepo.Repository
		userRepository    *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		barberRepository = barberRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		barberRepository = barberRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	tokenIssuer := authtoken.NewIssuer(
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	bookingSvc := bookingsService.NewService(bookingRepository, publisher, log)
	catalogSvc := catalogService.NewService(barberRepository, serviceRepository, log)
	accountsSvc := accountsService.NewService(userRepository, tokenIssuer, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		barberRepository,
		serviceRepository,
		catalog,
		txMgr,
		publisher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalog,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	barbers := barbersHandler.NewHandler(catalogSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	auth := authHandler.NewHandler(accountsSvc, log)

	// Auth middleware
	authMW := middleware.NewAuth([]byte(cfg.Auth.JWTSecret), log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			log,
		)
		defer limiter.Stop()
		authRoutes.Use(limiter.Middleware)
		log.Info("Rate limiter enabled for auth routes: %d req / %d sec",
			cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}
	authRoutes.HandleFunc("/register", auth.HandleRegister).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", auth.HandleLogin).Methods(http.MethodPost)

	// Каталог барберов и услуг
	api.HandleFunc("/barbers", barbers.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}", barbers.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/services", services.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", services.HandleGet).Methods(http.MethodGet)

	// Доступные слоты барбера на дату
	api.HandleFunc("/barbers/{barberId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (клиент передает контактные данные в теле)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW.Require)

	// Бронирование по ID (владелец или админ)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (владелец или админ)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований текущего пользователя
	protected.HandleFunc("/my/bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен с ролью admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(authMW.RequireAdmin)

	// Список всех бронирований с фильтрацией
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// Управление каталогом
	admin.HandleFunc("/barbers", barbers.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/barbers/{barberId}", barbers.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/barbers/{barberId}", barbers.HandleDeactivate).Methods(http.MethodDelete)
	admin.HandleFunc("/services", services.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", services.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", services.HandleDeactivate).Methods(http.MethodDelete)

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

// buildSlotCatalog собирает каталог слотов из конфигурации
func buildSlotCatalog(cfg *config.Config) (*domain.SlotCatalog, error) {
	openTime, err := types.NewTimeStringFromString(cfg.Slots.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open_time %q: %w", cfg.Slots.OpenTime, err)
	}

	closeTime, err := types.NewTimeStringFromString(cfg.Slots.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close_time %q: %w", cfg.Slots.CloseTime, err)
	}

	return domain.NewSlotCatalog(openTime, closeTime, cfg.Slots.StepMinutes)
}
