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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignAppointmentEmployeeHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/assign_appointment_employee"
	cancelAppointmentHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/cancel_appointment"
	checkSlotCapacityHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/check_slot_capacity"
	createAppointmentHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/create_appointment"
	findAvailableEmployeeHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/find_available_employee"
	getAppointmentHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/get_available_slots"
	getDayScheduleHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/get_day_schedule"
	getUserAppointmentsHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/get_user_appointments"
	updateAppointmentStatusHandler "github.com/Serryudy/EAD-sub000/internal/api/handlers/update_appointment_status"
	"github.com/Serryudy/EAD-sub000/internal/api/middleware"
	"github.com/Serryudy/EAD-sub000/internal/config"
	"github.com/Serryudy/EAD-sub000/internal/domain"
	appointmentRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/appointment"
	calendarRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/calendar"
	employeeRepo "github.com/Serryudy/EAD-sub000/internal/infra/storage/employee"
	catalogServiceClient "github.com/Serryudy/EAD-sub000/internal/integrations/catalogservice"
	appointmentsService "github.com/Serryudy/EAD-sub000/internal/service/appointments"
	assignEmployeeUC "github.com/Serryudy/EAD-sub000/internal/usecase/assign_employee"
	checkSlotCapacityUC "github.com/Serryudy/EAD-sub000/internal/usecase/check_slot_capacity"
	createAppointmentUC "github.com/Serryudy/EAD-sub000/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/Serryudy/EAD-sub000/internal/usecase/get_available_slots"
	"github.com/Serryudy/EAD-sub000/pkg/dbmetrics"
	"github.com/Serryudy/EAD-sub000/pkg/logger"
	"github.com/Serryudy/EAD-sub000/pkg/metrics"
	"github.com/Serryudy/EAD-sub000/pkg/simpletxmanager"
	"github.com/Serryudy/EAD-sub000/pkg/txmanager"
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

	log.Info("Starting AppointmentService...")
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

	// Инициализируем клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		employeeRepository    *employeeRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Загружаем бизнес-календарь: персистентная конфигурация имеет приоритет,
	// при её отсутствии используется секция calendar из config.toml
	calendar := loadCalendar(calendarRepository, cfg, log)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		employeeRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		calendar,
		log,
	)

	checkSlotCapacityUseCase := checkSlotCapacityUC.NewUseCase(
		appointmentRepository,
		calendar,
		log,
	)

	assignEmployeeUseCase := assignEmployeeUC.NewUseCase(
		employeeRepository,
		appointmentRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		catalogClient,
		txMgr,
		calendar,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlotCapacity := checkSlotCapacityHandler.NewHandler(checkSlotCapacityUseCase, log)
	findAvailableEmployee := findAvailableEmployeeHandler.NewHandler(assignEmployeeUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(appointmentSvc, log)
	assignAppointmentEmployee := assignAppointmentEmployeeHandler.NewHandler(appointmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/appointments/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Консультативная проверка занятости слота
	api.HandleFunc("/appointments/slot-capacity", checkSlotCapacity.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Расписание дня (для персонала)
	protected.HandleFunc("/appointments/day-schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для персонала)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Ручное назначение техника (для персонала)
	protected.HandleFunc("/appointments/{appointmentId}/assign", assignAppointmentEmployee.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Техники ---
	// Поиск свободного техника на окно
	protected.HandleFunc("/employees/available", findAvailableEmployee.Handle).Methods(http.MethodGet)

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

// loadCalendar загружает бизнес-календарь из БД, при отсутствии
// персистентной конфигурации возвращает календарь из config.toml.
// Календарь неизменяем после старта сервиса.
func loadCalendar(repo *calendarRepo.Repository, cfg *config.Config, log *logger.Logger) *domain.BusinessCalendar {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	calendar, err := repo.Load(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			log.Info("No persisted calendar found, using config.toml calendar")
		} else {
			log.Warn("Failed to load persisted calendar, falling back to config.toml: %v", err)
		}
		return cfg.Calendar.ToDomainCalendar()
	}

	log.Info("Business calendar loaded from database")
	return calendar
}
