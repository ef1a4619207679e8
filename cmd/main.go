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

	blockSlotHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/block_slot"
	createAppointmentHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/create_appointment"
	createSlotHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/delete_slot"
	getAppointmentHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/get_available_slots"
	getCustomerAppointmentsHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/get_customer_appointments"
	listSlotAppointmentsHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/list_slot_appointments"
	listSlotsHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/list_slots"
	unblockSlotHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/unblock_slot"
	updateStatusHandler "github.com/m04kA/ATL-AppointmentService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/ATL-AppointmentService/internal/api/middleware"
	"github.com/m04kA/ATL-AppointmentService/internal/config"
	"github.com/m04kA/ATL-AppointmentService/internal/events"
	"github.com/m04kA/ATL-AppointmentService/internal/infra/cache/slotcache"
	appointmentRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/ATL-AppointmentService/internal/infra/storage/slot"
	orderServiceClient "github.com/m04kA/ATL-AppointmentService/internal/integrations/orderservice"
	appointmentsService "github.com/m04kA/ATL-AppointmentService/internal/service/appointments"
	ordersyncService "github.com/m04kA/ATL-AppointmentService/internal/service/ordersync"
	slotsService "github.com/m04kA/ATL-AppointmentService/internal/service/slots"
	createAppointmentUC "github.com/m04kA/ATL-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/ATL-AppointmentService/internal/usecase/get_available_slots"
	updateStatusUC "github.com/m04kA/ATL-AppointmentService/internal/usecase/update_appointment_status"
	"github.com/m04kA/ATL-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/ATL-AppointmentService/pkg/logger"
	"github.com/m04kA/ATL-AppointmentService/pkg/metrics"
	"github.com/m04kA/ATL-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/ATL-AppointmentService/pkg/txmanager"
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

	log.Info("Starting ATL-AppointmentService...")
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

	// Клиент OrderService
	orderClient := orderServiceClient.NewClient(
		cfg.OrderService.URL,
		time.Duration(cfg.OrderService.Timeout)*time.Second,
		log,
	)
	log.Info("OrderService client initialized (url=%s, timeout=%ds)",
		cfg.OrderService.URL, cfg.OrderService.Timeout)

	// Кеш доступных слотов (redis опционален: без него работаем напрямую)
	var cache slotcache.Cache = slotcache.NoopCache{}
	if cfg.Cache.Enabled {
		if client := slotcache.NewRedisClient(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB); client != nil {
			cache = slotcache.NewRedisCache(client, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
			log.Info("Slot availability cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
			defer client.Close()
		} else {
			log.Warn("Redis at %s is unreachable, running without slot cache", cfg.Cache.Addr)
		}
	}

	// Публикация событий (rabbitmq опционален)
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewRabbitPublisher(cfg.Events.URL, cfg.Events.Queue, log, metricsCollector)
		log.Info("Event publishing enabled (queue=%s)", cfg.Events.Queue)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		slotRepository        *slotRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, slotRepository, log)
	slotSvc := slotsService.NewService(slotRepository, appointmentRepository, cache, log)
	orderSyncSvc := ordersyncService.NewService(orderClient, publisher, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		orderClient,
		txMgr,
		cache,
		metricsCollector,
		log,
		cfg.Booking.GridIntervalMinutes,
		cfg.Booking.HorizonDays,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		orderSyncSvc,
		txMgr,
		cache,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		cache,
		log,
		cfg.Booking.GridIntervalMinutes,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	listSlotAppointments := listSlotAppointmentsHandler.NewHandler(appointmentSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)

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

	// Доступные слоты с временами начала на сетке
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на визит ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи (подтверждение, завершение, отмена)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (управление слотами, только для персонала)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffOnly)

	// Записи слота
	staff.HandleFunc("/slots/{slotId}/appointments", listSlotAppointments.Handle).Methods(http.MethodGet)

	// Создание рабочего слота
	staff.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)

	// Список слотов за период (включая заблокированные и заполненные)
	staff.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// Блокировка и разблокировка слота
	staff.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPost)

	// Удаление слота без занятых мест
	staff.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

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
