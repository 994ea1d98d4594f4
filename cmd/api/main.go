package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agriwork-platform/workforce-service/pkg/cloudevents"
	"github.com/agriwork-platform/workforce-service/pkg/kafka"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/metrics"
	"github.com/agriwork-platform/workforce-service/pkg/middleware"
	"github.com/agriwork-platform/workforce-service/pkg/mongodb"
	"github.com/agriwork-platform/workforce-service/pkg/outbox"

	"github.com/agriwork-platform/workforce-service/internal/api/handlers"
	"github.com/agriwork-platform/workforce-service/internal/application"
	"github.com/agriwork-platform/workforce-service/internal/infrastructure/cache"
	mongoRepo "github.com/agriwork-platform/workforce-service/internal/infrastructure/mongodb"
)

const serviceName = "workforce-service"

func main() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), loadConfig(), appDependencies{}, signalCh); err != nil {
		os.Exit(1)
	}
}

type mongoConnection interface {
	Database() *mongo.Database
	Close(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

type outboxPublisher interface {
	Start(ctx context.Context) error
	Stop() error
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type employeeRepository interface {
	application.EmployeeRepository
	GetOutboxRepository() outbox.Repository
}

type scheduleRepository interface {
	application.ScheduleRepository
	GetOutboxRepository() outbox.Repository
}

type workEntryRepository interface {
	application.WorkEntryRepository
	GetOutboxRepository() outbox.Repository
}

type appDependencies struct {
	newMetrics             func(cfg *metrics.Config) *metrics.Metrics
	newMongoClient         func(ctx context.Context, cfg *mongodb.Config) (*mongodb.Client, error)
	newMongoConnection     func(client *mongodb.Client, logger *logging.Logger) mongoConnection
	newKafkaProducer       func(cfg *kafka.Config) *kafka.Producer
	newEventFactory        func(source string) *cloudevents.EventFactory
	newEmployeeRepository  func(db *mongo.Database, factory *cloudevents.EventFactory) employeeRepository
	newScheduleRepository  func(db *mongo.Database, factory *cloudevents.EventFactory) scheduleRepository
	newWorkEntryRepository func(db *mongo.Database, factory *cloudevents.EventFactory) workEntryRepository
	newDraftRepository     func(db *mongo.Database) application.DraftRepository
	newUserRepository      func(db *mongo.Database) application.UserRepository
	newOutboxPublisher     func(repo outbox.Repository, producer *kafka.Producer, logger *logging.Logger, m *metrics.Metrics, cfg *outbox.PublisherConfig) outboxPublisher
	newHTTPServer          func(addr string, handler http.Handler) httpServer
}

func defaultDependencies() appDependencies {
	return appDependencies{
		newMetrics:     metrics.New,
		newMongoClient: mongodb.NewClient,
		newMongoConnection: func(client *mongodb.Client, logger *logging.Logger) mongoConnection {
			return mongodb.NewBreakerClient(client, logger.Logger)
		},
		newKafkaProducer: kafka.NewProducer,
		newEventFactory:  cloudevents.NewEventFactory,
		newEmployeeRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) employeeRepository {
			return mongoRepo.NewEmployeeRepository(db, factory)
		},
		newScheduleRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) scheduleRepository {
			return mongoRepo.NewScheduleRepository(db, factory)
		},
		newWorkEntryRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) workEntryRepository {
			return mongoRepo.NewWorkEntryRepository(db, factory)
		},
		newDraftRepository: func(db *mongo.Database) application.DraftRepository {
			return mongoRepo.NewDraftRepository(db)
		},
		newUserRepository: func(db *mongo.Database) application.UserRepository {
			return mongoRepo.NewUserRepository(db)
		},
		newOutboxPublisher: func(repo outbox.Repository, producer *kafka.Producer, logger *logging.Logger, m *metrics.Metrics, cfg *outbox.PublisherConfig) outboxPublisher {
			return outbox.NewPublisher(repo, producer, logger, m, cfg)
		},
		newHTTPServer: func(addr string, handler http.Handler) httpServer {
			return &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}
		},
	}
}

func (d appDependencies) withDefaults() appDependencies {
	def := defaultDependencies()
	if d.newMetrics == nil {
		d.newMetrics = def.newMetrics
	}
	if d.newMongoClient == nil {
		d.newMongoClient = def.newMongoClient
	}
	if d.newMongoConnection == nil {
		d.newMongoConnection = def.newMongoConnection
	}
	if d.newKafkaProducer == nil {
		d.newKafkaProducer = def.newKafkaProducer
	}
	if d.newEventFactory == nil {
		d.newEventFactory = def.newEventFactory
	}
	if d.newEmployeeRepository == nil {
		d.newEmployeeRepository = def.newEmployeeRepository
	}
	if d.newScheduleRepository == nil {
		d.newScheduleRepository = def.newScheduleRepository
	}
	if d.newWorkEntryRepository == nil {
		d.newWorkEntryRepository = def.newWorkEntryRepository
	}
	if d.newDraftRepository == nil {
		d.newDraftRepository = def.newDraftRepository
	}
	if d.newUserRepository == nil {
		d.newUserRepository = def.newUserRepository
	}
	if d.newOutboxPublisher == nil {
		d.newOutboxPublisher = def.newOutboxPublisher
	}
	if d.newHTTPServer == nil {
		d.newHTTPServer = def.newHTTPServer
	}
	return d
}

func run(ctx context.Context, config *Config, deps appDependencies, signalCh <-chan os.Signal) error {
	deps = deps.withDefaults()
	if config == nil {
		config = loadConfig()
	}

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting workforce-service API")

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := deps.newMetrics(metricsConfig)
	logger.Info("Metrics initialized")

	mongoClient, err := deps.newMongoClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	mongoConn := deps.newMongoConnection(mongoClient, logger)
	if mongoConn != nil {
		defer mongoConn.Close(ctx)
	}
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	kafkaProducer := deps.newKafkaProducer(config.Kafka)
	if kafkaProducer != nil {
		defer func() {
			_ = kafkaProducer.Close()
		}()
	}
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := deps.newEventFactory("/workforce-service")

	var db *mongo.Database
	if mongoConn != nil {
		db = mongoConn.Database()
	}
	employeeRepo := deps.newEmployeeRepository(db, eventFactory)
	scheduleRepo := deps.newScheduleRepository(db, eventFactory)
	entryRepo := deps.newWorkEntryRepository(db, eventFactory)
	draftRepo := deps.newDraftRepository(db)
	userRepo := deps.newUserRepository(db)

	// Read-through caches for the two lookup-heavy aggregates. The repos
	// share one outbox collection, so a single publisher drains all of them.
	cachedEmployees := cache.NewCachedEmployeeRepository(employeeRepo)
	cachedSchedules := cache.NewCachedScheduleRepository(scheduleRepo)

	outboxPub := deps.newOutboxPublisher(
		entryRepo.GetOutboxRepository(),
		kafkaProducer,
		logger,
		m,
		&outbox.PublisherConfig{
			PollInterval: 1 * time.Second,
			BatchSize:    100,
		},
	)
	if err := outboxPub.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		return fmt.Errorf("failed to start outbox publisher: %w", err)
	}
	defer func() {
		_ = outboxPub.Stop()
	}()
	logger.Info("Outbox publisher started")

	employeeService := application.NewEmployeeApplicationService(cachedEmployees, cachedSchedules, entryRepo, logger)
	scheduleService := application.NewScheduleApplicationService(cachedSchedules, entryRepo, logger, m)
	workEntryService := application.NewWorkEntryApplicationService(entryRepo, cachedSchedules, draftRepo, logger, m)
	payrollService := application.NewPayrollApplicationService(cachedSchedules, entryRepo, cachedEmployees, logger, m)
	draftService := application.NewDraftApplicationService(draftRepo, logger)
	userService := application.NewUserApplicationService(userRepo, logger)

	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.Identity(&middleware.AuthConfig{
		Resolver: userService,
		Required: false,
	}))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		if mongoConn == nil {
			return fmt.Errorf("mongo client unavailable")
		}
		return mongoConn.HealthCheck(ctx)
	}))

	router.GET("/metrics", middleware.MetricsEndpoint(m))

	apiV1 := router.Group("/api/v1")

	handlers.NewEmployeeHandlers(employeeService, logger).RegisterRoutes(apiV1)
	handlers.NewScheduleHandlers(scheduleService, logger).RegisterRoutes(apiV1)
	handlers.NewWorkEntryHandlers(workEntryService, logger).RegisterRoutes(apiV1)
	handlers.NewPayrollHandlers(payrollService, logger).RegisterRoutes(apiV1)
	handlers.NewDraftHandlers(draftService, logger).RegisterRoutes(apiV1)
	handlers.NewUserHandlers(userService, logger).RegisterRoutes(apiV1)

	srv := deps.newHTTPServer(config.ServerAddr, router)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	if signalCh == nil {
		signalCh = make(chan os.Signal, 1)
	}
	select {
	case <-signalCh:
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8020"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "workforce_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     "workforce-service",
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
