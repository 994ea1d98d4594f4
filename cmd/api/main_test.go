package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agriwork-platform/workforce-service/pkg/cloudevents"
	"github.com/agriwork-platform/workforce-service/pkg/kafka"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/metrics"
	"github.com/agriwork-platform/workforce-service/pkg/mongodb"
	"github.com/agriwork-platform/workforce-service/pkg/outbox"

	"github.com/agriwork-platform/workforce-service/internal/application"
	"github.com/agriwork-platform/workforce-service/internal/domain"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("WORKFORCE_TEST_ENV", "value")

	if got := getEnv("WORKFORCE_TEST_ENV", "default"); got != "value" {
		t.Fatalf("getEnv returned %q", got)
	}
	if got := getEnv("WORKFORCE_MISSING_ENV", "default"); got != "default" {
		t.Fatalf("getEnv default returned %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("MONGODB_URI", "mongodb://example:27017")
	t.Setenv("MONGODB_DATABASE", "workforce_test")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")

	cfg := loadConfig()

	if cfg.ServerAddr != ":9000" {
		t.Fatalf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.MongoDB.URI != "mongodb://example:27017" || cfg.MongoDB.Database != "workforce_test" {
		t.Fatalf("MongoDB config = %#v", cfg.MongoDB)
	}
	if cfg.MongoDB.ConnectTimeout != 10*time.Second || cfg.MongoDB.MaxPoolSize != 100 || cfg.MongoDB.MinPoolSize != 10 {
		t.Fatalf("MongoDB defaults unexpected: %#v", cfg.MongoDB)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Fatalf("Kafka brokers = %#v", cfg.Kafka.Brokers)
	}
}

type fakeMongoConnection struct {
	closeCalls  int
	healthCalls int
}

func (f *fakeMongoConnection) Database() *mongo.Database {
	return nil
}

func (f *fakeMongoConnection) Close(ctx context.Context) error {
	f.closeCalls++
	return nil
}

func (f *fakeMongoConnection) HealthCheck(ctx context.Context) error {
	f.healthCalls++
	return nil
}

type fakeOutboxPublisher struct {
	startCalls int
	stopCalls  int
	startErr   error
}

func (f *fakeOutboxPublisher) Start(ctx context.Context) error {
	f.startCalls++
	return f.startErr
}

func (f *fakeOutboxPublisher) Stop() error {
	f.stopCalls++
	return nil
}

type fakeServer struct {
	listenCalls   int
	shutdownCalls int
}

func (f *fakeServer) ListenAndServe() error {
	f.listenCalls++
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdownCalls++
	return nil
}

type fakeOutboxStore struct{}

func (f *fakeOutboxStore) Save(ctx context.Context, event *outbox.OutboxEvent) error {
	return nil
}

func (f *fakeOutboxStore) SaveAll(ctx context.Context, events []*outbox.OutboxEvent) error {
	return nil
}

func (f *fakeOutboxStore) FindUnpublished(ctx context.Context, limit int) ([]*outbox.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxStore) MarkPublished(ctx context.Context, eventID string) error {
	return nil
}

func (f *fakeOutboxStore) IncrementRetry(ctx context.Context, eventID string, errorMsg string) error {
	return nil
}

func (f *fakeOutboxStore) GetByID(ctx context.Context, eventID string) (*outbox.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxStore) FindByAggregateID(ctx context.Context, aggregateID string) ([]*outbox.OutboxEvent, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	outboxRepo outbox.Repository
}

func (f *fakeEmployeeRepo) Save(ctx context.Context, employee *domain.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	return nil
}

func (f *fakeEmployeeRepo) GetOutboxRepository() outbox.Repository {
	return f.outboxRepo
}

type fakeScheduleRepo struct {
	outboxRepo outbox.Repository
}

func (f *fakeScheduleRepo) Save(ctx context.Context, schedule *domain.Schedule) error {
	return nil
}

func (f *fakeScheduleRepo) FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, schedule *domain.Schedule) error {
	return nil
}

func (f *fakeScheduleRepo) GetOutboxRepository() outbox.Repository {
	return f.outboxRepo
}

type fakeWorkEntryRepo struct {
	outboxRepo outbox.Repository
}

func (f *fakeWorkEntryRepo) Save(ctx context.Context, entry *domain.WorkEntry) error {
	return nil
}

func (f *fakeWorkEntryRepo) FindByAssignment(ctx context.Context, scheduleID, itemID, employeeID string) ([]*domain.WorkEntry, error) {
	return nil, nil
}

func (f *fakeWorkEntryRepo) FindByScheduleAndEmployee(ctx context.Context, scheduleID, employeeID string) ([]*domain.WorkEntry, error) {
	return nil, nil
}

func (f *fakeWorkEntryRepo) FindByScheduleIDs(ctx context.Context, scheduleIDs []string) ([]*domain.WorkEntry, error) {
	return nil, nil
}

func (f *fakeWorkEntryRepo) FindLocked(ctx context.Context) ([]*domain.WorkEntry, error) {
	return nil, nil
}

func (f *fakeWorkEntryRepo) SetLocked(ctx context.Context, scheduleID, itemID, employeeID string, locked bool) (int64, error) {
	return 0, nil
}

func (f *fakeWorkEntryRepo) DeleteByScheduleID(ctx context.Context, scheduleID string) (int64, error) {
	return 0, nil
}

func (f *fakeWorkEntryRepo) CountByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	return 0, nil
}

func (f *fakeWorkEntryRepo) GetOutboxRepository() outbox.Repository {
	return f.outboxRepo
}

type fakeDraftRepo struct{}

func (f *fakeDraftRepo) Save(ctx context.Context, draft *domain.Draft) error {
	return nil
}

func (f *fakeDraftRepo) Find(ctx context.Context, key domain.DraftKey) (*domain.Draft, error) {
	return nil, nil
}

func (f *fakeDraftRepo) Delete(ctx context.Context, key domain.DraftKey) error {
	return nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*domain.User, error) {
	return nil, nil
}

func TestRunSuccess(t *testing.T) {
	fakeMongo := &fakeMongoConnection{}
	publisher := &fakeOutboxPublisher{}
	server := &fakeServer{}

	deps := appDependencies{
		newMetrics: metrics.New,
		newMongoClient: func(ctx context.Context, cfg *mongodb.Config) (*mongodb.Client, error) {
			return nil, nil
		},
		newMongoConnection: func(client *mongodb.Client, logger *logging.Logger) mongoConnection {
			return fakeMongo
		},
		newKafkaProducer: kafka.NewProducer,
		newEventFactory:  cloudevents.NewEventFactory,
		newEmployeeRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) employeeRepository {
			return &fakeEmployeeRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newScheduleRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) scheduleRepository {
			return &fakeScheduleRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newWorkEntryRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) workEntryRepository {
			return &fakeWorkEntryRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newDraftRepository: func(db *mongo.Database) application.DraftRepository {
			return &fakeDraftRepo{}
		},
		newUserRepository: func(db *mongo.Database) application.UserRepository {
			return &fakeUserRepo{}
		},
		newOutboxPublisher: func(repo outbox.Repository, producer *kafka.Producer, logger *logging.Logger, m *metrics.Metrics, cfg *outbox.PublisherConfig) outboxPublisher {
			return publisher
		},
		newHTTPServer: func(addr string, handler http.Handler) httpServer {
			return server
		},
	}

	signalCh := make(chan os.Signal, 1)
	signalCh <- syscall.SIGTERM

	if err := run(context.Background(), loadConfig(), deps, signalCh); err != nil {
		t.Fatalf("run error: %v", err)
	}

	if fakeMongo.closeCalls != 1 {
		t.Fatalf("mongo close calls = %d", fakeMongo.closeCalls)
	}
	if publisher.startCalls != 1 || publisher.stopCalls != 1 {
		t.Fatalf("outbox start/stop calls = %d/%d", publisher.startCalls, publisher.stopCalls)
	}
	if server.listenCalls != 1 || server.shutdownCalls != 1 {
		t.Fatalf("server listen/shutdown calls = %d/%d", server.listenCalls, server.shutdownCalls)
	}
}

func TestRunOutboxStartError(t *testing.T) {
	deps := appDependencies{
		newMetrics: metrics.New,
		newMongoClient: func(ctx context.Context, cfg *mongodb.Config) (*mongodb.Client, error) {
			return nil, nil
		},
		newMongoConnection: func(client *mongodb.Client, logger *logging.Logger) mongoConnection {
			return &fakeMongoConnection{}
		},
		newKafkaProducer: kafka.NewProducer,
		newEventFactory:  cloudevents.NewEventFactory,
		newEmployeeRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) employeeRepository {
			return &fakeEmployeeRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newScheduleRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) scheduleRepository {
			return &fakeScheduleRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newWorkEntryRepository: func(db *mongo.Database, factory *cloudevents.EventFactory) workEntryRepository {
			return &fakeWorkEntryRepo{outboxRepo: &fakeOutboxStore{}}
		},
		newDraftRepository: func(db *mongo.Database) application.DraftRepository {
			return &fakeDraftRepo{}
		},
		newUserRepository: func(db *mongo.Database) application.UserRepository {
			return &fakeUserRepo{}
		},
		newOutboxPublisher: func(repo outbox.Repository, producer *kafka.Producer, logger *logging.Logger, m *metrics.Metrics, cfg *outbox.PublisherConfig) outboxPublisher {
			return &fakeOutboxPublisher{startErr: errors.New("start failed")}
		},
		newHTTPServer: func(addr string, handler http.Handler) httpServer {
			return &fakeServer{}
		},
	}

	if err := run(context.Background(), loadConfig(), deps, make(chan os.Signal, 1)); err == nil {
		t.Fatalf("expected outbox start error")
	}
}

func TestRunMongoClientError(t *testing.T) {
	deps := appDependencies{
		newMetrics: metrics.New,
		newMongoClient: func(ctx context.Context, cfg *mongodb.Config) (*mongodb.Client, error) {
			return nil, errors.New("mongo failed")
		},
	}

	if err := run(context.Background(), loadConfig(), deps, make(chan os.Signal, 1)); err == nil {
		t.Fatalf("expected mongo client error")
	}
}
