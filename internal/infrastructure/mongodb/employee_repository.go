package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/agriwork-platform/workforce-service/pkg/cloudevents"
	"github.com/agriwork-platform/workforce-service/pkg/kafka"
	"github.com/agriwork-platform/workforce-service/pkg/outbox"
	outboxMongo "github.com/agriwork-platform/workforce-service/pkg/outbox/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

type EmployeeRepository struct {
	collection   mongoCollection
	db           mongoDatabase
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
}

func NewEmployeeRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *EmployeeRepository {
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	repo := newEmployeeRepository(
		mongoDatabaseWrapper{db: db},
		outboxRepo,
		eventFactory,
	)
	repo.ensureIndexes(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = outboxRepo.EnsureIndexes(ctx)

	return repo
}

func newEmployeeRepository(db mongoDatabase, outboxRepo outbox.Repository, eventFactory *cloudevents.EventFactory) *EmployeeRepository {
	return &EmployeeRepository{
		collection:   db.Collection("employees"),
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

func (r *EmployeeRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employeeId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "surname", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "nationalId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *EmployeeRepository) Save(ctx context.Context, employee *domain.Employee) error {
	employee.UpdatedAt = time.Now()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"employeeId": employee.EmployeeID}
		update := bson.M{"$set": employee}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save employee: %w", err)
		}

		if err := r.stageOutboxEvents(sessCtx, employee.EmployeeID, employee.GetDomainEvents()); err != nil {
			return err
		}

		employee.ClearDomainEvents()
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) stageOutboxEvents(ctx context.Context, employeeID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		var cloudEvent *cloudevents.WorkforceCloudEvent
		switch e := event.(type) {
		case *domain.EmployeeCreatedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "employee/"+e.EmployeeID, e)
		case *domain.EmployeeUpdatedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "employee/"+e.EmployeeID, e)
		case *domain.EmployeeDeletedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "employee/"+e.EmployeeID, e)
		default:
			continue
		}
		cloudEvent.EmployeeID = employeeID

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			employeeID,
			"Employee",
			kafka.Topics.EmployeeEvents,
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		outboxEvents = append(outboxEvents, outboxEvent)
	}

	if len(outboxEvents) > 0 {
		if err := r.outboxRepo.SaveAll(ctx, outboxEvents); err != nil {
			return fmt.Errorf("failed to save outbox events: %w", err)
		}
	}
	return nil
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.collection.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &employee, err
}

// FindAll lists employees sorted by surname then name. A non-positive limit
// returns the full directory.
func (r *EmployeeRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "surname", Value: 1}, {Key: "name", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var employees []*domain.Employee
	err = cursor.All(ctx, &employees)
	return employees, err
}

func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		if _, err := r.collection.DeleteOne(sessCtx, bson.M{"employeeId": employeeID}); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}

		deleted := &domain.EmployeeDeletedEvent{EmployeeID: employeeID, DeletedAt: time.Now()}
		return r.stageOutboxEvents(sessCtx, employeeID, []domain.DomainEvent{deleted})
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// GetOutboxRepository returns the outbox repository backing this service
func (r *EmployeeRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}
