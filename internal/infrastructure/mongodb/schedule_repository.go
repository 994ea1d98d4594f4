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

type ScheduleRepository struct {
	collection   mongoCollection
	db           mongoDatabase
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
}

func NewScheduleRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *ScheduleRepository {
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	repo := newScheduleRepository(
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

func newScheduleRepository(db mongoDatabase, outboxRepo outbox.Repository, eventFactory *cloudevents.EventFactory) *ScheduleRepository {
	return &ScheduleRepository{
		collection:   db.Collection("schedules"),
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

func (r *ScheduleRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "scheduleId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "items.employeeIds", Value: 1}}},
		{Keys: bson.D{{Key: "items.task", Value: 1}, {Key: "date", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	schedule.UpdatedAt = time.Now()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"scheduleId": schedule.ScheduleID}
		update := bson.M{"$set": schedule}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save schedule: %w", err)
		}

		if err := r.stageOutboxEvents(sessCtx, schedule.ScheduleID, schedule.GetDomainEvents()); err != nil {
			return err
		}

		schedule.ClearDomainEvents()
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) stageOutboxEvents(ctx context.Context, scheduleID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		var cloudEvent *cloudevents.WorkforceCloudEvent
		switch e := event.(type) {
		case *domain.ScheduleCreatedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID, e)
		case *domain.ScheduleUpdatedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID, e)
		case *domain.ScheduleDeletedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID, e)
		default:
			continue
		}
		cloudEvent.ScheduleID = scheduleID

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			scheduleID,
			"Schedule",
			kafka.Topics.ScheduleEvents,
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

func (r *ScheduleRepository) FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := r.collection.FindOne(ctx, bson.M{"scheduleId": scheduleID}).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &schedule, err
}

func (r *ScheduleRepository) FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var schedules []*domain.Schedule
	err = cursor.All(ctx, &schedules)
	return schedules, err
}

// FindByDateRange returns schedules dated between startDate and endDate
// inclusive. Dates sort lexicographically in YYYY-MM-DD form.
func (r *ScheduleRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error) {
	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var schedules []*domain.Schedule
	err = cursor.All(ctx, &schedules)
	return schedules, err
}

func (r *ScheduleRepository) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error) {
	filter := bson.M{"items.employeeIds": employeeID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var schedules []*domain.Schedule
	err = cursor.All(ctx, &schedules)
	return schedules, err
}

func (r *ScheduleRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var schedules []*domain.Schedule
	err = cursor.All(ctx, &schedules)
	return schedules, err
}

// Delete removes the schedule document and stages any pending domain events,
// so a deletion event added by the caller reaches the outbox atomically with
// the removal.
func (r *ScheduleRepository) Delete(ctx context.Context, schedule *domain.Schedule) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		if _, err := r.collection.DeleteOne(sessCtx, bson.M{"scheduleId": schedule.ScheduleID}); err != nil {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}

		if err := r.stageOutboxEvents(sessCtx, schedule.ScheduleID, schedule.GetDomainEvents()); err != nil {
			return err
		}

		schedule.ClearDomainEvents()
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// GetOutboxRepository returns the outbox repository backing this service
func (r *ScheduleRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}
