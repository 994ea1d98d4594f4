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

type WorkEntryRepository struct {
	collection   mongoCollection
	db           mongoDatabase
	outboxRepo   outbox.Repository
	eventFactory *cloudevents.EventFactory
}

func NewWorkEntryRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *WorkEntryRepository {
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	repo := newWorkEntryRepository(
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

func newWorkEntryRepository(db mongoDatabase, outboxRepo outbox.Repository, eventFactory *cloudevents.EventFactory) *WorkEntryRepository {
	return &WorkEntryRepository{
		collection:   db.Collection("work_entries"),
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
}

func (r *WorkEntryRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "entryId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "scheduleId", Value: 1},
			{Key: "scheduleItemId", Value: 1},
			{Key: "employeeId", Value: 1},
		}},
		{Keys: bson.D{{Key: "scheduleId", Value: 1}, {Key: "employeeId", Value: 1}}},
		{Keys: bson.D{{Key: "employeeId", Value: 1}}},
		{Keys: bson.D{{Key: "locked", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *WorkEntryRepository) Save(ctx context.Context, entry *domain.WorkEntry) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"entryId": entry.EntryID}
		update := bson.M{"$set": entry}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to save work entry: %w", err)
		}

		if err := r.stageOutboxEvents(sessCtx, entry.EntryID, entry.GetDomainEvents()); err != nil {
			return err
		}

		entry.ClearDomainEvents()
		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *WorkEntryRepository) stageOutboxEvents(ctx context.Context, aggregateID string, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	outboxEvents := make([]*outbox.OutboxEvent, 0, len(events))
	for _, event := range events {
		var cloudEvent *cloudevents.WorkforceCloudEvent
		switch e := event.(type) {
		case *domain.WorkEntryRecordedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "work-entry/"+e.EntryID, e)
			cloudEvent.ScheduleID = e.ScheduleID
			cloudEvent.EmployeeID = e.EmployeeID
		case *domain.EntriesLockedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID+"/item/"+e.ItemID, e)
			cloudEvent.ScheduleID = e.ScheduleID
			cloudEvent.EmployeeID = e.EmployeeID
		case *domain.EntriesUnlockedEvent:
			cloudEvent = r.eventFactory.CreateEvent(ctx, e.EventType(), "schedule/"+e.ScheduleID+"/item/"+e.ItemID, e)
			cloudEvent.ScheduleID = e.ScheduleID
			cloudEvent.EmployeeID = e.EmployeeID
		default:
			continue
		}

		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			aggregateID,
			"WorkEntry",
			kafka.Topics.LedgerEvents,
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

func (r *WorkEntryRepository) FindByAssignment(ctx context.Context, scheduleID, itemID, employeeID string) ([]*domain.WorkEntry, error) {
	filter := bson.M{
		"scheduleId":     scheduleID,
		"scheduleItemId": itemID,
		"employeeId":     employeeID,
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []*domain.WorkEntry
	err = cursor.All(ctx, &entries)
	return entries, err
}

func (r *WorkEntryRepository) FindByScheduleAndEmployee(ctx context.Context, scheduleID, employeeID string) ([]*domain.WorkEntry, error) {
	filter := bson.M{"scheduleId": scheduleID, "employeeId": employeeID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "recordedAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []*domain.WorkEntry
	err = cursor.All(ctx, &entries)
	return entries, err
}

func (r *WorkEntryRepository) FindByScheduleIDs(ctx context.Context, scheduleIDs []string) ([]*domain.WorkEntry, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"scheduleId": bson.M{"$in": scheduleIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []*domain.WorkEntry
	err = cursor.All(ctx, &entries)
	return entries, err
}

func (r *WorkEntryRepository) FindLocked(ctx context.Context) ([]*domain.WorkEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"locked": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var entries []*domain.WorkEntry
	err = cursor.All(ctx, &entries)
	return entries, err
}

// SetLocked flips the lock flag on every entry of the assignment and reports
// how many rows matched. A lock state change event is staged only when at
// least one row matched.
func (r *WorkEntryRepository) SetLocked(ctx context.Context, scheduleID, itemID, employeeID string, locked bool) (int64, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	var matched int64
	err = session.WithTransaction(ctx, func(sessCtx context.Context) error {
		filter := bson.M{
			"scheduleId":     scheduleID,
			"scheduleItemId": itemID,
			"employeeId":     employeeID,
		}
		update := bson.M{"$set": bson.M{"locked": locked}}

		result, err := r.collection.UpdateMany(sessCtx, filter, update)
		if err != nil {
			return fmt.Errorf("failed to update lock state: %w", err)
		}
		matched = result.MatchedCount

		if matched == 0 {
			return nil
		}

		cloudEvent := r.eventFactory.CreateLockStateChangedEvent(sessCtx, scheduleID, itemID, employeeID, locked, matched)
		outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
			scheduleID,
			"WorkEntry",
			kafka.Topics.LedgerEvents,
			cloudEvent,
		)
		if err != nil {
			return fmt.Errorf("failed to create outbox event: %w", err)
		}
		if err := r.outboxRepo.Save(sessCtx, outboxEvent); err != nil {
			return fmt.Errorf("failed to save outbox event: %w", err)
		}
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("transaction failed: %w", err)
	}
	return matched, nil
}

// DeleteByScheduleID removes every entry belonging to the schedule and
// reports how many were deleted.
func (r *WorkEntryRepository) DeleteByScheduleID(ctx context.Context, scheduleID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"scheduleId": scheduleID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete entries: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *WorkEntryRepository) CountByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"employeeId": employeeID})
}

// GetOutboxRepository returns the outbox repository backing this service
func (r *WorkEntryRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}
