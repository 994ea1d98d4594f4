package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// DraftRepository stores work entry form drafts. Drafts never produce
// outbox events; Mongo's TTL monitor reaps expired documents.
type DraftRepository struct {
	collection mongoCollection
}

func NewDraftRepository(db *mongo.Database) *DraftRepository {
	repo := newDraftRepository(mongoDatabaseWrapper{db: db})
	repo.ensureIndexes(context.Background())
	return repo
}

func newDraftRepository(db mongoDatabase) *DraftRepository {
	return &DraftRepository{
		collection: db.Collection("work_entry_drafts"),
	}
}

func (r *DraftRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "key.task", Value: 1},
				{Key: "key.scheduleId", Value: 1},
				{Key: "key.itemId", Value: 1},
				{Key: "key.employeeId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func keyFilter(key domain.DraftKey) bson.M {
	return bson.M{
		"key.task":       key.Task,
		"key.scheduleId": key.ScheduleID,
		"key.itemId":     key.ItemID,
		"key.employeeId": key.EmployeeID,
	}
}

func (r *DraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	opts := options.Update().SetUpsert(true)
	update := bson.M{"$set": draft}

	_, err := r.collection.UpdateOne(ctx, keyFilter(draft.Key), update, opts)
	return err
}

func (r *DraftRepository) Find(ctx context.Context, key domain.DraftKey) (*domain.Draft, error) {
	var draft domain.Draft
	err := r.collection.FindOne(ctx, keyFilter(key)).Decode(&draft)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &draft, err
}

func (r *DraftRepository) Delete(ctx context.Context, key domain.DraftKey) error {
	_, err := r.collection.DeleteOne(ctx, keyFilter(key))
	return err
}
