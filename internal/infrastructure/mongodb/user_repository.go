package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// UserRepository stores explicit email-to-role bindings
type UserRepository struct {
	collection mongoCollection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	repo := newUserRepository(mongoDatabaseWrapper{db: db})
	repo.ensureIndexes(context.Background())
	return repo
}

func newUserRepository(db mongoDatabase) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

func (r *UserRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"email": user.Email}
	update := bson.M{"$set": user}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &user, err
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var users []*domain.User
	err = cursor.All(ctx, &users)
	return users, err
}
