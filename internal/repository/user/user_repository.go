package repository

import (
	"context"
	"errors"

	"forum-app/post-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository reads user profiles for name/avatar snapshots.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type MongoDBUserRepository struct {
	client     *mongo.Client
	dbName     string
	collection string
}

func NewMongoDBUserRepository(client *mongo.Client, dbName string) UserRepository {
	return &MongoDBUserRepository{
		client:     client,
		dbName:     dbName,
		collection: "users",
	}
}

func (r *MongoDBUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	collection := r.client.Database(r.dbName).Collection(r.collection)

	var user domain.User
	filter := bson.M{"_id": objID}
	err = collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// InMemoryUserRepository (example, used in tests)
type InMemoryUserRepository struct {
	users map[string]domain.User
}

func NewInMemoryUserRepository(users ...domain.User) *InMemoryUserRepository {
	byID := make(map[string]domain.User, len(users))
	for _, user := range users {
		byID[user.ID.Hex()] = user
	}
	return &InMemoryUserRepository{users: byID}
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
