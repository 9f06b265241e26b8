package repository

import (
	"context"
	"errors"

	"forum-app/post-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository persists posts and their embedded likes/comments.
//
// The mutators (AddLike, RemoveLike, AddComment, RemoveComment) are
// conditional atomic updates: the filter re-checks the precondition the
// service already verified, so two concurrent requests cannot both pass a
// duplicate/ownership check and both write. Each returns the updated array
// from the post as stored after the update.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	FindAllByDateDesc(ctx context.Context) ([]domain.Post, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID primitive.ObjectID, like domain.Like) ([]domain.Like, error)
	RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]domain.Comment, error)
}

type MongoDBPostRepository struct {
	client     *mongo.Client
	dbName     string
	collection string
}

func NewMongoDBPostRepository(client *mongo.Client, dbName string) PostRepository {
	return &MongoDBPostRepository{
		client:     client,
		dbName:     dbName,
		collection: "posts",
	}
}

func (r *MongoDBPostRepository) posts() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collection)
}

func (r *MongoDBPostRepository) Insert(ctx context.Context, post *domain.Post) error {
	_, err := r.posts().InsertOne(ctx, post)
	return err
}

func (r *MongoDBPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var post domain.Post
	filter := bson.M{"_id": id}
	err := r.posts().FindOne(ctx, filter).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *MongoDBPostRepository) FindAllByDateDesc(ctx context.Context) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.posts().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoDBPostRepository) FindByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	cursor, err := r.posts().Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoDBPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *MongoDBPostRepository) AddLike(ctx context.Context, postID primitive.ObjectID, like domain.Like) ([]domain.Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": bson.M{"$ne": like.User},
	}
	update := bson.M{
		"$push": bson.M{
			"likes": bson.M{"$each": []domain.Like{like}, "$position": 0},
		},
	}
	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAlreadyLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (r *MongoDBPostRepository) RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) ([]domain.Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": userID,
	}
	update := bson.M{
		"$pull": bson.M{
			"likes": bson.M{"user": userID},
		},
	}
	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotYetLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (r *MongoDBPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) ([]domain.Comment, error) {
	filter := bson.M{"_id": postID}
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{"$each": []domain.Comment{comment}, "$position": 0},
		},
	}
	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (r *MongoDBPostRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]domain.Comment, error) {
	filter := bson.M{
		"_id":          postID,
		"comments._id": commentID,
	}
	update := bson.M{
		"$pull": bson.M{
			"comments": bson.M{"_id": commentID},
		},
	}
	post, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (r *MongoDBPostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post domain.Post
	err := r.posts().FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
