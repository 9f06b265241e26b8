package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"forum-app/post-service/internal/config"
	"forum-app/post-service/internal/domain"
	"forum-app/post-service/internal/repository"
	services "forum-app/post-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var users = []struct {
	name   string
	email  string
	avatar string
}{
	{"Alice Johnson", "alice@example.com", "https://www.gravatar.com/avatar/alice?d=mm"},
	{"Bob Smith", "bob@example.com", "https://www.gravatar.com/avatar/bob?d=mm"},
	{"Carol Diaz", "carol@example.com", "https://www.gravatar.com/avatar/carol?d=mm"},
}

var posts = []string{
	"Hello from the seeded forum!",
	"Second post, checking the date ordering.",
	"Anyone up for reviewing my side project?",
}

// Seeds demo users and posts, then prints an access token per user so the
// API can be exercised immediately.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := repository.ConnectMongoDB(ctx, cfg.MongoDBURI)
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer client.Disconnect(context.Background())

	keyRepo, err := repository.NewSQLiteKeyRepository(cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open key repository")
	}
	authService := services.NewAuthService(keyRepo)

	userCollection := client.Database(cfg.MongoDBName).Collection("users")
	postCollection := client.Database(cfg.MongoDBName).Collection("posts")

	for i, u := range users {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}

		user := domain.User{
			ID:       primitive.NewObjectID(),
			Name:     u.name,
			Email:    u.email,
			Password: string(hashedPassword),
			Avatar:   u.avatar,
			Date:     time.Now().UTC(),
		}

		filter := bson.M{"email": user.Email}
		if err := userCollection.FindOne(ctx, filter).Err(); err == nil {
			log.Info().Str("email", u.email).Msg("user already seeded, skipping")
			continue
		}

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("insert user")
		}

		post := domain.Post{
			ID:       primitive.NewObjectID(),
			User:     user.ID.Hex(),
			Text:     posts[i%len(posts)],
			Name:     user.Name,
			Avatar:   user.Avatar,
			Likes:    []domain.Like{},
			Comments: []domain.Comment{},
			Date:     time.Now().UTC(),
		}
		if _, err := postCollection.InsertOne(ctx, post); err != nil {
			log.Fatal().Err(err).Msg("insert post")
		}

		token, err := authService.IssueAccessToken(user.ID.Hex(), 24*time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("issue token")
		}
		fmt.Printf("%s (%s): Bearer %s\n", user.Name, user.ID.Hex(), token)
	}

	log.Info().Msg("seed complete")
}
