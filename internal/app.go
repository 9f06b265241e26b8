package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum-app/post-service/internal/config"
	"forum-app/post-service/internal/handlers"
	"forum-app/post-service/internal/repository"
	userRepository "forum-app/post-service/internal/repository/user"
	services "forum-app/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func Run() error {
	cfg := config.LoadConfig()

	// Initialize SQLite Key Repository (verification keys, shared with the
	// auth service)
	keyRepo, err := repository.NewSQLiteKeyRepository(cfg.SQLitePath)
	if err != nil {
		return err
	}

	// Initialize MongoDB client and repositories
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := repository.ConnectMongoDB(ctx, cfg.MongoDBURI)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	postRepo := repository.NewMongoDBPostRepository(client, cfg.MongoDBName)
	userRepo := userRepository.NewMongoDBUserRepository(client, cfg.MongoDBName)

	// Initialize Services
	authService := services.NewAuthService(keyRepo)
	postService := services.NewPostService(postRepo, userRepo)

	// Initialize Gin Router
	router := gin.New()
	router.Use(handlers.RequestLogger(), gin.Recovery())

	// Setup Post Routes
	handlers.SetupPostRoutes(router, authService, postService)

	// Server setup
	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("Server shutdown failed")
		}
		log.Info().Msg("Server gracefully stopped")
	}()

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}
