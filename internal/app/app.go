package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"memberportal/internal/config"
	"memberportal/internal/database"
	"memberportal/internal/repository"
	"memberportal/internal/server/rest"
	"memberportal/internal/service"
	"memberportal/internal/session"
	"memberportal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application together and serves HTTP until interrupted.
func Run() error {
	configPath := flag.String("config", "./configs/default.env", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Errorf("Failed to close database: %s", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to session store: %w", err)
	}
	defer redisClient.Close()

	userRepository := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepository)
	sessionManager := session.NewManager(session.NewRedisStore(redisClient))

	server := rest.NewServer(userService, sessionManager,
		rest.WithAddress(fmt.Sprintf("%s:%d", cfg.ServerAddress, cfg.ServerPort)),
		rest.WithHealthCheck(func(ctx context.Context) error {
			if err := db.Ping(ctx); err != nil {
				return fmt.Errorf("database: %w", err)
			}
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("session store: %w", err)
			}
			return nil
		}),
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to run server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
