package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/bookmark-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/bookmark-api/internal/auth"
	"github.com/redmonkez12/bookmark-api/internal/bookmark"
	"github.com/redmonkez12/bookmark-api/internal/config"
	"github.com/redmonkez12/bookmark-api/internal/database"
	httpServer "github.com/redmonkez12/bookmark-api/internal/http"
	"github.com/redmonkez12/bookmark-api/internal/logging"
	"github.com/redmonkez12/bookmark-api/internal/ratelimit"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

// @title           Bookmark API
// @version         1.0
// @description     Authenticated bookmark management REST API.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3333
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment(), cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_type", cfg.Auth.TokenType,
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// PostgreSQL schemas are managed by `bookmarkctl migrate up`.
	if cfg.Database.Driver == config.DriverSQLite {
		if err := database.CreateSchema(context.Background(), db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	redisClient := initRedis(cfg.Redis, logger)
	defer redisClient.Close()

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	userRepo := user.NewRepository(db)
	bookmarkRepo := bookmark.NewRepository(db)

	authService, err := auth.NewService(
		userRepo,
		tokenService,
		auth.NewPasswordHasher(auth.DefaultArgon2Params),
		cfg.Auth.AccessTokenDuration,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}

	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:           auth.NewHandler(authService, rateLimiter),
		AuthMiddleware: auth.NewMiddleware(tokenService),
		User:           user.NewHandler(user.NewService(userRepo)),
		Bookmark:       bookmark.NewHandler(bookmark.NewService(bookmarkRepo)),
		DB:             db,
	}, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis returns a Redis client. An unreachable Redis only disables rate
// limiting, so a failed ping is logged rather than returned.
func initRedis(cfg config.RedisConfig, logger *logging.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, auth rate limiting will fail open", "addr", cfg.Address(), "error", err.Error())
	}

	return client
}
