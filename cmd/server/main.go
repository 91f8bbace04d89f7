package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/api"
	"github.com/lalith-99/lockerroom/internal/auth"
	"github.com/lalith-99/lockerroom/internal/cache"
	"github.com/lalith-99/lockerroom/internal/config"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/observ"
	"github.com/lalith-99/lockerroom/internal/pagination"
	"github.com/lalith-99/lockerroom/internal/realtime"
	"github.com/lalith-99/lockerroom/internal/repository/postgres"
	"github.com/lalith-99/lockerroom/internal/service"
	"github.com/lalith-99/lockerroom/internal/throttle"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Load config
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Create logger
	// ---------------------------------------------------------------
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------------------------------------------------------
	// 3. Connect to Postgres and make sure the tables exist
	// ---------------------------------------------------------------
	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	healthChecks := map[string]api.HealthCheck{
		"postgres": database.Health,
	}

	// ---------------------------------------------------------------
	// 4. Throttle counters and page cursors
	//
	// Both start empty. With the memory backend they only hold for a
	// single process; run more than one server only with redis.
	// ---------------------------------------------------------------
	var failures, cursors cache.Store
	switch cfg.CacheBackend {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()

		failures = cache.NewRedisStore(client, "lockerroom:", cfg.LoginFailureTTL)
		cursors = cache.NewRedisStore(client, "lockerroom:", 0)
		healthChecks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	default:
		failures = cache.NewMemoryStore(cfg.LoginFailureTTL)
		cursors = cache.NewMemoryStore(0)
	}
	logger.Info("state stores ready", zap.String("backend", cfg.CacheBackend))

	// ---------------------------------------------------------------
	// 5. Repositories and services
	// ---------------------------------------------------------------
	pool := database.Pool()
	tx := db.NewPgxTransactor(pool)
	stores := postgres.NewStores(pool, tx)

	hub := realtime.NewHub(logger)
	parser := pagination.NewParser(cfg.DefaultPageSize, cfg.MaxPageSize)
	authority := service.NewMembershipAuthority(stores.Teams, stores.Memberships)

	accounts := service.NewAccountService(service.AccountDeps{
		Users:          stores.Users,
		Teams:          stores.Teams,
		Memberships:    stores.Memberships,
		TeamMessages:   stores.TeamMessages,
		DirectMessages: stores.DirectMessages,
		Tx:             tx,
		Throttle:       throttle.New(failures, cfg.LoginMaxFailures),
		Events:         hub,
	}, cfg.JWTSecret, cfg.TokenTTL)
	teams := service.NewTeamService(authority, stores.Users, stores.Teams, stores.Memberships, stores.TeamMessages, tx, hub)
	messages := service.NewMessageService(authority, stores.TeamMessages, parser, pagination.NewCursor(cursors), hub)
	directs := service.NewDirectMessageService(stores.Users, stores.DirectMessages, parser)

	// ---------------------------------------------------------------
	// 6. HTTP server
	// ---------------------------------------------------------------
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(logger, auth.NewResolver(cfg.JWTSecret, stores.Users), cfg.CookieName, api.Handlers{
		Auth: api.NewAuthHandler(accounts, api.SessionCookie{
			Name:   cfg.CookieName,
			MaxAge: cfg.CookieMaxAge,
			Secure: cfg.CookieSecure,
		}),
		Teams:          api.NewTeamHandler(teams),
		Members:        api.NewMembershipHandler(teams),
		Messages:       api.NewMessageHandler(messages, authority, hub),
		DirectMessages: api.NewDirectMessageHandler(directs),
		HealthChecks:   healthChecks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting lockerroom",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
