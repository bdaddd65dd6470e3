// @title           Scholarship System API
// @version         1.0
// @description     Authentication and identity administration for the scholarship system.
// @BasePath        /api-beca
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/becas/scholarship-system/internal/api"
	"github.com/becas/scholarship-system/internal/core/ports"
	"github.com/becas/scholarship-system/internal/core/service"
	"github.com/becas/scholarship-system/internal/infrastructure/db/memory"
	"github.com/becas/scholarship-system/internal/infrastructure/db/mongo"
	"github.com/becas/scholarship-system/internal/infrastructure/db/postgres"
	"github.com/becas/scholarship-system/internal/infrastructure/db/redis"
	"github.com/becas/scholarship-system/internal/infrastructure/queue"
	"github.com/becas/scholarship-system/internal/infrastructure/security"
	"github.com/becas/scholarship-system/internal/pkg/config"
	"github.com/becas/scholarship-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storeBundle is the credential store plus its audit repository and cleanup.
type storeBundle struct {
	name  string
	store ports.CredentialStore
	audit ports.AuditRepository
	close func(context.Context)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "scholarship-api",
	})
	if cfg.SecretFallback {
		log.Warn().Msg("JWT_SECRET not set, using the development fallback secret")
	}

	stores, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open credential store")
	}
	defer stores.close(context.Background())

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	}

	// --- Audit trail ---
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(stores.audit, log), log)
	dispatcher.Start(workerCtx)

	// --- Services ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost, cfg.Auth.PasswordMinLength)
	tokens := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	opts := []service.AuthOption{service.WithAuditSink(dispatcher)}
	if rdb != nil {
		opts = append(opts, service.WithLoginLimiter(redis.NewLoginLimiter(rdb, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutWindow)))
	}
	authService := service.NewAuthService(stores.store, hasher, tokens, log, opts...)
	userService := service.NewUserService(stores.store, dispatcher, log)

	if err := authService.EnsureAdmin(ctx, cfg.Bootstrap.Name, cfg.Bootstrap.Email, cfg.Bootstrap.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin identity")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:           authService,
		Users:          userService,
		Tokens:         tokens,
		StoreName:      stores.name,
		Store:          stores.store,
		Redis:          rdb,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", stores.name).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storeBundle, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storeBundle{
			name:  "postgres",
			store: postgres.NewCredentialStore(pool),
			audit: postgres.NewAuditRepository(pool),
			close: func(context.Context) { pool.Close() },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory credential store, identities are lost on restart")
		return &storeBundle{
			name:  "memory",
			store: memory.NewCredentialStore(),
			audit: memory.NewAuditRepository(),
			close: func(context.Context) {},
		}, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storeBundle{
			name:  "mongodb",
			store: mongo.NewCredentialStore(db),
			audit: mongo.NewAuditRepository(db),
			close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}
}
