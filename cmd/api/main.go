// @title                       AgenticSprint API
// @version                     1.0
// @description                 Authentication, profile management and medical document analysis.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Abh1nav7/AgenticSprint/internal/api"
	"github.com/Abh1nav7/AgenticSprint/internal/core/ports"
	"github.com/Abh1nav7/AgenticSprint/internal/core/service"
	"github.com/Abh1nav7/AgenticSprint/internal/infrastructure/blob"
	"github.com/Abh1nav7/AgenticSprint/internal/infrastructure/config"
	mongostore "github.com/Abh1nav7/AgenticSprint/internal/infrastructure/db/mongo"
	"github.com/Abh1nav7/AgenticSprint/internal/infrastructure/db/postgres"
	"github.com/Abh1nav7/AgenticSprint/internal/infrastructure/llm"
	"github.com/Abh1nav7/AgenticSprint/internal/infrastructure/security"
	"github.com/Abh1nav7/AgenticSprint/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// userStore is what the store drivers provide.
type userStore interface {
	ports.UserRepository
	ports.Pinger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "agentic-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	users, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	blobs, routerCfg, err := openBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	tokens, err := security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	completion, err := llm.NewClient(llm.Config{
		BaseURL: cfg.OpenRouter.BaseURL,
		APIKey:  cfg.OpenRouter.APIKey,
		Model:   cfg.OpenRouter.Model,
		Referer: cfg.OpenRouter.Referer,
		Title:   cfg.OpenRouter.Title,
	}, nil)
	if err != nil {
		return err
	}

	e := api.NewRouter(routerCfg, api.Dependencies{
		Auth:     service.NewAuthService(users, hasher, tokens, log),
		Profile:  service.NewProfileService(users, blobs, log),
		Analysis: service.NewAnalysisService(completion, log),
		Tokens:   tokens,
		Users:    users,
		Store:    users,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Str("blobs", cfg.Blob.Driver).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (userStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
		return repo, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect failed")
			}
		}, nil
	default:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Store.DatabaseURL})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("connected to Postgres, migrations applied")
		return postgres.NewUserRepository(db), func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("postgres close failed")
			}
		}, nil
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (ports.BlobStore, api.RouterConfig, error) {
	routerCfg := api.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		BodyLimit:      cfg.BodyLimit,
	}

	if cfg.Blob.Driver == config.BlobDriverS3 {
		store, err := blob.NewS3Store(ctx, blob.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
			KeyPrefix: "avatars/",
		})
		if err != nil {
			return nil, routerCfg, err
		}
		return store, routerCfg, nil
	}

	store, err := blob.NewLocalStore(cfg.Blob.UploadDir, cfg.Blob.URLPrefix)
	if err != nil {
		return nil, routerCfg, err
	}
	routerCfg.StaticDir = store.Dir()
	routerCfg.StaticPrefix = store.URLPrefix()
	return store, routerCfg, nil
}
