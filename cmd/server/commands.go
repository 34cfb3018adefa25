package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/petshop-api/internal/api"
	"github.com/dom/petshop-api/internal/config"
	"github.com/dom/petshop-api/internal/ratelimit"
	"github.com/dom/petshop-api/internal/repository/gormrepo"
	"github.com/dom/petshop-api/internal/seed"
	"github.com/dom/petshop-api/internal/service"
	"github.com/dom/petshop-api/internal/storage"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gormrepo.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// app bundles everything the commands that touch services need.
type app struct {
	db       *gorm.DB
	store    *storage.Disk
	services *service.Services
}

func newApp(cfg *config.Config) (*app, error) {
	if err := cfg.RequireKeys(); err != nil {
		return nil, err
	}
	keys, err := service.LoadKeyPair(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTPassphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keys (run `keys generate`): %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewDisk(cfg.StorageDir)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	repos := gormrepo.NewRepositories(db)
	tokens := service.NewTokenService(keys, repos.Token, repos.User, cfg.AppURL, cfg.JWTTTL)

	return &app{
		db:       db,
		store:    store,
		services: service.NewServices(repos, tokens, store, cfg),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	closeDB(a.db)
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, runMigrations bool) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if runMigrations {
		if err := gormrepo.Migrate(a.db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Leave limiter a nil interface when Redis is not configured.
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = ratelimit.NewRedis(client, cfg.RateLimitPerMinute, time.Minute)
	} else {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
	}

	router := api.NewRouter(a.services, limiter, cfg, log)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func migrate(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := gormrepo.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("migration complete")
	return nil
}

func seedDatabase(ctx context.Context, cfg *config.Config, cmd *cli.Command) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := gormrepo.Migrate(a.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	_, err = seed.New(a.services).Run(ctx, seed.Options{
		Users:               int(cmd.Int("users")),
		OrdersPerUser:       int(cmd.Int("orders")),
		Categories:          int(cmd.Int("categories")),
		ProductsPerCategory: int(cmd.Int("products")),
	})
	return err
}

func generateKeys(cfg *config.Config, bits int, force bool) error {
	if err := cfg.RequireKeys(); err != nil {
		return err
	}
	if cfg.JWTPassphrase == "" {
		slog.Warn("JWT_PASSPHRASE is empty, private key will be stored unencrypted")
	}

	privatePEM, publicPEM, err := service.GenerateKeyPair(bits, cfg.JWTPassphrase)
	if err != nil {
		return err
	}
	if err := service.WriteKeyPair(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, privatePEM, publicPEM, force); err != nil {
		return err
	}

	slog.Info("key pair written", "private", cfg.JWTPrivateKeyPath, "public", cfg.JWTPublicKeyPath)
	return nil
}

func pruneTokens(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.services.Tokens.PruneExpired(ctx)
	if err != nil {
		return err
	}
	slog.Info("expired tokens pruned", "count", n)
	return nil
}
