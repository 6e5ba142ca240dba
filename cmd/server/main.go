package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"outreach_backend/internal/app/config"
	"outreach_backend/internal/app/di"
	"outreach_backend/internal/app/router"
	authentity "outreach_backend/internal/feature/auth/domain/entity"
	crmentity "outreach_backend/internal/feature/crm/domain/entity"
	infradb "outreach_backend/internal/platform/db"
	"outreach_backend/internal/platform/http/handler"
	"outreach_backend/internal/platform/logger"
	infraredis "outreach_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	closer, err := logger.Init(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(),
		&crmentity.Company{}, &crmentity.Template{}, &crmentity.Email{}, &crmentity.Prompt{},
		&authentity.User{},
	)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Redis
	var rdb *redisv9.Client
	checks := []handler.Check{{Name: "database", Ping: sqlDB.PingContext}}
	if rcfg := infraredis.LoadConfig(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running with file cache only.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
			checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}})
		}
	}

	outreach, err := di.NewOutreach(ctx, cfg, db, rdb)
	if err != nil {
		return err
	}
	authH, jwtCfg := di.NewAuth(db)
	logoH, closeLogo := di.NewLogoDetection(ctx, db)
	defer closeLogo()

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Health:    handler.NewHealthHandler(checks...),
		Auth:      authH,
		CRM:       di.NewCRM(db),
		Outreach:  outreach.Handler,
		Replies:   di.NewRepliesHandler(db),
		Logo:      logoH,
		JWTSecret: jwtCfg.Secret,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
