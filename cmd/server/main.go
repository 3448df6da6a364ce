package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avikbasu/healthlog/internal/auth"
	"github.com/avikbasu/healthlog/internal/config"
	"github.com/avikbasu/healthlog/internal/server"
	"github.com/avikbasu/healthlog/internal/service"
	"github.com/avikbasu/healthlog/internal/session"
	"github.com/avikbasu/healthlog/internal/storage/sqlite"
	"github.com/avikbasu/healthlog/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()
	ctx := context.Background()

	// Storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	// Sessions: in-process by default, Redis when configured so multiple
	// instances can share them.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
		slog.Info("session store initialized", "backend", "redis", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		slog.Info("session store initialized", "backend", "memory")
	}

	// Services
	weightSvc := service.NewWeightService(store)
	nutritionSvc := service.NewNutritionService(store)
	dietSvc := service.NewDietService(store)
	authenticator := auth.NewPasswordAuthenticator(store, weightSvc)

	handler := server.New(server.Deps{
		Authenticator:  authenticator,
		Sessions:       sessions,
		Weight:         weightSvc,
		Nutrition:      nutritionSvc,
		Diet:           dietSvc,
		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
