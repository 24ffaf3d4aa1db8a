package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hexfief/internal/config"
	"hexfief/internal/httpapi"
	"hexfief/internal/hub"
	"hexfief/internal/logx"
	"hexfief/internal/save"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := logx.InitFromEnv(); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	logger := logx.L()
	defer logger.Sync()

	store, err := buildStore(cfg)
	if err != nil {
		logger.Fatal("store init", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := hub.NewHub(ctx, logger)
	handler := httpapi.SetupRoutes(h, store, cfg.AllowedOrigins, logger)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	h.Inbox() <- hub.ShutdownHub{}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

// buildStore picks redis persistence when REDIS_URL is set, file saves
// otherwise.
func buildStore(cfg *config.AppConfig) (save.Store, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, err
		}
		return save.NewRedisStore(rdb), nil
	}
	if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
		return nil, err
	}
	return save.NewFileStore(cfg.SaveDir), nil
}
