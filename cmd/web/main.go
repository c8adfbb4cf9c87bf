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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/core/cache"
	"go-admin-dashboard/internal/core/config"
	"go-admin-dashboard/internal/core/logger"
	"go-admin-dashboard/internal/core/server"
	"go-admin-dashboard/internal/session"
	"go-admin-dashboard/internal/transport/http/handler"
	"go-admin-dashboard/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	if cfg.Session.Secret == "" {
		log.Fatal("session.secret is required")
	}

	// 会话存储：配了 redis 用 redis，否则单机内存
	var store session.Store
	var statsCache *cache.Cache
	if cfg.Redis.Addr != "" {
		statsCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		store = session.NewRedisStore(statsCache.RDB)
		log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = session.NewMemoryStore()
		log.Warn("session store: in-memory (sessions are lost on restart)")
	}

	sessions := session.NewManager(session.ManagerConfig{
		Store:      store,
		Secret:     cfg.Session.Secret,
		Issuer:     cfg.Session.Issuer,
		TTL:        time.Duration(cfg.Session.TTLMin) * time.Minute,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	})

	api := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSec)*time.Second, log)
	log.Info("backend configured", zap.String("base_url", cfg.Backend.BaseURL))

	h := handler.New(handler.Options{
		API:       api,
		Sessions:  sessions,
		Cache:     statsCache,
		StatsTTL:  time.Duration(cfg.Stats.CacheTTLSec) * time.Second,
		AssetBase: cfg.Backend.AssetBaseURL,
		Log:       log,
	})

	r := router.New(router.Options{
		Log:      log,
		Handler:  h,
		Sessions: sessions,
		Limits:   cfg.Limits,
		CORS:     cfg.CORS,
		Env:      cfg.App.Env,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("admin dashboard starting",
		zap.String("addr", addr),
		zap.String("open", baseURL+"/login"),
		zap.String("health", baseURL+"/healthz"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin dashboard start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin dashboard started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin dashboard stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}
