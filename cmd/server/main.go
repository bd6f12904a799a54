package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vacei/admin-dashboard/internal/api"
	"github.com/vacei/admin-dashboard/internal/infrastructure/backend"
	redisstore "github.com/vacei/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/vacei/admin-dashboard/internal/pkg/config"
	"github.com/vacei/admin-dashboard/internal/web"
	"github.com/vacei/admin-dashboard/pkg/logger"
)

// @title        Practice Admin Dashboard
// @version      1.0
// @description  JSON endpoints of the practice admin dashboard. The HTML pages are not described here.
// @BasePath     /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name dashboard_session

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true, Service: "admin-dashboard"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "admin-dashboard",
	})

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	e := api.NewRouter(api.Dependencies{
		Backend:  backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.Component("backend")),
		Sessions: redisstore.NewSessionStore(rdb),
		Renderer: renderer,
		Session:  cfg.Session,
		Logger:   log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("backend", cfg.Backend.URL).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
