package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gclub-api/core/cache"
	"gclub-api/core/config"
	"gclub-api/core/database"
	"gclub-api/core/logger"
	"gclub-api/core/middleware"
	"gclub-api/core/worker"
	"gclub-api/modules/auth"
	"gclub-api/modules/gamepost"
	"gclub-api/modules/gamepost/tasks"
	"gclub-api/modules/notification"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	if err := database.RunMigrations(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}, cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	ctx := context.Background()
	redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	mw := middleware.NewMiddleware(redisCache)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())

	api := e.Group("/api/v1")

	notifSvc := notification.Init(api, db, mw)
	authSvc := auth.Init(api, db, mw)
	recruitSvc := gamepost.Init(api, db, mw, notifSvc, authSvc)

	w := worker.New(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := tasks.Register(w, recruitSvc); err != nil {
		return fmt.Errorf("register tasks: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()
	logger.Info("server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	w.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
