package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/trackventory/gateway/internal/api"
	"github.com/trackventory/gateway/internal/config"
	"github.com/trackventory/gateway/internal/handlers"
	"github.com/trackventory/gateway/internal/logger"
	"github.com/trackventory/gateway/internal/middleware"
	"github.com/trackventory/gateway/internal/repository"
	memory_repo "github.com/trackventory/gateway/internal/repository/memory"
	redis_repo "github.com/trackventory/gateway/internal/repository/redis"
	"github.com/trackventory/gateway/internal/router"
	"github.com/trackventory/gateway/internal/server"
	"github.com/trackventory/gateway/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sessionRepo repository.SessionRepository
	if cfg.SessionStore == "redis" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisSettings.Address,
			Password: cfg.RedisSettings.Password,
			DB:       cfg.RedisSettings.DB,
		})
		if err := redisClient.Ping(appCtx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		sessionRepo = redis_repo.NewRedisSessionRepository(redisClient)
	} else {
		memRepo := memory_repo.NewMemorySessionRepository(cfg.Session.PollInterval)
		defer memRepo.StopCleanup()
		sessionRepo = memRepo
	}

	sessions := service.NewSessionService(sessionRepo, cfg.Session.IdleTimeout)
	tokens := service.NewCookieTokenService(cfg.Session.CookieSecret)
	monitors := service.NewMonitorRegistry(sessions, cfg.Session.PollInterval, nil)
	defer monitors.StopAll()

	backend := api.NewClient(cfg.BackendBaseURL, cfg.RequestTimeout)

	gate := middleware.NewGate(appCtx, sessions, tokens, monitors, cfg.Session.CookieName, cfg.AdminRole)
	auth := handlers.NewAuthHandler(appCtx, backend, sessions, tokens, monitors, cfg.Session.CookieName)
	dashboard := handlers.NewDashboardHandler(backend, cfg.AdminRole)
	users := handlers.NewUserHandler(backend)
	stores := handlers.NewStoreHandler(backend)

	app := server.New(cfg.AllowedOrigin)
	router.SetupAuthRoutes(app, auth)
	router.SetupProtectedRoutes(app, gate, auth, dashboard, users, stores)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Printf("Gateway starting on port %s, backend %s", cfg.Port, cfg.BackendBaseURL)
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down gateway...")

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Gateway stopped gracefully.")
}
