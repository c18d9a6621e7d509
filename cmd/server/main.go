package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/fairway/internal/api"
	"github.com/playmatatu/fairway/internal/catalog"
	"github.com/playmatatu/fairway/internal/config"
	"github.com/playmatatu/fairway/internal/database"
	"github.com/playmatatu/fairway/internal/game"
	"github.com/playmatatu/fairway/internal/logger"
	"github.com/playmatatu/fairway/internal/migrations"
	"github.com/playmatatu/fairway/internal/redis"
	"github.com/playmatatu/fairway/internal/store"
	"github.com/playmatatu/fairway/internal/ws"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	course, err := catalog.Default()
	if cfg.CatalogPath != "" {
		course, err = catalog.Load(cfg.CatalogPath)
	}
	if err != nil {
		log.WithError(err).Fatal("Failed to load course catalog")
	}
	log.WithField("course", course.Name).WithField("holes", len(course.Holes)).Info("Course loaded")

	hub := ws.NewHub(logger.WithComponent("ws"))
	sinks := game.Sinks{hub}

	// Telemetry is optional; without a database sessions still run.
	if cfg.DatabaseURL != "" {
		if cfg.MigrateOnStart {
			log.Info("Running DB migrations on startup")
			if err := migrations.Run(cfg.DatabaseURL, "migrations", logger.WithComponent("migrate")); err != nil {
				log.WithError(err).Fatal("Failed to run migrations")
			}
		}
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		recorder := store.NewRecorder(db, logger.WithComponent("telemetry"))
		defer recorder.Close()
		sinks = append(sinks, recorder)
	} else {
		log.Warn("DATABASE_URL not set, shot telemetry disabled")
	}

	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer rdb.Close()

		publisher := redis.NewEventPublisher(rdb, logger.WithComponent("events"))
		defer publisher.Close()
		sinks = append(sinks, publisher)
	} else {
		log.Warn("REDIS_URL not set, event publishing disabled")
	}

	manager := game.NewSessionManager(course, game.ManagerConfig{
		Physics:         cfg.Physics(),
		SpinEnabled:     cfg.SpinEnabled,
		AimAlongFairway: cfg.AimAlongFairway,
		WeatherSeed:     cfg.WeatherSeed,
		TickInterval:    cfg.TickInterval(),
	}, sinks, logger.WithComponent("sessions"))
	defer manager.Shutdown()

	game.StartIdleWorker(ctx, manager, cfg.IdlePoll(), cfg.SessionIdle(), logger.WithComponent("idle"))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, manager, course, hub, cfg, logger.WithComponent("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Starting Fairway server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown")
	}
}
