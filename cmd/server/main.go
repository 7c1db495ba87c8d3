package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbot/internal/config"
	"eventbot/internal/handler"
	"eventbot/internal/repository"
	"eventbot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.With().Str("service", "eventbot").Logger()

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting event chatbot")

	gin.SetMode(cfg.Server.GinMode)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("invalid timezone")
	}

	repo, err := repository.NewEventRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}
	logger.Info().Msg("connected to PostgreSQL")

	var gemini service.TextGenerator
	if cfg.Gemini.Enabled {
		gemini = service.NewGeminiClient(&cfg.Gemini, logger)
		logger.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	} else {
		logger.Warn().Msg("Gemini is disabled, every message degrades to text search; set GEMINI_API_KEY to enable it")
	}

	timeout := time.Duration(cfg.Gemini.Timeout) * time.Second
	chatService := service.NewChatService(
		repo,
		service.NewIntentExtractor(gemini, timeout, logger),
		service.NewNarrator(gemini, timeout, logger),
		service.NewRecommender(nil),
		loc,
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	handler.NewChatHandler(chatService, logger).RegisterRoutes(router)

	scheduler := startCleanupJob(cfg, repo, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}

// startCleanupJob schedules the in-process purge of past events when a cron
// expression is configured. Returns nil when the job is disabled.
func startCleanupJob(cfg *config.Config, repo *repository.EventRepository, logger zerolog.Logger) *cron.Cron {
	if cfg.Cleanup.Schedule == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Cleanup.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().AddDate(0, 0, -cfg.Cleanup.RetainDays)
		deleted, err := repo.DeletePastEvents(ctx, cutoff)
		if err != nil {
			logger.Error().Err(err).Msg("scheduled cleanup failed")
			return
		}
		logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("purged past events")
	})
	if err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Cleanup.Schedule).Msg("invalid cleanup schedule")
	}

	c.Start()
	logger.Info().Str("schedule", cfg.Cleanup.Schedule).Int("retain_days", cfg.Cleanup.RetainDays).
		Msg("cleanup job scheduled")
	return c
}
