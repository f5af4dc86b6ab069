package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/health-mate/internal/api"
	"github.com/vladimiradmaev/health-mate/internal/bot"
	"github.com/vladimiradmaev/health-mate/internal/bot/handlers"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
	"github.com/vladimiradmaev/health-mate/internal/config"
	"github.com/vladimiradmaev/health-mate/internal/database"
	"github.com/vladimiradmaev/health-mate/internal/logger"
	"github.com/vladimiradmaev/health-mate/internal/repository"
	"github.com/vladimiradmaev/health-mate/internal/scheduler"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

const botTokenTTL = 30 * 24 * time.Hour

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	if envErr != nil {
		logger.Warn(".env file not found, using process environment")
	}
	logger.Info("Starting HealthMate", "http_addr", cfg.HTTP.Addr, "db_driver", cfg.DB.Driver)

	db, err := database.Open(cfg.DB, logger.WithFields("component", "database"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	repos := repository.New(db)
	svc := services.New(repos, cfg.Health, logger.WithFields("component", "services"))
	logger.Info("Services initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	secret := []byte(cfg.HTTP.JWTSecret)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewRouter(api.DepsFrom(svc), cfg.HTTP.JWTSecret, logger.WithFields("component", "http")),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped with error", "error", err)
			stop()
		}
	}()

	if cfg.Bot.TelegramToken != "" {
		botLog := logger.WithFields("component", "bot")

		var states state.StateManager = state.NewManager()
		if addr := cfg.Bot.RedisAddr(); addr != "" {
			rm, err := state.NewRedisManager(addr, botLog)
			if err != nil {
				logger.Fatal("Failed to connect to redis", "addr", addr, "error", err)
			}
			defer rm.Close()
			states = rm
		}

		telegramBot, err := bot.NewBot(cfg.Bot.TelegramToken, handlers.Dependencies{
			Users:    svc.Users,
			Progress: svc.Progress,
			Water:    svc.Water,
			Moods:    svc.Moods,
			Weight:   svc.Weight,
			IssueToken: func(userID uuid.UUID) (string, error) {
				return api.SignToken(secret, userID, botTokenTTL)
			},
		}, states, botLog)
		if err != nil {
			logger.Fatal("Failed to create bot", "error", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot stopped with error", "error", err)
			}
		}()
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	if cfg.Scheduler.SnapshotEnabled {
		snap := scheduler.NewSnapshotter(repos.Profiles, svc.Progress, svc.Calendar, logger.WithFields("component", "scheduler"))
		sched, err := scheduler.Start(ctx, snap, cfg.Scheduler.SnapshotAt, cfg.Health.Location())
		if err != nil {
			logger.Fatal("Failed to start scheduler", "error", err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				logger.Warn("Scheduler shutdown failed", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	wg.Wait()
	logger.Info("Stopped")
}
