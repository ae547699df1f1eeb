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

	"github.com/kepran/PickemBot_Go/internal/bonus"
	"github.com/kepran/PickemBot_Go/internal/config"
	"github.com/kepran/PickemBot_Go/internal/database"
	"github.com/kepran/PickemBot_Go/internal/database/postgres"
	"github.com/kepran/PickemBot_Go/internal/event"
	"github.com/kepran/PickemBot_Go/internal/logger"
	"github.com/kepran/PickemBot_Go/internal/match"
	"github.com/kepran/PickemBot_Go/internal/metrics"
	"github.com/kepran/PickemBot_Go/internal/reaction"
	"github.com/kepran/PickemBot_Go/internal/server"
	"github.com/kepran/PickemBot_Go/internal/standings"
	"github.com/kepran/PickemBot_Go/internal/user"
)

// Database pool tuning
const (
	DBMaxConnections = 25
	DBMaxIdleTime    = 5 * time.Minute
	DBMaxLifetime    = 30 * time.Minute
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server and the
// event publisher drain
const ShutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.ServiceName,
		cfg.Version, cfg.Environment, false))

	pool, err := database.NewPool(cfg.GetDBConnString(), DBMaxConnections, DBMaxIdleTime, DBMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	matchRepo := postgres.NewMatchRepository(pool)
	predictionRepo := postgres.NewPredictionRepository(pool)
	bonusRepo := postgres.NewBonusRepository(pool)
	standingsRepo := postgres.NewStandingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Events
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig())
	metrics.NewEventMetricsCollector().Register(bus)

	// Services
	userService := user.NewService(userRepo)
	standingsService := standings.NewService(standingsRepo, userRepo, publisher, cfg.BotAccountName)
	matchService := match.NewService(matchRepo, standingsRepo, publisher)
	bonusService := bonus.NewService(bonusRepo, publisher)
	reactionService := reaction.NewService(predictionRepo, matchService, bonusService, standingsService, userService, publisher)

	// Every scoring change triggers a fresh standings publication so
	// transports always render from the latest ranking
	republish := func(ctx context.Context, _ event.Event) error {
		standingsService.PublishStandings(ctx)
		return nil
	}
	bus.Subscribe(event.ResultSettled, republish)
	bus.Subscribe(event.ResultCleared, republish)
	bus.Subscribe(event.BonusFinalized, republish)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool,
		matchService, bonusService, standingsService, reactionService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := publisher.Shutdown(ctx); err != nil {
		slog.Error("Publisher shutdown failed", "error", err)
	}
}
