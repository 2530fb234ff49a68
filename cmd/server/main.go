package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/orngfire/youtube-leaderboard/internal/config"
	"github.com/orngfire/youtube-leaderboard/internal/handler"
	"github.com/orngfire/youtube-leaderboard/internal/middleware"
	"github.com/orngfire/youtube-leaderboard/internal/render"
	"github.com/orngfire/youtube-leaderboard/internal/router"
	"github.com/orngfire/youtube-leaderboard/internal/service"
	"github.com/orngfire/youtube-leaderboard/internal/snapshot"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	middleware.InitLogger(cfg.LogLevel, "leaderboard")
	log := middleware.Logger

	service.InitMetrics()
	handler.InitMetrics()

	cache := service.NewCacheService(cfg.RedisURL, log)
	defer cache.Close()

	// Snapshot sources in fallback order: remote, last good cached copy,
	// local file, bundled fixture.
	loader := snapshot.NewLoader(log,
		snapshot.NewHTTPSource(cfg.SnapshotURL, cfg.FetchTimeout),
		snapshot.NewFuncSource("cache", func(ctx context.Context) ([]byte, error) {
			data, err := cache.GetSnapshot(ctx)
			if err != nil {
				return nil, err
			}
			if len(data) == 0 {
				return nil, errors.New("no cached snapshot")
			}
			return data, nil
		}),
		snapshot.NewFileSource("local", cfg.SnapshotLocalPath),
		snapshot.NewFileSource("fixture", cfg.SnapshotFixturePath),
	)

	machine := state.NewMachine()
	svc := service.NewLeaderboardService(loader, cache, machine, log)

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.RestoreTheme(ctx)

	// Initial load happens off the startup path; the page serves the
	// Loading state until it commits.
	go func() {
		if err := svc.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("initial refresh failed")
		}
	}()

	if cfg.AutoRefresh {
		zone, err := time.LoadLocation("Asia/Seoul")
		if err != nil {
			zone = time.FixedZone("KST", 9*60*60)
		}
		worker := service.NewRefreshWorker(svc, zone, log)
		go worker.Start(ctx)
		defer worker.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "YouTube Leaderboard",
		ServerHeader: "leaderboard",
	})

	router.Setup(app, &router.Handlers{
		Page:        handler.NewPageHandler(svc, renderer),
		Leaderboard: handler.NewLeaderboardHandler(svc),
		State:       handler.NewStateHandler(svc),
		Health:      handler.NewHealthHandler(cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("environment", cfg.Environment).
		Msg("leaderboard server starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
