package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arkadios/glossabot/ai"
	"github.com/arkadios/glossabot/bot"
	"github.com/arkadios/glossabot/config"
	"github.com/arkadios/glossabot/database"
	"github.com/arkadios/glossabot/game"
	"github.com/arkadios/glossabot/metrics"
	"github.com/arkadios/glossabot/pool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := database.NewSessions(db)
	pools := pool.NewCache(pool.NewClient(cfg.SheetBaseURL, cfg.PoolTimeout), cfg.PoolCacheTTL)
	generator := ai.New(ai.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.AITimeout,
	})
	sink := metrics.NewLogSink(logger)

	orch := game.New(store, pools, generator, sink, logger, game.Options{
		FactQuestions: cfg.FactQuestions,
		SessionTTL:    cfg.SessionTTL,
	})

	b, err := bot.New(cfg.BotToken, cfg.Debug, orch, store, logger)
	if err != nil {
		logger.Error("initialize bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("bot initialized")
	b.Start(ctx)
}
