package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"tempcast/db"
	"tempcast/internal/config"
	"tempcast/internal/forecast"
	"tempcast/internal/repository"
	"tempcast/pkg/llm"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readingRepo := repository.NewReadingRepository(func(ctx context.Context) (*sql.DB, error) {
		return db.Open(ctx, cfg.DataSource)
	}, cfg.SensorTable)

	orchestrator := forecast.NewOrchestrator(readingRepo, newPredictor(cfg), os.Stdout)

	slog.Info("reading sensor history", "table", cfg.SensorTable)

	outcome, err := orchestrator.Run(ctx)
	if err != nil {
		stop()
		log.Fatalf("error reading sensor history: %v", err)
	}

	slog.Info("run finished", "state", outcome.State, "failed", outcome.Result.Failed())
}

func newPredictor(cfg *config.AppConfig) llm.Predictor {
	if cfg.Provider == config.ProviderOpenAI {
		return llm.NewOpenAIClient(cfg.Inference())
	}
	return llm.NewAnthropicClient(cfg.Inference())
}
