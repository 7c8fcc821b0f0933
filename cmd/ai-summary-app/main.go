package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Qween0fPandora/ai-summary-app/internal/api"
	"github.com/Qween0fPandora/ai-summary-app/internal/config"
	"github.com/Qween0fPandora/ai-summary-app/internal/db"
	"github.com/Qween0fPandora/ai-summary-app/internal/provider"
	"github.com/Qween0fPandora/ai-summary-app/internal/repository"
	"github.com/Qween0fPandora/ai-summary-app/internal/services"
	"github.com/Qween0fPandora/ai-summary-app/internal/storage"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve()
		return
	}
	fmt.Println("ai-summary-app v0.1.0")
	fmt.Println("Usage: ai-summary-app serve")
}

func serve() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	mem := repository.NewMemory()
	var repo repository.DocumentRepository = mem
	if cfg.Database.URL != "" {
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("database error", "err", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			slog.Error("migration error", "err", err)
			os.Exit(1)
		}
		repo = repository.NewPersistent(mem, database)
		slog.Info("document metadata persisted to PostgreSQL")
	} else {
		slog.Warn("no database configured, document metadata is in-memory only")
	}

	blobs, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		slog.Error("storage error", "err", err)
		os.Exit(1)
	}

	providers := provider.NewRegistry()
	for name, pc := range cfg.Providers {
		switch pc.Type {
		case "openai", "":
			providers.Register(provider.NewOpenAIProvider(name, pc.URL, pc.APIKey))
		default:
			slog.Warn("unknown provider type, skipping", "provider", name, "type", pc.Type)
		}
	}

	documents := services.NewDocumentService(repo, blobs, providers, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	srv := api.NewServer(documents)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting ai-summary-app server", "addr", addr, "model", cfg.Summarizer.Model)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
