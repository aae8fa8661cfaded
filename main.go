package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dylanm29799/HowAreYou/internal/analysis"
	"github.com/dylanm29799/HowAreYou/internal/asr"
	"github.com/dylanm29799/HowAreYou/internal/config"
	"github.com/dylanm29799/HowAreYou/internal/database"
	"github.com/dylanm29799/HowAreYou/internal/ingest"
	"github.com/dylanm29799/HowAreYou/internal/mood"
	"github.com/dylanm29799/HowAreYou/internal/router"
	"github.com/dylanm29799/HowAreYou/internal/storage"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal("openai api key is not configured (HAY_OPENAI_API_KEY)")
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// wire the pipeline: explicitly constructed handles, no hidden globals
	store := storage.NewEntryStorage(db, cfg.Security.EncryptionKey)

	asrClient := asr.NewHTTPClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.ASRModel)
	retrier := asr.NewRetrier(asrClient)
	analyzer := analysis.NewHTTPClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel)

	orchestrator := ingest.New(retrier, analyzer, store, ingest.Options{
		ASRModel:        cfg.OpenAI.ASRModel,
		ChatModel:       cfg.OpenAI.ChatModel,
		PriceInPerMTok:  cfg.OpenAI.PriceInPerMTok,
		PriceOutPerMTok: cfg.OpenAI.PriceOutPerMTok,
	})
	aggregator := mood.New(store)

	r := router.SetupRouter(cfg, db, router.Deps{
		Store:        store,
		Orchestrator: orchestrator,
		Aggregator:   aggregator,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
