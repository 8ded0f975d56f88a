package main

import (
	"fmt"
	"log"

	"anyfactor/internal/config"
	"anyfactor/internal/handler"
	"anyfactor/internal/llm"
	"anyfactor/internal/repository/postgres"
	"anyfactor/internal/router"
	"anyfactor/internal/sec"
	"anyfactor/internal/service"
	"anyfactor/internal/textproc"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// A missing provider credential must fail here, before any request
	// work, not in the middle of a stream.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	completer, err := llm.NewCompleter(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm provider: %w", err)
	}

	edgar := sec.NewClient(&cfg.SEC)

	// The run-history store is optional
	var runSvc service.ExtractionService
	healthH := handler.NewHealthHandler(nil)
	if cfg.DB.Enabled {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		runSvc = service.NewExtractionService(edgar, edgar, edgar, completer, postgres.NewRunRepo(db), cfg.Extract, textproc.Normalize)
		healthH = handler.NewHealthHandler(db)
	} else {
		runSvc = service.NewExtractionService(edgar, edgar, edgar, completer, nil, cfg.Extract, textproc.Normalize)
	}

	extractH := handler.NewExtractHandler(runSvc)

	r := router.Setup(cfg, extractH, healthH)

	log.Printf("Server starting on %s (provider %s)", cfg.Server.Port, cfg.LLM.Provider)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
