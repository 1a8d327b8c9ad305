package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonnet-engine/backend/internal/api"
	"github.com/sonnet-engine/backend/internal/config"
	"github.com/sonnet-engine/backend/internal/engine"
	"github.com/sonnet-engine/backend/internal/fetcher"
	"github.com/sonnet-engine/backend/internal/metrics"
	"github.com/sonnet-engine/backend/internal/repl"
	"github.com/sonnet-engine/backend/internal/storage"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "sonnet-engine")

	entry.Info("Starting Sonnet Retrieval Engine")

	// 1. Config
	cfg := config.Load()

	// 2. Cache
	var store storage.PoemStore
	var err error
	switch cfg.Cache.Backend {
	case "sqlite":
		store, err = storage.NewSQLiteStore(cfg.Cache.SQLitePath)
	default:
		store, err = storage.NewFileStore(cfg.Cache.Dir)
	}
	if err != nil {
		entry.Fatalf("Failed to initialize cache: %v", err)
	}

	// 3. Source + Engine. SONNET_IMPORT_HTML switches the corpus source
	// from the remote API to saved HTML pages.
	var source engine.SonnetSource
	if cfg.Source.ImportDir != "" {
		source = fetcher.NewHTMLDir(cfg.Source.ImportDir, entry)
	} else {
		source = fetcher.NewClient(cfg.Source, entry)
	}
	m := metrics.New()
	eng := engine.NewEngine(cfg, entry, source, store, m)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout+30*time.Second)
	err = eng.Load(ctx)
	cancel()
	if err != nil {
		// Close explicitly: logrus Fatal exits, so a defer would not run.
		store.Close()
		entry.Fatalf("Failed to load corpus: %v", err)
	}

	// 4. Boundary: interactive loop or HTTP API
	if cfg.Server.Interactive {
		if err := repl.Run(os.Stdin, os.Stdout, eng); err != nil {
			store.Close()
			entry.Fatal(err)
		}
		store.Close()
		return
	}

	server := api.NewServer(eng, m, entry)
	entry.Infof("Sonnet search API ready on %s", cfg.Server.Addr)
	if err := server.Start(cfg.Server.Addr); err != nil {
		store.Close()
		entry.Fatal(err)
	}
}
