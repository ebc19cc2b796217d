// finor-backup exports and imports full-state snapshots against the same
// data store the server uses. Run it with the server stopped; both
// processes writing the store at once is unsupported.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"finor/internal/config"
	applog "finor/internal/log"
	"finor/internal/storage"
)

func main() {
	_ = godotenv.Load()

	var (
		exportPath = flag.String("export", "", "write a snapshot to this file")
		importPath = flag.String("import", "", "restore a snapshot from this file")
	)
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "usage: finor-backup -export FILE | -import FILE")
		os.Exit(2)
	}

	cfg := config.Load()
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentBackup,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DataBackend, cfg.DataDir, cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	switch {
	case *exportPath != "":
		data, err := store.ExportAll(ctx)
		if err != nil {
			logger.Error("Export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, data, 0644); err != nil {
			logger.Error("Failed to write snapshot file", "error", err, "path", *exportPath)
			os.Exit(1)
		}
		logger.Info("Snapshot written", "path", *exportPath, "bytes", len(data))

	case *importPath != "":
		data, err := os.ReadFile(*importPath)
		if err != nil {
			logger.Error("Failed to read snapshot file", "error", err, "path", *importPath)
			os.Exit(1)
		}
		if err := store.ImportAll(ctx, data); err != nil {
			logger.Error("Import failed", "error", err, "path", *importPath)
			os.Exit(1)
		}
		logger.Info("Snapshot restored", "path", *importPath, "bytes", len(data))
	}
}
