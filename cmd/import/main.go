package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/spendlens/spendlens-backend/internal/importer"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/logging"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configFile = flag.String("config", "", "Configuration file path")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		filePath   = flag.String("file", "", "CSV file to import (required)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file transactions.csv [-db spendlens.db]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg := loadConfig(*configFile)
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}
	if *verbose {
		cfg.Observability.Logging.Level = "debug"
	}

	logger := logging.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	file, err := os.Open(*filePath)
	if err != nil {
		logger.Error("failed to open CSV file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer file.Close()

	report, err := importer.NewImporter(store, logger).Import(file)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Imported %d transaction(s), skipped %d\n", report.Imported, report.Skipped)
	for _, rowErr := range report.Errors {
		fmt.Printf("  line %d: %s\n", rowErr.Line, rowErr.Message)
	}

	if report.Imported == 0 && report.Skipped > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.LoadOrEnv()
	}
	return config.LoadOrEnvWithPath(path)
}
