package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/matcher"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/logging"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Configuration file path")
		dbPath      = flag.String("db", "", "Database path (overrides config)")
		sensitivity = flag.String("sensitivity", "", "Scan sensitivity: high, medium, or low")
		daysBack    = flag.Int("days", 0, "Number of days to look back (0 = config default)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

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

	scans := service.NewScanService(store, cfg.Scan, logger)

	result, err := scans.Scan(service.ScanRequest{
		Sensitivity: matcher.Sensitivity(*sensitivity),
		DaysBack:    *daysBack,
	})
	if err != nil {
		logger.Error("scan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printReport(result)
}

func printReport(result *service.ScanResult) {
	fmt.Printf("Scanned %d transaction(s) over the last %d day(s) at %s sensitivity\n\n",
		result.TransactionsScanned, result.DaysBack, result.Sensitivity)

	if len(result.Groups) == 0 {
		fmt.Println("No potential duplicates found.")
		return
	}

	for i, group := range result.Groups {
		fmt.Printf("Group %d [%s] %s\n", i+1, group.Confidence, group.Reason)
		for _, tx := range group.Transactions {
			payee := tx.PayeeName
			if payee == "" {
				payee = "(no payee)"
			}
			fmt.Printf("  %s  %10.2f  %s\n", tx.Date, tx.Amount, payee)
		}
		fmt.Println()
	}

	fmt.Printf("Groups: %d (high: %d, medium: %d, low: %d)\n",
		result.Summary.GroupCount, result.Summary.HighCount, result.Summary.MediumCount, result.Summary.LowCount)
	fmt.Printf("Potential savings if duplicates are removed: %.2f\n", result.Summary.PotentialSavings)
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.LoadOrEnv()
	}
	return config.LoadOrEnvWithPath(path)
}
