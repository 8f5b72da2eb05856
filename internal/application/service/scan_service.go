// Package service coordinates analysis passes over stored transactions.
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/spendlens/spendlens-backend/internal/domain/matcher"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// ScanRequest holds parameters for a duplicate scan.
type ScanRequest struct {
	Sensitivity matcher.Sensitivity
	DaysBack    int
}

// ScanResult is the outcome of one duplicate scan.
type ScanResult struct {
	RunID               string              `json:"run_id"`
	Sensitivity         matcher.Sensitivity `json:"sensitivity"`
	DaysBack            int                 `json:"days_back"`
	TransactionsScanned int                 `json:"transactions_scanned"`
	Groups              []matcher.Group     `json:"groups"`
	Summary             matcher.Summary     `json:"summary"`
}

// ScanService runs duplicate scans and recurring-expense inference over the
// transaction store. Scan results are cached per (sensitivity, window) and
// invalidated whenever transactions change, so repeated dashboard refreshes
// don't rescan an unchanged ledger.
type ScanService struct {
	repo   storage.Repository
	logger *slog.Logger
	cfg    config.ScanConfig
	cache  *cache.Cache
}

// NewScanService creates a scan service.
func NewScanService(repo storage.Repository, cfg config.ScanConfig, logger *slog.Logger) *ScanService {
	if logger == nil {
		logger = slog.Default()
	}

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &ScanService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Scan finds duplicate groups in the configured window, records the run,
// and caches the result.
func (s *ScanService) Scan(req ScanRequest) (*ScanResult, error) {
	if req.Sensitivity == "" {
		req.Sensitivity = matcher.Sensitivity(s.cfg.DefaultSensitivity)
	}
	sensitivity, err := matcher.ParseSensitivity(string(req.Sensitivity))
	if err != nil {
		return nil, err
	}
	if req.DaysBack <= 0 {
		req.DaysBack = s.cfg.DefaultDaysBack
	}

	key := scanCacheKey(sensitivity, req.DaysBack)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*ScanResult), nil
	}

	started := time.Now()

	window, err := s.repo.ListWindow(req.DaysBack, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan window: %w", err)
	}

	groups := matcher.FindDuplicates(window, sensitivity)
	summary := matcher.Summarize(groups)

	result := &ScanResult{
		RunID:               uuid.NewString(),
		Sensitivity:         sensitivity,
		DaysBack:            req.DaysBack,
		TransactionsScanned: len(window),
		Groups:              groups,
		Summary:             summary,
	}

	run := &storage.ScanRun{
		ID:                  result.RunID,
		StartedAt:           started,
		Sensitivity:         string(sensitivity),
		DaysBack:            req.DaysBack,
		TransactionsScanned: len(window),
		GroupCount:          summary.GroupCount,
		HighCount:           summary.HighCount,
		MediumCount:         summary.MediumCount,
		LowCount:            summary.LowCount,
		PotentialSavings:    summary.PotentialSavings,
		DurationMs:          time.Since(started).Milliseconds(),
	}
	if err := s.repo.RecordScanRun(run); err != nil {
		// Scan history is best-effort; the scan itself succeeded
		s.logger.Warn("failed to record scan run", "error", err)
	}

	s.logger.Info("duplicate scan complete",
		"sensitivity", sensitivity,
		"days_back", req.DaysBack,
		"scanned", len(window),
		"groups", summary.GroupCount,
	)

	s.cache.Set(key, result, cache.DefaultExpiration)
	return result, nil
}

// Recurring infers recurring expense series over the window.
func (s *ScanService) Recurring(daysBack int) ([]recurring.Series, error) {
	if daysBack <= 0 {
		daysBack = s.cfg.DefaultDaysBack
	}

	window, err := s.repo.ListWindow(daysBack, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring window: %w", err)
	}

	return recurring.InferSeries(window), nil
}

// Invalidate drops all cached scan results. Call after any transaction write.
func (s *ScanService) Invalidate() {
	s.cache.Flush()
}

// SaveTransaction writes a transaction and invalidates cached scans.
func (s *ScanService) SaveTransaction(tx *transaction.Transaction) error {
	if err := s.repo.SaveTransaction(tx); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// DeleteTransaction removes a transaction and invalidates cached scans.
func (s *ScanService) DeleteTransaction(id string) (bool, error) {
	deleted, err := s.repo.DeleteTransaction(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.Invalidate()
	}
	return deleted, nil
}

func scanCacheKey(sensitivity matcher.Sensitivity, daysBack int) string {
	return fmt.Sprintf("scan:%s:%d", sensitivity, daysBack)
}
