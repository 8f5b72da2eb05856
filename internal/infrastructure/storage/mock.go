package storage

import (
	"sort"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	transactions map[string]*transaction.Transaction
	scanRuns     map[string]*ScanRun

	// Hooks for test assertions
	SaveTransactionCalled bool
	LastSavedTransaction  *transaction.Transaction
	RecordScanRunCalled   bool
	LastRecordedRun       *ScanRun
	ListWindowCalled      bool

	// Error injection for testing error paths
	SaveTransactionErr error
	ListErr            error
	DeleteErr          error
	RecordScanRunErr   error
	StatsErr           error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[string]*transaction.Transaction),
		scanRuns:     make(map[string]*ScanRun),
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// SaveTransaction saves a transaction to the in-memory map
func (m *MockRepository) SaveTransaction(tx *transaction.Transaction) error {
	m.SaveTransactionCalled = true
	m.LastSavedTransaction = tx
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	copied := *tx
	m.transactions[tx.ID] = &copied
	return nil
}

// SaveTransactions saves a batch of transactions
func (m *MockRepository) SaveTransactions(txs []transaction.Transaction) error {
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	for i := range txs {
		copied := txs[i]
		m.transactions[copied.ID] = &copied
	}
	return nil
}

// GetTransaction retrieves a transaction from the in-memory map
func (m *MockRepository) GetTransaction(id string) (*transaction.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	tx, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	copied := *tx
	return &copied, nil
}

// ListTransactions returns matching transactions, date descending
func (m *MockRepository) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	matched := m.filtered(filters)
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.SameDay(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date.Time)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &TransactionListResult{
		Transactions: matched[start:end],
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

// ListWindow returns all matching transactions, date ascending
func (m *MockRepository) ListWindow(daysBack int, includeTransfers bool) ([]transaction.Transaction, error) {
	m.ListWindowCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	matched := m.filtered(TransactionFilters{DaysBack: daysBack, IncludeTransfers: includeTransfers})
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.SameDay(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date.Time)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

// DeleteTransaction removes a transaction from the in-memory map
func (m *MockRepository) DeleteTransaction(id string) (bool, error) {
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	_, ok := m.transactions[id]
	delete(m.transactions, id)
	return ok, nil
}

// GetStats computes statistics over the in-memory transactions
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}

	stats := &Stats{AccountStats: make(map[string]AccountStats)}
	for _, tx := range m.transactions {
		stats.TotalTransactions++
		if tx.IsTransfer {
			stats.TransferCount++
		}

		as := stats.AccountStats[tx.AccountName]
		as.Count++
		if tx.Amount > 0 {
			stats.TotalInflow += tx.Amount
			as.TotalInflow += tx.Amount
		} else {
			stats.TotalOutflow += -tx.Amount
			as.TotalOutflow += -tx.Amount
		}
		stats.AccountStats[tx.AccountName] = as
	}

	return stats, nil
}

// RecordScanRun saves a scan run to the in-memory map
func (m *MockRepository) RecordScanRun(run *ScanRun) error {
	m.RecordScanRunCalled = true
	m.LastRecordedRun = run
	if m.RecordScanRunErr != nil {
		return m.RecordScanRunErr
	}
	copied := *run
	m.scanRuns[run.ID] = &copied
	return nil
}

// ListScanRuns returns scan runs, newest first
func (m *MockRepository) ListScanRuns(limit int) ([]ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	runs := make([]ScanRun, 0, len(m.scanRuns))
	for _, run := range m.scanRuns {
		runs = append(runs, *run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetScanRun retrieves a scan run from the in-memory map
func (m *MockRepository) GetScanRun(id string) (*ScanRun, error) {
	run, ok := m.scanRuns[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// filtered applies list filters against the in-memory map.
func (m *MockRepository) filtered(filters TransactionFilters) []transaction.Transaction {
	var cutoff time.Time
	if filters.DaysBack > 0 {
		cutoff = time.Now().AddDate(0, 0, -filters.DaysBack)
	}

	matched := make([]transaction.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		if tx.IsTransfer && !filters.IncludeTransfers {
			continue
		}
		if filters.Account != "" && tx.AccountName != filters.Account {
			continue
		}
		if filters.DaysBack > 0 && tx.Date.Before(cutoff) {
			continue
		}
		matched = append(matched, *tx)
	}
	return matched
}
