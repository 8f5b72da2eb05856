package storage

import "github.com/spendlens/spendlens-backend/internal/domain/transaction"

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// mocks straightforward.
type Repository interface {
	TransactionRepository
	ScanRunRepository
	Close() error
}

// TransactionRepository handles transaction persistence.
type TransactionRepository interface {
	// SaveTransaction saves or updates a single transaction
	SaveTransaction(tx *transaction.Transaction) error

	// SaveTransactions saves a batch of transactions in one database transaction
	SaveTransactions(txs []transaction.Transaction) error

	// GetTransaction retrieves a transaction by ID; nil if not found
	GetTransaction(id string) (*transaction.Transaction, error)

	// ListTransactions returns transactions matching the filters, paginated,
	// date descending
	ListTransactions(filters TransactionFilters) (*TransactionListResult, error)

	// ListWindow returns all transactions in the lookback window, date
	// ascending, for analysis passes
	ListWindow(daysBack int, includeTransfers bool) ([]transaction.Transaction, error)

	// DeleteTransaction removes a transaction; reports whether it existed
	DeleteTransaction(id string) (bool, error)

	// GetStats returns aggregate statistics
	GetStats() (*Stats, error)
}

// TransactionFilters defines filters for listing transactions.
type TransactionFilters struct {
	DaysBack         int    // How many days back to look (0 = all time)
	IncludeTransfers bool   // Include transfer-tagged transactions
	Account          string // Filter by account name (empty = all)
	Limit            int    // Max results (0 = default 100)
	Offset           int    // Pagination offset
}

// TransactionListResult contains paginated transaction results.
type TransactionListResult struct {
	Transactions []transaction.Transaction `json:"transactions"`
	TotalCount   int                       `json:"total_count"`
	Limit        int                       `json:"limit"`
	Offset       int                       `json:"offset"`
}

// ScanRunRepository tracks duplicate scan history.
type ScanRunRepository interface {
	// RecordScanRun persists a completed scan run
	RecordScanRun(run *ScanRun) error

	// ListScanRuns returns recent scan runs, newest first
	ListScanRuns(limit int) ([]ScanRun, error)

	// GetScanRun retrieves a scan run by ID; nil if not found
	GetScanRun(id string) (*ScanRun, error)
}
