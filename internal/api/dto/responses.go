package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"transaction_date"`
	Amount      float64 `json:"amount"`
	PayeeName   string  `json:"payee_name,omitempty"`
	Description string  `json:"description,omitempty"`
	AccountName string  `json:"account_name,omitempty"`
	IsTransfer  bool    `json:"is_transfer"`
}

// TransactionListResponse is returned when listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int                   `json:"total_count"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// DuplicateGroupResponse represents one group of likely duplicates.
type DuplicateGroupResponse struct {
	Key          string                `json:"key"`
	Confidence   string                `json:"confidence"`
	Reason       string                `json:"reason"`
	Transactions []TransactionResponse `json:"transactions"`
}

// DuplicateSummaryResponse aggregates a scan for dashboard badges.
type DuplicateSummaryResponse struct {
	GroupCount       int     `json:"group_count"`
	HighCount        int     `json:"high_count"`
	MediumCount      int     `json:"medium_count"`
	LowCount         int     `json:"low_count"`
	PotentialSavings float64 `json:"potential_savings"`
}

// DuplicateScanResponse is returned by GET /api/duplicates.
type DuplicateScanResponse struct {
	RunID               string                   `json:"run_id"`
	Sensitivity         string                   `json:"sensitivity"`
	DaysBack            int                      `json:"days_back"`
	TransactionsScanned int                      `json:"transactions_scanned"`
	Groups              []DuplicateGroupResponse `json:"groups"`
	Summary             DuplicateSummaryResponse `json:"summary"`
}

// RecurringSeriesResponse represents one inferred recurring expense.
type RecurringSeriesResponse struct {
	Payee         string  `json:"payee"`
	Frequency     string  `json:"frequency"`
	Occurrences   int     `json:"occurrences"`
	AverageAmount float64 `json:"average_amount"`
	MonthlyAmount float64 `json:"monthly_amount"`
	FirstDate     string  `json:"first_date"`
	LastDate      string  `json:"last_date"`
}

// RecurringListResponse is returned by GET /api/recurring.
type RecurringListResponse struct {
	Series       []RecurringSeriesResponse `json:"series"`
	DaysBack     int                       `json:"days_back"`
	MonthlyTotal float64                   `json:"monthly_total"`
}

// AccountStatsResponse contains per-account statistics.
type AccountStatsResponse struct {
	Account      string  `json:"account"`
	Count        int     `json:"count"`
	TotalInflow  float64 `json:"total_inflow"`
	TotalOutflow float64 `json:"total_outflow"`
}

// StatsResponse is returned by GET /api/stats.
type StatsResponse struct {
	TotalTransactions int                    `json:"total_transactions"`
	TransferCount     int                    `json:"transfer_count"`
	TotalInflow       float64                `json:"total_inflow"`
	TotalOutflow      float64                `json:"total_outflow"`
	AccountStats      []AccountStatsResponse `json:"account_stats"`
}

// ScanRunResponse represents a historical scan run.
type ScanRunResponse struct {
	ID                  string  `json:"id"`
	StartedAt           string  `json:"started_at"`
	Sensitivity         string  `json:"sensitivity"`
	DaysBack            int     `json:"days_back"`
	TransactionsScanned int     `json:"transactions_scanned"`
	GroupCount          int     `json:"group_count"`
	HighCount           int     `json:"high_count"`
	MediumCount         int     `json:"medium_count"`
	LowCount            int     `json:"low_count"`
	PotentialSavings    float64 `json:"potential_savings"`
	DurationMs          int64   `json:"duration_ms"`
}

// ScanRunListResponse is returned when listing scan runs.
type ScanRunListResponse struct {
	Runs  []ScanRunResponse `json:"runs"`
	Count int               `json:"count"`
}

// ImportRowErrorResponse describes one rejected CSV row.
type ImportRowErrorResponse struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReportResponse is returned by POST /api/import.
type ImportReportResponse struct {
	Imported int                      `json:"imported"`
	Skipped  int                      `json:"skipped"`
	Errors   []ImportRowErrorResponse `json:"errors,omitempty"`
}
