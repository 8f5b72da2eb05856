package storage

import "time"

// ScanRun records one duplicate scan for history and dashboards.
type ScanRun struct {
	ID                  string    `json:"id"`
	StartedAt           time.Time `json:"started_at"`
	Sensitivity         string    `json:"sensitivity"`
	DaysBack            int       `json:"days_back"`
	TransactionsScanned int       `json:"transactions_scanned"`
	GroupCount          int       `json:"group_count"`
	HighCount           int       `json:"high_count"`
	MediumCount         int       `json:"medium_count"`
	LowCount            int       `json:"low_count"`
	PotentialSavings    float64   `json:"potential_savings"`
	DurationMs          int64     `json:"duration_ms"`
}

// Stats contains aggregate transaction statistics.
type Stats struct {
	TotalTransactions int                     `json:"total_transactions"`
	TransferCount     int                     `json:"transfer_count"`
	TotalInflow       float64                 `json:"total_inflow"`
	TotalOutflow      float64                 `json:"total_outflow"`
	AccountStats      map[string]AccountStats `json:"account_stats"`
}

// AccountStats contains per-account statistics.
type AccountStats struct {
	Count        int     `json:"count"`
	TotalInflow  float64 `json:"total_inflow"`
	TotalOutflow float64 `json:"total_outflow"`
}
