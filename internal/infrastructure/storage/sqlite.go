package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// defaultListLimit caps unpaginated list requests.
const defaultListLimit = 100

// Storage provides SQLite database access for transactions and scan runs.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveTransaction saves or updates a single transaction
func (s *Storage) SaveTransaction(tx *transaction.Transaction) error {
	query := `
	INSERT OR REPLACE INTO transactions
	(id, transaction_date, amount, payee_name, description, account_name, is_transfer)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		tx.ID,
		tx.Date.String(),
		tx.Amount,
		tx.PayeeName,
		tx.Description,
		tx.AccountName,
		tx.IsTransfer,
	)

	return err
}

// SaveTransactions saves a batch of transactions in one database transaction
func (s *Storage) SaveTransactions(txs []transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := dbTx.Prepare(`
		INSERT OR REPLACE INTO transactions
		(id, transaction_date, amount, payee_name, description, account_name, is_transfer)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = dbTx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, tx := range txs {
		_, err := stmt.Exec(
			tx.ID,
			tx.Date.String(),
			tx.Amount,
			tx.PayeeName,
			tx.Description,
			tx.AccountName,
			tx.IsTransfer,
		)
		if err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
		}
	}

	return dbTx.Commit()
}

// GetTransaction retrieves a transaction by ID
func (s *Storage) GetTransaction(id string) (*transaction.Transaction, error) {
	query := `
	SELECT id, transaction_date, amount, payee_name, description, account_name, is_transfer
	FROM transactions WHERE id = ?
	`

	tx, err := scanTransaction(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// ListTransactions returns transactions matching the filters, date descending
func (s *Storage) ListTransactions(filters TransactionFilters) (*TransactionListResult, error) {
	where, args := buildTransactionWhere(filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
	SELECT id, transaction_date, amount, payee_name, description, account_name, is_transfer
	FROM transactions` + where + `
	ORDER BY transaction_date DESC, id
	LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, append(args, limit, filters.Offset)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	txs, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	return &TransactionListResult{
		Transactions: txs,
		TotalCount:   total,
		Limit:        limit,
		Offset:       filters.Offset,
	}, nil
}

// ListWindow returns all transactions in the lookback window, date ascending
func (s *Storage) ListWindow(daysBack int, includeTransfers bool) ([]transaction.Transaction, error) {
	where, args := buildTransactionWhere(TransactionFilters{
		DaysBack:         daysBack,
		IncludeTransfers: includeTransfers,
	})

	query := `
	SELECT id, transaction_date, amount, payee_name, description, account_name, is_transfer
	FROM transactions` + where + `
	ORDER BY transaction_date ASC, id
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTransactions(rows)
}

// DeleteTransaction removes a transaction; reports whether it existed
func (s *Storage) DeleteTransaction(id string) (bool, error) {
	result, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetStats returns aggregate transaction statistics
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{
		AccountStats: make(map[string]AccountStats),
	}

	query := `
	SELECT
		COUNT(*) as total,
		COUNT(CASE WHEN is_transfer = 1 THEN 1 END) as transfers,
		COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) as inflow,
		COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) as outflow
	FROM transactions
	`

	err := s.db.QueryRow(query).Scan(
		&stats.TotalTransactions,
		&stats.TransferCount,
		&stats.TotalInflow,
		&stats.TotalOutflow,
	)
	if err != nil {
		return nil, err
	}

	accountQuery := `
	SELECT
		account_name,
		COUNT(*) as count,
		COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) as inflow,
		COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) as outflow
	FROM transactions
	GROUP BY account_name
	`

	rows, err := s.db.Query(accountQuery)
	if err == nil {
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var account string
			var as AccountStats
			if err := rows.Scan(&account, &as.Count, &as.TotalInflow, &as.TotalOutflow); err == nil {
				stats.AccountStats[account] = as
			}
		}
	}

	return stats, nil
}

// RecordScanRun persists a completed scan run
func (s *Storage) RecordScanRun(run *ScanRun) error {
	query := `
	INSERT INTO scan_runs
	(id, started_at, sensitivity, days_back, transactions_scanned,
	 group_count, high_count, medium_count, low_count, potential_savings, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.StartedAt,
		run.Sensitivity,
		run.DaysBack,
		run.TransactionsScanned,
		run.GroupCount,
		run.HighCount,
		run.MediumCount,
		run.LowCount,
		run.PotentialSavings,
		run.DurationMs,
	)

	return err
}

// ListScanRuns returns recent scan runs, newest first
func (s *Storage) ListScanRuns(limit int) ([]ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT id, started_at, sensitivity, days_back, transactions_scanned,
	       group_count, high_count, medium_count, low_count, potential_savings, duration_ms
	FROM scan_runs
	ORDER BY started_at DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []ScanRun
	for rows.Next() {
		var run ScanRun
		err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.Sensitivity,
			&run.DaysBack,
			&run.TransactionsScanned,
			&run.GroupCount,
			&run.HighCount,
			&run.MediumCount,
			&run.LowCount,
			&run.PotentialSavings,
			&run.DurationMs,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetScanRun retrieves a scan run by ID
func (s *Storage) GetScanRun(id string) (*ScanRun, error) {
	query := `
	SELECT id, started_at, sensitivity, days_back, transactions_scanned,
	       group_count, high_count, medium_count, low_count, potential_savings, duration_ms
	FROM scan_runs WHERE id = ?
	`

	var run ScanRun
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.StartedAt,
		&run.Sensitivity,
		&run.DaysBack,
		&run.TransactionsScanned,
		&run.GroupCount,
		&run.HighCount,
		&run.MediumCount,
		&run.LowCount,
		&run.PotentialSavings,
		&run.DurationMs,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// buildTransactionWhere assembles the WHERE clause shared by the list queries.
func buildTransactionWhere(filters TransactionFilters) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filters.DaysBack > 0 {
		clauses = append(clauses, `transaction_date >= date('now', ?)`)
		args = append(args, fmt.Sprintf("-%d days", filters.DaysBack))
	}
	if !filters.IncludeTransfers {
		clauses = append(clauses, `is_transfer = 0`)
	}
	if filters.Account != "" {
		clauses = append(clauses, `account_name = ?`)
		args = append(args, filters.Account)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTransaction.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var dateStr string

	err := row.Scan(
		&tx.ID,
		&dateStr,
		&tx.Amount,
		&tx.PayeeName,
		&tx.Description,
		&tx.AccountName,
		&tx.IsTransfer,
	)
	if err != nil {
		return nil, err
	}

	tx.Date, err = transaction.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt date for transaction %s: %w", tx.ID, err)
	}

	return &tx, nil
}

func collectTransactions(rows *sql.Rows) ([]transaction.Transaction, error) {
	var txs []transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}
