// Package importer reads transaction CSV files into the store.
//
// Expected header: date,amount,payee,description,account,is_transfer
// (id is optional as a leading column; missing IDs are generated).
// Rows that fail validation are reported per line and skipped; a bad row
// never aborts the rest of the file.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// RowError describes a single rejected CSV row.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report summarizes an import.
type Report struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer parses transaction CSVs and persists them.
type Importer struct {
	repo   storage.Repository
	logger *slog.Logger
}

// NewImporter creates an importer backed by the given repository.
func NewImporter(repo storage.Repository, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{repo: repo, logger: logger}
}

// Import parses the CSV stream and saves all valid rows in one batch.
func (i *Importer) Import(r io.Reader) (*Report, error) {
	txs, report, err := Parse(r)
	if err != nil {
		return nil, err
	}

	if err := i.repo.SaveTransactions(txs); err != nil {
		return nil, fmt.Errorf("failed to save imported transactions: %w", err)
	}

	i.logger.Info("import complete",
		"imported", report.Imported,
		"skipped", report.Skipped,
	)

	return report, nil
}

// column indexes after header normalization
type layout struct {
	id, date, amount, payee, description, account, transfer int
}

// Parse reads a transaction CSV and returns the valid rows plus a report of
// rejected ones.
func Parse(r io.Reader) ([]transaction.Transaction, *Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols, err := resolveLayout(header)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{}
	var txs []transaction.Transaction

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		tx, err := parseRow(record, cols)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		txs = append(txs, tx)
		report.Imported++
	}

	return txs, report, nil
}

// resolveLayout maps header names to column indexes. Column order is free;
// date and amount are mandatory.
func resolveLayout(header []string) (layout, error) {
	cols := layout{id: -1, date: -1, amount: -1, payee: -1, description: -1, account: -1, transfer: -1}

	for idx, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			cols.id = idx
		case "date", "transaction_date":
			cols.date = idx
		case "amount":
			cols.amount = idx
		case "payee", "payee_name":
			cols.payee = idx
		case "description":
			cols.description = idx
		case "account", "account_name":
			cols.account = idx
		case "is_transfer", "transfer":
			cols.transfer = idx
		}
	}

	if cols.date == -1 || cols.amount == -1 {
		return cols, fmt.Errorf("CSV header must include date and amount columns, got %v", header)
	}
	return cols, nil
}

func parseRow(record []string, cols layout) (transaction.Transaction, error) {
	var tx transaction.Transaction

	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := transaction.ParseDate(field(cols.date))
	if err != nil {
		return tx, err
	}

	amount, err := strconv.ParseFloat(field(cols.amount), 64)
	if err != nil {
		return tx, fmt.Errorf("invalid amount %q", field(cols.amount))
	}

	isTransfer := false
	if raw := field(cols.transfer); raw != "" {
		isTransfer, err = strconv.ParseBool(raw)
		if err != nil {
			return tx, fmt.Errorf("invalid is_transfer value %q", raw)
		}
	}

	id := field(cols.id)
	if id == "" {
		id = uuid.NewString()
	}

	tx = transaction.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		PayeeName:   field(cols.payee),
		Description: field(cols.description),
		AccountName: field(cols.account),
		IsTransfer:  isTransfer,
	}
	return tx, nil
}
