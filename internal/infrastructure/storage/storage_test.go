package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

func createTempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "spendlens_test.db")
}

func makeTx(id string, amount float64, date transaction.Date) transaction.Transaction {
	return transaction.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		PayeeName:   "Store A",
		AccountName: "Checking",
	}
}

func TestStorage_SaveAndGetTransaction(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	tx := transaction.Transaction{
		ID:          "tx-1",
		Date:        transaction.NewDate(2025, time.February, 1),
		Amount:      -50.00,
		PayeeName:   "Store A",
		Description: "weekly groceries",
		AccountName: "Checking",
		IsTransfer:  false,
	}

	require.NoError(t, store.SaveTransaction(&tx))

	retrieved, err := store.GetTransaction("tx-1")
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, "tx-1", retrieved.ID)
	assert.Equal(t, -50.00, retrieved.Amount)
	assert.Equal(t, "Store A", retrieved.PayeeName)
	assert.Equal(t, "weekly groceries", retrieved.Description)
	assert.Equal(t, "Checking", retrieved.AccountName)
	assert.False(t, retrieved.IsTransfer)
	assert.Equal(t, "2025-02-01", retrieved.Date.String())
}

func TestStorage_GetTransaction_NotFound(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	retrieved, err := store.GetTransaction("missing")
	require.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestStorage_SaveTransaction_UpdateExisting(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	tx := makeTx("tx-1", -10.00, transaction.NewDate(2025, time.February, 1))
	require.NoError(t, store.SaveTransaction(&tx))

	tx.Amount = -12.50
	tx.PayeeName = "Store B"
	require.NoError(t, store.SaveTransaction(&tx))

	retrieved, err := store.GetTransaction("tx-1")
	require.NoError(t, err)
	assert.Equal(t, -12.50, retrieved.Amount)
	assert.Equal(t, "Store B", retrieved.PayeeName)
}

func TestStorage_SaveTransactions_Batch(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	txs := []transaction.Transaction{
		makeTx("tx-1", -10.00, transaction.NewDate(2025, time.February, 1)),
		makeTx("tx-2", -20.00, transaction.NewDate(2025, time.February, 2)),
		makeTx("tx-3", -30.00, transaction.NewDate(2025, time.February, 3)),
	}

	require.NoError(t, store.SaveTransactions(txs))
	require.NoError(t, store.SaveTransactions(nil), "empty batch is a no-op")

	result, err := store.ListTransactions(TransactionFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
}

func TestStorage_ListTransactions_FiltersAndPagination(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	transfer := makeTx("tx-transfer", -100.00, transaction.NewDate(2025, time.February, 2))
	transfer.IsTransfer = true

	savings := makeTx("tx-savings", -40.00, transaction.NewDate(2025, time.February, 3))
	savings.AccountName = "Savings"

	txs := []transaction.Transaction{
		makeTx("tx-1", -10.00, transaction.NewDate(2025, time.February, 1)),
		makeTx("tx-2", -20.00, transaction.NewDate(2025, time.February, 2)),
		transfer,
		savings,
	}
	require.NoError(t, store.SaveTransactions(txs))

	t.Run("transfers excluded by default", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		for _, tx := range result.Transactions {
			assert.False(t, tx.IsTransfer)
		}
	})

	t.Run("transfers included on request", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{IncludeTransfers: true})
		require.NoError(t, err)
		assert.Equal(t, 4, result.TotalCount)
	})

	t.Run("account filter", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Account: "Savings"})
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "tx-savings", result.Transactions[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, result.Transactions, 2)
		assert.Equal(t, 3, result.TotalCount)

		rest, err := store.ListTransactions(TransactionFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest.Transactions, 1)
	})

	t.Run("date descending order", func(t *testing.T) {
		result, err := store.ListTransactions(TransactionFilters{})
		require.NoError(t, err)
		require.NotEmpty(t, result.Transactions)
		for i := 1; i < len(result.Transactions); i++ {
			prev := result.Transactions[i-1].Date
			curr := result.Transactions[i].Date
			assert.False(t, prev.Before(curr.Time), "expected date descending")
		}
	})
}

func TestStorage_ListWindow_DateAscending(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	transfer := makeTx("tx-transfer", -50.00, transaction.NewDate(2025, time.February, 2))
	transfer.IsTransfer = true

	require.NoError(t, store.SaveTransactions([]transaction.Transaction{
		makeTx("tx-2", -20.00, transaction.NewDate(2025, time.February, 5)),
		makeTx("tx-1", -10.00, transaction.NewDate(2025, time.February, 1)),
		transfer,
	}))

	window, err := store.ListWindow(0, false)
	require.NoError(t, err)

	require.Len(t, window, 2)
	assert.Equal(t, "tx-1", window[0].ID)
	assert.Equal(t, "tx-2", window[1].ID)
}

func TestStorage_ListWindow_DaysBack(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	today := transaction.Date{Time: time.Now()}
	old := transaction.Date{Time: time.Now().AddDate(0, 0, -60)}

	require.NoError(t, store.SaveTransactions([]transaction.Transaction{
		makeTx("tx-recent", -20.00, today),
		makeTx("tx-old", -10.00, old),
	}))

	window, err := store.ListWindow(30, false)
	require.NoError(t, err)

	require.Len(t, window, 1)
	assert.Equal(t, "tx-recent", window[0].ID)
}

func TestStorage_DeleteTransaction(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	tx := makeTx("tx-1", -10.00, transaction.NewDate(2025, time.February, 1))
	require.NoError(t, store.SaveTransaction(&tx))

	deleted, err := store.DeleteTransaction("tx-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteTransaction("tx-1")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}

func TestStorage_GetStats(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	transfer := makeTx("tx-transfer", -100.00, transaction.NewDate(2025, time.February, 2))
	transfer.IsTransfer = true

	inflow := makeTx("tx-salary", 2000.00, transaction.NewDate(2025, time.February, 1))
	inflow.AccountName = "Checking"

	require.NoError(t, store.SaveTransactions([]transaction.Transaction{
		makeTx("tx-1", -50.00, transaction.NewDate(2025, time.February, 1)),
		inflow,
		transfer,
	}))

	stats, err := store.GetStats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTransactions)
	assert.Equal(t, 1, stats.TransferCount)
	assert.InDelta(t, 2000.00, stats.TotalInflow, 0.001)
	assert.InDelta(t, 150.00, stats.TotalOutflow, 0.001)

	checking := stats.AccountStats["Checking"]
	assert.Equal(t, 3, checking.Count)
}

func TestStorage_ScanRuns(t *testing.T) {
	store, err := NewStorage(createTempDB(t))
	require.NoError(t, err)
	defer store.Close()

	first := &ScanRun{
		ID:                  "run-1",
		StartedAt:           time.Now().Add(-time.Hour),
		Sensitivity:         "medium",
		DaysBack:            90,
		TransactionsScanned: 120,
		GroupCount:          3,
		HighCount:           1,
		MediumCount:         1,
		LowCount:            1,
		PotentialSavings:    90.00,
		DurationMs:          12,
	}
	second := &ScanRun{
		ID:          "run-2",
		StartedAt:   time.Now(),
		Sensitivity: "high",
		DaysBack:    30,
	}

	require.NoError(t, store.RecordScanRun(first))
	require.NoError(t, store.RecordScanRun(second))

	runs, err := store.ListScanRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID, "newest first")

	run, err := store.GetScanRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "medium", run.Sensitivity)
	assert.Equal(t, 3, run.GroupCount)
	assert.InDelta(t, 90.00, run.PotentialSavings, 0.001)

	missing, err := store.GetScanRun("run-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	dbPath := createTempDB(t)

	store, err := NewStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrations again; all should be recorded as applied
	store, err = NewStorage(dbPath)
	require.NoError(t, err)
	defer store.Close()

	applied, err := store.getAppliedMigrations()
	require.NoError(t, err)
	assert.Len(t, applied, len(allMigrations))
}
