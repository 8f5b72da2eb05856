package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens-backend/internal/domain/matcher"
	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

func testScanConfig() config.ScanConfig {
	return config.ScanConfig{
		DefaultSensitivity: "medium",
		DefaultDaysBack:    90,
		CacheTTLSeconds:    300,
	}
}

func seedDuplicates(t *testing.T, repo *storage.MockRepository) {
	t.Helper()

	date := transaction.Date{Time: time.Now().AddDate(0, 0, -5)}
	require.NoError(t, repo.SaveTransactions([]transaction.Transaction{
		{ID: "tx1", Date: date, Amount: -50.00, PayeeName: "Store A"},
		{ID: "tx2", Date: date, Amount: -50.00, PayeeName: "Store A"},
		{ID: "tx3", Date: date, Amount: -7.25, PayeeName: "Cafe"},
	}))
}

func TestScanService_Scan(t *testing.T) {
	repo := storage.NewMockRepository()
	seedDuplicates(t, repo)

	svc := NewScanService(repo, testScanConfig(), nil)

	result, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, matcher.SensitivityMedium, result.Sensitivity)
	assert.Equal(t, 90, result.DaysBack, "default window applied")
	assert.Equal(t, 3, result.TransactionsScanned)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, matcher.ConfidenceHigh, result.Groups[0].Confidence)
	assert.Equal(t, 1, result.Summary.GroupCount)
	assert.InDelta(t, 50.00, result.Summary.PotentialSavings, 0.001)

	require.True(t, repo.RecordScanRunCalled)
	assert.Equal(t, result.RunID, repo.LastRecordedRun.ID)
	assert.Equal(t, "medium", repo.LastRecordedRun.Sensitivity)
	assert.Equal(t, 1, repo.LastRecordedRun.GroupCount)
}

func TestScanService_Scan_DefaultSensitivity(t *testing.T) {
	repo := storage.NewMockRepository()
	svc := NewScanService(repo, testScanConfig(), nil)

	result, err := svc.Scan(ScanRequest{})
	require.NoError(t, err)
	assert.Equal(t, matcher.SensitivityMedium, result.Sensitivity)
}

func TestScanService_Scan_InvalidSensitivity(t *testing.T) {
	repo := storage.NewMockRepository()
	svc := NewScanService(repo, testScanConfig(), nil)

	_, err := svc.Scan(ScanRequest{Sensitivity: "paranoid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sensitivity")
}

func TestScanService_Scan_CachesResult(t *testing.T) {
	repo := storage.NewMockRepository()
	seedDuplicates(t, repo)

	svc := NewScanService(repo, testScanConfig(), nil)

	first, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	repo.ListWindowCalled = false
	second, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	assert.False(t, repo.ListWindowCalled, "second scan should hit the cache")
	assert.Equal(t, first.RunID, second.RunID)
}

func TestScanService_WriteInvalidatesCache(t *testing.T) {
	repo := storage.NewMockRepository()
	seedDuplicates(t, repo)

	svc := NewScanService(repo, testScanConfig(), nil)

	first, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	date := transaction.Date{Time: time.Now().AddDate(0, 0, -5)}
	require.NoError(t, svc.SaveTransaction(&transaction.Transaction{
		ID: "tx4", Date: date, Amount: -7.25, PayeeName: "Cafe",
	}))

	second, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID, "write should force a fresh scan")
	assert.Equal(t, 2, second.Summary.GroupCount)
}

func TestScanService_DeleteInvalidatesCache(t *testing.T) {
	repo := storage.NewMockRepository()
	seedDuplicates(t, repo)

	svc := NewScanService(repo, testScanConfig(), nil)

	_, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)

	deleted, err := svc.DeleteTransaction("tx2")
	require.NoError(t, err)
	require.True(t, deleted)

	result, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityMedium})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.GroupCount)
}

func TestScanService_Scan_RepositoryError(t *testing.T) {
	repo := storage.NewMockRepository()
	repo.ListErr = assert.AnError

	svc := NewScanService(repo, testScanConfig(), nil)

	_, err := svc.Scan(ScanRequest{Sensitivity: matcher.SensitivityLow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load scan window")
}

func TestScanService_Recurring(t *testing.T) {
	repo := storage.NewMockRepository()

	var txs []transaction.Transaction
	for i := 0; i < 4; i++ {
		txs = append(txs, transaction.Transaction{
			ID:        string(rune('a' + i)),
			Date:      transaction.Date{Time: time.Now().AddDate(0, 0, -30*(3-i))},
			Amount:    -15.99,
			PayeeName: "Streamly",
		})
	}
	require.NoError(t, repo.SaveTransactions(txs))

	svc := NewScanService(repo, testScanConfig(), nil)

	series, err := svc.Recurring(365)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "Streamly", series[0].Payee)
}
