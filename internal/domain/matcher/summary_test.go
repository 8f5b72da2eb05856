package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

func TestSummarize(t *testing.T) {
	date := transaction.NewDate(2025, time.February, 1)

	groups := []Group{
		{
			Confidence: ConfidenceHigh,
			Transactions: []transaction.Transaction{
				{ID: "a1", Date: date, Amount: -50.00},
				{ID: "a2", Date: date, Amount: -50.00},
			},
		},
		{
			Confidence: ConfidenceMedium,
			Transactions: []transaction.Transaction{
				{ID: "b1", Date: date, Amount: -20.00},
				{ID: "b2", Date: date, Amount: -20.00},
				{ID: "b3", Date: date, Amount: -20.00},
			},
		},
	}

	summary := Summarize(groups)

	assert.Equal(t, 2, summary.GroupCount)
	assert.Equal(t, 1, summary.HighCount)
	assert.Equal(t, 1, summary.MediumCount)
	assert.Equal(t, 0, summary.LowCount)

	// 50 × 1 from the first group plus 20 × 2 from the second
	assert.InDelta(t, 90.00, summary.PotentialSavings, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.GroupCount)
	assert.Equal(t, 0.0, summary.PotentialSavings)
}
