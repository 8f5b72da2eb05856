// Package recurring infers recurring expense series from transaction
// history: which payees charge on a regular cadence, how often, and what
// that costs per month.
package recurring

import (
	"math"
	"sort"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// Frequency is the inferred cadence of a recurring series.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// monthlyFactor converts one occurrence's amount to a per-month figure.
func (f Frequency) monthlyFactor() float64 {
	switch f {
	case FrequencyWeekly:
		return 52.0 / 12.0
	case FrequencyBiweekly:
		return 26.0 / 12.0
	case FrequencyQuarterly:
		return 1.0 / 3.0
	case FrequencyYearly:
		return 1.0 / 12.0
	default:
		return 1.0
	}
}

// minOccurrences is the fewest charges needed before a cadence is inferred.
const minOccurrences = 3

// Series is one inferred recurring expense.
type Series struct {
	Payee         string           `json:"payee"`
	Frequency     Frequency        `json:"frequency"`
	Occurrences   int              `json:"occurrences"`
	AverageAmount float64          `json:"average_amount"`
	MonthlyAmount float64          `json:"monthly_amount"`
	FirstDate     transaction.Date `json:"first_date"`
	LastDate      transaction.Date `json:"last_date"`
}

// InferSeries detects recurring expenses among the given transactions.
//
// Outflows are grouped by normalized payee; a group with at least three
// occurrences whose median gap lands in a recognized cadence band becomes a
// series. Transfers and payee-less transactions are ignored. Output is
// sorted by monthly amount descending.
func InferSeries(transactions []transaction.Transaction) []Series {
	byPayee := make(map[string][]transaction.Transaction)
	displayName := make(map[string]string)

	for _, tx := range transactions {
		if tx.IsTransfer || !tx.IsOutflow() {
			continue
		}
		payee := tx.NormalizedPayee()
		if payee == "" {
			continue
		}
		byPayee[payee] = append(byPayee[payee], tx)
		if displayName[payee] == "" {
			displayName[payee] = tx.PayeeName
		}
	}

	var series []Series
	for payee, txs := range byPayee {
		if len(txs) < minOccurrences {
			continue
		}

		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Date.Before(txs[j].Date.Time)
		})

		gaps := make([]int, 0, len(txs)-1)
		for i := 1; i < len(txs); i++ {
			gaps = append(gaps, txs[i-1].Date.DaysApart(txs[i].Date))
		}

		frequency, ok := classifyGap(medianGap(gaps))
		if !ok {
			continue
		}

		var total float64
		for _, tx := range txs {
			total += math.Abs(tx.Amount)
		}
		average := total / float64(len(txs))

		series = append(series, Series{
			Payee:         displayName[payee],
			Frequency:     frequency,
			Occurrences:   len(txs),
			AverageAmount: average,
			MonthlyAmount: average * frequency.monthlyFactor(),
			FirstDate:     txs[0].Date,
			LastDate:      txs[len(txs)-1].Date,
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].MonthlyAmount > series[j].MonthlyAmount
	})

	return series
}

// medianGap returns the median of the day gaps between occurrences.
func medianGap(gaps []int) int {
	sorted := make([]int, len(gaps))
	copy(sorted, gaps)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// classifyGap maps a median day gap to a cadence. The bands are
// deliberately loose: real billing dates drift around weekends and
// month-length differences.
func classifyGap(days int) (Frequency, bool) {
	switch {
	case days >= 5 && days <= 9:
		return FrequencyWeekly, true
	case days >= 12 && days <= 18:
		return FrequencyBiweekly, true
	case days >= 26 && days <= 35:
		return FrequencyMonthly, true
	case days >= 80 && days <= 100:
		return FrequencyQuarterly, true
	case days >= 330 && days <= 400:
		return FrequencyYearly, true
	}
	return "", false
}
