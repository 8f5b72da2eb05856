// Package matcher detects transactions that are probably unintentional
// duplicates, such as a payment recorded twice by accident.
//
// Matching criteria:
//   - Amount must match within 1 cent
//   - Date must be within the sensitivity's tolerance (0-3 days)
//   - Payee names, when both are set, must agree (high/medium sensitivity)
//   - Transfers never participate
//
// Example usage:
//
//	groups := matcher.FindDuplicates(transactions, matcher.SensitivityMedium)
//	summary := matcher.Summarize(groups)
package matcher

import (
	"fmt"
	"math"
	"sort"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// AmountEpsilon is the currency-equality tolerance: amounts differing by
// more than one cent are never duplicates.
const AmountEpsilon = 0.01

// outerWindowDays bounds the forward scan from an anchor. The candidate list
// is date-sorted, so once a candidate is more than this many days out no
// later candidate can match. Always larger than the widest sensitivity
// tolerance (3 days), so it never changes which matches are found.
const outerWindowDays = 7

// FindDuplicates partitions transactions into groups of likely duplicates.
//
// It is a pure function of its inputs: every transaction lands in at most
// one group, every group has at least two members, and transfer-tagged
// transactions are excluded before matching. Output is ordered by
// confidence tier, then by descending absolute amount of the group's first
// member; remaining ties keep discovery order.
func FindDuplicates(transactions []transaction.Transaction, sensitivity Sensitivity) []Group {
	candidates := make([]transaction.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.IsTransfer {
			continue
		}
		candidates = append(candidates, tx)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date.Time)
	})

	tolerance := sensitivity.dateTolerance()
	claimed := make(map[string]bool, len(candidates))
	var groups []Group

	for i, anchor := range candidates {
		if claimed[anchor.ID] {
			continue
		}

		members := []transaction.Transaction{anchor}

		for j := i + 1; j < len(candidates); j++ {
			candidate := candidates[j]
			if claimed[candidate.ID] {
				continue
			}

			dayDiff := anchor.Date.DaysApart(candidate.Date)
			if dayDiff > tolerance {
				if dayDiff > outerWindowDays {
					break
				}
				continue
			}

			if math.Abs(anchor.Amount-candidate.Amount) > AmountEpsilon {
				continue
			}

			if sensitivity.comparePayees() {
				anchorPayee := anchor.NormalizedPayee()
				candidatePayee := candidate.NormalizedPayee()
				if anchorPayee != "" && candidatePayee != "" && anchorPayee != candidatePayee {
					continue
				}
			}

			members = append(members, candidate)
		}

		if len(members) < 2 {
			continue
		}

		for _, member := range members {
			claimed[member.ID] = true
		}

		confidence, reason := classify(members, tolerance)
		groups = append(groups, Group{
			Key:          fmt.Sprintf("%s-%d", members[0].ID, len(members)),
			Transactions: members,
			Confidence:   confidence,
			Reason:       reason,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Confidence != groups[j].Confidence {
			return groups[i].Confidence.rank() < groups[j].Confidence.rank()
		}
		return math.Abs(groups[i].Transactions[0].Amount) > math.Abs(groups[j].Transactions[0].Amount)
	})

	return groups
}

// classify determines the confidence tier and reason for a match set.
//
// high means every member shares the same date and the same payee; medium
// means one of the two holds; low means only the amount (within the date
// tolerance) matched. A payee only counts as shared when every member has
// one set.
func classify(members []transaction.Transaction, tolerance int) (Confidence, string) {
	sameDate := true
	samePayee := true

	first := members[0]
	firstPayee := first.NormalizedPayee()
	if firstPayee == "" {
		samePayee = false
	}

	for _, member := range members[1:] {
		if !member.Date.SameDay(first.Date) {
			sameDate = false
		}
		payee := member.NormalizedPayee()
		if payee == "" || payee != firstPayee {
			samePayee = false
		}
	}

	switch {
	case sameDate && samePayee:
		return ConfidenceHigh, "Same date, amount, and payee"
	case sameDate:
		return ConfidenceMedium, "Same date and amount"
	case samePayee:
		return ConfidenceMedium, fmt.Sprintf("Same payee and amount within %d day(s)", tolerance)
	default:
		return ConfidenceLow, fmt.Sprintf("Same amount within %d day(s)", tolerance)
	}
}
