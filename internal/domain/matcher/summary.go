package matcher

import "math"

// Summary aggregates a set of duplicate groups for dashboard display.
type Summary struct {
	GroupCount  int `json:"group_count"`
	HighCount   int `json:"high_count"`
	MediumCount int `json:"medium_count"`
	LowCount    int `json:"low_count"`

	// PotentialSavings treats all but one member of each group as the
	// duplicate to remove: Σ |first.amount| × (members − 1).
	PotentialSavings float64 `json:"potential_savings"`
}

// Summarize computes aggregate metrics over duplicate groups.
func Summarize(groups []Group) Summary {
	var summary Summary
	summary.GroupCount = len(groups)

	for _, group := range groups {
		switch group.Confidence {
		case ConfidenceHigh:
			summary.HighCount++
		case ConfidenceMedium:
			summary.MediumCount++
		case ConfidenceLow:
			summary.LowCount++
		}

		extra := len(group.Transactions) - 1
		summary.PotentialSavings += math.Abs(group.Transactions[0].Amount) * float64(extra)
	}

	return summary
}
