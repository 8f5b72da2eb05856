package matcher

import (
	"fmt"

	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// Sensitivity controls how strict date and payee matching must be.
type Sensitivity string

const (
	SensitivityHigh   Sensitivity = "high"
	SensitivityMedium Sensitivity = "medium"
	SensitivityLow    Sensitivity = "low"
)

// ParseSensitivity validates a user-supplied sensitivity string.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch Sensitivity(s) {
	case SensitivityHigh, SensitivityMedium, SensitivityLow:
		return Sensitivity(s), nil
	}
	return "", fmt.Errorf("invalid sensitivity %q: must be high, medium, or low", s)
}

// dateTolerance returns the maximum day difference allowed between an
// anchor and a candidate at this sensitivity.
func (s Sensitivity) dateTolerance() int {
	switch s {
	case SensitivityHigh:
		return 3
	case SensitivityMedium:
		return 1
	default:
		return 0
	}
}

// comparePayees reports whether payee names participate in matching.
// At low sensitivity only amount and date are considered.
func (s Sensitivity) comparePayees() bool {
	return s != SensitivityLow
}

// Confidence is the qualitative strength of a duplicate match, based on
// which of date, amount, and payee agree across the group.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// rank orders confidence tiers for output sorting; lower sorts first.
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	default:
		return 2
	}
}

// Group is a set of two or more transactions judged to represent the same
// real-world payment recorded more than once. Groups are pure derived data,
// recomputed on every invocation and never cached across calls.
type Group struct {
	// Key identifies the group for list rendering only. It is derived from
	// the first member plus the member count.
	Key string `json:"key"`

	// Transactions are the group members, ordered by date ascending.
	Transactions []transaction.Transaction `json:"transactions"`

	Confidence Confidence `json:"confidence"`

	// Reason explains which criteria matched, e.g.
	// "Same date, amount, and payee".
	Reason string `json:"reason"`
}
