// Package transaction defines the core transaction model shared by storage,
// import, and the analysis packages.
package transaction

import "strings"

// Transaction is a single ledger entry. Negative amounts are outflows.
type Transaction struct {
	ID          string  `json:"id"`
	Date        Date    `json:"transaction_date"`
	Amount      float64 `json:"amount"`
	PayeeName   string  `json:"payee_name,omitempty"`
	Description string  `json:"description,omitempty"`
	AccountName string  `json:"account_name,omitempty"`

	// IsTransfer marks money movement between the user's own accounts.
	// A transfer intentionally produces two linked records, so transfers
	// are excluded from duplicate analysis.
	IsTransfer bool `json:"is_transfer"`
}

// NormalizedPayee returns the payee name lowercased and trimmed for
// comparison purposes. Empty means no payee is set.
func (t Transaction) NormalizedPayee() string {
	return strings.ToLower(strings.TrimSpace(t.PayeeName))
}

// IsOutflow reports whether the transaction is money leaving an account.
func (t Transaction) IsOutflow() bool {
	return t.Amount < 0
}
