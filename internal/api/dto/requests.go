package dto

// CreateTransactionRequest is the body for POST /api/transactions.
type CreateTransactionRequest struct {
	ID          string  `json:"id"`
	Date        string  `json:"transaction_date" binding:"required"`
	Amount      float64 `json:"amount"`
	PayeeName   string  `json:"payee_name"`
	Description string  `json:"description"`
	AccountName string  `json:"account_name"`
	IsTransfer  bool    `json:"is_transfer"`
}
