// Package handlers contains the HTTP handlers for the SpendLens API.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
)

// ParseIntQuery parses an integer query parameter with a default value.
func ParseIntQuery(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseBoolQuery parses a boolean query parameter with a default value.
func ParseBoolQuery(c *gin.Context, name string, defaultVal bool) bool {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// toTransactionResponse converts a domain transaction to an API response.
func toTransactionResponse(tx transaction.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Amount:      tx.Amount,
		PayeeName:   tx.PayeeName,
		Description: tx.Description,
		AccountName: tx.AccountName,
		IsTransfer:  tx.IsTransfer,
	}
}

func toTransactionResponses(txs []transaction.Transaction) []dto.TransactionResponse {
	responses := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTransactionResponse(tx))
	}
	return responses
}
