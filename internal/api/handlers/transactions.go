package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/transaction"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// TransactionsHandler handles transaction CRUD requests.
type TransactionsHandler struct {
	repo  storage.Repository
	scans *service.ScanService
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo storage.Repository, scans *service.ScanService) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, scans: scans}
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		DaysBack:         ParseIntQuery(c, "days_back", 0),
		IncludeTransfers: ParseBoolQuery(c, "include_transfers", false),
		Account:          c.Query("account"),
		Limit:            ParseIntQuery(c, "limit", 0),
		Offset:           ParseIntQuery(c, "offset", 0),
	}

	result, err := h.repo.ListTransactions(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: toTransactionResponses(result.Transactions),
		TotalCount:   result.TotalCount,
		Limit:        result.Limit,
		Offset:       result.Offset,
	})
}

// Get handles GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *gin.Context) {
	tx, err := h.repo.GetTransaction(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(*tx))
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	date, err := transaction.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx := transaction.Transaction{
		ID:          id,
		Date:        date,
		Amount:      req.Amount,
		PayeeName:   req.PayeeName,
		Description: req.Description,
		AccountName: req.AccountName,
		IsTransfer:  req.IsTransfer,
	}

	if err := h.scans.SaveTransaction(&tx); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// Delete handles DELETE /api/transactions/:id.
func (h *TransactionsHandler) Delete(c *gin.Context) {
	deleted, err := h.scans.DeleteTransaction(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}

	c.Status(http.StatusNoContent)
}
