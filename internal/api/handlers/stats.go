package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// StatsHandler handles stats-related HTTP requests.
type StatsHandler struct {
	repo storage.Repository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats - returns aggregate statistics.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	// Convert account stats map to a sorted slice for stable frontend rendering
	accounts := make([]dto.AccountStatsResponse, 0, len(stats.AccountStats))
	for account, as := range stats.AccountStats {
		accounts = append(accounts, dto.AccountStatsResponse{
			Account:      account,
			Count:        as.Count,
			TotalInflow:  as.TotalInflow,
			TotalOutflow: as.TotalOutflow,
		})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Account < accounts[j].Account
	})

	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalTransactions: stats.TotalTransactions,
		TransferCount:     stats.TransferCount,
		TotalInflow:       stats.TotalInflow,
		TotalOutflow:      stats.TotalOutflow,
		AccountStats:      accounts,
	})
}
