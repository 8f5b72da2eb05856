package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// ScansHandler serves historical scan runs.
type ScansHandler struct {
	repo storage.Repository
}

// NewScansHandler creates a new scans handler.
func NewScansHandler(repo storage.Repository) *ScansHandler {
	return &ScansHandler{repo: repo}
}

// List handles GET /api/scans - returns recent scan runs.
func (h *ScansHandler) List(c *gin.Context) {
	limit := ParseIntQuery(c, "limit", 20)

	runs, err := h.repo.ListScanRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.ScanRunListResponse{
		Runs:  make([]dto.ScanRunResponse, 0, len(runs)),
		Count: len(runs),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toScanRunResponse(run))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/scans/:id - returns a single scan run.
func (h *ScansHandler) Get(c *gin.Context) {
	run, err := h.repo.GetScanRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("scan run"))
		return
	}

	c.JSON(http.StatusOK, toScanRunResponse(*run))
}

// toScanRunResponse converts a storage ScanRun to an API response.
func toScanRunResponse(run storage.ScanRun) dto.ScanRunResponse {
	return dto.ScanRunResponse{
		ID:                  run.ID,
		StartedAt:           run.StartedAt.UTC().Format(time.RFC3339),
		Sensitivity:         run.Sensitivity,
		DaysBack:            run.DaysBack,
		TransactionsScanned: run.TransactionsScanned,
		GroupCount:          run.GroupCount,
		HighCount:           run.HighCount,
		MediumCount:         run.MediumCount,
		LowCount:            run.LowCount,
		PotentialSavings:    run.PotentialSavings,
		DurationMs:          run.DurationMs,
	}
}
