package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/matcher"
)

// DuplicatesHandler serves duplicate-transaction scans.
type DuplicatesHandler struct {
	scans *service.ScanService
}

// NewDuplicatesHandler creates a new duplicates handler.
func NewDuplicatesHandler(scans *service.ScanService) *DuplicatesHandler {
	return &DuplicatesHandler{scans: scans}
}

// Scan handles GET /api/duplicates.
func (h *DuplicatesHandler) Scan(c *gin.Context) {
	var sensitivity matcher.Sensitivity
	if param := c.Query("sensitivity"); param != "" {
		parsed, err := matcher.ParseSensitivity(param)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
			return
		}
		sensitivity = parsed
	}

	result, err := h.scans.Scan(service.ScanRequest{
		Sensitivity: sensitivity,
		DaysBack:    ParseIntQuery(c, "days_back", 0),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, toScanResponse(result))
}

func toScanResponse(result *service.ScanResult) dto.DuplicateScanResponse {
	groups := make([]dto.DuplicateGroupResponse, 0, len(result.Groups))
	for _, group := range result.Groups {
		groups = append(groups, dto.DuplicateGroupResponse{
			Key:          group.Key,
			Confidence:   string(group.Confidence),
			Reason:       group.Reason,
			Transactions: toTransactionResponses(group.Transactions),
		})
	}

	return dto.DuplicateScanResponse{
		RunID:               result.RunID,
		Sensitivity:         string(result.Sensitivity),
		DaysBack:            result.DaysBack,
		TransactionsScanned: result.TransactionsScanned,
		Groups:              groups,
		Summary: dto.DuplicateSummaryResponse{
			GroupCount:       result.Summary.GroupCount,
			HighCount:        result.Summary.HighCount,
			MediumCount:      result.Summary.MediumCount,
			LowCount:         result.Summary.LowCount,
			PotentialSavings: result.Summary.PotentialSavings,
		},
	}
}
