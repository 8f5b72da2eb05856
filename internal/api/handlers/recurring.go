package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
)

// RecurringHandler serves recurring-expense inference.
type RecurringHandler struct {
	scans *service.ScanService
}

// NewRecurringHandler creates a new recurring handler.
func NewRecurringHandler(scans *service.ScanService) *RecurringHandler {
	return &RecurringHandler{scans: scans}
}

// List handles GET /api/recurring.
func (h *RecurringHandler) List(c *gin.Context) {
	daysBack := ParseIntQuery(c, "days_back", 365)

	series, err := h.scans.Recurring(daysBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RecurringListResponse{
		Series:   make([]dto.RecurringSeriesResponse, 0, len(series)),
		DaysBack: daysBack,
	}
	for _, s := range series {
		response.Series = append(response.Series, dto.RecurringSeriesResponse{
			Payee:         s.Payee,
			Frequency:     string(s.Frequency),
			Occurrences:   s.Occurrences,
			AverageAmount: s.AverageAmount,
			MonthlyAmount: s.MonthlyAmount,
			FirstDate:     s.FirstDate.String(),
			LastDate:      s.LastDate.String(),
		})
		response.MonthlyTotal += s.MonthlyAmount
	}

	c.JSON(http.StatusOK, response)
}
