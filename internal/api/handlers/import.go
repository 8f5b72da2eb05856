package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/importer"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// ImportHandler handles CSV transaction uploads.
type ImportHandler struct {
	importer *importer.Importer
	scans    *service.ScanService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(repo storage.Repository, scans *service.ScanService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer.NewImporter(repo, logger),
		scans:    scans,
	}
}

// Upload handles POST /api/import - multipart CSV upload.
func (h *ImportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("a CSV file upload named 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.importer.Import(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	// Imported rows change what a scan would find
	h.scans.Invalidate()

	response := dto.ImportReportResponse{
		Imported: report.Imported,
		Skipped:  report.Skipped,
	}
	for _, rowErr := range report.Errors {
		response.Errors = append(response.Errors, dto.ImportRowErrorResponse{
			Line:    rowErr.Line,
			Message: rowErr.Message,
		})
	}

	c.JSON(http.StatusOK, response)
}
