package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"deedflow/internal/export"
	"deedflow/internal/service"
)

// BatchHandler handles batch output endpoints: Excel export for manual
// review and archival to object storage.
type BatchHandler struct {
	exporter *export.BatchExporter
	archiver *service.ArchiveService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(exporter *export.BatchExporter, archiver *service.ArchiveService) *BatchHandler {
	return &BatchHandler{exporter: exporter, archiver: archiver}
}

// Export handles GET /api/v1/batches/:batch/export. It streams the batch's
// output files as an .xlsx workbook, one sheet per stage.
func (h *BatchHandler) Export(c *gin.Context) {
	batch := c.Param("batch")

	workbook, err := h.exporter.ExportBatch(batch)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.xlsx", batch)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		workbook)
}

// Archive handles POST /api/v1/batches/:batch/archive. It uploads the
// batch's output files to the archive bucket.
func (h *BatchHandler) Archive(c *gin.Context) {
	batch := c.Param("batch")

	keys, err := h.archiver.ArchiveBatch(c.Request.Context(), batch)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"archived": keys})
}
