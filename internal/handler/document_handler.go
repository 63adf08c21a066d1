package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"deedflow/internal/domain"
	"deedflow/internal/port"
	"deedflow/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// DocumentHandler handles document intake and inspection endpoints.
type DocumentHandler struct {
	store  port.DocumentStore
	intake *service.IntakeService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(store port.DocumentStore, intake *service.IntakeService) *DocumentHandler {
	return &DocumentHandler{store: store, intake: intake}
}

// Intake handles POST /api/v1/documents
func (h *DocumentHandler) Intake(c *gin.Context) {
	batch := c.PostForm("batch_name")
	if batch == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_BATCH", "batch_name field is required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.intake.Intake(c.Request.Context(), service.IntakeInput{
		BatchName: batch,
		File:      file,
		Header:    header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents?status=<status>&limit=<n>
func (h *DocumentHandler) List(c *gin.Context) {
	status := domain.Status(c.Query("status"))
	if !validStatus(status) {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "unknown status value")
		return
	}

	limit := parseIntQuery(c, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	docs, err := h.store.FindByStatus(c.Request.Context(), status, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	doc, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// ListByBatch handles GET /api/v1/batches/:batch/documents
func (h *DocumentHandler) ListByBatch(c *gin.Context) {
	batch := c.Param("batch")
	offset := parseIntQuery(c, "offset", 0)
	limit := parseIntQuery(c, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	docs, total, err := h.store.ListByBatch(c.Request.Context(), batch, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func validStatus(s domain.Status) bool {
	for _, known := range domain.AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func parseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
