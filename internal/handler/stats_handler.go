package handler

import (
	"github.com/gin-gonic/gin"

	"deedflow/internal/port"
)

// StatsHandler handles pipeline statistics endpoints.
type StatsHandler struct {
	store port.DocumentStore
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(store port.DocumentStore) *StatsHandler {
	return &StatsHandler{store: store}
}

// GetStats handles GET /api/v1/stats. It reports the number of documents
// sitting at every pipeline status.
func (h *StatsHandler) GetStats(c *gin.Context) {
	counts, err := h.store.CountByStatus(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"status_counts": counts})
}
