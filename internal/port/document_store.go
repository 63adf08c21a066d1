package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"deedflow/internal/domain"
)

// DocumentStore defines the contract for document persistence.
type DocumentStore interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	FindByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Document, error)
	ListByBatch(ctx context.Context, batch string, offset, limit int) ([]domain.Document, int, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	UpdateRawText(ctx context.Context, id uuid.UUID, status domain.Status, rawText string) error
	UpdateResult(ctx context.Context, id uuid.UUID, status domain.Status, processed json.RawMessage) error
	UpdateFailure(ctx context.Context, id uuid.UUID, status domain.Status, errMsg string) error
}
