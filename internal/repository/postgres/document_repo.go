package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"deedflow/internal/domain"
	"deedflow/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentStore.
func NewDocumentRepo(db *sqlx.DB) port.DocumentStore {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = domain.StatusScanned
	}

	query := `INSERT INTO documents (
		id, image_name, batch_name, s3_bucket, s3_key, content_type,
		status, raw_text, processed_data, error_message,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ImageName, doc.BatchName, doc.S3Bucket, doc.S3Key, doc.ContentType,
		doc.Status, doc.RawText, doc.ProcessedData, doc.ErrorMessage,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) FindByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE status = $1
		 ORDER BY created_at ASC LIMIT $2`,
		status, limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.FindByStatus: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) ListByBatch(ctx context.Context, batch string, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE batch_name = $1", batch)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByBatch count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE batch_name = $1
		 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		batch, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByBatch: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		"SELECT status, COUNT(*) AS n FROM documents GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("documentRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	counts := map[domain.Status]int{}
	for _, s := range domain.AllStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status domain.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("documentRepo.CountByStatus scan: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("documentRepo.CountByStatus rows: %w", err)
	}
	return counts, nil
}

func (r *documentRepo) UpdateRawText(ctx context.Context, id uuid.UUID, status domain.Status, rawText string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, raw_text = $2, error_message = '', updated_at = $3
		 WHERE id = $4`,
		status, rawText, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateRawText: %w", err)
	}
	return checkAffected(result, "documentRepo.UpdateRawText")
}

func (r *documentRepo) UpdateResult(ctx context.Context, id uuid.UUID, status domain.Status, processed json.RawMessage) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, processed_data = $2, error_message = '', updated_at = $3
		 WHERE id = $4`,
		status, processed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateResult: %w", err)
	}
	return checkAffected(result, "documentRepo.UpdateResult")
}

func (r *documentRepo) UpdateFailure(ctx context.Context, id uuid.UUID, status domain.Status, errMsg string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, error_message = $2, updated_at = $3
		 WHERE id = $4`,
		status, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateFailure: %w", err)
	}
	return checkAffected(result, "documentRepo.UpdateFailure")
}

func checkAffected(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s affected: %w", op, err)
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
