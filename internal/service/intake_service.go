package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"deedflow/internal/domain"
	"deedflow/internal/port"
)

// IntakeInput is the DTO for scanned document intake.
type IntakeInput struct {
	BatchName string
	File      multipart.File
	Header    *multipart.FileHeader
}

// IntakeService admits scanned images into the pipeline: the image goes to
// object storage and a document record is created at the intake status, where
// the OCR worker picks it up.
type IntakeService struct {
	store   port.DocumentStore
	storage port.ObjectStorage
	bucket  string
}

// NewIntakeService creates an IntakeService storing scans in the given bucket.
func NewIntakeService(store port.DocumentStore, storage port.ObjectStorage, bucket string) *IntakeService {
	return &IntakeService{store: store, storage: storage, bucket: bucket}
}

// Intake uploads the scan and creates its document record. If the record
// cannot be created the uploaded object is removed best effort, so a failed
// intake leaves no half-admitted document behind.
func (s *IntakeService) Intake(ctx context.Context, input IntakeInput) (*domain.Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := domain.AllowedImageTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}

	id := uuid.New()
	doc := &domain.Document{
		ID:          id,
		ImageName:   input.Header.Filename,
		BatchName:   input.BatchName,
		S3Bucket:    s.bucket,
		S3Key:       fmt.Sprintf("batches/%s/%s/%s", input.BatchName, id, input.Header.Filename),
		ContentType: contentType,
		Status:      domain.StatusScanned,
	}

	log.Printf("service.IntakeService: admitting %s (%s, %d bytes) into batch %s",
		input.Header.Filename, contentType, input.Header.Size, input.BatchName)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         doc.S3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading scan %s: %w", input.Header.Filename, err)
	}

	if err := s.store.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), s.bucket, doc.S3Key); delErr != nil {
			log.Printf("service.IntakeService: orphaned object s3://%s/%s: %v", s.bucket, doc.S3Key, delErr)
		}
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	return doc, nil
}
