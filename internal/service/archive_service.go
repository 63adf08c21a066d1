// Package service holds the operations exposed by the HTTP surface on top
// of the pipeline's stores and sinks.
package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"deedflow/internal/port"
	"deedflow/internal/sink"
)

// ArchiveService uploads a batch's output files to object storage.
type ArchiveService struct {
	sink    *sink.FileSink
	storage port.ObjectStorage
	bucket  string
}

// NewArchiveService creates an ArchiveService targeting the given bucket.
func NewArchiveService(s *sink.FileSink, storage port.ObjectStorage, bucket string) *ArchiveService {
	return &ArchiveService{sink: s, storage: storage, bucket: bucket}
}

// ArchiveBatch uploads every output file of the batch and returns the object
// keys written. Returns domain.ErrBatchNotFound (wrapped) when the batch has
// no output files.
func (s *ArchiveService) ArchiveBatch(ctx context.Context, batch string) ([]string, error) {
	files, err := s.sink.BatchFiles(batch)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		key := batch + "/" + filepath.Base(path)
		_, err = s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        f,
			ContentType: "text/plain; charset=utf-8",
			Size:        info.Size(),
		})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", key, err)
		}

		log.Printf("service.ArchiveService: uploaded %s to s3://%s/%s", path, s.bucket, key)
		keys = append(keys, key)
	}
	return keys, nil
}
