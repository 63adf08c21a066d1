package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"deedflow/internal/domain"
	"deedflow/internal/port"
)

// OCRWorker polls for freshly scanned documents, pulls the image from object
// storage, runs text recognition, and stores the raw text. It produces no
// formatted output; the extraction stages consume the raw text downstream.
type OCRWorker struct {
	store      port.DocumentStore
	storage    port.ObjectStorage
	recognizer port.TextRecognizer
	notifier   port.Notifier
	cfg        WorkerConfig

	wg       sync.WaitGroup
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewOCRWorker creates the intake worker. notifier may be nil.
func NewOCRWorker(store port.DocumentStore, storage port.ObjectStorage, recognizer port.TextRecognizer, notifier port.Notifier, cfg WorkerConfig) *OCRWorker {
	return &OCRWorker{
		store:      store,
		storage:    storage,
		recognizer: recognizer,
		notifier:   notifier,
		cfg:        cfg,
		inFlight:   map[uuid.UUID]struct{}{},
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight documents have finished.
func (w *OCRWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("pipeline.OCRWorker: started (poll=%s, concurrency=%d)", w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("pipeline.OCRWorker: shutting down, waiting for in-flight documents...")
			w.wg.Wait()
			log.Printf("pipeline.OCRWorker: shutdown complete")
			return
		case <-ticker.C:
			if len(sem) >= w.cfg.Concurrency {
				continue
			}

			docs, err := w.store.FindByStatus(ctx, domain.StatusScanned, w.cfg.BatchSize)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("pipeline.OCRWorker: FindByStatus error: %v", err)
				continue
			}

			for i := range docs {
				doc := docs[i]
				if !w.claim(doc.ID) {
					continue
				}

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()
					defer w.release(doc.ID)

					workCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					w.Process(workCtx, &doc)
				}()
			}
		}
	}
}

func (w *OCRWorker) claim(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[id]; busy {
		return false
	}
	w.inFlight[id] = struct{}{}
	return true
}

func (w *OCRWorker) release(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, id)
}

// Process recognizes one scanned document and commits the raw text.
func (w *OCRWorker) Process(ctx context.Context, doc *domain.Document) {
	if doc.S3Bucket == "" || doc.S3Key == "" {
		w.fail(ctx, doc, fmt.Errorf("%w: document %s has no stored image", domain.ErrMissingInput, doc.ID))
		return
	}

	image, err := w.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		w.fail(ctx, doc, fmt.Errorf("downloading scan %s/%s: %w", doc.S3Bucket, doc.S3Key, err))
		return
	}

	text, err := w.recognizer.Recognize(ctx, port.RecognizeInput{
		ImageBytes:  image,
		ContentType: doc.ContentType,
	})
	if err != nil {
		w.fail(ctx, doc, fmt.Errorf("recognizing %s: %w", doc.DisplayImageName(), err))
		return
	}

	if err := w.store.UpdateRawText(ctx, doc.ID, domain.StatusOCRPassed, text); err != nil {
		log.Printf("pipeline.OCRWorker: committing text for document %s failed: %v", doc.ID, err)
		return
	}

	log.Printf("pipeline.OCRWorker: document %s -> %s (%d bytes of text)", doc.ID, domain.StatusOCRPassed, len(text))
}

func (w *OCRWorker) fail(ctx context.Context, doc *domain.Document, cause error) {
	log.Printf("pipeline.OCRWorker: document %s failed: %v", doc.ID, cause)

	if err := w.store.UpdateFailure(ctx, doc.ID, domain.StatusError, cause.Error()); err != nil {
		log.Printf("pipeline.OCRWorker: marking document %s failed: %v", doc.ID, err)
		return
	}

	if w.notifier != nil {
		if err := w.notifier.NotifyDocumentFailure(ctx, doc.DisplayImageName(), doc.DisplayBatchName(), cause.Error()); err != nil {
			log.Printf("pipeline.OCRWorker: failure notification for document %s: %v", doc.ID, err)
		}
	}
}
