package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"deedflow/internal/domain"
	"deedflow/internal/normalize"
	"deedflow/internal/port"
	"deedflow/internal/schema"
)

// WorkerConfig holds settings shared by the stage workers.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
}

// BatchLocks serializes sink writes per batch output file. All stage workers
// share one instance so a batch key never has two concurrent writers.
type BatchLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewBatchLocks creates an empty lock table.
func NewBatchLocks() *BatchLocks {
	return &BatchLocks{locks: map[string]*sync.Mutex{}}
}

func (b *BatchLocks) get(key string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.locks[key]
	if !ok {
		l = &sync.Mutex{}
		b.locks[key] = l
	}
	return l
}

// StageWorker polls for documents at its stage's input status and moves each
// one through extraction, normalization, the output sink, and the status
// commit. The sink append always happens before the status commit, so a
// crash between the two reprocesses the document instead of losing its row.
type StageWorker struct {
	stage    Stage
	schema   *schema.Schema
	store    port.DocumentStore
	oracle   port.FieldExtractor
	sink     port.RecordSink
	notifier port.Notifier
	locks    *BatchLocks
	cfg      WorkerConfig

	wg       sync.WaitGroup
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewStageWorker creates a worker for one extraction stage. notifier may be
// nil when failure notification is not configured.
func NewStageWorker(stage Stage, reg *schema.Registry, store port.DocumentStore, oracle port.FieldExtractor, sink port.RecordSink, notifier port.Notifier, locks *BatchLocks, cfg WorkerConfig) (*StageWorker, error) {
	s, err := reg.Get(stage.SchemaName)
	if err != nil {
		return nil, err
	}
	return &StageWorker{
		stage:    stage,
		schema:   s,
		store:    store,
		oracle:   oracle,
		sink:     sink,
		notifier: notifier,
		locks:    locks,
		cfg:      cfg,
		inFlight: map[uuid.UUID]struct{}{},
	}, nil
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight documents have finished.
func (w *StageWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("pipeline.StageWorker[%s]: started (poll=%s, concurrency=%d)",
		w.stage.Name, w.cfg.PollInterval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("pipeline.StageWorker[%s]: shutting down, waiting for in-flight documents...", w.stage.Name)
			w.wg.Wait()
			log.Printf("pipeline.StageWorker[%s]: shutdown complete", w.stage.Name)
			return
		case <-ticker.C:
			if len(sem) >= w.cfg.Concurrency {
				continue
			}

			docs, err := w.store.FindByStatus(ctx, w.stage.Input, w.cfg.BatchSize)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("pipeline.StageWorker[%s]: FindByStatus error: %v", w.stage.Name, err)
				continue
			}

			for i := range docs {
				doc := docs[i] // copy for goroutine
				if !w.claim(doc.ID) {
					continue
				}

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release
					defer w.release(doc.ID)

					// Fresh context independent of the poll context so
					// in-flight documents complete during shutdown.
					workCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					w.Process(workCtx, &doc)
				}()
			}
		}
	}
}

// claim marks a document in flight; false means a previous poll already
// dispatched it.
func (w *StageWorker) claim(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, busy := w.inFlight[id]; busy {
		return false
	}
	w.inFlight[id] = struct{}{}
	return true
}

func (w *StageWorker) release(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, id)
}

// Process runs one document through the stage. Failures never touch other
// documents; a sink write failure leaves the status unchanged so the next
// poll retries the document.
func (w *StageWorker) Process(ctx context.Context, doc *domain.Document) {
	ident := normalize.Identity{
		ImageName: doc.DisplayImageName(),
		BatchName: doc.DisplayBatchName(),
	}

	if strings.TrimSpace(doc.RawText) == "" {
		err := fmt.Errorf("%w: document %s has no recognized text", domain.ErrMissingInput, doc.ID)
		w.fail(ctx, doc, ident, domain.FlagExtractionFailed, err)
		return
	}

	out, err := w.oracle.Extract(ctx, port.ExtractInput{
		SchemaName: w.stage.SchemaName,
		RawText:    doc.RawText,
		ImageName:  doc.DisplayImageName(),
	})
	if err != nil {
		flag := domain.FlagExtractionFailed
		if errors.Is(err, domain.ErrMalformedResponse) {
			flag = domain.FlagMalformedResponse
		}
		w.fail(ctx, doc, ident, flag, fmt.Errorf("%w: %v", domain.ErrOracleFailure, err))
		return
	}

	rec := normalize.Normalize(w.schema, ident, out.Fields)

	if err := w.appendRecord(ident.BatchName, rec); err != nil {
		log.Printf("pipeline.StageWorker[%s]: sink write for document %s failed, will retry: %v",
			w.stage.Name, doc.ID, err)
		return
	}

	processed, err := json.Marshal(rec.Fields)
	if err != nil {
		log.Printf("pipeline.StageWorker[%s]: marshaling results for document %s: %v", w.stage.Name, doc.ID, err)
		processed = nil
	}

	if err := w.store.UpdateResult(ctx, doc.ID, w.stage.Success, processed); err != nil {
		// The row is already appended; the next poll reprocesses and appends
		// again. Duplicate rows on crash recovery are accepted.
		log.Printf("pipeline.StageWorker[%s]: status commit for document %s failed: %v",
			w.stage.Name, doc.ID, err)
		return
	}

	log.Printf("pipeline.StageWorker[%s]: document %s -> %s (complete=%t)",
		w.stage.Name, doc.ID, w.stage.Success, rec.Complete)
}

// fail writes a full-width sentinel row for the document, marks it failed,
// and notifies the operator. The sentinel row is best effort; the status
// transition is not.
func (w *StageWorker) fail(ctx context.Context, doc *domain.Document, ident normalize.Identity, flag string, cause error) {
	log.Printf("pipeline.StageWorker[%s]: document %s failed: %v", w.stage.Name, doc.ID, cause)

	rec := normalize.Normalize(w.schema, ident, normalize.FailedExtraction(w.schema, flag))
	if err := w.appendRecord(ident.BatchName, rec); err != nil {
		log.Printf("pipeline.StageWorker[%s]: sentinel row for document %s failed: %v", w.stage.Name, doc.ID, err)
	}

	if err := w.store.UpdateFailure(ctx, doc.ID, domain.StatusError, cause.Error()); err != nil {
		log.Printf("pipeline.StageWorker[%s]: marking document %s failed: %v", w.stage.Name, doc.ID, err)
		return
	}

	if w.notifier != nil {
		if err := w.notifier.NotifyDocumentFailure(ctx, ident.ImageName, ident.BatchName, cause.Error()); err != nil {
			log.Printf("pipeline.StageWorker[%s]: failure notification for document %s: %v", w.stage.Name, doc.ID, err)
		}
	}
}

// appendRecord serializes writes to the batch output file and appends the
// formatted row.
func (w *StageWorker) appendRecord(batch string, rec *normalize.Record) error {
	l := w.locks.get(batch + "/" + w.schema.OutputSuffix)
	l.Lock()
	defer l.Unlock()
	return w.sink.Write(batch, w.schema.OutputSuffix, normalize.HeaderFor(w.schema), rec.Line())
}
