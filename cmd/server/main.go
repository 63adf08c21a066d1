package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"deedflow/internal/config"
	"deedflow/internal/export"
	"deedflow/internal/extractor"
	"deedflow/internal/extractor/claude"
	"deedflow/internal/handler"
	"deedflow/internal/notify/noop"
	"deedflow/internal/notify/ses"
	"deedflow/internal/ocr/textract"
	"deedflow/internal/pipeline"
	"deedflow/internal/port"
	"deedflow/internal/repository/postgres"
	"deedflow/internal/router"
	"deedflow/internal/schema"
	"deedflow/internal/service"
	"deedflow/internal/sink"
	s3storage "deedflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store := postgres.NewDocumentRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	recognizer, err := textract.NewRecognizer(&cfg.OCR)
	if err != nil {
		return fmt.Errorf("failed to initialize text recognizer: %w", err)
	}

	registry := schema.Builtin()

	extractor.RegisterProvider("claude", func(pc *config.ExtractorProviderConfig, reg *schema.Registry) (port.FieldExtractor, error) {
		return claude.NewExtractor(pc, reg), nil
	})

	oracle, err := buildExtractor(&cfg.Extractor, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize field extractor: %w", err)
	}

	notifier, err := buildNotifier(&cfg.Notify)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	fileSink := sink.NewFileSink(cfg.Output.Dir)
	locks := pipeline.NewBatchLocks()

	workerCfg := pipeline.WorkerConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		BatchSize:    cfg.Queue.BatchSize,
		Concurrency:  cfg.Queue.Concurrency,
	}

	ocrWorker := pipeline.NewOCRWorker(store, s3Client, recognizer, notifier, workerCfg)

	var stageWorkers []*pipeline.StageWorker
	for _, stage := range pipeline.ExtractionStages() {
		w, err := pipeline.NewStageWorker(stage, registry, store, oracle, fileSink, notifier, locks, workerCfg)
		if err != nil {
			return fmt.Errorf("failed to build %s stage worker: %w", stage.Name, err)
		}
		stageWorkers = append(stageWorkers, w)
	}

	// HTTP surface
	archiver := service.NewArchiveService(fileSink, s3Client, cfg.S3.ArchiveBucket)
	exporter := export.NewBatchExporter(fileSink)
	intake := service.NewIntakeService(store, s3Client, cfg.S3.Bucket)

	healthH := handler.NewHealthHandler(db)
	statsH := handler.NewStatsHandler(store)
	documentH := handler.NewDocumentHandler(store, intake)
	batchH := handler.NewBatchHandler(exporter, archiver)

	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, statsH, documentH, batchH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ocrWorker.Start(ctx)
	}()
	for _, w := range stageWorkers {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Start(ctx)
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		wg.Wait()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	wg.Wait()
	log.Printf("Shutdown complete")

	return nil
}

// buildExtractor assembles the primary extractor, wrapped with the secondary
// in a fallback chain when one is configured.
func buildExtractor(cfg *config.ExtractorConfig, reg *schema.Registry) (port.FieldExtractor, error) {
	primary, err := extractor.NewExtractor(&cfg.Primary, reg)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := extractor.NewExtractor(secondaryCfg, reg)
	if err != nil {
		return nil, err
	}

	return extractor.NewFallbackExtractor(
		[]port.FieldExtractor{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}

func buildNotifier(cfg *config.NotifyConfig) (port.Notifier, error) {
	switch cfg.Provider {
	case "ses":
		if cfg.ToAddress == "" {
			return nil, fmt.Errorf("notify.to_address is required for the ses notifier")
		}
		return ses.NewSESNotifier(cfg.Region, cfg.FromAddress, cfg.ToAddress)
	default:
		return noop.NewNoopNotifier(), nil
	}
}
