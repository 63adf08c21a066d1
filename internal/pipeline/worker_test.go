package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deedflow/internal/domain"
	"deedflow/internal/pipeline"
	"deedflow/internal/port"
	"deedflow/internal/schema"
	"deedflow/mocks"
)

func legalStage() pipeline.Stage {
	return pipeline.ExtractionStages()[0]
}

func newWorker(t *testing.T, store *mocks.MockDocumentStore, oracle *mocks.MockFieldExtractor, snk *mocks.MockRecordSink, notifier *mocks.MockNotifier) *pipeline.StageWorker {
	t.Helper()
	var n port.Notifier
	if notifier != nil {
		n = notifier
	}
	w, err := pipeline.NewStageWorker(
		legalStage(), schema.Builtin(), store, oracle, snk, n,
		pipeline.NewBatchLocks(),
		pipeline.WorkerConfig{PollInterval: 50 * time.Millisecond, BatchSize: 10, Concurrency: 2},
	)
	require.NoError(t, err)
	return w
}

func testDoc() *domain.Document {
	return &domain.Document{
		ID:        uuid.New(),
		ImageName: "IMG001.TIF",
		BatchName: "BATCH01",
		Status:    domain.StatusOCRPassed,
		RawText:   "LOT 7 BLOCK B OF TRACT 12",
	}
}

func TestStageWorker_SuccessAppendsThenCommits(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)

	doc := testDoc()

	oracle.On("Extract", mock.Anything, mock.MatchedBy(func(in port.ExtractInput) bool {
		return in.SchemaName == "legal" && in.RawText == doc.RawText
	})).Return(&port.ExtractOutput{
		Fields: map[string]domain.FieldCandidate{
			"Legal_Type": domain.StructuredCandidate("tr", 97),
		},
	}, nil).Once()

	var written string
	snk.On("Write", "BATCH01", "Legal", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { written = args.String(3) }).
		Return(nil).Once()

	store.On("UpdateResult", mock.Anything, doc.ID, domain.StatusLegalPassed, mock.Anything).
		Return(nil).Once()

	w := newWorker(t, store, oracle, snk, nil)
	w.Process(context.Background(), doc)

	oracle.AssertExpectations(t)
	snk.AssertExpectations(t)
	store.AssertExpectations(t)

	cols := strings.Split(written, "|")
	assert.Equal(t, "IMG001.TIF", cols[0])
	assert.Equal(t, "BATCH01", cols[1])
	assert.Equal(t, "1", cols[2])
	assert.Contains(t, cols, "TR")
}

func TestStageWorker_SinkFailureLeavesStatusUntouched(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)

	doc := testDoc()

	oracle.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Fields: map[string]domain.FieldCandidate{}}, nil).Once()
	snk.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("disk full")).Once()

	w := newWorker(t, store, oracle, snk, nil)
	w.Process(context.Background(), doc)

	store.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpdateFailure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStageWorker_OracleFailureWritesSentinelRowAndMarksError(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)
	notifier := new(mocks.MockNotifier)

	doc := testDoc()

	oracle.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider unavailable")).Once()

	var sentinelRow string
	snk.On("Write", "BATCH01", "Legal", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentinelRow = args.String(3) }).
		Return(nil).Once()

	store.On("UpdateFailure", mock.Anything, doc.ID, domain.StatusError, mock.AnythingOfType("string")).
		Return(nil).Once()
	notifier.On("NotifyDocumentFailure", mock.Anything, "IMG001.TIF", "BATCH01", mock.AnythingOfType("string")).
		Return(nil).Once()

	w := newWorker(t, store, oracle, snk, notifier)
	w.Process(context.Background(), doc)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
	store.AssertNotCalled(t, "UpdateResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	s, err := schema.Builtin().Get("legal")
	require.NoError(t, err)
	assert.Len(t, strings.Split(sentinelRow, "|"), s.ColumnCount())
	assert.Contains(t, sentinelRow, "NONE")
}

func TestStageWorker_MissingRawTextFailsWithoutOracle(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)

	doc := testDoc()
	doc.RawText = "   "

	snk.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	store.On("UpdateFailure", mock.Anything, doc.ID, domain.StatusError, mock.AnythingOfType("string")).
		Return(nil).Once()

	w := newWorker(t, store, oracle, snk, nil)
	w.Process(context.Background(), doc)

	oracle.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestStageWorker_FailedDocumentDoesNotBlockOthersInPoll(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)

	bad := testDoc()
	bad.ImageName = "IMG001.TIF"
	bad.RawText = "ILLEGIBLE SMUDGE"
	good := testDoc()
	good.ImageName = "IMG002.TIF"
	good.RawText = "LOT 7 BLOCK B OF TRACT 12"

	store.On("FindByStatus", mock.Anything, domain.StatusOCRPassed, 10).
		Return([]domain.Document{*bad, *good}, nil).Once()
	store.On("FindByStatus", mock.Anything, domain.StatusOCRPassed, 10).
		Return([]domain.Document{}, nil).Maybe()

	oracle.On("Extract", mock.Anything, mock.MatchedBy(func(in port.ExtractInput) bool {
		return in.RawText == bad.RawText
	})).Return(nil, errors.New("provider unavailable")).Once()
	oracle.On("Extract", mock.Anything, mock.MatchedBy(func(in port.ExtractInput) bool {
		return in.RawText == good.RawText
	})).Return(&port.ExtractOutput{
		Fields: map[string]domain.FieldCandidate{
			"Legal_Type": domain.StructuredCandidate("tr", 97),
		},
	}, nil).Once()

	// Sentinel row for the failed document plus the record for the good one.
	snk.On("Write", "BATCH01", "Legal", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Twice()

	store.On("UpdateFailure", mock.Anything, bad.ID, domain.StatusError, mock.AnythingOfType("string")).
		Return(nil).Once()
	store.On("UpdateResult", mock.Anything, good.ID, domain.StatusLegalPassed, mock.Anything).
		Return(nil).Once()

	w := newWorker(t, store, oracle, snk, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	oracle.AssertExpectations(t)
	snk.AssertExpectations(t)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "UpdateFailure", mock.Anything, good.ID, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpdateResult", mock.Anything, bad.ID, mock.Anything, mock.Anything)
}

func TestStageWorker_StartPollsAndDispatches(t *testing.T) {
	store := new(mocks.MockDocumentStore)
	oracle := new(mocks.MockFieldExtractor)
	snk := new(mocks.MockRecordSink)

	doc := testDoc()

	// First poll returns one doc, subsequent polls return empty.
	store.On("FindByStatus", mock.Anything, domain.StatusOCRPassed, 10).
		Return([]domain.Document{*doc}, nil).Once()
	store.On("FindByStatus", mock.Anything, domain.StatusOCRPassed, 10).
		Return([]domain.Document{}, nil).Maybe()

	oracle.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Fields: map[string]domain.FieldCandidate{}}, nil).Once()
	snk.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	store.On("UpdateResult", mock.Anything, doc.ID, domain.StatusLegalPassed, mock.Anything).
		Return(nil).Once()

	w := newWorker(t, store, oracle, snk, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not shut down")
	}

	oracle.AssertExpectations(t)
	store.AssertExpectations(t)
}
