package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deedflow/internal/domain"
	"deedflow/internal/port"
	"deedflow/internal/service"
	"deedflow/internal/sink"
	"deedflow/mocks"
)

func TestArchiveBatch_UploadsEveryOutputFile(t *testing.T) {
	s := sink.NewFileSink(t.TempDir())
	require.NoError(t, s.Write("BATCH01", "Legal", "header", "row"))
	require.NoError(t, s.Write("BATCH01", "Property", "header", "row"))

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "deedflow-outputs" && in.ContentType == "text/plain; charset=utf-8"
	})).Return(&port.UploadOutput{}, nil).Twice()

	svc := service.NewArchiveService(s, storage, "deedflow-outputs")
	keys, err := svc.ArchiveBatch(context.Background(), "BATCH01")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"BATCH01/BATCH01_Legal.txt",
		"BATCH01/BATCH01_Property.txt",
	}, keys)
	storage.AssertExpectations(t)
}

func TestArchiveBatch_UnknownBatch(t *testing.T) {
	s := sink.NewFileSink(t.TempDir())
	storage := new(mocks.MockObjectStorage)

	svc := service.NewArchiveService(s, storage, "deedflow-outputs")
	_, err := svc.ArchiveBatch(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}
