package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"deedflow/internal/domain"
)

// MockDocumentStore is a mock implementation of port.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) FindByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentStore) ListByBatch(ctx context.Context, batch string, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, batch, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentStore) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Status]int), args.Error(1)
}

func (m *MockDocumentStore) UpdateRawText(ctx context.Context, id uuid.UUID, status domain.Status, rawText string) error {
	args := m.Called(ctx, id, status, rawText)
	return args.Error(0)
}

func (m *MockDocumentStore) UpdateResult(ctx context.Context, id uuid.UUID, status domain.Status, processed json.RawMessage) error {
	args := m.Called(ctx, id, status, processed)
	return args.Error(0)
}

func (m *MockDocumentStore) UpdateFailure(ctx context.Context, id uuid.UUID, status domain.Status, errMsg string) error {
	args := m.Called(ctx, id, status, errMsg)
	return args.Error(0)
}
