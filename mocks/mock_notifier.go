package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyDocumentFailure(ctx context.Context, imageName, batchName, reason string) error {
	args := m.Called(ctx, imageName, batchName, reason)
	return args.Error(0)
}
