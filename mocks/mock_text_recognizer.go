package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"deedflow/internal/port"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
