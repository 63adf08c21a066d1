package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockRecordSink is a mock implementation of port.RecordSink.
type MockRecordSink struct {
	mock.Mock
}

func (m *MockRecordSink) Write(batch, suffix, header, record string) error {
	args := m.Called(batch, suffix, header, record)
	return args.Error(0)
}
