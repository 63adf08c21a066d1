package noop

import (
	"context"
	"log"

	"deedflow/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs failures to stdout.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyDocumentFailure(_ context.Context, imageName, batchName, reason string) error {
	log.Printf("[NOOP NOTIFY] Document %s (batch %s) failed: %s", imageName, batchName, reason)
	return nil
}
