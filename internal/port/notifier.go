package port

import "context"

// Notifier defines the contract for operator notifications.
type Notifier interface {
	NotifyDocumentFailure(ctx context.Context, imageName, batchName, reason string) error
}
