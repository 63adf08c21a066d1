package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"deedflow/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	toAddress   string
}

// NewSESNotifier creates a new SES-backed Notifier that emails the operator
// when a document drops out of the pipeline.
func NewSESNotifier(region, fromAddress, toAddress string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		toAddress:   toAddress,
	}, nil
}

func (n *sesNotifier) NotifyDocumentFailure(ctx context.Context, imageName, batchName, reason string) error {
	subject := fmt.Sprintf("Extraction failure in batch %s", batchName)
	textBody := fmt.Sprintf(
		"Document %s in batch %s dropped out of the extraction pipeline.\n\nReason:\n%s\n\nThe record has been marked with status 'error' and needs manual review.",
		imageName, batchName, reason)

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &n.fromAddress,
		Destination: &types.Destination{
			ToAddresses: []string{n.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
