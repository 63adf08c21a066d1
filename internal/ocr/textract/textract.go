// Package textract implements text recognition with AWS Textract.
package textract

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"deedflow/internal/config"
	"deedflow/internal/port"
)

type recognizer struct {
	client *textract.Client
}

// NewRecognizer creates a Textract-backed TextRecognizer.
func NewRecognizer(cfg *config.OCRConfig) (port.TextRecognizer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var opts []func(*textract.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *textract.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &recognizer{client: textract.NewFromConfig(awsCfg, opts...)}, nil
}

// Recognize runs synchronous text detection over a scanned page and returns
// the detected LINE blocks joined with newlines, preserving reading order.
func (r *recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	out, err := r.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: input.ImageBytes},
	})
	if err != nil {
		return "", fmt.Errorf("textract detect: %w", err)
	}

	var lines []string
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		lines = append(lines, *block.Text)
	}
	return strings.Join(lines, "\n"), nil
}
