// Package claude implements field extraction against the Anthropic Messages API.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"deedflow/internal/config"
	"deedflow/internal/domain"
	"deedflow/internal/extractor"
	"deedflow/internal/port"
	"deedflow/internal/schema"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Extractor implements port.FieldExtractor using the Anthropic Messages API.
type Extractor struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
	registry   *schema.Registry
	client     *http.Client
}

// NewExtractor creates a Claude-based field extractor from a provider config.
func NewExtractor(cfg *config.ExtractorProviderConfig, reg *schema.Registry) *Extractor {
	return newExtractor(cfg, reg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ExtractorProviderConfig, reg *schema.Registry, endpoint string) *Extractor {
	return newExtractor(cfg, reg, endpoint)
}

func newExtractor(cfg *config.ExtractorProviderConfig, reg *schema.Registry, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   endpoint,
		maxRetries: maxRetries,
		registry:   reg,
		client:     &http.Client{Timeout: timeout},
	}
}

// Extract sends the OCR text and schema prompt to the model and decodes the
// per-field candidates from its reply. Malformed replies are retried up to
// the configured limit before surfacing as domain.ErrMalformedResponse.
func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	s, err := e.registry.Get(input.SchemaName)
	if err != nil {
		return nil, err
	}
	prompt := extractor.BuildExtractionPrompt(s)

	fields, err := retry.DoWithData(
		func() (map[string]domain.FieldCandidate, error) {
			return e.extractOnce(ctx, prompt, input.RawText)
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries+1)),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, domain.ErrMalformedResponse)
		}),
	)
	if err != nil {
		return nil, err
	}

	return &port.ExtractOutput{
		Fields:    fields,
		ModelUsed: e.model,
	}, nil
}

func (e *Extractor) extractOnce(ctx context.Context, prompt, rawText string) (map[string]domain.FieldCandidate, error) {
	reqBody := map[string]interface{}{
		"model":      e.model,
		"max_tokens": 8192,
		"system":     prompt,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": "DOCUMENT TEXT:\n\n" + rawText,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extractor.NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (map[string]domain.FieldCandidate, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("%w: empty response from API", domain.ErrMalformedResponse)
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("%w: output truncated (stop_reason: max_tokens)", domain.ErrMalformedResponse)
	}

	text := extractJSONObject(resp.Content[0].Text)
	if text == "" {
		return nil, fmt.Errorf("%w: no JSON object in reply: %s", domain.ErrMalformedResponse, truncate(resp.Content[0].Text, 200))
	}

	var fields map[string]domain.FieldCandidate
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: decoding field candidates: %v (raw: %s)", domain.ErrMalformedResponse, err, truncate(text, 500))
	}
	return fields, nil
}

// extractJSONObject returns the substring between the first '{' and the last
// '}' of the reply, tolerating code fences and prose around the object.
// Returns "" when no such span exists.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
