package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deedflow/internal/config"
	"deedflow/internal/domain"
	"deedflow/internal/extractor"
	claude "deedflow/internal/extractor/claude"
	"deedflow/internal/port"
	"deedflow/internal/schema"
)

func newTestExtractor(serverURL string) *claude.Extractor {
	cfg := &config.ExtractorProviderConfig{
		Provider:     "claude",
		APIKey:       "test-api-key",
		DefaultModel: "claude-sonnet-4-20250514",
		MaxRetries:   2,
		TimeoutSecs:  30,
	}
	return claude.NewExtractorWithEndpoint(cfg, schema.Builtin(), serverURL)
}

func messagesReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestClaudeExtractor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Contains(t, reqBody["system"], "APN_Level")

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Contains(t, msg["content"], "123 MAIN ST")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(messagesReply(
			`{"APN_Level":{"value":"D","confidence":97},"APN_AIN":"5843-012-021"}`,
		))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	out, err := e.Extract(context.Background(), port.ExtractInput{
		SchemaName: "apn",
		RawText:    "123 MAIN ST APN 5843-012-021",
		ImageName:  "IMG001.TIF",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	level := out.Fields["APN_Level"]
	require.NotNil(t, level.Structured)
	assert.Equal(t, "D", level.Structured.Value)
	assert.Equal(t, 97, level.Structured.Confidence)

	// Bare scalar entries survive as scalars for the normalizer to coerce.
	ain := out.Fields["APN_AIN"]
	assert.Nil(t, ain.Structured)
	assert.Equal(t, "5843-012-021", ain.Scalar)
}

func TestClaudeExtractor_StripsProseAroundJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(messagesReply(
			"Here is the extracted data:\n```json\n{\"APN_AIN\":{\"value\":\"5843-012-021\",\"confidence\":92}}\n```\nLet me know if you need anything else.",
		))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	out, err := e.Extract(context.Background(), port.ExtractInput{SchemaName: "apn", RawText: "text"})
	require.NoError(t, err)
	require.NotNil(t, out.Fields["APN_AIN"].Structured)
	assert.Equal(t, "5843-012-021", out.Fields["APN_AIN"].Structured.Value)
}

func TestClaudeExtractor_RetriesMalformedReply(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if calls.Add(1) == 1 {
			_ = json.NewEncoder(w).Encode(messagesReply("I could not find any fields in this document."))
			return
		}
		_ = json.NewEncoder(w).Encode(messagesReply(`{"APN_AIN":{"value":"X","confidence":90}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	out, err := e.Extract(context.Background(), port.ExtractInput{SchemaName: "apn", RawText: "text"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "X", out.Fields["APN_AIN"].Structured.Value)
}

func TestClaudeExtractor_MalformedReplyExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(messagesReply("no json here"))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	_, err := e.Extract(context.Background(), port.ExtractInput{SchemaName: "apn", RawText: "text"})
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	// 1 initial attempt + 2 retries
	assert.Equal(t, int32(3), calls.Load())
}

func TestClaudeExtractor_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL)

	_, err := e.Extract(context.Background(), port.ExtractInput{SchemaName: "apn", RawText: "text"})
	require.Error(t, err)

	var rlErr *extractor.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
}

func TestClaudeExtractor_UnknownSchema(t *testing.T) {
	e := newTestExtractor("http://127.0.0.1:0")

	_, err := e.Extract(context.Background(), port.ExtractInput{SchemaName: "deeds", RawText: "text"})
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
}
