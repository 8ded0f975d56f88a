package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anyfactor/internal/config"
	"anyfactor/internal/llm/claude"
	"anyfactor/internal/port"
)

func newTestClient(serverURL string) *claude.Client {
	cfg := &config.LLMConfig{
		Provider:    "claude",
		APIKey:      "test-api-key",
		Model:       "claude-sonnet-4-20250514",
		TimeoutSecs: 5,
	}
	return claude.NewClientWithEndpoint(cfg, serverURL)
}

func TestComplete_SendsMessagesRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(60), reqBody["max_tokens"])
		assert.Equal(t, 0.0, reqBody["temperature"])
		assert.Equal(t, "You are precise.", reqBody["system"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t, "extract the value", msg["content"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": `{"quarterly": 7}`},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Complete(context.Background(), port.CompletionRequest{
		System:      "You are precise.",
		Prompt:      "extract the value",
		Temperature: 0.0,
		MaxTokens:   60,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"quarterly": 7}`, text)
}

func TestComplete_APIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), port.CompletionRequest{Prompt: "p", MaxTokens: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestComplete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), port.CompletionRequest{Prompt: "p", MaxTokens: 10})

	assert.Error(t, err)
}
