package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/feature/outreach/usecase"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestGenerationConfig(t *testing.T) {
	t.Parallel()

	cfg := generationConfig(usecase.Sampling{Temperature: 0.2, MaxOutputTokens: 512})
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.2, *cfg.Temperature, 1e-6)
	assert.Nil(t, cfg.TopP)
	assert.Nil(t, cfg.TopK)
	assert.Equal(t, int32(512), cfg.MaxOutputTokens)
}

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var gotPath string
		var body map[string]any
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"drafted"}]}}]}`))
		})

		got, err := c.Generate(context.Background(), "write an email", usecase.Sampling{Temperature: 0.2})
		require.NoError(t, err)
		assert.Equal(t, "drafted", got)
		assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultModel+":generateContent"), gotPath)
		assert.Contains(t, body, "contents")
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
		})

		_, err := c.Generate(context.Background(), "prompt", usecase.Sampling{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini API request failed")
	})

	t.Run("empty response", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := c.Generate(context.Background(), "prompt", usecase.Sampling{})
		require.Error(t, err)
	})
}

func TestClient_EmbedEmptyInput(t *testing.T) {
	t.Parallel()

	c := &Client{}
	vecs, err := c.EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}
