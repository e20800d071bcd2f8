package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

func testConfig(url string) config.Config {
	return config.Config{
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-3-flash-preview",
		GeminiBaseURL: url,
		AITemperature: 0.3,
	}
}

func TestGenerateJSON_Success(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-3-flash-preview:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gc, _ := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", gc["responseMimeType"])
		assert.InDelta(t, 0.3, gc["temperature"], 1e-6)
		si, _ := body["systemInstruction"].(map[string]any)
		assert.Contains(t, mustJSON(t, si), "SYSTEM TEXT")
		assert.Contains(t, mustJSON(t, body["contents"]), "USER TEXT")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"careerCards\":[]}"}]}}],
			"usageMetadata":{"promptTokenCount":12,"candidatesTokenCount":5}}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)
	assert.True(t, c.HasCredential())
	assert.Equal(t, "gemini", c.Provider())
	assert.Equal(t, "gemini-3-flash-preview", c.Model())

	out, err := c.GenerateJSON(context.Background(), "SYSTEM TEXT", "USER TEXT")
	require.NoError(t, err)
	assert.Equal(t, `{"careerCards":[]}`, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateJSON_NoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)
	out, err := c.GenerateJSON(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGenerateJSON_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)
	_, err = c.GenerateJSON(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.True(t, strings.HasPrefix(err.Error(), "op=gemini.GenerateJSON: "))
}

func TestNew_WithoutCredential(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), config.Config{GeminiModel: "gemini-3-flash-preview"})
	require.NoError(t, err)
	assert.False(t, c.HasCredential())

	_, err = c.GenerateJSON(context.Background(), "s", "u")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNew_LegacyAPIKey(t *testing.T) {
	t.Parallel()

	c, err := New(context.Background(), config.Config{LegacyAPIKey: "legacy", GeminiModel: "m"})
	require.NoError(t, err)
	assert.True(t, c.HasCredential())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return string(b)
}
