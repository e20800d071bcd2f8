package tokencount

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	t.Parallel()

	counter := NewCounter()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int
		maxCount int
	}{
		{name: "gemini model", text: "Hello, world!", model: "gemini-3-flash-preview", minCount: 3, maxCount: 5},
		{name: "gemini with resource prefix", text: "Hello, world!", model: "models/gemini-2.5-flash", minCount: 3, maxCount: 5},
		{name: "openrouter id", text: "The quick brown fox jumps over the lazy dog.", model: "google/gemini-2.0-flash-exp:free", minCount: 8, maxCount: 12},
		{name: "gpt-3.5", text: "Testing token counting", model: "gpt-3.5-turbo", minCount: 3, maxCount: 6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			count, err := counter.CountTokens(tt.text, tt.model)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, tt.minCount)
			assert.LessOrEqual(t, count, tt.maxCount)
		})
	}
}

func TestCountChatTokens(t *testing.T) {
	t.Parallel()

	counter := NewCounter()
	system := "You are a career psychologist."
	user := "Q1 (1-5): 4/5"

	n, err := counter.CountChatTokens(system, user, "gemini-3-flash-preview")
	require.NoError(t, err)

	sys, err := counter.CountTokens(system, "gemini-3-flash-preview")
	require.NoError(t, err)
	usr, err := counter.CountTokens(user, "gemini-3-flash-preview")
	require.NoError(t, err)
	assert.Greater(t, n, sys+usr, "message overhead must be included")
}

func TestNormalizeModelName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"gemini-3-flash-preview":                "gpt-4",
		"models/gemini-2.5-flash":               "gpt-4",
		"meta-llama/llama-3.1-8b-instruct:free": "gpt-4",
		"openai/GPT-3.5-turbo":                  "gpt-3.5-turbo",
		"":                                      "gpt-4",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeModelName(in), in)
	}
}

func TestEncodingCache(t *testing.T) {
	t.Parallel()

	counter := NewCounter()
	_, err := counter.CountTokens("a", "gemini-3-flash-preview")
	require.NoError(t, err)
	_, err = counter.CountTokens("b", "google/gemini-2.5-pro")
	require.NoError(t, err)

	counter.mu.RLock()
	defer counter.mu.RUnlock()
	assert.Len(t, counter.encodingCache, 1, "both gemini ids share the gpt-4 encoding")
}

func TestPromptTokens(t *testing.T) {
	t.Parallel()

	n := DefaultCounter.PromptTokens(strings.Repeat("career ", 100), "CURRENT STAGE: College Student", "gemini-3-flash-preview")
	assert.Greater(t, n, 100)
	assert.Less(t, n, 200)
}
