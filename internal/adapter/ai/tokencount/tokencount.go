// Package tokencount estimates prompt sizes for analysis requests.
//
// Counts use tiktoken-go with the BPE ranks embedded by tiktoken-go-loader,
// so no network fetch happens at runtime. Gemini and OpenRouter models are
// counted with cl100k_base, which is close enough for monitoring.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Counter provides thread-safe token counting.
type Counter struct {
	encodingCache map[string]*tiktoken.Tiktoken
	mu            sync.RWMutex
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter {
	return &Counter{
		encodingCache: make(map[string]*tiktoken.Tiktoken),
	}
}

// DefaultCounter is shared by the analysis service and the MCP server.
var DefaultCounter = NewCounter()

func (c *Counter) getEncodingForModel(model string) (*tiktoken.Tiktoken, error) {
	normalizedModel := normalizeModelName(model)

	c.mu.RLock()
	if enc, ok := c.encodingCache[normalizedModel]; ok {
		c.mu.RUnlock()
		return enc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encodingCache[normalizedModel]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(normalizedModel)
	if err != nil {
		slog.Debug("falling back to cl100k_base encoding",
			slog.String("model", model),
			slog.String("normalized", normalizedModel),
			slog.Any("error", err))
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}

	c.encodingCache[normalizedModel] = enc
	return enc, nil
}

// normalizeModelName converts provider model IDs to tiktoken-compatible names.
func normalizeModelName(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))

	// "models/gemini-2.5-flash", "google/gemini-2.5-flash:free"
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	if i := strings.Index(model, ":"); i >= 0 {
		model = model[:i]
	}

	switch {
	case strings.Contains(model, "gpt-3.5"):
		return "gpt-3.5-turbo"
	default:
		// gemini, gemma, llama, mistral, qwen, deepseek, claude and unknown
		// models all approximate well with the gpt-4 (cl100k_base) encoding.
		return "gpt-4"
	}
}

// CountTokens counts the number of tokens in text for model.
func (c *Counter) CountTokens(text, model string) (int, error) {
	enc, err := c.getEncodingForModel(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// CountChatTokens counts tokens for a system + user request, including the
// per-message overhead of chat-style APIs.
func (c *Counter) CountChatTokens(systemPrompt, userPrompt, model string) (int, error) {
	enc, err := c.getEncodingForModel(model)
	if err != nil {
		return 0, err
	}

	const tokensPerMessage, tokensPerRole, replyPriming = 3, 1, 3

	n := 0
	n += tokensPerMessage + len(enc.Encode("system", nil, nil)) + len(enc.Encode(systemPrompt, nil, nil)) + tokensPerRole
	n += tokensPerMessage + len(enc.Encode("user", nil, nil)) + len(enc.Encode(userPrompt, nil, nil)) + tokensPerRole
	n += replyPriming
	return n, nil
}

// PromptTokens is CountChatTokens with a ~4 chars/token estimate on failure.
func (c *Counter) PromptTokens(systemPrompt, userPrompt, model string) int {
	n, err := c.CountChatTokens(systemPrompt, userPrompt, model)
	if err != nil {
		slog.Warn("failed to count prompt tokens, using estimate",
			slog.String("model", model),
			slog.Any("error", err))
		return (len(systemPrompt) + len(userPrompt)) / 4
	}
	return n
}
