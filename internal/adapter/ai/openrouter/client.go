// Package openrouter implements domain.AIClient against an OpenAI-compatible
// chat completions endpoint (OpenRouter by default).
package openrouter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/observability"
	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	obsctx "github.com/Dinesh-rish/Career-Insight/internal/observability"
)

const providerName = "openrouter"

// Client implements domain.AIClient. It sends exactly one request per call.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	referer     string
	title       string
	temperature float64
	maxTokens   int
	hc          *http.Client
}

// New constructs a client from configuration. AI_HTTP_TIMEOUT of zero leaves
// the request bounded only by ctx.
func New(cfg config.Config) *Client {
	return &Client{
		apiKey:      strings.TrimSpace(cfg.OpenRouterAPIKey),
		baseURL:     strings.TrimRight(cfg.OpenRouterBaseURL, "/"),
		model:       cfg.OpenRouterModel,
		referer:     cfg.OpenRouterReferer,
		title:       cfg.OpenRouterTitle,
		temperature: cfg.AITemperature,
		maxTokens:   cfg.AIMaxTokens,
		hc: &http.Client{
			Timeout:   cfg.AIHTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// HasCredential reports whether OPENROUTER_API_KEY is set.
func (c *Client) HasCredential() bool { return c.apiKey != "" }

// Provider returns "openrouter".
func (c *Client) Provider() string { return providerName }

// Model returns the configured chat model.
func (c *Client) Model() string { return c.model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Messages       []message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateJSON calls chat completions once and returns the first choice's
// content. An empty choice list yields an empty string.
func (c *Client) GenerateJSON(ctx domain.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.NewAnalysisError(domain.KindConfiguration, domain.MsgMissingCredential, nil)
	}
	lg := obsctx.LoggerFromContext(ctx)

	body := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("op=openrouter.GenerateJSON: %w", err)
	}
	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("op=openrouter.GenerateJSON: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveAIRequest(providerName, "transport_error", time.Since(start))
		lg.Error("ai provider request failed", slog.String("provider", providerName), slog.String("endpoint", endpoint), slog.Any("error", err))
		return "", fmt.Errorf("op=openrouter.GenerateJSON: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.ObserveAIRequest(providerName, "http_"+strconv.Itoa(resp.StatusCode), time.Since(start))
		snippet := readSnippet(resp.Body, 2048)
		lg.Warn("ai provider non-2xx",
			slog.String("provider", providerName),
			slog.Int("status", resp.StatusCode),
			slog.String("model", c.model),
			slog.String("x_request_id", resp.Header.Get("X-Request-Id")),
			slog.String("body", snippet))
		return "", statusError(resp.StatusCode, snippet)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.ObserveAIRequest(providerName, "read_error", time.Since(start))
		return "", fmt.Errorf("op=openrouter.GenerateJSON: %w", err)
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		observability.ObserveAIRequest(providerName, "decode_error", time.Since(start))
		lg.Error("ai provider decode error", slog.String("provider", providerName), slog.String("model", c.model), slog.Any("error", err))
		return "", fmt.Errorf("op=openrouter.GenerateJSON: decode response: %w", err)
	}
	observability.ObserveAIRequest(providerName, "ok", time.Since(start))

	if out.Model != "" && out.Model != c.model {
		lg.Warn("model substitution detected",
			slog.String("requested_model", c.model),
			slog.String("actual_model", out.Model),
			slog.String("provider", providerName))
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

// statusError prefers the provider's own error message.
func statusError(status int, body string) error {
	var er errorResponse
	if err := json.Unmarshal([]byte(body), &er); err == nil && strings.TrimSpace(er.Error.Message) != "" {
		return fmt.Errorf("openrouter status %d: %s", status, strings.TrimSpace(er.Error.Message))
	}
	return fmt.Errorf("openrouter status %d", status)
}

// readSnippet reads up to n bytes from r.
func readSnippet(r io.Reader, n int64) string {
	if r == nil || n <= 0 {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return string(b)
}
