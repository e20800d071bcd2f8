// Package gemini implements domain.AIClient with the Gemini API.
package gemini

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/observability"
	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	obsctx "github.com/Dinesh-rish/Career-Insight/internal/observability"
)

const providerName = "gemini"

// Client implements domain.AIClient. It sends exactly one GenerateContent
// request per call and asks for an application/json response.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// New builds a client. Without a credential the client is still returned so
// callers can report the configuration problem through HasCredential; no
// network activity happens here.
func New(ctx domain.Context, cfg config.Config) (*Client, error) {
	c := &Client{
		model:       cfg.GeminiModel,
		temperature: float32(cfg.AITemperature),
		maxTokens:   int32(cfg.AIMaxTokens),
	}
	key := cfg.GeminiCredential()
	if key == "" {
		return c, nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   cfg.AIHTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("op=gemini.New: %w", err)
	}
	c.client = gc
	return c, nil
}

// HasCredential reports whether an API key was configured.
func (c *Client) HasCredential() bool { return c.client != nil }

// Provider returns "gemini".
func (c *Client) Provider() string { return providerName }

// Model returns the configured Gemini model.
func (c *Client) Model() string { return c.model }

// GenerateJSON returns the concatenated text parts of the first candidate.
func (c *Client) GenerateJSON(ctx domain.Context, systemPrompt, userPrompt string) (string, error) {
	if c.client == nil {
		return "", domain.NewAnalysisError(domain.KindConfiguration, domain.MsgMissingCredential, nil)
	}
	lg := obsctx.LoggerFromContext(ctx)

	gcfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       genai.Ptr(c.temperature),
		ResponseMIMEType:  "application/json",
	}
	if c.maxTokens > 0 {
		gcfg.MaxOutputTokens = c.maxTokens
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userPrompt), gcfg)
	if err != nil {
		observability.ObserveAIRequest(providerName, "error", time.Since(start))
		lg.Error("ai provider request failed",
			slog.String("provider", providerName),
			slog.String("model", c.model),
			slog.Any("error", err))
		return "", fmt.Errorf("op=gemini.GenerateJSON: %w", err)
	}
	observability.ObserveAIRequest(providerName, "ok", time.Since(start))

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		lg.Warn("prompt blocked by provider",
			slog.String("provider", providerName),
			slog.String("block_reason", string(resp.PromptFeedback.BlockReason)))
	}
	if resp.UsageMetadata != nil {
		lg.Debug("ai provider usage",
			slog.String("provider", providerName),
			slog.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			slog.Int("response_tokens", int(resp.UsageMetadata.CandidatesTokenCount)))
	}
	return strings.TrimSpace(resp.Text()), nil
}
