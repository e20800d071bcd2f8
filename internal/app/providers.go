package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/ai/gemini"
	"github.com/Dinesh-rish/Career-Insight/internal/adapter/ai/openrouter"
	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	"github.com/Dinesh-rish/Career-Insight/internal/service/quota"
)

// NewAIClient returns the model client selected by AI_PROVIDER.
// A missing credential is not an error here; the analysis reports it.
func NewAIClient(ctx context.Context, cfg config.Config) (domain.AIClient, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenRouter:
		return openrouter.New(cfg), nil
	case config.ProviderGemini, "":
		c, err := gemini.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("op=app.NewAIClient: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("op=app.NewAIClient: unknown provider %q", cfg.AIProvider)
	}
}

// NewQuotaLimiter connects the shared analysis quota. It returns a nil
// limiter and client when the quota is disabled.
func NewQuotaLimiter(cfg config.Config) (*quota.RedisLimiter, *redis.Client, error) {
	if !cfg.QuotaEnabled() {
		return nil, nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("op=app.NewQuotaLimiter: %w", err)
	}
	rdb := redis.NewClient(opts)
	return quota.NewRedisLimiter(rdb, quota.NewBucketConfigFromPerHour(cfg.AnalysisQuotaPerHour)), rdb, nil
}
