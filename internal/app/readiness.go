package app

import (
	"context"
	"fmt"

	httpserver "github.com/Dinesh-rish/Career-Insight/internal/adapter/httpserver"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

// Pinger is anything readiness can ping, e.g. the Redis quota limiter.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns the question bank and AI credential checks,
// plus a Redis ping when the quota is enabled (redis non-nil).
func BuildReadinessChecks(bank domain.QuestionBank, client domain.AIClient, redis Pinger) []httpserver.ReadyCheck {
	checks := []httpserver.ReadyCheck{
		{Name: "question_bank", Check: func(context.Context) error {
			if bank == nil || len(bank.Likert()) == 0 {
				return fmt.Errorf("question bank not loaded")
			}
			return nil
		}},
		{Name: "ai_credential", Check: func(context.Context) error {
			if client == nil || !client.HasCredential() {
				return fmt.Errorf("%s credential not configured", providerName(client))
			}
			return nil
		}},
	}
	if redis != nil {
		checks = append(checks, httpserver.ReadyCheck{Name: "redis", Check: redis.Ping})
	}
	return checks
}

func providerName(client domain.AIClient) string {
	if client == nil {
		return "ai"
	}
	return client.Provider()
}
