// Package usecase contains application business logic services.
package usecase

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/ai"
	"github.com/Dinesh-rish/Career-Insight/internal/adapter/observability"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	obsctx "github.com/Dinesh-rish/Career-Insight/internal/observability"
)

// rawLogLimit caps the raw model text attached to a malformed-response log.
const rawLogLimit = 8 << 10

// TokenCounter estimates the prompt size of a request.
type TokenCounter interface {
	PromptTokens(systemPrompt, userPrompt, model string) int
}

// AnalysisService runs one assessment through the model and returns a
// sanitized result. It holds only immutable collaborators and is safe for
// concurrent use.
type AnalysisService struct {
	AI     domain.AIClient
	Bank   domain.QuestionBank
	Tokens TokenCounter
}

// NewAnalysisService constructs an AnalysisService. tokens may be nil.
func NewAnalysisService(client domain.AIClient, bank domain.QuestionBank, tokens TokenCounter) AnalysisService {
	return AnalysisService{AI: client, Bank: bank, Tokens: tokens}
}

// Analyze performs exactly one model call. Any returned error is an
// *domain.AnalysisError; nothing is retried.
func (s AnalysisService) Analyze(ctx domain.Context, uc domain.UserContext) (domain.CareerAnalysis, error) {
	tracer := otel.Tracer("usecase.analysis")
	ctx, span := tracer.Start(ctx, "AnalysisService.Analyze")
	defer span.End()
	span.SetAttributes(attribute.String("career.stage", string(uc.Stage)))

	start := time.Now()
	lg := obsctx.LoggerFromContext(ctx).With(slog.String("stage", string(uc.Stage)))
	summary := observability.AnalysisSummary{Stage: string(uc.Stage)}

	fail := func(aerr *domain.AnalysisError) (domain.CareerAnalysis, error) {
		summary.Result = aerr.Kind.String()
		observability.ObserveAnalysis(summary)
		span.SetStatus(codes.Error, aerr.Kind.String())
		span.RecordError(aerr)
		lg.Warn("analysis failed",
			slog.String("error_kind", aerr.Kind.String()),
			slog.Int("prompt_tokens", summary.PromptTokens),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", aerr.Err))
		return domain.CareerAnalysis{}, aerr
	}

	if s.AI == nil || !s.AI.HasCredential() {
		return fail(domain.NewAnalysisError(domain.KindConfiguration, domain.MsgMissingCredential, nil))
	}
	span.SetAttributes(
		attribute.String("ai.provider", s.AI.Provider()),
		attribute.String("ai.model", s.AI.Model()),
	)

	prompt := BuildPrompt(uc, s.Bank)
	if s.Tokens != nil {
		summary.PromptTokens = s.Tokens.PromptTokens(SystemInstruction, prompt, s.AI.Model())
		span.SetAttributes(attribute.Int("ai.prompt_tokens", summary.PromptTokens))
	}

	raw, err := s.AI.GenerateJSON(ctx, SystemInstruction, prompt)
	if err != nil {
		var aerr *domain.AnalysisError
		if errors.As(err, &aerr) {
			return fail(aerr)
		}
		return fail(domain.NewAnalysisError(domain.KindService, serviceMessage(err), err))
	}
	if strings.TrimSpace(raw) == "" {
		return fail(domain.NewAnalysisError(domain.KindEmptyResponse, domain.MsgEmptyResponse, nil))
	}

	parsed, err := ai.ParseJSON(ai.Unwrap(raw))
	if err != nil {
		lg.Error("model response is not valid JSON",
			slog.Any("error", err),
			slog.Int("raw_len", len(raw)),
			slog.String("raw_text", ai.Snippet(raw, rawLogLimit)))
		return fail(domain.NewAnalysisError(domain.KindMalformedResponse, domain.MsgMalformedResponse, err))
	}

	analysis, report := ai.SanitizeWithReport(parsed)

	summary.Result = "ok"
	summary.Placeholder = report.PlaceholderCard
	summary.Fallback = report.FallbackActions
	summary.Defaulted = report.Defaulted
	summary.DroppedCards = report.DroppedCards
	for _, c := range analysis.CareerCards {
		summary.FitScores = append(summary.FitScores, c.FitScore)
	}
	observability.ObserveAnalysis(summary)

	lg.Info("analysis completed",
		slog.Int("prompt_tokens", summary.PromptTokens),
		slog.Int("card_count", len(analysis.CareerCards)),
		slog.Int("defaulted_fields", report.Defaulted),
		slog.Int("dropped_cards", report.DroppedCards),
		slog.Bool("placeholder_card", report.PlaceholderCard),
		slog.String("best_role", analysis.Guidance.BestRole),
		slog.Duration("duration", time.Since(start)))
	return analysis, nil
}

// opPrefix matches the "op=pkg.Func: " wrapping used inside this module.
var opPrefix = regexp.MustCompile(`^(op=[^:]+: )+`)

// serviceMessage passes the provider's own message through, without the
// module's wrapping prefixes, falling back to a generic message.
func serviceMessage(err error) string {
	msg := strings.TrimSpace(opPrefix.ReplaceAllString(err.Error(), ""))
	if msg == "" {
		return domain.MsgServiceFallback
	}
	return msg
}
