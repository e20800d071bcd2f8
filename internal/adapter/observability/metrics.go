package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_analyses_total",
			Help: "Total number of analyses by stage and result (ok or error kind)",
		},
		[]string{"stage", "result"},
	)
	PromptTokensHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_analysis_prompt_tokens",
			Help:    "Prompt size in tokens including the system instruction",
			Buckets: prometheus.ExponentialBuckets(256, 2, 8),
		},
	)
	FitScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_card_fit_score",
			Help:    "Distribution of sanitized card fit scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	SanitizerSubstitutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_sanitizer_substitutions_total",
			Help: "Defaults substituted by the response sanitizer",
		},
		[]string{"kind"},
	)
	QuotaRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "career_quota_rejections_total",
			Help: "Analysis requests rejected by the shared quota",
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call
// more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			AIRequestsTotal,
			AIRequestDuration,
			AnalysesTotal,
			PromptTokensHistogram,
			FitScoreHistogram,
			SanitizerSubstitutionsTotal,
			QuotaRejectionsTotal,
		)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one model round trip.
func ObserveAIRequest(provider, outcome string, d time.Duration) {
	AIRequestsTotal.WithLabelValues(provider, outcome).Inc()
	AIRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// AnalysisSummary is what the analysis service reports after each attempt.
type AnalysisSummary struct {
	Stage        string
	Result       string
	PromptTokens int
	FitScores    []int
	Placeholder  bool
	Fallback     bool
	Defaulted    int
	DroppedCards int
}

// ObserveAnalysis records the outcome of one analysis attempt.
func ObserveAnalysis(s AnalysisSummary) {
	stage := s.Stage
	if stage == "" {
		stage = "unset"
	}
	AnalysesTotal.WithLabelValues(stage, s.Result).Inc()
	if s.PromptTokens > 0 {
		PromptTokensHistogram.Observe(float64(s.PromptTokens))
	}
	for _, fs := range s.FitScores {
		FitScoreHistogram.Observe(float64(fs))
	}
	if s.Placeholder {
		SanitizerSubstitutionsTotal.WithLabelValues("placeholder_card").Inc()
	}
	if s.Fallback {
		SanitizerSubstitutionsTotal.WithLabelValues("fallback_actions").Inc()
	}
	if s.Defaulted > 0 {
		SanitizerSubstitutionsTotal.WithLabelValues("field_default").Add(float64(s.Defaulted))
	}
	if s.DroppedCards > 0 {
		SanitizerSubstitutionsTotal.WithLabelValues("dropped_card").Add(float64(s.DroppedCards))
	}
}

// RejectQuota counts one request refused by the analysis quota.
func RejectQuota() { QuotaRejectionsTotal.Inc() }
