package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20 // 1MB

// Questions is the question bank as the handlers need it.
type Questions interface {
	domain.QuestionBank
	LikertIDs() map[int]struct{}
	HasStageQuestion(stage domain.Stage, id string) bool
}

// Analyzer runs one career analysis.
type Analyzer interface {
	Analyze(ctx domain.Context, uc domain.UserContext) (domain.CareerAnalysis, error)
}

// QuotaLimiter decides whether a client may start another analysis.
type QuotaLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// ReadyCheck is one named readiness probe.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server aggregates handlers and their dependencies.
type Server struct {
	Cfg         config.Config
	Bank        Questions
	Analysis    Analyzer
	Quota       QuotaLimiter
	ReadyChecks []ReadyCheck
}

// NewServer constructs a Server with dependencies. limiter may be nil.
func NewServer(cfg config.Config, bank Questions, analysis Analyzer, limiter QuotaLimiter, checks ...ReadyCheck) *Server {
	return &Server{
		Cfg:         cfg,
		Bank:        bank,
		Analysis:    analysis,
		Quota:       limiter,
		ReadyChecks: checks,
	}
}

type stageSummary struct {
	Stage         domain.Stage `json:"stage"`
	Slug          string       `json:"slug"`
	QuestionCount int          `json:"questionCount"`
}

type analysisResponse struct {
	ID       string                `json:"id"`
	Stage    domain.Stage          `json:"stage"`
	Analysis domain.CareerAnalysis `json:"analysis"`
}

// QuestionsHandler returns the phase-1 Likert questions.
func (s *Server) QuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, s.Bank.Likert())
	}
}

// StagesHandler lists the stages with their phase-2 question counts.
func (s *Server) StagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		out := make([]stageSummary, 0, len(domain.Stages))
		for _, st := range domain.Stages {
			qs, _ := s.Bank.StageQuestions(st)
			out = append(out, stageSummary{Stage: st, Slug: st.Slug(), QuestionCount: len(qs)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// StageQuestionsHandler returns one stage's question descriptors. The stage
// may be given by slug or display value.
func (s *Server) StageQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		raw := chi.URLParam(r, "stage")
		if v, err := url.PathUnescape(raw); err == nil {
			raw = v
		}
		stage, ok := domain.ParseStage(raw)
		if !ok {
			writeError(w, r, fmt.Errorf("%w: stage %q", domain.ErrNotFound, raw), nil)
			return
		}
		qs, ok := s.Bank.StageQuestions(stage)
		if !ok {
			writeError(w, r, fmt.Errorf("%w: stage %q", domain.ErrNotFound, raw), nil)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// AnalysisHandler validates an assessment and runs the analysis synchronously.
func (s *Server) AnalysisHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notAcceptable(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req analysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]any{"limit_bytes": mbe.Limit},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), validationDetails(err))
			return
		}
		uc, details, err := toUserContext(req, s.Bank)
		if err != nil {
			writeError(w, r, err, details)
			return
		}

		analysis, err := s.Analysis.Analyze(r.Context(), uc)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		id := uuid.NewString()
		LoggerFrom(r).Debug("analysis served", slog.String("analysis_id", id), slog.String("stage", string(uc.Stage)))
		writeJSON(w, http.StatusOK, analysisResponse{ID: id, Stage: uc.Stage, Analysis: analysis})
	}
}

// HealthzHandler reports liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler runs every readiness check and reports 503 if any fails.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, len(s.ReadyChecks))
		ok := true
		for _, rc := range s.ReadyChecks {
			if err := rc.Check(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: rc.Name, OK: false, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: rc.Name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
