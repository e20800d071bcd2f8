// Package httpserver contains HTTP handlers and middleware.
//
// It serves the assessment question bank and runs career analyses.
// Handlers translate between JSON and the domain types; the analysis
// itself lives in the usecase package.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	msg := err.Error()

	var aerr *domain.AnalysisError
	switch {
	case errors.As(err, &aerr):
		// Analysis errors carry a user-facing message; the cause stays in logs.
		codeStr = aerr.Kind.String()
		msg = aerr.Message
		code = http.StatusBadGateway
		if aerr.Kind == domain.KindConfiguration {
			code = http.StatusInternalServerError
		}
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrRateLimited):
		code = http.StatusTooManyRequests
		codeStr = "RATE_LIMITED"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: msg, Details: details}})
}

// notAcceptable reports whether the client refuses JSON, writing the 406 if so.
func notAcceptable(w http.ResponseWriter, r *http.Request) bool {
	a := r.Header.Get("Accept")
	if a == "" || a == "*/*" || acceptsJSON(a) {
		return false
	}
	writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{
		Code:    "INVALID_ARGUMENT",
		Message: "not acceptable",
		Details: map[string]any{"accept": a},
	}})
	return true
}

func acceptsJSON(accept string) bool {
	return strings.Contains(accept, "application/json") || strings.Contains(accept, "application/*")
}
