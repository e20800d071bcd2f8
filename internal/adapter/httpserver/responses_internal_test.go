package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

type respErr struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Test_writeError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid", fmt.Errorf("%w: bad", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument: bad"},
		{"notfound", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "not found"},
		{"rate", domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED", "rate limited"},
		{"configuration", domain.NewAnalysisError(domain.KindConfiguration, domain.MsgMissingCredential, nil), http.StatusInternalServerError, "CONFIGURATION_ERROR", domain.MsgMissingCredential},
		{"service", domain.NewAnalysisError(domain.KindService, "upstream said no", errors.New("cause")), http.StatusBadGateway, "SERVICE_ERROR", "upstream said no"},
		{"empty", domain.NewAnalysisError(domain.KindEmptyResponse, domain.MsgEmptyResponse, nil), http.StatusBadGateway, "EMPTY_RESPONSE", domain.MsgEmptyResponse},
		{"malformed", domain.NewAnalysisError(domain.KindMalformedResponse, domain.MsgMalformedResponse, errors.New("eof")), http.StatusBadGateway, "MALFORMED_RESPONSE", domain.MsgMalformedResponse},
		{"wrapped_analysis", fmt.Errorf("analyze: %w", domain.NewAnalysisError(domain.KindEmptyResponse, domain.MsgEmptyResponse, nil)), http.StatusBadGateway, "EMPTY_RESPONSE", domain.MsgEmptyResponse},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", "boom"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			rw := httptest.NewRecorder()
			writeError(rw, r, c.err, nil)
			res := rw.Result()
			defer func() { _ = res.Body.Close() }()
			require.Equal(t, c.wantStatus, res.StatusCode)
			assert.Equal(t, "application/json; charset=utf-8", res.Header.Get("Content-Type"))
			var e respErr
			require.NoError(t, json.NewDecoder(res.Body).Decode(&e))
			assert.Equal(t, c.wantCode, e.Error.Code)
			assert.Equal(t, c.wantMsg, e.Error.Message)
		})
	}
}

func Test_notAcceptable(t *testing.T) {
	t.Parallel()

	for accept, want := range map[string]bool{
		"":                                  false,
		"*/*":                               false,
		"application/json":                  false,
		"application/*":                     false,
		"text/html, application/json;q=0.9": false,
		"text/html":                         true,
		"application/xml":                   true,
	} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			r.Header.Set("Accept", accept)
		}
		rw := httptest.NewRecorder()
		assert.Equal(t, want, notAcceptable(rw, r), accept)
		if want {
			assert.Equal(t, http.StatusNotAcceptable, rw.Code)
		}
	}
}
