package domain

import "errors"

// ErrorKind classifies a failed analysis attempt for the UI.
type ErrorKind string

const (
	KindConfiguration     ErrorKind = "CONFIGURATION_ERROR"
	KindService           ErrorKind = "SERVICE_ERROR"
	KindEmptyResponse     ErrorKind = "EMPTY_RESPONSE"
	KindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"
)

// Sentinels matched by errors.Is against an *AnalysisError of the same kind.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrService           = errors.New("service error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrMalformedResponse = errors.New("malformed response")
)

var kindSentinels = map[ErrorKind]error{
	KindConfiguration:     ErrConfiguration,
	KindService:           ErrService,
	KindEmptyResponse:     ErrEmptyResponse,
	KindMalformedResponse: ErrMalformedResponse,
}

// Default user-facing messages per kind.
const (
	MsgMissingCredential = "API Key is missing. Please check your environment configuration."
	MsgServiceFallback   = "Failed to generate analysis. Please try again later."
	MsgEmptyResponse     = "Empty response from AI"
	MsgMalformedResponse = "Failed to parse analysis results. The AI response was malformed."
)

// AnalysisError is the typed failure of one analysis attempt.
// Message is safe to show to the user; Err is the underlying cause, if any.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewAnalysisError builds an AnalysisError.
func NewAnalysisError(kind ErrorKind, msg string, cause error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: msg, Err: cause}
}

func (e *AnalysisError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Is matches the sentinel of the same kind.
func (e *AnalysisError) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of an analysis error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// String implements fmt.Stringer for log attributes.
func (k ErrorKind) String() string { return string(k) }
