// Package ai turns raw model text into a trusted CareerAnalysis.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const fence = "```"

// openingFence matches a leading fence with an optional language hint.
var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*")

// Unwrap strips the code fence a model may wrap around a JSON payload.
// Only one opening and one closing fence are removed; nothing else is repaired.
func Unwrap(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = openingFence.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// ParseJSON performs a single strict parse of one JSON document.
// Numbers are kept as json.Number.
func ParseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("op=ai.ParseJSON: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("op=ai.ParseJSON: trailing data after JSON document")
	}
	return v, nil
}

// IsValidJSON reports whether text parses as exactly one JSON document.
func IsValidJSON(text string) bool {
	_, err := ParseJSON(text)
	return err == nil
}

// Snippet returns at most n bytes of s for log attributes.
func Snippet(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return string(bytes.ToValidUTF8([]byte(s[:n]), nil))
}
