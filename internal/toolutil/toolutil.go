// Package toolutil provides shared helpers for the go_quiz transports
// (HTTP API and MCP tools).
package toolutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_quiz/internal/engine"
)

// NormQuestionCount applies the default for non-positive counts and caps at max.
// A non-positive max disables the cap.
func NormQuestionCount(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

// ParseCount reads a question count sent either as a JSON number or a
// string ("7"). Unparseable values return 0, which callers treat as "use
// the default".
func ParseCount(raw string) int {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

// HTTPStatus maps an error to the status code the HTTP API reports.
// Client mistakes (bad URL) are 400; everything else is 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, engine.ErrInvalidURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
