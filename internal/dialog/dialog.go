// Package dialog holds the pure form state behind the settings
// dialogs, separated from the widget bindings so the encode/decode
// logic can be tested without a UI. Each form decodes the current
// plot settings into fields, validates user edits, and encodes the
// fields back into a settings mapping on confirmation.
package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError scopes a validation failure to one form field so the
// dialog can show inline feedback and reject the confirm action.
type FieldError struct {
	Field string
	Msg   string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// parseFloats parses a comma-separated numeric list. A blank string
// yields an empty list and no error.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
