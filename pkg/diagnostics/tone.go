package diagnostics

import (
	"strings"

	"golang.org/x/text/cases"
)

// Tone is the severity of a single diagnostic line
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

var (
	errorKeywords   = []string{"error", "fail", "denied", "invalid", "unauthorized", "unauthorised"}
	warningKeywords = []string{"warn", "retry", "missing", "stalled", "timeout", "delay", "pending"}
)

// Rank orders tones from least to most severe
func (t Tone) Rank() int {
	switch t {
	case ToneError:
		return 2
	case ToneWarning:
		return 1
	default:
		return 0
	}
}

// Escalate returns the more severe of two tones, it never lowers current
func Escalate(current, next Tone) Tone {
	if next.Rank() > current.Rank() {
		return next
	}
	if current == "" {
		return ToneInfo
	}
	return current
}

// ResolveTone classifies free text by keyword, the error tier wins over the warning tier
func ResolveTone(text string) Tone {
	folded := fold(text)
	switch {
	case containsAny(folded, errorKeywords):
		return ToneError
	case containsAny(folded, warningKeywords):
		return ToneWarning
	default:
		return ToneInfo
	}
}

// fold returns a case folded copy of s for case insensitive comparison.
// Casers keep state so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether text contains any of the lower case keywords, ignoring case
func ContainsAny(text string, keywords ...string) bool {
	return containsAny(fold(text), keywords)
}
