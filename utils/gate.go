package utils

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Reason explains why a submission was rejected.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonDisallowed Reason = "disallowed content"
	ReasonTooShort   Reason = "too short"
	ReasonTooLong    Reason = "too long"
)

// Verdict is the outcome of a gate evaluation.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason,omitempty"`
}

// Accept is the verdict for an admissible body.
var Accept = Verdict{Accepted: true}

// Reject builds a rejecting verdict.
func Reject(r Reason) Verdict {
	return Verdict{Reason: r}
}

// Gate decides whether a message body may become a record.
// It holds no mutable state and is safe for concurrent use.
type Gate struct {
	MinLen     int
	MaxLen     int
	disallowed []string
}

// NewGate builds a gate. Words are matched case-insensitively as substrings;
// blanks and duplicates are dropped.
func NewGate(minLen, maxLen int, words []string) *Gate {
	seen := make(map[string]struct{}, len(words))
	list := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		list = append(list, w)
	}
	return &Gate{MinLen: minLen, MaxLen: maxLen, disallowed: list}
}

// Disallowed returns a copy of the configured word list.
func (g *Gate) Disallowed() []string {
	return append([]string(nil), g.disallowed...)
}

// Evaluate classifies body. The content check runs before the length checks,
// so a short or long body containing a disallowed word reports disallowed content.
func (g *Gate) Evaluate(body string) Verdict {
	if g.containsDisallowed(body) {
		return Reject(ReasonDisallowed)
	}

	n := utf8.RuneCountInString(body)
	if n < g.MinLen || strings.TrimSpace(body) == "" {
		return Reject(ReasonTooShort)
	}
	if n > g.MaxLen {
		return Reject(ReasonTooLong)
	}
	return Accept
}

// EvaluateSubmission sanitizes raw visitor input and judges it. The content
// check sees both the entity-decoded input, including markup that stripping
// drops, and the stored body; the length checks see only the stored body.
func (g *Gate) EvaluateSubmission(raw string) (body string, v Verdict) {
	body = SanitizeText(raw)
	if g.containsDisallowed(html.UnescapeString(raw)) {
		return body, Reject(ReasonDisallowed)
	}
	return body, g.Evaluate(body)
}

func (g *Gate) containsDisallowed(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range g.disallowed {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
