package guardrail

import (
	"fmt"
	"strings"
)

// placeholderMarkers flag drafts that leaked template scaffolding.
var placeholderMarkers = []string{"TODO", "FIXME", "[INSERT", "XXX"}

// maxQuestionMarks is the tolerated number of '?' in a draft; beyond it
// the response is asking instead of answering.
const maxQuestionMarks = 5

// Validator checks draft quality: emptiness, length bounds, question
// density, placeholder leakage, and completeness. Violations never block
// delivery on their own; they feed escalation scoring.
type Validator struct {
	minLength int
	maxLength int
}

// NewValidator builds a validator over the configured character bounds.
func NewValidator(minLength, maxLength int) *Validator {
	return &Validator{minLength: minLength, maxLength: maxLength}
}

// Check returns all quality violations for the draft. An empty draft
// yields only empty_response; length and content checks need text to
// work on.
func (v *Validator) Check(draft string) []Violation {
	trimmed := strings.TrimSpace(draft)
	if trimmed == "" {
		return []Violation{{
			Evaluator: EvaluatorValidator,
			Kind:      KindEmptyResponse,
			Detail:    "draft is empty",
		}}
	}

	var violations []Violation
	add := func(kind, detail string) {
		violations = append(violations, Violation{Evaluator: EvaluatorValidator, Kind: kind, Detail: detail})
	}

	if n := len(trimmed); n < v.minLength {
		add(KindTooShort, fmt.Sprintf("draft is %d chars, minimum %d", n, v.minLength))
	} else if n > v.maxLength {
		add(KindTooLong, fmt.Sprintf("draft is %d chars, maximum %d", n, v.maxLength))
	}

	if n := strings.Count(trimmed, "?"); n > maxQuestionMarks {
		add(KindTooManyQuestions, fmt.Sprintf("draft asks %d questions instead of answering", n))
	}

	upper := strings.ToUpper(trimmed)
	for _, marker := range placeholderMarkers {
		if strings.Contains(upper, marker) {
			add(KindPlaceholderText, fmt.Sprintf("draft contains placeholder %q", marker))
			break
		}
	}

	if !strings.ContainsAny(trimmed[len(trimmed)-1:], ".!?") {
		add(KindIncomplete, "draft does not end with terminal punctuation")
	}

	return violations
}
