// Package guardrail implements the safety and quality gates applied to
// every draft response before delivery: content filtering, response
// validation, and escalation rules. Evaluators are pure functions over
// text; the Chain fixes their order and the aggregate policy.
package guardrail

// Violation kinds, machine-readable.
const (
	KindProhibitedTopic  = "prohibited_topic"
	KindTooShort         = "too_short"
	KindTooLong          = "too_long"
	KindEmptyResponse    = "empty_response"
	KindTooManyQuestions = "too_many_questions"
	KindPlaceholderText  = "placeholder_text"
	KindIncomplete       = "incomplete"
)

// Evaluator names as recorded on violations.
const (
	EvaluatorContentFilter = "content_filter"
	EvaluatorValidator     = "response_validator"
)

// Violation is one recorded guardrail finding. Append-only within a
// processing run.
type Violation struct {
	Evaluator string `json:"evaluator"`
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
}
