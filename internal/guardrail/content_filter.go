package guardrail

import (
	"fmt"
	"strings"
)

// ContentFilter scans drafts for configured prohibited-topic phrases.
// Matching is case-insensitive substring. Policy on match is block: the
// draft is replaced with a refusal rather than rewritten.
type ContentFilter struct {
	topics []string
}

// NewContentFilter builds a filter over the configured phrase list.
func NewContentFilter(topics []string) *ContentFilter {
	return &ContentFilter{topics: topics}
}

// Check returns one prohibited_topic violation per matched phrase along
// with the matched phrases themselves. A non-empty match list means the
// draft must be blocked.
func (f *ContentFilter) Check(draft string) (violations []Violation, matched []string) {
	lower := strings.ToLower(draft)
	for _, topic := range f.topics {
		if topic == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(topic)) {
			matched = append(matched, topic)
			violations = append(violations, Violation{
				Evaluator: EvaluatorContentFilter,
				Kind:      KindProhibitedTopic,
				Detail:    fmt.Sprintf("draft mentions prohibited topic %q", topic),
			})
		}
	}
	return violations, matched
}

// RefusalText is the replacement delivered instead of a blocked draft.
// topics are the matched prohibited phrases.
func RefusalText(topics []string) string {
	subject := "that topic"
	if len(topics) > 0 {
		subject = strings.Join(topics, ", ")
	}
	return fmt.Sprintf(
		"I apologize, but I cannot provide %s as it's outside my support scope. "+
			"Please consult with a qualified professional, or I can escalate this to a "+
			"human agent who can better assist you.", subject)
}
