// Package classify maps raw ticket text to one of the three support
// categories via the text-generation collaborator.
package classify

import (
	"context"
	"fmt"
	"strings"

	"ticketflow/internal/llm"
	"ticketflow/internal/logging"
	"ticketflow/internal/ticket"
)

// Confidence markers attached to a classification. The fallback value is
// the minimum-confidence marker used when the label had to be defaulted.
const (
	ConfidenceRecognized = 0.85
	ConfidenceFallback   = 0.5
)

const promptTemplate = `You are a support ticket classifier. Analyze the following ticket and categorize it.

Categories:
- TECHNICAL: Issues with product functionality, bugs, errors, technical problems
- BILLING: Payment issues, subscription questions, invoices, refunds
- GENERAL: General inquiries, feature requests, information requests, other questions

Ticket: %s

Analyze the ticket and respond with ONLY the category name (TECHNICAL, BILLING, or GENERAL) and a brief reason.

Format:
CATEGORY: [category]
REASON: [brief reason in one sentence]`

// Classification is the outcome of one classify call.
type Classification struct {
	Category   ticket.Category
	Reason     string
	Confidence float64
	Recognized bool // false when the label was defaulted to GENERAL
}

// Classifier is a thin dispatch to the text-generation collaborator using a
// fixed categorization prompt.
type Classifier struct {
	gen  llm.Generator
	opts llm.Options
}

// New constructs a Classifier. The low temperature keeps label output stable.
func New(gen llm.Generator) *Classifier {
	return &Classifier{gen: gen, opts: llm.Options{Temperature: 0.2, MaxTokens: 256}}
}

// Classify returns exactly one of the three categories for any input.
// Empty or whitespace-only text short-circuits to GENERAL without a
// collaborator call. An unrecognized label defaults to GENERAL with the
// minimum-confidence marker. Only a collaborator-level error is returned
// to the caller.
func (c *Classifier) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{
			Category:   ticket.CategoryGeneral,
			Reason:     "empty ticket",
			Confidence: ConfidenceFallback,
		}, nil
	}

	out, err := c.gen.Generate(ctx, fmt.Sprintf(promptTemplate, text), c.opts)
	if err != nil {
		return Classification{}, fmt.Errorf("classify: %w", err)
	}

	cls := parseLabel(out)
	logging.New("classify").Debug("ticket classified",
		"category", string(cls.Category), "recognized", cls.Recognized, "reason", cls.Reason)
	return cls, nil
}

// parseLabel extracts CATEGORY and REASON lines from collaborator output.
// Bare labels without the CATEGORY prefix are accepted too.
func parseLabel(out string) Classification {
	var rawCategory, reason string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "CATEGORY:"); ok {
			rawCategory = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "REASON:"); ok {
			reason = strings.TrimSpace(v)
		}
	}
	if rawCategory == "" {
		rawCategory = strings.TrimSpace(out)
	}

	cat, ok := ticket.ParseCategory(rawCategory)
	cls := Classification{Category: cat, Reason: reason, Recognized: ok}
	if ok {
		cls.Confidence = ConfidenceRecognized
	} else {
		cls.Confidence = ConfidenceFallback
		if cls.Reason == "" {
			cls.Reason = "unrecognized label, defaulted to GENERAL"
		}
	}
	return cls
}
