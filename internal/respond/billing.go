package respond

import (
	"context"
	"fmt"
	"strings"

	"ticketflow/internal/llm"
	"ticketflow/internal/logging"
	"ticketflow/internal/ticket"
)

const billingPrompt = `You are a billing support specialist. Help resolve this billing issue.

Customer Issue: %s

Provide a helpful, professional response that:
1. Acknowledges their billing concern
2. Explains the situation clearly
3. Provides next steps or resolution
4. Reassures the customer

Important guidelines:
- Be empathetic about billing concerns
- Clearly explain any charges or policies
- Offer to investigate further if needed
- For refunds over $100, mention that a specialist will review

Keep your response concise (max 300 words) and professional.

Response:`

// billingResponder handles payments, invoices, and subscription questions.
// Billing never consults web search; account matters do not benefit from
// public snippets.
type billingResponder struct {
	gen  llm.Generator
	opts llm.Options
}

func (r *billingResponder) Respond(ctx context.Context, tk ticket.Ticket) Draft {
	log := logging.New("respond.billing")

	prompt := fmt.Sprintf(billingPrompt, tk.Text)
	out, err := r.gen.Generate(ctx, prompt, r.opts)
	if err != nil {
		return fallbackDraft(log, tk, err)
	}
	text := strings.TrimSpace(out)
	if text == "" {
		return fallbackDraft(log, tk, llm.ErrGeneration)
	}

	return Draft{
		Text:            text,
		Confidence:      scoreConfidence(len(text), false),
		HighValueRefund: isHighValueRefund(tk.Text),
	}
}

// isHighValueRefund detects refund requests that mention large amounts.
func isHighValueRefund(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "refund") {
		return false
	}
	for _, marker := range []string{"$1000", "$500", "thousand", "hundred"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
