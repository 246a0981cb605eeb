// Package demo provides deterministic offline collaborators. The generator
// answers classification and drafting prompts with keyword heuristics, the
// searcher serves canned knowledge-base hits, so the full pipeline can run
// end to end with no model endpoint configured. Demo-only; it has no role
// in production wiring.
package demo

import (
	"context"
	"fmt"
	"strings"

	"ticketflow/internal/llm"
	"ticketflow/internal/search"
)

// Generator is a deterministic llm.Generator. It recognizes the two prompt
// shapes the pipeline produces and scores ticket keywords to pick an
// answer. Same prompt in, same text out, every time.
type Generator struct{}

var _ llm.Generator = Generator{}

// Generate dispatches on the prompt shape: classification prompts get a
// CATEGORY/REASON pair, drafting prompts get a category-appropriate reply.
func (Generator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "support ticket classifier") {
		label, reason := classifyByKeywords(lower)
		return fmt.Sprintf("CATEGORY: %s\nREASON: %s", label, reason), nil
	}
	return draftByPromptShape(lower), nil
}

// classifyByKeywords scores billing and technical signal words in the
// ticket text; the higher score wins, ties and zero fall to GENERAL.
func classifyByKeywords(prompt string) (label, reason string) {
	billingKeywords := map[string]float64{
		"refund": 3, "charge": 3, "invoice": 3, "billing": 3,
		"payment": 2, "subscription": 2, "price": 1.5, "credit card": 2,
	}
	technicalKeywords := map[string]float64{
		"crash": 3, "error": 3, "bug": 3, "broken": 2.5,
		"fails": 2, "not working": 2, "upload": 1.5, "login": 1.5,
		"timeout": 1.5, "slow": 1,
	}

	var billingScore, technicalScore float64
	for kw, w := range billingKeywords {
		if strings.Contains(prompt, kw) {
			billingScore += w
		}
	}
	for kw, w := range technicalKeywords {
		if strings.Contains(prompt, kw) {
			technicalScore += w
		}
	}

	switch {
	case billingScore > technicalScore:
		return "BILLING", "ticket mentions payment-related terms"
	case technicalScore > billingScore:
		return "TECHNICAL", "ticket describes a product malfunction"
	default:
		return "GENERAL", "no strong billing or technical signal"
	}
}

// draftByPromptShape returns a canned reply matching the responder prompt
// that asked for it. Replies are long enough to clear the validator's
// minimum length and end in terminal punctuation.
func draftByPromptShape(prompt string) string {
	switch {
	case strings.Contains(prompt, "technical support specialist"):
		return "Thanks for the report! Please update to the latest version, clear the " +
			"application cache, and restart. If the problem persists, send us the log " +
			"file from the settings page and we will dig in further."
	case strings.Contains(prompt, "billing support specialist"):
		return "Thanks for reaching out about your account. I've reviewed the billing " +
			"details on file; the adjustment will appear on your next statement within " +
			"3-5 business days. Let us know if anything still looks off."
	default:
		return "Happy to help! You can find more details in our help center, and our " +
			"team is available around the clock if you need anything else."
	}
}

// Searcher is a deterministic search.Searcher serving canned knowledge-base
// hits keyed on query keywords.
type Searcher struct{}

var _ search.Searcher = Searcher{}

// Search returns up to limit canned results relevant to the query.
func (Searcher) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	lower := strings.ToLower(query)
	var results []search.Result
	if strings.Contains(lower, "crash") || strings.Contains(lower, "upload") || strings.Contains(lower, "error") {
		results = append(results, search.Result{
			Title:   "Troubleshooting application crashes",
			Snippet: "Most upload crashes are resolved by clearing the local cache and updating to the current release.",
			URL:     "https://support.example.com/kb/crashes",
		})
	}
	results = append(results, search.Result{
		Title:   "Help center",
		Snippet: "Guides, FAQs, and contact options for all products.",
		URL:     "https://support.example.com/help",
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
