package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ticketflow/internal/llm"
	"ticketflow/internal/ticket"
)

func TestClassifyParsesCategoryAndReason(t *testing.T) {
	gen := &llm.Mock{Response: "CATEGORY: BILLING\nREASON: Mentions an invoice."}
	c := New(gen)
	cls, err := c.Classify(context.Background(), "Why was I charged twice on my invoice?")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != ticket.CategoryBilling {
		t.Errorf("category = %s, want BILLING", cls.Category)
	}
	if !cls.Recognized || cls.Confidence != ConfidenceRecognized {
		t.Errorf("recognized=%v confidence=%g", cls.Recognized, cls.Confidence)
	}
	if cls.Reason != "Mentions an invoice." {
		t.Errorf("reason = %q", cls.Reason)
	}
	if len(gen.Prompts) != 1 || !strings.Contains(gen.Prompts[0], "Why was I charged twice") {
		t.Errorf("prompt missing ticket text: %v", gen.Prompts)
	}
}

func TestClassifyAlwaysReturnsKnownCategory(t *testing.T) {
	responses := []string{
		"CATEGORY: TECHNICAL\nREASON: crash",
		"billing",
		"CATEGORY: URGENT\nREASON: bogus label",
		"I cannot classify this",
		"",
	}
	for _, resp := range responses {
		c := New(&llm.Mock{Response: resp})
		cls, err := c.Classify(context.Background(), "some ticket")
		if err != nil {
			t.Fatalf("Classify(%q): %v", resp, err)
		}
		switch cls.Category {
		case ticket.CategoryTechnical, ticket.CategoryBilling, ticket.CategoryGeneral:
		default:
			t.Errorf("response %q produced unknown category %q", resp, cls.Category)
		}
	}
}

func TestClassifyUnrecognizedLabelDefaultsToGeneral(t *testing.T) {
	c := New(&llm.Mock{Response: "CATEGORY: SALES\nREASON: wants pricing"})
	cls, err := c.Classify(context.Background(), "How much does the pro plan cost?")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != ticket.CategoryGeneral || cls.Recognized {
		t.Errorf("got (%s, recognized=%v), want (GENERAL, false)", cls.Category, cls.Recognized)
	}
	if cls.Confidence != ConfidenceFallback {
		t.Errorf("confidence = %g, want fallback marker %g", cls.Confidence, ConfidenceFallback)
	}
}

func TestClassifyEmptyTicketSkipsCollaborator(t *testing.T) {
	gen := &llm.Mock{Response: "CATEGORY: TECHNICAL"}
	c := New(gen)
	cls, err := c.Classify(context.Background(), "   \n\t")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != ticket.CategoryGeneral || cls.Confidence != ConfidenceFallback {
		t.Errorf("empty ticket: got (%s, %g)", cls.Category, cls.Confidence)
	}
	if len(gen.Prompts) != 0 {
		t.Errorf("collaborator should not be called for empty text, got %d calls", len(gen.Prompts))
	}
}

func TestClassifyPropagatesCollaboratorError(t *testing.T) {
	wantErr := errors.New("connection refused")
	c := New(&llm.Mock{Err: wantErr})
	_, err := c.Classify(context.Background(), "anything")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped collaborator error, got %v", err)
	}
}
