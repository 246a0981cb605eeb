package guardrail

import (
	"strings"
	"testing"

	"ticketflow/internal/config"
)

func testConfig() config.Guardrails {
	return config.Guardrails{
		MaxResponseLength:   200,
		MinResponseLength:   20,
		ProhibitedTopics:    []string{"medical advice", "legal advice"},
		EscalationTriggers:  []string{"lawsuit", "lawyer", "angry"},
		ConfidenceThreshold: 0.5,
	}
}

func TestContentFilterMatchesCaseInsensitive(t *testing.T) {
	f := NewContentFilter([]string{"medical advice"})
	violations, matched := f.Check("You should seek Medical Advice from a professional.")
	if len(matched) != 1 || matched[0] != "medical advice" {
		t.Fatalf("matched = %v", matched)
	}
	if len(violations) != 1 || violations[0].Kind != KindProhibitedTopic {
		t.Errorf("violations = %+v", violations)
	}
	if violations[0].Evaluator != EvaluatorContentFilter {
		t.Errorf("evaluator = %q", violations[0].Evaluator)
	}
}

func TestContentFilterCleanDraft(t *testing.T) {
	f := NewContentFilter([]string{"medical advice"})
	violations, matched := f.Check("Try clearing your cache and restarting the app.")
	if len(violations) != 0 || len(matched) != 0 {
		t.Errorf("clean draft flagged: %+v", violations)
	}
}

func TestValidatorLengthBounds(t *testing.T) {
	v := NewValidator(20, 200)

	cases := []struct {
		name  string
		draft string
		want  string
	}{
		{"too short", "Too brief.", KindTooShort},
		{"too long", strings.Repeat("This sentence pads the draft well beyond bounds. ", 10), KindTooLong},
		{"empty", "   ", KindEmptyResponse},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			violations := v.Check(c.draft)
			if len(violations) != 1 {
				t.Fatalf("want exactly one violation, got %+v", violations)
			}
			if violations[0].Kind != c.want {
				t.Errorf("kind = %q, want %q", violations[0].Kind, c.want)
			}
		})
	}
}

func TestValidatorAcceptsGoodDraft(t *testing.T) {
	v := NewValidator(20, 200)
	violations := v.Check("Thanks for reaching out! Restarting the router usually resolves this.")
	if len(violations) != 0 {
		t.Errorf("good draft flagged: %+v", violations)
	}
}

func TestValidatorQualityChecks(t *testing.T) {
	v := NewValidator(5, 2000)

	violations := v.Check("What? Why? How? When? Where? Who? Really? This asks too much.")
	if !hasKind(violations, KindTooManyQuestions) {
		t.Errorf("question-heavy draft not flagged: %+v", violations)
	}

	violations = v.Check("We will fix this TODO item for you soon.")
	if !hasKind(violations, KindPlaceholderText) {
		t.Errorf("placeholder draft not flagged: %+v", violations)
	}

	violations = v.Check("This reply just trails off without an ending")
	if !hasKind(violations, KindIncomplete) {
		t.Errorf("incomplete draft not flagged: %+v", violations)
	}
}

func TestEscalationTriggerPhraseFirstMatchWins(t *testing.T) {
	e := NewEscalation([]string{"lawsuit", "lawyer"}, 0.5)
	sig := e.Check("I will file a lawsuit and my lawyer agrees", "draft text.", 0.2)
	if !sig.Escalate {
		t.Fatal("expected escalation")
	}
	// "lawsuit" is configured first and must supply the reason even though
	// "lawyer" also matches and confidence is below threshold.
	if !strings.Contains(sig.Reason, "lawsuit") {
		t.Errorf("reason = %q, want first trigger", sig.Reason)
	}
}

func TestEscalationScansDraftToo(t *testing.T) {
	e := NewEscalation([]string{"chargeback"}, 0.5)
	sig := e.Check("ordinary ticket", "You could consider a chargeback with your bank.", 0.9)
	if !sig.Escalate || !strings.Contains(sig.Reason, "chargeback") {
		t.Errorf("draft trigger missed: %+v", sig)
	}
}

func TestEscalationUrgencyAndQuestions(t *testing.T) {
	e := NewEscalation(nil, 0.5)

	sig := e.Check("This is URGENT, production is down", "draft.", 0.9)
	if !sig.Escalate || !strings.Contains(sig.Reason, "urgent") {
		t.Errorf("urgency missed: %+v", sig)
	}

	sig = e.Check("Why? How? When? Where? Also what?", "draft.", 0.9)
	if !sig.Escalate || !strings.Contains(sig.Reason, "questions") {
		t.Errorf("multi-question missed: %+v", sig)
	}
}

func TestEscalationConfidenceThresholdInclusive(t *testing.T) {
	e := NewEscalation(nil, 0.5)
	if sig := e.Check("calm ticket", "draft.", 0.5); !sig.Escalate {
		t.Error("confidence equal to threshold must escalate")
	}
	if sig := e.Check("calm ticket", "draft.", 0.51); sig.Escalate {
		t.Errorf("confidence above threshold escalated: %+v", sig)
	}
}

func TestChainBlocksAndEscalates(t *testing.T) {
	chain := NewChain(testConfig())
	draft := "Based on your symptoms you should see your doctor for medical advice on this."
	out := chain.Evaluate("my head hurts after using your app", draft, 0.9)

	if !out.Blocked {
		t.Fatal("expected block")
	}
	if out.Draft == draft || !strings.Contains(out.Draft, "outside my support scope") {
		t.Errorf("blocked draft not replaced with refusal: %q", out.Draft)
	}
	if !hasKind(out.Violations, KindProhibitedTopic) {
		t.Errorf("prohibited_topic violation missing: %+v", out.Violations)
	}
	if !out.Signal.Escalate {
		t.Error("blocked response must escalate")
	}
	if out.Signal.Reason != "response blocked by content filter" {
		t.Errorf("reason = %q", out.Signal.Reason)
	}
}

func TestChainBlockSkipsValidatorButKeepsEscalation(t *testing.T) {
	chain := NewChain(testConfig())
	// Draft is both prohibited AND too short; the validator must not run
	// against a blocked body, so no too_short violation appears.
	out := chain.Evaluate("ticket", "legal advice.", 0.9)
	if !out.Blocked {
		t.Fatal("expected block")
	}
	if hasKind(out.Violations, KindTooShort) {
		t.Errorf("validator ran on blocked draft: %+v", out.Violations)
	}
}

func TestChainTriggerReasonBeatsBlockReason(t *testing.T) {
	chain := NewChain(testConfig())
	out := chain.Evaluate("I am angry about this", "some medical advice in the draft.", 0.9)
	if !out.Signal.Escalate {
		t.Fatal("expected escalation")
	}
	if !strings.Contains(out.Signal.Reason, "angry") {
		t.Errorf("reason = %q, want trigger phrase reason to win", out.Signal.Reason)
	}
}

func TestChainCleanDraftPasses(t *testing.T) {
	chain := NewChain(testConfig())
	out := chain.Evaluate("How do I reset my password?",
		"Open settings, choose Security, then follow the reset-password link.", 0.8)
	if out.Blocked || out.Signal.Escalate || len(out.Violations) != 0 {
		t.Errorf("clean run produced findings: %+v", out)
	}
}

func hasKind(violations []Violation, kind string) bool {
	for _, v := range violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
