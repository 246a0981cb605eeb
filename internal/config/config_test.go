package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadYAML(t *testing.T) {
	data := []byte(`
llm:
  temperature: 0.5
  max_tokens: 1024
  timeout_seconds: 10
guardrails:
  max_response_length: 500
  min_response_length: 10
  prohibited_topics: [medical advice]
  escalation_triggers: [lawyer, lawsuit]
  confidence_threshold: 0.6
`)
	cfg, err := Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Temperature != 0.5 || cfg.LLM.MaxTokens != 1024 {
		t.Errorf("llm options not loaded: %+v", cfg.LLM)
	}
	if cfg.Guardrails.ConfidenceThreshold != 0.6 {
		t.Errorf("confidence_threshold = %g, want 0.6", cfg.Guardrails.ConfidenceThreshold)
	}
	want := []string{"lawyer", "lawsuit"}
	if diff := cmp.Diff(want, cfg.Guardrails.EscalationTriggers); diff != "" {
		t.Errorf("escalation_triggers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSONDetectedByContent(t *testing.T) {
	data := []byte(`{"guardrails": {"max_response_length": 300, "min_response_length": 5, "confidence_threshold": 0.4}}`)
	cfg, err := Load(data, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Guardrails.MaxResponseLength != 300 {
		t.Errorf("max_response_length = %d, want 300", cfg.Guardrails.MaxResponseLength)
	}
	// Unset sections keep defaults.
	if cfg.LLM.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds default lost: %d", cfg.LLM.TimeoutSeconds)
	}
}

func TestLoadKeepsDefaultsForUnsetFields(t *testing.T) {
	cfg, err := Load([]byte(`llm: {temperature: 0.1}`), ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.LLM.MaxTokens != def.LLM.MaxTokens {
		t.Errorf("max_tokens = %d, want default %d", cfg.LLM.MaxTokens, def.LLM.MaxTokens)
	}
	if len(cfg.Guardrails.ProhibitedTopics) == 0 {
		t.Error("prohibited_topics default lost")
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"inverted lengths", `guardrails: {max_response_length: 10, min_response_length: 50}`, "max_response_length"},
		{"threshold out of range", `guardrails: {confidence_threshold: 1.5}`, "confidence_threshold"},
		{"zero timeout", `llm: {timeout_seconds: -1}`, "timeout_seconds"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load([]byte(c.yaml), ".yaml")
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}
