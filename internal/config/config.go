// Package config loads the process-wide ticketflow configuration. The
// configuration is read once at startup and treated as immutable for the
// process lifetime; nothing in the workflow mutates it afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// LLM holds options passed to the text-generation collaborator.
type LLM struct {
	Temperature    float64 `yaml:"temperature" json:"temperature"`
	MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Guardrails holds the limits and phrase lists applied to every draft.
type Guardrails struct {
	MaxResponseLength   int      `yaml:"max_response_length" json:"max_response_length"`
	MinResponseLength   int      `yaml:"min_response_length" json:"min_response_length"`
	ProhibitedTopics    []string `yaml:"prohibited_topics" json:"prohibited_topics"`
	EscalationTriggers  []string `yaml:"escalation_triggers" json:"escalation_triggers"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold" json:"confidence_threshold"`
}

// Config is the full ticketflow configuration file.
type Config struct {
	LLM        LLM        `yaml:"llm" json:"llm"`
	Guardrails Guardrails `yaml:"guardrails" json:"guardrails"`
}

// Default returns the configuration used when no file is provided or a
// field is left unset.
func Default() *Config {
	return &Config{
		LLM: LLM{
			Temperature:    0.3,
			MaxTokens:      2048,
			TimeoutSeconds: 30,
		},
		Guardrails: Guardrails{
			MaxResponseLength:   2000,
			MinResponseLength:   20,
			ProhibitedTopics:    []string{"medical advice", "legal advice", "financial investment advice"},
			EscalationTriggers:  []string{"angry", "furious", "lawsuit", "lawyer", "refund immediately", "cancel subscription"},
			ConfidenceThreshold: 0.5,
		},
	}
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed
// Config with defaults applied to unset fields. Format is detected by
// extension (.yaml/.yml/.json) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes. ext is the file extension for format hint;
// empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}

	useJSON := ext == ".json"
	if ext == "" {
		useJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}

	if useJSON {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks bounds ordering and threshold ranges.
func (c *Config) Validate() error {
	g := c.Guardrails
	if g.MinResponseLength < 0 {
		return fmt.Errorf("config: min_response_length must be >= 0, got %d", g.MinResponseLength)
	}
	if g.MaxResponseLength <= g.MinResponseLength {
		return fmt.Errorf("config: max_response_length (%d) must exceed min_response_length (%d)",
			g.MaxResponseLength, g.MinResponseLength)
	}
	if g.ConfidenceThreshold < 0 || g.ConfidenceThreshold > 1 {
		return fmt.Errorf("config: confidence_threshold must be in [0,1], got %g", g.ConfidenceThreshold)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config: llm temperature must be in [0,2], got %g", c.LLM.Temperature)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: llm timeout_seconds must be positive, got %d", c.LLM.TimeoutSeconds)
	}
	return nil
}
