// Package config holds the dialogue and retrieval tuning tables. The
// intent keywords, bias phrases, slot questions and mode triggers are
// deliberately data, not code: they are the parts of the system that get
// tuned without a redeploy.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// IntentRule is one classifier entry. Rules are evaluated in listed order
// and the first match wins, so the order in this file is a priority order.
type IntentRule struct {
	Intent   string   `yaml:"intent"`
	Keywords []string `yaml:"keywords"` // Latin-script substrings
	Patterns []string `yaml:"patterns"` // Arabic-script regular expressions
}

// SlotSpec is one advisory profile field with its bilingual question.
// The listed order is the slot-filling order.
type SlotSpec struct {
	Name       string `yaml:"name"`
	QuestionEN string `yaml:"question_en"`
	QuestionFA string `yaml:"question_fa"`
}

// ModeTriggers are the keyword lists that switch the dialogue mode.
type ModeTriggers struct {
	Advisory []string `yaml:"advisory"`
	QA       []string `yaml:"qa"`
}

// ChunkerConfig bounds passage construction.
type ChunkerConfig struct {
	MaxLen       int `yaml:"max_len"`
	MinParagraph int `yaml:"min_paragraph"`
}

// RetrievalConfig tunes nearest-neighbour retrieval.
type RetrievalConfig struct {
	TopK int               `yaml:"top_k"`
	Bias map[string]string `yaml:"bias"` // intent -> bias keyword phrase
}

// GenerationConfig bounds reply generation.
type GenerationConfig struct {
	MaxTokens      int     `yaml:"max_tokens"`
	MaxTokensWide  int     `yaml:"max_tokens_wide"` // multi-question turns
	Temperature    float64 `yaml:"temperature"`
	AdvisoryTokens int     `yaml:"advisory_tokens"`
}

// Config is the root tuning configuration.
type Config struct {
	Intents    []IntentRule     `yaml:"intents"`
	Slots      []SlotSpec       `yaml:"slots"`
	Modes      ModeTriggers     `yaml:"modes"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Generation GenerationConfig `yaml:"generation"`
}

// Load reads a config from path. A missing file returns the compiled
// defaults; a present but unparsable file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills any section the file left out.
func applyDefaults(cfg *Config) {
	def := Default()

	if len(cfg.Intents) == 0 {
		cfg.Intents = def.Intents
	}
	if len(cfg.Slots) == 0 {
		cfg.Slots = def.Slots
	}
	if len(cfg.Modes.Advisory) == 0 {
		cfg.Modes.Advisory = def.Modes.Advisory
	}
	if len(cfg.Modes.QA) == 0 {
		cfg.Modes.QA = def.Modes.QA
	}
	if cfg.Chunker.MaxLen <= 0 {
		cfg.Chunker.MaxLen = def.Chunker.MaxLen
	}
	if cfg.Chunker.MinParagraph <= 0 {
		cfg.Chunker.MinParagraph = def.Chunker.MinParagraph
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if len(cfg.Retrieval.Bias) == 0 {
		cfg.Retrieval.Bias = def.Retrieval.Bias
	}
	if cfg.Generation.MaxTokens <= 0 {
		cfg.Generation.MaxTokens = def.Generation.MaxTokens
	}
	if cfg.Generation.MaxTokensWide <= 0 {
		cfg.Generation.MaxTokensWide = def.Generation.MaxTokensWide
	}
	if cfg.Generation.Temperature <= 0 {
		cfg.Generation.Temperature = def.Generation.Temperature
	}
	if cfg.Generation.AdvisoryTokens <= 0 {
		cfg.Generation.AdvisoryTokens = def.Generation.AdvisoryTokens
	}
}
