package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/nika-core/internal/config"
	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// compiledRule is one intent rule with its Arabic-script patterns compiled.
type compiledRule struct {
	intent   domain.Intent
	keywords []string
	patterns []*regexp.Regexp
}

// IntentClassifier tags an utterance with a topic intent. Classification
// is a pure per-utterance function: no session state, no history. Rules
// are evaluated in configured order and the first match wins, so an
// utterance matching several keyword families resolves to the
// earliest-listed intent.
type IntentClassifier struct {
	rules []compiledRule
}

// NewIntentClassifier compiles the configured intent rules.
func NewIntentClassifier(rules []config.IntentRule) (*IntentClassifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{
			intent: domain.Intent(rule.Intent),
		}
		for _, kw := range rule.Keywords {
			cr.keywords = append(cr.keywords, strings.ToLower(kw))
		}
		for _, p := range rule.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("intent %s: bad pattern %q: %w", rule.Intent, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}
	return &IntentClassifier{rules: compiled}, nil
}

// Classify returns the intent of one utterance, or IntentUnknown.
// Latin-script keywords are checked across all rules before the
// Arabic-script patterns, both in rule priority order.
func (c *IntentClassifier) Classify(text string) domain.Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return domain.IntentUnknown
	}

	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.intent
			}
		}
	}

	for _, rule := range c.rules {
		for _, re := range rule.patterns {
			if re.MatchString(t) {
				return rule.intent
			}
		}
	}

	return domain.IntentUnknown
}
