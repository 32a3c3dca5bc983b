package driving

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// TurnResult is the outcome of one dialogue turn.
type TurnResult struct {
	Reply  string        `json:"reply"`
	Mode   domain.Mode   `json:"mode"`
	Intent domain.Intent `json:"intent"`

	// ShortCircuit is true when the reply was produced without a
	// generation call (welcome message or profile slot question).
	ShortCircuit bool `json:"short_circuit"`
}

// ConversationService drives one dialogue turn end to end: intent
// classification, mode switching, slot-filling, retrieval, prompt assembly
// and generation. Degraded retrieval and provider failures are absorbed
// here and surfaced as user-readable replies, never as errors.
type ConversationService interface {
	// Reply handles a single user utterance and returns the reply text.
	Reply(ctx context.Context, userID, text string) (*TurnResult, error)

	// ClearSession drops the user's conversation state immediately.
	ClearSession(ctx context.Context, userID string) error
}
