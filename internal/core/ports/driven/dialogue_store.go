package driven

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// DialogueStore persists per-user conversation state with an idle TTL.
//
// Atomicity: Get/Save is a read-modify-write with no cross-request
// serialization. Concurrent turns from different users never contend
// (distinct keys); two near-simultaneous turns from the same user can lose
// an update. Implementations may add per-key serialization later without
// changing callers.
type DialogueStore interface {
	// Get retrieves a conversation and refreshes its TTL (sliding
	// expiration). Returns domain.ErrNotFound when absent or expired.
	Get(ctx context.Context, userID string) (*domain.Conversation, error)

	// Save writes the conversation back with a fresh TTL
	Save(ctx context.Context, conv *domain.Conversation) error

	// Delete removes the conversation immediately
	Delete(ctx context.Context, userID string) error
}
