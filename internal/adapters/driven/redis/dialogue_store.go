// Package redis provides Redis-backed persistence adapters.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.DialogueStore = (*DialogueStore)(nil)

// Key prefix for conversation state
const dialoguePrefix = "dialogue:"

// DialogueStore implements driven.DialogueStore using Redis. Idle
// expiration rides on Redis TTL: every Get and Save pushes the deadline
// out by the session TTL, so only a silent user's state ages out.
type DialogueStore struct {
	client *redis.Client
}

// NewDialogueStore creates a new Redis-backed DialogueStore
func NewDialogueStore(client *redis.Client) *DialogueStore {
	return &DialogueStore{client: client}
}

// Get retrieves a conversation and refreshes its TTL
func (s *DialogueStore) Get(ctx context.Context, userID string) (*domain.Conversation, error) {
	key := dialoguePrefix + userID

	data, err := s.client.GetEx(ctx, key, domain.SessionTTL).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	return &conv, nil
}

// Save writes the conversation back with a fresh TTL
func (s *DialogueStore) Save(ctx context.Context, conv *domain.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := s.client.Set(ctx, dialoguePrefix+conv.UserID, data, domain.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	return nil
}

// Delete removes the conversation immediately
func (s *DialogueStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, dialoguePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
