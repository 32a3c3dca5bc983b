// Package memory provides in-process persistence adapters for single
// instance deployments and local development. No external services
// required; state is lost on restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DialogueStore = (*DialogueStore)(nil)

type entry struct {
	data     []byte
	deadline time.Time
}

// DialogueStore implements driven.DialogueStore with an in-process map.
// Expiry is checked lazily on access, the same sliding-TTL semantics as
// the Redis adapter. Conversations are copied through JSON so callers
// never share state with the store.
type DialogueStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewDialogueStore creates a new in-memory DialogueStore
func NewDialogueStore() *DialogueStore {
	return &DialogueStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get retrieves a conversation and refreshes its TTL
func (s *DialogueStore) Get(_ context.Context, userID string) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.now().After(e.deadline) {
		delete(s.entries, userID)
		return nil, domain.ErrNotFound
	}

	e.deadline = s.now().Add(domain.SessionTTL)
	s.entries[userID] = e

	var conv domain.Conversation
	if err := json.Unmarshal(e.data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Save writes the conversation back with a fresh TTL
func (s *DialogueStore) Save(_ context.Context, conv *domain.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[conv.UserID] = entry{
		data:     data,
		deadline: s.now().Add(domain.SessionTTL),
	}
	return nil
}

// Delete removes the conversation immediately
func (s *DialogueStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
