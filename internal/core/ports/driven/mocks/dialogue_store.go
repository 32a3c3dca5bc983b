package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// MockDialogueStore is an in-memory mock of DialogueStore. Conversations
// are deep-copied through JSON on the way in and out so tests cannot
// accidentally share state with the store.
type MockDialogueStore struct {
	mu    sync.Mutex
	convs map[string][]byte

	// Saves counts Save calls for assertions
	Saves int
}

// NewMockDialogueStore creates a new MockDialogueStore
func NewMockDialogueStore() *MockDialogueStore {
	return &MockDialogueStore{
		convs: make(map[string][]byte),
	}
}

func (m *MockDialogueStore) Get(_ context.Context, userID string) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.convs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (m *MockDialogueStore) Save(_ context.Context, conv *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	m.convs[conv.UserID] = data
	m.Saves++
	return nil
}

func (m *MockDialogueStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.convs, userID)
	return nil
}

// Expire drops a conversation as if its TTL had elapsed.
func (m *MockDialogueStore) Expire(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.convs, userID)
}
