package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// MockSnapshotStore is an in-memory mock of SnapshotStore
type MockSnapshotStore struct {
	mu       sync.Mutex
	snapshot *domain.Snapshot

	// Saves counts Save calls for assertions
	Saves int
}

// NewMockSnapshotStore creates a new MockSnapshotStore
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

func (m *MockSnapshotStore) Save(_ context.Context, snapshot *domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	m.Saves++
	return nil
}

func (m *MockSnapshotStore) Load(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return m.snapshot, nil
}
