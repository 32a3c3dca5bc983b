package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// MockAccountStore is an in-memory mock of AccountStore
type MockAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewMockAccountStore creates a new MockAccountStore
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountStore) Get(_ context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := *acct
	return &copy, nil
}

func (m *MockAccountStore) Ensure(_ context.Context, userID, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acct, ok := m.accounts[userID]; ok {
		copy := *acct
		return &copy, nil
	}

	acct := &domain.Account{
		UserID:    userID,
		Email:     email,
		Tier:      domain.TierFree,
		CreatedAt: time.Now(),
	}
	m.accounts[userID] = acct
	copy := *acct
	return &copy, nil
}

func (m *MockAccountStore) Consume(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[userID]
	if !ok {
		return domain.ErrNotFound
	}

	today := time.Now().Truncate(24 * time.Hour)
	if !acct.LastUsed.Equal(today) {
		acct.TurnsToday = 0
		acct.LastUsed = today
	}

	if acct.TurnsToday >= acct.Tier.DailyLimit() {
		return domain.ErrQuotaExceeded
	}
	acct.TurnsToday++
	return nil
}

// SetTier overrides an account's tier for quota tests.
func (m *MockAccountStore) SetTier(userID string, tier domain.Tier) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acct, ok := m.accounts[userID]; ok {
		acct.Tier = tier
	}
}
