package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AccountStore = (*AccountStore)(nil)

// AccountStore implements driven.AccountStore using PostgreSQL
type AccountStore struct {
	db *DB
}

// NewAccountStore creates a new AccountStore
func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

// Get retrieves an account by user ID
func (s *AccountStore) Get(ctx context.Context, userID string) (*domain.Account, error) {
	query := `
		SELECT user_id, email, tier, turns_today, last_used, created_at
		FROM accounts
		WHERE user_id = $1
	`

	var acct domain.Account
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&acct.UserID,
		&acct.Email,
		&acct.Tier,
		&acct.TurnsToday,
		&acct.LastUsed,
		&acct.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acct, nil
}

// Ensure creates the account with free-tier defaults if it does not
// exist, and returns it either way
func (s *AccountStore) Ensure(ctx context.Context, userID, email string) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (user_id, email, tier, turns_today, last_used, created_at)
		VALUES ($1, $2, $3, 0, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET email = EXCLUDED.email
		RETURNING user_id, email, tier, turns_today, last_used, created_at
	`

	var acct domain.Account
	err := s.db.QueryRowContext(ctx, query, userID, email, string(domain.TierFree)).Scan(
		&acct.UserID,
		&acct.Email,
		&acct.Tier,
		&acct.TurnsToday,
		&acct.LastUsed,
		&acct.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	return &acct, nil
}

// Consume counts one turn against today's quota. The counter resets on
// day rollover. Runs in one transaction with a row lock so two
// simultaneous turns cannot both pass at the limit boundary.
func (s *AccountStore) Consume(ctx context.Context, userID string) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			SELECT tier, turns_today, last_used
			FROM accounts
			WHERE user_id = $1
			FOR UPDATE
		`

		var tier domain.Tier
		var turnsToday int
		var lastUsed time.Time

		err := tx.QueryRowContext(ctx, query, userID).Scan(&tier, &turnsToday, &lastUsed)
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load account usage: %w", err)
		}

		now := time.Now().UTC()
		if !lastUsed.UTC().Truncate(24 * time.Hour).Equal(now.Truncate(24 * time.Hour)) {
			turnsToday = 0
		}

		if turnsToday >= tier.DailyLimit() {
			return domain.ErrQuotaExceeded
		}

		update := `
			UPDATE accounts
			SET turns_today = $2, last_used = $3
			WHERE user_id = $1
		`
		if _, err := tx.ExecContext(ctx, update, userID, turnsToday+1, now); err != nil {
			return fmt.Errorf("failed to update account usage: %w", err)
		}
		return nil
	})
}
