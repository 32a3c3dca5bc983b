package driven

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// AccountStore owns identity and daily-usage records. The core never
// manages tiers; it only consumes the quota check as a precondition
// before a turn runs.
type AccountStore interface {
	// Get retrieves an account by user ID.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, userID string) (*domain.Account, error)

	// Ensure creates the account with free-tier defaults if it does not
	// exist, and returns it either way.
	Ensure(ctx context.Context, userID, email string) (*domain.Account, error)

	// Consume counts one turn against today's quota, resetting the
	// counter on day rollover. Returns domain.ErrQuotaExceeded when the
	// tier's daily limit is already spent.
	Consume(ctx context.Context, userID string) error
}
