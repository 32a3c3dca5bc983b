package domain

import "time"

// Tier is an account's usage tier. Tiers are owned by the persistence
// collaborator; the core only reads them to gate a turn.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// DailyLimit returns the allowed turns per day for the tier.
// Unknown tiers get the free limit.
func (t Tier) DailyLimit() int {
	switch t {
	case TierPro:
		return 25
	default:
		return 10
	}
}

// Account is the identity/usage record for a user.
type Account struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Tier       Tier      `json:"tier"`
	TurnsToday int       `json:"turns_today"`
	LastUsed   time.Time `json:"last_used"` // date of the last counted turn
	CreatedAt  time.Time `json:"created_at"`
}

// TokenClaims is the identity payload carried by a bearer token.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
