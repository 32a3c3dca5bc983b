package driven

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// Match is one nearest-neighbour hit. Position is the snapshot array
// position, which is also the join key back to the passage text.
type Match struct {
	Position int
	Distance float32
}

// VectorSearcher performs exact nearest-neighbour search over a fixed set
// of vectors. Implementations are read-only after construction and safe
// for concurrent searches.
type VectorSearcher interface {
	// Search returns the k nearest vectors by squared-Euclidean distance,
	// closest first. Ties keep their scan order; no re-ranking is applied.
	Search(vector []float32, k int) []Match

	// Len returns the number of indexed vectors
	Len() int

	// Dimensions returns the vector dimension size
	Dimensions() int
}

// SnapshotStore persists a snapshot's index and aligned passage dump.
// Save writes both outputs from the one in-memory snapshot in a single
// invocation; Load round-trips them and fails on any count mismatch.
type SnapshotStore interface {
	// Save atomically persists the snapshot. A partially written pair
	// must never become visible to a loader.
	Save(ctx context.Context, snapshot *domain.Snapshot) error

	// Load reads the persisted snapshot. Returns domain.ErrIndexUnavailable
	// when nothing has been persisted yet, and domain.ErrAlignment when
	// the index and passage dump disagree.
	Load(ctx context.Context) (*domain.Snapshot, error)
}
