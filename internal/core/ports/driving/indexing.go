package driving

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// IndexingService rebuilds the vector snapshot from the full corpus.
// Rebuilds are batch jobs run separately from serving traffic; there is no
// incremental path, every rebuild regenerates everything.
type IndexingService interface {
	// Rebuild ingests, normalises, chunks and embeds the corpus, then
	// persists the index and the aligned passage dump together.
	Rebuild(ctx context.Context) (*domain.RebuildResult, error)
}
