// Package flatindex provides exact nearest-neighbour search over a flat
// in-memory vector set, plus file persistence for the snapshot pair. At
// corpus scales of a few thousand passages a brute-force scan is faster
// than any approximate structure and has no recall loss.
package flatindex

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VectorSearcher = (*Index)(nil)

// Index holds a fixed set of vectors and scans all of them per query
// with squared Euclidean distance. Read-only after construction, safe
// for concurrent searches.
type Index struct {
	dims    int
	vectors [][]float32
}

// NewIndex builds an index over the given vectors. Every vector must
// have the same dimension; a ragged set is refused as misaligned.
func NewIndex(dims int, vectors [][]float32) (*Index, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("invalid dimension %d: %w", dims, domain.ErrInvalidInput)
	}
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d: %w",
				i, len(v), dims, domain.ErrAlignment)
		}
	}
	return &Index{dims: dims, vectors: vectors}, nil
}

// FromSnapshot builds an index directly over a validated snapshot.
func FromSnapshot(snapshot *domain.Snapshot) (*Index, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return NewIndex(snapshot.Dimensions, snapshot.Vectors)
}

// Search returns the k nearest vectors by squared Euclidean distance,
// closest first. Ties keep their scan order. k larger than the index
// returns everything; a query of the wrong dimension returns nothing.
func (ix *Index) Search(vector []float32, k int) []driven.Match {
	if len(vector) != ix.dims || k <= 0 || len(ix.vectors) == 0 {
		return nil
	}

	matches := make([]driven.Match, len(ix.vectors))
	for i, v := range ix.vectors {
		var dist float32
		for j := range v {
			d := v[j] - vector[j]
			dist += d * d
		}
		matches[i] = driven.Match{Position: i, Distance: dist}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}

// Len returns the number of indexed vectors
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Dimensions returns the vector dimension size
func (ix *Index) Dimensions() int {
	return ix.dims
}
