package mocks

import (
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// MockVectorSearcher is a mock implementation of VectorSearcher that
// returns preset matches regardless of the query vector.
type MockVectorSearcher struct {
	Matches    []driven.Match
	VectorLen  int
	Dimension  int
	LastVector []float32
	LastK      int
}

// NewMockVectorSearcher creates a new MockVectorSearcher
func NewMockVectorSearcher(vectorLen int, matches ...driven.Match) *MockVectorSearcher {
	return &MockVectorSearcher{
		Matches:   matches,
		VectorLen: vectorLen,
		Dimension: 8,
	}
}

func (m *MockVectorSearcher) Search(vector []float32, k int) []driven.Match {
	m.LastVector = vector
	m.LastK = k
	if len(m.Matches) > k {
		return m.Matches[:k]
	}
	return m.Matches
}

func (m *MockVectorSearcher) Len() int {
	return m.VectorLen
}

func (m *MockVectorSearcher) Dimensions() int {
	return m.Dimension
}
