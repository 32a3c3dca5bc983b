package mocks

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// MockCorpusSource is a mock implementation of CorpusSource
type MockCorpusSource struct {
	Docs     []domain.RawDocument
	SkippedN int
	FailWith error
}

// NewMockCorpusSource creates a new MockCorpusSource
func NewMockCorpusSource(docs ...domain.RawDocument) *MockCorpusSource {
	return &MockCorpusSource{Docs: docs}
}

func (m *MockCorpusSource) Load(_ context.Context) ([]domain.RawDocument, int, error) {
	if m.FailWith != nil {
		return nil, 0, m.FailWith
	}
	return m.Docs, m.SkippedN, nil
}
