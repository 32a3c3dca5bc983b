package driven

import (
	"context"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

// CorpusSource loads the raw corpus for a rebuild. Records that fail to
// read or parse are skipped and counted, never fatal: ingestion continues
// over the remaining records.
type CorpusSource interface {
	// Load reads every available record. skipped is the number of
	// malformed or unreadable records left out of the result.
	Load(ctx context.Context) (docs []domain.RawDocument, skipped int, err error)
}

// Normaliser cleans raw corpus text ahead of chunking.
type Normaliser interface {
	// Normalise strips markup remnants, collapses whitespace and restores
	// paragraph breaks. Pure and deterministic.
	Normalise(text string) string
}

// Chunker splits normalised text into bounded-length passages.
type Chunker interface {
	// Chunk is deterministic and idempotent: re-chunking unchanged input
	// yields identical passages.
	Chunk(text string) []string
}
