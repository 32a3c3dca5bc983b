package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
	"github.com/custodia-labs/nika-core/internal/core/ports/driving"
	"github.com/custodia-labs/nika-core/internal/runtime"
)

// Indexing rebuilds the retrieval snapshot from the full corpus. One
// linear pass: load, normalise, chunk, embed, persist. Every rebuild
// regenerates everything; the serving process picks up the new snapshot on
// its next start.
type Indexing struct {
	services   *runtime.Services
	source     driven.CorpusSource
	normaliser driven.Normaliser
	chunker    driven.Chunker
	store      driven.SnapshotStore
	logger     *slog.Logger
}

var _ driving.IndexingService = (*Indexing)(nil)

// NewIndexing creates the indexing service.
func NewIndexing(
	services *runtime.Services,
	source driven.CorpusSource,
	normaliser driven.Normaliser,
	chunker driven.Chunker,
	store driven.SnapshotStore,
	logger *slog.Logger,
) *Indexing {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexing{
		services:   services,
		source:     source,
		normaliser: normaliser,
		chunker:    chunker,
		store:      store,
		logger:     logger,
	}
}

// Rebuild runs the full pipeline. Malformed records were already skipped
// and counted by the source; an empty surviving batch aborts with
// ErrEmptyBatch, and an embedding count mismatch hard-fails rather than
// persisting a misaligned snapshot.
func (i *Indexing) Rebuild(ctx context.Context) (*domain.RebuildResult, error) {
	start := time.Now()

	embedder := i.services.EmbeddingService()
	if embedder == nil {
		return nil, fmt.Errorf("no embedding service configured: %w", domain.ErrProviderUnavailable)
	}

	docs, skipped, err := i.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	i.logger.Info("corpus loaded", "documents", len(docs), "skipped", skipped)

	var passages []string
	for _, doc := range docs {
		cleaned := i.normaliser.Normalise(doc.Content)
		for _, chunk := range i.chunker.Chunk(cleaned) {
			// The embedder rejects whole batches with blank entries, so
			// filter here to keep passage order identical to vector order.
			if strings.TrimSpace(chunk) == "" {
				continue
			}
			passages = append(passages, chunk)
		}
	}

	if len(passages) == 0 {
		return nil, fmt.Errorf("corpus produced no passages: %w", domain.ErrEmptyBatch)
	}
	i.logger.Info("corpus chunked", "passages", len(passages))

	vectors, err := embedder.Embed(ctx, passages)
	if err != nil {
		return nil, fmt.Errorf("failed to embed passages: %w", err)
	}
	if len(vectors) != len(passages) {
		return nil, fmt.Errorf("embedded %d vectors for %d passages: %w",
			len(vectors), len(passages), domain.ErrAlignment)
	}

	snapshot := &domain.Snapshot{
		Dimensions: embedder.Dimensions(),
		Vectors:    vectors,
		Passages:   passages,
		BuiltAt:    time.Now(),
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to persist snapshot: %w", err)
	}

	if err := i.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	result := &domain.RebuildResult{
		Documents: len(docs),
		Skipped:   skipped,
		Passages:  len(passages),
		Took:      time.Since(start),
	}
	i.logger.Info("rebuild complete",
		"documents", result.Documents,
		"skipped", result.Skipped,
		"passages", result.Passages,
		"took", result.Took)
	return result, nil
}
