package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/custodia-labs/nika-core/internal/config"
	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
	"github.com/custodia-labs/nika-core/internal/runtime"
)

// Fallback context strings. They embed the raw question so the generation
// model can still reason without grounding. Retrieval never fails a turn.
const (
	fallbackNoIndex   = "No structured data found. The user asked: %s"
	fallbackNoMatches = "No direct matches found. The user asked: %s"
)

// Retriever answers "what do we know about this question" against the
// loaded snapshot. The snapshot and searcher are built together and are
// read-only here: search never mutates them, so one Retriever is shared by
// all concurrent turns.
type Retriever struct {
	services *runtime.Services
	snapshot *domain.Snapshot
	searcher driven.VectorSearcher
	bias     map[domain.Intent]string
	topK     int
	logger   *slog.Logger
}

// NewRetriever creates a retriever over a loaded snapshot. A nil snapshot
// or searcher is legal and puts the retriever in permanent fallback mode.
// A misaligned snapshot/searcher pair is refused outright: serving on it
// would silently return wrong passages.
func NewRetriever(
	services *runtime.Services,
	snapshot *domain.Snapshot,
	searcher driven.VectorSearcher,
	cfg config.RetrievalConfig,
	logger *slog.Logger,
) (*Retriever, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if snapshot != nil && searcher != nil && searcher.Len() != len(snapshot.Passages) {
		return nil, fmt.Errorf("searcher holds %d vectors for %d passages: %w",
			searcher.Len(), len(snapshot.Passages), domain.ErrAlignment)
	}

	bias := make(map[domain.Intent]string, len(cfg.Bias))
	for intent, phrase := range cfg.Bias {
		bias[domain.Intent(intent)] = phrase
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}

	return &Retriever{
		services: services,
		snapshot: snapshot,
		searcher: searcher,
		bias:     bias,
		topK:     topK,
		logger:   logger,
	}, nil
}

// Retrieve returns grounding context for a query. The query is biased with
// the intent's keyword phrase before embedding; unknown intents get no
// bias. Every degraded path (no index, embedding failure, nothing in
// range) returns a fallback outcome, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, intent domain.Intent) domain.RetrievedContext {
	if r.snapshot.Empty() || r.searcher == nil {
		r.logger.Warn("no snapshot loaded, degrading to raw-query context")
		return domain.RetrievedContext{Text: fmt.Sprintf(fallbackNoIndex, query)}
	}

	embedder := r.services.EmbeddingService()
	if embedder == nil {
		r.logger.Warn("no embedding service configured, degrading to raw-query context")
		return domain.RetrievedContext{Text: fmt.Sprintf(fallbackNoIndex, query)}
	}

	combined := strings.TrimSpace(r.bias[intent] + " " + query)

	vector, err := embedder.EmbedQuery(ctx, combined)
	if err != nil {
		r.logger.Warn("query embedding failed, degrading to raw-query context", "error", err)
		return domain.RetrievedContext{Text: fmt.Sprintf(fallbackNoIndex, query)}
	}

	matches := r.searcher.Search(vector, r.topK)

	// Positions past the passage count would mean a stale or mismatched
	// index; drop them rather than serve the wrong text.
	var texts []string
	var positions []int
	for _, m := range matches {
		if m.Position < 0 || m.Position >= len(r.snapshot.Passages) {
			r.logger.Warn("search returned out-of-range position", "position", m.Position)
			continue
		}
		texts = append(texts, r.snapshot.Passages[m.Position])
		positions = append(positions, m.Position)
	}

	if len(texts) == 0 {
		r.logger.Info("no retrieval matches", "intent", intent)
		return domain.RetrievedContext{Text: fmt.Sprintf(fallbackNoMatches, query)}
	}

	r.logger.Debug("retrieved context", "intent", intent, "passages", len(texts))
	return domain.RetrievedContext{
		Text:      strings.Join(texts, "\n\n"),
		Grounded:  true,
		Positions: positions,
	}
}
