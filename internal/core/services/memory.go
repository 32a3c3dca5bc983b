package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven"
)

// Memory is the sliding-window conversation memory: the last few
// (query, reply) turns per user, rendered into a summary block for the
// generation prompt. Bounds and TTL live in the domain; persistence and
// expiry live in the DialogueStore.
type Memory struct {
	store  driven.DialogueStore
	logger *slog.Logger
}

// NewMemory creates a Memory service over a dialogue store.
func NewMemory(store driven.DialogueStore, logger *slog.Logger) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{store: store, logger: logger}
}

// Append records one completed turn. The turn is only written after the
// reply exists, so a cancelled or failed turn never leaves a partial
// entry behind.
func (m *Memory) Append(ctx context.Context, userID string, intent domain.Intent, query, reply string) error {
	conv, err := m.store.Get(ctx, userID)
	if err == domain.ErrNotFound {
		conv = domain.NewConversation(userID)
	} else if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	conv.Append(domain.MemoryTurn{
		Intent:    intent,
		Query:     query,
		Reply:     reply,
		Timestamp: time.Now(),
	})

	if err := m.store.Save(ctx, conv); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	m.logger.Debug("memory updated", "user_id", userID, "turns", len(conv.History))
	return nil
}

// Summarize renders the stored turns for prompt injection, newest last.
// Returns the empty string when there is no history.
func (m *Memory) Summarize(ctx context.Context, userID string) string {
	conv, err := m.store.Get(ctx, userID)
	if err != nil || len(conv.History) == 0 {
		return ""
	}
	return SummarizeHistory(conv.History)
}

// SummarizeHistory renders a turn slice without touching the store, for
// callers that already hold the conversation.
func SummarizeHistory(history []domain.MemoryTurn) string {
	if len(history) == 0 {
		return ""
	}

	parts := make([]string, 0, len(history))
	for _, turn := range history {
		parts = append(parts, fmt.Sprintf("User asked: %s\nAssistant replied: %s", turn.Query, turn.Reply))
	}
	return "[Conversation Memory]\n" + strings.Join(parts, "\n\n")
}

// Clear removes the user's memory immediately.
func (m *Memory) Clear(ctx context.Context, userID string) error {
	if err := m.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	m.logger.Info("memory cleared", "user_id", userID)
	return nil
}
