package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// setupTestDialogueStore creates a test Redis client and DialogueStore
func setupTestDialogueStore(t *testing.T) (*DialogueStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewDialogueStore(client)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func createTestConversation(userID string) *domain.Conversation {
	conv := domain.NewConversation(userID)
	conv.Mode = domain.ModeAdvisory
	conv.Profile[domain.SlotAge] = "27"
	conv.LastField = domain.SlotLatestDegree
	conv.Append(domain.MemoryTurn{
		Intent:    domain.IntentStudentVisa,
		Query:     "how do I apply?",
		Reply:     "you need admission first",
		Timestamp: time.Now(),
	})
	return conv
}

func TestDialogueStore_SaveAndGet(t *testing.T) {
	store, _, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	ctx := context.Background()
	conv := createTestConversation("user-1")

	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("unexpected error saving conversation: %v", err)
	}

	retrieved, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to retrieve saved conversation: %v", err)
	}

	if retrieved.UserID != "user-1" {
		t.Errorf("expected user ID user-1, got %s", retrieved.UserID)
	}
	if retrieved.Mode != domain.ModeAdvisory {
		t.Errorf("expected advisory mode, got %s", retrieved.Mode)
	}
	if retrieved.Profile[domain.SlotAge] != "27" {
		t.Errorf("expected age 27, got %q", retrieved.Profile[domain.SlotAge])
	}
	if retrieved.LastField != domain.SlotLatestDegree {
		t.Errorf("expected pending field %s, got %s", domain.SlotLatestDegree, retrieved.LastField)
	}
	if len(retrieved.History) != 1 {
		t.Fatalf("expected 1 history turn, got %d", len(retrieved.History))
	}
	if retrieved.History[0].Query != "how do I apply?" {
		t.Errorf("unexpected stored query %q", retrieved.History[0].Query)
	}
}

func TestDialogueStore_Get_NotFound(t *testing.T) {
	store, _, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing-user")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDialogueStore_Save_SetsTTL(t *testing.T) {
	store, mr, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	conv := createTestConversation("user-1")
	if err := store.Save(context.Background(), conv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl := mr.TTL(dialoguePrefix + "user-1")
	if ttl <= 0 || ttl > domain.SessionTTL {
		t.Errorf("expected TTL in (0, %v], got %v", domain.SessionTTL, ttl)
	}
}

func TestDialogueStore_Get_RefreshesTTL(t *testing.T) {
	store, mr, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	ctx := context.Background()
	conv := createTestConversation("user-1")
	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Burn down most of the TTL, then read. The read must push the
	// deadline back to the full window.
	mr.FastForward(domain.SessionTTL - time.Minute)

	if _, err := store.Get(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl := mr.TTL(dialoguePrefix + "user-1")
	if ttl < domain.SessionTTL-time.Second {
		t.Errorf("expected refreshed TTL near %v, got %v", domain.SessionTTL, ttl)
	}
}

func TestDialogueStore_Expiry(t *testing.T) {
	store, mr, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, createTestConversation("user-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(domain.SessionTTL + time.Second)

	if _, err := store.Get(ctx, "user-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestDialogueStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestDialogueStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, createTestConversation("user-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error deleting: %v", err)
	}

	if _, err := store.Get(ctx, "user-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing conversation is not an error
	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}
