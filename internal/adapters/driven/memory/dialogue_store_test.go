package memory

import (
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/nika-core/internal/core/domain"
)

func TestDialogueStore_SaveAndGet(t *testing.T) {
	store := NewDialogueStore()
	ctx := context.Background()

	conv := domain.NewConversation("user-1")
	conv.Profile[domain.SlotAge] = "30"

	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	retrieved, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.Profile[domain.SlotAge] != "30" {
		t.Errorf("expected age 30, got %q", retrieved.Profile[domain.SlotAge])
	}

	// Mutating the returned copy must not touch the stored state.
	retrieved.Profile[domain.SlotAge] = "99"
	again, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Profile[domain.SlotAge] != "30" {
		t.Errorf("expected stored age unchanged, got %q", again.Profile[domain.SlotAge])
	}
}

func TestDialogueStore_GetNotFound(t *testing.T) {
	store := NewDialogueStore()

	if _, err := store.Get(context.Background(), "missing"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDialogueStore_ExpiryAndSlidingTTL(t *testing.T) {
	store := NewDialogueStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Save(ctx, domain.NewConversation("user-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reading just before the deadline slides it forward.
	current = current.Add(domain.SessionTTL - time.Minute)
	if _, err := store.Get(ctx, "user-1"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	// Another near-deadline read still works because of the refresh.
	current = current.Add(domain.SessionTTL - time.Minute)
	if _, err := store.Get(ctx, "user-1"); err != nil {
		t.Fatalf("expected refreshed session, got %v", err)
	}

	// Past the full idle window the session is gone.
	current = current.Add(domain.SessionTTL + time.Second)
	if _, err := store.Get(ctx, "user-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after idle expiry, got %v", err)
	}
}

func TestDialogueStore_Delete(t *testing.T) {
	store := NewDialogueStore()
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewConversation("user-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, "user-1"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
