package chat

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history for a new session, got %d", len(history))
	}

	err = store.Append(ctx, "s1",
		Message{Role: "user", Text: "Hallo"},
		Message{Role: "model", Text: "Guten Tag! (你好)"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, err = store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "model" {
		t.Fatalf("unexpected roles: %+v", history)
	}

	// Sessions never bleed into each other.
	other, err := store.History(ctx, "s2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected session isolation, got %d messages", len(other))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", Message{Role: "user", Text: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history after delete, got %d", len(history))
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", Message{Role: "user", Text: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected expired session to read empty, got %d", len(history))
	}

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected sweep to remove 1 session, got %d", removed)
	}
	if removed := store.Sweep(); removed != 0 {
		t.Fatalf("expected second sweep to remove nothing, got %d", removed)
	}
}
