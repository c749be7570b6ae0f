package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		session := &Session{ID: "s1", UserID: "u1", State: NewOnboardingState("u1")}
		if err := store.Put(ctx, session); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "s1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.UserID != "u1" || got.State == nil {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("expired session is gone", func(t *testing.T) {
		store := NewMemorySessionStore(time.Nanosecond)
		session := &Session{ID: "s1", UserID: "u1"}
		if err := store.Put(ctx, session); err != nil {
			t.Fatalf("put: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		_ = store.Put(ctx, &Session{ID: "s1"})
		if err := store.Delete(ctx, "s1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("err=%v", err)
		}
	})

	t.Run("missing id rejected", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		if err := store.Put(ctx, &Session{}); err == nil {
			t.Fatal("expected error for session without id")
		}
	})
}
