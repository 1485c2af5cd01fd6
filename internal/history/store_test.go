package history

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAddAndRecent(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	entries := []Entry{
		{Input: "git st", Command: "git status", Provider: "anthropic", Accepted: true},
		{Input: "list files", Command: "ls -la", Provider: "anthropic", Accepted: false},
		{Input: "disk usage", Command: "du -sh *", Provider: "mock", Accepted: true},
	}
	for _, e := range entries {
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first
	if got[0].Command != "du -sh *" {
		t.Errorf("first entry = %q, want %q", got[0].Command, "du -sh *")
	}
	if got[2].Command != "git status" || !got[2].Accepted {
		t.Errorf("last entry = %+v, want accepted git status", got[2])
	}
}

func TestStoreCommands(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	seed := []Entry{
		{Input: "git st", Command: "git status", Accepted: true},
		{Input: "rejected", Command: "rm -rf /", Accepted: false},
		{Input: "git st again", Command: "git status", Accepted: true},
		{Input: "list", Command: "ls -la", Accepted: true},
	}
	for _, e := range seed {
		e.Provider = "mock"
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	commands, err := store.Commands(ctx, 10)
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("expected 2 distinct accepted commands, got %d: %v", len(commands), commands)
	}
	if commands[0] != "ls -la" || commands[1] != "git status" {
		t.Errorf("commands = %v, want [ls -la, git status]", commands)
	}
}

func TestStoreSearch(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	seed := []Entry{
		{Input: "git st", Command: "git status", Provider: "mock"},
		{Input: "show branches", Command: "git branch -a", Provider: "mock"},
		{Input: "disk usage", Command: "du -sh *", Provider: "mock"},
	}
	for _, e := range seed {
		if err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	results, err := store.Search(ctx, "git", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "git", len(results))
	}
	for _, r := range results {
		if r.Command != "git status" && r.Command != "git branch -a" {
			t.Errorf("unexpected match: %q", r.Command)
		}
	}

	// Empty query falls back to recents.
	all, err := store.Search(ctx, "", 10)
	if err != nil {
		t.Fatalf("Search(empty): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries for empty query, got %d", len(all))
	}
}

func TestStoreMarkAccepted(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	if err := store.Add(ctx, Entry{Input: "git st", Command: "git status", Provider: "mock"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.MarkAccepted(ctx, "git status"); err != nil {
		t.Fatalf("MarkAccepted: %v", err)
	}

	got, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || !got[0].Accepted {
		t.Errorf("entry not marked accepted: %+v", got)
	}
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	if err := store.Add(ctx, Entry{Input: "a", Command: "b", Provider: "mock"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected empty store after Clear, got %d entries", n)
	}
}

func TestStorePrune(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewStore(path, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := store.Add(ctx, Entry{Input: "i", Command: "c", Provider: "mock"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	store.Close()

	// Reopen with a cap; pruning runs on open.
	store, err = NewStore(path, 5)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 entries after pruning, got %d", n)
	}
}
