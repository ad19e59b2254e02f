package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestVisitAndBack(t *testing.T) {
	s := New("ds", "A", DefaultTTL)
	s.Visit("F")
	s.Visit("F")
	s.Visit("GF")

	if s.Focus != "GF" || strings.Join(s.History, ",") != "A,F" {
		t.Fatalf("after visits: focus=%s history=%v", s.Focus, s.History)
	}
	if !s.Back() || s.Focus != "F" {
		t.Errorf("Back() focus = %s, want F", s.Focus)
	}
	if !s.Back() || s.Focus != "A" {
		t.Errorf("Back() focus = %s, want A", s.Focus)
	}
	if s.Back() {
		t.Error("Back() on empty history should report false")
	}
}

func TestHistoryBounded(t *testing.T) {
	s := New("ds", "p0", DefaultTTL)
	for i := 1; i <= MaxHistory+10; i++ {
		s.Visit("p" + string(rune('0'+i%10)) + string(rune('a'+i/10)))
	}
	if len(s.History) != MaxHistory {
		t.Errorf("len(History) = %d, want %d", len(s.History), MaxHistory)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if got, err := store.Get(ctx, "missing"); got != nil || err != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", got, err)
	}

	s := New("abc123", "A", DefaultTTL)
	s.Style = "pedigree"
	s.Visit("B")
	if err := store.Set(ctx, s); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get(ctx, "abc123")
	if err != nil || got == nil {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if got.Focus != "B" || got.Style != "pedigree" || len(got.History) != 1 {
		t.Errorf("Get() = %+v", got)
	}

	if err := store.Delete(ctx, "abc123"); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, "abc123"); got != nil {
		t.Error("session should be gone after Delete")
	}

	if err := store.Set(ctx, &Session{}); err != ErrNoID {
		t.Errorf("Set(no id) error = %v, want ErrNoID", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	old := New("old", "A", -time.Minute)
	fresh := New("fresh", "A", time.Hour)
	for _, s := range []*Session{old, fresh} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if _, err := os.Stat(store.file("old")); !os.IsNotExist(err) {
		t.Error("expired session file should be removed")
	}
	if got, _ := store.Get(ctx, "fresh"); got == nil {
		t.Error("fresh session should survive Cleanup")
	}

	corrupt := filepath.Join(dir, "torn.json")
	if err := os.WriteFile(corrupt, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "torn"); err == nil {
		t.Error("Get of an unreadable session should fail")
	}
	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(corrupt); !os.IsNotExist(err) {
		t.Error("Cleanup should remove unreadable session files")
	}
}
