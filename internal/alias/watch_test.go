package alias

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Check(t *testing.T) {
	path := writeTempFile(t, "mapping.json", `{"team_aliases": {"a": "Alpha"}}`)
	s := Open(path, discardLogger())
	w := NewWatcher(s, path, time.Hour, discardLogger())

	var reloads, second int
	w.OnReload(func(Result, error) { reloads++ })
	w.OnReload(func(Result, error) { second++ })
	w.OnReload(nil)

	if w.Check() {
		t.Fatal("Check reported a change on an untouched file")
	}

	if err := os.WriteFile(path, []byte(`{"team_aliases": {"a": "Alpha", "b": "Beta"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Fatal("Check missed a size change")
	}
	if got, ok := s.ResolveTeam("b"); !ok || got != "Beta" {
		t.Errorf("ResolveTeam(b) = %q, %v after reload", got, ok)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Fatal("Check missed the deletion")
	}
	if _, ok := s.ResolveTeam("a"); ok {
		t.Error("deleted file should leave empty tables")
	}
	if w.Check() {
		t.Error("a deleted file should reload only once")
	}

	if reloads != 2 || second != 2 {
		t.Errorf("reloads = %d, %d, want 2 for every hook", reloads, second)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	s := NewStore(nil, discardLogger())
	w := NewWatcher(s, path, 10*time.Millisecond, discardLogger())

	reloaded := make(chan struct{}, 1)
	w.OnReload(func(Result, error) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"team_aliases": {"a": "Alpha"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not pick up the new file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if got, ok := s.ResolveTeam("a"); !ok || got != "Alpha" {
		t.Errorf("ResolveTeam(a) = %q, %v", got, ok)
	}
}
