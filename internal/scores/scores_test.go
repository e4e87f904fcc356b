package scores

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTopOrdersByPoints(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	clock := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	records := []struct {
		player string
		points int
	}{
		{"ann", 30}, {"bob", 120}, {"cat", 30}, {"dan", -4},
	}
	for _, r := range records {
		if err := s.Record(ctx, r.player, r.points, "planet collision"); err != nil {
			t.Fatalf("Record(%s): %v", r.player, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []string{"bob", "ann", "cat"}
	if len(top) != len(want) {
		t.Fatalf("got %d entries want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].Player != name {
			t.Fatalf("entry %d: got %s want %s", i, top[i].Player, name)
		}
	}
	if top[0].Points != 120 || top[0].Reason != "planet collision" {
		t.Fatalf("unexpected top entry %+v", top[0])
	}
}

func TestTopEmpty(t *testing.T) {
	s := openTestStore(t)
	top, err := s.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 0 {
		t.Fatalf("expected no entries, got %d", len(top))
	}
}

func TestReopenKeepsScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Record(context.Background(), "eve", 42, "ran out of points"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	top, err := s.Top(context.Background(), 1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 1 || top[0].Player != "eve" || top[0].Points != 42 {
		t.Fatalf("unexpected entries after reopen: %+v", top)
	}
}
