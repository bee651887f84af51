package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirjenkins/lwotai/internal/engine"
)

func openSnapshots(t *testing.T) *Snapshots {
	t.Helper()
	s, err := OpenSnapshots(filepath.Join(t.TempDir(), "nested", "lwot.db"))
	if err != nil {
		t.Fatalf("open snapshots: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seededWorld(t *testing.T) *engine.World {
	t.Helper()
	seed, err := engine.NewRunSeed("snapshots")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return engine.NewWorld(engine.WithRoller(seed.Stream("dice")))
}

func TestSuspendResumeKeepsDice(t *testing.T) {
	ctx := context.Background()
	s := openSnapshots(t)
	w := seededWorld(t)
	w.Funding = 6
	w.Logf("first line")
	if err := s.Suspend(ctx, w); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	got, err := s.Resume(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got.ID != w.ID || got.Funding != 6 || !reflect.DeepEqual(got.History, w.History) {
		t.Fatalf("resumed %+v", got)
	}
	for i := 0; i < 5; i++ {
		if a, b := w.Die(), got.Die(); a != b {
			t.Fatalf("roll %d: %d vs %d", i, a, b)
		}
	}
}

func TestResumeWithoutSaveIsNotFound(t *testing.T) {
	s := openSnapshots(t)
	if _, err := s.Resume(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestUndoIsConsumed(t *testing.T) {
	ctx := context.Background()
	s := openSnapshots(t)
	w := seededWorld(t)
	if err := s.MarkUndo(ctx, w); err != nil {
		t.Fatalf("mark undo: %v", err)
	}
	w.Funding = 9
	back, err := s.Undo(ctx)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if back.Funding != 1 {
		t.Fatalf("undo funding %d", back.Funding)
	}
	if _, err := s.Undo(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second undo: %v", err)
	}
}

func TestRollbackDropsLaterTurnsAndUndo(t *testing.T) {
	ctx := context.Background()
	s := openSnapshots(t)
	w := seededWorld(t)
	for turn := 1; turn <= 3; turn++ {
		w.Turn = turn
		w.Prestige = turn
		if err := s.MarkTurn(ctx, w); err != nil {
			t.Fatalf("mark turn %d: %v", turn, err)
		}
	}
	if err := s.MarkUndo(ctx, w); err != nil {
		t.Fatalf("mark undo: %v", err)
	}
	back, err := s.Rollback(ctx, 2)
	if err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if back.Turn != 2 || back.Prestige != 2 {
		t.Fatalf("rolled back to turn %d prestige %d", back.Turn, back.Prestige)
	}
	turns, err := s.Turns()
	if err != nil {
		t.Fatalf("turns: %v", err)
	}
	if !reflect.DeepEqual(turns, []int{1, 2}) {
		t.Fatalf("turns %v", turns)
	}
	if _, err := s.Undo(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("undo after rollback: %v", err)
	}
	if _, err := s.Rollback(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rollback to unknown turn: %v", err)
	}
}

func TestResetClearsSlots(t *testing.T) {
	ctx := context.Background()
	s := openSnapshots(t)
	w := seededWorld(t)
	_ = s.Suspend(ctx, w)
	_ = s.MarkTurn(ctx, w)
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := s.Resume(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resume after reset: %v", err)
	}
	if turns, _ := s.Turns(); len(turns) != 0 {
		t.Fatalf("turns after reset %v", turns)
	}
}

func TestStringArrayHelper(t *testing.T) {
	type state string
	got := pqStringArray([]state{"Start", "Travel"})
	if !reflect.DeepEqual(got, []string{"Start", "Travel"}) {
		t.Fatalf("got %v", got)
	}
}
