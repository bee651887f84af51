package engine

import (
	"errors"
	"reflect"
	"testing"
)

// newTestWorld builds a board whose dice come from the given rolls.
func newTestWorld(dice ...int) *World {
	return NewWorld(WithRoller(NewScriptedRoller(dice...)))
}

// setCountry tests a Muslim country by hand.
func setCountry(w *World, name string, gov Governance, align Alignment) *Country {
	c := w.get(name)
	c.Governance = gov
	c.Alignment = align
	return c
}

// station moves troops from the pool and cells from the pool onto a country.
func station(w *World, name string, troops, sleepers, actives int) {
	c := w.get(name)
	c.Troops += w.takeTroops(troops)
	c.Sleepers += w.takeCells(sleepers)
	c.Actives += w.takeCells(actives)
}

func TestPlaceCellsFromSmallPool(t *testing.T) {
	w := newTestWorld(5)
	setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
	station(w, Afghanistan, 0, 10, 0)
	w.get(Egypt).Cadre = true

	if got := w.PlaceCells(Egypt, 3); got != 3 {
		t.Fatalf("placed %d, want 3", got)
	}
	eg := w.get(Egypt)
	if w.CellPool != 2 || eg.Sleepers != 3 || eg.Cadre {
		t.Fatalf("pool=%d sleepers=%d cadre=%v", w.CellPool, eg.Sleepers, eg.Cadre)
	}
	if eg.Governance != GovFair || eg.Alignment != AlignNeutral {
		t.Fatalf("egypt should test to Fair Neutral, got %s %s", eg.Governance, eg.Alignment)
	}
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestPlaceCellsEmptyPoolIsNoop(t *testing.T) {
	w := newTestWorld()
	setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
	station(w, Afghanistan, 0, 15, 0)
	if got := w.PlaceCells(Egypt, 2); got != 0 {
		t.Fatalf("placed %d from empty pool", got)
	}
	if w.get(Egypt).Governance != GovUntested {
		t.Fatalf("empty pool must not test the country")
	}
}

func TestTestCountryIdempotent(t *testing.T) {
	w := newTestWorld(2, 6)
	w.TestCountry(Yemen)
	first := *w.get(Yemen)
	w.TestCountry(Yemen)
	second := *w.get(Yemen)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second test changed the country: %+v vs %+v", first, second)
	}
	if first.Governance != GovPoor {
		t.Fatalf("roll 2 should give Poor, got %s", first.Governance)
	}
	w.TestCountry(Germany)
	if w.get(Germany).Posture != PostureHard {
		t.Fatalf("roll 6 should give Hard, got %q", w.get(Germany).Posture)
	}
}

func TestRemoveCellPrefersSadr(t *testing.T) {
	w := newTestWorld()
	c := setCountry(w, Iraq, GovPoor, AlignAlly)
	station(w, Iraq, 0, 1, 0)
	c.AddMarker(MarkerSadr)

	w.RemoveCell(Iraq)
	if c.HasMarker(MarkerSadr) || c.Sleepers != 1 {
		t.Fatalf("Sadr should go first: sadr=%v sleepers=%d", c.HasMarker(MarkerSadr), c.Sleepers)
	}
	w.RemoveCell(Iraq)
	if c.Sleepers != 0 || !c.Cadre || w.CellPool != MaxCells {
		t.Fatalf("sleepers=%d cadre=%v pool=%d", c.Sleepers, c.Cadre, w.CellPool)
	}
}

func TestInvariantViolationIsReported(t *testing.T) {
	w := newTestWorld()
	w.get(Egypt).Sleepers = 2
	err := w.CheckInvariants()
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestTakeMoreCellsThanPoolRecordsViolation(t *testing.T) {
	w := newTestWorld()
	w.takeCells(MaxCells + 1)
	if !errors.Is(w.Err(), ErrInvariantViolation) {
		t.Fatalf("overdraw should be recorded, got %v", w.Err())
	}
	w.ResetErr()
	if w.Err() != nil {
		t.Fatalf("ResetErr left %v", w.Err())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	seed, _ := NewRunSeed("round-trip")
	w := NewWorld(WithRoller(seed.Stream("dice")))
	setCountry(w, Pakistan, GovFair, AlignNeutral)
	station(w, Pakistan, 2, 3, 1)
	w.AddMarker(MarkerPatriotAct)
	w.AddLapsing(LapsingGTMO)
	w.Roller().Die()

	data, err := w.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	back, err := RestoreWorld(data)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !reflect.DeepEqual(back.Countries, w.Countries) || back.TroopPool != w.TroopPool || back.CellPool != w.CellPool {
		t.Fatalf("board differs after round trip")
	}
	if !back.HasMarker(MarkerPatriotAct) || !back.IsLapsing(LapsingGTMO) {
		t.Fatalf("markers lost: %v %v", back.Markers, back.Lapsing)
	}
	if a, b := w.Roller().Die(), back.Roller().Die(); a != b {
		t.Fatalf("dice diverged after restore: %d vs %d", a, b)
	}
}

func TestRadicalizeDeterministic(t *testing.T) {
	run := func() *World {
		seed, _ := NewRunSeed("radical")
		w := NewWorld(WithRoller(seed.Stream("dice")))
		w.Funding = 5
		setCountry(w, SaudiArabia, GovPoor, AlignAlly)
		station(w, SaudiArabia, 0, 2, 0)
		w.Radicalize(4)
		return w
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a.Countries, b.Countries) || !reflect.DeepEqual(a.History, b.History) {
		t.Fatalf("identical seeds produced different games")
	}
	if err := a.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestResolveCountryPrefix(t *testing.T) {
	w := newTestWorld()
	c, err := w.ResolveCountry("afgh")
	if err != nil || c.Name != Afghanistan {
		t.Fatalf("prefix lookup: %v %v", c, err)
	}
	if _, err := w.ResolveCountry("Atlantis"); !errors.Is(err, ErrUnknownCountry) {
		t.Fatalf("expected unknown country, got %v", err)
	}
	if _, err := w.ResolveCountry("s"); !errors.Is(err, ErrAmbiguousChoice) {
		t.Fatalf("expected ambiguous prefix, got %v", err)
	}
}
