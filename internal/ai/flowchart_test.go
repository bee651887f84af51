package ai

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sirjenkins/lwotai/internal/cards"
	"github.com/sirjenkins/lwotai/internal/engine"
)

type fakeEvent struct {
	typ        engine.CardType
	ops        int
	playable   bool
	placesCell bool
	outcome    engine.EventOutcome
	applied    int
}

func (f *fakeEvent) Number() int           { return 1 }
func (f *fakeEvent) Name() string          { return "fake" }
func (f *fakeEvent) Type() engine.CardType { return f.typ }
func (f *fakeEvent) Ops() int              { return f.ops }
func (f *fakeEvent) PlacesCell() bool      { return f.placesCell }
func (f *fakeEvent) Playable(engine.Side, *engine.World) (bool, error) {
	return f.playable, nil
}
func (f *fakeEvent) Apply(engine.Side, *engine.World) (engine.EventOutcome, error) {
	f.applied++
	return f.outcome, nil
}

type oneCard struct{ ev engine.CardEvent }

func (o oneCard) Lookup(int) (engine.CardEvent, error) { return o.ev, nil }

// newWorld rolls scripted dice first and then falls back to a seeded stream.
func newWorld(t *testing.T, dice ...int) *engine.World {
	t.Helper()
	seed, err := engine.NewRunSeed("flowchart")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := engine.NewScriptedRoller(dice...)
	r.Fallback = seed.Stream("dice")
	return engine.NewWorld(engine.WithRoller(r))
}

func prefix(path []State, n int) []State {
	if len(path) < n {
		return path
	}
	return path[:n]
}

func TestPlacesCellWithEmptyPoolRadicalizes(t *testing.T) {
	w := newWorld(t)
	af := w.MustCountry(engine.Afghanistan)
	af.Governance = engine.GovIslamistRule
	af.Alignment = engine.AlignAdversary
	af.Sleepers = engine.MaxCells
	w.CellPool = 0

	ev := &fakeEvent{typ: engine.CardJihadist, ops: 1, playable: true, placesCell: true, outcome: engine.EventOutcome{Handled: true}}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckEventPlacesCell, CheckPoolHasCell, Radicalize}
	if !reflect.DeepEqual(res.Path, want) {
		t.Fatalf("path %v", res.Path)
	}
	if ev.applied != 0 {
		t.Fatalf("event should not be played with an empty pool")
	}
}

func TestJihadistEventEndsFlow(t *testing.T) {
	w := newWorld(t)
	ev := &fakeEvent{typ: engine.CardJihadist, ops: 2, playable: true, outcome: engine.EventOutcome{Handled: true}}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckEventPlacesCell, PlayEvent}
	if !reflect.DeepEqual(res.Path, want) || !res.EventPlayed || ev.applied != 1 {
		t.Fatalf("path %v played=%v applied=%d", res.Path, res.EventPlayed, ev.applied)
	}
}

func TestUnassociatedEventContinuesToOperations(t *testing.T) {
	w := newWorld(t)
	ev := &fakeEvent{typ: engine.CardUnassociated, ops: 1, playable: true, outcome: engine.EventOutcome{Handled: true}}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckEventPlacesCell, PlayEvent, MajorJihad, MinorJihad, CellsAvailable, Recruit}
	if got := prefix(res.Path, len(want)); !reflect.DeepEqual(got, want) {
		t.Fatalf("path %v", res.Path)
	}
}

func TestUSEventPlotsFirst(t *testing.T) {
	w := newWorld(t)
	ev := &fakeEvent{typ: engine.CardUS, ops: 1, playable: true}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckUSEventPlayable, PlotHere}
	if got := prefix(res.Path, len(want)); !reflect.DeepEqual(got, want) {
		t.Fatalf("path %v", res.Path)
	}
	if ev.applied != 0 {
		t.Fatalf("the AI never plays US events")
	}
}

func TestUnplayableCardGoesToMajorJihad(t *testing.T) {
	w := newWorld(t, 1, 1, 1)
	ye := w.MustCountry(engine.Yemen)
	ye.Governance = engine.GovPoor
	ye.Alignment = engine.AlignNeutral
	ye.Sleepers = 6
	w.CellPool -= 6

	ev := &fakeEvent{typ: engine.CardJihadist, ops: 3}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckUSEventPlayable, UnplayableFallback, MajorJihad}
	if !reflect.DeepEqual(res.Path, want) {
		t.Fatalf("path %v", res.Path)
	}
	if res.Target != engine.Yemen {
		t.Fatalf("target %q", res.Target)
	}
	if ye.Governance != engine.GovIslamistRule {
		t.Fatalf("three successes in a Poor country should bring Islamist Rule, got %s", ye.Governance)
	}
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestNoCellsAvailableTravels(t *testing.T) {
	w := newWorld(t)
	w.Funding = 3
	af := w.MustCountry(engine.Afghanistan)
	af.Governance = engine.GovIslamistRule
	af.Alignment = engine.AlignAdversary
	af.Sleepers = 10
	w.CellPool -= 10

	ev := &fakeEvent{typ: engine.CardJihadist, ops: 1}
	res, err := New(oneCard{ev}).Play(w, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	want := []State{Start, CheckNonUSEventPlayable, CheckUSEventPlayable, UnplayableFallback, MajorJihad, MinorJihad, CellsAvailable, Travel}
	if got := prefix(res.Path, len(want)); !reflect.DeepEqual(got, want) {
		t.Fatalf("path %v", res.Path)
	}
}

func TestRealDeckQuestionFailureIsReturned(t *testing.T) {
	deck, err := cards.New()
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	w := newWorld(t)
	// Madrassas asks whether it is the first card; nobody answers.
	_, err = New(deck).Play(w, 53)
	if !errors.Is(err, engine.ErrAmbiguousChoice) {
		t.Fatalf("got %v", err)
	}
}
