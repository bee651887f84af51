package scenario

import (
	"testing"

	"github.com/sirjenkins/lwotai/internal/engine"
)

func seeded(t *testing.T) engine.Option {
	t.Helper()
	seed, err := engine.NewRunSeed("scenario-test")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return engine.WithRoller(seed.Stream("dice"))
}

func TestAllScenariosParse(t *testing.T) {
	list, err := All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("got %d scenarios", len(list))
	}
	for i, s := range list {
		if s.Number != i+1 || s.Name == "" {
			t.Fatalf("scenario %d: %+v", i+1, s)
		}
	}
}

func TestEveryScenarioKeepsPools(t *testing.T) {
	for n := 1; n <= 4; n++ {
		w, err := New(n, engine.IdeologyNormal, seeded(t))
		if err != nil {
			t.Fatalf("scenario %d: %v", n, err)
		}
		if err := w.CheckInvariants(); err != nil {
			t.Fatalf("scenario %d invariants: %v", n, err)
		}
	}
}

func TestLetsRoll(t *testing.T) {
	w, err := New(1, engine.IdeologyNormal, seeded(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.Year() != 2001 || w.Prestige != 7 || w.Funding != 9 {
		t.Fatalf("year=%d prestige=%d funding=%d", w.Year(), w.Prestige, w.Funding)
	}
	af := w.MustCountry(engine.Afghanistan)
	if af.Governance != engine.GovIslamistRule || af.Sleepers != 4 {
		t.Fatalf("afghanistan %s %d", af.Governance, af.Sleepers)
	}
	if !w.MustCountry(engine.Somalia).Besieged {
		t.Fatalf("somalia should start besieged")
	}
	if w.MustCountry(engine.UnitedStates).Posture != engine.PostureHard {
		t.Fatalf("US posture %q", w.MustCountry(engine.UnitedStates).Posture)
	}
}

func TestYouCanCallMeAlIsSoft(t *testing.T) {
	w, err := New(2, engine.IdeologyNormal, seeded(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.MustCountry(engine.UnitedStates).Posture != engine.PostureSoft {
		t.Fatalf("US posture %q", w.MustCountry(engine.UnitedStates).Posture)
	}
}

func TestAnacondaPlacesThreeRandomCells(t *testing.T) {
	w, err := New(3, engine.IdeologyNormal, seeded(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !w.HasMarker(engine.MarkerPatriotAct) {
		t.Fatalf("Patriot Act missing")
	}
	if w.CellPool != 8 {
		t.Fatalf("cell pool %d, want 8", w.CellPool)
	}
}

func TestMissionAccomplished(t *testing.T) {
	w, err := New(4, engine.IdeologyVirulent, seeded(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.TroopPool != 0 || w.CellPool != 5 || w.Ideology != engine.IdeologyVirulent {
		t.Fatalf("troops=%d cells=%d ideology=%s", w.TroopPool, w.CellPool, w.Ideology)
	}
	if !w.MustCountry(engine.Pakistan).HasMarker(engine.MarkerFATA) {
		t.Fatalf("FATA missing in Pakistan")
	}
	for _, c := range w.All() {
		if c.Schengen && c.Posture == engine.PostureUntested {
			t.Fatalf("%s should be tested", c.Name)
		}
	}
}

func TestRejectsBadInput(t *testing.T) {
	if _, err := New(5, engine.IdeologyNormal); err == nil {
		t.Fatalf("scenario 5 accepted")
	}
	if _, err := New(1, engine.Ideology(6)); err == nil {
		t.Fatalf("ideology 6 accepted")
	}
	if _, err := parseGovernance("excellent"); err == nil {
		t.Fatalf("bad governance accepted")
	}
}
