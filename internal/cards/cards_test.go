package cards

import (
	"errors"
	"testing"

	"github.com/sirjenkins/lwotai/internal/engine"
)

func newDeck(t *testing.T) *Deck {
	t.Helper()
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func newWorld(dice []int, answers ...string) *engine.World {
	return engine.NewWorld(
		engine.WithRoller(engine.NewScriptedRoller(dice...)),
		engine.WithDecider(engine.NewScriptedDecider(answers...)),
	)
}

// sleepers puts n cells from the pool onto a tested country.
func sleepers(w *engine.World, name string, n int) {
	w.MustCountry(name).Sleepers += n
	w.CellPool -= n
}

func TestDeckCompilesEveryRule(t *testing.T) {
	d := newDeck(t)
	if d.Len() != 120 {
		t.Fatalf("deck has %d cards", d.Len())
	}
	for n := 1; n <= 120; n++ {
		ev, err := d.Event(n)
		if err != nil {
			t.Fatalf("card %d: %v", n, err)
		}
		if ev.Number() != n {
			t.Fatalf("card %d stored at %d", ev.Number(), n)
		}
		if ev.Ops() < 1 || ev.Ops() > 3 {
			t.Fatalf("card %d has %d ops", n, ev.Ops())
		}
	}
	if d.Name(6) != "Sanctions" || d.Name(27) != "Saddam Captured" {
		t.Fatalf("names: %q %q", d.Name(6), d.Name(27))
	}
}

func TestLookupOutOfRange(t *testing.T) {
	d := newDeck(t)
	for _, n := range []int{0, 121} {
		if _, err := d.Lookup(n); !errors.Is(err, engine.ErrInvalidTarget) {
			t.Fatalf("card %d: got %v", n, err)
		}
	}
}

func TestPlayableFollowsCardSide(t *testing.T) {
	d := newDeck(t)
	w := newWorld(nil)
	patriot, _ := d.Event(43)
	if ok, _ := patriot.Playable(engine.SideJihadist, w); ok {
		t.Fatalf("US card playable by the Jihadist")
	}
	if ok, err := patriot.Playable(engine.SideUS, w); !ok || err != nil {
		t.Fatalf("Patriot Act should be playable by the US: %v %v", ok, err)
	}
	somalia, _ := d.Event(49)
	if ok, _ := somalia.Playable(engine.SideUS, w); ok {
		t.Fatalf("Jihadist card playable by the US")
	}
	if ok, _ := somalia.Playable(engine.SideJihadist, w); !ok {
		t.Fatalf("Al-Ittihad al-Islami should be playable")
	}
}

func TestClosedItjihadBlocksJihadistEvents(t *testing.T) {
	d := newDeck(t)
	w := newWorld(nil)
	w.AddLapsing(engine.LapsingItjihadClose)
	somalia, _ := d.Event(49)
	if ok, _ := somalia.Playable(engine.SideJihadist, w); ok {
		t.Fatalf("Jihadist event playable while Itjihad is closed")
	}
	cartoons, _ := d.Event(96)
	if ok, _ := cartoons.Playable(engine.SideJihadist, w); ok {
		t.Fatalf("unassociated event playable by the Jihadist while Itjihad is closed")
	}
	if ok, _ := cartoons.Playable(engine.SideUS, w); !ok {
		t.Fatalf("US should still play unassociated events")
	}
}

func TestBacklashNeedsPlotInMuslimCountry(t *testing.T) {
	d := newDeck(t)
	w := newWorld(nil)
	backlash, _ := d.Event(1)
	if ok, _ := backlash.Playable(engine.SideUS, w); ok {
		t.Fatalf("Backlash playable without plots")
	}
	w.MustCountry(engine.UnitedKingdom).Plots = 1
	if ok, _ := backlash.Playable(engine.SideUS, w); ok {
		t.Fatalf("plot in a non-Muslim country should not enable Backlash")
	}
	w.MustCountry(engine.Egypt).Plots = 1
	if ok, _ := backlash.Playable(engine.SideUS, w); !ok {
		t.Fatalf("Backlash should be playable with a plot in Egypt")
	}
}

func TestRuleQuestionGoesToDecider(t *testing.T) {
	d := newDeck(t)
	madrassas, _ := d.Event(53)

	w := newWorld(nil, "y")
	if ok, err := madrassas.Playable(engine.SideJihadist, w); !ok || err != nil {
		t.Fatalf("got %v %v", ok, err)
	}

	w = newWorld(nil)
	_, err := madrassas.Playable(engine.SideJihadist, w)
	if !errors.Is(err, engine.ErrAmbiguousChoice) {
		t.Fatalf("unanswered question should fail, got %v", err)
	}
}

func TestQuartetRule(t *testing.T) {
	d := newDeck(t)
	quartet, _ := d.Event(26)
	w := newWorld(nil)
	if ok, _ := quartet.Playable(engine.SideUS, w); ok {
		t.Fatalf("Quartet needs Abbas")
	}
	w.AddMarker(engine.MarkerAbbas)
	if ok, _ := quartet.Playable(engine.SideUS, w); !ok {
		t.Fatalf("Quartet should be playable with Abbas and a full troop pool")
	}
	w.MustCountry(engine.Lebanon).Governance = engine.GovIslamistRule
	if ok, _ := quartet.Playable(engine.SideUS, w); ok {
		t.Fatalf("Islamist Rule next to Israel should block Quartet")
	}
}

func TestPlaceCellEvent(t *testing.T) {
	d := newDeck(t)
	w := newWorld([]int{5})
	ev, _ := d.Event(49)
	out, err := ev.Apply(engine.SideJihadist, w)
	if err != nil || !out.Handled {
		t.Fatalf("apply: %+v %v", out, err)
	}
	so := w.MustCountry(engine.Somalia)
	if so.Sleepers != 1 || so.Governance != engine.GovFair || w.CellPool != engine.MaxCells-1 {
		t.Fatalf("somalia sleepers=%d gov=%s pool=%d", so.Sleepers, so.Governance, w.CellPool)
	}
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestFundingEvents(t *testing.T) {
	d := newDeck(t)

	w := newWorld(nil)
	saddam, _ := d.Event(92)
	if _, err := saddam.Apply(engine.SideJihadist, w); err != nil {
		t.Fatalf("saddam: %v", err)
	}
	if w.Funding != engine.MaxFunding {
		t.Fatalf("funding %d after Saddam", w.Funding)
	}

	w = newWorld(nil)
	w.MustCountry(engine.SaudiArabia).Governance = engine.GovFair
	wahhabism, _ := d.Event(95)
	if _, err := wahhabism.Apply(engine.SideJihadist, w); err != nil {
		t.Fatalf("wahhabism: %v", err)
	}
	if w.Funding != 3 {
		t.Fatalf("funding %d after Wahhabism at Fair, want 3", w.Funding)
	}
}

func TestFatwaHandsBackToOperations(t *testing.T) {
	d := newDeck(t)
	fatwa, _ := d.Event(97)
	out, err := fatwa.Apply(engine.SideJihadist, newWorld(nil))
	if err != nil || !out.UsedAsOperations {
		t.Fatalf("got %+v %v", out, err)
	}
	out, _ = fatwa.Apply(engine.SideUS, newWorld(nil))
	if out.UsedAsOperations {
		t.Fatalf("US Fatwa should not spend ops")
	}
}

func TestMusharraf(t *testing.T) {
	d := newDeck(t)
	w := newWorld(nil)
	pk := w.MustCountry(engine.Pakistan)
	pk.Governance = engine.GovFair
	pk.Alignment = engine.AlignNeutral
	sleepers(w, engine.Pakistan, 1)

	ev, _ := d.Event(108)
	if ok, _ := ev.Playable(engine.SideJihadist, w); !ok {
		t.Fatalf("Musharraf should be playable with a cell in Pakistan")
	}
	if _, err := ev.Apply(engine.SideJihadist, w); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if pk.Sleepers != 0 || pk.Governance != engine.GovPoor || pk.Alignment != engine.AlignAlly {
		t.Fatalf("pakistan %d %s %s", pk.Sleepers, pk.Governance, pk.Alignment)
	}
	if w.CellPool != engine.MaxCells {
		t.Fatalf("cell not returned, pool %d", w.CellPool)
	}
}

func TestDarfurByPrestige(t *testing.T) {
	d := newDeck(t)
	darfur, _ := d.Event(113)

	w := newWorld([]int{5})
	if _, err := darfur.Apply(engine.SideUS, w); err != nil {
		t.Fatalf("apply: %v", err)
	}
	sd := w.MustCountry(engine.Sudan)
	if !sd.Aid || sd.Alignment != engine.AlignAlly {
		t.Fatalf("high prestige: aid=%v align=%s", sd.Aid, sd.Alignment)
	}

	w = newWorld([]int{5})
	w.Prestige = 3
	if _, err := darfur.Apply(engine.SideJihadist, w); err != nil {
		t.Fatalf("apply: %v", err)
	}
	sd = w.MustCountry(engine.Sudan)
	if !sd.Besieged || sd.Alignment != engine.AlignAdversary {
		t.Fatalf("low prestige: besieged=%v align=%s", sd.Besieged, sd.Alignment)
	}
}

func TestSanctionsDeclinedWithoutPatriotAct(t *testing.T) {
	d := newDeck(t)
	w := newWorld(nil)
	w.Funding = 5
	sanctions, _ := d.Event(6)
	out, err := sanctions.Apply(engine.SideUS, w)
	if err != nil || out.Handled || w.Funding != 5 {
		t.Fatalf("got %+v %v funding=%d", out, err, w.Funding)
	}
	w.AddMarker(engine.MarkerPatriotAct)
	if out, _ = sanctions.Apply(engine.SideUS, w); !out.Handled || w.Funding != 3 {
		t.Fatalf("got %+v funding=%d", out, w.Funding)
	}
}

func TestHijabAsksForFrancePosture(t *testing.T) {
	d := newDeck(t)
	w := newWorld([]int{5}, "soft")
	hijab, _ := d.Event(35)
	if _, err := hijab.Apply(engine.SideUS, w); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := w.MustCountry(engine.Turkey).Governance; got != engine.GovGood {
		t.Fatalf("turkey %s, want Good", got)
	}
	if got := w.MustCountry(engine.France).Posture; got != engine.PostureSoft {
		t.Fatalf("france %q", got)
	}
}
