package engine

import "testing"

func TestPlotInUnitedStates(t *testing.T) {
	w := newTestWorld()
	us := w.get(UnitedStates)
	station(w, UnitedStates, 0, 1, 0)

	if unused := w.ExecutePlot(1, true, []int{1}, PlotStandard); unused != 0 {
		t.Fatalf("unused %d, want 0", unused)
	}
	if us.Plots != 1 || us.Actives != 1 || us.Sleepers != 0 {
		t.Fatalf("plots=%d actives=%d sleepers=%d", us.Plots, us.Actives, us.Sleepers)
	}
}

func TestPlotReportsUnusedOps(t *testing.T) {
	w := newTestWorld()
	station(w, UnitedStates, 0, 1, 0)
	if unused := w.ExecutePlot(3, true, []int{6, 6, 6}, PlotStandard); unused != 2 {
		t.Fatalf("one cell can attempt one plot, unused %d", unused)
	}
	if w.get(UnitedStates).Plots != 0 {
		t.Fatalf("roll of 6 should fail")
	}
}

func TestTravelToBesiegedCountry(t *testing.T) {
	w := newTestWorld(2)
	setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
	station(w, Afghanistan, 0, 3, 0)
	iq := setCountry(w, Iraq, GovPoor, AlignNeutral)
	iq.Besieged = true

	if unused := w.HandleTravel(1, TravelStandard); unused != 0 {
		t.Fatalf("unused %d", unused)
	}
	if iq.Sleepers != 1 || w.get(Afghanistan).Sleepers != 2 {
		t.Fatalf("iraq=%d afghanistan=%d", iq.Sleepers, w.get(Afghanistan).Sleepers)
	}
	if err := w.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestResolvePlotInUnitedStates(t *testing.T) {
	w := newTestWorld()
	us := w.get(UnitedStates)
	us.Plots = 1
	w.ResolvePlot(UnitedStates, 2, PlotRolls{Posture: 5, Prestige: [3]int{2, 3, 5}}, false)
	if w.Funding != MaxFunding || w.Prestige != 4 || us.Posture != PostureHard || us.Plots != 0 {
		t.Fatalf("funding=%d prestige=%d posture=%s plots=%d", w.Funding, w.Prestige, us.Posture, us.Plots)
	}
}

func TestWMDInUnitedStatesEndsGame(t *testing.T) {
	w := newTestWorld()
	w.get(UnitedStates).Plots = 1
	w.ResolvePlot(UnitedStates, PlotWMD, PlotRolls{}, false)
	if !w.GameOver {
		t.Fatalf("WMD in the US is an automatic Jihadist victory")
	}
}

func TestResolvePlotMuslimGovernance(t *testing.T) {
	w := newTestWorld()
	jo := setCountry(w, Jordan, GovGood, AlignAlly)
	jo.Aid = true
	jo.Plots = 1
	station(w, Jordan, 1, 0, 0)

	w.ResolvePlot(Jordan, 2, PlotRolls{Governance: []int{1, 4}}, false)
	if w.Funding != 3 {
		t.Fatalf("plot in a Good country adds 2 funding, got %d", w.Funding)
	}
	if jo.Governance != GovFair || jo.Aid {
		t.Fatalf("one success should worsen to Fair and clear aid: %s aid=%v", jo.Governance, jo.Aid)
	}
	if w.Prestige != 6 {
		t.Fatalf("troops present should cost prestige, got %d", w.Prestige)
	}
}

func TestResolvePlotWithBacklash(t *testing.T) {
	w := newTestWorld()
	w.Funding = 5
	eg := setCountry(w, Egypt, GovGood, AlignAlly)
	eg.Plots = 1
	w.ResolvePlot(Egypt, 1, PlotRolls{Governance: []int{6}}, true)
	if w.Funding != 3 {
		t.Fatalf("backlash in a Good country costs 2 funding, got %d", w.Funding)
	}
}

func TestResolvePlotSchengenSpillover(t *testing.T) {
	w := newTestWorld()
	w.get(France).Plots = 1
	w.ResolvePlot(France, 2, PlotRolls{Posture: 1, Schengen: []string{Spain, Italy}, SchengenPostures: []int{6, 2}}, false)
	if w.Funding != 5 {
		t.Fatalf("plot 2 in a Good country adds 4 funding, got %d", w.Funding)
	}
	if w.get(France).Posture != PostureSoft || w.get(Spain).Posture != PostureHard || w.get(Italy).Posture != PostureSoft {
		t.Fatalf("postures france=%s spain=%s italy=%s", w.get(France).Posture, w.get(Spain).Posture, w.get(Italy).Posture)
	}
}

func TestResolvePlotsAsksForTypes(t *testing.T) {
	w := NewWorld(WithRoller(NewScriptedRoller(1, 6)), WithDecider(NewScriptedDecider("2", "n")))
	w.BacklashInPlay = true
	eg := setCountry(w, Egypt, GovFair, AlignNeutral)
	eg.Plots = 1

	if err := w.ResolvePlots(); err != nil {
		t.Fatalf("resolve plots: %v", err)
	}
	if eg.Plots != 0 || eg.Governance != GovPoor || w.Funding != 2 {
		t.Fatalf("plots=%d gov=%s funding=%d", eg.Plots, eg.Governance, w.Funding)
	}
	if w.BacklashInPlay {
		t.Fatalf("backlash ends once plots resolve")
	}
}

func TestEndTurn(t *testing.T) {
	w := newTestWorld()
	w.StartYear = 2001
	w.Funding = 5
	w.Prestige = 7
	setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
	station(w, SaudiArabia, 6, 0, 0)
	setCountry(w, SaudiArabia, GovPoor, AlignAlly)
	w.AddLapsing(LapsingGTMO)

	d := w.EndTurn()
	if w.Funding != 4 || w.Prestige != 6 || w.Turn != 2 || len(w.Lapsing) != 0 {
		t.Fatalf("funding=%d prestige=%d turn=%d lapsing=%v", w.Funding, w.Prestige, w.Turn, w.Lapsing)
	}
	if d.Jihadist != 8 || d.US != 8 {
		t.Fatalf("draws %+v", d)
	}
	if last := w.History[len(w.History)-1]; last != "[[ 2002 (Turn 2) ]]" {
		t.Fatalf("last line %q", last)
	}
}

func TestEndTurnPiratesKeepFunding(t *testing.T) {
	w := newTestWorld()
	w.Funding = 5
	w.AddMarker(MarkerPirates)
	setCountry(w, Somalia, GovIslamistRule, AlignAdversary)
	w.EndTurn()
	if w.Funding != 5 {
		t.Fatalf("pirates should block the funding drop, got %d", w.Funding)
	}
}
