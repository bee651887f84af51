package engine

import (
	"reflect"
	"testing"
)

func TestRecruitChoicePriority(t *testing.T) {
	cases := []struct {
		name  string
		setup func(w *World)
		want  string
	}{
		{
			name: "regime change with a garrison beats islamist rule",
			setup: func(w *World) {
				iq := setCountry(w, Iraq, GovPoor, AlignAlly)
				iq.RegimeChange = true
				station(w, Iraq, 6, 1, 0)
				setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
				station(w, Afghanistan, 0, 1, 0)
			},
			want: Iraq,
		},
		{
			name: "islamist rule beats a recruit value",
			setup: func(w *World) {
				setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
				station(w, Afghanistan, 0, 1, 0)
				station(w, Philippines, 0, 1, 0)
			},
			want: Afghanistan,
		},
		{
			name: "recruit value beats governance",
			setup: func(w *World) {
				station(w, Philippines, 0, 1, 0)
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 1, 0)
			},
			want: Philippines,
		},
		{
			name: "poorer governance first",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 1, 0)
				setCountry(w, Sudan, GovPoor, AlignNeutral)
				station(w, Sudan, 0, 1, 0)
			},
			want: Sudan,
		},
		{
			name: "besieged breaks a governance tie",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral).Besieged = true
				station(w, Jordan, 0, 1, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 1, 0)
			},
			want: Jordan,
		},
		{
			name: "more troops and cells before resources",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 2, 0)
				setCountry(w, Egypt, GovFair, AlignNeutral)
				station(w, Egypt, 0, 1, 0)
			},
			want: Jordan,
		},
		{
			name: "resources last",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 1, 0)
				setCountry(w, Egypt, GovFair, AlignNeutral)
				station(w, Egypt, 0, 1, 0)
			},
			want: Egypt,
		},
		{
			name: "regime change short of troops is skipped",
			setup: func(w *World) {
				iq := setCountry(w, Iraq, GovPoor, AlignAlly)
				iq.RegimeChange = true
				station(w, Iraq, 2, 1, 0)
			},
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			tc.setup(w)
			if got := w.RecruitChoice(1, false); got != tc.want {
				t.Fatalf("recruit choice %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMinorJihadCandidateOrder(t *testing.T) {
	w := newTestWorld()
	setCountry(w, Egypt, GovFair, AlignNeutral)
	setCountry(w, Syria, GovFair, AlignNeutral).Aid = true
	setCountry(w, Pakistan, GovFair, AlignNeutral)
	setCountry(w, Jordan, GovGood, AlignAlly)
	setCountry(w, Sudan, GovPoor, AlignNeutral)
	for _, n := range []string{Egypt, Syria, Pakistan, Sudan} {
		station(w, n, 0, 1, 0)
	}
	station(w, Jordan, 0, 2, 0)

	want := []string{Jordan, Pakistan, Syria, Egypt}
	if got := w.MinorJihadCandidates(MinorJihadStandard); !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates %v, want %v", got, want)
	}

	plan := w.MinorJihadChoice(3)
	wantPlan := []JihadAllocation{{Country: Jordan, Rolls: 2}, {Country: Pakistan, Rolls: 1}}
	if !reflect.DeepEqual(plan, wantPlan) {
		t.Fatalf("plan %v, want %v", plan, wantPlan)
	}

	w.AddMarker(MarkerBenazirBhutto)
	want = []string{Jordan, Syria, Egypt}
	if got := w.MinorJihadCandidates(MinorJihadStandard); !reflect.DeepEqual(got, want) {
		t.Fatalf("Benazir Bhutto should shield Pakistan: %v", got)
	}
}

func TestMajorJihadPossibleThresholds(t *testing.T) {
	cases := []struct {
		name     string
		country  string
		gov      Governance
		besieged bool
		cells    int
		troops   int
		ideology Ideology
		marker   string
		ops      int
		want     bool
	}{
		{name: "poor needs two ops", country: Egypt, gov: GovPoor, cells: 5, ops: 2, want: true},
		{name: "fair needs three ops", country: Egypt, gov: GovFair, cells: 5, ops: 2, want: false},
		{name: "fair with three ops", country: Egypt, gov: GovFair, cells: 5, ops: 3, want: true},
		{name: "besieged lowers the need", country: Egypt, gov: GovFair, besieged: true, cells: 5, ops: 2, want: true},
		{name: "four cells too few", country: Egypt, gov: GovPoor, cells: 4, ops: 3, want: false},
		{name: "potent needs three more cells", country: Egypt, gov: GovPoor, cells: 3, ideology: IdeologyPotent, ops: 2, want: true},
		{name: "troops offset cells", country: Egypt, gov: GovPoor, cells: 6, troops: 2, ops: 3, want: false},
		{name: "benazir bhutto shields pakistan", country: Pakistan, gov: GovPoor, cells: 5, marker: MarkerBenazirBhutto, ops: 3, want: false},
		{name: "non-muslim never", country: UnitedKingdom, gov: GovGood, cells: 6, ops: 3, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			if tc.ideology != 0 {
				w.Ideology = tc.ideology
			}
			if tc.marker != "" {
				w.AddMarker(tc.marker)
			}
			c := w.get(tc.country)
			c.Governance = tc.gov
			c.Besieged = tc.besieged
			station(w, tc.country, tc.troops, tc.cells, 0)
			got := contains(w.MajorJihadPossible(tc.ops), tc.country)
			if got != tc.want {
				t.Fatalf("major jihad possible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTravelSourcePriority(t *testing.T) {
	cases := []struct {
		name  string
		setup func(w *World)
		dests []string
		want  string
	}{
		{
			name: "islamist rule with spare cells",
			setup: func(w *World) {
				setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
				station(w, Afghanistan, 0, 3, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 1, 0)
			},
			dests: []string{Iraq},
			want:  Afghanistan,
		},
		{
			name: "regime change with more cells than troops",
			setup: func(w *World) {
				setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
				station(w, Afghanistan, 0, 1, 0)
				ly := setCountry(w, Libya, GovPoor, AlignAlly)
				ly.RegimeChange = true
				station(w, Libya, 2, 3, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 1, 0)
			},
			dests: []string{Iraq},
			want:  Libya,
		},
		{
			name: "adjacent before anywhere",
			setup: func(w *World) {
				setCountry(w, Egypt, GovFair, AlignNeutral)
				station(w, Egypt, 0, 1, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 1, 0)
			},
			dests: []string{Iraq},
			want:  Syria,
		},
		{
			name: "anywhere with a cell",
			setup: func(w *World) {
				setCountry(w, Egypt, GovFair, AlignNeutral)
				station(w, Egypt, 0, 1, 0)
			},
			dests: []string{Iraq},
			want:  Egypt,
		},
		{
			name: "active cells break ties",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 1, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 0, 1)
			},
			dests: []string{Iraq},
			want:  Syria,
		},
		{
			name: "a country bound elsewhere is passed over",
			setup: func(w *World) {
				setCountry(w, Jordan, GovFair, AlignNeutral)
				station(w, Jordan, 0, 1, 0)
				setCountry(w, Syria, GovFair, AlignNeutral)
				station(w, Syria, 0, 1, 0)
			},
			dests: []string{Iraq, Jordan},
			want:  Syria,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			setCountry(w, Iraq, GovPoor, AlignNeutral)
			tc.setup(w)
			got := w.TravelSources(tc.dests, len(tc.dests), TravelStandard)
			if len(got) == 0 || got[0] != tc.want {
				t.Fatalf("sources %v, want %s first", got, tc.want)
			}
		})
	}
}

func TestBiometricsRestrictsTravel(t *testing.T) {
	cases := []struct {
		name       string
		biometrics bool
		dice       []int
		wantDest   string
		wantSource string
		arrived    bool
	}{
		{name: "without biometrics", wantDest: Iraq, wantSource: Afghanistan, dice: []int{3}, arrived: true},
		{name: "with biometrics", biometrics: true, wantDest: Sudan, wantSource: Egypt, dice: []int{6}, arrived: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(tc.dice...)
			if tc.biometrics {
				w.AddLapsing(LapsingBiometrics)
			}
			setCountry(w, Iraq, GovPoor, AlignNeutral).Besieged = true
			setCountry(w, Sudan, GovPoor, AlignNeutral).Besieged = true
			setCountry(w, Egypt, GovFair, AlignNeutral)
			station(w, Egypt, 0, 2, 0)
			setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
			station(w, Afghanistan, 0, 5, 0)

			dests := w.TravelDestinations(1, TravelStandard)
			if !reflect.DeepEqual(dests, []string{tc.wantDest}) {
				t.Fatalf("destinations %v, want %s", dests, tc.wantDest)
			}
			sources := w.TravelSources(dests, 1, TravelStandard)
			if !reflect.DeepEqual(sources, []string{tc.wantSource}) {
				t.Fatalf("sources %v, want %s", sources, tc.wantSource)
			}

			pool := w.CellPool
			if unused := w.HandleTravel(1, TravelStandard); unused != 0 {
				t.Fatalf("unused %d", unused)
			}
			dest := w.get(tc.wantDest)
			if tc.arrived != (dest.Sleepers == 1) {
				t.Fatalf("%s sleepers %d, arrived want %v", tc.wantDest, dest.Sleepers, tc.arrived)
			}
			if !tc.arrived && w.CellPool != pool+1 {
				t.Fatalf("failed travel should return the cell, pool %d", w.CellPool)
			}
		})
	}
}

func TestTravelIntoUntestedCountryRollsBeforeTesting(t *testing.T) {
	// Travel roll 1 against untested governance fails; the test roll of 3 makes it Poor.
	w := newTestWorld(1, 3)
	so := w.get(Somalia)
	so.Besieged = true
	setCountry(w, Afghanistan, GovIslamistRule, AlignAdversary)
	station(w, Afghanistan, 0, 3, 0)

	if unused := w.HandleTravel(1, TravelStandard); unused != 0 {
		t.Fatalf("unused %d", unused)
	}
	if so.Sleepers != 0 || w.CellPool != MaxCells-2 {
		t.Fatalf("travel should fail: somalia=%d pool=%d", so.Sleepers, w.CellPool)
	}
	if so.Governance != GovPoor || so.Alignment != AlignNeutral {
		t.Fatalf("somalia should be tested after the roll: %s %s", so.Governance, so.Alignment)
	}
}

func TestPlotBucketOrder(t *testing.T) {
	cases := []struct {
		name   string
		isOps  bool
		egypt  Governance
		target string
	}{
		{name: "operations try fair first", isOps: true, egypt: GovFair, target: Egypt},
		{name: "events try good first", isOps: false, egypt: GovFair, target: Jordan},
		{name: "poor comes last", isOps: true, egypt: GovPoor, target: Jordan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			setCountry(w, Egypt, tc.egypt, AlignNeutral)
			station(w, Egypt, 1, 1, 0)
			setCountry(w, Jordan, GovGood, AlignAlly)
			station(w, Jordan, 1, 1, 0)

			if unused := w.ExecutePlot(1, tc.isOps, []int{1}, PlotStandard); unused != 0 {
				t.Fatalf("unused %d", unused)
			}
			if w.get(tc.target).Plots != 1 {
				t.Fatalf("plot should land in %s: egypt=%d jordan=%d", tc.target, w.get(Egypt).Plots, w.get(Jordan).Plots)
			}
		})
	}
}
