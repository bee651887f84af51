package cards

import (
	"github.com/sirjenkins/lwotai/internal/engine"
)

// CountryView is the flat, expr-friendly picture of one country.
type CountryView struct {
	Name         string
	Culture      string
	Gov          int
	Align        string
	Posture      string
	Cells        int // includes Sadr
	CellsNoSadr  int
	Troops       int // includes NATO
	Plots        int
	Cadre        bool
	Aid          bool
	Besieged     bool
	RegimeChange bool
	Markers      []string
	Links        []string
}

func viewOf(c *engine.Country) CountryView {
	return CountryView{
		Name:         c.Name,
		Culture:      string(c.Culture),
		Gov:          int(c.Governance),
		Align:        string(c.Alignment),
		Posture:      string(c.Posture),
		Cells:        c.TotalCells(true),
		CellsNoSadr:  c.TotalCells(false),
		Troops:       c.TroopCount(),
		Plots:        c.Plots,
		Cadre:        c.Cadre,
		Aid:          c.Aid,
		Besieged:     c.Besieged,
		RegimeChange: c.RegimeChange,
		Markers:      c.Markers,
		Links:        c.Links,
	}
}

// asked records the first failed question of an evaluation; Env is passed by value.
type asked struct {
	err error
}

// Env is the environment card rules are compiled against.
type Env struct {
	Side      string
	Countries []CountryView
	Prestige  int
	Funding   int
	TroopPool int
	CellPool  int
	USPosture string

	w      *engine.World
	byName map[string]CountryView
	asked  *asked
}

func newEnv(w *engine.World, side engine.Side) Env {
	e := Env{
		Side:      string(side),
		Prestige:  w.Prestige,
		Funding:   w.Funding,
		TroopPool: w.TroopPool,
		CellPool:  w.CellPool,
		USPosture: string(w.MustCountry(engine.UnitedStates).Posture),
		w:         w,
		byName:    map[string]CountryView{},
		asked:     &asked{},
	}
	for _, c := range w.All() {
		v := viewOf(c)
		e.Countries = append(e.Countries, v)
		e.byName[c.Name] = v
	}
	return e
}

func (e Env) Country(name string) CountryView { return e.byName[name] }

func (e Env) HasMarker(m string) bool { return e.w.HasMarker(m) }

func (e Env) IsLapsing(l string) bool { return e.w.IsLapsing(l) }

func (e Env) Adjacent(a, b string) bool { return e.w.IsAdjacent(a, b) }

// TroopsNear is true when name or a neighbour has troops.
func (e Env) TroopsNear(name string) bool {
	for _, c := range e.Countries {
		if c.Troops > 0 && (c.Name == name || e.w.IsAdjacent(name, c.Name)) {
			return true
		}
	}
	return false
}

func (e Env) CellsAvailable() int  { return e.w.CellsAvailable(false) }
func (e Env) GWOT() int            { return e.w.GWOTPenalty() }
func (e Env) NumRegimeChange() int { return e.w.NumRegimeChange() }
func (e Env) NumIslamistRule() int { return e.w.NumIslamistRule() }
func (e Env) NumAdversary() int    { return e.w.NumAdversary() }
func (e Env) NumBesieged() int     { return e.w.NumBesieged() }
func (e Env) NumDisruptable() int  { return len(e.w.DisruptTargets()) }

func (e Env) HambaliTargets() []string { return hambaliTargets(e.w) }

// Ask puts a yes/no question about the table to the player. A failed question
// answers false and is reported once evaluation finishes.
func (e Env) Ask(prompt string) bool {
	if e.asked.err != nil {
		return false
	}
	ok, err := e.w.Decider().AskYesNo(prompt)
	if err != nil {
		e.asked.err = err
		return false
	}
	return ok
}
