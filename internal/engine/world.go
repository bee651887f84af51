package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	MaxCells    = 15
	MaxTroops   = 15
	MaxFunding  = 9
	MaxPrestige = 12
)

// Global markers and lapsing effects the rules look at.
const (
	MarkerAbbas              = "Abbas"
	MarkerAbuSayyaf          = "Abu Sayyaf"
	MarkerAlAnbar            = "Al-Anbar"
	MarkerAnbarAwakening     = "Anbar Awakening"
	MarkerBenazirBhutto      = "Benazir Bhutto"
	MarkerBhuttoShot         = "Bhutto Shot"
	MarkerEnhancedMeasures   = "Enhanced Measures"
	MarkerIndoPakistaniTalks = "Indo-Pakistani Talks"
	MarkerIraqiWMD           = "Iraqi WMD"
	MarkerLibyanDeal         = "Libyan Deal"
	MarkerLibyanWMD          = "Libyan WMD"
	MarkerMoroTalks          = "Moro Talks"
	MarkerNEST               = "NEST"
	MarkerPatriotAct         = "Patriot Act"
	MarkerPirates            = "Pirates"
	MarkerRenditions         = "Renditions"
	MarkerSaddamCaptured     = "Saddam Captured"
	MarkerVieiraDeMello      = "Vieira de Mello Slain"
	MarkerWiretapping        = "Wiretapping"

	LapsingBiometrics   = "Biometrics"
	LapsingGTMO         = "GTMO"
	LapsingOilSpike     = "Oil Price Spike"
	LapsingItjihadClose = "The door of Itjihad was closed"
)

// World is the whole board: every country plus the shared tracks. All rules mutate it
// through methods so the pool invariants can be checked after each command.
type World struct {
	ID             uuid.UUID           `json:"id"`
	Scenario       int                 `json:"scenario"`
	Ideology       Ideology            `json:"ideology"`
	StartYear      int                 `json:"start_year"`
	Turn           int                 `json:"turn"`
	TroopPool      int                 `json:"troop_pool"`
	CellPool       int                 `json:"cell_pool"`
	Funding        int                 `json:"funding"`
	Prestige       int                 `json:"prestige"`
	Markers        []string            `json:"markers,omitempty"`
	Lapsing        []string            `json:"lapsing,omitempty"`
	BacklashInPlay bool                `json:"backlash_in_play"`
	GameOver       bool                `json:"game_over"`
	History        []string            `json:"history,omitempty"`
	Order          []string            `json:"order"`
	Countries      map[string]*Country `json:"countries"`
	Dice           *StreamState        `json:"dice,omitempty"`

	roller    Roller
	decider   Decider
	logger    *zap.Logger
	violation error
}

type Option func(*World)

func WithRoller(r Roller) Option      { return func(w *World) { w.roller = r } }
func WithDecider(d Decider) Option    { return func(w *World) { w.decider = d } }
func WithLogger(l *zap.Logger) Option { return func(w *World) { w.logger = l } }

// NewWorld creates the standard board with full pools and no scenario applied.
func NewWorld(opts ...Option) *World {
	w := &World{
		ID:        uuid.New(),
		Ideology:  IdeologyNormal,
		Turn:      1,
		TroopPool: MaxTroops,
		CellPool:  MaxCells,
		Funding:   1,
		Prestige:  7,
		Countries: map[string]*Country{},
	}
	for _, c := range StandardCountries() {
		w.Order = append(w.Order, c.Name)
		w.Countries[c.Name] = c
	}
	w.apply(opts)
	return w
}

func (w *World) apply(opts []Option) {
	for _, o := range opts {
		o(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.roller == nil {
		seed, _ := NewRunSeed(w.ID.String())
		w.roller = seed.Stream("dice")
	}
	if w.decider == nil {
		w.decider = NewScriptedDecider()
	}
}

func (w *World) Roller() Roller          { return w.roller }
func (w *World) Decider() Decider        { return w.decider }
func (w *World) SetDecider(d Decider)    { w.decider = d }
func (w *World) Logger() *zap.Logger     { return w.logger }
func (w *World) SetLogger(l *zap.Logger) { w.logger = l }

// Country looks a country up by its exact name.
func (w *World) Country(name string) (*Country, error) {
	c, ok := w.Countries[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCountry, "%q", name)
	}
	return c, nil
}

// get is for names the rules hard-code; the standard map always has them.
func (w *World) get(name string) *Country {
	c, ok := w.Countries[name]
	if !ok {
		panic(fmt.Sprintf("country %q missing from map", name))
	}
	return c
}

// All returns countries in board order.
func (w *World) All() []*Country {
	out := make([]*Country, 0, len(w.Order))
	for _, n := range w.Order {
		out = append(out, w.Countries[n])
	}
	return out
}

// Names returns, in board order, the names of countries matching keep.
func (w *World) Names(keep func(c *Country) bool) []string {
	var out []string
	for _, n := range w.Order {
		if keep == nil || keep(w.Countries[n]) {
			out = append(out, n)
		}
	}
	return out
}

// ResolveCountry matches user input to a country name (exact or unique prefix).
func (w *World) ResolveCountry(input string) (*Country, error) {
	name, err := MatchName(input, w.Order)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			return nil, errors.Wrapf(ErrUnknownCountry, "%q", input)
		}
		return nil, err
	}
	return w.Countries[name], nil
}

// Logf appends a line to the resolution log shown to the player.
func (w *World) Logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	w.History = append(w.History, line)
	w.logger.Debug("resolve", zap.String("line", line))
}

func (w *World) HasMarker(m string) bool { return contains(w.Markers, m) }

func (w *World) AddMarker(m string) {
	if !w.HasMarker(m) {
		w.Markers = append(w.Markers, m)
	}
}

func (w *World) RemoveMarker(m string) bool {
	for i, x := range w.Markers {
		if x == m {
			w.Markers = append(w.Markers[:i], w.Markers[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) IsLapsing(l string) bool { return contains(w.Lapsing, l) }

// AddLapsing allows duplicates: two Oil Price Spikes stack.
func (w *World) AddLapsing(l string) { w.Lapsing = append(w.Lapsing, l) }

func (w *World) lapsingCount(l string) int {
	n := 0
	for _, x := range w.Lapsing {
		if x == l {
			n++
		}
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (w *World) ChangePrestige(delta int) {
	w.Prestige = clampInt(w.Prestige+delta, 1, MaxPrestige)
}

func (w *World) ChangeFunding(delta int) {
	w.Funding = clampInt(w.Funding+delta, 1, MaxFunding)
}

func (w *World) SetFunding(v int) { w.Funding = clampInt(v, 1, MaxFunding) }

// violate records the first invariant failure of a command.
func (w *World) violate(format string, args ...any) {
	err := errors.Wrapf(ErrInvariantViolation, format, args...)
	w.logger.Warn("invariant violation", zap.Error(err))
	if w.violation == nil {
		w.violation = err
	}
}

// Err returns the first invariant failure recorded since the last ResetErr.
func (w *World) Err() error { return w.violation }

func (w *World) ResetErr() { w.violation = nil }

// takeCells removes n cells from the pool; asking for more than it holds is a violation.
func (w *World) takeCells(n int) int {
	if n < 0 {
		w.violate("take %d cells", n)
		return 0
	}
	if n > w.CellPool {
		w.violate("take %d cells from pool of %d", n, w.CellPool)
		n = w.CellPool
	}
	w.CellPool -= n
	return n
}

func (w *World) returnCells(n int) {
	if w.CellPool+n > MaxCells {
		w.violate("return %d cells to pool of %d", n, w.CellPool)
		n = MaxCells - w.CellPool
	}
	w.CellPool += n
}

func (w *World) takeTroops(n int) int {
	if n > w.TroopPool {
		w.violate("take %d troops from pool of %d", n, w.TroopPool)
		n = w.TroopPool
	}
	w.TroopPool -= n
	return n
}

func (w *World) returnTroops(n int) {
	if w.TroopPool+n > MaxTroops {
		w.violate("return %d troops to pool of %d", n, w.TroopPool)
		n = MaxTroops - w.TroopPool
	}
	w.TroopPool += n
}

// changeTroops adjusts stationed troops. Dropping below zero strips NATO.
func (w *World) changeTroops(c *Country, delta int) {
	c.Troops += delta
	if c.Troops < 0 {
		c.RemoveMarker(MarkerNATO)
		c.Troops = 0
	}
}

// Snapshot serializes the full game, dice position included.
func (w *World) Snapshot() ([]byte, error) {
	if s, ok := w.roller.(*Stream); ok {
		st := s.State()
		w.Dice = &st
	}
	return json.Marshal(w)
}

// RestoreWorld rebuilds a game from Snapshot output. A stored dice position wins over
// WithRoller only when no roller option is supplied.
func RestoreWorld(data []byte, opts ...Option) (*World, error) {
	w := &World{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, errors.Wrap(err, "decode world")
	}
	if len(w.Countries) == 0 || len(w.Order) != len(w.Countries) {
		return nil, errors.Wrap(ErrInvariantViolation, "snapshot has no board")
	}
	if w.Dice != nil {
		w.roller = RestoreStream(*w.Dice)
	}
	w.apply(opts)
	return w, nil
}

// MustCountry is for card code naming fixed map spaces; unknown names panic.
func (w *World) MustCountry(name string) *Country { return w.get(name) }

// Die rolls one d6 from the game roller.
func (w *World) Die() int { return w.roller.Die() }

// Pick chooses one entry at random, "" for an empty list.
func (w *World) Pick(list []string) string { return pick(w.roller, list) }

// Shuffle reorders list in place with the game roller.
func (w *World) Shuffle(list []string) { shuffleStrings(w.roller, list) }
