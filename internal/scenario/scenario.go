// Package scenario loads the four starting setups and applies one to a fresh board.
package scenario

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// CountrySetup is the starting state of one country. Zero values leave the map default.
type CountrySetup struct {
	Governance   string   `yaml:"governance"`
	Alignment    string   `yaml:"alignment"`
	Posture      string   `yaml:"posture"`
	Sleepers     int      `yaml:"sleepers"`
	Actives      int      `yaml:"actives"`
	Troops       int      `yaml:"troops"`
	Cadre        bool     `yaml:"cadre"`
	Aid          bool     `yaml:"aid"`
	Besieged     bool     `yaml:"besieged"`
	RegimeChange bool     `yaml:"regime_change"`
	Markers      []string `yaml:"markers"`
}

type Scenario struct {
	Number       int                     `yaml:"number"`
	Name         string                  `yaml:"name"`
	StartYear    int                     `yaml:"start_year"`
	Prestige     int                     `yaml:"prestige"`
	Funding      int                     `yaml:"funding"`
	Troops       int                     `yaml:"troops"`
	Cells        int                     `yaml:"cells"`
	USPosture    string                  `yaml:"us_posture"`
	Markers      []string                `yaml:"markers"`
	RandomCells  int                     `yaml:"random_cells"`
	TestSchengen bool                    `yaml:"test_schengen"`
	RemoveCards  []string                `yaml:"remove_cards"`
	Countries    map[string]CountrySetup `yaml:"countries"`
}

// All parses the embedded setups, ordered by number.
func All() ([]Scenario, error) {
	var list []Scenario
	if err := yaml.Unmarshal(scenariosYAML, &list); err != nil {
		return nil, errors.Wrap(err, "parse scenarios")
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

// Get returns scenario n (1-4).
func Get(n int) (Scenario, error) {
	list, err := All()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range list {
		if s.Number == n {
			return s, nil
		}
	}
	return Scenario{}, errors.Errorf("unknown scenario %d", n)
}

var governanceNames = map[string]engine.Governance{
	"good":          engine.GovGood,
	"fair":          engine.GovFair,
	"poor":          engine.GovPoor,
	"islamist rule": engine.GovIslamistRule,
}

func parseGovernance(s string) (engine.Governance, error) {
	g, ok := governanceNames[strings.ToLower(s)]
	if !ok {
		return engine.GovUntested, errors.Errorf("unknown governance %q", s)
	}
	return g, nil
}

// Apply lays the setup out on w. w should be a fresh board.
func (s Scenario) Apply(w *engine.World) error {
	w.Scenario = s.Number
	w.StartYear = s.StartYear
	w.Turn = 1
	w.Prestige = s.Prestige
	w.Funding = s.Funding
	w.TroopPool = s.Troops
	w.CellPool = s.Cells
	w.MustCountry(engine.UnitedStates).Posture = engine.Posture(s.USPosture)

	names := make([]string, 0, len(s.Countries))
	for n := range s.Countries {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := applyCountry(w, name, s.Countries[name]); err != nil {
			return errors.Wrapf(err, "scenario %d", s.Number)
		}
	}
	for _, m := range s.Markers {
		w.AddMarker(m)
	}
	w.Logf("Scenario: %s", s.Name)
	w.Logf("Jihadist Ideology: %s", w.Ideology)

	if s.RandomCells > 0 {
		order := append([]string(nil), w.Order...)
		w.Shuffle(order)
		for _, n := range order[:s.RandomCells] {
			w.TestCountry(n)
			w.PlaceCells(n, 1)
		}
	}
	if s.TestSchengen {
		for _, c := range w.All() {
			if c.Schengen {
				w.TestCountry(c.Name)
			}
		}
	}
	if len(s.RemoveCards) > 0 {
		w.Logf("Remove the cards %s from the game.", strings.Join(s.RemoveCards, ", "))
	}
	return w.CheckInvariants()
}

func applyCountry(w *engine.World, name string, cs CountrySetup) error {
	c, err := w.Country(name)
	if err != nil {
		return err
	}
	if cs.Governance != "" {
		g, err := parseGovernance(cs.Governance)
		if err != nil {
			return errors.Wrap(err, name)
		}
		c.Governance = g
	}
	if cs.Alignment != "" {
		a := engine.Alignment(cs.Alignment)
		if !a.Validate() {
			return errors.Errorf("%s: unknown alignment %q", name, cs.Alignment)
		}
		c.Alignment = a
	}
	if cs.Posture != "" {
		p := engine.Posture(cs.Posture)
		if !p.Validate() {
			return errors.Errorf("%s: unknown posture %q", name, cs.Posture)
		}
		c.Posture = p
	}
	c.Sleepers = cs.Sleepers
	c.Actives = cs.Actives
	c.Troops = cs.Troops
	c.Cadre = cs.Cadre
	c.Aid = cs.Aid
	c.Besieged = cs.Besieged
	c.RegimeChange = cs.RegimeChange
	for _, m := range cs.Markers {
		c.AddMarker(m)
	}
	return nil
}

// New builds a board for scenario n at the given ideology.
func New(n int, ideology engine.Ideology, opts ...engine.Option) (*engine.World, error) {
	if !ideology.Validate() {
		return nil, errors.Errorf("ideology %d out of range 1-5", int(ideology))
	}
	s, err := Get(n)
	if err != nil {
		return nil, err
	}
	w := engine.NewWorld(opts...)
	w.Ideology = ideology
	if err := s.Apply(w); err != nil {
		return nil, err
	}
	return w, nil
}
