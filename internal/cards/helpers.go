package cards

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/engine"
)

var (
	done     = engine.EventOutcome{Handled: true}
	declined = engine.EventOutcome{}
)

// chooseCountry asks the player for one of candidates; a single candidate is taken without asking.
func chooseCountry(w *engine.World, prompt string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", errors.Wrap(engine.ErrInvalidTarget, "no eligible country")
	case 1:
		return candidates[0], nil
	}
	name, err := w.Decider().AskCountry(prompt, candidates)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if c == name {
			return name, nil
		}
	}
	return "", errors.Wrapf(engine.ErrInvalidTarget, "%s is not a legal choice", name)
}

func askPosture(w *engine.World, prompt string) (engine.Posture, error) {
	opt, err := w.Decider().AskOption(prompt, []string{string(engine.PostureHard), string(engine.PostureSoft)})
	if err != nil {
		return engine.PostureUntested, err
	}
	return engine.Posture(opt), nil
}

func setPosture(w *engine.World, name string, p engine.Posture) {
	w.MustCountry(name).Posture = p
	w.Logf("%s Posture now %s.", name, p)
}

func setAlignment(w *engine.World, name string, a engine.Alignment) {
	w.MustCountry(name).Alignment = a
	w.Logf("%s Alignment now %s.", name, a)
}

func logCountry(w *engine.World, name string) { w.Logf("%s", w.CountryLine(name)) }

// nonUSNonMuslim lists the countries whose posture an event may set.
func nonUSNonMuslim(w *engine.World) []string {
	return w.Names(func(c *engine.Country) bool { return c.NonMuslim() && c.Name != engine.UnitedStates })
}

func schengen(w *engine.World) []string {
	return w.Names(func(c *engine.Country) bool { return c.Schengen })
}

func regimeChangeCountries(w *engine.World) []string {
	return w.Names(func(c *engine.Country) bool { return c.RegimeChange })
}

// nextCardOps asks for the next Jihadist card; zero means the hand is empty.
func nextCardOps(w *engine.World) (int, error) {
	n, err := w.Decider().AskNumber("Enter the number of the next Jihadist card (0 if none)", 0, len(table))
	if err != nil || n == 0 {
		return 0, err
	}
	return table[n-1].Ops, nil
}

// hambaliTargets is Indonesia/Malaysia and its neighbours holding a cell while Hard or Ally.
func hambaliTargets(w *engine.World) []string {
	im := w.MustCountry(engine.IndonesiaMalaysa)
	possible := append([]string{im.Name}, im.Links...)
	var out []string
	for _, n := range possible {
		c := w.MustCountry(n)
		if c.TotalCells(true) == 0 {
			continue
		}
		if (c.NonMuslim() && c.Posture == engine.PostureHard) || (!c.NonMuslim() && c.Alignment == engine.AlignAlly) {
			out = append(out, n)
		}
	}
	return out
}

// heu resolves the WMD cards: a roll at or under governance gains a WMD, otherwise a cell is lost.
func heu(w *engine.World, name string, roll int) {
	if roll <= int(w.MustCountry(name).Governance) {
		w.Logf("Add a WMD to available Plots.")
		return
	}
	w.RemoveCell(name)
}

// usElection sets the US posture from the roll, then prestige follows the GWOT penalty.
func usElection(w *engine.World, postureRoll int) {
	p := engine.PostureHard
	if postureRoll <= 4 {
		p = engine.PostureSoft
	}
	setPosture(w, engine.UnitedStates, p)
	if w.GWOTPenalty() == 0 {
		w.ChangePrestige(1)
	} else {
		w.ChangePrestige(-1)
	}
}

// nearestByGovernance returns the Good, else Fair, Muslim country closest to from; ties go by name.
func nearestByGovernance(w *engine.World, from string) string {
	for _, gov := range []engine.Governance{engine.GovGood, engine.GovFair} {
		list := w.Names(func(c *engine.Country) bool { return c.Culture.Jihadable() && c.Governance == gov })
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(i, j int) bool {
			di, dj := w.CountryDistance(from, list[i]), w.CountryDistance(from, list[j])
			if di != dj {
				return di < dj
			}
			return list[i] < list[j]
		})
		return list[0]
	}
	return ""
}

// disruptChoice lets the player disrupt in any legal country.
func disruptChoice(w *engine.World) error {
	target, err := chooseCountry(w, "Disrupt in which country?", w.DisruptTargets())
	if err != nil {
		return err
	}
	return w.Disrupt(target)
}
