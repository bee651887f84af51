package ui

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirjenkins/lwotai/internal/ai"
	"github.com/sirjenkins/lwotai/internal/engine"
)

func (sh *Shell) disrupt(context.Context) (*ai.Result, error) {
	targets := sh.w.DisruptTargets()
	if len(targets) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no countries to disrupt")
	}
	name, err := sh.decider.AskCountry("Disrupt in what country?", targets)
	if err != nil {
		return nil, err
	}
	return nil, sh.w.Disrupt(name)
}

func (sh *Shell) warOfIdeas(context.Context) (*ai.Result, error) {
	targets := sh.w.Names(func(c *engine.Country) bool { return sh.w.CanWarOfIdeas(c.Name) == nil })
	name, err := sh.decider.AskCountry("War of Ideas in what country?", targets)
	if err != nil {
		return nil, err
	}
	roll, err := sh.decider.AskDieRoll("Enter die roll")
	if err != nil {
		return nil, err
	}
	return nil, sh.w.WarOfIdeas(name, roll)
}

func (sh *Shell) alert(context.Context) (*ai.Result, error) {
	targets := sh.w.Names(func(c *engine.Country) bool { return c.Plots > 0 })
	if len(targets) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no plots to alert")
	}
	name, err := sh.decider.AskCountry("Alert in what country?", targets)
	if err != nil {
		return nil, err
	}
	return nil, sh.w.Alert(name)
}

// troopSources is the track (when it has troops) plus every country with stationed troops.
func (sh *Shell) troopSources(keep func(c *engine.Country) bool) []string {
	var out []string
	if sh.w.TroopPool > 0 {
		out = append(out, engine.TroopTrack)
	}
	return append(out, sh.w.Names(func(c *engine.Country) bool { return c.Troops > 0 && (keep == nil || keep(c)) })...)
}

func (sh *Shell) available(from string) int {
	if from == engine.TroopTrack {
		return sh.w.TroopPool
	}
	return sh.w.MustCountry(from).Troops
}

func (sh *Shell) regimeChange(context.Context) (*ai.Result, error) {
	if sh.w.MustCountry(engine.UnitedStates).Posture == engine.PostureSoft {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no Regime Change with US Posture Soft")
	}
	targets := sh.w.RegimeChangeTargets()
	if len(targets) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no countries for Regime Change")
	}
	target, err := sh.decider.AskCountry("Regime Change in what country?", targets)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, s := range sh.troopSources(nil) {
		if sh.available(s) > 6 && sh.w.MovableTroops(s) >= 6 {
			sources = append(sources, s)
		}
	}
	if len(sources) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no country or track can send 6 troops")
	}
	from, err := sh.decider.AskCountry("Deploy troops from", sources)
	if err != nil {
		return nil, err
	}
	n, err := sh.decider.AskNumber("How many troops?", 6, sh.w.MovableTroops(from))
	if err != nil {
		return nil, err
	}
	govRoll := sh.w.Die()
	return nil, sh.w.RegimeChange(target, from, n, govRoll, sh.w.RollPrestige())
}

func (sh *Shell) withdraw(context.Context) (*ai.Result, error) {
	if sh.w.MustCountry(engine.UnitedStates).Posture == engine.PostureHard {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no Withdrawal with US Posture Hard")
	}
	sources := sh.w.Names(func(c *engine.Country) bool { return c.RegimeChange && c.Troops > 0 })
	if len(sources) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no Regime Change country has troops")
	}
	from, err := sh.decider.AskCountry("Withdraw troops from", sources)
	if err != nil {
		return nil, err
	}
	to, err := sh.decider.AskCountry("Deploy withdrawn troops to", sh.destinations(from))
	if err != nil {
		return nil, err
	}
	n, err := sh.decider.AskNumber("How many troops?", 1, sh.w.MustCountry(from).Troops)
	if err != nil {
		return nil, err
	}
	return nil, sh.w.Withdraw(from, to, n, sh.w.RollPrestige())
}

// destinations is the track plus every Ally, and the Philippines while Abu Sayyaf is in play.
func (sh *Shell) destinations(from string) []string {
	out := []string{engine.TroopTrack}
	return append(out, sh.w.Names(func(c *engine.Country) bool {
		if c.Name == from {
			return false
		}
		return c.Alignment == engine.AlignAlly || (c.Name == engine.Philippines && sh.w.HasMarker(engine.MarkerAbuSayyaf))
	})...)
}

func (sh *Shell) deploy(context.Context) (*ai.Result, error) {
	sources := sh.troopSources(func(c *engine.Country) bool { return sh.w.MovableTroops(c.Name) > 0 })
	if len(sources) == 0 {
		return nil, errors.Wrap(engine.ErrInvalidTarget, "no troops to deploy")
	}
	from, err := sh.decider.AskCountry("Deploy troops from", sources)
	if err != nil {
		return nil, err
	}
	to, err := sh.decider.AskCountry("Deploy troops to", sh.destinations(from))
	if err != nil {
		return nil, err
	}
	n, err := sh.decider.AskNumber("How many troops?", 1, sh.w.MovableTroops(from))
	if err != nil {
		return nil, err
	}
	return nil, sh.w.Deploy(from, to, n)
}

// usCard resolves a card the US player plays. A playable US or Unassociated event is
// offered to the player; a Jihadist event that the Jihadist could play fires anyway.
func (sh *Shell) usCard(n int) error {
	ev, err := sh.cards.Lookup(n)
	if err != nil {
		return err
	}
	w := sh.w
	w.Logf("[[ US plays %d: %s ]]", n, ev.Name())
	if ev.Type() == engine.CardJihadist {
		ok, err := ev.Playable(engine.SideJihadist, w)
		if err != nil {
			return err
		}
		if ok {
			w.Logf("Jihadist event is playable. Playing event.")
			_, err := ev.Apply(engine.SideJihadist, w)
			return err
		}
		w.Logf("Jihadist event is not playable. Use the %d Ops for US operations.", ev.Ops())
		return nil
	}
	ok, err := ev.Playable(engine.SideUS, w)
	if err != nil {
		return err
	}
	if ok {
		play, err := sh.decider.AskYesNo("Do you want to play the event?")
		if err != nil {
			return err
		}
		if play {
			out, err := ev.Apply(engine.SideUS, w)
			if err != nil {
				return err
			}
			if out.Handled {
				return nil
			}
			w.Logf("The event has no effect the program can resolve; apply it on the board.")
			return nil
		}
	} else {
		w.Logf("The event is not playable.")
	}
	w.Logf("Use the %d Ops for US operations.", ev.Ops())
	return nil
}
