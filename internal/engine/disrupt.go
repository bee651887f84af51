package engine

import "github.com/pkg/errors"

// CanDisrupt reports whether the US may disrupt in name.
func (w *World) CanDisrupt(name string) error {
	c, err := w.Country(name)
	if err != nil {
		return err
	}
	if c.TotalCells(false) == 0 && !c.Cadre {
		return errors.Wrapf(ErrInvalidTarget, "no cells or cadre in %s", name)
	}
	if c.HasMarker(MarkerFATA) && !c.RegimeChange {
		return errors.Wrap(ErrInvalidTarget, "no disrupt allowed due to FATA")
	}
	if c.TroopCount() > 0 || c.NonMuslim() || c.Alignment == AlignAlly {
		return nil
	}
	return errors.Wrapf(ErrInvalidTarget, "%s needs troops or an Ally to disrupt", name)
}

// DisruptTargets lists every country CanDisrupt accepts.
func (w *World) DisruptTargets() []string {
	return w.Names(func(c *Country) bool { return w.CanDisrupt(c.Name) == nil })
}

func (w *World) disruptBudget(c *Country) int {
	if w.HasMarker(MarkerAlAnbar) && (c.Name == Iraq || c.Name == Syria) {
		return 1
	}
	if c.TroopCount() >= 2 || c.Posture == PostureHard {
		return min(2, c.TotalCells(false))
	}
	return 1
}

// disruptOptions lists the active/sleeper combinations a budget can hit.
func disruptOptions(budget, actives, sleepers int) []string {
	if budget == 1 {
		return []string{"a", "s"}
	}
	var opts []string
	if actives >= 2 {
		opts = append(opts, "aa")
	}
	opts = append(opts, "as")
	if sleepers >= 2 {
		opts = append(opts, "ss")
	}
	return opts
}

// removeDisrupted sends one active cell to the pool. Sadr cannot be disrupted.
func (w *World) removeDisrupted(c *Country) {
	if c.Actives == 0 {
		w.violate("no active cell to disrupt in %s", c.Name)
		return
	}
	c.Actives--
	w.returnCells(1)
}

// Disrupt removes or reveals cells in name. Mixed cells beyond the budget are chosen
// through the decider: "a" removes an active cell, "s" activates a sleeper.
func (w *World) Disrupt(name string) error {
	if err := w.CanDisrupt(name); err != nil {
		return err
	}
	c := w.get(name)
	budget := w.disruptBudget(c)
	cells := c.TotalCells(false)

	if cells == 0 {
		if !w.HasMarker(MarkerAlAnbar) {
			c.Cadre = false
			w.Logf("* Cadre removed in %s", name)
		}
		return nil
	}

	switch {
	case cells <= budget:
		w.Logf("* %d cell(s) disrupted in %s.", cells, name)
		budget -= w.activateSleepers(c, c.Sleepers)
		for ; budget > 0 && c.Actives > 0; budget-- {
			w.removeDisrupted(c)
		}
	case c.Actives == 0:
		w.activateSleepers(c, budget)
		w.Logf("* %d cell(s) disrupted in %s.", budget, name)
	case c.Sleepers == 0:
		for i := 0; i < budget; i++ {
			w.removeDisrupted(c)
		}
		w.Logf("* %d cell(s) disrupted in %s.", budget, name)
	default:
		choice, err := w.decider.AskOption("Disrupt (a)ctive or (s)leeper cells", disruptOptions(budget, c.Actives, c.Sleepers))
		if err != nil {
			return err
		}
		for _, ch := range choice {
			if ch == 'a' {
				w.removeDisrupted(c)
			} else {
				w.activateSleepers(c, 1)
			}
		}
		w.Logf("* %d cell(s) disrupted in %s.", budget, name)
	}
	if c.TotalCells(false) == 0 && !c.Cadre {
		c.Cadre = true
		w.Logf("Cadre added in %s.", name)
	}
	if c.TroopCount() >= 2 {
		w.ChangePrestige(1)
		w.Logf("US Prestige now %d.", w.Prestige)
	}
	return nil
}
