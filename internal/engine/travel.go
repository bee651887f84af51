package engine

// TravelMode selects the destination rules and whether the move needs a roll.
type TravelMode int

const (
	TravelStandard TravelMode = iota
	TravelRadicalization
	TravelSchengenVisas
	TravelCleanOperatives
)

func (w *World) biometricsBlocks(name string, mode TravelMode) bool {
	return mode != TravelRadicalization && w.IsLapsing(LapsingBiometrics) && !w.AdjacentCountryHasCell(name)
}

// TravelDestinations walks the five destination boxes until it has one per op.
func (w *World) TravelDestinations(ops int, mode TravelMode) []string {
	var dests []string
	radical := mode == TravelRadicalization
	add := func(candidates []string, byPriority bool) bool {
		switch {
		case len(candidates) == 1:
			dests = append(dests, candidates[0])
		case len(candidates) > 1 && byPriority:
			dests = append(dests, w.bestByResources(candidates))
		case len(candidates) > 1:
			dests = append(dests, pick(w.roller, candidates))
		}
		return len(dests) == ops
	}

	// Troubled regimes: regime change, besieged or aid.
	if !radical {
		box := w.Names(func(c *Country) bool {
			return c.Governance != GovIslamistRule && (c.Besieged || c.RegimeChange || c.Aid) && !w.biometricsBlocks(c.Name, mode)
		})
		if add(box, true) {
			return dests
		}
	}

	// Poor countries two cells short of major jihad.
	surplus := w.majorJihadSurplus()
	box := w.Names(func(c *Country) bool {
		return c.Governance == GovPoor && c.TotalCells(true)+2-c.TroopCount() >= surplus && !w.biometricsBlocks(c.Name, mode)
	})
	if add(box, true) {
		return dests
	}

	// Good or Fair Muslim countries next to a cell.
	box = w.Names(func(c *Country) bool {
		return (c.Governance == GovGood || c.Governance == GovFair) && c.Culture.Jihadable() && w.AdjacentCountryHasCell(c.Name)
	})
	if add(box, true) {
		return dests
	}

	// Non-Muslim countries the US posture makes attractive.
	usHard := w.get(UnitedStates).Posture == PostureHard
	box = w.Names(func(c *Country) bool {
		if !c.NonMuslim() || w.biometricsBlocks(c.Name, mode) {
			return false
		}
		if usHard {
			return c.Posture == PostureUntested
		}
		return c.Name != UnitedStates && c.Posture == PostureSoft
	})
	if add(box, false) {
		return dests
	}

	// Anywhere.
	pool := w.Order
	if !radical && w.IsLapsing(LapsingBiometrics) {
		pool = w.Names(func(c *Country) bool { return w.AdjacentCountryHasCell(c.Name) })
		if len(pool) == 0 {
			return dests
		}
	}
	for len(dests) < ops {
		dests = append(dests, pick(w.roller, pool))
	}
	return dests
}

// SchengenVisasDestinations picks the two Schengen countries cells fly to.
func (w *World) SchengenVisasDestinations() []string {
	usHard := w.get(UnitedStates).Posture == PostureHard
	candidates := w.Names(func(c *Country) bool {
		if !c.Schengen {
			return false
		}
		if usHard {
			return c.Posture == PostureUntested
		}
		return c.Posture == PostureSoft
	})
	switch len(candidates) {
	case 1:
		return []string{candidates[0], candidates[0]}
	case 0:
		candidates = w.Names(func(c *Country) bool { return c.Schengen })
	}
	shuffleStrings(w.roller, candidates)
	return []string{candidates[0], candidates[1]}
}

// chooseSource breaks ties between eligible sources for destination slot i.
func (w *World) chooseSource(candidates []string, i int, dests []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}
	var active []string
	for _, n := range candidates {
		if w.get(n).Actives > 0 {
			active = append(active, n)
		}
	}
	if len(active) > 0 {
		return pick(w.roller, active)
	}
	var elsewhere []string
	for _, n := range candidates {
		other := false
		for j, d := range dests {
			if j != i && d == n {
				other = true
				break
			}
		}
		if !other {
			elsewhere = append(elsewhere, n)
		}
	}
	if len(elsewhere) > 0 {
		return pick(w.roller, elsewhere)
	}
	return pick(w.roller, candidates)
}

// TravelSources picks a source for each destination; it may return fewer than asked.
func (w *World) TravelSources(dests []string, ops int, mode TravelMode) []string {
	var sources []string
	for i, dest := range dests {
		spare := func(c *Country) int {
			used := 0
			for _, s := range sources {
				if s == c.Name {
					used++
				}
			}
			return c.Sleepers + c.Actives - used
		}
		reachable := func(c *Country) bool {
			return mode == TravelRadicalization || !w.IsLapsing(LapsingBiometrics) || w.IsAdjacent(c.Name, dest)
		}
		boxes := []func(c *Country) bool{
			func(c *Country) bool { return c.Governance == GovIslamistRule && spare(c) > ops },
			func(c *Country) bool { return c.RegimeChange && spare(c) > c.TroopCount() },
			func(c *Country) bool { return c.Name != dest && w.IsAdjacent(dest, c.Name) && spare(c) > 0 },
			func(c *Country) bool { return spare(c) > 0 },
		}
		for _, box := range boxes {
			candidates := w.Names(func(c *Country) bool { return box(c) && reachable(c) })
			if len(candidates) > 0 {
				sources = append(sources, w.chooseSource(candidates, i, dests))
				break
			}
		}
	}
	return sources
}

// HandleTravel moves cells and returns the unused ops.
func (w *World) HandleTravel(ops int, mode TravelMode) int {
	var dests []string
	switch mode {
	case TravelSchengenVisas:
		dests = w.SchengenVisasDestinations()
	case TravelCleanOperatives:
		dests = []string{UnitedStates, UnitedStates}
	default:
		dests = w.TravelDestinations(ops, mode)
	}
	sources := w.TravelSources(dests, ops, mode)
	if mode == TravelStandard {
		w.Logf("* Cells Travel")
	}
	for i, from := range sources {
		to := dests[i]
		w.Logf("->Travel from %s to %s.", from, to)
		success := false
		switch {
		case mode == TravelRadicalization:
			success = true
			w.Logf("Travel by Radicalization is automatically successful.")
		case mode == TravelSchengenVisas:
			success = true
			w.Logf("Travel by Schengen Visas is automatically successful.")
		case mode == TravelCleanOperatives:
			success = true
			w.Logf("Travel by Clean Operatives is automatically successful.")
		case from == to:
			success = true
			w.Logf("Travel within country automatically successful.")
		case w.IsAdjacent(from, to) && !w.IsLapsing(LapsingBiometrics):
			success = true
			w.Logf("Travel to adjacent country automatically successful.")
		case w.IsAdjacent(from, to):
			success = w.roller.Die() <= int(w.get(to).Governance)
			if success {
				w.Logf("Travel roll needed due to Biometrics - roll successful.")
			} else {
				w.Logf("Travel roll needed due to Biometrics - roll failed, cell to funding track.")
			}
		default:
			// An untested destination is rolled against governance 0 and tested afterwards.
			success = w.roller.Die() <= int(w.get(to).Governance)
			if success {
				w.Logf("Travel roll successful.")
			} else {
				w.Logf("Travel roll failed, cell to funding track.")
			}
		}
		w.TestCountry(to)
		src := w.get(from)
		if src.Actives > 0 {
			src.Actives--
		} else {
			src.Sleepers--
		}
		if success {
			w.get(to).Sleepers++
		} else {
			w.returnCells(1)
		}
	}
	return ops - len(sources)
}
