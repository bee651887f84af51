package engine

// PlotVariant marks the events that place plots without rolling.
type PlotVariant int

const (
	PlotStandard PlotVariant = iota
	PlotMartyrdom
	PlotDanishCartoons
	PlotKSM
)

// govBuckets splits names into Good, Fair and Poor lists.
type govBuckets struct{ good, fair, poor []string }

func (w *World) bucketsOf(keep func(c *Country) bool) govBuckets {
	var b govBuckets
	for _, c := range w.All() {
		if !keep(c) {
			continue
		}
		switch c.Governance {
		case GovGood:
			b.good = append(b.good, c.Name)
		case GovFair:
			b.fair = append(b.fair, c.Name)
		case GovPoor:
			b.poor = append(b.poor, c.Name)
		}
	}
	return b
}

// PlacePlots spends rolls[pos:] in one country and returns the new roll position.
func (w *World) PlacePlots(name string, pos int, rolls []int, variant PlotVariant) int {
	c := w.get(name)
	if c.TotalCells(true) == 0 {
		return pos
	}
	switch variant {
	case PlotMartyrdom:
		w.RemoveCell(name)
		w.Logf("Place 2 available plots in %s.", name)
		c.Plots += 2
		return 1
	case PlotDanishCartoons:
		if w.NumIslamistRule() > 0 {
			w.Logf("Place any available plot in %s.", name)
		} else {
			w.Logf("Place a Plot 1 in %s.", name)
		}
		c.Plots++
		return 1
	case PlotKSM:
		w.Logf("Place any available plot in %s.", name)
		c.Plots++
		return 1
	}
	attempts := min(c.TotalCells(true), len(rolls)-pos)
	w.Logf("--> %d plot attempt(s) in %s.", attempts, name)
	successes := 0
	for _, r := range rolls[pos : pos+attempts] {
		if r <= int(c.Governance) {
			successes++
		}
	}
	w.Logf("Plot rolls: %d Successes rolled, %d Failures rolled", successes, attempts-successes)
	w.activateSleepers(c, attempts-c.ActiveCount())
	c.Plots += successes
	w.Logf("%d Plot(s) placed in %s.", successes, name)
	if w.HasMarker(MarkerAbuSayyaf) && name == Philippines && c.TroopCount() <= c.TotalCells(false) && successes > 0 {
		w.Logf("Prestige loss due to Abu Sayyaf.")
		w.ChangePrestige(-successes)
	}
	if w.HasMarker(MarkerNEST) && name == UnitedStates {
		w.Logf("NEST in play. If jihadists have WMD, all plots in the US placed face up.")
	}
	return pos + attempts
}

func (w *World) plotInBucket(targets []string, ops, pos int, rolls []int, variant PlotVariant) int {
	targets = append([]string(nil), targets...)
	shuffleStrings(w.roller, targets)
	for i := 0; pos < ops && i < len(targets); i++ {
		pos = w.PlacePlots(targets[i], pos, rolls, variant)
	}
	return pos
}

// plotByGovernance visits Fair then Good for operations, Good then Fair for events, Poor last.
func (w *World) plotByGovernance(b govBuckets, ops, pos int, rolls []int, isOps bool, variant PlotVariant) int {
	first, second := b.good, b.fair
	if isOps {
		first, second = b.fair, b.good
	}
	for _, bucket := range [][]string{first, second, b.poor} {
		pos = w.plotInBucket(bucket, ops, pos, rolls, variant)
		if pos == ops {
			return pos
		}
	}
	return pos
}

// ExecutePlot places plots through the priority cascade and returns unused ops.
func (w *World) ExecutePlot(ops int, isOps bool, rolls []int, variant PlotVariant) int {
	if variant == PlotStandard {
		w.Logf("* Jihadists Plotting")
	}
	pos := w.PlacePlots(UnitedStates, 0, rolls, variant)
	if pos == ops {
		return 0
	}
	if w.Prestige >= 4 {
		ph := w.get(Philippines)
		if w.HasMarker(MarkerAbuSayyaf) && ph.TotalCells(true) >= ph.TroopCount() {
			if pos = w.PlacePlots(Philippines, pos, rolls, variant); pos == ops {
				return 0
			}
		}
		troops := w.bucketsOf(func(c *Country) bool { return c.TroopCount() > 0 })
		if pos = w.plotByGovernance(troops, ops, pos, rolls, isOps, variant); pos == ops {
			return 0
		}
	}
	if w.GWOTPenalty() >= 0 {
		us := w.get(UnitedStates).Posture
		same := w.bucketsOf(func(c *Country) bool { return c.Name != UnitedStates && c.Posture == us })
		if pos = w.plotByGovernance(same, ops, pos, rolls, isOps, variant); pos == ops {
			return 0
		}
	}
	aid := w.bucketsOf(func(c *Country) bool { return c.Aid })
	if pos = w.plotByGovernance(aid, ops, pos, rolls, isOps, variant); pos == ops {
		return 0
	}
	if w.Funding < MaxFunding {
		nonMuslim := w.bucketsOf(func(c *Country) bool { return c.Name != UnitedStates && c.NonMuslim() })
		if pos = w.plotByGovernance(nonMuslim, ops, pos, rolls, isOps, variant); pos == ops {
			return 0
		}
		muslim := w.bucketsOf(func(c *Country) bool { return !c.NonMuslim() })
		if pos = w.plotByGovernance(muslim, ops, pos, rolls, isOps, variant); pos == ops {
			return 0
		}
	}
	return len(rolls) - pos
}

// HandlePlot rolls one die per op and plots; it returns the unused ops.
func (w *World) HandlePlot(ops int, isOps bool) int {
	return w.ExecutePlot(ops, isOps, rollDice(w.roller, ops), PlotStandard)
}

// Radicalize spends leftover ops on the four radicalization boxes.
func (w *World) Radicalize(ops int) {
	w.Logf("* Radicalization with %d ops.", ops)
	remaining := ops
	if remaining > 0 && w.CellPool > 0 {
		name := pick(w.roller, w.Order)
		w.get(name).Sleepers += w.takeCells(1)
		w.Logf("--> Cell placed in %s.", name)
		w.TestCountry(name)
		w.get(name).Cadre = false
		remaining--
	}
	if remaining > 0 && w.CellPool < MaxCells {
		w.HandleTravel(1, TravelRadicalization)
		remaining--
	}
	if remaining > 0 && w.Funding < MaxFunding {
		possible := w.Names(func(c *Country) bool {
			return c.Governance != GovIslamistRule && c.TotalCells(true) > 0
		})
		if len(possible) > 0 {
			name := pick(w.roller, possible)
			w.TestCountry(name)
			w.get(name).Plots++
			w.Logf("--> Plot placed in %s.", name)
			remaining--
		}
	}
	for remaining > 0 {
		possible := w.Names(func(c *Country) bool {
			return c.Culture.Jihadable() && (c.Governance == GovGood || c.Governance == GovFair)
		})
		if len(possible) == 0 {
			w.Logf("--> No remaining Good or Fair countries.")
			break
		}
		name := pick(w.roller, possible)
		w.get(name).Governance++
		w.Logf("--> Governance in %s worsens to %s.", name, w.get(name).Governance)
		remaining--
	}
}
