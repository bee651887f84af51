package engine

// TestCountry reveals an untested country with a die roll. Tested countries are untouched.
func (w *World) TestCountry(name string) {
	c := w.get(name)
	if c.NonMuslim() {
		if c.Posture == PostureUntested {
			if w.roller.Die() <= 4 {
				c.Posture = PostureSoft
			} else {
				c.Posture = PostureHard
			}
			w.Logf("%s tested, posture %s", c.Name, c.Posture)
		}
		return
	}
	if c.Governance == GovUntested {
		if w.roller.Die() <= 4 {
			c.Governance = GovPoor
		} else {
			c.Governance = GovFair
		}
		c.Alignment = AlignNeutral
		w.Logf("%s tested, governance %s", c.Name, c.Governance)
	}
}

// PlaceCells tests the country and moves up to n sleepers onto it from the pool.
func (w *World) PlaceCells(name string, n int) int {
	if w.CellPool <= 0 {
		w.Logf("No cells are on the Funding Track.")
		return 0
	}
	w.TestCountry(name)
	c := w.get(name)
	moved := w.takeCells(min(n, w.CellPool))
	c.Sleepers += moved
	if moved > 0 {
		c.Cadre = false
	}
	w.Logf("%d Sleeper Cell(s) placed in %s", moved, name)
	return moved
}

// RemoveCell takes one cell off a country: Sadr first, then a sleeper, then an active.
func (w *World) RemoveCell(name string) {
	c := w.get(name)
	if c.TotalCells(false) == 0 && !c.HasMarker(MarkerSadr) {
		return
	}
	switch {
	case c.HasMarker(MarkerSadr):
		c.RemoveMarker(MarkerSadr)
		w.Logf("Sadr removed from %s", name)
	case c.Sleepers > 0:
		c.Sleepers--
		w.returnCells(1)
		w.Logf("Sleeper Cell removed from %s", name)
	default:
		c.Actives--
		w.returnCells(1)
		w.Logf("Active Cell removed from %s", name)
	}
	if c.TotalCells(true) == 0 {
		c.Cadre = true
		w.Logf("Cadre added in %s", name)
	}
}

// RemoveActiveCell sends an active cell to the pool, falling back to Sadr.
func (w *World) RemoveActiveCell(name string) {
	c := w.get(name)
	switch {
	case c.Actives > 0:
		c.Actives--
		w.returnCells(1)
		w.Logf("Active cell removed from %s to the Funding Track", name)
	case c.HasMarker(MarkerSadr):
		c.RemoveMarker(MarkerSadr)
		w.Logf("Sadr removed from %s", name)
	default:
		w.violate("no active cell to remove in %s", name)
	}
}

// RemoveAllCells returns every cell in a country to the pool, leaving a cadre.
func (w *World) RemoveAllCells(name string) {
	c := w.get(name)
	n := c.Sleepers + c.Actives
	c.Sleepers, c.Actives = 0, 0
	w.returnCells(n)
	if c.RemoveMarker(MarkerSadr) {
		n++
	}
	if n > 0 {
		c.Cadre = true
		w.Logf("%d cell(s) removed from %s, cadre added", n, name)
	}
}

// activateSleepers flips up to n sleepers to active and returns how many flipped.
func (w *World) activateSleepers(c *Country, n int) int {
	n = clampInt(n, 0, c.Sleepers)
	c.Sleepers -= n
	c.Actives += n
	return n
}

// ImproveGovernance moves one step toward Good; reaching Good clears the troubles markers.
func (w *World) ImproveGovernance(name string) {
	c := w.get(name)
	c.Governance--
	if c.Governance <= GovGood {
		c.Governance = GovGood
		c.RegimeChange = false
		c.Aid = false
		c.Besieged = false
	}
}

// WorsenGovernance moves one step toward Poor. Islamist Rule only comes from revolution.
func (w *World) WorsenGovernance(name string) {
	c := w.get(name)
	c.Governance++
	if c.Governance >= GovPoor {
		c.Governance = GovPoor
	}
}

// CellsAvailable is the part of the pool the Jihadist may use at the current funding.
func (w *World) CellsAvailable(ignoreFunding bool) int {
	if ignoreFunding {
		return w.CellPool
	}
	n := w.CellPool
	switch {
	case w.Funding <= 3:
		n -= 10
	case w.Funding <= 6:
		n -= 5
	}
	return max(n, 0)
}

// CountryResources adds one per lapsing Oil Price Spike to oil producers.
func (w *World) CountryResources(name string) int {
	c := w.get(name)
	r := c.Resources
	if c.Oil {
		r += w.lapsingCount(LapsingOilSpike)
	}
	return r
}

// CellsOnMap counts every cell on the board, Sadr excluded.
func (w *World) CellsOnMap() int {
	n := 0
	for _, c := range w.Countries {
		n += c.Sleepers + c.Actives
	}
	return n
}

// TroopsOnMap counts stationed troops; NATO's bonus has no pool stock.
func (w *World) TroopsOnMap() int {
	n := 0
	for _, c := range w.Countries {
		n += c.Troops
	}
	return n
}

func (w *World) NumIslamistRule() int {
	return len(w.Names(func(c *Country) bool { return c.Governance == GovIslamistRule }))
}

func (w *World) NumRegimeChange() int {
	return len(w.Names(func(c *Country) bool { return c.RegimeChange }))
}

func (w *World) NumAdversary() int {
	return len(w.Names(func(c *Country) bool { return c.Alignment == AlignAdversary }))
}

func (w *World) NumBesieged() int {
	return len(w.Names(func(c *Country) bool { return c.Besieged }))
}
