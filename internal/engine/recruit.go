package engine

// RecruitOptions carries the card-specific twists on a recruit operation.
type RecruitOptions struct {
	Override  int  // recruit number replacing the country's own (Adam Gadahn)
	Videos    bool // Jihadist Videos: ignores funding, failures leave cadre
	Madrassas bool // Madrassas: ignores funding and GTMO, may target Poor countries
}

// cellsPerSuccess is 2 from Attractive ideology on.
func (w *World) cellsPerSuccess() int {
	if w.Ideology >= IdeologyAttractive {
		return 2
	}
	return 1
}

// RecruitChoice picks the AI's recruit target, "" when no country qualifies.
func (w *World) RecruitChoice(ops int, madrassas bool) string {
	var list []scored
	for _, c := range w.All() {
		cells := c.TotalCells(true)
		if !(cells > 0 || c.Cadre || (madrassas && c.Governance > GovFair)) {
			continue
		}
		var s int
		switch {
		case c.RegimeChange && c.TroopCount()-cells >= 5:
			s = 100000000
		case c.Governance == GovIslamistRule && cells < 2*ops:
			s = 10000000
		case c.Governance != GovIslamistRule && !c.RegimeChange:
			if c.Recruit > 0 {
				s = c.Recruit * 1000000
			} else {
				s = int(c.Governance) * 1000000
			}
		default:
			continue
		}
		if c.Besieged {
			s += 100000
		}
		s += 1000 * (c.TroopCount() + cells)
		s += 100 * w.CountryResources(c.Name)
		s += tiebreak(w.roller)
		if s > 0 {
			list = append(list, scored{name: c.Name, score: s, cells: cells})
		}
	}
	if len(list) == 0 {
		return ""
	}
	sortScored(list)
	return list[0].name
}

// ExecuteRecruit recruits into a country with pre-rolled dice and returns the unused ops.
func (w *World) ExecuteRecruit(name string, ops int, rolls []int, opt RecruitOptions) int {
	c := w.get(name)
	w.Logf("* Recruit to %s", name)
	ignoreFunding := opt.Madrassas || opt.Videos
	per := w.cellsPerSuccess()

	if c.RegimeChange || c.Governance == GovIslamistRule {
		if c.RegimeChange {
			w.Logf("Recruit to Regime Change country automatically successful.")
		} else {
			w.Logf("Recruit to Islamic Rule country automatically successful.")
		}
		moved := w.takeCells(min(ops*per, w.CellsAvailable(ignoreFunding)))
		c.Sleepers += moved
		if moved == 0 && opt.Videos {
			c.Cadre = true
			w.Logf("No cells available to recruit. Cadre added.")
			return ops - 1
		}
		c.Cadre = false
		w.Logf("%d sleeper cells recruited to %s.", moved, name)
		if per == 2 {
			return ops - (moved+1)/2
		}
		return ops - moved
	}

	remaining := ops
	if w.CellsAvailable(opt.Videos) <= 0 && remaining > 0 {
		c.Cadre = true
		w.Logf("No cells available to recruit. Cadre added.")
		return ops - 1
	}
	for i := 0; w.CellsAvailable(ignoreFunding) > 0 && remaining > 0 && i < len(rolls); i++ {
		need := int(c.Governance)
		switch {
		case opt.Override > 0:
			need = opt.Override
		case c.Recruit > 0:
			need = c.Recruit
		}
		if rolls[i] <= need {
			moved := w.takeCells(min(w.CellsAvailable(ignoreFunding), per))
			c.Sleepers += moved
			c.Cadre = false
			w.Logf("Roll successful, %d sleeper cell(s) recruited.", moved)
		} else {
			w.Logf("Roll failed.")
			if opt.Videos {
				c.Cadre = true
				w.Logf("Cadre added.")
			}
		}
		remaining--
	}
	return remaining
}

// HandleRecruit runs the AI recruit operation and returns the unused ops.
func (w *World) HandleRecruit(ops int, madrassas bool) int {
	name := w.RecruitChoice(ops, madrassas)
	if name == "" {
		w.Logf("* No countries qualify to Recruit.")
		return ops
	}
	cells := w.CellPool
	if !madrassas {
		if w.IsLapsing(LapsingGTMO) {
			w.Logf("* Cannot Recruit due to GTMO.")
			return ops
		}
		cells = w.CellsAvailable(false)
	}
	if cells <= 0 {
		w.Logf("* No cells available to Recruit.")
		return ops
	}
	return w.ExecuteRecruit(name, ops, rollDice(w.roller, ops), RecruitOptions{Madrassas: madrassas})
}
