package engine

import (
	"sort"

	"go.uber.org/zap"
)

// JihadAllocation is the number of jihad rolls spent in one country.
type JihadAllocation struct {
	Country string
	Rolls   int
}

// MinorJihadVariant widens the candidate list for the Abu Ghurayb and Al Jazeera events.
type MinorJihadVariant int

const (
	MinorJihadStandard MinorJihadVariant = iota
	MinorJihadAbuGhurayb
	MinorJihadAlJazeera
)

// majorJihadSurplus is how many more cells than troops a country needs for major jihad.
func (w *World) majorJihadSurplus() int {
	if w.Ideology >= IdeologyPotent {
		return 3
	}
	return 5
}

// MajorJihadPossible lists the countries where ops rolls could start a major jihad.
func (w *World) MajorJihadPossible(ops int) []string {
	surplus := w.majorJihadSurplus()
	return w.Names(func(c *Country) bool {
		if !c.Culture.Jihadable() || c.Governance == GovIslamistRule {
			return false
		}
		if c.Name == Pakistan && w.HasMarker(MarkerBenazirBhutto) {
			return false
		}
		if c.TotalCells(true)-c.TroopCount() < surplus {
			return false
		}
		need := 2 + int(GovPoor-c.Governance)
		if c.Besieged {
			need--
		}
		return ops >= need
	})
}

// bestByResources prefers Pakistan, then a random pick among the richest candidates.
func (w *World) bestByResources(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	if contains(candidates, Pakistan) {
		return Pakistan
	}
	top := -1
	var best []string
	for _, n := range candidates {
		r := w.CountryResources(n)
		switch {
		case r > top:
			top = r
			best = []string{n}
		case r == top:
			best = append(best, n)
		}
	}
	return pick(w.roller, best)
}

// MajorJihadChoice is the AI's major jihad target, or "" when none qualifies.
func (w *World) MajorJihadChoice(ops int) string {
	return w.bestByResources(w.MajorJihadPossible(ops))
}

type scored struct {
	name  string
	score int
	cells int
}

// sortScored orders by score, then cells, then name, all descending.
func sortScored(list []scored) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.cells != b.cells {
			return a.cells > b.cells
		}
		return a.name > b.name
	})
}

// MinorJihadCandidates returns candidate countries in AI priority order.
func (w *World) MinorJihadCandidates(variant MinorJihadVariant) []string {
	possible := w.Names(func(c *Country) bool {
		switch variant {
		case MinorJihadAbuGhurayb:
			return c.Alignment == AlignAlly && c.Governance != GovIslamistRule
		case MinorJihadAlJazeera:
			return (c.Name == SaudiArabia || w.IsAdjacent(c.Name, SaudiArabia)) && c.TroopCount() > 0
		}
		if !c.Culture.Jihadable() || (c.Governance != GovGood && c.Governance != GovFair) || c.TotalCells(true) == 0 {
			return false
		}
		return !(c.Name == Pakistan && w.HasMarker(MarkerBenazirBhutto))
	})
	list := make([]scored, 0, len(possible))
	for _, n := range possible {
		c := w.get(n)
		s := 1000000
		if c.Governance == GovGood {
			s = 2000000
		}
		if n == Pakistan {
			s += 100000
		}
		if c.Aid {
			s += 10000
		}
		if c.Besieged {
			s += 1000
		}
		s += w.CountryResources(n) * 100
		s += tiebreak(w.roller)
		list = append(list, scored{name: n, score: s, cells: c.TotalCells(true)})
	}
	sortScored(list)
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.name
	}
	return out
}

// MinorJihadChoice spreads ops over the candidates, each taking as many rolls as it has cells.
func (w *World) MinorJihadChoice(ops int) []JihadAllocation {
	var out []JihadAllocation
	remaining := ops
	for _, n := range w.MinorJihadCandidates(MinorJihadStandard) {
		rolls := min(remaining, w.get(n).TotalCells(true))
		out = append(out, JihadAllocation{Country: n, Rolls: rolls})
		remaining -= rolls
		if remaining <= 0 {
			break
		}
	}
	return out
}

// ExecuteJihad resolves a jihad in one country with the given dice.
func (w *World) ExecuteJihad(name string, rolls []int) {
	c := w.get(name)
	successes, failures := 0, 0
	for _, r := range rolls {
		if r <= int(c.Governance) {
			successes++
		} else {
			failures++
		}
	}
	major := contains(w.MajorJihadPossible(len(rolls)), name)
	w.logger.Debug("jihad", zap.String("country", name), zap.Ints("rolls", rolls), zap.Bool("major", major))
	w.Logf("Jihad operation. %d Successes rolled, %d Failures rolled", successes, failures)
	if major {
		w.Logf("* Major Jihad attempt in %s", name)
		w.activateSleepers(c, c.Sleepers)
		w.Logf("All cells go Active")
		regress := (failures >= 2 && !c.Besieged) || (failures == 3 && c.Besieged)
		if regress && len(rolls) == 3 && c.Governance == GovPoor {
			w.Logf("Major Jihad Failure")
			c.Besieged = true
			w.Logf("Besieged Regime")
			c.Alignment = c.Alignment.Better()
			w.Logf("Alignment %s", c.Alignment)
		}
	} else {
		w.Logf("* Minor Jihad attempt in %s", name)
		if n := w.activateSleepers(c, len(rolls)-c.ActiveCount()); n > 0 {
			w.Logf("%d cell(s) go Active", n)
		}
	}
	for successes > 0 && c.Governance < GovPoor {
		c.Governance++
		successes--
		c.Aid = false
		w.Logf("Governance to %s", c.Governance)
	}
	if major && (successes >= 2 || (c.Besieged && successes >= 1)) {
		w.Logf("Islamic Revolution in %s", name)
		c.Governance = GovIslamistRule
		c.Alignment = AlignAdversary
		c.RegimeChange = false
		c.Besieged = false
		c.Aid = false
		w.SetFunding(w.Funding + w.CountryResources(name))
		w.Logf("Funding now %d", w.Funding)
		if c.TroopCount() > 0 {
			w.Prestige = 1
			w.Logf("Troops present so US Prestige now 1")
		}
	}
	if w.Ideology <= IdeologyInfectious {
		for i := 0; i < failures; i++ {
			if c.ActiveCount() > 0 {
				w.RemoveActiveCell(name)
			} else if c.Sleepers > 0 {
				c.Sleepers--
				w.returnCells(1)
				w.Logf("Sleeper cell Removed to Funding Track")
			}
		}
	}
}

// HandleJihad rolls one die per cell up to ops and returns the unused ops.
func (w *World) HandleJihad(name string, ops int) int {
	n := min(w.get(name).TotalCells(true), ops)
	w.ExecuteJihad(name, rollDice(w.roller, n))
	return ops - n
}

// HandleMinorJihad runs each allocation and returns the ops left over.
func (w *World) HandleMinorJihad(plan []JihadAllocation, ops int) int {
	remaining := ops
	for _, a := range plan {
		w.HandleJihad(a.Country, a.Rolls)
		remaining -= a.Rolls
	}
	return remaining
}
