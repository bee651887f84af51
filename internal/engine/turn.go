package engine

import "go.uber.org/zap"

// Draws is how many cards each side takes for the coming turn.
type Draws struct {
	Jihadist int
	US       int
}

// Summary is the resources tally printed at the end of each turn.
type Summary struct {
	GoodResources     int
	IslamistResources int
	GoodFair          int
	PoorIslamist      int
}

// Summarize tallies Muslim countries by governance.
func (w *World) Summarize() Summary {
	var s Summary
	for _, c := range w.All() {
		if c.Culture != CultureSunni && c.Culture != CultureShiaMix {
			continue
		}
		switch c.Governance {
		case GovGood:
			s.GoodFair++
			s.GoodResources += w.CountryResources(c.Name)
		case GovFair:
			s.GoodFair++
		case GovPoor:
			s.PoorIslamist++
		case GovIslamistRule:
			s.PoorIslamist++
			s.IslamistResources += w.CountryResources(c.Name)
		}
	}
	return s
}

// Year is the calendar year of the current turn.
func (w *World) Year() int { return w.StartYear + w.Turn - 1 }

// DrawCounts derives hand sizes from funding and the troop pool.
func (w *World) DrawCounts() Draws {
	var d Draws
	switch {
	case w.Funding >= 7:
		d.Jihadist = 9
	case w.Funding >= 4:
		d.Jihadist = 8
	default:
		d.Jihadist = 7
	}
	switch {
	case w.TroopPool >= 10:
		d.US = 9
	case w.TroopPool >= 5:
		d.US = 8
	default:
		d.US = 7
	}
	return d
}

// EndTurn runs the end of turn sequence and advances the turn counter.
func (w *World) EndTurn() Draws {
	w.Logf("* End of Turn.")
	if w.HasMarker(MarkerPirates) && (w.get(Somalia).Governance == GovIslamistRule || w.get(Yemen).Governance == GovIslamistRule) {
		w.Logf("No funding drop due to Pirates.")
	} else {
		w.ChangeFunding(-1)
		w.Logf("Jihadist Funding now %d", w.Funding)
	}
	if w.NumIslamistRule() > 0 {
		w.ChangePrestige(-1)
		w.Logf("Islamic Rule - US Prestige now %d", w.Prestige)
	}
	pos := w.WorldPosture()
	us := w.get(UnitedStates).Posture
	if (us == PostureHard && pos >= 3) || (us == PostureSoft && pos <= -3) {
		w.ChangePrestige(1)
		w.Logf("GWOT World posture is 3 and matches US - US Prestige now %d", w.Prestige)
	}
	for _, l := range w.Lapsing {
		w.Logf("%s has Lapsed.", l)
	}
	w.Lapsing = nil

	s := w.Summarize()
	w.Logf("---")
	w.Logf("Good Resources   : %d", s.GoodResources)
	w.Logf("Islamic Resources: %d", s.IslamistResources)
	w.Logf("---")
	w.Logf("Good/Fair Countries   : %d", s.GoodFair)
	w.Logf("Poor/Islamic Countries: %d", s.PoorIslamist)
	w.Turn++

	d := w.DrawCounts()
	w.Logf("---")
	w.Logf("Jihadist draws %d cards.", d.Jihadist)
	w.Logf("US draws %d cards.", d.US)
	w.Logf("---")
	w.Logf("[[ %d (Turn %d) ]]", w.Year(), w.Turn)
	w.logger.Info("turn ended", zap.Int("turn", w.Turn), zap.Int("funding", w.Funding), zap.Int("prestige", w.Prestige))
	return d
}
