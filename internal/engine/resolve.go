package engine

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PlotType is the face value of a revealed plot marker: 1, 2, 3 or WMD.
type PlotType int

const PlotWMD PlotType = 4

func (p PlotType) String() string {
	if p == PlotWMD {
		return "WMD"
	}
	return strconv.Itoa(int(p))
}

// ParsePlotType reads "1", "2", "3" or "WMD" (any case).
func ParsePlotType(s string) (PlotType, error) {
	v, err := MatchName(s, []string{"1", "2", "3", "WMD"})
	if err != nil {
		return 0, err
	}
	if v == "WMD" {
		return PlotWMD, nil
	}
	n, _ := strconv.Atoi(v)
	return PlotType(n), nil
}

// PlotRolls carries every die a plot resolution may need.
type PlotRolls struct {
	Posture          int
	Prestige         [3]int
	Schengen         []string
	SchengenPostures []int
	Governance       []int
}

// rollPlot draws the dice resolvePlot will consume for one plot in name.
func (w *World) rollPlot(name string, typ PlotType) PlotRolls {
	c := w.get(name)
	var r PlotRolls
	switch {
	case name == UnitedStates:
		if typ != PlotWMD {
			r.Posture = w.roller.Die()
			r.Prestige = w.RollPrestige()
		}
	case !c.NonMuslim():
		if name != Iran {
			n := int(typ)
			if typ == PlotWMD {
				n = 3
			}
			r.Governance = rollDice(w.roller, n)
		}
	default:
		r.Posture = w.roller.Die()
		if c.Schengen {
			others := w.Names(func(o *Country) bool { return o.Schengen && o.Name != name })
			shuffleStrings(w.roller, others)
			r.Schengen = others[:2]
			r.SchengenPostures = rollDice(w.roller, 2)
		}
	}
	return r
}

func postureFor(roll int) Posture {
	if roll <= 4 {
		return PostureSoft
	}
	return PostureHard
}

// plotHitsTroops costs prestige where troops are present; a WMD drops it to 1.
func (w *World) plotHitsTroops(c *Country, typ PlotType) {
	if c.TroopCount() == 0 {
		return
	}
	if typ == PlotWMD {
		w.Prestige = 1
	} else {
		w.ChangePrestige(-1)
	}
	w.Logf("Troops present so US Prestige now %d", w.Prestige)
}

// ResolvePlot applies one unblocked plot in name and removes it from the board.
func (w *World) ResolvePlot(name string, typ PlotType, r PlotRolls, backlash bool) {
	c := w.get(name)
	w.Logf("--> Resolve \"%s\" plot in %s", typ, name)
	w.logger.Info("plot resolved", zap.String("country", name), zap.Stringer("type", typ), zap.Bool("backlash", backlash))
	switch {
	case name == UnitedStates:
		if typ == PlotWMD {
			w.GameOver = true
			w.Logf("== GAME OVER - JIHADIST AUTOMATIC VICTORY ==")
			break
		}
		w.Funding = MaxFunding
		w.Logf("Jihadist Funding now %d", w.Funding)
		w.PrestigeSwing(r.Prestige)
		w.Logf("US Prestige now %d", w.Prestige)
		c.Posture = postureFor(r.Posture)
		w.Logf("US Posture now %s", c.Posture)

	case !c.NonMuslim():
		switch {
		case !backlash && c.Governance == GovGood:
			w.ChangeFunding(2)
			w.Logf("Jihadist Funding now %d", w.Funding)
		case !backlash:
			w.ChangeFunding(1)
			w.Logf("Jihadist Funding now %d", w.Funding)
		case typ == PlotWMD:
			w.Funding = 1
			w.Logf("BACKLASH: Jihadist Funding now %d", w.Funding)
		default:
			drop := 1
			if c.Governance == GovGood {
				drop = 2
			}
			w.ChangeFunding(-drop)
			w.Logf("BACKLASH: Jihadist Funding now %d", w.Funding)
		}
		w.plotHitsTroops(c, typ)
		if name == Iran {
			break
		}
		successes := 0
		for _, roll := range r.Governance {
			if roll <= int(c.Governance) {
				successes++
			}
		}
		w.Logf("Governance rolls: %d Successes rolled, %d Failures rolled", successes, len(r.Governance)-successes)
		if c.Aid && successes > 0 {
			c.Aid = false
			w.Logf("Aid removed.")
		}
		if c.Governance == GovPoor && successes > 0 {
			w.Logf("Governance stays at %s", c.Governance)
		}
		for ; successes > 0 && c.Governance < GovPoor; successes-- {
			c.Governance++
			w.Logf("Governance to %s", c.Governance)
		}

	default:
		if name == Israel && w.RemoveMarker(MarkerAbbas) {
			w.Logf("Abbas no longer in play.")
		}
		if name == India && w.RemoveMarker(MarkerIndoPakistaniTalks) {
			w.Logf("Indo-Pakistani Talks no longer in play.")
		}
		switch {
		case typ == PlotWMD:
			w.Funding = MaxFunding
		case c.Governance == GovGood:
			w.ChangeFunding(int(typ) * 2)
		default:
			w.ChangeFunding(int(typ))
		}
		w.Logf("Jihadist Funding now %d", w.Funding)
		if name != Israel {
			c.Posture = postureFor(r.Posture)
			w.Logf("%s Posture now %s", name, c.Posture)
		}
		w.plotHitsTroops(c, typ)
		if c.Schengen {
			for i, s := range r.Schengen {
				if i >= len(r.SchengenPostures) {
					break
				}
				w.get(s).Posture = postureFor(r.SchengenPostures[i])
				w.Logf("%s Posture now %s", s, w.get(s).Posture)
			}
		}
	}
	c.Plots = max(c.Plots-1, 0)
}

// ResolvePlots walks the board resolving every plot. The decider supplies each plot's
// face value and, while Backlash is in play, whether it was chosen with backlash.
func (w *World) ResolvePlots() error {
	found := false
	for _, c := range w.All() {
		for c.Plots > 0 {
			if !found {
				w.Logf("[[ Resolving Plots ]]")
				found = true
			}
			ans, err := w.decider.AskOption("Enter Plot type from "+c.Name, []string{"1", "2", "3", "WMD"})
			if err != nil {
				return errors.Wrap(err, "plot type")
			}
			typ, err := ParsePlotType(ans)
			if err != nil {
				return err
			}
			backlash := false
			if w.BacklashInPlay && !c.NonMuslim() {
				if backlash, err = w.decider.AskYesNo("Was this plot selected with backlash"); err != nil {
					return errors.Wrap(err, "backlash")
				}
			}
			w.ResolvePlot(c.Name, typ, w.rollPlot(c.Name, typ), backlash)
		}
	}
	if !found {
		w.Logf("[[ No unblocked plots to resolve ]]")
	}
	w.BacklashInPlay = false
	return nil
}
