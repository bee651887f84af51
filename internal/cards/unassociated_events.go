package cards

import (
	"sort"

	"github.com/sirjenkins/lwotai/internal/engine"
)

// unassociatedEvents branch on the side playing them where the card text does.
var unassociatedEvents = map[int]eventFunc{
	96:  danishCartoons,
	97:  fatwa,
	98:  gazaWithdrawal,
	99:  hamasElected,
	100: hizbUtTahrir,
	101: kosovo,
	102: formerSovietUnion,
	103: hizballah,
	104: iran,
	105: iran,
	106: jayshAlMahdi,
	107: kurdistan,
	108: musharraf,
	109: toraBora,
	110: zarqawi,
	111: zawahiri,
	112: binLadin,
	113: darfur,
	114: gtmo,
	115: hambali,
	116: ksm,
	117: oilPriceSpike,
	118: oilPriceSpike,
	119: saleh,
	120: usElectionCard,
}

func danishCartoons(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	p, err := askPosture(w, "Select Scandinavia's Posture")
	if err != nil {
		return declined, err
	}
	setPosture(w, engine.Scandinavia, p)
	possible := w.Names(func(c *engine.Country) bool {
		return c.Culture.Jihadable() && c.Governance != engine.GovIslamistRule
	})
	target := w.Pick(possible)
	w.TestCountry(target)
	if w.NumIslamistRule() > 0 {
		w.Logf("Place any available plot in %s.", target)
	} else {
		w.Logf("Place a Plot 1 in %s.", target)
	}
	w.MustCountry(target).Plots++
	return done, nil
}

// fatwa hands the Jihadist side back to the flowchart as a major jihad attempt.
func fatwa(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	w.Logf("Trade random cards.")
	if side == engine.SideUS {
		w.Logf("Conduct a 1-value operation (Use commands: alert, deploy, disrupt, reassessment, regime, withdraw, or woi).")
		return done, nil
	}
	return engine.EventOutcome{Handled: true, UsedAsOperations: true}, nil
}

func gazaWithdrawal(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideUS {
		w.ChangeFunding(-1)
	} else {
		w.PlaceCells(engine.Israel, 1)
	}
	return done, nil
}

func hamasElected(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("US selects and discards one card.")
	w.ChangePrestige(-1)
	w.ChangeFunding(-1)
	return done, nil
}

func hizbUtTahrir(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	switch {
	case w.TroopPool >= 10:
		w.ChangeFunding(-2)
	case w.TroopPool < 5:
		w.ChangeFunding(2)
	}
	return done, nil
}

func kosovo(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.ChangePrestige(1)
	w.TestCountry(engine.Serbia)
	setPosture(w, engine.Serbia, w.MustCountry(engine.UnitedStates).Posture.Opposite())
	return done, nil
}

func formerSovietUnion(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	ca := w.MustCountry(engine.CentralAsia)
	if w.Die() <= 4 {
		ca.Governance = engine.GovPoor
	} else {
		ca.Governance = engine.GovFair
	}
	ca.Alignment = engine.AlignNeutral
	w.Logf("%s tested, governance %s", ca.Name, ca.Governance)
	return done, nil
}

func hizballah(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideJihadist {
		w.TestCountry(engine.Lebanon)
		lb := w.MustCountry(engine.Lebanon)
		lb.Governance = engine.GovPoor
		w.Logf("Lebanon governance now Poor.")
		lb.Alignment = engine.AlignNeutral
		w.Logf("Lebanon alignment now Neutral.")
		return done, nil
	}
	possible := w.Names(func(c *engine.Country) bool {
		d := w.CountryDistance(engine.Lebanon, c.Name)
		return d >= 1 && d <= 3 && c.Culture == engine.CultureShiaMix && c.TotalCells(true) > 0
	})
	if len(possible) == 0 {
		w.Logf("No Shia-Mix countries with cells within 3 countries of Lebanon.")
		return done, nil
	}
	target, err := chooseCountry(w, "Remove a cell from what Shia-Mix country within 3 countries of Lebanon?", possible)
	if err != nil {
		return declined, err
	}
	w.RemoveCell(target)
	logCountry(w, target)
	return done, nil
}

// worsenByJihadRolls rolls n dice against the target; each success worsens it, stopping at Poor.
func worsenByJihadRolls(w *engine.World, target string, n int) {
	for i := 0; i < n; i++ {
		roll := w.Die()
		w.Logf("Rolled: %d", roll)
		if roll <= int(w.MustCountry(target).Governance) {
			if w.MustCountry(target).Governance < engine.GovPoor {
				w.WorsenGovernance(target)
				w.Logf("Governance worsened in %s.", target)
				logCountry(w, target)
			}
		} else {
			w.Logf("Roll failed.  No change to governance in %s.", target)
		}
	}
}

func shiaMix(w *engine.World) []string {
	return w.Names(func(c *engine.Country) bool { return c.Culture == engine.CultureShiaMix })
}

func iran(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideJihadist {
		tested := w.Pick(shiaMix(w))
		w.TestCountry(tested)
		target := nearestByGovernance(w, tested)
		if target == "" {
			w.Logf("No Good or Fair countries to Jihad in.")
			return done, nil
		}
		w.Logf("%s selected for jihad rolls.", target)
		worsenByJihadRolls(w, target, 2)
		return done, nil
	}
	picked, err := chooseCountry(w, "Choose a Shia-Mix country to test. You can then remove a cell from there or Iran", shiaMix(w))
	if err != nil {
		return declined, err
	}
	w.TestCountry(picked)
	target := picked
	if w.MustCountry(engine.Iran).TotalCells(true) > 0 {
		target, err = chooseCountry(w, "Remove a cell from "+picked+" or Iran", []string{picked, engine.Iran})
		if err != nil {
			return declined, err
		}
	}
	w.RemoveCell(target)
	logCountry(w, target)
	return done, nil
}

func jayshAlMahdi(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideJihadist {
		tested := w.Pick(shiaMix(w))
		w.TestCountry(tested)
		target := nearestByGovernance(w, tested)
		if target == "" {
			w.Logf("No Good or Fair countries to Jihad in.")
			return done, nil
		}
		w.WorsenGovernance(target)
		w.Logf("Governance worsened in %s.", target)
		logCountry(w, target)
		return done, nil
	}
	possible := w.Names(func(c *engine.Country) bool {
		return c.Culture == engine.CultureShiaMix && c.TroopCount() > 0 && c.TotalCells(false) > 0
	})
	if len(possible) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a Shia-Mix country with cells and troops", possible)
	if err != nil {
		return declined, err
	}
	w.RemoveCell(target)
	w.RemoveCell(target)
	logCountry(w, target)
	return done, nil
}

// kurdistan aids Iraq for the US; the Jihadist worsens the better scoring of Turkey and Iraq.
func kurdistan(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideUS {
		w.TestCountry(engine.Iraq)
		w.MustCountry(engine.Iraq).Aid = true
		w.Logf("Aid added to Iraq.")
		logCountry(w, engine.Iraq)
		return done, nil
	}
	w.TestCountry(engine.Turkey)
	var possible []string
	if w.MustCountry(engine.Turkey).Governance < engine.GovPoor {
		possible = append(possible, engine.Turkey)
	}
	if iq := w.MustCountry(engine.Iraq); iq.Governance != engine.GovUntested && iq.Governance < engine.GovPoor {
		possible = append(possible, engine.Iraq)
	}
	if len(possible) == 0 {
		w.Logf("Turkey and Iraq cannot have governance worsened.")
		return done, nil
	}
	type score struct {
		name  string
		score int
		cells int
	}
	list := make([]score, 0, len(possible))
	for _, n := range possible {
		c := w.MustCountry(n)
		s := w.CountryResources(n)*100 + w.Roller().Intn(99) + 1
		if c.Aid {
			s += 10000
		}
		if c.Besieged {
			s += 1000
		}
		list = append(list, score{name: n, score: s, cells: c.TotalCells(true)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		if list[i].cells != list[j].cells {
			return list[i].cells > list[j].cells
		}
		return list[i].name > list[j].name
	})
	target := list[0].name
	w.WorsenGovernance(target)
	w.Logf("Governance worsened in %s.", target)
	logCountry(w, target)
	return done, nil
}

func musharraf(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.RemoveCell(engine.Pakistan)
	pk := w.MustCountry(engine.Pakistan)
	pk.Governance = engine.GovPoor
	pk.Alignment = engine.AlignAlly
	w.Logf("Pakistan now Poor Ally.")
	logCountry(w, engine.Pakistan)
	return done, nil
}

func toraBora(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	possible := w.Names(func(c *engine.Country) bool { return c.RegimeChange && c.TotalCells(false) >= 2 })
	if len(possible) == 0 {
		return declined, nil
	}
	var target string
	if side == engine.SideUS {
		w.Logf("US draws one card.")
		var err error
		if target, err = chooseCountry(w, "Choose a Regime Change country with at least 2 cells", possible); err != nil {
			return declined, err
		}
	} else {
		w.Logf("Jihadist draws one card.")
		target = w.Pick(possible)
	}
	w.RemoveCell(target)
	w.RemoveCell(target)
	w.PrestigeSwing(w.RollPrestige())
	return done, nil
}

func zarqawi(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideUS {
		w.ChangePrestige(3)
		w.Logf("Remove card from game.")
		return done, nil
	}
	var possible []string
	for _, n := range []string{engine.Iraq, engine.Syria, engine.Lebanon, engine.Jordan} {
		if w.MustCountry(n).TroopCount() > 0 {
			possible = append(possible, n)
		}
	}
	if len(possible) == 0 {
		return declined, nil
	}
	target := w.Pick(possible)
	w.PlaceCells(target, 3)
	w.MustCountry(target).Plots++
	w.Logf("Add a Plot 2 to %s.", target)
	logCountry(w, target)
	return done, nil
}

func zawahiri(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	switch {
	case side == engine.SideUS:
		w.ChangeFunding(-2)
	case w.NumIslamistRule() > 0:
		w.ChangePrestige(-3)
	default:
		w.ChangePrestige(-1)
	}
	return done, nil
}

func binLadin(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	switch {
	case side == engine.SideUS:
		w.ChangeFunding(-4)
		w.ChangePrestige(1)
		w.Logf("Remove card from game.")
	case w.NumIslamistRule() > 0:
		w.ChangePrestige(-4)
	default:
		w.ChangePrestige(-2)
	}
	return done, nil
}

func darfur(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Sudan)
	sd := w.MustCountry(engine.Sudan)
	if w.Prestige >= 7 {
		sd.Aid = true
		w.Logf("Aid added to Sudan.")
		if sd.Alignment != engine.AlignAlly {
			sd.Alignment = sd.Alignment.Better()
			w.Logf("Sudan alignment improved.")
		}
	} else {
		sd.Besieged = true
		w.Logf("Sudan now Besieged Regime.")
		if sd.Alignment != engine.AlignAdversary {
			sd.Alignment = sd.Alignment.Worse()
			w.Logf("Sudan alignment worsened.")
		}
	}
	logCountry(w, engine.Sudan)
	return done, nil
}

func gtmo(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddLapsing(engine.LapsingGTMO)
	w.Logf("GTMO in play. No recruit operations or Detainee Release the rest of this turn.")
	w.PrestigeSwing(w.RollPrestige())
	return done, nil
}

func hambali(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	targets := hambaliTargets(w)
	if len(targets) == 0 {
		return declined, nil
	}
	if side == engine.SideJihadist {
		target := w.Pick(targets)
		w.MustCountry(target).Plots++
		w.Logf("Place a plot in %s.", target)
		return done, nil
	}
	target, err := chooseCountry(w, "Choose Indonesia or an adjacent country that has a cell and is Ally or Hard", targets)
	if err != nil {
		return declined, err
	}
	w.RemoveCell(target)
	w.Logf("US draw 2 cards.")
	return done, nil
}

func ksm(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	if side == engine.SideJihadist {
		if w.ExecutePlot(1, false, []int{1}, engine.PlotKSM) == 1 {
			w.Logf("No plots could be placed.")
		}
		return done, nil
	}
	for _, c := range w.All() {
		if c.Plots > 0 && (c.Alignment == engine.AlignAlly || c.NonMuslim()) {
			w.Logf("%d Plots removed from %s.", c.Plots, c.Name)
			c.Plots = 0
		}
	}
	w.Logf("US draws 2 cards.")
	return done, nil
}

func oilPriceSpike(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	w.AddLapsing(engine.LapsingOilSpike)
	w.Logf("Oil Price Spike in play. Add +1 to the resources of each Oil Exporter country for the turn.")
	if side == engine.SideUS {
		w.Logf("Select, reveal, and draw a card other than Oil Price Spike from the discard pile or a box.")
		return done, nil
	}
	found, err := w.Decider().AskYesNo("Are there any Jihadist event cards in the discard pile?")
	if err != nil {
		return done, err
	}
	if found {
		w.Logf("Draw from the Discard Pile randomly among the highest-value Jihadist-associated event cards. Put the card on top of the Jihadist hand.")
	}
	return done, nil
}

func saleh(w *engine.World, side engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Yemen)
	ye := w.MustCountry(engine.Yemen)
	if side == engine.SideUS {
		if ye.Governance != engine.GovIslamistRule {
			ye.Alignment = ye.Alignment.Better()
			w.Logf("Yemen Alignment improved to %s.", ye.Alignment)
			ye.Aid = true
			w.Logf("Aid added to Yemen.")
		}
		return done, nil
	}
	ye.Alignment = ye.Alignment.Worse()
	w.Logf("Yemen Alignment worsened to %s.", ye.Alignment)
	ye.Besieged = true
	w.Logf("Yemen now Besieged Regime.")
	return done, nil
}

func usElectionCard(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	usElection(w, w.Die())
	return done, nil
}
