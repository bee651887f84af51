package cards

import (
	"github.com/sirjenkins/lwotai/internal/engine"
)

type eventFunc func(w *engine.World, side engine.Side) (engine.EventOutcome, error)

// usEvents resolve US cards played by the player. Choices go through the world's Decider.
var usEvents = map[int]eventFunc{
	1:  backlash,
	2:  biometrics,
	3:  ctr,
	4:  moroTalks,
	5:  marker(engine.MarkerNEST, "NEST in play. If jihadists have WMD, all plots in the US placed face up."),
	6:  sanctions,
	7:  sanctions,
	8:  specialForces,
	9:  specialForces,
	10: specialForces,
	11: abbas,
	12: alAzhar,
	13: anbarAwakening,
	14: covertAction,
	15: ethiopiaStrikes,
	16: euroIslam,
	17: fsb,
	18: intelCommunity,
	19: fairAlly(engine.Turkey, 0, 0),
	20: fairAlly(engine.Jordan, 1, -1),
	21: letsRoll,
	22: mossad,
	23: predator,
	24: predator,
	25: predator,
	26: quartet,
	27: saddamCaptured,
	28: sharia,
	29: tonyBlair,
	30: unNationBuilding,
	31: wiretapping,
	32: backChannel,
	33: benazirBhutto,
	34: enhancedMeasures,
	35: hijab,
	36: indoPakistaniTalks,
	37: marker(engine.MarkerIraqiWMD, "Use this or a later card for Regime Change in Iraq at any Governance."),
	38: libyanDeal,
	39: marker(engine.MarkerLibyanWMD, "Use this or a later card for Regime Change in Libya at any Governance."),
	40: massTurnout,
	41: nato,
	42: pakistaniOffensive,
	43: marker(engine.MarkerPatriotAct, "Patriot Act in play."),
	44: renditions,
	45: saferNow,
	46: sistani,
	47: itjihadClosed,
}

func marker(m, msg string) eventFunc {
	return func(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
		w.AddMarker(m)
		w.Logf("%s", msg)
		return done, nil
	}
}

func backlash(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	for _, c := range w.All() {
		if !c.NonMuslim() && c.Plots > 0 {
			w.BacklashInPlay = true
			w.Logf("Plot in Muslim country found. Select the plot. Backlash in play")
			return done, nil
		}
	}
	return declined, nil
}

func biometrics(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddLapsing(engine.LapsingBiometrics)
	w.Logf("Biometrics in play. This turn, travel to adjacent Good countries must roll to succeed and no non-adjacent travel.")
	return done, nil
}

func ctr(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.MustCountry(engine.Russia).AddMarker(engine.MarkerCTR)
	w.Logf("CTR Marker added in Russia")
	ca := w.MustCountry(engine.CentralAsia)
	if ca.Alignment == engine.AlignAlly || ca.Alignment == engine.AlignNeutral {
		ca.AddMarker(engine.MarkerCTR)
		w.Logf("CTR Marker added in Central Asia")
	}
	return done, nil
}

func moroTalks(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerMoroTalks)
	w.Logf("Moro Talks in play.")
	w.TestCountry(engine.Philippines)
	w.ChangeFunding(-1)
	return done, nil
}

func sanctions(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if !w.HasMarker(engine.MarkerPatriotAct) {
		return declined, nil
	}
	w.ChangeFunding(-2)
	return done, nil
}

func specialForces(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	env := newEnv(w, engine.SideUS)
	candidates := w.Names(func(c *engine.Country) bool { return c.TotalCells(true) > 0 && env.TroopsNear(c.Name) })
	target, err := chooseCountry(w, "Remove a cell from what country that has troops or is adjacent to a country with troops?", candidates)
	if err != nil {
		return declined, err
	}
	w.RemoveCell(target)
	logCountry(w, target)
	return done, nil
}

func islamistRuleNextToIsrael(w *engine.World) bool {
	for _, c := range w.All() {
		if c.Governance == engine.GovIslamistRule && w.IsAdjacent(c.Name, engine.Israel) {
			return true
		}
	}
	return false
}

func abbas(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerAbbas)
	w.Logf("Abbas in play.")
	if w.TroopPool >= 5 && !islamistRuleNextToIsrael(w) {
		w.ChangePrestige(1)
		w.ChangeFunding(-2)
	}
	return done, nil
}

func alAzhar(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Egypt)
	if w.NumIslamistRule() == 0 {
		w.ChangeFunding(-4)
	} else {
		w.ChangeFunding(-2)
	}
	return done, nil
}

func anbarAwakening(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	iq, sy := w.MustCountry(engine.Iraq), w.MustCountry(engine.Syria)
	if iq.TroopCount() == 0 && sy.TroopCount() == 0 {
		return declined, nil
	}
	w.AddMarker(engine.MarkerAnbarAwakening)
	w.Logf("Anbar Awakening in play.")
	target := sy
	switch {
	case iq.TroopCount() > 0 && sy.TroopCount() == 0:
		target = iq
	case iq.TroopCount() > 0:
		toIraq, err := w.Decider().AskYesNo("There are troops in both Iraq and Syria. Add the Aid to Iraq?")
		if err != nil {
			return declined, err
		}
		if toIraq {
			target = iq
		}
	}
	target.Aid = true
	w.Logf("Aid in %s.", target.Name)
	w.ChangePrestige(1)
	return done, nil
}

func covertAction(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	adversaries := w.Names(func(c *engine.Country) bool { return c.Alignment == engine.AlignAdversary })
	if len(adversaries) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose an Adversary country to attempt Covert Action", adversaries)
	if err != nil {
		return declined, err
	}
	roll, err := w.Decider().AskDieRoll("Enter Covert Action roll")
	if err != nil {
		return declined, err
	}
	if roll >= 4 {
		w.MustCountry(target).Alignment = engine.AlignNeutral
		w.Logf("Covert Action successful, %s now Neutral.", target)
		logCountry(w, target)
	} else {
		w.Logf("Covert Action fails.")
	}
	return done, nil
}

func ethiopiaStrikes(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	so, su := w.MustCountry(engine.Somalia), w.MustCountry(engine.Sudan)
	soIR, suIR := so.Governance == engine.GovIslamistRule, su.Governance == engine.GovIslamistRule
	if !soIR && !suIR {
		return declined, nil
	}
	target := su
	switch {
	case soIR && !suIR:
		target = so
	case soIR && suIR:
		pickSomalia, err := w.Decider().AskYesNo("Both Somalia and Sudan are under Islamist Rule. Set Somalia to Poor Neutral?")
		if err != nil {
			return declined, err
		}
		if pickSomalia {
			target = so
		}
	}
	target.Governance = engine.GovPoor
	target.Alignment = engine.AlignNeutral
	w.Logf("%s now Poor Neutral.", target.Name)
	logCountry(w, target.Name)
	return done, nil
}

func euroIslam(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	p, err := askPosture(w, "Select Benelux's Posture")
	if err != nil {
		return declined, err
	}
	setPosture(w, engine.Benelux, p)
	if w.NumIslamistRule() == 0 {
		w.ChangeFunding(-1)
		w.Logf("Jihadist Funding now %d", w.Funding)
	}
	return done, nil
}

func fsb(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("Examine Jihadist hand for Loose Nukes, HEU, or Kazakh Strain.")
	hasThem, err := w.Decider().AskYesNo("Does the Jihadist hand have Loose Nukes, HEU, or Kazakh Strain?")
	if err != nil {
		return declined, err
	}
	if hasThem {
		w.Logf("Discard Loose Nukes, HEU, or Kazakh Strain from the Jihadist hand.")
	} else {
		ru, ca := w.MustCountry(engine.Russia).TotalCells(true), w.MustCountry(engine.CentralAsia).TotalCells(true)
		target := ""
		switch {
		case ru > 0 && ca > 0:
			inRussia, err := w.Decider().AskYesNo("There are cells in both Russia and Central Asia. Remove a cell in Russia?")
			if err != nil {
				return declined, err
			}
			target = engine.CentralAsia
			if inRussia {
				target = engine.Russia
			}
		case ru > 0:
			target = engine.Russia
		case ca > 0:
			target = engine.CentralAsia
		}
		if target == "" {
			w.Logf("There are no cells in Russia or Central Asia.")
		} else {
			w.RemoveCell(target)
			logCountry(w, target)
		}
	}
	w.Logf("Shuffle Jihadist hand.")
	return done, nil
}

func intelCommunity(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("Examine Jihadist hand. Do not change order of cards.")
	w.Logf("Conduct a 1-value operation (alert, deploy, disrupt, reassessment, regime, withdraw, or woi).")
	w.Logf("You may now interrupt this action phase to play another card (u command).")
	return done, nil
}

func fairAlly(name string, prestige, funding int) eventFunc {
	return func(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
		c := w.MustCountry(name)
		c.Governance = engine.GovFair
		c.Alignment = engine.AlignAlly
		w.Logf("%s now a Fair Ally.", name)
		logCountry(w, name)
		w.ChangePrestige(prestige)
		w.ChangeFunding(funding)
		return done, nil
	}
}

func letsRoll(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	plots := w.Names(func(c *engine.Country) bool {
		return c.Plots > 0 && (c.Governance == engine.GovGood || c.Alignment == engine.AlignAlly)
	})
	plotCountry, err := chooseCountry(w, "Draw a card. Choose an Ally or Good country to remove a plot from", plots)
	if err != nil {
		return declined, err
	}
	postureCountry, err := chooseCountry(w, "Now choose a non-US country to set its Posture", nonUSNonMuslim(w))
	if err != nil {
		return declined, err
	}
	p, err := askPosture(w, "What Posture should "+postureCountry+" have?")
	if err != nil {
		return declined, err
	}
	pc := w.MustCountry(plotCountry)
	pc.Plots = max(0, pc.Plots-1)
	w.Logf("Plot removed from %s.", plotCountry)
	setPosture(w, postureCountry, p)
	return done, nil
}

func mossad(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	for _, n := range []string{engine.Israel, engine.Jordan, engine.Lebanon} {
		w.RemoveAllCells(n)
	}
	return done, nil
}

func predator(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	candidates := w.Names(func(c *engine.Country) bool { return c.Culture.Jihadable() && c.TotalCells(true) > 0 })
	target, err := chooseCountry(w, "Choose non-Iran Muslim Country to remove a cell from", candidates)
	if err != nil {
		return declined, err
	}
	w.RemoveCell(target)
	logCountry(w, target)
	return done, nil
}

func quartet(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if !w.HasMarker(engine.MarkerAbbas) || w.TroopPool <= 4 || islamistRuleNextToIsrael(w) {
		return declined, nil
	}
	w.ChangePrestige(2)
	w.ChangeFunding(-3)
	return done, nil
}

func saddamCaptured(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	iq := w.MustCountry(engine.Iraq)
	if iq.TroopCount() == 0 {
		return declined, nil
	}
	w.AddMarker(engine.MarkerSaddamCaptured)
	iq.Aid = true
	w.Logf("Aid added in Iraq")
	w.ChangePrestige(1)
	logCountry(w, engine.Iraq)
	return done, nil
}

func sharia(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	besieged := w.Names(func(c *engine.Country) bool { return c.Besieged })
	if len(besieged) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a country with a Besieged Regime marker to remove", besieged)
	if err != nil {
		return declined, err
	}
	w.MustCountry(target).Besieged = false
	w.Logf("%s is no longer a Besieged Regime.", target)
	return done, nil
}

func tonyBlair(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	setPosture(w, engine.UnitedKingdom, w.MustCountry(engine.UnitedStates).Posture)
	options := append(schengen(w), "done")
	for i := 0; i < 3; i++ {
		target, err := w.Decider().AskCountry("Choose Schengen country to make a WOI roll (done to stop rolling)", options)
		if err != nil {
			return done, err
		}
		if target == "done" {
			break
		}
		if !w.MustCountry(target).Schengen {
			w.Logf("%s is not a Schengen country.", target)
			break
		}
		roll, err := w.Decider().AskDieRoll("Enter Posture Roll")
		if err != nil {
			return done, err
		}
		w.NonMuslimWarOfIdeas(target, roll)
	}
	return done, nil
}

func unNationBuilding(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	rc := regimeChangeCountries(w)
	if len(rc) == 0 || w.HasMarker(engine.MarkerVieiraDeMello) {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a Regime Change country", rc)
	if err != nil {
		return declined, err
	}
	w.MustCountry(target).Aid = true
	w.Logf("Aid added to %s.", target)
	roll, err := w.Decider().AskDieRoll("Enter WOI Roll")
	if err != nil {
		return done, err
	}
	w.MuslimWarOfIdeas(w.ModifiedWoIRoll(roll, target, false), target)
	return done, nil
}

func wiretapping(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.HasMarker("Leak-" + engine.MarkerWiretapping) {
		return declined, nil
	}
	for _, n := range []string{engine.UnitedStates, engine.UnitedKingdom, engine.Canada} {
		w.RemoveAllCells(n)
		c := w.MustCountry(n)
		if c.Cadre {
			c.Cadre = false
			w.Logf("Cadre removed from %s.", n)
		}
		if c.Plots > 0 {
			w.Logf("%d Plots removed from %s.", c.Plots, n)
			c.Plots = 0
		}
	}
	w.AddMarker(engine.MarkerWiretapping)
	w.Logf("Wiretapping in Play.")
	return done, nil
}

func backChannel(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.MustCountry(engine.UnitedStates).Posture == engine.PostureHard || w.NumAdversary() == 0 {
		return declined, nil
	}
	discard, err := w.Decider().AskYesNo("Do you want to discard a card with a value that exactly matches an Adversary's Resources?")
	if err != nil || !discard {
		return done, err
	}
	adversaries := w.Names(func(c *engine.Country) bool { return c.Alignment == engine.AlignAdversary })
	target, err := chooseCountry(w, "Choose an Adversary country", adversaries)
	if err != nil {
		return done, err
	}
	setAlignment(w, target, engine.AlignNeutral)
	w.MustCountry(target).Aid = true
	w.Logf("Aid added to %s.", target)
	return done, nil
}

func benazirBhutto(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerBenazirBhutto)
	w.Logf("Benazir Bhutto in Play.")
	pk := w.MustCountry(engine.Pakistan)
	if pk.Governance == engine.GovPoor {
		pk.Governance = engine.GovFair
		w.Logf("Pakistan now Fair governance.")
	}
	w.Logf("No Jihads in Pakistan.")
	return done, nil
}

func enhancedMeasures(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerEnhancedMeasures)
	w.Logf("Enhanced Measures in Play.")
	w.Logf("Take a random card from the Jihadist hand.")
	return done, disruptChoice(w)
}

func hijab(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Turkey)
	w.ImproveGovernance(engine.Turkey)
	w.Logf("Turkey Governance now %s.", w.MustCountry(engine.Turkey).Governance)
	w.ChangeFunding(-2)
	p, err := askPosture(w, "Select France's Posture")
	if err != nil {
		return done, err
	}
	setPosture(w, engine.France, p)
	return done, nil
}

func indoPakistaniTalks(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerIndoPakistaniTalks)
	w.Logf("Indo-Pakistani Talks in Play.")
	setAlignment(w, engine.Pakistan, engine.AlignAlly)
	p, err := askPosture(w, "Select India's Posture")
	if err != nil {
		return done, err
	}
	setPosture(w, engine.India, p)
	return done, nil
}

func libyanDeal(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerLibyanDeal)
	w.Logf("Libyan Deal in Play.")
	setAlignment(w, engine.Libya, engine.AlignAlly)
	w.ChangePrestige(1)
	for i := 0; i < 2; i++ {
		target, err := chooseCountry(w, "Choose Schengen country to set its Posture", schengen(w))
		if err != nil {
			return done, err
		}
		p, err := askPosture(w, "Select "+target+"'s Posture")
		if err != nil {
			return done, err
		}
		setPosture(w, target, p)
	}
	return done, nil
}

func massTurnout(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	rc := regimeChangeCountries(w)
	if len(rc) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a Regime Change Country to improve governance", rc)
	if err != nil {
		return declined, err
	}
	w.ImproveGovernance(target)
	w.Logf("%s Governance improved.", target)
	logCountry(w, target)
	return done, nil
}

func nato(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	rc := regimeChangeCountries(w)
	if len(rc) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a Regime Change Country to land NATO troops", rc)
	if err != nil {
		return declined, err
	}
	c := w.MustCountry(target)
	c.AddMarker(engine.MarkerNATO)
	c.Aid = true
	w.Logf("NATO and Aid added in %s", target)
	logCountry(w, target)
	return done, nil
}

func pakistaniOffensive(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.MustCountry(engine.Pakistan).RemoveMarker(engine.MarkerFATA) {
		w.Logf("FATA removed from Pakistan")
	}
	return done, nil
}

func renditions(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerRenditions)
	w.Logf("Renditions in Play.")
	w.Logf("Discard a random card from the Jihadist hand.")
	if len(w.DisruptTargets()) == 0 {
		return done, nil
	}
	return done, disruptChoice(w)
}

func saferNow(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.ChangePrestige(3)
	roll, err := w.Decider().AskDieRoll("Enter US Posture Roll")
	if err != nil {
		return done, err
	}
	if roll <= 4 {
		setPosture(w, engine.UnitedStates, engine.PostureSoft)
	} else {
		setPosture(w, engine.UnitedStates, engine.PostureHard)
	}
	target, err := chooseCountry(w, "Now choose a non-US country to set its Posture", nonUSNonMuslim(w))
	if err != nil {
		return done, err
	}
	p, err := askPosture(w, "What Posture should "+target+" have?")
	if err != nil {
		return done, err
	}
	setPosture(w, target, p)
	return done, nil
}

func sistani(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	candidates := w.Names(func(c *engine.Country) bool {
		return c.Culture == engine.CultureShiaMix && c.RegimeChange && c.TotalCells(true) > 0
	})
	if len(candidates) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a Shia-Mix Regime Change Country with a cell to improve governance", candidates)
	if err != nil {
		return declined, err
	}
	w.ImproveGovernance(target)
	w.Logf("%s Governance improved.", target)
	logCountry(w, target)
	return done, nil
}

func itjihadClosed(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddLapsing(engine.LapsingItjihadClose)
	return done, nil
}
