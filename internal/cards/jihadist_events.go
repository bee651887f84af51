package cards

import (
	"github.com/sirjenkins/lwotai/internal/engine"
)

// jihadistEvents resolve Jihadist cards, whoever holds them.
var jihadistEvents = map[int]eventFunc{
	48: adamGadahn,
	49: placeIn(engine.Somalia, 1),
	50: ansarAlIslam,
	51: fres,
	52: note("US randomly discards one card."),
	53: madrassas,
	54: moqtadaAlSadr,
	55: uyghurJihad,
	56: vieiraDeMello,
	57: abuSayyaf,
	58: alAnbar,
	59: note("US side discards its highest-value US-associated event card, if it has any."),
	60: marker(engine.MarkerBhuttoShot, "Bhutto Shot in play."),
	61: detaineeRelease,
	62: exKGB,
	63: gazaWar,
	64: haririKilled,
	65: heuCard,
	66: placeIn(engine.UnitedKingdom, 1),
	67: islamicJihadUnion,
	68: placeIn(engine.IndonesiaMalaysa, 2),
	69: wmdIn(engine.CentralAsia),
	70: lashkarETayyiba,
	71: wmdIn(engine.Russia),
	72: opium,
	73: marker(engine.MarkerPirates, "Pirates in play."),
	74: schengenVisas,
	75: schroederChirac,
	76: abuGhurayb,
	77: alJazeera,
	78: axisOfEvil,
	79: cleanOperatives,
	80: fata,
	81: foreignFighters,
	82: jihadistVideos,
	83: kashmir,
	84: leakCard,
	85: leakCard,
	86: lebanonWar,
	87: martyrdomOperation,
	88: martyrdomOperation,
	89: martyrdomOperation,
	90: quagmire,
	91: regionalAlQaeda,
	92: saddam,
	93: taliban,
	94: itjihadWorsens,
	95: wahhabism,
}

func note(msg string) eventFunc {
	return func(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
		w.Logf("%s", msg)
		return done, nil
	}
}

func placeIn(name string, n int) eventFunc {
	return func(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
		w.PlaceCells(name, n)
		return done, nil
	}
}

func wmdIn(name string) eventFunc {
	return func(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
		heu(w, name, w.Die())
		return done, nil
	}
}

func adamGadahn(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	ops, err := nextCardOps(w)
	if err != nil {
		return declined, err
	}
	if ops == 0 {
		w.Logf("No cards left to recruit to US.")
		return done, nil
	}
	rolls := make([]int, ops)
	for i := range rolls {
		rolls[i] = w.Die()
	}
	w.ExecuteRecruit(engine.UnitedStates, ops, rolls, engine.RecruitOptions{Override: 2})
	w.Logf("Jihadist Activity Phase finished, enter plot command.")
	return done, nil
}

func ansarAlIslam(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.PlaceCells(w.Pick([]string{engine.Iraq, engine.Iran}), 1)
	return done, nil
}

func fres(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	n := 4
	if w.HasMarker(engine.MarkerSaddamCaptured) {
		n = 2
	}
	w.PlaceCells(engine.Iraq, min(n, w.CellPool))
	return done, nil
}

func madrassas(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.HandleRecruit(1, true)
	ops, err := nextCardOps(w)
	if err != nil {
		return done, err
	}
	if ops == 0 {
		w.Logf("No cards left to recruit.")
	} else {
		w.HandleRecruit(ops, true)
	}
	w.Logf("Jihadist Activity Phase finished, enter plot command.")
	return done, nil
}

func moqtadaAlSadr(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.MustCountry(engine.Iraq).AddMarker(engine.MarkerSadr)
	w.Logf("Sadr Marker added in Iraq")
	return done, nil
}

func uyghurJihad(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.China)
	if w.CellPool == 0 {
		w.Logf("No cells to place.")
		return done, nil
	}
	if w.MustCountry(engine.China).Posture == engine.PostureSoft {
		w.PlaceCells(engine.China, 1)
	} else {
		w.PlaceCells(engine.CentralAsia, 1)
	}
	return done, nil
}

func vieiraDeMello(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerVieiraDeMello)
	w.Logf("Vieira de Mello Slain in play.")
	w.ChangePrestige(-1)
	return done, nil
}

func abuSayyaf(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.PlaceCells(engine.Philippines, 1)
	w.AddMarker(engine.MarkerAbuSayyaf)
	return done, nil
}

func alAnbar(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.AddMarker(engine.MarkerAlAnbar)
	w.Logf("Al-Anbar in play.")
	w.TestCountry(engine.Iraq)
	if w.CellPool > 0 {
		w.PlaceCells(engine.Iraq, 1)
	}
	return done, nil
}

func detaineeRelease(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.CellPool > 0 {
		target, err := w.Decider().AskCountry("Choose a country where Disrupt occurred this or last Action Phase", w.Order)
		if err != nil {
			return declined, err
		}
		if _, err := w.Country(target); err != nil {
			return declined, err
		}
		w.PlaceCells(target, 1)
		logCountry(w, target)
	}
	w.Logf("Draw a card for the Jihadist and put it on the top of their hand.")
	return done, nil
}

// exKGB removes CTR from Russia, else sets Caucasus against the US when that opens a GWOT
// penalty, else pulls Central Asia one step away from the US.
func exKGB(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	ru := w.MustCountry(engine.Russia)
	if ru.RemoveMarker(engine.MarkerCTR) {
		w.Logf("CTR removed from Russia.")
		return done, nil
	}
	cau := w.MustCountry(engine.Caucasus)
	usPosture := w.MustCountry(engine.UnitedStates).Posture
	flip := false
	if (cau.Posture == engine.PostureUntested || cau.Posture == usPosture) && w.GWOTPenalty() == 0 {
		was := cau.Posture
		cau.Posture = usPosture.Opposite()
		flip = w.GWOTPenalty() < 0
		cau.Posture = was
	}
	if flip {
		setPosture(w, engine.Caucasus, usPosture.Opposite())
		return done, nil
	}
	w.TestCountry(engine.CentralAsia)
	ca := w.MustCountry(engine.CentralAsia)
	setAlignment(w, engine.CentralAsia, ca.Alignment.Worse())
	return done, nil
}

func gazaWar(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.ChangeFunding(1)
	w.ChangePrestige(-1)
	w.Logf("US discards a random card.")
	return done, nil
}

func haririKilled(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Lebanon)
	w.TestCountry(engine.Syria)
	setAlignment(w, engine.Syria, engine.AlignAdversary)
	if w.MustCountry(engine.Syria).Governance < engine.GovPoor {
		w.WorsenGovernance(engine.Syria)
		w.Logf("Governance in Syria worsened.")
	}
	logCountry(w, engine.Syria)
	return done, nil
}

func heuCard(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	var possible []string
	for _, n := range []string{engine.Russia, engine.CentralAsia} {
		c := w.MustCountry(n)
		if c.TotalCells(false) > 0 && !c.HasMarker(engine.MarkerCTR) {
			possible = append(possible, n)
		}
	}
	if len(possible) == 0 {
		return declined, nil
	}
	heu(w, w.Pick(possible), w.Die())
	return done, nil
}

func islamicJihadUnion(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.PlaceCells(engine.CentralAsia, 1)
	if w.CellPool > 0 {
		w.PlaceCells(engine.Afghanistan, 1)
	}
	return done, nil
}

func lashkarETayyiba(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.PlaceCells(engine.Pakistan, 1)
	if w.CellPool > 0 {
		w.PlaceCells(engine.India, 1)
	}
	return done, nil
}

func opium(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	n := min(w.CellPool, 3)
	if w.MustCountry(engine.Afghanistan).Governance == engine.GovIslamistRule {
		n = w.CellPool
	}
	w.PlaceCells(engine.Afghanistan, n)
	return done, nil
}

func schengenVisas(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.CellPool == engine.MaxCells {
		w.Logf("No cells to travel.")
		return done, nil
	}
	w.HandleTravel(2, engine.TravelSchengenVisas)
	return done, nil
}

func schroederChirac(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	setPosture(w, engine.Germany, engine.PostureSoft)
	setPosture(w, engine.France, engine.PostureSoft)
	w.ChangePrestige(-1)
	return done, nil
}

func abuGhurayb(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("Draw 2 cards.")
	w.ChangePrestige(-2)
	allies := w.MinorJihadCandidates(engine.MinorJihadAbuGhurayb)
	if len(allies) == 0 {
		w.Logf("No Allys to shift.")
		return done, nil
	}
	setAlignment(w, allies[0], engine.AlignNeutral)
	return done, nil
}

func alJazeera(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	choices := w.MinorJihadCandidates(engine.MinorJihadAlJazeera)
	if len(choices) == 0 {
		w.Logf("No countries to shift.")
		return done, nil
	}
	target := choices[0]
	setAlignment(w, target, w.MustCountry(target).Alignment.Worse())
	return done, nil
}

func axisOfEvil(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("US discards any Iran, Hizballah, or Jaysh al-Mahdi cards from hand.")
	if w.MustCountry(engine.UnitedStates).Posture == engine.PostureSoft {
		setPosture(w, engine.UnitedStates, engine.PostureHard)
	}
	w.PrestigeSwing(w.RollPrestige())
	return done, nil
}

func cleanOperatives(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.HandleTravel(2, engine.TravelCleanOperatives)
	return done, nil
}

func fata(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Pakistan)
	w.MustCountry(engine.Pakistan).AddMarker(engine.MarkerFATA)
	w.Logf("FATA Marker added in Pakistan")
	w.PlaceCells(engine.Pakistan, 1)
	return done, nil
}

func foreignFighters(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	rc := regimeChangeCountries(w)
	if len(rc) == 0 {
		return declined, nil
	}
	target := w.Pick(rc)
	w.PlaceCells(target, 5)
	c := w.MustCountry(target)
	if c.Aid {
		c.Aid = false
		w.Logf("Aid removed from %s", target)
	} else {
		c.Besieged = true
		w.Logf("%s now Besieged Regime", target)
	}
	logCountry(w, target)
	return done, nil
}

func jihadistVideos(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	empty := w.Names(func(c *engine.Country) bool { return c.TotalCells(false) == 0 })
	w.Shuffle(empty)
	for _, n := range empty[:min(3, len(empty))] {
		w.TestCountry(n)
		w.ExecuteRecruit(n, 1, []int{w.Die()}, engine.RecruitOptions{Videos: true})
	}
	return done, nil
}

func kashmir(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.PlaceCells(engine.Pakistan, 1)
	setAlignment(w, engine.Pakistan, w.MustCountry(engine.Pakistan).Alignment.Worse())
	logCountry(w, engine.Pakistan)
	return done, nil
}

func leakCard(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	var possible []string
	for _, m := range []string{engine.MarkerEnhancedMeasures, engine.MarkerRenditions, engine.MarkerWiretapping} {
		if w.HasMarker(m) {
			possible = append(possible, m)
		}
	}
	if len(possible) == 0 {
		return declined, nil
	}
	target := w.Pick(possible)
	w.RemoveMarker(target)
	w.AddMarker("Leak-" + target)
	w.Logf("%s removed and can no longer be played.", target)
	w.PrestigeSwing(w.RollPrestige())
	if w.Die() <= 4 {
		setPosture(w, engine.UnitedStates, engine.PostureSoft)
	} else {
		setPosture(w, engine.UnitedStates, engine.PostureHard)
	}
	return done, nil
}

func lebanonWar(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.Logf("US discards a random card.")
	w.ChangePrestige(-1)
	shia := w.Names(func(c *engine.Country) bool { return c.Culture == engine.CultureShiaMix })
	w.PlaceCells(w.Pick(shia), 1)
	return done, nil
}

// martyrdomOperation places one plot with two cells; failing that the card radicalizes.
func martyrdomOperation(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	if w.ExecutePlot(1, false, []int{1}, engine.PlotMartyrdom) == 1 {
		w.Logf("No plots could be placed.")
		w.Radicalize(table[86].Ops)
	}
	return done, nil
}

func quagmire(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	setPosture(w, engine.UnitedStates, engine.PostureSoft)
	w.Logf("US randomly discards two cards and Jihadist plays them.")
	w.Logf("Do this using the j # command for each card.")
	return done, nil
}

func regionalAlQaeda(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	untested := w.Names(func(c *engine.Country) bool {
		return c.Culture.Jihadable() && c.Governance == engine.GovUntested
	})
	w.Shuffle(untested)
	for _, n := range untested[:min(2, len(untested))] {
		w.PlaceCells(n, 1)
	}
	return done, nil
}

func saddam(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.SetFunding(engine.MaxFunding)
	w.Logf("Jihadist Funding now 9.")
	return done, nil
}

func taliban(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	w.TestCountry(engine.Afghanistan)
	w.MustCountry(engine.Afghanistan).Besieged = true
	w.Logf("Afghanistan is now a Besieged Regime.")
	w.PlaceCells(engine.Afghanistan, 1)
	w.PlaceCells(engine.Pakistan, 1)
	if w.MustCountry(engine.Afghanistan).Governance == engine.GovIslamistRule ||
		w.MustCountry(engine.Pakistan).Governance == engine.GovIslamistRule {
		w.ChangePrestige(-3)
	} else {
		w.ChangePrestige(-1)
	}
	return done, nil
}

func itjihadWorsens(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	candidates := w.Names(func(c *engine.Country) bool {
		return !c.NonMuslim() && (c.Governance == engine.GovGood || c.Governance == engine.GovFair)
	})
	if len(candidates) == 0 {
		return declined, nil
	}
	target, err := chooseCountry(w, "Choose a country tested or improved to Fair or Good this or last Action Phase", candidates)
	if err != nil {
		return declined, err
	}
	w.WorsenGovernance(target)
	w.Logf("%s Governance worsened.", target)
	logCountry(w, target)
	return done, nil
}

func wahhabism(w *engine.World, _ engine.Side) (engine.EventOutcome, error) {
	sa := w.MustCountry(engine.SaudiArabia)
	if sa.Governance == engine.GovIslamistRule {
		w.ChangeFunding(9)
	} else {
		w.ChangeFunding(int(sa.Governance))
	}
	return done, nil
}
