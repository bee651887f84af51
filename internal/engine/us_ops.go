package engine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TroopTrack names the troop pool wherever a country name is expected for troop moves.
const TroopTrack = "track"

// WorldPosture sums Hard (+1) and Soft (-1) non-Muslim countries other than the US.
func (w *World) WorldPosture() int {
	pos := 0
	for _, c := range w.All() {
		if !c.NonMuslim() || c.Name == UnitedStates {
			continue
		}
		switch c.Posture {
		case PostureHard:
			pos++
		case PostureSoft:
			pos--
		}
	}
	return pos
}

// WorldPostureLabel is Hard, Soft or Even.
func WorldPostureLabel(pos int) string {
	switch {
	case pos > 0:
		return string(PostureHard)
	case pos < 0:
		return string(PostureSoft)
	}
	return "Even"
}

// GWOTPenalty is zero when the US posture matches the world, else minus the world lean (max 3).
func (w *World) GWOTPenalty() int {
	pos := w.WorldPosture()
	label := WorldPostureLabel(pos)
	pos = clampInt(pos, -3, 3)
	if string(w.get(UnitedStates).Posture) != label {
		if pos < 0 {
			return pos
		}
		return -pos
	}
	return 0
}

// PrestigeSwing applies the three-dice prestige roll: the first die picks the direction.
func (w *World) PrestigeSwing(rolls [3]int) {
	sign := 1
	if rolls[0] <= 4 {
		sign = -1
	}
	w.ChangePrestige(min(rolls[1], rolls[2]) * sign)
}

// RollPrestige rolls three dice for PrestigeSwing.
func (w *World) RollPrestige() [3]int {
	return [3]int{w.roller.Die(), w.roller.Die(), w.roller.Die()}
}

// ModifiedWoIRoll applies prestige, Fair Ally, GWOT, aid and Good Ally neighbour modifiers.
func (w *World) ModifiedWoIRoll(base int, name string, useGWOT bool) int {
	c := w.get(name)
	roll := base
	switch {
	case w.Prestige <= 3:
		roll--
		w.Logf("-1 for Prestige")
	case w.Prestige >= 7 && w.Prestige <= 9:
		roll++
		w.Logf("+1 for Prestige")
	case w.Prestige >= 10:
		roll += 2
		w.Logf("+2 for Prestige")
	}
	if c.Alignment == AlignAlly && c.Governance == GovFair {
		roll--
		w.Logf("-1 for Attempt to shift to Good")
	}
	if useGWOT {
		if p := w.GWOTPenalty(); p != 0 {
			roll += p
			w.Logf("%d for GWOT Relations Penalty", p)
		}
	}
	if c.Aid {
		roll++
		w.Logf("+1 for Aid")
	}
	for _, n := range c.Links {
		adj := w.get(n)
		if adj.Alignment == AlignAlly && adj.Governance == GovGood {
			roll++
			w.Logf("+1 for Adjacent Good Ally")
			break
		}
	}
	return roll
}

// MuslimWarOfIdeas applies a modified War of Ideas roll to a Muslim country.
func (w *World) MuslimWarOfIdeas(roll int, name string) {
	c := w.get(name)
	switch {
	case roll <= 3:
		w.Logf("* WoI in %s failed.", name)
	case roll == 4:
		c.Aid = true
		w.Logf("* WoI in %s adds Aid.", name)
	case c.Alignment == AlignNeutral:
		c.Alignment = AlignAlly
		w.Logf("* WoI in %s succeeded - Alignment now Ally.", name)
	case c.Alignment == AlignAlly:
		w.ImproveGovernance(name)
		w.Logf("* WoI in %s succeeded - Governance now %s.", name, c.Governance)
	}
}

// NonMuslimWarOfIdeas sets the posture from the roll; matching the US gains prestige.
func (w *World) NonMuslimWarOfIdeas(name string, postureRoll int) {
	c := w.get(name)
	if postureRoll > 4 {
		c.Posture = PostureHard
	} else {
		c.Posture = PostureSoft
	}
	w.Logf("* War of Ideas in %s - Posture %s", name, c.Posture)
	if w.get(UnitedStates).Posture == c.Posture {
		w.ChangePrestige(1)
		w.Logf("US Prestige now %d", w.Prestige)
	}
}

// CanWarOfIdeas reports whether name is a legal War of Ideas target.
func (w *World) CanWarOfIdeas(name string) error {
	c, err := w.Country(name)
	if err != nil {
		return err
	}
	if c.NonMuslim() && name != UnitedStates {
		return nil
	}
	if !c.NonMuslim() && (c.Alignment == AlignAlly || c.Alignment == AlignNeutral || c.Governance == GovUntested) {
		return nil
	}
	return errors.Wrapf(ErrInvalidTarget, "%s not eligible for War of Ideas", name)
}

// WarOfIdeas resolves a War of Ideas with the player's die. Muslim targets are tested first.
func (w *World) WarOfIdeas(name string, roll int) error {
	if err := w.CanWarOfIdeas(name); err != nil {
		return err
	}
	if w.get(name).NonMuslim() {
		w.NonMuslimWarOfIdeas(name, roll)
		return nil
	}
	w.TestCountry(name)
	mod := w.ModifiedWoIRoll(roll, name, true)
	w.Logf("Modified Roll: %d", mod)
	w.MuslimWarOfIdeas(mod, name)
	return nil
}

// Alert removes one plot.
func (w *World) Alert(name string) error {
	c, err := w.Country(name)
	if err != nil {
		return err
	}
	if c.Plots < 1 {
		return errors.Wrapf(ErrInvalidTarget, "%s has no plots", name)
	}
	c.Plots--
	w.Logf("* Alert in %s - %d plot(s) remain.", name, c.Plots)
	return nil
}

// Reassessment flips the US posture.
func (w *World) Reassessment() {
	us := w.get(UnitedStates)
	us.Posture = us.Posture.Opposite()
	w.Logf("* Reassessment = US Posture now %s", us.Posture)
}

// availableTroops is what a troop move may take from a source: the pool or stationed troops.
func (w *World) availableTroops(from string) (int, error) {
	if from == TroopTrack {
		return w.TroopPool, nil
	}
	c, err := w.Country(from)
	if err != nil {
		return 0, err
	}
	return c.Troops, nil
}

// MovableTroops is how many troops may leave from: a Regime Change country keeps five more
// troops than cells.
func (w *World) MovableTroops(from string) int {
	if from == TroopTrack {
		return w.TroopPool
	}
	c, err := w.Country(from)
	if err != nil {
		return 0
	}
	if !c.RegimeChange {
		return c.Troops
	}
	return max(min(c.Troops, c.TroopCount()-5-c.TotalCells(true)), 0)
}

func (w *World) moveTroops(from, to string, n int) {
	if from == TroopTrack {
		w.takeTroops(n)
	} else {
		w.changeTroops(w.get(from), -n)
	}
	if to == TroopTrack {
		w.returnTroops(n)
	} else {
		w.changeTroops(w.get(to), n)
	}
}

// RegimeChangeTargets lists countries the US may invade.
func (w *World) RegimeChangeTargets() []string {
	return w.Names(func(c *Country) bool {
		return c.Governance == GovIslamistRule ||
			(c.Name == Iraq && w.HasMarker(MarkerIraqiWMD)) ||
			(c.Name == Libya && w.HasMarker(MarkerLibyanWMD))
	})
}

// RegimeChange invades target with n troops (at least 6) from a country or the track.
func (w *World) RegimeChange(target, from string, n, govRoll int, prestigeRolls [3]int) error {
	if w.get(UnitedStates).Posture == PostureSoft {
		return errors.Wrap(ErrInvalidTarget, "no Regime Change with US Posture Soft")
	}
	if _, err := w.Country(target); err != nil {
		return err
	}
	if !contains(w.RegimeChangeTargets(), target) {
		return errors.Wrapf(ErrInvalidTarget, "%s is not Islamist Rule", target)
	}
	avail, err := w.availableTroops(from)
	if err != nil {
		return err
	}
	if avail <= 6 {
		return errors.Wrapf(ErrInvalidTarget, "not enough troops in %s", from)
	}
	if n < 6 || n > avail {
		return errors.Wrapf(ErrInvalidTarget, "regime change needs 6 to %d troops, got %d", avail, n)
	}
	if n > w.MovableTroops(from) {
		return errors.Wrap(ErrInvalidTarget, "cannot move that many troops from a Regime Change country")
	}
	w.moveTroops(from, target, n)
	c := w.get(target)
	w.activateSleepers(c, c.Sleepers)
	c.Alignment = AlignAlly
	if govRoll <= 4 {
		c.Governance = GovPoor
	} else {
		c.Governance = GovFair
	}
	c.RegimeChange = true
	w.PrestigeSwing(prestigeRolls)
	w.Logf("* Regime Change in %s", target)
	w.Logf("US Prestige %d", w.Prestige)
	if target == Iraq && w.RemoveMarker(MarkerIraqiWMD) {
		w.Logf("Iraqi WMD no longer in play.")
	}
	if target == Libya && w.RemoveMarker(MarkerLibyanWMD) {
		w.Logf("Libyan WMD no longer in play.")
	}
	w.logger.Info("regime change", zap.String("target", target), zap.String("from", from), zap.Int("troops", n))
	return nil
}

// Withdraw pulls troops out of a regime change country, leaving it besieged.
func (w *World) Withdraw(from, to string, n int, prestigeRolls [3]int) error {
	if w.get(UnitedStates).Posture == PostureHard {
		return errors.Wrap(ErrInvalidTarget, "no Withdrawal with US Posture Hard")
	}
	src, err := w.Country(from)
	if err != nil {
		return err
	}
	if !src.RegimeChange {
		return errors.Wrapf(ErrInvalidTarget, "%s is not a Regime Change country", from)
	}
	if to != TroopTrack {
		if _, err := w.Country(to); err != nil {
			return err
		}
	}
	if n < 1 || n > src.Troops {
		return errors.Wrapf(ErrInvalidTarget, "withdraw needs 1 to %d troops, got %d", src.Troops, n)
	}
	w.moveTroops(from, to, n)
	src.Aid = false
	src.Besieged = true
	w.PrestigeSwing(prestigeRolls)
	w.Logf("* Withdraw troops from %s", from)
	w.Logf("US Prestige %d", w.Prestige)
	return nil
}

// Deploy moves troops; regime change countries must keep 5 more troops than cells.
func (w *World) Deploy(from, to string, n int) error {
	avail, err := w.availableTroops(from)
	if err != nil {
		return err
	}
	if to != TroopTrack {
		if _, err := w.Country(to); err != nil {
			return err
		}
	}
	if avail <= 0 {
		return errors.Wrapf(ErrInvalidTarget, "no troops in %s", from)
	}
	if n < 1 || n > avail {
		return errors.Wrapf(ErrInvalidTarget, "deploy needs 1 to %d troops, got %d", avail, n)
	}
	if n > w.MovableTroops(from) {
		return errors.Wrap(ErrInvalidTarget, "cannot move that many troops from a Regime Change country")
	}
	w.moveTroops(from, to, n)
	w.Logf("* %d troops deployed from %s to %s", n, from, to)
	return nil
}
