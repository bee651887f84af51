package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CheckInvariants verifies pool conservation, track bounds and the tested rule. It also
// reports any violation recorded while the last command ran.
func (w *World) CheckInvariants() error {
	var problems []string
	if w.violation != nil {
		problems = append(problems, w.violation.Error())
	}
	if got := w.CellsOnMap() + w.CellPool; got != MaxCells {
		problems = append(problems, "cells on map plus pool is "+strconv.Itoa(got))
	}
	if got := w.TroopsOnMap() + w.TroopPool; got != MaxTroops {
		problems = append(problems, "troops on map plus pool is "+strconv.Itoa(got))
	}
	if w.Funding < 1 || w.Funding > MaxFunding {
		problems = append(problems, "funding "+strconv.Itoa(w.Funding)+" out of range")
	}
	if w.Prestige < 1 || w.Prestige > MaxPrestige {
		problems = append(problems, "prestige "+strconv.Itoa(w.Prestige)+" out of range")
	}
	for _, c := range w.All() {
		if c.Sleepers < 0 || c.Actives < 0 || c.Troops < 0 || c.Plots < 0 {
			problems = append(problems, c.Name+" has a negative count")
		}
		if !c.Governance.Validate() {
			problems = append(problems, c.Name+" governance out of range")
		}
		if !c.HasPresence() {
			continue
		}
		if c.NonMuslim() {
			if c.Posture == PostureUntested {
				problems = append(problems, c.Name+" has pieces but untested posture")
			}
			continue
		}
		if c.Governance == GovUntested || c.Alignment == AlignUntested {
			problems = append(problems, c.Name+" has pieces but is untested")
		}
	}
	if len(problems) == 0 {
		return nil
	}
	err := errors.Wrap(ErrInvariantViolation, strings.Join(problems, "; "))
	w.logger.Warn("invariants failed", zap.Strings("problems", problems))
	return err
}
