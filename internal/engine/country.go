package engine

import (
	"fmt"
	"strings"
)

// Country markers stored on the country itself rather than the global marker list.
const (
	MarkerSadr = "Sadr"
	MarkerNATO = "NATO"
	MarkerFATA = "FATA"
	MarkerCTR  = "CTR"
)

// Country is one space of the map. Culture, links and resource values never change after setup.
type Country struct {
	Name         string     `json:"name"`
	Culture      Culture    `json:"culture"`
	Governance   Governance `json:"governance"`
	Alignment    Alignment  `json:"alignment"`
	Posture      Posture    `json:"posture"`
	Sleepers     int        `json:"sleepers"`
	Actives      int        `json:"actives"`
	Troops       int        `json:"troops"` // stationed; NATO bonus is added by TroopCount
	Cadre        bool       `json:"cadre"`
	Aid          bool       `json:"aid"`
	Besieged     bool       `json:"besieged"`
	RegimeChange bool       `json:"regime_change"`
	Plots        int        `json:"plots"`
	Resources    int        `json:"resources"`
	Oil          bool       `json:"oil"`
	Recruit      int        `json:"recruit"`
	Schengen     bool       `json:"schengen"`
	SchengenLink bool       `json:"schengen_link"`
	Links        []string   `json:"links"`
	Markers      []string   `json:"markers,omitempty"`
}

func (c *Country) NonMuslim() bool { return c.Culture == CultureNonMuslim }

func (c *Country) HasMarker(m string) bool { return contains(c.Markers, m) }

func (c *Country) AddMarker(m string) {
	if !c.HasMarker(m) {
		c.Markers = append(c.Markers, m)
	}
}

// RemoveMarker reports whether the marker was present.
func (c *Country) RemoveMarker(m string) bool {
	for i, x := range c.Markers {
		if x == m {
			c.Markers = append(c.Markers[:i], c.Markers[i+1:]...)
			return true
		}
	}
	return false
}

// TotalCells counts sleepers and actives, plus the Sadr marker when asked.
func (c *Country) TotalCells(includeSadr bool) int {
	n := c.Sleepers + c.Actives
	if includeSadr && c.HasMarker(MarkerSadr) {
		n++
	}
	return n
}

// ActiveCount includes Sadr, who is always active.
func (c *Country) ActiveCount() int {
	if c.HasMarker(MarkerSadr) {
		return c.Actives + 1
	}
	return c.Actives
}

// TroopCount is the effective troop strength: stationed troops plus two for NATO.
func (c *Country) TroopCount() int {
	if c.HasMarker(MarkerNATO) {
		return c.Troops + 2
	}
	return c.Troops
}

func (c *Country) IsLinked(name string) bool { return contains(c.Links, name) }

// Untested reports whether the country still needs a test roll before it can be used.
func (c *Country) Untested() bool {
	if c.NonMuslim() {
		return c.Posture == PostureUntested
	}
	return c.Governance == GovUntested
}

// HasPresence is true when anything on the country requires it to be tested.
func (c *Country) HasPresence() bool {
	return c.TotalCells(true) > 0 || c.Troops > 0 || c.Aid || c.RegimeChange || c.Cadre || c.Plots > 0
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CountryLine is the one-line summary of a country used in the resolution log and status.
func (w *World) CountryLine(name string) string {
	c := w.get(name)
	var line string
	switch {
	case c.Culture.Jihadable():
		line = fmt.Sprintf("%s, %s %s, %d Resource(s) Troops:%d Active:%d Sleeper:%d Cadre:%d Aid:%d Besieged:%d Reg Ch:%d Plots:%d",
			c.Name, c.Governance, c.Alignment, w.CountryResources(name), c.TroopCount(), c.Actives, c.Sleepers,
			b2i(c.Cadre), b2i(c.Aid), b2i(c.Besieged), b2i(c.RegimeChange), c.Plots)
	case c.Culture == CultureIran:
		line = fmt.Sprintf("%s, %s Active:%d Sleeper:%d Cadre:%d Plots:%d",
			c.Name, c.Governance, c.Actives, c.Sleepers, b2i(c.Cadre), c.Plots)
	default:
		line = fmt.Sprintf("%s - Posture:%s Troops:%d Active:%d Sleeper:%d Cadre:%d Plots:%d",
			c.Name, c.Posture, c.TroopCount(), c.Actives, c.Sleepers, b2i(c.Cadre), c.Plots)
	}
	if len(c.Markers) > 0 {
		line += " Markers: " + strings.Join(c.Markers, ", ")
	}
	return line
}
