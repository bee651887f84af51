package engine

import "fmt"

// String backed enums so snapshots and history rows stay readable.

type Culture string
type Alignment string
type Posture string
type Side string
type CardType string

// Governance is numeric because jihad, travel and plot rolls compare a die against it.
type Governance int

const (
	CultureNonMuslim Culture = "Non-Muslim"
	CultureSunni     Culture = "Suni"
	CultureShiaMix   Culture = "Shia-Mix"
	CultureIran      Culture = "Iran"
)

var AllCultures = []Culture{CultureNonMuslim, CultureSunni, CultureShiaMix, CultureIran}

const (
	GovUntested     Governance = 0
	GovGood         Governance = 1
	GovFair         Governance = 2
	GovPoor         Governance = 3
	GovIslamistRule Governance = 4
)

const (
	AlignUntested  Alignment = ""
	AlignAdversary Alignment = "Adversary"
	AlignNeutral   Alignment = "Neutral"
	AlignAlly      Alignment = "Ally"
)

var AllAlignments = []Alignment{AlignAdversary, AlignNeutral, AlignAlly}

const (
	PostureUntested Posture = ""
	PostureSoft     Posture = "Soft"
	PostureHard     Posture = "Hard"
)

var AllPostures = []Posture{PostureSoft, PostureHard}

const (
	SideUS       Side = "US"
	SideJihadist Side = "Jihadist"
)

const (
	CardUS           CardType = "US"
	CardJihadist     CardType = "Jihadist"
	CardUnassociated CardType = "Unassociated"
)

var AllCardTypes = []CardType{CardUS, CardJihadist, CardUnassociated}

// Ideology modes change recruit, major jihad and jihad failure rules.
type Ideology int

const (
	IdeologyNormal     Ideology = 1
	IdeologyAttractive Ideology = 2
	IdeologyPotent     Ideology = 3
	IdeologyInfectious Ideology = 4
	IdeologyVirulent   Ideology = 5
)

var ideologyNames = map[Ideology]string{
	IdeologyNormal:     "Normal",
	IdeologyAttractive: "Attractive",
	IdeologyPotent:     "Potent",
	IdeologyInfectious: "Infectious",
	IdeologyVirulent:   "Virulent",
}

func (i Ideology) String() string {
	if n, ok := ideologyNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Ideology(%d)", int(i))
}

func (i Ideology) Validate() bool { return i >= IdeologyNormal && i <= IdeologyVirulent }

func (g Governance) String() string {
	switch g {
	case GovGood:
		return "Good"
	case GovFair:
		return "Fair"
	case GovPoor:
		return "Poor"
	case GovIslamistRule:
		return "Islamist Rule"
	default:
		return "Untested"
	}
}

func (g Governance) Validate() bool { return g >= GovUntested && g <= GovIslamistRule }

// Opposite returns the other tested posture; untested stays untested.
func (p Posture) Opposite() Posture {
	switch p {
	case PostureHard:
		return PostureSoft
	case PostureSoft:
		return PostureHard
	}
	return PostureUntested
}

// Muslim reports whether governance tests and alignment apply to the culture.
func (c Culture) Muslim() bool { return c != CultureNonMuslim }

// Sunni or Shia-Mix: the countries jihad and most events can target.
func (c Culture) Jihadable() bool { return c == CultureSunni || c == CultureShiaMix }

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (c Culture) Validate() bool   { return contains(AllCultures, c) }
func (a Alignment) Validate() bool { return a == AlignUntested || contains(AllAlignments, a) }
func (p Posture) Validate() bool   { return p == PostureUntested || contains(AllPostures, p) }
func (t CardType) Validate() bool  { return contains(AllCardTypes, t) }

// Worse moves one step toward Adversary, Better one step toward Ally.
func (a Alignment) Worse() Alignment {
	switch a {
	case AlignAlly:
		return AlignNeutral
	case AlignNeutral:
		return AlignAdversary
	}
	return a
}

func (a Alignment) Better() Alignment {
	switch a {
	case AlignAdversary:
		return AlignNeutral
	case AlignNeutral:
		return AlignAlly
	}
	return a
}
