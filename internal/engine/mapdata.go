package engine

// Country names used by rules and cards.
const (
	Canada           = "Canada"
	UnitedStates     = "United States"
	UnitedKingdom    = "United Kingdom"
	Serbia           = "Serbia"
	Israel           = "Israel"
	India            = "India"
	Scandinavia      = "Scandinavia"
	EasternEurope    = "Eastern Europe"
	Benelux          = "Benelux"
	Germany          = "Germany"
	France           = "France"
	Italy            = "Italy"
	Spain            = "Spain"
	Russia           = "Russia"
	Caucasus         = "Caucasus"
	China            = "China"
	KenyaTanzania    = "Kenya/Tanzania"
	Thailand         = "Thailand"
	Philippines      = "Philippines"
	Morocco          = "Morocco"
	AlgeriaTunisia   = "Algeria/Tunisia"
	Libya            = "Libya"
	Egypt            = "Egypt"
	Sudan            = "Sudan"
	Somalia          = "Somalia"
	Jordan           = "Jordan"
	Syria            = "Syria"
	CentralAsia      = "Central Asia"
	IndonesiaMalaysa = "Indonesia/Malaysia"
	Turkey           = "Turkey"
	Lebanon          = "Lebanon"
	Yemen            = "Yemen"
	Iraq             = "Iraq"
	SaudiArabia      = "Saudi Arabia"
	GulfStates       = "Gulf States"
	Pakistan         = "Pakistan"
	Afghanistan      = "Afghanistan"
	Iran             = "Iran"
)

type countrySeed struct {
	name         string
	culture      Culture
	governance   Governance
	posture      Posture
	alignment    Alignment
	schengen     bool
	schengenLink bool
	recruit      int
	oil          bool
	resources    int
	links        []string
}

// standardMap lists the board in its printed order; iteration order of every rule follows it.
var standardMap = []countrySeed{
	{name: Canada, culture: CultureNonMuslim, governance: GovGood, schengenLink: true, links: []string{UnitedStates, UnitedKingdom}},
	{name: UnitedStates, culture: CultureNonMuslim, governance: GovGood, posture: PostureHard, schengenLink: true, links: []string{Canada, UnitedKingdom, Philippines}},
	{name: UnitedKingdom, culture: CultureNonMuslim, governance: GovGood, recruit: 3, schengenLink: true, links: []string{Canada, UnitedStates}},
	{name: Serbia, culture: CultureNonMuslim, governance: GovGood, schengenLink: true, links: []string{Russia, Turkey}},
	{name: Israel, culture: CultureNonMuslim, governance: GovGood, posture: PostureHard, links: []string{Lebanon, Jordan, Egypt}},
	{name: India, culture: CultureNonMuslim, governance: GovGood, links: []string{Pakistan, IndonesiaMalaysa}},
	{name: Scandinavia, culture: CultureNonMuslim, governance: GovGood, schengen: true},
	{name: EasternEurope, culture: CultureNonMuslim, governance: GovGood, schengen: true},
	{name: Benelux, culture: CultureNonMuslim, governance: GovGood, schengen: true},
	{name: Germany, culture: CultureNonMuslim, governance: GovGood, schengen: true},
	{name: France, culture: CultureNonMuslim, governance: GovGood, schengen: true, recruit: 2},
	{name: Italy, culture: CultureNonMuslim, governance: GovGood, schengen: true},
	{name: Spain, culture: CultureNonMuslim, governance: GovGood, schengen: true, recruit: 2},
	{name: Russia, culture: CultureNonMuslim, governance: GovFair, schengenLink: true, links: []string{Serbia, Turkey, Caucasus, CentralAsia}},
	{name: Caucasus, culture: CultureNonMuslim, governance: GovFair, links: []string{Russia, Turkey, Iran, CentralAsia}},
	{name: China, culture: CultureNonMuslim, governance: GovFair, links: []string{CentralAsia, Thailand}},
	{name: KenyaTanzania, culture: CultureNonMuslim, governance: GovFair, links: []string{Sudan, Somalia}},
	{name: Thailand, culture: CultureNonMuslim, governance: GovFair, links: []string{China, Philippines, IndonesiaMalaysa}},
	{name: Philippines, culture: CultureNonMuslim, governance: GovFair, recruit: 3, links: []string{UnitedStates, Thailand, IndonesiaMalaysa}},
	{name: Morocco, culture: CultureSunni, resources: 2, schengenLink: true, links: []string{AlgeriaTunisia}},
	{name: AlgeriaTunisia, culture: CultureSunni, oil: true, resources: 2, schengenLink: true, links: []string{Morocco, Libya}},
	{name: Libya, culture: CultureSunni, oil: true, resources: 1, schengenLink: true, links: []string{AlgeriaTunisia, Egypt, Sudan}},
	{name: Egypt, culture: CultureSunni, resources: 3, links: []string{Libya, Israel, Sudan}},
	{name: Sudan, culture: CultureSunni, oil: true, resources: 1, links: []string{Libya, Egypt, KenyaTanzania, Somalia}},
	{name: Somalia, culture: CultureSunni, resources: 1, links: []string{Sudan, KenyaTanzania, Yemen}},
	{name: Jordan, culture: CultureSunni, resources: 1, links: []string{Israel, Syria, Iraq, SaudiArabia}},
	{name: Syria, culture: CultureSunni, resources: 2, links: []string{Turkey, Lebanon, Jordan, Iraq}},
	{name: CentralAsia, culture: CultureSunni, resources: 2, links: []string{Russia, Caucasus, Iran, Afghanistan, China}},
	{name: IndonesiaMalaysa, culture: CultureSunni, oil: true, resources: 3, links: []string{Thailand, India, Philippines, Pakistan}},
	{name: Turkey, culture: CultureShiaMix, resources: 2, schengenLink: true, links: []string{Serbia, Russia, Caucasus, Iran, Syria, Iraq}},
	{name: Lebanon, culture: CultureShiaMix, resources: 1, schengenLink: true, links: []string{Syria, Israel}},
	{name: Yemen, culture: CultureShiaMix, resources: 1, links: []string{SaudiArabia, Somalia}},
	{name: Iraq, culture: CultureShiaMix, oil: true, resources: 3, links: []string{Syria, Turkey, Iran, GulfStates, SaudiArabia, Jordan}},
	{name: SaudiArabia, culture: CultureShiaMix, oil: true, resources: 3, links: []string{Jordan, Iraq, GulfStates, Yemen}},
	{name: GulfStates, culture: CultureShiaMix, oil: true, resources: 3, links: []string{Iran, Pakistan, SaudiArabia, Iraq}},
	{name: Pakistan, culture: CultureShiaMix, resources: 2, links: []string{Iran, Afghanistan, India, GulfStates, IndonesiaMalaysa}},
	{name: Afghanistan, culture: CultureShiaMix, resources: 1, links: []string{CentralAsia, Pakistan, Iran}},
	{name: Iran, culture: CultureIran, governance: GovFair, alignment: AlignAdversary, links: []string{CentralAsia, Afghanistan, Pakistan, GulfStates, Iraq, Turkey, Caucasus}},
}

// StandardCountries builds a fresh copy of the 38-space board, in board order.
func StandardCountries() []*Country {
	out := make([]*Country, 0, len(standardMap))
	for _, s := range standardMap {
		out = append(out, &Country{
			Name:         s.name,
			Culture:      s.culture,
			Governance:   s.governance,
			Alignment:    s.alignment,
			Posture:      s.posture,
			Schengen:     s.schengen,
			SchengenLink: s.schengenLink,
			Recruit:      s.recruit,
			Oil:          s.oil,
			Resources:    s.resources,
			Links:        append([]string(nil), s.links...),
		})
	}
	return out
}
