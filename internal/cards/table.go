package cards

import "github.com/sirjenkins/lwotai/internal/engine"

// Card is one entry of the 120-card deck. When holds the playability rule as an expr
// expression evaluated against Env; empty means always playable for its own side.
type Card struct {
	Number   int
	Name     string
	Type     engine.CardType
	Ops      int
	Remove   bool
	Mark     bool
	Lapsing  bool
	PutsCell bool
	When     string
}

const (
	us  = engine.CardUS
	jih = engine.CardJihadist
	una = engine.CardUnassociated
)

// Shared rule fragments.
const (
	rcWithCells       = `any(Countries, {.RegimeChange && .Cells > 0})`
	firstCard         = `Ask("Is this the 1st card of the Jihadist Action Phase?")`
	russiaHEU         = `(Country("Russia").CellsNoSadr > 0 && not ("CTR" in Country("Russia").Markers))`
	centralAsiaHEU    = `(Country("Central Asia").CellsNoSadr > 0 && not ("CTR" in Country("Central Asia").Markers))`
	usQuietFront      = `Side == "Jihadist" || (not ("FATA" in Country("Pakistan").Markers) && not HasMarker("Al-Anbar") && NumIslamistRule() == 0)`
	muslimCellTarget  = `any(Countries, {.Cells > 0 && (.Culture == "Suni" || .Culture == "Shia-Mix")})`
	specialForcesWhen = `any(Countries, {.Cells > 0 && TroopsNear(.Name)})`
	martyrdom         = `any(Countries, {.Gov != 4 && .Cells > 0})`
	leak              = `HasMarker("Enhanced Measures") || HasMarker("Renditions") || HasMarker("Wiretapping")`
)

var table = []Card{
	{Number: 1, Name: "Backlash", Type: us, Ops: 1, When: `any(Countries, {.Culture != "Non-Muslim" && .Plots > 0})`},
	{Number: 2, Name: "Biometrics", Type: us, Ops: 1, Lapsing: true},
	{Number: 3, Name: "CTR", Type: us, Ops: 1, Mark: true, When: `USPosture == "Soft"`},
	{Number: 4, Name: "Moro Talks", Type: us, Ops: 1, Remove: true, Mark: true},
	{Number: 5, Name: "NEST", Type: us, Ops: 1, Remove: true, Mark: true},
	{Number: 6, Name: "Sanctions", Type: us, Ops: 1, When: `HasMarker("Patriot Act")`},
	{Number: 7, Name: "Sanctions", Type: us, Ops: 1, When: `HasMarker("Patriot Act")`},
	{Number: 8, Name: "Special Forces", Type: us, Ops: 1, When: specialForcesWhen},
	{Number: 9, Name: "Special Forces", Type: us, Ops: 1, When: specialForcesWhen},
	{Number: 10, Name: "Special Forces", Type: us, Ops: 1, When: specialForcesWhen},
	{Number: 11, Name: "Abbas", Type: us, Ops: 2, Remove: true, Mark: true},
	{Number: 12, Name: "Al-Azhar", Type: us, Ops: 2},
	{Number: 13, Name: "Anbar Awakening", Type: us, Ops: 2, Mark: true, When: `Country("Iraq").Troops > 0 || Country("Syria").Troops > 0`},
	{Number: 14, Name: "Covert Action", Type: us, Ops: 2, When: `NumAdversary() > 0`},
	{Number: 15, Name: "Ethiopia Strikes", Type: us, Ops: 2, Remove: true, When: `Country("Somalia").Gov == 4 || Country("Sudan").Gov == 4`},
	{Number: 16, Name: "Euro-Islam", Type: us, Ops: 2, Remove: true},
	{Number: 17, Name: "FSB", Type: us, Ops: 2},
	{Number: 18, Name: "Intel Community", Type: us, Ops: 2},
	{Number: 19, Name: "Kemalist Republic", Type: us, Ops: 2},
	{Number: 20, Name: "King Abdullah", Type: us, Ops: 2, Remove: true},
	{Number: 21, Name: "Let's Roll", Type: us, Ops: 2, When: `any(Countries, {.Plots > 0 && (.Align == "Ally" || .Gov == 1)})`},
	{Number: 22, Name: "Mossad and Shin Bet", Type: us, Ops: 2, When: `Country("Israel").CellsNoSadr + Country("Jordan").CellsNoSadr + Country("Lebanon").CellsNoSadr > 0`},
	{Number: 23, Name: "Predator", Type: us, Ops: 2, When: muslimCellTarget},
	{Number: 24, Name: "Predator", Type: us, Ops: 2, When: muslimCellTarget},
	{Number: 25, Name: "Predator", Type: us, Ops: 2, When: muslimCellTarget},
	{Number: 26, Name: "Quartet", Type: us, Ops: 2, When: `HasMarker("Abbas") && TroopPool > 4 && none(Countries, {Adjacent(.Name, "Israel") && .Gov == 4})`},
	{Number: 27, Name: "Saddam Captured", Type: us, Ops: 2, Remove: true, Mark: true, When: `Country("Iraq").Troops > 0`},
	{Number: 28, Name: "Sharia", Type: us, Ops: 2, When: `NumBesieged() > 0`},
	{Number: 29, Name: "Tony Blair", Type: us, Ops: 2, Remove: true},
	{Number: 30, Name: "UN Nation Building", Type: us, Ops: 2, When: `NumRegimeChange() > 0 && not HasMarker("Vieira de Mello Slain")`},
	{Number: 31, Name: "Wiretapping", Type: us, Ops: 2, Mark: true, When: `not HasMarker("Leak-Wiretapping") && any(["United States", "United Kingdom", "Canada"], {Country(#).CellsNoSadr > 0 || Country(#).Cadre || Country(#).Plots > 0})`},
	{Number: 32, Name: "Back Channel", Type: us, Ops: 3, When: `USPosture != "Hard" && NumAdversary() > 0 && Ask("Do you have a card with a value that exactly matches an Adversary's Resources?")`},
	{Number: 33, Name: "Benazir Bhutto", Type: us, Ops: 3, Remove: true, Mark: true, When: `not HasMarker("Bhutto Shot") && Country("Pakistan").Gov != 4 && none(Country("Pakistan").Links, {Country(#).Gov == 4})`},
	{Number: 34, Name: "Enhanced Measures", Type: us, Ops: 3, Mark: true, When: `not HasMarker("Leak-Enhanced Measures") && USPosture != "Soft" && NumDisruptable() > 0`},
	{Number: 35, Name: "Hijab", Type: us, Ops: 3, Remove: true, When: `NumIslamistRule() == 0`},
	{Number: 36, Name: "Indo-Pakistani Talks", Type: us, Ops: 3, Remove: true, Mark: true, When: `Country("Pakistan").Gov in [1, 2]`},
	{Number: 37, Name: "Iraqi WMD", Type: us, Ops: 3, Remove: true, Mark: true, When: `USPosture == "Hard" && Country("Iraq").Align == "Adversary"`},
	{Number: 38, Name: "Libyan Deal", Type: us, Ops: 3, Remove: true, Mark: true, When: `Country("Libya").Gov == 3 && (Country("Iraq").Align == "Ally" || Country("Syria").Align == "Ally")`},
	{Number: 39, Name: "Libyan WMD", Type: us, Ops: 3, Remove: true, Mark: true, When: `USPosture == "Hard" && Country("Libya").Align == "Adversary" && not HasMarker("Libyan Deal")`},
	{Number: 40, Name: "Mass Turnout", Type: us, Ops: 3, When: `NumRegimeChange() > 0`},
	{Number: 41, Name: "NATO", Type: us, Ops: 3, Mark: true, When: `NumRegimeChange() > 0 && GWOT() >= 0`},
	{Number: 42, Name: "Pakistani Offensive", Type: us, Ops: 3, When: `Country("Pakistan").Align == "Ally" && "FATA" in Country("Pakistan").Markers`},
	{Number: 43, Name: "Patriot Act", Type: us, Ops: 3, Remove: true, Mark: true},
	{Number: 44, Name: "Renditions", Type: us, Ops: 3, Mark: true, When: `USPosture == "Hard" && not HasMarker("Leak-Renditions")`},
	{Number: 45, Name: "Safer Now", Type: us, Ops: 3, When: `NumIslamistRule() == 0 && none(Countries, {.Gov == 1 && (.Cells > 0 || .Plots > 0)})`},
	{Number: 46, Name: "Sistani", Type: us, Ops: 3, When: `any(Countries, {.Culture == "Shia-Mix" && .RegimeChange && .Cells > 0})`},
	{Number: 47, Name: "The door of Itjihad was closed", Type: us, Ops: 3, Lapsing: true},

	{Number: 48, Name: "Adam Gadahn", Type: jih, Ops: 1, PutsCell: true, When: `CellsAvailable() > 0 && ` + firstCard},
	{Number: 49, Name: "Al-Ittihad al-Islami", Type: jih, Ops: 1, Remove: true, PutsCell: true},
	{Number: 50, Name: "Ansar al-Islam", Type: jih, Ops: 1, Remove: true, PutsCell: true, When: `Country("Iraq").Gov > 1`},
	{Number: 51, Name: "FREs", Type: jih, Ops: 1, PutsCell: true, When: `Country("Iraq").Troops > 0`},
	{Number: 52, Name: "IEDs", Type: jih, Ops: 1, When: rcWithCells},
	{Number: 53, Name: "Madrassas", Type: jih, Ops: 1, PutsCell: true, When: firstCard},
	{Number: 54, Name: "Moqtada al-Sadr", Type: jih, Ops: 1, Remove: true, Mark: true, When: `Country("Iraq").Troops > 0`},
	{Number: 55, Name: "Uyghur Jihad", Type: jih, Ops: 1, Remove: true, PutsCell: true},
	{Number: 56, Name: "Vieira de Mello Slain", Type: jih, Ops: 1, Remove: true, Mark: true, When: `any(Countries, {.RegimeChange && .CellsNoSadr > 0})`},
	{Number: 57, Name: "Abu Sayyaf", Type: jih, Ops: 2, Remove: true, Mark: true, PutsCell: true, When: `not HasMarker("Moro Talks")`},
	{Number: 58, Name: "Al-Anbar", Type: jih, Ops: 2, Remove: true, Mark: true, PutsCell: true, When: `not HasMarker("Anbar Awakening")`},
	{Number: 59, Name: "Amerithrax", Type: jih, Ops: 2},
	{Number: 60, Name: "Bhutto Shot", Type: jih, Ops: 2, Remove: true, Mark: true, When: `Country("Pakistan").CellsNoSadr > 0`},
	{Number: 61, Name: "Detainee Release", Type: jih, Ops: 2, PutsCell: true, When: `not IsLapsing("GTMO") && not HasMarker("Renditions") && Ask("Did the US Disrupt during this or the last Action Phase?")`},
	{Number: 62, Name: "Ex-KGB", Type: jih, Ops: 2},
	{Number: 63, Name: "Gaza War", Type: jih, Ops: 2},
	{Number: 64, Name: "Hariri Killed", Type: jih, Ops: 2, Remove: true},
	{Number: 65, Name: "HEU", Type: jih, Ops: 2, Remove: true, When: russiaHEU + ` || ` + centralAsiaHEU},
	{Number: 66, Name: "Homegrown", Type: jih, Ops: 2, PutsCell: true},
	{Number: 67, Name: "Islamic Jihad Union", Type: jih, Ops: 2, Remove: true, PutsCell: true},
	{Number: 68, Name: "Jemaah Islamiya", Type: jih, Ops: 2, PutsCell: true},
	{Number: 69, Name: "Kazakh Strain", Type: jih, Ops: 2, Remove: true, When: centralAsiaHEU},
	{Number: 70, Name: "Lashkar-e-Tayyiba", Type: jih, Ops: 2, PutsCell: true, When: `not HasMarker("Indo-Pakistani Talks")`},
	{Number: 71, Name: "Loose Nuke", Type: jih, Ops: 2, Remove: true, When: russiaHEU},
	{Number: 72, Name: "Opium", Type: jih, Ops: 2, PutsCell: true, When: `Country("Afghanistan").CellsNoSadr > 0`},
	{Number: 73, Name: "Pirates", Type: jih, Ops: 2, Remove: true, Mark: true, When: `Country("Somalia").Gov == 4 || Country("Yemen").Gov == 4`},
	{Number: 74, Name: "Schengen Visas", Type: jih, Ops: 2},
	{Number: 75, Name: "Schroeder & Chirac", Type: jih, Ops: 2, When: `USPosture == "Hard"`},
	{Number: 76, Name: "Abu Ghurayb", Type: jih, Ops: 3, Remove: true, When: rcWithCells},
	{Number: 77, Name: "Al Jazeera", Type: jih, Ops: 3, When: `TroopsNear("Saudi Arabia")`},
	{Number: 78, Name: "Axis of Evil", Type: jih, Ops: 3},
	{Number: 79, Name: "Clean Operatives", Type: jih, Ops: 3},
	{Number: 80, Name: "FATA", Type: jih, Ops: 3, Mark: true, PutsCell: true},
	{Number: 81, Name: "Foreign Fighters", Type: jih, Ops: 3, PutsCell: true, When: `NumRegimeChange() > 0`},
	{Number: 82, Name: "Jihadist Videos", Type: jih, Ops: 3, PutsCell: true},
	{Number: 83, Name: "Kashmir", Type: jih, Ops: 3, PutsCell: true, When: `not HasMarker("Indo-Pakistani Talks")`},
	{Number: 84, Name: "Leak", Type: jih, Ops: 3, When: leak},
	{Number: 85, Name: "Leak", Type: jih, Ops: 3, When: leak},
	{Number: 86, Name: "Lebanon War", Type: jih, Ops: 3, PutsCell: true},
	{Number: 87, Name: "Martyrdom Operation", Type: jih, Ops: 3, When: martyrdom},
	{Number: 88, Name: "Martyrdom Operation", Type: jih, Ops: 3, When: martyrdom},
	{Number: 89, Name: "Martyrdom Operation", Type: jih, Ops: 3, When: martyrdom},
	{Number: 90, Name: "Quagmire", Type: jih, Ops: 3, When: `Prestige < 7 && ` + rcWithCells},
	{Number: 91, Name: "Regional al-Qaeda", Type: jih, Ops: 3, PutsCell: true, When: `count(Countries, {(.Culture == "Suni" || .Culture == "Shia-Mix") && .Gov == 0}) >= 2`},
	{Number: 92, Name: "Saddam", Type: jih, Ops: 3, When: `not HasMarker("Saddam Captured") && Country("Iraq").Gov == 3 && Country("Iraq").Align == "Adversary"`},
	{Number: 93, Name: "Taliban", Type: jih, Ops: 3, PutsCell: true},
	{Number: 94, Name: "The door of Itjihad was closed", Type: jih, Ops: 3, When: `Ask("Was a country tested or improved to Fair or Good this or last Action Phase?")`},
	{Number: 95, Name: "Wahhabism", Type: jih, Ops: 3},

	{Number: 96, Name: "Danish Cartoons", Type: una, Ops: 1, Remove: true},
	{Number: 97, Name: "Fatwa", Type: una, Ops: 1, When: `Ask("Do both sides have cards remaining beyond this one?")`},
	{Number: 98, Name: "Gaza Withdrawal", Type: una, Ops: 1, Remove: true, PutsCell: true},
	{Number: 99, Name: "HAMAS Elected", Type: una, Ops: 1, Remove: true},
	{Number: 100, Name: "Hizb Ut-Tahrir", Type: una, Ops: 1},
	{Number: 101, Name: "Kosovo", Type: una, Ops: 1},
	{Number: 102, Name: "Former Soviet Union", Type: una, Ops: 2},
	{Number: 103, Name: "Hizballah", Type: una, Ops: 2},
	{Number: 104, Name: "Iran", Type: una, Ops: 2},
	{Number: 105, Name: "Iran", Type: una, Ops: 2},
	{Number: 106, Name: "Jaysh al-Mahdi", Type: una, Ops: 2, When: `any(Countries, {.Culture == "Shia-Mix" && .Troops > 0 && .CellsNoSadr > 0})`},
	{Number: 107, Name: "Kurdistan", Type: una, Ops: 2},
	{Number: 108, Name: "Musharraf", Type: una, Ops: 2, When: `not HasMarker("Benazir Bhutto") && Country("Pakistan").CellsNoSadr > 0`},
	{Number: 109, Name: "Tora Bora", Type: una, Ops: 2, Remove: true, When: `any(Countries, {.RegimeChange && .CellsNoSadr >= 2})`},
	{Number: 110, Name: "Zarqawi", Type: una, Ops: 2, PutsCell: true, When: `any(["Iraq", "Syria", "Lebanon", "Jordan"], {Country(#).Troops > 0})`},
	{Number: 111, Name: "Zawahiri", Type: una, Ops: 2, When: usQuietFront},
	{Number: 112, Name: "Bin Ladin", Type: una, Ops: 3, When: usQuietFront},
	{Number: 113, Name: "Darfur", Type: una, Ops: 3},
	{Number: 114, Name: "GTMO", Type: una, Ops: 3, Lapsing: true},
	{Number: 115, Name: "Hambali", Type: una, Ops: 3, When: `len(HambaliTargets()) > 0`},
	{Number: 116, Name: "KSM", Type: una, Ops: 3, When: `Side == "Jihadist" || any(Countries, {.Plots > 0 && (.Culture == "Non-Muslim" || .Align == "Ally")})`},
	{Number: 117, Name: "Oil Price Spike", Type: una, Ops: 3, Lapsing: true},
	{Number: 118, Name: "Oil Price Spike", Type: una, Ops: 3, Lapsing: true},
	{Number: 119, Name: "Saleh", Type: una, Ops: 3},
	{Number: 120, Name: "US Election", Type: una, Ops: 3},
}
