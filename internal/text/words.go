package text

// AbilityWords are the named ability words italicized in rules text.
// Each appears at the head of an ability line followed by an em dash.
var AbilityWords = []string{
	"Adamant",
	"Addendum",
	"Alliance",
	"Battalion",
	"Bloodrush",
	"Boast",
	"Channel",
	"Chroma",
	"Cohort",
	"Constellation",
	"Converge",
	"Council's dilemma",
	"Coven",
	"Delirium",
	"Domain",
	"Eminence",
	"Enrage",
	"Fateful hour",
	"Ferocious",
	"Formidable",
	"Grandeur",
	"Hellbent",
	"Heroic",
	"Imprint",
	"Inspired",
	"Join forces",
	"Kinship",
	"Landfall",
	"Lieutenant",
	"Magecraft",
	"Metalcraft",
	"Morbid",
	"Pack tactics",
	"Parley",
	"Radiance",
	"Raid",
	"Rally",
	"Revolt",
	"Spell mastery",
	"Strive",
	"Sweep",
	"Tempting offer",
	"Threshold",
	"Undergrowth",
	"Will of the council",
}
