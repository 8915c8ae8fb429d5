package layout

import "fmt"

// Class identifies which template family renders a card. Classes are
// finer grained than Scryfall layouts: one layout can map to several
// classes depending on face, type line and keywords.
type Class string

const (
	ClassNormal         Class = "normal"
	ClassTransformFront Class = "transform_front"
	ClassTransformBack  Class = "transform_back"
	ClassIxalan         Class = "ixalan"
	ClassMDFCFront      Class = "mdfc_front"
	ClassMDFCBack       Class = "mdfc_back"
	ClassMutate         Class = "mutate"
	ClassAdventure      Class = "adventure"
	ClassLeveler        Class = "leveler"
	ClassSaga           Class = "saga"
	ClassClass          Class = "class"
	ClassMiracle        Class = "miracle"
	ClassPlaneswalker   Class = "planeswalker"
	ClassPWTFFront      Class = "pw_tf_front"
	ClassPWTFBack       Class = "pw_tf_back"
	ClassPWMDFCFront    Class = "pw_mdfc_front"
	ClassPWMDFCBack     Class = "pw_mdfc_back"
	ClassSnow           Class = "snow"
	ClassBasic          Class = "basic"
	ClassPlanar         Class = "planar"
	ClassPrototype      Class = "prototype"
	ClassToken          Class = "token"
)

// Transform icon layer names. These match the Scryfall frame_effects
// values for double-faced cards, which the template documents reuse as
// layer names.
const (
	IconSunMoon     = "sunmoondfc"
	IconCompassLand = "compasslanddfc"
	IconOriginPW    = "originpwdfc"
	IconMoonEldrazi = "mooneldrazidfc"
	IconWaxingMoon  = "waxingandwaningmoondfc"
	IconConvert     = "convertdfc"
	IconFan         = "fandfc"
	IconUpsideDown  = "upsidedowndfc"
	IconLand        = "land"
	IconMeld        = "meld"
)

// transformIcons lists the frame effects that double as icon layer names.
var transformIcons = []string{
	IconSunMoon,
	IconCompassLand,
	IconOriginPW,
	IconMoonEldrazi,
	IconWaxingMoon,
	IconConvert,
	IconFan,
	IconUpsideDown,
}

// Ability is one planeswalker ability. Activated abilities carry a
// loyalty cost; static abilities carry only text.
type Ability struct {
	Cost   string `json:"cost,omitempty"`
	Text   string `json:"text"`
	Static bool   `json:"static"`
}

// SagaLine is one chapter ability of a Saga, possibly shared between
// several chapter icons ("I, II").
type SagaLine struct {
	Text  string   `json:"text"`
	Icons []string `json:"icons"`
}

// ClassLine is one level band of a Class enchantment. The first band has
// level 1 and no cost.
type ClassLine struct {
	Cost  string `json:"cost,omitempty"`
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// LevelerText holds the three text bands of a Level-Up creature.
type LevelerText struct {
	LevelUpText          string `json:"level_up_text"`
	MiddleLevel          string `json:"middle_level"`
	MiddlePowerToughness string `json:"middle_power_toughness"`
	LevelsXYText         string `json:"levels_x_y_text"`
	BottomLevel          string `json:"bottom_level"`
	BottomPowerToughness string `json:"bottom_power_toughness"`
	LevelsZPlusText      string `json:"levels_z_plus_text"`
}

// Adventure is the spell half of an adventure card.
type Adventure struct {
	Name       string `json:"name"`
	ManaCost   string `json:"mana_cost"`
	TypeLine   string `json:"type_line"`
	OracleText string `json:"oracle_text"`
}

// Prototype holds the alternate casting figures of a Prototype creature.
type Prototype struct {
	ManaCost       string `json:"mana_cost"`
	PowerToughness string `json:"power_toughness"`
	Color          string `json:"color"`
}

// Card is the normalized model one render works from. It is built once
// from Scryfall data and never mutated afterwards: every flag and derived
// field is computed at construction.
type Card struct {
	// Identity
	Name     string
	FaceName string // requested name, picks the face on multi-faced prints
	Class    Class
	Layout   string // Scryfall layout string
	Language string // uppercase, "EN" when the print carries none

	// Collector info
	SetCode         string
	CollectorNumber string // digits only, zero padded to 3
	Count           string // set size for the "123/264" line, empty to omit
	Rarity          string // clamped to common/uncommon/rare/mythic
	RarityLetter    string
	Artist          string
	CreatorName     string
	WatermarkID     string

	// Text
	ManaCost      string
	TypeLine      string
	TypeLineRaw   string // always English
	OracleText    string
	OracleTextRaw string
	FlavorText    string
	Power         string
	Toughness     string
	Loyalty       string

	// Colors
	ColorIdentity  []string
	ColorIndicator string // ordered frame key, empty when absent

	// Classification flags, derived once from raw card data
	IsCreature        bool
	IsLegendary       bool
	IsLand            bool
	IsArtifact        bool
	IsVehicle         bool
	IsHybrid          bool
	IsColorless       bool
	IsNyx             bool
	IsCompanion       bool
	IsTransform       bool
	IsMDFC            bool
	IsFrontFace       bool
	HasColorIndicator bool

	// Frame keys
	Twins      string
	Pinlines   string
	Background string
	Identity   string

	// Reference scan
	ScanURL string

	// Linked face data, empty on single-faced cards
	TransformIcon      string
	OtherFaceName      string
	OtherFacePower     string
	OtherFaceToughness string
	OtherFaceLeft      string // type line tail shown bottom left on MDFC
	OtherFaceRight     string // mana cost or land tap line, bottom right
	OtherFaceTwins     string

	// Class-specific data
	SagaDescription string
	SagaLines       []SagaLine
	Abilities       []Ability
	ClassLines      []ClassLine
	Leveler         *LevelerText
	Adventure       *Adventure
	Prototype       *Prototype
	MutateText      string
}

// String formats the card the way render logs and output filenames
// identify it.
func (c *Card) String() string {
	return fmt.Sprintf("%s [%s] {%s}", c.Name, c.SetCode, c.CollectorNumber)
}

// DisplayName is the name shown in console output and used for saved
// files. Tokens are suffixed so they never collide with the real card.
func (c *Card) DisplayName() string {
	if c.Class == ClassToken {
		return c.Name + " Token"
	}
	return c.Name
}

// CollectorTop is the "123/264 R" line printed above the artist info.
func (c *Card) CollectorTop() string {
	if c.Count != "" {
		return fmt.Sprintf("%s/%s %s", c.CollectorNumber, c.Count, c.RarityLetter)
	}
	return fmt.Sprintf("%s %s", c.CollectorNumber, c.RarityLetter)
}

// IsDoubleFaced reports whether the card links to another face.
func (c *Card) IsDoubleFaced() bool {
	return c.IsTransform || c.IsMDFC
}
