// Package template renders a normalized card onto a template document
// through a fixed execution pipeline. A template is assembled from a Spec
// that selects a document file and the capabilities that plan its text and
// enable its frame; the Engine drives the seventeen pipeline steps against
// the shared rendering surface.
package template

import "github.com/ramonehamilton/proxyforge/internal/surface"

// Layer and group names shared across the template documents. The frame
// families keep this naming stable so one engine can address any of them.
const (
	// Art layer and references
	LayerDefault              = "Layer 1"
	LayerArtFrame             = "Art Frame"
	LayerFullArtFrame         = "Full Art Frame"
	LayerBasicArtFrame        = "Basic Art Frame"
	LayerPlaneswalkerArtFrame = "Planeswalker Art Frame"
	LayerScanFrame            = "Scryfall Scan Frame"
	LayerScanReference        = "Scryfall Reference"

	// Text and icons
	GroupTextAndIcons         = "Text and Icons"
	LayerName                 = "Card Name"
	LayerNameShift            = "Card Name Shift"
	LayerType                 = "Typeline"
	LayerTypeShift            = "Typeline Shift"
	LayerManaCost             = "Mana Cost"
	LayerExpansionSymbol      = "Expansion Symbol"
	LayerExpansionReference   = "Expansion Reference"
	LayerPT                   = "Power / Toughness"
	LayerFlipsidePT           = "Flipside Power / Toughness"
	LayerRulesText            = "Rules Text"
	LayerRulesCreature        = "Rules Text - Creature"
	LayerRulesNoncreature     = "Rules Text - Noncreature"
	LayerRulesCreatureFlip    = "Rules Text - Creature Flip"
	LayerRulesNoncreatureFlip = "Rules Text - Noncreature Flip"
	LayerMutate               = "Mutate"
	LayerMutateReference      = "Mutate Reference"
	LayerDivider              = "Divider"
	LayerDividerTF            = "Divider TF"
	LayerTextboxReference     = "Textbox Reference"
	LayerPTReference          = "PT Adjustment Reference"
	LayerPTTopReference       = "PT Top Reference"

	// Raster frame groups
	GroupTwins             = "Name & Title Boxes"
	GroupPTBox             = "PT Box"
	GroupPTLevelBoxes      = "PT and Level Boxes"
	GroupPinlinesTextbox   = "Pinlines & Textbox"
	GroupLandPinlines      = "Land Pinlines & Textbox"
	GroupSagaStripe        = "Pinlines & Saga Stripe"
	GroupBackground        = "Background"
	GroupNyx               = "Nyx"
	GroupCrown             = "Legendary Crown"
	GroupColorIndicator    = "Color Indicator"
	LayerCompanion         = "Companion"
	LayerShadows           = "Shadows"
	LayerHollowCrownShadow = "Hollow Crown Shadow"

	// Border
	GroupBorder          = "Border"
	LayerNormalBorder    = "Normal Border"
	LayerLegendaryBorder = "Legendary Border"
	LayerBorderNormal    = "Normal"
	LayerBorderLegendary = "Legendary"

	// Vector frame groups and shapes
	GroupPinlines            = "Pinlines"
	GroupTextbox             = "Textbox"
	GroupShape               = "Shape"
	LayerShapeNormal         = "Normal"
	LayerShapeTransform      = "Transform"
	LayerShapeTransformFront = "Transform Front"
	LayerShapeTransformBack  = "Transform Back"

	// Blend masks
	GroupMasks = "Masks"
	LayerHalf  = "Half"

	// Collector info
	GroupLegal           = "Legal"
	GroupCollector       = "Collector"
	LayerArtist          = "Artist"
	LayerSet             = "Set"
	LayerCreator         = "Creator"
	LayerCollectorTop    = "Top"
	LayerCollectorBottom = "Bottom"

	// Double faced cards
	GroupTFFront    = "tf-front"
	GroupTFBack     = "tf-back"
	GroupMDFCFront  = "mdfc-front"
	GroupMDFCBack   = "mdfc-back"
	GroupTransform  = "Transform"
	GroupMDFCTop    = "Top"
	GroupMDFCBottom = "Bottom"
	LayerMDFCLeft   = "Left"
	LayerMDFCRight  = "Right"
	LayerBack       = "Back"

	// Saga
	GroupSaga                 = "Saga"
	GroupCircle               = "Circle"
	LayerSagaText             = "Text"
	LayerReminderText         = "Reminder Text"
	LayerDescriptionReference = "Description Reference"
	LayerTFTwins              = "TF Twins"

	// Class
	GroupClass      = "Class"
	GroupStage      = "Stage"
	LayerClassText  = "Text"
	LayerStageCost  = "Cost"
	LayerStageLevel = "Level"

	// Planeswalker
	GroupPW3             = "pw-3"
	GroupPW4             = "pw-4"
	GroupLoyalty         = "Loyalty Graphics"
	GroupStartingLoyalty = "Starting Loyalty"
	GroupAbilityDividers = "Ability Dividers"
	GroupRaggedLines     = "Ragged Lines"
	LayerStaticText      = "Static Text"
	LayerAbilityText     = "Ability Text"
	LayerColon           = "Colon"
	LayerLoyaltyText     = "Text"
	LayerLoyaltyCost     = "Cost"
	LayerPWAdjustmentRef = "PW Adjustment Reference"
	LayerPWTopRef        = "PW Top Reference"

	// Planar
	LayerStaticAbility = "Static Ability"
	LayerChaosAbility  = "Chaos Ability"
	LayerChaosSymbol   = "Chaos Symbol"

	// Leveler
	GroupLevelerText     = "Leveler Text"
	LayerLevelUpText     = "Rules Text - Level Up"
	LayerTopPT           = "Top Power / Toughness"
	LayerMiddleLevel     = "Middle Level"
	LayerMiddlePT        = "Middle Power / Toughness"
	LayerLevelsXYText    = "Rules Text - Levels X-Y"
	LayerBottomLevel     = "Bottom Level"
	LayerBottomPT        = "Bottom Power / Toughness"
	LayerLevelsZPlusText = "Rules Text - Levels Z+"

	// Adventure
	LayerNameAdventure       = "Card Name - Adventure"
	LayerManaCostAdventure   = "Mana Cost - Adventure"
	LayerTypeAdventure       = "Typeline - Adventure"
	LayerRulesAdventure      = "Rules Text - Adventure"
	LayerTextboxRefAdventure = "Textbox Reference - Adventure"

	// Prototype
	GroupProtoTextbox       = "Prototype Textbox"
	GroupProtoManaboxSmall  = "Prototype Manabox 2"
	GroupProtoManaboxMedium = "Prototype Manabox 3"
	GroupProtoPTBox         = "Prototype PT Box"
	LayerProtoRules         = "Prototype Rules Text"
	LayerProtoManaCost      = "Prototype Mana Cost"
	LayerProtoPT            = "Prototype Power / Toughness"
)

// namedColors are the recognized border color settings.
var namedColors = map[string]surface.Color{
	"black":  surface.RGB(0, 0, 0),
	"white":  surface.RGB(255, 255, 255),
	"silver": surface.RGB(167, 177, 186),
	"gold":   surface.RGB(166, 135, 75),
}

// watermarkColors maps a pinline frame key to the watermark tint for that
// color. Two-color frames blend two entries in a gradient overlay.
var watermarkColors = map[string]surface.Color{
	"W":         surface.RGB(183, 157, 88),
	"U":         surface.RGB(140, 172, 197),
	"B":         surface.RGB(94, 94, 94),
	"R":         surface.RGB(198, 109, 57),
	"G":         surface.RGB(89, 140, 82),
	"Gold":      surface.RGB(202, 179, 77),
	"Land":      surface.RGB(94, 84, 72),
	"Artifact":  surface.RGB(100, 125, 134),
	"Colorless": surface.RGB(100, 125, 134),
}

// pinlineColors maps frame keys to the fill colors used when a vector
// template generates its pinlines.
var pinlineColors = map[string]surface.Color{
	"W":         surface.RGB(252, 254, 255),
	"U":         surface.RGB(0, 117, 190),
	"B":         surface.RGB(39, 38, 36),
	"R":         surface.RGB(239, 56, 39),
	"G":         surface.RGB(0, 123, 67),
	"Gold":      surface.RGB(246, 210, 98),
	"Land":      surface.RGB(136, 120, 98),
	"Artifact":  surface.RGB(194, 210, 221),
	"Colorless": surface.RGB(194, 210, 221),
}

// rarityGradients holds the gradient overlay stops of the expansion symbol
// per rarity letter. Common carries no overlay and is absent.
var rarityGradients = map[string][]surface.GradientStop{
	"u": {
		{Color: surface.RGB(98, 110, 119), Location: 0, Midpoint: 50},
		{Color: surface.RGB(199, 225, 241), Location: 0.5, Midpoint: 50},
		{Color: surface.RGB(98, 110, 119), Location: 1, Midpoint: 50},
	},
	"r": {
		{Color: surface.RGB(146, 116, 67), Location: 0, Midpoint: 50},
		{Color: surface.RGB(213, 180, 109), Location: 0.5, Midpoint: 50},
		{Color: surface.RGB(146, 116, 67), Location: 1, Midpoint: 50},
	},
	"m": {
		{Color: surface.RGB(192, 55, 38), Location: 0, Midpoint: 50},
		{Color: surface.RGB(245, 149, 29), Location: 0.5, Midpoint: 50},
		{Color: surface.RGB(192, 55, 38), Location: 1, Midpoint: 50},
	},
}

// pinlineGradient converts a frame color combination into the fill notation
// of a generated pinline layer: one color yields a solid fill, two and
// three colors yield gradient stops with hard transitions near the center.
func pinlineGradient(colors string) (surface.Color, []surface.GradientStop) {
	if c, ok := pinlineColors[colors]; ok {
		return c, nil
	}
	pick := func(key byte) surface.Color {
		if c, ok := pinlineColors[string(key)]; ok {
			return c
		}
		return surface.Color{}
	}
	switch len(colors) {
	case 2:
		return surface.Color{}, []surface.GradientStop{
			{Color: pick(colors[0]), Location: 0.4, Midpoint: 50},
			{Color: pick(colors[1]), Location: 0.6, Midpoint: 50},
		}
	case 3:
		return surface.Color{}, []surface.GradientStop{
			{Color: pick(colors[0]), Location: 0.26, Midpoint: 50},
			{Color: pick(colors[1]), Location: 0.36, Midpoint: 50},
			{Color: pick(colors[1]), Location: 0.64, Midpoint: 50},
			{Color: pick(colors[2]), Location: 0.74, Midpoint: 50},
		}
	case 1:
		return pick(colors[0]), nil
	}
	return pinlineColors["Artifact"], nil
}
