// Package layout builds the normalized, immutable-per-render card model:
// one Card per face, classification flags derived once, and the frame
// analysis that maps card data onto frame-naming keys.
package layout

import (
	"sort"
	"strings"
)

// Frame keys. Single letters name color regions; the rest name special
// frames. Keys are lookup strings into the template naming convention,
// not colors.
const (
	White     = "W"
	Blue      = "U"
	Black     = "B"
	Red       = "R"
	Green     = "G"
	WUBRG     = "WUBRG"
	Artifact  = "Artifact"
	Colorless = "Colorless"
	Land      = "Land"
	Gold      = "Gold"
	Vehicle   = "Vehicle"
)

// colorLetters is the canonical WUBRG ordering.
var colorLetters = []string{White, Blue, Black, Red, Green}

// Supported multicolor frame combinations, in canonical order.
var (
	colorPairs = []string{"WU", "UB", "BR", "RG", "GW", "WB", "BG", "GU", "UR", "RW"}
	colorTrios = []string{"GWU", "WUB", "UBR", "BRG", "RGW", "WBG", "URW", "BGU", "RWB", "GUR"}
	colorQuads = []string{"WUBR", "UBRG", "BRGW", "RGWU", "GWUB"}
)

var colorLookup = map[int]map[string]string{
	2: sortedKeyTable(colorPairs),
	3: sortedKeyTable(colorTrios),
	4: sortedKeyTable(colorQuads),
}

func sortedKeyTable(combos []string) map[string]string {
	table := make(map[string]string, len(combos))
	for _, combo := range combos {
		table[sortLetters(combo)] = combo
	}
	return table
}

func sortLetters(s string) string {
	letters := strings.Split(s, "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

// Basic land types and the color letter each one implies.
var landTypes = map[string]string{
	"Plains":   White,
	"Island":   Blue,
	"Swamp":    Black,
	"Mountain": Red,
	"Forest":   Green,
}

var monoSymbols = []string{"{W}", "{U}", "{B}", "{R}", "{G}"}

var hybridSymbols = []string{"W/U", "U/B", "B/R", "R/G", "G/W", "W/B", "B/G", "G/U", "U/R", "R/W"}

// FrameDetails names the frame regions of one card face.
type FrameDetails struct {
	Background  string
	Pinlines    string
	Twins       string
	Identity    string
	IsColorless bool
	IsHybrid    bool
}

// FrameInput is the slice of card-face data frame analysis reads. A nil
// ColorIdentity falls back to Colors, mirroring how faces omit identity.
type FrameInput struct {
	ManaCost       string
	TypeLine       string
	OracleText     string
	ColorIdentity  []string
	ColorIndicator []string
	Colors         []string
	IsFace         bool
}

// OrderedColors arranges color identity letters into the canonical frame
// order. Unsupported combinations collapse to "", five or more colors to
// WUBRG.
func OrderedColors(text string) string {
	switch {
	case text == "":
		return ""
	case len(text) == 1:
		return text
	case len(text) < 5:
		return colorLookup[len(text)][sortLetters(text)]
	}
	return WUBRG
}

// ManaCostColors returns the color letters present in a mana cost, in
// WUBRG order.
func ManaCostColors(manaCost string) string {
	if manaCost == "" {
		return ""
	}
	var b strings.Builder
	for _, c := range colorLetters {
		if strings.Contains(manaCost, c) {
			b.WriteString(c)
		}
	}
	return b.String()
}

// nonlandColorIdentity guesses a nonland card's frame color identity from
// a priority list: explicit all-colors text, then color indicator or the
// color list when the card has no real mana cost, then the mana cost.
func nonlandColorIdentity(in FrameInput) string {
	if strings.Contains(in.OracleText, " is all colors.") {
		return WUBRG
	}
	if in.ManaCost == "" || (in.ManaCost == "{0}" && !strings.Contains(in.TypeLine, Artifact)) {
		if len(in.ColorIndicator) > 0 {
			return OrderedColors(strings.Join(in.ColorIndicator, ""))
		}
		colorList := in.ColorIdentity
		if colorList == nil {
			colorList = in.Colors
		}
		if len(colorList) > 0 {
			return OrderedColors(strings.Join(colorList, ""))
		}
		return ""
	}
	return OrderedColors(ManaCostColors(in.ManaCost))
}

// isHybrid reports whether a card renders with the hybrid frame: exactly
// two colors, and a mana cost made only of hybrid symbols. A costless
// single-faced two-color card also qualifies.
func isHybrid(identity, manaCost string, isFace bool) bool {
	if len(identity) != 2 {
		return false
	}
	for _, sym := range monoSymbols {
		if strings.Contains(manaCost, sym) {
			return false
		}
	}
	if manaCost == "" && !isFace {
		return true
	}
	for _, sym := range hybridSymbols {
		if strings.Contains(manaCost, sym) {
			return true
		}
	}
	return false
}

// AnalyzeFrame decides pinlines, background, twins and identity keys for
// one card face.
func AnalyzeFrame(in FrameInput) FrameDetails {
	if strings.Contains(in.TypeLine, Land) {
		return landFrame(in)
	}
	return nonlandFrame(in)
}

func landFrame(in FrameInput) FrameDetails {
	result := FrameDetails{
		Background: Land,
		Pinlines:   Land,
		Twins:      Land,
		Identity:   Land,
	}

	var twins string
	var basicIdentity string
	for _, landType := range typeOrder {
		if strings.Contains(in.TypeLine, landType) {
			basicIdentity += landTypes[landType]
		}
	}
	switch len(basicIdentity) {
	case 1:
		// A single basic type names the title box, pinlines still
		// depend on the rules text (Murmuring Bosk).
		twins = basicIdentity
	case 2:
		identity := OrderedColors(basicIdentity)
		result.Pinlines = identity
		result.Identity = identity
		return result
	}

	basicIdentity = ""
	var colorsTapped string
	for _, line := range strings.Split(in.OracleText, "\n") {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "search your library") {
			if !strings.Contains(lower, "cycling") {
				for _, landType := range typeOrder {
					if strings.Contains(line, landType) {
						basicIdentity += landTypes[landType]
					}
				}
			}
			switch {
			case len(basicIdentity) == 1:
				result.Pinlines = basicIdentity
				result.Twins = basicIdentity
				result.Identity = basicIdentity
				return result
			case len(basicIdentity) == 2:
				identity := OrderedColors(basicIdentity)
				result.Pinlines = identity
				result.Identity = identity
				return result
			case len(basicIdentity) == 3:
				// Panorama lands keep the plain land frame.
				return result
			case strings.Contains(line, "land"):
				// Fetches any basic. Entering tapped without an untap
				// and tutor-to-hand effects stay colorless.
				if (!strings.Contains(line, "tapped") || strings.Contains(line, "untap")) &&
					!strings.Contains(line, "into your hand") {
					result.Pinlines = Gold
					result.Twins = Gold
					result.Identity = Gold
					return result
				}
				return result
			}
		}

		if strings.Contains(lower, "add") && strings.Contains(line, "mana") &&
			containsAny(line, "color ", "colors ", "color.", "colors.", "any type") {
			if !containsAny(line, "enters the battlefield", "Remove a charge counter", "Sacrifice", "luck counter") {
				result.Pinlines = Gold
				result.Twins = Gold
				result.Identity = Gold
				return result
			}
		}

		if strings.Contains(line, "choose a basic land type") {
			result.Pinlines = Gold
			result.Twins = Gold
			result.Identity = Gold
			return result
		}

		if strings.Contains(line, "Each land is a ") {
			for _, landType := range typeOrder {
				if strings.Contains(line, "Each land is a "+landType) {
					color := landTypes[landType]
					result.Pinlines = color
					result.Twins = color
					result.Identity = color
					return result
				}
			}
		}

		if strings.Index(line, "{T}") < strings.Index(line, ":") && strings.Contains(lower, "add ") {
			for _, c := range colorLetters {
				if strings.Contains(line, "{"+c+"}") && !strings.Contains(colorsTapped, c) {
					colorsTapped += c
				}
			}
		}
	}

	identity := OrderedColors(colorsTapped)
	switch {
	case len(identity) == 1:
		result.Pinlines = identity
		result.Identity = identity
		result.Twins = firstNonEmpty(twins, colorsTapped)
	case len(identity) == 2:
		result.Pinlines = identity
		result.Identity = identity
		result.Twins = firstNonEmpty(twins, Land)
	case len(colorsTapped) > 2:
		result.Pinlines = Gold
		result.Identity = identity
		result.Twins = firstNonEmpty(twins, Gold)
	}
	return result
}

func nonlandFrame(in FrameInput) FrameDetails {
	identity := nonlandColorIdentity(in)
	result := FrameDetails{
		Background: identity,
		Pinlines:   identity,
		Twins:      identity,
		Identity:   identity,
	}

	devoid := strings.Contains(in.OracleText, "Devoid") && len(identity) > 0
	colorless := len(identity) == 0 && !strings.Contains(in.TypeLine, Artifact)
	costlessEldrazi := in.ManaCost == "" && strings.Contains(in.TypeLine, "Eldrazi")
	if devoid || colorless || costlessEldrazi {
		if devoid && len(identity) > 1 {
			result.Twins = Gold
			result.Background = Gold
		} else if !devoid {
			result.Twins = Colorless
			result.Background = Colorless
			result.Pinlines = Colorless
			result.Identity = Colorless
		}
		result.IsColorless = true
		return result
	}

	hybrid := isHybrid(identity, in.ManaCost, in.IsFace)
	result.IsHybrid = hybrid

	switch {
	case strings.Contains(in.TypeLine, Vehicle):
		result.Background = Vehicle
	case strings.Contains(in.TypeLine, Artifact):
		result.Background = Artifact
	case len(identity) >= 2 && !hybrid:
		result.Background = Gold
	}

	if len(identity) == 0 {
		result.Pinlines = Artifact
	} else if len(identity) > 2 {
		result.Pinlines = Gold
	}

	if len(identity) == 0 {
		result.Twins = Artifact
	} else if hybrid {
		result.Twins = Land
	} else if len(identity) >= 2 {
		result.Twins = Gold
	}

	return result
}

// typeOrder fixes the iteration order over landTypes so repeated analysis
// of the same card is deterministic.
var typeOrder = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
