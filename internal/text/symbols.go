// Package text plans how card text maps onto styled runs: mana symbol
// substitution, italic ranges for reminder and flavor text, reminder
// stripping and the centering rule. Everything here is pure computation;
// applying the result to a document is the template engine's job.
package text

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// Font names expected by the template documents.
const (
	FontRules       = "PlantinMTPro-Regular"
	FontRulesBold   = "PlantinMTPro-Bold"
	FontRulesItalic = "PlantinMTPro-Italic"
	FontMana        = "NDPMTG"
	FontTitles      = "Beleren Small Caps Bold"
	FontCollector   = "Relay-Medium"
)

// Paragraph leading values, in points at base text size.
const (
	LineBreakLead         = 2.4
	FlavorTextLead        = 4.4
	FlavorTextLeadDivider = 7
	ModalIndent           = 5.7
)

// Glyph colors for the mana font. Regular black mana shares the colorless
// gray; hybrid halves use the darker shade so they read against the pale
// half.
var (
	clrPrimary   = surface.RGB(0, 0, 0)
	clrSecondary = surface.RGB(255, 255, 255)
	clrColorless = surface.RGB(204, 194, 193)
	clrW         = surface.RGB(255, 251, 214)
	clrU         = surface.RGB(170, 224, 250)
	clrB         = surface.RGB(204, 194, 193)
	clrBHybrid   = surface.RGB(159, 146, 143)
	clrR         = surface.RGB(249, 169, 143)
	clrG         = surface.RGB(154, 211, 175)
)

//go:embed symbols.json
var symbolsJSON []byte

// Symbol is one mana-notation entry: the characters that draw it in the
// mana font and the color of each character, in order.
type Symbol struct {
	Glyphs string
	Colors []surface.Color
}

// SymbolMap is the read-only notation-to-glyph table. It is loaded once
// and shared across renders.
type SymbolMap struct {
	symbols map[string]Symbol
}

// LoadSymbolMap parses the embedded symbol table and resolves the glyph
// colors for every entry.
func LoadSymbolMap() (*SymbolMap, error) {
	var glyphs map[string]string
	if err := json.Unmarshal(symbolsJSON, &glyphs); err != nil {
		return nil, fmt.Errorf("parse symbol table: %w", err)
	}
	symbols := make(map[string]Symbol, len(glyphs))
	for notation, g := range glyphs {
		colors, err := symbolColors(notation, utf8.RuneCountInString(g))
		if err != nil {
			return nil, err
		}
		if len(colors) != utf8.RuneCountInString(g) {
			return nil, fmt.Errorf("symbol %q: %d glyphs but %d colors", notation, utf8.RuneCountInString(g), len(colors))
		}
		symbols[notation] = Symbol{Glyphs: g, Colors: colors}
	}
	return &SymbolMap{symbols: symbols}, nil
}

// Lookup returns the glyph entry for a notation like "{W}" or "{2/G}".
func (m *SymbolMap) Lookup(notation string) (Symbol, bool) {
	s, ok := m.symbols[notation]
	return s, ok
}

var (
	phyrexianPattern       = regexp.MustCompile(`^\{([WUBRG])/P\}$`)
	phyrexianHybridPattern = regexp.MustCompile(`^\{([WUBRG])/([WUBRG])/P\}$`)
	hybridPattern          = regexp.MustCompile(`^\{([2WUBRG])/([WUBRG])\}$`)
	normalSymbolPattern    = regexp.MustCompile(`^\{([WUBRG])\}$`)
)

var symbolColorMap = map[string]surface.Color{
	"W": clrW, "U": clrU, "B": clrB, "R": clrR, "G": clrG, "2": clrColorless,
}

var hybridSymbolColorMap = map[string]surface.Color{
	"W": clrW, "U": clrU, "B": clrBHybrid, "R": clrR, "G": clrG, "2": clrColorless,
}

// symbolColors resolves the per-glyph colors of a mana notation. Glyph
// order is outline-last: colored fills come first, black outlines after.
func symbolColors(notation string, glyphCount int) ([]surface.Color, error) {
	switch notation {
	case "{E}", "{CHAOS}":
		return []surface.Color{clrPrimary}, nil
	case "{S}":
		return []surface.Color{clrColorless, clrPrimary, clrSecondary}, nil
	case "{Q}":
		return []surface.Color{clrPrimary, clrSecondary}, nil
	}

	if m := phyrexianPattern.FindStringSubmatch(notation); m != nil {
		return []surface.Color{hybridSymbolColorMap[m[1]], clrPrimary}, nil
	}
	if m := phyrexianHybridPattern.FindStringSubmatch(notation); m != nil {
		return []surface.Color{symbolColorMap[m[2]], symbolColorMap[m[1]], clrPrimary}, nil
	}
	if m := hybridPattern.FindStringSubmatch(notation); m != nil {
		colorMap := symbolColorMap
		if m[1] == "2" {
			// Generic hybrids use the darker black so the B half reads.
			colorMap = hybridSymbolColorMap
		}
		return []surface.Color{colorMap[m[2]], colorMap[m[1]], clrPrimary, clrPrimary}, nil
	}
	if m := normalSymbolPattern.FindStringSubmatch(notation); m != nil {
		return []surface.Color{symbolColorMap[m[1]], clrPrimary}, nil
	}

	if glyphCount == 2 {
		return []surface.Color{clrColorless, clrPrimary}, nil
	}
	return nil, fmt.Errorf("no color recipe for symbol %q", notation)
}
