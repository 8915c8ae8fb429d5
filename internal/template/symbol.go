package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// setSymbols maps set codes to expansion symbol glyphs in the bundled
// symbol font. A value of two or more characters is an alias to another
// entry. "MTG" is the generic fallback symbol.
var setSymbols = map[string]string{
	"LEA": "\ue600", "LEB": "\ue601", "2ED": "\ue602", "ARN": "\ue603", "ATQ": "\ue604",
	"3ED": "\ue605", "LEG": "\ue606", "DRK": "\ue607", "FEM": "\ue608", "4ED": "\ue609",
	"ICE": "\ue60a", "CHR": "\ue60b", "HML": "\ue60c", "ALL": "\ue60d", "MIR": "\ue60e",
	"VIS": "\ue60f", "5ED": "\ue610", "POR": "\ue611", "WTH": "\ue612", "TMP": "\ue613",
	"STH": "\ue614", "EXO": "\ue615", "USG": "\ue616", "ULG": "\ue617", "6ED": "\ue618",
	"UDS": "\ue619", "MMQ": "\ue61a", "NMS": "\ue61b", "PCY": "\ue61c", "INV": "\ue61d",
	"PLS": "\ue61e", "7ED": "\ue61f", "APC": "\ue620", "ODY": "\ue621", "TOR": "\ue622",
	"JUD": "\ue623", "ONS": "\ue624", "LGN": "\ue625", "SCG": "\ue626", "8ED": "\ue627",
	"MRD": "\ue628", "DST": "\ue629", "5DN": "\ue62a", "CHK": "\ue62b", "BOK": "\ue62c",
	"SOK": "\ue62d", "9ED": "\ue62e", "RAV": "\ue62f", "GPT": "\ue630", "DIS": "\ue631",
	"CSP": "\ue632", "TSP": "\ue633", "PLC": "\ue634", "FUT": "\ue635", "10E": "\ue636",
	"LRW": "\ue637", "MOR": "\ue638", "SHM": "\ue639", "EVE": "\ue63a", "ALA": "\ue63b",
	"CON": "\ue63c", "ARB": "\ue63d", "M10": "\ue63e", "ZEN": "\ue63f", "WWK": "\ue640",
	"ROE": "\ue641", "M11": "\ue642", "SOM": "\ue643", "MBS": "\ue644", "NPH": "\ue645",
	"M12": "\ue646", "ISD": "\ue647", "DKA": "\ue648", "AVR": "\ue649", "M13": "\ue64a",
	"RTR": "\ue64b", "GTC": "\ue64c", "DGM": "\ue64d", "M14": "\ue64e", "THS": "\ue64f",
	"BNG": "\ue650", "JOU": "\ue651", "M15": "\ue652", "KTK": "\ue653", "FRF": "\ue654",
	"DTK": "\ue655", "ORI": "\ue656", "BFZ": "\ue657", "OGW": "\ue658", "SOI": "\ue659",
	"EMN": "\ue65a", "KLD": "\ue65b", "AER": "\ue65c", "AKH": "\ue65d", "HOU": "\ue65e",
	"XLN": "\ue65f", "RIX": "\ue660", "DOM": "\ue661", "M19": "\ue662", "GRN": "\ue663",
	"RNA": "\ue664", "WAR": "\ue665", "M20": "\ue666", "ELD": "\ue667", "THB": "\ue668",
	"IKO": "\ue669", "M21": "\ue66a", "ZNR": "\ue66b", "KHM": "\ue66c", "STX": "\ue66d",
	"AFR": "\ue66e", "MID": "\ue66f", "VOW": "\ue670", "NEO": "\ue671", "SNC": "\ue672",
	"DMU": "\ue673", "BRO": "\ue674", "ONE": "\ue675", "MOM": "\ue676", "MAT": "\ue677",
	"WOE": "\ue678", "LCI": "\ue679", "MKM": "\ue67a", "OTJ": "\ue67b", "BLB": "\ue67c",
	"DSK": "\ue67d", "FDN": "\ue67e", "SLD": "\ue680", "MTG": "\ue67f",
	"TSB": "TSP", "PLIST": "MTG", "MB1": "MTG", "FMB1": "MB1", "DMR": "MTG",
}

// symbolGlyph resolves the font glyph for this card's set. Promo prints
// prefixed with an extra letter fall back to their parent set, and the
// configured default covers everything unrecognized.
func symbolGlyph(r *Render) string {
	render := r.Cfg.Render
	if !render.SymbolForceDefault {
		if g, ok := lookupSymbol(r.Card.SetCode); ok {
			return g
		}
		if len(r.Card.SetCode) > 1 {
			if g, ok := lookupSymbol(r.Card.SetCode[1:]); ok {
				return g
			}
		}
	}
	if g, ok := lookupSymbol(render.SymbolDefault); ok {
		return g
	}
	return setSymbols["MTG"]
}

// lookupSymbol reads the symbol table, following alias chains. The hop
// cap guards against a cycle in the table.
func lookupSymbol(code string) (string, bool) {
	g, ok := setSymbols[code]
	if !ok {
		return "", false
	}
	for hops := 0; utf8.RuneCountInString(g) > 1 && hops < 4; hops++ {
		target, ok := setSymbols[g]
		if !ok {
			break
		}
		g = target
	}
	return g, true
}

// buildExpansionSymbol renders the set symbol beside the typeline: a
// vector import when an SVG is bundled for the set, otherwise the symbol
// font glyph dressed with a rarity stroke and gradient. The generated
// layer replaces the document's placeholder under the same name, so later
// lookups resolve the finished symbol.
func buildExpansionSymbol(r *Render) error {
	symbol := r.Layer(LayerExpansionSymbol, GroupTextAndIcons)
	if symbol == nil {
		return fmt.Errorf("layer %q not found", LayerExpansionSymbol)
	}
	if r.Cfg.Render.SymbolMode == config.SymbolDisabled {
		return r.Doc.SetText(symbol, "")
	}

	group, err := r.Doc.CreateGroup(LayerExpansionSymbol)
	if err != nil {
		return err
	}
	if err := r.Doc.Move(group, symbol, surface.PlaceAfter); err != nil {
		return err
	}

	imported := false
	if r.Cfg.Render.SymbolMode == config.SymbolSVG {
		imported, err = importSymbolSVG(r, group)
		if err != nil {
			return err
		}
	}
	if !imported {
		if err := buildSymbolGlyph(r, symbol, group); err != nil {
			return err
		}
	}

	merged, err := r.Doc.MergeGroup(group)
	if err != nil {
		return err
	}
	if err := r.Doc.Rename(symbol, LayerExpansionSymbol+" Old"); err != nil {
		return err
	}
	if err := r.Doc.SetOpacity(symbol, 0); err != nil {
		return err
	}
	r.Invalidate(LayerExpansionSymbol, GroupTextAndIcons)

	ref := r.Layer(LayerExpansionReference, GroupTextAndIcons)
	if ref == nil {
		return fmt.Errorf("layer %q not found", LayerExpansionReference)
	}
	if err := r.Doc.Frame(merged, ref, surface.FrameFit); err != nil {
		return err
	}
	if r.Spec.SymbolCentered {
		return nil
	}
	return alignRightEdge(r, merged, ref)
}

// importSymbolSVG places the bundled set SVG into the group, reporting
// false when no file exists for this set and rarity.
func importSymbolSVG(r *Render, group surface.Group) (bool, error) {
	expansion := r.Card.SetCode
	if r.Cfg.Render.SymbolForceDefault {
		expansion = r.Cfg.Render.SymbolDefault
	}
	// "con" is a reserved device name on Windows, so that folder carries
	// a suffix.
	if strings.EqualFold(expansion, "con") {
		expansion += "F"
	}
	letter := "C"
	if r.Card.Rarity != "" {
		letter = strings.ToUpper(r.Card.Rarity[:1])
	}
	path := filepath.Join(r.Cfg.App.AssetsDir, "symbols", expansion, letter+".svg")
	if _, err := os.Stat(path); err != nil {
		alias, ok := setSymbols[expansion]
		if !ok || utf8.RuneCountInString(alias) < 2 {
			return false, nil
		}
		path = filepath.Join(r.Cfg.App.AssetsDir, "symbols", alias, letter+".svg")
		if _, err := os.Stat(path); err != nil {
			return false, nil
		}
	}
	if _, err := r.Doc.ImportVector(path, group); err != nil {
		return false, err
	}
	return true, nil
}

// buildSymbolGlyph duplicates the placeholder into the group and dresses
// it as the font symbol: a stroke outline, plus the rarity gradient on
// anything above common.
func buildSymbolGlyph(r *Render, symbol surface.Layer, group surface.Group) error {
	dup, err := r.Doc.Duplicate(symbol)
	if err != nil {
		return err
	}
	if err := r.Doc.Move(dup, group, surface.PlaceInside); err != nil {
		return err
	}
	if err := r.Doc.SetText(dup, symbolGlyph(r)); err != nil {
		return err
	}
	size := r.Cfg.Render.SymbolStroke
	if size <= 0 {
		size = 6
	}
	stroke := surface.Effect{
		Kind:  surface.EffectStroke,
		Color: surface.RGB(0, 0, 0),
		Size:  float64(size),
		Style: "out",
	}
	common := r.Card.Rarity == "common"
	if common {
		stroke.Color = surface.RGB(255, 255, 255)
	}
	effects := []surface.Effect{stroke}
	if !common {
		if stops, ok := rarityGradients[strings.ToLower(r.Card.RarityLetter)]; ok {
			effects = append(effects, surface.Effect{
				Kind:  surface.EffectGradientOverlay,
				Stops: stops,
			})
		}
	}
	return r.Doc.ApplyEffects(dup, effects)
}
