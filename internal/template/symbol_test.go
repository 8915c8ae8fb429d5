package template

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

func TestSymbolGlyph(t *testing.T) {
	tests := []struct {
		name     string
		setCode  string
		forced   bool
		fallback string
		want     string
	}{
		{name: "known set", setCode: "RAV", want: ""},
		{name: "alias hop", setCode: "TSB", want: ""},
		{name: "chained alias", setCode: "FMB1", want: ""},
		{name: "promo prefix stripped", setCode: "PRAV", want: ""},
		{name: "unknown falls back to default", setCode: "ZZZ", want: ""},
		{name: "custom default", setCode: "ZZZ", fallback: "DOM", want: ""},
		{name: "forced ignores the set", setCode: "RAV", forced: true, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := greenCreature()
			card.SetCode = tt.setCode
			r := newTestRender(t, normalManifest(), card)
			r.Cfg.Render.SymbolForceDefault = tt.forced
			if tt.fallback != "" {
				r.Cfg.Render.SymbolDefault = tt.fallback
			}

			if got := symbolGlyph(r); got != tt.want {
				t.Errorf("symbolGlyph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildSymbolGlyphEffects(t *testing.T) {
	tests := []struct {
		name        string
		rarity      string
		letter      string
		stroke      int
		wantColor   surface.Color
		wantSize    float64
		wantOverlay bool
	}{
		{name: "common gets a white stroke", rarity: "common", letter: "C", wantColor: surface.RGB(255, 255, 255), wantSize: 6},
		{name: "rare gets the gradient", rarity: "rare", letter: "R", wantColor: surface.RGB(0, 0, 0), wantSize: 6, wantOverlay: true},
		{name: "mythic gets the gradient", rarity: "mythic", letter: "M", wantColor: surface.RGB(0, 0, 0), wantSize: 6, wantOverlay: true},
		{name: "configured stroke width", rarity: "common", letter: "C", stroke: 9, wantColor: surface.RGB(255, 255, 255), wantSize: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := greenCreature()
			card.Rarity = tt.rarity
			card.RarityLetter = tt.letter
			r := newTestRender(t, normalManifest(), card)
			if tt.stroke != 0 {
				r.Cfg.Render.SymbolStroke = tt.stroke
			}
			doc := r.Doc.(*surface.MemDocument)

			symbol := r.Layer(LayerExpansionSymbol, GroupTextAndIcons)
			group, err := doc.CreateGroup("symbol scratch")
			if err != nil {
				t.Fatalf("CreateGroup: %v", err)
			}
			if err := buildSymbolGlyph(r, symbol, group); err != nil {
				t.Fatalf("buildSymbolGlyph: %v", err)
			}

			dup := doc.FindLayer(LayerExpansionSymbol+" copy", group)
			if dup == nil {
				t.Fatal("glyph layer not placed in the group")
			}
			if got, want := doc.Text(dup), ""; got != want {
				t.Errorf("glyph = %q, want %q", got, want)
			}
			fx := doc.EffectsOf(dup)
			wantLen := 1
			if tt.wantOverlay {
				wantLen = 2
			}
			if len(fx) != wantLen {
				t.Fatalf("effects = %d, want %d", len(fx), wantLen)
			}
			if fx[0].Kind != surface.EffectStroke || fx[0].Color != tt.wantColor || fx[0].Size != tt.wantSize {
				t.Errorf("stroke = %+v, want color %v size %v", fx[0], tt.wantColor, tt.wantSize)
			}
			if tt.wantOverlay && fx[1].Kind != surface.EffectGradientOverlay {
				t.Errorf("second effect = %+v, want gradient overlay", fx[1])
			}
		})
	}
}

func TestBuildExpansionSymbolFont(t *testing.T) {
	r := newTestRender(t, normalManifest(), greenCreature())
	doc := r.Doc.(*surface.MemDocument)

	if err := buildExpansionSymbol(r); err != nil {
		t.Fatalf("buildExpansionSymbol: %v", err)
	}
	// The placeholder steps aside and the merged symbol takes its name.
	if doc.FindLayer(LayerExpansionSymbol+" Old") == nil {
		t.Error("placeholder was not renamed")
	}
	if doc.FindGroup(LayerExpansionSymbol) != nil {
		t.Error("symbol group was not merged")
	}
	merged := r.Layer(LayerExpansionSymbol, GroupTextAndIcons)
	if merged == nil {
		t.Fatal("merged symbol not found under the placeholder name")
	}

	ref := r.Layer(LayerExpansionReference, GroupTextAndIcons)
	mb, err := doc.Bounds(merged)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	rb, err := doc.Bounds(ref)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if math.Abs(mb.Right-rb.Right) > 0.01 {
		t.Errorf("symbol right edge = %v, want aligned to reference %v", mb.Right, rb.Right)
	}
	if mb.Width() > rb.Width() || mb.Height() > rb.Height() {
		t.Errorf("symbol %v does not fit reference %v", mb, rb)
	}
}

func TestBuildExpansionSymbolDisabled(t *testing.T) {
	r := newTestRender(t, normalManifest(), greenCreature())
	r.Cfg.Render.SymbolMode = config.SymbolDisabled

	if err := buildExpansionSymbol(r); err != nil {
		t.Fatalf("buildExpansionSymbol: %v", err)
	}
	symbol := r.Layer(LayerExpansionSymbol, GroupTextAndIcons)
	if got := r.Doc.Text(symbol); got != "" {
		t.Errorf("placeholder text = %q, want emptied", got)
	}
	if r.Doc.FindLayer(LayerExpansionSymbol+" Old") != nil {
		t.Error("disabled mode still built a symbol")
	}
}

// writeSetSVG drops a placeholder SVG where the symbol importer looks.
func writeSetSVG(t *testing.T, assetsDir, set, letter string) string {
	t.Helper()
	dir := filepath.Join(assetsDir, "symbols", set)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, letter+".svg")
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestImportSymbolSVG(t *testing.T) {
	tests := []struct {
		name     string
		setCode  string
		rarity   string
		files    [][2]string // set directory, rarity letter
		imported bool
	}{
		{
			name: "bundled set and rarity", setCode: "RAV", rarity: "common",
			files: [][2]string{{"RAV", "C"}}, imported: true,
		},
		{
			name: "no file falls back", setCode: "RAV", rarity: "common",
			imported: false,
		},
		{
			name: "alias directory", setCode: "TSB", rarity: "rare",
			files: [][2]string{{"TSP", "R"}}, imported: true,
		},
		{
			name: "reserved name directory", setCode: "CON", rarity: "common",
			files: [][2]string{{"CONF", "C"}}, imported: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := greenCreature()
			card.SetCode = tt.setCode
			card.Rarity = tt.rarity
			r := newTestRender(t, normalManifest(), card)
			for _, f := range tt.files {
				writeSetSVG(t, r.Cfg.App.AssetsDir, f[0], f[1])
			}
			doc := r.Doc.(*surface.MemDocument)
			group, err := doc.CreateGroup("symbol scratch")
			if err != nil {
				t.Fatalf("CreateGroup: %v", err)
			}

			imported, err := importSymbolSVG(r, group)
			if err != nil {
				t.Fatalf("importSymbolSVG: %v", err)
			}
			if imported != tt.imported {
				t.Errorf("imported = %v, want %v", imported, tt.imported)
			}
		})
	}
}

func TestBuildExpansionSymbolSVGMode(t *testing.T) {
	card := greenCreature()
	r := newTestRender(t, normalManifest(), card)
	r.Cfg.Render.SymbolMode = config.SymbolSVG
	writeSetSVG(t, r.Cfg.App.AssetsDir, "RAV", "C")
	doc := r.Doc.(*surface.MemDocument)

	if err := buildExpansionSymbol(r); err != nil {
		t.Fatalf("buildExpansionSymbol: %v", err)
	}
	if merged := r.Layer(LayerExpansionSymbol, GroupTextAndIcons); merged == nil {
		t.Fatal("merged symbol not found")
	}
	if doc.FindLayer(LayerExpansionSymbol+" Old") == nil {
		t.Error("placeholder was not renamed")
	}
}
