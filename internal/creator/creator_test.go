package creator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramonehamilton/proxyforge/internal/layout"
)

func TestLoadCustomCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.toml")
	doc := `
name = "Riverwise Scholar"
mana_cost = "{1}{U}"
type_line = "Creature — Merfolk Wizard"
rules = ["When ~ enters, draw a card."]
flavor = "Knowledge flows downstream."
power = "1"
toughness = "2"
artist = "Jane Doe"
set = "CST"
collector_number = "42"
rarity = "Uncommon"
keywords = "Flying, Vigilance"
color_identity = "U"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed to write card file: %v", err)
	}

	card, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load card: %v", err)
	}

	if card.Class != ClassNormal {
		t.Errorf("expected missing class to default to normal, got %q", card.Class)
	}
	if card.Name != "Riverwise Scholar" {
		t.Errorf("unexpected name %q", card.Name)
	}
	if len(card.Rules) != 1 {
		t.Fatalf("expected 1 rules line, got %d", len(card.Rules))
	}
	if card.Keywords != "Flying, Vigilance" {
		t.Errorf("unexpected keywords %q", card.Keywords)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.toml")
	if err := os.WriteFile(path, []byte("name = [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write card file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{
			name: "valid normal",
			card: Card{Class: ClassNormal, Name: "Bear"},
		},
		{
			name:    "missing name",
			card:    Card{Class: ClassNormal},
			wantErr: true,
		},
		{
			name:    "unknown class",
			card:    Card{Class: "battle", Name: "Bear"},
			wantErr: true,
		},
		{
			name: "valid saga",
			card: Card{Class: ClassSaga, Name: "The Tale", Rules: []string{"Do a thing."}},
		},
		{
			name:    "saga without chapters",
			card:    Card{Class: ClassSaga, Name: "The Tale"},
			wantErr: true,
		},
		{
			name: "saga with too many chapters",
			card: Card{Class: ClassSaga, Name: "The Tale",
				Rules: []string{"One.", "Two.", "Three.", "Four.", "Five."}},
			wantErr: true,
		},
		{
			name: "valid planeswalker",
			card: Card{Class: ClassPlaneswalker, Name: "Vax",
				TypeLine: "Legendary Planeswalker — Vax", Loyalty: "4",
				Rules: []string{"+1: Draw a card."}},
		},
		{
			name: "planeswalker without loyalty",
			card: Card{Class: ClassPlaneswalker, Name: "Vax",
				TypeLine: "Legendary Planeswalker — Vax",
				Rules:    []string{"+1: Draw a card."}},
			wantErr: true,
		},
		{
			name: "planeswalker with wrong type line",
			card: Card{Class: ClassPlaneswalker, Name: "Vax",
				TypeLine: "Legendary Creature — Human", Loyalty: "4"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestSourceNormal(t *testing.T) {
	card := &Card{
		Class:           ClassNormal,
		Name:            "Riverwise Scholar",
		ManaCost:        "{1}{U}",
		TypeLine:        "Creature — Merfolk Wizard",
		Rules:           []string{"When ~ enters, draw a card.", "~ can't be blocked."},
		Flavor:          "~ remembers every current.",
		Power:           "1",
		Toughness:       "2",
		Artist:          "Jane Doe",
		SetCode:         "CST",
		CollectorNumber: "42",
		Rarity:          "Uncommon",
		CardCount:       "250",
		Keywords:        "Flying, Vigilance",
		ColorIdentity:   "U",
	}

	src, err := card.Source("en")
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}

	pr := src.Print
	wantOracle := "When Riverwise Scholar enters, draw a card.\nRiverwise Scholar can't be blocked."
	if pr.OracleText != wantOracle {
		t.Errorf("unexpected oracle text %q", pr.OracleText)
	}
	if pr.FlavorText != "Riverwise Scholar remembers every current." {
		t.Errorf("expected name substitution in flavor, got %q", pr.FlavorText)
	}
	if len(pr.Keywords) != 2 || pr.Keywords[0] != "Flying" || pr.Keywords[1] != "Vigilance" {
		t.Errorf("unexpected keywords %v", pr.Keywords)
	}
	if len(pr.ColorIdentity) != 1 || pr.ColorIdentity[0] != "U" {
		t.Errorf("unexpected color identity %v", pr.ColorIdentity)
	}
	if pr.Rarity != "uncommon" {
		t.Errorf("expected lowercased rarity, got %q", pr.Rarity)
	}
	if pr.PrintedName != "" {
		t.Errorf("expected no printed mirror for English, got %q", pr.PrintedName)
	}
	if src.Set.CardCount != 250 {
		t.Errorf("expected card count 250, got %d", src.Set.CardCount)
	}

	built, err := layout.Build(src, layout.Options{})
	if err != nil {
		t.Fatalf("layout build failed: %v", err)
	}
	if built.Class != layout.ClassNormal {
		t.Errorf("expected normal class, got %v", built.Class)
	}
}

func TestSourceSagaAssembly(t *testing.T) {
	card := &Card{
		Class:    ClassSaga,
		Name:     "The Flooded Vault",
		ManaCost: "{2}{U}",
		TypeLine: "Enchantment — Saga",
		Rules: []string{
			"Surveil 2.",
			"",
			"Draw a card.",
			"~ deals 3 damage to each opponent.",
		},
	}

	src, err := card.Source("en")
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}

	lines := strings.Split(src.Print.OracleText, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected reminder plus 3 chapters, got %d lines: %q", len(lines), src.Print.OracleText)
	}
	if !strings.Contains(lines[0], "Sacrifice after III.") {
		t.Errorf("expected reminder naming the last chapter, got %q", lines[0])
	}
	if lines[1] != "I — Surveil 2." {
		t.Errorf("unexpected first chapter %q", lines[1])
	}
	if lines[2] != "II — Draw a card." {
		t.Errorf("unexpected second chapter %q", lines[2])
	}
	if lines[3] != "III — The Flooded Vault deals 3 damage to each opponent." {
		t.Errorf("unexpected third chapter %q", lines[3])
	}

	built, err := layout.Build(src, layout.Options{})
	if err != nil {
		t.Fatalf("layout build failed: %v", err)
	}
	if built.Class != layout.ClassSaga {
		t.Errorf("expected saga class, got %v", built.Class)
	}
	if len(built.SagaLines) != 3 {
		t.Errorf("expected 3 saga lines, got %d", len(built.SagaLines))
	}
	if !strings.Contains(built.SagaDescription, "lore counter") {
		t.Errorf("expected reminder as description, got %q", built.SagaDescription)
	}
}

func TestSourceSagaFourChapters(t *testing.T) {
	card := &Card{
		Class:    ClassSaga,
		Name:     "The Long March",
		TypeLine: "Enchantment — Saga",
		Rules:    []string{"One.", "Two.", "Three.", "Four."},
	}

	src, err := card.Source("en")
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}
	if !strings.Contains(src.Print.OracleText, "Sacrifice after IV.") {
		t.Errorf("expected reminder naming IV, got %q", src.Print.OracleText)
	}
	if !strings.Contains(src.Print.OracleText, "IV — Four.") {
		t.Errorf("expected fourth chapter numbered IV, got %q", src.Print.OracleText)
	}
}

func TestSourcePlaneswalker(t *testing.T) {
	card := &Card{
		Class:    ClassPlaneswalker,
		Name:     "Vax, Tide Caller",
		ManaCost: "{2}{U}{U}",
		TypeLine: "Legendary Planeswalker — Vax",
		Loyalty:  "4",
		Rules: []string{
			"+1: Draw a card.",
			"-2: Return target creature to its owner's hand.",
			"-7: ~ deals 7 damage to each opponent.",
		},
	}

	src, err := card.Source("en")
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}
	if src.Print.Layout != "normal" {
		t.Errorf("expected normal layout for custom planeswalker, got %q", src.Print.Layout)
	}
	if src.Print.Loyalty != "4" {
		t.Errorf("expected loyalty 4, got %q", src.Print.Loyalty)
	}
	if !strings.Contains(src.Print.OracleText, "-7: Vax, Tide Caller deals 7 damage") {
		t.Errorf("expected name substitution in abilities, got %q", src.Print.OracleText)
	}

	built, err := layout.Build(src, layout.Options{})
	if err != nil {
		t.Fatalf("layout build failed: %v", err)
	}
	if built.Class != layout.ClassPlaneswalker {
		t.Errorf("expected planeswalker class, got %v", built.Class)
	}
	if built.Loyalty != "4" {
		t.Errorf("expected loyalty on built card, got %q", built.Loyalty)
	}
}

func TestSourceAltLanguage(t *testing.T) {
	card := &Card{
		Class:    ClassNormal,
		Name:     "Oso Pardo",
		TypeLine: "Criatura — Oso",
		Rules:    []string{"~ no puede ser bloqueada."},
	}

	src, err := card.Source("es")
	if err != nil {
		t.Fatalf("failed to build source: %v", err)
	}

	pr := src.Print
	if pr.PrintedName != "Oso Pardo" {
		t.Errorf("expected printed name mirror, got %q", pr.PrintedName)
	}
	if pr.PrintedText != pr.OracleText {
		t.Errorf("expected printed text mirror, got %q", pr.PrintedText)
	}
	if pr.PrintedTypeLine != "Criatura — Oso" {
		t.Errorf("expected printed type line mirror, got %q", pr.PrintedTypeLine)
	}
}

func TestSourceBadCardCount(t *testing.T) {
	card := &Card{Class: ClassNormal, Name: "Bear", CardCount: "lots"}

	if _, err := card.Source("en"); err == nil {
		t.Error("expected error for non-numeric card count")
	}
}
