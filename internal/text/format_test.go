package text

import (
	"strings"
	"testing"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

func loadSymbols(t *testing.T) *SymbolMap {
	t.Helper()
	m, err := LoadSymbolMap()
	if err != nil {
		t.Fatalf("LoadSymbolMap: %v", err)
	}
	return m
}

func TestStripReminderText(t *testing.T) {
	tests := []struct {
		name   string
		oracle string
		want   string
	}{
		{
			name:   "trailing reminder",
			oracle: "Flying (This creature can't be blocked except by creatures with flying or reach.)",
			want:   "Flying ",
		},
		{
			name:   "no reminder",
			oracle: "First strike",
			want:   "First strike",
		},
		{
			name:   "reminder mid text collapses doubled space",
			oracle: "Cycling {2} (Discard this card.) Draw a card.",
			want:   "Cycling {2} Draw a card.",
		},
		{
			name:   "only reminder returns original",
			oracle: "(Creatures with landwalk are unblockable.)",
			want:   "(Creatures with landwalk are unblockable.)",
		},
		{
			name:   "empty",
			oracle: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripReminderText(tt.oracle)
			if got != tt.want {
				t.Errorf("StripReminderText(%q) = %q, want %q", tt.oracle, got, tt.want)
			}
		})
	}
}

func TestStripReminderTextIdempotent(t *testing.T) {
	inputs := []string{
		"Flying (This creature can't be blocked except by creatures with flying or reach.)",
		"Vigilance, lifelink (No reminder here.) Trample",
		"No parentheses at all",
		"(Nested (parens) inside)",
	}
	for _, in := range inputs {
		once := StripReminderText(in)
		twice := StripReminderText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
		// The empty-result fallback is the one case parentheses survive.
		if once != in && strings.ContainsAny(once, "()") {
			t.Errorf("stripped text still has parentheses: %q", once)
		}
	}
}

func TestIsCentered(t *testing.T) {
	tests := []struct {
		name   string
		oracle string
		flavor string
		want   bool
	}{
		{"short single line", "Flying", "", true},
		{"embedded break", "Line1\nLine2", "", false},
		{"over seventy runes", strings.Repeat("a", 71), "", false},
		{"exactly seventy runes", strings.Repeat("a", 70), "", true},
		{"single line flavor", "Flying", "So the legends say.", true},
		{"multi line flavor", "Flying", "One.\nTwo.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCentered(tt.oracle, tt.flavor); got != tt.want {
				t.Errorf("IsCentered(%q, %q) = %v, want %v", tt.oracle, tt.flavor, got, tt.want)
			}
		})
	}
}

func TestGenerateItalics(t *testing.T) {
	got := GenerateItalics("Landfall — Whenever a land enters (any land).")

	var hasReminder, hasLandfall bool
	for _, s := range got {
		if s == "(any land)" {
			hasReminder = true
		}
		if s == "Landfall —" {
			hasLandfall = true
		}
	}
	if !hasReminder {
		t.Errorf("parenthetical clause missing from %v", got)
	}
	if !hasLandfall {
		t.Error("ability word candidate missing")
	}
}

func TestLocateSymbols(t *testing.T) {
	symbols := loadSymbols(t)

	out, runs, err := LocateSymbols("{T}: Add {G}.", symbols)
	if err != nil {
		t.Fatalf("LocateSymbols: %v", err)
	}
	if out != "ot: Add og." {
		t.Fatalf("replaced = %q", out)
	}
	if len(runs) != 4 {
		t.Fatalf("got %d runs, want 4 (one per glyph)", len(runs))
	}
	// Tap symbol glyphs at 0-1, green mana glyphs at 8-9.
	wantStarts := []int{0, 1, 8, 9}
	for i, run := range runs {
		if run.Start != wantStarts[i] || run.End != wantStarts[i]+1 {
			t.Errorf("run %d = [%d,%d), want [%d,%d)", i, run.Start, run.End, wantStarts[i], wantStarts[i]+1)
		}
		if run.Font != FontMana || run.Style != surface.RunSymbol {
			t.Errorf("run %d not a mana glyph run: %+v", i, run)
		}
	}
	if runs[2].Color != clrG {
		t.Errorf("green fill glyph color = %+v", runs[2].Color)
	}
	if runs[3].Color != clrPrimary {
		t.Errorf("green outline glyph color = %+v", runs[3].Color)
	}

	if _, _, err := LocateSymbols("{Z}", symbols); err == nil {
		t.Error("unknown symbol should fail")
	}
}

func TestLocateSymbolsRuneOffsets(t *testing.T) {
	symbols := loadSymbols(t)
	out, runs, err := LocateSymbols("Æther {W}", symbols)
	if err != nil {
		t.Fatalf("LocateSymbols: %v", err)
	}
	if out != "Æther ow" {
		t.Fatalf("replaced = %q", out)
	}
	if len(runs) != 2 || runs[0].Start != 6 {
		t.Errorf("multibyte prefix shifted runs: %+v", runs)
	}
}

func TestFormatComposesRulesAndFlavor(t *testing.T) {
	symbols := loadSymbols(t)

	f, err := Format("Flying (reminder)", "Fear me.", symbols)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.Text != "Flying (reminder)\nFear me." {
		t.Fatalf("Text = %q", f.Text)
	}
	if f.FlavorIndex != 17 {
		t.Errorf("FlavorIndex = %d, want 17", f.FlavorIndex)
	}
	if f.QuoteIndex != -1 {
		t.Errorf("QuoteIndex = %d, want -1", f.QuoteIndex)
	}

	var reminderRun, flavorRun bool
	for _, run := range f.Runs {
		if run.Style != surface.RunItalic {
			continue
		}
		if run.Start == 7 && run.End == 17 {
			reminderRun = true
		}
		if run.Start == 18 && run.End == 26 {
			flavorRun = true
		}
	}
	if !reminderRun {
		t.Error("reminder italic run missing")
	}
	if !flavorRun {
		t.Error("flavor italic run missing")
	}
}

func TestFormatFlavorIndexAfterSymbolSubstitution(t *testing.T) {
	symbols := loadSymbols(t)

	// Replaced rules "ot: Add og." is 11 runes; the separator sits there.
	f, err := Format("{T}: Add {G}.", "Old growth.", symbols)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.FlavorIndex != 11 {
		t.Errorf("FlavorIndex = %d, want 11", f.FlavorIndex)
	}
	runes := []rune(f.Text)
	if runes[f.FlavorIndex] != '\n' {
		t.Errorf("FlavorIndex does not sit on the separator: %q", string(runes[f.FlavorIndex]))
	}
}

func TestFormatQuoteIndex(t *testing.T) {
	symbols := loadSymbols(t)

	f, err := Format("Rules", "A line.\n— Someone", symbols)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.FlavorIndex != 5 {
		t.Fatalf("FlavorIndex = %d", f.FlavorIndex)
	}
	if f.QuoteIndex != 13 {
		t.Errorf("QuoteIndex = %d, want 13", f.QuoteIndex)
	}
}

func TestFormatAsteriskFlavorStaysUpright(t *testing.T) {
	symbols := loadSymbols(t)

	f, err := Format("", "*Alas,* spoke the hero.", symbols)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.Text != "Alas, spoke the hero." {
		t.Fatalf("Text = %q", f.Text)
	}
	// Only the text outside the asterisks is italicized.
	for _, run := range f.Runs {
		if run.Style != surface.RunItalic {
			continue
		}
		got := string([]rune(f.Text)[run.Start:run.End])
		if strings.Contains(got, "Alas") {
			t.Errorf("asterisk-marked span should stay upright, got italic %q", got)
		}
	}
	if len(f.Runs) == 0 {
		t.Error("remaining flavor should still be italic")
	}
}
