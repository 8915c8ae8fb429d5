package cardmatch

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   int
	}{
		{"exact match", "lightning bolt", "lightning bolt", 100},
		{"prefix", "lightning", "lightning bolt", 94},
		{"substring", "bolt", "lightning bolt", 75},
		{"one typo", "lighming bolt", "lightning bolt", 86},
		{"accented rune counts as one edit", "lim-dul's vault", "lim-dûl's vault", 94},
		{"empty query", "", "forest", 0},
		{"empty target", "forest", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.query, tt.target); got != tt.want {
				t.Errorf("score(%q, %q) = %d, want %d", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestClosestRanksExactOverPrefixOverSubstring(t *testing.T) {
	names := []string{"Bolt of Keranos", "Lightning Bolt", "Bolt"}

	results := Closest("bolt", names, Options{MinScore: 1})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	wantOrder := []string{"Bolt", "Bolt of Keranos", "Lightning Bolt"}
	for i, want := range wantOrder {
		if results[i].Name != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Name, want)
		}
	}
	if results[0].Score != 100 {
		t.Errorf("exact match score = %d, want 100", results[0].Score)
	}
}

func TestClosestFiltersByMinScore(t *testing.T) {
	names := []string{"Forest", "Counterspell"}

	results := Closest("counterspell", names, DefaultOptions())
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	if results[0].Name != "Counterspell" {
		t.Errorf("results[0] = %q, want Counterspell", results[0].Name)
	}
}

func TestClosestLimitsResults(t *testing.T) {
	names := []string{"Island", "Islandhome", "Island Sanctuary", "Island Fish Jasconius"}

	results := Closest("island", names, Options{MaxResults: 2, MinScore: 1})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "Island" {
		t.Errorf("results[0] = %q, want the exact match first", results[0].Name)
	}
}

func TestClosestBreaksTiesByIndex(t *testing.T) {
	names := []string{"Plains", "Plains"}

	results := Closest("plains", names, Options{MinScore: 1})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Index != 0 || results[1].Index != 1 {
		t.Errorf("tie not broken by index: %+v", results)
	}
}

func TestClosestIsCaseInsensitive(t *testing.T) {
	results := Closest("LIGHTNING BOLT", []string{"Lightning Bolt"}, DefaultOptions())
	if len(results) != 1 || results[0].Score != 100 {
		t.Fatalf("case-insensitive exact match failed: %+v", results)
	}
}
