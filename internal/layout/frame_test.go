package layout

import "testing"

func TestOrderedColors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"mono", "G", "G"},
		{"pair in order", "WU", "WU"},
		{"pair reversed", "UW", "WU"},
		{"allied pair", "GW", "GW"},
		{"trio", "WUG", "GWU"},
		{"trio shard", "UBR", "UBR"},
		{"quad", "RGWU", "RGWU"},
		{"five colors", "WUBRG", "WUBRG"},
		{"unsupported repeat", "WW", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderedColors(tt.in); got != tt.want {
				t.Errorf("OrderedColors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestManaCostColors(t *testing.T) {
	tests := []struct {
		cost string
		want string
	}{
		{"", ""},
		{"{2}", ""},
		{"{R}", "R"},
		{"{1}{G/W}{G/W}", "WG"},
		{"{W}{U}{B}{R}{G}", "WUBRG"},
	}
	for _, tt := range tests {
		if got := ManaCostColors(tt.cost); got != tt.want {
			t.Errorf("ManaCostColors(%q) = %q, want %q", tt.cost, got, tt.want)
		}
	}
}

func TestAnalyzeFrameNonland(t *testing.T) {
	tests := []struct {
		name string
		in   FrameInput
		want FrameDetails
	}{
		{
			name: "mono red instant",
			in: FrameInput{
				ManaCost:   "{R}",
				TypeLine:   "Instant",
				OracleText: "Lightning Bolt deals 3 damage to any target.",
			},
			want: FrameDetails{Background: "R", Pinlines: "R", Twins: "R", Identity: "R"},
		},
		{
			name: "zero cost artifact",
			in: FrameInput{
				ManaCost: "{0}",
				TypeLine: "Artifact Creature — Thopter",
			},
			want: FrameDetails{Background: Artifact, Pinlines: Artifact, Twins: Artifact, Identity: ""},
		},
		{
			name: "vehicle",
			in: FrameInput{
				ManaCost: "{3}",
				TypeLine: "Artifact — Vehicle",
			},
			want: FrameDetails{Background: Vehicle, Pinlines: Artifact, Twins: Artifact, Identity: ""},
		},
		{
			name: "hybrid two color",
			in: FrameInput{
				ManaCost: "{1}{G/W}{G/W}",
				TypeLine: "Creature — Ouphe Cleric",
			},
			want: FrameDetails{Background: "GW", Pinlines: "GW", Twins: Land, Identity: "GW", IsHybrid: true},
		},
		{
			name: "hybrid plus mono pip is gold",
			in: FrameInput{
				ManaCost: "{G/W}{U}",
				TypeLine: "Creature — Human Soldier",
			},
			want: FrameDetails{Background: Gold, Pinlines: Gold, Twins: Gold, Identity: "GWU"},
		},
		{
			name: "costless two color single face is hybrid",
			in: FrameInput{
				TypeLine:      "Legendary Creature — Human Wizard",
				ColorIdentity: []string{"B", "R"},
			},
			want: FrameDetails{Background: "BR", Pinlines: "BR", Twins: Land, Identity: "BR", IsHybrid: true},
		},
		{
			name: "costless two color face stays gold",
			in: FrameInput{
				TypeLine: "Legendary Creature — Human Wizard",
				Colors:   []string{"B", "R"},
				IsFace:   true,
			},
			want: FrameDetails{Background: Gold, Pinlines: "BR", Twins: Gold, Identity: "BR"},
		},
		{
			name: "devoid keeps colored pinlines",
			in: FrameInput{
				ManaCost:   "{2}{B}",
				TypeLine:   "Creature — Eldrazi Processor",
				OracleText: "Devoid (This card has no color.)",
			},
			want: FrameDetails{Background: "B", Pinlines: "B", Twins: "B", Identity: "B", IsColorless: true},
		},
		{
			name: "devoid multicolor goes gold",
			in: FrameInput{
				ManaCost:   "{1}{U}{R}",
				TypeLine:   "Creature — Eldrazi",
				OracleText: "Devoid (This card has no color.)",
			},
			want: FrameDetails{Background: Gold, Pinlines: "UR", Twins: Gold, Identity: "UR", IsColorless: true},
		},
		{
			name: "true colorless",
			in: FrameInput{
				ManaCost: "{10}",
				TypeLine: "Legendary Creature — Eldrazi",
			},
			want: FrameDetails{Background: Colorless, Pinlines: Colorless, Twins: Colorless, Identity: Colorless, IsColorless: true},
		},
		{
			name: "all colors text",
			in: FrameInput{
				ManaCost:   "{4}",
				TypeLine:   "Artifact Creature — Golem",
				OracleText: "Transguild Courier is all colors.",
			},
			want: FrameDetails{Background: Gold, Pinlines: Gold, Twins: Gold, Identity: WUBRG},
		},
		{
			name: "color indicator on costless face",
			in: FrameInput{
				TypeLine:       "Legendary Planeswalker — Bolas",
				ColorIndicator: []string{"U", "B", "R"},
				IsFace:         true,
			},
			want: FrameDetails{Background: Gold, Pinlines: Gold, Twins: Gold, Identity: "UBR"},
		},
		{
			name: "identity follows cost not color identity",
			in: FrameInput{
				ManaCost:      "{G}",
				TypeLine:      "Creature — Human Druid",
				ColorIdentity: []string{"G", "U", "W"},
			},
			want: FrameDetails{Background: "G", Pinlines: "G", Twins: "G", Identity: "G"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeFrame(tt.in); got != tt.want {
				t.Errorf("AnalyzeFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFrameLand(t *testing.T) {
	tests := []struct {
		name string
		in   FrameInput
		want FrameDetails
	}{
		{
			name: "basic forest",
			in: FrameInput{
				TypeLine:   "Basic Land — Forest",
				OracleText: "({T}: Add {G}.)",
			},
			want: FrameDetails{Background: Land, Pinlines: "G", Twins: "G", Identity: "G"},
		},
		{
			name: "dual typed land",
			in: FrameInput{
				TypeLine:   "Land — Forest Plains",
				OracleText: "Canopy Vista enters the battlefield tapped.",
			},
			want: FrameDetails{Background: Land, Pinlines: "GW", Twins: Land, Identity: "GW"},
		},
		{
			name: "fetch land two basics",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}, Pay 1 life, Sacrifice Flooded Strand: Search your library for a Plains or Island card, put it onto the battlefield, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: "WU", Twins: Land, Identity: "WU"},
		},
		{
			name: "fetch land one basic",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}, Sacrifice this land: Search your library for a Plains card, put it onto the battlefield tapped, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: "W", Twins: "W", Identity: "W"},
		},
		{
			name: "panorama three basics stays plain",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}: Add {C}.\n{1}, {T}, Sacrifice Bant Panorama: Search your library for a basic Forest, Plains, or Island card, put it onto the battlefield tapped, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: Land, Twins: Land, Identity: Land},
		},
		{
			name: "fetch any basic untapped goes gold",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}, Pay 1 life, Sacrifice Prismatic Vista: Search your library for a basic land card, put it onto the battlefield, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: Gold, Twins: Gold, Identity: Gold},
		},
		{
			name: "fetch any basic tapped stays colorless",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}, Sacrifice Evolving Wilds: Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: Land, Twins: Land, Identity: Land},
		},
		{
			name: "tutor to hand stays colorless",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}: Add {C}.\n{T}, Sacrifice Ash Barrens: Search your library for a basic land card, reveal it, put it into your hand, then shuffle.",
			},
			want: FrameDetails{Background: Land, Pinlines: Land, Twins: Land, Identity: Land},
		},
		{
			name: "any color land goes gold",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}: Add one mana of any color. City of Brass deals 1 damage to you.",
			},
			want: FrameDetails{Background: Land, Pinlines: Gold, Twins: Gold, Identity: Gold},
		},
		{
			name: "charge counter any color is excluded",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "Vivid Creek enters the battlefield tapped with two charge counters on it.\n{T}: Add {U}.\n{T}, Remove a charge counter from Vivid Creek: Add one mana of any color.",
			},
			want: FrameDetails{Background: Land, Pinlines: "U", Twins: "U", Identity: "U"},
		},
		{
			name: "choose a basic land type goes gold",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "As Thran Portal enters the battlefield, choose a basic land type.",
			},
			want: FrameDetails{Background: Land, Pinlines: Gold, Twins: Gold, Identity: Gold},
		},
		{
			name: "each land is a swamp",
			in: FrameInput{
				TypeLine:   "Legendary Land",
				OracleText: "Each land is a Swamp in addition to its other land types.\n{T}: Add {B}.",
			},
			want: FrameDetails{Background: Land, Pinlines: "B", Twins: "B", Identity: "B"},
		},
		{
			name: "taps for two colors",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}: Add {W} or {U}.",
			},
			want: FrameDetails{Background: Land, Pinlines: "WU", Twins: Land, Identity: "WU"},
		},
		{
			name: "taps for three colors",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "{T}: Add {B}, {R}, or {G}.",
			},
			want: FrameDetails{Background: Land, Pinlines: Gold, Twins: Gold, Identity: "BRG"},
		},
		{
			name: "single type with mono tap keeps typed twins",
			in: FrameInput{
				TypeLine:   "Land — Island",
				OracleText: "Mystic Sanctuary enters the battlefield tapped unless you control three or more other Islands.\n{T}: Add {U}.",
			},
			want: FrameDetails{Background: Land, Pinlines: "U", Twins: "U", Identity: "U"},
		},
		{
			name: "cycling fetch is not a fetch",
			in: FrameInput{
				TypeLine:   "Land",
				OracleText: "Ash Barrens has forestcycling. (Search your library for a Forest card, reveal it, put it into your hand, then shuffle. Cycling costs.)",
			},
			want: FrameDetails{Background: Land, Pinlines: Land, Twins: Land, Identity: Land},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeFrame(tt.in); got != tt.want {
				t.Errorf("AnalyzeFrame() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
