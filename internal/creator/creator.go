// Package creator maps free-form custom card input onto the same raw
// print shape fetched cards arrive in, so layout construction and the
// render pipeline run unmodified regardless of data source.
package creator

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/scryfall"
)

// Custom card classes, matching the original creator forms.
const (
	ClassNormal       = "normal"
	ClassSaga         = "saga"
	ClassPlaneswalker = "planeswalker"
)

var sagaNumerals = []string{"I", "II", "III", "IV"}

// Card is a custom card definition, usually decoded from a TOML file.
// A literal "~" anywhere in rules or flavor text stands for the card
// name.
type Card struct {
	Class string `toml:"class"` // normal, saga, planeswalker

	// Face fields
	Name      string   `toml:"name"`
	ManaCost  string   `toml:"mana_cost"`
	TypeLine  string   `toml:"type_line"`
	Rules     []string `toml:"rules"` // One entry per rules line or saga chapter
	Flavor    string   `toml:"flavor"`
	Power     string   `toml:"power"`
	Toughness string   `toml:"toughness"`
	Loyalty   string   `toml:"loyalty"`

	// Print fields
	Artist          string `toml:"artist"`
	SetCode         string `toml:"set"`
	CollectorNumber string `toml:"collector_number"`
	Rarity          string `toml:"rarity"`
	CardCount       string `toml:"card_count"`

	// List fields, split the way the original forms did
	Keywords      string `toml:"keywords"`       // Comma separated
	ColorIdentity string `toml:"color_identity"` // Space separated
}

// Load reads a custom card definition from a TOML file. A missing class
// defaults to normal.
func Load(path string) (*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read custom card file: %w", err)
	}

	var card Card
	if err := toml.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("parse custom card file: %w", err)
	}
	if card.Class == "" {
		card.Class = ClassNormal
	}

	return &card, nil
}

// Validate checks the definition is complete enough to render.
func (c *Card) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("custom card needs a name")
	}

	switch c.Class {
	case ClassNormal:
	case ClassSaga:
		chapters := c.chapterLines()
		if len(chapters) == 0 {
			return fmt.Errorf("custom saga %q needs at least one chapter", c.Name)
		}
		if len(chapters) > len(sagaNumerals) {
			return fmt.Errorf("custom saga %q supports at most %d chapters", c.Name, len(sagaNumerals))
		}
	case ClassPlaneswalker:
		if c.Loyalty == "" {
			return fmt.Errorf("custom planeswalker %q needs a loyalty value", c.Name)
		}
		if !strings.Contains(c.TypeLine, "Planeswalker") {
			return fmt.Errorf("custom planeswalker %q needs Planeswalker in its type line", c.Name)
		}
	default:
		return fmt.Errorf("unsupported custom card class %q", c.Class)
	}

	return nil
}

// Source maps the definition onto the raw print shape the layout builder
// consumes. Non-English languages mirror the entered text into the
// printed fields, like localized Scryfall prints carry.
func (c *Card) Source(lang string) (layout.Source, error) {
	if err := c.Validate(); err != nil {
		return layout.Source{}, err
	}

	pr := &scryfall.Card{
		Object:          "card",
		Name:            c.Name,
		Lang:            lang,
		Layout:          "normal",
		ManaCost:        c.ManaCost,
		TypeLine:        c.TypeLine,
		OracleText:      c.rulesText(),
		FlavorText:      c.substitute(c.Flavor),
		Power:           c.Power,
		Toughness:       c.Toughness,
		Loyalty:         c.Loyalty,
		Artist:          c.Artist,
		SetCode:         c.SetCode,
		CollectorNumber: c.CollectorNumber,
		Rarity:          strings.ToLower(c.Rarity),
		Keywords:        splitList(c.Keywords, ","),
		ColorIdentity:   strings.Fields(c.ColorIdentity),
	}
	if c.Class == ClassSaga {
		pr.Layout = "saga"
	}

	if lang != "" && lang != "en" {
		pr.PrintedName = pr.Name
		pr.PrintedText = pr.OracleText
		pr.PrintedTypeLine = pr.TypeLine
	}

	set := &scryfall.Set{Code: strings.ToLower(c.SetCode)}
	if c.CardCount != "" {
		count, err := strconv.Atoi(c.CardCount)
		if err != nil {
			return layout.Source{}, fmt.Errorf("parse card count %q: %w", c.CardCount, err)
		}
		set.CardCount = count
	}

	return layout.Source{Print: pr, Set: set}, nil
}

// rulesText assembles the oracle text for the card's class.
func (c *Card) rulesText() string {
	if c.Class == ClassSaga {
		return c.sagaText()
	}

	lines := make([]string, 0, len(c.Rules))
	for _, line := range c.Rules {
		lines = append(lines, c.substitute(line))
	}
	return strings.Join(lines, "\n")
}

// sagaText numbers each chapter and prepends the standard lore counter
// reminder naming the final chapter.
func (c *Card) sagaText() string {
	chapters := c.chapterLines()

	lines := make([]string, 0, len(chapters)+1)
	for i, chapter := range chapters {
		lines = append(lines, sagaNumerals[i]+" — "+c.substitute(chapter))
	}

	reminder := fmt.Sprintf(
		"(As this Saga enters and after your draw step, add a lore counter. Sacrifice after %s.)",
		sagaNumerals[len(chapters)-1],
	)
	return reminder + "\n" + strings.Join(lines, "\n")
}

// chapterLines returns the non-empty rules entries, each one chapter.
func (c *Card) chapterLines() []string {
	var chapters []string
	for _, line := range c.Rules {
		if strings.TrimSpace(line) == "" {
			continue
		}
		chapters = append(chapters, line)
	}
	return chapters
}

func (c *Card) substitute(s string) string {
	return strings.ReplaceAll(s, "~", c.Name)
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
