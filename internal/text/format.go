package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

var (
	notationPattern   = regexp.MustCompile(`\{.*?\}`)
	reminderPattern   = regexp.MustCompile(`\([^()]*\)`)
	multiSpacePattern = regexp.MustCompile(`  +`)
)

// StripReminderText removes parenthetical reminder clauses from oracle
// text, then collapses any doubled spaces that removal left behind. When
// stripping would empty the text entirely, the original is returned
// instead. Idempotent.
func StripReminderText(oracle string) string {
	stripped := oracle
	for {
		next := reminderPattern.ReplaceAllString(stripped, "")
		if next == stripped {
			break
		}
		stripped = next
	}
	stripped = multiSpacePattern.ReplaceAllString(stripped, " ")
	if stripped == "" {
		return oracle
	}
	return stripped
}

// IsCentered decides whether a rules text block renders centered: flavor
// text absent or single-line, oracle text at most 70 runes, and no
// embedded line break.
func IsCentered(oracle, flavor string) bool {
	if strings.Contains(flavor, "\n") {
		return false
	}
	if utf8.RuneCountInString(oracle) > 70 {
		return false
	}
	return !strings.Contains(oracle, "\n")
}

// GenerateItalics collects the substrings of card text that render
// italic: every parenthetical clause, plus each ability word followed by
// an em dash. Ability words are offered unconditionally; absent ones
// simply never match.
func GenerateItalics(cardText string) []string {
	var italics []string
	end := 0
	for {
		start := strings.Index(cardText[end:], "(")
		if start < 0 {
			break
		}
		start += end
		stop := strings.Index(cardText[start+1:], ")")
		if stop < 0 {
			break
		}
		end = start + 1 + stop + 1
		italics = append(italics, cardText[start:end])
	}
	for _, word := range AbilityWords {
		italics = append(italics, word+" —")
	}
	return italics
}

// LocateSymbols replaces every mana notation in s with its mana-font
// glyphs and emits one style run per glyph carrying that glyph's color.
// Unknown notation is an error; the caller's step boundary decides what
// that aborts.
func LocateSymbols(s string, symbols *SymbolMap) (string, []surface.TextRun, error) {
	matches := notationPattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s, nil, nil
	}

	var out strings.Builder
	var runs []surface.TextRun
	outRunes := 0
	prev := 0
	for _, m := range matches {
		notation := s[m[0]:m[1]]
		sym, ok := symbols.Lookup(notation)
		if !ok {
			return "", nil, fmt.Errorf("unknown mana symbol %q", notation)
		}
		lead := s[prev:m[0]]
		out.WriteString(lead)
		outRunes += utf8.RuneCountInString(lead)
		out.WriteString(sym.Glyphs)
		for i, c := range sym.Colors {
			runs = append(runs, surface.TextRun{
				Start:    outRunes + i,
				End:      outRunes + i + 1,
				Style:    surface.RunSymbol,
				Font:     FontMana,
				Color:    c,
				HasColor: true,
			})
		}
		outRunes += utf8.RuneCountInString(sym.Glyphs)
		prev = m[1]
	}
	out.WriteString(s[prev:])
	return out.String(), runs, nil
}

// LocateItalics finds every occurrence of the italic candidate strings in
// the composed input and emits italic style runs. Candidates containing
// mana notation are translated to glyphs first so they match the composed
// text.
func LocateItalics(input string, italics []string, symbols *SymbolMap) []surface.TextRun {
	var runs []surface.TextRun
	for _, it := range italics {
		if strings.Contains(it, "}") {
			it = notationPattern.ReplaceAllStringFunc(it, func(notation string) string {
				if sym, ok := symbols.Lookup(notation); ok {
					return sym.Glyphs
				}
				return notation
			})
		}
		if it == "" {
			continue
		}
		from := 0
		for {
			idx := strings.Index(input[from:], it)
			if idx < 0 {
				break
			}
			idx += from
			start := utf8.RuneCountInString(input[:idx])
			length := utf8.RuneCountInString(it)
			runs = append(runs, surface.TextRun{
				Start: start,
				End:   start + length,
				Style: surface.RunItalic,
				Font:  FontRulesItalic,
			})
			from = idx + len(it)
		}
	}
	return runs
}

// Formatted is the computed rendering of one rules-and-flavor text block.
// Runs apply in order; later runs win on overlapping ranges, so symbol
// runs follow italic runs.
type Formatted struct {
	Text        string
	Runs        []surface.TextRun
	FlavorIndex int // rune index of the rules/flavor separator, -1 without flavor
	QuoteIndex  int // rune index of the break before a flavor attribution, -1 when none
}

// Format composes rules text and flavor text into a single styled block:
// symbols substituted, reminder clauses and flavor italicized, flavor
// separated by a line break. Asterisk-delimited spans inside flavor text
// stay upright, matching how preview cards mark non-flavor inserts.
func Format(rules, flavor string, symbols *SymbolMap) (Formatted, error) {
	var italics []string
	if rules != "" {
		italics = GenerateItalics(rules)
	}

	if strings.Count(flavor, "*") >= 2 {
		parts := strings.Split(flavor, "*")
		for i, part := range parts {
			if i%2 == 0 && part != "" {
				italics = append(italics, part)
			}
		}
		flavor = strings.Join(parts, "")
	} else if flavor != "" {
		italics = append(italics, flavor)
	}

	input := flavor
	var symbolRuns []surface.TextRun
	if rules != "" {
		replaced, runs, err := LocateSymbols(rules, symbols)
		if err != nil {
			return Formatted{}, err
		}
		symbolRuns = runs
		input = replaced
		if flavor != "" {
			input = replaced + "\n" + flavor
		}
	}

	flavorIndex := -1
	quoteIndex := -1
	if flavor != "" {
		if rules == "" {
			flavorIndex = 0
		} else {
			flavorIndex = utf8.RuneCountInString(input) - utf8.RuneCountInString(flavor) - 1
		}
		if idx := runeIndexOf(input, "\n", flavorIndex+3); idx >= 0 {
			quoteIndex = idx
		}
	}

	runs := LocateItalics(input, italics, symbols)
	runs = append(runs, symbolRuns...)

	return Formatted{
		Text:        input,
		Runs:        runs,
		FlavorIndex: flavorIndex,
		QuoteIndex:  quoteIndex,
	}, nil
}

// runeIndexOf finds the rune index of the first occurrence of sub at or
// after the given rune offset, -1 when absent.
func runeIndexOf(s, sub string, fromRune int) int {
	if fromRune < 0 {
		fromRune = 0
	}
	byteFrom := 0
	count := 0
	for byteFrom < len(s) && count < fromRune {
		_, size := utf8.DecodeRuneInString(s[byteFrom:])
		byteFrom += size
		count++
	}
	if byteFrom >= len(s) {
		return -1
	}
	idx := strings.Index(s[byteFrom:], sub)
	if idx < 0 {
		return -1
	}
	return count + utf8.RuneCountInString(s[byteFrom:byteFrom+idx])
}
