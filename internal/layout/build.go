package layout

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ramonehamilton/proxyforge/internal/scryfall"
	"github.com/ramonehamilton/proxyforge/internal/text"
)

// Options carries the per-render settings that influence construction.
type Options struct {
	// Language requests a render language when the print carries none.
	Language string

	// Artist and CreatorName override print data, usually from art file
	// tags or the custom card creator.
	Artist      string
	CreatorName string

	// Content strips, applied once after variant parsing.
	RemoveFlavor   bool
	RemoveReminder bool

	// Template family toggles.
	RenderMiracle bool
	RenderSnow    bool
}

// MeldPart pairs one fetched meld component with its role, "meld_part" or
// "meld_result".
type MeldPart struct {
	Component string
	Card      *scryfall.Card
}

// Source bundles the fetched data one build starts from. FaceName picks
// the face to render on multi-faced prints; empty means the front face.
type Source struct {
	Print     *scryfall.Card
	Set       *scryfall.Set
	MeldParts []MeldPart
	FaceName  string
}

// faceView flattens whichever object holds the renderable face fields, a
// whole print or one of its card faces.
type faceView struct {
	Name            string
	ManaCost        string
	TypeLine        string
	OracleText      string
	FlavorText      string
	Power           string
	Toughness       string
	Loyalty         string
	Artist          string
	Watermark       string
	Colors          []string
	ColorIndicator  []string
	PrintedName     string
	PrintedText     string
	PrintedTypeLine string
	ImageURIs       *scryfall.ImageURIs
}

// linkedFace is the face on the other side of a double-faced print.
// isFace distinguishes card-face objects from whole prints, which meld
// results are; frame analysis treats the two differently.
type linkedFace struct {
	view   faceView
	isFace bool
}

func viewOfPrint(c *scryfall.Card) faceView {
	return faceView{
		Name:            c.Name,
		ManaCost:        c.ManaCost,
		TypeLine:        c.TypeLine,
		OracleText:      c.OracleText,
		FlavorText:      c.FlavorText,
		Power:           c.Power,
		Toughness:       c.Toughness,
		Loyalty:         c.Loyalty,
		Artist:          c.Artist,
		Watermark:       c.Watermark,
		Colors:          c.Colors,
		ColorIndicator:  c.ColorIndicator,
		PrintedName:     c.PrintedName,
		PrintedText:     c.PrintedText,
		PrintedTypeLine: c.PrintedTypeLine,
		ImageURIs:       c.ImageURIs,
	}
}

func viewOfFace(f *scryfall.CardFace) faceView {
	return faceView{
		Name:            f.Name,
		ManaCost:        f.ManaCost,
		TypeLine:        f.TypeLine,
		OracleText:      f.OracleText,
		FlavorText:      f.FlavorText,
		Power:           f.Power,
		Toughness:       f.Toughness,
		Loyalty:         f.Loyalty,
		Artist:          f.Artist,
		Watermark:       f.Watermark,
		Colors:          f.Colors,
		ColorIndicator:  f.ColorIndicator,
		PrintedName:     f.PrintedName,
		PrintedText:     f.PrintedText,
		PrintedTypeLine: f.PrintedTypeLine,
		ImageURIs:       f.ImageURIs,
	}
}

// basicLandNames are the card names rendered with the basic land template,
// normalized with spaces removed.
var basicLandNames = []string{
	"plains",
	"island",
	"swamp",
	"mountain",
	"forest",
	"wastes",
	"snowcoveredplains",
	"snowcoveredisland",
	"snowcoveredswamp",
	"snowcoveredmountain",
	"snowcoveredforest",
}

// IsBasicLandName reports whether a card name belongs to a basic land,
// ignoring case, accents and spacing.
func IsBasicLandName(name string) bool {
	n := strings.ReplaceAll(normalizeName(name), " ", "")
	for _, basic := range basicLandNames {
		if n == basic {
			return true
		}
	}
	return false
}

// BuildBasicLand constructs the synthetic Card for a basic land render.
// Basics skip the card data fetch entirely.
func BuildBasicLand(name, setCode string, opts Options) *Card {
	if setCode == "" {
		setCode = "MTG"
	}
	artist := opts.Artist
	if artist == "" {
		artist = "Unknown"
	}
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	return &Card{
		Name:            name,
		FaceName:        name,
		Class:           ClassBasic,
		Layout:          "basic",
		Language:        strings.ToUpper(lang),
		SetCode:         strings.ToUpper(setCode),
		CollectorNumber: "000",
		Rarity:          "common",
		RarityLetter:    "C",
		Artist:          artist,
		CreatorName:     opts.CreatorName,
		TypeLine:        "Basic Land — " + name,
		TypeLineRaw:     "Basic Land — " + name,
		IsLand:          true,
		IsFrontFace:     true,
		Twins:           Land,
		Pinlines:        Land,
		Background:      Land,
		Identity:        Land,
	}
}

// Build assembles the immutable Card one render works from. It fails when
// the layout is unsupported or the data required by the card's class is
// missing.
func Build(src Source, opts Options) (*Card, error) {
	pr := src.Print
	if pr == nil {
		return nil, errors.New("build layout: missing card data")
	}

	switch pr.Layout {
	case "normal", "transform", "modal_dfc", "adventure", "leveler",
		"saga", "class", "planar", "token", "emblem", "meld":
	case "basic":
		return BuildBasicLand(pr.Name, pr.SetCode, opts), nil
	default:
		return nil, fmt.Errorf("build layout: unsupported layout %q", pr.Layout)
	}

	c := &Card{
		Layout:   pr.Layout,
		FaceName: src.FaceName,
		Language: language(pr, opts),
	}
	if c.FaceName == "" {
		c.FaceName = pr.Name
	}

	face, front, other, err := selectFace(pr, src, c.FaceName)
	if err != nil {
		return nil, err
	}
	c.IsFrontFace = front
	c.IsTransform = pr.Layout == "transform" || pr.Layout == "meld"
	c.IsMDFC = pr.Layout == "modal_dfc"

	alt := c.Language != "EN"

	// Names and text, honoring localized print fields
	c.Name = face.Name
	if alt && face.PrintedName != "" {
		c.Name = face.PrintedName
	}
	c.TypeLineRaw = face.TypeLine
	c.TypeLine = face.TypeLine
	if alt && face.PrintedTypeLine != "" {
		c.TypeLine = face.PrintedTypeLine
	}
	c.OracleTextRaw = face.OracleText
	c.OracleText = oracleText(face, c, alt)
	c.FlavorText = face.FlavorText
	c.ManaCost = face.ManaCost
	c.Power = face.Power
	c.Toughness = face.Toughness
	c.Loyalty = face.Loyalty

	// Colors and frame
	c.ColorIdentity = pr.ColorIdentity
	c.ColorIndicator = OrderedColors(strings.Join(face.ColorIndicator, ""))
	c.HasColorIndicator = len(face.ColorIndicator) > 0
	frame := AnalyzeFrame(frameInput(face, pr))
	c.Twins = frame.Twins
	c.Pinlines = frame.Pinlines
	c.Background = frame.Background
	c.Identity = frame.Identity
	c.IsColorless = frame.IsColorless
	c.IsHybrid = frame.IsHybrid

	// Classification flags from the raw face data
	c.IsCreature = c.Power != "" && c.Toughness != ""
	c.IsLegendary = strings.Contains(c.TypeLineRaw, "Legendary")
	c.IsLand = strings.Contains(c.TypeLineRaw, Land)
	c.IsArtifact = strings.Contains(c.TypeLineRaw, Artifact)
	c.IsVehicle = strings.Contains(c.TypeLineRaw, Vehicle)
	c.IsNyx = containsString(pr.FrameEffects, "nyxtouched")
	c.IsCompanion = containsString(pr.FrameEffects, "companion")

	if other != nil {
		c.OtherFaceName = other.view.Name
		c.OtherFacePower = other.view.Power
		c.OtherFaceToughness = other.view.Toughness
		c.OtherFaceLeft = otherFaceLeft(other.view, alt)
		c.OtherFaceRight = otherFaceRight(other.view)
		c.OtherFaceTwins = AnalyzeFrame(FrameInput{
			ManaCost:       other.view.ManaCost,
			TypeLine:       other.view.TypeLine,
			OracleText:     other.view.OracleText,
			ColorIndicator: other.view.ColorIndicator,
			Colors:         other.view.Colors,
			IsFace:         other.isFace,
		}).Twins
	}

	c.Class = cardClass(c, pr, opts)
	if c.IsTransform {
		c.TransformIcon = transformIcon(pr.FrameEffects, c.TypeLineRaw, pr.Layout)
		if c.Class == ClassTransformBack && c.TransformIcon == IconCompassLand {
			c.Class = ClassIxalan
		}
	}

	// Collector info
	c.SetCode = setCode(pr, src.Set)
	c.CollectorNumber = collectorNumber(pr.CollectorNumber)
	c.Rarity, c.RarityLetter = rarity(pr.Rarity)
	if c.Class == ClassToken {
		c.RarityLetter = "T"
	}
	c.Count = cardCount(src.Set, c.CollectorNumber)
	c.Artist = artistName(face, pr, opts)
	c.CreatorName = opts.CreatorName
	c.WatermarkID = firstNonEmpty(face.Watermark, pr.Watermark)
	c.ScanURL = scanURL(face, pr)

	if err := parseClassData(c, pr); err != nil {
		return nil, err
	}

	// Content strips come last so variant parsing sees the full text.
	if opts.RemoveFlavor {
		c.FlavorText = ""
	}
	if opts.RemoveReminder {
		c.OracleText = text.StripReminderText(c.OracleText)
	}
	return c, nil
}

// language resolves the render language, uppercased. Prints carry their
// own language; the option covers synthetic cards.
func language(pr *scryfall.Card, opts Options) string {
	if pr.Lang != "" {
		return strings.ToUpper(pr.Lang)
	}
	if opts.Language != "" {
		return strings.ToUpper(opts.Language)
	}
	return "EN"
}

// selectFace resolves which face of the print is rendered and, for
// double-faced prints, the linked face.
func selectFace(pr *scryfall.Card, src Source, faceName string) (faceView, bool, *linkedFace, error) {
	switch pr.Layout {
	case "transform", "modal_dfc", "adventure":
		if len(pr.CardFaces) < 2 {
			return faceView{}, false, nil, fmt.Errorf("build layout: %s print %q has no faces", pr.Layout, pr.Name)
		}
		front, back := viewOfFace(&pr.CardFaces[0]), viewOfFace(&pr.CardFaces[1])
		if normalizeName(front.Name) == normalizeName(faceName) {
			return front, true, &linkedFace{view: back, isFace: true}, nil
		}
		return back, false, &linkedFace{view: front, isFace: true}, nil
	case "meld":
		return selectMeldFace(pr, src.MeldParts)
	}
	return viewOfPrint(pr), true, nil, nil
}

// selectMeldFace picks the meld component matching the print and links
// front halves to their meld result.
func selectMeldFace(pr *scryfall.Card, parts []MeldPart) (faceView, bool, *linkedFace, error) {
	var chosen *MeldPart
	var result *scryfall.Card
	for i := range parts {
		if parts[i].Card == nil {
			continue
		}
		if parts[i].Component == "meld_result" {
			result = parts[i].Card
		}
		if normalizeName(parts[i].Card.Name) == normalizeName(pr.Name) {
			chosen = &parts[i]
		}
	}
	if chosen == nil {
		return faceView{}, false, nil, fmt.Errorf("build layout: meld parts for %q not resolved", pr.Name)
	}
	front := chosen.Component != "meld_result"
	var other *linkedFace
	if front && result != nil {
		other = &linkedFace{view: viewOfPrint(result)}
	}
	return viewOfPrint(chosen.Card), front, other, nil
}

// oracleText resolves the rendered rules text: localized text when
// available, planeswalker minus signs normalized, and combined MDFC
// printed text cut back to this face's share.
func oracleText(face faceView, c *Card, alt bool) string {
	out := face.OracleText
	if alt && face.PrintedText != "" {
		out = face.PrintedText
		if c.IsMDFC {
			// Localized MDFC prints merge both faces into one text blob.
			breaks := strings.Count(face.OracleText, "\n")
			if strings.Count(out, "\n") > breaks {
				parts := strings.SplitN(out, "\n", breaks+2)
				out = strings.Join(parts[:len(parts)-1], "\n")
			}
		}
	}
	if strings.Contains(c.TypeLineRaw, "Planeswalker") {
		out = strings.ReplaceAll(out, "−", "-")
	}
	return out
}

func setCode(pr *scryfall.Card, set *scryfall.Set) string {
	if set != nil {
		if set.SetType == "token" && set.ParentSetCode != "" {
			return strings.ToUpper(set.ParentSetCode)
		}
		if set.Code != "" {
			return strings.ToUpper(set.Code)
		}
	}
	if pr.SetCode != "" {
		return strings.ToUpper(pr.SetCode)
	}
	return "MTG"
}

// collectorNumber keeps only digits and pads to three places.
func collectorNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return "000"
	}
	for len(num) < 3 {
		num = "0" + num
	}
	return num
}

// rarity clamps special rarities to mythic and derives the collector
// letter.
func rarity(raw string) (string, string) {
	switch raw {
	case "common", "uncommon", "rare", "mythic":
	default:
		raw = "mythic"
	}
	return raw, strings.ToUpper(raw[:1])
}

// cardCount resolves the set size for the "123/264" collector line. The
// count is omitted when unknown or smaller than the collector number.
func cardCount(set *scryfall.Set, collectorNumber string) string {
	if set == nil {
		return ""
	}
	least := 0
	for _, n := range []int{set.PrintedSize, set.CardCount} {
		if n > 0 && (least == 0 || n < least) {
			least = n
		}
	}
	if least == 0 {
		return ""
	}
	if num, err := strconv.Atoi(collectorNumber); err == nil && least < num {
		return ""
	}
	count := strconv.Itoa(least)
	for len(count) < 3 {
		count = "0" + count
	}
	return count
}

// artistName resolves the credited artist. Shared surnames in joint
// credits collapse, "John Smith & Jane Smith" becomes "John & Jane Smith".
func artistName(face faceView, pr *scryfall.Card, opts Options) string {
	artist := firstNonEmpty(opts.Artist, face.Artist, pr.Artist)
	if artist == "" {
		return "Unknown"
	}
	if !strings.Contains(artist, "&") {
		return artist
	}
	var words []string
	for _, w := range strings.Split(artist, " ") {
		for i, seen := range words {
			if seen == w {
				words = append(words[:i], words[i+1:]...)
				break
			}
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func scanURL(face faceView, pr *scryfall.Card) string {
	if face.ImageURIs != nil && face.ImageURIs.Large != "" {
		return face.ImageURIs.Large
	}
	return pr.Scan()
}

func frameInput(face faceView, pr *scryfall.Card) FrameInput {
	in := FrameInput{
		ManaCost:       face.ManaCost,
		TypeLine:       face.TypeLine,
		OracleText:     face.OracleText,
		ColorIndicator: face.ColorIndicator,
		Colors:         face.Colors,
	}
	if len(pr.CardFaces) > 0 {
		// Card faces carry no color identity of their own.
		in.IsFace = true
	} else {
		in.ColorIdentity = pr.ColorIdentity
	}
	return in
}

// cardClass picks the template family. Face type line and keywords refine
// the Scryfall layout.
func cardClass(c *Card, pr *scryfall.Card, opts Options) Class {
	pw := strings.Contains(c.TypeLineRaw, "Planeswalker")
	switch pr.Layout {
	case "transform", "meld":
		if pw {
			if c.IsFrontFace {
				return ClassPWTFFront
			}
			return ClassPWTFBack
		}
		if pr.Layout == "transform" && strings.Contains(c.TypeLineRaw, "Saga") {
			return ClassSaga
		}
		if c.IsFrontFace {
			return ClassTransformFront
		}
		return ClassTransformBack
	case "modal_dfc":
		if pw {
			if c.IsFrontFace {
				return ClassPWMDFCFront
			}
			return ClassPWMDFCBack
		}
		if c.IsFrontFace {
			return ClassMDFCFront
		}
		return ClassMDFCBack
	case "adventure":
		return ClassAdventure
	case "leveler":
		return ClassLeveler
	case "saga":
		return ClassSaga
	case "class":
		return ClassClass
	case "planar":
		return ClassPlanar
	case "token", "emblem":
		return ClassToken
	}
	switch {
	case pw:
		return ClassPlaneswalker
	case containsString(pr.Keywords, "Mutate"):
		return ClassMutate
	case containsString(pr.FrameEffects, "miracle") && opts.RenderMiracle:
		return ClassMiracle
	case containsString(pr.Keywords, "Prototype"):
		return ClassPrototype
	case strings.Contains(c.TypeLineRaw, "Snow") && opts.RenderSnow:
		// frame_effects lacks "snow" on pre-Kaldheim prints
		return ClassSnow
	}
	return ClassNormal
}

// transformIcon resolves the icon layer name for a double-faced card.
func transformIcon(frameEffects []string, typeLineRaw, layoutName string) string {
	for _, effect := range frameEffects {
		for _, icon := range transformIcons {
			if effect == icon {
				return icon
			}
		}
	}
	if layoutName == "meld" {
		return IconMeld
	}
	if strings.Contains(typeLineRaw, Land) {
		return IconLand
	}
	return IconSunMoon
}

// parseClassData fills the variant fields the card's class needs and
// verifies the required text is present.
func parseClassData(c *Card, pr *scryfall.Card) error {
	switch c.Class {
	case ClassSaga:
		c.SagaLines, c.SagaDescription = sagaLines(c.OracleText)
		if len(c.SagaLines) == 0 {
			return fmt.Errorf("build layout: saga %q has no chapter text", c.Name)
		}
	case ClassClass:
		lines, err := classLines(c.OracleText)
		if err != nil {
			return fmt.Errorf("build layout: class %q: %w", c.Name, err)
		}
		c.ClassLines = lines
	case ClassLeveler:
		lv, err := levelerText(c.OracleText)
		if err != nil {
			return fmt.Errorf("build layout: leveler %q: %w", c.Name, err)
		}
		c.Leveler = lv
	case ClassAdventure:
		adv := &pr.CardFaces[1]
		c.Adventure = &Adventure{
			Name:       adv.Name,
			ManaCost:   adv.ManaCost,
			TypeLine:   adv.TypeLine,
			OracleText: adv.OracleText,
		}
	case ClassMutate:
		c.MutateText, c.OracleText = splitFirstLine(c.OracleText)
	case ClassPrototype:
		protoLine, rest := splitFirstLine(c.OracleText)
		proto, err := prototypeText(protoLine)
		if err != nil {
			return fmt.Errorf("build layout: prototype %q: %w", c.Name, err)
		}
		c.Prototype = proto
		c.OracleText = rest
	case ClassPlaneswalker, ClassPWTFFront, ClassPWTFBack, ClassPWMDFCFront, ClassPWMDFCBack:
		c.Abilities = planeswalkerAbilities(c.OracleText)
		if len(c.Abilities) == 0 {
			return fmt.Errorf("build layout: planeswalker %q has no abilities", c.Name)
		}
		if c.Loyalty == "" && c.Class == ClassPlaneswalker {
			return fmt.Errorf("build layout: planeswalker %q has no loyalty", c.Name)
		}
	}
	return nil
}

// sagaLines splits saga rules text into the description line and chapter
// abilities. A line without icons continues the previous chapter.
func sagaLines(oracle string) ([]SagaLine, string) {
	lines := strings.Split(oracle, "\n")
	description := lines[0]
	var out []SagaLine
	for _, line := range lines[1:] {
		if icons, body, ok := strings.Cut(line, " — "); ok {
			out = append(out, SagaLine{Text: body, Icons: strings.Split(icons, ", ")})
			continue
		}
		if len(out) == 0 {
			continue
		}
		out[len(out)-1].Text += "\n" + line
	}
	return out, description
}

var classLinePattern = regexp.MustCompile(`(?s)^(.+?): Level (\d)\n(.+)$`)

// classLines splits Class enchantment text into level bands. The first
// line is the reminder, the second the level 1 ability, then bands of
// "{cost}: Level {n}" followed by their text.
func classLines(oracle string) ([]ClassLine, error) {
	lines := strings.Split(oracle, "\n")
	if len(lines) < 2 {
		return nil, errors.New("no level text")
	}
	abilities := []ClassLine{{Text: lines[1], Level: 1}}
	for i := 2; i < len(lines); i += 2 {
		end := i + 2
		if end > len(lines) {
			end = len(lines)
		}
		chunk := strings.Join(lines[i:end], "\n")
		if m := classLinePattern.FindStringSubmatch(chunk); m != nil {
			level, _ := strconv.Atoi(m[2])
			abilities = append(abilities, ClassLine{Cost: m[1], Level: level, Text: m[3]})
			continue
		}
		abilities[len(abilities)-1].Text += "\n" + chunk
	}
	return abilities, nil
}

var levelerPattern = regexp.MustCompile(
	`(?s)^(.*?)\nLEVEL (\d+-\d+)\n([\dX*]+/[\dX*]+)\n(.*?)\nLEVEL (\d+\+)\n([\dX*]+/[\dX*]+)\n(.*)$`)

// levelerText unpacks Level-Up rules text into its three bands.
func levelerText(oracle string) (*LevelerText, error) {
	m := levelerPattern.FindStringSubmatch(oracle)
	if m == nil {
		return nil, errors.New("rules text does not follow the level band layout")
	}
	return &LevelerText{
		LevelUpText:          m[1],
		MiddleLevel:          m[2],
		MiddlePowerToughness: m[3],
		LevelsXYText:         m[4],
		BottomLevel:          m[5],
		BottomPowerToughness: m[6],
		LevelsZPlusText:      m[7],
	}, nil
}

var prototypePattern = regexp.MustCompile(`^Prototype (\S+) — ([\dX*]+/[\dX*]+)`)

// prototypeText parses the "Prototype {1}{W} — 2/3" casting line.
func prototypeText(line string) (*Prototype, error) {
	m := prototypePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, errors.New("rules text has no prototype line")
	}
	proto := &Prototype{ManaCost: m[1], PowerToughness: m[2]}
	for _, letter := range colorLetters {
		if strings.Contains(proto.ManaCost, letter) {
			proto.Color = letter
			break
		}
	}
	return proto, nil
}

// planeswalkerAbilities splits rules text into loyalty abilities. A line
// beginning with a short cost prefix starts an activated ability; other
// lines start a static ability, or continue the previous activated one so
// multi-line abilities stay whole.
func planeswalkerAbilities(oracle string) []Ability {
	if oracle == "" {
		return nil
	}
	var abilities []Ability
	for _, line := range strings.Split(oracle, "\n") {
		if idx := strings.Index(line, ": "); idx > 0 && idx < 5 {
			abilities = append(abilities, Ability{Cost: line[:idx], Text: line[idx+2:]})
			continue
		}
		if len(abilities) == 0 || abilities[len(abilities)-1].Static {
			abilities = append(abilities, Ability{Text: line, Static: true})
			continue
		}
		abilities[len(abilities)-1].Text += "\n" + line
	}
	return abilities
}

// otherFaceLeft is the type line tail shown on the bottom left of MDFC
// and transform fronts.
func otherFaceLeft(other faceView, alt bool) string {
	line := other.TypeLine
	if alt && other.PrintedTypeLine != "" {
		line = other.PrintedTypeLine
	}
	words := strings.Split(line, " ")
	return words[len(words)-1]
}

// otherFaceRight is the bottom right hint: the other face's mana cost,
// or its first tap ability sentence when the back is a land.
func otherFaceRight(other faceView) string {
	if !strings.Contains(other.TypeLine, Land) {
		return other.ManaCost
	}
	lines := strings.Split(other.OracleText, "\n")
	if len(lines) > 1 {
		for _, line := range lines {
			if strings.HasPrefix(line, "{T}") {
				sentence, _, found := strings.Cut(line, ".")
				if found {
					return sentence + "."
				}
				return line
			}
		}
	}
	return other.OracleText
}

func splitFirstLine(s string) (string, string) {
	first, rest, _ := strings.Cut(s, "\n")
	return first, rest
}

// normalizeName lowers a card name and strips accents and unusual
// characters for safe comparison.
func normalizeName(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
