package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// isCentered reports whether the rules text is short enough to center:
// one line, no flavor text.
func isCentered(card *layout.Card) bool {
	return len(card.FlavorText) <= 1 &&
		len(card.OracleText) <= 70 &&
		!strings.Contains(card.OracleText, "\n")
}

// nameLayer picks the card name layer, switching to the shifted variant
// beside the transform or modal icon when the card carries one.
func nameLayer(r *Render) (surface.Layer, error) {
	if r.nameShifted() {
		if plain := r.Layer(LayerName, GroupTextAndIcons); plain != nil {
			if err := r.Doc.SetVisible(plain, false); err != nil {
				return nil, err
			}
		}
		shift := r.Layer(LayerNameShift, GroupTextAndIcons)
		if shift == nil {
			return nil, fmt.Errorf("layer %q not found", LayerNameShift)
		}
		return shift, r.Doc.SetVisible(shift, true)
	}
	l := r.Layer(LayerName, GroupTextAndIcons)
	if l == nil {
		return nil, fmt.Errorf("layer %q not found", LayerName)
	}
	return l, nil
}

// typeLayer picks the typeline layer, switching to the shifted variant
// beside the color indicator dot when the card carries one.
func typeLayer(r *Render) (surface.Layer, error) {
	if r.typeShifted() {
		if plain := r.Layer(LayerType, GroupTextAndIcons); plain != nil {
			if err := r.Doc.SetVisible(plain, false); err != nil {
				return nil, err
			}
		}
		shift := r.Layer(LayerTypeShift, GroupTextAndIcons)
		if shift == nil {
			return nil, fmt.Errorf("layer %q not found", LayerTypeShift)
		}
		return shift, r.Doc.SetVisible(shift, true)
	}
	l := r.Layer(LayerType, GroupTextAndIcons)
	if l == nil {
		return nil, fmt.Errorf("layer %q not found", LayerType)
	}
	return l, nil
}

// planBasics queues the text every frame carries: mana cost, card name
// scaled against it, and the typeline scaled against the expansion
// symbol.
func planBasics(r *Render) error {
	mana := r.Layer(LayerManaCost, GroupTextAndIcons)
	name, err := nameLayer(r)
	if err != nil {
		return err
	}
	typeline, err := typeLayer(r)
	if err != nil {
		return err
	}
	r.Queue(
		FormattedText{Layer: mana, Rules: r.Card.ManaCost},
		ScaledText{Layer: name, Contents: r.Card.Name, Reference: mana},
		ScaledText{Layer: typeline, Contents: r.Card.TypeLine, Reference: r.Layer(LayerExpansionSymbol, GroupTextAndIcons)},
	)
	return nil
}

// rulesTextLayer picks the rules text variant for this card: creature
// boxes reserve room for the PT box, transform fronts facing a creature
// carve out the flipside PT notch. The creature variant starts hidden in
// the documents; noncreature cards hide the PT layer instead.
func rulesTextLayer(r *Render, noncreature bool) (surface.Layer, error) {
	flip := r.Card.IsTransform && r.Card.IsFrontFace && r.isFlipsideCreature()
	creature := r.Card.IsCreature && !noncreature
	var name string
	switch {
	case creature && flip:
		name = LayerRulesCreatureFlip
	case creature:
		name = LayerRulesCreature
	case flip:
		name = LayerRulesNoncreatureFlip
	default:
		name = LayerRulesNoncreature
	}
	l := r.Layer(name, GroupTextAndIcons)
	if l == nil {
		// Single box documents carry one rules layer.
		l = r.Layer(LayerRulesText, GroupTextAndIcons)
	}
	if l == nil {
		return nil, fmt.Errorf("layer %q not found", name)
	}
	if creature {
		return l, r.Doc.SetVisible(l, true)
	}
	if pt := r.Layer(LayerPT, GroupTextAndIcons); pt != nil {
		if err := r.Doc.SetVisible(pt, false); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// dividerLayer returns the flavor divider for this card. Transform fronts
// facing a creature use the short variant that clears the flipside PT.
func dividerLayer(r *Render) surface.Layer {
	if r.Card.IsTransform && r.Card.IsFrontFace && r.isFlipsideCreature() {
		if l := r.Layer(LayerDividerTF, GroupTextAndIcons); l != nil {
			return l
		}
	}
	return r.Layer(LayerDivider, GroupTextAndIcons)
}

// planRulesPT queues the rules text area and, on creatures, the power
// and toughness.
func planRulesPT(r *Render, noncreature bool) error {
	card := r.Card
	rules, err := rulesTextLayer(r, noncreature)
	if err != nil {
		return err
	}
	area := FormattedArea{
		FormattedText: FormattedText{
			Layer:    rules,
			Rules:    card.OracleText,
			Flavor:   card.FlavorText,
			Centered: isCentered(card),
		},
		Reference: r.Layer(LayerTextboxReference, GroupTextAndIcons),
		Divider:   dividerLayer(r),
	}
	if card.IsCreature && !noncreature {
		area.PTReference = r.Layer(LayerPTReference, GroupTextAndIcons)
		area.PTTopReference = r.Layer(LayerPTTopReference, GroupTextAndIcons)
		pt := r.Layer(LayerPT, GroupTextAndIcons)
		if pt == nil {
			return fmt.Errorf("layer %q not found", LayerPT)
		}
		r.Queue(
			StaticText{Layer: pt, Contents: card.Power + "/" + card.Toughness},
			area,
		)
		return nil
	}
	r.Queue(area)
	return nil
}

// normalText plans the standard frame: mana cost, name, typeline, then
// rules text and power/toughness.
type normalText struct {
	noncreature bool // document carries no PT box or creature rules layer
}

func (t normalText) PlanText(r *Render) error {
	if err := planBasics(r); err != nil {
		return err
	}
	return planRulesPT(r, t.noncreature)
}

// ixalanText plans the flipped land backs from Ixalan block: name and
// typeline are plain, nothing scales against a mana cost.
type ixalanText struct{}

func (ixalanText) PlanText(r *Render) error {
	name := r.Layer(LayerName, GroupTextAndIcons)
	if name == nil {
		return fmt.Errorf("layer %q not found", LayerName)
	}
	typeline, err := typeLayer(r)
	if err != nil {
		return err
	}
	r.Queue(
		StaticText{Layer: name, Contents: r.Card.Name},
		StaticText{Layer: typeline, Contents: r.Card.TypeLine},
	)
	return planRulesPT(r, true)
}

// mutateText plans the mutate frame: the mutate ability rides in its own
// box above the regular rules text.
type mutateText struct{}

func (mutateText) PlanText(r *Render) error {
	if err := planBasics(r); err != nil {
		return err
	}
	r.Queue(FormattedArea{
		FormattedText: FormattedText{
			Layer:  r.Layer(LayerMutate, GroupTextAndIcons),
			Rules:  r.Card.MutateText,
			Flavor: r.Card.FlavorText,
		},
		Reference: r.Layer(LayerMutateReference, GroupTextAndIcons),
	})
	return planRulesPT(r, false)
}

// adventureText plans the adventure frame: the spell half gets its own
// name, cost, rules and typeline on the left of the textbox.
type adventureText struct{}

func (adventureText) PlanText(r *Render) error {
	if r.Card.Adventure == nil {
		return errors.New("missing adventure face data")
	}
	if err := planBasics(r); err != nil {
		return err
	}
	adv := r.Card.Adventure
	mana := r.Layer(LayerManaCostAdventure, GroupTextAndIcons)
	r.Queue(
		FormattedText{Layer: mana, Rules: adv.ManaCost},
		ScaledText{
			Layer:     r.Layer(LayerNameAdventure, GroupTextAndIcons),
			Contents:  adv.Name,
			Reference: mana,
		},
		FormattedArea{
			FormattedText: FormattedText{
				Layer: r.Layer(LayerRulesAdventure, GroupTextAndIcons),
				Rules: adv.OracleText,
			},
			Reference: r.Layer(LayerTextboxRefAdventure, GroupTextAndIcons),
		},
		StaticText{
			Layer:    r.Layer(LayerTypeAdventure, GroupTextAndIcons),
			Contents: adv.TypeLine,
		},
	)
	return planRulesPT(r, false)
}

// levelerText plans the level-up frame: three ability bands with their
// own level and PT boxes replace the regular rules text.
type levelerText struct{}

func (levelerText) PlanText(r *Render) error {
	lv := r.Card.Leveler
	if lv == nil {
		return errors.New("missing leveler text data")
	}
	if err := planBasics(r); err != nil {
		return err
	}
	band := func(name string) surface.Layer {
		return r.Layer(name, GroupTextAndIcons, GroupLevelerText)
	}
	r.Queue(
		FormattedArea{
			FormattedText: FormattedText{Layer: band(LayerLevelUpText), Rules: lv.LevelUpText},
			Reference:     band(LayerTextboxReference + " - Level Text"),
		},
		StaticText{Layer: band(LayerTopPT), Contents: r.Card.Power + "/" + r.Card.Toughness},
		StaticText{Layer: band(LayerMiddleLevel), Contents: lv.MiddleLevel},
		StaticText{Layer: band(LayerMiddlePT), Contents: lv.MiddlePowerToughness},
		FormattedArea{
			FormattedText: FormattedText{Layer: band(LayerLevelsXYText), Rules: lv.LevelsXYText},
			Reference:     band(LayerTextboxReference + " - Level X-Y"),
		},
		StaticText{Layer: band(LayerBottomLevel), Contents: lv.BottomLevel},
		StaticText{Layer: band(LayerBottomPT), Contents: lv.BottomPowerToughness},
		FormattedArea{
			FormattedText: FormattedText{Layer: band(LayerLevelsZPlusText), Rules: lv.LevelsZPlusText},
			Reference:     band(LayerTextboxReference + " - Levels Z+"),
		},
	)
	return nil
}

// prototypeText plans the prototype frame: the alternate cost and PT get
// their own boxes under the typeline. When reminder text is stripped the
// prototype box keeps only the keyword.
type prototypeText struct{}

func (prototypeText) PlanText(r *Render) error {
	proto := r.Card.Prototype
	if proto == nil {
		return errors.New("missing prototype data")
	}
	if err := planBasics(r); err != nil {
		return err
	}
	r.Queue(
		FormattedText{Layer: r.Layer(LayerProtoManaCost, GroupTextAndIcons), Rules: proto.ManaCost},
		StaticText{Layer: r.Layer(LayerProtoPT, GroupTextAndIcons), Contents: proto.PowerToughness},
	)
	if r.Cfg.Render.RemoveReminder {
		r.Queue(FormattedArea{
			FormattedText: FormattedText{
				Layer: r.Layer(LayerProtoRules, GroupTextAndIcons),
				Rules: "Prototype",
			},
			Reference: r.Layer(proto.Color, GroupProtoTextbox),
		})
	}
	return planRulesPT(r, false)
}

// basicLandText plans nothing: basic land documents carry only artwork
// and the legal line.
type basicLandText struct{}

func (basicLandText) PlanText(r *Render) error { return nil }

// transformText plans both faces of a transform card. Fronts facing a
// creature add the flipside power and toughness; backs turn the name,
// typeline and PT white against the dark frame, except on the Eldritch
// Moon eldrazi whose backs stay bright.
type transformText struct {
	back bool
}

func (t transformText) PlanText(r *Render) error {
	if t.back && r.Card.TransformIcon != layout.IconMoonEldrazi {
		if err := whitenTextLayers(r); err != nil {
			return err
		}
	}
	if err := planBasics(r); err != nil {
		return err
	}
	if !t.back && r.isFlipsideCreature() {
		flip := r.Layer(LayerFlipsidePT, GroupTextAndIcons)
		if flip == nil {
			return fmt.Errorf("layer %q not found", LayerFlipsidePT)
		}
		r.Queue(StaticText{
			Layer:    flip,
			Contents: r.Card.OtherFacePower + "/" + r.Card.OtherFaceToughness,
		})
	}
	return planRulesPT(r, false)
}

// whitenTextLayers recolors name, typeline and PT for a dark back face.
func whitenTextLayers(r *Render) error {
	white := surface.RGB(255, 255, 255)
	for _, name := range []string{LayerName, LayerType, LayerPT} {
		if l := r.Layer(name, GroupTextAndIcons); l != nil {
			if err := r.Doc.SetTextColor(l, white); err != nil {
				return err
			}
		}
	}
	return nil
}

// mdfcText plans a modal double faced card: the bottom bar carries the
// other face's typeline tail on the left and its cost or tap line on the
// right.
type mdfcText struct{}

func (mdfcText) PlanText(r *Render) error {
	if err := planBasics(r); err != nil {
		return err
	}
	group := dfcGroupName(r)
	right := r.Layer(LayerMDFCRight, GroupTextAndIcons, group)
	left := r.Layer(LayerMDFCLeft, GroupTextAndIcons, group)
	if right == nil || left == nil {
		return fmt.Errorf("modal face layers not found in %q", group)
	}
	r.Queue(
		FormattedText{Layer: right, Rules: r.Card.OtherFaceRight},
		ScaledText{Layer: left, Contents: r.Card.OtherFaceLeft, Reference: right},
	)
	return planRulesPT(r, false)
}

// hookStarPT shrinks the PT text on cards whose power and toughness both
// carry a printed modifier over a star, which overflows the box at full
// size.
func hookStarPT(r *Render) error {
	card := r.Card
	starred := func(s string) bool {
		return strings.Contains(s, "+") && strings.Contains(s, "*")
	}
	if !starred(card.Power) || !starred(card.Toughness) {
		return nil
	}
	pt := r.Layer(LayerPT, GroupTextAndIcons)
	if pt == nil {
		return nil
	}
	return r.Doc.SetFontSize(pt, r.Doc.FontSize(pt)*0.7)
}

// hookLargeMana lifts the mana cost a hair so oversized phyrexian and
// hybrid symbols clear the frame edge.
func hookLargeMana(r *Render) error {
	mana := r.Layer(LayerManaCost, GroupTextAndIcons)
	if mana == nil {
		return nil
	}
	return r.Doc.Translate(mana, 0, -5)
}
