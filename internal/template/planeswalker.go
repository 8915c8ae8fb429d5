package template

import (
	"errors"
	"fmt"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// pwBox resolves and shows the ability box group sized for this card.
// Memoized on the render so the planner, frame and post text passes agree
// on one group. Two cards are printed with an oversized box despite
// having three abilities.
func pwBox(r *Render) (surface.Group, error) {
	if r.pwGroup != nil {
		return r.pwGroup, nil
	}
	name := GroupPW3
	switch {
	case r.Card.Name == "Gideon Blackblade" || r.Card.Name == "Comet, Stellar Pup":
		name = GroupPW4
	case len(r.Card.Abilities) > 3:
		name = GroupPW4
	}
	g := r.Group(name)
	if g == nil {
		return nil, fmt.Errorf("group %q not found", name)
	}
	if err := r.Doc.SetVisible(g, true); err != nil {
		return nil, err
	}
	r.pwGroup = g
	return g, nil
}

// pwTextLayer resolves a name or typeline layer inside the box, swapping
// to the shifted variant unless the plain one is forced.
func pwTextLayer(r *Render, path []string, plain, shifted string, usePlain bool) (surface.Layer, error) {
	if usePlain {
		l := r.Layer(plain, path...)
		if l == nil {
			return nil, fmt.Errorf("layer %q not found", plain)
		}
		return l, nil
	}
	if p := r.Layer(plain, path...); p != nil {
		if err := r.Doc.SetVisible(p, false); err != nil {
			return nil, err
		}
	}
	l := r.Layer(shifted, path...)
	if l == nil {
		return nil, fmt.Errorf("layer %q not found", shifted)
	}
	return l, r.Doc.SetVisible(l, true)
}

// pwBasics queues mana cost, name and typeline inside the ability box
// group.
func pwBasics(r *Render, box string, plainName, plainType bool) error {
	path := []string{box, GroupTextAndIcons}
	mana := r.Layer(LayerManaCost, path...)
	name, err := pwTextLayer(r, path, LayerName, LayerNameShift, plainName || !r.nameShifted())
	if err != nil {
		return err
	}
	typeline, err := pwTextLayer(r, path, LayerType, LayerTypeShift, plainType || !r.typeShifted())
	if err != nil {
		return err
	}
	r.Queue(
		FormattedText{Layer: mana, Rules: r.Card.ManaCost},
		ScaledText{Layer: name, Contents: r.Card.Name, Reference: mana},
		ScaledText{Layer: typeline, Contents: r.Card.TypeLine, Reference: r.Layer(LayerExpansionSymbol, path...)},
	)
	return nil
}

// planeswalkerText plans the planeswalker frame: one duplicated ability
// layer per loyalty ability with its badge and colon, the starting
// loyalty, then the basics inside the ability box. Modal faces add the
// other face's bar. The duplicates are kept on the render for the post
// text pass.
type planeswalkerText struct {
	mdfc      bool // queue the modal bar text
	plainName bool // document carries no shifted name layer
	plainType bool // document carries no shifted typeline layer
}

func (t planeswalkerText) PlanText(r *Render) error {
	box, err := pwBox(r)
	if err != nil {
		return err
	}
	for _, ability := range r.Card.Abilities {
		if ability.Cost != "" {
			if err := t.planActivated(r, ability.Cost, ability.Text); err != nil {
				return err
			}
			continue
		}
		static := r.Layer(LayerStaticText, GroupLoyalty)
		if static == nil {
			return fmt.Errorf("layer %q not found in %q", LayerStaticText, GroupLoyalty)
		}
		dup, err := r.Doc.Duplicate(static)
		if err != nil {
			return err
		}
		r.abilityLayers = append(r.abilityLayers, dup)
		r.shieldLayers = append(r.shieldLayers, nil)
		r.colonLayers = append(r.colonLayers, nil)
		r.Queue(FormattedText{Layer: dup, Rules: ability.Text})
	}

	if r.Card.Loyalty != "" {
		loyalty := r.Layer(LayerLoyaltyText, GroupLoyalty, GroupStartingLoyalty)
		if loyalty == nil {
			return fmt.Errorf("layer %q not found in %q", LayerLoyaltyText, GroupStartingLoyalty)
		}
		if err := r.Doc.SetText(loyalty, r.Card.Loyalty); err != nil {
			return err
		}
	} else if g := r.Group(GroupLoyalty, GroupStartingLoyalty); g != nil {
		if err := r.Doc.SetVisible(g, false); err != nil {
			return err
		}
	}

	if err := pwBasics(r, box.Name(), t.plainName, t.plainType); err != nil {
		return err
	}

	if t.mdfc {
		dfc := dfcGroupName(r)
		right := r.Layer(LayerMDFCRight, box.Name(), GroupTextAndIcons, dfc)
		left := r.Layer(LayerMDFCLeft, box.Name(), GroupTextAndIcons, dfc)
		if right == nil || left == nil {
			return fmt.Errorf("modal face layers not found in %q", dfc)
		}
		r.Queue(
			FormattedText{Layer: right, Rules: r.Card.OtherFaceRight},
			ScaledText{Layer: left, Contents: r.Card.OtherFaceLeft, Reference: right},
		)
	}
	return nil
}

// planActivated duplicates the badge, colon and text layer for one
// activated loyalty ability. The badge group is picked by the cost's
// sign and duplicated only after its cost text is set.
func (planeswalkerText) planActivated(r *Render, cost, contents string) error {
	graphic := r.Group(GroupLoyalty, cost[:1])
	if graphic == nil {
		return fmt.Errorf("loyalty badge %q not found in %q", cost[:1], GroupLoyalty)
	}
	costLayer := r.Doc.FindLayer(LayerLoyaltyCost, graphic)
	if costLayer == nil {
		return fmt.Errorf("layer %q not found in badge %q", LayerLoyaltyCost, cost[:1])
	}
	if err := r.Doc.SetText(costLayer, cost); err != nil {
		return err
	}
	base := r.Layer(LayerAbilityText, GroupLoyalty)
	if base == nil {
		return fmt.Errorf("layer %q not found in %q", LayerAbilityText, GroupLoyalty)
	}
	ability, err := r.Doc.Duplicate(base)
	if err != nil {
		return err
	}
	shield, err := r.Doc.Duplicate(graphic)
	if err != nil {
		return err
	}
	colonBase := r.Layer(LayerColon, GroupLoyalty)
	if colonBase == nil {
		return fmt.Errorf("layer %q not found in %q", LayerColon, GroupLoyalty)
	}
	colon, err := r.Doc.Duplicate(colonBase)
	if err != nil {
		return err
	}
	r.abilityLayers = append(r.abilityLayers, ability)
	r.shieldLayers = append(r.shieldLayers, shield)
	r.colonLayers = append(r.colonLayers, colon)
	r.Queue(FormattedText{Layer: ability, Rules: contents})
	return nil
}

// planeswalkerFrame enables the single-texture planeswalker frame inside
// the ability box group. There is never a legendary crown.
type planeswalkerFrame struct {
	transformIcon bool // show the transform icon in the face group
	mdfc          bool // show the modal nameplates
}

func (f planeswalkerFrame) EnableFrame(r *Render) error {
	box, err := pwBox(r)
	if err != nil {
		return err
	}
	card := r.Card
	if err := showIf(r, r.Layer(card.Twins, box.Name(), GroupTwins)); err != nil {
		return err
	}
	if err := showIf(r, r.Layer(card.Pinlines, box.Name(), GroupPinlines)); err != nil {
		return err
	}
	if err := showIf(r, r.Layer(card.Background, box.Name(), GroupBackground)); err != nil {
		return err
	}
	if r.typeShifted() {
		if err := showIf(r, r.Layer(card.Pinlines, box.Name(), GroupColorIndicator)); err != nil {
			return err
		}
	}
	if f.transformIcon {
		if err := r.Show(card.TransformIcon, box.Name(), GroupTextAndIcons, dfcGroupName(r)); err != nil {
			return err
		}
	}
	if f.mdfc {
		dfc := dfcGroupName(r)
		if err := r.Show(card.Twins, box.Name(), GroupTextAndIcons, dfc, GroupMDFCTop); err != nil {
			return err
		}
		if err := r.Show(card.OtherFaceTwins, box.Name(), GroupTextAndIcons, dfc, GroupMDFCBottom); err != nil {
			return err
		}
	}
	return nil
}

// planeswalkerPostText shrinks the ability column to fit the textbox,
// spreads it, aligns each badge and colon to its ability, and positions
// the ragged divider lines.
func planeswalkerPostText(r *Render) error {
	if len(r.abilityLayers) == 0 {
		return nil
	}
	box, err := pwBox(r)
	if err != nil {
		return err
	}
	ref := r.Layer(LayerTextboxReference, box.Name(), GroupTextAndIcons)
	if ref == nil {
		return fmt.Errorf("layer %q not found", LayerTextboxReference)
	}
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}

	const spacing = 64.0
	spaces := float64(len(r.abilityLayers) + 1)
	if err := scaleLayersToFit(r, r.abilityLayers, rb.Height()-spacing*spaces); err != nil {
		return err
	}

	// Two-ability walkers and those without a loyalty badge spread with
	// uniform gaps; the rest pin the outer gaps and let the badge nudge
	// reclaim the slack.
	uniform := len(r.abilityLayers) < 3 || r.Card.Loyalty == ""
	if uniform {
		if err := spreadEvenly(r, r.abilityLayers, ref); err != nil {
			return err
		}
	} else if err := spreadWithGap(r, r.abilityLayers, ref, spacing); err != nil {
		return err
	}
	if r.Card.Loyalty != "" {
		if err := nudgeClearOfBadge(r, box.Name()); err != nil {
			return err
		}
	}

	for i, ability := range r.abilityLayers {
		if r.shieldLayers[i] == nil || r.colonLayers[i] == nil {
			continue
		}
		ab, err := r.Doc.Bounds(ability)
		if err != nil {
			return err
		}
		colon := r.colonLayers[i]
		cb, err := r.Doc.Bounds(colon)
		if err != nil {
			return err
		}
		if err := centerOnBand(r, colon, ab.Top, ab.Bottom); err != nil {
			return err
		}
		moved, err := r.Doc.Bounds(colon)
		if err != nil {
			return err
		}
		// The badge follows its colon by the same vertical shift.
		if err := r.Doc.Translate(r.shieldLayers[i], 0, moved.Top-cb.Top); err != nil {
			return err
		}
	}
	return positionRaggedLines(r, box.Name())
}

// nudgeClearOfBadge lifts the ability column when the bottom ability
// collides with the loyalty badge zone, stopping at the top reference.
func nudgeClearOfBadge(r *Render, box string) error {
	adj := r.Layer(LayerPWAdjustmentRef, box, GroupTextAndIcons)
	if adj == nil {
		return nil
	}
	last := r.abilityLayers[len(r.abilityLayers)-1]
	lb, err := r.Doc.Bounds(last)
	if err != nil {
		return err
	}
	ab, err := r.Doc.Bounds(adj)
	if err != nil {
		return err
	}
	delta := lb.Bottom - ab.Top
	if delta <= 0 {
		return nil
	}
	if top := r.Layer(LayerPWTopRef, box, GroupTextAndIcons); top != nil {
		tb, err := r.Doc.Bounds(top)
		if err != nil {
			return err
		}
		first, err := r.Doc.Bounds(r.abilityLayers[0])
		if err != nil {
			return err
		}
		if room := first.Top - tb.Top; delta > room {
			delta = room
		}
	}
	if delta <= 0 {
		return nil
	}
	for _, l := range r.abilityLayers {
		if err := r.Doc.Translate(l, 0, -delta); err != nil {
			return err
		}
	}
	return nil
}

// positionRaggedLines shows and places the torn divider edges between
// abilities. Two-ability walkers park the unused bottom line off canvas.
func positionRaggedLines(r *Render, box string) error {
	if len(r.abilityLayers) < 2 {
		return nil
	}
	path := []string{box, GroupTextbox, GroupAbilityDividers, GroupRaggedLines}
	line := func(name string) surface.Layer { return r.Layer(name, path...) }
	line1Top, line1Bottom := line("Line 1 Top"), line("Line 1 Bottom")
	if line1Top == nil || line1Bottom == nil {
		return fmt.Errorf("ragged lines not found in %q", GroupRaggedLines)
	}
	if err := r.Doc.SetVisible(line1Top, true); err != nil {
		return err
	}
	if err := r.Doc.SetVisible(line1Bottom, true); err != nil {
		return err
	}
	if err := positionDividerLine(r, r.abilityLayers[0], r.abilityLayers[1], line1Top, line("Line 1 Top Reference")); err != nil {
		return err
	}
	if len(r.abilityLayers) == 2 {
		return r.Doc.Translate(line1Bottom, 0, 1000)
	}
	if err := positionDividerLine(r, r.abilityLayers[1], r.abilityLayers[2], line1Bottom, line("Line 1 Bottom Reference")); err != nil {
		return err
	}
	if len(r.abilityLayers) != 4 {
		return nil
	}
	line2Top, line2Bottom := line("Line 2 Top"), line("Line 2 Bottom")
	if line2Top == nil || line2Bottom == nil {
		return fmt.Errorf("second ragged lines not found in %q", GroupRaggedLines)
	}
	if err := r.Doc.SetVisible(line2Top, true); err != nil {
		return err
	}
	if err := r.Doc.SetVisible(line2Bottom, true); err != nil {
		return err
	}
	return positionDividerLine(r, r.abilityLayers[2], r.abilityLayers[3], line2Top, line("Line 2 Reference"))
}

// positionDividerLine moves a ragged line so its reference midline sits
// halfway between two abilities.
func positionDividerLine(r *Render, above, below, line, lineRef surface.Layer) error {
	if line == nil || lineRef == nil {
		return errors.New("ragged line or its reference missing")
	}
	ab, err := r.Doc.Bounds(above)
	if err != nil {
		return err
	}
	bb, err := r.Doc.Bounds(below)
	if err != nil {
		return err
	}
	ref, err := r.Doc.Bounds(lineRef)
	if err != nil {
		return err
	}
	target := ab.Bottom + (bb.Top-ab.Bottom)/2
	refMid := (ref.Top + ref.Bottom) / 2
	return r.Doc.Translate(line, 0, target-refMid)
}
