package template

import (
	"fmt"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// sagaText plans the saga frame: the reminder description in the header
// box, then one duplicated chapter line per saga ability with its chapter
// icons. The duplicates are kept on the render for the post text pass.
type sagaText struct{}

func (sagaText) PlanText(r *Render) error {
	if err := planBasics(r); err != nil {
		return err
	}
	reminder := r.Layer(LayerReminderText, GroupTextAndIcons, GroupSaga)
	if reminder == nil {
		return fmt.Errorf("layer %q not found in %q", LayerReminderText, GroupSaga)
	}
	r.Queue(FormattedArea{
		FormattedText: FormattedText{
			Layer: reminder,
			Rules: r.Card.SagaDescription,
		},
		Reference: r.Layer(LayerDescriptionReference, GroupTextAndIcons),
	})
	base := r.Layer(LayerSagaText, GroupTextAndIcons, GroupSaga)
	if base == nil {
		return fmt.Errorf("layer %q not found in %q", LayerSagaText, GroupSaga)
	}
	for _, line := range r.Card.SagaLines {
		ability, err := r.Doc.Duplicate(base)
		if err != nil {
			return err
		}
		icons := make([]surface.Layer, 0, len(line.Icons))
		for _, name := range line.Icons {
			src := r.Layer(name, GroupTextAndIcons, GroupSaga)
			if src == nil {
				return fmt.Errorf("chapter icon %q not found in %q", name, GroupSaga)
			}
			icon, err := r.Doc.Duplicate(src)
			if err != nil {
				return err
			}
			icons = append(icons, icon)
		}
		r.abilityLayers = append(r.abilityLayers, ability)
		r.iconLayers = append(r.iconLayers, icons)
		r.Queue(FormattedText{Layer: ability, Rules: line.Text})
	}
	return nil
}

// sagaPostText shrinks the chapter lines to fit the textbox, spreads them
// down it, centers each line's chapter icons beside it and duplicates a
// divider between neighbors.
func sagaPostText(r *Render) error {
	if len(r.abilityLayers) == 0 {
		return nil
	}
	ref := r.Layer(LayerTextboxReference, GroupTextAndIcons)
	if ref == nil {
		return fmt.Errorf("layer %q not found", LayerTextboxReference)
	}
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}

	// Chapter gaps are half again the outer gaps; the outer band also
	// reserves a half gap top and bottom for the stripe notches.
	const spacing = 80.0
	spaces := float64(len(r.abilityLayers) - 1)
	spacingTotal := spaces*1.5 + 2
	available := rb.Height() - ((spacing*1.5)*spaces + spacing*2)
	if err := scaleLayersToFit(r, r.abilityLayers, available); err != nil {
		return err
	}
	total, err := layersHeight(r, r.abilityLayers)
	if err != nil {
		return err
	}
	gap := (rb.Height() - total) * (1 / spacingTotal)
	insideGap := (rb.Height() - total) * (1.5 / spacingTotal)
	if err := spreadOverReference(r, r.abilityLayers, ref, gap, insideGap); err != nil {
		return err
	}

	for i, ability := range r.abilityLayers {
		icons := r.iconLayers[i]
		if len(icons) == 0 {
			continue
		}
		ab, err := r.Doc.Bounds(ability)
		if err != nil {
			return err
		}
		if len(icons) > 1 {
			if err := spaceApart(r, icons, spacing/3); err != nil {
				return err
			}
			if err := centerAllOnBand(r, icons, ab.Top, ab.Bottom); err != nil {
				return err
			}
			continue
		}
		if err := centerOnBand(r, icons[0], ab.Top, ab.Bottom); err != nil {
			return err
		}
	}

	divider := r.Layer(LayerDivider, GroupTextAndIcons, GroupSaga)
	if divider == nil {
		return fmt.Errorf("layer %q not found in %q", LayerDivider, GroupSaga)
	}
	for i := 0; i+1 < len(r.abilityLayers); i++ {
		dup, err := r.Doc.Duplicate(divider)
		if err != nil {
			return err
		}
		if err := positionBetween(r, dup, r.abilityLayers[i], r.abilityLayers[i+1]); err != nil {
			return err
		}
	}
	return nil
}
