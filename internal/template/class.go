package template

import (
	"errors"
	"fmt"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// classText plans the class frame: the level one ability uses the box's
// own text layer, every later level duplicates it plus a stage bar
// carrying the level cost and number. The duplicates are kept on the
// render for the post text pass.
type classText struct{}

func (classText) PlanText(r *Render) error {
	if len(r.Card.ClassLines) == 0 {
		return errors.New("missing class lines")
	}
	if err := planBasics(r); err != nil {
		return err
	}
	first := r.Layer(LayerClassText, GroupTextAndIcons, GroupClass)
	if first == nil {
		return fmt.Errorf("layer %q not found in %q", LayerClassText, GroupClass)
	}
	r.abilityLayers = append(r.abilityLayers, first)
	r.Queue(FormattedText{Layer: first, Rules: r.Card.ClassLines[0].Text})

	stage := r.Group(GroupTextAndIcons, GroupClass, GroupStage)
	if stage == nil {
		return fmt.Errorf("group %q not found in %q", GroupStage, GroupClass)
	}
	for i, line := range r.Card.ClassLines[1:] {
		ability, err := r.Doc.Duplicate(first)
		if err != nil {
			return err
		}
		dup, err := r.Doc.Duplicate(stage)
		if err != nil {
			return err
		}
		if err := r.Doc.Rename(dup, fmt.Sprintf("%s %d", GroupStage, i+1)); err != nil {
			return err
		}
		stageGroup, ok := dup.(surface.Group)
		if !ok {
			return fmt.Errorf("duplicated %q is not a group", GroupStage)
		}
		cost := r.Doc.FindLayer(LayerStageCost, stageGroup)
		level := r.Doc.FindLayer(LayerStageLevel, stageGroup)
		if cost == nil || level == nil {
			return fmt.Errorf("stage %d missing cost or level layer", i+1)
		}
		r.abilityLayers = append(r.abilityLayers, ability)
		r.stageLayers = append(r.stageLayers, stageGroup)
		r.Queue(
			FormattedText{Layer: ability, Rules: line.Text},
			FormattedText{Layer: cost, Rules: line.Cost + ":"},
			StaticText{Layer: level, Contents: fmt.Sprintf("Level %d", line.Level)},
		)
	}
	return r.Doc.SetVisible(stage, false)
}

// classPostText shrinks the class abilities to fit the textbox, spreads
// them down it and slots each stage bar into the gap between neighbors.
func classPostText(r *Render) error {
	if len(r.stageLayers) == 0 {
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
	sb, err := r.Doc.Bounds(r.stageLayers[0])
	if err != nil {
		return err
	}

	// Each inner gap must hold a stage bar plus padding on both sides.
	const spacing = 80.0
	spaces := float64(len(r.abilityLayers) - 1)
	stageHeight := sb.Height()
	spacingTotal := spaces*(spacing+stageHeight) + spacing*2
	if err := scaleLayersToFit(r, r.abilityLayers, rb.Height()-spacingTotal); err != nil {
		return err
	}
	total, err := layersHeight(r, r.abilityLayers)
	if err != nil {
		return err
	}
	gap := (rb.Height() - total) * (spacing / spacingTotal)
	insideGap := (rb.Height() - total) * ((spacing + stageHeight) / spacingTotal)
	if err := spreadOverReference(r, r.abilityLayers, ref, gap, insideGap); err != nil {
		return err
	}
	for i, stage := range r.stageLayers {
		if i+1 >= len(r.abilityLayers) {
			break
		}
		if err := positionBetween(r, stage, r.abilityLayers[i], r.abilityLayers[i+1]); err != nil {
			return err
		}
	}
	return nil
}
