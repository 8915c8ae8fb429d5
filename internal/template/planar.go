package template

import (
	"fmt"
	"strings"
)

// planarText plans the oversized planar frame. Planes put everything
// before the last rules line into the static box and the last line into
// the chaos box; phenomenon cards have no chaos ability and mask the
// chaos trigger out of the textbox.
type planarText struct{}

func (planarText) PlanText(r *Render) error {
	name := r.Layer(LayerName, GroupTextAndIcons)
	if name == nil {
		return fmt.Errorf("layer %q not found", LayerName)
	}
	r.Queue(
		StaticText{Layer: name, Contents: r.Card.Name},
		ScaledText{
			Layer:     r.Layer(LayerType, GroupTextAndIcons),
			Contents:  r.Card.TypeLine,
			Reference: r.Layer(LayerExpansionSymbol, GroupTextAndIcons),
		},
	)

	static := r.Layer(LayerStaticAbility, GroupTextAndIcons)
	if static == nil {
		return fmt.Errorf("layer %q not found", LayerStaticAbility)
	}
	if r.Card.TypeLine == "Phenomenon" {
		r.Queue(FormattedText{Layer: static, Rules: r.Card.OracleText})
		if g := r.Group(GroupTextbox); g != nil {
			if err := r.Doc.EnableMask(g); err != nil {
				return err
			}
		}
		if err := r.Hide(LayerChaosSymbol, GroupTextAndIcons); err != nil {
			return err
		}
		return r.Hide(LayerChaosAbility, GroupTextAndIcons)
	}

	idx := strings.LastIndex(r.Card.OracleText, "\n")
	if idx < 0 {
		return fmt.Errorf("plane %q has no chaos ability line", r.Card.Name)
	}
	chaos := r.Layer(LayerChaosAbility, GroupTextAndIcons)
	if chaos == nil {
		return fmt.Errorf("layer %q not found", LayerChaosAbility)
	}
	r.Queue(
		FormattedText{Layer: static, Rules: r.Card.OracleText[:idx]},
		FormattedText{Layer: chaos, Rules: r.Card.OracleText[idx+1:]},
	)
	return nil
}
