package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// showIf makes a layer visible when present. Frame groups tolerate
// missing texture layers; a document only carries the combinations it can
// render.
func showIf(r *Render, l surface.Layer) error {
	if l == nil {
		return nil
	}
	return r.Doc.SetVisible(l, true)
}

// isFrameColors reports whether s is a pure mana color combination rather
// than a named texture layer.
func isFrameColors(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("WUBRG", c) {
			return false
		}
	}
	return true
}

// maskBlender enables one texture layer per color inside a group and
// copies a blend mask onto each previous layer so the colors split left
// to right across the frame.
type maskBlender struct{}

func (maskBlender) Blend(r *Render, group surface.Group, identity string, masks []string) error {
	if group == nil {
		return errors.New("blend: nil group")
	}
	if len(masks) == 0 {
		masks = []string{LayerHalf}
	}
	var prev surface.Layer
	for i, color := range blendColors(r, identity) {
		l := r.Doc.FindLayer(color, group)
		if l == nil {
			return fmt.Errorf("blend layer %q not found in %q", color, group.Name())
		}
		if err := r.Doc.SetVisible(l, true); err != nil {
			return err
		}
		// Masks running out leaves a hard edge on the remaining colors.
		if prev != nil && len(masks) >= i {
			if err := r.Doc.Move(l, prev, surface.PlaceAfter); err != nil {
				return err
			}
			mask := r.Layer(masks[i-1], GroupMasks)
			if mask == nil {
				return fmt.Errorf("blend mask %q not found", masks[i-1])
			}
			if err := r.Doc.CopyMask(mask, prev); err != nil {
				return err
			}
		}
		prev = l
	}
	return nil
}

// blendColors expands a frame identity into per-color layer names. A
// non-color identity names a single texture layer; a combination at or
// past the color limit collapses to the pinlines texture.
func blendColors(r *Render, identity string) []string {
	if identity == "" {
		identity = r.Card.Identity
	}
	if identity == "" {
		identity = r.Card.Pinlines
	}
	if !isFrameColors(identity) {
		return []string{identity}
	}
	if len(identity) >= r.colorLimit() {
		return []string{r.Card.Pinlines}
	}
	colors := make([]string, 0, len(identity))
	for _, c := range identity {
		colors = append(colors, string(c))
	}
	return colors
}

// normalFrame enables the classic raster frame: one texture layer per
// group, keyed by the card's frame colors. The zero value renders the
// standard frame; fields opt related families out of the variant layers
// their documents do not carry.
type normalFrame struct {
	noncreature bool   // never show the PT box
	noNyx       bool   // document has no nyx backgrounds
	noCompanion bool   // document has no companion crown
	noCrown     bool   // document has no legendary crown
	ptBox       string // PT box group, GroupPTBox when empty
}

func (f normalFrame) EnableFrame(r *Render) error {
	card := r.Card
	if err := showIf(r, r.Layer(card.Twins, GroupTwins)); err != nil {
		return err
	}
	if card.IsCreature && !f.noncreature {
		ptBox := f.ptBox
		if ptBox == "" {
			ptBox = GroupPTBox
		}
		if err := showIf(r, r.Layer(card.Twins, ptBox)); err != nil {
			return err
		}
	}
	if err := showIf(r, r.Layer(card.Pinlines, pinlinesGroup(r))); err != nil {
		return err
	}
	if r.typeShifted() {
		if err := showIf(r, r.Layer(card.ColorIndicator, GroupColorIndicator)); err != nil {
			return err
		}
	}
	bgGroup := GroupBackground
	if card.IsNyx && !f.noNyx {
		bgGroup = GroupNyx
	}
	if err := showIf(r, r.Layer(card.Background, bgGroup)); err != nil {
		return err
	}
	if card.IsLegendary && !f.noCrown {
		if crown := r.Layer(card.Pinlines, GroupCrown); crown != nil {
			return f.enableCrown(r, crown)
		}
	}
	return nil
}

// pinlinesGroup picks the raster pinlines group, which differs for lands.
func pinlinesGroup(r *Render) string {
	if r.Card.IsLand {
		return GroupLandPinlines
	}
	return GroupPinlinesTextbox
}

// enableCrown shows the legendary crown and swaps the normal border for
// the legendary one. Nyx and companion cards hollow the crown out.
func (f normalFrame) enableCrown(r *Render, crown surface.Layer) error {
	if err := r.Doc.SetVisible(crown, true); err != nil {
		return err
	}
	if r.Group(GroupBorder) != nil {
		if err := r.Hide(LayerNormalBorder, GroupBorder); err != nil {
			return err
		}
		if err := r.Show(LayerLegendaryBorder, GroupBorder); err != nil {
			return err
		}
	}
	nyx := r.Card.IsNyx && !f.noNyx
	companion := r.Card.IsCompanion && !f.noCompanion
	if !nyx && !companion {
		return nil
	}
	if err := enableHollowCrown(r); err != nil {
		return err
	}
	if companion {
		return showIf(r, r.Layer(LayerCompanion))
	}
	return nil
}

// enableHollowCrown reveals the masked crown cutout shared by nyx and
// companion frames.
func enableHollowCrown(r *Render) error {
	if err := r.Doc.EnableMask(r.Group(GroupCrown)); err != nil {
		return err
	}
	if err := r.Doc.EnableMask(r.Group(pinlinesGroup(r))); err != nil {
		return err
	}
	shadows := r.Layer(LayerShadows)
	if shadows == nil {
		return fmt.Errorf("layer %q not found", LayerShadows)
	}
	if err := r.Doc.EnableMask(shadows); err != nil {
		return err
	}
	return r.Show(LayerHollowCrownShadow)
}

// basicFrame shows the full art land texture named after the card.
type basicFrame struct{}

func (basicFrame) EnableFrame(r *Render) error {
	return r.Show(r.Card.Name)
}

// planarFrame does nothing: planar documents carry one static frame.
type planarFrame struct{}

func (planarFrame) EnableFrame(r *Render) error {
	return nil
}

// ixalanFrame is the flipped land back frame from Ixalan block: the only
// variable texture is a background keyed by the pinline color.
type ixalanFrame struct{}

func (ixalanFrame) EnableFrame(r *Render) error {
	return r.Show(r.Card.Pinlines, GroupBackground)
}

// prototypeFrame adds the prototype cost boxes on top of the normal
// frame. The manabox width follows the symbol count of the prototype
// cost.
type prototypeFrame struct {
	normalFrame
}

func (f prototypeFrame) EnableFrame(r *Render) error {
	if err := f.normalFrame.EnableFrame(r); err != nil {
		return err
	}
	color := r.Card.Prototype.Color
	if err := showIf(r, r.Layer(color, GroupProtoTextbox)); err != nil {
		return err
	}
	manabox := GroupProtoManaboxMedium
	if strings.Count(r.Card.Prototype.ManaCost, "{") == 2 {
		manabox = GroupProtoManaboxSmall
	}
	if g := r.Group(manabox); g != nil {
		if err := r.Doc.SetVisible(g, true); err != nil {
			return err
		}
		if err := showIf(r, r.Layer(color, manabox)); err != nil {
			return err
		}
	}
	return showIf(r, r.Layer(color, GroupProtoPTBox))
}

// sagaFrame is the saga raster frame: a textbox keyed by the background
// color, the chapter stripe, and transform elements on double faced
// sagas.
type sagaFrame struct{}

func (sagaFrame) EnableFrame(r *Render) error {
	card := r.Card
	if err := showIf(r, r.Layer(card.Twins, GroupTwins)); err != nil {
		return err
	}
	if err := showIf(r, r.Layer(card.Background, GroupTextbox)); err != nil {
		return err
	}
	if r.typeShifted() {
		if err := showIf(r, r.Layer(card.ColorIndicator, GroupColorIndicator)); err != nil {
			return err
		}
	}
	if err := showIf(r, r.Layer(card.Background, GroupBackground)); err != nil {
		return err
	}
	if err := r.Show(card.Pinlines, GroupSagaStripe); err != nil {
		return err
	}
	if !card.IsTransform {
		return nil
	}
	if err := r.ShowGroup(GroupTextAndIcons, GroupCircle); err != nil {
		return err
	}
	if err := r.Show(card.TransformIcon, GroupTextAndIcons, GroupTFFront); err != nil {
		return err
	}
	if twins := r.Group(GroupTwins); twins != nil {
		if err := r.Doc.EnableMask(twins); err != nil {
			return err
		}
	}
	return r.Show(card.Background, LayerTFTwins)
}

// dynamicFrame enables a vector frame with transform and modal variants:
// generated pinline fills, color-blended texture groups, a border swap
// and the face-specific shape set.
type dynamicFrame struct{}

func (dynamicFrame) EnableFrame(r *Render) error {
	card := r.Card

	// PT box and color indicator carry a single texture layer.
	if card.IsCreature {
		if err := showIf(r, r.Layer(card.Twins, GroupPTBox)); err != nil {
			return err
		}
	}
	if r.typeShifted() {
		if err := showIf(r, r.Layer(card.ColorIndicator, GroupColorIndicator)); err != nil {
			return err
		}
	}

	// Pinline colors are generated, not blended.
	if g := r.Group(GroupPinlines); g != nil {
		if err := r.Doc.SetVisible(g, true); err != nil {
			return err
		}
		if err := fillPinlines(r, g); err != nil {
			return err
		}
	}

	// Twins, textbox and background blend one layer per color.
	if err := blendInto(r, GroupTwins, card.Twins); err != nil {
		return err
	}
	if err := blendInto(r, GroupTextbox, card.Identity); err != nil {
		return err
	}
	if err := blendInto(r, GroupBackground, card.Background); err != nil {
		return err
	}

	// The legendary crown blends the color identity.
	if card.IsLegendary {
		if g := r.Group(GroupCrown); g != nil {
			if err := r.Doc.SetVisible(g, true); err != nil {
				return err
			}
			if err := r.Spec.Blender.Blend(r, g, card.Identity, nil); err != nil {
				return err
			}
		}
	}

	if err := showIf(r, borderLayer(r)); err != nil {
		return err
	}
	if err := enableShapes(r); err != nil {
		return err
	}

	if card.IsTransform {
		if err := enableTransformLayers(r); err != nil {
			return err
		}
	}
	if card.IsMDFC {
		if err := enableMDFCLayers(r); err != nil {
			return err
		}
	}
	return nil
}

// blendInto blends the given colors into a named frame group when the
// document carries it.
func blendInto(r *Render, groupName, colors string) error {
	g := r.Group(groupName)
	if g == nil {
		return nil
	}
	return r.Spec.Blender.Blend(r, g, colors, nil)
}

// fillPinlines generates the pinline color inside a group: a solid fill
// for single colors, a gradient with hard stops for two and three color
// combinations.
func fillPinlines(r *Render, g surface.Group) error {
	solid, stops := pinlineGradient(r.Card.Pinlines)
	if stops == nil {
		_, err := r.Doc.CreateSolidColorLayer(solid, true, g)
		return err
	}
	_, err := r.Doc.CreateGradientLayer(stops, true, g)
	return err
}

// borderLayer returns the border variant for this card.
func borderLayer(r *Render) surface.Layer {
	name := LayerBorderNormal
	if r.Card.IsLegendary {
		name = LayerBorderLegendary
	}
	return r.Layer(name, GroupBorder)
}

// dfcGroupName returns the text subgroup holding this face's double faced
// elements.
func dfcGroupName(r *Render) string {
	if r.Card.IsMDFC {
		if r.Card.IsFrontFace {
			return GroupMDFCFront
		}
		return GroupMDFCBack
	}
	if r.Card.IsFrontFace {
		return GroupTFFront
	}
	return GroupTFBack
}

// enableShapes turns on the face-appropriate shape variant inside each
// vector frame group.
func enableShapes(r *Render) error {
	card := r.Card
	twinsShape := LayerShapeNormal
	if card.IsTransform {
		twinsShape = LayerShapeTransform
	}
	pinShape := LayerShapeNormal
	if card.IsTransform {
		pinShape = LayerShapeTransformBack
		if card.IsFrontFace {
			pinShape = LayerShapeTransformFront
		}
	}
	textShape := LayerShapeNormal
	if card.IsTransform && card.IsFrontFace {
		textShape = LayerShapeTransformFront
	}
	if err := showIf(r, r.Layer(twinsShape, GroupTwins, GroupShape)); err != nil {
		return err
	}
	if err := showIf(r, r.Layer(pinShape, GroupPinlines, GroupShape)); err != nil {
		return err
	}
	return showIf(r, r.Layer(textShape, GroupTextbox, GroupShape))
}

// enableTransformLayers shows the transform icon and its circle backing,
// darkens the back face, and cuts the front face border for the textbox
// notch.
func enableTransformLayers(r *Render) error {
	if err := r.ShowGroup(GroupTextAndIcons, GroupTransform); err != nil {
		return err
	}
	if err := r.Show(r.Card.TransformIcon, GroupTextAndIcons, dfcGroupName(r)); err != nil {
		return err
	}
	if !r.Card.IsFrontFace {
		// Eldrazi backs keep the bright front textures.
		if r.Card.TransformIcon == layout.IconMoonEldrazi {
			return nil
		}
		if g := r.Group(GroupTwins, LayerBack); g != nil {
			if err := r.Doc.SetVisible(g, true); err != nil {
				return err
			}
		}
		return showIf(r, r.Layer(LayerBack, GroupTextbox))
	}
	border := borderLayer(r)
	mask := r.Layer(LayerShapeTransformFront, GroupMasks)
	if border == nil || mask == nil {
		return errors.New("transform border mask not found")
	}
	return r.Doc.CopyMask(mask, border)
}

// enableMDFCLayers shows the nameplates above and below the art carrying
// this face's twins color and the other face's.
func enableMDFCLayers(r *Render) error {
	group := dfcGroupName(r)
	if err := r.Show(r.Card.Twins, GroupTextAndIcons, group, GroupMDFCTop); err != nil {
		return err
	}
	return r.Show(r.Card.OtherFaceTwins, GroupTextAndIcons, group, GroupMDFCBottom)
}

// applyBorderColor recolors the border group when configured away from
// the black default.
func applyBorderColor(r *Render) error {
	name := strings.ToLower(r.Cfg.Render.BorderColor)
	if name == "" || name == "black" {
		return nil
	}
	c, ok := namedColors[name]
	if !ok {
		return fmt.Errorf("unknown border color %q", name)
	}
	border := r.Group(GroupBorder)
	if border == nil {
		return nil
	}
	return r.Doc.ApplyEffects(border, []surface.Effect{{
		Kind:  surface.EffectColorOverlay,
		Color: c,
	}})
}
