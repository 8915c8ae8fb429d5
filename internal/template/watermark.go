package template

import (
	"os"
	"path/filepath"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// buildWatermark stamps the card's watermark over the textbox, tinted to
// the pinline identity. Cards without a watermark, or without a bundled
// vector for it, render without one.
func buildWatermark(r *Render) error {
	if r.Card.WatermarkID == "" {
		return nil
	}
	path := filepath.Join(r.Cfg.App.AssetsDir, "watermarks", r.Card.WatermarkID+".svg")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	var colors []surface.Color
	if len(r.Card.Pinlines) == 2 {
		for _, ch := range r.Card.Pinlines {
			if c, ok := watermarkColors[string(ch)]; ok {
				colors = append(colors, c)
			}
		}
	} else if c, ok := watermarkColors[r.Card.Pinlines]; ok {
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return nil
	}

	ref := r.Layer(LayerTextboxReference, GroupTextAndIcons)
	if ref == nil {
		return nil
	}

	wm, err := r.Doc.ImportVector(path)
	if err != nil {
		return err
	}
	if err := r.Doc.Frame(wm, ref, surface.FrameFit); err != nil {
		return err
	}
	if err := r.Doc.Resize(wm, 80); err != nil {
		return err
	}
	if text := r.Group(GroupTextAndIcons); text != nil {
		if err := r.Doc.Move(wm, text, surface.PlaceAfter); err != nil {
			return err
		}
	}
	if err := r.Doc.SetBlendMode(wm, surface.BlendColorBurn); err != nil {
		return err
	}
	if err := r.Doc.SetOpacity(wm, float64(r.Cfg.Render.WatermarkOpacity)); err != nil {
		return err
	}

	if len(colors) == 1 {
		return r.Doc.ApplyEffects(wm, []surface.Effect{{
			Kind:  surface.EffectColorOverlay,
			Color: colors[0],
		}})
	}
	return r.Doc.ApplyEffects(wm, []surface.Effect{{
		Kind: surface.EffectGradientOverlay,
		Stops: []surface.GradientStop{
			{Color: colors[0], Location: 0, Midpoint: 50},
			{Color: colors[1], Location: 1, Midpoint: 50},
		},
	}})
}
