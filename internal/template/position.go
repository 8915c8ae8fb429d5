package template

import (
	"errors"
	"math"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// Vertical layout helpers shared by the stacked text frames. Saga
// chapters, class levels and planeswalker abilities all shrink a column
// of text layers to fit a reference box, then distribute the leftover
// space as gaps.

// layersHeight sums the content heights of a column of layers.
func layersHeight(r *Render, layers []surface.Layer) (float64, error) {
	var total float64
	for _, l := range layers {
		b, err := r.Doc.Bounds(l)
		if err != nil {
			return 0, err
		}
		total += b.Height()
	}
	return total, nil
}

// scaleLayersToFit shrinks the fonts of a column in lockstep until the
// combined height fits the available space. Layers keep their relative
// sizes; the loop stops at the minimum font size.
func scaleLayersToFit(r *Render, layers []surface.Layer, available float64) error {
	if len(layers) == 0 {
		return nil
	}
	for i := 0; i < maxFitSteps; i++ {
		total, err := layersHeight(r, layers)
		if err != nil {
			return err
		}
		if total <= available {
			return nil
		}
		shrunk := false
		for _, l := range layers {
			size := r.Doc.FontSize(l)
			if size-fitStep < minFontSize {
				continue
			}
			if err := r.Doc.SetFontSize(l, size-fitStep); err != nil {
				return err
			}
			shrunk = true
		}
		if !shrunk {
			return nil
		}
	}
	return nil
}

// spaceApart stacks layers top to bottom, placing each layer's top a
// fixed gap below the bottom of the one above it.
func spaceApart(r *Render, layers []surface.Layer, gap float64) error {
	for i := 0; i < len(layers)-1; i++ {
		above, err := r.Doc.Bounds(layers[i])
		if err != nil {
			return err
		}
		below, err := r.Doc.Bounds(layers[i+1])
		if err != nil {
			return err
		}
		if err := r.Doc.Translate(layers[i+1], 0, above.Bottom+gap-below.Top); err != nil {
			return err
		}
	}
	return nil
}

// spreadOverReference distributes a column down a reference box with a
// fixed gap against the reference top and a fixed gap between layers.
func spreadOverReference(r *Render, layers []surface.Layer, ref surface.Layer, gap, insideGap float64) error {
	if len(layers) == 0 {
		return errors.New("spread: no layers")
	}
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	top, err := r.Doc.Bounds(layers[0])
	if err != nil {
		return err
	}
	if err := r.Doc.Translate(layers[0], 0, rb.Top+gap-top.Top); err != nil {
		return err
	}
	return spaceApart(r, layers, insideGap)
}

// spreadEvenly distributes a column with uniform gaps: the space left
// over is split into equal bands above, between and below the layers.
func spreadEvenly(r *Render, layers []surface.Layer, ref surface.Layer) error {
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	total, err := layersHeight(r, layers)
	if err != nil {
		return err
	}
	gap := (rb.Height() - total) / float64(len(layers)+1)
	return spreadOverReference(r, layers, ref, gap, gap)
}

// spreadWithGap distributes a column with a fixed outer gap at the top
// and bottom; the inner gaps absorb whatever space remains.
func spreadWithGap(r *Render, layers []surface.Layer, ref surface.Layer, gap float64) error {
	if len(layers) < 2 {
		return spreadOverReference(r, layers, ref, gap, gap)
	}
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	total, err := layersHeight(r, layers)
	if err != nil {
		return err
	}
	inside := (rb.Height() - total - 2*gap) / float64(len(layers)-1)
	return spreadOverReference(r, layers, ref, gap, inside)
}

// positionBetween centers a layer vertically in the band between the
// bottom of one layer and the top of another.
func positionBetween(r *Render, l, above, below surface.Layer) error {
	ab, err := r.Doc.Bounds(above)
	if err != nil {
		return err
	}
	bb, err := r.Doc.Bounds(below)
	if err != nil {
		return err
	}
	return centerOnBand(r, l, ab.Bottom, bb.Top)
}

// centerOnBand moves a layer vertically so its center sits on the
// midpoint of a band.
func centerOnBand(r *Render, l surface.Layer, top, bottom float64) error {
	b, err := r.Doc.Bounds(l)
	if err != nil {
		return err
	}
	mid := (top + bottom) / 2
	return r.Doc.Translate(l, 0, mid-(b.Top+b.Height()/2))
}

// centerAllOnBand moves a set of layers by one shared delta so their
// combined extent centers on the midpoint of a band. Relative spacing
// within the set is preserved.
func centerAllOnBand(r *Render, layers []surface.Layer, top, bottom float64) error {
	if len(layers) == 0 {
		return nil
	}
	first, err := r.Doc.Bounds(layers[0])
	if err != nil {
		return err
	}
	minTop, maxBottom := first.Top, first.Bottom
	for _, l := range layers[1:] {
		b, err := r.Doc.Bounds(l)
		if err != nil {
			return err
		}
		minTop = math.Min(minTop, b.Top)
		maxBottom = math.Max(maxBottom, b.Bottom)
	}
	dy := (top+bottom)/2 - (minTop+maxBottom)/2
	for _, l := range layers {
		if err := r.Doc.Translate(l, 0, dy); err != nil {
			return err
		}
	}
	return nil
}

// alignRightEdge moves a layer horizontally so its right edge meets the
// reference's right edge.
func alignRightEdge(r *Render, l, ref surface.Layer) error {
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	b, err := r.Doc.Bounds(l)
	if err != nil {
		return err
	}
	return r.Doc.Translate(l, rb.Right-b.Right, 0)
}
