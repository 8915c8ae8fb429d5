package template

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// placeArtwork imports the art file into the document, takes over the art
// layer slot and frames the image to fill the art reference.
func placeArtwork(r *Render, artFile string) error {
	placeholder := r.Layer(LayerDefault)
	if placeholder == nil {
		return fmt.Errorf("layer %q not found", LayerDefault)
	}
	ref := artReference(r, artFile)
	if ref == nil {
		return fmt.Errorf("document %q has no art reference", r.Doc.Name())
	}
	art, err := r.Doc.ImportImage(artFile)
	if err != nil {
		return err
	}
	if err := r.Doc.Move(art, placeholder, surface.PlaceBefore); err != nil {
		return err
	}
	if err := r.Doc.SetVisible(placeholder, false); err != nil {
		return err
	}
	if err := r.Doc.Rename(art, LayerDefault); err != nil {
		return err
	}
	r.Invalidate(LayerDefault)
	return r.Doc.Frame(art, ref, surface.FrameFill)
}

// artReference picks the frame the art scales against: vertically
// oriented art prefers the full art frame, colorless frames render
// against it whenever the document carries one, then the spec's named
// frame, then the standard frame.
func artReference(r *Render, artFile string) surface.Layer {
	if artVertical(artFile) || (r.Card.IsColorless && r.Cfg.Render.VerticalFullart) {
		if l := r.Layer(LayerFullArtFrame); l != nil {
			return l
		}
	}
	if r.Card.IsColorless {
		if l := r.Layer(LayerFullArtFrame); l != nil {
			return l
		}
	}
	name := r.Spec.ArtReference
	if name == "" {
		name = LayerArtFrame
	}
	if l := r.Layer(name); l != nil {
		return l
	}
	return r.Layer(LayerArtFrame)
}

// artVertical reports whether the art file is noticeably taller than
// wide. Unreadable files count as horizontal.
func artVertical(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return false
	}
	return float64(cfg.Height) > float64(cfg.Width)*1.1
}

// pasteScan imports the card's reference scan above the art layer, framed
// to the scan frame and hidden. A nonzero rotation turns sideways cards
// upright first.
func pasteScan(r *Render, data []byte, rotation float64) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode scan: %w", err)
	}
	scan, err := r.Doc.ImportImageData(img, LayerScanReference)
	if err != nil {
		return err
	}
	if rotation != 0 {
		if err := r.Doc.Rotate(scan, rotation); err != nil {
			return err
		}
	}
	ref := r.Layer(LayerScanFrame)
	if ref == nil {
		return fmt.Errorf("layer %q not found", LayerScanFrame)
	}
	if err := r.Doc.Frame(scan, ref, surface.FrameFill); err != nil {
		return err
	}
	if art := r.Layer(LayerDefault); art != nil {
		if err := r.Doc.Move(scan, art, surface.PlaceBefore); err != nil {
			return err
		}
	}
	return r.Doc.SetVisible(scan, false)
}
