package template

import (
	"errors"
	"fmt"

	"github.com/ramonehamilton/proxyforge/internal/surface"
	"github.com/ramonehamilton/proxyforge/internal/text"
)

// Fit loop tuning. Text is shrunk in small steps until it clears its
// reference; the iteration cap bounds runaway loops on degenerate input.
const (
	fitStep     = 0.2
	minFontSize = 4
	maxFitSteps = 200
	scaledGap   = 36
)

// TextEntry is one queued text operation. Entries are applied in plan
// order during the text application step; the first failure aborts the
// step.
type TextEntry interface {
	Apply(r *Render) error
}

// StaticText sets a text layer's contents verbatim.
type StaticText struct {
	Layer    surface.Layer
	Contents string
	Color    *surface.Color
}

// Apply writes the contents and optional color.
func (e StaticText) Apply(r *Render) error {
	if e.Layer == nil {
		return errors.New("static text: nil layer")
	}
	if err := r.Doc.SetText(e.Layer, e.Contents); err != nil {
		return err
	}
	if e.Color != nil {
		return r.Doc.SetTextColor(e.Layer, *e.Color)
	}
	return nil
}

// ScaledText sets a text layer's contents and shrinks the font until the
// text clears the left edge of a reference layer on its right.
type ScaledText struct {
	Layer     surface.Layer
	Contents  string
	Reference surface.Layer
}

// Apply writes the contents and runs the fit loop.
func (e ScaledText) Apply(r *Render) error {
	if e.Layer == nil {
		return errors.New("scaled text: nil layer")
	}
	if err := r.Doc.SetText(e.Layer, e.Contents); err != nil {
		return err
	}
	if e.Reference == nil {
		return nil
	}
	ref, err := r.Doc.Bounds(e.Reference)
	if err != nil {
		return err
	}
	// An empty reference never constrains; the mana cost of a land is
	// a common case.
	if ref.Width() <= 0 {
		return nil
	}
	for i := 0; i < maxFitSteps; i++ {
		b, err := r.Doc.Bounds(e.Layer)
		if err != nil {
			return err
		}
		if b.Right <= ref.Left-scaledGap {
			return nil
		}
		size := r.Doc.FontSize(e.Layer)
		if size-fitStep < minFontSize {
			return nil
		}
		if err := r.Doc.SetFontSize(e.Layer, size-fitStep); err != nil {
			return err
		}
	}
	return nil
}

// FormattedText formats rules and flavor text into styled runs and writes
// them to a text layer.
type FormattedText struct {
	Layer    surface.Layer
	Rules    string
	Flavor   string
	Centered bool
	Color    *surface.Color
}

// Apply composes the styled block and writes it.
func (e FormattedText) Apply(r *Render) error {
	st, err := e.styled(r)
	if err != nil {
		return err
	}
	if e.Layer == nil {
		return errors.New("formatted text: nil layer")
	}
	if err := r.Doc.SetStyledText(e.Layer, st); err != nil {
		return err
	}
	if e.Color != nil {
		return r.Doc.SetTextColor(e.Layer, *e.Color)
	}
	return nil
}

func (e FormattedText) styled(r *Render) (surface.StyledText, error) {
	fm, err := text.Format(e.Rules, e.Flavor, r.Symbols)
	if err != nil {
		return surface.StyledText{}, fmt.Errorf("format text: %w", err)
	}
	flavorLead := text.FlavorTextLead
	if r.Cfg.Render.FlavorDivider && e.Flavor != "" {
		flavorLead = text.FlavorTextLeadDivider
	}
	return surface.StyledText{
		Text:        fm.Text,
		Runs:        fm.Runs,
		Centered:    e.Centered,
		LineLead:    text.LineBreakLead,
		FlavorLead:  flavorLead,
		FlavorIndex: fm.FlavorIndex,
		QuoteIndex:  fm.QuoteIndex,
	}, nil
}

// FormattedArea is a FormattedText that must fit inside a reference box:
// the font shrinks until the text fits, then the block is centered
// vertically in the reference. A divider layer, when present and enabled,
// separates rules from flavor. Creature rules carry PT references so the
// block shifts clear of the power and toughness box.
type FormattedArea struct {
	FormattedText
	Reference surface.Layer
	Divider   surface.Layer

	PTReference    surface.Layer
	PTTopReference surface.Layer
}

// Apply writes the block, fits it to the reference and shows the divider.
func (e FormattedArea) Apply(r *Render) error {
	if e.Rules == "" && e.Flavor == "" {
		return nil
	}
	if err := e.FormattedText.Apply(r); err != nil {
		return err
	}
	divider := e.Divider
	if divider == nil || e.Flavor == "" || e.Rules == "" || !r.Cfg.Render.FlavorDivider {
		divider = nil
	}
	if divider != nil {
		if err := r.Doc.SetVisible(divider, true); err != nil {
			return err
		}
	}
	if e.Reference == nil {
		return nil
	}
	if err := fitTextHeight(r, e.Layer, e.Reference); err != nil {
		return err
	}
	if err := centerTextVertically(r, e.Layer, e.Reference); err != nil {
		return err
	}
	if e.PTReference == nil {
		return nil
	}
	delta, err := nudgeClearOfPT(r, e.Layer, e.PTReference, e.PTTopReference)
	if err != nil {
		return err
	}
	if delta < 0 && divider != nil {
		return r.Doc.Translate(divider, 0, delta)
	}
	return nil
}

// nudgeClearOfPT shifts a centered rules block up when it overlaps the PT
// box, shrinking it first when the shift would push it past the top
// reference. It returns the applied vertical delta.
func nudgeClearOfPT(r *Render, l, ptRef, topRef surface.Layer) (float64, error) {
	pt, err := r.Doc.Bounds(ptRef)
	if err != nil {
		return 0, err
	}
	b, err := r.Doc.Bounds(l)
	if err != nil {
		return 0, err
	}
	if b.Bottom <= pt.Top {
		return 0, nil
	}
	delta := pt.Top - b.Bottom
	if topRef != nil {
		top, err := r.Doc.Bounds(topRef)
		if err != nil {
			return 0, err
		}
		if b.Top+delta < top.Top {
			if err := fitTextBand(r, l, top.Top, pt.Top); err != nil {
				return 0, err
			}
			if b, err = r.Doc.Bounds(l); err != nil {
				return 0, err
			}
			delta = pt.Top - b.Bottom
			if delta > 0 {
				delta = 0
			}
		}
	}
	if delta == 0 {
		return 0, nil
	}
	return delta, r.Doc.Translate(l, 0, delta)
}

// fitTextBand shrinks a text layer's font until its height fits between
// two vertical bounds.
func fitTextBand(r *Render, l surface.Layer, top, bottom float64) error {
	for i := 0; i < maxFitSteps; i++ {
		b, err := r.Doc.Bounds(l)
		if err != nil {
			return err
		}
		if b.Height() <= bottom-top {
			return nil
		}
		size := r.Doc.FontSize(l)
		if size-fitStep < minFontSize {
			return nil
		}
		if err := r.Doc.SetFontSize(l, size-fitStep); err != nil {
			return err
		}
	}
	return nil
}

// fitTextHeight shrinks a text layer's font until its content height fits
// the reference.
func fitTextHeight(r *Render, l, ref surface.Layer) error {
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	for i := 0; i < maxFitSteps; i++ {
		b, err := r.Doc.Bounds(l)
		if err != nil {
			return err
		}
		if b.Height() <= rb.Height() {
			return nil
		}
		size := r.Doc.FontSize(l)
		if size-fitStep < minFontSize {
			return nil
		}
		if err := r.Doc.SetFontSize(l, size-fitStep); err != nil {
			return err
		}
	}
	return nil
}

// centerTextVertically moves a layer so its content is centered on the
// reference's vertical midpoint.
func centerTextVertically(r *Render, l, ref surface.Layer) error {
	rb, err := r.Doc.Bounds(ref)
	if err != nil {
		return err
	}
	b, err := r.Doc.Bounds(l)
	if err != nil {
		return err
	}
	dy := (rb.Top + rb.Height()/2) - (b.Top + b.Height()/2)
	return r.Doc.Translate(l, 0, dy)
}
