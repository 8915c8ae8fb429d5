package template

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// insertCollector fills the legal line at the card bottom. Documents
// without a legal group skip the step. The authentic layout mirrors a
// real printed collector line and needs the print's collector number;
// everything else gets the simple artist and set line.
func insertCollector(r *Render) error {
	if r.Group(GroupLegal) == nil {
		return nil
	}
	if r.Card.CreatorName != "" {
		if creator := r.Layer(LayerCreator, GroupLegal); creator != nil {
			if err := r.Doc.SetText(creator, r.Card.CreatorName); err != nil {
				return err
			}
		}
	}
	mode := r.Cfg.Render.CollectorMode
	authentic := (mode == config.CollectorDefault || mode == config.CollectorModern) &&
		r.Card.CollectorNumber != "" && !r.Spec.BasicCollector
	if authentic {
		return collectorAuthentic(r)
	}
	return collectorBasic(r)
}

func collectorBasic(r *Render) error {
	artist := r.Layer(LayerArtist, GroupLegal)
	set := r.Layer(LayerSet, GroupLegal)
	if artist == nil || set == nil {
		return fmt.Errorf("group %q is missing artist or set layer", GroupLegal)
	}
	// The stock legal text is white against the black border.
	if !borderIsBlack(r) {
		black := surface.RGB(0, 0, 0)
		if err := r.Doc.SetTextColor(set, black); err != nil {
			return err
		}
		if err := r.Doc.SetTextColor(artist, black); err != nil {
			return err
		}
	}
	if err := r.Doc.ReplaceText(artist, "Artist", r.Card.Artist); err != nil {
		return err
	}
	if r.Cfg.Render.CollectorMode == config.CollectorArtistOnly {
		return r.Doc.SetVisible(set, false)
	}
	if r.Card.Language != "EN" {
		if err := r.Doc.ReplaceText(set, "EN", r.Card.Language); err != nil {
			return err
		}
	}
	return r.Doc.SetText(set, r.Card.SetCode+r.Doc.Text(set))
}

func collectorAuthentic(r *Render) error {
	for _, name := range []string{LayerArtist, LayerSet} {
		l := r.Layer(name, GroupLegal)
		if l == nil {
			return fmt.Errorf("layer %q not found in %q", name, GroupLegal)
		}
		if err := r.Doc.SetOpacity(l, 0); err != nil {
			return err
		}
	}
	if err := r.ShowGroup(GroupLegal, GroupCollector); err != nil {
		return err
	}
	top := r.Layer(LayerCollectorTop, GroupLegal, GroupCollector)
	bottom := r.Layer(LayerCollectorBottom, GroupLegal, GroupCollector)
	if top == nil || bottom == nil {
		return fmt.Errorf("group %q is missing its text layers", GroupCollector)
	}
	if !borderIsBlack(r) {
		black := surface.RGB(0, 0, 0)
		if err := r.Doc.SetTextColor(top, black); err != nil {
			return err
		}
		if err := r.Doc.SetTextColor(bottom, black); err != nil {
			return err
		}
	}
	if r.Card.Language != "EN" {
		if err := r.Doc.ReplaceText(bottom, "EN", r.Card.Language); err != nil {
			return err
		}
	}
	if err := r.Doc.SetText(top, r.Card.CollectorTop()); err != nil {
		return err
	}
	if err := r.Doc.ReplaceText(bottom, "SET", r.Card.SetCode); err != nil {
		return err
	}
	return r.Doc.ReplaceText(bottom, "Artist", r.Card.Artist)
}

// borderIsBlack reports whether the configured border keeps the default
// black, which the stock white legal text is designed for.
func borderIsBlack(r *Render) bool {
	name := strings.ToLower(r.Cfg.Render.BorderColor)
	return name == "" || name == "black"
}
