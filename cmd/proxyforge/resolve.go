package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/artwork"
	"github.com/ramonehamilton/proxyforge/internal/cardmatch"
	"github.com/ramonehamilton/proxyforge/internal/console"
	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/scryfall"
	"github.com/ramonehamilton/proxyforge/internal/storage"
)

// resolver turns parsed art file tags into the card data a layout build
// needs, answering from the local cache before going to Scryfall.
type resolver struct {
	client   *scryfall.Client
	cache    *storage.Service
	cons     *console.Console
	language string
}

// resolve fetches the print the tags identify, its set, and any meld
// companions.
func (rs *resolver) resolve(ctx context.Context, tags artwork.Tags) (layout.Source, error) {
	pr, err := rs.card(ctx, tags)
	if err != nil {
		var notFound *scryfall.NotFoundError
		if errors.As(err, &notFound) {
			if hint := rs.suggest(ctx, tags.Name); hint != "" {
				return layout.Source{}, fmt.Errorf("card %q not found (did you mean %s?)", tags.Name, hint)
			}
			return layout.Source{}, fmt.Errorf("card %q not found", tags.Name)
		}
		return layout.Source{}, err
	}

	src := layout.Source{Print: pr, FaceName: tags.Name}

	// Set data is only decoration on the collector line; a miss leaves
	// the count off rather than failing the render.
	if pr.SetCode != "" {
		set, err := rs.set(ctx, pr.SetCode)
		if err != nil {
			rs.cons.Warn("No set data for %s: %v", strings.ToUpper(pr.SetCode), err)
		} else {
			src.Set = set
		}
	}

	if pr.Layout == "meld" {
		parts, err := rs.meldParts(ctx, pr)
		if err != nil {
			return layout.Source{}, fmt.Errorf("fetch meld companions for %q: %w", pr.Name, err)
		}
		src.MeldParts = parts
	}
	return src, nil
}

// card fetches a print through the cache. Tagged set and collector number
// pin an exact print; otherwise the name is matched fuzzily.
func (rs *resolver) card(ctx context.Context, tags artwork.Tags) (*scryfall.Card, error) {
	query := storage.CardQuery{Name: tags.Name, SetCode: tags.SetCode, Lang: rs.language}
	if tags.SetCode != "" && tags.Number != "" {
		query.Number = tags.Number
	}

	if card := rs.cachedCard(ctx, query); card != nil {
		return card, nil
	}

	var card *scryfall.Card
	var err error
	if query.Number != "" {
		card, err = rs.client.CardBySetNumber(ctx, tags.SetCode, tags.Number, nonDefaultLang(rs.language))
	} else {
		card, err = rs.client.NamedCard(ctx, tags.Name, tags.SetCode)
	}
	if err != nil {
		return nil, err
	}
	rs.store(ctx, query, card)
	return card, nil
}

// set fetches set data through the cache.
func (rs *resolver) set(ctx context.Context, code string) (*scryfall.Set, error) {
	if payload, err := rs.cache.GetSet(ctx, code); err == nil && payload != nil {
		var set scryfall.Set
		if json.Unmarshal(payload, &set) == nil {
			return &set, nil
		}
	}

	set, err := rs.client.GetSet(ctx, code)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(set); err == nil {
		if err := rs.cache.SaveSet(ctx, code, payload); err != nil {
			rs.cons.Warn("Couldn't cache set %s: %v", strings.ToUpper(code), err)
		}
	}
	return set, nil
}

// meldParts fetches every related meld piece of the print, result
// included, so the layout can link front faces to their back.
func (rs *resolver) meldParts(ctx context.Context, pr *scryfall.Card) ([]layout.MeldPart, error) {
	var parts []layout.MeldPart
	for _, rel := range pr.AllParts {
		if rel.Component != "meld_part" && rel.Component != "meld_result" {
			continue
		}
		query := storage.CardQuery{URI: rel.URI}
		card := rs.cachedCard(ctx, query)
		if card == nil {
			var err error
			card, err = rs.client.GetCard(ctx, rel.URI)
			if err != nil {
				return nil, err
			}
			rs.store(ctx, query, card)
		}
		parts = append(parts, layout.MeldPart{Component: rel.Component, Card: card})
	}
	return parts, nil
}

// cachedCard answers a query from the cache, nil on any miss. Cache
// problems never block a render; the client fetch is the fallback.
func (rs *resolver) cachedCard(ctx context.Context, query storage.CardQuery) *scryfall.Card {
	payload, err := rs.cache.GetCard(ctx, query)
	if err != nil || payload == nil {
		return nil
	}
	var card scryfall.Card
	if err := json.Unmarshal(payload, &card); err != nil {
		return nil
	}
	return &card
}

func (rs *resolver) store(ctx context.Context, query storage.CardQuery, card *scryfall.Card) {
	payload, err := json.Marshal(card)
	if err != nil {
		return
	}
	if err := rs.cache.SaveCard(ctx, query, payload); err != nil {
		rs.cons.Warn("Couldn't cache %s: %v", card.Name, err)
	}
}

// suggest finds the closest cached card name to a query that came back
// empty, for the skip message.
func (rs *resolver) suggest(ctx context.Context, name string) string {
	names, err := rs.cache.CardNames(ctx)
	if err != nil || len(names) == 0 {
		return ""
	}
	matches := cardmatch.Closest(name, names, cardmatch.Options{MaxResults: 1, MinScore: 60})
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Name
}

// nonDefaultLang returns the language code when it requests a localized
// print, empty for the default English endpoint.
func nonDefaultLang(lang string) string {
	if lang == "" || strings.EqualFold(lang, "en") {
		return ""
	}
	return strings.ToLower(lang)
}
