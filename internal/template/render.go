package template

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/config"
	"github.com/ramonehamilton/proxyforge/internal/console"
	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
	"github.com/ramonehamilton/proxyforge/internal/text"
)

// Render is the working state of one card render: the open document, the
// normalized card, resolved configuration and the queued text plan. Layer
// lookups are memoized per render and dropped wholesale at cleanup, so a
// render never pays twice for walking the document tree.
type Render struct {
	Doc     surface.Document
	Card    *layout.Card
	Cfg     *config.Config
	Console *console.Console
	Spec    *Spec
	Symbols *text.SymbolMap

	// Plan holds the queued text entries, applied in order after the
	// frame layers are enabled.
	Plan []TextEntry

	// ExitEarly requests the manual pause before saving, in addition to
	// the Spec and config settings.
	ExitEarly bool

	layers map[string]surface.Layer
	groups map[string]surface.Group

	// Planner scratch shared with post-text hooks.
	abilityLayers []surface.Layer
	iconLayers    [][]surface.Layer
	shieldLayers  []surface.Layer
	colonLayers   []surface.Layer
	stageLayers   []surface.Group
	pwGroup       surface.Group
}

func newRender(doc surface.Document, card *layout.Card, cfg *config.Config, cons *console.Console, spec *Spec, symbols *text.SymbolMap) *Render {
	return &Render{
		Doc:     doc,
		Card:    card,
		Cfg:     cfg,
		Console: cons,
		Spec:    spec,
		Symbols: symbols,
		layers:  make(map[string]surface.Layer),
		groups:  make(map[string]surface.Group),
	}
}

func lookupKey(name string, path []string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, "/") + "/" + name
}

// Group resolves a group by its path of names, outermost first. Results,
// including misses, are memoized until Invalidate or cleanup.
func (r *Render) Group(path ...string) surface.Group {
	if len(path) == 0 {
		return nil
	}
	key := strings.Join(path, "/")
	if g, ok := r.groups[key]; ok {
		return g
	}
	var within []surface.Group
	if len(path) > 1 {
		parent := r.Group(path[:len(path)-1]...)
		if parent == nil {
			r.groups[key] = nil
			return nil
		}
		within = []surface.Group{parent}
	}
	g := r.Doc.FindGroup(path[len(path)-1], within...)
	r.groups[key] = g
	return g
}

// Layer resolves a layer by name inside an optional group path. Results,
// including misses, are memoized until Invalidate or cleanup.
func (r *Render) Layer(name string, path ...string) surface.Layer {
	key := lookupKey(name, path)
	if l, ok := r.layers[key]; ok {
		return l
	}
	var within []surface.Group
	if len(path) > 0 {
		g := r.Group(path...)
		if g == nil {
			r.layers[key] = nil
			return nil
		}
		within = []surface.Group{g}
	}
	l := r.Doc.FindLayer(name, within...)
	r.layers[key] = l
	return l
}

// Invalidate drops the memoized lookup for one name so the next access
// resolves it fresh. Steps that rename or rebuild a layer call this.
func (r *Render) Invalidate(name string, path ...string) {
	key := lookupKey(name, path)
	delete(r.layers, key)
	delete(r.groups, key)
}

// purge drops every memoized lookup.
func (r *Render) purge() {
	r.layers = make(map[string]surface.Layer)
	r.groups = make(map[string]surface.Group)
}

// Queue appends entries to the text plan.
func (r *Render) Queue(entries ...TextEntry) {
	r.Plan = append(r.Plan, entries...)
}

// Show makes the named layer visible, failing when it is absent.
func (r *Render) Show(name string, path ...string) error {
	l := r.Layer(name, path...)
	if l == nil {
		return fmt.Errorf("layer %q not found", lookupKey(name, path))
	}
	return r.Doc.SetVisible(l, true)
}

// Hide makes the named layer invisible, failing when it is absent.
func (r *Render) Hide(name string, path ...string) error {
	l := r.Layer(name, path...)
	if l == nil {
		return fmt.Errorf("layer %q not found", lookupKey(name, path))
	}
	return r.Doc.SetVisible(l, false)
}

// ShowGroup makes the named group visible, failing when it is absent.
func (r *Render) ShowGroup(path ...string) error {
	g := r.Group(path...)
	if g == nil {
		return fmt.Errorf("group %q not found", strings.Join(path, "/"))
	}
	return r.Doc.SetVisible(g, true)
}

// colorLimit is the blend collapse threshold: the configured override when
// set, otherwise the spec's limit, otherwise the package default.
func (r *Render) colorLimit() int {
	if r.Cfg != nil && r.Cfg.Render.ColorLimitOverride > 0 {
		return r.Cfg.Render.ColorLimitOverride
	}
	if r.Spec != nil && r.Spec.ColorLimit > 0 {
		return r.Spec.ColorLimit
	}
	return defaultColorLimit
}

// nameShifted reports whether the card name moves aside for a transform
// or modal icon.
func (r *Render) nameShifted() bool {
	return r.Card.IsTransform || r.Card.IsMDFC
}

// typeShifted reports whether the typeline moves aside for a color
// indicator dot.
func (r *Render) typeShifted() bool {
	return r.Card.HasColorIndicator
}

// isFlipsideCreature reports whether the linked face carries a power and
// toughness box.
func (r *Render) isFlipsideCreature() bool {
	return r.Card.OtherFacePower != "" && r.Card.OtherFaceToughness != ""
}
