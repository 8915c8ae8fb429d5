package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
)

// Default canvas size of a card template document, in pixels.
const (
	DefaultWidth  = 3264
	DefaultHeight = 4440
)

// MemDocument is an in-memory Document backed by a layer tree. It is used
// by tests and by dry-run mode, where no external editor is attached.
// Child layers are ordered top to bottom, index 0 being the topmost.
type MemDocument struct {
	name     string
	width    int
	height   int
	root     *memLayer
	manifest []LayerNode
}

type memLayer struct {
	doc     *MemDocument
	parent  *memLayer
	name    string
	group   bool
	visible bool
	clipped bool

	isText       bool
	text         string
	styled       *StyledText
	fontSize     float64
	textColor    Color
	hasTextColor bool

	opacity float64
	blend   BlendMode
	effects []Effect

	hasMask     bool
	maskEnabled bool
	maskFrom    string

	img        image.Image
	fill       *Color
	stops      []GradientStop
	vectorPath string
	merged     bool

	bounds    Rect
	hasBounds bool

	children []*memLayer
}

func (n *memLayer) Name() string { return n.name }

func (n *memLayer) IsGroup() bool { return n.group }

// NewDocument builds an in-memory document from a layer manifest.
func NewDocument(name string, width, height int, tree []LayerNode) *MemDocument {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	d := &MemDocument{name: name, width: width, height: height, manifest: tree}
	d.root = &memLayer{doc: d, name: name, group: true, visible: true}
	d.root.children = d.buildNodes(d.root, tree)
	return d
}

func (d *MemDocument) buildNodes(parent *memLayer, nodes []LayerNode) []*memLayer {
	out := make([]*memLayer, 0, len(nodes))
	for _, nd := range nodes {
		n := &memLayer{
			doc:       d,
			parent:    parent,
			name:      nd.Name,
			group:     nd.Group,
			visible:   !nd.Hidden,
			isText:    nd.IsText || nd.Text != "",
			text:      nd.Text,
			fontSize:  nd.FontSize,
			opacity:   100,
			hasMask:   nd.Mask,
			bounds:    nd.Bounds,
			hasBounds: nd.Bounds != Rect{},
		}
		if n.isText && n.fontSize == 0 {
			n.fontSize = 12
		}
		if nd.Group {
			n.children = d.buildNodes(n, nd.Children)
		}
		out = append(out, n)
	}
	return out
}

// Name returns the document name.
func (d *MemDocument) Name() string { return d.name }

func (d *MemDocument) resolve(l Layer) (*memLayer, error) {
	if l == nil {
		return nil, errors.New("nil layer handle")
	}
	n, ok := l.(*memLayer)
	if !ok {
		return nil, fmt.Errorf("foreign layer handle %T", l)
	}
	if n.doc != d {
		return nil, fmt.Errorf("layer %q belongs to another document", n.name)
	}
	return n, nil
}

// scope resolves the innermost group of a lookup path. A nil entry means
// the caller passed a failed lookup through; it resolves to no scope.
func (d *MemDocument) scope(within []Group) (*memLayer, bool, error) {
	if len(within) == 0 {
		return d.root, true, nil
	}
	g := within[len(within)-1]
	if g == nil {
		return nil, false, nil
	}
	n, err := d.resolve(g)
	if err != nil {
		return nil, false, err
	}
	if !n.group {
		return nil, false, fmt.Errorf("layer %q is not a group", n.name)
	}
	return n, true, nil
}

func findNode(root *memLayer, name string, wantGroup bool) *memLayer {
	for _, c := range root.children {
		if c.name == name && c.group == wantGroup {
			return c
		}
		if c.group {
			if m := findNode(c, name, wantGroup); m != nil {
				return m
			}
		}
	}
	return nil
}

// FindLayer returns the first non-group layer with the given name.
func (d *MemDocument) FindLayer(name string, within ...Group) Layer {
	scope, ok, err := d.scope(within)
	if err != nil || !ok {
		return nil
	}
	if n := findNode(scope, name, false); n != nil {
		return n
	}
	return nil
}

// FindGroup returns the first group with the given name.
func (d *MemDocument) FindGroup(name string, within ...Group) Group {
	scope, ok, err := d.scope(within)
	if err != nil || !ok {
		return nil
	}
	if n := findNode(scope, name, true); n != nil {
		return n
	}
	return nil
}

// SetVisible shows or hides a layer.
func (d *MemDocument) SetVisible(l Layer, visible bool) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	n.visible = visible
	return nil
}

// Visible reports whether a layer is visible. Nil handles report false.
func (d *MemDocument) Visible(l Layer) bool {
	n, err := d.resolve(l)
	if err != nil {
		return false
	}
	return n.visible
}

// Rename changes a layer's name.
func (d *MemDocument) Rename(l Layer, name string) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	n.name = name
	return nil
}

// SetOpacity sets layer opacity in percent.
func (d *MemDocument) SetOpacity(l Layer, percent float64) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return fmt.Errorf("opacity %v out of range", percent)
	}
	n.opacity = percent
	return nil
}

// SetBlendMode sets the layer blend mode.
func (d *MemDocument) SetBlendMode(l Layer, mode BlendMode) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	n.blend = mode
	return nil
}

func (d *MemDocument) textLayer(l Layer) (*memLayer, error) {
	n, err := d.resolve(l)
	if err != nil {
		return nil, err
	}
	if !n.isText {
		return nil, fmt.Errorf("layer %q is not a text layer", n.name)
	}
	return n, nil
}

// SetText replaces the contents of a text layer.
func (d *MemDocument) SetText(l Layer, s string) error {
	n, err := d.textLayer(l)
	if err != nil {
		return err
	}
	n.text = s
	n.styled = nil
	return nil
}

// Text returns the contents of a text layer, or "" otherwise.
func (d *MemDocument) Text(l Layer) string {
	n, err := d.resolve(l)
	if err != nil {
		return ""
	}
	return n.text
}

// SetStyledText replaces a text layer's contents and style runs.
func (d *MemDocument) SetStyledText(l Layer, st StyledText) error {
	n, err := d.textLayer(l)
	if err != nil {
		return err
	}
	total := utf8.RuneCountInString(st.Text)
	for _, run := range st.Runs {
		if run.Start < 0 || run.End > total || run.Start > run.End {
			return fmt.Errorf("style run [%d,%d) out of range for %d runes", run.Start, run.End, total)
		}
	}
	n.text = st.Text
	cp := st
	cp.Runs = append([]TextRun(nil), st.Runs...)
	n.styled = &cp
	return nil
}

// StyledTextOf returns the recorded styled contents of a text layer, for
// callers that need to inspect formatting. Nil when plain SetText was used.
func (d *MemDocument) StyledTextOf(l Layer) *StyledText {
	n, err := d.resolve(l)
	if err != nil {
		return nil
	}
	return n.styled
}

// ReplaceText substitutes every occurrence of old in a text layer.
func (d *MemDocument) ReplaceText(l Layer, old, new string) error {
	n, err := d.textLayer(l)
	if err != nil {
		return err
	}
	n.text = strings.ReplaceAll(n.text, old, new)
	return nil
}

// SetTextColor recolors a text layer.
func (d *MemDocument) SetTextColor(l Layer, c Color) error {
	n, err := d.textLayer(l)
	if err != nil {
		return err
	}
	n.textColor = c
	n.hasTextColor = true
	return nil
}

// TextColorOf returns the recorded text color and whether one was set.
func (d *MemDocument) TextColorOf(l Layer) (Color, bool) {
	n, err := d.resolve(l)
	if err != nil {
		return Color{}, false
	}
	return n.textColor, n.hasTextColor
}

// SetFontSize sets a text layer's base font size in points.
func (d *MemDocument) SetFontSize(l Layer, points float64) error {
	n, err := d.textLayer(l)
	if err != nil {
		return err
	}
	if points <= 0 {
		return fmt.Errorf("font size %v out of range", points)
	}
	n.fontSize = points
	return nil
}

// FontSize returns a text layer's base font size in points.
func (d *MemDocument) FontSize(l Layer) float64 {
	n, err := d.resolve(l)
	if err != nil {
		return 0
	}
	return n.fontSize
}

func (n *memLayer) detach() {
	sibs := n.parent.children
	for i, c := range sibs {
		if c == n {
			n.parent.children = append(sibs[:i], sibs[i+1:]...)
			return
		}
	}
}

func (n *memLayer) indexIn(parent *memLayer) int {
	for i, c := range parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

func insertChild(parent *memLayer, n *memLayer, at int) {
	n.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[at+1:], parent.children[at:])
	parent.children[at] = n
}

// Move reorders a layer relative to a target. PlaceBefore puts it above
// the target, PlaceAfter below it, PlaceInside at the top of a group.
func (d *MemDocument) Move(l Layer, target Layer, placement Placement) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	t, err := d.resolve(target)
	if err != nil {
		return err
	}
	if n == t {
		return fmt.Errorf("cannot move layer %q relative to itself", n.name)
	}
	if placement == PlaceInside {
		if !t.group {
			return fmt.Errorf("layer %q is not a group", t.name)
		}
		n.detach()
		insertChild(t, n, 0)
		return nil
	}
	n.detach()
	at := t.indexIn(t.parent)
	if placement == PlaceAfter {
		at++
	}
	insertChild(t.parent, n, at)
	return nil
}

func (n *memLayer) clone(doc *MemDocument, parent *memLayer) *memLayer {
	cp := *n
	cp.doc = doc
	cp.parent = parent
	cp.effects = append([]Effect(nil), n.effects...)
	cp.stops = append([]GradientStop(nil), n.stops...)
	if n.styled != nil {
		st := *n.styled
		st.Runs = append([]TextRun(nil), n.styled.Runs...)
		cp.styled = &st
	}
	cp.children = make([]*memLayer, 0, len(n.children))
	for _, c := range n.children {
		cp.children = append(cp.children, c.clone(doc, &cp))
	}
	return &cp
}

// Duplicate copies a layer, placing the copy directly above the original.
func (d *MemDocument) Duplicate(l Layer) (Layer, error) {
	n, err := d.resolve(l)
	if err != nil {
		return nil, err
	}
	cp := n.clone(d, n.parent)
	cp.name = n.name + " copy"
	insertChild(n.parent, cp, n.indexIn(n.parent))
	return cp, nil
}

// CreateGroup inserts a new empty group at the top of the scope.
func (d *MemDocument) CreateGroup(name string, within ...Group) (Group, error) {
	scope, ok, err := d.scope(within)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("nil group in lookup path")
	}
	g := &memLayer{doc: d, name: name, group: true, visible: true, opacity: 100}
	insertChild(scope, g, 0)
	return g, nil
}

// MergeGroup flattens a group into a single layer carrying its name.
func (d *MemDocument) MergeGroup(g Group) (Layer, error) {
	n, err := d.resolve(g)
	if err != nil {
		return nil, err
	}
	if !n.group {
		return nil, fmt.Errorf("layer %q is not a group", n.name)
	}
	var b Rect
	first := true
	for _, c := range n.children {
		if !c.visible {
			continue
		}
		cb := d.nodeBounds(c)
		if first {
			b, first = cb, false
			continue
		}
		b.Left = math.Min(b.Left, cb.Left)
		b.Top = math.Min(b.Top, cb.Top)
		b.Right = math.Max(b.Right, cb.Right)
		b.Bottom = math.Max(b.Bottom, cb.Bottom)
	}
	n.group = false
	n.merged = true
	n.children = nil
	n.bounds = b
	n.hasBounds = !first
	return n, nil
}

// CreateSolidColorLayer inserts a solid fill layer at the top of the scope.
func (d *MemDocument) CreateSolidColorLayer(c Color, clipped bool, within ...Group) (Layer, error) {
	scope, ok, err := d.scope(within)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("nil group in lookup path")
	}
	fill := c
	n := &memLayer{doc: d, name: "Color Fill", visible: true, opacity: 100, fill: &fill, clipped: clipped}
	insertChild(scope, n, 0)
	return n, nil
}

// CreateGradientLayer inserts a linear gradient fill layer at the top of
// the scope.
func (d *MemDocument) CreateGradientLayer(stops []GradientStop, clipped bool, within ...Group) (Layer, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 stops, got %d", len(stops))
	}
	scope, ok, err := d.scope(within)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("nil group in lookup path")
	}
	n := &memLayer{
		doc: d, name: "Gradient Fill", visible: true, opacity: 100,
		stops: append([]GradientStop(nil), stops...), clipped: clipped,
	}
	insertChild(scope, n, 0)
	return n, nil
}

// CopyMask copies the mask of one layer onto another.
func (d *MemDocument) CopyMask(from, onto Layer) error {
	f, err := d.resolve(from)
	if err != nil {
		return err
	}
	t, err := d.resolve(onto)
	if err != nil {
		return err
	}
	if !f.hasMask {
		return fmt.Errorf("layer %q has no mask", f.name)
	}
	t.hasMask = true
	t.maskEnabled = true
	t.maskFrom = f.name
	return nil
}

// EnableMask enables a layer's mask.
func (d *MemDocument) EnableMask(l Layer) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	if !n.hasMask {
		return fmt.Errorf("layer %q has no mask", n.name)
	}
	n.maskEnabled = true
	return nil
}

// MaskSource returns the name of the layer a mask was copied from, for
// structural assertions. Empty when the mask is the layer's own.
func (d *MemDocument) MaskSource(l Layer) string {
	n, err := d.resolve(l)
	if err != nil {
		return ""
	}
	return n.maskFrom
}

// ApplyEffects replaces a layer's effect stack.
func (d *MemDocument) ApplyEffects(l Layer, fx []Effect) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	n.effects = append([]Effect(nil), fx...)
	return nil
}

// EffectsOf returns a layer's current effect stack.
func (d *MemDocument) EffectsOf(l Layer) []Effect {
	n, err := d.resolve(l)
	if err != nil {
		return nil
	}
	return append([]Effect(nil), n.effects...)
}

// Frame scales and centers a layer against a reference layer's bounds.
func (d *MemDocument) Frame(l Layer, ref Layer, mode FrameMode) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	target := Rect{Right: float64(d.width), Bottom: float64(d.height)}
	if ref != nil {
		r, err := d.resolve(ref)
		if err != nil {
			return err
		}
		target = d.nodeBounds(r)
	}
	if target.Width() <= 0 || target.Height() <= 0 {
		return fmt.Errorf("reference %q has empty bounds", ref.Name())
	}
	src := d.nodeBounds(n)
	if src.Width() <= 0 || src.Height() <= 0 {
		return fmt.Errorf("layer %q has empty bounds", n.name)
	}

	sx := target.Width() / src.Width()
	sy := target.Height() / src.Height()
	scale := math.Max(sx, sy)
	if mode == FrameFit {
		scale = math.Min(sx, sy)
	}
	w := src.Width() * scale
	h := src.Height() * scale
	left := target.Left + (target.Width()-w)/2
	top := target.Top + (target.Height()-h)/2
	n.bounds = Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
	n.hasBounds = true

	if n.img != nil {
		iw, ih := int(math.Round(w)), int(math.Round(h))
		if mode == FrameFill {
			n.img = imaging.Fill(n.img, int(math.Round(target.Width())), int(math.Round(target.Height())), imaging.Center, imaging.Lanczos)
			n.bounds = target
		} else {
			n.img = imaging.Fit(n.img, iw, ih, imaging.Lanczos)
		}
	}
	return nil
}

// Resize scales a layer around its center, in percent.
func (d *MemDocument) Resize(l Layer, percent float64) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	if percent <= 0 {
		return fmt.Errorf("invalid resize percent %v", percent)
	}
	b := d.nodeBounds(n)
	w := b.Width() * percent / 100
	h := b.Height() * percent / 100
	cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
	n.bounds = Rect{Left: cx - w/2, Top: cy - h/2, Right: cx + w/2, Bottom: cy + h/2}
	n.hasBounds = true
	if n.img != nil {
		n.img = imaging.Resize(n.img, int(math.Round(w)), int(math.Round(h)), imaging.Lanczos)
	}
	return nil
}

// Translate shifts a layer by a pixel delta. Group bounds are derived
// from their children, so translating a group shifts every child.
func (d *MemDocument) Translate(l Layer, dx, dy float64) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	translateNode(d, n, dx, dy)
	return nil
}

func translateNode(d *MemDocument, n *memLayer, dx, dy float64) {
	if n.group {
		for _, c := range n.children {
			translateNode(d, c, dx, dy)
		}
		return
	}
	b := d.nodeBounds(n)
	n.bounds = Rect{Left: b.Left + dx, Top: b.Top + dy, Right: b.Right + dx, Bottom: b.Bottom + dy}
	n.hasBounds = true
}

// Rotate rotates a layer around its center, in degrees clockwise.
func (d *MemDocument) Rotate(l Layer, degrees float64) error {
	n, err := d.resolve(l)
	if err != nil {
		return err
	}
	if n.img != nil {
		n.img = imaging.Rotate(n.img, -degrees, color.NRGBA{})
	}
	b := d.nodeBounds(n)
	rad := degrees * math.Pi / 180
	w := math.Abs(b.Width()*math.Cos(rad)) + math.Abs(b.Height()*math.Sin(rad))
	h := math.Abs(b.Width()*math.Sin(rad)) + math.Abs(b.Height()*math.Cos(rad))
	cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
	n.bounds = Rect{Left: cx - w/2, Top: cy - h/2, Right: cx + w/2, Bottom: cy + h/2}
	n.hasBounds = true
	return nil
}

func splitMetricLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

// nodeBounds estimates content bounds. Text layers derive extent from
// their contents and font size so fit loops converge deterministically.
func (d *MemDocument) nodeBounds(n *memLayer) Rect {
	if n.isText {
		anchor := n.bounds
		lines := splitMetricLines(n.text)
		longest := 0
		for _, line := range lines {
			if c := utf8.RuneCountInString(line); c > longest {
				longest = c
			}
		}
		w := float64(longest) * n.fontSize * 0.5
		h := float64(len(lines)) * n.fontSize * 1.2
		return Rect{Left: anchor.Left, Top: anchor.Top, Right: anchor.Left + w, Bottom: anchor.Top + h}
	}
	if n.group {
		var b Rect
		first := true
		for _, c := range n.children {
			if !c.visible {
				continue
			}
			cb := d.nodeBounds(c)
			if first {
				b, first = cb, false
				continue
			}
			b.Left = math.Min(b.Left, cb.Left)
			b.Top = math.Min(b.Top, cb.Top)
			b.Right = math.Max(b.Right, cb.Right)
			b.Bottom = math.Max(b.Bottom, cb.Bottom)
		}
		if first {
			return Rect{Right: float64(d.width), Bottom: float64(d.height)}
		}
		return b
	}
	if n.hasBounds {
		return n.bounds
	}
	if n.img != nil {
		ib := n.img.Bounds()
		return Rect{Right: float64(ib.Dx()), Bottom: float64(ib.Dy())}
	}
	return Rect{Right: float64(d.width), Bottom: float64(d.height)}
}

// Bounds returns the bounding box of a layer's rendered content.
func (d *MemDocument) Bounds(l Layer) (Rect, error) {
	n, err := d.resolve(l)
	if err != nil {
		return Rect{}, err
	}
	return d.nodeBounds(n), nil
}

// ImportImage decodes an image file and places it as a new raster layer
// at the top of the scope.
func (d *MemDocument) ImportImage(path string, within ...Group) (Layer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d.ImportImageData(img, name, within...)
}

// ImportImageData places decoded image data as a new raster layer at the
// top of the scope.
func (d *MemDocument) ImportImageData(img image.Image, name string, within ...Group) (Layer, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	scope, ok, err := d.scope(within)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("nil group in lookup path")
	}
	ib := img.Bounds()
	n := &memLayer{
		doc: d, name: name, visible: true, opacity: 100, img: img,
		bounds:    Rect{Right: float64(ib.Dx()), Bottom: float64(ib.Dy())},
		hasBounds: true,
	}
	insertChild(scope, n, 0)
	return n, nil
}

// ImportVector places a vector file as a new shape layer at the top of
// the scope. The file contents are not rasterized.
func (d *MemDocument) ImportVector(path string, within ...Group) (Layer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open vector: %w", err)
	}
	scope, ok, err := d.scope(within)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("nil group in lookup path")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	n := &memLayer{doc: d, name: name, visible: true, opacity: 100, vectorPath: path}
	insertChild(scope, n, 0)
	return n, nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func gradientAt(stops []GradientStop, t float64) Color {
	if t <= stops[0].Location {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Location {
			span := stops[i].Location - stops[i-1].Location
			f := 1.0
			if span > 0 {
				f = (t - stops[i-1].Location) / span
			}
			a, b := stops[i-1].Color, stops[i].Color
			return Color{R: lerp(a.R, b.R, f), G: lerp(a.G, b.G, f), B: lerp(a.B, b.B, f)}
		}
	}
	return stops[len(stops)-1].Color
}

func clipRect(b Rect, w, h int) image.Rectangle {
	r := image.Rect(int(b.Left), int(b.Top), int(b.Right), int(b.Bottom))
	return r.Intersect(image.Rect(0, 0, w, h))
}

func (d *MemDocument) drawNode(canvas *image.NRGBA, n *memLayer) {
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if !c.visible {
			continue
		}
		if c.group {
			d.drawNode(canvas, c)
			continue
		}
		b := d.nodeBounds(c)
		r := clipRect(b, d.width, d.height)
		if r.Empty() {
			continue
		}
		switch {
		case c.img != nil:
			img := c.img
			if img.Bounds().Dx() != r.Dx() || img.Bounds().Dy() != r.Dy() {
				img = imaging.Resize(img, r.Dx(), r.Dy(), imaging.Lanczos)
			}
			draw.Draw(canvas, r, img, image.Point{}, draw.Over)
		case c.fill != nil:
			src := image.NewUniform(color.NRGBA{R: c.fill.R, G: c.fill.G, B: c.fill.B, A: 255})
			draw.Draw(canvas, r, src, image.Point{}, draw.Over)
		case len(c.stops) > 0:
			for x := r.Min.X; x < r.Max.X; x++ {
				t := float64(x-int(b.Left)) / math.Max(b.Width(), 1)
				col := gradientAt(c.stops, t)
				src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255})
				draw.Draw(canvas, image.Rect(x, r.Min.Y, x+1, r.Max.Y), src, image.Point{}, draw.Over)
			}
		}
	}
}

// Flatten composites every visible raster, fill and gradient layer onto a
// white canvas. Text layers are structural only and are not rasterized.
func (d *MemDocument) Flatten() image.Image {
	canvas := imaging.New(d.width, d.height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	d.drawNode(canvas, d.root)
	return canvas
}

// Export flattens the document and writes it to disk. PSD output carries
// a flattened PNG payload; layer structure is not serialized.
func (d *MemDocument) Export(path string, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	img := d.Flatten()
	switch format {
	case FormatJPG:
		err = imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(95))
	default:
		err = imaging.Encode(f, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", strings.TrimPrefix(format.Extension(), "."), err)
	}
	return nil
}

// Reset rebuilds the layer tree from the document's manifest, discarding
// every change made since load.
func (d *MemDocument) Reset() error {
	d.root = &memLayer{doc: d, name: d.name, group: true, visible: true}
	d.root.children = d.buildNodes(d.root, d.manifest)
	return nil
}

// MemLoader opens in-memory documents from layer manifests. Manifests are
// keyed by file base name; Fallback serves any other path.
type MemLoader struct {
	Width     int
	Height    int
	Manifests map[string][]LayerNode
	Fallback  []LayerNode

	// PingFailures makes that many Ping calls fail with ErrUnavailable
	// before the loader reports healthy.
	PingFailures int
}

// Ping reports whether the surface is responsive.
func (ld *MemLoader) Ping() error {
	if ld.PingFailures > 0 {
		ld.PingFailures--
		return ErrUnavailable
	}
	return nil
}

// Load opens the manifest registered for the path's base name.
func (ld *MemLoader) Load(path string) (Document, error) {
	base := filepath.Base(path)
	manifest, ok := ld.Manifests[base]
	if !ok {
		manifest = ld.Fallback
	}
	if manifest == nil {
		return nil, fmt.Errorf("no manifest for template %q", base)
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return NewDocument(name, ld.Width, ld.Height, manifest), nil
}
