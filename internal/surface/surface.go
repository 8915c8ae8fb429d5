// Package surface defines the rendering surface a template executes against.
//
// A Document is a tree of named layers and groups inside a loaded template
// file. The engine only ever talks to this interface; whether the document
// lives in an external editor process or in memory is the loader's concern.
package surface

import (
	"errors"
	"image"
)

// ErrUnavailable reports that the rendering surface is not responding.
// Any Document or Loader call may return it; recovery policy (retry,
// prompt, abort) belongs to the caller.
var ErrUnavailable = errors.New("rendering surface unavailable")

// Layer is an opaque handle to a layer inside a Document.
type Layer interface {
	// Name returns the layer's current name.
	Name() string
}

// Group is a handle to a layer group. Every Group is also a Layer.
type Group interface {
	Layer
	// IsGroup reports whether the handle refers to a group.
	IsGroup() bool
}

// Document is a loaded template open on the rendering surface.
//
// Lookup methods return nil when nothing matches; mutating methods fail
// with an error when given a nil or foreign handle. The `within` variadic
// is a path of nested groups from outermost to innermost; with no path the
// whole tree is searched depth-first.
type Document interface {
	// Name returns the document's name, usually the template file stem.
	Name() string

	// FindLayer returns the first non-group layer with the given name,
	// or nil when absent.
	FindLayer(name string, within ...Group) Layer

	// FindGroup returns the first group with the given name, or nil.
	FindGroup(name string, within ...Group) Group

	// SetVisible shows or hides a layer or group.
	SetVisible(l Layer, visible bool) error

	// Visible reports whether a layer is currently visible. A nil or
	// foreign handle reports false.
	Visible(l Layer) bool

	// Rename changes a layer's name.
	Rename(l Layer, name string) error

	// SetOpacity sets layer opacity in percent (0-100).
	SetOpacity(l Layer, percent float64) error

	// SetBlendMode sets the layer blend mode.
	SetBlendMode(l Layer, mode BlendMode) error

	// SetText replaces the full contents of a text layer.
	SetText(l Layer, s string) error

	// Text returns the current contents of a text layer, or "" for
	// non-text layers.
	Text(l Layer) string

	// SetStyledText replaces a text layer's contents along with
	// per-range style runs, paragraph leading and alignment.
	SetStyledText(l Layer, st StyledText) error

	// ReplaceText substitutes every occurrence of old inside a text
	// layer's contents.
	ReplaceText(l Layer, old, new string) error

	// SetTextColor recolors the entire contents of a text layer.
	SetTextColor(l Layer, c Color) error

	// SetFontSize sets the base font size of a text layer in points.
	SetFontSize(l Layer, points float64) error

	// FontSize returns the base font size of a text layer in points,
	// or 0 for non-text layers.
	FontSize(l Layer) float64

	// Move reorders a layer relative to a target layer or group.
	Move(l Layer, target Layer, placement Placement) error

	// Duplicate copies a layer in place, returning the copy.
	Duplicate(l Layer) (Layer, error)

	// CreateGroup inserts a new empty group.
	CreateGroup(name string, within ...Group) (Group, error)

	// MergeGroup flattens a group into a single layer carrying the
	// group's name.
	MergeGroup(g Group) (Layer, error)

	// CreateSolidColorLayer inserts a solid fill layer. When clipped is
	// true the fill clips to the layer below it.
	CreateSolidColorLayer(c Color, clipped bool, within ...Group) (Layer, error)

	// CreateGradientLayer inserts a linear gradient fill layer. Stops
	// are ordered by location (0-1). When clipped is true the fill
	// clips to the layer below it.
	CreateGradientLayer(stops []GradientStop, clipped bool, within ...Group) (Layer, error)

	// CopyMask copies the layer mask of one layer onto another.
	CopyMask(from, onto Layer) error

	// EnableMask enables a previously disabled layer mask.
	EnableMask(l Layer) error

	// ApplyEffects replaces a layer's effect stack.
	ApplyEffects(l Layer, fx []Effect) error

	// Frame scales and centers a layer against a reference layer's
	// bounds. FrameFill covers the reference, FrameFit fits inside it.
	Frame(l Layer, ref Layer, mode FrameMode) error

	// Resize scales a layer around its center, in percent (100 keeps
	// the current size).
	Resize(l Layer, percent float64) error

	// Translate shifts a layer by a pixel delta.
	Translate(l Layer, dx, dy float64) error

	// Rotate rotates a layer around its center, in degrees clockwise.
	Rotate(l Layer, degrees float64) error

	// Bounds returns the bounding box of a layer's rendered content.
	Bounds(l Layer) (Rect, error)

	// ImportImage places an image file as a new raster layer.
	ImportImage(path string, within ...Group) (Layer, error)

	// ImportImageData places decoded image data as a new raster layer.
	ImportImageData(img image.Image, name string, within ...Group) (Layer, error)

	// ImportVector places a vector file as a new shape layer.
	ImportVector(path string, within ...Group) (Layer, error)

	// Export writes the document to disk in the given format. The
	// format is independent of the path extension.
	Export(path string, format Format) error

	// Reset discards every change made since the document was loaded.
	Reset() error
}

// Loader opens template documents on a rendering surface.
type Loader interface {
	// Load opens the document at path. Returns ErrUnavailable when the
	// surface is not responding.
	Load(path string) (Document, error)

	// Ping reports whether the surface is responsive.
	Ping() error
}
