package surface

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from component values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// GradientStop is a single color stop on a linear gradient.
type GradientStop struct {
	Color    Color
	Location float64 // position along the gradient, 0-1
	Midpoint float64 // blend midpoint toward the next stop, percent
}

// Rect is a pixel-space bounding box.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Placement positions a moved layer relative to a target.
type Placement int

const (
	// PlaceBefore puts the layer immediately above the target.
	PlaceBefore Placement = iota
	// PlaceAfter puts the layer immediately below the target.
	PlaceAfter
	// PlaceInside puts the layer at the top of a target group.
	PlaceInside
)

// FrameMode selects how a layer is scaled against a reference.
type FrameMode int

const (
	// FrameFill scales the layer so it fully covers the reference,
	// cropping whatever overflows.
	FrameFill FrameMode = iota
	// FrameFit scales the layer so it fits entirely inside the
	// reference, leaving gaps on the short axis.
	FrameFit
)

// Format selects the export encoding.
type Format int

const (
	FormatJPG Format = iota
	FormatPNG
	FormatPSD
)

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatPSD:
		return ".psd"
	default:
		return ".jpg"
	}
}

// ParseFormat maps a config string to a Format. Unknown values fall back
// to JPG, matching the default output format.
func ParseFormat(s string) Format {
	switch s {
	case "png", "PNG", ".png":
		return FormatPNG
	case "psd", "PSD", ".psd":
		return FormatPSD
	default:
		return FormatJPG
	}
}

// BlendMode is a layer blend mode.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendColorBurn
	BlendMultiply
	BlendScreen
	BlendOverlay
)

// EffectKind identifies a layer effect.
type EffectKind int

const (
	EffectStroke EffectKind = iota
	EffectColorOverlay
	EffectGradientOverlay
	EffectDropShadow
)

// Effect is one entry in a layer's effect stack. Only the fields that
// apply to the Kind are read.
type Effect struct {
	Kind    EffectKind
	Color   Color          // stroke and color overlay
	Stops   []GradientStop // gradient overlay
	Size    float64        // stroke weight or shadow spread, pixels
	Opacity float64        // percent, 0 means 100
	Style   string         // stroke position: "in", "out" or "center"
}

// RunStyle is the character style of a text run.
type RunStyle int

const (
	RunRegular RunStyle = iota
	RunItalic
	RunBold
	RunSymbol
)

// TextRun styles a half-open rune range [Start, End) of a text layer's
// contents.
type TextRun struct {
	Start, End int
	Style      RunStyle
	Font       string // font family override, "" inherits the layer font
	Color      Color  // text color override for symbol runs
	HasColor   bool   // whether Color overrides the layer color
}

// StyledText is the full formatted contents of a text layer: the text
// itself, per-range style runs, paragraph leading and alignment.
type StyledText struct {
	Text        string
	Runs        []TextRun
	Centered    bool
	LineLead    float64 // leading before rules paragraphs, points
	FlavorLead  float64 // leading before the flavor divider line, points
	FlavorIndex int     // rune index where flavor text begins, -1 when none
	QuoteIndex  int     // rune index of the attribution line break, -1 when none
}

// LayerNode describes one layer in a document manifest. Manifests build
// in-memory documents for tests, dry runs and manifest-backed templates.
type LayerNode struct {
	Name     string      `json:"name"`
	Group    bool        `json:"group,omitempty"`
	Text     string      `json:"text,omitempty"`      // initial contents; a non-empty value marks a text layer
	IsText   bool        `json:"is_text,omitempty"`   // marks an empty text layer
	Hidden   bool        `json:"hidden,omitempty"`
	FontSize float64     `json:"font_size,omitempty"`
	Mask     bool        `json:"mask,omitempty"` // layer carries a mask
	Bounds   Rect        `json:"bounds"` // content bounds; zero value defaults to the canvas
	Children []LayerNode `json:"children,omitempty"`
}
