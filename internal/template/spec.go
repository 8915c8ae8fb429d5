package template

import (
	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// TextPlanner queues the text entries a card class needs. Planners may
// also perform structural work that must happen before text is applied,
// like duplicating ability layers or picking the planeswalker box.
type TextPlanner interface {
	PlanText(r *Render) error
}

// FrameEnabler turns on the frame layers matching the card's colors.
type FrameEnabler interface {
	EnableFrame(r *Render) error
}

// ColorBlender fills a frame group with per-color layers blended by masks.
// Identity is a frame key: a color combination like "WU" blends one layer
// per color, anything else names a single texture layer.
type ColorBlender interface {
	Blend(r *Render, group surface.Group, identity string, masks []string) error
}

// Hook is a pipeline extension point run inside its own error boundary.
type Hook func(r *Render) error

// Spec selects the document and capabilities that render one card class.
type Spec struct {
	Name   string // family name used in logs and failure records
	File   string // document file under the templates directory
	Suffix string // output filename suffix, empty for the core frame

	Planner TextPlanner
	Frame   FrameEnabler

	// Blender is set on vector frames built from per-color layer stacks.
	// ColorLimit is the combination size at which blending collapses to
	// the single pinlines texture.
	Blender    ColorBlender
	ColorLimit int

	ArtReference string  // art frame layer, LayerArtFrame when empty
	ScanRotation float64 // degrees to rotate the pasted reference scan

	ExitEarly       bool // pause for manual edits before saving
	ForceArtistName bool // always carry the artist in the file name
	BasicCollector  bool // never use the authentic collector layout
	SymbolCentered  bool // center the expansion symbol on its reference

	// CreatureHook and LargeManaHook run conditionally after text is
	// applied; Hooks always run, PostTextHooks extend the post-text
	// step, PostExecute runs after a successful save.
	CreatureHook  Hook
	LargeManaHook Hook
	Hooks         []Hook
	PostTextHooks []Hook
	PostExecute   []Hook
}

// defaultColorLimit collapses three or more blended colors to the single
// pinlines texture.
const defaultColorLimit = 3

// registry maps every card class to its template spec. Classes sharing a
// frame family share capability values and differ in document file.
var registry = map[layout.Class]*Spec{
	layout.ClassNormal: {
		Name: "normal", File: "normal.psd",
		Planner: normalText{}, Frame: normalFrame{},
		CreatureHook: hookStarPT, LargeManaHook: hookLargeMana,
	},
	layout.ClassSnow: {
		Name: "snow", File: "snow.psd", Suffix: "Snow",
		Planner: normalText{}, Frame: normalFrame{noNyx: true, noCompanion: true},
		CreatureHook: hookStarPT, LargeManaHook: hookLargeMana,
	},
	layout.ClassMiracle: {
		Name: "miracle", File: "miracle.psd",
		Planner: normalText{noncreature: true},
		Frame:   normalFrame{noncreature: true, noNyx: true, noCrown: true},
		LargeManaHook: hookLargeMana,
	},
	layout.ClassToken: {
		Name: "token", File: "token.psd",
		Planner: normalText{}, Frame: normalFrame{},
		BasicCollector: true,
	},
	layout.ClassIxalan: {
		Name: "ixalan", File: "ixalan.psd",
		Planner: ixalanText{}, Frame: ixalanFrame{},
		SymbolCentered: true,
	},
	layout.ClassMutate: {
		Name: "mutate", File: "mutate.psd",
		Planner: mutateText{}, Frame: normalFrame{},
		CreatureHook: hookStarPT, LargeManaHook: hookLargeMana,
	},
	layout.ClassAdventure: {
		Name: "adventure", File: "adventure.psd",
		Planner: adventureText{}, Frame: normalFrame{},
		CreatureHook: hookStarPT, LargeManaHook: hookLargeMana,
	},
	layout.ClassLeveler: {
		Name: "leveler", File: "leveler.psd",
		Planner: levelerText{},
		Frame: normalFrame{
			noNyx: true, noCompanion: true,
			ptBox: GroupPTLevelBoxes,
		},
		ExitEarly:    true,
		CreatureHook: hookStarPT,
	},
	layout.ClassPrototype: {
		Name: "prototype", File: "prototype.psd",
		Planner: prototypeText{}, Frame: prototypeFrame{},
		CreatureHook: hookStarPT, LargeManaHook: hookLargeMana,
	},
	layout.ClassBasic: {
		Name: "basic", File: "basic.psd",
		Planner: basicLandText{}, Frame: basicFrame{},
		ArtReference:    LayerBasicArtFrame,
		ForceArtistName: true, BasicCollector: true,
	},
	layout.ClassSaga: {
		Name: "saga", File: "saga.psd",
		Planner: sagaText{}, Frame: sagaFrame{},
		CreatureHook:  hookStarPT,
		PostTextHooks: []Hook{sagaPostText},
	},
	layout.ClassClass: {
		Name: "class", File: "class.psd",
		Planner: classText{}, Frame: normalFrame{},
		CreatureHook:  hookStarPT,
		PostTextHooks: []Hook{classPostText},
	},
	layout.ClassTransformFront: {
		Name: "transform", File: "transform.psd",
		Planner: transformText{}, Frame: dynamicFrame{},
		Blender: maskBlender{}, ColorLimit: defaultColorLimit,
		CreatureHook: hookStarPT,
	},
	layout.ClassTransformBack: {
		Name: "transform", File: "transform.psd",
		Planner: transformText{back: true}, Frame: dynamicFrame{},
		Blender: maskBlender{}, ColorLimit: defaultColorLimit,
		CreatureHook: hookStarPT,
	},
	layout.ClassMDFCFront: {
		Name: "mdfc", File: "mdfc.psd",
		Planner: mdfcText{}, Frame: dynamicFrame{},
		Blender: maskBlender{}, ColorLimit: defaultColorLimit,
		CreatureHook: hookStarPT,
	},
	layout.ClassMDFCBack: {
		Name: "mdfc", File: "mdfc.psd",
		Planner: mdfcText{}, Frame: dynamicFrame{},
		Blender: maskBlender{}, ColorLimit: defaultColorLimit,
		CreatureHook: hookStarPT,
	},
	layout.ClassPlaneswalker: {
		Name: "planeswalker", File: "planeswalker.psd",
		Planner: planeswalkerText{}, Frame: planeswalkerFrame{},
		ArtReference:  LayerPlaneswalkerArtFrame,
		PostTextHooks: []Hook{planeswalkerPostText},
	},
	layout.ClassPWTFFront: {
		Name: "pw-tf", File: "pw-tf-front.psd",
		Planner: planeswalkerText{plainName: true, plainType: true},
		Frame:   planeswalkerFrame{transformIcon: true},
		ArtReference:  LayerPlaneswalkerArtFrame,
		PostTextHooks: []Hook{planeswalkerPostText},
	},
	layout.ClassPWTFBack: {
		Name: "pw-tf", File: "pw-tf-back.psd",
		Planner: planeswalkerText{plainName: true, plainType: true},
		Frame:   planeswalkerFrame{transformIcon: true},
		ArtReference:  LayerPlaneswalkerArtFrame,
		PostTextHooks: []Hook{planeswalkerPostText},
	},
	layout.ClassPWMDFCFront: {
		Name: "pw-mdfc", File: "pw-mdfc-front.psd",
		Planner: planeswalkerText{mdfc: true, plainName: true},
		Frame:   planeswalkerFrame{mdfc: true},
		ArtReference:  LayerPlaneswalkerArtFrame,
		PostTextHooks: []Hook{planeswalkerPostText},
	},
	layout.ClassPWMDFCBack: {
		Name: "pw-mdfc", File: "pw-mdfc-back.psd",
		Planner: planeswalkerText{mdfc: true, plainName: true},
		Frame:   planeswalkerFrame{mdfc: true},
		ArtReference:  LayerPlaneswalkerArtFrame,
		PostTextHooks: []Hook{planeswalkerPostText},
	},
	layout.ClassPlanar: {
		Name: "planar", File: "planar.psd",
		Planner: planarText{}, Frame: planarFrame{},
		ScanRotation: 90, ExitEarly: true,
	},
}

// SpecFor returns the template spec rendering the given card class. Every
// class the normalizer emits has an entry; unknown classes fall back to
// the normal frame.
func SpecFor(class layout.Class) *Spec {
	if s, ok := registry[class]; ok {
		return s
	}
	return registry[layout.ClassNormal]
}
