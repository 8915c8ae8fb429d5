package template

import (
	"math"
	"testing"

	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

func classManifest() []surface.LayerNode {
	return addTextLayers(normalManifest(),
		surface.LayerNode{Name: GroupClass, Group: true, Children: []surface.LayerNode{
			{Name: LayerClassText, IsText: true, FontSize: 15, Bounds: surface.Rect{Left: 260, Top: 2800}},
			{Name: GroupStage, Group: true, Children: []surface.LayerNode{
				{Name: LayerStageCost, IsText: true, FontSize: 14, Bounds: surface.Rect{Left: 260, Top: 2780}},
				{Name: LayerStageLevel, IsText: true, FontSize: 14, Bounds: surface.Rect{Left: 500, Top: 2780}},
				{Name: "Stage Bar", Bounds: surface.Rect{Left: 250, Top: 2770, Right: 3010, Bottom: 2830}},
			}},
		}},
	)
}

func classCard() *layout.Card {
	card := greenCreature()
	card.Class = layout.ClassClass
	card.TypeLine = "Enchantment — Class"
	card.OracleText = ""
	card.Power, card.Toughness = "", ""
	card.IsCreature = false
	card.ClassLines = []layout.ClassLine{
		{Level: 1, Text: "Add one mana of any color."},
		{Cost: "{1}{G}", Level: 2, Text: "Creatures you control get +1/+1."},
	}
	return card
}

func TestClassTextPlansLevels(t *testing.T) {
	card := classCard()
	r := newTestRender(t, classManifest(), card)

	if err := (classText{}).PlanText(r); err != nil {
		t.Fatalf("PlanText: %v", err)
	}
	if len(r.Plan) != 7 {
		t.Fatalf("plan has %d entries, want 7", len(r.Plan))
	}
	if got := r.abilityLayers[0].Name(); got != LayerClassText {
		t.Errorf("first level layer = %q, want the box's own %q", got, LayerClassText)
	}
	if got := r.abilityLayers[1].Name(); got != LayerClassText+" copy" {
		t.Errorf("second level layer = %q, want a duplicate", got)
	}
	if got := r.stageLayers[0].Name(); got != GroupStage+" 1" {
		t.Errorf("stage bar = %q, want %q", got, GroupStage+" 1")
	}

	first, ok := r.Plan[3].(FormattedText)
	if !ok || first.Rules != card.ClassLines[0].Text {
		t.Errorf("plan entry 3 = %#v, want level one text", r.Plan[3])
	}
	cost, ok := r.Plan[5].(FormattedText)
	if !ok || cost.Rules != "{1}{G}:" {
		t.Errorf("plan entry 5 = %#v, want cost with colon", r.Plan[5])
	}
	level, ok := r.Plan[6].(StaticText)
	if !ok || level.Contents != "Level 2" {
		t.Errorf("plan entry 6 = %#v, want level label", r.Plan[6])
	}
	if level.Layer != r.Doc.FindLayer(LayerStageLevel, r.stageLayers[0]) {
		t.Error("level label not bound to the duplicated stage bar")
	}

	base := r.Group(GroupTextAndIcons, GroupClass, GroupStage)
	if base == nil || r.Doc.Visible(base) {
		t.Error("base stage bar left visible")
	}
}

func TestClassTextRequiresLines(t *testing.T) {
	card := classCard()
	card.ClassLines = nil
	r := newTestRender(t, classManifest(), card)

	if err := (classText{}).PlanText(r); err == nil {
		t.Fatal("PlanText accepted a card without class lines")
	}
}

func TestClassPostTextSlotsStages(t *testing.T) {
	card := classCard()
	r := newTestRender(t, classManifest(), card)
	if err := (classText{}).PlanText(r); err != nil {
		t.Fatalf("PlanText: %v", err)
	}
	for _, entry := range r.Plan {
		if err := entry.Apply(r); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	if err := classPostText(r); err != nil {
		t.Fatalf("classPostText: %v", err)
	}
	ref := boundsOf(t, r, r.Layer(LayerTextboxReference, GroupTextAndIcons))
	first := boundsOf(t, r, r.abilityLayers[0])
	second := boundsOf(t, r, r.abilityLayers[1])
	stage := boundsOf(t, r, r.stageLayers[0])

	topGap := first.Top - ref.Top
	bottomGap := ref.Bottom - second.Bottom
	if topGap <= 0 || second.Top <= first.Bottom {
		t.Fatalf("levels not stacked down the textbox: %v, %v", first, second)
	}
	if math.Abs(topGap-bottomGap) > 0.01 {
		t.Errorf("outer gaps differ: top %v, bottom %v", topGap, bottomGap)
	}
	// The inner gap reserves the 60px stage bar plus the 80px spacing,
	// keeping a 140:80 ratio against the outer gaps.
	inside := second.Top - first.Bottom
	if math.Abs(inside-1.75*topGap) > 0.01 {
		t.Errorf("level gap = %v, want 1.75x the outer gap %v", inside, topGap)
	}

	stageCenter := stage.Top + stage.Height()/2
	if want := (first.Bottom + second.Top) / 2; math.Abs(stageCenter-want) > 0.01 {
		t.Errorf("stage bar center = %v, want midpoint %v", stageCenter, want)
	}
	if stage.Height() != 60 {
		t.Errorf("stage bar height = %v after the move, want 60", stage.Height())
	}
}

func TestClassPostTextSingleLevel(t *testing.T) {
	card := classCard()
	card.ClassLines = card.ClassLines[:1]
	r := newTestRender(t, classManifest(), card)
	if err := (classText{}).PlanText(r); err != nil {
		t.Fatalf("PlanText: %v", err)
	}
	for _, entry := range r.Plan {
		if err := entry.Apply(r); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	if err := classPostText(r); err != nil {
		t.Fatalf("classPostText: %v", err)
	}
	if got := boundsOf(t, r, r.abilityLayers[0]); got.Top != 2800 {
		t.Errorf("single level moved to %v, want untouched 2800", got.Top)
	}
}
