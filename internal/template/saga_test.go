package template

import (
	"math"
	"testing"

	"github.com/ramonehamilton/proxyforge/internal/layout"
	"github.com/ramonehamilton/proxyforge/internal/surface"
)

func sagaManifest() []surface.LayerNode {
	return addTextLayers(normalManifest(),
		surface.LayerNode{
			Name: LayerDescriptionReference, Hidden: true,
			Bounds: surface.Rect{Left: 250, Top: 2640, Right: 1490, Bottom: 2730},
		},
		surface.LayerNode{Name: GroupSaga, Group: true, Children: []surface.LayerNode{
			{Name: LayerSagaText, IsText: true, FontSize: 15, Bounds: surface.Rect{Left: 260, Top: 2800}},
			{Name: LayerReminderText, IsText: true, FontSize: 13, Bounds: surface.Rect{Left: 260, Top: 2650}},
			{Name: LayerDivider, Hidden: true, Bounds: surface.Rect{Left: 250, Top: 2740, Right: 1490, Bottom: 2750}},
			{Name: "I", Bounds: surface.Rect{Left: 150, Top: 2800, Right: 210, Bottom: 2860}},
			{Name: "II", Bounds: surface.Rect{Left: 150, Top: 2900, Right: 210, Bottom: 2960}},
			{Name: "III", Bounds: surface.Rect{Left: 150, Top: 3000, Right: 210, Bottom: 3060}},
		}},
	)
}

func sagaCard() *layout.Card {
	card := greenCreature()
	card.Class = layout.ClassSaga
	card.TypeLine = "Enchantment — Saga"
	card.OracleText = ""
	card.Power, card.Toughness = "", ""
	card.IsCreature = false
	card.SagaDescription = "(As this Saga enters and after your draw step, add a lore counter.)"
	card.SagaLines = []layout.SagaLine{
		{Text: "Create a 2/2 green Bear creature token.", Icons: []string{"I"}},
		{Text: "Put a +1/+1 counter on each creature you control.", Icons: []string{"II", "III"}},
	}
	return card
}

func TestSagaTextPlansChapters(t *testing.T) {
	card := sagaCard()
	r := newTestRender(t, sagaManifest(), card)

	if err := (sagaText{}).PlanText(r); err != nil {
		t.Fatalf("PlanText: %v", err)
	}
	if len(r.Plan) != 6 {
		t.Fatalf("plan has %d entries, want 6", len(r.Plan))
	}
	reminder, ok := r.Plan[3].(FormattedArea)
	if !ok {
		t.Fatalf("plan entry 3 is %T, want FormattedArea", r.Plan[3])
	}
	if reminder.Rules != card.SagaDescription {
		t.Errorf("reminder rules = %q", reminder.Rules)
	}
	if reminder.Reference == nil || reminder.Reference.Name() != LayerDescriptionReference {
		t.Error("reminder missing its description reference")
	}
	if len(r.abilityLayers) != 2 {
		t.Fatalf("kept %d chapter layers, want 2", len(r.abilityLayers))
	}
	for i, want := range []string{card.SagaLines[0].Text, card.SagaLines[1].Text} {
		entry, ok := r.Plan[4+i].(FormattedText)
		if !ok || entry.Rules != want {
			t.Errorf("chapter entry %d = %#v, want rules %q", i, r.Plan[4+i], want)
		}
		if entry.Layer != r.abilityLayers[i] {
			t.Errorf("chapter entry %d not bound to its duplicated layer", i)
		}
	}
	if got := [2]int{len(r.iconLayers[0]), len(r.iconLayers[1])}; got != [2]int{1, 2} {
		t.Errorf("icon duplicates per chapter = %v, want [1 2]", got)
	}
}

func TestSagaTextMissingChapterIcon(t *testing.T) {
	card := sagaCard()
	card.SagaLines[1].Icons = []string{"IV"}
	r := newTestRender(t, sagaManifest(), card)

	if err := (sagaText{}).PlanText(r); err == nil {
		t.Fatal("PlanText accepted an unknown chapter icon")
	}
}

func TestSagaPostTextSpreadsChapters(t *testing.T) {
	card := sagaCard()
	r := newTestRender(t, sagaManifest(), card)
	if err := (sagaText{}).PlanText(r); err != nil {
		t.Fatalf("PlanText: %v", err)
	}
	for _, entry := range r.Plan {
		if err := entry.Apply(r); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	if err := sagaPostText(r); err != nil {
		t.Fatalf("sagaPostText: %v", err)
	}
	ref := boundsOf(t, r, r.Layer(LayerTextboxReference, GroupTextAndIcons))
	first := boundsOf(t, r, r.abilityLayers[0])
	second := boundsOf(t, r, r.abilityLayers[1])

	topGap := first.Top - ref.Top
	bottomGap := ref.Bottom - second.Bottom
	inside := second.Top - first.Bottom
	if topGap <= 0 || second.Top <= first.Bottom {
		t.Fatalf("chapters not stacked down the textbox: %v, %v", first, second)
	}
	if math.Abs(topGap-bottomGap) > 0.01 {
		t.Errorf("outer gaps differ: top %v, bottom %v", topGap, bottomGap)
	}
	if math.Abs(inside-1.5*topGap) > 0.01 {
		t.Errorf("chapter gap = %v, want 1.5x the outer gap %v", inside, topGap)
	}

	// Single icon centers on its chapter line.
	icon := boundsOf(t, r, r.iconLayers[0][0])
	if got, want := icon.Top+icon.Height()/2, first.Top+first.Height()/2; math.Abs(got-want) > 0.01 {
		t.Errorf("chapter icon center = %v, want %v", got, want)
	}

	// Shared chapters stack their icons and center the pair.
	upper := boundsOf(t, r, r.iconLayers[1][0])
	lower := boundsOf(t, r, r.iconLayers[1][1])
	if got, want := lower.Top-upper.Bottom, 80.0/3; math.Abs(got-want) > 0.01 {
		t.Errorf("icon spacing = %v, want %v", got, want)
	}
	pairCenter := (upper.Top + lower.Bottom) / 2
	if want := second.Top + second.Height()/2; math.Abs(pairCenter-want) > 0.01 {
		t.Errorf("icon pair center = %v, want %v", pairCenter, want)
	}

	divider := r.Layer(LayerDivider+" copy", GroupTextAndIcons, GroupSaga)
	if divider == nil {
		t.Fatal("no divider duplicated between chapters")
	}
	db := boundsOf(t, r, divider)
	if got, want := db.Top+db.Height()/2, (first.Bottom+second.Top)/2; math.Abs(got-want) > 0.01 {
		t.Errorf("divider center = %v, want midpoint %v", got, want)
	}
}

func TestSagaPostTextNoChapters(t *testing.T) {
	r := newTestRender(t, sagaManifest(), sagaCard())
	if err := sagaPostText(r); err != nil {
		t.Fatalf("sagaPostText without chapters: %v", err)
	}
}
