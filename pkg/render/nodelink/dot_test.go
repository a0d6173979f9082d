package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

func sampleModel() *model.Model {
	return &model.Model{
		Entities: []*model.Entity{
			{ID: "discover", Category: topology.CategoryPhase, Label: "Discover", Position: geom.Pt(0, 0)},
			{ID: "jtbd", Category: topology.CategoryMentalModel, Label: "Jobs to be done", Physics: true,
				Position: geom.Pt(120.5, 40), Attrs: map[string]string{"source": "christensen"}},
			{ID: "kano", Category: topology.CategoryMentalModel, Label: "kano", Physics: true, Position: geom.Pt(-60, -30.25)},
		},
		Connections: []*model.Connection{
			{ID: "applies:discover->jtbd", Source: "discover", Target: "jtbd", Kind: topology.KindApplies, Directed: true,
				Style: topology.EdgeStyle{Stroke: topology.StrokeDashed, Animated: true, Directed: true}},
			{ID: "relates:jtbd->kano", Source: "jtbd", Target: "kano", Kind: topology.KindRelates,
				Style: topology.EdgeStyle{Stroke: topology.StrokeDashed}},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleModel(), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`"discover" [label="Discover", pos="0,0!", shape=box`,
		`"jtbd" [label="Jobs to be done", pos="120.5,-40!", shape=ellipse`,
		`"kano" [label="kano", pos="-60,30.25!"`,
		`"discover" -> "jtbd" [id="applies:discover->jtbd", style=dashed, class="animated"]`,
		`"jtbd" -> "kano" [id="relates:jtbd->kano", style=dashed, dir=none]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("anchor should be drawn with a heavier outline")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	if ToDOT(sampleModel(), Options{Detailed: true}) != ToDOT(sampleModel(), Options{Detailed: true}) {
		t.Error("ToDOT() is not deterministic")
	}
}

func TestToDOT_Nil(t *testing.T) {
	if dot := ToDOT(nil, Options{}); !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestToDOT_Scale(t *testing.T) {
	dot := ToDOT(sampleModel(), Options{Scale: 2})
	if !strings.Contains(dot, `pos="241,-80!"`) {
		t.Errorf("scaled position missing:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	e := sampleModel().Entities[1]
	if got := fmtLabel(e, false); got != "Jobs to be done" {
		t.Errorf("fmtLabel() simple = %q", got)
	}
	want := "Jobs to be done\ncategory: mental_model\nsource: christensen"
	if got := fmtLabel(e, true); got != want {
		t.Errorf("fmtLabel() detailed = %q, want %q", got, want)
	}
}

func TestFmtCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.001, "0"},
		{100, "100"},
		{10.5, "10.5"},
		{-3.14159, "-3.14"},
	}
	for _, tt := range tests {
		if got := fmtCoord(tt.in); got != tt.want {
			t.Errorf("fmtCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox: got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sampleModel(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Jobs to be done") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
