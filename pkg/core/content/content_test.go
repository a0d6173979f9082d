package content

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// sample builds two phases, one sub-phase with a component, two mental
// models and a visualization.
func sample(t *testing.T) *Graph {
	t.Helper()
	g := New(topology.DefaultRegistry())
	nodes := []Node{
		{ID: "build", Category: topology.CategoryPhase},
		{ID: "discover", Category: topology.CategoryPhase},
		{ID: "research", Category: topology.CategorySubPhase},
		{ID: "interviews", Category: topology.CategoryComponent},
		{ID: "jtbd", Category: topology.CategoryMentalModel, Label: "Jobs to be done"},
		{ID: "kano", Category: topology.CategoryMentalModel},
		{ID: "jtbd-canvas", Category: topology.CategoryVisualization},
	}
	edges := []Edge{
		{From: "discover", To: "build", Kind: topology.KindPrecedes},
		{From: "discover", To: "research", Kind: topology.KindContains},
		{From: "research", To: "interviews", Kind: topology.KindContains},
		{From: "discover", To: "jtbd", Kind: topology.KindApplies},
		{From: "interviews", To: "kano", Kind: topology.KindApplies},
		{From: "jtbd", To: "jtbd-canvas", Kind: topology.KindVisualizes},
		{From: "jtbd", To: "kano", Kind: topology.KindRelates},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New(topology.DefaultRegistry())
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty id: got %v", err)
	}
	_ = g.AddNode(Node{ID: "a", Category: topology.CategoryPhase})
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate id: got %v", err)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := sample(t)
	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"unknown source", Edge{From: "zz", To: "jtbd", Kind: topology.KindApplies}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "discover", To: "zz", Kind: topology.KindApplies}, ErrUnknownTargetNode},
		{"duplicate", Edge{From: "discover", To: "jtbd", Kind: topology.KindApplies}, ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddNodeCopies(t *testing.T) {
	g := New(topology.DefaultRegistry())
	p := geom.Pt(1, 2)
	attrs := map[string]string{"k": "v"}
	_ = g.AddNode(Node{ID: "a", Category: topology.CategoryPhase, Position: &p, Attrs: attrs})
	p.X = 99
	attrs["k"] = "changed"
	n, _ := g.Node("a")
	if n.Position.X != 1 || n.Attrs["k"] != "v" {
		t.Errorf("AddNode aliases caller data: %+v", n)
	}
}

func TestQueries(t *testing.T) {
	g := sample(t)

	if got, want := g.Anchors(), []string{"build", "discover", "research", "interviews"}; !slices.Equal(got, want) {
		t.Errorf("Anchors() = %v, want %v", got, want)
	}
	if got := g.Candidates("discover"); !slices.Equal(got, []string{"jtbd"}) {
		t.Errorf("Candidates(discover) = %v", got)
	}
	if got := g.Candidates("jtbd"); len(got) != 0 {
		t.Errorf("Candidates(jtbd) = %v, want none", got)
	}
	if got := g.TertiariesOf("jtbd"); !slices.Equal(got, []string{"jtbd-canvas"}) {
		t.Errorf("TertiariesOf(jtbd) = %v", got)
	}
	if got := g.ParentsOf("jtbd-canvas"); !slices.Equal(got, []string{"jtbd"}) {
		t.Errorf("ParentsOf(jtbd-canvas) = %v", got)
	}
	if got := g.Role("kano"); got != topology.RoleSecondary {
		t.Errorf("Role(kano) = %s", got)
	}
	if got := g.Role("zz"); got != "" {
		t.Errorf("Role(zz) = %s, want empty", got)
	}
	if c, ok := g.Category("jtbd-canvas"); !ok || c != topology.CategoryVisualization {
		t.Errorf("Category(jtbd-canvas) = %s, %v", c, ok)
	}
	if len(g.Incoming("kano")) != 2 || len(g.Outgoing("jtbd")) != 2 {
		t.Errorf("adjacency is wrong: in(kano)=%v out(jtbd)=%v", g.Incoming("kano"), g.Outgoing("jtbd"))
	}
	n, _ := g.Node("jtbd")
	if n.DisplayLabel() != "Jobs to be done" {
		t.Errorf("DisplayLabel() = %q", n.DisplayLabel())
	}
	n, _ = g.Node("kano")
	if n.DisplayLabel() != "kano" {
		t.Errorf("DisplayLabel() = %q", n.DisplayLabel())
	}
}

func TestGraphImplementsManagerView(t *testing.T) {
	g := sample(t)
	m := topology.NewManager(g.Registry())
	if got := m.CascadeDelete("jtbd", g); !slices.Equal(got, []string{"jtbd-canvas"}) {
		t.Errorf("CascadeDelete(jtbd) = %v", got)
	}
	all := func(string) bool { return true }
	if !m.Eligible("jtbd-canvas", g, all) {
		t.Errorf("jtbd-canvas should be eligible when its parent is shown")
	}
}

func TestValidate(t *testing.T) {
	g := sample(t)
	if err := g.Validate(); err != nil {
		t.Fatalf("sample graph invalid: %v", err)
	}

	_ = g.AddNode(Node{ID: "odd", Category: "bogus"})
	_ = g.AddEdge(Edge{From: "kano", To: "discover", Kind: topology.KindApplies})
	bad := geom.Pt(math.NaN(), 0)
	_ = g.AddNode(Node{ID: "nan", Category: topology.CategoryPhase, Position: &bad})

	_ = g.AddNode(Node{ID: "lonely", Category: topology.CategorySubPhase})

	err := g.Validate()
	for _, want := range []error{ErrUnknownCategory, ErrForbiddenEdge, ErrInvalidPosition, ErrMissingParent} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() = %v, want it to contain %v", err, want)
		}
	}
}

func TestPlaceAnchors(t *testing.T) {
	g := sample(t)
	fixed := geom.Pt(-500, -500)
	_ = g.AddNode(Node{ID: "pinned", Category: topology.CategoryPhase, Position: &fixed})
	_ = g.AddNode(Node{ID: "stray", Category: topology.CategoryComponent})

	lanes := DefaultLanes()
	placed := g.PlaceAnchors(lanes)

	if slices.Contains(placed, "pinned") {
		t.Errorf("anchor with a position was re-placed")
	}
	pos := func(id string) geom.Point {
		n, _ := g.Node(id)
		if n.Position == nil {
			t.Fatalf("%s has no position", id)
		}
		return *n.Position
	}

	// discover precedes build, so it takes the first column.
	if got := pos("discover"); got != geom.Pt(0, 0) {
		t.Errorf("discover at %v", got)
	}
	if got := pos("build"); got.X <= pos("discover").X {
		t.Errorf("build at %v should be right of discover", got)
	}
	if got := pos("research"); got != geom.Pt(0, lanes.RowGap) {
		t.Errorf("research at %v", got)
	}
	if got := pos("interviews"); got != geom.Pt(lanes.Indent, 2*lanes.RowGap) {
		t.Errorf("interviews at %v", got)
	}
	if got := pos("stray"); got.Y <= pos("interviews").Y {
		t.Errorf("orphan anchor at %v should sit below the lanes", got)
	}
	if pos("pinned") != fixed {
		t.Errorf("pinned moved to %v", pos("pinned"))
	}
	for _, n := range g.Nodes() {
		if g.Role(n.ID) != topology.RoleAnchor && n.Position != nil {
			t.Errorf("non-anchor %s got a position", n.ID)
		}
	}

	if again := g.PlaceAnchors(lanes); len(again) != 0 {
		t.Errorf("second PlaceAnchors placed %v", again)
	}
}

func TestPlaceAnchorsCycle(t *testing.T) {
	g := New(topology.DefaultRegistry())
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(Node{ID: id, Category: topology.CategoryPhase})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b", Kind: topology.KindPrecedes})
	_ = g.AddEdge(Edge{From: "b", To: "a", Kind: topology.KindPrecedes})

	if placed := g.PlaceAnchors(DefaultLanes()); len(placed) != 2 {
		t.Errorf("placed %v, want both phases", placed)
	}
}
