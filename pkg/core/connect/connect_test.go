package connect

import (
	"fmt"
	"testing"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

func fixedLocator(pts map[string]geom.Point) Locator {
	return func(id string) (geom.Point, bool) {
		p, ok := pts[id]
		return p, ok
	}
}

func TestCreateFollowsRegistry(t *testing.T) {
	reg := topology.DefaultRegistry()
	f := NewFactory(reg)

	for _, sc := range reg.Categories() {
		for _, tc := range reg.Categories() {
			t.Run(fmt.Sprintf("%s->%s", sc, tc), func(t *testing.T) {
				c, ok := f.Create(Endpoint{ID: "s", Category: sc}, Endpoint{ID: "t", Category: tc}, nil)
				allowed, want := reg.Allowed(sc, tc)
				if ok != want {
					t.Fatalf("Create ok = %v, registry allows = %v", ok, want)
				}
				if !ok {
					return
				}
				if c.Kind != allowed.Kind {
					t.Errorf("Kind = %s, want %s", c.Kind, allowed.Kind)
				}
				if c.Style != reg.Style(c.Kind) || c.Directed != c.Style.Directed {
					t.Errorf("style %+v does not match kind %s", c.Style, c.Kind)
				}
				if c.ID != ID(c.Kind, "s", "t") {
					t.Errorf("ID = %q", c.ID)
				}
			})
		}
	}
}

func TestCreateUnknownCategory(t *testing.T) {
	f := NewFactory(topology.DefaultRegistry())
	if _, ok := f.Create(Endpoint{ID: "x", Category: "bogus"}, Endpoint{ID: "m", Category: topology.CategoryMentalModel}, nil); ok {
		t.Errorf("unknown source category produced a connection")
	}
}

func TestCreateIdempotent(t *testing.T) {
	f := NewFactory(topology.DefaultRegistry())
	locate := fixedLocator(map[string]geom.Point{"p": geom.Pt(0, 0), "m": geom.Pt(10, 200)})
	src := Endpoint{ID: "p", Category: topology.CategoryPhase}
	dst := Endpoint{ID: "m", Category: topology.CategoryMentalModel}

	a, _ := f.Create(src, dst, locate)
	b, _ := f.Create(src, dst, locate)
	if a != b {
		t.Errorf("repeated Create differs: %+v vs %+v", a, b)
	}
	if a.ID != "applies:p->m" {
		t.Errorf("ID = %q, want applies:p->m", a.ID)
	}
	if a.Style.Stroke != topology.StrokeDashed || !a.Style.Animated {
		t.Errorf("applies style = %+v, want dashed animated", a.Style)
	}
}

func TestHandles(t *testing.T) {
	tests := []struct {
		name       string
		src, dst   geom.Point
		out, enter model.Side
	}{
		{"east", geom.Pt(0, 0), geom.Pt(100, 20), model.SideRight, model.SideLeft},
		{"west", geom.Pt(0, 0), geom.Pt(-100, 20), model.SideLeft, model.SideRight},
		{"south", geom.Pt(0, 0), geom.Pt(20, 100), model.SideBottom, model.SideTop},
		{"north", geom.Pt(0, 0), geom.Pt(20, -100), model.SideTop, model.SideBottom},
		{"diagonal ties go horizontal", geom.Pt(0, 0), geom.Pt(50, 50), model.SideRight, model.SideLeft},
		{"coincident", geom.Pt(5, 5), geom.Pt(5, 5), model.SideRight, model.SideLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, enter := Handles(tt.src, tt.dst)
			if out != tt.out || enter != tt.enter {
				t.Errorf("Handles(%v, %v) = %s/%s, want %s/%s", tt.src, tt.dst, out, enter, tt.out, tt.enter)
			}
		})
	}
}

func TestCreateDefaultHandles(t *testing.T) {
	f := NewFactory(topology.DefaultRegistry())
	locate := fixedLocator(map[string]geom.Point{"p": geom.Pt(0, 0)})
	c, ok := f.Create(
		Endpoint{ID: "p", Category: topology.CategoryPhase},
		Endpoint{ID: "m", Category: topology.CategoryMentalModel},
		locate,
	)
	if !ok {
		t.Fatal("expected connection")
	}
	if c.SourceHandle != model.SideRight || c.TargetHandle != model.SideLeft {
		t.Errorf("handles = %s/%s, want right/left when a position is unknown", c.SourceHandle, c.TargetHandle)
	}
}

func ExampleHandles() {
	out, enter := Handles(geom.Pt(0, 0), geom.Pt(30, -200))
	fmt.Println(out, enter)
	// Output: top bottom
}
