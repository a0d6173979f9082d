package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/render/nodelink"
)

func ExampleToDOT() {
	m := &model.Model{
		Entities: []*model.Entity{
			{ID: "discover", Category: topology.CategoryPhase, Label: "Discover", Position: geom.Pt(0, 0)},
			{ID: "jtbd", Category: topology.CategoryMentalModel, Label: "JTBD", Physics: true, Position: geom.Pt(160, 80)},
		},
		Connections: []*model.Connection{
			{ID: "applies:discover->jtbd", Source: "discover", Target: "jtbd", Directed: true,
				Style: topology.EdgeStyle{Stroke: topology.StrokeDashed, Directed: true}},
		},
	}
	fmt.Print(nodelink.ToDOT(m, nodelink.Options{}))
	// Output:
	// digraph G {
	//   layout=neato;
	//   inputscale=72;
	//   outputorder=edgesfirst;
	//   bgcolor="transparent";
	//   node [fontsize=14, margin="0.2,0.1"];
	//   edge [color="#5b6b7f"];
	//
	//   "discover" [label="Discover", pos="0,0!", shape=box, style="rounded,filled", fillcolor="#dbe7f5", penwidth=2];
	//   "jtbd" [label="JTBD", pos="160,-80!", shape=ellipse, style=filled, fillcolor="#fdf1d6"];
	//
	//   "discover" -> "jtbd" [id="applies:discover->jtbd", style=dashed];
	// }
}
