package graph_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/graph"
)

func ExampleWriteContent() {
	g := content.New(topology.DefaultRegistry())
	_ = g.AddNode(content.Node{ID: "discover", Category: topology.CategoryPhase})
	_ = g.AddNode(content.Node{ID: "jtbd", Category: topology.CategoryMentalModel, Label: "Jobs to be done"})
	_ = g.AddEdge(content.Edge{From: "discover", To: "jtbd", Kind: topology.KindApplies})

	if err := graph.WriteContent(g, os.Stdout, graph.FormatYAML); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// nodes:
	//   - id: discover
	//     category: phase
	//   - id: jtbd
	//     category: mental_model
	//     label: Jobs to be done
	// edges:
	//   - from: discover
	//     to: jtbd
	//     kind: applies
}

func ExampleReadEvents() {
	script := `[
		{"type": "toggle_mental_model", "anchor": "discover", "target": "jtbd", "on": true},
		{"type": "drag", "target": "jtbd", "x": 40, "y": -10}
	]`
	events, err := graph.ReadEvents(strings.NewReader(script), graph.FormatJSON)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, ev := range events {
		fmt.Printf("%s %+v\n", ev.Kind(), ev)
	}
	// Output:
	// toggle_mental_model {AnchorID:discover MentalModelID:jtbd On:true}
	// drag {EntityID:jtbd Position:{X:40 Y:-10}}
}

func ExampleFormatFromPath() {
	for _, p := range []string{"content.json", "framework.YML", "notes.txt"} {
		format, err := graph.FormatFromPath(p)
		fmt.Println(p, format, err != nil)
	}
	// Output:
	// content.json json false
	// framework.YML yaml false
	// notes.txt  true
}
