// Package nodelink exports render models as Graphviz node-link diagrams.
//
// # Overview
//
// The export is a debugging aid: it draws every entity at the position the
// engine assigned and every connection with the style of its relationship
// kind, so a layout can be inspected without the real rendering layer.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT pins each node with pos="x,y!" and is meant for the
// neato engine, which keeps pinned nodes in place. Coordinates are
// written in points with the y axis flipped, since diagram space grows
// downward and Graphviz grows upward. Dashed and dotted connections map to
// Graphviz styles; undirected relationships are drawn without arrowheads.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
