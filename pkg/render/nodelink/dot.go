package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// Options configures node-link export.
type Options struct {
	// Detailed includes the category and attributes in node labels.
	// When false, only the label is shown.
	Detailed bool
	// Scale multiplies diagram coordinates. Zero means 1.
	Scale float64
}

var categoryShapes = map[topology.Category]string{
	topology.CategoryPhase:         `shape=box, style="rounded,filled", fillcolor="#dbe7f5"`,
	topology.CategorySubPhase:      `shape=box, style="rounded,filled", fillcolor="#e8f0f9"`,
	topology.CategoryComponent:     `shape=box, style="rounded,filled", fillcolor="#f4f8fc"`,
	topology.CategoryMentalModel:   `shape=ellipse, style=filled, fillcolor="#fdf1d6"`,
	topology.CategoryVisualization: `shape=note, style=filled, fillcolor="#e7f6ea"`,
}

// ToDOT converts a render model to Graphviz DOT with every node pinned at its
// model position. The output is deterministic for a given model.
func ToDOT(m *model.Model, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#5b6b7f\"];\n")
	buf.WriteString("\n")

	if m != nil {
		for _, e := range m.Entities {
			attrs := fmtAttrs(e, fmtLabel(e, opts.Detailed), scale)
			fmt.Fprintf(&buf, "  %q [%s];\n", e.ID, strings.Join(attrs, ", "))
		}

		buf.WriteString("\n")
		for _, c := range m.Connections {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Source, c.Target, strings.Join(edgeAttrs(c), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(e *model.Entity, detailed bool) string {
	if !detailed {
		return e.Label
	}

	parts := []string{"category: " + string(e.Category)}
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Attrs[k]))
	}
	return e.Label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e *model.Entity, label string, scale float64) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(e.Position.X*scale), fmtCoord(-e.Position.Y*scale)),
	}
	if shape, ok := categoryShapes[e.Category]; ok {
		attrs = append(attrs, shape)
	} else {
		attrs = append(attrs, "shape=box")
	}
	if !e.Physics {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func edgeAttrs(c *model.Connection) []string {
	attrs := []string{fmt.Sprintf("id=%q", c.ID)}
	switch c.Style.Stroke {
	case topology.StrokeDashed:
		attrs = append(attrs, "style=dashed")
	case topology.StrokeDotted:
		attrs = append(attrs, "style=dotted")
	}
	if c.Style.Animated {
		attrs = append(attrs, `class="animated"`)
	}
	if !c.Directed {
		attrs = append(attrs, "dir=none")
	}
	return attrs
}

// fmtCoord prints v rounded to two decimals without trailing zeros.
func fmtCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// RenderSVG renders DOT produced by [ToDOT] to SVG using the neato engine,
// which respects the pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
