package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/errors"
)

// =============================================================================
// Content - Content Graph Serialization
// =============================================================================

// Content is the canonical serialization format for content graphs.
//
// The format is designed for round-trip fidelity: nodes and edges keep the
// order they were added in.
type Content struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a serialized content entity.
type Node struct {
	ID       string            `json:"id" yaml:"id"`
	Category string            `json:"category" yaml:"category"`
	Label    string            `json:"label,omitempty" yaml:"label,omitempty"`
	Position *geom.Point       `json:"position,omitempty" yaml:"position,omitempty"` // Anchors only
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Edge is a serialized static relationship.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind" yaml:"kind"`
}

// =============================================================================
// content.Graph ↔ Content Conversion
// =============================================================================

// FromContent converts a content graph to its serialization format.
func FromContent(g *content.Graph) Content {
	nodes := g.Nodes()
	edges := g.Edges()
	out := Content{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{
			ID:       n.ID,
			Category: string(n.Category),
			Label:    n.Label,
			Position: n.Position,
			Attrs:    n.Attrs,
		}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To, Kind: string(e.Kind)}
	}
	return out
}

// ToContent builds a content graph bound to registry. Node ids are checked
// with errors.ValidateEntityID; structural problems are returned from the
// content package wrapped with the offending node or edge. The graph is not
// validated against the registry's parent requirements; call Validate.
func ToContent(c Content, registry *topology.Registry) (*content.Graph, error) {
	g := content.New(registry)
	for _, n := range c.Nodes {
		if err := errors.ValidateEntityID(n.ID); err != nil {
			return nil, err
		}
		err := g.AddNode(content.Node{
			ID:       n.ID,
			Category: topology.Category(n.Category),
			Label:    n.Label,
			Position: n.Position,
			Attrs:    n.Attrs,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "node %s", n.ID)
		}
	}
	for _, e := range c.Edges {
		if err := g.AddEdge(content.Edge{From: e.From, To: e.To, Kind: topology.Kind(e.Kind)}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "edge %s→%s", e.From, e.To)
		}
	}
	return g, nil
}

// =============================================================================
// Content Serialization API
// =============================================================================

// ReadContentFile reads a JSON or YAML content file, choosing the decoder
// from the file extension.
func ReadContentFile(path string, registry *topology.Registry) (*content.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "content file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadContent(f, format, registry)
}

// ReadContent decodes a content graph in format from r.
func ReadContent(r io.Reader, format string, registry *topology.Registry) (*content.Graph, error) {
	var c Content
	if err := decode(r, format, &c); err != nil {
		return nil, err
	}
	return ToContent(c, registry)
}

// WriteContent encodes g in format to w.
func WriteContent(g *content.Graph, w io.Writer, format string) error {
	return encode(w, format, FromContent(g))
}

// MarshalContent converts a content graph to JSON bytes.
func MarshalContent(g *content.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteContent(g, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func decode(r io.Reader, format string, v any) error {
	if err := errors.ValidateFormat(format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	var err error
	if format == FormatYAML {
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(v)
	} else {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return nil
}

func encode(w io.Writer, format string, v any) error {
	if err := errors.ValidateFormat(format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
