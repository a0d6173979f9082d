package graph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/core/topology"
	"github.com/matzehuels/mindscape/pkg/errors"
	"github.com/matzehuels/mindscape/pkg/session"
)

const sampleYAML = `
nodes:
  - id: discover
    category: phase
    position: {x: 0, y: 0}
  - id: research
    category: sub_phase
  - id: jtbd
    category: mental_model
    label: Jobs to be done
    attrs:
      source: christensen
  - id: canvas
    category: visualization
edges:
  - {from: discover, to: research, kind: contains}
  - {from: discover, to: jtbd, kind: applies}
  - {from: jtbd, to: canvas, kind: visualizes}
`

func readSample(t *testing.T) *content.Graph {
	t.Helper()
	g, err := ReadContent(strings.NewReader(sampleYAML), FormatYAML, topology.DefaultRegistry())
	if err != nil {
		t.Fatalf("ReadContent: %v", err)
	}
	return g
}

func TestReadContentYAML(t *testing.T) {
	g := readSample(t)

	if g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Fatalf("got %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	n, _ := g.Node("discover")
	if n.Position == nil || *n.Position != geom.Pt(0, 0) {
		t.Errorf("discover position = %v", n.Position)
	}
	n, _ = g.Node("jtbd")
	if n.Label != "Jobs to be done" || n.Attrs["source"] != "christensen" {
		t.Errorf("jtbd = %+v", n)
	}
	if n, _ := g.Node("research"); n.Position != nil {
		t.Errorf("research should have no position, got %v", *n.Position)
	}
}

func TestContentRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			g := readSample(t)
			var buf bytes.Buffer
			if err := WriteContent(g, &buf, format); err != nil {
				t.Fatalf("WriteContent: %v", err)
			}
			back, err := ReadContent(&buf, format, topology.DefaultRegistry())
			if err != nil {
				t.Fatalf("ReadContent: %v", err)
			}
			a, _ := MarshalContent(g)
			b, _ := MarshalContent(back)
			if !bytes.Equal(a, b) {
				t.Errorf("round trip changed content:\n%s\nvs\n%s", a, b)
			}
		})
	}
}

func TestReadContentErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"bad format", "xml", `<nodes/>`, errors.ErrCodeInvalidFormat},
		{"malformed json", FormatJSON, `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", FormatJSON, `{"nodes": [], "edges": [], "extra": 1}`, errors.ErrCodeInvalidFormat},
		{"empty id", FormatJSON, `{"nodes": [{"id": "", "category": "phase"}]}`, errors.ErrCodeInvalidInput},
		{"reserved id", FormatJSON, `{"nodes": [{"id": "a->b", "category": "phase"}]}`, errors.ErrCodeInvalidInput},
		{"duplicate id", FormatJSON, `{"nodes": [{"id": "a", "category": "phase"}, {"id": "a", "category": "phase"}]}`, errors.ErrCodeInvalidContent},
		{"dangling edge", FormatYAML, "nodes: [{id: a, category: phase}]\nedges: [{from: a, to: b, kind: precedes}]", errors.ErrCodeInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadContent(strings.NewReader(tt.input), tt.format, topology.DefaultRegistry())
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestReadContentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadContentFile(path, topology.DefaultRegistry()); err != nil {
		t.Errorf("ReadContentFile: %v", err)
	}

	_, err := ReadContentFile(filepath.Join(dir, "missing.json"), topology.DefaultRegistry())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v", err)
	}
	_, err = ReadContentFile(filepath.Join(dir, "content.txt"), topology.DefaultRegistry())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension: got %v", err)
	}
}

func TestEventToSession(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  session.Event
		code  errors.Code
	}{
		{
			name:  "toggle",
			event: Event{Type: "toggle_mental_model", Anchor: "discover", Target: "jtbd", On: true},
			want:  session.ToggleMentalModel{AnchorID: "discover", MentalModelID: "jtbd", On: true},
		},
		{
			name:  "detail",
			event: Event{Type: "toggle_detail", Target: "jtbd"},
			want:  session.ToggleDetail{MentalModelID: "jtbd"},
		},
		{
			name:  "drag",
			event: Event{Type: "drag", Target: "jtbd", X: 3, Y: -4},
			want:  session.UserDragged{EntityID: "jtbd", Position: geom.Pt(3, -4)},
		},
		{name: "no target", event: Event{Type: "drag"}, code: errors.ErrCodeInvalidEvent},
		{name: "no anchor", event: Event{Type: "toggle_mental_model", Target: "jtbd"}, code: errors.ErrCodeInvalidEvent},
		{name: "unknown type", event: Event{Type: "zoom", Target: "jtbd"}, code: errors.ErrCodeInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.event.ToSession()
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("err = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToSession: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
			back, err := FromSession(got)
			if err != nil || back != tt.event {
				t.Errorf("FromSession = %+v, %v; want %+v", back, err, tt.event)
			}
		})
	}
}

func TestReadEvents(t *testing.T) {
	script := `
- {type: toggle_mental_model, anchor: discover, target: jtbd, on: true}
- {type: toggle_detail, target: jtbd, on: true}
- {type: drag, target: jtbd, x: 10, y: 20}
`
	events, err := ReadEvents(strings.NewReader(script), FormatYAML)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events", len(events))
	}
	if events[2] != (session.UserDragged{EntityID: "jtbd", Position: geom.Pt(10, 20)}) {
		t.Errorf("events[2] = %#v", events[2])
	}

	var buf bytes.Buffer
	if err := WriteEvents(events, &buf, FormatJSON); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	again, err := ReadEvents(&buf, FormatJSON)
	if err != nil || len(again) != 3 || again[0] != events[0] {
		t.Errorf("JSON round trip = %v, %v", again, err)
	}

	if events, err := ReadEvents(strings.NewReader("  \n"), FormatYAML); err != nil || events != nil {
		t.Errorf("empty script = %v, %v", events, err)
	}
	if _, err := ReadEvents(strings.NewReader(`[{"type": "zoom", "target": "x"}]`), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidEvent) {
		t.Errorf("bad entry: got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	s, err := session.New(ctx, readSample(t))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	res, err := s.Apply(ctx,
		session.ToggleMentalModel{AnchorID: "discover", MentalModelID: "jtbd", On: true},
		session.ToggleDetail{MentalModelID: "nope", On: true},
	)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	snap := NewSnapshot(s.ID(), res)
	if len(snap.Rejected) != 1 || snap.Rejected[0].Code != string(errors.ErrCodeUnknownEntity) {
		t.Errorf("rejected = %+v", snap.Rejected)
	}
	if len(snap.Recalculated) != 1 || snap.Recalculated[0] != "jtbd" {
		t.Errorf("recalculated = %v", snap.Recalculated)
	}

	data, err := MarshalModel(snap)
	if err != nil {
		t.Fatalf("MarshalModel: %v", err)
	}
	back, err := ReadModel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadModel: %v", err)
	}
	if back.Stats != snap.Stats || len(back.Entities) != len(snap.Entities) {
		t.Errorf("round trip = %+v", back)
	}
	for _, e := range snap.Entities {
		if !back.Model().Entity(e.ID).Equal(e) {
			t.Errorf("entity %s changed in round trip", e.ID)
		}
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := WriteModelFile(snap, path); err != nil {
		t.Fatalf("WriteModelFile: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind")
	}
}
