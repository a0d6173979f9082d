package graph

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/mindscape/pkg/core/geom"
	"github.com/matzehuels/mindscape/pkg/errors"
	"github.com/matzehuels/mindscape/pkg/session"
)

// Event is one entry of an event script. Type is one of the session event
// kinds; the remaining fields apply depending on the type:
//
//	toggle_mental_model  anchor, target, on
//	toggle_detail        target, on
//	drag                 target, x, y
type Event struct {
	Type   string  `json:"type" yaml:"type"`
	Anchor string  `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Target string  `json:"target" yaml:"target"`
	On     bool    `json:"on,omitempty" yaml:"on,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

// ToSession converts a script entry into a session event. Malformed entries
// return an INVALID_EVENT error; whether the ids exist is decided by the
// session.
func (e Event) ToSession() (session.Event, error) {
	if e.Target == "" {
		return nil, errors.New(errors.ErrCodeInvalidEvent, "%s event without target", e.Type)
	}
	switch e.Type {
	case session.KindToggleMentalModel:
		if e.Anchor == "" {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "%s event for %q without anchor", e.Type, e.Target)
		}
		return session.ToggleMentalModel{AnchorID: e.Anchor, MentalModelID: e.Target, On: e.On}, nil
	case session.KindToggleDetail:
		return session.ToggleDetail{MentalModelID: e.Target, On: e.On}, nil
	case session.KindDrag:
		if math.IsNaN(e.X) || math.IsNaN(e.Y) || math.IsInf(e.X, 0) || math.IsInf(e.Y, 0) {
			return nil, errors.New(errors.ErrCodeInvalidEvent, "drag of %q to a non-finite position", e.Target)
		}
		return session.UserDragged{EntityID: e.Target, Position: geom.Pt(e.X, e.Y)}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", e.Type)
	}
}

// FromSession converts a session event into a script entry.
func FromSession(ev session.Event) (Event, error) {
	switch e := ev.(type) {
	case session.ToggleMentalModel:
		return Event{Type: e.Kind(), Anchor: e.AnchorID, Target: e.MentalModelID, On: e.On}, nil
	case session.ToggleDetail:
		return Event{Type: e.Kind(), Target: e.MentalModelID, On: e.On}, nil
	case session.UserDragged:
		return Event{Type: e.Kind(), Target: e.EntityID, X: e.Position.X, Y: e.Position.Y}, nil
	default:
		return Event{}, errors.New(errors.ErrCodeUnsupported, "event type %T", ev)
	}
}

// ReadEventsFile reads a JSON or YAML event script.
func ReadEventsFile(path string) ([]session.Event, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "events file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEvents(f, format)
}

// ReadEvents decodes an event script in format and converts every entry.
// An empty script yields no events. The first malformed entry aborts
// decoding.
func ReadEvents(r io.Reader, format string) ([]session.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var script []Event
	if err := decode(bytes.NewReader(data), format, &script); err != nil {
		return nil, err
	}
	out := make([]session.Event, 0, len(script))
	for i, e := range script {
		ev, err := e.ToSession()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// WriteEvents encodes events as a script in format.
func WriteEvents(events []session.Event, w io.Writer, format string) error {
	script := make([]Event, 0, len(events))
	for _, ev := range events {
		e, err := FromSession(ev)
		if err != nil {
			return err
		}
		script = append(script, e)
	}
	return encode(w, format, script)
}
