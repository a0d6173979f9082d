package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mindscape/pkg/core/model"
	"github.com/matzehuels/mindscape/pkg/core/reconcile"
	"github.com/matzehuels/mindscape/pkg/errors"
	"github.com/matzehuels/mindscape/pkg/session"
)

// Snapshot is the serialization format of a render model after a recompute.
type Snapshot struct {
	Session      string              `json:"session,omitempty"`
	Entities     []*model.Entity     `json:"entities"`
	Connections  []*model.Connection `json:"connections"`
	Stats        reconcile.Stats     `json:"stats"`
	Recalculated []string            `json:"recalculated,omitempty"`
	Rejected     []Rejection         `json:"rejected,omitempty"`
}

// Rejection describes an event the session ignored.
type Rejection struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSnapshot captures a session result. sessionID may be empty.
func NewSnapshot(sessionID string, res *session.Result) Snapshot {
	s := Snapshot{
		Session:      sessionID,
		Entities:     []*model.Entity{},
		Connections:  []*model.Connection{},
		Stats:        res.Stats,
		Recalculated: res.Recalculated,
	}
	if res.Model != nil {
		s.Entities = res.Model.Entities
		s.Connections = res.Model.Connections
	}
	for _, err := range res.Rejected {
		s.Rejected = append(s.Rejected, Rejection{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		})
	}
	return s
}

// Model returns the render model held by the snapshot.
func (s Snapshot) Model() *model.Model {
	return &model.Model{Entities: s.Entities, Connections: s.Connections}
}

// WriteModel writes a snapshot as indented JSON to w.
func WriteModel(s Snapshot, w io.Writer) error {
	return encode(w, FormatJSON, s)
}

// MarshalModel converts a snapshot to JSON bytes.
func MarshalModel(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteModel(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteModelFile writes a snapshot to a JSON file, replacing it atomically.
func WriteModelFile(s Snapshot, path string) error {
	data, err := MarshalModel(s)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadModel decodes a JSON snapshot from r.
func ReadModel(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := decode(r, FormatJSON, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
