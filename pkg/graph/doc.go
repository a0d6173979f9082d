// Package graph provides the wire formats of a diagram: the content graph,
// event scripts and render model snapshots.
//
// This package sits at the serialization boundary between the engine's
// internal representations and files on disk:
//
//   - [Content]: node-link format for content graphs (JSON or YAML)
//   - [Event]: one scripted UI event (JSON or YAML list)
//   - [Snapshot]: render model plus recompute statistics (JSON)
//
// Use [FromContent]/[ToContent] to convert between [Content] and
// content.Graph, and [Event.ToSession] to turn a script entry into a
// session.Event.
//
// # Content Graphs
//
//	{
//	  "nodes": [
//	    {"id": "discover", "category": "phase", "position": {"x": 0, "y": 0}},
//	    {"id": "jtbd", "category": "mental_model", "label": "Jobs to be done"}
//	  ],
//	  "edges": [{"from": "discover", "to": "jtbd", "kind": "applies"}]
//	}
//
// The same document in YAML is accepted when the file ends in .yaml or .yml.
//
// # Event Scripts
//
//	- {type: toggle_mental_model, anchor: discover, target: jtbd, on: true}
//	- {type: toggle_detail, target: jtbd, on: true}
//	- {type: drag, target: jtbd, x: 120, y: -40}
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
