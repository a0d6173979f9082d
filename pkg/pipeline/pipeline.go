// Package pipeline runs a diagram end to end for command-line and batch use.
//
// A run has three stages:
//
//  1. Load: read the content graph and the event script
//  2. Apply: start a session, apply the events, recompute once
//  3. Render: export the render model in the requested formats
//
// # Usage
//
//	runner, err := pipeline.NewRunnerFromConfig(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Content: "framework.yaml",
//	    Events:  "events.yaml",
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/mindscape/pkg/errors"
	"github.com/matzehuels/mindscape/pkg/graph"
	"github.com/matzehuels/mindscape/pkg/render"
	"github.com/matzehuels/mindscape/pkg/session"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = render.FormatDOT
	FormatSVG  = render.FormatSVG
	FormatPDF  = render.FormatPDF
	FormatPNG  = render.FormatPNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// DefaultPNGScale is the resolution multiplier for PNG output.
const DefaultPNGScale = 2.0

// =============================================================================
// Options
// =============================================================================

// Options describes one run.
type Options struct {
	// Content is the path of a JSON or YAML content graph.
	Content string
	// Events is the path of an optional event script.
	Events string
	// Formats lists the artifacts to produce. Empty means JSON only.
	Formats []string
	// Detailed adds categories and attributes to exported node labels.
	Detailed bool
	// Scale multiplies coordinates in exported diagrams. Zero means 1.
	Scale float64
}

// Validate checks the options and fills defaults.
func (o *Options) Validate() error {
	if err := errors.ValidatePath(o.Content); err != nil {
		return err
	}
	if o.Events != "" {
		if err := errors.ValidatePath(o.Events); err != nil {
			return err
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// ValidateFormat checks a single output format.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, slices.Sorted(maps.Keys(ValidFormats))...)
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of one run.
type Result struct {
	// Session is the session the events were applied to. Further events
	// may be applied to it.
	Session *session.Session
	// Snapshot is the render model after the events.
	Snapshot graph.Snapshot
	// Artifacts maps each requested format to its bytes.
	Artifacts map[string][]byte
	// Stats records counts and stage durations.
	Stats Stats
}

// Stats records counts and stage durations of a run.
type Stats struct {
	Entities    int
	Connections int
	Events      int
	Rejected    int
	LoadTime    time.Duration
	ApplyTime   time.Duration
	RenderTime  time.Duration
}
