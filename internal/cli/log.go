// Package cli implements the mindscape command-line interface.
//
// This package provides commands for laying out framework content graphs,
// exporting them as DOT, SVG, PDF or PNG, exploring toggles interactively and
// managing the on-disk layout cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Apply an event script and write the render model as JSON
//   - render: Export the render model as a diagram
//   - rules: Print the topology rules registry
//   - explore: Toggle mental models and details in a terminal UI
//   - watch: Re-run layout whenever the content or events change
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. At debug
// level every engine hook (events, recomputes, simulations, cache activity)
// is logged as well.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 12 entities (42ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
