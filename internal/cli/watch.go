package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/pipeline"
)

// defaultDebounce is how long watch waits after the last change before it
// re-runs the layout.
const defaultDebounce = 300 * time.Millisecond

// watchCommand creates the watch command that re-runs layout on file changes.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		debounce time.Duration
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "watch [content]",
		Short: "Re-run layout whenever the content or events change",
		Long: `Re-run layout whenever the content or events change.

The watch command runs 'layout' once, then watches the content graph and the
event script. Bursts of writes are coalesced and trigger a single re-run.
Failed runs are reported and watching continues. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Content = args[0]
			if output == "" {
				output = defaultOutput(args[0], ".layout.json")
			}
			return c.runWatch(cmd.Context(), opts, output, noCache, debounce)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <content>.layout.json)")
	cmd.Flags().StringVarP(&opts.Events, "events", "e", "", "event script to apply (JSON or YAML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before re-running")

	return cmd
}

// runWatch lays out once and again after every debounced change to the
// watched files. It returns nil when ctx is cancelled.
func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, output string, noCache bool, debounce time.Duration) error {
	files, err := watchedFiles(opts)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them in place, so the
	// parent directories are watched and events are filtered by name.
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	rerun := func() {
		if err := c.runLayout(ctx, opts, output, noCache); err != nil && !errors.Is(err, context.Canceled) {
			printError("%v", err)
		}
	}
	rerun()
	printInfo("Watching %d file(s), press Ctrl-C to stop", len(files))

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			c.Logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-timerC:
			timerC = nil
			printInfo("Change detected, re-running layout")
			rerun()
		}
	}
}

// watchedFiles returns the cleaned absolute paths of the content graph and
// the event script.
func watchedFiles(opts pipeline.Options) (map[string]bool, error) {
	files := make(map[string]bool)
	for _, p := range []string{opts.Content, opts.Events} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[filepath.Clean(abs)] = true
	}
	return files, nil
}
