package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/graph"
	"github.com/matzehuels/mindscape/pkg/pipeline"
	"github.com/matzehuels/mindscape/pkg/session"
)

// layoutCommand creates the layout command for computing render models.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [content]",
		Short: "Compute the render model of a framework content graph",
		Long: `Compute the render model of a framework content graph.

The layout command loads a content graph (JSON or YAML), opens a session,
applies the optional event script in one pass and writes the resulting
render model as JSON. Only the anchors are shown when no events are given.

Simulation results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Content = args[0]
			if output == "" {
				output = defaultOutput(args[0], ".layout.json")
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <content>.layout.json)")
	cmd.Flags().StringVarP(&opts.Events, "events", "e", "", "event script to apply (JSON or YAML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout runs the pipeline and writes the render model to output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	opts.Formats = []string{pipeline.FormatJSON}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if err := graph.WriteModelFile(result.Snapshot, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Laid out %d entities", result.Stats.Entities))

	printResult(result)
	printFile(output)
	return nil
}

// printResult summarizes a pipeline run and lists rejected events.
func printResult(result *pipeline.Result) {
	printSuccess("Session %s", StyleDim.Render(result.Session.ID()))
	printStats(result.Stats.Entities, result.Stats.Connections, result.Snapshot.Stats)
	for _, r := range result.Snapshot.Rejected {
		printWarning("%s: %s", r.Code, r.Message)
	}
}

// writeSnapshot saves a session result as a render model JSON file.
func writeSnapshot(s *session.Session, res *session.Result, path string) error {
	if err := graph.WriteModelFile(graph.NewSnapshot(s.ID(), res), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
