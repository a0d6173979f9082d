package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/pipeline"
)

// renderCommand creates the render command for exporting diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [content]",
		Short: "Export a framework diagram as DOT, SVG, PDF or PNG",
		Long: `Export a framework diagram as DOT, SVG, PDF or PNG.

The render command runs the same session as 'layout' and draws the render
model with Graphviz, pinning every entity at its computed position. PDF and
PNG output is converted from SVG and requires rsvg-convert on the PATH.

With one format, -o names the output file. With several, -o is a base path
and each format gets its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Content = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.Events, "events", "e", "", "event script to apply (JSON or YAML)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show categories and attributes in node labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "coordinate scale factor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender runs the pipeline and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Rendering diagram...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	spinner.Update("Writing files...")
	paths := outputPaths(opts.Content, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}
	spinner.Stop()

	printResult(result)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format uses
// output verbatim when set; otherwise output (or the content path) is a base
// that receives the format extension.
func outputPaths(content, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := defaultOutput(content, "")
	if output != "" {
		base = defaultOutput(output, "")
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
