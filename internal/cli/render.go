package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umldraw/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path, "-" for stdout
	format    string // drawio, json, dot, svg
	config    string // TOML layout/document configuration
	docs      bool   // capture method docstrings
	stableIDs bool   // sequential ids instead of random ones
}

// renderCommand creates the render command.
//
// Default settings:
//   - format: drawio
//   - output: output.drawio (output.<format> for the other formats)
//   - ids: random, or sequential with --stable-ids
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the classes of a Python file as a draw.io diagram",
		Long: `Render extracts every class of a Python file and writes a draw.io UML class
diagram with one box per class, laid out left to right.

The input may also be a JSON model written by "render --format json", which is
rendered without re-parsing any Python source.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.renderArgs(cmd, args, opts)
		},
	}
	addRenderFlags(cmd, &opts)

	return cmd
}

// addRenderFlags registers the render flags on cmd. The root command shares
// them so that "umldraw file.py" behaves like "umldraw render file.py".
func addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout (default output.drawio)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: drawio (default), json, dot, svg")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML file with [layout] and [document] settings")
	cmd.Flags().BoolVar(&opts.docs, "doc", false, "include method docstrings in the model")
	cmd.Flags().BoolVar(&opts.stableIDs, "stable-ids", false, "use sequential element ids for reproducible output")
}

// renderArgs renders the single input in args, or prints usage when there is
// none.
func (c *CLI) renderArgs(cmd *cobra.Command, args []string, flags renderOpts) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	opts, err := c.buildRenderOptions(cmd, args[0], flags)
	if err != nil {
		return err
	}
	return c.runRender(cmd.Context(), opts)
}

// buildRenderOptions layers defaults, the configuration file and explicitly
// set flags, in that order.
func (c *CLI) buildRenderOptions(cmd *cobra.Command, input string, flags renderOpts) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if path, ok := configPath(flags.config); ok {
		c.Logger.Debug("loading config", "path", path)
		if err := pipeline.LoadConfig(path, &opts); err != nil {
			return opts, err
		}
	}

	opts.Source = input
	if cmd.Flags().Changed("format") {
		opts.Format = flags.format
	}
	if cmd.Flags().Changed("output") {
		opts.Output = flags.output
	}
	if cmd.Flags().Changed("doc") {
		opts.Docs = flags.docs
	}
	if cmd.Flags().Changed("stable-ids") {
		opts.StableIDs = flags.stableIDs
	}
	if opts.Output == "" {
		opts.Output = pipeline.DefaultOutputFor(opts.Format)
	}
	return opts, nil
}

// configPath returns the explicit --config path, or the user layout file.
func configPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	return defaultConfigPath()
}

// runRender executes the pipeline and writes the artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	st := startStage(logger, "rendered diagram")

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	if err := c.writeOutput(opts.Output, result.Artifact); err != nil {
		return err
	}

	st.done("classes", result.Stats.ClassCount, "edges", result.Stats.EdgeCount, "format", opts.Format)
	if opts.Output != stdoutPath {
		c.printGenerated(opts.Output, result.Stats)
	}
	return nil
}

// writeOutput writes data to path, or to the command output for "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	return writeAndClose(out, path, data)
}

// writeAndClose writes data and closes out. A failed close fails the write,
// since the file may be incomplete.
func writeAndClose(out io.WriteCloser, path string, data []byte) error {
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// openOutput creates path, or returns the command output for "-".
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{c.Out}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
