package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reframe-dev/reframe/pkg/errors"
	"github.com/reframe-dev/reframe/pkg/infer"
	"github.com/reframe-dev/reframe/pkg/viz"
)

// vizCommand creates the viz command for rendering inferred trees.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "viz [tree.json]",
		Short: "Render an inferred hierarchy as a Graphviz diagram",
		Long: `Render an inferred hierarchy as a Graphviz diagram.

The viz command takes a tree.json file (produced by 'infer') and renders the
nesting structure as a DOT graph or an SVG image. Node fills encode inferred
types and dashed borders mark synthetic frames, which makes threshold tuning
visual: a forest of dashed boxes usually means grouping is too aggressive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runViz(args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from input)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include geometry and layout details in node labels")

	return cmd
}

// runViz loads the tree and renders it.
func (c *CLI) runViz(input, output, format string, detailed bool) error {
	format = strings.ToLower(format)
	if format != "svg" && format != "dot" {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (expected svg or dot)", format)
	}

	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open tree %s", input)
	}
	defer f.Close()

	result, err := infer.ReadTreeJSON(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load tree %s", input)
	}

	dot := viz.ToDOT(result.Root, viz.Options{Detailed: detailed})

	data := []byte(dot)
	if format == "svg" {
		spinner := newSpinner("Rendering SVG...")
		spinner.Start()
		data, err = viz.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
	}

	path := output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered %d nodes", result.Root.Count())
	printFile(path)
	return nil
}
