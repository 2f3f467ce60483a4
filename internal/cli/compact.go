package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reframe-dev/reframe/pkg/errors"
	"github.com/reframe-dev/reframe/pkg/infer"
)

// Size thresholds in MB: trees under the target ship as-is, and trees far
// over it go straight to the aggressive trim.
const (
	compactTargetMB   = 150
	compactEscalateMB = 250
)

// compactCommand creates the compact command for shrinking tree payloads.
func (c *CLI) compactCommand() *cobra.Command {
	var (
		output     string
		aggressive bool
		maxDepth   int
		targetMB   int
	)

	cmd := &cobra.Command{
		Use:   "compact [tree.json]",
		Short: "Shrink an inferred tree for payload-limited consumers",
		Long: `Shrink an inferred tree for payload-limited consumers.

The compact command rewrites a tree.json file (produced by 'infer') with
diagnostic metadata stripped, oversized embedded payloads dropped and deep
subtrees truncated. Trees already under the target size are only minified.
Very large trees, and runs with --aggressive, use tighter limits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(args[0], output, aggressive, maxDepth, targetMB)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <tree>.min.json)")
	cmd.Flags().BoolVar(&aggressive, "aggressive", false, "apply the aggressive trim limits")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "override the tree depth limit")
	cmd.Flags().IntVar(&targetMB, "target-size", compactTargetMB, "skip trimming when the payload is below this many MB")

	return cmd
}

// runCompact loads the tree, trims it to size and writes the minified copy.
func runCompact(input, output string, aggressive bool, maxDepth, targetMB int) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read tree %s", input)
	}
	result, err := infer.ReadTreeJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load tree %s", input)
	}

	path := output
	if path == "" {
		path = strings.TrimSuffix(input, ".json") + ".min.json"
	}

	originalMB := float64(len(data)) / (1 << 20)
	if targetMB > 0 && originalMB <= float64(targetMB) {
		minified, err := encodeMinified(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, minified, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Tree is already under %dMB, minified only", targetMB)
		printFile(path)
		return nil
	}

	opts := infer.StandardCompact()
	if aggressive || originalMB > compactEscalateMB {
		opts = infer.AggressiveCompact()
	}
	if maxDepth > 0 {
		opts.MaxDepth = maxDepth
	}

	stats := infer.Compact(result.Root, opts)
	minified, err := encodeMinified(result)
	if err != nil {
		return err
	}

	// One escalation when the standard trim was not enough.
	if targetMB > 0 && float64(len(minified))/(1<<20) > float64(targetMB) {
		extra := infer.AggressiveCompact()
		if maxDepth > 0 {
			extra.MaxDepth = maxDepth
		}
		more := infer.Compact(result.Root, extra)
		stats.NodesDropped += more.NodesDropped
		stats.MetaDropped += more.MetaDropped
		stats.Truncated += more.Truncated
		if minified, err = encodeMinified(result); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, minified, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	reduction := 0.0
	if len(data) > 0 {
		reduction = (1 - float64(len(minified))/float64(len(data))) * 100
	}
	printSuccess("Compacted tree to %d nodes (%.1f%% smaller)", result.Root.Count(), reduction)
	if stats.NodesDropped > 0 {
		printDetail("dropped %d nodes past depth %d", stats.NodesDropped, opts.MaxDepth)
	}
	if stats.MetaDropped > 0 {
		printDetail("dropped %d metadata entries", stats.MetaDropped)
	}
	printFile(path)
	return nil
}

// encodeMinified marshals the result without indentation.
func encodeMinified(result *infer.Result) ([]byte, error) {
	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return append(out, '\n'), nil
}
