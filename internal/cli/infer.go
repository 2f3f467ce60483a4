package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/reframe-dev/reframe/pkg/cache"
	"github.com/reframe-dev/reframe/pkg/capture"
	"github.com/reframe-dev/reframe/pkg/errors"
	"github.com/reframe-dev/reframe/pkg/infer"
)

// inferCommand creates the infer command for converting captures into trees.
func (c *CLI) inferCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		refresh    bool
		showTree   bool
		metrics    bool
	)

	cmd := &cobra.Command{
		Use:   "infer [capture.json]",
		Short: "Infer a nested hierarchy from a flat render capture",
		Long: `Infer a nested hierarchy from a flat render capture.

The infer command reads a capture JSON file (a flat list of rectangles with
style attributes, as produced by a render instrumentation step) and runs the
heuristic pipeline: parent assignment, wrapper elimination, sibling grouping,
overlay separation, sectioning and auto-layout inference. The result is a
nested tree annotated with inferred types and layout properties.

Use "-" as the capture path to read from stdin. Results are cached locally
keyed by capture content and threshold configuration; pass --refresh to force
recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfer(cmd.Context(), args[0], inferParams{
				output:     output,
				configPath: configPath,
				noCache:    noCache,
				refresh:    refresh,
				showTree:   showTree,
				metrics:    metrics,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <capture>.tree.json, \"-\" for stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding inference thresholds")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the inferred tree to the terminal")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print inference quality metrics")

	return cmd
}

// inferParams bundles the infer command's flag values.
type inferParams struct {
	output     string
	configPath string
	noCache    bool
	refresh    bool
	showTree   bool
	metrics    bool
}

// runInfer executes the inference pipeline with caching.
func (c *CLI) runInfer(ctx context.Context, input string, params inferParams) error {
	data, err := readCaptureBytes(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read capture %s", input)
	}

	nodes, err := capture.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCapture, err, "parse capture %s", input)
	}

	cfg := infer.DefaultConfig()
	if params.configPath != "" {
		cfg, err = infer.LoadConfig(params.configPath)
		if err != nil {
			return err
		}
	}

	store := newResultCache(params.noCache, cfg)
	defer store.Close()

	ctx = withLogger(ctx, c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Inferring hierarchy from %d nodes...", len(nodes)))
	spinner.Start()

	result, cached, err := inferWithCache(ctx, store, data, nodes, cfg, params.refresh)
	if err != nil {
		spinner.StopWithError("Inference failed")
		return err
	}
	spinner.Stop()

	printSuccess("Inferred %d nodes from %d captured elements", result.Metrics.NodesAfter, result.Metrics.NodesBefore)
	printStats(result.Metrics, cached)

	if params.showTree {
		fmt.Println()
		fmt.Print(renderTree(result.Root))
	}
	if params.metrics {
		fmt.Println()
		printMetrics(result.Metrics)
	}

	return writeResult(result, input, params.output)
}

// inferWithCache returns a cached result when one exists for this capture
// and configuration, running the engine otherwise. The second return value
// reports whether the result came from the cache.
func inferWithCache(ctx context.Context, store cache.Cache, data []byte, nodes []*capture.RenderNode, cfg infer.Config, refresh bool) (*infer.Result, bool, error) {
	key := cache.ResultKey(data)

	if !refresh {
		if raw, ok, err := store.Get(ctx, key); err == nil && ok {
			if result, err := infer.ReadTreeJSON(bytes.NewReader(raw)); err == nil {
				return result, true, nil
			}
			// Corrupt entry, drop it and recompute.
			_ = store.Delete(ctx, key)
		}
	}

	logger := loggerFromContext(ctx)
	p := newProgress(logger)
	engine := infer.New(infer.WithConfig(cfg), infer.WithLogger(logger))
	result, err := engine.Infer(nodes)
	if err != nil {
		return nil, false, err
	}
	p.done(fmt.Sprintf("Inferred %d nodes", result.Metrics.NodesAfter))

	var buf bytes.Buffer
	if err := infer.WriteTreeJSON(result, &buf); err == nil {
		_ = store.Set(ctx, key, buf.Bytes(), cache.TTLResult)
	}

	return result, false, nil
}

// newResultCache builds the result cache scoped by a hash of the threshold
// configuration, so experiments with different thresholds never collide.
func newResultCache(noCache bool, cfg infer.Config) cache.Cache {
	store := newCache(noCache)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return store
	}
	return cache.NewScopedCache(store, "cfg:"+cache.Hash(buf.Bytes())[:16]+":")
}

// readCaptureBytes reads the raw capture document, from stdin when path
// is "-". Raw bytes are kept for content-addressed caching.
func readCaptureBytes(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeResult writes the result JSON to the resolved output path, or to
// stdout when output is "-".
func writeResult(result *infer.Result, input, output string) error {
	if output == "-" {
		return infer.WriteTreeJSON(result, os.Stdout)
	}

	path := output
	if path == "" {
		path = defaultOutputPath(input)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := infer.WriteTreeJSON(result, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printFile(path)
	return nil
}

// defaultOutputPath derives the tree output path from the capture path.
// "page.json" becomes "page.tree.json"; stdin input writes to "capture.tree.json".
func defaultOutputPath(input string) string {
	if input == "-" {
		return "capture.tree.json"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".tree.json"
}

// printMetrics prints the full quality metrics block.
func printMetrics(m infer.Metrics) {
	printInfo("Metrics")
	printDetail("nodes: %d before, %d after", m.NodesBefore, m.NodesAfter)
	printDetail("wrappers eliminated: %d", m.WrappersEliminated)
	printDetail("depth: max %d, avg %.1f", m.MaxDepth, m.AvgDepth)
	printDetail("orphan rate: %.1f%%", m.OrphanRate*100)
	printDetail("auto-layout coverage: %.1f%%", m.AutoLayoutCoverage*100)
	printDetail("overlays: %d", m.OverlayCount)
	printDetail("synthetic frames: %d", m.SyntheticFrames)
	if len(m.WrapperCandidates) > 0 {
		printWarning("%d containers look like residual wrappers:", len(m.WrapperCandidates))
		for _, cand := range m.WrapperCandidates {
			printDetail("%s (%s) area ratio %.2f", cand.Name, cand.ID, cand.Ratio)
		}
	}
}
