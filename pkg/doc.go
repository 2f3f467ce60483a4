// Package pkg provides the core libraries for reframe hierarchy inference.
//
// # Overview
//
// Reframe reconstructs nested semantic trees from flat render captures: a
// list of absolutely-positioned rectangles with style attributes, the way a
// browser or design-tool export sees a page. The pkg directory is organized
// into four main areas:
//
//  1. [capture] - Input data model (rectangles, styles, flat capture I/O)
//  2. [infer] - The inference engine (scoring, tree building, grouping)
//  3. [viz] - Diagnostic rendering of inferred trees (DOT, SVG)
//  4. [cache] - Content-addressed result cache for CLI re-runs
//
// # Architecture
//
// The typical data flow through reframe:
//
//	Flat render capture (JSON)
//	         ↓
//	    [capture] package (parse + validate nodes)
//	         ↓
//	    [infer] package (score → assign → build → refine)
//	         ↓
//	    Nested tree + metrics (JSON, diagram)
//
// # Quick Start
//
// Read a capture and infer its hierarchy:
//
//	import (
//	    "github.com/reframe-dev/reframe/pkg/capture"
//	    "github.com/reframe-dev/reframe/pkg/infer"
//	)
//
//	// 1. Load the flat capture
//	nodes, _ := capture.ReadFile("page.json")
//
//	// 2. Run the engine
//	engine := infer.New()
//	result, _ := engine.Infer(nodes)
//
//	// 3. Walk the inferred tree
//	result.Root.Walk(func(n *infer.Node) {
//	    fmt.Printf("%s (%s)\n", n.Name, n.InferredType)
//	})
//
// # Main Packages
//
// [capture] - Input data model. Rect geometry with epsilon-tolerant
// containment, Style attributes (background, border, shadow, clipping,
// opacity, z-index), RenderNode with opaque metadata, and JSON import/export
// of flat captures with duplicate-ID and parent-link validation.
//
// [infer] - The inference engine. A sequence of passes turns the flat list
// into a tree: weighted containment scoring, best-parent assignment with
// cycle breaking, tree materialization, wrapper elimination, sibling
// grouping into stacks and grids, overlay separation, sectionizing,
// auto-layout inference, and deterministic finalization with run metrics.
// All thresholds live in [infer.Config], loadable from TOML.
//
// [viz] - Diagnostic rendering. Converts an inferred tree to Graphviz DOT
// and renders SVG diagrams with per-type fills and dashed synthetic nodes.
//
// [cache] - Content-addressed file cache keyed by capture bytes, scoped by
// configuration hash so threshold changes never serve stale trees. A null
// backend disables caching for one-shot runs.
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and library callers.
//
// [buildinfo] - Version metadata injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/infer/...     # Engine only
//
// [capture]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/capture
// [infer]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/infer
// [viz]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/viz
// [cache]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/cache
// [errors]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/buildinfo
// [infer.Config]: https://pkg.go.dev/github.com/reframe-dev/reframe/pkg/infer#Config
package pkg
