package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/reframe-dev/reframe/pkg/infer"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed includes geometry and auto-layout data in node labels.
	// When false, only the name and inferred type are shown.
	Detailed bool
}

// ToDOT converts an inferred tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(root *infer.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph hierarchy {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root.Walk(func(n *infer.Node) {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	root.Walk(func(n *infer.Node) {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c.ID)
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *infer.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	label := fmt.Sprintf("%s\n%s", name, n.InferredType)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("%.0f,%.0f %.0fx%.0f", n.Rect.X, n.Rect.Y, n.Rect.Width, n.Rect.Height)}
	if n.AutoLayout != nil {
		parts = append(parts, fmt.Sprintf("%s spacing=%.1f", n.AutoLayout.Direction, n.AutoLayout.ItemSpacing))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// Fill colors per inferred type, keeping structural decisions visible.
var typeFills = map[infer.NodeType]string{
	infer.TypeSection: "lightblue",
	infer.TypeStack:   "palegreen",
	infer.TypeGrid:    "khaki",
	infer.TypeOverlay: "mistyrose",
}

func fmtAttrs(n *infer.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	style := "rounded,filled"
	if n.Synthetic {
		style = "rounded,filled,dashed"
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", style))
	if fill, ok := typeFills[n.InferredType]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
