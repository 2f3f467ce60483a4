package infer

import (
	"math"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// inferAutoLayout retypes any remaining container whose full child set
// forms one aligned stack. Unlike sibling grouping, no synthetic wrapper is
// introduced - the existing node assumes the stack role itself. Bottom-up;
// nodes already typed stack or grid are skipped, and overlay nodes keep
// their tag: it drives child ordering and counting downstream.
func (e *Engine) inferAutoLayout(n *Node) int {
	retyped := 0
	for _, c := range n.Children {
		retyped += e.inferAutoLayout(c)
	}

	switch n.InferredType {
	case TypeStack, TypeGrid, TypeOverlay:
		return retyped
	}
	if len(n.Children) < 2 {
		return retyped
	}

	for _, dir := range []string{DirectionVertical, DirectionHorizontal} {
		run := e.detectStackRun(n.Children, dir)
		if run == nil || len(run.members) != len(n.Children) {
			continue
		}
		layout := e.stackLayout(n.Children, dir)
		layout.Padding = paddingOf(n.Rect, capture.UnionOf(childRects(n.Children)))
		n.InferredType = TypeStack
		n.AutoLayout = layout
		return retyped + 1
	}
	return retyped
}

// paddingOf measures the insets between a container's rect and its content
// union, clamped at zero for children that overhang.
func paddingOf(outer, content capture.Rect) Insets {
	return Insets{
		Top:    math.Max(0, content.Y-outer.Y),
		Right:  math.Max(0, outer.Right()-content.Right()),
		Bottom: math.Max(0, outer.Bottom()-content.Bottom()),
		Left:   math.Max(0, content.X-outer.X),
	}
}
