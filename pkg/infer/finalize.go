package infer

import (
	"math"
	"sort"
)

// finalize establishes stable visual order and fills in missing names
// across the whole tree. Children are sorted top to bottom, with
// y-differences below Config.RowTolerance treated as the same visual row
// and ordered left to right instead. Overlay children always sort after
// flow children, preserving the separator's paint order. The sort is
// stable, so input order breaks remaining ties.
//
// Content nodes that still hold children at this point are retyped as
// containers: every structural role has been inferred by now, so what
// remains is plain grouping.
func (e *Engine) finalize(n *Node) {
	sort.SliceStable(n.Children, func(a, b int) bool {
		ca, cb := n.Children[a], n.Children[b]
		if oa, ob := ca.InferredType == TypeOverlay, cb.InferredType == TypeOverlay; oa != ob {
			return !oa
		}
		ra, rb := ca.Rect, cb.Rect
		if math.Abs(ra.Y-rb.Y) < e.cfg.RowTolerance {
			return ra.X < rb.X
		}
		return ra.Y < rb.Y
	})

	if n.InferredType == TypeContent && len(n.Children) > 0 {
		n.InferredType = TypeContainer
	}
	if n.Name == "" {
		n.Name = fallbackName(n)
	}

	for _, c := range n.Children {
		e.finalize(c)
	}
}

// fallbackName derives a display name from the inferred type, falling back
// to the original tag.
func fallbackName(n *Node) string {
	switch n.InferredType {
	case TypeSection:
		return "Section"
	case TypeStack:
		return "Stack"
	case TypeGrid:
		return "Grid"
	case TypeContainer:
		return "Container"
	}
	return n.Type
}
