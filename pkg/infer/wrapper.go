package infer

import (
	"math"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// eliminateWrappers removes structurally redundant containers bottom-up,
// splicing their children into their parent. Removing one wrapper can
// expose its ancestor as newly eliminable, so sweeps repeat to a fixed
// point, capped at Config.WrapperMaxSweeps. Returns the total number of
// eliminated nodes.
//
// The root is never eliminated. Synthetic nodes do not exist yet at this
// point in the pipeline - grouping and sectionizing run later - so a
// synthetic container can never be eliminated.
func (e *Engine) eliminateWrappers(root *Node) int {
	total := 0
	for sweep := 0; sweep < e.cfg.WrapperMaxSweeps; sweep++ {
		n := e.sweepWrappers(root)
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// sweepWrappers runs one bottom-up elimination pass under parent and
// returns the number of nodes it spliced out.
func (e *Engine) sweepWrappers(parent *Node) int {
	count := 0
	for i := 0; i < len(parent.Children); i++ {
		child := parent.Children[i]
		count += e.sweepWrappers(child)

		if !e.isWrapper(child) {
			continue
		}

		// Splice the wrapper out: its children take its place in order.
		merged := make([]*Node, 0, len(parent.Children)+len(child.Children)-1)
		merged = append(merged, parent.Children[:i]...)
		merged = append(merged, child.Children...)
		merged = append(merged, parent.Children[i+1:]...)
		parent.Children = merged
		i += len(child.Children) - 1
		count++
	}
	return count
}

// isWrapper reports whether n is a structurally redundant container: its
// bounds match its children's bounding union, it paints nothing of its own,
// and it carries no layout or semantic role.
func (e *Engine) isWrapper(n *Node) bool {
	if len(n.Children) == 0 {
		return false
	}

	union := capture.UnionOf(childRects(n.Children))
	tol := math.Max(e.cfg.WrapperTolerance, e.cfg.WrapperTolerancePct*n.Rect.MinDimension())
	if union.EdgeDistance(n.Rect) > tol {
		return false
	}
	if areaAgreement(union, n.Rect) < e.cfg.AreaMatchMin {
		return false
	}

	if hasResponsibilities(n) {
		return false
	}
	if n.Style.IsLayoutContainer() {
		return false
	}
	if n.InferredType == TypeSection || n.InferredType == TypeContainer {
		return false
	}
	for _, c := range n.Children {
		if c.IsImage() {
			return false
		}
	}
	return true
}

// hasResponsibilities reports whether n does visual work of its own:
// clipping, transparency, transform, or any decoration.
func hasResponsibilities(n *Node) bool {
	return n.Style.ClipsOverflow ||
		n.Style.EffectiveOpacity() < 1 ||
		n.Style.HasTransform ||
		n.Style.HasDecoration()
}

// areaAgreement returns min(area(a), area(b)) / max(area(a), area(b)),
// a symmetric measure of how closely two rects cover the same area.
func areaAgreement(a, b capture.Rect) float64 {
	aa, ba := a.Area(), b.Area()
	if aa == 0 && ba == 0 {
		return 1
	}
	lo, hi := math.Min(aa, ba), math.Max(aa, ba)
	if hi == 0 {
		return 0
	}
	return lo / hi
}
