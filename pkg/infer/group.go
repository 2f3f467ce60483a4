package infer

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// groupSiblings detects aligned stacks and grids among each node's direct
// children and replaces them with synthetic flow containers. Children are
// processed bottom-up so members of a freshly created synthetic container
// are never regrouped.
//
// Grids are tried before stacks: a grid's first row always qualifies as a
// horizontal stack, so the stack detector would otherwise consume it.
func (e *Engine) groupSiblings(n *Node) int {
	created := 0
	for _, c := range n.Children {
		created += e.groupSiblings(c)
	}
	if n.InferredType == TypeStack || n.InferredType == TypeGrid {
		return created
	}

	for len(n.Children) >= 2 {
		if grid := e.detectGrid(n.Children); grid != nil {
			created += e.replaceWithGrid(n, grid)
			continue
		}
		if run := e.detectStackRun(n.Children, DirectionVertical); run != nil {
			e.replaceWithStack(n, run, DirectionVertical)
			created++
			continue
		}
		if run := e.detectStackRun(n.Children, DirectionHorizontal); run != nil {
			e.replaceWithStack(n, run, DirectionHorizontal)
			created++
			continue
		}
		break
	}
	return created
}

// =============================================================================
// Stack Detection
// =============================================================================

// stackRun is a cluster of consecutive children accepted as one stack.
type stackRun struct {
	members    []int // child indexes, in order
	confidence float64
}

// flowPos returns the child's position along the stack's flow axis.
func flowPos(n *Node, dir string) float64 {
	if dir == DirectionVertical {
		return n.Rect.Y
	}
	return n.Rect.X
}

// flowEnd returns the child's far edge along the stack's flow axis.
func flowEnd(n *Node, dir string) float64 {
	if dir == DirectionVertical {
		return n.Rect.Bottom()
	}
	return n.Rect.Right()
}

// crossPos returns the child's position along the alignment axis.
func crossPos(n *Node, dir string) float64 {
	if dir == DirectionVertical {
		return n.Rect.X
	}
	return n.Rect.Y
}

// crossSize returns the child's extent along the alignment axis.
func crossSize(n *Node, dir string) float64 {
	if dir == DirectionVertical {
		return n.Rect.Width
	}
	return n.Rect.Height
}

// pairTolerance computes the cross-axis alignment slack for two adjacent
// stack members: at least StackTolerance, growing with the cross-axis size,
// capped at StackToleranceMax.
func (e *Engine) pairTolerance(a, b *Node, dir string) float64 {
	size := math.Max(crossSize(a, dir), crossSize(b, dir))
	tol := math.Max(e.cfg.StackTolerance, e.cfg.StackTolerancePct*size)
	return math.Min(tol, e.cfg.StackToleranceMax)
}

// detectStackRun greedily clusters children sharing a near-equal cross-axis
// position with monotonically non-decreasing flow positions, and returns the
// first cluster that clears the confidence gate.
//
// A run may continue through a pair misaligned by up to twice the tolerance,
// but only strictly aligned pairs count toward confidence - that is what
// keeps the acceptance gate meaningful. A flow gap above Config.StackMaxGap
// ends the run: far-apart elements belong to separate bands, which is what
// leaves root-level bands intact for the sectionizer.
func (e *Engine) detectStackRun(children []*Node, dir string) *stackRun {
	for start := 0; start < len(children)-1; start++ {
		members := []int{start}
		strict, loose := 0, 0

		for k := start + 1; k < len(children); k++ {
			prev, next := children[members[len(members)-1]], children[k]
			if flowPos(next, dir) < flowPos(prev, dir) {
				break
			}
			if flowPos(next, dir)-flowEnd(prev, dir) > e.cfg.StackMaxGap {
				break
			}
			tol := e.pairTolerance(prev, next, dir)
			mis := math.Abs(crossPos(prev, dir) - crossPos(next, dir))
			if mis > 2*tol {
				break
			}
			if mis <= tol {
				strict++
			} else {
				loose++
			}
			members = append(members, k)
		}

		if len(members) < 2 {
			continue
		}
		confidence := float64(strict) / float64(strict+loose) * 3.0
		if confidence >= e.cfg.StackConfidenceMin {
			return &stackRun{members: members, confidence: confidence}
		}
	}
	return nil
}

// replaceWithStack removes the run's members from parent and inserts one
// synthetic stack container in their place.
func (e *Engine) replaceWithStack(parent *Node, run *stackRun, dir string) {
	members := pick(parent.Children, run.members)
	stack := e.newSyntheticNode(TypeStack, members)
	stack.AutoLayout = e.stackLayout(members, dir)
	replaceChildren(parent, run.members, stack)
}

// stackLayout computes auto-layout metadata for a run of stack members.
// Spacing is the median of consecutive positive gaps in reading order;
// overlapping members contribute no gap.
func (e *Engine) stackLayout(members []*Node, dir string) *AutoLayout {
	gaps := make([]float64, 0, len(members)-1)
	for i := 1; i < len(members); i++ {
		var gap float64
		if dir == DirectionVertical {
			gap = members[i].Rect.Y - members[i-1].Rect.Bottom()
		} else {
			gap = members[i].Rect.X - members[i-1].Rect.Right()
		}
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	return &AutoLayout{
		Direction:    dir,
		PrimaryAlign: AlignMin,
		CounterAlign: AlignStretch,
		ItemSpacing:  median(gaps),
	}
}

// =============================================================================
// Grid Detection
// =============================================================================

// gridCandidate is a run of equal-cardinality rows accepted as one grid.
type gridCandidate struct {
	rows       [][]int // child indexes per row, left to right
	confidence float64
}

// detectGrid groups children into rows by vertical overlap and accepts a
// grid when consecutive rows have equal cardinality and their column
// x-positions align within tolerance. Requires Config.GridMinElements cells
// in total.
func (e *Engine) detectGrid(children []*Node) *gridCandidate {
	if len(children) < e.cfg.GridMinElements {
		return nil
	}

	rows := e.gridRows(children)
	if len(rows) < 2 {
		return nil
	}

	// Find the longest run of consecutive equal-cardinality rows whose
	// columns align.
	var best *gridCandidate
	for start := 0; start < len(rows)-1; start++ {
		run := [][]int{rows[start]}
		aligned, checks := 0, 0
		for next := start + 1; next < len(rows); next++ {
			prev := run[len(run)-1]
			if len(rows[next]) != len(prev) {
				break
			}
			pairAligned := 0
			for col := range prev {
				a := children[prev[col]].Rect.X
				b := children[rows[next][col]].Rect.X
				if math.Abs(a-b) <= e.cfg.GridColumnTolerance {
					pairAligned++
				}
			}
			aligned += pairAligned
			checks += len(prev)
			run = append(run, rows[next])
		}

		if len(run) < 2 || checks == 0 {
			continue
		}
		cells := 0
		for _, r := range run {
			cells += len(r)
		}
		if cells < e.cfg.GridMinElements {
			continue
		}
		confidence := float64(aligned) / float64(checks) * 3.0
		if confidence < e.cfg.GridConfidenceMin {
			continue
		}
		if best == nil || len(run) > len(best.rows) {
			best = &gridCandidate{rows: run, confidence: confidence}
		}
	}
	return best
}

// gridRows partitions children into rows by y-overlap. Each row's indexes
// are ordered left to right; rows are ordered top to bottom.
func (e *Engine) gridRows(children []*Node) [][]int {
	order := make([]int, len(children))
	for i := range children {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return children[order[a]].Rect.Y < children[order[b]].Rect.Y
	})

	var rows [][]int
	var spans []capture.Rect // running y-span per row
	for _, idx := range order {
		r := children[idx].Rect
		placed := false
		for ri := range rows {
			if spans[ri].OverlapsVertically(r) {
				rows[ri] = append(rows[ri], idx)
				spans[ri] = spans[ri].Union(r)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []int{idx})
			spans = append(spans, r)
		}
	}

	for _, row := range rows {
		sort.SliceStable(row, func(a, b int) bool {
			return children[row[a]].Rect.X < children[row[b]].Rect.X
		})
	}
	return rows
}

// replaceWithGrid removes the grid's members from parent and inserts one
// synthetic grid container holding a synthetic stack frame per row. Returns
// the number of synthetic nodes created.
func (e *Engine) replaceWithGrid(parent *Node, grid *gridCandidate) int {
	frames := make([]*Node, len(grid.rows))
	var memberIdx []int
	for i, row := range grid.rows {
		members := pick(parent.Children, row)
		frame := e.newSyntheticNode(TypeStack, members)
		frame.AutoLayout = e.stackLayout(members, DirectionHorizontal)
		frames[i] = frame
		memberIdx = append(memberIdx, row...)
	}

	container := &Node{
		ID:           uuid.NewString(),
		InferredType: TypeGrid,
		Synthetic:    true,
		Rect:         capture.UnionOf(childRects(frames)),
		Children:     frames,
	}

	// Row spacing from the vertical gaps between row frames.
	gaps := make([]float64, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		if gap := frames[i].Rect.Y - frames[i-1].Rect.Bottom(); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	container.AutoLayout = &AutoLayout{
		Direction:    DirectionVertical,
		PrimaryAlign: AlignMin,
		CounterAlign: AlignStretch,
		ItemSpacing:  median(gaps),
	}

	replaceChildren(parent, memberIdx, container)
	return len(frames) + 1
}

// =============================================================================
// Helpers
// =============================================================================

// newSyntheticNode manufactures a container around members. The container's
// rect is the members' bounding union.
func (e *Engine) newSyntheticNode(t NodeType, members []*Node) *Node {
	return &Node{
		ID:           uuid.NewString(),
		InferredType: t,
		Synthetic:    true,
		Rect:         capture.UnionOf(childRects(members)),
		Children:     members,
	}
}

// pick returns the children at the given indexes, in index order.
func pick(children []*Node, idx []int) []*Node {
	out := make([]*Node, len(idx))
	for i, j := range idx {
		out[i] = children[j]
	}
	return out
}

// replaceChildren removes the children at removed and inserts replacement at
// the position of the earliest removed index.
func replaceChildren(parent *Node, removed []int, replacement *Node) {
	drop := make(map[int]bool, len(removed))
	at := removed[0]
	for _, i := range removed {
		drop[i] = true
		if i < at {
			at = i
		}
	}

	out := make([]*Node, 0, len(parent.Children)-len(removed)+1)
	for i, c := range parent.Children {
		if i == at {
			out = append(out, replacement)
		}
		if drop[i] {
			continue
		}
		out = append(out, c)
	}
	parent.Children = out
}

// median returns the median of values, or 0 for an empty slice.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
