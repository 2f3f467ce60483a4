package infer

import (
	"sort"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// WrapperCandidate is a diagnostic entry for a node that looks like a
// wrapper (children's union nearly fills it, no responsibilities) but
// survived elimination. The list helps tune thresholds against real
// captures.
type WrapperCandidate struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Ratio float64 `json:"ratio"`
}

// Metrics aggregates counters for one inference run. Computed once during
// finalization; every run starts from fresh state.
type Metrics struct {
	// NodesBefore and NodesAfter count input nodes and output tree nodes.
	NodesBefore int `json:"nodesBefore"`
	NodesAfter  int `json:"nodesAfter"`

	// WrappersEliminated counts containers spliced out as redundant.
	WrappersEliminated int `json:"wrappersEliminated"`

	// OrphanRate is the root's direct-child count over the total node
	// count; a high rate means containment found little structure.
	OrphanRate float64 `json:"orphanRate"`

	MaxDepth int     `json:"maxDepth"`
	AvgDepth float64 `json:"avgDepth"`

	// AutoLayoutCoverage is the fraction of nodes carrying auto-layout
	// metadata.
	AutoLayoutCoverage float64 `json:"autoLayoutCoverage"`

	OverlayCount    int `json:"overlayCount"`
	SyntheticFrames int `json:"syntheticFrames"`

	// WrapperCandidates lists up to Config.MaxWrapperCandidates diagnostic
	// entries sorted by ratio, descending.
	WrapperCandidates []WrapperCandidate `json:"wrapperCandidates,omitempty"`
}

// computeMetrics walks the finished tree and fills in every counter.
func (e *Engine) computeMetrics(root *Node, nodesBefore, eliminated int) Metrics {
	m := Metrics{
		NodesBefore:        nodesBefore,
		WrappersEliminated: eliminated,
	}

	total := 0
	depthSum := 0
	withLayout := 0

	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		total++
		depthSum += depth
		if depth > m.MaxDepth {
			m.MaxDepth = depth
		}
		if n.AutoLayout != nil {
			withLayout++
		}
		if n.InferredType == TypeOverlay {
			m.OverlayCount++
		}
		if n.Synthetic {
			m.SyntheticFrames++
		}
		if c := e.wrapperCandidate(n, root); c != nil {
			m.WrapperCandidates = append(m.WrapperCandidates, *c)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)

	m.NodesAfter = total
	m.OrphanRate = float64(len(root.Children)) / float64(total)
	m.AvgDepth = float64(depthSum) / float64(total)
	m.AutoLayoutCoverage = float64(withLayout) / float64(total)

	sort.SliceStable(m.WrapperCandidates, func(a, b int) bool {
		return m.WrapperCandidates[a].Ratio > m.WrapperCandidates[b].Ratio
	})
	if len(m.WrapperCandidates) > e.cfg.MaxWrapperCandidates {
		m.WrapperCandidates = m.WrapperCandidates[:e.cfg.MaxWrapperCandidates]
	}

	return m
}

// wrapperCandidate reports n as a diagnostic wrapper candidate when its
// children's union nearly fills it, it carries no responsibilities, and it
// was not manufactured by the engine.
func (e *Engine) wrapperCandidate(n, root *Node) *WrapperCandidate {
	if n == root || n.Synthetic || len(n.Children) == 0 {
		return nil
	}
	area := n.Rect.Area()
	if area == 0 {
		return nil
	}
	ratio := capture.UnionOf(childRects(n.Children)).Area() / area
	if ratio <= e.cfg.CandidateRatioMin {
		return nil
	}
	if hasResponsibilities(n) {
		return nil
	}
	return &WrapperCandidate{ID: n.ID, Name: n.Name, Ratio: ratio}
}
