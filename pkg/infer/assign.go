package infer

import (
	"math"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// assignParents computes the parent decision for every node into an
// index-addressed arena: entry i holds the index of node i's chosen parent,
// or -1 when no candidate clears the confidence floor.
//
// Each node is scored against every other node as a candidate parent and
// the highest finite score at or above the floor wins. Exact ties keep the
// first-encountered candidate in input order, so assignment is
// deterministic for a fixed input ordering. Image-typed nodes with a known
// parent link keep it unconditionally.
//
// The raw decisions can form reference cycles (two equal rects contain each
// other within epsilon), so the arena is cycle-broken before tree building.
func (e *Engine) assignParents(nodes []*capture.RenderNode) []int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	parents := make([]int, len(nodes))
	for i, n := range nodes {
		parents[i] = -1

		if n.IsImage() && n.ParentID != "" {
			if p, ok := index[n.ParentID]; ok && p != i {
				parents[i] = p
				continue
			}
		}

		best := math.Inf(-1)
		for j, candidate := range nodes {
			if j == i {
				continue
			}
			s := e.scoreContainment(candidate, n)
			if s.Rejected() || s.Total < e.cfg.ConfidenceFloor {
				continue
			}
			if s.Total > best {
				best = s.Total
				parents[i] = j
			}
		}
	}

	breakParentCycles(nodes, parents)
	return parents
}

// breakParentCycles detaches one member of every reference cycle in the
// parent arena, guaranteeing the arena describes a forest. Within a cycle
// the largest-area member is detached (first in input order on ties): the
// biggest rect is the most plausible root of the group.
func breakParentCycles(nodes []*capture.RenderNode, parents []int) {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current chain
		black = 2 // fully resolved
	)
	color := make([]int, len(parents))

	for start := range parents {
		if color[start] != white {
			continue
		}

		// Walk the parent chain until resolved territory or a cycle.
		chain := make([]int, 0, 8)
		i := start
		for i != -1 && color[i] == white {
			color[i] = gray
			chain = append(chain, i)
			i = parents[i]
		}

		if i != -1 && color[i] == gray {
			// Found a cycle; collect it and detach its largest member.
			cycle := []int{i}
			for j := parents[i]; j != i; j = parents[j] {
				cycle = append(cycle, j)
			}
			detach := cycle[0]
			for _, j := range cycle {
				if nodes[j].Rect.Area() > nodes[detach].Rect.Area() ||
					(nodes[j].Rect.Area() == nodes[detach].Rect.Area() && j < detach) {
					detach = j
				}
			}
			parents[detach] = -1
		}

		for _, j := range chain {
			color[j] = black
		}
	}
}
