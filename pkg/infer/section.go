package infer

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/reframe-dev/reframe/pkg/capture"
)

// sectionize partitions the root's direct children into top-level named
// bands separated by large vertical gaps, and wraps each band in a
// synthetic section node. Runs once, only on the root. A single resulting
// band leaves the root unmodified - no trivial wrapping.
//
// Returns the number of sections created.
func (e *Engine) sectionize(root *Node) int {
	if len(root.Children) < 2 {
		return 0
	}

	children := append([]*Node(nil), root.Children...)
	sort.SliceStable(children, func(a, b int) bool {
		return children[a].Rect.Y < children[b].Rect.Y
	})

	// Walk consecutively; a gap above the threshold starts a new band.
	bands := [][]*Node{{children[0]}}
	bottom := children[0].Rect.Bottom()
	for _, c := range children[1:] {
		if c.Rect.Y-bottom > e.cfg.SectionGap {
			bands = append(bands, nil)
		}
		bands[len(bands)-1] = append(bands[len(bands)-1], c)
		if b := c.Rect.Bottom(); b > bottom {
			bottom = b
		}
	}

	if len(bands) < 2 {
		return 0
	}

	sections := make([]*Node, len(bands))
	for i, band := range bands {
		sections[i] = &Node{
			ID:           uuid.NewString(),
			Name:         e.sectionName(bands, i),
			InferredType: TypeSection,
			Synthetic:    true,
			Rect:         capture.UnionOf(childRects(band)),
			Children:     band,
		}
	}
	root.Children = sections
	return len(sections)
}

// sectionName names band i by position heuristics: the first band starting
// near the top is the header, the first tall band is the hero, a short last
// band is the footer, and everything else is numbered.
func (e *Engine) sectionName(bands [][]*Node, i int) string {
	rect := capture.UnionOf(childRects(bands[i]))

	if rect.Y < e.cfg.HeaderMaxTop && i == firstBandWhere(bands, func(r capture.Rect) bool {
		return r.Y < e.cfg.HeaderMaxTop
	}) {
		return "Header"
	}
	if rect.Height > e.cfg.HeroMinHeight && i == firstBandWhere(bands, func(r capture.Rect) bool {
		return r.Height > e.cfg.HeroMinHeight
	}) {
		return "Hero"
	}
	if i == len(bands)-1 && rect.Height < e.cfg.FooterMaxHeight {
		return "Footer"
	}
	return fmt.Sprintf("Section %d", i+1)
}

// firstBandWhere returns the index of the first band whose union satisfies
// pred, or -1.
func firstBandWhere(bands [][]*Node, pred func(capture.Rect) bool) int {
	for i, band := range bands {
		if pred(capture.UnionOf(childRects(band))) {
			return i
		}
	}
	return -1
}
