package infer

import (
	"github.com/reframe-dev/reframe/pkg/capture"
	"github.com/reframe-dev/reframe/pkg/errors"
)

// NodeType classifies what an inferred node represents in the output tree.
type NodeType string

// Inferred node types.
const (
	// TypeContent is a leaf-like element carrying its own visual content.
	TypeContent NodeType = "content"
	// TypeContainer is a generic grouping element.
	TypeContainer NodeType = "container"
	// TypeSection is a top-level band of the document.
	TypeSection NodeType = "section"
	// TypeStack is a single-direction flow container.
	TypeStack NodeType = "stack"
	// TypeGrid is a two-dimensional arrangement of aligned rows.
	TypeGrid NodeType = "grid"
	// TypeOverlay is an out-of-flow element painting above flow content.
	TypeOverlay NodeType = "overlay"
)

// Flow directions for auto-layout containers.
const (
	DirectionVertical   = "vertical"
	DirectionHorizontal = "horizontal"
)

// Alignment defaults for synthesized auto-layout.
const (
	AlignMin     = "MIN"
	AlignStretch = "STRETCH"
)

// Insets describes padding between a container's rect and its content box.
type Insets struct {
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
}

// AutoLayout describes the flow metadata attached to stack and grid nodes.
// Downstream materializers map it onto native auto-layout objects.
type AutoLayout struct {
	Direction    string  `json:"direction"`
	PrimaryAlign string  `json:"primaryAlign"`
	CounterAlign string  `json:"counterAlign"`
	ItemSpacing  float64 `json:"itemSpacing"`
	Padding      Insets  `json:"padding"`
}

// Node is one element of the inferred tree. A node owns its children
// exclusively; parents are never referenced from children, so the tree has
// no cycles and can be serialized directly.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Type is the original element tag from the capture.
	Type string `json:"type,omitempty"`
	// InferredType is the engine's structural classification.
	InferredType NodeType `json:"inferredType"`

	Rect  capture.Rect  `json:"rect"`
	Style capture.Style `json:"style,omitempty"`

	// AutoLayout is set on stacks, grids and retyped containers.
	AutoLayout *AutoLayout `json:"autoLayout,omitempty"`

	// Synthetic marks containers manufactured by grouping or sectionizing,
	// with no counterpart in the capture.
	Synthetic bool `json:"synthetic,omitempty"`

	// Meta is the opaque payload carried over from the capture.
	Meta capture.Metadata `json:"meta,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// IsImage reports whether the node's original tag is image-like content.
func (n *Node) IsImage() bool {
	return (&capture.RenderNode{Type: n.Type}).IsImage()
}

// Walk visits n and every descendant depth-first, parents before children.
// A nil node or nil children are tolerated so partially-built intermediate
// states can be traversed.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// childRects returns the rects of the node's children.
func childRects(children []*Node) []capture.Rect {
	rects := make([]capture.Rect, len(children))
	for i, c := range children {
		rects[i] = c.Rect
	}
	return rects
}

// buildTree materializes the owned output tree from the flat capture and the
// parent arena produced by assignParents. parents[i] is the index of node
// i's parent, or -1 for parentless nodes.
//
// The parentless node with the largest area becomes the root; any other
// parentless node is attached to the root directly, so every non-root node
// ends up with exactly one parent. A non-empty capture in which every node
// received a parent has no root and aborts the run - that state is
// unreachable through assignParents (a node never scores against itself)
// and is retained as a contract guard.
func buildTree(nodes []*capture.RenderNode, parents []int) (*Node, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty capture")
	}

	rootIdx := -1
	for i, p := range parents {
		if p != -1 {
			continue
		}
		if rootIdx == -1 || nodes[i].Rect.Area() > nodes[rootIdx].Rect.Area() {
			rootIdx = i
		}
	}
	if rootIdx == -1 {
		return nil, errors.New(errors.ErrCodeMissingRoot, "no root node found")
	}

	out := make([]*Node, len(nodes))
	for i, rn := range nodes {
		out[i] = &Node{
			ID:           rn.ID,
			Name:         rn.Name,
			Type:         rn.Type,
			InferredType: TypeContent,
			Rect:         rn.Rect,
			Style:        rn.Style,
			Meta:         rn.Meta,
		}
	}

	// Attach children in input order; remaining orphans go to the root.
	for i, p := range parents {
		if i == rootIdx {
			continue
		}
		if p == -1 {
			p = rootIdx
		}
		out[p].Children = append(out[p].Children, out[i])
	}

	return out[rootIdx], nil
}
