package capture

// Metadata stores arbitrary key-value pairs attached to a node by the
// upstream extractor. The inference engine forwards metadata to its output
// untouched and never inspects it.
type Metadata map[string]any

// Image-like element tags. Nodes with one of these types keep any known
// parent link through inference: tightly-cropped media is easily
// mis-parented by geometry alone.
var imageTypes = map[string]bool{
	"img":     true,
	"image":   true,
	"svg":     true,
	"picture": true,
	"video":   true,
	"canvas":  true,
}

// RenderNode is one flat element of a capture. Nodes are exclusively owned
// by a single inference run; the engine treats ParentID as a hint and
// recomputes all structure.
type RenderNode struct {
	// ID uniquely identifies the node within the capture.
	ID string `json:"id"`

	// Type is the original element tag ("div", "img", "text", ...).
	Type string `json:"type,omitempty"`

	// Name is an optional human-readable label.
	Name string `json:"name,omitempty"`

	Rect  Rect  `json:"rect"`
	Style Style `json:"style,omitempty"`

	// ParentID is the extractor's notion of the node's parent, if any.
	// Reset and recomputed by inference, except for image-typed nodes.
	ParentID string `json:"parentId,omitempty"`

	// Meta is an opaque payload forwarded to the inferred tree.
	Meta Metadata `json:"meta,omitempty"`
}

// IsImage reports whether the node is image-like content.
func (n *RenderNode) IsImage() bool {
	return imageTypes[n.Type]
}

// IsOverlay reports whether the node is positioned out of normal flow.
func (n *RenderNode) IsOverlay() bool {
	return n.Style.Overlay
}
