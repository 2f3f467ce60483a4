package infer

// separateOverlays reorders every node's children so out-of-flow children
// paint last: non-overlay children first, overlay children after, each
// group keeping its relative order. Overlay children are tagged
// [TypeOverlay]. This approximates correct paint order without altering
// flow geometry.
func (e *Engine) separateOverlays(n *Node) {
	if len(n.Children) > 0 {
		flow := make([]*Node, 0, len(n.Children))
		var overlays []*Node
		for _, c := range n.Children {
			if c.Style.Overlay {
				c.InferredType = TypeOverlay
				overlays = append(overlays, c)
			} else {
				flow = append(flow, c)
			}
		}
		n.Children = append(flow, overlays...)
	}

	for _, c := range n.Children {
		e.separateOverlays(c)
	}
}
