// Package capture defines the flat input model for hierarchy inference.
//
// A capture is an ordered list of [RenderNode] values extracted from a
// rendered document by an upstream component: axis-aligned rectangles with a
// small set of paint and layout style attributes. The capture carries no
// reliable nesting information - parent links, where present, are hints that
// the inference engine resets and recomputes.
//
// # Coordinate Space
//
// All geometry is in one consistent pixel space with a top-left origin and
// no rotation. Upstream extraction is expected to have flattened any simple
// 2-D transforms before producing the capture.
//
// # Serialization
//
// Captures round-trip through JSON via [ReadJSON] and [WriteJSON]:
//
//	{
//	  "nodes": [
//	    {"id": "n1", "type": "div", "rect": {"x": 0, "y": 0, "width": 800, "height": 600}},
//	    {"id": "n2", "type": "img", "rect": {"x": 10, "y": 10, "width": 64, "height": 64}}
//	  ]
//	}
package capture
