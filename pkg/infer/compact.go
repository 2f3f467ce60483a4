package infer

import "encoding/json"

// CompactOptions bounds the size of an inferred tree for payload-limited
// consumers. A zero-valued field disables its trim.
type CompactOptions struct {
	// MaxDepth truncates the tree: children of nodes at this depth are
	// dropped. The root is depth 0.
	MaxDepth int

	// MaxMetaBytes drops any metadata value whose JSON encoding is larger.
	// Embedded asset payloads dominate capture size; structure never does.
	MaxMetaBytes int

	// DropMetaKeys removes metadata entries by name regardless of size.
	DropMetaKeys []string
}

// diagnosticMetaKeys are capture-side debugging payloads no consumer of
// the inferred tree reads.
var diagnosticMetaKeys = []string{
	"htmlMetadata",
	"debugInfo",
	"sourceSelector",
	"componentSignature",
	"contentHash",
	"cssVariables",
}

// StandardCompact returns the trim applied first to oversized payloads.
func StandardCompact() CompactOptions {
	return CompactOptions{
		MaxDepth:     10,
		MaxMetaBytes: 75 << 10,
		DropMetaKeys: diagnosticMetaKeys,
	}
}

// AggressiveCompact returns the trim for payloads that stay oversized
// after the standard pass.
func AggressiveCompact() CompactOptions {
	return CompactOptions{
		MaxDepth:     6,
		MaxMetaBytes: 25 << 10,
		DropMetaKeys: diagnosticMetaKeys,
	}
}

// CompactStats reports what one Compact call removed.
type CompactStats struct {
	// NodesDropped counts nodes cut off by the depth limit.
	NodesDropped int
	// MetaDropped counts removed metadata entries.
	MetaDropped int
	// Truncated counts subtrees whose children were cut at MaxDepth.
	Truncated int
}

// Compact trims the tree in place per opts and reports what was removed.
// Geometry and inferred structure within the depth limit are untouched, so
// a compacted tree stays a valid materializer input.
func Compact(root *Node, opts CompactOptions) CompactStats {
	var stats CompactStats
	compactNode(root, 0, opts, &stats)
	return stats
}

func compactNode(n *Node, depth int, opts CompactOptions, stats *CompactStats) {
	for _, key := range opts.DropMetaKeys {
		if _, ok := n.Meta[key]; ok {
			delete(n.Meta, key)
			stats.MetaDropped++
		}
	}
	if opts.MaxMetaBytes > 0 {
		for key, v := range n.Meta {
			if enc, err := json.Marshal(v); err == nil && len(enc) > opts.MaxMetaBytes {
				delete(n.Meta, key)
				stats.MetaDropped++
			}
		}
	}
	if len(n.Meta) == 0 {
		n.Meta = nil
	}

	if opts.MaxDepth > 0 && depth >= opts.MaxDepth && len(n.Children) > 0 {
		for _, c := range n.Children {
			stats.NodesDropped += c.Count()
		}
		n.Children = nil
		stats.Truncated++
		return
	}
	for _, c := range n.Children {
		compactNode(c, depth+1, opts, stats)
	}
}
