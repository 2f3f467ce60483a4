package capture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type document struct {
	Nodes []*RenderNode `json:"nodes"`
}

// ReadJSON decodes a capture document from r.
//
// The input must be a JSON object with a "nodes" array. Each node requires a
// non-empty "id"; duplicate IDs and parent references to unknown IDs are
// rejected. Node order is preserved - inference is order-sensitive on exact
// score ties, so captures are treated as ordered documents.
//
// The returned slice is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]*RenderNode, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]bool, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n == nil || n.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("node %s: duplicate id", n.ID)
		}
		seen[n.ID] = true
	}
	for _, n := range doc.Nodes {
		if n.ParentID != "" && !seen[n.ParentID] {
			return nil, fmt.Errorf("node %s: unknown parent %s", n.ID, n.ParentID)
		}
	}

	return doc.Nodes, nil
}

// ReadFile reads a capture document from path, or from stdin when path
// is "-".
func ReadFile(path string) ([]*RenderNode, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nodes, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

// WriteJSON encodes nodes as a capture document and writes it to w.
// Output from WriteJSON can be re-imported with [ReadJSON].
func WriteJSON(nodes []*RenderNode, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Nodes: nodes})
}
