package infer

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteTreeJSON encodes the inferred tree and metrics as JSON and writes
// them to w. This is the shape downstream materializers consume: they walk
// root recursively, branching on inferredType, autoLayout and synthetic.
func WriteTreeJSON(result *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ReadTreeJSON decodes a tree previously written with [WriteTreeJSON].
func ReadTreeJSON(r io.Reader) (*Result, error) {
	var result Result
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if result.Root == nil {
		return nil, fmt.Errorf("decode: missing root")
	}
	return &result, nil
}
