// Package infer converts a flat capture of geometrically described elements
// into a nested semantic tree suitable for reconstruction as native design
// objects.
//
// The engine is a sequential pipeline of confidence-thresholded passes over
// a mutable tree:
//
//  1. Parent assignment: pairwise containment scoring picks the best parent
//     for every node (two-phase: decisions land in an index arena first).
//  2. Tree build: the flat parent decisions become one owned tree.
//  3. Wrapper elimination: structurally redundant containers are spliced out.
//  4. Sibling grouping: aligned stacks and grids become synthetic containers.
//  5. Overlay separation: out-of-flow children are reordered to paint last.
//  6. Sectionizing: the root's children are split into named bands.
//  7. Auto-layout inference: containers whose full child set forms one stack
//     are retyped in place.
//  8. Finalize: stable visual ordering, name fallback, aggregate metrics.
//
// Every heuristic decision fails soft - a wrong or missed inference yields a
// less-ideal tree, never an error. The single hard failure is a capture in
// which no root can be located ([errors.ErrCodeMissingRoot]).
//
// # Usage
//
//	eng := infer.New(infer.WithLogger(logger))
//	result, err := eng.Infer(nodes)
//	if err != nil {
//	    return err
//	}
//	walk(result.Root)
//	fmt.Println(result.Metrics.NodesAfter)
//
// A run is fully synchronous and owns its node graph exclusively; create one
// Engine per configuration and call Infer once per capture.
package infer
