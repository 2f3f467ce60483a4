// Package viz renders inferred hierarchy trees as Graphviz diagrams.
//
// The diagrams are a debugging aid: each tree node becomes a box labeled
// with its name, inferred type and geometry, and parent→child edges show
// the inferred structure. Synthetic containers render dashed; sections,
// stacks, grids and overlays get distinct fills so structural decisions are
// visible at a glance.
package viz
