// Package scene implements the positioned node tree that the compositor
// core treats as an opaque rendering sink.
// The core never draws; it only creates nodes with the typed factories
// ([NewSubtree], [NewRect], [NewNineSlice], [NewText], [NewSurfaceBuffer]),
// positions and sizes them, and reparents or destroys them as the tree
// model's commit/apply/after_apply phases dictate.
//
// A [Node] carries a local (X, Y) offset relative to its parent; call
// [UpdateWorldPositions] after a batch of mutations to refresh the cached
// world-space coordinates used for layout math on nested subtrees (a
// window's titlebar, border, and content nodes are positioned relative to
// the window's own subtree root).
//
// Rendering itself — batching, text shaping, shader filters — is not part
// of the contract the compositor core needs; a real rendering backend
// consumes [Node] and its [Buffer]/[NineSliceImage] handles on its own.
package scene
