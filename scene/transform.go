package scene

// UpdateWorldPositions recomputes world-space offsets for root and its
// entire subtree, so nested subtrees (a window's titlebar/border/content
// children) resolve to absolute coordinates for the rendering backend.
// Call it after writing positions/sizes onto the nodes; the compositor core
// itself does not call it.
//
// Uses an upward-only dirty model: only a subtree's root need be marked
// positionDirty (see markSubtreeDirty); a parent recomputed this pass
// forces every descendant to recompute too, since their world position
// depends on it.
func UpdateWorldPositions(root *Node) {
	updateWorldPosition(root, 0, 0, false)
}

func updateWorldPosition(n *Node, parentX, parentY float64, parentRecomputed bool) {
	recompute := n.positionDirty || parentRecomputed
	if recompute {
		n.worldX = parentX + n.X
		n.worldY = parentY + n.Y
		n.positionDirty = false
	}
	for _, child := range n.children {
		updateWorldPosition(child, n.worldX, n.worldY, recompute)
	}
}

// WorldToLocal converts a world-space point into this node's local
// coordinate space, using its last-computed world position.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return wx - n.worldX, wy - n.worldY
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.worldX + lx, n.worldY + ly
}
