package scene

import "testing"

func TestUpdateWorldPositionsSingleNode(t *testing.T) {
	root := NewSubtree("root")
	root.SetPosition(5, 7)

	UpdateWorldPositions(root)

	wx, wy := root.WorldPosition()
	if wx != 5 || wy != 7 {
		t.Fatalf("expected world position (5, 7), got (%v, %v)", wx, wy)
	}
}

func TestUpdateWorldPositionsNestedOffsets(t *testing.T) {
	root := NewSubtree("root")
	root.SetPosition(10, 10)

	mid := NewSubtree("mid")
	root.AddChild(mid)
	mid.SetPosition(5, 5)

	leaf := NewRect("leaf", ColorWhite)
	mid.AddChild(leaf)
	leaf.SetPosition(1, 1)

	UpdateWorldPositions(root)

	wx, wy := leaf.WorldPosition()
	if wx != 16 || wy != 16 {
		t.Fatalf("expected leaf world position (16, 16), got (%v, %v)", wx, wy)
	}
}

func TestUpdateWorldPositionsParentMoveCascades(t *testing.T) {
	root := NewSubtree("root")
	child := NewRect("child", ColorWhite)
	root.AddChild(child)
	child.SetPosition(3, 3)

	UpdateWorldPositions(root)

	root.SetPosition(100, 100)
	UpdateWorldPositions(root)

	wx, wy := child.WorldPosition()
	if wx != 103 || wy != 103 {
		t.Fatalf("expected child world position to follow parent move, got (%v, %v)", wx, wy)
	}
}

func TestUpdateWorldPositionsUnchangedSubtreeSkipsRecompute(t *testing.T) {
	root := NewSubtree("root")
	child := NewRect("child", ColorWhite)
	root.AddChild(child)
	child.SetPosition(3, 3)
	UpdateWorldPositions(root)

	// Move a sibling subtree only; child's own cached world position must
	// be unaffected since neither it nor its ancestors were marked dirty.
	sibling := NewRect("sibling", ColorWhite)
	root.AddChild(sibling)
	sibling.SetPosition(50, 50)
	UpdateWorldPositions(root)

	wx, wy := child.WorldPosition()
	if wx != 3 || wy != 3 {
		t.Fatalf("expected child world position unchanged at (3, 3), got (%v, %v)", wx, wy)
	}
}

func TestWorldToLocalAndBack(t *testing.T) {
	root := NewSubtree("root")
	child := NewRect("child", ColorWhite)
	root.AddChild(child)
	child.SetPosition(20, 30)
	UpdateWorldPositions(root)

	lx, ly := child.WorldToLocal(25, 38)
	if lx != 5 || ly != 8 {
		t.Fatalf("expected local (5, 8), got (%v, %v)", lx, ly)
	}

	wx, wy := child.LocalToWorld(lx, ly)
	if wx != 25 || wy != 38 {
		t.Fatalf("expected round-trip back to (25, 38), got (%v, %v)", wx, wy)
	}
}
