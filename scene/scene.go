package scene

// Scene owns the root of a positioned node tree. The compositor core does
// not create a Scene; it builds its own subtrees with NewSubtree.
type Scene struct {
	Name string
	Root *Node
}

// New creates a Scene with a fresh, empty root subtree node.
func New(name string) *Scene {
	return &Scene{
		Name: name,
		Root: NewSubtree(name + ".root"),
	}
}

// Update recomputes world positions across the whole tree. Call it after a
// batch of position/size writes.
func (s *Scene) Update() {
	UpdateWorldPositions(s.Root)
}

// Destroy disposes the scene's entire node tree.
func (s *Scene) Destroy() {
	s.Root.Destroy()
}
