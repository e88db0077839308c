package scene

// nodeIDCounter is a plain counter; no atomic, the compositor core runs
// on a single event-loop thread.
var nodeIDCounter uint64

func nextNodeID() uint64 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a positioned element of the scene tree. A single flat struct
// covers every node kind to avoid interface dispatch on the hot path.
type Node struct {
	// ID is a unique auto-assigned identifier (never zero for live nodes).
	ID uint64
	// Name is a human-readable label for debugging; not used for lookups.
	Name string
	// Type determines what kind of content this node carries.
	Type NodeType

	Parent   *Node
	children []*Node

	// X and Y are the local-space offset in pixels relative to Parent.
	X, Y float64
	// Width and Height are the node's outer size in pixels.
	Width, Height float64

	worldX, worldY float64
	positionDirty  bool

	// Enabled marks whether this node and its subtree are visible. A
	// disabled node keeps its place in the tree, and UpdateWorldPositions
	// still computes its world position.
	Enabled bool

	// ZIndex controls paint order among siblings. Higher values draw on
	// top. Use RaiseToTop/PlaceAbove/PlaceBelow to change ordering instead
	// of setting this directly where possible.
	ZIndex         int
	childrenSorted bool
	sortedChildren []*Node

	// Rect fields (NodeTypeRect)
	Color Color

	// NineSlice fields (NodeTypeNineSlice)
	NineSlice NineSliceImage

	// Text fields (NodeTypeText)
	Text      string
	TextColor Color
	TextAlign TextAlign

	// Surface fields (NodeTypeSurface)
	SurfaceBuffer Buffer

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Enabled = true
	n.Color = ColorWhite
	n.TextColor = ColorWhite
	n.positionDirty = true
	n.childrenSorted = true
}

// NewSubtree creates a group node with no visual content of its own — the
// scene-graph equivalent of a window's or column's owning subtree.
func NewSubtree(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeSubtree}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid-color rectangle node (borders, preview boxes).
func NewRect(name string, color Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Color: color}
	nodeDefaults(n)
	return n
}

// NewNineSlice creates a themed nine-patch node (titlebars, decoration).
func NewNineSlice(name string, img NineSliceImage) *Node {
	n := &Node{Name: name, Type: NodeTypeNineSlice, NineSlice: img}
	nodeDefaults(n)
	return n
}

// NewText creates a text node (window and workspace titles).
func NewText(name, content string) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: content}
	nodeDefaults(n)
	return n
}

// NewSurfaceBuffer creates a node wrapping an opaque client surface buffer.
// The compositor core positions and sizes this node; it never samples buf.
func NewSurfaceBuffer(name string, buf Buffer) *Node {
	n := &Node{Name: name, Type: NodeTypeSurface, SurfaceBuffer: buf}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, reparenting it if it
// already has a parent. Panics if child is nil or would create a cycle.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// AddChildAt inserts child at the given index among this node's children.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("scene: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node. Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent. No-op if there is
// no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Reparent moves this node to a new parent, preserving its local offset.
// A nil newParent detaches the node (equivalent to RemoveFromParent).
func (n *Node) Reparent(newParent *Node) {
	if newParent == nil {
		n.RemoveFromParent()
		return
	}
	newParent.AddChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index. Panics if out of range.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Ordering ---

// RaiseToTop moves this node to the end of its parent's child list (the
// topmost paint position). No-op if detached or already last.
func (n *Node) RaiseToTop() {
	p := n.Parent
	if p == nil || len(p.children) == 0 || p.children[len(p.children)-1] == n {
		return
	}
	p.removeChildByPtr(n)
	p.children = append(p.children, n)
	p.childrenSorted = false
}

// PlaceAbove moves this node to sit immediately above sibling in paint
// order. Panics if n and sibling do not share a parent.
func (n *Node) PlaceAbove(sibling *Node) {
	n.placeRelative(sibling, 1)
}

// PlaceBelow moves this node to sit immediately below sibling in paint
// order. Panics if n and sibling do not share a parent.
func (n *Node) PlaceBelow(sibling *Node) {
	n.placeRelative(sibling, 0)
}

func (n *Node) placeRelative(sibling *Node, offset int) {
	if n.Parent == nil || sibling.Parent != n.Parent {
		panic("scene: placeRelative requires a shared parent")
	}
	p := n.Parent
	p.removeChildByPtr(n)
	idx := -1
	for i, c := range p.children {
		if c == sibling {
			idx = i
			break
		}
	}
	if idx < 0 {
		// sibling was n itself before removal; append as a fallback.
		p.children = append(p.children, n)
	} else {
		insertAt := idx + offset
		p.children = append(p.children, nil)
		copy(p.children[insertAt+1:], p.children[insertAt:])
		p.children[insertAt] = n
	}
	n.Parent = p
	p.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children unsorted
// so the next paint-order traversal re-sorts siblings.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Position & size ---

// SetPosition sets the node's local (X, Y) offset relative to its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.positionDirty = true
}

// SetSize sets the node's outer width and height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// SetEnabled sets whether this node and its subtree are visible.
func (n *Node) SetEnabled(enabled bool) {
	n.Enabled = enabled
}

// WorldPosition returns the node's last-computed world-space offset. Call
// [UpdateWorldPositions] after mutating the tree to refresh it.
func (n *Node) WorldPosition() (x, y float64) {
	return n.worldX, n.worldY
}

// --- Disposal ---

// Destroy removes this node from its parent and recursively disposes its
// descendants, clearing their buffers and releasing the subtree. Safe to
// call more than once.
func (n *Node) Destroy() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.SurfaceBuffer = nil
	n.NineSlice = NineSliceImage{}
}

// IsDisposed reports whether Destroy has been called on this node.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.positionDirty = true
}
