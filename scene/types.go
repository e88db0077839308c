package scene

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() (r, g, b, a float64) {
	return c.R, c.G, c.B, c.A
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward — matching output and layout
// space throughout the compositor core.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// NodeType distinguishes the kind of scene content a Node carries.
type NodeType uint8

const (
	NodeTypeSubtree   NodeType = iota // group node with no visual output of its own
	NodeTypeRect                      // solid-color rectangle (borders, preview boxes)
	NodeTypeNineSlice                 // nine-patch themed image (titlebar, border decoration)
	NodeTypeText                      // rendered text (window/workspace titles)
	NodeTypeSurface                   // opaque client surface buffer
)

// TextAlign controls horizontal text alignment within a Text node.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Buffer is the opaque handle a Surface node wraps. The compositor core
// never inspects or draws it; it only holds the reference so a real
// rendering backend can sample it once the node's position and size are
// set. Backed by *ebiten.Image.
type Buffer = *ebiten.Image

// NineSliceImage identifies a themed nine-patch source image plus its
// fixed-size insets (the part of the image that does not stretch).
type NineSliceImage struct {
	Image                    Buffer
	Left, Top, Right, Bottom float64
}
