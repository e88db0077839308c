// Package animate provides short, optional tweened transitions for floating
// window move/resize operations. The tree model itself is instantaneous —
// a transaction's apply phase writes final positions and sizes directly —
// but a compositor frontend may want the floating window to glide to its
// new geometry rather than jump. TweenGroup is that glide, driven frame by
// frame from the frontend's own render loop; nothing in the core depends
// on it.
package animate

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/meridianwm/meridian/scene"
)

// TweenGroup animates up to 4 float64 values toward a target and applies
// them to a scene.Node each frame via SetPosition/SetSize/Color. Create one
// via the convenience constructors (TweenPosition, TweenSize, TweenColor,
// TweenGeometry) and call Update(dt) once per frame. If the target node is
// disposed, the group stops immediately and further writes are skipped.
//
// There is no global animation manager — callers own the TweenGroup and
// call Update themselves, exactly as the node tree expects its owner to
// drive position/size changes explicitly.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	target *scene.Node
	apply  func(vals [4]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the interpolated
// values to the target node. If the target has been disposed, Done is set
// and no further writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.apply != nil {
		g.apply(vals)
	}
}

// TweenPosition animates node's (X, Y) offset to (toX, toY).
func TweenPosition(node *scene.Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.apply = func(vals [4]float64) { node.SetPosition(vals[0], vals[1]) }
	return g
}

// TweenSize animates node's outer (Width, Height) to (toW, toH).
func TweenSize(node *scene.Node, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(node.Height), float32(toH), duration, fn)
	g.apply = func(vals [4]float64) { node.SetSize(vals[0], vals[1]) }
	return g
}

// TweenGeometry animates node's position and size together — the shape
// used for a floating window's combined move/resize transition, so the
// frame (x, y) and (width, height) never visibly desync mid-animation.
func TweenGeometry(node *scene.Node, to scene.Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Width), float32(to.Width), duration, fn)
	g.tweens[3] = gween.New(float32(node.Height), float32(to.Height), duration, fn)
	g.apply = func(vals [4]float64) {
		node.SetPosition(vals[0], vals[1])
		node.SetSize(vals[2], vals[3])
	}
	return g
}

// TweenColor animates node.Color to the target color — used for the
// urgent-workspace flash and focus-change highlight on decoration nodes.
func TweenColor(node *scene.Node, to scene.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	from := node.Color
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(vals [4]float64) {
		node.Color = scene.Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}
	}
	return g
}
