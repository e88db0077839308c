package meridian

import (
	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

// seatopResizeFloating is the "resize-floating" SeatOp: tracks the
// edge mask being dragged and the window's outer geometry at grab time,
// adjusting outer geometry on pointer motion (clamped by the configured
// floating constraints) and deriving content geometry from it on every
// step.
type seatopResizeFloating struct {
	window         *Window
	edges          view.Edge
	startX, startY float64
	startBox       Box
}

// newSeatopResizeFloating grabs window's edges for a floating resize.
func newSeatopResizeFloating(s *Seat, w *Window, edges view.Edge) *seatopResizeFloating {
	w.SetResizing(true)
	return &seatopResizeFloating{
		window:   w,
		edges:    edges,
		startX:   s.PointerX,
		startY:   s.PointerY,
		startBox: w.pending.Box,
	}
}

func (op *seatopResizeFloating) Rebase(s *Seat) {}

func (op *seatopResizeFloating) AllowSetCursor() bool { return false }

func (op *seatopResizeFloating) Unref(window *Window) {
	if op.window == window {
		op.window = nil
	}
}

func (op *seatopResizeFloating) End(s *Seat) {
	if op.window != nil {
		op.window.SetResizing(false)
	}
}

func (op *seatopResizeFloating) PointerMotion(s *Seat, x, y float64) {
	if op.window == nil {
		return
	}
	dx := x - op.startX
	dy := y - op.startY
	start := op.startBox
	right := start.X + start.Width
	bottom := start.Y + start.Height

	left, top := start.X, start.Y
	width, height := start.Width, start.Height

	switch {
	case op.edges&view.EdgeLeft != 0:
		left = start.X + dx
		width = right - left
	case op.edges&view.EdgeRight != 0:
		width = start.Width + dx
	}
	switch {
	case op.edges&view.EdgeTop != 0:
		top = start.Y + dy
		height = bottom - top
	case op.edges&view.EdgeBottom != 0:
		height = start.Height + dy
	}

	cw, ch := s.Config.FloatingConstraints().Clamp(width, height)
	if op.edges&view.EdgeLeft != 0 && cw != width {
		left -= cw - width
	}
	if op.edges&view.EdgeTop != 0 && ch != height {
		top -= ch - height
	}

	op.window.pending.Box = Box{X: left, Y: top, Width: cw, Height: ch}
	op.window.Arrange()
	op.window.SetDirty()
}

func (op *seatopResizeFloating) PointerAxis(s *Seat, dx, dy float64, device string) {}

func (op *seatopResizeFloating) Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if pressed {
		return
	}
	if op.window != nil {
		op.window.SetResizing(false)
	}
	s.BeginDefault()
}
