package meridian

import (
	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

// CursorShape is the cursor image the default op asks the backend to show
// when hovering a resize edge, a titlebar, or plain content.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorText
	CursorResizeN
	CursorResizeS
	CursorResizeE
	CursorResizeW
	CursorResizeNE
	CursorResizeNW
	CursorResizeSE
	CursorResizeSW
)

// HitResult is the outcome of hit-testing a seat-local pointer coordinate
// against the tree: which output it falls on, which layer surface or
// window (if any), and whether it landed on the window's client surface
// vs. its decoration.
type HitResult struct {
	Output             *Output
	Window             *Window
	OnSurface          bool
	SurfaceX, SurfaceY float64
	Region             inputcfg.Region

	Layer   LayerSurface
	OnLayer bool
}

// SeatHooks are the backend callbacks a Seat drives. A real Wayland
// backend implements these over wlr_seat/wlr_cursor; tests and this
// package's own unit tests supply no-op or recording stand-ins, keeping
// the seat/seatop logic itself free of any protocol dependency.
type SeatHooks struct {
	PointerEnter       func(window *Window, sx, sy float64)
	PointerMotion      func(sx, sy float64)
	PointerAxis        func(dx, dy float64)
	PointerClearFocus  func()
	SetCursorShape     func(shape CursorShape)
	KeyboardEnter      func(window *Window)
	KeyboardClearFocus func()
}

// Seat is a per-user aggregation of pointer state and a pluggable SeatOp.
// Starting a new op ends the previous one first.
type Seat struct {
	Root   *Root
	Config inputcfg.Config
	Hooks  SeatHooks

	op SeatOp

	PointerX, PointerY float64
	pressedButtons     map[inputcfg.MouseButton]bool
	mods               inputcfg.Modifier

	hoveredWindow *Window
	hoveredOutput *Output
}

// SeatOp is the pluggable interpreter for pointer/keyboard events a Seat
// delegates to. Every method receives the owning Seat so an op can reach
// Root/Config without holding its own copy.
type SeatOp interface {
	Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier)
	PointerMotion(s *Seat, x, y float64)
	PointerAxis(s *Seat, dx, dy float64, device string)
	Rebase(s *Seat)
	Unref(window *Window)
	End(s *Seat)
	AllowSetCursor() bool
}

// NewSeat constructs a Seat bound to root and cfg, starting in the default
// op.
func NewSeat(root *Root, cfg inputcfg.Config, hooks SeatHooks) *Seat {
	s := &Seat{
		Root:           root,
		Config:         cfg,
		Hooks:          hooks,
		pressedButtons: map[inputcfg.MouseButton]bool{},
	}
	s.op = &seatopDefault{}
	return s
}

// BeginOp ends the current op and installs next, calling Rebase so it can
// re-read current hover/pressed state immediately.
func (s *Seat) BeginOp(next SeatOp) {
	if s.op != nil {
		s.op.End(s)
	}
	s.op = next
	s.op.Rebase(s)
}

// BeginDefault returns to the default op.
func (s *Seat) BeginDefault() { s.BeginOp(&seatopDefault{}) }

// CurrentOp returns the seat's active SeatOp.
func (s *Seat) CurrentOp() SeatOp { return s.op }

// HandleButton dispatches a button press/release to the active op and
// tracks which buttons are currently held.
func (s *Seat) HandleButton(button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if pressed {
		s.pressedButtons[button] = true
	} else {
		delete(s.pressedButtons, button)
	}
	s.op.Button(s, button, pressed, mods)
}

// HandlePointerMotion forwards to the active op after updating PointerX/Y.
func (s *Seat) HandlePointerMotion(x, y float64) {
	s.PointerX, s.PointerY = x, y
	s.op.PointerMotion(s, x, y)
}

// HandlePointerAxis forwards an axis event to the active op.
func (s *Seat) HandlePointerAxis(dx, dy float64, device string) {
	s.op.PointerAxis(s, dx, dy, device)
}

// HandleModifiers records the keyboard modifier state, consulted when an
// axis event is matched against mouse bindings (axis events carry no
// modifiers of their own).
func (s *Seat) HandleModifiers(mods inputcfg.Modifier) {
	s.mods = mods
}

// IsButtonPressed reports whether button is currently held.
func (s *Seat) IsButtonPressed(button inputcfg.MouseButton) bool {
	return s.pressedButtons[button]
}

// Unref notifies the active op that window is being destroyed so any
// reference it holds can be dropped and the op end safely; a destroy cascade calls this on every seat.
func (s *Seat) Unref(window *Window) {
	s.op.Unref(window)
	if s.hoveredWindow == window {
		s.hoveredWindow = nil
	}
}

// HitTest resolves a root-local pointer coordinate to an output, layer
// surface, or window. Overlay and top layer surfaces are tested before
// windows, bottom and background after; floating windows topmost-first,
// then tiling columns, on the active workspace. A window hit also yields
// surface-local coordinates and the clicked region.
func (s *Seat) HitTest(x, y float64) HitResult {
	var result HitResult
	for _, o := range s.Root.Outputs() {
		g := o.GetGeometry()
		if x >= g.X && x <= g.X+g.Width && y >= g.Y && y <= g.Y+g.Height {
			result.Output = o
			break
		}
	}

	if result.Output != nil {
		if surf, ok := result.Output.layerSurfaceAt(x, y, LayerOverlay, LayerTop); ok {
			result.Layer = surf
			result.OnLayer = true
			return result
		}
	}

	ws := s.Root.GetActiveWorkspace()
	if ws == nil {
		return result
	}

	for i := len(ws.pending.Floating) - 1; i >= 0; i-- {
		w := ws.pending.Floating[i]
		if w.pending.Fullscreen {
			continue
		}
		if region, ok := windowRegionAt(w, x, y); ok {
			result.Window = w
			result.Region = region
			result.OnSurface = region == inputcfg.RegionContents
			if result.OnSurface {
				cb := w.pending.ContentBox
				result.SurfaceX, result.SurfaceY = x-cb.X, y-cb.Y
			}
			return result
		}
	}

	for _, c := range ws.pending.Columns {
		if result.Output != nil && c.pending.Output != result.Output {
			continue
		}
		for _, w := range c.pending.Children {
			if region, ok := windowRegionAt(w, x, y); ok {
				result.Window = w
				result.Region = region
				result.OnSurface = region == inputcfg.RegionContents
				if result.OnSurface {
					cb := w.pending.ContentBox
					result.SurfaceX, result.SurfaceY = x-cb.X, y-cb.Y
				}
				return result
			}
		}
	}

	if result.Output == nil {
		return result
	}
	if surf, ok := result.Output.layerSurfaceAt(x, y, LayerBottom, LayerBackground); ok {
		result.Layer = surf
		result.OnLayer = true
		return result
	}
	result.Region = inputcfg.RegionWorkspace
	return result
}

// windowRegionAt classifies (x, y) against window's outer/content boxes:
// titlebar, border, contents, or "miss" (ok=false) if outside the outer
// box entirely.
func windowRegionAt(w *Window, x, y float64) (inputcfg.Region, bool) {
	b := w.pending.Box
	if x < b.X || x > b.X+b.Width || y < b.Y || y > b.Y+b.Height {
		return 0, false
	}
	cb := w.pending.ContentBox
	if x >= cb.X && x <= cb.X+cb.Width && y >= cb.Y && y <= cb.Y+cb.Height {
		return inputcfg.RegionContents, true
	}
	if y < cb.Y && y >= b.Y {
		return inputcfg.RegionTitlebar, true
	}
	return inputcfg.RegionBorder, true
}

// edgeQuadrant classifies (x, y) within box into a resize-edge bitmask by
// an 8-region split: the outer thirds of each axis pick a single edge,
// the corners pick two.
func edgeQuadrant(b Box, x, y float64) view.Edge {
	var e view.Edge
	third := b.Width / 3
	switch {
	case x < b.X+third:
		e |= view.EdgeLeft
	case x > b.X+b.Width-third:
		e |= view.EdgeRight
	}
	thirdH := b.Height / 3
	switch {
	case y < b.Y+thirdH:
		e |= view.EdgeTop
	case y > b.Y+b.Height-thirdH:
		e |= view.EdgeBottom
	}
	return e
}
