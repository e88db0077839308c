package meridian

import (
	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

// seatopDefault is the seat's resting state: it hit-tests pointer motion
// to drive focus-follows-mouse and cursor shape, and dispatches button
// presses through the priority-ordered rules.
type seatopDefault struct{}

func (op *seatopDefault) Rebase(s *Seat) {}

func (op *seatopDefault) End(s *Seat) {}

func (op *seatopDefault) Unref(window *Window) {}

func (op *seatopDefault) AllowSetCursor() bool { return true }

func (op *seatopDefault) PointerMotion(s *Seat, x, y float64) {
	hit := s.HitTest(x, y)
	op.applyFocusFollowsMouse(s, hit)

	if hit.OnSurface {
		if s.Hooks.PointerEnter != nil {
			s.Hooks.PointerEnter(hit.Window, hit.SurfaceX, hit.SurfaceY)
		}
		if s.Hooks.PointerMotion != nil {
			s.Hooks.PointerMotion(hit.SurfaceX, hit.SurfaceY)
		}
	} else {
		op.updateCursor(s, hit)
		if s.Hooks.PointerClearFocus != nil {
			s.Hooks.PointerClearFocus()
		}
	}
	s.hoveredWindow = hit.Window
	s.hoveredOutput = hit.Output
}

// applyFocusFollowsMouse implements the three priority rules: a layer
// surface or workspace gap switches the active output, window hover
// moves focus.
func (op *seatopDefault) applyFocusFollowsMouse(s *Seat, hit HitResult) {
	mode := s.Config.FocusFollowsMouse()

	if hit.OnLayer || hit.Window == nil {
		if hit.Output != nil && s.Root.GetActiveOutput() != hit.Output {
			s.Root.SetActiveOutput(hit.Output)
		}
		return
	}

	if mode == inputcfg.FocusFollowsMouseNo {
		return
	}
	if !hit.Window.isVisible() {
		return
	}
	changed := s.hoveredWindow != hit.Window
	if changed || mode == inputcfg.FocusFollowsMouseAlways {
		ws := hit.Window.pending.Workspace
		if ws != nil {
			ws.SetActiveWindow(hit.Window)
		}
		s.Root.RequestFocus(FocusTarget{Window: hit.Window})
	}
}

func (op *seatopDefault) updateCursor(s *Seat, hit HitResult) {
	if s.Hooks.SetCursorShape == nil {
		return
	}
	if hit.Window == nil {
		s.Hooks.SetCursorShape(CursorDefault)
		return
	}
	switch hit.Region {
	case inputcfg.RegionTitlebar:
		s.Hooks.SetCursorShape(CursorDefault)
	case inputcfg.RegionBorder:
		s.Hooks.SetCursorShape(cursorForEdge(edgeQuadrant(hit.Window.pending.Box, s.PointerX, s.PointerY)))
	default:
		s.Hooks.SetCursorShape(CursorDefault)
	}
}

func cursorForEdge(e view.Edge) CursorShape {
	switch e {
	case view.EdgeTop:
		return CursorResizeN
	case view.EdgeBottom:
		return CursorResizeS
	case view.EdgeLeft:
		return CursorResizeW
	case view.EdgeRight:
		return CursorResizeE
	case view.EdgeTop | view.EdgeLeft:
		return CursorResizeNW
	case view.EdgeTop | view.EdgeRight:
		return CursorResizeNE
	case view.EdgeBottom | view.EdgeLeft:
		return CursorResizeSW
	case view.EdgeBottom | view.EdgeRight:
		return CursorResizeSE
	default:
		return CursorDefault
	}
}

func (op *seatopDefault) Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if !pressed {
		return
	}
	hit := s.HitTest(s.PointerX, s.PointerY)

	// 1. Mouse bindings bound to (modifiers, button, region) run first.
	for _, b := range s.Config.MouseBindings() {
		if b.Modifiers == mods && b.Button == button && b.Region == hit.Region {
			return
		}
	}

	// 2. Empty workspace click clears window focus.
	if hit.Window == nil && hit.Region == inputcfg.RegionWorkspace {
		s.Root.RequestFocus(FocusTarget{})
		return
	}

	// 3. Layer surface click routes focus to the layer if it accepts
	// keyboard input.
	if hit.OnLayer {
		if hit.Layer.KeyboardInteractive {
			s.Root.RequestFocus(FocusTarget{Layer: hit.Layer})
		}
		return
	}
	if hit.Window == nil {
		return
	}
	w := hit.Window

	floatingMod := s.Config.FloatingModifier()
	modHeld := floatingMod != 0 && mods&floatingMod == floatingMod
	inverse := s.Config.FloatingModifierInverse()
	moveButton, resizeButton := inputcfg.ButtonLeft, inputcfg.ButtonRight
	if inverse {
		moveButton, resizeButton = resizeButton, moveButton
	}

	// 4. Border click on a tiled, non-floating window with the left
	// button starts a tiling resize.
	if hit.Region == inputcfg.RegionBorder && !w.IsFloating() && button == inputcfg.ButtonLeft {
		s.BeginOp(newSeatopResizeTiling(s, w, edgeQuadrant(w.pending.Box, s.PointerX, s.PointerY)))
		return
	}

	// 5. Mod+resize-button starts a tiling resize with the edge derived
	// from cursor quadrant.
	if modHeld && button == resizeButton && !w.IsFloating() {
		s.BeginOp(newSeatopResizeTiling(s, w, edgeQuadrant(w.pending.Box, s.PointerX, s.PointerY)))
		return
	}

	if w.IsFloating() && !w.pending.Fullscreen {
		// 6. Floating + mod or titlebar + move button starts a floating move.
		if (modHeld || hit.Region == inputcfg.RegionTitlebar) && button == moveButton {
			s.BeginOp(newSeatopMove(s, w))
			return
		}
		// 7. Floating + left click on border, or mod+resize-click, starts a
		// floating resize.
		if (hit.Region == inputcfg.RegionBorder && button == inputcfg.ButtonLeft) || (modHeld && button == resizeButton) {
			s.BeginOp(newSeatopResizeFloating(s, w, edgeQuadrant(w.pending.Box, s.PointerX, s.PointerY)))
			return
		}
	}

	// 8. (Mod or titlebar) + press on a non-floating, non-fullscreen window
	// starts a move (which, on tiling windows, previews a re-tile).
	if !w.pending.Fullscreen && (modHeld || hit.Region == inputcfg.RegionTitlebar) {
		s.BeginOp(newSeatopMove(s, w))
		return
	}

	// 9. Plain surface press forwards to seatop_down.
	if hit.OnSurface {
		s.BeginOp(newSeatopDown(s, w, button))
		return
	}

	// 10. All remaining paths: no op starts. The press is not forwarded to
	// the surface; SeatHooks has no button callback.
}

func (op *seatopDefault) PointerAxis(s *Seat, dx, dy float64, device string) {
	hit := s.HitTest(s.PointerX, s.PointerY)

	// Axis events dispatch mouse bindings through the wheel pseudo-buttons,
	// with region semantics matching Button. A matched binding suppresses
	// forwarding entirely.
	if button := wheelButtonFor(dx, dy); button != 0 {
		for _, b := range s.Config.MouseBindings() {
			if b.Modifiers == s.mods && b.Button == button && b.Region == hit.Region {
				return
			}
		}
	}

	factor := s.Config.ScrollFactor(device)
	if s.Hooks.PointerAxis != nil {
		s.Hooks.PointerAxis(dx*factor, dy*factor)
	}
}

// wheelButtonFor maps an axis delta to the wheel pseudo-button bindings
// match against; the vertical axis wins when both move.
func wheelButtonFor(dx, dy float64) inputcfg.MouseButton {
	switch {
	case dy < 0:
		return inputcfg.ButtonWheelUp
	case dy > 0:
		return inputcfg.ButtonWheelDown
	case dx < 0:
		return inputcfg.ButtonWheelLeft
	case dx > 0:
		return inputcfg.ButtonWheelRight
	}
	return 0
}
