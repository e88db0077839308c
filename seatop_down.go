package meridian

import "github.com/meridianwm/meridian/inputcfg"

// seatopDown is the "down" SeatOp: after a plain surface press it forwards
// pointer motion to the surface, in surface-local coordinates, until the
// initiating button releases. Button events are not forwarded; the release
// of the initiating button only ends the op.
type seatopDown struct {
	window *Window
	button inputcfg.MouseButton
}

// newSeatopDown starts forwarding events to window's surface, ending when
// button is released.
func newSeatopDown(s *Seat, w *Window, button inputcfg.MouseButton) *seatopDown {
	return &seatopDown{window: w, button: button}
}

func (op *seatopDown) Rebase(s *Seat) {}

func (op *seatopDown) AllowSetCursor() bool { return true }

func (op *seatopDown) Unref(window *Window) {
	if op.window == window {
		op.window = nil
	}
}

func (op *seatopDown) End(s *Seat) {}

func (op *seatopDown) PointerMotion(s *Seat, x, y float64) {
	if op.window == nil {
		return
	}
	cb := op.window.pending.ContentBox
	if s.Hooks.PointerMotion != nil {
		s.Hooks.PointerMotion(x-cb.X, y-cb.Y)
	}
}

func (op *seatopDown) PointerAxis(s *Seat, dx, dy float64, device string) {}

func (op *seatopDown) Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if !pressed && button == op.button {
		s.BeginDefault()
	}
}
