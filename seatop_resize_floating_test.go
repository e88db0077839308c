package meridian

import (
	"testing"

	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

func TestSeatopResizeFloatingRightBottomGrowsSizeKeepingOrigin(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 100, Y: 100, Width: 300, Height: 200}

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 400, 300 // bottom-right corner
	op := newSeatopResizeFloating(s, w, view.EdgeRight|view.EdgeBottom)

	op.PointerMotion(s, 450, 330)

	if w.pending.Box.X != 100 || w.pending.Box.Y != 100 {
		t.Fatalf("expected top-left origin fixed when growing from the bottom-right, got %+v", w.pending.Box)
	}
	if w.pending.Box.Width != 350 || w.pending.Box.Height != 230 {
		t.Fatalf("expected size grown by the drag delta, got %+v", w.pending.Box)
	}
}

func TestSeatopResizeFloatingLeftTopKeepsOppositeEdgeFixed(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 100, Y: 100, Width: 300, Height: 200}

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 100, 100 // top-left corner
	op := newSeatopResizeFloating(s, w, view.EdgeLeft|view.EdgeTop)

	op.PointerMotion(s, 150, 120) // drag inward by (50, 20)

	right := 100 + 300.0
	bottom := 100 + 200.0
	if w.pending.Box.X+w.pending.Box.Width != right {
		t.Fatalf("expected the fixed right edge to stay put, got box=%+v want right=%v", w.pending.Box, right)
	}
	if w.pending.Box.Y+w.pending.Box.Height != bottom {
		t.Fatalf("expected the fixed bottom edge to stay put, got box=%+v want bottom=%v", w.pending.Box, bottom)
	}
	if w.pending.Box.X != 150 || w.pending.Box.Y != 120 {
		t.Fatalf("expected top-left corner to follow the pointer, got %+v", w.pending.Box)
	}
}

func TestSeatopResizeFloatingClampsToMinimumAndAdjustsMovingEdge(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 100, Y: 100, Width: 300, Height: 200}

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 400, 300
	op := newSeatopResizeFloating(s, w, view.EdgeRight|view.EdgeBottom)

	// Drag far enough left/up to try to shrink well under the configured
	// 100x100 minimum.
	op.PointerMotion(s, 50, 50)

	constraints := r.Input.FloatingConstraints()
	if w.pending.Box.Width < constraints.MinWidth-1e-9 {
		t.Fatalf("expected width clamped to minimum %v, got %v", constraints.MinWidth, w.pending.Box.Width)
	}
	if w.pending.Box.Height < constraints.MinHeight-1e-9 {
		t.Fatalf("expected height clamped to minimum %v, got %v", constraints.MinHeight, w.pending.Box.Height)
	}
}

func TestSeatopResizeFloatingButtonReleaseReturnsToDefault(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 0, Y: 0, Width: 300, Height: 200}

	s := newTestSeat(r)
	op := newSeatopResizeFloating(s, w, view.EdgeRight)
	s.BeginOp(op)

	op.Button(s, inputcfg.ButtonLeft, true, 0)
	if _, ok := s.CurrentOp().(*seatopResizeFloating); !ok {
		t.Fatal("expected a button press (not release) to leave the op unchanged")
	}

	op.Button(s, inputcfg.ButtonLeft, false, 0)
	if _, ok := s.CurrentOp().(*seatopDefault); !ok {
		t.Fatal("expected release to return the seat to the default op")
	}
}
