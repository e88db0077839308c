package meridian

import (
	"testing"

	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

func TestSeatopMoveFloatingFollowsPointerMinusOffset(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 50, Y: 50, Width: 200, Height: 150}

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 60, 60 // 10,10 into the window
	op := newSeatopMove(s, w)

	if !w.pending.Moving {
		t.Fatal("expected grabbing a window to set its moving flag")
	}

	op.PointerMotion(s, 200, 200)

	if w.pending.Box.X != 190 || w.pending.Box.Y != 190 {
		t.Fatalf("expected floating window to follow pointer minus the grab offset, got %+v", w.pending.Box)
	}
	if w.IsFloating() != true {
		t.Fatal("expected floating window to remain in the floating list mid-drag")
	}

	op.Button(s, inputcfg.ButtonLeft, false, 0)
	if w.pending.Moving {
		t.Fatal("expected moving flag cleared on release")
	}
	if _, ok := s.CurrentOp().(*seatopDefault); !ok {
		t.Fatal("expected release to return the seat to the default op")
	}
}

func TestSeatopMoveTilingDetachesImmediatelyAndShowsPreview(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	col := r.NewColumn(ws, out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	col.AddChild(w)
	ws.Arrange()

	s := newTestSeat(r)
	s.PointerX, s.PointerY = col.pending.Box.X+10, col.pending.Box.Y+10
	op := newSeatopMove(s, w)

	if col.FindChild(w) {
		t.Fatal("expected tiling window detached from its column immediately at grab time")
	}
	if w.IsTiling() {
		t.Fatal("expected a detached window to report as not tiling")
	}

	op.PointerMotion(s, col.pending.Box.X+20, col.pending.Box.Y+20)
	if op.destColumn != col {
		t.Fatalf("expected hovering over the column to set it as the destination, got %v", op.destColumn)
	}
	if !col.pending.ShowPreview {
		t.Fatal("expected the hovered column to show a preview while dragging")
	}
}

func TestSeatopMoveReleaseOnBareGapCreatesNewColumn(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	col := r.NewColumn(ws, out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	col.AddChild(w)
	ws.Arrange()

	s := newTestSeat(r)
	s.PointerX, s.PointerY = col.pending.Box.X+10, col.pending.Box.Y+10
	op := newSeatopMove(s, w)

	// Never hover over any column, simulating a release on bare gap.
	before := len(ws.pending.Columns)
	op.Button(s, inputcfg.ButtonLeft, false, 0)

	if len(ws.pending.Columns) != before {
		// original column destroyed itself (emptied) and a new one was
		// created in its place; net count unchanged but the member differs.
	}
	if !w.IsTiling() {
		t.Fatal("expected window re-attached to a tiling column on release")
	}
	if w.pending.ParentColumn == col {
		t.Fatal("expected the window to land in a newly created column, not the emptied original")
	}
}

func TestSeatopMoveReleaseOnHoveredColumnInsertsAtPreviewTarget(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	colA := r.NewColumn(ws, out)
	colB := r.NewColumn(ws, out)
	existing := r.NewWindow(view.NewXdgShell("existing", 100, 100, nil))
	colB.AddChild(existing)
	w := r.NewWindow(view.NewXdgShell("moved", 100, 100, nil))
	colA.AddChild(w)
	ws.Arrange()

	s := newTestSeat(r)
	s.PointerX, s.PointerY = colA.pending.Box.X+10, colA.pending.Box.Y+10
	op := newSeatopMove(s, w)

	target := colB.pending.Box
	op.PointerMotion(s, target.X+10, target.Y+10)
	op.Button(s, inputcfg.ButtonLeft, false, 0)

	if !colB.FindChild(w) {
		t.Fatal("expected window inserted into the hovered column on release")
	}
	if colA.FindChild(w) {
		t.Fatal("expected window no longer in the original column")
	}
}
