package meridian

import "github.com/meridianwm/meridian/inputcfg"

// seatopMove is the "move" SeatOp: grabs a window and tracks the
// pointer until the initiating button releases. Floating windows just
// follow the cursor (minus a captured offset) and keep their container.
// Tiling windows are detached from their column for the duration of the
// drag and re-attached on release, either at the column/position the
// pointer hovers (computed via Column.ComputePreviewTarget) or as a new
// column if dropped onto bare workspace gap.
type seatopMove struct {
	window   *Window
	floating bool
	button   inputcfg.MouseButton

	offsetX, offsetY float64

	origColumn *Column
	destColumn *Column
}

// newSeatopMove grabs window. For a tiling window this detaches it from
// its column immediately; for a floating window it only captures the
// cursor-to-origin offset, leaving the window's container untouched until
// release.
func newSeatopMove(s *Seat, w *Window) *seatopMove {
	op := &seatopMove{window: w, floating: w.IsFloating()}
	if op.floating {
		b := w.pending.Box
		op.offsetX = s.PointerX - b.X
		op.offsetY = s.PointerY - b.Y
	} else {
		op.origColumn = w.pending.ParentColumn
		if op.origColumn != nil {
			op.origColumn.RemoveChild(w)
		}
	}
	w.pending.Moving = true
	w.SetDirty()
	return op
}

func (op *seatopMove) Rebase(s *Seat) {}

func (op *seatopMove) AllowSetCursor() bool { return false }

// Unref drops the reference if window is the one being moved; with a nil
// window the op ignores motion and returns to the default op on the next
// button release.
func (op *seatopMove) Unref(window *Window) {
	if op.window == window {
		op.window = nil
	}
	if op.destColumn != nil && op.destColumn.pending.Dead {
		op.destColumn = nil
	}
}

func (op *seatopMove) End(s *Seat) {
	if op.destColumn != nil {
		op.destColumn.SetShowPreview(false, 0)
	}
}

func (op *seatopMove) PointerMotion(s *Seat, x, y float64) {
	if op.window == nil {
		return
	}
	if op.floating {
		op.window.FloatingMoveTo(x-op.offsetX, y-op.offsetY)
		return
	}

	ws := s.Root.GetActiveWorkspace()
	if ws == nil {
		return
	}
	col := columnAt(ws, x, y)
	if op.destColumn != nil && op.destColumn != col {
		op.destColumn.SetShowPreview(false, 0)
	}
	op.destColumn = col
	if col != nil {
		col.SetShowPreview(true, previewFractionFor(col))
		col.ComputePreviewTarget(y)
	}
}

func (op *seatopMove) PointerAxis(s *Seat, dx, dy float64, device string) {}

func (op *seatopMove) Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if pressed {
		return
	}
	if op.window == nil {
		s.BeginDefault()
		return
	}
	w := op.window

	if op.floating {
		w.pending.Moving = false
		w.SetDirty()
		s.BeginDefault()
		return
	}

	if op.destColumn != nil {
		op.destColumn.SetShowPreview(false, 0)
		op.destColumn.InsertAtPreviewTarget(w)
	} else if ws := s.Root.GetActiveWorkspace(); ws != nil {
		col := s.Root.NewColumn(ws, ws.GetActiveOutput())
		col.AddChild(w)
	}
	if op.origColumn != nil {
		op.origColumn.ConsiderDestroy()
	}

	w.pending.Moving = false
	w.SetDirty()
	if ws := w.pending.Workspace; ws != nil {
		ws.Arrange()
	}
	s.BeginDefault()
}

// columnAt returns the column on ws whose pending Box contains (x, y), or
// nil if the point falls on bare workspace gap.
func columnAt(ws *Workspace, x, y float64) *Column {
	for _, c := range ws.pending.Columns {
		b := c.pending.Box
		if x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height {
			return c
		}
	}
	return nil
}

// previewFractionFor picks a preview height share equal to the mean of
// col's existing children's height fractions (or 1 if it has none yet),
// so the preview visually matches an average sibling.
func previewFractionFor(col *Column) float64 {
	children := col.pending.Children
	if len(children) == 0 {
		return 1
	}
	var sum float64
	for _, ch := range children {
		sum += ch.pending.HeightFraction
	}
	return sum / float64(len(children))
}
