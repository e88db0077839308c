package meridian

import (
	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

// minFraction bounds how small a resize-tiling drag can shrink either side
// of a width_fraction/height_fraction pair, keeping both siblings visible.
const minFraction = 0.05

// seatopResizeTiling is the "resize-tiling" SeatOp: drags a tiled
// window's edge, rewriting width_fraction on the column and its neighbor
// on the dragged side (left edge: previous column, right edge: next
// column) or height_fraction on the window and its sibling on the dragged
// side within a SPLIT column (top edge: previous sibling, bottom edge:
// next sibling). The delta is always
// subtracted from the neighbor so the pair's fraction sum never drifts.
// The workspace is only re-arranged once, on release.
type seatopResizeTiling struct {
	window *Window

	hColumn, hNeighbor         *Column
	hNeighborIsLeft            bool
	hStartSelf, hStartNeighbor float64
	hTotal                     float64

	vColumn                    *Column
	vWindow, vNeighbor         *Window
	vNeighborIsPrev            bool
	vStartSelf, vStartNeighbor float64
	vTotal                     float64

	startX, startY float64
}

// newSeatopResizeTiling grabs window's edges (a bitmask: a corner grab
// resizes both a width-fraction pair and a height-fraction pair at once).
func newSeatopResizeTiling(s *Seat, w *Window, edges view.Edge) *seatopResizeTiling {
	op := &seatopResizeTiling{window: w, startX: s.PointerX, startY: s.PointerY}
	col := w.pending.ParentColumn
	if col == nil {
		return op
	}
	ws := col.pending.Workspace
	out := col.pending.Output

	switch {
	case edges&view.EdgeLeft != 0:
		if left := ws.GetColumnBefore(col); left != nil {
			op.hColumn, op.hNeighbor, op.hNeighborIsLeft = col, left, true
		}
	case edges&view.EdgeRight != 0:
		if right := ws.GetColumnAfter(col); right != nil {
			op.hColumn, op.hNeighbor, op.hNeighborIsLeft = col, right, false
		}
	}
	if op.hColumn != nil && ws != nil && out != nil {
		op.hStartSelf = op.hColumn.pending.WidthFraction
		op.hStartNeighbor = op.hNeighbor.pending.WidthFraction
		op.hTotal = ws.ColumnsTotalWidth(out)
	}

	if col.pending.Layout == LayoutSplit {
		switch {
		case edges&view.EdgeTop != 0:
			if prev := w.GetPreviousSibling(); prev != nil {
				op.vColumn, op.vWindow, op.vNeighbor, op.vNeighborIsPrev = col, w, prev, true
			}
		case edges&view.EdgeBottom != 0:
			if next := w.GetNextSibling(); next != nil {
				op.vColumn, op.vWindow, op.vNeighbor, op.vNeighborIsPrev = col, w, next, false
			}
		}
		if op.vColumn != nil {
			op.vStartSelf = w.pending.HeightFraction
			op.vStartNeighbor = op.vNeighbor.pending.HeightFraction
			op.vTotal = col.AvailableHeight()
		}
	}

	col.SetResizing(true)
	return op
}

func (op *seatopResizeTiling) Rebase(s *Seat) {}

func (op *seatopResizeTiling) AllowSetCursor() bool { return false }

func (op *seatopResizeTiling) Unref(window *Window) {
	if op.window == window {
		op.window = nil
	}
	if op.vWindow == window {
		op.vWindow = nil
	}
	if op.vNeighbor == window {
		op.vNeighbor = nil
	}
}

func (op *seatopResizeTiling) End(s *Seat) {
	if op.hColumn != nil {
		op.hColumn.SetResizing(false)
	}
}

// applyFractionDelta writes newSelf/newNeighbor so their sum stays exactly
// startSelf+startNeighbor, clamping each side to at least minFraction.
func applyFractionDelta(self, neighbor *float64, startSelf, startNeighbor, delta float64) {
	total := startSelf + startNeighbor
	newSelf := startSelf + delta
	if newSelf < minFraction {
		newSelf = minFraction
	}
	if newSelf > total-minFraction {
		newSelf = total - minFraction
	}
	*self = newSelf
	*neighbor = total - newSelf
}

func (op *seatopResizeTiling) PointerMotion(s *Seat, x, y float64) {
	if op.window == nil {
		return
	}
	dx := x - op.startX
	dy := y - op.startY

	if op.hColumn != nil && op.hTotal > 0 {
		delta := dx
		if op.hNeighborIsLeft {
			delta = -dx
		}
		applyFractionDelta(&op.hColumn.pending.WidthFraction, &op.hNeighbor.pending.WidthFraction,
			op.hStartSelf, op.hStartNeighbor, delta/op.hTotal)
	}

	if op.vColumn != nil && op.vWindow != nil && op.vNeighbor != nil && op.vTotal > 0 {
		delta := dy
		if op.vNeighborIsPrev {
			delta = -dy
		}
		applyFractionDelta(&op.vWindow.pending.HeightFraction, &op.vNeighbor.pending.HeightFraction,
			op.vStartSelf, op.vStartNeighbor, delta/op.vTotal)
	}
}

func (op *seatopResizeTiling) PointerAxis(s *Seat, dx, dy float64, device string) {}

func (op *seatopResizeTiling) Button(s *Seat, button inputcfg.MouseButton, pressed bool, mods inputcfg.Modifier) {
	if pressed {
		return
	}
	if op.hColumn != nil {
		op.hColumn.SetResizing(false)
		if ws := op.hColumn.pending.Workspace; ws != nil {
			ws.Arrange()
		}
	} else if op.vColumn != nil {
		if ws := op.vColumn.pending.Workspace; ws != nil {
			ws.Arrange()
		}
	}
	s.BeginDefault()
}
