package meridian

import "github.com/meridianwm/meridian/scene"

// FocusMode selects whether a workspace's active window lives in the
// tiling tree or the floating z-order.
type FocusMode uint8

const (
	FocusTiling FocusMode = iota
	FocusFloating
)

type workspaceState struct {
	Name      string
	FocusMode FocusMode

	Columns      []*Column
	ActiveColumn *Column
	// PreviousActiveColumn is the column that was active before
	// ActiveColumn. RemoveColumn restores it when the active column is
	// removed and it is still a member, before falling back to the
	// previous sibling.
	PreviousActiveColumn *Column

	Floating []*Window // z-ordered, last element is topmost

	Root *Root

	Focused bool
	Dead    bool
	Urgent  bool
}

func copyWorkspaceState(dst *workspaceState, src workspaceState) {
	cols := dst.Columns
	if cap(cols) < len(src.Columns) {
		cols = make([]*Column, len(src.Columns))
	} else {
		cols = cols[:len(src.Columns)]
	}
	copy(cols, src.Columns)
	src.Columns = cols

	floats := dst.Floating
	if cap(floats) < len(src.Floating) {
		floats = make([]*Window, len(src.Floating))
	} else {
		floats = floats[:len(src.Floating)]
	}
	copy(floats, src.Floating)
	src.Floating = floats

	*dst = src
}

// Workspace holds an ordered list of Columns (partitioned across Outputs)
// and a z-ordered list of floating Windows.
type Workspace struct {
	ID    WorkspaceID
	Scene *scene.Node

	pending, committed, current workspaceState
	dirty                       bool
	freed                       bool

	tm *TransactionManager

	BeginDestroy_ Signal[*Workspace]
	Destroyed     Signal[*Workspace]
}

// NewWorkspace creates a workspace named name.
func NewWorkspace(tm *TransactionManager, ids *idGenerator, name string) *Workspace {
	ws := &Workspace{
		ID:    WorkspaceID(ids.next()),
		tm:    tm,
		Scene: scene.NewSubtree("workspace:" + name),
	}
	ws.pending.Name = name

	tm.Commit.Connect(ws.onCommit)
	tm.Apply.Connect(ws.onApply)
	tm.AfterApply.Connect(ws.onAfterApply)

	ws.SetDirty()
	return ws
}

func (ws *Workspace) SetDirty() {
	ws.dirty = true
	ws.tm.EnsureQueued()
}

func (ws *Workspace) onCommit(struct{}) {
	if !ws.dirty {
		return
	}
	copyWorkspaceState(&ws.committed, ws.pending)
}

func (ws *Workspace) onApply(struct{}) {
	if !ws.dirty {
		return
	}
	copyWorkspaceState(&ws.current, ws.committed)
	ws.dirty = false
}

func (ws *Workspace) onAfterApply(struct{}) {
	if ws.current.Dead && !ws.freed {
		ws.freed = true
		ws.Scene.Destroy()
		ws.Destroyed.Emit(ws)
	}
}

// preferredOutput picks an output for a newly-floating window: the active
// column's output if one exists, else nil (the caller centers on whatever
// output becomes current once arranged).
func (ws *Workspace) preferredOutput() *Output {
	if ws.pending.ActiveColumn != nil {
		return ws.pending.ActiveColumn.pending.Output
	}
	return nil
}

// AddFloating appends a detached window to the floating z-order.
func (ws *Workspace) AddFloating(window *Window) {
	if window.pending.ParentColumn != nil || window.pending.Workspace != nil {
		panic("meridian: Workspace.AddFloating requires a detached window")
	}
	ws.pending.Floating = append(ws.pending.Floating, window)
	window.ReconcileFloating(ws)
	window.HandleFullscreenReparent()
	ws.Scene.AddChild(window.Scene)
	ws.SetDirty()
}

// RemoveFloating detaches window from the floating z-order. No-op if
// window is not in it.
func (ws *Workspace) RemoveFloating(window *Window) {
	idx := -1
	for i, w := range ws.pending.Floating {
		if w == window {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	floats := ws.pending.Floating
	copy(floats[idx:], floats[idx+1:])
	ws.pending.Floating = floats[:len(floats)-1]
	window.ReconcileDetached()
	window.Scene.RemoveFromParent()
	ws.SetDirty()
}

// raiseFloatingToTop moves window to the end (z-top) of the floating list.
func (ws *Workspace) raiseFloatingToTop(window *Window) {
	idx := -1
	for i, w := range ws.pending.Floating {
		if w == window {
			idx = i
			break
		}
	}
	if idx < 0 || idx == len(ws.pending.Floating)-1 {
		return
	}
	floats := ws.pending.Floating
	copy(floats[idx:], floats[idx+1:])
	floats[len(floats)-1] = window
	window.Scene.RaiseToTop()
}

// --- Column list operations ---

func (ws *Workspace) columnIndex(c *Column) int {
	for i, col := range ws.pending.Columns {
		if col == c {
			return i
		}
	}
	return -1
}

func (ws *Workspace) GetColumnFirst() *Column {
	if len(ws.pending.Columns) == 0 {
		return nil
	}
	return ws.pending.Columns[0]
}

func (ws *Workspace) GetColumnLast() *Column {
	if len(ws.pending.Columns) == 0 {
		return nil
	}
	return ws.pending.Columns[len(ws.pending.Columns)-1]
}

func (ws *Workspace) GetColumnAt(index int) *Column {
	if index < 0 || index >= len(ws.pending.Columns) {
		return nil
	}
	return ws.pending.Columns[index]
}

func (ws *Workspace) GetColumnBefore(c *Column) *Column {
	i := ws.columnIndex(c)
	if i <= 0 {
		return nil
	}
	return ws.pending.Columns[i-1]
}

func (ws *Workspace) GetColumnAfter(c *Column) *Column {
	i := ws.columnIndex(c)
	if i < 0 || i == len(ws.pending.Columns)-1 {
		return nil
	}
	return ws.pending.Columns[i+1]
}

// ColumnsTotalWidth returns the pixel width the arrangement engine shares
// out fractionally among output's columns (usable width minus
// inter-column gaps) — the denominator seatop_resize_tiling uses to
// convert a pixel drag delta into a width_fraction delta.
func (ws *Workspace) ColumnsTotalWidth(output *Output) float64 {
	var n int
	var gap float64
	for _, c := range ws.pending.Columns {
		if c.pending.Output != output {
			continue
		}
		n++
		if c.pending.Theme != nil {
			gap = c.pending.Theme.ColumnGap
		}
	}
	if n == 0 {
		return 0
	}
	return clampNonNegative(output.GetUsableArea().Width - gap*float64(n-1))
}

func (ws *Workspace) insertColumnAt(c *Column, index int) {
	cols := append(ws.pending.Columns, nil)
	copy(cols[index+1:], cols[index:])
	cols[index] = c
	ws.pending.Columns = cols
	c.Reconcile(ws, c.pending.Output)
	ws.Scene.AddChild(c.Scene)
	if ws.pending.ActiveColumn == nil {
		ws.pending.ActiveColumn = c
	}
	ws.SetDirty()
}

func (ws *Workspace) InsertColumnFirst(c *Column) { ws.insertColumnAt(c, 0) }
func (ws *Workspace) InsertColumnLast(c *Column)  { ws.insertColumnAt(c, len(ws.pending.Columns)) }

func (ws *Workspace) InsertColumnBefore(existing, c *Column) {
	i := ws.columnIndex(existing)
	if i < 0 {
		panic("meridian: Workspace.InsertColumnBefore: existing is not a member")
	}
	ws.insertColumnAt(c, i)
}

func (ws *Workspace) InsertColumnAfter(existing, c *Column) {
	i := ws.columnIndex(existing)
	if i < 0 {
		panic("meridian: Workspace.InsertColumnAfter: existing is not a member")
	}
	ws.insertColumnAt(c, i+1)
}

// RemoveColumn detaches c from the workspace's column list. No-op if c is
// not a member. Rebinds ActiveColumn to PreviousActiveColumn when still
// valid, else the previous sibling, else whatever is now at index 0.
func (ws *Workspace) RemoveColumn(c *Column) {
	idx := ws.columnIndex(c)
	if idx < 0 {
		return
	}
	cols := ws.pending.Columns
	copy(cols[idx:], cols[idx+1:])
	ws.pending.Columns = cols[:len(cols)-1]

	if ws.pending.ActiveColumn == c {
		switch {
		case ws.pending.PreviousActiveColumn != nil && ws.columnIndex(ws.pending.PreviousActiveColumn) >= 0:
			ws.pending.ActiveColumn = ws.pending.PreviousActiveColumn
		case len(ws.pending.Columns) == 0:
			ws.pending.ActiveColumn = nil
		case idx == 0:
			ws.pending.ActiveColumn = ws.pending.Columns[0]
		default:
			ws.pending.ActiveColumn = ws.pending.Columns[idx-1]
		}
	}
	if ws.pending.PreviousActiveColumn == c {
		ws.pending.PreviousActiveColumn = nil
	}
	c.ReconcileDetached()
	c.Scene.RemoveFromParent()
	ws.SetDirty()
}

// --- Focus ---

func (ws *Workspace) GetActiveTilingWindow() *Window {
	if ws.pending.ActiveColumn == nil {
		return nil
	}
	return ws.pending.ActiveColumn.pending.ActiveChild
}

func (ws *Workspace) GetActiveFloatingWindow() *Window {
	if len(ws.pending.Floating) == 0 {
		return nil
	}
	return ws.pending.Floating[len(ws.pending.Floating)-1]
}

func (ws *Workspace) GetActiveWindow() *Window {
	if ws.pending.FocusMode == FocusFloating {
		return ws.GetActiveFloatingWindow()
	}
	return ws.GetActiveTilingWindow()
}

func (ws *Workspace) GetActiveOutput() *Output {
	if ws.pending.ActiveColumn != nil {
		return ws.pending.ActiveColumn.pending.Output
	}
	return nil
}

// SetActiveWindow sets the workspace's active window. A nil window drops
// to tiling mode with no active column.
func (ws *Workspace) SetActiveWindow(window *Window) {
	if window == nil {
		ws.pending.FocusMode = FocusTiling
		ws.pending.ActiveColumn = nil
		ws.Arrange()
		ws.SetDirty()
		return
	}
	if window.IsFloating() {
		ws.raiseFloatingToTop(window)
		ws.pending.FocusMode = FocusFloating
		ws.Arrange()
		ws.SetDirty()
		return
	}
	col := window.pending.ParentColumn
	if col == nil {
		return
	}
	ws.pending.PreviousActiveColumn = ws.pending.ActiveColumn
	col.SetActiveChild(window)
	ws.pending.ActiveColumn = col
	ws.pending.FocusMode = FocusTiling
	if ws.pending.Root != nil && ws.pending.Root.pending.ActiveWorkspace == ws {
		ws.pending.Root.SetActiveOutput(col.pending.Output)
	}
	ws.Arrange()
	ws.SetDirty()
}

// GetFloatingWindowAt returns the topmost floating window containing
// (x, y), or nil.
func (ws *Workspace) GetFloatingWindowAt(x, y float64) *Window {
	for i := len(ws.pending.Floating) - 1; i >= 0; i-- {
		w := ws.pending.Floating[i]
		b := w.pending.Box
		if x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height {
			return w
		}
	}
	return nil
}

// GetFullscreenWindowForOutput returns the fullscreen window currently
// claiming output on this workspace, or nil.
func (ws *Workspace) GetFullscreenWindowForOutput(output *Output) *Window {
	for _, c := range ws.pending.Columns {
		if c.pending.Output != output {
			continue
		}
		for _, w := range c.pending.Children {
			if w.pending.Fullscreen {
				return w
			}
		}
	}
	for _, w := range ws.pending.Floating {
		if w.pending.Fullscreen && w.pending.Output == output {
			return w
		}
	}
	return nil
}

// DetectUrgent recomputes the workspace's urgent flag from every window
// it holds.
func (ws *Workspace) DetectUrgent() {
	urgent := false
	for _, c := range ws.pending.Columns {
		for _, w := range c.pending.Children {
			if w.View != nil && w.View.IsUrgent() {
				urgent = true
			}
		}
	}
	for _, w := range ws.pending.Floating {
		if w.View != nil && w.View.IsUrgent() {
			urgent = true
		}
	}
	ws.pending.Urgent = urgent
	ws.SetDirty()
}

// Detach clears the workspace's Root back-reference and considers
// destruction.
func (ws *Workspace) Detach() {
	ws.pending.Root = nil
	ws.ConsiderDestroy()
}

// ConsiderDestroy is a no-op unless the workspace holds no columns, no
// floaters, and is not focused.
func (ws *Workspace) ConsiderDestroy() {
	if len(ws.pending.Columns) == 0 && len(ws.pending.Floating) == 0 && !ws.pending.Focused {
		ws.BeginDestroyWorkspace()
	}
}

func (ws *Workspace) BeginDestroyWorkspace() {
	if ws.pending.Dead {
		return
	}
	ws.pending.Dead = true
	ws.BeginDestroy_.Emit(ws)
	ws.SetDirty()
}

// Arrange re-lays-out floating windows, then tiling columns per output.
func (ws *Workspace) Arrange() {
	for _, fw := range ws.pending.Floating {
		if fw.pending.Fullscreen {
			continue
		}
		fw.pending.Shaded = false
		fw.Arrange()
		fw.SetDirty()
	}

	byOutput := map[*Output][]*Column{}
	var order []*Output
	for _, c := range ws.pending.Columns {
		out := c.pending.Output
		if out == nil {
			continue
		}
		if _, ok := byOutput[out]; !ok {
			order = append(order, out)
		}
		byOutput[out] = append(byOutput[out], c)
	}
	for _, out := range order {
		ws.arrangeColumnsOnOutput(out, byOutput[out])
	}
}

func (ws *Workspace) arrangeColumnsOnOutput(out *Output, cols []*Column) {
	if len(cols) == 0 {
		return
	}

	// Step 1: new columns (width_fraction <= 0) get the mean of sized
	// columns, or 1.0 if none are sized yet.
	var sum float64
	var sizedCount int
	for _, c := range cols {
		if c.pending.WidthFraction > 0 {
			sum += c.pending.WidthFraction
			sizedCount++
		}
	}
	mean := 1.0
	if sizedCount > 0 {
		mean = sum / float64(sizedCount)
	}
	for _, c := range cols {
		if c.pending.WidthFraction <= 0 {
			c.pending.WidthFraction = mean
		}
	}

	// Step 2: first/last flags.
	for i, c := range cols {
		c.pending.IsFirstChild = i == 0
		c.pending.IsLastChild = i == len(cols)-1
	}

	// Step 3: normalize so the output's columns sum to 1.
	fractions := make([]float64, len(cols))
	for i, c := range cols {
		fractions[i] = c.pending.WidthFraction
	}
	normalizeFractions(fractions)
	for i, c := range cols {
		c.pending.WidthFraction = fractions[i]
	}

	// Step 4-5: lay out left-to-right, last column absorbs the remainder.
	usable := out.pending.UsableArea
	gap := 0.0
	if cols[0].pending.Theme != nil {
		gap = cols[0].pending.Theme.ColumnGap
	}
	columnsTotalWidth := clampNonNegative(usable.Width - gap*float64(len(cols)-1))
	x := usable.X
	for i, c := range cols {
		var width float64
		if i == len(cols)-1 {
			width = usable.X + usable.Width - x
		} else {
			width = roundHalfAwayFromZero(fractions[i] * columnsTotalWidth)
		}
		c.pending.Box = Box{X: x, Y: usable.Y, Width: width, Height: usable.Height}
		c.Arrange()
		c.SetDirty()
		x += width + gap
	}
}
