package meridian

import (
	"github.com/meridianwm/meridian/scene"
	"github.com/meridianwm/meridian/view"
)

// windowState is the shape shared by Window's pending, committed, and
// current records. Plain struct copy promotes one record into another —
// there are no slice fields, so promotion never reallocates, unlike
// Column's and Workspace's child lists which must be duplicated
// explicitly.
type windowState struct {
	Box        Box
	ContentBox Box

	Fullscreen bool
	Shaded     bool
	Focused    bool
	Moving     bool
	Dead       bool

	SavedFloatingBox Box
	HeightFraction   float64

	ParentColumn *Column
	Workspace    *Workspace
	Output       *Output
	Theme        *Theme
}

// Window is a managed client-view instance, owning a scene subtree
// (titlebar, border, content) and three buffered state records.
type Window struct {
	ID    WindowID
	View  view.View
	Title string

	Scene        *scene.Node
	TitlebarNode *scene.Node
	ContentNode  *scene.Node

	pending, committed, current windowState

	dirty         bool
	isConfiguring bool
	configSerial  uint32
	freed         bool

	tm *TransactionManager

	BeginDestroy_ Signal[*Window] // begin_destroy: pending.dead becomes true
	Destroyed     Signal[*Window] // destroy: record freed after after_apply
}

// NewWindow creates a Window wrapping v, registers its transaction
// listeners, and marks it dirty so the first round establishes its
// initial committed/current state.
func NewWindow(tm *TransactionManager, windowIDs *idGenerator, v view.View, theme *Theme) *Window {
	w := &Window{
		ID:    WindowID(windowIDs.next()),
		View:  v,
		tm:    tm,
		Scene: scene.NewSubtree("window"),
	}
	w.TitlebarNode = scene.NewNineSlice("titlebar", scene.NineSliceImage{})
	w.ContentNode = scene.NewSubtree("content")
	w.Scene.AddChild(w.TitlebarNode)
	w.Scene.AddChild(w.ContentNode)

	w.pending.Theme = theme
	w.pending.HeightFraction = 1

	v.SetWindowRef(w)
	w.wireViewHooks()

	tm.Commit.Connect(w.onCommit)
	tm.Apply.Connect(w.onApply)
	tm.AfterApply.Connect(w.onAfterApply)

	w.SetDirty()
	return w
}

// WindowID implements view.WindowRef.
func (w *Window) WindowID() uint64 { return uint64(w.ID) }

func (w *Window) wireViewHooks() {
	w.View.SetHooks(view.Hooks{
		OnCommitAckSerial: func(serial uint32) {
			if w.isConfiguring && serial == w.configSerial {
				w.endConfigure()
			}
		},
		OnCommitGeometry: func(g view.Geometry) {
			if w.isConfiguring &&
				g.X == w.committed.ContentBox.X && g.Y == w.committed.ContentBox.Y &&
				g.Width == w.committed.ContentBox.Width && g.Height == w.committed.ContentBox.Height {
				w.endConfigure()
			}
		},
		OnRequestFullscreen: func(enabled bool) { w.SetFullscreen(enabled) },
		OnRequestMove:       func() {},
		OnRequestResize:     func(edges view.Edge) {},
		OnRequestActivate:   func() {},
		OnSetTitle:          func(title string) { w.Title = title },
		OnUnmap:             func() { w.BeginDestroyWindow() },
	})
}

// BeginDestroyWindow is idempotent: sets pending.dead, detaches from its
// container, and marks dirty. Named to avoid colliding with the
// BeginDestroy_ signal field.
func (w *Window) BeginDestroyWindow() {
	if w.pending.Dead {
		return
	}
	w.pending.Dead = true
	w.BeginDestroy_.Emit(w)
	if w.pending.Fullscreen && w.pending.Output != nil {
		w.pending.Output.popFullscreen(w)
	}
	if col := w.pending.ParentColumn; col != nil {
		col.RemoveChild(w)
	} else if ws := w.pending.Workspace; ws != nil {
		ws.RemoveFloating(w)
	}
	w.SetDirty()
}

// SetDirty registers this window with the transaction manager and ensures
// a round is queued. Idempotent within a round.
func (w *Window) SetDirty() {
	w.dirty = true
	w.tm.EnsureQueued()
}

func (w *Window) onCommit(struct{}) {
	if !w.dirty {
		return
	}
	prev := w.committed
	w.committed = w.pending

	contentChanged := prev.ContentBox != w.committed.ContentBox
	fullscreenChanged := prev.Fullscreen != w.committed.Fullscreen
	if contentChanged || fullscreenChanged {
		w.View.FreezeBuffer()
		cb := w.committed.ContentBox
		serial := w.View.Configure(cb.X, cb.Y, cb.Width, cb.Height)
		w.View.SetFullscreen(w.committed.Fullscreen)
		if w.isVisible() {
			w.tm.AcquireCommitLock()
			w.isConfiguring = true
			w.configSerial = serial
		}
		w.View.SendFrameDone()
	}
}

func (w *Window) endConfigure() {
	w.isConfiguring = false
	w.tm.ReleaseCommitLock()
}

func (w *Window) isVisible() bool {
	return !w.committed.Dead && w.committed.Workspace != nil
}

func (w *Window) onApply(struct{}) {
	if !w.dirty {
		return
	}
	w.View.UnfreezeBuffer()
	if !w.committed.Dead {
		w.applyScene()
	}
	w.current = w.committed
	w.dirty = false
}

func (w *Window) onAfterApply(struct{}) {
	if w.current.Dead && !w.freed {
		w.freed = true
		w.Scene.Destroy()
		w.Destroyed.Emit(w)
	}
}

func (w *Window) applyScene() {
	b := w.committed.Box
	w.Scene.SetPosition(b.X, b.Y)
	w.Scene.SetSize(b.Width, b.Height)
	w.Scene.SetEnabled(!w.committed.Shaded)

	dec := w.committed.Theme.Decoration(w.containerRole(), w.focusState())
	if w.committed.Fullscreen {
		w.TitlebarNode.SetEnabled(false)
	} else {
		w.TitlebarNode.SetEnabled(true)
		w.TitlebarNode.SetPosition(0, 0)
		w.TitlebarNode.SetSize(b.Width, dec.TitlebarHeight)
	}
	cb := w.committed.ContentBox
	w.ContentNode.SetPosition(cb.X-b.X, cb.Y-b.Y)
	w.ContentNode.SetSize(cb.Width, cb.Height)
}

func (w *Window) containerRole() ContainerRole {
	if w.committed.ParentColumn == nil {
		return RoleFloating
	}
	if len(w.committed.ParentColumn.current.Children) == 1 {
		return RoleTilingHead
	}
	return RoleTiling
}

func (w *Window) focusState() FocusState {
	return resolveFocusState(w.View.IsUrgent(), w.committed.Focused, w.committed.ParentColumn != nil && w.committed.ParentColumn.current.ActiveChild == w)
}

// Arrange recomputes content geometry from the pending outer box, the
// window's theme-resolved decoration, and its fullscreen flag.
func (w *Window) Arrange() {
	role := RoleFloating
	if w.pending.ParentColumn != nil {
		role = RoleTiling
	}
	dec := w.pending.Theme.Decoration(role, resolveFocusState(w.View.IsUrgent(), w.pending.Focused, false))
	titlebar := dec.TitlebarHeight
	if w.pending.Fullscreen {
		titlebar = 0
	}
	w.pending.ContentBox = insetContent(w.pending.Box, titlebar, dec.Border, w.pending.Fullscreen)
}

// ReconcileTiling recomputes parent-derived fields for a window attached
// to column. A fullscreen window keeps the output it claimed; everything
// else rebinds to the column's.
func (w *Window) ReconcileTiling(column *Column) {
	w.pending.ParentColumn = column
	w.pending.Workspace = column.pending.Workspace
	if !w.pending.Fullscreen || w.pending.Output == nil {
		w.pending.Output = column.pending.Output
	}
	w.SetDirty()
}

// ReconcileFloating recomputes parent-derived fields for a window in
// workspace's floating list. A fullscreen window keeps the output it
// claimed.
func (w *Window) ReconcileFloating(workspace *Workspace) {
	w.pending.ParentColumn = nil
	w.pending.Workspace = workspace
	if workspace != nil && (!w.pending.Fullscreen || w.pending.Output == nil) {
		w.pending.Output = workspace.preferredOutput()
	}
	w.SetDirty()
}

// ReconcileDetached clears all parent-derived fields on a window with no
// container (mid-drag, between removal and re-insertion). A fullscreen
// window keeps the output it claimed.
func (w *Window) ReconcileDetached() {
	w.pending.ParentColumn = nil
	w.pending.Workspace = nil
	if !w.pending.Fullscreen {
		w.pending.Output = nil
	}
	w.pending.Focused = false
	w.SetDirty()
}

// SetFullscreen enables or disables fullscreen, saving/restoring floating
// geometry, pushing/popping the window on its output's fullscreen stack,
// and triggering an Output reconcile.
func (w *Window) SetFullscreen(enabled bool) {
	if w.pending.Fullscreen == enabled {
		return
	}
	if enabled {
		if w.IsFloating() {
			w.pending.SavedFloatingBox = w.pending.Box
		}
		w.pending.Fullscreen = true
		if out := w.pending.Output; out != nil {
			out.pushFullscreen(w)
		}
	} else {
		if out := w.pending.Output; out != nil {
			out.popFullscreen(w)
		}
		if w.IsFloating() && w.pending.SavedFloatingBox != (Box{}) {
			w.pending.Box = w.pending.SavedFloatingBox
		} else if col := w.pending.ParentColumn; col != nil {
			w.pending.Output = col.pending.Output
		}
		w.pending.Fullscreen = false
	}
	w.Arrange()
	w.SetDirty()
	if w.pending.Output != nil {
		w.pending.Output.reconcile()
	}
}

// HandleFullscreenReparent disables any other window fullscreen on the
// new output and rearranges the workspace, called whenever this window's
// parent or workspace changes while fullscreen is on.
func (w *Window) HandleFullscreenReparent() {
	if !w.pending.Fullscreen || w.pending.Output == nil {
		return
	}
	others := append([]*Window(nil), w.pending.Output.pending.FullscreenWindows...)
	for _, other := range others {
		if other != w && other.pending.Fullscreen {
			other.SetFullscreen(false)
		}
	}
	w.pending.Output.pushFullscreen(w)
	if ws := w.pending.Workspace; ws != nil {
		ws.Arrange()
	}
}

// SetResizing toggles the view's resizing hint, sent so the client can
// switch to a cheaper redraw path while the user drags an edge.
func (w *Window) SetResizing(resizing bool) {
	w.View.SetResizing(resizing)
}

// FloatingMoveTo repositions a floating window's outer box to (x, y).
func (w *Window) FloatingMoveTo(x, y float64) {
	w.pending.Box.X = x
	w.pending.Box.Y = y
	w.Arrange()
	w.SetDirty()
}

// FloatingMoveToCenter centers the window within outputBox.
func (w *Window) FloatingMoveToCenter(outputBox Box) {
	x := outputBox.X + (outputBox.Width-w.pending.Box.Width)/2
	y := outputBox.Y + (outputBox.Height-w.pending.Box.Height)/2
	w.FloatingMoveTo(x, y)
}

// FloatingSetDefaultSize sizes the window to its view's natural size,
// clamped by constraints, keeping its current top-left corner.
func (w *Window) FloatingSetDefaultSize(constraints func(w, h float64) (float64, float64)) {
	nw, nh := w.View.NaturalSize()
	if constraints != nil {
		nw, nh = constraints(nw, nh)
	}
	w.pending.Box.Width = nw
	w.pending.Box.Height = nh
	w.Arrange()
	w.SetDirty()
}

// FloatingResizeAndCenter resizes the window to (width, height) and
// re-centers it about its current center point.
func (w *Window) FloatingResizeAndCenter(width, height float64) {
	cx := w.pending.Box.X + w.pending.Box.Width/2
	cy := w.pending.Box.Y + w.pending.Box.Height/2
	w.pending.Box.Width = width
	w.pending.Box.Height = height
	w.pending.Box.X = cx - width/2
	w.pending.Box.Y = cy - height/2
	w.Arrange()
	w.SetDirty()
}

// SetGeometryFromContent sets the outer box from a content-space
// rectangle, the inverse of Arrange's inset — used when a floating
// window's resize originates from the content side (e.g. a client-driven
// resize that reports its new content size directly).
func (w *Window) SetGeometryFromContent(content Box) {
	role := RoleFloating
	dec := w.pending.Theme.Decoration(role, resolveFocusState(w.View.IsUrgent(), w.pending.Focused, false))
	titlebar := dec.TitlebarHeight
	if w.pending.Fullscreen {
		titlebar = 0
	}
	w.pending.Box = outerFromContent(content, titlebar, dec.Border)
	w.pending.ContentBox = content
	w.SetDirty()
}

// RaiseFloating raises this window's scene subtree to the top of its
// parent scene node. It leaves the workspace's floating list order
// unchanged.
func (w *Window) RaiseFloating() {
	w.Scene.RaiseToTop()
}

// IsAlive reports whether the window has not yet had begin_destroy
// called on its pending state.
func (w *Window) IsAlive() bool { return !w.pending.Dead }

// IsFloating reports window_is_floating: no parent column, has a
// workspace.
func (w *Window) IsFloating() bool {
	return w.pending.ParentColumn == nil && w.pending.Workspace != nil
}

// IsTiling reports window_is_tiling: has a parent column.
func (w *Window) IsTiling() bool { return w.pending.ParentColumn != nil }

// IsFullscreen reports the pending fullscreen flag.
func (w *Window) IsFullscreen() bool { return w.pending.Fullscreen }

// GetOutput returns the window's current output, or nil if detached.
func (w *Window) GetOutput() *Output { return w.pending.Output }

// GetBox returns the window's pending outer geometry.
func (w *Window) GetBox() Box { return w.pending.Box }

// GetPreviousSibling returns the window immediately before this one in
// its parent column's child list, or nil if first or detached.
func (w *Window) GetPreviousSibling() *Window {
	col := w.pending.ParentColumn
	if col == nil {
		return nil
	}
	for i, c := range col.pending.Children {
		if c == w {
			if i == 0 {
				return nil
			}
			return col.pending.Children[i-1]
		}
	}
	return nil
}

// GetNextSibling returns the window immediately after this one in its
// parent column's child list, or nil if last or detached.
func (w *Window) GetNextSibling() *Window {
	col := w.pending.ParentColumn
	if col == nil {
		return nil
	}
	for i, c := range col.pending.Children {
		if c == w {
			if i == len(col.pending.Children)-1 {
				return nil
			}
			return col.pending.Children[i+1]
		}
	}
	return nil
}

// IsTransientFor reports whether this window's view is transient for
// other's view.
func (w *Window) IsTransientFor(other *Window) bool {
	if other == nil {
		return false
	}
	return w.View.IsTransientFor(other.View)
}
