package meridian

import (
	"time"

	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/scene"
	"github.com/meridianwm/meridian/view"
)

// FocusTarget is the identity Root's focus triple compares for change
// detection: an unmanaged surface, a keyboard-interactive layer surface,
// or a window — at most one is non-nil.
type FocusTarget struct {
	UnmanagedSurface any
	Layer            any
	Window           *Window
}

func (f FocusTarget) identity() any {
	switch {
	case f.UnmanagedSurface != nil:
		return f.UnmanagedSurface
	case f.Layer != nil:
		return f.Layer
	case f.Window != nil:
		return f.Window
	default:
		return nil
	}
}

type rootState struct {
	Outputs    []*Output
	Workspaces []*Workspace

	ActiveWorkspace *Workspace
	ActiveOutput    *Output

	Focused FocusTarget

	// RequestedFocus is what before_commit should materialize into
	// Focused on the next round; Root's callers set this directly
	// rather than writing Focused, which is derived.
	RequestedFocus FocusTarget
}

func copyRootState(dst *rootState, src rootState) {
	outs := dst.Outputs
	if cap(outs) < len(src.Outputs) {
		outs = make([]*Output, len(src.Outputs))
	} else {
		outs = outs[:len(src.Outputs)]
	}
	copy(outs, src.Outputs)
	src.Outputs = outs

	wss := dst.Workspaces
	if cap(wss) < len(src.Workspaces) {
		wss = make([]*Workspace, len(src.Workspaces))
	} else {
		wss = wss[:len(src.Workspaces)]
	}
	copy(wss, src.Workspaces)
	src.Workspaces = wss

	*dst = src
}

// FocusChangedEvent carries the old and new focus identities for
// Root.FocusChanged subscribers.
type FocusChangedEvent struct {
	Old, New FocusTarget
}

// Root is the process-lifetime singleton owning every Output and
// Workspace, the active workspace/output, the authoritative focus triple,
// the shared theme, and the transaction manager that drives every other
// entity's commit/apply/after-apply cycle.
type Root struct {
	TM    *TransactionManager
	Theme *Theme
	Input inputcfg.Config

	ids       idGenerator
	windowIDs idGenerator

	Scene           *scene.Node
	BackgroundLayer *scene.Node
	WorkspacesLayer *scene.Node
	UnmanagedLayer  *scene.Node
	MovingLayer     *scene.Node
	OverlayLayer    *scene.Node
	PopupsLayer     *scene.Node

	pending, committed, current rootState

	FocusChanged Signal[FocusChangedEvent]
	SceneChanged Signal[struct{}]

	urgentTimers map[*Window]*time.Timer
}

// NewRoot constructs the singleton tree root with its own transaction
// manager and default theme, and wires the before_commit focus-materialize
// listener and the after_apply scene_changed emission.
func NewRoot(cfg inputcfg.Config) *Root {
	r := &Root{
		TM:              NewTransactionManager(),
		Theme:           NewDefaultTheme(),
		Input:           cfg,
		Scene:           scene.NewSubtree("root"),
		BackgroundLayer: scene.NewSubtree("background"),
		WorkspacesLayer: scene.NewSubtree("workspaces"),
		UnmanagedLayer:  scene.NewSubtree("unmanaged"),
		MovingLayer:     scene.NewSubtree("moving"),
		OverlayLayer:    scene.NewSubtree("overlay"),
		PopupsLayer:     scene.NewSubtree("popups"),
		urgentTimers:    map[*Window]*time.Timer{},
	}
	r.Scene.AddChild(r.BackgroundLayer)
	r.Scene.AddChild(r.WorkspacesLayer)
	r.Scene.AddChild(r.UnmanagedLayer)
	r.Scene.AddChild(r.MovingLayer)
	r.Scene.AddChild(r.OverlayLayer)
	r.Scene.AddChild(r.PopupsLayer)

	r.TM.BeforeCommit.Connect(r.commitFocus)
	r.TM.BeforeCommit.Connect(func(struct{}) { r.checkInvariants() })
	r.TM.AfterApply.Connect(func(struct{}) { r.SceneChanged.Emit(struct{}{}) })

	return r
}

// NewWorkspace creates a workspace owned by this root and appends it to
// the workspace list.
func (r *Root) NewWorkspace(name string) *Workspace {
	ws := NewWorkspace(r.TM, &r.ids, name)
	ws.pending.Root = r
	r.pending.Workspaces = append(r.pending.Workspaces, ws)
	if r.pending.ActiveWorkspace == nil {
		r.pending.ActiveWorkspace = ws
		ws.pending.Focused = true
	}
	return ws
}

// NewOutput creates an output owned by this root and appends it to the
// output list.
func (r *Root) NewOutput(name string, geometry Box) *Output {
	o := NewOutput(r.TM, &r.ids, name, geometry)
	r.pending.Outputs = append(r.pending.Outputs, o)
	if r.pending.ActiveOutput == nil {
		r.pending.ActiveOutput = o
	}
	return o
}

// NewColumn creates a column on workspace/output, owned by this root, and
// appends it to the workspace's column list.
func (r *Root) NewColumn(workspace *Workspace, output *Output) *Column {
	c := NewColumn(r.TM, &r.ids, workspace, output, r.Theme)
	workspace.InsertColumnLast(c)
	return c
}

// NewWindow creates a window owned by this root, wrapping v.
func (r *Root) NewWindow(v view.View) *Window {
	return NewWindow(r.TM, &r.windowIDs, v, r.Theme)
}

// SetActiveOutput changes which output is authoritative for
// focus-follows-mouse and newly-floated windows.
func (r *Root) SetActiveOutput(o *Output) {
	if o == nil || r.pending.ActiveOutput == o {
		return
	}
	r.pending.ActiveOutput = o
}

// SetActiveWorkspace switches which workspace is active, clearing the
// Focused flag on the previous one.
func (r *Root) SetActiveWorkspace(ws *Workspace) {
	if r.pending.ActiveWorkspace == ws {
		return
	}
	if old := r.pending.ActiveWorkspace; old != nil {
		old.pending.Focused = false
		old.SetDirty()
	}
	r.pending.ActiveWorkspace = ws
	if ws != nil {
		ws.pending.Focused = true
		ws.SetDirty()
	}
}

// RequestFocus sets what before_commit should materialize into the
// authoritative focus triple on the next transaction round.
func (r *Root) RequestFocus(target FocusTarget) {
	r.pending.RequestedFocus = target
}

// commitFocus is the before_commit listener: it materializes
// RequestedFocus into Focused, applying priority (unmanaged surface over
// layer over window) and emitting focus_changed on identity change, with
// the deactivate-old/activate-new/urgency side effects.
func (r *Root) commitFocus(struct{}) {
	want := r.pending.RequestedFocus
	old := r.pending.Focused
	if old.identity() == want.identity() {
		return
	}

	if old.Window != nil {
		old.Window.pending.Focused = false
		old.Window.View.SetActivated(false)
		old.Window.SetDirty()
	}

	if want.Window != nil {
		crossedWorkspace := old.Window == nil || old.Window.pending.Workspace != want.Window.pending.Workspace
		want.Window.pending.Focused = true
		want.Window.View.SetActivated(true)
		want.Window.SetDirty()
		if want.Window.View.IsUrgent() {
			r.resolveUrgency(want.Window, crossedWorkspace)
		}
	}

	r.pending.Focused = want
	r.FocusChanged.Emit(FocusChangedEvent{Old: old, New: want})
}

// resolveUrgency clears a newly-focused window's urgency immediately, or
// after UrgentTimeout if the focus change crossed a workspace boundary and
// a positive timeout is configured.
func (r *Root) resolveUrgency(w *Window, crossedWorkspace bool) {
	if t, ok := r.urgentTimers[w]; ok {
		t.Stop()
		delete(r.urgentTimers, w)
	}
	timeout := r.Input.UrgentTimeout()
	if !crossedWorkspace || timeout <= 0 {
		w.View.SetUrgent(false)
		return
	}
	r.urgentTimers[w] = time.AfterFunc(timeout, func() {
		w.View.SetUrgent(false)
	})
}

// GetActiveWorkspace returns the pending active workspace, or nil.
func (r *Root) GetActiveWorkspace() *Workspace { return r.pending.ActiveWorkspace }

// GetActiveOutput returns the pending active output, or nil.
func (r *Root) GetActiveOutput() *Output { return r.pending.ActiveOutput }

// Outputs returns the pending output list.
func (r *Root) Outputs() []*Output { return r.pending.Outputs }

// Workspaces returns the pending workspace list.
func (r *Root) Workspaces() []*Workspace { return r.pending.Workspaces }
