package meridian

import "os"

// debugEnabled gates invariant-check panics.
// Set MERIDIAN_DEBUG to any non-empty value to enable.
var debugEnabled = os.Getenv("MERIDIAN_DEBUG") != ""

// checkInvariants runs the structural tree invariants that must
// hold at every before_commit: container exclusivity, active-child/
// active-column membership, workspace/output agreement between a window
// and its parent column, and the mutual exclusivity of the three focus
// layers. It is a no-op unless debugEnabled: invariant checks run only
// in the before_commit validation pass of debug builds, and a
// violation here is a programmer error, not a recoverable condition.
func (r *Root) checkInvariants() {
	if !debugEnabled {
		return
	}

	seenColumns := map[*Column]bool{}
	seenWindows := map[*Window]bool{}

	for _, ws := range r.pending.Workspaces {
		if ws.pending.ActiveColumn != nil && ws.columnIndex(ws.pending.ActiveColumn) < 0 {
			panic("meridian: invariant violated: workspace.active_column not in workspace.columns")
		}
		for _, c := range ws.pending.Columns {
			if seenColumns[c] {
				panic("meridian: invariant violated: column appears in more than one workspace")
			}
			seenColumns[c] = true

			if c.pending.Workspace != ws {
				panic("meridian: invariant violated: column.workspace != its owning workspace")
			}
			if c.pending.ActiveChild != nil && c.indexOf(c.pending.ActiveChild) < 0 {
				panic("meridian: invariant violated: column.active_child not in column.children")
			}
			for _, w := range c.pending.Children {
				if seenWindows[w] {
					panic("meridian: invariant violated: window appears in more than one container")
				}
				seenWindows[w] = true

				if w.pending.ParentColumn != c {
					panic("meridian: invariant violated: window.parent_column != its owning column")
				}
				if !w.pending.Fullscreen {
					if w.pending.Workspace != ws {
						panic("meridian: invariant violated: window.workspace != its column's workspace")
					}
					if w.pending.Output != c.pending.Output {
						panic("meridian: invariant violated: window.output != its column's output")
					}
				}
			}
		}
		for _, w := range ws.pending.Floating {
			if seenWindows[w] {
				panic("meridian: invariant violated: window appears in more than one container")
			}
			seenWindows[w] = true

			if w.pending.ParentColumn != nil {
				panic("meridian: invariant violated: floating window has a parent column")
			}
			if w.pending.Workspace != ws {
				panic("meridian: invariant violated: floating window.workspace != its owning workspace")
			}
		}
		if ws.pending.Focused && r.pending.ActiveWorkspace != ws {
			panic("meridian: invariant violated: workspace.focused but not root.active_workspace")
		}
	}

	focused := r.pending.Focused
	switch {
	case focused.Window != nil && (focused.Layer != nil || focused.UnmanagedSurface != nil):
		panic("meridian: invariant violated: focused_window set alongside focused_layer/focused_unmanaged")
	case focused.Layer != nil && focused.UnmanagedSurface != nil:
		panic("meridian: invariant violated: focused_layer set alongside focused_unmanaged")
	}
}
