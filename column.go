package meridian

import (
	"math"

	"github.com/meridianwm/meridian/scene"
)

// Layout selects a Column's arrangement algorithm.
type Layout uint8

const (
	LayoutSplit Layout = iota
	LayoutStacked
)

// columnState is Column's double-buffered record.
type columnState struct {
	Layout        Layout
	Children      []*Window
	ActiveChild   *Window
	WidthFraction float64
	IsFirstChild  bool
	IsLastChild   bool

	Workspace *Workspace
	Output    *Output
	Box       Box
	Theme     *Theme

	Focused bool
	Dead    bool

	ShowPreview           bool
	PreviewTarget         *Window
	PreviewBox            Box
	PreviewHeightFraction float64
	PreviewAnchorY        float64
}

func copyColumnState(dst *columnState, src columnState) {
	children := dst.Children
	if cap(children) < len(src.Children) {
		children = make([]*Window, len(src.Children))
	} else {
		children = children[:len(src.Children)]
	}
	copy(children, src.Children)
	src.Children = children
	*dst = src
}

// Column is an ordered sequence of Windows with a layout and fractional
// widths/heights.
type Column struct {
	ID    ColumnID
	Scene *scene.Node

	pending, committed, current columnState
	dirty                       bool
	freed                       bool

	tm *TransactionManager

	BeginDestroy_ Signal[*Column]
	Destroyed     Signal[*Column]
}

// NewColumn creates an empty Column on workspace/output with theme.
func NewColumn(tm *TransactionManager, ids *idGenerator, workspace *Workspace, output *Output, theme *Theme) *Column {
	c := &Column{
		ID:    ColumnID(ids.next()),
		tm:    tm,
		Scene: scene.NewSubtree("column"),
	}
	c.pending.Workspace = workspace
	c.pending.Output = output
	c.pending.Theme = theme
	c.pending.WidthFraction = 0 // "new" sentinel per workspace_arrange step 1

	tm.Commit.Connect(c.onCommit)
	tm.Apply.Connect(c.onApply)
	tm.AfterApply.Connect(c.onAfterApply)

	c.SetDirty()
	return c
}

// SetDirty marks this column for the next transaction round.
func (c *Column) SetDirty() {
	c.dirty = true
	c.tm.EnsureQueued()
}

func (c *Column) onCommit(struct{}) {
	if !c.dirty {
		return
	}
	copyColumnState(&c.committed, c.pending)
}

func (c *Column) onApply(struct{}) {
	if !c.dirty {
		return
	}
	if !c.committed.Dead {
		c.applyScene()
	}
	copyColumnState(&c.current, c.committed)
	c.dirty = false
}

func (c *Column) onAfterApply(struct{}) {
	if c.current.Dead && !c.freed {
		c.freed = true
		c.Scene.Destroy()
		c.Destroyed.Emit(c)
	}
}

func (c *Column) applyScene() {
	b := c.committed.Box
	c.Scene.SetPosition(b.X, b.Y)
	c.Scene.SetSize(b.Width, b.Height)
}

// FindChild reports whether window is a child of this column.
func (c *Column) FindChild(window *Window) bool {
	return c.indexOf(window) >= 0
}

func (c *Column) indexOf(window *Window) int {
	for i, ch := range c.pending.Children {
		if ch == window {
			return i
		}
	}
	return -1
}

// GetFirstChild returns the first child, or nil if empty.
func (c *Column) GetFirstChild() *Window {
	if len(c.pending.Children) == 0 {
		return nil
	}
	return c.pending.Children[0]
}

// GetLastChild returns the last child, or nil if empty.
func (c *Column) GetLastChild() *Window {
	if len(c.pending.Children) == 0 {
		return nil
	}
	return c.pending.Children[len(c.pending.Children)-1]
}

// AddChild appends a detached window to the end of the column.
func (c *Column) AddChild(window *Window) {
	c.InsertChild(window, len(c.pending.Children))
}

// InsertChild inserts a detached window at index, panicking if window is
// already attached to a column or workspace floating list — insertion
// requires a detached window.
func (c *Column) InsertChild(window *Window, index int) {
	if window.pending.ParentColumn != nil || window.pending.Workspace != nil {
		panic("meridian: Column.InsertChild requires a detached window")
	}
	if index < 0 || index > len(c.pending.Children) {
		panic("meridian: Column.InsertChild index out of range")
	}
	children := append(c.pending.Children, nil)
	copy(children[index+1:], children[index:])
	children[index] = window
	c.pending.Children = children

	if c.pending.ActiveChild == nil {
		c.pending.ActiveChild = window
	}
	if window.pending.HeightFraction <= 0 {
		window.pending.HeightFraction = 1
	}
	window.ReconcileTiling(c)
	window.HandleFullscreenReparent()
	c.Scene.AddChild(window.Scene)
	c.SetDirty()
}

// AddSibling inserts newWindow next to fixed — after it if after is true,
// otherwise before it. fixed must already be a child of this column.
func (c *Column) AddSibling(fixed, newWindow *Window, after bool) {
	idx := c.indexOf(fixed)
	if idx < 0 {
		panic("meridian: Column.AddSibling: fixed is not a child of this column")
	}
	if after {
		idx++
	}
	c.InsertChild(newWindow, idx)
}

// RemoveChild detaches window from the column. No-op if window is not a
// child. Rebinds active_child to the previous sibling, or to what is now
// at index 0 if the removed child was first.
func (c *Column) RemoveChild(window *Window) {
	idx := c.indexOf(window)
	if idx < 0 {
		return
	}
	children := c.pending.Children
	copy(children[idx:], children[idx+1:])
	c.pending.Children = children[:len(children)-1]

	if c.pending.ActiveChild == window {
		switch {
		case len(c.pending.Children) == 0:
			c.pending.ActiveChild = nil
		case idx == 0:
			c.pending.ActiveChild = c.pending.Children[0]
		default:
			c.pending.ActiveChild = c.pending.Children[idx-1]
		}
	}
	window.ReconcileDetached()
	window.Scene.RemoveFromParent()
	c.SetDirty()
}

// SetActiveChild sets the active child, which must already be a child of
// this column.
func (c *Column) SetActiveChild(window *Window) {
	if c.indexOf(window) < 0 {
		panic("meridian: Column.SetActiveChild: not a child of this column")
	}
	c.pending.ActiveChild = window
	c.SetDirty()
}

// ConsiderDestroy begins destruction if the column's child list is empty.
// A no-op otherwise; removing the last child does not by itself destroy
// the column.
func (c *Column) ConsiderDestroy() {
	if len(c.pending.Children) == 0 {
		c.BeginDestroyColumn()
	}
}

// BeginDestroyColumn is idempotent: detaches from its workspace and
// cascades a consider-destroy there.
func (c *Column) BeginDestroyColumn() {
	if c.pending.Dead {
		return
	}
	c.pending.Dead = true
	c.BeginDestroy_.Emit(c)
	if ws := c.pending.Workspace; ws != nil {
		ws.RemoveColumn(c)
		ws.ConsiderDestroy()
	}
	c.SetDirty()
}

// Reconcile recomputes parent-derived fields for a column attached to
// workspace/output.
func (c *Column) Reconcile(workspace *Workspace, output *Output) {
	c.pending.Workspace = workspace
	c.pending.Output = output
	c.SetDirty()
}

// ReconcileDetached clears parent-derived fields.
func (c *Column) ReconcileDetached() {
	c.pending.Workspace = nil
	c.pending.Output = nil
	c.SetDirty()
}

// GetBox returns the column's pending outer geometry.
func (c *Column) GetBox() Box { return c.pending.Box }

// SetShowPreview toggles whether Arrange reserves space for a preview box
// and, when true, records the fraction of available space it should claim
// — used by seatop_move while dragging a tiling window over this column.
func (c *Column) SetShowPreview(show bool, heightFraction float64) {
	c.pending.ShowPreview = show
	c.pending.PreviewHeightFraction = heightFraction
	c.SetDirty()
}

// GetPreviewTarget returns the child after which ComputePreviewTarget last
// decided to insert the preview (nil means "before the first child").
func (c *Column) GetPreviewTarget() *Window { return c.pending.PreviewTarget }

// InsertAtPreviewTarget inserts window at the slot ComputePreviewTarget
// last selected: right after PreviewTarget, or at the front if
// PreviewTarget is nil.
func (c *Column) InsertAtPreviewTarget(window *Window) {
	target := c.pending.PreviewTarget
	if target == nil {
		c.InsertChild(window, 0)
		return
	}
	c.AddSibling(target, window, true)
}

// SetResizing forwards the resizing hint to every child window.
func (c *Column) SetResizing(resizing bool) {
	for _, ch := range c.pending.Children {
		ch.SetResizing(resizing)
	}
}

func (c *Column) titlebarHeight() float64 {
	return c.pending.Theme.Decoration(RoleTiling, StateInactive).TitlebarHeight
}

// AvailableHeight returns the SPLIT layout's total pixel height shared out
// by children's height_fraction (box height minus every child's titlebar
// and any shown preview's titlebar) — the denominator seatop_resize_tiling
// uses to convert a pixel drag delta into a height_fraction delta.
func (c *Column) AvailableHeight() float64 {
	titlebarH := c.titlebarHeight()
	box := c.pending.Box
	previewTitlebar := 0.0
	if c.pending.ShowPreview {
		previewTitlebar = c.pending.Theme.PreviewTitlebarHeight
	}
	return clampNonNegative(box.Height - titlebarH*float64(len(c.pending.Children)) - previewTitlebar)
}

// Arrange lays out children per the column's layout (SPLIT or
// STACKED), then recurses into each child's own Arrange.
func (c *Column) Arrange() {
	children := c.pending.Children
	if len(children) == 0 {
		return
	}
	titlebarH := c.titlebarHeight()
	box := c.pending.Box
	showPreview := c.pending.ShowPreview
	previewTitlebar := 0.0
	if showPreview {
		previewTitlebar = c.pending.Theme.PreviewTitlebarHeight
	}

	switch c.pending.Layout {
	case LayoutStacked:
		sumTitlebars := titlebarH * float64(len(children))
		availableContent := clampNonNegative(box.Height - sumTitlebars - previewTitlebar)
		y := box.Y
		for _, ch := range children {
			isActive := ch == c.pending.ActiveChild
			h := titlebarH
			if isActive {
				h += availableContent
			}
			ch.pending.Shaded = !isActive
			ch.pending.Box = Box{X: box.X, Y: y, Width: box.Width, Height: h}
			ch.Arrange()
			ch.SetDirty()
			y += h
		}
	default: // LayoutSplit
		var totalFraction float64
		for _, ch := range children {
			if !ch.pending.Fullscreen {
				totalFraction += ch.pending.HeightFraction
			}
		}
		if showPreview {
			totalFraction += c.pending.PreviewHeightFraction
		}
		available := clampNonNegative(box.Height - titlebarH*float64(len(children)) - previewTitlebar)
		y := box.Y
		for _, ch := range children {
			ch.pending.Shaded = false
			if ch.pending.Fullscreen {
				continue
			}
			h := titlebarH
			if totalFraction > 0 {
				h += roundHalfAwayFromZero(available * ch.pending.HeightFraction / totalFraction)
			}
			ch.pending.Box = Box{X: box.X, Y: y, Width: box.Width, Height: h}
			ch.Arrange()
			ch.SetDirty()
			y += h
		}
	}
}

// previewHeight computes the height the preview box would occupy under
// the column's current layout, sharing the same available-space formula
// as Arrange's per-child height so the preview visually matches a real
// child of equivalent weight.
func (c *Column) previewHeight() float64 {
	titlebarH := c.titlebarHeight()
	box := c.pending.Box
	if c.pending.Layout == LayoutStacked {
		sum := titlebarH * float64(len(c.pending.Children))
		return clampNonNegative(box.Height - sum - c.pending.Theme.PreviewTitlebarHeight)
	}
	var totalFraction float64
	for _, ch := range c.pending.Children {
		totalFraction += ch.pending.HeightFraction
	}
	totalFraction += c.pending.PreviewHeightFraction
	if totalFraction <= 0 {
		return 0
	}
	available := clampNonNegative(box.Height - titlebarH*float64(len(c.pending.Children)) - c.pending.Theme.PreviewTitlebarHeight)
	return available * c.pending.PreviewHeightFraction / totalFraction
}

// ComputePreviewTarget selects the insertion position whose preview
// baseline (the preview box's vertical midpoint) lands closest to
// anchorY, recording the result in PreviewTarget: the child after which
// the preview sits, or nil for "before the first child".
func (c *Column) ComputePreviewTarget(anchorY float64) {
	previewH := c.previewHeight()
	box := c.pending.Box

	y := box.Y
	bestDiff := math.Inf(1)
	var bestTarget *Window
	first := true

	consider := func(topY float64, target *Window) {
		baseline := topY + previewH/2
		diff := math.Abs(baseline - anchorY)
		if first || diff < bestDiff {
			first = false
			bestDiff = diff
			bestTarget = target
		}
	}

	consider(y, nil)
	for _, ch := range c.pending.Children {
		y += ch.pending.Box.Height
		consider(y, ch)
	}
	c.pending.PreviewTarget = bestTarget
	c.pending.PreviewAnchorY = anchorY
}
