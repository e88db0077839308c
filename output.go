package meridian

import "github.com/meridianwm/meridian/scene"

// Layer names a wlr-layer-shell stacking layer.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
	numLayers
)

// LayerSurface is the minimal shape the core needs from a layer-shell
// client: which edges it anchors to, how much space it exclusively claims
// along that edge, its placed geometry in layout coordinates (set by the
// layer-shell arranger, read by hit-testing), and whether it accepts
// keyboard focus when clicked.
type LayerSurface struct {
	Anchor        Edges // nonzero components mark anchored edges
	ExclusiveZone float64

	Box                 Box
	KeyboardInteractive bool
}

type outputState struct {
	Geometry   Box
	UsableArea Box

	Layers [numLayers][]LayerSurface

	FullscreenWindows []*Window // stack; top (visible) is the last element

	Enabled bool
	Dead    bool
}

func copyOutputState(dst *outputState, src outputState) {
	for i := range src.Layers {
		layer := dst.Layers[i]
		if cap(layer) < len(src.Layers[i]) {
			layer = make([]LayerSurface, len(src.Layers[i]))
		} else {
			layer = layer[:len(src.Layers[i])]
		}
		copy(layer, src.Layers[i])
		src.Layers[i] = layer
	}
	stack := dst.FullscreenWindows
	if cap(stack) < len(src.FullscreenWindows) {
		stack = make([]*Window, len(src.FullscreenWindows))
	} else {
		stack = stack[:len(src.FullscreenWindows)]
	}
	copy(stack, src.FullscreenWindows)
	src.FullscreenWindows = stack
	*dst = src
}

// Output represents a connected physical display region.
type Output struct {
	ID   OutputID
	Name string

	Scene *scene.Node

	pending, committed, current outputState
	dirty                       bool
	freed                       bool

	tm *TransactionManager

	BeginDestroy_ Signal[*Output]
	Destroyed     Signal[*Output]
}

// NewOutput creates an Output named name at geometry.
func NewOutput(tm *TransactionManager, ids *idGenerator, name string, geometry Box) *Output {
	o := &Output{
		ID:    OutputID(ids.next()),
		Name:  name,
		tm:    tm,
		Scene: scene.NewSubtree("output:" + name),
	}
	o.pending.Geometry = geometry
	o.pending.UsableArea = geometry
	o.pending.Enabled = true

	tm.Commit.Connect(o.onCommit)
	tm.Apply.Connect(o.onApply)
	tm.AfterApply.Connect(o.onAfterApply)

	o.SetDirty()
	return o
}

func (o *Output) SetDirty() {
	o.dirty = true
	o.tm.EnsureQueued()
}

func (o *Output) onCommit(struct{}) {
	if !o.dirty {
		return
	}
	copyOutputState(&o.committed, o.pending)
}

func (o *Output) onApply(struct{}) {
	if !o.dirty {
		return
	}
	if !o.committed.Dead {
		o.Scene.SetPosition(o.committed.Geometry.X, o.committed.Geometry.Y)
		o.Scene.SetSize(o.committed.Geometry.Width, o.committed.Geometry.Height)
	}
	copyOutputState(&o.current, o.committed)
	o.dirty = false
}

func (o *Output) onAfterApply(struct{}) {
	if o.current.Dead && !o.freed {
		o.freed = true
		o.Scene.Destroy()
		o.Destroyed.Emit(o)
	}
}

// AddLayerSurface registers a layer-shell surface on layer and recomputes
// the usable area.
func (o *Output) AddLayerSurface(layer Layer, surf LayerSurface) {
	o.pending.Layers[layer] = append(o.pending.Layers[layer], surf)
	o.recomputeUsableArea()
	o.SetDirty()
}

// RemoveLayerSurface removes the first matching surface on layer.
func (o *Output) RemoveLayerSurface(layer Layer, surf LayerSurface) {
	list := o.pending.Layers[layer]
	for i, s := range list {
		if s == surf {
			copy(list[i:], list[i+1:])
			o.pending.Layers[layer] = list[:len(list)-1]
			break
		}
	}
	o.recomputeUsableArea()
	o.SetDirty()
}

// recomputeUsableArea shrinks the output's geometry by every layer
// surface's exclusive zone, one anchored edge at a time.
func (o *Output) recomputeUsableArea() {
	area := o.pending.Geometry
	for _, layers := range o.pending.Layers {
		for _, s := range layers {
			switch {
			case s.Anchor.Top > 0:
				area.Y += s.ExclusiveZone
				area.Height -= s.ExclusiveZone
			case s.Anchor.Bottom > 0:
				area.Height -= s.ExclusiveZone
			case s.Anchor.Left > 0:
				area.X += s.ExclusiveZone
				area.Width -= s.ExclusiveZone
			case s.Anchor.Right > 0:
				area.Width -= s.ExclusiveZone
			}
		}
	}
	area.Width = clampNonNegative(area.Width)
	area.Height = clampNonNegative(area.Height)
	o.pending.UsableArea = area
}

// layerSurfaceAt returns the topmost surface on the given layers
// containing (x, y). Later additions within a layer stack above earlier
// ones.
func (o *Output) layerSurfaceAt(x, y float64, layers ...Layer) (LayerSurface, bool) {
	for _, l := range layers {
		list := o.pending.Layers[l]
		for i := len(list) - 1; i >= 0; i-- {
			b := list[i].Box
			if x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height {
				return list[i], true
			}
		}
	}
	return LayerSurface{}, false
}

// GetUsableArea returns the pending usable area (geometry minus reserved
// layer-shell space).
func (o *Output) GetUsableArea() Box { return o.pending.UsableArea }

// GetGeometry returns the pending full output geometry.
func (o *Output) GetGeometry() Box { return o.pending.Geometry }

// pushFullscreen records window as the newly-topmost fullscreen window on
// this output.
func (o *Output) pushFullscreen(window *Window) {
	for _, w := range o.pending.FullscreenWindows {
		if w == window {
			return
		}
	}
	o.pending.FullscreenWindows = append(o.pending.FullscreenWindows, window)
	o.SetDirty()
}

// popFullscreen removes window from the fullscreen stack, if present.
func (o *Output) popFullscreen(window *Window) {
	list := o.pending.FullscreenWindows
	for i, w := range list {
		if w == window {
			copy(list[i:], list[i+1:])
			o.pending.FullscreenWindows = list[:len(list)-1]
			o.SetDirty()
			return
		}
	}
}

// reconcile walks the fullscreen stack and drops entries that are no
// longer alive or no longer fullscreen, matching Output's mostly-state
// design: it does not itself decide fullscreen, windows push/pop
// themselves via SetFullscreen and HandleFullscreenReparent.
func (o *Output) reconcile() {
	list := o.pending.FullscreenWindows[:0]
	for _, w := range o.pending.FullscreenWindows {
		if w.IsAlive() && w.pending.Fullscreen && w.pending.Output == o {
			list = append(list, w)
		}
	}
	o.pending.FullscreenWindows = list
	o.SetDirty()
}

// Disable evacuates every column and floating window bound to this output
// to fallback, clearing fullscreen along the way, then arranges every
// affected workspace. fallback must be a different, live output.
func (o *Output) Disable(workspaces []*Workspace, fallback *Output) {
	if fallback == o {
		panic("meridian: Output.Disable requires a fallback different from the output being disabled")
	}
	o.pending.Enabled = false
	for _, ws := range workspaces {
		touched := false
		for _, c := range ws.pending.Columns {
			if c.pending.Output != o {
				continue
			}
			c.pending.Output = fallback
			for _, w := range c.pending.Children {
				w.pending.Output = fallback
				w.pending.Fullscreen = false
			}
			touched = true
		}
		for _, w := range ws.pending.Floating {
			if w.pending.Output != o {
				continue
			}
			w.pending.Output = fallback
			w.pending.Fullscreen = false
			w.FloatingMoveToCenter(fallback.pending.UsableArea)
			touched = true
		}
		if touched {
			ws.Arrange()
			ws.SetDirty()
		}
	}
	o.reconcile()
	o.SetDirty()
	fallback.SetDirty()
}

// BeginDestroyOutput is idempotent.
func (o *Output) BeginDestroyOutput() {
	if o.pending.Dead {
		return
	}
	o.pending.Dead = true
	o.BeginDestroy_.Emit(o)
	o.SetDirty()
}
