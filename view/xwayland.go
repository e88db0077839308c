package view

// Xwayland is a View backed by an X11 client via XWayland. There is no
// configure-ack serial in X11; instead the client's next commit is
// expected to report exactly the geometry the core last configured, and
// the core acks by comparing that reported geometry. Xwayland additionally
// distinguishes override-redirect ("unmanaged") surfaces, which never
// enter the tree — they are exposed here purely so the wire-protocol
// layer can decide not to call window_create for them at all.
type Xwayland struct {
	Base

	// Unmanaged marks an override-redirect surface. The core never wraps
	// one of these in a Window; it is tracked outside the tree and
	// composited above it.
	Unmanaged bool

	lastConfigured Geometry
	fullscreen     bool
	tiled          bool
	activated      bool
	resizing       bool
	frozen         bool
}

// NewXwayland constructs an Xwayland view over surface with the given
// natural size.
func NewXwayland(surface any, naturalW, naturalH float64, foreignToplevel any, unmanaged bool) *Xwayland {
	return &Xwayland{Base: NewBase(surface, naturalW, naturalH, foreignToplevel), Unmanaged: unmanaged}
}

func (v *Xwayland) Type() Type { return TypeXwayland }

func (v *Xwayland) Configure(x, y, width, height float64) uint32 {
	v.lastConfigured = Geometry{X: x, Y: y, Width: width, Height: height}
	return 0
}

// CommitGeometry is called by the protocol layer when the client's commit
// reports a new geometry. If it matches the last Configure exactly, the
// configure is considered acked; either way Hooks.OnCommitGeometry fires
// so the core can freeze/unfreeze and release commit locks accordingly.
func (v *Xwayland) CommitGeometry(g Geometry) {
	if h := v.Hooks(); h.OnCommitGeometry != nil {
		h.OnCommitGeometry(g)
	}
}

// ConfigureAcked reports whether g matches the geometry from the most
// recent Configure call, the X11 equivalent of a matching ack serial.
func (v *Xwayland) ConfigureAcked(g Geometry) bool {
	return g == v.lastConfigured
}

func (v *Xwayland) SetFullscreen(enabled bool)  { v.fullscreen = enabled }
func (v *Xwayland) SetTiled(tiled bool)         { v.tiled = tiled }
func (v *Xwayland) SetActivated(activated bool) { v.activated = activated }
func (v *Xwayland) SetResizing(resizing bool)   { v.resizing = resizing }

func (v *Xwayland) Close() {
	if h := v.Hooks(); h.OnUnmap != nil {
		h.OnUnmap()
	}
}

func (v *Xwayland) FreezeBuffer()   { v.frozen = true }
func (v *Xwayland) UnfreezeBuffer() { v.frozen = false }
func (v *Xwayland) SendFrameDone()  {}
func (v *Xwayland) CenterSurface()  {}
