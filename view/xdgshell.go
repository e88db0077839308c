package view

// XdgShell is a View backed by the Wayland xdg-shell protocol. Configure
// acknowledgement is by serial: the client's next commit reports the
// serial of the configure it is responding to, and the core matches it
// exactly.
type XdgShell struct {
	Base

	nextSerial uint32
	fullscreen bool
	tiled      bool
	activated  bool
	resizing   bool
	frozen     bool
}

// NewXdgShell constructs an XdgShell view over surface with the given
// client-reported natural size.
func NewXdgShell(surface any, naturalW, naturalH float64, foreignToplevel any) *XdgShell {
	return &XdgShell{Base: NewBase(surface, naturalW, naturalH, foreignToplevel)}
}

func (v *XdgShell) Type() Type { return TypeXdgShell }

func (v *XdgShell) Configure(x, y, width, height float64) uint32 {
	v.nextSerial++
	return v.nextSerial
}

// AckConfigure is called by the protocol layer when the client's commit
// carries an ack_configure for serial. Drives Hooks.OnCommitAckSerial.
func (v *XdgShell) AckConfigure(serial uint32) {
	if h := v.Hooks(); h.OnCommitAckSerial != nil {
		h.OnCommitAckSerial(serial)
	}
}

func (v *XdgShell) SetFullscreen(enabled bool)  { v.fullscreen = enabled }
func (v *XdgShell) SetTiled(tiled bool)         { v.tiled = tiled }
func (v *XdgShell) SetActivated(activated bool) { v.activated = activated }
func (v *XdgShell) SetResizing(resizing bool)   { v.resizing = resizing }

func (v *XdgShell) Close() {
	if h := v.Hooks(); h.OnUnmap != nil {
		h.OnUnmap()
	}
}

func (v *XdgShell) FreezeBuffer()   { v.frozen = true }
func (v *XdgShell) UnfreezeBuffer() { v.frozen = false }
func (v *XdgShell) SendFrameDone()  {}
func (v *XdgShell) CenterSurface()  {}
