// Package inputcfg defines the read-only configuration surface the core
// consults: floating constraints, modifier/inversion, focus
// mode, urgent timeout, and the bindings active in the current mode.
// Parsing configuration files is explicitly out of scope; this package
// only shapes what a parsed configuration must expose.
package inputcfg

import "time"

// FocusFollowsMouse selects when hovering a window moves keyboard focus.
type FocusFollowsMouse uint8

const (
	FocusFollowsMouseNo FocusFollowsMouse = iota
	FocusFollowsMouseYes
	FocusFollowsMouseAlways
)

// Region names the part of a window a pointer event landed on, used both
// for binding dispatch and for button-handling priority.
type Region uint8

const (
	RegionTitlebar Region = iota
	RegionBorder
	RegionContents
	RegionWorkspace // empty gap, no window
)

// Modifier is a bitmask of keyboard modifiers, independent of any
// particular keysym source.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCaps
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

// MouseButton identifies a pointer button for binding matching.
type MouseButton uint32

const (
	ButtonLeft MouseButton = iota + 1
	ButtonRight
	ButtonMiddle
	// Wheel pseudo-buttons let mouse bindings match axis events; the seat
	// synthesizes a press+release around each axis step.
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
)

// MouseBinding is one configured (modifiers, button, region) → command
// triple. Command is left as an opaque string: the core dispatches it to
// whatever the configuration layer registers, never interpreting it
// itself.
type MouseBinding struct {
	Modifiers Modifier
	Button    MouseButton
	Region    Region
	Command   string
}

// FloatingConstraints bounds a floating window's outer size.
type FloatingConstraints struct {
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

// Clamp returns (w, h) fitted within the constraints.
func (c FloatingConstraints) Clamp(w, h float64) (float64, float64) {
	if c.MinWidth > 0 && w < c.MinWidth {
		w = c.MinWidth
	}
	if c.MinHeight > 0 && h < c.MinHeight {
		h = c.MinHeight
	}
	if c.MaxWidth > 0 && w > c.MaxWidth {
		w = c.MaxWidth
	}
	if c.MaxHeight > 0 && h > c.MaxHeight {
		h = c.MaxHeight
	}
	return w, h
}

// Config is the read-only configuration interface the core consults. A
// real configuration layer (out of scope here) implements this over its
// own parsed state.
type Config interface {
	// FloatingModifier is the modifier that, held during a click, starts a
	// floating move or resize regardless of which region was clicked.
	FloatingModifier() Modifier
	// FloatingModifierInverse swaps which mouse button (left vs right)
	// performs move vs resize when FloatingModifier is held.
	FloatingModifierInverse() bool
	// FloatingConstraints bounds floating window geometry.
	FloatingConstraints() FloatingConstraints
	// FocusFollowsMouse reports the configured hover-focus mode.
	FocusFollowsMouse() FocusFollowsMouse
	// UrgentTimeout is how long a window stays marked urgent after an
	// activating focus change crosses a workspace boundary. Zero disables
	// the timer (urgency is cleared immediately instead).
	UrgentTimeout() time.Duration
	// PopupDuringFullscreen reports whether a popup from a non-fullscreen
	// window is still shown while another window is fullscreen.
	PopupDuringFullscreen() bool
	// MouseBindings returns the bindings active in the current mode.
	MouseBindings() []MouseBinding
	// ScrollFactor scales axis delta/delta_discrete for the named input
	// device before forwarding to the surface.
	ScrollFactor(deviceName string) float64
}

// Default is a minimal, hard-coded Config useful for tests and as a
// fallback before a real configuration layer is wired in.
type Default struct {
	Modifier        Modifier
	InverseModifier bool
	Constraints     FloatingConstraints
	FollowsMouse    FocusFollowsMouse
	Urgent          time.Duration
	PopupFullscreen bool
	Bindings        []MouseBinding
}

// NewDefault returns a Default with conservative, commonly-used settings:
// Mod4 (Logo) as the floating modifier, no inversion, a 100x100 minimum
// size with no maximum, focus-follows-mouse off, a 500ms urgent timeout.
func NewDefault() *Default {
	return &Default{
		Modifier:     ModLogo,
		Constraints:  FloatingConstraints{MinWidth: 100, MinHeight: 100},
		FollowsMouse: FocusFollowsMouseNo,
		Urgent:       500 * time.Millisecond,
	}
}

func (d *Default) FloatingModifier() Modifier               { return d.Modifier }
func (d *Default) FloatingModifierInverse() bool            { return d.InverseModifier }
func (d *Default) FloatingConstraints() FloatingConstraints { return d.Constraints }
func (d *Default) FocusFollowsMouse() FocusFollowsMouse     { return d.FollowsMouse }
func (d *Default) UrgentTimeout() time.Duration             { return d.Urgent }
func (d *Default) PopupDuringFullscreen() bool              { return d.PopupFullscreen }
func (d *Default) MouseBindings() []MouseBinding            { return d.Bindings }
func (d *Default) ScrollFactor(deviceName string) float64   { return 1.0 }
