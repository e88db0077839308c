package meridian

import (
	"testing"

	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

func TestSeatopDefaultEmptyWorkspaceClickClearsFocus(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)

	r.RequestFocus(FocusTarget{Window: w})
	if r.pending.RequestedFocus.Window != w {
		t.Fatal("expected the seeded focus request to take effect before the click")
	}

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 500, 500 // bare gap, far from the window

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if r.pending.RequestedFocus.Window != nil {
		t.Fatal("expected a click on bare workspace gap to request nil focus")
	}
}

func TestSeatopDefaultMouseBindingSuppressesFurtherDispatch(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	col := r.NewColumn(ws, out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	col.AddChild(w)
	ws.Arrange()

	cfg := inputcfg.NewDefault()
	cfg.Bindings = []inputcfg.MouseBinding{
		{Modifiers: 0, Button: inputcfg.ButtonLeft, Region: inputcfg.RegionContents, Command: "noop"},
	}
	s := NewSeat(r, cfg, SeatHooks{})
	cb := w.pending.ContentBox
	s.PointerX, s.PointerY = cb.X+5, cb.Y+5

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if _, ok := s.CurrentOp().(*seatopDefault); !ok {
		t.Fatal("expected a matched mouse binding to suppress the fallback seatop_down dispatch")
	}
}

func TestSeatopDefaultTitlebarMovePressStartsMove(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 0, Y: 0, Width: 200, Height: 150}
	w.Arrange()

	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)

	s := newTestSeat(r)
	dec := r.Theme.Decoration(RoleFloating, StateInactive)
	s.PointerX, s.PointerY = 10, dec.TitlebarHeight/2 // inside the titlebar strip

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if _, ok := s.CurrentOp().(*seatopMove); !ok {
		t.Fatalf("expected a titlebar press with the move button to start seatop_move, got %T", s.CurrentOp())
	}
}

func TestSeatopDefaultBorderClickOnTiledWindowStartsResize(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	col := r.NewColumn(ws, out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	col.AddChild(w)
	ws.Arrange()

	s := newTestSeat(r)
	b := w.pending.Box
	// Left border, outside the content box but inside the outer box.
	s.PointerX, s.PointerY = b.X, b.Y+b.Height/2

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if _, ok := s.CurrentOp().(*seatopResizeTiling); !ok {
		t.Fatalf("expected a border click on a tiled window to start seatop_resize_tiling, got %T", s.CurrentOp())
	}
}

func TestSeatopDefaultPlainSurfacePressStartsDown(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 0, Y: 0, Width: 200, Height: 150}
	w.Arrange()

	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)

	s := newTestSeat(r)
	cb := w.pending.ContentBox
	s.PointerX, s.PointerY = cb.X+5, cb.Y+5

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if _, ok := s.CurrentOp().(*seatopDown); !ok {
		t.Fatalf("expected a plain content-area press to start seatop_down, got %T", s.CurrentOp())
	}
}

func TestSeatopDefaultFocusFollowsMouseAlwaysRefocusesOnEveryMotion(t *testing.T) {
	r := newTestRoot()
	ws := r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	w := r.NewWindow(view.NewXdgShell("s", 100, 100, nil))
	ws.AddFloating(w)
	w.pending.Box = Box{X: 0, Y: 0, Width: 200, Height: 150}
	w.Arrange()
	w.SetDirty()
	r.TM.EnsureQueued()
	r.TM.RunQueued() // materialize committed.Workspace so isVisible() sees it

	cfg := inputcfg.NewDefault()
	cfg.FollowsMouse = inputcfg.FocusFollowsMouseAlways
	s := NewSeat(r, cfg, SeatHooks{})

	cb := w.pending.ContentBox
	s.HandlePointerMotion(cb.X+5, cb.Y+5)

	if r.pending.RequestedFocus.Window != w {
		t.Fatal("expected focus-follows-mouse=always to request focus on hovering a window")
	}
}

func TestSeatopDefaultLayerClickRoutesFocusWhenKeyboardInteractive(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	surf := LayerSurface{
		Anchor:              Edges{Top: 1},
		ExclusiveZone:       24,
		Box:                 Box{X: 0, Y: 0, Width: 1920, Height: 24},
		KeyboardInteractive: true,
	}
	out.AddLayerSurface(LayerTop, surf)

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 100, 10 // inside the bar

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if r.pending.RequestedFocus.Layer != any(surf) {
		t.Fatal("expected a click on a keyboard-interactive layer surface to request layer focus")
	}
	if _, ok := s.CurrentOp().(*seatopDefault); !ok {
		t.Fatalf("expected no seatop to start on a layer surface click, got %T", s.CurrentOp())
	}
}

func TestSeatopDefaultLayerClickIgnoredWhenNotKeyboardInteractive(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)
	out.AddLayerSurface(LayerTop, LayerSurface{
		Anchor: Edges{Top: 1},
		Box:    Box{X: 0, Y: 0, Width: 1920, Height: 24},
	})

	s := newTestSeat(r)
	s.PointerX, s.PointerY = 100, 10

	s.HandleButton(inputcfg.ButtonLeft, true, 0)

	if r.pending.RequestedFocus.Layer != nil {
		t.Fatal("expected a click on a non-interactive layer surface to leave focus alone")
	}
}

func TestSeatopDefaultMotionOverLayerSwitchesActiveOutput(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	o1 := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	o2 := r.NewOutput("DP-1", Box{X: 1920, Width: 1920, Height: 1080})
	r.SetActiveOutput(o1)
	o2.AddLayerSurface(LayerTop, LayerSurface{
		Anchor: Edges{Top: 1},
		Box:    Box{X: 1920, Y: 0, Width: 1920, Height: 24},
	})

	s := newTestSeat(r)
	s.HandlePointerMotion(2000, 10) // over o2's bar

	if r.GetActiveOutput() != o2 {
		t.Fatal("expected hovering a layer surface on another output to switch the active output")
	}
}

func TestSeatopDefaultAxisBindingSuppressesForwarding(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)

	cfg := inputcfg.NewDefault()
	cfg.Bindings = []inputcfg.MouseBinding{
		{Modifiers: 0, Button: inputcfg.ButtonWheelUp, Region: inputcfg.RegionWorkspace, Command: "noop"},
	}
	forwarded := false
	s := NewSeat(r, cfg, SeatHooks{PointerAxis: func(dx, dy float64) { forwarded = true }})
	s.PointerX, s.PointerY = 500, 500

	s.HandlePointerAxis(0, -1, "mouse0")

	if forwarded {
		t.Fatal("expected a matched axis binding to suppress forwarding to the surface")
	}
}

func TestSeatopDefaultAxisForwardsScaledDelta(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	out := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	r.SetActiveOutput(out)

	var gotDX, gotDY float64
	s := NewSeat(r, scrollFactorConfig{Config: r.Input, factor: 2.5}, SeatHooks{
		PointerAxis: func(dx, dy float64) { gotDX, gotDY = dx, dy },
	})
	s.PointerX, s.PointerY = 500, 500

	s.HandlePointerAxis(1, -2, "mouse0")

	if gotDX != 2.5 || gotDY != -5 {
		t.Fatalf("expected axis deltas scaled by the device scroll factor, got (%v,%v)", gotDX, gotDY)
	}
}

// scrollFactorConfig overrides just ScrollFactor on an embedded Config.
type scrollFactorConfig struct {
	inputcfg.Config
	factor float64
}

func (c scrollFactorConfig) ScrollFactor(deviceName string) float64 { return c.factor }

func TestSeatopDefaultMotionOverBareGapOnOtherOutputSwitchesActive(t *testing.T) {
	r := newTestRoot()
	r.NewWorkspace("main")
	o1 := r.NewOutput("eDP-1", Box{Width: 1920, Height: 1080})
	o2 := r.NewOutput("DP-1", Box{X: 1920, Width: 1920, Height: 1080})
	r.SetActiveOutput(o1)

	s := newTestSeat(r)
	s.HandlePointerMotion(2500, 500) // empty region of o2

	if r.GetActiveOutput() != o2 {
		t.Fatal("expected pointer motion into another output's bare gap to switch the active output")
	}
}
