package inputcfg

import "testing"

func TestFloatingConstraintsClampMin(t *testing.T) {
	c := FloatingConstraints{MinWidth: 100, MinHeight: 80}
	w, h := c.Clamp(50, 30)
	if w != 100 || h != 80 {
		t.Fatalf("expected clamp to minimums, got (%v, %v)", w, h)
	}
}

func TestFloatingConstraintsClampMax(t *testing.T) {
	c := FloatingConstraints{MaxWidth: 1000, MaxHeight: 800}
	w, h := c.Clamp(2000, 1500)
	if w != 1000 || h != 800 {
		t.Fatalf("expected clamp to maximums, got (%v, %v)", w, h)
	}
}

func TestFloatingConstraintsNoOpWhenUnset(t *testing.T) {
	c := FloatingConstraints{}
	w, h := c.Clamp(123, 456)
	if w != 123 || h != 456 {
		t.Fatalf("expected no clamping with zero-valued constraints, got (%v, %v)", w, h)
	}
}

func TestNewDefaultImplementsConfig(t *testing.T) {
	var cfg Config = NewDefault()
	if cfg.FloatingModifier() != ModLogo {
		t.Fatal("expected default floating modifier to be ModLogo")
	}
	if cfg.FocusFollowsMouse() != FocusFollowsMouseNo {
		t.Fatal("expected default focus-follows-mouse to be off")
	}
	if len(cfg.MouseBindings()) != 0 {
		t.Fatal("expected no default mouse bindings")
	}
}
