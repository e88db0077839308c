package meridian

import "testing"

func TestResolveFocusStatePrecedence(t *testing.T) {
	cases := []struct {
		urgent, focused, active bool
		want                    FocusState
	}{
		{true, true, true, StateUrgent},
		{false, true, true, StateFocused},
		{false, false, true, StateActive},
		{false, false, false, StateInactive},
	}
	for _, c := range cases {
		if got := resolveFocusState(c.urgent, c.focused, c.active); got != c.want {
			t.Fatalf("resolveFocusState(%v,%v,%v) = %v, want %v", c.urgent, c.focused, c.active, got, c.want)
		}
	}
}

func TestThemeSetAndGetDecoration(t *testing.T) {
	theme := NewDefaultTheme()
	custom := Decoration{TitlebarHeight: 40, Border: Edges{Left: 3}}
	theme.Set(RoleFloating, StateFocused, custom)

	got := theme.Decoration(RoleFloating, StateFocused)
	if got != custom {
		t.Fatalf("expected custom decoration to round-trip, got %+v", got)
	}

	other := theme.Decoration(RoleTiling, StateInactive)
	if other.TitlebarHeight != 24 {
		t.Fatalf("expected untouched cell to keep its default, got %+v", other)
	}
}
