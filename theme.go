package meridian

// ContainerRole classifies how a window sits in the tree for theme lookup:
// the sole (head) window of a tiling column looks different from a
// non-head tiling window, and both differ from a floating window.
type ContainerRole uint8

const (
	RoleTilingHead ContainerRole = iota
	RoleTiling
	RoleFloating
)

// FocusState is the focus/urgency state a theme varies on. Urgent beats
// focused beats active beats inactive (Window theme-resolution order).
type FocusState uint8

const (
	StateInactive FocusState = iota
	StateActive
	StateFocused
	StateUrgent
)

// Decoration holds one (role, state) cell of the theme table: the visual
// and geometric parameters Window.arrange and the scene subtree consume.
type Decoration struct {
	TitlebarHeight float64
	Border         Edges
	TitlebarColor  [4]float64 // RGBA in [0,1], applied to the titlebar nineslice
	BorderColor    [4]float64
}

// Theme is the non-owning, read-only styling table a Window's theme
// pointer resolves into. It never mutates after construction; Root holds
// the current theme and hands out the same pointer to every window.
type Theme struct {
	cells [3][4]Decoration // indexed by [ContainerRole][FocusState]

	// ColumnGap is the pixel gap the arrangement engine places between
	// sibling columns on an output (workspace_arrange step 4).
	ColumnGap float64
	// PreviewTitlebarHeight is charged against available column space when
	// show_preview is set, matching a real child's titlebar cost.
	PreviewTitlebarHeight float64
}

// NewDefaultTheme returns a Theme with a single flat decoration for every
// cell — a reasonable placeholder until a real theme is supplied by
// configuration (out of the core's scope, per the external interfaces).
func NewDefaultTheme() *Theme {
	flat := Decoration{
		TitlebarHeight: 24,
		Border:         Edges{Left: 1, Top: 0, Right: 1, Bottom: 1},
		TitlebarColor:  [4]float64{0.2, 0.2, 0.2, 1},
		BorderColor:    [4]float64{0.1, 0.1, 0.1, 1},
	}
	t := &Theme{ColumnGap: 4, PreviewTitlebarHeight: 24}
	for r := range t.cells {
		for s := range t.cells[r] {
			t.cells[r][s] = flat
		}
	}
	return t
}

// Decoration resolves the (role, state) cell for a window.
func (t *Theme) Decoration(role ContainerRole, state FocusState) Decoration {
	return t.cells[role][state]
}

// Set installs a decoration for one (role, state) cell, letting a
// configuration layer differentiate focused/urgent appearance per role.
func (t *Theme) Set(role ContainerRole, state FocusState, d Decoration) {
	t.cells[role][state] = d
}

// resolveFocusState picks the FocusState precedence rule: urgent beats
// focused beats active beats inactive.
func resolveFocusState(urgent, focused, active bool) FocusState {
	switch {
	case urgent:
		return StateUrgent
	case focused:
		return StateFocused
	case active:
		return StateActive
	default:
		return StateInactive
	}
}
