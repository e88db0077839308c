package meridian

import "math"

// Box is an axis-aligned outer geometry in output-local pixels: top-left
// (X, Y), outer (Width, Height). Every tree entity with on-screen geometry
// stores one of these per buffered state record.
type Box struct {
	X, Y, Width, Height float64
}

// Edges is a border/inset thickness on each side, used both for a window's
// decoration (border_left/right/top/bottom) and for content insetting.
type Edges struct {
	Left, Top, Right, Bottom float64
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// insetContent derives content geometry from outer geometry, a titlebar
// height, and border edges — the Window.arrange geometry contract: content
// fills the outer box when fullscreen, otherwise it is the outer box minus
// titlebar and border. Negative results are clamped to zero, never
// surfaced as an error.
func insetContent(outer Box, titlebarHeight float64, border Edges, fullscreen bool) Box {
	if fullscreen {
		return outer
	}
	return Box{
		X:      outer.X + border.Left,
		Y:      outer.Y + titlebarHeight + border.Top,
		Width:  clampNonNegative(outer.Width - border.Left - border.Right),
		Height: clampNonNegative(outer.Height - titlebarHeight - border.Top - border.Bottom),
	}
}

// outerFromContent is the inverse of insetContent, used by
// Window.SetGeometryFromContent for floating windows resizing from their
// content rectangle (e.g. an xdg_surface configure that reports a new
// content size directly).
func outerFromContent(content Box, titlebarHeight float64, border Edges) Box {
	return Box{
		X:      content.X - border.Left,
		Y:      content.Y - titlebarHeight - border.Top,
		Width:  content.Width + border.Left + border.Right,
		Height: content.Height + titlebarHeight + border.Top + border.Bottom,
	}
}

// roundHalfAwayFromZero matches the "rounded at layout time to avoid
// cumulative drift" requirement for fractional layout math — plain
// math.Round, applied once at the point pixel offsets are computed, not
// carried through as an accumulating fractional remainder.
func roundHalfAwayFromZero(v float64) float64 {
	return math.Round(v)
}

// normalizeFractions rescales fractions in place so they sum to 1.0. A
// nil or all-zero input is left unchanged (callers are expected to seed new
// entries with a positive provisional fraction before calling this).
func normalizeFractions(fractions []float64) {
	var sum float64
	for _, f := range fractions {
		sum += f
	}
	if sum <= 0 {
		return
	}
	for i := range fractions {
		fractions[i] /= sum
	}
}
