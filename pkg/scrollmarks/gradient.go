package scrollmarks

import (
	"scrollmarks/pkg/css"
)

// epsilon suppresses zero-width track segments that would otherwise appear
// from floating-point noise between adjacent marks.
const epsilon = 0.01

// buildGradient composes the ordered marks into a hard-edged gradient
// covering [0,100] with trackColor filling every gap. Returns nil for an
// empty mark set: the caller renders a solid track color instead.
//
// Overlapping marks are not merged; each mark's segment is emitted in order
// and later stops repaint shared boundaries.
func buildGradient(marks []ColorMark, trackColor string) *css.Gradient {
	if len(marks) == 0 {
		return nil
	}

	grad := &css.Gradient{Direction: "to bottom"}

	lastEnd := 0.0
	for _, mark := range marks {
		if mark.Start > lastEnd+epsilon {
			appendSegment(grad, trackColor, lastEnd, mark.Start)
		}
		appendSegment(grad, mark.Color, mark.Start, mark.End)
		lastEnd = mark.End
	}
	if lastEnd < 100-epsilon {
		appendSegment(grad, trackColor, lastEnd, 100)
	}

	return grad
}

// appendSegment emits one hard-edged color band: a stop at the segment start
// and another at its end, so the rendered gradient shows solid bands rather
// than smooth blends.
func appendSegment(grad *css.Gradient, color string, from, to float64) {
	grad.Stops = append(grad.Stops,
		css.ColorStop{Color: color, Offset: from / 100},
		css.ColorStop{Color: color, Offset: to / 100},
	)
}
