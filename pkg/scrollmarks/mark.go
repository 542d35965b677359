package scrollmarks

import (
	"sort"
	"strings"
)

// ColorMark is one colored interval on the scroll track: the vertical span of
// a marked element expressed as percentages of total scrollable height.
// Start and End are in [0,100] with Start < End. Color is the element's raw
// color token, trimmed but otherwise opaque.
type ColorMark struct {
	Start float64
	End   float64
	Color string
}

// normalizeSpan converts a document-relative top offset and height into a
// percentage interval of the total scrollable height, clamped to [0,100].
// ok is false for degenerate results (zero height, or clamped to a point),
// which callers drop. total must be positive.
func normalizeSpan(top, height, total float64) (start, end float64, ok bool) {
	start = clampPercent(top / total * 100)
	end = clampPercent((top + height) / total * 100)
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// collectMarks queries the view for marked elements and converts each into a
// ColorMark. Elements with a missing or blank color attribute and elements
// with degenerate geometry are skipped. The result is sorted ascending by
// start; ties keep discovery order.
func collectMarks(view View, selector, attributeName string) []ColorMark {
	total := view.ScrollHeight()
	if total <= 0 {
		return nil
	}
	scroll := view.ScrollOffset()

	var marks []ColorMark
	for _, el := range view.QueryAll(selector) {
		color, ok := el.Attribute(attributeName)
		if !ok {
			continue
		}
		color = strings.TrimSpace(color)
		if color == "" {
			continue
		}

		top := el.BoundingTop() + scroll
		start, end, ok := normalizeSpan(top, el.Height(), total)
		if !ok {
			continue
		}

		marks = append(marks, ColorMark{Start: start, End: end, Color: color})
	}

	sort.SliceStable(marks, func(i, j int) bool {
		return marks[i].Start < marks[j].Start
	})
	return marks
}
