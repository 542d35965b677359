package css

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorStop represents a color and its position in a gradient. The color is
// kept as its raw token; it is only parsed into channels when painted.
type ColorStop struct {
	Color  string
	Offset float64 // 0.0 to 1.0 (percentage as decimal)
}

// Gradient represents a linear CSS gradient.
type Gradient struct {
	Direction string // "to right", "to bottom", etc.
	Stops     []ColorStop
}

// CSS serializes the gradient back to linear-gradient() notation. Offsets are
// formatted with fixed two-decimal percentages so identical inputs always
// produce byte-identical output.
func (g *Gradient) CSS() string {
	var sb strings.Builder
	sb.WriteString("linear-gradient(")
	sb.WriteString(g.Direction)
	for _, stop := range g.Stops {
		sb.WriteString(", ")
		sb.WriteString(stop.Color)
		sb.WriteByte(' ')
		sb.WriteString(FormatPercent(stop.Offset * 100))
	}
	sb.WriteByte(')')
	return sb.String()
}

// FormatPercent renders a percentage with fixed two-decimal precision.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// ParseLinearGradient parses a linear-gradient() CSS value.
// Example: "linear-gradient(to bottom, red 5.00%, red 15.00%)"
func ParseLinearGradient(value string) (*Gradient, bool) {
	value = strings.TrimSpace(value)

	if !strings.HasPrefix(value, "linear-gradient(") {
		return nil, false
	}
	if !strings.HasSuffix(value, ")") {
		return nil, false
	}

	content := value[len("linear-gradient(") : len(value)-1]

	// Split by commas, being careful about commas inside rgb()/rgba()
	parts := splitGradientParts(content)
	if len(parts) < 2 {
		return nil, false
	}

	grad := &Gradient{Stops: make([]ColorStop, 0)}

	startIdx := 0
	firstPart := strings.TrimSpace(parts[0])
	if strings.HasPrefix(firstPart, "to ") || strings.HasSuffix(firstPart, "deg") {
		grad.Direction = firstPart
		startIdx = 1
	} else {
		grad.Direction = "to bottom"
	}

	for i := startIdx; i < len(parts); i++ {
		stop, ok := parseColorStop(strings.TrimSpace(parts[i]))
		if !ok {
			return nil, false
		}
		grad.Stops = append(grad.Stops, stop)
	}

	if len(grad.Stops) < 2 {
		return nil, false
	}

	grad.fillMissingOffsets()
	return grad, true
}

// parseColorStop parses a color stop like "red 50%" or "rgba(0,0,0,0.5) 12.50%".
// A stop without a position gets offset -1 and is filled in afterwards.
func parseColorStop(stop string) (ColorStop, bool) {
	if stop == "" {
		return ColorStop{}, false
	}

	fields := strings.Fields(stop)
	last := fields[len(fields)-1]
	if len(fields) >= 2 && strings.HasSuffix(last, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(last, "%"), 64)
		if err != nil {
			return ColorStop{}, false
		}
		color := strings.Join(fields[:len(fields)-1], " ")
		return ColorStop{Color: color, Offset: pct / 100.0}, true
	}

	return ColorStop{Color: strings.Join(fields, " "), Offset: -1}, true
}

// splitGradientParts splits gradient content by commas, respecting parentheses.
func splitGradientParts(content string) []string {
	var parts []string
	var current strings.Builder
	parenDepth := 0

	for _, ch := range content {
		if ch == '(' {
			parenDepth++
			current.WriteRune(ch)
		} else if ch == ')' {
			parenDepth--
			current.WriteRune(ch)
		} else if ch == ',' && parenDepth == 0 {
			parts = append(parts, current.String())
			current.Reset()
		} else {
			current.WriteRune(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// fillMissingOffsets fills in any color stops that don't have explicit
// offsets: first defaults to 0, last to 1, gaps interpolate linearly.
func (g *Gradient) fillMissingOffsets() {
	if len(g.Stops) == 0 {
		return
	}

	if g.Stops[0].Offset < 0 {
		g.Stops[0].Offset = 0
	}
	lastIdx := len(g.Stops) - 1
	if g.Stops[lastIdx].Offset < 0 {
		g.Stops[lastIdx].Offset = 1.0
	}

	for i := 0; i < len(g.Stops); i++ {
		if g.Stops[i].Offset >= 0 {
			continue
		}

		nextIdx := i + 1
		for nextIdx < len(g.Stops) && g.Stops[nextIdx].Offset < 0 {
			nextIdx++
		}
		prevIdx := i - 1

		prevOffset := g.Stops[prevIdx].Offset
		nextOffset := g.Stops[nextIdx].Offset
		count := nextIdx - prevIdx
		step := (nextOffset - prevOffset) / float64(count)
		g.Stops[i].Offset = prevOffset + step*float64(i-prevIdx)
	}
}
