package scrollmarks

import (
	"fmt"
	"strings"
)

// renderCSS produces the scrollbar styling for one pass: overall width, the
// track background (gradient or solid track color), and the thumb with its
// hover state. The text is deterministic for identical inputs so repeated
// passes over an unchanged document inject byte-identical styling.
func renderCSS(cfg Config, marks []ColorMark) string {
	background := cfg.TrackColor
	if grad := buildGradient(marks, cfg.TrackColor); grad != nil {
		background = grad.CSS()
	}

	radius := cfg.ScrollbarWidth / 2 // integer floor

	var sb strings.Builder
	rule := func(pseudo, body string) {
		sb.WriteString(cfg.Container)
		sb.WriteString(pseudo)
		sb.WriteString(" { ")
		sb.WriteString(body)
		sb.WriteString(" }\n")
	}

	rule("::-webkit-scrollbar", fmt.Sprintf("width: %dpx;", cfg.ScrollbarWidth))
	rule("::-webkit-scrollbar-track", fmt.Sprintf("background: %s;", background))
	rule("::-webkit-scrollbar-thumb", fmt.Sprintf("background: %s; border-radius: %dpx;", cfg.ThumbColor, radius))
	rule("::-webkit-scrollbar-thumb:hover", fmt.Sprintf("background: %s; filter: brightness(1.25);", cfg.ThumbColor))

	return sb.String()
}
