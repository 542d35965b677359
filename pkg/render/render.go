// Package render paints a raster preview of a page and its marked
// scrollbar: the visible slice of the content on the left, the styled
// scrollbar strip on the right.
package render

import (
	"image"
	"strings"

	"github.com/fogleman/gg"

	"scrollmarks/pkg/css"
	"scrollmarks/pkg/page"
	"scrollmarks/pkg/scrollmarks"
)

type Renderer struct {
	context   *gg.Context
	width     int
	height    int
	selector  string
	attribute string
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		context:   gg.NewContext(width, height),
		width:     width,
		height:    height,
		selector:  scrollmarks.DefaultSelector,
		attribute: scrollmarks.DefaultAttributeName,
	}
}

// SetMarkSource overrides the selector and attribute used to paint the
// content bands, matching the active instance's configuration. Empty values
// keep the current source.
func (r *Renderer) SetMarkSource(selector, attributeName string) {
	if selector != "" {
		r.selector = selector
	}
	if attributeName != "" {
		r.attribute = attributeName
	}
}

// Render paints the view: page content placeholder, marked-element bands,
// then the scrollbar strip styled by whatever scoped styles the page's mark
// instances have injected.
func (r *Renderer) Render(view *page.DocumentView) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	style := extractScrollbarStyle(view)
	barWidth := float64(style.width)
	contentWidth := float64(r.width) - barWidth

	r.drawContent(view, contentWidth)
	if style.present {
		r.drawScrollbar(view, style, contentWidth, barWidth)
	}
}

// drawContent paints the visible slice of the document: a flat page
// background with a colored band for each marked element that intersects the
// viewport.
func (r *Renderer) drawContent(view *page.DocumentView, contentWidth float64) {
	r.context.SetRGB(0.96, 0.96, 0.97)
	r.context.DrawRectangle(0, 0, contentWidth, float64(r.height))
	r.context.Fill()

	scale := float64(r.height) / view.ViewportHeight()
	for _, el := range view.QueryAll(r.selector) {
		token, ok := el.Attribute(r.attribute)
		if !ok {
			continue
		}
		color, ok := css.ParseColor(token)
		if !ok {
			continue
		}
		top := el.BoundingTop() * scale
		h := el.Height() * scale
		if top+h < 0 || top > float64(r.height) || h <= 0 {
			continue
		}
		r.setColor(color)
		r.context.DrawRectangle(0, top, contentWidth, h)
		r.context.Fill()
	}
}

// drawScrollbar paints the track (solid or gradient bands) and the thumb.
func (r *Renderer) drawScrollbar(view *page.DocumentView, style scrollbarStyle, x, barWidth float64) {
	h := float64(r.height)

	// Track
	if grad, ok := css.ParseLinearGradient(style.trackBackground); ok {
		for i := 0; i+1 < len(grad.Stops); i++ {
			from := grad.Stops[i].Offset * h
			to := grad.Stops[i+1].Offset * h
			if to <= from {
				continue
			}
			color, ok := css.ParseColor(grad.Stops[i].Color)
			if !ok {
				continue
			}
			r.setColor(color)
			r.context.DrawRectangle(x, from, barWidth, to-from)
			r.context.Fill()
		}
	} else if color, ok := css.ParseColor(style.trackBackground); ok {
		r.setColor(color)
		r.context.DrawRectangle(x, 0, barWidth, h)
		r.context.Fill()
	}

	// Thumb, proportional to the visible fraction
	total := view.ScrollHeight()
	if total <= 0 {
		return
	}
	thumbTop := view.ScrollOffset() / total * h
	thumbH := view.ViewportHeight() / total * h
	if thumbH > h {
		thumbH = h
	}
	if color, ok := css.ParseColor(style.thumbBackground); ok {
		r.setColor(color)
		r.context.DrawRoundedRectangle(x+1, thumbTop, barWidth-2, thumbH, style.thumbRadius)
		r.context.Fill()
	}
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

// Image returns the rendered image.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the rendered image to disk.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}

// scrollbarStyle is the subset of injected scrollbar styling the raster
// preview can honor.
type scrollbarStyle struct {
	present         bool
	width           int
	trackBackground string
	thumbBackground string
	thumbRadius     float64
}

// extractScrollbarStyle reads the first scoped style that targets the
// scrollbar pseudo-elements and pulls out the paintable properties.
func extractScrollbarStyle(view *page.DocumentView) scrollbarStyle {
	doc := view.Document()
	for _, id := range doc.ScopedStyleIDs() {
		text, _ := doc.ScopedStyle(id)
		if !strings.Contains(text, "::-webkit-scrollbar") {
			continue
		}
		return parseScrollbarStyle(text)
	}
	return scrollbarStyle{}
}

func parseScrollbarStyle(text string) scrollbarStyle {
	style := scrollbarStyle{present: true, width: 14}
	for _, line := range strings.Split(text, "\n") {
		open := strings.Index(line, "{")
		end := strings.LastIndex(line, "}")
		if open < 0 || end < open {
			continue
		}
		selector := strings.TrimSpace(line[:open])
		props := css.ParseDeclarations(line[open+1 : end])

		switch {
		case strings.HasSuffix(selector, "::-webkit-scrollbar"):
			if w, ok := css.ParseLength(props["width"]); ok {
				style.width = int(w)
			}
		case strings.HasSuffix(selector, "::-webkit-scrollbar-track"):
			style.trackBackground = props["background"]
		case strings.HasSuffix(selector, "::-webkit-scrollbar-thumb"):
			style.thumbBackground = props["background"]
			if rad, ok := css.ParseLength(props["border-radius"]); ok {
				style.thumbRadius = rad
			}
		}
	}
	return style
}
