package scrollmarks

import (
	"strconv"
)

// Attribute names read by auto-discovery from the document root element.
const (
	MarkerAttribute = "data-scrollmarks"

	attrContainer  = "data-scrollmarks-container"
	attrTrackColor = "data-scrollmarks-track-color"
	attrThumbColor = "data-scrollmarks-thumb-color"
	attrSelector   = "data-scrollmarks-selector"
	attrAttribute  = "data-scrollmarks-attribute"
	attrWidth      = "data-scrollmarks-width"
)

// AutoDiscover constructs an instance when the view's document root carries
// the marker attribute, reading configuration from its sibling data
// attributes. Returns (nil, false) when the view cannot expose root
// attributes or the marker is absent. Callers are responsible for invoking
// this at most once per document; repeated calls build independent
// instances.
func AutoDiscover(view View) (*Instance, bool) {
	src, ok := view.(RootConfigSource)
	if !ok {
		return nil, false
	}
	if _, ok := src.RootAttribute(MarkerAttribute); !ok {
		return nil, false
	}

	var cfg Config
	if v, ok := src.RootAttribute(attrContainer); ok {
		cfg.Container = v
	}
	if v, ok := src.RootAttribute(attrTrackColor); ok {
		cfg.TrackColor = v
	}
	if v, ok := src.RootAttribute(attrThumbColor); ok {
		cfg.ThumbColor = v
	}
	if v, ok := src.RootAttribute(attrSelector); ok {
		cfg.Selector = v
	}
	if v, ok := src.RootAttribute(attrAttribute); ok {
		cfg.AttributeName = v
	}
	if v, ok := src.RootAttribute(attrWidth); ok {
		if width, err := strconv.Atoi(v); err == nil && width > 0 {
			cfg.ScrollbarWidth = width
		}
	}

	return New(view, cfg), true
}
