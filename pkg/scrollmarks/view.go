// Package scrollmarks renders colored position markers on a page scrollbar.
// Elements carrying a color attribute are mapped to percentage ranges of the
// total scroll height and composited into a linear-gradient applied through
// scoped scrollbar styling.
package scrollmarks

// Element is one matched DOM element as the collector sees it: an attribute
// read plus already-resolved bounding geometry.
type Element interface {
	// Attribute returns the raw attribute value, if present.
	Attribute(name string) (string, bool)
	// BoundingTop returns the element's top edge relative to the viewport.
	BoundingTop() float64
	// Height returns the element's rendered height.
	Height() float64
}

// View is the page boundary the pipeline runs against: selector queries,
// scroll metrics and scoped style injection. Implementations must be safe to
// read repeatedly within one pass; the pipeline never caches between passes.
type View interface {
	// QueryAll returns all elements matching the selector in document order.
	QueryAll(selector string) []Element
	// ScrollOffset returns the current vertical scroll position.
	ScrollOffset() float64
	// ScrollHeight returns the total scrollable height of the content.
	ScrollHeight() float64
	// ViewportHeight returns the visible viewport height.
	ViewportHeight() float64
	// SetStyle installs or replaces the style text registered under id.
	SetStyle(id, css string)
	// ClearStyle removes the style registered under id.
	ClearStyle(id string)
}

// StructureNotifier is an optional View capability: it signals when matched
// elements are added, removed, or have attributes changed. The returned
// function detaches the subscription.
type StructureNotifier interface {
	OnStructureChange(fn func()) (detach func())
}

// SizeNotifier is an optional View capability: it signals when a tracked
// element's box dimensions change.
type SizeNotifier interface {
	OnSizeChange(fn func()) (detach func())
}

// ViewportNotifier is an optional View capability: it signals when the
// viewport is resized.
type ViewportNotifier interface {
	OnViewportResize(fn func()) (detach func())
}

// RootConfigSource is an optional View capability used by auto-discovery:
// attribute reads against the document root element.
type RootConfigSource interface {
	RootAttribute(name string) (string, bool)
}

// SchedulerSource is an optional View capability for views confined to a
// single goroutine: it supplies the Scheduler that runs an instance's
// coalesced passes, typically parking them until the view's owner drains
// them from its own goroutine. Views without this capability get a
// timer-driven scheduler and must tolerate passes arriving from another
// goroutine.
type SchedulerSource interface {
	NewScheduler() Scheduler
}
