// Package page binds a parsed document, the vertical measurer and scroll
// state into the live-view boundary the scrollmarks pipeline consumes.
package page

import (
	"scrollmarks/pkg/css"
	"scrollmarks/pkg/html"
	"scrollmarks/pkg/layout"
	"scrollmarks/pkg/scrollmarks"
)

// DocumentView is a concrete scrollmarks.View over an in-memory document.
// It re-measures on every observed DOM mutation and forwards change signals
// to subscribers. All methods are meant for single-threaded cooperative use.
type DocumentView struct {
	doc     *html.Document
	engine  *layout.Engine
	result  *layout.Result
	scrollY float64

	nextSub      int
	structureFns map[int]func()
	sizeFns      map[int]func()
	viewportFns  map[int]func()

	pumps []*pumpScheduler
}

// NewDocumentView measures doc against the given viewport and starts
// observing it for mutations.
func NewDocumentView(doc *html.Document, viewportWidth, viewportHeight float64) *DocumentView {
	v := &DocumentView{
		doc:          doc,
		engine:       layout.NewEngine(viewportWidth, viewportHeight),
		structureFns: make(map[int]func()),
		sizeFns:      make(map[int]func()),
		viewportFns:  make(map[int]func()),
	}
	v.result = v.engine.Measure(doc)

	doc.Observe(func(html.Mutation) {
		before := v.result.ScrollHeight
		v.result = v.engine.Measure(v.doc)
		v.clampScroll()
		for _, fn := range v.structureFns {
			fn()
		}
		if v.result.ScrollHeight != before {
			for _, fn := range v.sizeFns {
				fn()
			}
		}
	})
	return v
}

// Document returns the underlying document.
func (v *DocumentView) Document() *html.Document {
	return v.doc
}

// QueryAll returns all elements matching the selector in document order.
func (v *DocumentView) QueryAll(selector string) []scrollmarks.Element {
	nodes := css.QueryAll(v.doc.Root, selector)
	out := make([]scrollmarks.Element, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, &element{node: node, view: v})
	}
	return out
}

// ScrollOffset returns the current vertical scroll position.
func (v *DocumentView) ScrollOffset() float64 {
	return v.scrollY
}

// SetScrollOffset scrolls the view, clamped to the scrollable range.
func (v *DocumentView) SetScrollOffset(y float64) {
	v.scrollY = y
	v.clampScroll()
}

func (v *DocumentView) clampScroll() {
	max := v.result.ScrollHeight - v.engine.ViewportHeight()
	if max < 0 {
		max = 0
	}
	if v.scrollY > max {
		v.scrollY = max
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

// ScrollHeight returns the measured total scrollable height.
func (v *DocumentView) ScrollHeight() float64 {
	return v.result.ScrollHeight
}

// ViewportHeight returns the current viewport height.
func (v *DocumentView) ViewportHeight() float64 {
	return v.engine.ViewportHeight()
}

// SetViewport resizes the viewport, re-measures and signals subscribers.
func (v *DocumentView) SetViewport(width, height float64) {
	v.engine = layout.NewEngine(width, height)
	v.result = v.engine.Measure(v.doc)
	v.clampScroll()
	for _, fn := range v.viewportFns {
		fn()
	}
}

// SetStyle installs scoped style text under id.
func (v *DocumentView) SetStyle(id, cssText string) {
	v.doc.SetScopedStyle(id, cssText)
}

// ClearStyle removes the scoped style registered under id.
func (v *DocumentView) ClearStyle(id string) {
	v.doc.RemoveScopedStyle(id)
}

// RootAttribute reads an attribute from the document root element, falling
// back to <body> for fragments without an <html> wrapper. Satisfies the
// auto-discovery capability.
func (v *DocumentView) RootAttribute(name string) (string, bool) {
	if val, ok := v.doc.DocumentElement().GetAttribute(name); ok {
		return val, true
	}
	if body := css.QueryFirst(v.doc.Root, "body"); body != nil {
		return body.GetAttribute(name)
	}
	return "", false
}

// NewScheduler satisfies the scheduler-source capability: coalesced passes
// scheduled against this view are parked until the owner calls RunPending,
// so every document and layout access stays on the owning goroutine.
func (v *DocumentView) NewScheduler() scrollmarks.Scheduler {
	s := &pumpScheduler{}
	v.pumps = append(v.pumps, s)
	return s
}

// RunPending runs every coalesced recomputation parked since the last call.
// Owners pump this after mutating the document and before reading injected
// styles or painting.
func (v *DocumentView) RunPending() {
	for _, s := range v.pumps {
		s.run()
	}
}

// OnStructureChange subscribes to DOM mutations. The returned function
// detaches the subscription.
func (v *DocumentView) OnStructureChange(fn func()) func() {
	return v.subscribe(v.structureFns, fn)
}

// OnSizeChange subscribes to content-height changes.
func (v *DocumentView) OnSizeChange(fn func()) func() {
	return v.subscribe(v.sizeFns, fn)
}

// OnViewportResize subscribes to viewport resizes.
func (v *DocumentView) OnViewportResize(fn func()) func() {
	return v.subscribe(v.viewportFns, fn)
}

func (v *DocumentView) subscribe(m map[int]func(), fn func()) func() {
	id := v.nextSub
	v.nextSub++
	m[id] = fn
	return func() { delete(m, id) }
}

// pumpScheduler parks the single pending pass until the view owner drains
// it. Request replaces the parked pass, so a burst of change signals still
// collapses to one trailing run.
type pumpScheduler struct {
	pending func()
}

func (s *pumpScheduler) Request(fn func()) { s.pending = fn }

func (s *pumpScheduler) Cancel() { s.pending = nil }

func (s *pumpScheduler) run() {
	fn := s.pending
	s.pending = nil
	if fn != nil {
		fn()
	}
}

// element adapts one DOM node to the collector's geometry boundary.
// BoundingTop is viewport-relative, matching what a live page reports.
type element struct {
	node *html.Node
	view *DocumentView
}

func (e *element) Attribute(name string) (string, bool) {
	return e.node.GetAttribute(name)
}

func (e *element) BoundingTop() float64 {
	box, ok := e.view.result.BoxFor(e.node)
	if !ok {
		return 0
	}
	return box.Top - e.view.scrollY
}

func (e *element) Height() float64 {
	box, ok := e.view.result.BoxFor(e.node)
	if !ok {
		return 0
	}
	return box.Height
}
