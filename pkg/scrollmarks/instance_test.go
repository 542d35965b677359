package scrollmarks

import (
	"regexp"
	"strings"
	"testing"
)

// fakeElement implements Element for tests.
type fakeElement struct {
	attrs  map[string]string
	top    float64 // viewport-relative
	height float64
}

func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *fakeElement) BoundingTop() float64 { return e.top }
func (e *fakeElement) Height() float64      { return e.height }

// fakeView implements View plus all optional notifier capabilities.
type fakeView struct {
	elements       []*fakeElement
	scrollOffset   float64
	scrollHeight   float64
	viewportHeight float64
	rootAttrs      map[string]string

	styles map[string]string

	structureFns []func()
	sizeFns      []func()
	viewportFns  []func()
	detached     int
}

func newFakeView(scrollHeight, viewportHeight float64) *fakeView {
	return &fakeView{
		scrollHeight:   scrollHeight,
		viewportHeight: viewportHeight,
		styles:         make(map[string]string),
		rootAttrs:      make(map[string]string),
	}
}

func (v *fakeView) QueryAll(selector string) []Element {
	out := make([]Element, 0, len(v.elements))
	for _, e := range v.elements {
		out = append(out, e)
	}
	return out
}
func (v *fakeView) ScrollOffset() float64       { return v.scrollOffset }
func (v *fakeView) ScrollHeight() float64       { return v.scrollHeight }
func (v *fakeView) ViewportHeight() float64     { return v.viewportHeight }
func (v *fakeView) SetStyle(id, css string)     { v.styles[id] = css }
func (v *fakeView) ClearStyle(id string)        { delete(v.styles, id) }

func (v *fakeView) RootAttribute(name string) (string, bool) {
	val, ok := v.rootAttrs[name]
	return val, ok
}

func (v *fakeView) OnStructureChange(fn func()) func() {
	v.structureFns = append(v.structureFns, fn)
	return func() { v.detached++ }
}
func (v *fakeView) OnSizeChange(fn func()) func() {
	v.sizeFns = append(v.sizeFns, fn)
	return func() { v.detached++ }
}
func (v *fakeView) OnViewportResize(fn func()) func() {
	v.viewportFns = append(v.viewportFns, fn)
	return func() { v.detached++ }
}

// manualScheduler records the pending function for deterministic tests.
type manualScheduler struct {
	pending  func()
	requests int
	cancels  int
}

func (s *manualScheduler) Request(fn func()) {
	s.pending = fn
	s.requests++
}
func (s *manualScheduler) Cancel() {
	s.pending = nil
	s.cancels++
}
func (s *manualScheduler) fire() {
	if s.pending != nil {
		fn := s.pending
		s.pending = nil
		fn()
	}
}

func markedView() *fakeView {
	view := newFakeView(2000, 500)
	view.elements = []*fakeElement{
		{attrs: map[string]string{"data-scroll-color": "red"}, top: 100, height: 200},
	}
	return view
}

func TestNewPerformsInitialUpdate(t *testing.T) {
	view := markedView()
	in := newInstance(view, Config{}, &manualScheduler{})

	css, ok := view.styles[in.ID()]
	if !ok {
		t.Fatal("construction should inject styling synchronously")
	}
	if !strings.Contains(css, "red 5.00%, red 15.00%") {
		t.Errorf("expected mark band in styling:\n%s", css)
	}
	if !strings.Contains(css, "width: 14px;") {
		t.Errorf("expected default scrollbar width:\n%s", css)
	}
	if !strings.Contains(css, "border-radius: 7px;") {
		t.Errorf("expected thumb radius floor(14/2):\n%s", css)
	}
	if !strings.Contains(css, "::-webkit-scrollbar-thumb:hover") {
		t.Errorf("expected thumb hover rule:\n%s", css)
	}

	marks := in.Marks()
	if len(marks) != 1 || marks[0] != (ColorMark{Start: 5, End: 15, Color: "red"}) {
		t.Errorf("marks: %+v", marks)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	view := markedView()
	in := newInstance(view, Config{}, &manualScheduler{})

	first := view.styles[in.ID()]
	in.Update()
	in.Update()
	if view.styles[in.ID()] != first {
		t.Error("repeated updates with unchanged DOM must produce identical styling")
	}
}

func TestUpdateNoMarksSolidTrack(t *testing.T) {
	view := newFakeView(2000, 500)
	in := newInstance(view, Config{}, &manualScheduler{})

	css := view.styles[in.ID()]
	if strings.Contains(css, "linear-gradient") {
		t.Errorf("no marks should produce solid track color, got:\n%s", css)
	}
	if !strings.Contains(css, "background: #1a1a2e;") {
		t.Errorf("expected solid track color:\n%s", css)
	}
}

func TestUpdateNonScrollableClearsStyling(t *testing.T) {
	view := markedView()
	in := newInstance(view, Config{}, &manualScheduler{})
	if _, ok := view.styles[in.ID()]; !ok {
		t.Fatal("styling expected while scrollable")
	}

	view.scrollHeight = 400 // now shorter than the 500px viewport
	in.Update()
	if _, ok := view.styles[in.ID()]; ok {
		t.Error("styling should be cleared when content does not scroll")
	}
	if len(in.Marks()) != 0 {
		t.Error("marks should be empty when content does not scroll")
	}
}

func TestConfigOverrides(t *testing.T) {
	view := newFakeView(2000, 500)
	view.elements = []*fakeElement{
		{attrs: map[string]string{"data-hot": "tomato"}, top: 0, height: 500},
	}
	in := newInstance(view, Config{
		Container:      "body",
		TrackColor:     "black",
		ThumbColor:     "silver",
		Selector:       "[data-hot]",
		AttributeName:  "data-hot",
		ScrollbarWidth: 9,
	}, &manualScheduler{})

	css := view.styles[in.ID()]
	for _, want := range []string{
		"body::-webkit-scrollbar { width: 9px; }",
		"tomato 0.00%, tomato 25.00%",
		"black 25.00%, black 100.00%",
		"background: silver; border-radius: 4px;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("missing %q in:\n%s", want, css)
		}
	}
}

func TestIDPattern(t *testing.T) {
	view := markedView()
	a := newInstance(view, Config{}, &manualScheduler{})
	b := newInstance(view, Config{}, &manualScheduler{})

	pattern := regexp.MustCompile(`^scrollmarks-[0-9a-f]+\d+$`)
	if !pattern.MatchString(a.ID()) {
		t.Errorf("id %q does not match scrollmarks-<token>", a.ID())
	}
	if a.ID() == b.ID() {
		t.Error("instances must not share identifiers")
	}
	if a.ID() != a.ID() {
		t.Error("id must be stable")
	}
}

func TestInstancesIsolated(t *testing.T) {
	view := markedView()
	a := newInstance(view, Config{}, &manualScheduler{})
	b := newInstance(view, Config{TrackColor: "navy"}, &manualScheduler{})

	if len(view.styles) != 2 {
		t.Fatalf("each instance owns its style container, got %d", len(view.styles))
	}
	a.Destroy()
	if _, ok := view.styles[b.ID()]; !ok {
		t.Error("destroying one instance must not touch another's styling")
	}
}

func TestDestroy(t *testing.T) {
	view := markedView()
	sched := &manualScheduler{}
	in := newInstance(view, Config{}, sched)

	in.Destroy()
	if _, ok := view.styles[in.ID()]; ok {
		t.Error("destroy should remove injected styling")
	}
	if view.detached != 3 {
		t.Errorf("destroy should detach all 3 subscriptions, detached %d", view.detached)
	}
	if sched.cancels != 1 {
		t.Errorf("destroy should cancel the pending recomputation, cancels = %d", sched.cancels)
	}

	// Idempotent teardown, permissive post-destroy calls
	in.Destroy()
	if view.detached != 3 || sched.cancels != 1 {
		t.Error("repeated destroy must be a no-op")
	}
	in.Update()
	if _, ok := view.styles[in.ID()]; ok {
		t.Error("update after destroy must not re-inject styling")
	}
	if marks := in.Marks(); len(marks) != 0 {
		t.Errorf("marks after destroy should be empty, got %+v", marks)
	}
}

func TestSignalsCoalesce(t *testing.T) {
	view := markedView()
	sched := &manualScheduler{}
	in := newInstance(view, Config{}, sched)

	// A burst of signals replaces the pending request instead of queueing.
	view.structureFns[0]()
	view.sizeFns[0]()
	view.viewportFns[0]()
	if sched.requests != 3 {
		t.Fatalf("each signal should re-request, got %d", sched.requests)
	}

	view.elements[0].top = 300
	sched.fire()
	marks := in.Marks()
	if len(marks) != 1 || marks[0].Start != 15 {
		t.Errorf("coalesced pass should see the new geometry: %+v", marks)
	}
	if sched.pending != nil {
		t.Error("firing consumes the single pending token")
	}
}

// sourcedView supplies its own scheduler, like views confined to one
// goroutine do.
type sourcedView struct {
	*fakeView
	sched *manualScheduler
}

func (v *sourcedView) NewScheduler() Scheduler { return v.sched }

func TestNewUsesViewScheduler(t *testing.T) {
	view := &sourcedView{fakeView: markedView(), sched: &manualScheduler{}}
	in := New(view, Config{})
	defer in.Destroy()

	view.structureFns[0]()
	if view.sched.requests != 1 {
		t.Fatalf("signals should schedule through the view's scheduler, requests = %d", view.sched.requests)
	}

	view.elements[0].attrs["data-scroll-color"] = "blue"
	view.sched.fire()
	marks := in.Marks()
	if len(marks) != 1 || marks[0].Color != "blue" {
		t.Errorf("fired pass should recompute: %+v", marks)
	}
}

func TestAutoDiscoverWithoutMarker(t *testing.T) {
	view := newFakeView(2000, 500)
	if in, ok := AutoDiscover(view); ok || in != nil {
		t.Error("no marker attribute: auto-discovery should decline")
	}
}

func TestAutoDiscoverReadsConfig(t *testing.T) {
	view := newFakeView(2000, 500)
	view.rootAttrs = map[string]string{
		"data-scrollmarks":             "",
		"data-scrollmarks-track-color": "black",
		"data-scrollmarks-width":       "10",
		"data-scrollmarks-selector":    "[data-hot]",
		"data-scrollmarks-attribute":   "data-hot",
	}
	view.elements = []*fakeElement{
		{attrs: map[string]string{"data-hot": "red"}, top: 0, height: 1000},
	}

	in, ok := AutoDiscover(view)
	if !ok {
		t.Fatal("marker present: auto-discovery should construct an instance")
	}
	defer in.Destroy()

	css := view.styles[in.ID()]
	if !strings.Contains(css, "width: 10px;") {
		t.Errorf("configured width not applied:\n%s", css)
	}
	if !strings.Contains(css, "red 0.00%, red 50.00%") {
		t.Errorf("configured selector/attribute not applied:\n%s", css)
	}
	if !strings.Contains(css, "black 50.00%, black 100.00%") {
		t.Errorf("configured track color not applied:\n%s", css)
	}
}

func TestAutoDiscoverInvalidWidthIgnored(t *testing.T) {
	view := newFakeView(2000, 500)
	view.rootAttrs = map[string]string{
		"data-scrollmarks":       "",
		"data-scrollmarks-width": "wide",
	}
	in, ok := AutoDiscover(view)
	if !ok {
		t.Fatal("expected an instance")
	}
	defer in.Destroy()
	if !strings.Contains(view.styles[in.ID()], "width: 14px;") {
		t.Error("unparseable width should fall back to the default")
	}
}
