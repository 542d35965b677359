package scrollmarks

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
)

// Version identifies the scrollmarks release.
const Version = "1.0.0"

// Configuration defaults.
const (
	DefaultContainer      = "html"
	DefaultTrackColor     = "#1a1a2e"
	DefaultThumbColor     = "rgba(255,255,255,0.3)"
	DefaultSelector       = "[data-scroll-color]"
	DefaultAttributeName  = "data-scroll-color"
	DefaultScrollbarWidth = 14
)

// Config fixes an instance's behavior at construction. Zero values take the
// stated defaults. There is no runtime reconfiguration; build a new instance
// instead.
type Config struct {
	// Container is the selector of the scroll container whose scrollbar is
	// styled.
	Container string
	// TrackColor fills the scrollbar track wherever no mark covers it.
	TrackColor string
	// ThumbColor colors the scrollbar thumb.
	ThumbColor string
	// Selector matches the elements that carry markers.
	Selector string
	// AttributeName is the attribute holding each element's mark color.
	AttributeName string
	// ScrollbarWidth is the scrollbar width in pixels.
	ScrollbarWidth int
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.TrackColor == "" {
		c.TrackColor = DefaultTrackColor
	}
	if c.ThumbColor == "" {
		c.ThumbColor = DefaultThumbColor
	}
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}
	if c.AttributeName == "" {
		c.AttributeName = DefaultAttributeName
	}
	if c.ScrollbarWidth <= 0 {
		c.ScrollbarWidth = DefaultScrollbarWidth
	}
	return c
}

// Instance owns one rendering target and the latest computed mark set. All
// state is private to the instance; concurrent instances on one document
// never share identifiers, subscriptions or style scopes.
type Instance struct {
	mu        sync.Mutex
	cfg       Config
	view      View
	id        string
	marks     []ColorMark
	destroyed bool
	sched     Scheduler
	detach    []func()
}

// New constructs an instance bound to view, subscribes to whatever change
// notifiers the view provides, and performs one synchronous update before
// returning. Views without notifiers degrade to manual Update-only use.
// Coalesced passes run through the view's own scheduler when it provides
// one, otherwise through a timer.
func New(view View, cfg Config) *Instance {
	var sched Scheduler
	if src, ok := view.(SchedulerSource); ok {
		sched = src.NewScheduler()
	} else {
		sched = newFrameScheduler()
	}
	return newInstance(view, cfg, sched)
}

func newInstance(view View, cfg Config, sched Scheduler) *Instance {
	in := &Instance{
		cfg:   cfg.withDefaults(),
		view:  view,
		id:    newID(),
		sched: sched,
	}

	trigger := func() { in.sched.Request(in.Update) }
	if n, ok := view.(StructureNotifier); ok {
		in.detach = append(in.detach, n.OnStructureChange(trigger))
	}
	if n, ok := view.(SizeNotifier); ok {
		in.detach = append(in.detach, n.OnSizeChange(trigger))
	}
	if n, ok := view.(ViewportNotifier); ok {
		in.detach = append(in.detach, n.OnViewportResize(trigger))
	}

	in.Update()
	return in
}

// Update runs one synchronous recomputation pass: collect marks, build the
// gradient, inject the styling. The owned mark set is replaced wholesale.
// Calling Update on a destroyed instance is a no-op.
func (in *Instance) Update() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.destroyed {
		return
	}

	total := in.view.ScrollHeight()
	if total <= in.view.ViewportHeight() {
		// Nothing to scroll: no markers to show
		in.marks = nil
		in.view.ClearStyle(in.id)
		return
	}

	in.marks = collectMarks(in.view, in.cfg.Selector, in.cfg.AttributeName)
	in.view.SetStyle(in.id, renderCSS(in.cfg, in.marks))
}

// Marks returns a copy of the latest computed mark set. After Destroy it
// returns an empty slice.
func (in *Instance) Marks() []ColorMark {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]ColorMark, len(in.marks))
	copy(out, in.marks)
	return out
}

// Config returns the instance's effective configuration, defaults applied.
func (in *Instance) Config() Config {
	return in.cfg
}

// ID returns the instance's unique identifier, of the form
// "scrollmarks-<token>". It also keys the instance's injected style.
func (in *Instance) ID() string {
	return in.id
}

// Destroy removes the injected styling, detaches all change subscriptions
// and cancels any pending coalesced recomputation. Destroy is idempotent and
// irreversible; subsequent Update calls are no-ops.
func (in *Instance) Destroy() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.destroyed {
		return
	}
	in.destroyed = true

	in.sched.Cancel()
	for _, d := range in.detach {
		d()
	}
	in.detach = nil
	in.marks = nil
	in.view.ClearStyle(in.id)
}

var idCounter uint64

// newID produces a unique instance identifier. Randomness separates
// instances across processes; the counter separates them within one.
func newID() string {
	n := atomic.AddUint64(&idCounter, 1)
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("scrollmarks-%d", n)
	}
	return fmt.Sprintf("scrollmarks-%s%d", hex.EncodeToString(buf[:]), n)
}
