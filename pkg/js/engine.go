package js

import (
	"fmt"

	"scrollmarks/pkg/page"
	"scrollmarks/pkg/scrollmarks"

	"github.com/dop251/goja"
)

// Engine executes a page's scripts against its document view. Scripts see a
// minimal DOM (document with selector queries and attribute mutation) plus
// the ScrollMarks host API.
type Engine struct {
	vm   *goja.Runtime
	view *page.DocumentView
	dom  *domContext
}

// New creates a JS engine bound to the given view.
func New(view *page.DocumentView) *Engine {
	vm := goja.New()
	e := &Engine{vm: vm, view: view}

	c := &consoleAPI{}
	c.register(vm)

	e.dom = newDOMContext(vm, view)
	registerDocument(e.dom)
	registerScrollMarks(e.dom)

	return e
}

// Initialized reports whether any script created a mark instance through
// ScrollMarks.init or ScrollMarks.auto. Hosts use this to decide whether to
// construct their own instance; injected styling is no indicator, since an
// instance on a non-scrollable page injects none.
func (e *Engine) Initialized() bool {
	return len(e.dom.instances) > 0
}

// Instances returns the mark instances created by scripts, in creation
// order.
func (e *Engine) Instances() []*scrollmarks.Instance {
	out := make([]*scrollmarks.Instance, len(e.dom.instances))
	copy(out, e.dom.instances)
	return out
}

// Execute runs all scripts from the document in order. Any JS error is
// returned; callers may choose to log and continue rather than fail.
func (e *Engine) Execute() error {
	for i, script := range e.view.Document().Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// RunString evaluates one script against the engine's globals.
func (e *Engine) RunString(src string) (goja.Value, error) {
	return e.vm.RunString(src)
}
