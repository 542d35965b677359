package js

import (
	"strings"

	"scrollmarks/pkg/css"
	"scrollmarks/pkg/html"
	"scrollmarks/pkg/page"
	"scrollmarks/pkg/scrollmarks"

	"github.com/dop251/goja"
)

// domContext holds shared state for DOM bindings within a single engine. It
// maintains a node-to-proxy cache so the same JS object is returned for the
// same underlying *html.Node (needed for === identity checks), and records
// the mark instances scripts create so the host can see them.
type domContext struct {
	vm        *goja.Runtime
	view      *page.DocumentView
	cache     map[*html.Node]goja.Value
	instances []*scrollmarks.Instance
}

func newDOMContext(vm *goja.Runtime, view *page.DocumentView) *domContext {
	return &domContext{
		vm:    vm,
		view:  view,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object.
func registerDocument(ctx *domContext) {
	vm := ctx.vm
	doc := ctx.view.Document()

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		id := call.Arguments[0].String()
		var found *html.Node
		doc.Root.Walk(func(n *html.Node) bool {
			if val, ok := n.GetAttribute("id"); ok && val == id {
				found = n
				return true
			}
			return false
		})
		if found == nil {
			return goja.Null()
		}
		return ctx.elementProxy(found)
	})
	docObj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'querySelector': 1 argument required"))
		}
		node := css.QueryFirst(doc.Root, call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'querySelectorAll': 1 argument required"))
		}
		return ctx.elementArray(css.QueryAll(doc.Root, call.Arguments[0].String()))
	})

	vm.Set("document", docObj)
}

// elementProxy wraps a DOM node as a JS object. Attribute mutation is routed
// through the document so mark instances observe the change.
func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if cached, ok := ctx.cache[node]; ok {
		return cached
	}

	vm := ctx.vm
	doc := ctx.view.Document()
	obj := vm.NewObject()

	obj.Set("tagName", strings.ToUpper(node.TagName))
	if id, ok := node.GetAttribute("id"); ok {
		obj.Set("id", id)
	} else {
		obj.Set("id", "")
	}
	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		val, ok := node.GetAttribute(call.Arguments[0].String())
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(val)
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		doc.SetAttribute(node, call.Arguments[0].String(), call.Arguments[1].String())
		return goja.Undefined()
	})
	obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return vm.ToValue(false)
		}
		_, ok := node.GetAttribute(call.Arguments[0].String())
		return vm.ToValue(ok)
	})
	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		doc.RemoveAttribute(node, call.Arguments[0].String())
		return goja.Undefined()
	})
	obj.Set("remove", func(call goja.FunctionCall) goja.Value {
		if node.Parent != nil {
			doc.RemoveNode(node.Parent, node)
		}
		return goja.Undefined()
	})

	v := vm.ToValue(obj)
	ctx.cache[node] = v
	return v
}

// elementArray wraps a node list as a JS array of proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	items := make([]interface{}, len(nodes))
	for i, n := range nodes {
		items[i] = ctx.elementProxy(n)
	}
	return ctx.vm.ToValue(items)
}
