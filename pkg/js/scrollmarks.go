package js

import (
	"scrollmarks/pkg/scrollmarks"

	"github.com/dop251/goja"
)

// registerScrollMarks exposes the host API to page scripts:
//
//	var sm = ScrollMarks.init({trackColor: "#111", scrollbarWidth: 10});
//	sm.update(); sm.getMarks(); sm.destroy();
//
// ScrollMarks.auto() runs attribute-based auto-discovery instead.
func registerScrollMarks(ctx *domContext) {
	vm := ctx.vm

	host := vm.NewObject()
	host.Set("version", scrollmarks.Version)
	host.Set("init", func(call goja.FunctionCall) goja.Value {
		var cfg scrollmarks.Config
		if len(call.Arguments) > 0 {
			cfg = configFromOptions(call.Arguments[0])
		}
		in := scrollmarks.New(ctx.view, cfg)
		ctx.instances = append(ctx.instances, in)
		return ctx.instanceProxy(in)
	})
	host.Set("auto", func(call goja.FunctionCall) goja.Value {
		in, ok := scrollmarks.AutoDiscover(ctx.view)
		if !ok {
			return goja.Null()
		}
		ctx.instances = append(ctx.instances, in)
		return ctx.instanceProxy(in)
	})

	vm.Set("ScrollMarks", host)
}

// configFromOptions reads the option bag passed to ScrollMarks.init.
// Unknown keys are ignored; missing keys keep their defaults.
func configFromOptions(v goja.Value) scrollmarks.Config {
	var cfg scrollmarks.Config
	obj, ok := v.(*goja.Object)
	if !ok {
		return cfg
	}

	str := func(key string) string {
		val := obj.Get(key)
		if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
			return ""
		}
		return val.String()
	}

	cfg.Container = str("container")
	cfg.TrackColor = str("trackColor")
	cfg.ThumbColor = str("thumbColor")
	cfg.Selector = str("selector")
	cfg.AttributeName = str("attributeName")
	if val := obj.Get("scrollbarWidth"); val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		if width := int(val.ToInteger()); width > 0 {
			cfg.ScrollbarWidth = width
		}
	}
	return cfg
}

// instanceProxy wraps a scrollmarks instance for scripts.
func (ctx *domContext) instanceProxy(in *scrollmarks.Instance) goja.Value {
	vm := ctx.vm
	obj := vm.NewObject()

	obj.Set("id", in.ID())
	obj.Set("update", func(call goja.FunctionCall) goja.Value {
		in.Update()
		return goja.Undefined()
	})
	obj.Set("destroy", func(call goja.FunctionCall) goja.Value {
		in.Destroy()
		return goja.Undefined()
	})
	obj.Set("getMarks", func(call goja.FunctionCall) goja.Value {
		marks := in.Marks()
		out := make([]interface{}, len(marks))
		for i, m := range marks {
			entry := vm.NewObject()
			entry.Set("start", m.Start)
			entry.Set("end", m.End)
			entry.Set("color", m.Color)
			out[i] = entry
		}
		return vm.ToValue(out)
	})

	return vm.ToValue(obj)
}
