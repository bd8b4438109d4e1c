package js

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/surround"
)

// binder exposes dom elements and formatting nodes to scripts.
type binder struct {
	runtime *Runtime
	nodeMap map[*dom.Node]*goja.Object
}

func newBinder(r *Runtime) *binder {
	return &binder{runtime: r, nodeMap: make(map[*dom.Node]*goja.Object)}
}

func (b *binder) throwDOMError(err error) {
	panic(b.runtime.vm.NewGoError(err))
}

// bindElement returns the script object for el, reusing the one bound
// earlier so scripts can compare elements by identity.
func (b *binder) bindElement(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	node := el.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()

	jsEl.DefineAccessorProperty("tagName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("localName", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.LocalName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("attributeCount", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.AttributeCount())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.DefineAccessorProperty("textContent", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TextContent())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})

	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})

	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttributeWithError(call.Argument(0).String(), call.Argument(1).String()); err != nil {
			b.throwDOMError(err)
		}
		return goja.Undefined()
	})

	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})

	jsEl.Set("style", b.bindStyle(el.Style()))

	b.nodeMap[node] = jsEl
	return jsEl
}

func (b *binder) bindStyle(style *dom.CSSStyleDeclaration) *goja.Object {
	vm := b.runtime.vm
	jsStyle := vm.NewObject()

	jsStyle.DefineAccessorProperty("length", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(style.Length())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsStyle.DefineAccessorProperty("cssText", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(style.CSSText())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		style.SetCSSText(call.Argument(0).String())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsStyle.Set("getPropertyValue", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(style.GetPropertyValue(call.Argument(0).String()))
	})

	jsStyle.Set("setProperty", func(call goja.FunctionCall) goja.Value {
		style.SetProperty(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})

	jsStyle.Set("removeProperty", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(style.RemoveProperty(call.Argument(0).String()))
	})

	return jsStyle
}

// matchState collects what a script matcher decided for one element.
type matchState struct {
	result surround.MatchResult[string]
}

// bindMatch exposes m to a matcher. A clear callback that throws panics
// with the exception, which the surround operation reports as a callback
// failure.
func (b *binder) bindMatch(m *matchState, name string) *goja.Object {
	vm := b.runtime.vm
	jsMatch := vm.NewObject()

	jsMatch.Set("remove", func(call goja.FunctionCall) goja.Value {
		m.result.Kind = surround.MatchRemove
		return goja.Undefined()
	})

	jsMatch.Set("clear", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("match.clear expects a function"))
		}
		m.result.Kind = surround.MatchClear
		m.result.Clear = func() bool {
			redundant, err := fn(goja.Undefined())
			if err != nil {
				panic(fmt.Errorf("%s clear: %w", name, err))
			}
			return redundant.ToBoolean()
		}
		return goja.Undefined()
	})

	jsMatch.Set("setCache", func(call goja.FunctionCall) goja.Value {
		m.result.Cache = call.Argument(0).String()
		m.result.HasCache = true
		return goja.Undefined()
	})

	return jsMatch
}

// bindFormattingNode exposes node to a formatter or merger. surrounded is
// set when the script wraps the node into a new element.
func (b *binder) bindFormattingNode(node *surround.FormattingNode[string], surrounded *bool) *goja.Object {
	vm := b.runtime.vm
	jsNode := vm.NewObject()

	jsNode.Set("insideRange", node.InsideRange())
	jsNode.Set("hasMatch", node.HasMatch())
	jsNode.Set("length", node.Range().Len())

	extensions := make([]interface{}, 0, len(node.Extensions()))
	for _, ext := range node.Extensions() {
		extensions = append(extensions, b.bindElement(ext))
	}
	jsNode.Set("extensions", vm.NewArray(extensions...))

	jsNode.Set("getCache", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.Cache(call.Argument(0).String()))
	})

	jsNode.Set("surround", func(call goja.FunctionCall) goja.Value {
		if surrounded == nil {
			panic(vm.NewTypeError("node.surround is only available to formatters"))
		}
		doc := node.Range().Parent().OwnerDocument()
		el, err := doc.CreateElementWithError(call.Argument(0).String())
		if err != nil {
			b.throwDOMError(err)
		}
		if err := node.Surround(el); err != nil {
			b.throwDOMError(err)
		}
		*surrounded = true
		return b.bindElement(el)
	})

	return jsNode
}
