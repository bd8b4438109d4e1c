package js

import (
	"errors"
	"fmt"
	"os"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/format"
	"github.com/chrisuehlinger/vibedit/internal/logging"
	"github.com/chrisuehlinger/vibedit/surround"
)

// ErrInvalidScript is returned when a script does not evaluate to a usable
// format definition.
var ErrInvalidScript = errors.New("invalid format script")

// LoadFormat evaluates source and builds the format it defines. The script's
// completion value must be an object such as
//
//	({
//	    matcher: function (element, match) { ... },
//	    merger: function (before, after) { ... },
//	    ascender: function (node, parent) { ... },
//	    formatter: function (node) { ... },
//	    surroundElement: "mark"
//	})
//
// matcher is required, together with surroundElement or formatter. The
// matcher calls match.remove(), match.clear(fn) or match.setCache(value) to
// report a match; leaving match untouched means no match. A formatter
// returns true, or calls node.surround(tag), when it wrapped the node.
//
// Exceptions thrown by the callbacks make the surround operation fail with
// surround.ErrCallback.
func LoadFormat(r *Runtime, name, source string) (*format.Format, error) {
	value, err := r.ExecuteScript(source, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScript, name, err)
	}
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, fmt.Errorf("%w: %s: script did not evaluate to an object", ErrInvalidScript, name)
	}
	def := value.ToObject(r.vm)

	matcher, ok := goja.AssertFunction(def.Get("matcher"))
	if !ok {
		return nil, fmt.Errorf("%w: %s: matcher is not a function", ErrInvalidScript, name)
	}

	f := &format.Format{Name: name}
	b := r.binder

	f.Matcher = func(el *dom.Element) surround.MatchResult[string] {
		m := &matchState{}
		if _, err := matcher(goja.Undefined(), b.bindElement(el), b.bindMatch(m, name)); err != nil {
			panic(fmt.Errorf("%s matcher: %w", name, err))
		}
		if m.result.Kind == surround.NoMatch && m.result.HasCache {
			m.result.Kind = surround.MatchRemove
		}
		return m.result
	}

	if merger, ok := goja.AssertFunction(def.Get("merger")); ok {
		f.Merger = func(before, after *surround.FormattingNode[string]) bool {
			merge, err := merger(goja.Undefined(), b.bindFormattingNode(before, nil), b.bindFormattingNode(after, nil))
			if err != nil {
				panic(fmt.Errorf("%s merger: %w", name, err))
			}
			return merge.ToBoolean()
		}
	}

	if ascender, ok := goja.AssertFunction(def.Get("ascender")); ok {
		f.Ascender = func(node *surround.FormattingNode[string], parent *surround.ContainerNode[string]) bool {
			ascend, err := ascender(goja.Undefined(), b.bindFormattingNode(node, nil), b.bindElement(parent.Element()))
			if err != nil {
				panic(fmt.Errorf("%s ascender: %w", name, err))
			}
			return ascend.ToBoolean()
		}
	}

	if formatter, ok := goja.AssertFunction(def.Get("formatter")); ok {
		f.Formatter = func(node *surround.FormattingNode[string]) (bool, error) {
			var surrounded bool
			wrapped, err := formatter(goja.Undefined(), b.bindFormattingNode(node, &surrounded))
			if err != nil {
				return false, err
			}
			return surrounded || wrapped.ToBoolean(), nil
		}
	}

	if tag := def.Get("surroundElement"); tag != nil && !goja.IsUndefined(tag) && !goja.IsNull(tag) {
		el, err := dom.NewDocument().CreateElementWithError(tag.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: surroundElement: %w", ErrInvalidScript, name, err)
		}
		f.SurroundElement = el
	}

	if f.Formatter == nil && f.SurroundElement == nil {
		return nil, fmt.Errorf("%w: %s: needs surroundElement or formatter", ErrInvalidScript, name)
	}

	r.logger.Debug("Loaded script format", logging.FieldName, name)
	return f, nil
}

// LoadFormatFile reads a format script from path.
func LoadFormatFile(r *Runtime, name, path string) (*format.Format, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading format script %s: %w", path, err)
	}
	f, err := LoadFormat(r, name, string(source))
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Read format script", logging.FieldName, name, logging.FieldScript, path)
	return f, nil
}
