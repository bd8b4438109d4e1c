package format

import (
	"strings"

	"github.com/chrisuehlinger/vibedit/css"
	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/surround"
)

// Style returns a format that sets property to value on a span. Spans
// carrying property are matched with their value as cache, so adjacent runs
// of the same value fuse and runs of another value keep it. Colour
// properties compare by the colour they denote. The formatter reuses a span
// the node ascended above instead of nesting a new one.
func Style(name, property, value string) *Format {
	same := sameValue(property)
	return &Format{
		Name: name,
		Matcher: func(el *dom.Element) surround.MatchResult[string] {
			return matchStyle(el, property)
		},
		Merger: func(before, after *surround.FormattingNode[string]) bool {
			return same(before.Cache(value), after.Cache(value))
		},
		Formatter: func(node *surround.FormattingNode[string]) (bool, error) {
			return applyStyle(node, property, node.Cache(value))
		},
	}
}

func sameValue(property string) func(a, b string) bool {
	if strings.HasSuffix(property, "color") {
		return css.SameColor
	}
	return func(a, b string) bool { return a == b }
}

func matchStyle(el *dom.Element, property string) surround.MatchResult[string] {
	if el.LocalName() != "span" {
		return surround.MatchResult[string]{}
	}
	value := el.Style().GetPropertyValue(property)
	if value == "" {
		return surround.MatchResult[string]{}
	}
	if el.AttributeCount() == 1 && el.Style().Length() == 1 {
		return surround.RemoveWithCache(value)
	}
	result := surround.Clear[string](func() bool {
		el.Style().RemoveProperty(property)
		return redundantSpan(el)
	})
	result.Cache, result.HasCache = value, true
	return result
}

func applyStyle(node *surround.FormattingNode[string], property, value string) (bool, error) {
	for _, ext := range node.Extensions() {
		if ext.LocalName() == "span" {
			ext.Style().SetProperty(property, value)
			return false, nil
		}
	}
	span := node.Range().Parent().OwnerDocument().CreateElement("span")
	span.Style().SetProperty(property, value)
	if err := node.Surround(span); err != nil {
		return false, err
	}
	return true, nil
}

// Color sets the text colour. <font color> is recognized as well.
func Color(value string) *Format {
	f := Style("color", "color", value)
	matchSpan := f.Matcher
	f.Matcher = func(el *dom.Element) surround.MatchResult[string] {
		if el.LocalName() != "font" || !el.HasAttribute("color") {
			return matchSpan(el)
		}
		color := el.GetAttribute("color")
		if el.AttributeCount() == 1 {
			return surround.RemoveWithCache(color)
		}
		result := surround.Clear[string](func() bool {
			el.RemoveAttribute("color")
			return el.AttributeCount() == 0
		})
		result.Cache, result.HasCache = color, true
		return result
	}
	return f
}

// Highlight sets the background colour.
func Highlight(value string) *Format {
	return Style("highlight", "background-color", value)
}
