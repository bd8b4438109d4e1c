// Package format provides the stock inline formats (bold, italic, colours...)
// and a registry to look them up by name.
package format

import (
	"errors"
	"slices"

	"github.com/chrisuehlinger/vibedit/dom"
	"github.com/chrisuehlinger/vibedit/surround"
)

// Format is a surround format whose cache holds a style value.
type Format = surround.SurroundFormat[string]

var (
	ErrInvalidSpec   = errors.New("invalid format spec")
	ErrUnknownFormat = errors.New("unknown format")
	ErrDuplicate     = errors.New("format already registered")
	ErrNotValued     = errors.New("format does not take a value")
)

func matchesTag(el *dom.Element, tags []string) bool {
	return slices.Contains(tags, el.LocalName())
}

// Tag returns a format represented by tag. Elements named after any of the
// aliases are recognized as the same format.
func Tag(name, tag string, aliases ...string) *Format {
	tags := append([]string{tag}, aliases...)
	return &Format{
		Name: name,
		Matcher: func(el *dom.Element) surround.MatchResult[string] {
			if matchesTag(el, tags) {
				return surround.Remove[string]()
			}
			return surround.MatchResult[string]{}
		},
		SurroundElement: dom.NewDocument().CreateElement(tag),
	}
}

// TagWithStyle is Tag that also recognizes the format in an inline style,
// where property has one of values. Such a declaration is removed, and a
// span left without attributes is unwrapped.
func TagWithStyle(name, tag, property string, values []string, aliases ...string) *Format {
	f := Tag(name, tag, aliases...)
	matchTag := f.Matcher
	f.Matcher = func(el *dom.Element) surround.MatchResult[string] {
		if result := matchTag(el); result.Matches() {
			return result
		}
		value := el.Style().GetPropertyValue(property)
		if value == "" || (len(values) > 0 && !slices.Contains(values, value)) {
			return surround.MatchResult[string]{}
		}
		return surround.Clear[string](func() bool {
			el.Style().RemoveProperty(property)
			return redundantSpan(el)
		})
	}
	return f
}

func redundantSpan(el *dom.Element) bool {
	return el.LocalName() == "span" && el.AttributeCount() == 0
}

// Bold matches <b>, <strong> and bold font weights.
func Bold() *Format {
	return TagWithStyle("bold", "b", "font-weight", []string{"bold", "bolder", "700", "800", "900"}, "strong")
}

// Italic matches <i>, <em> and italic font styles.
func Italic() *Format {
	return TagWithStyle("italic", "i", "font-style", []string{"italic", "oblique"}, "em")
}

// Underline matches <u> and underline decorations.
func Underline() *Format {
	return TagWithStyle("underline", "u", "text-decoration", []string{"underline"})
}

// Strikethrough matches <s>, <strike>, <del> and line-through decorations.
func Strikethrough() *Format {
	return TagWithStyle("strikethrough", "s", "text-decoration", []string{"line-through"}, "strike", "del")
}

func Subscript() *Format {
	return Tag("subscript", "sub")
}

func Superscript() *Format {
	return Tag("superscript", "sup")
}
