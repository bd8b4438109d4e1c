// Package surround applies, removes and normalizes inline formats over a
// range of a dom tree. A format is described by a SurroundFormat: a matcher
// that recognizes elements carrying the format, and either a surround
// element or a formatter that (re)creates it.
package surround

import (
	"errors"

	"github.com/chrisuehlinger/vibedit/dom"
)

var (
	// ErrInvalidRange is returned when the range, base or format cannot be
	// operated on. It is reported before any mutation.
	ErrInvalidRange = errors.New("invalid range")

	// ErrCallback wraps an error returned, or a panic raised, by a format
	// callback. The tree is not rolled back.
	ErrCallback = errors.New("format callback failed")

	// ErrNoFormat is returned for a format without a matcher.
	ErrNoFormat = errors.New("format has no matcher")
)

// MatchKind classifies an element against a format.
type MatchKind int

const (
	// NoMatch means the element is unrelated to the format.
	NoMatch MatchKind = iota
	// MatchRemove means the element fully represents the format and is
	// unwrapped, then re-applied where needed.
	MatchRemove
	// MatchClear means the element carries the format among other things.
	// Clear strips the format and reports whether the element became
	// redundant and should be unwrapped as well.
	MatchClear
)

func (k MatchKind) String() string {
	switch k {
	case MatchRemove:
		return "remove"
	case MatchClear:
		return "clear"
	default:
		return "none"
	}
}

// MatchResult is what a matcher reports for one element.
type MatchResult[T any] struct {
	Kind     MatchKind
	Cache    T
	HasCache bool
	Clear    func() bool
}

// Remove is a MatchResult asking for the element to be unwrapped.
func Remove[T any]() MatchResult[T] {
	return MatchResult[T]{Kind: MatchRemove}
}

// RemoveWithCache is Remove carrying a cached value, such as the colour of a
// matched span.
func RemoveWithCache[T any](cache T) MatchResult[T] {
	return MatchResult[T]{Kind: MatchRemove, Cache: cache, HasCache: true}
}

// Clear is a MatchResult that strips the format with fn instead of
// unwrapping. fn returns true when the element should be unwrapped anyway.
func Clear[T any](fn func() bool) MatchResult[T] {
	return MatchResult[T]{Kind: MatchClear, Clear: fn}
}

// Matches reports whether the element matched at all.
func (m MatchResult[T]) Matches() bool {
	return m.Kind != NoMatch
}

// SurroundFormat describes one inline format.
type SurroundFormat[T any] struct {
	Name    string
	Matcher func(el *dom.Element) MatchResult[T]

	// Merger decides whether two adjacent formatting nodes may fuse.
	// A nil Merger accepts every merge the operation allows.
	Merger func(before, after *FormattingNode[T]) bool

	// Ascender decides whether a formatting node may move above parent.
	Ascender func(node *FormattingNode[T], parent *ContainerNode[T]) bool

	// Formatter applies the format to a node. It returns true when it
	// wrapped the node's range into a single new element, false when it
	// left the sibling count unchanged.
	Formatter func(node *FormattingNode[T]) (bool, error)

	// SurroundElement is cloned around each node when no Formatter is set.
	SurroundElement *dom.Element
}

// BoolMatcher collapses a format's matcher into a predicate.
func BoolMatcher[T any](f *SurroundFormat[T]) func(*dom.Element) bool {
	return func(el *dom.Element) bool {
		return f.Matcher(el).Matches()
	}
}

// FindClosest returns the nearest inclusive ancestor of node strictly below
// base that satisfies match, or nil.
func FindClosest(node *dom.Node, base *dom.Element, match func(*dom.Element) bool) *dom.Element {
	for current := node; current != nil && current != base.AsNode(); current = current.ParentNode() {
		if el := current.AsElement(); el != nil && match(el) {
			return el
		}
	}
	return nil
}

// FindFarthest returns the outermost inclusive ancestor of node strictly
// below base that satisfies match, or nil.
func FindFarthest(node *dom.Node, base *dom.Element, match func(*dom.Element) bool) *dom.Element {
	var found *dom.Element
	for current := node; current != nil && current != base.AsNode(); current = current.ParentNode() {
		if el := current.AsElement(); el != nil && match(el) {
			found = el
		}
	}
	return found
}
