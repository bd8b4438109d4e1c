package surround

import (
	"fmt"

	"github.com/chrisuehlinger/vibedit/dom"
)

// TreeNode is a node of the formatting tree built over the DOM: either a
// *ContainerNode or a *FormattingNode.
type TreeNode[T any] interface {
	Children() []TreeNode[T]
	treeNode()
}

// ContainerNode stands for one DOM node that is not itself part of a
// formatting span. A text container blocks merges across it.
type ContainerNode[T any] struct {
	node     *dom.Node
	children []TreeNode[T]
}

func newContainerNode[T any](node *dom.Node, children []TreeNode[T]) *ContainerNode[T] {
	return &ContainerNode[T]{node: node, children: children}
}

func (c *ContainerNode[T]) treeNode() {}

// Node returns the DOM node this container stands for.
func (c *ContainerNode[T]) Node() *dom.Node { return c.node }

// Element returns the container's element, or nil for a text container.
func (c *ContainerNode[T]) Element() *dom.Element { return c.node.AsElement() }

// Children returns the container's child tree nodes.
func (c *ContainerNode[T]) Children() []TreeNode[T] { return c.children }

func (c *ContainerNode[T]) String() string {
	return fmt.Sprintf("Container(%s, %d children)", c.node.NodeName(), len(c.children))
}

// match is one element that matched the format during the build.
type match[T any] struct {
	element  *dom.Element
	cache    T
	hasCache bool
}

// FormattingNode is a maximal run of sibling DOM nodes that carries, or will
// carry, the format.
type FormattingNode[T any] struct {
	flat        FlatRange
	insideRange bool
	children    []TreeNode[T]
	extensions  []*dom.Element

	matchLeaves    []match[T]
	matchAncestors []match[T]
	hasMatchHoles  bool
}

func newFormattingNode[T any](flat FlatRange, insideRange bool, ancestors []match[T]) *FormattingNode[T] {
	return &FormattingNode[T]{
		flat:           flat,
		insideRange:    insideRange,
		matchAncestors: ancestors,
		hasMatchHoles:  true,
	}
}

func (n *FormattingNode[T]) treeNode() {}

// Range returns the sibling run covered by the node.
func (n *FormattingNode[T]) Range() FlatRange { return n.flat }

// InsideRange reports whether the node lies within the operated range.
func (n *FormattingNode[T]) InsideRange() bool { return n.insideRange }

// Children returns the tree nodes built from the covered DOM.
func (n *FormattingNode[T]) Children() []TreeNode[T] { return n.children }

// Extensions returns the elements the node ascended above. Each of them
// covers exactly the node's range.
func (n *FormattingNode[T]) Extensions() []*dom.Element { return n.extensions }

// HasMatch reports whether any matched element contributed to the node.
func (n *FormattingNode[T]) HasMatch() bool {
	return len(n.matchLeaves) > 0 || len(n.matchAncestors) > 0
}

// Cache returns the value the node should be formatted with: inside for a
// node within the range, otherwise the cache of its first matched leaf or
// its closest matched ancestor. It falls back to inside.
func (n *FormattingNode[T]) Cache(inside T) T {
	if n.insideRange {
		return inside
	}
	for _, m := range n.matchLeaves {
		if m.hasCache {
			return m.cache
		}
	}
	for i := len(n.matchAncestors) - 1; i >= 0; i-- {
		if n.matchAncestors[i].hasCache {
			return n.matchAncestors[i].cache
		}
	}
	return inside
}

// Surround wraps the node's range into el and narrows the range to el.
func (n *FormattingNode[T]) Surround(el *dom.Element) error {
	rng, err := n.flat.toDOMRange()
	if err != nil {
		return err
	}
	if err := rng.SurroundContents(el.AsNode()); err != nil {
		return err
	}
	n.flat = flatRangeOf(el.AsNode())
	return nil
}

func (n *FormattingNode[T]) String() string {
	return fmt.Sprintf("Formatting(%s[%d:%d], inside=%t)",
		n.flat.parent.NodeName(), n.flat.start, n.flat.end, n.insideRange)
}

// mergeFormattingNodes fuses two adjacent nodes into a new one.
func mergeFormattingNodes[T any](before, after *FormattingNode[T]) (*FormattingNode[T], bool) {
	flat, ok := before.flat.mergeWith(after.flat)
	if !ok {
		return nil, false
	}
	merged := &FormattingNode[T]{
		flat:           flat,
		insideRange:    before.insideRange && after.insideRange,
		matchAncestors: before.matchAncestors,
		hasMatchHoles:  before.hasMatchHoles || after.hasMatchHoles,
	}
	merged.children = append(append(merged.children, before.children...), after.children...)
	merged.matchLeaves = append(append(merged.matchLeaves, before.matchLeaves...), after.matchLeaves...)
	return merged, true
}

// ascendAbove makes the node cover element instead of element's children.
func (n *FormattingNode[T]) ascendAbove(element *dom.Element) {
	container := newContainerNode[T](element.AsNode(), n.children)
	n.flat = flatRangeOf(element.AsNode())
	n.extensions = append(n.extensions, element)
	n.children = []TreeNode[T]{container}
}

// markRemoved records a removed match on a node that had no leaf yet, and
// rebases it onto the removed element's parent.
func (n *FormattingNode[T]) markRemoved(m match[T], index int) {
	if n.hasMatchHoles {
		n.matchLeaves = append(n.matchLeaves, m)
		n.hasMatchHoles = false
	}
	n.flat = n.flat.rebase(m.element.AsNode(), index)
}
