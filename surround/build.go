package surround

import (
	"github.com/chrisuehlinger/vibedit/dom"
)

// policy selects which formatting nodes fuse and which get the format
// applied, per operation.
type policy int

const (
	surroundPolicy policy = iota
	unsurroundPolicy
	reformatPolicy
)

type span interface {
	InsideRange() bool
	HasMatch() bool
}

func (p policy) allowsMerge(before, after span) bool {
	switch p {
	case unsurroundPolicy:
		return before.InsideRange() == after.InsideRange()
	case reformatPolicy:
		return before.HasMatch() && after.HasMatch()
	default:
		return true
	}
}

func (p policy) applies(node span) bool {
	switch p {
	case unsurroundPolicy:
		return !node.InsideRange()
	case reformatPolicy:
		return node.HasMatch()
	default:
		return true
	}
}

// Pulling in siblings outside the range only pays off when the format is
// being added; the other operations keep to the range.
func (p policy) extends() bool {
	return p == surroundPolicy
}

// blockElements stop formatting nodes from ascending.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "dialog": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
	"body": true, "html": true,
}

// IsBlockElement reports whether el breaks inline formatting.
func IsBlockElement(el *dom.Element) bool {
	return blockElements[el.LocalName()]
}

// negligible nodes have no rendered text: empty text and childless
// elements. They are skipped by the build and absorbed by merges.
func negligible(node *dom.Node) bool {
	switch node.NodeType() {
	case dom.TextNode:
		return node.Length() == 0
	case dom.ElementNode:
		return !node.HasChildNodes()
	default:
		return true
	}
}

type builder[T any] struct {
	format *SurroundFormat[T]
	base   *dom.Element
	split  *splitRange
	policy policy
}

func (b *builder[T]) tryMerge(before, after *FormattingNode[T]) (*FormattingNode[T], bool) {
	if !b.policy.allowsMerge(before, after) {
		return nil, false
	}
	if b.format.Merger != nil && !b.format.Merger(before, after) {
		return nil, false
	}
	return mergeFormattingNodes(before, after)
}

// tryAscend reports whether node may move above element: never above the
// base or a block, only when the node covers all of element's rendered
// children, and only if the format's Ascender agrees.
func (b *builder[T]) tryAscend(node *FormattingNode[T], element *dom.Element) bool {
	if element == nil || element == b.base || IsBlockElement(element) {
		return false
	}
	if node.flat.parent != element.AsNode() {
		return false
	}
	for i, child := range element.AsNode().ChildNodes() {
		if i >= node.flat.start && i < node.flat.end {
			continue
		}
		if !negligible(child) {
			return false
		}
	}
	if b.format.Ascender != nil && !b.format.Ascender(node, newContainerNode(element.AsNode(), node.children)) {
		return false
	}
	node.ascendAbove(element)
	return true
}

// appendNode adds node after nodes, fusing it into the last one if possible.
func (b *builder[T]) appendNode(nodes []TreeNode[T], node TreeNode[T]) []TreeNode[T] {
	if len(nodes) > 0 {
		last, lastOK := nodes[len(nodes)-1].(*FormattingNode[T])
		next, nextOK := node.(*FormattingNode[T])
		if lastOK && nextOK {
			if merged, ok := b.tryMerge(last, next); ok {
				nodes[len(nodes)-1] = merged
				return nodes
			}
		}
	}
	return append(nodes, node)
}

// insertNode fuses node into the front of nodes. It reports false when the
// two do not fuse, leaving nodes unchanged.
func (b *builder[T]) insertNode(node TreeNode[T], nodes []TreeNode[T]) bool {
	if len(nodes) == 0 {
		return false
	}
	first, firstOK := nodes[0].(*FormattingNode[T])
	prev, prevOK := node.(*FormattingNode[T])
	if !firstOK || !prevOK {
		return false
	}
	merged, ok := b.tryMerge(prev, first)
	if !ok {
		return false
	}
	nodes[0] = merged
	return true
}

// buildFromNode builds the tree nodes for node. ancestors are the matches
// between node and the build root.
func (b *builder[T]) buildFromNode(node *dom.Node, ancestors []match[T]) []TreeNode[T] {
	if negligible(node) {
		return nil
	}
	if node.IsText() {
		return []TreeNode[T]{b.buildFromText(node, ancestors)}
	}
	if el := node.AsElement(); el != nil {
		return b.buildFromElement(el, ancestors)
	}
	return nil
}

func (b *builder[T]) buildFromText(text *dom.Node, ancestors []match[T]) TreeNode[T] {
	inside := b.split.contains(text)
	if inside || len(ancestors) > 0 {
		return newFormattingNode(flatRangeOf(text), inside, ancestors)
	}
	return newContainerNode[T](text, nil)
}

func (b *builder[T]) buildFromElement(el *dom.Element, ancestors []match[T]) []TreeNode[T] {
	var result MatchResult[T]
	if el != b.base {
		result = b.format.Matcher(el)
	}

	remove := false
	childAncestors := ancestors
	if result.Matches() {
		m := match[T]{element: el, cache: result.Cache, hasCache: result.HasCache}
		childAncestors = append(append([]match[T](nil), ancestors...), m)
		switch result.Kind {
		case MatchRemove:
			remove = true
		case MatchClear:
			remove = result.Clear != nil && result.Clear()
		}
	}

	var children []TreeNode[T]
	for _, child := range el.AsNode().ChildNodes() {
		for _, built := range b.buildFromNode(child, childAncestors) {
			children = b.appendNode(children, built)
		}
	}

	if remove {
		m := childAncestors[len(childAncestors)-1]
		index := el.AsNode().Index()
		for _, child := range children {
			if fn, ok := child.(*FormattingNode[T]); ok {
				fn.markRemoved(m, index)
			}
		}
		b.split.adjustRange(el.AsNode())
		el.ReplaceWith(el.AsNode().ChildNodes()...)
		return children
	}

	if len(children) == 1 {
		if fn, ok := children[0].(*FormattingNode[T]); ok && b.tryAscend(fn, el) {
			return children
		}
	}
	return []TreeNode[T]{newContainerNode(el.AsNode(), children)}
}

// topLevel returns the formatting nodes of a forest whose range lies
// directly in parent.
func topLevel[T any](forest []TreeNode[T], parent *dom.Node) []*FormattingNode[T] {
	var nodes []*FormattingNode[T]
	for _, node := range forest {
		if fn, ok := node.(*FormattingNode[T]); ok && fn.flat.parent == parent {
			nodes = append(nodes, fn)
		}
	}
	return nodes
}

// extendAndMerge grows a forest over the siblings before and after it,
// stopping at the first sibling tree that does not fuse. Trees that were
// built but did not fuse stay in the forest.
func (b *builder[T]) extendAndMerge(forest []TreeNode[T]) []TreeNode[T] {
	if len(forest) == 0 {
		return forest
	}
	first, ok := forest[0].(*FormattingNode[T])
	if ok {
		forest = b.mergePrevious(first, forest)
	}
	last, ok := forest[len(forest)-1].(*FormattingNode[T])
	if ok {
		forest = b.mergeNext(last, forest)
	}
	return forest
}

func (b *builder[T]) mergePrevious(first *FormattingNode[T], forest []TreeNode[T]) []TreeNode[T] {
	parent := first.flat.parent
	for sibling := first.flat.firstChild().PreviousSibling(); sibling != nil; {
		previous := sibling.PreviousSibling()

		before := parent.ChildCount()
		built := b.buildFromNode(sibling, nil)
		if delta := parent.ChildCount() - before; delta != 0 {
			for _, fn := range topLevel(forest, parent) {
				fn.flat = fn.flat.shift(delta)
			}
		}

		for i := len(built) - 1; i >= 0; i-- {
			if !b.insertNode(built[i], forest) {
				return append(append([]TreeNode[T](nil), built[:i+1]...), forest...)
			}
		}
		sibling = previous
	}
	return forest
}

func (b *builder[T]) mergeNext(last *FormattingNode[T], forest []TreeNode[T]) []TreeNode[T] {
	for sibling := last.flat.lastChild().NextSibling(); sibling != nil; {
		next := sibling.NextSibling()

		built := b.buildFromNode(sibling, nil)
		for i, node := range built {
			tail, ok := forest[len(forest)-1].(*FormattingNode[T])
			fn, fnOK := node.(*FormattingNode[T])
			if !ok || !fnOK {
				return append(forest, built[i:]...)
			}
			merged, mergedOK := b.tryMerge(tail, fn)
			if !mergedOK {
				return append(forest, built[i:]...)
			}
			forest[len(forest)-1] = merged
		}
		sibling = next
	}
	return forest
}

// buildFormattingTree builds the forest rooted at root, then extends and
// ascends it for as long as a single formatting node remains.
func (b *builder[T]) buildFormattingTree(root *dom.Node) []TreeNode[T] {
	forest := b.buildFromNode(root, nil)
	if !b.policy.extends() {
		return forest
	}

	for {
		forest = b.extendAndMerge(forest)
		if len(forest) != 1 {
			return forest
		}
		fn, ok := forest[0].(*FormattingNode[T])
		if !ok {
			return forest
		}
		if !b.tryAscend(fn, fn.flat.parent.AsElement()) {
			return forest
		}
	}
}
