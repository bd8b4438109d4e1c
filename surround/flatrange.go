package surround

import (
	"github.com/chrisuehlinger/vibedit/dom"
)

// FlatRange is a run of consecutive children of one parent node:
// the children at indices [Start, End).
type FlatRange struct {
	parent *dom.Node
	start  int
	end    int
}

func newFlatRange(parent *dom.Node, start, end int) FlatRange {
	return FlatRange{parent: parent, start: start, end: end}
}

// flatRangeOf covers exactly one node.
func flatRangeOf(node *dom.Node) FlatRange {
	index := node.Index()
	return newFlatRange(node.ParentNode(), index, index+1)
}

// Parent returns the node whose children the range covers.
func (r FlatRange) Parent() *dom.Node { return r.parent }

// Start returns the index of the first covered child.
func (r FlatRange) Start() int { return r.start }

// End returns the index after the last covered child.
func (r FlatRange) End() int { return r.end }

// Len returns the number of covered children.
func (r FlatRange) Len() int { return r.end - r.start }

// Nodes returns the covered children.
func (r FlatRange) Nodes() []*dom.Node {
	nodes := make([]*dom.Node, 0, r.Len())
	child := r.parent.ChildAt(r.start)
	for i := r.start; i < r.end && child != nil; i++ {
		nodes = append(nodes, child)
		child = child.NextSibling()
	}
	return nodes
}

func (r FlatRange) firstChild() *dom.Node { return r.parent.ChildAt(r.start) }

func (r FlatRange) lastChild() *dom.Node { return r.parent.ChildAt(r.end - 1) }

// mergeWith spans from r to after. Both must share a parent.
func (r FlatRange) mergeWith(after FlatRange) (FlatRange, bool) {
	if r.parent != after.parent || r.end > after.start {
		return r, false
	}
	return newFlatRange(r.parent, r.start, after.end), true
}

// shift moves the range by delta children.
func (r FlatRange) shift(delta int) FlatRange {
	return newFlatRange(r.parent, r.start+delta, r.end+delta)
}

// rebase re-expresses a range over the children of element in terms of
// element's parent, for when element is replaced by its children. index is
// element's position in its parent.
func (r FlatRange) rebase(element *dom.Node, index int) FlatRange {
	if r.parent != element {
		return r
	}
	return newFlatRange(element.ParentNode(), index+r.start, index+r.end)
}

// toDOMRange converts the flat range into a dom.Range over the same children.
func (r FlatRange) toDOMRange() (*dom.Range, error) {
	rng := dom.NewRange(r.parent.OwnerDocument())
	if err := rng.SetStart(r.parent, r.start); err != nil {
		return nil, err
	}
	if err := rng.SetEnd(r.parent, r.end); err != nil {
		return nil, err
	}
	return rng, nil
}
