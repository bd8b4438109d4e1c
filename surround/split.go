package surround

import (
	"github.com/chrisuehlinger/vibedit/dom"
)

// splitRange is a range whose boundaries fall between nodes. The selected
// content runs from before startAnchor to after endAnchor.
type splitRange struct {
	startAnchor *dom.Node
	endAnchor   *dom.Node

	// created marks anchors inserted by the split rather than found in the tree.
	created map[*dom.Node]bool
}

// splitPartiallySelected splits the text nodes cut by rng so that every
// selected character belongs to a fully selected node. Element boundaries
// that fall after the last or before the first child get an empty text
// node as anchor.
func splitPartiallySelected(rng *dom.Range) (*splitRange, error) {
	doc := rng.OwnerDocument()
	created := make(map[*dom.Node]bool)
	startContainer, startOffset := rng.StartContainer(), rng.StartOffset()
	endContainer, endOffset := rng.EndContainer(), rng.EndOffset()

	var endAnchor *dom.Node
	if text := endContainer.AsText(); text != nil {
		if endOffset < text.Length() {
			if _, err := text.SplitText(endOffset); err != nil {
				return nil, err
			}
		}
		endAnchor = endContainer
	} else if endOffset > 0 {
		endAnchor = endContainer.ChildAt(endOffset - 1)
	} else {
		endAnchor = doc.CreateTextNode("")
		created[endAnchor] = true
		endContainer.InsertBefore(endAnchor, endContainer.FirstChild())
	}

	var startAnchor *dom.Node
	if text := startContainer.AsText(); text != nil {
		startAnchor = startContainer
		if startOffset > 0 {
			right, err := text.SplitText(startOffset)
			if err != nil {
				return nil, err
			}
			startAnchor = right.AsNode()
			created[startAnchor] = true
			if endAnchor == startContainer {
				endAnchor = startAnchor
			}
		}
	} else if startOffset < startContainer.ChildCount() {
		startAnchor = startContainer.ChildAt(startOffset)
	} else {
		startAnchor = doc.CreateTextNode("")
		created[startAnchor] = true
		startContainer.AppendChild(startAnchor)
	}

	return &splitRange{startAnchor: startAnchor, endAnchor: endAnchor, created: created}, nil
}

// adjustRange moves an anchor off element before element is unwrapped.
func (s *splitRange) adjustRange(element *dom.Node) {
	if s.startAnchor == element && element.FirstChild() != nil {
		s.startAnchor = element.FirstChild()
	}
	if s.endAnchor == element && element.LastChild() != nil {
		s.endAnchor = element.LastChild()
	}
}

// commonAncestor returns the deepest inclusive ancestor of both anchors.
func (s *splitRange) commonAncestor() *dom.Node {
	ancestors := make(map[*dom.Node]bool)
	for node := s.startAnchor; node != nil; node = node.ParentNode() {
		ancestors[node] = true
	}
	for node := s.endAnchor; node != nil; node = node.ParentNode() {
		if ancestors[node] {
			return node
		}
	}
	return nil
}

// contains reports whether node lies entirely between the anchors.
func (s *splitRange) contains(node *dom.Node) bool {
	rng, err := s.toDOMRange()
	if err != nil {
		return false
	}
	return rng.ContainsNode(node)
}

// toDOMRange returns a range from before the start anchor to after the end
// anchor, in the current shape of the tree.
func (s *splitRange) toDOMRange() (*dom.Range, error) {
	rng := dom.NewRange(s.startAnchor.OwnerDocument())
	if err := rng.SetStartBefore(s.startAnchor); err != nil {
		return nil, err
	}
	if err := rng.SetEndAfter(s.endAnchor); err != nil {
		return nil, err
	}
	return rng, nil
}

// finish returns the range over the formatted content and removes the anchors
// the split inserted that are still empty, so no empty text is left behind.
func (s *splitRange) finish() (*dom.Range, error) {
	rng := dom.NewRange(s.startAnchor.OwnerDocument())

	if parent, index, ok := s.removeEmptyAnchor(s.startAnchor); ok {
		if err := rng.SetStart(parent, index); err != nil {
			return nil, err
		}
	} else if err := rng.SetStartBefore(s.startAnchor); err != nil {
		return nil, err
	}

	if parent, index, ok := s.removeEmptyAnchor(s.endAnchor); ok {
		if err := rng.SetEnd(parent, index); err != nil {
			return nil, err
		}
	} else if err := rng.SetEndAfter(s.endAnchor); err != nil {
		return nil, err
	}
	return rng, nil
}

// removeEmptyAnchor detaches anchor when the split created it and it holds
// no text, returning the boundary point it occupied.
func (s *splitRange) removeEmptyAnchor(anchor *dom.Node) (*dom.Node, int, bool) {
	parent := anchor.ParentNode()
	if !s.created[anchor] || s.startAnchor == s.endAnchor || anchor.NodeValue() != "" || parent == nil {
		return nil, 0, false
	}
	index := anchor.Index()
	parent.RemoveChild(anchor)
	return parent, index, true
}
