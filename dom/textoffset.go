package dom

import "unicode/utf8"

// textNodes returns the text nodes below root in document order.
func textNodes(root *Node) []*Node {
	var nodes []*Node
	walkTree(root, func(n *Node) {
		if n.nodeType == TextNode && n != root {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// byteOffset converts a character offset within s to a byte offset.
func byteOffset(s string, chars int) int {
	i := 0
	for ; chars > 0 && i < len(s); chars-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// RangeFromTextOffsets creates a range over root spanning the characters
// [start, end) of its text content. Offsets count characters, not bytes.
// A start at the seam between two text nodes lands at the beginning of the
// later node; an end, or a collapsed range, lands at the end of the earlier one.
func RangeFromTextOffsets(root *Element, start, end int) (*Range, error) {
	if start < 0 || end < start {
		return nil, ErrIndexSize("The offsets are out of range.")
	}

	r := NewRange(root.AsNode().ownerDoc)
	nodes := textNodes(root.AsNode())
	total := 0
	for _, n := range nodes {
		total += utf8.RuneCountInString(n.data)
	}
	if end > total {
		return nil, ErrIndexSize("The offsets are out of range.")
	}
	if total == 0 {
		if err := r.SetStart(root.AsNode(), 0); err != nil {
			return nil, err
		}
		return r, nil
	}

	startNode, startOffset := locateText(nodes, start, start != end)
	endNode, endOffset := locateText(nodes, end, false)
	if err := r.SetStart(startNode, startOffset); err != nil {
		return nil, err
	}
	if err := r.SetEnd(endNode, endOffset); err != nil {
		return nil, err
	}
	return r, nil
}

// locateText finds the text node and byte offset for a character position.
// With preferNext set, a position on a seam resolves into the following node.
func locateText(nodes []*Node, pos int, preferNext bool) (*Node, int) {
	seen := 0
	for _, n := range nodes {
		length := utf8.RuneCountInString(n.data)
		if length == 0 {
			continue
		}
		if pos < seen+length || (!preferNext && pos <= seen+length) {
			return n, byteOffset(n.data, pos-seen)
		}
		seen += length
	}
	last := nodes[len(nodes)-1]
	return last, len(last.data)
}

// TextOffsetOf converts a boundary point below root into a character offset
// into root's text content.
func TextOffsetOf(root *Element, node *Node, offset int) int {
	count := 0
	for _, n := range textNodes(root.AsNode()) {
		if n == node {
			return count + utf8.RuneCountInString(n.data[:min(offset, len(n.data))])
		}
		if ComparePoints(n, 0, node, offset) >= 0 {
			break
		}
		count += utf8.RuneCountInString(n.data)
	}
	return count
}
