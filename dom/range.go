package dom

import "strings"

// Range constants for compareBoundaryPoints
const (
	StartToStart = 0
	StartToEnd   = 1
	EndToEnd     = 2
	EndToStart   = 3
)

// Range represents a fragment of a document that can contain nodes and parts
// of text nodes. Ranges are static: boundary points are not adjusted when the
// tree is mutated by anything other than the Range's own methods.
type Range struct {
	startContainer *Node
	startOffset    int
	endContainer   *Node
	endOffset      int
	ownerDocument  *Document
}

// NewRange creates a new Range with both boundary points set to the document.
func NewRange(doc *Document) *Range {
	return &Range{
		startContainer: doc.AsNode(),
		endContainer:   doc.AsNode(),
		ownerDocument:  doc,
	}
}

// StartContainer returns the node where the range starts.
func (r *Range) StartContainer() *Node {
	return r.startContainer
}

// StartOffset returns the offset within the start container.
func (r *Range) StartOffset() int {
	return r.startOffset
}

// EndContainer returns the node where the range ends.
func (r *Range) EndContainer() *Node {
	return r.endContainer
}

// EndOffset returns the offset within the end container.
func (r *Range) EndOffset() int {
	return r.endOffset
}

// OwnerDocument returns the document the range was created for.
func (r *Range) OwnerDocument() *Document {
	return r.ownerDocument
}

// Collapsed returns true if start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.startContainer == r.endContainer && r.startOffset == r.endOffset
}

// CommonAncestorContainer returns the deepest node that contains both boundary points.
func (r *Range) CommonAncestorContainer() *Node {
	startAncestors := make(map[*Node]bool)
	for node := r.startContainer; node != nil; node = node.parentNode {
		startAncestors[node] = true
	}
	for node := r.endContainer; node != nil; node = node.parentNode {
		if startAncestors[node] {
			return node
		}
	}
	return nil
}

func checkBoundary(node *Node, offset int) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("The supplied node is a DocumentType which is not a valid boundary point.")
	}
	if offset < 0 || offset > nodeLength(node) {
		return ErrIndexSize("The offset is out of range.")
	}
	return nil
}

// SetStart sets the start boundary point of the range.
func (r *Range) SetStart(node *Node, offset int) error {
	if err := checkBoundary(node, offset); err != nil {
		return err
	}

	r.startContainer = node
	r.startOffset = offset

	// If start is after end, or in another tree, collapse to start
	if node.GetRootNode() != r.endContainer.GetRootNode() ||
		ComparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	}
	return nil
}

// SetEnd sets the end boundary point of the range.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := checkBoundary(node, offset); err != nil {
		return err
	}

	r.endContainer = node
	r.endOffset = offset

	// If end is before start, or in another tree, collapse to end
	if node.GetRootNode() != r.startContainer.GetRootNode() ||
		ComparePoints(r.startContainer, r.startOffset, r.endContainer, r.endOffset) > 0 {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
	return nil
}

func parentOf(node *Node) (*Node, error) {
	if node == nil {
		return nil, ErrNotFound("Node is null")
	}
	if node.parentNode == nil {
		return nil, ErrInvalidNodeType("The node has no parent.")
	}
	return node.parentNode, nil
}

// SetStartBefore sets the start to immediately before the given node.
func (r *Range) SetStartBefore(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, indexOfChild(parent, node))
}

// SetStartAfter sets the start to immediately after the given node.
func (r *Range) SetStartAfter(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, indexOfChild(parent, node)+1)
}

// SetEndBefore sets the end to immediately before the given node.
func (r *Range) SetEndBefore(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, indexOfChild(parent, node))
}

// SetEndAfter sets the end to immediately after the given node.
func (r *Range) SetEndAfter(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, indexOfChild(parent, node)+1)
}

// Collapse collapses the range to one of its boundary points.
// If toStart is true, collapses to the start; otherwise to the end.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.endContainer = r.startContainer
		r.endOffset = r.startOffset
	} else {
		r.startContainer = r.endContainer
		r.startOffset = r.endOffset
	}
}

// SelectNode sets the range to contain the given node and its contents.
func (r *Range) SelectNode(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}

	index := indexOfChild(parent, node)
	r.startContainer = parent
	r.startOffset = index
	r.endContainer = parent
	r.endOffset = index + 1
	return nil
}

// SelectNodeContents sets the range to contain the contents of the given node.
func (r *Range) SelectNodeContents(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if node.nodeType == DocumentTypeNode {
		return ErrInvalidNodeType("The supplied node is a DocumentType.")
	}

	r.startContainer = node
	r.startOffset = 0
	r.endContainer = node
	r.endOffset = nodeLength(node)
	return nil
}

// CompareBoundaryPoints compares the boundary points of two ranges.
// Returns -1, 0, or 1 depending on whether the first point is before, equal to, or after the second.
func (r *Range) CompareBoundaryPoints(how int, sourceRange *Range) (int, error) {
	if sourceRange == nil {
		return 0, ErrNotFound("Source range is null")
	}
	if r.startContainer.GetRootNode() != sourceRange.startContainer.GetRootNode() {
		return 0, ErrWrongDocument("The two Ranges are not in the same tree.")
	}

	switch how {
	case StartToStart:
		return ComparePoints(r.startContainer, r.startOffset, sourceRange.startContainer, sourceRange.startOffset), nil
	case StartToEnd:
		return ComparePoints(r.endContainer, r.endOffset, sourceRange.startContainer, sourceRange.startOffset), nil
	case EndToEnd:
		return ComparePoints(r.endContainer, r.endOffset, sourceRange.endContainer, sourceRange.endOffset), nil
	case EndToStart:
		return ComparePoints(r.startContainer, r.startOffset, sourceRange.endContainer, sourceRange.endOffset), nil
	default:
		return 0, &DOMError{Name: "NotSupportedError", Message: "Invalid comparison type"}
	}
}

// ComparePoints compares two boundary points in the same tree.
// Returns -1 if (nodeA, offsetA) is before (nodeB, offsetB), 0 if equal, 1 if after.
func ComparePoints(nodeA *Node, offsetA int, nodeB *Node, offsetB int) int {
	if nodeA == nodeB {
		switch {
		case offsetA < offsetB:
			return -1
		case offsetA > offsetB:
			return 1
		}
		return 0
	}

	// Check if nodeA is an ancestor of nodeB
	if isAncestor(nodeA, nodeB) {
		child := nodeB
		for child.parentNode != nodeA {
			child = child.parentNode
		}
		if indexOfChild(nodeA, child) < offsetA {
			return 1
		}
		return -1
	}

	// Check if nodeB is an ancestor of nodeA
	if isAncestor(nodeB, nodeA) {
		child := nodeA
		for child.parentNode != nodeB {
			child = child.parentNode
		}
		if indexOfChild(nodeB, child) < offsetB {
			return -1
		}
		return 1
	}

	return compareTreeOrder(nodeA, nodeB)
}

// compareTreeOrder compares two nodes where neither is an ancestor of the other.
func compareTreeOrder(nodeA, nodeB *Node) int {
	var pathA, pathB []*Node
	for n := nodeA; n != nil; n = n.parentNode {
		pathA = append([]*Node{n}, pathA...)
	}
	for n := nodeB; n != nil; n = n.parentNode {
		pathB = append([]*Node{n}, pathB...)
	}

	for i := 1; i < len(pathA) && i < len(pathB); i++ {
		if pathA[i] != pathB[i] {
			if pathA[i-1] != pathB[i-1] {
				return 0
			}
			if indexOfChild(pathA[i-1], pathA[i]) < indexOfChild(pathA[i-1], pathB[i]) {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ContainsNode returns true if the node is fully contained in the range.
func (r *Range) ContainsNode(node *Node) bool {
	if node == nil || node.GetRootNode() != r.startContainer.GetRootNode() {
		return false
	}
	return ComparePoints(node, 0, r.startContainer, r.startOffset) > 0 &&
		ComparePoints(node, nodeLength(node), r.endContainer, r.endOffset) < 0
}

// IntersectsNode returns true if the range intersects the given node.
func (r *Range) IntersectsNode(node *Node) bool {
	if node == nil || node.GetRootNode() != r.startContainer.GetRootNode() {
		return false
	}

	parent := node.parentNode
	if parent == nil {
		return true
	}

	offset := indexOfChild(parent, node)
	return ComparePoints(parent, offset, r.endContainer, r.endOffset) < 0 &&
		ComparePoints(parent, offset+1, r.startContainer, r.startOffset) > 0
}

// IsPointInRange returns true if the given point is within the range.
func (r *Range) IsPointInRange(node *Node, offset int) bool {
	if node == nil || node.GetRootNode() != r.startContainer.GetRootNode() {
		return false
	}
	if offset < 0 || offset > nodeLength(node) {
		return false
	}
	return ComparePoints(node, offset, r.startContainer, r.startOffset) >= 0 &&
		ComparePoints(node, offset, r.endContainer, r.endOffset) <= 0
}

// DeleteContents removes the contents of the range from the document.
func (r *Range) DeleteContents() error {
	_, err := r.ExtractContents()
	return err
}

// ExtractContents moves the contents of the range into a DocumentFragment and
// returns it. Partially selected elements are split: a shallow clone carries
// the selected part into the fragment.
// https://dom.spec.whatwg.org/#concept-range-extract
func (r *Range) ExtractContents() (*DocumentFragment, error) {
	frag := r.ownerDocument.CreateDocumentFragment()
	if r.Collapsed() {
		return frag, nil
	}

	sc, so, ec, eo := r.startContainer, r.startOffset, r.endContainer, r.endOffset

	// Start and end in the same text node
	if sc == ec && sc.nodeType == TextNode {
		clone := sc.shallowClone()
		clone.data = sc.data[so:eo]
		frag.AsNode().insertBefore(clone, nil)
		sc.data = sc.data[:so] + sc.data[eo:]
		r.endOffset = so
		return frag, nil
	}

	commonAncestor := r.CommonAncestorContainer()

	var firstPartial, lastPartial *Node
	if !sc.isInclusiveAncestorOf(ec) {
		for firstPartial = sc; firstPartial.parentNode != commonAncestor; {
			firstPartial = firstPartial.parentNode
		}
	}
	if !ec.isInclusiveAncestorOf(sc) {
		for lastPartial = ec; lastPartial.parentNode != commonAncestor; {
			lastPartial = lastPartial.parentNode
		}
	}

	var contained []*Node
	for child := commonAncestor.firstChild; child != nil; child = child.nextSibling {
		if r.ContainsNode(child) {
			contained = append(contained, child)
		}
	}

	newNode, newOffset := sc, so
	if !sc.isInclusiveAncestorOf(ec) {
		reference := sc
		for !reference.parentNode.isInclusiveAncestorOf(ec) {
			reference = reference.parentNode
		}
		newNode = reference.parentNode
		newOffset = indexOfChild(newNode, reference) + 1
	}

	if firstPartial != nil {
		if firstPartial.nodeType == TextNode {
			clone := firstPartial.shallowClone()
			clone.data = firstPartial.data[so:]
			frag.AsNode().insertBefore(clone, nil)
			firstPartial.data = firstPartial.data[:so]
		} else {
			clone := firstPartial.shallowClone()
			frag.AsNode().insertBefore(clone, nil)
			sub := &Range{sc, so, firstPartial, nodeLength(firstPartial), r.ownerDocument}
			subFrag, err := sub.ExtractContents()
			if err != nil {
				return nil, err
			}
			clone.insertBefore(subFrag.AsNode(), nil)
		}
	}

	for _, child := range contained {
		frag.AsNode().insertBefore(child, nil)
	}

	if lastPartial != nil {
		if lastPartial.nodeType == TextNode {
			clone := lastPartial.shallowClone()
			clone.data = lastPartial.data[:eo]
			frag.AsNode().insertBefore(clone, nil)
			lastPartial.data = lastPartial.data[eo:]
		} else {
			clone := lastPartial.shallowClone()
			frag.AsNode().insertBefore(clone, nil)
			sub := &Range{lastPartial, 0, ec, eo, r.ownerDocument}
			subFrag, err := sub.ExtractContents()
			if err != nil {
				return nil, err
			}
			clone.insertBefore(subFrag.AsNode(), nil)
		}
	}

	r.startContainer, r.startOffset = newNode, newOffset
	r.endContainer, r.endOffset = newNode, newOffset
	return frag, nil
}

// InsertNode inserts a node at the start of the range. A text start container
// is split at the start offset.
func (r *Range) InsertNode(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}
	if node.isInclusiveAncestorOf(r.startContainer) {
		return ErrHierarchyRequest("The node to be inserted contains the insertion point.")
	}

	var parent, reference *Node
	if r.startContainer.nodeType == TextNode {
		parent = r.startContainer.parentNode
		if parent == nil {
			return ErrHierarchyRequest("Cannot insert into an orphan text node")
		}
		split, err := (*Text)(r.startContainer).SplitText(r.startOffset)
		if err != nil {
			return err
		}
		reference = split.AsNode()
	} else {
		parent = r.startContainer
		reference = parent.ChildAt(r.startOffset)
	}
	if reference == node {
		reference = node.nextSibling
	}

	if err := parent.validatePreInsertion(node, reference); err != nil {
		return err
	}

	parent.insertBefore(node, reference)

	if r.Collapsed() {
		end := parent.ChildCount()
		if reference != nil {
			end = indexOfChild(parent, reference)
		}
		r.endContainer = parent
		r.endOffset = end
	}
	return nil
}

// SurroundContents wraps the range contents with a new parent element.
func (r *Range) SurroundContents(newParent *Node) error {
	if newParent == nil {
		return ErrNotFound("New parent is null")
	}

	// A non-Text node that is only partially selected cannot be wrapped
	commonAncestor := r.CommonAncestorContainer()
	for _, container := range []*Node{r.startContainer, r.endContainer} {
		for n := container; n != commonAncestor; n = n.parentNode {
			if n.nodeType != TextNode {
				return ErrInvalidState("Range partially selects a non-Text node")
			}
		}
	}

	switch newParent.nodeType {
	case DocumentNode, DocumentTypeNode, DocumentFragmentNode:
		return ErrInvalidNodeType("Invalid new parent type")
	}

	frag, err := r.ExtractContents()
	if err != nil {
		return err
	}

	for newParent.firstChild != nil {
		newParent.removeChildInternal(newParent.firstChild)
	}

	if err := r.InsertNode(newParent); err != nil {
		return err
	}
	newParent.insertBefore(frag.AsNode(), nil)

	return r.SelectNode(newParent)
}

// CloneRange returns a copy of this range.
func (r *Range) CloneRange() *Range {
	clone := *r
	return &clone
}

// ToString returns the text content of the range.
func (r *Range) ToString() string {
	if r.Collapsed() {
		return ""
	}

	if r.startContainer == r.endContainer && r.startContainer.nodeType == TextNode {
		return r.startContainer.data[r.startOffset:r.endOffset]
	}

	var sb strings.Builder
	if r.startContainer.nodeType == TextNode {
		sb.WriteString(r.startContainer.data[r.startOffset:])
	}
	walkTree(r.CommonAncestorContainer(), func(node *Node) {
		if node.nodeType == TextNode && r.ContainsNode(node) {
			sb.WriteString(node.data)
		}
	})
	if r.endContainer.nodeType == TextNode {
		sb.WriteString(r.endContainer.data[:r.endOffset])
	}
	return sb.String()
}

// walkTree visits root and its descendants in document order.
func walkTree(root *Node, visit func(*Node)) {
	visit(root)
	for child := root.firstChild; child != nil; child = child.nextSibling {
		walkTree(child, visit)
	}
}

// Helper functions

// nodeLength returns the length of a node for range purposes.
// For text and comment nodes, it's the data length.
// For other nodes, it's the number of child nodes.
func nodeLength(node *Node) int {
	switch node.nodeType {
	case TextNode, CommentNode:
		return len(node.data)
	default:
		return node.ChildCount()
	}
}

// indexOfChild returns the index of a child within its parent.
func indexOfChild(parent, child *Node) int {
	index := 0
	for c := parent.firstChild; c != nil; c = c.nextSibling {
		if c == child {
			return index
		}
		index++
	}
	return -1
}

// isAncestor returns true if ancestor is a strict ancestor of node.
func isAncestor(ancestor, node *Node) bool {
	for n := node.parentNode; n != nil; n = n.parentNode {
		if n == ancestor {
			return true
		}
	}
	return false
}

// isInclusiveAncestorOf returns true if n is node or one of its ancestors.
func (n *Node) isInclusiveAncestorOf(node *Node) bool {
	return n == node || isAncestor(n, node)
}
