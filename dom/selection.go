package dom

// Selection represents a user's selection of text in the document.
// Like most browsers, it holds at most one range.
type Selection struct {
	// The document this selection belongs to
	document *Document

	ranges []*Range
}

// NewSelection creates a new Selection for the given document.
func NewSelection(doc *Document) *Selection {
	return &Selection{document: doc}
}

// AnchorNode returns the node in which the selection begins.
// Returns nil if the selection is empty.
func (s *Selection) AnchorNode() *Node {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[0].StartContainer()
}

// AnchorOffset returns the offset within the anchor node where the selection starts.
func (s *Selection) AnchorOffset() int {
	if len(s.ranges) == 0 {
		return 0
	}
	return s.ranges[0].StartOffset()
}

// FocusNode returns the node in which the selection ends.
// Returns nil if the selection is empty.
func (s *Selection) FocusNode() *Node {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[0].EndContainer()
}

// FocusOffset returns the offset within the focus node where the selection ends.
func (s *Selection) FocusOffset() int {
	if len(s.ranges) == 0 {
		return 0
	}
	return s.ranges[0].EndOffset()
}

// IsCollapsed returns true if the selection's start and end points are at the same position.
func (s *Selection) IsCollapsed() bool {
	if len(s.ranges) == 0 {
		return true
	}
	return s.ranges[0].Collapsed()
}

// RangeCount returns the number of ranges in the selection.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// Type returns the type of the current selection.
// Returns "None", "Caret", or "Range".
func (s *Selection) Type() string {
	if len(s.ranges) == 0 {
		return "None"
	}
	if s.ranges[0].Collapsed() {
		return "Caret"
	}
	return "Range"
}

// GetRangeAt returns the range at the given index.
// Returns nil and an error if the index is out of bounds.
func (s *Selection) GetRangeAt(index int) (*Range, error) {
	if index < 0 || index >= len(s.ranges) {
		return nil, ErrIndexSize("Index out of range")
	}
	return s.ranges[index], nil
}

// AddRange adds a Range to the selection. An existing range is kept and the
// addition ignored.
func (s *Selection) AddRange(r *Range) {
	if r == nil {
		return
	}
	if len(s.ranges) == 0 {
		s.ranges = append(s.ranges, r)
	}
}

// SetRange replaces the selection with r.
func (s *Selection) SetRange(r *Range) {
	s.RemoveAllRanges()
	s.AddRange(r)
}

// RemoveAllRanges removes all ranges from the selection.
func (s *Selection) RemoveAllRanges() {
	s.ranges = s.ranges[:0]
}

// Collapse collapses the selection to a single point.
func (s *Selection) Collapse(node *Node, offset int) error {
	if node == nil {
		s.RemoveAllRanges()
		return nil
	}

	r := NewRange(s.document)
	if err := r.SetStart(node, offset); err != nil {
		return err
	}
	r.Collapse(true)

	s.ranges = []*Range{r}
	return nil
}

// CollapseToStart collapses the selection to the start of the first range.
func (s *Selection) CollapseToStart() error {
	if len(s.ranges) == 0 {
		return ErrInvalidState("No ranges in selection")
	}
	return s.Collapse(s.ranges[0].StartContainer(), s.ranges[0].StartOffset())
}

// CollapseToEnd collapses the selection to the end of the last range.
func (s *Selection) CollapseToEnd() error {
	if len(s.ranges) == 0 {
		return ErrInvalidState("No ranges in selection")
	}
	lastRange := s.ranges[len(s.ranges)-1]
	return s.Collapse(lastRange.EndContainer(), lastRange.EndOffset())
}

// SelectAllChildren selects all the children of the specified node.
func (s *Selection) SelectAllChildren(node *Node) error {
	if node == nil {
		return ErrNotFound("Node is null")
	}

	r := NewRange(s.document)
	if err := r.SelectNodeContents(node); err != nil {
		return err
	}

	s.ranges = []*Range{r}
	return nil
}

// SetBaseAndExtent sets the selection to be a range including parts of two DOM nodes.
func (s *Selection) SetBaseAndExtent(anchorNode *Node, anchorOffset int, focusNode *Node, focusOffset int) error {
	if anchorNode == nil || focusNode == nil {
		return ErrNotFound("Node is null")
	}

	r := NewRange(s.document)
	if err := r.SetStart(anchorNode, anchorOffset); err != nil {
		return err
	}
	if err := r.SetEnd(focusNode, focusOffset); err != nil {
		return err
	}

	s.ranges = []*Range{r}
	return nil
}

// ContainsNode indicates if a certain node is part of the selection.
// If partialContainment is true, returns true if any part of the node is in the selection.
func (s *Selection) ContainsNode(node *Node, partialContainment bool) bool {
	if node == nil {
		return false
	}
	for _, r := range s.ranges {
		if partialContainment && r.IntersectsNode(node) {
			return true
		}
		if !partialContainment && r.ContainsNode(node) {
			return true
		}
	}
	return false
}

// ToString returns a string representing the text content of the selection.
func (s *Selection) ToString() string {
	var result string
	for _, r := range s.ranges {
		result += r.ToString()
	}
	return result
}
