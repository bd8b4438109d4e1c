package dom

import "unicode/utf8"

// Text represents a text node in the DOM.
// Offsets into text data are byte offsets.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// NodeType returns TextNode (3).
func (t *Text) NodeType() NodeType {
	return TextNode
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.AsNode().data
}

// SetData sets the text content.
func (t *Text) SetData(data string) {
	t.AsNode().data = data
}

// Length returns the length of the text content.
func (t *Text) Length() int {
	return len(t.Data())
}

// AppendData appends a string to the text.
// This is equivalent to insertData(length, data).
func (t *Text) AppendData(data string) {
	t.replaceData(t.Length(), 0, data)
}

// InsertData inserts a string at the given offset.
// This is equivalent to replaceData(offset, 0, data).
func (t *Text) InsertData(offset int, data string) {
	if offset < 0 {
		offset = 0
	}
	if offset > t.Length() {
		offset = t.Length()
	}
	t.replaceData(offset, 0, data)
}

// DeleteData deletes count bytes starting at the given offset.
func (t *Text) DeleteData(offset, count int) {
	if offset < 0 || offset >= t.Length() {
		return
	}
	if count < 0 {
		count = 0
	}
	t.replaceData(offset, count, "")
}

func (t *Text) replaceData(offset, count int, data string) {
	current := t.Data()
	end := offset + count
	if end > len(current) {
		end = len(current)
	}
	t.SetData(current[:offset] + data + current[end:])
}

// IsCharBoundary reports whether offset falls between two characters of data.
func IsCharBoundary(data string, offset int) bool {
	return offset >= len(data) || utf8.RuneStart(data[offset])
}

// SplitText splits this text node at the given offset.
// Returns the new text node containing the text after the offset, inserted as
// the next sibling when this node has a parent.
func (t *Text) SplitText(offset int) (*Text, error) {
	data := t.Data()
	if offset < 0 || offset > len(data) {
		return nil, ErrIndexSize("The offset is out of range.")
	}
	if !IsCharBoundary(data, offset) {
		return nil, ErrIndexSize("The offset is inside a character.")
	}

	newNode := t.AsNode().ownerDoc.CreateTextNode(data[offset:])
	t.SetData(data[:offset])

	if parent := t.AsNode().parentNode; parent != nil {
		parent.insertBefore(newNode, t.AsNode().nextSibling)
	}

	return (*Text)(newNode), nil
}

// Remove removes this text node from its parent.
func (t *Text) Remove() {
	if t.AsNode().parentNode != nil {
		t.AsNode().parentNode.removeChildInternal(t.AsNode())
	}
}
