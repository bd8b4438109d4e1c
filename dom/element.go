package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element represents an element in the DOM tree.
// Element inherits from Node and provides element-specific properties and methods.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.elem().tagName
}

// LocalName returns the local name of the element (lowercase).
func (e *Element) LocalName() string {
	return e.elem().localName
}

func (e *Element) elem() *elementData {
	if e.AsNode().elementData == nil {
		name := e.AsNode().nodeName
		e.AsNode().elementData = &elementData{
			localName: strings.ToLower(name),
			tagName:   strings.ToUpper(name),
		}
	}
	return e.AsNode().elementData
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// Attributes returns a snapshot of the element's attributes in document order.
func (e *Element) Attributes() []Attr {
	attrs := make([]Attr, 0, len(e.elem().attributes))
	for _, attr := range e.elem().attributes {
		attrs = append(attrs, *attr)
	}
	return attrs
}

// AttributeCount returns the number of attributes on the element.
func (e *Element) AttributeCount() int {
	return len(e.elem().attributes)
}

func (e *Element) findAttribute(name string) (int, *Attr) {
	name = strings.ToLower(name)
	for i, attr := range e.elem().attributes {
		if attr.name == name {
			return i, attr
		}
	}
	return -1, nil
}

// GetAttribute returns the value of the attribute with the given name.
// Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	if _, attr := e.findAttribute(name); attr != nil {
		return attr.value
	}
	return ""
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	_, attr := e.findAttribute(name)
	return attr != nil
}

// SetAttribute sets the value of the attribute with the given name.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the attribute with the given name.
// Returns an error if the name is invalid.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeLocalName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	e.setAttributeValue(name, value)
	if name == "style" && e.elem().style != nil {
		e.elem().style.RefreshFromAttribute()
	}
	return nil
}

// setAttributeValue stores a value without refreshing the style declaration.
func (e *Element) setAttributeValue(name, value string) {
	if _, attr := e.findAttribute(name); attr != nil {
		attr.value = value
		return
	}
	e.elem().attributes = append(e.elem().attributes, &Attr{name: name, value: value})
}

// RemoveAttribute removes the attribute with the given name.
func (e *Element) RemoveAttribute(name string) {
	i, attr := e.findAttribute(name)
	if attr == nil {
		return
	}
	attrs := e.elem().attributes
	e.elem().attributes = append(attrs[:i], attrs[i+1:]...)
	if attr.name == "style" && e.elem().style != nil {
		e.elem().style.RefreshFromAttribute()
	}
}

// removeAttributeValue drops an attribute without refreshing the style declaration.
func (e *Element) removeAttributeValue(name string) {
	if i, attr := e.findAttribute(name); attr != nil {
		attrs := e.elem().attributes
		e.elem().attributes = append(attrs[:i], attrs[i+1:]...)
	}
}

// Style returns the CSSStyleDeclaration for this element's inline styles.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.elem().style == nil {
		e.elem().style = NewCSSStyleDeclaration(e)
	}
	return e.elem().style
}

// FirstElementChild returns the first child that is an element.
func (e *Element) FirstElementChild() *Element {
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// ChildElementCount returns the number of element children.
func (e *Element) ChildElementCount() int {
	count := 0
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// InnerHTML returns the HTML content of the element.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the element's children with the parsed HTML content.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return err
	}
	for e.AsNode().firstChild != nil {
		e.AsNode().removeChildInternal(e.AsNode().firstChild)
	}
	for _, node := range nodes {
		e.AsNode().insertBefore(node, nil)
	}
	return nil
}

// OuterHTML returns the HTML of the element including the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb)
	return sb.String()
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent sets the text content of the element.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// ReplaceWith replaces this element with the given nodes, in order.
// Passing the element's own children unwraps it.
func (e *Element) ReplaceWith(nodes ...*Node) {
	parent := e.AsNode().parentNode
	if parent == nil {
		return
	}
	for _, node := range nodes {
		if node == e.AsNode() {
			continue
		}
		parent.insertBefore(node, e.AsNode())
	}
	parent.removeChildInternal(e.AsNode())
}

// Remove removes this element from its parent.
func (e *Element) Remove() {
	if e.AsNode().parentNode != nil {
		e.AsNode().parentNode.removeChildInternal(e.AsNode())
	}
}

// CloneNode clones this element.
func (e *Element) CloneNode(deep bool) *Element {
	return (*Element)(e.AsNode().CloneNode(deep))
}

// parseHTMLFragment parses an HTML fragment in the context of an element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: lookupAtom(tagName),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	doc := context.AsNode().ownerDoc
	result := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if node := convertHTMLNode(n, doc); node != nil {
			result = append(result, node)
		}
	}
	return result, nil
}

// convertHTMLNode converts an html.Node to a dom.Node.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node

	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, attr := range n.Attr {
			el.setAttributeValue(strings.ToLower(attr.Key), attr.Val)
		}
		node = el.AsNode()
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	default:
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertHTMLNode(c, doc); child != nil {
			node.insertBefore(child, nil)
		}
	}

	return node
}

func lookupAtom(tagName string) atom.Atom {
	return atom.Lookup([]byte(tagName))
}
