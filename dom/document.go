package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document represents the entire HTML document.
type Document Node

// DocumentFragment is a lightweight container whose children are moved, not
// the fragment itself, when it is inserted into a tree.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (f *DocumentFragment) AsNode() *Node {
	return (*Node)(f)
}

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for child := docEl.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode && strings.EqualFold(child.nodeName, "BODY") {
			return (*Element)(child)
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
// This method ignores errors; use CreateElementWithError for proper error handling.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element with the given tag name.
// Returns an InvalidCharacterError if the tag name is empty or contains
// characters that cannot appear in a tag name.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if tagName == "" || strings.ContainsAny(tagName, " \t\n\f\r/<>=\"'") {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}

	tag := strings.ToUpper(tagName)
	node := newNode(ElementNode, tag, d)
	node.elementData = &elementData{
		localName: strings.ToLower(tagName),
		tagName:   tag,
	}
	return (*Element)(node), nil
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.data = data
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.data = data
	return node
}

// CreateDocumentFragment creates an empty DocumentFragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	return (*DocumentFragment)(newNode(DocumentFragmentNode, "#document-fragment", d))
}

// GetSelection returns the document's selection, creating it on first use.
func (d *Document) GetSelection() *Selection {
	if d.AsNode().selection == nil {
		d.AsNode().selection = NewSelection(d)
	}
	return d.AsNode().selection
}

// CreateRange creates a new Range with both boundary points set to the beginning of the document.
func (d *Document) CreateRange() *Range {
	return NewRange(d)
}

// ParseHTML parses an HTML string and returns a Document.
func ParseHTML(htmlContent string) (*Document, error) {
	return ParseHTMLReader(strings.NewReader(htmlContent))
}

// ParseHTMLReader parses HTML read from r and returns a Document.
func ParseHTMLReader(r io.Reader) (*Document, error) {
	doc := NewDocument()

	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	convertHTMLTree(netDoc, doc.AsNode(), doc)
	return doc, nil
}

// ParseFragment parses an HTML body fragment into a fresh document and
// returns the document together with its body, which holds the fragment.
func ParseFragment(fragment string) (*Document, *Element, error) {
	doc, err := ParseHTML("<!DOCTYPE html><html><head></head><body>" + fragment + "</body></html>")
	if err != nil {
		return nil, nil, err
	}
	return doc, doc.Body(), nil
}

// convertHTMLTree converts an html.Node tree to our DOM tree.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)

		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				el.setAttributeValue(strings.ToLower(attr.Key), attr.Val)
			}
			node = el.AsNode()

		case html.CommentNode:
			node = doc.CreateComment(c.Data)

		case html.DoctypeNode:
			node = newNode(DocumentTypeNode, c.Data, doc)

		case html.DocumentNode:
			convertHTMLTree(c, parent, doc)
			continue

		default:
			continue
		}

		parent.insertBefore(node, nil)
		if c.Type == html.ElementNode {
			convertHTMLTree(c, node, doc)
		}
	}
}
