package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// serializeNode serializes a node to HTML.
func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		sb.WriteString(html.EscapeString(n.data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.data)
		sb.WriteString("-->")
	case ElementNode:
		el := (*Element)(n)
		tagName := el.LocalName()
		sb.WriteString("<")
		sb.WriteString(tagName)

		for _, attr := range el.elem().attributes {
			sb.WriteString(" ")
			sb.WriteString(attr.name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.value))
			sb.WriteString("\"")
		}

		sb.WriteString(">")
		if isVoidElement(tagName) {
			return
		}

		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}

		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentFragmentNode, DocumentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	}
}

// isVoidElement returns true if the element is a void element.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// Serialize returns the HTML serialization of the node. For elements this is
// the outer HTML; documents and fragments serialize their children.
func Serialize(n *Node) string {
	var sb strings.Builder
	serializeNode(n, &sb)
	return sb.String()
}
