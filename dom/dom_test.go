package dom

import (
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.AsNode().NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.AsNode().NodeType())
	}
	if doc.AsNode().NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.AsNode().NodeName())
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	if el == nil {
		t.Fatal("CreateElement returned nil")
	}
	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}

	if _, err := doc.CreateElementWithError("a b"); err == nil {
		t.Error("Expected InvalidCharacterError for a tag name with whitespace")
	}
}

func TestDocument_CreateTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("Hello, World!")

	if text.NodeType() != TextNode {
		t.Errorf("Expected TextNode, got %v", text.NodeType())
	}
	if text.NodeValue() != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got '%s'", text.NodeValue())
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("span")

	el.SetAttribute("Class", "cloze")
	el.SetAttribute("data-ordinal", "1")

	if el.GetAttribute("class") != "cloze" {
		t.Errorf("Expected class 'cloze', got %q", el.GetAttribute("class"))
	}
	if !el.HasAttribute("DATA-ORDINAL") {
		t.Error("Attribute lookup should be case-insensitive")
	}
	if el.AttributeCount() != 2 {
		t.Errorf("Expected 2 attributes, got %d", el.AttributeCount())
	}

	el.RemoveAttribute("class")
	if el.HasAttribute("class") {
		t.Error("class should have been removed")
	}
	if err := el.SetAttributeWithError("a=b", "x"); err == nil {
		t.Error("Expected error for invalid attribute name")
	}
}

func TestNode_AppendChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child1 := doc.CreateElement("span")
	child2 := doc.CreateElement("b")

	parent.AsNode().AppendChild(child1.AsNode())
	parent.AsNode().AppendChild(child2.AsNode())

	if parent.AsNode().FirstChild() != child1.AsNode() {
		t.Error("First child should be child1")
	}
	if parent.AsNode().LastChild() != child2.AsNode() {
		t.Error("Last child should be child2")
	}
	if child1.AsNode().NextSibling() != child2.AsNode() {
		t.Error("child1's next sibling should be child2")
	}
	if child2.AsNode().Index() != 1 {
		t.Errorf("Expected index 1, got %d", child2.AsNode().Index())
	}
	if parent.AsNode().ChildCount() != 2 {
		t.Errorf("Expected 2 children, got %d", parent.AsNode().ChildCount())
	}
}

func TestNode_RemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	parent.AsNode().AppendChild(child.AsNode())

	if _, err := parent.AsNode().RemoveChildWithError(child.AsNode()); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}
	if parent.AsNode().HasChildNodes() {
		t.Error("Parent should have no children")
	}
	if child.AsNode().ParentNode() != nil {
		t.Error("Removed child should have no parent")
	}

	_, err := parent.AsNode().RemoveChildWithError(child.AsNode())
	domErr, ok := err.(*DOMError)
	if !ok || domErr.Name != "NotFoundError" {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestNode_HierarchyRequestError(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	outer.AsNode().AppendChild(inner.AsNode())

	_, err := inner.AsNode().AppendChildWithError(outer.AsNode())
	domErr, ok := err.(*DOMError)
	if !ok || domErr.Name != "HierarchyRequestError" {
		t.Errorf("Expected HierarchyRequestError, got %v", err)
	}
}

func TestNode_ReplaceChild(t *testing.T) {
	_, body, err := ParseFragment("<b>1</b><i>2</i>")
	if err != nil {
		t.Fatal(err)
	}
	doc := body.AsNode().OwnerDocument()
	u := doc.CreateElement("u")
	body.AsNode().ReplaceChild(u.AsNode(), body.AsNode().FirstChild())

	if got := body.InnerHTML(); got != "<u></u><i>2</i>" {
		t.Errorf("Expected '<u></u><i>2</i>', got %q", got)
	}
}

func TestNode_CloneNode(t *testing.T) {
	_, body, _ := ParseFragment(`<span style="color: red">a<b>b</b></span>`)
	span := body.FirstElementChild()

	shallow := span.CloneNode(false)
	if shallow.AsNode().HasChildNodes() {
		t.Error("Shallow clone should have no children")
	}
	if shallow.GetAttribute("style") != "color: red" {
		t.Errorf("Clone should keep attributes, got %q", shallow.GetAttribute("style"))
	}

	deep := span.CloneNode(true)
	if deep.OuterHTML() != span.OuterHTML() {
		t.Errorf("Deep clone mismatch: %q vs %q", deep.OuterHTML(), span.OuterHTML())
	}
	if deep.AsNode().ParentNode() != nil {
		t.Error("Clone should be detached")
	}
}

func TestNode_Normalize(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.AsNode().AppendChild(doc.CreateTextNode("a"))
	div.AsNode().AppendChild(doc.CreateTextNode(""))
	div.AsNode().AppendChild(doc.CreateTextNode("b"))

	div.AsNode().Normalize()

	if div.AsNode().ChildCount() != 1 {
		t.Fatalf("Expected 1 child after normalize, got %d", div.AsNode().ChildCount())
	}
	if div.TextContent() != "ab" {
		t.Errorf("Expected 'ab', got %q", div.TextContent())
	}
}

func TestNode_ContainsAndConnected(t *testing.T) {
	_, body, _ := ParseFragment("<p><b>x</b></p>")
	b := body.FirstElementChild().FirstElementChild()

	if !body.AsNode().Contains(b.AsNode()) {
		t.Error("body should contain b")
	}
	if !b.AsNode().IsConnected() {
		t.Error("b should be connected")
	}
	b.Remove()
	if b.AsNode().IsConnected() {
		t.Error("removed b should not be connected")
	}
}

func TestText_SplitText(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	text := (*Text)(doc.CreateTextNode("Hello World"))
	div.AsNode().AppendChild(text.AsNode())

	newText, err := text.SplitText(6)
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	if text.Data() != "Hello " {
		t.Errorf("Expected 'Hello ', got '%s'", text.Data())
	}
	if newText.Data() != "World" {
		t.Errorf("Expected 'World', got '%s'", newText.Data())
	}
	if text.AsNode().NextSibling() != newText.AsNode() {
		t.Error("New text node should be next sibling")
	}

	if _, err := text.SplitText(100); err == nil {
		t.Error("Expected IndexSizeError for an out of range offset")
	}

	euro := (*Text)(doc.CreateTextNode("a€b"))
	div.AsNode().AppendChild(euro.AsNode())
	if _, err := euro.SplitText(2); err == nil {
		t.Error("Expected IndexSizeError for an offset inside a character")
	}
	if euro.Data() != "a€b" {
		t.Errorf("Expected 'a€b' to be untouched, got '%s'", euro.Data())
	}
}

func TestText_InsertAndAppendData(t *testing.T) {
	doc := NewDocument()
	text := (*Text)(doc.CreateTextNode("acd"))
	text.InsertData(1, "b")
	text.AppendData("e")
	if text.Data() != "abcde" {
		t.Errorf("Expected 'abcde', got %q", text.Data())
	}
	text.DeleteData(1, 2)
	if text.Data() != "ade" {
		t.Errorf("Expected 'ade', got %q", text.Data())
	}
}

func TestElement_InnerHTML(t *testing.T) {
	_, body, err := ParseFragment(`a&amp;b<br><span title="x&quot;y">c</span><!--note-->`)
	if err != nil {
		t.Fatal(err)
	}
	want := `a&amp;b<br><span title="x&#34;y">c</span><!--note-->`
	if got := body.InnerHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestElement_SetInnerHTML(t *testing.T) {
	_, body, _ := ParseFragment("old")
	if err := body.SetInnerHTML("<i>new</i> text"); err != nil {
		t.Fatal(err)
	}
	if got := body.InnerHTML(); got != "<i>new</i> text" {
		t.Errorf("Expected '<i>new</i> text', got %q", got)
	}
}

func TestElement_ReplaceWithChildren(t *testing.T) {
	_, body, _ := ParseFragment("a<b>b<i>c</i></b>d")
	b := body.AsNode().ChildAt(1).AsElement()
	b.ReplaceWith(b.AsNode().ChildNodes()...)

	if got := body.InnerHTML(); got != "ab<i>c</i>d" {
		t.Errorf("Expected 'ab<i>c</i>d', got %q", got)
	}
}

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML("<html><head><title>t</title></head><body><p>Hello</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	body := doc.Body()
	if body == nil {
		t.Fatal("Body should not be nil")
	}
	if body.InnerHTML() != "<p>Hello</p>" {
		t.Errorf("Expected '<p>Hello</p>', got %q", body.InnerHTML())
	}
}
