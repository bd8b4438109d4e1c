package dom

// Attr represents an attribute of an Element.
type Attr struct {
	name  string
	value string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{name: name, value: value}
}

// Name returns the attribute name.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// IsValidAttributeLocalName checks if a string is a valid attribute local name.
// A string is valid if its length is at least 1 and it does not contain
// ASCII whitespace, NULL, '/', '=' or '>'.
func IsValidAttributeLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			return false
		}
		if r == '\x00' || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}
