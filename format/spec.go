package format

import (
	"fmt"
)

// Spec declares a format without code.
type Spec struct {
	Name    string
	Tag     string
	Aliases []string

	// StyleProperty and StyleValues describe the inline style equivalent of
	// a tag format, or the property set by a style format.
	StyleProperty string
	StyleValues   []string

	// Value is the default value of a style format.
	Value string
}

// FromSpec builds the format a spec describes: a tag format when Tag is
// set, otherwise a style format on StyleProperty.
func FromSpec(spec Spec) (*Format, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSpec)
	}
	switch {
	case spec.Tag != "" && spec.StyleProperty != "":
		return TagWithStyle(spec.Name, spec.Tag, spec.StyleProperty, spec.StyleValues, spec.Aliases...), nil
	case spec.Tag != "":
		return Tag(spec.Name, spec.Tag, spec.Aliases...), nil
	case spec.StyleProperty != "":
		if spec.Value == "" {
			return nil, fmt.Errorf("%w: %s: style format needs a value", ErrInvalidSpec, spec.Name)
		}
		return Style(spec.Name, spec.StyleProperty, spec.Value), nil
	default:
		return nil, fmt.Errorf("%w: %s: needs a tag or a style property", ErrInvalidSpec, spec.Name)
	}
}

// Valued reports whether the spec describes a format that takes a value.
func (s Spec) Valued() bool {
	return s.Tag == "" && s.StyleProperty != ""
}
