package dom

import (
	"testing"
)

func TestRangeFromTextOffsets(t *testing.T) {
	_, body, _ := ParseFragment("ab<b>cd</b>éf")

	tests := []struct {
		name       string
		start, end int
		text       string
		startNode  string
		startOff   int
		endNode    string
		endOff     int
	}{
		{"inside first text", 0, 1, "a", "ab", 0, "ab", 1},
		{"start on seam moves forward", 2, 4, "cd", "cd", 0, "cd", 2},
		{"end on seam stays back", 1, 2, "b", "ab", 1, "ab", 2},
		{"multibyte", 4, 6, "éf", "éf", 0, "éf", 3},
		{"collapsed on seam", 2, 2, "", "ab", 2, "ab", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := RangeFromTextOffsets(body, tt.start, tt.end)
			if err != nil {
				t.Fatal(err)
			}
			if r.ToString() != tt.text {
				t.Errorf("Expected %q, got %q", tt.text, r.ToString())
			}
			if r.StartContainer().NodeValue() != tt.startNode || r.StartOffset() != tt.startOff {
				t.Errorf("Expected start (%q, %d), got (%q, %d)", tt.startNode, tt.startOff,
					r.StartContainer().NodeValue(), r.StartOffset())
			}
			if r.EndContainer().NodeValue() != tt.endNode || r.EndOffset() != tt.endOff {
				t.Errorf("Expected end (%q, %d), got (%q, %d)", tt.endNode, tt.endOff,
					r.EndContainer().NodeValue(), r.EndOffset())
			}
		})
	}

	if _, err := RangeFromTextOffsets(body, 3, 9); err == nil {
		t.Error("Expected error for an end beyond the text")
	}
}

func TestTextOffsetOf(t *testing.T) {
	_, body, _ := ParseFragment("ab<b>cd</b>éf")
	b := body.AsNode().ChildAt(1)

	if got := TextOffsetOf(body, b, 0); got != 2 {
		t.Errorf("Expected 2 before <b>, got %d", got)
	}
	if got := TextOffsetOf(body, body.AsNode(), 2); got != 4 {
		t.Errorf("Expected 4 after <b>, got %d", got)
	}
	if got := TextOffsetOf(body, body.AsNode().LastChild(), 2); got != 5 {
		t.Errorf("Expected 5 inside multibyte text, got %d", got)
	}
}
