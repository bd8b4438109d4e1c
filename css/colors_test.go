package css

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
		ok    bool
	}{
		{"red", Color{255, 0, 0, 255}, true},
		{"  Blue ", Color{0, 0, 255, 255}, true},
		{"transparent", Color{0, 0, 0, 0}, true},
		{"#f00", Color{255, 0, 0, 255}, true},
		{"#F008", Color{255, 0, 0, 136}, true},
		{"#00ff00", Color{0, 255, 0, 255}, true},
		{"#0000ff80", Color{0, 0, 255, 128}, true},
		{"rgb(255, 0, 0)", Color{255, 0, 0, 255}, true},
		{"rgb(100% 0% 0%)", Color{255, 0, 0, 255}, true},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 255, 128}, true},
		{"rgb(0 0 255 / 50%)", Color{0, 0, 255, 128}, true},
		{"hsl(0, 100%, 50%)", Color{255, 0, 0, 255}, true},
		{"hsl(120deg 100% 25%)", Color{0, 128, 0, 255}, true},
		{"#ggg", Color{}, false},
		{"#12345", Color{}, false},
		{"rgb(1, 2)", Color{}, false},
		{"rgb(a, b, c)", Color{}, false},
		{"calc(1px)", Color{}, false},
		{"notacolor", Color{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := (Color{255, 0, 0, 255}).String(); got != "#ff0000" {
		t.Errorf("String() = %q, want #ff0000", got)
	}
	if got := (Color{0, 0, 255, 128}).String(); got != "#0000ff80" {
		t.Errorf("String() = %q, want #0000ff80", got)
	}
}

func TestSameColor(t *testing.T) {
	same := [][2]string{
		{"red", "#ff0000"},
		{"#f00", "rgb(255, 0, 0)"},
		{"Blue", "blue"},
		{"var(--accent)", "VAR(--accent)"},
	}
	for _, pair := range same {
		if !SameColor(pair[0], pair[1]) {
			t.Errorf("SameColor(%q, %q) = false, want true", pair[0], pair[1])
		}
	}

	different := [][2]string{
		{"red", "blue"},
		{"#ff0000", "#ff000080"},
		{"red", "var(--accent)"},
	}
	for _, pair := range different {
		if SameColor(pair[0], pair[1]) {
			t.Errorf("SameColor(%q, %q) = true, want false", pair[0], pair[1])
		}
	}
}
