package css

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Color{255, 0, 0, 255}, true},
		{" Navy ", Color{0, 0, 128, 255}, true},
		{"#ff0000", Color{255, 0, 0, 255}, true},
		{"#1a1a2e", Color{26, 26, 46, 255}, true},
		{"#f00", Color{255, 0, 0, 255}, true},
		{"rgb(10, 20, 30)", Color{10, 20, 30, 255}, true},
		{"rgba(255, 255, 255, 0.3)", Color{255, 255, 255, 77}, true},
		{"rgba(0,0,0,1)", Color{0, 0, 0, 255}, true},
		{"", Color{}, false},
		{"#12345", Color{}, false},
		{"#gggggg", Color{}, false},
		{"rgb(300, 0, 0)", Color{}, false},
		{"rgba(0, 0, 0, 2)", Color{}, false},
		{"hsl(120, 50%, 50%)", Color{}, false},
		{"notacolor", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
