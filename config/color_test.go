package config

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		err  bool
	}{
		{"#ff0000", Color{R: 1, A: 1}, false},
		{"00ff00", Color{G: 1, A: 1}, false},
		{"#0000ff80", Color{B: 1, A: 128.0 / 255}, false},
		{"  #ffffff ", Color{R: 1, G: 1, B: 1, A: 1}, false},
		{"#fff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.err {
				t.Fatalf("err = %v, want error %v", err, tt.err)
			}
			if !tt.err && !colorNear(got, tt.want) {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{R: 1, G: 0.5, B: 0, A: 1}, "#ff8000"},
		{Color{R: 0.02, G: 0.02, B: 0.02, A: 1}, "#050505"},
		{Color{A: 0.5}, "#00000080"},
		{Color{R: 2, G: -1, A: 1}, "#ff0000"},
		{Color{R: 1, G: 1, B: 1, A: 2}, "#ffffff"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestFromComponents(t *testing.T) {
	c, err := fromComponents([]float64{0.1, 0.5, 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if c.A != 1 || c.G != 0.5 {
		t.Errorf("c = %+v", c)
	}
	c, err = fromComponents([]float64{0, 0, 0, 0.25})
	if err != nil || c.A != 0.25 {
		t.Errorf("c = %+v, err = %v", c, err)
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
