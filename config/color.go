package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/quill"
)

// Color is a quill.Color that reads from YAML as "#rrggbb", "#rrggbbaa" or a
// list of 3 or 4 floats in [0, 1].
type Color quill.Color

// Quill returns c as a quill.Color.
func (c Color) Quill() quill.Color {
	return quill.Color(c)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseHex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var comps []float64
		if err := value.Decode(&comps); err != nil {
			return fmt.Errorf("line %d: color components: %w", value.Line, err)
		}
		parsed, err := fromComponents(comps)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	}
	return fmt.Errorf("line %d: color must be a hex string or a list of floats", value.Line)
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func (c Color) Hex() string {
	hex := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	a := max(0, min(1, c.A))
	return fmt.Sprintf("%s%02x", hex, uint8(a*255+0.5))
}

// ParseHex parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	rgb, err := colorful.Hex("#" + h[:6])
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	c := Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 1}
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		c.A = float64(a) / 255
	}
	return c, nil
}

func fromComponents(comps []float64) (Color, error) {
	if len(comps) != 3 && len(comps) != 4 {
		return Color{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(comps))
	}
	for _, v := range comps {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("color component %v out of range [0, 1]", v)
		}
	}
	c := Color{R: comps[0], G: comps[1], B: comps[2], A: 1}
	if len(comps) == 4 {
		c.A = comps[3]
	}
	return c, nil
}
