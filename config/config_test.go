package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/quill"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default is invalid: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Font.Path != DefaultFontPath || cfg.Font.Size != 40 {
		t.Errorf("font = %+v", cfg.Font)
	}
	if cfg.TextColor.Quill() != quill.RGB(0.8, 0.8, 0.8) {
		t.Errorf("text color = %v", cfg.TextColor)
	}
	if cfg.Cursor.Width != 5 || cfg.Cursor.Height != 30 || cfg.Cursor.Margin != 5 {
		t.Errorf("cursor = %+v", cfg.Cursor)
	}
	if cfg.Cursor.Blink != 0 {
		t.Error("cursor should not blink by default")
	}
	if len(cfg.Inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(cfg.Inputs))
	}
	in1, in2 := cfg.Inputs[0], cfg.Inputs[1]
	if in1.Label != "Input 1" || in1.Padding != 10 || in1.Justify != AlignStart || in1.Align != AlignStart {
		t.Errorf("input 1 = %+v", in1)
	}
	if in2.Label != "Input 2" || in2.Padding != 0 || in2.Justify != AlignCenter || in2.Align != AlignCenter {
		t.Errorf("input 2 = %+v", in2)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  title: Demo
font:
  size: 24
palette:
  pressed: "#ff0000"
cursor:
  blink: 1.2
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "Demo" || cfg.Window.Width != 1280 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Font.Size != 24 || cfg.Font.Path != DefaultFontPath {
		t.Errorf("font = %+v", cfg.Font)
	}
	if cfg.Palette.Pressed.Quill() != quill.RGB(1, 0, 0) {
		t.Errorf("pressed = %v", cfg.Palette.Pressed)
	}
	if cfg.Palette.Normal != Default().Palette.Normal {
		t.Error("unset palette entries should keep defaults")
	}
	if cfg.Cursor.Blink != 1.2 || cfg.Cursor.Width != 5 {
		t.Errorf("cursor = %+v", cfg.Cursor)
	}
	if len(cfg.Inputs) != 2 {
		t.Errorf("inputs = %d, want defaults", len(cfg.Inputs))
	}
}

func TestParseInputsReplaced(t *testing.T) {
	cfg, err := Parse([]byte(`
inputs:
  - label: Name
    justify: center
  - label: Email
    width: 400
    padding: 4
    align: end
  - label: Phone
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Inputs) != 3 {
		t.Fatalf("inputs = %d, want 3", len(cfg.Inputs))
	}
	name := cfg.Inputs[0]
	if name.Width != 300 || name.Height != 65 || name.Justify != AlignCenter || name.Align != AlignStart {
		t.Errorf("name = %+v", name)
	}
	email := cfg.Inputs[1]
	if email.Width != 400 || email.Padding != 4 || email.Align != AlignEnd {
		t.Errorf("email = %+v", email)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "window: [", "failed to parse YAML"},
		{"bad color", "text_color: \"#12\"", "invalid hex color"},
		{"color range", "text_color: [0.5, 2, 0]", "out of range"},
		{"color arity", "text_color: [0.5, 0.5]", "3 or 4 components"},
		{"color kind", "text_color: {r: 1}", "hex string or a list"},
		{"window size", "window: {width: 0}", "window size"},
		{"font size", "font: {size: -1}", "font size"},
		{"no inputs", "inputs: []", "no inputs"},
		{"bad justify", "inputs: [{label: a, justify: left}]", "justify"},
		{"bad align", "inputs: [{label: a, align: top}]", "align"},
		{"padding too big", "inputs: [{label: a, padding: 40}]", "padding"},
		{"negative blink", "cursor: {blink: -1}", "blink"},
		{"negative max", "editor: {max_length: -2}", "max_length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textinput.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  max_length: 12\n  paste: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.MaxLength != 12 || !cfg.Editor.Paste {
		t.Errorf("editor = %+v", cfg.Editor)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("missing file error = %v", err)
	}

	toml := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(toml, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(toml); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("unsupported format error = %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	want := Default()
	want.Palette.Pressed = Color(quill.RGB(1, 0, 0))
	if err := Save(want, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Palette.Pressed.Hex() != "#ff0000" {
		t.Errorf("pressed = %s", got.Palette.Pressed.Hex())
	}
	if got.Inputs[1].Justify != AlignCenter {
		t.Errorf("input 2 justify = %q", got.Inputs[1].Justify)
	}
}
