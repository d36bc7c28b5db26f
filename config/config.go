// Package config loads the text-input program's settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/quill"
)

// DefaultFontPath is the font the example program ships with.
const DefaultFontPath = "assets/fonts/FiraSans-Bold.ttf"

// Config is the complete program configuration.
type Config struct {
	Window    Window  `yaml:"window"`
	Font      Font    `yaml:"font"`
	Palette   Palette `yaml:"palette"`
	TextColor Color   `yaml:"text_color"`
	Cursor    Cursor  `yaml:"cursor"`
	Editor    Editor  `yaml:"editor"`
	Inputs    []Input `yaml:"inputs"`
}

// Window configures the game window.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Resizable  bool   `yaml:"resizable"`
	Background Color  `yaml:"background"`
}

// Font selects the label font. An empty Path uses the built-in Go Regular
// face.
type Font struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// Palette holds the widget background colors.
type Palette struct {
	Normal  Color `yaml:"normal"`
	Hovered Color `yaml:"hovered"`
	Pressed Color `yaml:"pressed"`
}

// Cursor configures the caret shown in the focused widget.
type Cursor struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
	Color  Color   `yaml:"color"`
	// Blink is the blink period in seconds. Zero keeps the cursor solid.
	Blink float64 `yaml:"blink"`
}

// Editor configures text editing.
type Editor struct {
	// MaxLength caps the text length in characters. Zero means no limit.
	MaxLength int `yaml:"max_length"`
	// Paste enables pasting from the system clipboard.
	Paste bool `yaml:"paste"`
}

// Input describes one text-input box.
type Input struct {
	Label   string  `yaml:"label"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
	Justify Align   `yaml:"justify"`
	Align   Align   `yaml:"align"`
}

// fillDefaults gives unset sizes and alignments the stock box values.
func (in *Input) fillDefaults() {
	if in.Width == 0 {
		in.Width = 300
	}
	if in.Height == 0 {
		in.Height = 65
	}
	if in.Justify == "" {
		in.Justify = AlignStart
	}
	if in.Align == "" {
		in.Align = AlignStart
	}
}

// Align positions content along one axis of a box.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

func (a Align) valid() bool {
	switch a {
	case AlignStart, AlignCenter, AlignEnd:
		return true
	}
	return false
}

// Default returns the configuration of the stock example: two 300x65 inputs,
// the first padded and top-left aligned, the second centered.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "Text Input",
			Width:  1280,
			Height: 720,
		},
		Font: Font{Path: DefaultFontPath, Size: 40},
		Palette: Palette{
			Normal:  Color(quill.RGB(0.02, 0.02, 0.02)),
			Hovered: Color(quill.RGB(0.05, 0.05, 0.05)),
			Pressed: Color(quill.RGB(0.1, 0.5, 0.1)),
		},
		TextColor: Color(quill.RGB(0.8, 0.8, 0.8)),
		Cursor: Cursor{
			Width:  5,
			Height: 30,
			Margin: 5,
			Color:  Color(quill.ColorWhite),
		},
		Inputs: []Input{
			{Label: "Input 1", Width: 300, Height: 65, Padding: 10, Justify: AlignStart, Align: AlignStart},
			{Label: "Input 2", Width: 300, Height: 65, Padding: 0, Justify: AlignCenter, Align: AlignCenter},
		},
	}
}

// Load reads a YAML config file. Values in the file override Default; an
// inputs list in the file replaces the default inputs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config: unsupported file format: %s (use .yaml or .yml)", ext)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	for i := range cfg.Inputs {
		cfg.Inputs[i].fillDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks sizes and alignment values.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Font.Size)
	}
	if c.Cursor.Width < 0 || c.Cursor.Height < 0 || c.Cursor.Margin < 0 {
		return fmt.Errorf("cursor dimensions must not be negative")
	}
	if c.Cursor.Blink < 0 {
		return fmt.Errorf("cursor blink must not be negative, got %v", c.Cursor.Blink)
	}
	if c.Editor.MaxLength < 0 {
		return fmt.Errorf("editor max_length must not be negative, got %d", c.Editor.MaxLength)
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no inputs defined")
	}
	for i, in := range c.Inputs {
		if in.Width <= 0 || in.Height <= 0 {
			return fmt.Errorf("input %d: size must be positive, got %vx%v", i, in.Width, in.Height)
		}
		if in.Padding < 0 || 2*in.Padding >= in.Width || 2*in.Padding >= in.Height {
			return fmt.Errorf("input %d: padding %v does not fit a %vx%v box", i, in.Padding, in.Width, in.Height)
		}
		if !in.Justify.valid() {
			return fmt.Errorf("input %d: justify must be 'start', 'center', or 'end'", i)
		}
		if !in.Align.valid() {
			return fmt.Errorf("input %d: align must be 'start', 'center', or 'end'", i)
		}
	}
	return nil
}
