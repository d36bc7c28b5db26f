package app

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/config"
)

// LoadFont reads and parses the configured font. An empty path selects the
// built-in Go Regular face. The returned font is shared by every label.
func LoadFont(cfg config.Font) (*quill.TTFFont, error) {
	data := goregular.TTF
	if cfg.Path != "" {
		var err error
		data, err = os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("app: failed to read font: %w", err)
		}
	}
	font, err := quill.LoadTTFFont(data, cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("app: failed to load font %q: %w", cfg.Path, err)
	}
	return font, nil
}
