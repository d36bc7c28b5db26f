package quill

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextBlock holds text content, formatting, and cached render state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	layoutDirty bool
	measuredW   float64
	measuredH   float64

	image      *ebiten.Image // cached rendered text
	imageDirty bool
}

// SetContent replaces the text and invalidates cached layout when it changed.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.layoutDirty = true
}

// Invalidate forces a re-layout and re-render after fields were set directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Measure returns the laid-out width and height of the content.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes measured dimensions if dirty.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.layoutDirty = false
	tb.imageDirty = true

	if tb.Font == nil || tb.Content == "" {
		tb.measuredW = 0
		tb.measuredH = 0
		return
	}
	tb.measuredW, tb.measuredH = tb.Font.MeasureString(tb.Content)
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	if size <= 0 {
		return nil, fmt.Errorf("quill: invalid font size %v", size)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("quill: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()

	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// textImage returns the cached image for a TTF text block, re-rendering it
// when the content or layout changed. Returns nil for empty text.
func (tb *TextBlock) textImage() *ebiten.Image {
	tb.layout()
	f, ok := tb.Font.(*TTFFont)
	if !ok || tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	w := int(math.Ceil(tb.measuredW)) + 1
	h := int(math.Ceil(tb.measuredH)) + 1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = nil
		} else {
			tb.image.Clear()
		}
	}
	if tb.image == nil {
		tb.image = ebiten.NewImage(w, h)
	}

	op := &text.DrawOptions{}
	switch tb.Align {
	case TextAlignCenter:
		op.GeoM.Translate(tb.measuredW/2, 0)
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.GeoM.Translate(tb.measuredW, 0)
		op.PrimaryAlign = text.AlignEnd
	}
	op.ColorScale.ScaleWithColor(tb.Color.toRGBA())
	op.LineSpacing = tb.lineHeight()
	text.Draw(tb.image, tb.Content, f.face, op)
	return tb.image
}
