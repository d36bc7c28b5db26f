package app

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/config"
)

type fakeClipboard struct{ text string }

func (c fakeClipboard) ReadAll() (string, error) { return c.text, nil }

type failingClipboard struct{}

func (failingClipboard) ReadAll() (string, error) { return "", errors.New("unavailable") }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Font.Path = ""
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts Options) *App {
	t.Helper()
	font, err := LoadFont(cfg.Font)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	a, err := New(cfg, font, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

// center returns the screen position of box i's center.
func center(a *App, i int) (float64, float64) {
	b := a.Boxes[i]
	return b.Box.X + b.Input.Width/2, b.Box.Y + b.Input.Height/2
}

func (a *App) clickBox(t *testing.T, i int) {
	t.Helper()
	x, y := center(a, i)
	a.Scene.InjectClick(x, y)
	for range 2 {
		if err := a.Frame(); err != nil {
			t.Fatal(err)
		}
	}
}

func (a *App) typeText(t *testing.T, s string) {
	t.Helper()
	if err := a.Scene.InjectText(s); err != nil {
		t.Fatal(err)
	}
	if err := a.Frame(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFont(t *testing.T) {
	font, err := LoadFont(config.Font{Size: 40})
	if err != nil {
		t.Fatalf("built-in font: %v", err)
	}
	if font.Size() != 40 {
		t.Errorf("Size = %v, want 40", font.Size())
	}

	dir := t.TempDir()
	if _, err := LoadFont(config.Font{Path: filepath.Join(dir, "missing.ttf"), Size: 40}); err == nil {
		t.Error("missing font should fail")
	}

	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(config.Font{Path: bad, Size: 40}); err == nil {
		t.Error("invalid font data should fail")
	}

	if _, err := LoadFont(config.Font{Size: 0}); err == nil {
		t.Error("zero size should fail")
	}
}

func TestNewInitialState(t *testing.T) {
	a := newTestApp(t, testConfig(), Options{})
	if len(a.Boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(a.Boxes))
	}
	if a.Widgets.Len() != 2 {
		t.Errorf("widgets = %d, want 2", a.Widgets.Len())
	}
	if a.Focused() != nil {
		t.Error("nothing should be focused at startup")
	}
	normal := a.cfg.Palette.Normal.Quill()
	for i, b := range a.Boxes {
		if b.Cursor.Visible {
			t.Errorf("box %d cursor visible at startup", i)
		}
		if b.Background.Color != normal {
			t.Errorf("box %d color = %v, want normal", i, b.Background.Color)
		}
		if a.Text(i) != b.Input.Label {
			t.Errorf("box %d text = %q, want %q", i, a.Text(i), b.Input.Label)
		}
	}
	if len(a.Scene.Cameras()) != 1 {
		t.Errorf("cameras = %d, want 1", len(a.Scene.Cameras()))
	}
}

func TestClickTypeAndSwitch(t *testing.T) {
	a := newTestApp(t, testConfig(), Options{})

	a.clickBox(t, 0)
	if f := a.Focused(); f != a.Boxes[0] {
		t.Fatalf("Focused = %v, want box 0", f)
	}
	if !a.Boxes[0].Cursor.Visible || a.Boxes[1].Cursor.Visible {
		t.Error("only box 0 should show its cursor")
	}

	a.typeText(t, "!")
	if got := a.Text(0); got != "Input 1!" {
		t.Errorf("text = %q, want %q", got, "Input 1!")
	}

	a.clickBox(t, 1)
	if f := a.Focused(); f != a.Boxes[1] {
		t.Fatal("box 1 should be focused")
	}
	if a.Boxes[0].Cursor.Visible {
		t.Error("box 0 cursor should hide")
	}

	a.Scene.InjectKey(ebiten.KeyBackspace, 0)
	a.Scene.InjectKey(ebiten.KeyBackspace, 0)
	a.Scene.InjectKey(ebiten.KeyX, quill.ModShift)
	if err := a.Frame(); err != nil {
		t.Fatal(err)
	}
	if got := a.Text(1); got != "InputX" {
		t.Errorf("text = %q, want %q", got, "InputX")
	}
	if got := a.Text(0); got != "Input 1!" {
		t.Errorf("box 0 text changed to %q", got)
	}
}

func TestKeysWithoutFocusIgnored(t *testing.T) {
	a := newTestApp(t, testConfig(), Options{})
	a.typeText(t, "abc")
	for i := range a.Boxes {
		if a.Text(i) != a.Boxes[i].Input.Label {
			t.Errorf("box %d text = %q", i, a.Text(i))
		}
	}
}

func TestCursorFollowsText(t *testing.T) {
	a := newTestApp(t, testConfig(), Options{})
	b := a.Boxes[0]
	a.clickBox(t, 0)

	before := b.Cursor.X
	a.typeText(t, "www")
	if b.Cursor.X <= before {
		t.Errorf("cursor x = %v, want > %v", b.Cursor.X, before)
	}
	labelW, _ := b.Label.TextBlock.Measure()
	want := b.Label.X + labelW + a.cfg.Cursor.Margin
	if math.Abs(b.Cursor.X-want) > 1e-9 {
		t.Errorf("cursor x = %v, want %v", b.Cursor.X, want)
	}
}

func TestMaxLength(t *testing.T) {
	cfg := testConfig()
	cfg.Editor.MaxLength = 9
	a := newTestApp(t, cfg, Options{})
	a.clickBox(t, 0)
	a.typeText(t, "abcdef")
	if got := a.Text(0); got != "Input 1ab" {
		t.Errorf("text = %q, want %q", got, "Input 1ab")
	}
}

func TestPaste(t *testing.T) {
	cfg := testConfig()
	cfg.Editor.Paste = true
	a := newTestApp(t, cfg, Options{Clipboard: fakeClipboard{text: " pasted\n"}})
	a.clickBox(t, 1)
	a.Scene.InjectKey(ebiten.KeyV, quill.ModCtrl)
	if err := a.Frame(); err != nil {
		t.Fatal(err)
	}
	if got := a.Text(1); got != "Input 2 pasted" {
		t.Errorf("text = %q", got)
	}
}

func TestPasteDisabled(t *testing.T) {
	a := newTestApp(t, testConfig(), Options{Clipboard: failingClipboard{}})
	if a.Systems.Editor.Clipboard != nil {
		t.Error("clipboard should be unset when paste is disabled")
	}
}

func TestBlink(t *testing.T) {
	cfg := testConfig()
	cfg.Cursor.Blink = 0.5
	a := newTestApp(t, cfg, Options{})
	b := a.Boxes[0]
	a.clickBox(t, 0)
	for range 10 {
		if err := a.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if b.Cursor.Alpha >= 1 {
		t.Errorf("cursor alpha = %v, want fading", b.Cursor.Alpha)
	}

	a.typeText(t, "a")
	if b.Cursor.Alpha != 1 {
		t.Errorf("typing should restart the blink, alpha = %v", b.Cursor.Alpha)
	}
}

func TestDebugLog(t *testing.T) {
	var buf bytes.Buffer
	a := newTestApp(t, testConfig(), Options{Debug: true, Log: &buf})
	a.clickBox(t, 0)
	a.typeText(t, "z")
	out := buf.String()
	if !strings.Contains(out, `[textinput] focus "Input 1"`) {
		t.Errorf("missing focus line in %q", out)
	}
	if !strings.Contains(out, `[textinput] text "Input 1" = "Input 1z"`) {
		t.Errorf("missing text line in %q", out)
	}
}

func TestScript(t *testing.T) {
	cfg := testConfig()
	probe := newTestApp(t, cfg, Options{})
	x, y := center(probe, 1)

	script := []byte(`{"steps": [
		{"action": "click", "x": ` + ftoa(x) + `, "y": ` + ftoa(y) + `},
		{"action": "type", "text": "ok"},
		{"action": "key", "key": "backspace"},
		{"action": "wait", "frames": 2}
	]}`)
	a := newTestApp(t, cfg, Options{Script: script})
	for range 12 {
		if err := a.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if got := a.Text(1); got != "Input 2o" {
		t.Errorf("text = %q, want %q", got, "Input 2o")
	}
}

func TestBadScript(t *testing.T) {
	cfg := testConfig()
	font, err := LoadFont(cfg.Font)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, font, Options{Script: []byte(`{"steps": []}`)}); err == nil {
		t.Error("empty script should fail")
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
