package textinput

import "github.com/atotto/clipboard"

// Clipboard is the source of pasted text.
type Clipboard interface {
	ReadAll() (string, error)
}

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard's text content.
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}
