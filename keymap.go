package quill

import "github.com/hajimehoshi/ebiten/v2"

// keyChar holds the unshifted and shifted characters for a key.
type keyChar struct {
	key     ebiten.Key
	plain   rune
	shifted rune
}

// usLayout maps physical keys to characters on a US keyboard. Order matters
// for RuneToKey: the first key producing a rune wins.
var usLayout = []keyChar{
	{ebiten.KeyA, 'a', 'A'}, {ebiten.KeyB, 'b', 'B'}, {ebiten.KeyC, 'c', 'C'},
	{ebiten.KeyD, 'd', 'D'}, {ebiten.KeyE, 'e', 'E'}, {ebiten.KeyF, 'f', 'F'},
	{ebiten.KeyG, 'g', 'G'}, {ebiten.KeyH, 'h', 'H'}, {ebiten.KeyI, 'i', 'I'},
	{ebiten.KeyJ, 'j', 'J'}, {ebiten.KeyK, 'k', 'K'}, {ebiten.KeyL, 'l', 'L'},
	{ebiten.KeyM, 'm', 'M'}, {ebiten.KeyN, 'n', 'N'}, {ebiten.KeyO, 'o', 'O'},
	{ebiten.KeyP, 'p', 'P'}, {ebiten.KeyQ, 'q', 'Q'}, {ebiten.KeyR, 'r', 'R'},
	{ebiten.KeyS, 's', 'S'}, {ebiten.KeyT, 't', 'T'}, {ebiten.KeyU, 'u', 'U'},
	{ebiten.KeyV, 'v', 'V'}, {ebiten.KeyW, 'w', 'W'}, {ebiten.KeyX, 'x', 'X'},
	{ebiten.KeyY, 'y', 'Y'}, {ebiten.KeyZ, 'z', 'Z'},

	{ebiten.KeyDigit1, '1', '!'}, {ebiten.KeyDigit2, '2', '@'},
	{ebiten.KeyDigit3, '3', '#'}, {ebiten.KeyDigit4, '4', '$'},
	{ebiten.KeyDigit5, '5', '%'}, {ebiten.KeyDigit6, '6', '^'},
	{ebiten.KeyDigit7, '7', '&'}, {ebiten.KeyDigit8, '8', '*'},
	{ebiten.KeyDigit9, '9', '('}, {ebiten.KeyDigit0, '0', ')'},

	{ebiten.KeySpace, ' ', ' '},
	{ebiten.KeyMinus, '-', '_'},
	{ebiten.KeyEqual, '=', '+'},
	{ebiten.KeyBracketLeft, '[', '{'},
	{ebiten.KeyBracketRight, ']', '}'},
	{ebiten.KeyBackslash, '\\', '|'},
	{ebiten.KeySemicolon, ';', ':'},
	{ebiten.KeyQuote, '\'', '"'},
	{ebiten.KeyBackquote, '`', '~'},
	{ebiten.KeyComma, ',', '<'},
	{ebiten.KeyPeriod, '.', '>'},
	{ebiten.KeySlash, '/', '?'},

	{ebiten.KeyNumpad0, '0', '0'}, {ebiten.KeyNumpad1, '1', '1'},
	{ebiten.KeyNumpad2, '2', '2'}, {ebiten.KeyNumpad3, '3', '3'},
	{ebiten.KeyNumpad4, '4', '4'}, {ebiten.KeyNumpad5, '5', '5'},
	{ebiten.KeyNumpad6, '6', '6'}, {ebiten.KeyNumpad7, '7', '7'},
	{ebiten.KeyNumpad8, '8', '8'}, {ebiten.KeyNumpad9, '9', '9'},
	{ebiten.KeyNumpadAdd, '+', '+'},
	{ebiten.KeyNumpadSubtract, '-', '-'},
	{ebiten.KeyNumpadMultiply, '*', '*'},
	{ebiten.KeyNumpadDivide, '/', '/'},
	{ebiten.KeyNumpadDecimal, '.', '.'},
}

var (
	keyToChar = make(map[ebiten.Key]keyChar, len(usLayout))
	charToKey = make(map[rune]keyStroke, 2*len(usLayout))
)

type keyStroke struct {
	key  ebiten.Key
	mods KeyModifiers
}

func init() {
	for _, kc := range usLayout {
		keyToChar[kc.key] = kc
		if _, ok := charToKey[kc.plain]; !ok {
			charToKey[kc.plain] = keyStroke{key: kc.key}
		}
		if _, ok := charToKey[kc.shifted]; !ok {
			charToKey[kc.shifted] = keyStroke{key: kc.key, mods: ModShift}
		}
	}
}

// KeyToRune maps a key and modifier state to the printable character it
// types on a US layout. Chords with Ctrl, Alt or Meta type nothing.
func KeyToRune(key ebiten.Key, mods KeyModifiers) (rune, bool) {
	if mods&(ModCtrl|ModAlt|ModMeta) != 0 {
		return 0, false
	}
	kc, ok := keyToChar[key]
	if !ok {
		return 0, false
	}
	if mods.Has(ModShift) {
		return kc.shifted, true
	}
	return kc.plain, true
}

// RuneToKey returns a key and modifiers that type r on a US layout.
func RuneToKey(r rune) (ebiten.Key, KeyModifiers, bool) {
	ks, ok := charToKey[r]
	return ks.key, ks.mods, ok
}
