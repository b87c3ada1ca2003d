package keypad

import (
	"strings"
	"unicode/utf8"
)

// KeyKind distinguishes input characters from control keys
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyEvaluate
	KeyBackspace
	KeyClear
)

// String returns the string representation of a KeyKind
func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyEvaluate:
		return "evaluate"
	case KeyBackspace:
		return "backspace"
	case KeyClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Key is a single keypad press. Char is set for KeyChar only.
type Key struct {
	Kind KeyKind
	Char rune
}

// Alphabet lists every character the keypad forwards to the engine
const Alphabet = "0123456789+-*/%^() "

// Char returns a KeyChar key
func Char(r rune) Key {
	return Key{Kind: KeyChar, Char: r}
}

var (
	Evaluate  = Key{Kind: KeyEvaluate}
	Backspace = Key{Kind: KeyBackspace}
	Clear     = Key{Kind: KeyClear}
)

// ParseKey maps a physical key name (as reported by a terminal or browser)
// to a keypad key. Unknown names report false and should be ignored.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "enter", "return", "=":
		return Evaluate, true
	case "backspace", "ctrl+h":
		return Backspace, true
	case "c", "esc", "escape", "delete":
		return Clear, true
	case "space":
		return Char(' '), true
	}

	if utf8.RuneCountInString(name) != 1 {
		return Key{}, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !strings.ContainsRune(Alphabet, r) {
		return Key{}, false
	}
	return Char(r), true
}
