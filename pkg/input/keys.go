// Package input defines backend independent key codes and the converters
// that translate them to and from the codes of a windowing system.
package input

import "fmt"

// Key is an engine key code. Values are stable and independent of the
// windowing system that produced them.
type Key int

// Key codes
const (
	KeyUnknown Key = iota

	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEqual
	KeyLeftBracket
	KeyBackslash
	KeyRightBracket
	KeyGraveAccent

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper

	// KeyLast is the highest valid key code.
	KeyLast = KeyRightSuper
)

var keyNames = map[Key]string{
	KeySpace:        "Space",
	KeyApostrophe:   "'",
	KeyComma:        ",",
	KeyMinus:        "-",
	KeyPeriod:       ".",
	KeySlash:        "/",
	KeySemicolon:    ";",
	KeyEqual:        "=",
	KeyLeftBracket:  "[",
	KeyBackslash:    "\\",
	KeyRightBracket: "]",
	KeyGraveAccent:  "`",
	KeyEscape:       "Escape",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyRight:        "Right",
	KeyLeft:         "Left",
	KeyDown:         "Down",
	KeyUp:           "Up",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyLeftShift:    "LeftShift",
	KeyLeftControl:  "LeftControl",
	KeyLeftAlt:      "LeftAlt",
	KeyLeftSuper:    "LeftSuper",
	KeyRightShift:   "RightShift",
	KeyRightControl: "RightControl",
	KeyRightAlt:     "RightAlt",
	KeyRightSuper:   "RightSuper",
}

func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Action is what happened to a key
type Action int

// Key actions
const (
	Release Action = iota
	Press
	Repeat
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return "release"
	}
}
