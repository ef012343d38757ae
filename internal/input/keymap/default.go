package keymap

import "github.com/dshills/naturekeys/internal/input/key"

// _______ marks a key that falls through to the layer below.
const _______ = key.Transparent

// AltGr letters of the US international layout.
var (
	usADia = key.AltGr(key.KeyQ) // Ä
	usARng = key.AltGr(key.KeyW) // Å
	usODia = key.AltGr(key.KeyP) // Ö
	usEAcu = key.AltGr(key.KeyE) // É
)

// Nature returns the X-Bows Nature layout: the base layer and the FN layer.
//
//	|-----------------------------------------------------------------------------------------------------|
//	| Esc | F1 | F2 | F3 | F4 |  F5 | F6 |  F7 | F8 |   F9 | F10 | F11 | F12 |   Delete   |    Prtsc       |
//	|-----------------------------------------------------------------------------------------------------|
//	|  ~  |  1  |  2  |  3  |  4  |   5   |   6   |  7  |  8  |  9  |  0  |  -  |  =  |  Backspace       |
//	|-----------------------------------------------------------------------------------------------------|
//	| Tab |  Q  |  W  |  E  |  R  |  T  |        |  Y  |  U  |  I  |  O  |  P  |  [  |  ]  |  \  | PgUp |
//	|-----------------------------------------------------------------------------------------------------|
//	| Ctl |  A  |  S  |  D  |  F  |  G  |  Bksp  |  H  |  J  |  K  |  L  |  ;  |  '" |  Enter   | PgDn |
//	|-----------------------------------------------------------------------------------------------------|
//	|Shift|  Z  |  X  |  C  |  V  |  B  |  Enter |  N  |  M  |  ,  |  .  |  /? | Shift|       |  Up  |
//	|-----------------------------------------------------------------------------------------------------|
//	|Ctrl | GUI | Alter | Space | Ctrl | Shift | Space | Alter | FN | Ctrl | Lft | Dn | Rig |
//	|-----------------------------------------------------------------------------------------------------|
func Nature() *Layout {
	return &Layout{
		Name: "xbows/nature",
		Layers: []Layer{
			{
				Name: "VANILLA",
				Rows: [][]key.Keycode{
					{key.KeyEscape, key.KeyF1, key.KeyF2, key.KeyF3, key.KeyF4, key.KeyF5, key.KeyF6, key.KeyF7, key.KeyF8, key.KeyF9, key.KeyF10, key.KeyF11, key.KeyF12, key.KeyDelete, key.KeyPrintScreen},
					{key.ModGrave, key.Key1, key.Key2, key.Key3, key.Key4, key.Key5, key.ModCircumflex, key.Key7, key.Key8, key.Key9, key.Key0, key.KeyMinus, key.KeyEqual, key.KeyBackspace},
					{key.KeyTab, key.KeyQ, key.KeyW, key.KeyE, key.KeyR, key.KeyT, key.KeyY, key.KeyU, key.KeyI, key.KeyO, key.KeyP, key.KeyLeftBracket, key.KeyRightBracket, key.KeyBackslash, key.KeyPageUp},
					{key.KeyCapsLock, key.KeyA, key.KeyS, key.KeyD, key.KeyF, key.KeyG, key.KeyBackspace, key.KeyH, key.KeyJ, key.KeyK, key.KeyL, key.KeySemicolon, key.ModQuote, key.KeyEnter, key.KeyPageDown},
					{key.KeyLeftShift, key.KeyZ, key.KeyX, key.KeyC, key.KeyV, key.KeyB, key.KeyEnter, key.KeyN, key.KeyM, key.KeyComma, key.KeyDot, key.KeySlash, key.KeyRightShift, key.KeyUp},
					{key.KeyLeftCtrl, key.Momentary(1), key.KeyLeftAlt, key.KeySpace, key.ModTap(key.ModLCtrl, key.KeyTab), key.KeyLeftShift, key.KeySpace, key.KeyRightAlt, key.KeyLeftGui, key.KeyRightCtrl, key.KeyLeft, key.KeyDown, key.KeyRight},
				},
			},
			{
				Name: "FN",
				Rows: [][]key.Keycode{
					{key.Reset, _______, _______, _______, _______, _______, _______, _______, _______, key.KeyCalculator, key.KeyMyComputer, key.KeyMediaSelect, key.KeyMail, key.NKROToggle, key.EEPROMReset},
					{_______, _______, _______, _______, _______, _______, _______, key.KeyEscape, _______, _______, _______, _______, _______, key.KeyNumLock},
					{key.RGBToggle, key.RGBModeForward, key.RGBValUp, usEAcu, _______, _______, key.KeyBackslash, key.KeyEqual, key.KeyUp, key.Shifted(key.KeyEqual), key.Shifted(key.KeyBackslash), usARng, _______, _______, key.KeyMediaNext},
					{_______, key.RGBSpeedDown, key.RGBValDown, key.RGBSpeedUp, _______, _______, _______, _______, key.KeyLeft, key.KeyDown, key.KeyRight, usODia, usADia, _______, key.KeyMediaPrev},
					{_______, _______, _______, key.RGBHueUp, _______, _______, _______, key.KeyHome, key.KeyEnd, key.KeyMinus, key.Shifted(key.KeyMinus), key.Arrow, key.KeyMute, key.KeyVolumeUp},
					{_______, _______, _______, _______, _______, _______, _______, _______, _______, key.KeyMediaPlay, key.KeyHome, key.KeyVolumeDown, key.KeyEnd},
				},
			},
		},
	}
}
