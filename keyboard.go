// keyboard.go - Orion-128 keyboard adapter for the Orion-128 emulation core

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
keyboard.go - Orion-128 keyboard adapter

Models the matrix scan protocol the ROM drives through port group F4:
the firmware writes an inverted row-select mask to F4W.A and reads F4R.B
back as the inverted OR of every field whose row bit is clear. A translated 7-bit key code
(bit 6 set = modifier report, otherwise row/col) drives Fields/Flags;
Step mirrors the original firmware's press-visibility countdown so a key
stays "down" long enough for the ROM's scan loop to observe it even
though Press is only called once per keystroke.
*/

package main

import "sync"

const (
	keyboardFieldsNum   = 8
	keyboardPressFrames = 10000
)

// Orion key codes (keyboard.c's translated code table).
const (
	KeyHome      = 0x00
	KeyClear     = 0x01
	KeyEsc       = 0x02
	KeyF1        = 0x03
	KeyF5        = 0x07
	KeyTab       = 0x08
	KeyLinefeed  = 0x09
	KeyEnter     = 0x0a
	KeyBackspace = 0x0b
	KeyLeft      = 0x0c
	KeyUp        = 0x0d
	KeyRight     = 0x0e
	KeyDown      = 0x0f
	KeyDigit0    = 0x10
	KeyColon     = 0x1a
	KeySemicolon = 0x1b
	KeyComma     = 0x1c
	KeyMinus     = 0x1d
	KeyPoint     = 0x1e
	KeySlash     = 0x1f
	KeyAt        = 0x20
	KeyA         = 0x21
	KeySqLeft    = 0x3b
	KeyBackslash = 0x3c
	KeySqRight   = 0x3d
	KeyAnd       = 0x3e
	KeySpace     = 0x3f
	KeyUS        = 0x42
	KeySS        = 0x44
	KeyRUS       = 0x48

	keyModifierBit = 0x40
)

type keyEvent struct {
	code byte
	down bool
}

// Keyboard is the Orion-128 matrix keyboard adapter sitting behind port
// group F4. It has no direct equivalent in the teacher's chip set - it
// is built fresh from the firmware's keyboard.c, in the same mutex +
// Reset() shape the rest of this tree's chips use.
type Keyboard struct {
	mu sync.Mutex

	fields [keyboardFieldsNum]uint8
	flags  uint8
	count  uint32

	queue []keyEvent
}

func NewKeyboard() *Keyboard {
	k := &Keyboard{}
	k.Reset()
	return k
}

func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.fields = [keyboardFieldsNum]uint8{}
	k.flags = 0
	k.count = 0
	k.queue = k.queue[:0]
}

// Press enqueues a translated key event. A handler forwarding down/up
// edges from a physical keyboard should call Press(code, true) on press
// and Press(code, false) on release; release events clear the matching
// field bit immediately rather than waiting on the countdown.
func (k *Keyboard) Press(code byte, down bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !down {
		k.releaseLocked(code)
		return
	}
	k.queue = append(k.queue, keyEvent{code: code, down: true})
}

func (k *Keyboard) releaseLocked(code byte) {
	if code&keyModifierBit != 0 {
		return
	}
	row := (code >> 3) & 7
	col := code & 7
	k.fields[row] &^= 1 << col
}

// applyLocked mirrors the firmware's keyboard_key_press: bit 6 set means
// a modifier report (flags = ~(code<<4) & 0xf0), otherwise the code's
// row/col bits are decoded into the fields matrix.
func (k *Keyboard) applyLocked(ev keyEvent) {
	if ev.code&keyModifierBit != 0 {
		k.flags = ^(ev.code << 4) & 0xf0
		return
	}
	row := (ev.code >> 3) & 7
	col := ev.code & 7
	k.fields[row] |= 1 << col
	k.count = keyboardPressFrames
}

// Step mirrors keyboard_step: while a key is visible (count > 0) it
// counts down; at the instant it reaches zero the fields matrix is
// cleared, flags are reloaded from the write-side F4W.C register, and
// F4R.B is forced to 0xff (no rows asserted) before the next poll scans
// a fresh keypress out of the queue. On every step, F4R.C reflects the
// low nibble of F4W.C combined with the current modifier flags.
// scanPending is true when Machine observed a write to any byte of the
// F4W port group (F4W.A is the row-select register) since the last step,
// per MemoryEvents.Keyboard.
func (k *Keyboard) Step(mem *MemoryFabric, scanPending bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	f4wA, f4wC, f4rB, _ := mem.KeyboardView()

	if k.count > 0 {
		k.count--
	} else {
		k.flags = f4wC | 0xf0
		k.fields = [keyboardFieldsNum]uint8{}
		f4rB = 0xff

		if len(k.queue) > 0 {
			ev := k.queue[0]
			k.queue = k.queue[1:]
			k.applyLocked(ev)
		}
	}

	f4rC := (f4wC & 0x0f) | k.flags
	mem.SetKeyboardReply(f4rB, f4rC)

	if scanPending {
		k.scanLocked(mem, f4wA)
	}
}

// scanLocked mirrors the row-scan half of set_keyboard: the ROM writes
// the inverted row-select mask to F4W.A, and for every row bit that is
// set the corresponding field is OR-combined into F4R.B (also inverted).
func (k *Keyboard) scanLocked(mem *MemoryFabric, f4wA uint8) {
	pa := ^f4wA
	var pb uint8
	for row := 0; row < keyboardFieldsNum; row++ {
		if pa&(1<<uint(row)) != 0 {
			pb |= k.fields[row]
		}
	}
	_, _, _, f4rC := mem.KeyboardView()
	mem.SetKeyboardReply(^pb, f4rC)
}

// TranslateKey maps a raw ASCII byte (or the first byte of a short ANSI
// escape sequence already split out by the caller) to an Orion key code.
// It covers the printable/control subset a display backend forwards
// directly; escape-sequence arrow/function keys are translated by the
// backend itself (see orionKeyTable) since it already has the physical
// key identity and doesn't need to round-trip through ASCII.
func TranslateKey(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		return KeyA + (b - 'a'), true
	case b >= 'A' && b <= 'Z':
		return KeyA + (b - 'A'), true
	case b >= '0' && b <= '9':
		return KeyDigit0 + (b - '0'), true
	case b == ' ':
		return KeySpace, true
	case b == '\r', b == '\n':
		return KeyEnter, true
	case b == '\t':
		return KeyTab, true
	case b == 0x7f, b == '\b':
		return KeyBackspace, true
	case b == 0x1b:
		return KeyEsc, true
	case b == ',':
		return KeyComma, true
	case b == '.':
		return KeyPoint, true
	case b == '-':
		return KeyMinus, true
	case b == '/':
		return KeySlash, true
	case b == ';':
		return KeySemicolon, true
	case b == ':':
		return KeyColon, true
	case b == '@':
		return KeyAt, true
	default:
		return 0, false
	}
}
