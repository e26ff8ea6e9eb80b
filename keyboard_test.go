package main

import "testing"

func TestKeyboardPressIsAppliedOnNextCountdownZero(t *testing.T) {
	mem := NewMemoryFabric()
	kb := NewKeyboard()

	kb.Press(KeyA, true) // row 4, col 1

	kb.Step(mem, false)

	_, _, f4rB, f4rC := mem.KeyboardView()
	if f4rB != 0xff {
		t.Fatalf("f4r.B = 0x%02x, want 0xff (forced on countdown zero, no scan requested)", f4rB)
	}
	_ = f4rC

	if kb.count != keyboardPressFrames {
		t.Fatalf("count = %d, want %d after applying a queued key", kb.count, keyboardPressFrames)
	}
	if kb.fields[4]&(1<<1) == 0 {
		t.Fatalf("field[4] bit 1 should be set after pressing KeyA")
	}
}

func TestKeyboardReleaseClearsFieldImmediately(t *testing.T) {
	mem := NewMemoryFabric()
	kb := NewKeyboard()

	kb.Press(KeyA, true)
	kb.Step(mem, false) // applies the queued press

	kb.Press(KeyA, false) // release, no Step needed

	if kb.fields[4]&(1<<1) != 0 {
		t.Fatalf("field[4] bit 1 should be cleared immediately on release")
	}
}

func TestKeyboardModifierReportSetsFlagsNotFields(t *testing.T) {
	mem := NewMemoryFabric()
	kb := NewKeyboard()

	mod := byte(0x05) | keyModifierBit
	kb.Press(mod, true)
	kb.Step(mem, false)

	want := ^(mod << 4) & 0xf0
	if kb.flags != want {
		t.Fatalf("flags = 0x%02x, want 0x%02x", kb.flags, want)
	}
	for i, f := range kb.fields {
		if f != 0 {
			t.Fatalf("field[%d] = 0x%02x, modifier report should not touch the field matrix", i, f)
		}
	}
}

func TestKeyboardScanProtocolSelectsRowByInvertedMask(t *testing.T) {
	mem := NewMemoryFabric()
	kb := NewKeyboard()

	kb.Press(KeyA, true) // row 4, col 1
	kb.Step(mem, false)  // apply into fields[4]

	// Select row 4 only: inverted mask with bit4 clear -> 0xef.
	mem.Write8(0xf400, 0xef)
	kb.Step(mem, true)

	_, _, rB, _ := mem.KeyboardView()
	want := uint8(^(uint8(1 << 1)))
	if rB != want {
		t.Fatalf("f4r.B = 0x%02x, want 0x%02x (row 4 selected, col 1 asserted)", rB, want)
	}
}

func TestTranslateKeyLettersDigitsAndControls(t *testing.T) {
	if code, ok := TranslateKey('a'); !ok || code != KeyA {
		t.Fatalf("'a' -> %d,%v want %d,true", code, ok, KeyA)
	}
	if code, ok := TranslateKey('Z'); !ok || code != KeyA+('Z'-'A') {
		t.Fatalf("'Z' -> %d,%v want %d,true", code, ok, KeyA+('Z'-'A'))
	}
	if code, ok := TranslateKey('7'); !ok || code != KeyDigit0+7 {
		t.Fatalf("'7' -> %d,%v want %d,true", code, ok, KeyDigit0+7)
	}
	if code, ok := TranslateKey('\r'); !ok || code != KeyEnter {
		t.Fatalf("'\\r' -> %d,%v want %d,true", code, ok, KeyEnter)
	}
	if code, ok := TranslateKey(0x7f); !ok || code != KeyBackspace {
		t.Fatalf("0x7f -> %d,%v want %d,true", code, ok, KeyBackspace)
	}
	if _, ok := TranslateKey('!'); ok {
		t.Fatalf("'!' should not translate to an Orion key code")
	}
}

func TestKeyboardResetClearsState(t *testing.T) {
	mem := NewMemoryFabric()
	kb := NewKeyboard()

	kb.Press(KeyA, true)
	kb.Step(mem, false)

	kb.Reset()

	if kb.count != 0 || kb.flags != 0 || len(kb.queue) != 0 {
		t.Fatalf("Reset should clear count/flags/queue")
	}
	for i, f := range kb.fields {
		if f != 0 {
			t.Fatalf("field[%d] = 0x%02x, want 0 after Reset", i, f)
		}
	}
}
