package main

import "testing"

func newTestMachine(rom []byte) *Machine {
	output := NewHeadlessVideoOutput()
	m := NewMachine(CPU8080Config{}, output)
	if err := m.Memory.LoadROM(rom); err != nil {
		panic(err)
	}
	return m
}

func TestMachineStepAdvancesCPUAndDrainsMemoryEvents(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0x3e // MVI A, 0x42
	rom[1] = 0x42
	rom[2] = 0xd3 // OUT 0xf8
	rom[3] = 0xf8

	m := newTestMachine(rom)
	m.Step() // MVI A, 0x42
	m.Step() // OUT 0xf8 -> latches port F8 through the memory fabric

	if m.Memory.PortF8() != 0x42 {
		t.Fatalf("PortF8() = 0x%02x, want 0x42 after OUT 0xf8", m.Memory.PortF8())
	}
}

func TestMachinePressKeyIsAppliedOnNextStep(t *testing.T) {
	rom := make([]byte, romSize) // all zero bytes decode as NOP (opcode 0x00)

	m := newTestMachine(rom)
	m.PressKey(KeyA, true) // row 4, col 1

	m.Step() // CPU executes a NOP; Keyboard.Step then applies the queued press

	if m.Keyboard.fields[4]&(1<<1) == 0 {
		t.Fatalf("pressed key should be visible in the keyboard's field matrix after one Step")
	}
}

func TestMachineKeyboardRowScanHappensWithinSameStepAsTheF4WWrite(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0x00 // NOP: Keyboard.Step applies the queued press into fields
	rom[1] = 0x3e // MVI A, 0xef (row-select mask, row 4 only)
	rom[2] = 0xef
	rom[3] = 0x32 // STA 0xf400 (F4W.A, triggers a keyboard row scan)
	rom[4] = 0x00
	rom[5] = 0xf4

	m := newTestMachine(rom)
	m.PressKey(KeyA, true) // row 4, col 1

	m.Step() // NOP, applies the queued press
	m.Step() // MVI A, 0xef
	m.Step() // STA 0xf400

	_, _, f4rB, _ := m.Memory.KeyboardView()
	want := uint8(^(uint8(1 << 1)))
	if f4rB != want {
		t.Fatalf("f4r.B = 0x%02x, want 0x%02x (row 4 should be scanned within the same Step as the F4W.A write)", f4rB, want)
	}
}

func TestMachineResetResetsAllComponents(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0x3e // MVI A, 0x42
	rom[1] = 0x42

	m := newTestMachine(rom)
	m.Step()
	m.PressKey(KeyA, true)
	m.Step()

	m.Reset()

	if m.CPU.CPU().A() != 0 {
		t.Fatalf("A = 0x%02x, want 0 after Reset", m.CPU.CPU().A())
	}
	if m.CPU.CPU().PC() != 0 {
		t.Fatalf("PC = 0x%04x, want 0 after Reset", m.CPU.CPU().PC())
	}
	if len(m.Keyboard.queue) != 0 {
		t.Fatalf("keyboard queue should be empty after Reset")
	}
}
