package main

import "testing"

func newTestFabricWithROM(rom []byte) *MemoryFabric {
	m := NewMemoryFabric()
	_ = m.LoadROM(rom)
	return m
}

func bootFabric(m *MemoryFabric) {
	// Any write to port F8 flips romInit and ungates RAM/bank reads.
	m.Write8(0xf800, 0x00)
}

func TestMemoryFabricBootModeForcesROMReads(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0xaa
	rom[0x100] = 0xbb
	m := newTestFabricWithROM(rom)

	// Before the first F8 write, every read returns ROM regardless of
	// address, including addresses that will later resolve to RAM.
	if got := m.Read8(0x0000); got != 0xaa {
		t.Fatalf("boot-mode read at 0x0000 = 0x%02x, want 0xaa", got)
	}
	if got := m.Read8(0x0100); got != 0xbb {
		t.Fatalf("boot-mode read at 0x0100 = 0x%02x, want 0xbb", got)
	}
}

func TestMemoryFabricF8WriteLatchesBootAndVideoMode(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	m.Write8(0xf800, 0x03)

	ev := m.DrainEvents()
	if !ev.VideoMode {
		t.Fatalf("first F8 write should latch VideoMode")
	}
	if m.PortF8() != 0x03 {
		t.Fatalf("PortF8() = 0x%02x, want 0x03", m.PortF8())
	}

	// romInit is now permanently true; RAM becomes visible.
	m.Write8(0x0000, 0x42)
	if got := m.Read8(0x0000); got != 0x42 {
		t.Fatalf("post-boot read at 0x0000 = 0x%02x, want 0x42 (RAM, not ROM)", got)
	}
}

func TestMemoryFabricBankSwitchingViaPortF9(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xf900, 0x00) // select page0
	m.Write8(0x0010, 0x11)

	m.Write8(0xf900, 0x01) // select page1
	m.Write8(0x0010, 0x22)

	m.Write8(0xf900, 0x00)
	if got := m.Read8(0x0010); got != 0x11 {
		t.Fatalf("page0 byte = 0x%02x, want 0x11", got)
	}
	m.Write8(0xf900, 0x01)
	if got := m.Read8(0x0010); got != 0x22 {
		t.Fatalf("page1 byte = 0x%02x, want 0x22", got)
	}
}

func TestMemoryFabricOpenBusWhenBankSelectIs2Or3(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	for _, sel := range []uint8{0x02, 0x03} {
		m.Write8(0xf900, sel)
		if got := m.Read8(0x0010); got != 0xff {
			t.Fatalf("bank select %d: read = 0x%02x, want 0xff open bus", sel, got)
		}
	}
}

func TestMemoryFabricCommonRAMIgnoresBankSelect(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xf900, 0x02) // open-bus select for the banked window
	m.Write8(0xf000, 0x77) // but 0xF000-0xF3FF is always page0
	if got := m.Read8(0xf000); got != 0x77 {
		t.Fatalf("common RAM read = 0x%02x, want 0x77", got)
	}
}

func TestMemoryFabricPortGroupRoundTrip(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xf600, 0x11) // F6.A
	m.Write8(0xf601, 0x22) // F6.B
	m.Write8(0xf602, 0x33) // F6.C
	m.Write8(0xf603, 0x44) // F6.CTRL

	requireU8(t, "F6.A", m.Read8(0xf600), 0x11)
	requireU8(t, "F6.B", m.Read8(0xf601), 0x22)
	requireU8(t, "F6.C", m.Read8(0xf602), 0x33)
	requireU8(t, "F6.CTRL", m.Read8(0xf603), 0x44)
}

func TestMemoryFabricROMDiskSeek(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	disk := make([]byte, romDiskSize)
	disk[0x1234] = 0x99
	if err := m.LoadROMDisk(disk); err != nil {
		t.Fatalf("LoadROMDisk: %v", err)
	}

	m.Write8(0xf501, 0x34) // F5.B = low byte of address
	m.Write8(0xf502, 0x12) // F5.C = high byte of address
	ev := m.DrainEvents()
	if !ev.ROMDiskSeek {
		t.Fatalf("write to F5 should latch ROMDiskSeek")
	}

	requireU8(t, "F5.A after seek", m.Read8(0xf500), 0x99)
}

func TestMemoryFabricVideoPlaneWriteDetection(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xfa00, 0x03) // portFA low bits = 3 -> (3^3)<<14 = 0x0000 window
	m.DrainEvents()

	m.Write8(0x1234, 0x00)
	ev := m.DrainEvents()
	if !ev.HasVideoAddr || ev.VideoAddr != 0x1234 {
		t.Fatalf("expected video address 0x1234 to be reported, got has=%v addr=0x%04x", ev.HasVideoAddr, ev.VideoAddr)
	}
}

func TestMemoryFabricVideoPlaneExcludesTopQuarterOfWindow(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xfa00, 0x03)
	m.DrainEvents()

	// Within the selected 0x0000-0x3fff window but inside the excluded
	// 0x3000-0x3fff sub-range: must not be reported as a video write.
	m.Write8(0x3100, 0x00)
	ev := m.DrainEvents()
	if ev.HasVideoAddr {
		t.Fatalf("0x3100 falls in the excluded 0x3000 sub-window and should not be reported")
	}
}

func TestMemoryFabricVideoAddrZeroSentinelQuirk(t *testing.T) {
	m := newTestFabricWithROM(make([]byte, romSize))
	bootFabric(m)

	m.Write8(0xfa00, 0x03)
	m.DrainEvents()

	// A genuine write to address 0 matches the video-plane window but is
	// indistinguishable from "no pending address" because 0 doubles as
	// the sentinel; DrainEvents intentionally does not report it.
	m.Write8(0x0000, 0x00)
	ev := m.DrainEvents()
	if ev.HasVideoAddr {
		t.Fatalf("address 0 is swallowed by the no-pending-address sentinel, should not be reported")
	}
}

func TestMemoryFabricResetClearsEventsButNotROM(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0x5a
	m := newTestFabricWithROM(rom)
	bootFabric(m)
	m.Write8(0xf500, 0x01)

	m.Reset()

	ev := m.DrainEvents()
	if ev.Keyboard || ev.VideoMode || ev.RAMPage || ev.VideoBuf || ev.ROMDiskSeek || ev.HasVideoAddr {
		t.Fatalf("Reset should clear all pending events")
	}
	// Boot-mode gate is back on after Reset.
	if got := m.Read8(0x0000); got != 0x5a {
		t.Fatalf("ROM contents should survive Reset, read = 0x%02x, want 0x5a", got)
	}
}
