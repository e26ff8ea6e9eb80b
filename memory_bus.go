// memory_bus.go - Memory fabric for the Orion-128 emulation core

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
memory_bus.go - Memory fabric for the Orion-128 emulation core

This module implements the Orion-128's memory and port fabric: two banked
RAM pages (0xF400 and 0xF000 bytes), a 2KB boot ROM mapped at 0xF800-0xFFFF,
a ROM-disk window addressed through the F5 port group, and the
scalar F8-FB control ports. It is the sole destination for every CPU memory
access - reads and writes are both routed here, and a handful of writes have
side effects (bank switch, video-buffer select, ROM-disk seek) that other
components must observe once per instruction.

Address map (mirrors the original firmware's memory_get_read/write_mem_ptr):

    0x0000-0xEFFF  banked RAM, selected by the low two bits of port F9
                   (0 -> page0, 1 -> page1, 2/3 -> open bus)
    0xF000-0xF3FF  common RAM, always page0 regardless of the bank select
    0xF400-0xF7FF  port groups F4/F5/F6/F7, 4 bytes each (A/B/C/CTRL)
    0xF800-0xFFFF  boot ROM (one 2KB copy), and - once running - the F8-FB
                   scalar control port writes

Before the first write to port F8, every read (regardless of address)
returns a ROM byte: the CPU fetches its reset vector and everything that
follows from ROM until firmware explicitly switches the map over. This
quirk is what lets the reset vector at 0x0000 sit inside RAM without the
CPU immediately executing whatever garbage happens to be there.
*/

package main

import (
	"fmt"
	"sync"
)

const (
	ramPage0Size = 0xF400
	ramPage1Size = 0xF000
	romSize      = 0x0800
	romDiskSize  = 0x10000

	portF8 = 0xF8
	portF9 = 0xF9
	portFA = 0xFA
	portFB = 0xFB
)

// MemoryError carries context for memory-fabric failures.
type MemoryError struct {
	Operation string
	Details   string
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory %s: %s", e.Operation, e.Details)
}

// portGroup models one of the F4/F5/F6/F7 PPI-style 4-byte windows:
// byte 0 is the A side, byte 1 is B, byte 2 is C, byte 3 is the control byte.
type portGroup struct {
	a, b, c, ctrl uint8
}

func (g *portGroup) read(sub uint8) uint8 {
	switch sub & 0x03 {
	case 0:
		return g.a
	case 1:
		return g.b
	case 2:
		return g.c
	default:
		return g.ctrl
	}
}

func (g *portGroup) write(sub uint8, value uint8) {
	switch sub & 0x03 {
	case 0:
		g.a = value
	case 1:
		g.b = value
	case 2:
		g.c = value
	default:
		g.ctrl = value
	}
}

// MemoryFabric is the Orion-128's unified memory and port bus.
//
// Side-effect flags are set by Write8 and drained by the owning Machine
// once per CPU step, mirroring the original firmware's "set_*" booleans:
// the memory fabric itself never reaches into the keyboard or video
// components, it only records that something interesting happened.
type MemoryFabric struct {
	mu sync.Mutex

	ramPage0 [ramPage0Size]byte
	ramPage1 [ramPage1Size]byte
	rom      [romSize]byte
	romDisk  [romDiskSize]byte

	romInit bool // false until the first write to port F8; gates boot-from-ROM

	f4r, f4w, f5, f6, f7 portGroup
	portF8, portF9, portFA, portFB uint8

	setKeyboard  bool
	setVideoMode bool
	setRAMPage   bool
	setVideoBuf  bool
	setROMDisk   bool
	videoAddr    uint16
}

// NewMemoryFabric returns a fabric ready for ROM loading.
func NewMemoryFabric() *MemoryFabric {
	m := &MemoryFabric{}
	m.Reset()
	return m
}

// Reset restores the fabric to its cold-boot state. RAM and ROM contents
// are left untouched - callers reload ROM/ROM-disk images explicitly.
func (m *MemoryFabric) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.romInit = false
	m.f4r = portGroup{0xff, 0xff, 0xff, 0xff}
	m.f4w = portGroup{0xff, 0xff, 0xff, 0xff}
	m.f5 = portGroup{0xff, 0xff, 0xff, 0xff}
	m.f6 = portGroup{0xff, 0xff, 0xff, 0xff}
	m.f7 = portGroup{0xff, 0xff, 0xff, 0xff}
	m.portF8, m.portF9, m.portFA, m.portFB = 0, 0, 0, 0
	m.setKeyboard = false
	m.setVideoMode = false
	m.setRAMPage = false
	m.setVideoBuf = false
	m.setROMDisk = false
	m.videoAddr = 0
}

// LoadROM installs the 2KB boot ROM image. Shorter images are zero-padded.
func (m *MemoryFabric) LoadROM(data []byte) error {
	if len(data) > romSize {
		return &MemoryError{"load ROM", fmt.Sprintf("image too large: %d > %d bytes", len(data), romSize)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rom {
		m.rom[i] = 0
	}
	copy(m.rom[:], data)
	return nil
}

// LoadROMDisk installs the ROM-disk image addressed via the F5 port group.
func (m *MemoryFabric) LoadROMDisk(data []byte) error {
	if len(data) > romDiskSize {
		return &MemoryError{"load ROM-disk", fmt.Sprintf("image too large: %d > %d bytes", len(data), romDiskSize)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.romDisk {
		m.romDisk[i] = 0
	}
	copy(m.romDisk[:], data)
	return nil
}

// Read8 performs a CPU-visible byte read at the given 16-bit address.
func (m *MemoryFabric) Read8(addr uint16) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.romInit {
		return m.rom[addr&0x7ff]
	}

	switch addr & 0xfc00 {
	case 0xf000:
		return m.ramPage0[addr]
	case 0xf400:
		return m.readPortGroup(addr)
	case 0xf800, 0xfc00:
		return m.rom[addr&0x7ff]
	default:
		switch m.portF9 & 3 {
		case 0:
			return m.ramPage0[addr]
		case 1:
			return m.ramPage1[addr]
		default:
			return 0xff
		}
	}
}

func (m *MemoryFabric) readPortGroup(addr uint16) uint8 {
	sub := uint8(addr & 0x03)
	switch addr & 0x0300 {
	case 0x0000:
		return m.f4r.read(sub)
	case 0x0100:
		return m.f5.read(sub)
	case 0x0200:
		return m.f6.read(sub)
	default:
		return m.f7.read(sub)
	}
}

// Write8 performs a CPU-visible byte write, latching whichever side-effect
// flags the address triggers so DrainEvents can report them afterwards.
func (m *MemoryFabric) Write8(addr uint16, value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch addr & 0xfc00 {
	case 0xf000:
		m.ramPage0[addr] = value
	case 0xf400:
		m.writePortGroup400(addr, value)
	case 0xf800:
		m.writePortGroup800(addr, value)
	case 0xfc00:
		// ROM mirror is read-only; writes here are discarded.
	default:
		if (uint32(addr)&0xc000) == uint32((m.portFA&3)^3)<<14 {
			if addr&0x3000 != 0x3000 {
				m.videoAddr = addr
			}
		}
		switch m.portF9 & 3 {
		case 0:
			m.ramPage0[addr] = value
		case 1:
			m.ramPage1[addr] = value
		}
	}
}

func (m *MemoryFabric) writePortGroup400(addr uint16, value uint8) {
	sub := uint8(addr & 0x03)
	switch addr & 0x0300 {
	case 0x0000:
		m.setKeyboard = true
		m.f4w.write(sub, value)
	case 0x0100:
		m.setROMDisk = true
		m.f5.write(sub, value)
	case 0x0200:
		m.f6.write(sub, value)
	default:
		m.f7.write(sub, value)
	}
}

func (m *MemoryFabric) writePortGroup800(addr uint16, value uint8) {
	switch addr & 0x0300 {
	case 0x0000:
		m.romInit = true
		m.setVideoMode = true
		m.portF8 = value
	case 0x0100:
		m.setRAMPage = true
		m.portF9 = value
	case 0x0200:
		m.setVideoBuf = true
		m.portFA = value
	default:
		m.portFB = value
	}
}

// DrainEvents returns and clears the side-effect flags latched since the
// last call. It is the single point where Machine learns what changed.
type MemoryEvents struct {
	Keyboard     bool
	VideoMode    bool
	RAMPage      bool
	VideoBuf     bool
	ROMDiskSeek  bool
	VideoAddr    uint16
	HasVideoAddr bool
}

func (m *MemoryFabric) DrainEvents() MemoryEvents {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev := MemoryEvents{
		Keyboard:    m.setKeyboard,
		VideoMode:   m.setVideoMode,
		RAMPage:     m.setRAMPage,
		VideoBuf:    m.setVideoBuf,
		ROMDiskSeek: m.setROMDisk,
	}
	if m.videoAddr != 0 {
		ev.VideoAddr = m.videoAddr
		ev.HasVideoAddr = true
		m.videoAddr = 0
	}
	m.setKeyboard = false
	m.setVideoMode = false
	m.setRAMPage = false
	m.setVideoBuf = false
	m.setROMDisk = false

	if ev.ROMDiskSeek {
		// The firmware reinterprets the group's B/C bytes as one little-endian
		// uint16 address (B low, C high) and latches the disk byte into A.
		diskAddr := uint16(m.f5.b) | uint16(m.f5.c)<<8
		m.f5.a = m.romDisk[diskAddr]
	}
	return ev
}

// VideoPlane returns page0 and page1 sliced from the start of the active
// 16KB video quadrant, ((portFA&3)^3)<<14, the same rule the write-side
// video-plane check uses. The slices alias live RAM: the lock is held only
// while they are formed, not while the caller reads them.
func (m *MemoryFabric) VideoPlane() (page0, page1 []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	base := uint32((m.portFA&3)^3) << 14
	return m.ramPage0[base:], m.ramPage1[base:]
}

// PortFA returns the current value of port FA (video mode/buffer select).
func (m *MemoryFabric) PortFA() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.portFA
}

// PortF8 returns the current value of port F8 (video color-mode select).
func (m *MemoryFabric) PortF8() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.portF8
}

// KeyboardView exposes the F4W/F4R port-group bytes the keyboard adapter
// needs without handing out the whole fabric.
func (m *MemoryFabric) KeyboardView() (f4wA, f4wC, f4rB, f4rC uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f4w.a, m.f4w.c, m.f4r.b, m.f4r.c
}

// SetKeyboardReply writes the keyboard adapter's response back into the
// F4R port group (B and C sides are adapter-driven, A/CTRL are not).
func (m *MemoryFabric) SetKeyboardReply(b, c uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.f4r.b = b
	m.f4r.c = c
}
