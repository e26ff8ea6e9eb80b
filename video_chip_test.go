package main

import "testing"

func TestDecode8PixelsMonoGreenMode(t *testing.T) {
	colors := decode8Pixels(0x80, 0x00, 0)
	if colors[0] != colorGreen {
		t.Fatalf("bit set should decode to green in mode 0, got %d", colors[0])
	}
	if colors[1] != colorBlack {
		t.Fatalf("bit clear should decode to black in mode 0, got %d", colors[1])
	}
}

func TestDecode8PixelsMonoCyanMode(t *testing.T) {
	colors := decode8Pixels(0x80, 0x00, 1)
	if colors[0] != colorLCyan {
		t.Fatalf("bit set should decode to light cyan in mode 1, got %d", colors[0])
	}
	if colors[1] != colorLBlue {
		t.Fatalf("bit clear should decode to light blue in mode 1, got %d", colors[1])
	}
}

func TestDecode8PixelsForcedBlackModes(t *testing.T) {
	for _, port := range []uint8{2, 3} {
		colors := decode8Pixels(0xff, 0xff, port)
		for i, c := range colors {
			if c != colorBlack {
				t.Fatalf("port mode %d pixel %d = %d, want forced black", port, i, c)
			}
		}
	}
}

func TestDecode8PixelsFourColorMode(t *testing.T) {
	b0 := byte(0x40) // pixel index 1 set
	b1 := byte(0x80) // pixel index 0 set
	colors := decode8Pixels(b0, b1, 4)
	if colors[0] != colorRed {
		t.Fatalf("p1&&!p0 should decode to red, got %d", colors[0])
	}
	if colors[1] != colorGreen {
		t.Fatalf("!p1&&p0 should decode to green, got %d", colors[1])
	}
	if colors[2] != colorBlack {
		t.Fatalf("!p1&&!p0 should decode to black, got %d", colors[2])
	}
}

func TestDecode8PixelsAttributeMode(t *testing.T) {
	b0 := byte(0x80) // pixel index 0 set
	b1 := byte(0x3c) // setColor = low nibble 0x0c, clearColor = high nibble 0x03
	colors := decode8Pixels(b0, b1, 6)
	if colors[0] != 0x0c {
		t.Fatalf("bit set should use the low-nibble attribute color, got %d", colors[0])
	}
	if colors[1] != 0x03 {
		t.Fatalf("bit clear should use the high-nibble attribute color, got %d", colors[1])
	}
}

func TestBitSetTreatsMSBAsLeftmostPixel(t *testing.T) {
	b := byte(0x80)
	if !bitSet(b, 0) {
		t.Fatalf("bit 0 (MSB) should be set")
	}
	if bitSet(b, 1) {
		t.Fatalf("bit 1 should not be set")
	}
}

func TestVideoChipBoxUnionVsReseedThreshold(t *testing.T) {
	mem := NewMemoryFabric()
	chip := NewVideoChip(NewHeadlessVideoOutput())

	addrFor := func(x, y int) uint16 { return uint16(x)<<8 | uint16(y) }

	chip.onAddress(mem, addrFor(0, 0))
	if chip.boxEmpty {
		t.Fatalf("box should not be empty after the first address")
	}
	if chip.minX != 0 || chip.maxX != 0 {
		t.Fatalf("seed box minX/maxX = %d/%d, want 0/0", chip.minX, chip.maxX)
	}

	chip.onAddress(mem, addrFor(5, 0))
	if chip.maxX != 5 {
		t.Fatalf("union should grow maxX to 5, got %d", chip.maxX)
	}

	// 9-0 = 9 > videoMaxBoxCols-1 (7): forces a flush and reseed.
	chip.onAddress(mem, addrFor(9, 0))
	if chip.minX != 9 || chip.maxX != 9 {
		t.Fatalf("box should reseed to (9,9) past the column threshold, got minX=%d maxX=%d", chip.minX, chip.maxX)
	}
}

func TestVideoChipFullRepaintSentinel(t *testing.T) {
	mem := NewMemoryFabric()
	chip := NewVideoChip(NewHeadlessVideoOutput())
	chip.boxEmpty = false
	chip.minX, chip.maxX = 3, 3
	chip.minY, chip.maxY = 3, 3

	chip.onAddress(mem, videoFullRepaint)

	if !chip.boxEmpty {
		t.Fatalf("full repaint should leave the box empty afterward")
	}
}

func TestVideoChipWordWriteProcessesTwoAddresses(t *testing.T) {
	mem := NewMemoryFabric()
	chip := NewVideoChip(NewHeadlessVideoOutput())

	ev := MemoryEvents{HasVideoAddr: true, VideoAddr: 0x0005}
	chip.Step(mem, ev, true)

	if chip.boxEmpty {
		t.Fatalf("box should not be empty after a word-sized write")
	}
	// addr 0x0005 -> x=0,y=5; addr+1=0x0006 -> x=0,y=6.
	if chip.minY != 5 || chip.maxY != 6 {
		t.Fatalf("word write should touch y=5 and y=6, got minY=%d maxY=%d", chip.minY, chip.maxY)
	}
}

func TestVideoChipModeOrBufferEventTriggersFullRepaint(t *testing.T) {
	mem := NewMemoryFabric()
	chip := NewVideoChip(NewHeadlessVideoOutput())
	chip.boxEmpty = false
	chip.minX, chip.maxX = 2, 2

	chip.Step(mem, MemoryEvents{VideoMode: true}, false)

	if !chip.boxEmpty {
		t.Fatalf("a VideoMode event should trigger a full repaint, leaving the box empty")
	}
}
