//go:build !headless

// video_backend_ebiten.go - Ebiten display sink for the Orion-128 emulation core

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
video_backend_ebiten.go - ebiten display sink

Renders the 384x256 Orion frame buffer through an integer-scaled window
and forwards physical key events as Orion key codes rather than a raw
ASCII stream, since the keyboard adapter's row/col scan protocol needs
the translated code, not a character.
*/

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orionDisplayWidth  = 384
	orionDisplayHeight = 256
)

type EbitenOutput struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	format      PixelFormat
	fullscreen  bool
	scale       int
	windowedW   int
	windowedH   int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	refreshRate int
	vsyncChan   chan struct{}
	keyHandler  func(code byte, down bool)
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		width:       orionDisplayWidth,
		height:      orionDisplayHeight,
		format:      PixelFormatRGBA,
		scale:       2,
		windowedW:   orionDisplayWidth * 2,
		windowedH:   orionDisplayHeight * 2,
		frameBuffer: make([]byte, orionDisplayWidth*orionDisplayHeight*4),
		refreshRate: 50,
		vsyncChan:   make(chan struct{}, 1),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle("Orion-128")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("ebiten error: %v\n", err)
		}
	}()

	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.bufferMutex.Lock()
	copy(eo.frameBuffer, data)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	width := config.Width
	height := config.Height
	if width <= 0 {
		width = orionDisplayWidth
	}
	if height <= 0 {
		height = orionDisplayHeight
	}
	eo.width = width
	eo.height = height
	eo.format = config.PixelFormat
	eo.scale = ClampScale(config.Scale)
	newSize := eo.width * eo.height * 4

	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	eo.fullscreen = config.Fullscreen
	ebiten.SetFullscreen(eo.fullscreen)
	if !eo.fullscreen {
		ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		PixelFormat: eo.format,
		RefreshRate: eo.refreshRate,
		VSync:       true,
		Fullscreen:  eo.fullscreen,
	}
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) SetKeyHandler(fn func(code byte, down bool)) {
	eo.bufferMutex.Lock()
	eo.keyHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emit(code byte, down bool) {
	eo.bufferMutex.RLock()
	handler := eo.keyHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(code, down)
	}
}

// handleKeyboardInput walks every key the Orion translation table knows
// about and forwards press/release transitions as they happen, rather
// than reading a text/rune stream - the keyboard adapter needs key-up
// events to clear its row/col fields, which a rune stream can't express.
func (eo *EbitenOutput) handleKeyboardInput() {
	eo.bufferMutex.RLock()
	hasHandler := eo.keyHandler != nil
	eo.bufferMutex.RUnlock()
	if !hasHandler {
		return
	}

	for key, code := range orionKeyTable {
		if inpututil.IsKeyJustPressed(key) {
			eo.emit(code, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			eo.emit(code, false)
		}
	}

	for key, code := range orionModifierTable {
		if inpututil.IsKeyJustPressed(key) {
			eo.emit(code, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			eo.emit(code, false)
		}
	}
}

// orionKeyTable maps physical keys to the firmware's 7-bit translated
// key codes (keyboard.c's key code table).
var orionKeyTable = map[ebiten.Key]byte{
	ebiten.KeyHome:         0x00,
	ebiten.KeyEscape:       0x02,
	ebiten.KeyF1:           0x03,
	ebiten.KeyF2:           0x04,
	ebiten.KeyF3:           0x05,
	ebiten.KeyF4:           0x06,
	ebiten.KeyF5:           0x07,
	ebiten.KeyTab:          0x08,
	ebiten.KeyEnter:        0x0a,
	ebiten.KeyNumpadEnter:  0x0a,
	ebiten.KeyBackspace:    0x0b,
	ebiten.KeyArrowLeft:    0x0c,
	ebiten.KeyArrowUp:      0x0d,
	ebiten.KeyArrowRight:   0x0e,
	ebiten.KeyArrowDown:    0x0f,
	ebiten.Key0:            0x10,
	ebiten.Key1:            0x11,
	ebiten.Key2:            0x12,
	ebiten.Key3:            0x13,
	ebiten.Key4:            0x14,
	ebiten.Key5:            0x15,
	ebiten.Key6:            0x16,
	ebiten.Key7:            0x17,
	ebiten.Key8:            0x18,
	ebiten.Key9:            0x19,
	ebiten.KeySemicolon:    0x1b,
	ebiten.KeyComma:        0x1c,
	ebiten.KeyMinus:        0x1d,
	ebiten.KeyPeriod:       0x1e,
	ebiten.KeySlash:        0x1f,
	ebiten.KeyA:            0x21,
	ebiten.KeyB:            0x22,
	ebiten.KeyC:            0x23,
	ebiten.KeyD:            0x24,
	ebiten.KeyE:            0x25,
	ebiten.KeyF:            0x26,
	ebiten.KeyG:            0x27,
	ebiten.KeyH:            0x28,
	ebiten.KeyI:            0x29,
	ebiten.KeyJ:            0x2a,
	ebiten.KeyK:            0x2b,
	ebiten.KeyL:            0x2c,
	ebiten.KeyM:            0x2d,
	ebiten.KeyN:            0x2e,
	ebiten.KeyO:            0x2f,
	ebiten.KeyP:            0x30,
	ebiten.KeyQ:            0x31,
	ebiten.KeyR:            0x32,
	ebiten.KeyS:            0x33,
	ebiten.KeyT:            0x34,
	ebiten.KeyU:            0x35,
	ebiten.KeyV:            0x36,
	ebiten.KeyW:            0x37,
	ebiten.KeyX:            0x38,
	ebiten.KeyY:            0x39,
	ebiten.KeyZ:            0x3a,
	ebiten.KeyBracketLeft:  0x3b,
	ebiten.KeyBackslash:    0x3c,
	ebiten.KeyBracketRight: 0x3d,
	ebiten.KeySpace:        0x3f,
}

// orionModifierTable maps physical modifier keys to codes with bit 6 set,
// which keyboard.go's Press recognizes as a modifier report rather than
// a row/col key press.
var orionModifierTable = map[ebiten.Key]byte{
	ebiten.KeyShiftLeft:    0x40 | 0x02,
	ebiten.KeyShiftRight:   0x40 | 0x02,
	ebiten.KeyControlLeft:  0x40 | 0x04,
	ebiten.KeyControlRight: 0x40 | 0x04,
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)

	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}
