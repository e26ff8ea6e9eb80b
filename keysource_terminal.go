// keysource_terminal.go - raw-mode stdin key source for headless/SSH sessions

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// keyReleaseDelay is how long a terminal-sourced keypress stays asserted
// before TerminalKeySource synthesizes the release. A real keyboard reports
// key-up; a byte stream from a tty never does, so this is the closest
// approximation available.
const keyReleaseDelay = 30 * time.Millisecond

// TerminalKeySource reads raw stdin and feeds translated bytes into a
// Machine as press/release pairs. Only instantiated from main.go for
// interactive, non-ebiten sessions — never in tests.
type TerminalKeySource struct {
	machine      *Machine
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTerminalKeySource creates a host adapter that reads stdin and drives
// the given machine's keyboard.
func NewTerminalKeySource(machine *Machine) *TerminalKeySource {
	return &TerminalKeySource{
		machine: machine,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading in a
// goroutine. Each byte is translated via TranslateKey and dispatched to
// the machine as a press, followed by a release after keyReleaseDelay.
// Call Stop() to restore stdin.
func (h *TerminalKeySource) Start() {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keysource_terminal: failed to set raw mode: %v\n", err)
		close(h.done)
		return
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "keysource_terminal: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				if code, ok := TranslateKey(buf[0]); ok {
					h.machine.PressKey(code, true)
					go func(code byte) {
						time.Sleep(keyReleaseDelay)
						h.machine.PressKey(code, false)
					}(code)
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// Stop terminates the stdin reading goroutine and restores stdin to
// blocking, cooked mode.
func (h *TerminalKeySource) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
