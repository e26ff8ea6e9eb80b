// script_keyfeed.go - scripted keystroke injection for the Orion-128 emulation core

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
script_keyfeed.go - scripted key-feed automation

Drives Machine.PressKey from a small Lua script instead of a human at
the keyboard, for demo playback and scripted regression runs. This is
keystroke automation, not a debugger: the script has no access to CPU
registers, memory, or breakpoints - only two calls, key(code) and
wait(ms), so it can't inspect or alter emulator state beyond what a
person typing at the keyboard could already do.
*/

package main

import (
	"time"

	lua "github.com/yuin/gopher-lua"
)

// KeyFeedScript runs a Lua script that calls key(code) and wait(ms) to
// drive a Machine's keyboard input over time.
type KeyFeedScript struct {
	path    string
	machine *Machine
}

func NewKeyFeedScript(path string, machine *Machine) (*KeyFeedScript, error) {
	return &KeyFeedScript{path: path, machine: machine}, nil
}

// Run executes the script to completion. Each key() call presses and
// releases the code with a short, fixed hold time so the keyboard
// adapter's countdown has time to observe it.
func (s *KeyFeedScript) Run() error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("key", L.NewFunction(func(L *lua.LState) int {
		code := byte(L.CheckInt(1))
		s.machine.PressKey(code, true)
		time.Sleep(30 * time.Millisecond)
		s.machine.PressKey(code, false)
		return 0
	}))

	L.SetGlobal("wait", L.NewFunction(func(L *lua.LState) int {
		ms := L.CheckInt64(1)
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return 0
	}))

	return L.DoFile(s.path)
}
