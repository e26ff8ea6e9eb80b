// machine.go - Orion-128 machine orchestrator for the Orion-128 emulation core

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
machine.go - Orion-128 machine orchestrator

Ties the CPU, memory fabric, video generator and keyboard adapter
together and drives them in a fixed order once per instruction: CPU,
then the memory fabric's DrainEvents (which also performs the ROM-disk
latch into port group F5), then video, then keyboard. The ROM-disk latch
therefore runs before the video and keyboard steps, not after them;
neither of those steps reads port group F5. Orion-128 has no
generic bus/IO-region map to speak of - every port is a fixed address,
so this orchestrator talks to each component directly rather than
routing through a registerable bus abstraction.

Run splits the work across two goroutines supervised by an errgroup:
the emulation loop driving Step() as fast as the host allows, and a
frame-pace ticker that flushes the video generator's pending dirty box
once per refresh tick (mirroring the original firmware's queue-drain
timeout path, where a box is emitted even without a triggering write).
*/

package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

const machinePerfInterval = time.Second

const machineFrameInterval = 20 * time.Millisecond

// Machine wires one Orion-128 system together.
type Machine struct {
	CPU      *CPU8080Runner
	Memory   *MemoryFabric
	Video    *VideoChip
	Keyboard *Keyboard

	running bool
}

func NewMachine(cfg CPU8080Config, output VideoOutput) *Machine {
	mem := NewMemoryFabric()
	runner := NewCPU8080Runner(mem, cfg)
	return &Machine{
		CPU:      runner,
		Memory:   mem,
		Video:    NewVideoChip(output),
		Keyboard: NewKeyboard(),
	}
}

// Step executes exactly one CPU instruction, drains the memory fabric's
// latched events (DrainEvents also performs the ROM-disk latch), and then
// feeds them to video and keyboard, in that fixed order.
func (m *Machine) Step() {
	m.CPU.Step()

	ev := m.Memory.DrainEvents()
	m.Video.Step(m.Memory, ev, m.CPU.CPU().IsWord())
	m.Keyboard.Step(m.Memory, ev.Keyboard)
}

// PressKey forwards a translated Orion key code to the keyboard adapter.
func (m *Machine) PressKey(code byte, down bool) {
	m.Keyboard.Press(code, down)
}

// Run starts the video sink and drives the emulation loop and the
// frame-pace ticker until ctx is cancelled or either goroutine errors.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.Video.Start(); err != nil {
		return err
	}
	m.running = true

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				m.Step()
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(machineFrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				m.Video.FlushPending(m.Memory)
			}
		}
	})

	if m.CPU.PerfEnabled {
		g.Go(func() error {
			ticker := time.NewTicker(machinePerfInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					log.Printf("cpu: %.2f MHz", m.CPU.MHzSince(machinePerfInterval))
				}
			}
		})
	}

	err := g.Wait()
	m.running = false
	stopErr := m.Video.Stop()
	if err == context.Canceled || err == context.DeadlineExceeded {
		err = nil
	}
	if err == nil {
		err = stopErr
	}
	return err
}

func (m *Machine) Running() bool { return m.running }

func (m *Machine) Reset() {
	m.Memory.Reset()
	m.CPU.Reset()
	m.Keyboard.Reset()
}
