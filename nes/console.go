package nes

import (
	"fmt"

	"github.com/golang/glog"
)

// CPUCyclesPerFrame is the number of CPU ticks per video frame, each preceded
// by three PPU ticks. 29780 * 3 is about 341 * 262.
const CPUCyclesPerFrame = 29780

// Config is fixed when the console is created.
type Config struct {
	// Policy decides what unmapped CPU bus accesses do. The zero value is the
	// build default.
	Policy AccessPolicy
	// MirrorPRG repeats a 16KB program ROM over the whole 0x8000-0xFFFF window.
	MirrorPRG bool
	// BRKInterrupt executes opcode 0x00 as the BRK interrupt instead of halting.
	BRKInterrupt bool
}

// Console is the whole machine: CPU, PPU and the bus connecting them.
type Console struct {
	CPU        *CPU
	PPU        *PPU
	Bus        *Bus
	Controller *Controller
	Cartridge  *Cartridge

	nmi bool // raised by the PPU, consumed by the next CPU tick
}

// NewConsole parses an iNES image and powers on a console with it.
func NewConsole(buf []byte, config Config) (*Console, error) {
	cartridge, err := NewCartridge(buf)
	if err != nil {
		return nil, err
	}
	return NewConsoleFromCartridge(cartridge, config), nil
}

// NewConsoleFromCartridge powers on a console with a parsed cartridge. The
// character ROM is copied into the pattern tables.
func NewConsoleFromCartridge(cartridge *Cartridge, config Config) *Console {
	ppu := NewPPU()
	copy(ppu.mem.cartridgeMapped(), cartridge.chrROM)
	controller := NewController()
	bus := NewBus(ppu, controller, cartridge, config)
	cpu := NewCPU(bus, config.BRKInterrupt)
	glog.Infof("Console created: %s, policy=%s, entry=0x%04x", cartridge, bus.Policy(), cpu.PC())
	return &Console{
		CPU:        cpu,
		PPU:        ppu,
		Bus:        bus,
		Controller: controller,
		Cartridge:  cartridge,
	}
}

// Reset restarts the CPU at the entry point and the PPU at the top of a frame.
func (c *Console) Reset() {
	c.PPU.Reset()
	c.CPU.Reset()
	c.nmi = false
	glog.Infof("Console reset, entry=0x%04x", c.CPU.PC())
}

// Tick runs three PPU ticks then one CPU tick. An NMI raised by the PPU is
// delivered to the CPU tick of the same call.
func (c *Console) Tick(framebuffer []uint32) (State, error) {
	for i := 0; i < 3; i++ {
		if c.PPU.Step(framebuffer) {
			c.nmi = true
		}
	}
	nmi := c.nmi
	c.nmi = false
	return c.CPU.Step(nmi)
}

// StepFrame runs one video frame. It stops early when the CPU halts or fails.
func (c *Console) StepFrame(framebuffer []uint32) (State, error) {
	for i := 0; i < CPUCyclesPerFrame; i++ {
		state, err := c.Tick(framebuffer)
		if err != nil {
			return state, fmt.Errorf("frame %d: %w", c.PPU.Frame(), err)
		}
		if state == Halted {
			return state, nil
		}
	}
	return c.CPU.State(), nil
}

// SetButtons sets the pressed buttons of the pad.
func (c *Console) SetButtons(buttons Buttons) {
	c.Controller.Set(buttons)
}
