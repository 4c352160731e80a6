package nes

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	wramSize         = 0x0800
	trainerSize      = 0x0200
	trainerBase      = 0x7000
	oamDMAAddress    = 0x4014
	controllerPort   = 0x4016
	resetVector      = 0xFFFC
	nmiVector        = 0xFFFA
	irqVector        = 0xFFFE
	ppuRegisterBase  = 0x2000
	ppuRegisterLimit = 0x4000
)

// Bus is the CPU address space. It owns the work RAM, the trainer and the
// program ROM, and redirects the register window to the PPU.
type Bus struct {
	wram       *RAM
	trainer    *RAM // nil when the cartridge has none
	prg        *prgROM
	ppu        *PPU
	controller *Controller
	policy     AccessPolicy
}

// NewBus creates a new Bus for CPU.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4014         	OAM DMA
// 0x4016         	Controller
// 0x7000 - 0x71FF	Trainer
// 0x8000 - 0xFFFF	ProgramROM
// Anything else is handled by the access policy.
func NewBus(ppu *PPU, controller *Controller, cartridge *Cartridge, config Config) *Bus {
	b := &Bus{
		wram:       NewRAM(wramSize),
		prg:        newPRGROM(nil, config.MirrorPRG),
		ppu:        ppu,
		controller: controller,
		policy:     config.Policy.resolve(),
	}
	if cartridge != nil {
		b.prg = newPRGROM(cartridge.prgROM, config.MirrorPRG)
		if len(cartridge.trainer) > 0 {
			b.trainer = NewRAM(trainerSize)
			copy(b.trainer.data, cartridge.trainer)
		}
	}
	return b
}

// Policy returns the out of bounds policy fixed at construction.
func (b *Bus) Policy() AccessPolicy {
	return b.policy
}

func (b *Bus) outOfBounds(op string, address uint16) error {
	if b.policy == Strict {
		return fmt.Errorf("%w: %s 0x%04x", ErrOutOfBounds, op, address)
	}
	if glog.V(2) {
		glog.Infof("Unmapped CPU bus %s: address=0x%04x", op, address)
	}
	return nil
}

func (b *Bus) inTrainer(address uint16) bool {
	return b.trainer != nil && trainerBase <= address && address < trainerBase+trainerSize
}

func (b *Bus) readPPURegister(address uint16) byte {
	switch address {
	case 0x2002:
		return b.ppu.readPPUSTATUS()
	case 0x2004:
		return b.ppu.readOAMDATA()
	case 0x2007:
		return b.ppu.readPPUDATA()
	}
	// write-only registers
	return 0
}

// Read reads a byte.
func (b *Bus) Read(address uint16) (byte, error) {
	switch {
	case address < ppuRegisterBase:
		return b.wram.read(address % wramSize), nil
	case address < ppuRegisterLimit:
		return b.readPPURegister(ppuRegisterBase + address%8), nil
	case address == controllerPort && b.controller != nil:
		return b.controller.read(), nil
	case b.inTrainer(address):
		return b.trainer.read(address - trainerBase), nil
	}
	if data, ok := b.prg.read(address); ok {
		return data, nil
	}
	return 0, b.outOfBounds("read", address)
}

// Read16 reads 2 bytes, little endian.
func (b *Bus) Read16(address uint16) (uint16, error) {
	l, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// read16Wrap reads 2 bytes without carrying into the high byte of the
// pointer, reproducing the JMP ($xxFF) bug.
func (b *Bus) read16Wrap(address uint16) (uint16, error) {
	l, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.Read(address&0xFF00 | uint16(byte(address)+1))
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// writeToPPURegisters writes data to PPU registers.
func (b *Bus) writeToPPURegisters(address uint16, data byte) {
	switch address {
	case 0x2000:
		b.ppu.writePPUCTRL(data)
	case 0x2001:
		b.ppu.writePPUMASK(data)
	case 0x2003:
		b.ppu.writeOAMADDR(data)
	case 0x2004:
		b.ppu.writeOAMDATA(data)
	case 0x2005:
		b.ppu.writePPUSCROLL(data)
	case 0x2006:
		b.ppu.writePPUADDR(data)
	case 0x2007:
		b.ppu.writePPUDATA(data)
	}
	// PPUSTATUS is read-only.
}

// writeOAMDMA copies the page data<<8 into OAM through OAMDATA, so the OAM
// address auto-increments exactly as with 256 CPU writes.
func (b *Bus) writeOAMDMA(data byte) error {
	page := uint16(data) << 8
	for i := uint16(0); i < 256; i++ {
		d, err := b.Read(page | i)
		if err != nil {
			return fmt.Errorf("OAM DMA from page 0x%02x: %w", data, err)
		}
		b.ppu.writeOAMDATA(d)
	}
	return nil
}

// Write writes a byte.
func (b *Bus) Write(address uint16, data byte) error {
	switch {
	case address < ppuRegisterBase:
		b.wram.write(address%wramSize, data)
		return nil
	case address < ppuRegisterLimit:
		b.writeToPPURegisters(ppuRegisterBase+address%8, data)
		return nil
	case address == oamDMAAddress:
		return b.writeOAMDMA(data)
	case address == controllerPort && b.controller != nil:
		b.controller.write(data)
		return nil
	case b.inTrainer(address):
		b.trainer.write(address-trainerBase, data)
		return nil
	case b.prg.contains(address):
		// ROM, writes are ignored.
		return nil
	}
	return b.outOfBounds("write", address)
}

// entryPoint is where execution starts after power on: the reset vector when
// the ROM covers it, otherwise the start of the ROM window.
func (b *Bus) entryPoint() uint16 {
	if b.prg.contains(resetVector) && b.prg.contains(resetVector+1) {
		l, _ := b.prg.read(resetVector)
		h, _ := b.prg.read(resetVector + 1)
		return uint16(h)<<8 | uint16(l)
	}
	return prgBase
}
