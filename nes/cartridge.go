package nes

import (
	"bytes"
	"fmt"

	"github.com/golang/glog"
)

const (
	chrROMSizeUnit      int = 0x2000 // 8KB
	prgROMSizeUnit      int = 0x4000 // 16KB
	inesHeaderSizeBytes int = 16     // The valid INES header has 16 bytes
)

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Flags 6 bits.
// https://www.nesdev.org/wiki/INES#Flags_6
const (
	flags6VerticalMirroring byte = 0x01
	flags6Battery           byte = 0x02
	flags6Trainer           byte = 0x04
	flags6FourScreen        byte = 0x08
)

type tableMirrorMode int

const (
	horizontal tableMirrorMode = iota
	vertical
)

func (m tableMirrorMode) String() string {
	if m == vertical {
		return "vertical"
	}
	return "horizontal"
}

// Cartridge is a parsed iNES image. Only NROM (mapper 0) boards are supported.
// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM  []byte
	chrROM  []byte
	trainer []byte // 512 bytes mapped at 0x7000, nil when absent
	mapper  byte
	flags6  byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7  byte // https://www.nesdev.org/wiki/INES#Flags_7
}

// NewCartridge parses an iNES image. Bad magic or a file shorter than its
// header claims is ErrInvalidROM; anything but NROM is ErrUnsupportedMapper.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < inesHeaderSizeBytes || !bytes.Equal(data[:4], inesMagic) {
		return nil, fmt.Errorf("%w: missing NES header", ErrInvalidROM)
	}
	c := &Cartridge{
		flags6: data[6],
		flags7: data[7],
	}
	c.mapper = c.flags7&0xF0 | c.flags6>>4
	// Old dumping tools wrote their names into the padding, which also
	// corrupts the high mapper nibble. NES 2.0 headers use those bytes.
	if c.flags7&0x0C != 0x08 && !isZero(data[11:inesHeaderSizeBytes]) {
		glog.Warningf("iNES header padding is not zero (%q), ignoring flags 7", data[7:inesHeaderSizeBytes])
		c.flags7 = 0
		c.mapper = c.flags6 >> 4
	}
	prgSize := int(data[4]) * prgROMSizeUnit
	chrSize := int(data[5]) * chrROMSizeUnit
	trainerLen := 0
	if c.flags6&flags6Trainer != 0 {
		trainerLen = trainerSize
	}
	if want := inesHeaderSizeBytes + trainerLen + prgSize + chrSize; len(data) < want {
		return nil, fmt.Errorf("%w: image is %d bytes, header requires %d", ErrInvalidROM, len(data), want)
	}
	if c.mapper != 0 {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, c.mapper)
	}
	if chrSize > patternTableSize*2 {
		return nil, fmt.Errorf("%w: %d bytes of CHR-ROM without bank switching", ErrUnsupportedMapper, chrSize)
	}
	cursor := inesHeaderSizeBytes
	if trainerLen > 0 {
		c.trainer = data[cursor : cursor+trainerLen]
		cursor += trainerLen
	}
	c.prgROM = data[cursor : cursor+prgSize]
	cursor += prgSize
	c.chrROM = data[cursor : cursor+chrSize]
	return c, nil
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// Mapper returns the iNES mapper number.
func (c *Cartridge) Mapper() byte { return c.mapper }

// PRGSize returns the size of the program ROM in bytes.
func (c *Cartridge) PRGSize() int { return len(c.prgROM) }

// CHRSize returns the size of the character ROM in bytes.
func (c *Cartridge) CHRSize() int { return len(c.chrROM) }

// HasTrainer reports whether the image carries a 512 byte trainer.
func (c *Cartridge) HasTrainer() bool { return c.trainer != nil }

func (c *Cartridge) getTableMirrorMode() tableMirrorMode {
	if c.flags6&flags6VerticalMirroring != 0 {
		return vertical
	}
	return horizontal
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("mapper=%d, PRG=%dKB, CHR=%dKB, trainer=%t, mirroring=%s, battery=%t, four-screen=%t",
		c.mapper, len(c.prgROM)/1024, len(c.chrROM)/1024, c.HasTrainer(), c.getTableMirrorMode(),
		c.flags6&flags6Battery != 0, c.flags6&flags6FourScreen != 0)
}
