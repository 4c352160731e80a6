package nes

// prgBase is where the program ROM window starts on the CPU bus.
const prgBase uint16 = 0x8000

// prgROM is the single fixed program ROM window. There is no bank switching:
// the image is mapped from $8000 upwards and, when mirror is set, a 16 KB
// image repeats at $C000 the way NROM-128 boards are wired.
// Reference: https://www.nesdev.org/wiki/NROM
type prgROM struct {
	data   []byte
	mirror bool
}

func newPRGROM(data []byte, mirror bool) *prgROM {
	return &prgROM{data: data, mirror: mirror}
}

// offset translates a CPU address into an index of data.
func (p *prgROM) offset(address uint16) (int, bool) {
	if address < prgBase || len(p.data) == 0 {
		return 0, false
	}
	i := int(address - prgBase)
	if p.mirror {
		return i % len(p.data), true
	}
	if i >= len(p.data) {
		return 0, false
	}
	return i, true
}

// contains reports whether address is backed by the ROM.
func (p *prgROM) contains(address uint16) bool {
	_, ok := p.offset(address)
	return ok
}

func (p *prgROM) read(address uint16) (byte, bool) {
	i, ok := p.offset(address)
	if !ok {
		return 0, false
	}
	return p.data[i], true
}
