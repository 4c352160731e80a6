package nes

// PPU memory is one flat buffer; the named regions below are views into it,
// so a write through any view is visible through every other one.
// Offset          Size    Description
// ----------------------------------------
// $0000-$0FFF     $1000   Pattern table 0
// $1000-$1FFF     $1000   Pattern table 1
// $2000-$23FF     $0400   Nametable 0
// $2400-$27FF     $0400   Nametable 1
// $2800-$2BFF     $0400   Nametable 2
// $2C00-$2FFF     $0400   Nametable 3
// $3000-$301F     $0020   Palette
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
const (
	patternTableSize    = 0x1000
	nametableSize       = 0x0400
	paletteSize         = 0x20
	patternTablesOffset = 0x0000
	nametablesOffset    = 0x2000
	paletteOffset       = 0x3000

	// cartridgeMappedSize covers the pattern tables and nametables.
	cartridgeMappedSize = 2*patternTableSize + 4*nametableSize
	ppuMemorySize       = cartridgeMappedSize + paletteSize
)

type ppuMemory struct {
	data [ppuMemorySize]byte
}

func (m *ppuMemory) view(offset, size int) []byte {
	return m.data[offset : offset+size : offset+size]
}

// patternTable returns pattern table 0 or 1.
func (m *ppuMemory) patternTable(i int) []byte {
	return m.view(patternTablesOffset+i*patternTableSize, patternTableSize)
}

// nametable returns nametable 0 to 3.
func (m *ppuMemory) nametable(i int) []byte {
	return m.view(nametablesOffset+i*nametableSize, nametableSize)
}

func (m *ppuMemory) palette() []byte {
	return m.view(paletteOffset, paletteSize)
}

// cartridgeMapped is the region CHR data is copied into.
func (m *ppuMemory) cartridgeMapped() []byte {
	return m.view(0, cartridgeMappedSize)
}

// offset translates a PPU bus address.
// $3000-$3EFF mirrors $2000-$2EFF and $3F00-$3FFF repeats the 32 byte palette.
func offset(address uint16) int {
	address &= 0x3FFF
	switch {
	case address < 0x3000:
		return int(address)
	case address < 0x3F00:
		return int(address - 0x1000)
	default:
		return paletteOffset + int(address-0x3F00)%paletteSize
	}
}

func (m *ppuMemory) read(address uint16) byte {
	return m.data[offset(address)]
}

func (m *ppuMemory) write(address uint16, data byte) {
	m.data[offset(address)] = data
}
