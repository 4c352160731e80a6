package nes

// Register layouts.
// Reference: https://www.nesdev.org/wiki/PPU_registers

// ppuCtrl is PPUCTRL ($2000).
// bit 7 6 5 4 3 2 1 0
//     V P H B S I N N
type ppuCtrl byte

const (
	ctrlNametable       ppuCtrl = 0x03
	ctrlIncrement32     ppuCtrl = 0x04
	ctrlSpriteTable     ppuCtrl = 0x08
	ctrlBackgroundTable ppuCtrl = 0x10
	ctrlTallSprites     ppuCtrl = 0x20
	ctrlMaster          ppuCtrl = 0x40
	ctrlNMI             ppuCtrl = 0x80
)

// nametable is the base nametable index, 0 to 3.
func (c ppuCtrl) nametable() int {
	return int(c & ctrlNametable)
}

// increment is the PPUADDR step after a PPUDATA access.
func (c ppuCtrl) increment() uint16 {
	if c&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

// spriteTable is the pattern table for 8x8 sprites.
func (c ppuCtrl) spriteTable() uint16 {
	if c&ctrlSpriteTable != 0 {
		return 0x1000
	}
	return 0
}

func (c ppuCtrl) backgroundTable() uint16 {
	if c&ctrlBackgroundTable != 0 {
		return 0x1000
	}
	return 0
}

func (c ppuCtrl) tallSprites() bool {
	return c&ctrlTallSprites != 0
}

func (c ppuCtrl) nmiEnabled() bool {
	return c&ctrlNMI != 0
}

// ppuMask is PPUMASK ($2001).
// bit 7 6 5 4 3 2 1 0
//     B G R s b M m G
type ppuMask byte

const (
	maskGrayscale      ppuMask = 0x01
	maskBackgroundLeft ppuMask = 0x02
	maskSpritesLeft    ppuMask = 0x04
	maskBackground     ppuMask = 0x08
	maskSprites        ppuMask = 0x10
	maskEmphasizeRed   ppuMask = 0x20
	maskEmphasizeGreen ppuMask = 0x40
	maskEmphasizeBlue  ppuMask = 0x80
)

func (m ppuMask) grayscale() bool {
	return m&maskGrayscale != 0
}

// showBackground reports whether the background is drawn at column x.
func (m ppuMask) showBackground(x int) bool {
	if m&maskBackground == 0 {
		return false
	}
	return x >= 8 || m&maskBackgroundLeft != 0
}

// ppuStatus is PPUSTATUS ($2002); the low five bits are open bus.
type ppuStatus byte

const (
	statusSpriteOverflow ppuStatus = 0x20
	statusSpriteZeroHit  ppuStatus = 0x40
	statusVBlank         ppuStatus = 0x80
)

func (s ppuStatus) vblank() bool {
	return s&statusVBlank != 0
}

// spriteAttributes is byte 2 of an OAM entry.
// bit 7 6 5 4 3 2 1 0
//     V H P - - - p p
type spriteAttributes byte

func (a spriteAttributes) palette() byte {
	return byte(a & 0x03)
}

func (a spriteAttributes) behindBackground() bool {
	return a&0x20 != 0
}

func (a spriteAttributes) flipHorizontally() bool {
	return a&0x40 != 0
}

func (a spriteAttributes) flipVertically() bool {
	return a&0x80 != 0
}

// sprite is one decoded OAM entry.
type sprite struct {
	index      int
	y          byte
	tile       byte
	attributes spriteAttributes
	x          byte
}

func (p *PPU) sprite(i int) sprite {
	e := p.oam[i*4 : i*4+4]
	return sprite{index: i, y: e[0], tile: e[1], attributes: spriteAttributes(e[2]), x: e[3]}
}
