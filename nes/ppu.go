package nes

import (
	"image/color"

	"github.com/golang/glog"
)

// NES PPU generates 256x240 pixels.
const (
	ScreenWidth  = 256
	ScreenHeight = 240

	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	vblankScanline    = 241
	preRenderScanline = 261

	oamSize = 256
)

// Palatte colors borrowed from "RGB".
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var colors = [64]color.RGBA{
	{0x6D, 0x6D, 0x6D, 255}, {0x00, 0x24, 0x92, 255}, {0x00, 0x00, 0xDB, 255}, {0x6D, 0x49, 0xDB, 255},
	{0x92, 0x00, 0x6D, 255}, {0xB6, 0x00, 0x6D, 255}, {0xB6, 0x24, 0x00, 255}, {0x92, 0x49, 0x00, 255},
	{0x6D, 0x49, 0x00, 255}, {0x24, 0x49, 0x00, 255}, {0x00, 0x6D, 0x24, 255}, {0x00, 0x92, 0x00, 255},
	{0x00, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xB6, 0xB6, 0xB6, 255}, {0x00, 0x6D, 0xDB, 255}, {0x00, 0x49, 0xFF, 255}, {0x92, 0x00, 0xFF, 255},
	{0xB6, 0x00, 0xFF, 255}, {0xFF, 0x00, 0x92, 255}, {0xFF, 0x00, 0x00, 255}, {0xDB, 0x6D, 0x00, 255},
	{0x92, 0x6D, 0x00, 255}, {0x24, 0x92, 0x00, 255}, {0x00, 0x92, 0x00, 255}, {0x00, 0xB6, 0x6D, 255},
	{0x00, 0x92, 0x92, 255}, {0x24, 0x24, 0x24, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x6D, 0xB6, 0xFF, 255}, {0x92, 0x92, 0xFF, 255}, {0xDB, 0x6D, 0xFF, 255},
	{0xFF, 0x00, 0xFF, 255}, {0xFF, 0x6D, 0xFF, 255}, {0xFF, 0x92, 0x00, 255}, {0xFF, 0xB6, 0x00, 255},
	{0xDB, 0xDB, 0x00, 255}, {0x6D, 0xDB, 0x00, 255}, {0x00, 0xFF, 0x00, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x00, 0xFF, 0xFF, 255}, {0x49, 0x49, 0x49, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xB6, 0xDB, 0xFF, 255}, {0xDB, 0xB6, 0xFF, 255}, {0xFF, 0xB6, 0xFF, 255},
	{0xFF, 0x92, 0xFF, 255}, {0xFF, 0xB6, 0xB6, 255}, {0xFF, 0xDB, 0x92, 255}, {0xFF, 0xFF, 0x49, 255},
	{0xFF, 0xFF, 0x6D, 255}, {0xB6, 0xFF, 0x49, 255}, {0x92, 0xFF, 0x6D, 255}, {0x49, 0xFF, 0xDB, 255},
	{0x92, 0xDB, 0xFF, 255}, {0x92, 0x92, 0x92, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
}

// ARGB packs a color as 0xAARRGGBB, the framebuffer layout. On little endian
// hosts the bytes of a framebuffer are B, G, R, A.
func ARGB(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// PPU stands for Picture Processing Unit, renders 256px x 240px image for a screen.
// PPU is 3x faster than CPU and rendering 1 frame requires 341x262=89342 cycles (Each cycles writes a dot).
//
// This PPU implementation includes PPU regsters as well.
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://pgate1.at-ninja.jp/NES_on_FPGA/nes_ppu.htm (In Japanese)
type PPU struct {
	mem ppuMemory
	oam [oamSize]byte

	// Registers for PPU.
	// Reference:
	//   https://www.nesdev.org/wiki/PPU_registers
	//   https://www.nesdev.org/wiki/PPU_scrolling
	ctrl   ppuCtrl
	mask   ppuMask
	status ppuStatus
	// OAMADDR $2003, wraps at 256.
	oamAddress byte
	// Current VRAM address, for PPUADDR $2006
	v uint16
	// w indicates whether the next PPUSCROLL/PPUADDR write is the second of the pair.
	w bool
	// PPUSCROLL $2005
	scrollX byte
	scrollY byte
	// buffer for PPUDATA $2007
	buffer byte

	// dot, scanline indicates which pixel is processing.
	dot      int
	scanline int
	frame    uint64
}

// NewPPU creates a PPU.
func NewPPU() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset clears the registers and restarts the frame; memory and OAM survive.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddress = 0
	p.v = 0
	p.w = false
	p.scrollX = 0
	p.scrollY = 0
	p.buffer = 0
	p.dot = 0
	p.scanline = 0
}

// Dot returns the current dot of the scanline, 0 to 340.
func (p *PPU) Dot() int { return p.dot }

// Scanline returns the current scanline, 0 to 261.
func (p *PPU) Scanline() int { return p.scanline }

// Frame returns the number of completed frames.
func (p *PPU) Frame() uint64 { return p.frame }

// readPPUSTATUS reads PPUSTATUS ($2002), clearing vblank and the write latch.
func (p *PPU) readPPUSTATUS() byte {
	data := byte(p.status)
	p.status &^= statusVBlank
	p.w = false
	return data
}

// readOAMDATA reads OAMDATA ($2004), the address does not move.
func (p *PPU) readOAMDATA() byte {
	return p.oam[p.oamAddress]
}

// readPPUDATA reads PPUDATA ($2007). Every read returns the buffered value of
// the previous one.
func (p *PPU) readPPUDATA() byte {
	data := p.buffer
	p.buffer = p.mem.read(p.v)
	p.v += p.ctrl.increment()
	return data
}

// writePPUCTRL writes PPUCTRL ($2000).
func (p *PPU) writePPUCTRL(data byte) {
	p.ctrl = ppuCtrl(data)
}

// writePPUMASK writes PPUMASK ($2001).
func (p *PPU) writePPUMASK(data byte) {
	p.mask = ppuMask(data)
}

// writeOAMADDR writes OAMADDR ($2003).
func (p *PPU) writeOAMADDR(data byte) {
	p.oamAddress = data
}

// writeOAMDATA writes OAMDATA ($2004).
func (p *PPU) writeOAMDATA(data byte) {
	p.oam[p.oamAddress] = data
	p.oamAddress++
}

// writePPUSCROLL writes PPUSCROLL ($2005), X first then Y.
func (p *PPU) writePPUSCROLL(data byte) {
	if p.w {
		p.scrollY = data
	} else {
		p.scrollX = data
	}
	p.w = !p.w
}

// writePPUADDR writes PPUADDR ($2006), high first then low.
func (p *PPU) writePPUADDR(data byte) {
	if p.w { // low
		p.v = p.v&0xFF00 | uint16(data)
	} else { // high
		p.v = uint16(data)<<8 | p.v&0x00FF
	}
	p.w = !p.w
}

// writePPUDATA writes PPUDATA ($2007).
func (p *PPU) writePPUDATA(data byte) {
	p.mem.write(p.v, data)
	p.v += p.ctrl.increment()
}

// Step emulates a cycle of PPU and each cycles renders a pixel for NTSC,
// so PPU renders a pixel (left to right, top to bottom) respectively.
// PPU renders 256x240 pixels but it actually processes 341x262 area.
// The pixel at the new position is written to framebuffer, which must hold
// ScreenWidth*ScreenHeight pixels or be nil. Step returns true when the
// vblank NMI should be delivered to the CPU.
// Reference:
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://www.nesdev.org/wiki/File:Ntsc_timing.png
func (p *PPU) Step(framebuffer []uint32) bool {
	// tick
	p.dot++
	if p.dot == dotsPerScanline { // rendered a line
		p.dot = 0
		p.scanline++
		if p.scanline == scanlinesPerFrame { // rendered a frame
			p.scanline = 0
			p.frame++
			if glog.V(1) {
				glog.Infof("PPU frame %d done", p.frame)
			}
		}
	}

	nmi := false
	if p.dot == 1 {
		switch p.scanline {
		case vblankScanline:
			p.status |= statusVBlank
			nmi = p.ctrl.nmiEnabled()
		case preRenderScanline:
			p.status &^= statusVBlank | statusSpriteZeroHit | statusSpriteOverflow
		}
	}

	if p.dot < ScreenWidth && p.scanline < ScreenHeight {
		c := p.pixel(p.dot, p.scanline)
		if framebuffer != nil {
			framebuffer[p.scanline*ScreenWidth+p.dot] = c
		}
	}
	return nmi
}

// color resolves a palette RAM entry to a framebuffer color.
func (p *PPU) color(paletteIndex int) uint32 {
	c := p.mem.palette()[paletteIndex%paletteSize] & 0x3F
	if p.mask.grayscale() {
		c &= 0x30
	}
	return ARGB(colors[c])
}

// pixel computes the color at (x, y) on the visible raster.
func (p *PPU) pixel(x, y int) uint32 {
	bgValue, bgPalette := byte(0), 0
	if p.mask.showBackground(x) {
		bgValue, bgPalette = p.backgroundPixel(x, y)
	}
	s, value, ok := p.evaluateSprites(x, y)
	if ok && value != 0 {
		if s.index == 0 && bgValue != 0 {
			p.status |= statusSpriteZeroHit
		}
		if !s.attributes.behindBackground() || bgValue == 0 {
			return p.color(0x10 + int(s.attributes.palette())*4 + int(value))
		}
	}
	if bgValue == 0 {
		// universal background color
		return p.color(0)
	}
	return p.color(bgPalette*4 + int(bgValue))
}

// evaluateSprites finds the sprite covering (x, y): the entry with the lowest
// index whose box contains the pixel wins, even when its pixel is transparent.
// Sprites are drawn one scanline below their Y coordinate and Y=0 hides them.
func (p *PPU) evaluateSprites(x, y int) (sprite, byte, bool) {
	height := 8
	if p.ctrl.tallSprites() {
		height = 16
	}
	for i := 0; i < oamSize/4; i++ {
		s := p.sprite(i)
		if s.y == 0 {
			continue
		}
		row := y - 1 - int(s.y)
		col := x - int(s.x)
		if row < 0 || row >= height || col < 0 || col >= 8 {
			continue
		}
		return s, p.spritePixel(s, row, col, height), true
	}
	return sprite{}, 0, false
}

// spritePixel reads the 2-bit pattern value of s at its local (row, col).
func (p *PPU) spritePixel(s sprite, row, col, height int) byte {
	if s.attributes.flipVertically() {
		row = height - 1 - row
	}
	if s.attributes.flipHorizontally() {
		col = 7 - col
	}
	table := p.ctrl.spriteTable()
	tile := uint16(s.tile)
	if height == 16 {
		// 8x16 sprites take their pattern table from bit 0 of the tile index.
		table = uint16(s.tile&1) * 0x1000
		tile &= 0xFE
		if row >= 8 {
			tile++
			row -= 8
		}
	}
	return p.patternPixel(table+tile*16, row, col)
}

// patternPixel reads one 2-bit pixel of the tile at address.
// Reference: https://www.nesdev.org/wiki/PPU_pattern_tables
func (p *PPU) patternPixel(address uint16, row, col int) byte {
	lo := p.mem.read(address + uint16(row))
	hi := p.mem.read(address + uint16(row) + 8)
	shift := uint(7 - col)
	return (lo>>shift)&1 | ((hi>>shift)&1)<<1
}

// backgroundPixel returns the 2-bit pattern value and the background palette
// of the nametable pixel under (x, y) after scrolling.
// Reference: https://www.nesdev.org/wiki/PPU_attribute_tables
func (p *PPU) backgroundPixel(x, y int) (byte, int) {
	n := p.ctrl.nametable()
	sx := (x + int(p.scrollX) + (n&1)*ScreenWidth) % (2 * ScreenWidth)
	sy := (y + int(p.scrollY) + (n>>1)*ScreenHeight) % (2 * ScreenHeight)
	table := p.mem.nametable(sx/ScreenWidth + (sy/ScreenHeight)*2)
	tileX, tileY := (sx%ScreenWidth)/8, (sy%ScreenHeight)/8
	tile := table[tileY*32+tileX]
	attribute := table[0x3C0+(tileY/4)*8+tileX/4]
	shift := uint(((tileY%4)/2)*4 + ((tileX%4)/2)*2)
	palette := int(attribute>>shift) & 0x03
	address := p.ctrl.backgroundTable() + uint16(tile)*16
	return p.patternPixel(address, sy%8, sx%8), palette
}
