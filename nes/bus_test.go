package nes

import (
	"errors"
	"testing"
)

func newTestBus(cartridge *Cartridge, config Config) *Bus {
	return NewBus(NewPPU(), NewController(), cartridge, config)
}

func TestWRAMMirroring(t *testing.T) {
	b := newTestBus(nil, Config{Policy: Lenient})
	if err := b.Write(0x0000, 0x42); err != nil {
		t.Fatal(err)
	}
	for _, address := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		got, err := b.Read(address)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0x42 {
			t.Errorf("b.Read(0x%04x): got=0x%02x, want=0x42", address, got)
		}
	}
	b.Write(0x1FFF, 0x24)
	if got, _ := b.Read(0x07FF); got != 0x24 {
		t.Errorf("b.Read(0x07ff): got=0x%02x, want=0x24", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus(nil, Config{Policy: Lenient})
	// OAMADDR through 0x3FFB, OAMDATA through 0x200C.
	b.Write(0x3FFB, 0x10)
	b.Write(0x200C, 0xAB)
	if got := b.ppu.oam[0x10]; got != 0xAB {
		t.Errorf("oam[0x10]: got=0x%02x, want=0xab", got)
	}
	b.ppu.status = statusVBlank
	got, _ := b.Read(0x3FFA) // PPUSTATUS
	if got != byte(statusVBlank) {
		t.Errorf("PPUSTATUS via 0x3ffa: got=0x%02x, want=0x80", got)
	}
	if b.ppu.status.vblank() {
		t.Errorf("reading PPUSTATUS did not clear vblank")
	}
	// Write-only registers read as 0.
	b.Write(0x2000, 0xFF)
	if got, _ := b.Read(0x2000); got != 0 {
		t.Errorf("PPUCTRL read: got=0x%02x, want=0", got)
	}
}

func TestOAMDMA(t *testing.T) {
	b := newTestBus(nil, Config{Policy: Lenient})
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), byte(i))
	}
	b.Write(0x2003, 0x04) // OAMADDR
	if err := b.Write(0x4014, 0x02); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 256; i++ {
		want := byte(i - 4)
		if got := b.ppu.oam[i]; got != want {
			t.Fatalf("oam[%d]: got=0x%02x, want=0x%02x", i, got, want)
		}
	}
	if b.ppu.oamAddress != 0x04 {
		t.Errorf("OAMADDR after DMA: got=0x%02x, want=0x04", b.ppu.oamAddress)
	}
}

func TestPRGROM(t *testing.T) {
	prg := make([]byte, 0x4000)
	prg[0] = 0x11
	prg[0x3FFF] = 0x22
	tests := []struct {
		name    string
		mirror  bool
		address uint16
		want    byte
		wantErr bool
	}{
		{"first byte", false, 0x8000, 0x11, false},
		{"last byte", false, 0xBFFF, 0x22, false},
		{"past the image", false, 0xC000, 0, true},
		{"mirrored first byte", true, 0xC000, 0x11, false},
		{"mirrored last byte", true, 0xFFFF, 0x22, false},
	}
	for _, tt := range tests {
		b := newTestBus(&Cartridge{prgROM: prg}, Config{Policy: Strict, MirrorPRG: tt.mirror})
		got, err := b.Read(tt.address)
		if tt.wantErr {
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("%s: got err=%v, want=%v", tt.name, err, ErrOutOfBounds)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got=0x%02x, want=0x%02x", tt.name, got, tt.want)
		}
	}
}

func TestPRGROMIgnoresWrites(t *testing.T) {
	b := newTestBus(&Cartridge{prgROM: []byte{0x11}}, Config{Policy: Strict})
	if err := b.Write(0x8000, 0x99); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Read(0x8000); got != 0x11 {
		t.Errorf("b.Read(0x8000): got=0x%02x, want=0x11", got)
	}
}

func TestTrainer(t *testing.T) {
	trainer := make([]byte, trainerSize)
	trainer[0x1FF] = 0x5A
	b := newTestBus(&Cartridge{trainer: trainer}, Config{Policy: Strict})
	got, err := b.Read(0x71FF)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x5A {
		t.Errorf("b.Read(0x71ff): got=0x%02x, want=0x5a", got)
	}
	if err := b.Write(0x7000, 0x33); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Read(0x7000); got != 0x33 {
		t.Errorf("b.Read(0x7000): got=0x%02x, want=0x33", got)
	}
	if _, err := b.Read(0x7200); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("b.Read(0x7200): got=%v, want=%v", err, ErrOutOfBounds)
	}
	// Without a trainer the window is unmapped.
	b = newTestBus(&Cartridge{}, Config{Policy: Strict})
	if _, err := b.Read(0x7000); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("b.Read(0x7000) without trainer: got=%v, want=%v", err, ErrOutOfBounds)
	}
}

func TestAccessPolicy(t *testing.T) {
	lenient := newTestBus(nil, Config{Policy: Lenient})
	got, err := lenient.Read(0x5000)
	if err != nil || got != 0 {
		t.Errorf("lenient read: got=(0x%02x, %v), want=(0x00, nil)", got, err)
	}
	if err := lenient.Write(0x5000, 1); err != nil {
		t.Errorf("lenient write: got=%v, want=nil", err)
	}
	strict := newTestBus(nil, Config{Policy: Strict})
	if _, err := strict.Read(0x4015); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("strict read: got=%v, want=%v", err, ErrOutOfBounds)
	}
	if err := strict.Write(0x6000, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("strict write: got=%v, want=%v", err, ErrOutOfBounds)
	}
	if got := newTestBus(nil, Config{}).Policy(); got != buildPolicy {
		t.Errorf("default policy: got=%s, want=%s", got, buildPolicy)
	}
}

func TestControllerPort(t *testing.T) {
	b := newTestBus(nil, Config{Policy: Strict})
	b.controller.Set(ButtonA | ButtonStart)
	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	want := []byte{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		got, err := b.Read(0x4016)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("read %d: got=%d, want=%d", i, got, w)
		}
	}
}

func TestRead16(t *testing.T) {
	b := newTestBus(nil, Config{Policy: Lenient})
	b.Write(0x00FF, 0x34)
	b.Write(0x0100, 0x12)
	b.Write(0x0000, 0x56)
	if got, _ := b.Read16(0x00FF); got != 0x1234 {
		t.Errorf("b.Read16(0x00ff): got=0x%04x, want=0x1234", got)
	}
	if got, _ := b.read16Wrap(0x00FF); got != 0x5634 {
		t.Errorf("b.read16Wrap(0x00ff): got=0x%04x, want=0x5634", got)
	}
}
