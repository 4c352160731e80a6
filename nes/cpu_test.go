package nes

import (
	"errors"
	"testing"
)

// newTestCPU maps program at 0x8000 and powers on a CPU running it.
func newTestCPU(t *testing.T, program ...byte) *CPU {
	t.Helper()
	return newTestCPUWithConfig(t, Config{Policy: Lenient}, program...)
}

func newTestCPUWithConfig(t *testing.T, config Config, program ...byte) *CPU {
	t.Helper()
	cartridge := &Cartridge{prgROM: append([]byte(nil), program...)}
	bus := NewBus(NewPPU(), NewController(), cartridge, config)
	return NewCPU(bus, config.BRKInterrupt)
}

// newVectorROM returns a full 32KB program ROM with the three vectors set.
func newVectorROM(nmi, reset, irq uint16) []byte {
	rom := make([]byte, 0x8000)
	rom[0x7FFA], rom[0x7FFB] = byte(nmi), byte(nmi>>8)
	rom[0x7FFC], rom[0x7FFD] = byte(reset), byte(reset>>8)
	rom[0x7FFE], rom[0x7FFF] = byte(irq), byte(irq>>8)
	return rom
}

// runUntilHalt steps the CPU until it halts, failing after limit steps.
func runUntilHalt(t *testing.T, c *CPU, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		state, err := c.Step(false)
		if err != nil {
			t.Fatalf("Step() at step %d: %v", i, err)
		}
		if state == Halted {
			return
		}
	}
	t.Fatalf("CPU did not halt after %d steps, %s", limit, c)
}

func TestInitialState(t *testing.T) {
	c := newTestCPU(t, 0xEA)
	if c.pc != 0x8000 {
		t.Errorf("c.pc: got=0x%04x, want=0x8000", c.pc)
	}
	if c.s != 0xFD {
		t.Errorf("c.s: got=0x%02x, want=0xfd", c.s)
	}
	if c.a != 0 || c.x != 0 || c.y != 0 || c.p.encode() != 0 {
		t.Errorf("registers are not cleared: %s", c)
	}
	if c.State() != Running {
		t.Errorf("c.State(): got=%s, want=%s", c.State(), Running)
	}
}

func TestInitialStateResetVector(t *testing.T) {
	c := newTestCPU(t, newVectorROM(0, 0xC123, 0)...)
	if c.pc != 0xC123 {
		t.Errorf("c.pc: got=0x%04x, want=0xc123", c.pc)
	}
}

func TestADC(t *testing.T) {
	c := newTestCPU(t)
	c.bus.Write(0x0010, 0xEE)
	c.a = 0x12
	if err := c.adc(ZeroPage, 0x0010); err != nil {
		t.Fatal(err)
	}
	if c.a != 0x00 || !c.p.c || !c.p.z || c.p.v || c.p.n {
		t.Errorf("0x12+0xEE: got A=0x%02x P=%s, want A=0x00 P=______ZC", c.a, &c.p)
	}
	c.bus.Write(0x0010, 0x43)
	if err := c.adc(ZeroPage, 0x0010); err != nil {
		t.Fatal(err)
	}
	// The carry of the previous addition is added.
	if c.a != 0x44 || c.p.c || c.p.z {
		t.Errorf("0x00+0x43+C: got A=0x%02x P=%s, want A=0x44 with C and Z clear", c.a, &c.p)
	}
}

func TestADCFlags(t *testing.T) {
	tests := []struct {
		a, m      byte
		carry     bool
		want      byte
		c, v, n, z bool
	}{
		{0x9C, 0x9C, false, 0x38, true, true, false, false},
		{0x50, 0x10, false, 0x60, false, false, false, false},
		{0x50, 0x50, false, 0xA0, false, true, true, false},
		{0x50, 0x90, false, 0xE0, false, false, true, false},
		{0x50, 0xD0, false, 0x20, true, false, false, false},
		{0xD0, 0x10, false, 0xE0, false, false, true, false},
		{0xD0, 0x50, false, 0x20, true, false, false, false},
		{0xD0, 0x90, false, 0x60, true, true, false, false},
		{0xD0, 0xD0, false, 0xA0, true, false, true, false},
		{0x7F, 0x00, true, 0x80, false, true, true, false},
		{0xFF, 0xFF, true, 0xFF, true, false, true, false},
		{0x00, 0xFF, true, 0x00, true, false, false, true},
	}
	for _, tt := range tests {
		c := newTestCPU(t)
		c.bus.Write(0x0010, tt.m)
		c.a = tt.a
		c.p.c = tt.carry
		if err := c.adc(ZeroPage, 0x0010); err != nil {
			t.Fatal(err)
		}
		if c.a != tt.want {
			t.Errorf("0x%02x+0x%02x (C=%t): got=0x%02x, want=0x%02x", tt.a, tt.m, tt.carry, c.a, tt.want)
		}
		if c.p.c != tt.c || c.p.v != tt.v || c.p.n != tt.n || c.p.z != tt.z {
			t.Errorf("0x%02x+0x%02x (C=%t): got C=%t V=%t N=%t Z=%t, want C=%t V=%t N=%t Z=%t",
				tt.a, tt.m, tt.carry, c.p.c, c.p.v, c.p.n, c.p.z, tt.c, tt.v, tt.n, tt.z)
		}
	}
}

func TestSBC(t *testing.T) {
	tests := []struct {
		a, m    byte
		carry   bool
		want    byte
		c, v, n bool
	}{
		{0x08, 0x80, true, 0x88, false, true, true},
		{0x50, 0xF0, true, 0x60, false, false, false},
		{0x50, 0xB0, true, 0xA0, false, true, true},
		{0x50, 0x30, true, 0x20, true, false, false},
		{0xD0, 0x70, true, 0x60, true, true, false},
		{0x05, 0x03, false, 0x01, true, false, false},
		{0x00, 0x01, true, 0xFF, false, false, true},
	}
	for _, tt := range tests {
		c := newTestCPU(t)
		c.bus.Write(0x0010, tt.m)
		c.a = tt.a
		c.p.c = tt.carry
		if err := c.sbc(ZeroPage, 0x0010); err != nil {
			t.Fatal(err)
		}
		if c.a != tt.want {
			t.Errorf("0x%02x-0x%02x (C=%t): got=0x%02x, want=0x%02x", tt.a, tt.m, tt.carry, c.a, tt.want)
		}
		if c.p.c != tt.c || c.p.v != tt.v || c.p.n != tt.n {
			t.Errorf("0x%02x-0x%02x (C=%t): got C=%t V=%t N=%t, want C=%t V=%t N=%t",
				tt.a, tt.m, tt.carry, c.p.c, c.p.v, c.p.n, tt.c, tt.v, tt.n)
		}
	}
}

func TestAND(t *testing.T) {
	c := newTestCPU(t)
	c.a = 0xB5
	c.bus.Write(0x0010, 0xF0)
	if err := c.and(ZeroPage, 0x0010); err != nil {
		t.Fatal(err)
	}
	if c.a != 0xB0 || !c.p.n || c.p.z {
		t.Errorf("0xB5&0xF0: got A=0x%02x P=%s, want A=0xb0 N set", c.a, &c.p)
	}
	c.bus.Write(0x0010, 0x00)
	if err := c.and(ZeroPage, 0x0010); err != nil {
		t.Fatal(err)
	}
	if c.a != 0x00 || c.p.n || !c.p.z {
		t.Errorf("0xB0&0x00: got A=0x%02x P=%s, want A=0x00 Z set", c.a, &c.p)
	}
}

func TestBIT(t *testing.T) {
	tests := []struct {
		a, m    byte
		n, v, z bool
	}{
		{0xFF, 0x80, true, false, false},
		{0xFF, 0x40, false, true, false},
		{0x2A, 0xD5, true, true, true},
		{0x2A, 0xF5, true, true, false},
	}
	for _, tt := range tests {
		c := newTestCPU(t)
		c.a = tt.a
		c.bus.Write(0x0010, tt.m)
		if err := c.bit(ZeroPage, 0x0010); err != nil {
			t.Fatal(err)
		}
		if c.p.n != tt.n || c.p.v != tt.v || c.p.z != tt.z {
			t.Errorf("BIT A=0x%02x M=0x%02x: got N=%t V=%t Z=%t, want N=%t V=%t Z=%t",
				tt.a, tt.m, c.p.n, c.p.v, c.p.z, tt.n, tt.v, tt.z)
		}
		if c.a != tt.a {
			t.Errorf("BIT changed A: got=0x%02x, want=0x%02x", c.a, tt.a)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		register, m byte
		c, z, n     bool
	}{
		{0x40, 0x40, true, true, false},
		{0x40, 0x41, false, false, true},
		{0x41, 0x40, true, false, false},
		{0x00, 0xFF, false, false, false},
		{0xFF, 0x00, true, false, true},
	}
	for _, tt := range tests {
		c := newTestCPU(t)
		c.p.v = true
		c.bus.Write(0x0010, tt.m)
		if err := c.compare(tt.register, 0x0010); err != nil {
			t.Fatal(err)
		}
		if c.p.c != tt.c || c.p.z != tt.z || c.p.n != tt.n {
			t.Errorf("compare 0x%02x with 0x%02x: got C=%t Z=%t N=%t, want C=%t Z=%t N=%t",
				tt.register, tt.m, c.p.c, c.p.z, c.p.n, tt.c, tt.z, tt.n)
		}
		if !c.p.v {
			t.Errorf("compare 0x%02x with 0x%02x cleared V", tt.register, tt.m)
		}
	}
}

func TestStack(t *testing.T) {
	c := newTestCPU(t)
	for _, x := range []byte{4, 5, 6, 7} {
		if err := c.push(x); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range []byte{7, 6, 5, 4} {
		got, err := c.pull()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("c.pull(): got=%d, want=%d", got, want)
		}
	}
	if c.s != 0xFD {
		t.Errorf("c.s: got=0x%02x, want=0xfd", c.s)
	}
}

func TestPHPForcesBreakBits(t *testing.T) {
	c := newTestCPU(t)
	c.p.decodeFrom(0x8A)
	if err := c.php(Implied, 0); err != nil {
		t.Fatal(err)
	}
	c.p.decodeFrom(0x05)
	if err := c.php(Implied, 0); err != nil {
		t.Fatal(err)
	}
	for _, want := range []byte{0x35, 0xBA} {
		got, err := c.pull()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("pulled status: got=0b%08b, want=0b%08b", got, want)
		}
	}
}

func TestPLPLoadsEveryBit(t *testing.T) {
	c := newTestCPU(t, 0x28) // PLP
	c.push(0xFF)
	if _, err := c.Step(false); err != nil {
		t.Fatal(err)
	}
	if got := c.p.encode(); got != 0xFF {
		t.Errorf("c.p: got=0x%02x, want=0xff", got)
	}
}

func TestZeroPageIndexedWraps(t *testing.T) {
	tests := []struct {
		mode AddressingMode
		x, y byte
		want uint16
	}{
		{ZeroPageX, 2, 0, 0x0001},
		{ZeroPageY, 0, 2, 0x0001},
		{ZeroPageX, 0, 0, 0x00FF},
	}
	for _, tt := range tests {
		c := newTestCPU(t, 0xB5, 0xFF)
		c.x, c.y = tt.x, tt.y
		got, err := c.resolve(tt.mode, 0x8000)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("resolve(%s) X=%d Y=%d: got=0x%04x, want=0x%04x", tt.mode, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHalt(t *testing.T) {
	c := newTestCPU(t, 0xA9, 0x10, 0x00) // LDA #$10, halt
	state, err := c.Step(false)
	if err != nil {
		t.Fatal(err)
	}
	if state != Running || c.a != 0x10 || c.pc != 0x8002 {
		t.Fatalf("after LDA: state=%s, %s", state, c)
	}
	for i := 0; i < 3; i++ {
		state, err = c.Step(false)
		if err != nil {
			t.Fatal(err)
		}
		if state != Halted {
			t.Errorf("Step(): got=%s, want=%s", state, Halted)
		}
		if c.pc != 0x8002 {
			t.Errorf("c.pc: got=0x%04x, want=0x8002", c.pc)
		}
	}
	// NMIs are not serviced while halted.
	if state, _ := c.Step(true); state != Halted || c.s != 0xFD {
		t.Errorf("halted CPU serviced NMI: %s", c)
	}
	c.Reset()
	if c.State() != Running || c.pc != 0x8000 {
		t.Errorf("after Reset: state=%s, %s", c.State(), c)
	}
}

func TestBranchLoop(t *testing.T) {
	c := newTestCPU(t,
		0xA2, 0x03, // LDX #3
		0xCA,       // DEX
		0xD0, 0xFD, // BNE -3
		0x00,
	)
	runUntilHalt(t, c, 100)
	if c.x != 0 || !c.p.z {
		t.Errorf("X: got=%d Z=%t, want=0 Z=true", c.x, c.p.z)
	}
	if c.pc != 0x8005 {
		t.Errorf("c.pc: got=0x%04x, want=0x8005", c.pc)
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		opcode byte
		set    func(p *status)
		taken  bool
	}{
		{0x10, func(p *status) { p.n = false }, true},  // BPL
		{0x10, func(p *status) { p.n = true }, false},  // BPL
		{0x30, func(p *status) { p.n = true }, true},   // BMI
		{0x50, func(p *status) { p.v = false }, true},  // BVC
		{0x70, func(p *status) { p.v = true }, true},   // BVS
		{0x70, func(p *status) { p.v = false }, false}, // BVS
		{0x90, func(p *status) { p.c = false }, true},  // BCC
		{0xB0, func(p *status) { p.c = true }, true},   // BCS
		{0xB0, func(p *status) { p.c = false }, false}, // BCS
		{0xD0, func(p *status) { p.z = false }, true},  // BNE
		{0xF0, func(p *status) { p.z = true }, true},   // BEQ
		{0xF0, func(p *status) { p.z = false }, false}, // BEQ
	}
	for _, tt := range tests {
		c := newTestCPU(t, tt.opcode, 0x10)
		tt.set(&c.p)
		if _, err := c.Step(false); err != nil {
			t.Fatal(err)
		}
		want := uint16(0x8002)
		if tt.taken {
			want = 0x8012
		}
		if c.pc != want {
			t.Errorf("opcode 0x%02x with P=%s: got pc=0x%04x, want=0x%04x", tt.opcode, &c.p, c.pc, want)
		}
	}
}

func TestSubroutine(t *testing.T) {
	c := newTestCPU(t,
		0x20, 0x06, 0x80, // JSR $8006
		0xA2, 0x22, // LDX #$22
		0x00,
		0xA9, 0x11, // LDA #$11
		0x60, // RTS
	)
	runUntilHalt(t, c, 10)
	if c.a != 0x11 || c.x != 0x22 || c.pc != 0x8005 || c.s != 0xFD {
		t.Errorf("got %s, want A=0x11, X=0x22, PC=0x8005, S=0xfd", c)
	}
}

func TestJMPIndirectPageWrap(t *testing.T) {
	c := newTestCPU(t, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	c.bus.Write(0x02FF, 0x34)
	c.bus.Write(0x0200, 0x12)
	c.bus.Write(0x0300, 0x56)
	if _, err := c.Step(false); err != nil {
		t.Fatal(err)
	}
	if c.pc != 0x1234 {
		t.Errorf("c.pc: got=0x%04x, want=0x1234", c.pc)
	}
}

func TestStoresAndTransfers(t *testing.T) {
	c := newTestCPU(t,
		0xA9, 0x80, // LDA #$80
		0xAA,       // TAX
		0xA8,       // TAY
		0x8D, 0x00, 0x03, // STA $0300
		0xE8,             // INX
		0x86, 0x10, // STX $10
		0xC8,       // INY
		0x94, 0x0F, // STY $0F,X
		0xA2, 0x00, // LDX #0
		0x9A, // TXS
		0xBA, // TSX
		0x00,
	)
	runUntilHalt(t, c, 20)
	for _, tt := range []struct {
		address uint16
		want    byte
	}{
		{0x0300, 0x80},
		{0x0010, 0x81},
		{0x0090, 0x81},
	} {
		if got, _ := c.bus.Read(tt.address); got != tt.want {
			t.Errorf("0x%04x: got=0x%02x, want=0x%02x", tt.address, got, tt.want)
		}
	}
	if c.s != 0 || c.x != 0 || !c.p.z {
		t.Errorf("TXS/TSX: got %s", c)
	}
}

func TestTXSKeepsFlags(t *testing.T) {
	c := newTestCPU(t, 0x9A) // TXS
	c.x = 0
	c.p.z = false
	c.p.n = true
	if _, err := c.Step(false); err != nil {
		t.Fatal(err)
	}
	if c.s != 0 || c.p.z || !c.p.n {
		t.Errorf("TXS: got %s", c)
	}
}

func TestShiftsAndRotates(t *testing.T) {
	tests := []struct {
		name    string
		f       func(c *CPU, mode AddressingMode, operand uint16) error
		in      byte
		carry   bool
		want    byte
		wantC   bool
	}{
		{"ASL", (*CPU).asl, 0x81, false, 0x02, true},
		{"LSR", (*CPU).lsr, 0x81, false, 0x40, true},
		{"ROL", (*CPU).rol, 0x80, true, 0x01, true},
		{"ROL", (*CPU).rol, 0x40, false, 0x80, false},
		{"ROR", (*CPU).ror, 0x01, true, 0x80, true},
		{"ROR", (*CPU).ror, 0x02, false, 0x01, false},
	}
	for _, tt := range tests {
		for _, mode := range []AddressingMode{Accumulator, ZeroPage} {
			c := newTestCPU(t)
			c.p.c = tt.carry
			c.a = tt.in
			c.bus.Write(0x0010, tt.in)
			if err := tt.f(c, mode, 0x0010); err != nil {
				t.Fatal(err)
			}
			got := c.a
			if mode == ZeroPage {
				got, _ = c.bus.Read(0x0010)
			}
			if got != tt.want || c.p.c != tt.wantC {
				t.Errorf("%s %s 0x%02x (C=%t): got=0x%02x C=%t, want=0x%02x C=%t",
					tt.name, mode, tt.in, tt.carry, got, c.p.c, tt.want, tt.wantC)
			}
			if c.p.n != (tt.want&0x80 != 0) {
				t.Errorf("%s %s 0x%02x: N=%t", tt.name, mode, tt.in, c.p.n)
			}
		}
	}
}

func TestIncrementDecrement(t *testing.T) {
	c := newTestCPU(t,
		0xE6, 0x10, // INC $10
		0xC6, 0x11, // DEC $11
		0x88,       // DEY
		0xCA,       // DEX
		0x00,
	)
	c.bus.Write(0x0010, 0xFF)
	c.bus.Write(0x0011, 0x00)
	runUntilHalt(t, c, 10)
	if got, _ := c.bus.Read(0x0010); got != 0x00 {
		t.Errorf("INC 0xff: got=0x%02x, want=0x00", got)
	}
	if got, _ := c.bus.Read(0x0011); got != 0xFF {
		t.Errorf("DEC 0x00: got=0x%02x, want=0xff", got)
	}
	if c.x != 0xFF || c.y != 0xFF || !c.p.n || c.p.z {
		t.Errorf("DEX/DEY: got %s", c)
	}
}

func TestFlagInstructions(t *testing.T) {
	c := newTestCPU(t,
		0x38, // SEC
		0x78, // SEI
		0xF8, // SED
		0x00,
	)
	runUntilHalt(t, c, 10)
	if got := c.p.encode(); got != flagCarry|flagInterrupt|flagDecimal {
		t.Errorf("SEC/SEI/SED: got=0b%08b", got)
	}
	c = newTestCPU(t,
		0x18, // CLC
		0x58, // CLI
		0xD8, // CLD
		0xB8, // CLV
		0x00,
	)
	c.p.decodeFrom(0xFF)
	runUntilHalt(t, c, 10)
	if got := c.p.encode(); got != flagZero|flagBreak|flagReserved|flagNegative {
		t.Errorf("CLC/CLI/CLD/CLV: got=0b%08b", got)
	}
}

func TestNMI(t *testing.T) {
	c := newTestCPU(t, newVectorROM(0x9000, 0x8000, 0xA000)...)
	c.p.decodeFrom(flagCarry | flagBreak)
	if _, err := c.Step(true); err != nil {
		t.Fatal(err)
	}
	if c.pc != 0x9000 {
		t.Errorf("c.pc: got=0x%04x, want=0x9000", c.pc)
	}
	if !c.p.i {
		t.Errorf("NMI did not set I")
	}
	for _, tt := range []struct {
		address uint16
		want    byte
	}{
		{0x01FD, 0x80},
		{0x01FC, 0x00},
		{0x01FB, flagCarry | flagReserved},
	} {
		if got, _ := c.bus.Read(tt.address); got != tt.want {
			t.Errorf("stack 0x%04x: got=0x%02x, want=0x%02x", tt.address, got, tt.want)
		}
	}
	if c.cycles != 7 {
		t.Errorf("c.cycles: got=%d, want=7", c.cycles)
	}
}

func TestRTI(t *testing.T) {
	rom := newVectorROM(0x9000, 0x8000, 0)
	rom[0x1000] = 0x40 // RTI at 0x9000
	c := newTestCPU(t, rom...)
	c.p.decodeFrom(flagCarry | flagNegative)
	if _, err := c.Step(true); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Step(false); err != nil {
		t.Fatal(err)
	}
	if c.pc != 0x8000 || c.s != 0xFD {
		t.Errorf("after RTI: %s", c)
	}
	if want := flagCarry | flagReserved | flagNegative; c.p.encode() != want {
		t.Errorf("c.p: got=0x%02x, want=0x%02x", c.p.encode(), want)
	}
}

func TestBRKInterrupt(t *testing.T) {
	rom := newVectorROM(0, 0x8000, 0xA000)
	c := newTestCPUWithConfig(t, Config{Policy: Lenient, BRKInterrupt: true}, rom...)
	state, err := c.Step(false)
	if err != nil {
		t.Fatal(err)
	}
	if state != Running || c.pc != 0xA000 {
		t.Fatalf("BRK: state=%s, %s", state, c)
	}
	for _, tt := range []struct {
		address uint16
		want    byte
	}{
		{0x01FD, 0x80},
		{0x01FC, 0x02},
		{0x01FB, flagBreak | flagReserved},
	} {
		if got, _ := c.bus.Read(tt.address); got != tt.want {
			t.Errorf("stack 0x%04x: got=0x%02x, want=0x%02x", tt.address, got, tt.want)
		}
	}
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		want    error
	}{
		{"(zp,X)", []byte{0xA1, 0x10}, ErrUnsupportedAddressingMode},
		{"(zp),Y", []byte{0xB1, 0x10}, ErrUnsupportedAddressingMode},
		{"unofficial LAX", []byte{0xA7, 0x10}, ErrUnsupportedInstruction},
		{"unofficial NOP", []byte{0x1A}, ErrUnsupportedInstruction},
		{"JAM", []byte{0x02}, ErrUnsupportedInstruction},
	}
	for _, tt := range tests {
		c := newTestCPU(t, tt.program...)
		if _, err := c.Step(false); !errors.Is(err, tt.want) {
			t.Errorf("%s: got=%v, want=%v", tt.name, err, tt.want)
		}
	}
}

func TestOfficialOpcodesExecute(t *testing.T) {
	for i := 0; i < 256; i++ {
		opcode := byte(i)
		instruction := Decode(opcode)
		if !instruction.Mnemonic.Official() || opcode == 0x00 ||
			instruction.Mode == IndexedIndirect || instruction.Mode == IndirectIndexed {
			continue
		}
		c := newTestCPU(t, opcode, 0x10, 0x00)
		if _, err := c.Step(false); err != nil {
			t.Errorf("opcode 0x%02x (%s): %v", opcode, instruction, err)
		}
	}
}

func TestOutOfBoundsPolicy(t *testing.T) {
	program := []byte{0x8D, 0x00, 0x50} // STA $5000
	c := newTestCPUWithConfig(t, Config{Policy: Strict}, program...)
	if _, err := c.Step(false); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("strict: got=%v, want=%v", err, ErrOutOfBounds)
	}
	c = newTestCPUWithConfig(t, Config{Policy: Lenient}, program...)
	if _, err := c.Step(false); err != nil {
		t.Errorf("lenient: got=%v, want=nil", err)
	}
}

func TestCycles(t *testing.T) {
	c := newTestCPU(t,
		0xA9, 0x01, // LDA #1, 2 cycles
		0x8D, 0x00, 0x03, // STA $0300, 4 cycles
		0xEA, // NOP, 2 cycles
		0x00,
	)
	runUntilHalt(t, c, 10)
	if c.Cycles() != 8 {
		t.Errorf("c.Cycles(): got=%d, want=8", c.Cycles())
	}
}

func TestDisassemble(t *testing.T) {
	c := newTestCPU(t,
		0xA9, 0x10, // LDA #$10
		0x6C, 0x00, 0x02, // JMP ($0200)
		0xD0, 0xFE, // BNE $8005
		0x0A,       // ASL A
		0xA7, 0x10, // *LAX $10
	)
	tests := []struct {
		address  uint16
		want     string
		wantSize uint16
	}{
		{0x8000, "LDA #$10", 2},
		{0x8002, "JMP ($0200)", 3},
		{0x8005, "BNE $8005", 2},
		{0x8007, "ASL A", 1},
		{0x8008, "*LAX $10", 2},
	}
	for _, tt := range tests {
		got, size := c.Disassemble(tt.address)
		if got != tt.want || size != tt.wantSize {
			t.Errorf("Disassemble(0x%04x): got=%q (%d), want=%q (%d)", tt.address, got, size, tt.want, tt.wantSize)
		}
	}
}
