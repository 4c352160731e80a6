package nes

// status is the processor status register P.
// bit  7 6 5 4 3 2 1 0
// flag N V - B D I Z C
// PHP, PLP, RTI and interrupts move the register as a raw byte, so encode and
// decodeFrom are the only places where the bit order is defined.
type status struct {
	c bool // carry
	z bool // zero
	i bool // IRQ disable
	d bool // decimal - no BCD on the 2A03, stored only
	b bool // break
	r bool // reserved - unused
	v bool // overflow
	n bool // negative
}

const (
	flagCarry byte = 1 << iota
	flagZero
	flagInterrupt
	flagDecimal
	flagBreak
	flagReserved
	flagOverflow
	flagNegative
)

// encode encodes the status to a byte.
func (s *status) encode() byte {
	var res byte
	if s.c {
		res |= flagCarry
	}
	if s.z {
		res |= flagZero
	}
	if s.i {
		res |= flagInterrupt
	}
	if s.d {
		res |= flagDecimal
	}
	if s.b {
		res |= flagBreak
	}
	if s.r {
		res |= flagReserved
	}
	if s.v {
		res |= flagOverflow
	}
	if s.n {
		res |= flagNegative
	}
	return res
}

// decodeFrom decodes a byte to the status.
func (s *status) decodeFrom(data byte) {
	s.c = data&flagCarry != 0
	s.z = data&flagZero != 0
	s.i = data&flagInterrupt != 0
	s.d = data&flagDecimal != 0
	s.b = data&flagBreak != 0
	s.r = data&flagReserved != 0
	s.v = data&flagOverflow != 0
	s.n = data&flagNegative != 0
}

// String renders the flags the way 6502 monitors do, e.g. "NV-BDIZC" with
// cleared flags shown as '_'.
func (s *status) String() string {
	const names = "CZIDBRVN"
	out := []byte("________")
	p := s.encode()
	for i := 0; i < 8; i++ {
		if p&(1<<i) != 0 {
			out[7-i] = names[i]
		}
	}
	return string(out)
}
