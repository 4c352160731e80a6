package nes

import (
	"fmt"

	"github.com/golang/glog"
)

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)

const (
	stackBase         uint16 = 0x0100
	stackPointerReset byte   = 0xFD
	haltOpcode        byte   = 0x00
)

// State is the run state of the CPU.
type State int

const (
	Running State = iota
	// Halted is entered when opcode 0x00 is fetched and BRK is not emulated.
	Halted
)

func (s State) String() string {
	if s == Halted {
		return "halted"
	}
	return "running"
}

type executionKind int

const (
	executionInstruction executionKind = iota
	executionNMI
	executionHalt
)

// execution records what the last Step did; it is formatted only on demand.
type execution struct {
	kind        executionKind
	address     uint16
	opcode      byte
	instruction Instruction
	operand     uint16
}

func (e execution) String() string {
	switch e.kind {
	case executionNMI:
		return fmt.Sprintf("NMI, vector 0x%04x", e.address)
	case executionHalt:
		return fmt.Sprintf("halt at PC=0x%04x", e.address)
	}
	return fmt.Sprintf("PC=0x%04x, opcode=0x%02x, mnemonic=%s, mode=%s, operand=0x%04x",
		e.address, e.opcode, e.instruction.Mnemonic, e.instruction.Mode, e.operand)
}

type CPU struct {
	p             status // Processor status flag bits
	a             byte   // Accumulator register
	x             byte   // Index register
	y             byte   // Index register
	pc            uint16 // Program counter
	s             byte   // Stack pointer
	state         State
	cycles        uint64 // Executed cycles
	lastExecution execution // For debug
	bus           *Bus
	brkInterrupt  bool
}

// NewCPU creates a new NES CPU. With brkInterrupt unset, opcode 0x00 stops the
// CPU instead of entering the BRK interrupt.
func NewCPU(bus *Bus, brkInterrupt bool) *CPU {
	c := &CPU{
		bus:          bus,
		brkInterrupt: brkInterrupt,
	}
	c.Reset()
	return c
}

// Reset does Reset. Registers and flags are cleared and execution restarts at
// the cartridge entry point.
func (c *CPU) Reset() {
	c.a, c.x, c.y = 0, 0, 0
	c.p.decodeFrom(0)
	c.s = stackPointerReset
	c.pc = c.bus.entryPoint()
	c.state = Running
	c.lastExecution = execution{}
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// State returns whether the CPU is running or halted.
func (c *CPU) State() State { return c.state }

// Cycles returns the base cycles of every instruction executed so far.
func (c *CPU) Cycles() uint64 { return c.cycles }

func (c *CPU) String() string {
	return fmt.Sprintf("PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, P=0x%02x (%s)",
		c.pc, c.a, c.x, c.y, c.s, c.p.encode(), &c.p)
}

// setN sets whether the x is negative or positive.
func (c *CPU) setN(x byte) {
	c.p.n = x&0x80 != 0
}

// setZ sets whether the x is 0 or not.
func (c *CPU) setZ(x byte) {
	c.p.z = x == 0
}

func (c *CPU) setZN(x byte) {
	c.setZ(x)
	c.setN(x)
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) error {
	if err := c.bus.Write(stackBase|uint16(c.s), x); err != nil {
		return err
	}
	c.s--
	return nil
}

// pull pulls data from stack.
func (c *CPU) pull() (byte, error) {
	c.s++
	return c.bus.Read(stackBase | uint16(c.s))
}

func (c *CPU) push16(x uint16) error {
	if err := c.push(byte(x >> 8)); err != nil {
		return err
	}
	return c.push(byte(x))
}

func (c *CPU) pull16() (uint16, error) {
	l, err := c.pull()
	if err != nil {
		return 0, err
	}
	h, err := c.pull()
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// interrupt pushes PC and P, masks IRQs and jumps through vector. The break
// flag in the pushed byte tells BRK/PHP (set) apart from NMI/IRQ (clear).
func (c *CPU) interrupt(vector uint16, brk bool) error {
	if err := c.push16(c.pc); err != nil {
		return err
	}
	p := c.p.encode() | flagReserved
	if brk {
		p |= flagBreak
	} else {
		p &^= flagBreak
	}
	if err := c.push(p); err != nil {
		return err
	}
	c.p.i = true
	data, err := c.bus.Read16(vector)
	if err != nil {
		return err
	}
	c.pc = data
	return nil
}

// nmi is non-maskable interrupt, this will be trigered by PPU.
func (c *CPU) nmi() error {
	return c.interrupt(nmiVector, false)
}

// Step performs the instruction cycle - fetch, decode, execute. When nmi is
// set the interrupt is entered instead of executing an instruction.
// Step reports Halted once opcode 0x00 is fetched (unless BRK is emulated);
// a halted CPU stays halted until Reset. Unsupported instructions and
// addressing modes, and strict out of bounds accesses, are returned as errors.
func (c *CPU) Step(nmi bool) (State, error) {
	if c.state == Halted {
		return Halted, nil
	}
	// Non-maskable interrupt.
	if nmi {
		if err := c.nmi(); err != nil {
			return c.state, fmt.Errorf("NMI: %w", err)
		}
		c.cycles += 7
		c.lastExecution = execution{kind: executionNMI, address: c.pc}
		return c.state, nil
	}
	address := c.pc
	opcode, err := c.bus.Read(address)
	if err != nil {
		return c.state, err
	}
	if opcode == haltOpcode && !c.brkInterrupt {
		c.state = Halted
		c.lastExecution = execution{kind: executionHalt, address: address, opcode: opcode}
		glog.Infof("CPU halted at PC=0x%04x", address)
		return c.state, nil
	}
	instruction := Decode(opcode)
	operand, err := c.resolve(instruction.Mode, address)
	if err != nil {
		return c.state, fmt.Errorf("%s (opcode=0x%02x): %w", instruction.Mnemonic, opcode, err)
	}
	// PC moves before execution so jumps and branches overwrite it.
	c.pc += instruction.Size
	c.lastExecution = execution{address: address, opcode: opcode, instruction: instruction, operand: operand}
	if glog.V(2) {
		glog.Info(c.lastExecution.String())
	}
	if err := c.execute(instruction, operand); err != nil {
		return c.state, fmt.Errorf("opcode=0x%02x at PC=0x%04x: %w", opcode, address, err)
	}
	c.cycles += uint64(instruction.Cycles)
	return c.state, nil
}

// execute dispatches to the executor of the mnemonic.
func (c *CPU) execute(instruction Instruction, operand uint16) error {
	mode := instruction.Mode
	switch instruction.Mnemonic {
	case ADC:
		return c.adc(mode, operand)
	case AND:
		return c.and(mode, operand)
	case ASL:
		return c.asl(mode, operand)
	case BCC:
		return c.branch(!c.p.c, operand)
	case BCS:
		return c.branch(c.p.c, operand)
	case BEQ:
		return c.branch(c.p.z, operand)
	case BIT:
		return c.bit(mode, operand)
	case BMI:
		return c.branch(c.p.n, operand)
	case BNE:
		return c.branch(!c.p.z, operand)
	case BPL:
		return c.branch(!c.p.n, operand)
	case BRK:
		return c.brk(mode, operand)
	case BVC:
		return c.branch(!c.p.v, operand)
	case BVS:
		return c.branch(c.p.v, operand)
	case CLC:
		c.p.c = false
	case CLD:
		c.p.d = false
	case CLI:
		c.p.i = false
	case CLV:
		c.p.v = false
	case CMP:
		return c.compare(c.a, operand)
	case CPX:
		return c.compare(c.x, operand)
	case CPY:
		return c.compare(c.y, operand)
	case DEC:
		return c.dec(mode, operand)
	case DEX:
		c.x--
		c.setZN(c.x)
	case DEY:
		c.y--
		c.setZN(c.y)
	case EOR:
		return c.eor(mode, operand)
	case INC:
		return c.inc(mode, operand)
	case INX:
		c.x++
		c.setZN(c.x)
	case INY:
		c.y++
		c.setZN(c.y)
	case JMP:
		c.pc = operand
	case JSR:
		return c.jsr(mode, operand)
	case LDA:
		return c.load(&c.a, operand)
	case LDX:
		return c.load(&c.x, operand)
	case LDY:
		return c.load(&c.y, operand)
	case LSR:
		return c.lsr(mode, operand)
	case NOP:
		// noop
	case ORA:
		return c.ora(mode, operand)
	case PHA:
		return c.push(c.a)
	case PHP:
		return c.php(mode, operand)
	case PLA:
		return c.pla(mode, operand)
	case PLP:
		return c.plp(mode, operand)
	case ROL:
		return c.rol(mode, operand)
	case ROR:
		return c.ror(mode, operand)
	case RTI:
		return c.rti(mode, operand)
	case RTS:
		return c.rts(mode, operand)
	case SBC:
		return c.sbc(mode, operand)
	case SEC:
		c.p.c = true
	case SED:
		c.p.d = true
	case SEI:
		c.p.i = true
	case STA:
		return c.bus.Write(operand, c.a)
	case STX:
		return c.bus.Write(operand, c.x)
	case STY:
		return c.bus.Write(operand, c.y)
	case TAX:
		c.x = c.a
		c.setZN(c.x)
	case TAY:
		c.y = c.a
		c.setZN(c.y)
	case TSX:
		c.x = c.s
		c.setZN(c.x)
	case TXA:
		c.a = c.x
		c.setZN(c.a)
	case TXS:
		c.s = c.x
	case TYA:
		c.a = c.y
		c.setZN(c.a)
	case ALR, ANC, ARR, AXS, DCP, ISB, LAS, LAX, LXA, RLA, RRA, SAX, SHA, SHX, SHY, SLO, SRE, TAS, XAA, UNOP, USBC:
		return fmt.Errorf("%w: unofficial %s is not implemented", ErrUnsupportedInstruction, instruction.Mnemonic)
	case JAM:
		return fmt.Errorf("%w: illegal opcode %s", ErrUnsupportedInstruction, instruction.Mnemonic)
	default:
		return fmt.Errorf("%w: unknown mnemonic %s", ErrUnsupportedInstruction, instruction.Mnemonic)
	}
	return nil
}

// addWithCarry adds m and the carry to the accumulator. V is set when A and
// m share a sign which the result does not.
func (c *CPU) addWithCarry(m byte) {
	var carry uint16
	if c.p.c {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	res := byte(sum)
	c.p.c = sum > 0xFF
	c.p.v = (c.a^res)&(m^res)&0x80 != 0
	c.a = res
	c.setZN(c.a)
}

// ADC - Add with Carry.
func (c *CPU) adc(mode AddressingMode, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.addWithCarry(data)
	return nil
}

// SBC - Subtract with carry, A + ^M + C. The carry has to be set beforehand
// for a subtraction without borrow.
func (c *CPU) sbc(mode AddressingMode, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.addWithCarry(^data)
	return nil
}

// compare is SBC with the carry set on register, keeping only C, Z and N.
// Used by CMP, CPX and CPY.
func (c *CPU) compare(register byte, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.p.c = register >= data
	c.setZN(register - data)
	return nil
}

// AND - And.
func (c *CPU) and(mode AddressingMode, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.a &= data
	c.setZN(c.a)
	return nil
}

// EOR - Bitwise Exclusive OR.
func (c *CPU) eor(mode AddressingMode, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.a ^= data
	c.setZN(c.a)
	return nil
}

// ORA - Bitwise OR with Accumulator.
func (c *CPU) ora(mode AddressingMode, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.a |= data
	c.setZN(c.a)
	return nil
}

// BIT - test BITS.
func (c *CPU) bit(mode AddressingMode, operand uint16) error {
	x, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	c.setN(x)
	c.setZ(c.a & x)
	c.p.v = x&0x40 != 0
	return nil
}

// load sets register from memory. Used by LDA, LDX and LDY.
func (c *CPU) load(register *byte, operand uint16) error {
	data, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	*register = data
	c.setZN(data)
	return nil
}

// modify performs a read-modify-write on the accumulator or on memory.
func (c *CPU) modify(mode AddressingMode, operand uint16, f func(byte) byte) error {
	if mode == Accumulator {
		c.a = f(c.a)
		c.setZN(c.a)
		return nil
	}
	x, err := c.bus.Read(operand)
	if err != nil {
		return err
	}
	x = f(x)
	if err := c.bus.Write(operand, x); err != nil {
		return err
	}
	c.setZN(x)
	return nil
}

// ASL - Arithmetic Shift Left.
func (c *CPU) asl(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte {
		c.p.c = x&0x80 != 0
		return x << 1
	})
}

// LSR - Logical Shift Right.
func (c *CPU) lsr(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte {
		c.p.c = x&1 == 1
		return x >> 1
	})
}

// ROL - Rotate Left.
func (c *CPU) rol(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte {
		var carry byte
		if c.p.c {
			carry = 1
		}
		c.p.c = x&0x80 != 0
		return x<<1 | carry
	})
}

// ROR - Rotate Right.
func (c *CPU) ror(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte {
		var carry byte
		if c.p.c {
			carry = 0x80
		}
		c.p.c = x&1 == 1
		return x>>1 | carry
	})
}

// DEC - Decrement Memory.
func (c *CPU) dec(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte { return x - 1 })
}

// INC - Increment Memory.
func (c *CPU) inc(mode AddressingMode, operand uint16) error {
	return c.modify(mode, operand, func(x byte) byte { return x + 1 })
}

// branch jumps to the relative target when the condition holds; otherwise
// the PC already points at the next instruction.
func (c *CPU) branch(condition bool, operand uint16) error {
	if condition {
		c.pc = operand
	}
	return nil
}

// BRK - Break Interrupt. Only reached when BRK is emulated; the return
// address skips the padding byte after the opcode.
func (c *CPU) brk(mode AddressingMode, operand uint16) error {
	c.pc++
	return c.interrupt(irqVector, true)
}

// JSR - Jump to Subroutine.
func (c *CPU) jsr(mode AddressingMode, operand uint16) error {
	if err := c.push16(c.pc - 1); err != nil {
		return err
	}
	c.pc = operand
	return nil
}

// RTS - Return from Subroutine.
func (c *CPU) rts(mode AddressingMode, operand uint16) error {
	address, err := c.pull16()
	if err != nil {
		return err
	}
	c.pc = address + 1
	return nil
}

// RTI - Return from Interrupt.
func (c *CPU) rti(mode AddressingMode, operand uint16) error {
	p, err := c.pull()
	if err != nil {
		return err
	}
	c.p.decodeFrom(p)
	address, err := c.pull16()
	if err != nil {
		return err
	}
	c.pc = address
	return nil
}

// PHP - Push Processor Status, with bits 4 and 5 set.
func (c *CPU) php(mode AddressingMode, operand uint16) error {
	return c.push(c.p.encode() | flagBreak | flagReserved)
}

// PLA - Pull Accumulator.
func (c *CPU) pla(mode AddressingMode, operand uint16) error {
	data, err := c.pull()
	if err != nil {
		return err
	}
	c.a = data
	c.setZN(c.a)
	return nil
}

// PLP - Pull Processor Status, every bit as pulled.
func (c *CPU) plp(mode AddressingMode, operand uint16) error {
	data, err := c.pull()
	if err != nil {
		return err
	}
	c.p.decodeFrom(data)
	return nil
}

// Disassemble renders the instruction at address, e.g. "LDA #$10" or
// "JMP $C000", and returns its size.
func (c *CPU) Disassemble(address uint16) (string, uint16) {
	opcode, _ := c.bus.Read(address)
	instruction := Decode(opcode)
	lo, _ := c.bus.Read(address + 1)
	hi, _ := c.bus.Read(address + 2)
	word := uint16(hi)<<8 | uint16(lo)
	name := instruction.Mnemonic.String()
	var text string
	switch instruction.Mode {
	case Implied:
		text = name
	case Accumulator:
		text = name + " A"
	case Immediate:
		text = fmt.Sprintf("%s #$%02X", name, lo)
	case ZeroPage:
		text = fmt.Sprintf("%s $%02X", name, lo)
	case ZeroPageX:
		text = fmt.Sprintf("%s $%02X,X", name, lo)
	case ZeroPageY:
		text = fmt.Sprintf("%s $%02X,Y", name, lo)
	case Relative:
		text = fmt.Sprintf("%s $%04X", name, address+2+uint16(int8(lo)))
	case Absolute:
		text = fmt.Sprintf("%s $%04X", name, word)
	case AbsoluteX:
		text = fmt.Sprintf("%s $%04X,X", name, word)
	case AbsoluteY:
		text = fmt.Sprintf("%s $%04X,Y", name, word)
	case Indirect:
		text = fmt.Sprintf("%s ($%04X)", name, word)
	case IndexedIndirect:
		text = fmt.Sprintf("%s ($%02X,X)", name, lo)
	case IndirectIndexed:
		text = fmt.Sprintf("%s ($%02X),Y", name, lo)
	}
	if !instruction.Mnemonic.Official() {
		text = "*" + text
	}
	return text, instruction.Size
}
