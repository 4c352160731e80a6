package nes

import "fmt"

// Instruction decoding for the 2A03 core.
// References:
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU_unofficial_opcodes

// AddressingMode selects how the operand of an instruction is located.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

var addressingModeNames = [...]string{
	Implied:         "implied",
	Accumulator:     "accumulator",
	Immediate:       "immediate",
	ZeroPage:        "zeropage",
	ZeroPageX:       "zeropage,X",
	ZeroPageY:       "zeropage,Y",
	Relative:        "relative",
	Absolute:        "absolute",
	AbsoluteX:       "absolute,X",
	AbsoluteY:       "absolute,Y",
	Indirect:        "indirect",
	IndexedIndirect: "(indirect,X)",
	IndirectIndexed: "(indirect),Y",
}

func (m AddressingMode) String() string {
	if int(m) < len(addressingModeNames) {
		return addressingModeNames[m]
	}
	return fmt.Sprintf("AddressingMode(%d)", int(m))
}

// Mnemonic identifies the operation of an instruction. Official mnemonics come
// first; the unofficial ones decode but have no executor yet, and JAM marks
// the opcodes which lock up a real 6502.
type Mnemonic int

const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA

	// Unofficial, not yet implemented.
	ALR
	ANC
	ARR
	AXS
	DCP
	ISB
	LAS
	LAX
	LXA
	RLA
	RRA
	SAX
	SHA
	SHX
	SHY
	SLO
	SRE
	TAS
	XAA
	UNOP // NOP variants
	USBC // 0xEB, same as SBC #imm

	// Invalid, halts a real 6502.
	JAM
)

type mnemonicInfo struct {
	name        string
	description string
}

var mnemonics = [...]mnemonicInfo{
	ADC:  {"ADC", "Add with Carry"},
	AND:  {"AND", "Bitwise AND with Accumulator"},
	ASL:  {"ASL", "Arithmetic Shift Left"},
	BCC:  {"BCC", "Branch on Carry Clear"},
	BCS:  {"BCS", "Branch on Carry Set"},
	BEQ:  {"BEQ", "Branch on Equal"},
	BIT:  {"BIT", "Test Bits"},
	BMI:  {"BMI", "Branch on Minus"},
	BNE:  {"BNE", "Branch on Not Equal"},
	BPL:  {"BPL", "Branch on Plus"},
	BRK:  {"BRK", "Break"},
	BVC:  {"BVC", "Branch on Overflow Clear"},
	BVS:  {"BVS", "Branch on Overflow Set"},
	CLC:  {"CLC", "Clear Carry"},
	CLD:  {"CLD", "Clear Decimal"},
	CLI:  {"CLI", "Clear Interrupt Disable"},
	CLV:  {"CLV", "Clear Overflow"},
	CMP:  {"CMP", "Compare Accumulator"},
	CPX:  {"CPX", "Compare X Register"},
	CPY:  {"CPY", "Compare Y Register"},
	DEC:  {"DEC", "Decrement Memory"},
	DEX:  {"DEX", "Decrement X Register"},
	DEY:  {"DEY", "Decrement Y Register"},
	EOR:  {"EOR", "Bitwise Exclusive OR"},
	INC:  {"INC", "Increment Memory"},
	INX:  {"INX", "Increment X Register"},
	INY:  {"INY", "Increment Y Register"},
	JMP:  {"JMP", "Jump"},
	JSR:  {"JSR", "Jump to Subroutine"},
	LDA:  {"LDA", "Load Accumulator"},
	LDX:  {"LDX", "Load X Register"},
	LDY:  {"LDY", "Load Y Register"},
	LSR:  {"LSR", "Logical Shift Right"},
	NOP:  {"NOP", "No Operation"},
	ORA:  {"ORA", "Bitwise OR with Accumulator"},
	PHA:  {"PHA", "Push Accumulator"},
	PHP:  {"PHP", "Push Processor Status"},
	PLA:  {"PLA", "Pull Accumulator"},
	PLP:  {"PLP", "Pull Processor Status"},
	ROL:  {"ROL", "Rotate Left"},
	ROR:  {"ROR", "Rotate Right"},
	RTI:  {"RTI", "Return from Interrupt"},
	RTS:  {"RTS", "Return from Subroutine"},
	SBC:  {"SBC", "Subtract with Carry"},
	SEC:  {"SEC", "Set Carry"},
	SED:  {"SED", "Set Decimal"},
	SEI:  {"SEI", "Set Interrupt Disable"},
	STA:  {"STA", "Store Accumulator"},
	STX:  {"STX", "Store X Register"},
	STY:  {"STY", "Store Y Register"},
	TAX:  {"TAX", "Transfer A to X"},
	TAY:  {"TAY", "Transfer A to Y"},
	TSX:  {"TSX", "Transfer S to X"},
	TXA:  {"TXA", "Transfer X to A"},
	TXS:  {"TXS", "Transfer X to S"},
	TYA:  {"TYA", "Transfer Y to A"},
	ALR:  {"ALR", "AND then LSR"},
	ANC:  {"ANC", "AND then copy N to C"},
	ARR:  {"ARR", "AND then ROR"},
	AXS:  {"AXS", "A AND X minus operand into X"},
	DCP:  {"DCP", "DEC then CMP"},
	ISB:  {"ISB", "INC then SBC"},
	LAS:  {"LAS", "AND with S into A, X and S"},
	LAX:  {"LAX", "LDA then TAX"},
	LXA:  {"LXA", "Unstable AND into A and X"},
	RLA:  {"RLA", "ROL then AND"},
	RRA:  {"RRA", "ROR then ADC"},
	SAX:  {"SAX", "Store A AND X"},
	SHA:  {"SHA", "Store A AND X AND high byte"},
	SHX:  {"SHX", "Store X AND high byte"},
	SHY:  {"SHY", "Store Y AND high byte"},
	SLO:  {"SLO", "ASL then ORA"},
	SRE:  {"SRE", "LSR then EOR"},
	TAS:  {"TAS", "A AND X into S, store"},
	XAA:  {"XAA", "Unstable TXA then AND"},
	UNOP: {"NOP", "No Operation (unofficial)"},
	USBC: {"SBC", "Subtract with Carry (unofficial)"},
	JAM:  {"JAM", "Processor lock-up"},
}

// String returns the three letter assembler name.
func (m Mnemonic) String() string {
	if int(m) < len(mnemonics) {
		return mnemonics[m].name
	}
	return fmt.Sprintf("Mnemonic(%d)", int(m))
}

// Description returns the human readable name.
func (m Mnemonic) Description() string {
	if int(m) < len(mnemonics) {
		return mnemonics[m].description
	}
	return "Unknown"
}

// Official reports whether m is one of the documented 6502 instructions.
func (m Mnemonic) Official() bool {
	return m <= TYA
}

// Invalid reports whether m locks up a real processor.
func (m Mnemonic) Invalid() bool {
	return m == JAM
}

// Instruction is the decoded metadata of one opcode.
type Instruction struct {
	Mnemonic Mnemonic
	Mode     AddressingMode
	Size     uint16 // bytes including the opcode
	Cycles   int    // base cycles, without page crossing or branch penalties
}

// Name returns the human readable name of the instruction.
func (i Instruction) Name() string {
	return i.Mnemonic.Description()
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %s", i.Mnemonic, i.Mode)
}

// Decode returns the instruction for an opcode. Every byte decodes; whether
// the result can be executed is decided by the CPU.
func Decode(opcode byte) Instruction {
	return instructions[opcode]
}

var instructions = [256]Instruction{
	{BRK, Implied, 1, 7},         // 0x00
	{ORA, IndexedIndirect, 2, 6}, // 0x01
	{JAM, Implied, 1, 2},         // 0x02
	{SLO, IndexedIndirect, 2, 8}, // 0x03
	{UNOP, ZeroPage, 2, 3},       // 0x04
	{ORA, ZeroPage, 2, 3},        // 0x05
	{ASL, ZeroPage, 2, 5},        // 0x06
	{SLO, ZeroPage, 2, 5},        // 0x07
	{PHP, Implied, 1, 3},         // 0x08
	{ORA, Immediate, 2, 2},       // 0x09
	{ASL, Accumulator, 1, 2},     // 0x0A
	{ANC, Immediate, 2, 2},       // 0x0B
	{UNOP, Absolute, 3, 4},       // 0x0C
	{ORA, Absolute, 3, 4},        // 0x0D
	{ASL, Absolute, 3, 6},        // 0x0E
	{SLO, Absolute, 3, 6},        // 0x0F
	{BPL, Relative, 2, 2},        // 0x10
	{ORA, IndirectIndexed, 2, 5}, // 0x11
	{JAM, Implied, 1, 2},         // 0x12
	{SLO, IndirectIndexed, 2, 8}, // 0x13
	{UNOP, ZeroPageX, 2, 4},      // 0x14
	{ORA, ZeroPageX, 2, 4},       // 0x15
	{ASL, ZeroPageX, 2, 6},       // 0x16
	{SLO, ZeroPageX, 2, 6},       // 0x17
	{CLC, Implied, 1, 2},         // 0x18
	{ORA, AbsoluteY, 3, 4},       // 0x19
	{UNOP, Implied, 1, 2},        // 0x1A
	{SLO, AbsoluteY, 3, 7},       // 0x1B
	{UNOP, AbsoluteX, 3, 4},      // 0x1C
	{ORA, AbsoluteX, 3, 4},       // 0x1D
	{ASL, AbsoluteX, 3, 7},       // 0x1E
	{SLO, AbsoluteX, 3, 7},       // 0x1F
	{JSR, Absolute, 3, 6},        // 0x20
	{AND, IndexedIndirect, 2, 6}, // 0x21
	{JAM, Implied, 1, 2},         // 0x22
	{RLA, IndexedIndirect, 2, 8}, // 0x23
	{BIT, ZeroPage, 2, 3},        // 0x24
	{AND, ZeroPage, 2, 3},        // 0x25
	{ROL, ZeroPage, 2, 5},        // 0x26
	{RLA, ZeroPage, 2, 5},        // 0x27
	{PLP, Implied, 1, 4},         // 0x28
	{AND, Immediate, 2, 2},       // 0x29
	{ROL, Accumulator, 1, 2},     // 0x2A
	{ANC, Immediate, 2, 2},       // 0x2B
	{BIT, Absolute, 3, 4},        // 0x2C
	{AND, Absolute, 3, 4},        // 0x2D
	{ROL, Absolute, 3, 6},        // 0x2E
	{RLA, Absolute, 3, 6},        // 0x2F
	{BMI, Relative, 2, 2},        // 0x30
	{AND, IndirectIndexed, 2, 5}, // 0x31
	{JAM, Implied, 1, 2},         // 0x32
	{RLA, IndirectIndexed, 2, 8}, // 0x33
	{UNOP, ZeroPageX, 2, 4},      // 0x34
	{AND, ZeroPageX, 2, 4},       // 0x35
	{ROL, ZeroPageX, 2, 6},       // 0x36
	{RLA, ZeroPageX, 2, 6},       // 0x37
	{SEC, Implied, 1, 2},         // 0x38
	{AND, AbsoluteY, 3, 4},       // 0x39
	{UNOP, Implied, 1, 2},        // 0x3A
	{RLA, AbsoluteY, 3, 7},       // 0x3B
	{UNOP, AbsoluteX, 3, 4},      // 0x3C
	{AND, AbsoluteX, 3, 4},       // 0x3D
	{ROL, AbsoluteX, 3, 7},       // 0x3E
	{RLA, AbsoluteX, 3, 7},       // 0x3F
	{RTI, Implied, 1, 6},         // 0x40
	{EOR, IndexedIndirect, 2, 6}, // 0x41
	{JAM, Implied, 1, 2},         // 0x42
	{SRE, IndexedIndirect, 2, 8}, // 0x43
	{UNOP, ZeroPage, 2, 3},       // 0x44
	{EOR, ZeroPage, 2, 3},        // 0x45
	{LSR, ZeroPage, 2, 5},        // 0x46
	{SRE, ZeroPage, 2, 5},        // 0x47
	{PHA, Implied, 1, 3},         // 0x48
	{EOR, Immediate, 2, 2},       // 0x49
	{LSR, Accumulator, 1, 2},     // 0x4A
	{ALR, Immediate, 2, 2},       // 0x4B
	{JMP, Absolute, 3, 3},        // 0x4C
	{EOR, Absolute, 3, 4},        // 0x4D
	{LSR, Absolute, 3, 6},        // 0x4E
	{SRE, Absolute, 3, 6},        // 0x4F
	{BVC, Relative, 2, 2},        // 0x50
	{EOR, IndirectIndexed, 2, 5}, // 0x51
	{JAM, Implied, 1, 2},         // 0x52
	{SRE, IndirectIndexed, 2, 8}, // 0x53
	{UNOP, ZeroPageX, 2, 4},      // 0x54
	{EOR, ZeroPageX, 2, 4},       // 0x55
	{LSR, ZeroPageX, 2, 6},       // 0x56
	{SRE, ZeroPageX, 2, 6},       // 0x57
	{CLI, Implied, 1, 2},         // 0x58
	{EOR, AbsoluteY, 3, 4},       // 0x59
	{UNOP, Implied, 1, 2},        // 0x5A
	{SRE, AbsoluteY, 3, 7},       // 0x5B
	{UNOP, AbsoluteX, 3, 4},      // 0x5C
	{EOR, AbsoluteX, 3, 4},       // 0x5D
	{LSR, AbsoluteX, 3, 7},       // 0x5E
	{SRE, AbsoluteX, 3, 7},       // 0x5F
	{RTS, Implied, 1, 6},         // 0x60
	{ADC, IndexedIndirect, 2, 6}, // 0x61
	{JAM, Implied, 1, 2},         // 0x62
	{RRA, IndexedIndirect, 2, 8}, // 0x63
	{UNOP, ZeroPage, 2, 3},       // 0x64
	{ADC, ZeroPage, 2, 3},        // 0x65
	{ROR, ZeroPage, 2, 5},        // 0x66
	{RRA, ZeroPage, 2, 5},        // 0x67
	{PLA, Implied, 1, 4},         // 0x68
	{ADC, Immediate, 2, 2},       // 0x69
	{ROR, Accumulator, 1, 2},     // 0x6A
	{ARR, Immediate, 2, 2},       // 0x6B
	{JMP, Indirect, 3, 5},        // 0x6C
	{ADC, Absolute, 3, 4},        // 0x6D
	{ROR, Absolute, 3, 6},        // 0x6E
	{RRA, Absolute, 3, 6},        // 0x6F
	{BVS, Relative, 2, 2},        // 0x70
	{ADC, IndirectIndexed, 2, 5}, // 0x71
	{JAM, Implied, 1, 2},         // 0x72
	{RRA, IndirectIndexed, 2, 8}, // 0x73
	{UNOP, ZeroPageX, 2, 4},      // 0x74
	{ADC, ZeroPageX, 2, 4},       // 0x75
	{ROR, ZeroPageX, 2, 6},       // 0x76
	{RRA, ZeroPageX, 2, 6},       // 0x77
	{SEI, Implied, 1, 2},         // 0x78
	{ADC, AbsoluteY, 3, 4},       // 0x79
	{UNOP, Implied, 1, 2},        // 0x7A
	{RRA, AbsoluteY, 3, 7},       // 0x7B
	{UNOP, AbsoluteX, 3, 4},      // 0x7C
	{ADC, AbsoluteX, 3, 4},       // 0x7D
	{ROR, AbsoluteX, 3, 7},       // 0x7E
	{RRA, AbsoluteX, 3, 7},       // 0x7F
	{UNOP, Immediate, 2, 2},      // 0x80
	{STA, IndexedIndirect, 2, 6}, // 0x81
	{UNOP, Immediate, 2, 2},      // 0x82
	{SAX, IndexedIndirect, 2, 6}, // 0x83
	{STY, ZeroPage, 2, 3},        // 0x84
	{STA, ZeroPage, 2, 3},        // 0x85
	{STX, ZeroPage, 2, 3},        // 0x86
	{SAX, ZeroPage, 2, 3},        // 0x87
	{DEY, Implied, 1, 2},         // 0x88
	{UNOP, Immediate, 2, 2},      // 0x89
	{TXA, Implied, 1, 2},         // 0x8A
	{XAA, Immediate, 2, 2},       // 0x8B
	{STY, Absolute, 3, 4},        // 0x8C
	{STA, Absolute, 3, 4},        // 0x8D
	{STX, Absolute, 3, 4},        // 0x8E
	{SAX, Absolute, 3, 4},        // 0x8F
	{BCC, Relative, 2, 2},        // 0x90
	{STA, IndirectIndexed, 2, 6}, // 0x91
	{JAM, Implied, 1, 2},         // 0x92
	{SHA, IndirectIndexed, 2, 6}, // 0x93
	{STY, ZeroPageX, 2, 4},       // 0x94
	{STA, ZeroPageX, 2, 4},       // 0x95
	{STX, ZeroPageY, 2, 4},       // 0x96
	{SAX, ZeroPageY, 2, 4},       // 0x97
	{TYA, Implied, 1, 2},         // 0x98
	{STA, AbsoluteY, 3, 5},       // 0x99
	{TXS, Implied, 1, 2},         // 0x9A
	{TAS, AbsoluteY, 3, 5},       // 0x9B
	{SHY, AbsoluteX, 3, 5},       // 0x9C
	{STA, AbsoluteX, 3, 5},       // 0x9D
	{SHX, AbsoluteY, 3, 5},       // 0x9E
	{SHA, AbsoluteY, 3, 5},       // 0x9F
	{LDY, Immediate, 2, 2},       // 0xA0
	{LDA, IndexedIndirect, 2, 6}, // 0xA1
	{LDX, Immediate, 2, 2},       // 0xA2
	{LAX, IndexedIndirect, 2, 6}, // 0xA3
	{LDY, ZeroPage, 2, 3},        // 0xA4
	{LDA, ZeroPage, 2, 3},        // 0xA5
	{LDX, ZeroPage, 2, 3},        // 0xA6
	{LAX, ZeroPage, 2, 3},        // 0xA7
	{TAY, Implied, 1, 2},         // 0xA8
	{LDA, Immediate, 2, 2},       // 0xA9
	{TAX, Implied, 1, 2},         // 0xAA
	{LXA, Immediate, 2, 2},       // 0xAB
	{LDY, Absolute, 3, 4},        // 0xAC
	{LDA, Absolute, 3, 4},        // 0xAD
	{LDX, Absolute, 3, 4},        // 0xAE
	{LAX, Absolute, 3, 4},        // 0xAF
	{BCS, Relative, 2, 2},        // 0xB0
	{LDA, IndirectIndexed, 2, 5}, // 0xB1
	{JAM, Implied, 1, 2},         // 0xB2
	{LAX, IndirectIndexed, 2, 5}, // 0xB3
	{LDY, ZeroPageX, 2, 4},       // 0xB4
	{LDA, ZeroPageX, 2, 4},       // 0xB5
	{LDX, ZeroPageY, 2, 4},       // 0xB6
	{LAX, ZeroPageY, 2, 4},       // 0xB7
	{CLV, Implied, 1, 2},         // 0xB8
	{LDA, AbsoluteY, 3, 4},       // 0xB9
	{TSX, Implied, 1, 2},         // 0xBA
	{LAS, AbsoluteY, 3, 4},       // 0xBB
	{LDY, AbsoluteX, 3, 4},       // 0xBC
	{LDA, AbsoluteX, 3, 4},       // 0xBD
	{LDX, AbsoluteY, 3, 4},       // 0xBE
	{LAX, AbsoluteY, 3, 4},       // 0xBF
	{CPY, Immediate, 2, 2},       // 0xC0
	{CMP, IndexedIndirect, 2, 6}, // 0xC1
	{UNOP, Immediate, 2, 2},      // 0xC2
	{DCP, IndexedIndirect, 2, 8}, // 0xC3
	{CPY, ZeroPage, 2, 3},        // 0xC4
	{CMP, ZeroPage, 2, 3},        // 0xC5
	{DEC, ZeroPage, 2, 5},        // 0xC6
	{DCP, ZeroPage, 2, 5},        // 0xC7
	{INY, Implied, 1, 2},         // 0xC8
	{CMP, Immediate, 2, 2},       // 0xC9
	{DEX, Implied, 1, 2},         // 0xCA
	{AXS, Immediate, 2, 2},       // 0xCB
	{CPY, Absolute, 3, 4},        // 0xCC
	{CMP, Absolute, 3, 4},        // 0xCD
	{DEC, Absolute, 3, 6},        // 0xCE
	{DCP, Absolute, 3, 6},        // 0xCF
	{BNE, Relative, 2, 2},        // 0xD0
	{CMP, IndirectIndexed, 2, 5}, // 0xD1
	{JAM, Implied, 1, 2},         // 0xD2
	{DCP, IndirectIndexed, 2, 8}, // 0xD3
	{UNOP, ZeroPageX, 2, 4},      // 0xD4
	{CMP, ZeroPageX, 2, 4},       // 0xD5
	{DEC, ZeroPageX, 2, 6},       // 0xD6
	{DCP, ZeroPageX, 2, 6},       // 0xD7
	{CLD, Implied, 1, 2},         // 0xD8
	{CMP, AbsoluteY, 3, 4},       // 0xD9
	{UNOP, Implied, 1, 2},        // 0xDA
	{DCP, AbsoluteY, 3, 7},       // 0xDB
	{UNOP, AbsoluteX, 3, 4},      // 0xDC
	{CMP, AbsoluteX, 3, 4},       // 0xDD
	{DEC, AbsoluteX, 3, 7},       // 0xDE
	{DCP, AbsoluteX, 3, 7},       // 0xDF
	{CPX, Immediate, 2, 2},       // 0xE0
	{SBC, IndexedIndirect, 2, 6}, // 0xE1
	{UNOP, Immediate, 2, 2},      // 0xE2
	{ISB, IndexedIndirect, 2, 8}, // 0xE3
	{CPX, ZeroPage, 2, 3},        // 0xE4
	{SBC, ZeroPage, 2, 3},        // 0xE5
	{INC, ZeroPage, 2, 5},        // 0xE6
	{ISB, ZeroPage, 2, 5},        // 0xE7
	{INX, Implied, 1, 2},         // 0xE8
	{SBC, Immediate, 2, 2},       // 0xE9
	{NOP, Implied, 1, 2},         // 0xEA
	{USBC, Immediate, 2, 2},      // 0xEB
	{CPX, Absolute, 3, 4},        // 0xEC
	{SBC, Absolute, 3, 4},        // 0xED
	{INC, Absolute, 3, 6},        // 0xEE
	{ISB, Absolute, 3, 6},        // 0xEF
	{BEQ, Relative, 2, 2},        // 0xF0
	{SBC, IndirectIndexed, 2, 5}, // 0xF1
	{JAM, Implied, 1, 2},         // 0xF2
	{ISB, IndirectIndexed, 2, 8}, // 0xF3
	{UNOP, ZeroPageX, 2, 4},      // 0xF4
	{SBC, ZeroPageX, 2, 4},       // 0xF5
	{INC, ZeroPageX, 2, 6},       // 0xF6
	{ISB, ZeroPageX, 2, 6},       // 0xF7
	{SED, Implied, 1, 2},         // 0xF8
	{SBC, AbsoluteY, 3, 4},       // 0xF9
	{UNOP, Implied, 1, 2},        // 0xFA
	{ISB, AbsoluteY, 3, 7},       // 0xFB
	{UNOP, AbsoluteX, 3, 4},      // 0xFC
	{SBC, AbsoluteX, 3, 4},       // 0xFD
	{INC, AbsoluteX, 3, 7},       // 0xFE
	{ISB, AbsoluteX, 3, 7},       // 0xFF
}
