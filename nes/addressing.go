package nes

import "fmt"

// resolve computes the effective address of the operand of the instruction at
// address. Immediate operands resolve to the byte after the opcode, so every
// executor reads its operand through the bus the same way. Implied and
// accumulator modes have no operand and resolve to 0.
// Reference: https://www.nesdev.org/wiki/CPU_addressing_modes
func (c *CPU) resolve(mode AddressingMode, address uint16) (uint16, error) {
	switch mode {
	case Implied, Accumulator:
		return 0, nil
	case Immediate:
		return address + 1, nil
	case ZeroPage:
		data, err := c.bus.Read(address + 1)
		if err != nil {
			return 0, err
		}
		return uint16(data), nil
	case ZeroPageX:
		data, err := c.bus.Read(address + 1)
		if err != nil {
			return 0, err
		}
		// Stays on page zero: $FF,X with X=2 is $01.
		return uint16(data + c.x), nil
	case ZeroPageY:
		data, err := c.bus.Read(address + 1)
		if err != nil {
			return 0, err
		}
		return uint16(data + c.y), nil
	case Absolute:
		return c.bus.Read16(address + 1)
	case AbsoluteX:
		data, err := c.bus.Read16(address + 1)
		if err != nil {
			return 0, err
		}
		return data + uint16(c.x), nil
	case AbsoluteY:
		data, err := c.bus.Read16(address + 1)
		if err != nil {
			return 0, err
		}
		return data + uint16(c.y), nil
	case Indirect:
		p, err := c.bus.Read16(address + 1)
		if err != nil {
			return 0, err
		}
		return c.bus.read16Wrap(p)
	case Relative:
		data, err := c.bus.Read(address + 1)
		if err != nil {
			return 0, err
		}
		// Relative will look up a signed value from the address of the next
		// instruction, 2 bytes after the branch.
		return address + 2 + uint16(int8(data)), nil
	case IndexedIndirect, IndirectIndexed:
		// TODO(jyane): resolve (zp,X) and (zp),Y with the zero page pointer wrap.
		return 0, fmt.Errorf("%w: %s at PC=0x%04x", ErrUnsupportedAddressingMode, mode, address)
	}
	return 0, fmt.Errorf("%w: %s at PC=0x%04x", ErrUnsupportedAddressingMode, mode, address)
}
