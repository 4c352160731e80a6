package nes

import "errors"

var (
	// ErrUnsupportedInstruction is returned when a decoded opcode has no executor.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrUnsupportedAddressingMode is returned when an addressing mode has no
	// effective address computation.
	ErrUnsupportedAddressingMode = errors.New("unsupported addressing mode")
	// ErrOutOfBounds is returned under the strict policy for accesses outside
	// every mapped region.
	ErrOutOfBounds = errors.New("out of bounds access")
	// ErrInvalidROM is returned for buffers which are not loadable iNES images.
	ErrInvalidROM = errors.New("invalid iNES image")
	// ErrUnsupportedMapper is returned for cartridges which need bank switching.
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	// ErrQuit is returned by the debugger when the user asks to quit.
	ErrQuit = errors.New("quit")
)
