package nes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const prompt = ">> "

// LineReader supplies debugger commands one line at a time.
type LineReader interface {
	ReadLine() (string, error)
}

// prompter is a LineReader which draws the prompt itself, such as a raw mode
// terminal.
type prompter interface {
	SetPrompt(prompt string)
}

type bufferedLineReader struct {
	r *bufio.Reader
}

// NewLineReader reads newline terminated commands from r.
func NewLineReader(r io.Reader) LineReader {
	return &bufferedLineReader{bufio.NewReader(r)}
}

func (b *bufferedLineReader) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// Debugger drives a console from text commands.
// commands:
//   s, step [n]:
//     execute n CPU instructions, 1 by default.
//   f, frame [n]:
//     execute n frames, 1 by default.
//   p, print [cpu|ppu|stack|oam]:
//     print.
//   d, disasm [0xADDR] [n]:
//     disassemble n instructions from the address, PC by default.
//   br, breakpoint 0xADDR:
//     set a break point.
//   r, reset:
//     reset.
//   q, quit:
//     quit.
type Debugger struct {
	console     *Console
	in          LineReader
	out         io.Writer
	framebuffer []uint32
	breakpoints map[uint16]bool
	steps       uint64
}

func NewDebugger(console *Console, in LineReader, out io.Writer) *Debugger {
	return &Debugger{
		console:     console,
		in:          in,
		out:         out,
		framebuffer: make([]uint32, ScreenWidth*ScreenHeight),
		breakpoints: map[uint16]bool{},
	}
}

// Framebuffer returns the frame the debugger renders into.
func (d *Debugger) Framebuffer() []uint32 {
	return d.framebuffer
}

// Run reads and executes commands until quit or the end of input. Quitting
// is not an error for Run.
func (d *Debugger) Run() error {
	p, ok := d.in.(prompter)
	if ok {
		p.SetPrompt(prompt)
	}
	for {
		if !ok {
			fmt.Fprint(d.out, prompt)
		}
		line, err := d.in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := d.Execute(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
	}
}

// Execute runs one command. It returns ErrQuit for the quit command.
func (d *Debugger) Execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "s", "step":
		n, err := count(args)
		if err != nil {
			return err
		}
		return d.step(n)
	case "f", "frame":
		n, err := count(args)
		if err != nil {
			return err
		}
		return d.frame(n)
	case "p", "print":
		return d.print(args)
	case "d", "disasm":
		return d.disassemble(args)
	case "br", "breakpoint":
		if len(args) < 2 {
			return fmt.Errorf("usage: br 0xADDR")
		}
		address, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		d.breakpoints[address] = true
		fmt.Fprintf(d.out, "Breakpoint at 0x%04x\n", address)
	case "r", "reset":
		d.console.Reset()
		d.steps = 0
		d.basePrint()
	case "q", "quit":
		fmt.Fprintln(d.out, "Quitting.")
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func count(args []string) (int, error) {
	if len(args) < 2 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[1])
	}
	return n, nil
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

// tick runs one instruction, with its PPU ticks, and reports whether
// execution should stop.
func (d *Debugger) tick() (bool, error) {
	state, err := d.console.Tick(d.framebuffer)
	d.steps++
	if err != nil {
		return true, err
	}
	if state == Halted {
		fmt.Fprintf(d.out, "Halted at: 0x%04x\n", d.console.CPU.PC())
		return true, nil
	}
	if d.breakpoints[d.console.CPU.PC()] {
		fmt.Fprintf(d.out, "Break at: 0x%04x\n", d.console.CPU.PC())
		return true, nil
	}
	return false, nil
}

func (d *Debugger) step(n int) error {
	defer d.basePrint()
	for i := 0; i < n; i++ {
		stop, err := d.tick()
		if err != nil || stop {
			return err
		}
	}
	return nil
}

func (d *Debugger) frame(n int) error {
	defer d.basePrint()
	target := d.console.PPU.Frame() + uint64(n)
	for d.console.PPU.Frame() < target {
		stop, err := d.tick()
		if err != nil || stop {
			return err
		}
	}
	return nil
}

func (d *Debugger) basePrint() {
	cpu, ppu := d.console.CPU, d.console.PPU
	fmt.Fprintln(d.out, "--------------------------------------------------")
	fmt.Fprintf(d.out, "Executed steps: %d, CPU cycles: %d\n", d.steps, cpu.Cycles())
	fmt.Fprintf(d.out, "Rendered frame: %d\n", ppu.Frame())
	fmt.Fprintf(d.out, "Last: %s\n", cpu.lastExecution)
	fmt.Fprintf(d.out, "CPU: %s, %s\n", cpu, cpu.State())
	fmt.Fprintf(d.out, "PPU: dot=%d, scanline=%d, v=0x%04x\n", ppu.dot, ppu.scanline, ppu.v)
}

func (d *Debugger) print(args []string) error {
	if len(args) < 2 {
		d.basePrint()
		return nil
	}
	cpu, ppu := d.console.CPU, d.console.PPU
	switch args[1] {
	case "c", "cpu":
		fmt.Fprintf(d.out, "%s\n", cpu)
	case "p", "ppu":
		fmt.Fprintf(d.out, "dot=%d, scanline=%d, frame=%d, ctrl=0x%02x, mask=0x%02x, status=0x%02x, oamaddr=0x%02x, v=0x%04x, w=%t, scroll=(%d,%d)\n",
			ppu.dot, ppu.scanline, ppu.frame, byte(ppu.ctrl), byte(ppu.mask), byte(ppu.status),
			ppu.oamAddress, ppu.v, ppu.w, ppu.scrollX, ppu.scrollY)
	case "s", "stack":
		d.printStack()
	case "o", "oam":
		d.printOAM()
	default:
		return fmt.Errorf("unknown print target %q", args[1])
	}
	return nil
}

func (d *Debugger) printStack() {
	for i := 0; i < 256; i++ {
		address := stackBase | uint16(i)
		data, _ := d.console.Bus.Read(address)
		fmt.Fprintf(d.out, "0x%04x: 0x%02x", address, data)
		if byte(i) == d.console.CPU.s {
			fmt.Fprint(d.out, " <- S")
		}
		if i%8 == 7 {
			fmt.Fprintln(d.out)
		} else {
			fmt.Fprint(d.out, ", ")
		}
	}
}

func (d *Debugger) printOAM() {
	for i := 0; i < oamSize/4; i++ {
		s := d.console.PPU.sprite(i)
		if s.y == 0 {
			continue
		}
		fmt.Fprintf(d.out, "sprite %2d: x=%3d, y=%3d, tile=0x%02x, attributes=0x%02x\n",
			s.index, s.x, s.y, s.tile, byte(s.attributes))
	}
}

func (d *Debugger) disassemble(args []string) error {
	address := d.console.CPU.PC()
	n := 8
	if len(args) > 1 {
		a, err := parseAddress(args[1])
		if err != nil {
			return err
		}
		address = a
	}
	if len(args) > 2 {
		c, err := count(args[1:])
		if err != nil {
			return err
		}
		n = c
	}
	for i := 0; i < n; i++ {
		text, size := d.console.CPU.Disassemble(address)
		fmt.Fprintf(d.out, "0x%04x: %s\n", address, text)
		address += size
	}
	return nil
}
