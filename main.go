package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/jyane/famicore/nes"
	"github.com/jyane/famicore/statsview"
	"github.com/jyane/famicore/ui"
	"github.com/jyane/famicore/ui/snapshot"
)

var (
	path       = flag.String("path", "./rom/sample1.nes", "path to NES ROM file")
	width      = flag.Int("width", nes.ScreenWidth*4, "window width")
	height     = flag.Int("height", nes.ScreenHeight*4, "window height")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run the interactive debugger instead of a window")
	headless   = flag.Bool("headless", false, "run without a window")
	frames     = flag.Int("frames", 60, "frames to run in headless mode")
	snapshotTo = flag.String("snapshot", "", "write the last headless frame to this PNG file")
	scale      = flag.Int("scale", 1, "snapshot scale factor")
	strict     = flag.Bool("strict", false, "fail on accesses to unmapped CPU addresses")
	mirrorPRG  = flag.Bool("mirror-prg", false, "mirror a 16KB program ROM at 0xC000")
	brk        = flag.Bool("brk", false, "execute opcode 0x00 as BRK instead of halting")
	stats      = flag.Bool("statsview", false, "serve runtime statistics over HTTP")
)

func init() {
	// GLFW and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func runHeadless(console *nes.Console) error {
	framebuffer := make([]uint32, nes.ScreenWidth*nes.ScreenHeight)
	for i := 0; i < *frames; i++ {
		state, err := console.StepFrame(framebuffer)
		if err != nil {
			return err
		}
		if state == nes.Halted {
			glog.Infof("Halted at 0x%04x after %d frames", console.CPU.PC(), i+1)
			break
		}
	}
	if *snapshotTo != "" {
		return snapshot.Save(*snapshotTo, framebuffer, *scale)
	}
	return nil
}

type stdio struct {
	io.Reader
	io.Writer
}

func runDebugger(console *nes.Console) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nes.NewDebugger(console, nes.NewLineReader(os.Stdin), os.Stdout).Run()
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	defer term.Restore(fd, oldState)
	t := term.NewTerminal(stdio{os.Stdin, os.Stdout}, "")
	fmt.Fprintln(t, "Debugger mode, 'q' to quit")
	return nes.NewDebugger(console, t, t).Run()
}

func run() error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *stats {
		statsview.Launch(os.Stderr)
	}
	buf, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *path, err)
	}
	config := nes.Config{
		MirrorPRG:    *mirrorPRG,
		BRKInterrupt: *brk,
	}
	if *strict {
		config.Policy = nes.Strict
	}
	console, err := nes.NewConsole(buf, config)
	if err != nil {
		return fmt.Errorf("failed to initiate Console: %w", err)
	}
	switch {
	case *debug:
		return runDebugger(console)
	case *headless:
		return runHeadless(console)
	}
	return ui.Start(console, *width, *height)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(); err != nil {
		if errors.Is(err, nes.ErrUnsupportedMapper) {
			glog.Error("Only NROM (mapper 0) cartridges are supported")
		}
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
}
