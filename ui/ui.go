package ui

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/jyane/famicore/nes"
)

const frameRate = 60

func mainLoop(window *glfw.Window, console *nes.Console) error {
	framebuffer := make([]uint32, nes.ScreenWidth*nes.ScreenHeight)
	halted := false
	reset := false
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyR && action == glfw.Press {
			reset = true
		}
	})
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	for range ticker.C {
		if window.ShouldClose() {
			return nil
		}
		glfw.PollEvents()
		if reset {
			console.Reset()
			reset, halted = false, false
		}
		console.SetButtons(getButtons(window))
		if !halted {
			state, err := console.StepFrame(framebuffer)
			if err != nil {
				return err
			}
			if state == nes.Halted {
				glog.Infof("CPU halted at 0x%04x, press R to reset", console.CPU.PC())
				halted = true
			}
		}
		updateTexture(framebuffer)
		window.SwapBuffers()
	}
	return nil
}

// Start opens a window and runs the console at 60 frames per second until the
// window is closed or the console fails. It must run on the main thread.
func Start(console *nes.Console, width int, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	window, err := glfw.CreateWindow(width, height, "famicore", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl: %w", err)
	}
	glog.Infof("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))
	program, err := newProgram()
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)
	return mainLoop(window, console)
}
