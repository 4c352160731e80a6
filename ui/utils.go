package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyane/famicore/nes"
)

// keyMap binds the keyboard to the pad, WASD for directions, J for primary.
var keyMap = []struct {
	key    glfw.Key
	button nes.Buttons
}{
	{glfw.KeyD, nes.ButtonRight},
	{glfw.KeyA, nes.ButtonLeft},
	{glfw.KeyS, nes.ButtonDown},
	{glfw.KeyW, nes.ButtonUp},
	{glfw.KeyG, nes.ButtonStart},
	{glfw.KeyF, nes.ButtonSelect},
	{glfw.KeyH, nes.ButtonB},
	{glfw.KeyJ, nes.ButtonA},
}

// getButtons gets the state of keyboard.
func getButtons(window *glfw.Window) nes.Buttons {
	var buttons nes.Buttons
	for _, k := range keyMap {
		if window.GetKey(k.key) == glfw.Press {
			buttons |= k.button
		}
	}
	return buttons
}
