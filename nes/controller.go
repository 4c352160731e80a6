package nes

// Reference:
//   http://hp.vector.co.jp/authors/VA042397/nes/joypad.html (In Japanese)
//   https://www.nesdev.org/wiki/Controller_reading
//   https://www.nesdev.org/wiki/Standard_controller

// Buttons is the set of pressed buttons, in the order the pad shifts them out.
// bit    7     6    5  4     3      2 1 0
// button Right Left Down Up Start Select B A
type Buttons byte

const (
	ButtonA Buttons = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a standard pad wired to 0x4016.
type Controller struct {
	buttons Buttons
	shift   Buttons
	index   byte
	strobe  bool
}

func NewController() *Controller {
	return &Controller{}
}

// Set replaces the pressed buttons.
func (c *Controller) Set(buttons Buttons) {
	c.buttons = buttons
}

// Buttons returns the pressed buttons.
func (c *Controller) Buttons() Buttons {
	return c.buttons
}

// read shifts out one button. After 8 reads an official pad returns 1.
func (c *Controller) read() byte {
	if c.strobe {
		return byte(c.buttons & ButtonA)
	}
	if c.index >= 8 {
		return 1
	}
	ret := byte(c.shift>>c.index) & 1
	c.index++
	return ret
}

// write writes strobe.
// https://bugzmanov.github.io/nes_ebook/chapter_7.html
// - strobe bit on - controller reports only status of the button A on every read
// - strobe bit off - controller cycles through all buttons
func (c *Controller) write(data byte) {
	c.strobe = data&1 == 1
	if c.strobe {
		c.index = 0
	}
	c.shift = c.buttons
}
