// Package window shows the display in a desktop window and reads the keypad
// from the keyboard.
package window

import (
	"fmt"
	"image/color"

	"github.com/retroenv/chip8vm/internal/display"
)

// StatusHeight is the height in pixels of the status line below the display.
const StatusHeight = 16

var (
	colorOn  = color.RGBA{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF}
	colorOff = color.RGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xFF}
)

// fillPixels converts the packed display rows to RGBA pixels of the visible area.
func fillPixels(dst []byte, rows []display.Row) {
	for y := range display.Height {
		for x := range display.Width {
			c := colorOff
			if display.Pixel(rows, x, y) {
				c = colorOn
			}
			offset := (y*display.Width + x) * 4
			dst[offset] = c.R
			dst[offset+1] = c.G
			dst[offset+2] = c.B
			dst[offset+3] = c.A
		}
	}
}

// status describes the state shown in the status line.
type status struct {
	cycles  uint64
	paused  bool
	waiting bool
	sound   bool
}

func (s status) String() string {
	state := "RUN"
	switch {
	case s.paused:
		state = "PAUSE"
	case s.waiting:
		state = "KEY?"
	}
	text := fmt.Sprintf("%-5s cycles %d", state, s.cycles)
	if s.sound {
		text += " BEEP"
	}
	return text
}
