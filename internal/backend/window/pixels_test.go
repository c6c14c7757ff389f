package window

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestFillPixels(t *testing.T) {
	buf := display.New(false)
	buf.BlitSprite(1, 0, []byte{0x80})

	pixels := make([]byte, display.Width*display.Height*4)
	fillPixels(pixels, buf.Rows())

	assert.Equal(t, []byte{colorOff.R, colorOff.G, colorOff.B, colorOff.A}, pixels[0:4])
	assert.Equal(t, []byte{colorOn.R, colorOn.G, colorOn.B, colorOn.A}, pixels[4:8])
	last := len(pixels) - 4
	assert.Equal(t, colorOff.R, pixels[last])
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   status
		expected string
	}{
		{"running", status{cycles: 42}, "RUN   cycles 42"},
		{"paused", status{cycles: 1, paused: true, waiting: true}, "PAUSE cycles 1"},
		{"waiting for key", status{waiting: true}, "KEY?  cycles 0"},
		{"sound", status{cycles: 7, sound: true}, "RUN   cycles 7 BEEP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}
