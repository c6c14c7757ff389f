package headless

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestPresent(t *testing.T) {
	b := New()
	buf := display.New(false)
	buf.BlitSprite(0, 0, []byte{0x80})

	b.Present(buf.Rows())
	assert.Equal(t, 1, b.Presents())
	assert.True(t, b.Pixel(0, 0))
	assert.False(t, b.Pixel(1, 0))

	// the recorded frame is a copy
	buf.Clear()
	assert.True(t, b.Pixel(0, 0))

	frame := b.Frame()
	frame[0][0] = 0
	assert.True(t, b.Pixel(0, 0))

	b.ClearScreen()
	assert.Equal(t, 1, b.Clears())
	assert.False(t, b.Pixel(0, 0))
	assert.Len(t, b.Frame(), display.Height)
}

func TestKeys(t *testing.T) {
	b := New()
	assert.False(t, b.IsKeyDown(0xA))

	b.Press(0xA)
	assert.True(t, b.IsKeyDown(0xA))
	assert.True(t, b.IsKeyDown(0x1A))

	b.Release(0xA)
	assert.False(t, b.IsKeyDown(0xA))
}

func TestClose(t *testing.T) {
	b := New()
	assert.True(t, b.PollEvents())
	b.Close()
	assert.False(t, b.PollEvents())
}
