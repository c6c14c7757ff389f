package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBlitSpriteXOR(t *testing.T) {
	b := New(false)
	sprite := []byte{0xFF}

	collision := b.BlitSprite(0, 0, sprite)
	assert.False(t, collision)
	for x := 0; x < 8; x++ {
		assert.True(t, b.Pixel(x, 0))
	}
	assert.False(t, b.Pixel(8, 0))
	assert.False(t, b.Pixel(0, 1))

	collision = b.BlitSprite(0, 0, sprite)
	assert.True(t, collision)
	for x := 0; x < 8; x++ {
		assert.False(t, b.Pixel(x, 0))
	}
}

func TestBlitSpriteUnaligned(t *testing.T) {
	b := New(false)

	collision := b.BlitSprite(3, 2, []byte{0xFF, 0x81})
	assert.False(t, collision)

	rows := b.Rows()
	assert.Equal(t, byte(0x1F), rows[2][0])
	assert.Equal(t, byte(0xE0), rows[2][1])
	assert.Equal(t, byte(0x10), rows[3][0])
	assert.Equal(t, byte(0x20), rows[3][1])

	// overlapping only the second sprite row
	collision = b.BlitSprite(10, 3, []byte{0x80})
	assert.True(t, collision)
	assert.False(t, b.Pixel(10, 3))
	assert.True(t, b.Pixel(3, 3))
}

func TestBlitSpriteNoCollisionOnDisjointPixels(t *testing.T) {
	b := New(false)

	assert.False(t, b.BlitSprite(0, 0, []byte{0xF0}))
	assert.False(t, b.BlitSprite(0, 0, []byte{0x0F}))
	assert.Equal(t, byte(0xFF), b.Rows()[0][0])
}

func TestBlitSpriteStartWraps(t *testing.T) {
	b := New(false)

	b.BlitSprite(Width+1, Height+2, []byte{0x80})
	assert.True(t, b.Pixel(1, 2))
}

func TestBlitSpriteClipping(t *testing.T) {
	b := New(false)

	collision := b.BlitSprite(60, 30, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	assert.False(t, collision)

	for x := 60; x < Width; x++ {
		assert.True(t, b.Pixel(x, 30))
		assert.True(t, b.Pixel(x, 31))
	}
	for x := 0; x < 4; x++ {
		assert.False(t, b.Pixel(x, 30))
		assert.False(t, b.Pixel(x, 0))
	}
	for _, row := range b.Rows() {
		assert.Equal(t, byte(0), row[RowBytes-1])
	}

	// clipped pixels leave nothing behind to collide with
	collision = b.BlitSprite(0, 0, []byte{0xFF})
	assert.False(t, collision)
}

func TestBlitSpriteWrapMode(t *testing.T) {
	b := New(true)

	collision := b.BlitSprite(60, 31, []byte{0xFF, 0xFF})
	assert.False(t, collision)

	for x := 60; x < Width; x++ {
		assert.True(t, b.Pixel(x, 31))
		assert.True(t, b.Pixel(x, 0))
	}
	for x := 0; x < 4; x++ {
		assert.True(t, b.Pixel(x, 31))
		assert.True(t, b.Pixel(x, 0))
	}
	assert.False(t, b.Pixel(4, 31))

	// collision detected on pixels folded to the left edge
	collision = b.BlitSprite(0, 0, []byte{0x80})
	assert.True(t, collision)
	collision = b.BlitSprite(62, 5, []byte{0x0F})
	assert.False(t, collision)
	collision = b.BlitSprite(62, 5, []byte{0x01})
	assert.True(t, collision)
}

func TestClear(t *testing.T) {
	b := New(false)
	b.BlitSprite(10, 10, []byte{0xAA, 0x55})

	b.Clear()
	for _, row := range b.Rows() {
		assert.Equal(t, Row{}, row)
	}
}

func TestPixelOutOfRange(t *testing.T) {
	b := New(false)
	b.BlitSprite(0, 0, []byte{0xFF})

	assert.False(t, b.Pixel(-1, 0))
	assert.False(t, b.Pixel(Width, 0))
	assert.False(t, b.Pixel(0, Height))
	assert.False(t, b.Pixel(0, -1))
}

func TestString(t *testing.T) {
	b := New(false)
	b.BlitSprite(0, 0, []byte{0xC0})

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "##"+strings.Repeat(".", Width-2), lines[0])
	assert.Equal(t, strings.Repeat(".", Width), lines[1])
}
