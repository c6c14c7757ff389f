// Package display implements the packed monochrome CHIP-8 display buffer.
package display

import "strings"

const (
	// Width is the number of visible pixel columns.
	Width = 64
	// Height is the number of visible pixel rows.
	Height = 32
	// RowBytes is the number of bytes of a packed row, including one margin byte
	// that absorbs sprite pixels drawn past the right edge.
	RowBytes = Width/8 + 1
)

// Row is a packed display row. The most significant bit of byte 0 is column 0.
// Byte RowBytes-1 is the margin and is never visible.
type Row [RowBytes]byte

// Buffer is the CHIP-8 display bitmap.
//
// Sprite start coordinates wrap around the screen edges. Sprite pixels that
// extend past the right or bottom edge are clipped, unless wrapping is enabled
// in which case they reappear on the opposite edge.
type Buffer struct {
	rows [Height]Row
	wrap bool
}

// New returns a cleared display buffer.
func New(wrap bool) *Buffer {
	return &Buffer{wrap: wrap}
}

// Clear turns off all pixels.
func (b *Buffer) Clear() {
	b.rows = [Height]Row{}
}

// BlitSprite XORs the sprite onto the display at the given position.
// Each sprite byte is one 8 pixel wide row. It returns true if any pixel
// that was set before got turned off.
func (b *Buffer) BlitSprite(x, y uint8, sprite []byte) bool {
	x %= Width
	y %= Height
	col := x / 8
	shift := 8 - x%8

	collision := false
	for s, line := range sprite {
		row := int(y) + s
		if row >= Height {
			if !b.wrap {
				break
			}
			row %= Height
		}

		r := &b.rows[row]
		old := uint16(r[col])<<8 | uint16(r[col+1])
		bits := uint16(line) << shift
		updated := old ^ bits
		if updated&old != old {
			collision = true
		}
		r[col] = byte(updated >> 8)
		r[col+1] = byte(updated)

		if b.resolveMargin(r) {
			collision = true
		}
	}
	return collision
}

// resolveMargin empties the margin byte of the row. In wrap mode the margin
// pixels are XORed onto the first columns of the row and the collision state
// of that fold is returned.
func (b *Buffer) resolveMargin(r *Row) bool {
	spill := r[RowBytes-1]
	r[RowBytes-1] = 0
	if !b.wrap || spill == 0 {
		return false
	}
	old := r[0]
	r[0] ^= spill
	return old&spill != 0
}

// Rows returns the packed rows of the buffer. The returned slice aliases
// the buffer and must be treated as read only.
func (b *Buffer) Rows() []Row {
	return b.rows[:]
}

// Pixel returns whether the visible pixel at the given position is set.
func (b *Buffer) Pixel(x, y int) bool {
	return Pixel(b.rows[:], x, y)
}

// String renders the visible display as text, one line per row.
func (b *Buffer) String() string {
	return Text(b.rows[:], '#', '.')
}

// Pixel returns whether the visible pixel at the given position of the
// packed rows is set. Positions outside of the visible area are reported as
// not set, which masks off the margin.
func Pixel(rows []Row, x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= len(rows) || y >= Height {
		return false
	}
	return rows[y][x/8]&(0x80>>(x%8)) != 0
}

// Text renders the visible area of the packed rows using the given runes
// for set and unset pixels.
func Text(rows []Row, on, off rune) string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range rows {
		for x := 0; x < Width; x++ {
			if Pixel(rows, x, y) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
