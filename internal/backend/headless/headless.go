// Package headless provides an in-memory presenter and keypad without any
// user interface.
package headless

import (
	"sync"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
)

var (
	_ cpu.Presenter = (*Backend)(nil)
	_ cpu.Input     = (*Backend)(nil)
)

// Backend records the presented frames and holds the keypad state.
type Backend struct {
	mu sync.Mutex

	frame    []display.Row
	presents int
	clears   int
	keys     [cpu.NumKeys]bool
	closed   bool
}

// New returns a new headless backend with a blank screen.
func New() *Backend {
	return &Backend{
		frame: make([]display.Row, display.Height),
	}
}

// ClearScreen blanks the recorded frame.
func (b *Backend) ClearScreen() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.frame)
	b.clears++
}

// Present records a copy of the display rows.
func (b *Backend) Present(rows []display.Row) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame = append(b.frame[:0], rows...)
	b.presents++
}

// Frame returns a copy of the last presented display rows.
func (b *Backend) Frame() []display.Row {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame := make([]display.Row, len(b.frame))
	copy(frame, b.frame)
	return frame
}

// Pixel returns whether the pixel of the last presented frame is set.
func (b *Backend) Pixel(x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return display.Pixel(b.frame, x, y)
}

// Presents returns the number of presented frames.
func (b *Backend) Presents() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.presents
}

// Clears returns the number of screen clears.
func (b *Backend) Clears() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.clears
}

// Press marks the key as held down.
func (b *Backend) Press(key uint8) {
	b.setKey(key, true)
}

// Release marks the key as released.
func (b *Backend) Release(key uint8) {
	b.setKey(key, false)
}

func (b *Backend) setKey(key uint8, down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.keys[key&0xF] = down
}

// IsKeyDown returns whether the key is held down.
func (b *Backend) IsKeyDown(key uint8) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.keys[key&0xF]
}

// Close makes PollEvents request termination.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
}

// PollEvents returns false after Close was called.
func (b *Backend) PollEvents() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.closed
}

// String returns the last presented frame as text art.
func (b *Backend) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return display.Text(b.frame, '#', '.')
}
