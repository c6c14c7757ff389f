// Package terminal renders the display with ANSI escape sequences and reads
// the keypad from a raw mode terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/backend"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"golang.org/x/term"
)

var (
	_ cpu.Presenter = (*Terminal)(nil)
	_ cpu.Input     = (*Terminal)(nil)
	_ cpu.KeyWaiter = (*Terminal)(nil)
)

// ErrClosed is returned by WaitForKey after the user quit.
var ErrClosed = errors.New("terminal closed")

// DefaultHoldTime is how long a key counts as held down after its last
// keystroke. Terminals do not report key releases.
const DefaultHoldTime = 150 * time.Millisecond

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03

	escClear      = "\x1b[2J"
	escHome       = "\x1b[H"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
)

// Terminal is a presenter and keypad operating on a terminal.
type Terminal struct {
	in       io.Reader
	out      io.Writer
	fd       int
	oldState *term.State
	holdTime time.Duration
	now      func() time.Time

	mu      sync.Mutex
	frame   []display.Row
	dirty   bool
	release [cpu.NumKeys]time.Time
	presses chan uint8
	quit    chan struct{}
	closed  bool
}

// New returns a terminal backend reading keys from in and writing frames to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:       in,
		out:      out,
		fd:       -1,
		holdTime: DefaultHoldTime,
		now:      time.Now,
		frame:    make([]display.Row, display.Height),
		presses:  make(chan uint8, cpu.NumKeys),
		quit:     make(chan struct{}),
	}
}

// NewStdio returns a terminal backend operating on stdin and stdout.
func NewStdio() *Terminal {
	t := New(os.Stdin, os.Stdout)
	t.fd = int(os.Stdin.Fd())
	return t
}

// Start switches the terminal to raw mode and starts reading keys.
func (t *Terminal) Start() error {
	if t.fd >= 0 && term.IsTerminal(t.fd) {
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting raw mode: %w", err)
		}
		t.oldState = oldState
	}

	if _, err := io.WriteString(t.out, escHideCursor+escClear); err != nil {
		t.restore()
		return fmt.Errorf("writing to terminal: %w", err)
	}

	go t.readKeys()
	return nil
}

// Stop restores the terminal state.
func (t *Terminal) Stop() {
	_, _ = io.WriteString(t.out, escShowCursor+"\r\n")
	t.restore()
}

func (t *Terminal) restore() {
	if t.oldState == nil {
		return
	}
	_ = term.Restore(t.fd, t.oldState)
	t.oldState = nil
}

// readKeys processes keystrokes until the input ends or the user quits.
func (t *Terminal) readKeys() {
	reader := bufio.NewReader(t.in)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		if !t.handleByte(b) {
			return
		}
	}
}

// handleByte processes a single keystroke and returns false when the user quit.
func (t *Terminal) handleByte(b byte) bool {
	if b == keyEscape || b == keyCtrlC {
		t.Close()
		return false
	}

	key, ok := backend.HexKey(rune(b))
	if !ok {
		return true
	}

	t.mu.Lock()
	t.release[key] = t.now().Add(t.holdTime)
	t.mu.Unlock()

	select {
	case t.presses <- key:
	default:
	}
	return true
}

// Close ends the session, PollEvents returns false afterwards.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	close(t.quit)
}

// ClearScreen blanks the frame.
func (t *Terminal) ClearScreen() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.frame)
	t.dirty = true
}

// Present stores the display rows, they are rendered by the next PollEvents
// or WaitForKey.
func (t *Terminal) Present(rows []display.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frame = append(t.frame[:0], rows...)
	t.dirty = true
}

// IsKeyDown returns whether the key was typed within the hold time.
func (t *Terminal) IsKeyDown(key uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.now().Before(t.release[key&0xF])
}

// PollEvents renders a changed frame and returns false after the user quit.
func (t *Terminal) PollEvents() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	return t.render() == nil
}

// render writes the frame if it changed since the last render.
// The caller must hold the lock.
func (t *Terminal) render() error {
	if !t.dirty {
		return nil
	}
	t.dirty = false
	if _, err := io.WriteString(t.out, escHome+Render(t.frame)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// WaitForKey renders the pending frame and blocks until a key is typed.
func (t *Terminal) WaitForKey(ctx context.Context) (uint8, error) {
	// keystrokes typed before the wait started do not count
	for drained := false; !drained; {
		select {
		case <-t.presses:
		default:
			drained = true
		}
	}

	t.mu.Lock()
	err := t.render()
	t.mu.Unlock()
	if err != nil {
		return 0, err
	}

	select {
	case key := <-t.presses:
		return key, nil
	case <-t.quit:
		return 0, ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Render returns the display rows as terminal lines, each character
// showing two vertically adjacent pixels.
func Render(rows []display.Row) string {
	var sb strings.Builder
	for y := 0; y < len(rows); y += 2 {
		for x := range display.Width {
			top := display.Pixel(rows, x, y)
			bottom := y+1 < len(rows) && display.Pixel(rows, x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
