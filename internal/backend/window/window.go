//go:build !headless

package window

import (
	"context"
	"errors"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

var (
	_ cpu.Presenter = (*Window)(nil)
	_ cpu.Input     = (*Window)(nil)
)

// keyMap maps the keypad keys to keyboard keys.
var keyMap = [cpu.NumKeys]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
	ebiten.KeyDigit8, ebiten.KeyDigit9, ebiten.KeyA, ebiten.KeyB,
	ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
}

// Window is an ebiten game presenting the display and driving the pipeline
// once per frame.
type Window struct {
	logger *log.Logger
	scale  int

	ctx      context.Context
	pipeline *pipeline.Pipeline
	err      error

	mu     sync.Mutex
	frame  []display.Row
	keys   [cpu.NumKeys]bool
	closed bool

	paused     bool
	showStatus bool
	screen     *ebiten.Image
	pixels     []byte

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New returns a new window with the given scale factor.
func New(logger *log.Logger, scale int) *Window {
	return &Window{
		logger:     logger,
		scale:      scale,
		frame:      make([]display.Row, display.Height),
		pixels:     make([]byte, display.Width*display.Height*4),
		showStatus: true,
	}
}

// Run opens the window and processes one pipeline frame per tick until the
// window is closed, the context is canceled or the pipeline stops.
func (w *Window) Run(ctx context.Context, p *pipeline.Pipeline) error {
	w.ctx = ctx
	w.pipeline = p

	ebiten.SetWindowSize(display.Width*w.scale, display.Height*w.scale+StatusHeight)
	ebiten.SetWindowTitle("chip8vm")
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(pipeline.FrameRate)

	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	return w.err
}

// Update processes keyboard input and runs one frame of the pipeline.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || w.ctx.Err() != nil {
		w.Close()
		return ebiten.Termination
	}

	w.mu.Lock()
	for key, kbKey := range keyMap {
		w.keys[key] = ebiten.IsKeyPressed(kbKey)
	}
	w.mu.Unlock()

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.showStatus = !w.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		w.copyScreen()
	}

	if w.paused {
		return nil
	}
	if err := w.pipeline.Frame(w.ctx); err != nil {
		if !errors.Is(err, pipeline.ErrCycleLimit) && w.ctx.Err() == nil {
			w.err = err
		}
		w.Close()
		return ebiten.Termination
	}
	return nil
}

// copyScreen copies the display as text art to the clipboard.
func (w *Window) copyScreen() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.logger.Warn("Clipboard is not available")
		return
	}

	w.mu.Lock()
	art := display.Text(w.frame, '#', '.')
	w.mu.Unlock()

	clipboard.Write(clipboard.FmtText, []byte(art))
	w.logger.Info("Copied screen to clipboard")
}

// Draw renders the display scaled to the window and the status line.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.screen == nil {
		w.screen = ebiten.NewImage(display.Width, display.Height)
	}

	w.mu.Lock()
	fillPixels(w.pixels, w.frame)
	w.mu.Unlock()
	w.screen.WritePixels(w.pixels)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.screen, opts)

	if w.showStatus {
		w.drawStatus(screen)
	}
}

func (w *Window) drawStatus(screen *ebiten.Image) {
	c := w.pipeline.CPU()
	_, waiting := c.WaitingForKey()
	s := status{
		cycles:  w.pipeline.Cycles(),
		paused:  w.paused,
		waiting: waiting,
		sound:   c.ST > 0,
	}
	baseline := display.Height*w.scale + StatusHeight - 4
	text.Draw(screen, s.String(), basicfont.Face7x13, 4, baseline, color.White)
}

// Layout returns the fixed logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width * w.scale, display.Height*w.scale + StatusHeight
}

// ClearScreen blanks the frame.
func (w *Window) ClearScreen() {
	w.mu.Lock()
	defer w.mu.Unlock()

	clear(w.frame)
}

// Present stores the display rows for the next Draw.
func (w *Window) Present(rows []display.Row) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.frame = append(w.frame[:0], rows...)
}

// IsKeyDown returns whether the keyboard key mapped to the keypad key is pressed.
func (w *Window) IsKeyDown(key uint8) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.keys[key&0xF]
}

// PollEvents returns false after the window was closed. Keyboard events are
// processed by Update.
func (w *Window) PollEvents() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return !w.closed
}

// Close marks the window as closed.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
}

// Frame returns a copy of the presented display rows.
func (w *Window) Frame() []display.Row {
	w.mu.Lock()
	defer w.mu.Unlock()

	frame := make([]display.Row, len(w.frame))
	copy(frame, w.frame)
	return frame
}
