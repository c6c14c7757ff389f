//go:build headless

package window

import (
	"context"
	"errors"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnavailable is returned by Run in builds without window support.
var ErrUnavailable = errors.New("window backend is not available in headless builds")

// Window is a placeholder for builds without window support.
type Window struct{}

// New returns a placeholder window.
func New(_ *log.Logger, _ int) *Window {
	return &Window{}
}

// Run returns ErrUnavailable.
func (w *Window) Run(_ context.Context, _ *pipeline.Pipeline) error {
	return ErrUnavailable
}

func (w *Window) ClearScreen()            {}
func (w *Window) Present(_ []display.Row) {}
func (w *Window) IsKeyDown(_ uint8) bool  { return false }
func (w *Window) PollEvents() bool        { return false }
func (w *Window) Close()                  {}
func (w *Window) Frame() []display.Row    { return make([]display.Row, display.Height) }
