package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-backend", "headless", "pong.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.BackendHeadless, opts.Backend)
}

//nolint:funlen // test functions can be long
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, opts options.Program)
		wantErr string
	}{
		{
			name: "default flags",
			args: []string{"test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "test.ch8", opts.Input)
				assert.Equal(t, options.BackendWindow, opts.Backend)
				assert.Equal(t, 10, opts.Scale)
				assert.Equal(t, pipeline.DefaultConfig(), opts.Pipeline())
			},
		},
		{
			name: "emulation flags",
			args: []string{"-stack", "32", "-unknown", "SKIP", "-wrap", "-timer-divider", "0",
				"-clock", "0", "-cycles", "500", "-trace", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				cfg := opts.Pipeline()
				assert.Equal(t, 32, cfg.StackSize)
				assert.Equal(t, pipeline.UnknownOpcodeSkip, cfg.UnknownOpcode)
				assert.True(t, cfg.Wrap)
				assert.Equal(t, 0, cfg.TimerDivider)
				assert.Equal(t, 0, cfg.ClockHz)
				assert.Equal(t, uint64(500), cfg.MaxCycles)
				assert.True(t, cfg.Trace)
			},
		},
		{
			name: "input flag",
			args: []string{"-i", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "game.ch8", opts.Input)
			},
		},
		{
			name: "script with headless backend",
			args: []string{"-backend", "headless", "-script", "test.lua", "-seed", "7", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "test.lua", opts.Script)
				assert.Equal(t, uint64(7), opts.Seed)
			},
		},
		{
			name:    "unsupported backend",
			args:    []string{"-backend", "sdl", "test.ch8"},
			wantErr: "unsupported backend: sdl",
		},
		{
			name:    "invalid stack size",
			args:    []string{"-stack", "24", "test.ch8"},
			wantErr: "stack size 24",
		},
		{
			name:    "invalid policy",
			args:    []string{"-unknown", "ignore", "test.ch8"},
			wantErr: "policy 'ignore'",
		},
		{
			name:    "invalid scale",
			args:    []string{"-scale", "0", "test.ch8"},
			wantErr: "invalid scale 0",
		},
		{
			name:    "script without headless backend",
			args:    []string{"-script", "test.lua", "test.ch8"},
			wantErr: "scripts require the headless backend",
		},
		{
			name:    "argument after file",
			args:    []string{"test.ch8", "-q"},
			wantErr: "after ROM file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parse("prog", tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := parse("prog", []string{"-q"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}
