// Package options contains the program options.
package options

import (
	"github.com/retroenv/chip8vm/internal/pipeline"
)

// Supported backends.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Backends lists all supported backends.
var Backends = []string{BackendWindow, BackendTerminal, BackendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input      string `flag:"i" usage:"input ROM file"`
	Script     string `flag:"script" usage:"Lua script driving a headless run"`
	Screenshot string `flag:"screenshot" usage:"PNG file the display is written to on exit"`
}

// Flags contains behavior options.
type Flags struct {
	Backend string `flag:"backend" usage:"display backend: window, terminal, headless" default:"window"`
	Disasm  bool   `flag:"disasm" usage:"print the disassembly of the ROM and exit"`
	Trace   bool   `flag:"trace" usage:"log every executed instruction"`
	Debug   bool   `flag:"debug" usage:"enable debug logging"`
	Quiet   bool   `flag:"q" usage:"quiet mode"`
}

// Emulation contains the virtual machine options.
type Emulation struct {
	Scale         int    `flag:"scale" usage:"window scale factor" default:"10"`
	ClockHz       int    `flag:"clock" usage:"instructions per second, 0 is unthrottled" default:"700"`
	TimerDivider  int    `flag:"timer-divider" usage:"cycles per timer decrement, 0 decrements at 60 Hz" default:"1"`
	StackSize     int    `flag:"stack" usage:"call stack size: 16 or 32" default:"16"`
	UnknownOpcode string `flag:"unknown" usage:"unknown opcode policy: halt, skip" default:"halt"`
	Wrap          bool   `flag:"wrap" usage:"wrap sprites at the screen edges"`
	Cycles        uint64 `flag:"cycles" usage:"stop after this many cycles, 0 is unlimited"`
	Seed          uint64 `flag:"seed" usage:"seed of the random number generator, 0 is random"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Emulation
}

// Pipeline returns the pipeline configuration for the options.
func (p Program) Pipeline() pipeline.Config {
	return pipeline.Config{
		StackSize:     p.StackSize,
		Wrap:          p.Wrap,
		UnknownOpcode: pipeline.UnknownOpcodePolicy(p.UnknownOpcode),
		TimerDivider:  p.TimerDivider,
		ClockHz:       p.ClockHz,
		MaxCycles:     p.Cycles,
		Trace:         p.Trace,
	}
}
