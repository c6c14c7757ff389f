package pipeline

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/memory"
)

// UnknownOpcodePolicy defines how the pipeline reacts to an instruction word
// that has no registered handler.
type UnknownOpcodePolicy string

// Supported unknown opcode policies.
const (
	UnknownOpcodeHalt UnknownOpcodePolicy = "halt"
	UnknownOpcodeSkip UnknownOpcodePolicy = "skip"
)

const (
	// FrameRate is the number of frames per second of the Run loop and the
	// rate at which frame driven timers are decremented.
	FrameRate = 60

	// DefaultClockHz is the default number of instructions per second.
	DefaultClockHz = 700
)

var errInvalidConfig = errors.New("invalid configuration")

// Config contains the emulation settings of a pipeline.
type Config struct {
	StackSize     int                 // call stack capacity, 16 or 32
	Wrap          bool                // wrap sprites at the screen edges instead of clipping
	UnknownOpcode UnknownOpcodePolicy // reaction to undecodable instruction words
	TimerDivider  int                 // cycles per timer decrement, 0 decrements once per frame
	ClockHz       int                 // instructions per second, 0 runs unthrottled
	MaxCycles     uint64              // stop after this many cycles, 0 is unlimited
	Trace         bool                // log every executed instruction at debug level
}

// DefaultConfig returns the default pipeline configuration with timers
// coupled 1:1 to instruction cycles.
func DefaultConfig() Config {
	return Config{
		StackSize:     memory.DefaultStackSize,
		UnknownOpcode: UnknownOpcodeHalt,
		TimerDivider:  1,
		ClockHz:       DefaultClockHz,
	}
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	if c.StackSize != memory.DefaultStackSize && c.StackSize != memory.LargeStackSize {
		return fmt.Errorf("%w: stack size %d is not %d or %d",
			errInvalidConfig, c.StackSize, memory.DefaultStackSize, memory.LargeStackSize)
	}
	switch c.UnknownOpcode {
	case UnknownOpcodeHalt, UnknownOpcodeSkip:
	default:
		return fmt.Errorf("%w: unsupported unknown opcode policy '%s'", errInvalidConfig, c.UnknownOpcode)
	}
	if c.TimerDivider < 0 {
		return fmt.Errorf("%w: negative timer divider %d", errInvalidConfig, c.TimerDivider)
	}
	if c.ClockHz < 0 {
		return fmt.Errorf("%w: negative clock %d", errInvalidConfig, c.ClockHz)
	}
	return nil
}

// cyclesPerFrame returns the number of instructions executed per frame.
func (c Config) cyclesPerFrame() int {
	hz := c.ClockHz
	if hz == 0 {
		hz = DefaultClockHz
	}
	return max(hz/FrameRate, 1)
}
