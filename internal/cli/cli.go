// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parse(os.Args[0], os.Args[1:])
}

func parse(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Backend = strings.ToLower(opts.Backend)
	opts.UnknownOpcode = strings.ToLower(opts.UnknownOpcode)

	if !slices.Contains(options.Backends, opts.Backend) {
		return fmt.Errorf("unsupported backend: %s. Valid options: %s",
			opts.Backend, strings.Join(options.Backends, ", "))
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	if opts.Script != "" && opts.Backend != options.BackendHeadless {
		return fmt.Errorf("scripts require the %s backend", options.BackendHeadless)
	}

	if err := opts.Pipeline().Validate(); err != nil {
		return fmt.Errorf("validating emulation options: %w", err)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	defaults := pipeline.DefaultConfig()

	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Script, "script", "", "Lua script file that drives a headless run")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of the .png file the display is written to on exit")
	flags.StringVar(&opts.Backend, "backend", options.BackendWindow, "display backend (window/terminal/headless)")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print the disassembly of the ROM and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.Scale, "scale", 10, "scale factor of the window")
	flags.IntVar(&opts.ClockHz, "clock", defaults.ClockHz, "instructions per second, 0 runs unthrottled")
	flags.IntVar(&opts.TimerDivider, "timer-divider", defaults.TimerDivider, "cycles per timer decrement, 0 decrements the timers at 60 Hz")
	flags.IntVar(&opts.StackSize, "stack", defaults.StackSize, "call stack size (16/32)")
	flags.StringVar(&opts.UnknownOpcode, "unknown", string(defaults.UnknownOpcode), "unknown opcode policy (halt/skip)")
	flags.BoolVar(&opts.Wrap, "wrap", false, "wrap sprites around the screen edges instead of clipping")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 is unlimited")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
}
