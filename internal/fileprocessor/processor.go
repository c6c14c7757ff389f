// Package fileprocessor handles ROM file loading and running operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/backend/headless"
	"github.com/retroenv/chip8vm/internal/backend/terminal"
	"github.com/retroenv/chip8vm/internal/backend/window"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/chip8vm/internal/screenshot"
	"github.com/retroenv/chip8vm/internal/script"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete ROM processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if system := detector.New(logger).Detect(opts.Input, program); system != arch.CHIP8System {
		return fmt.Errorf("unsupported system '%s' of file %s", system, opts.Input)
	}

	if opts.Disasm {
		return Disassemble(os.Stdout, program)
	}

	logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("backend", opts.Backend),
	)

	p, err := Run(ctx, logger, opts, program)
	if p != nil && opts.Screenshot != "" {
		if serr := screenshot.Save(opts.Screenshot, p.CPU().Display().Rows(), opts.Scale); serr != nil {
			logger.Error("Saving screenshot failed", log.Err(serr))
		} else {
			logger.Info("Screenshot saved", log.String("file", opts.Screenshot))
		}
	}
	if err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}
	return nil
}

// Disassemble writes the disassembly listing of the program.
func Disassemble(w io.Writer, program []byte) error {
	if err := disasm.Write(w, program, memory.ProgramStart); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// Run executes the program on the backend selected by the options and
// returns the pipeline for inspection of the final state.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) (*pipeline.Pipeline, error) {
	random := cpu.NewMathRandom(opts.Seed)

	switch opts.Backend {
	case options.BackendHeadless:
		return runHeadless(ctx, logger, opts, program, random)
	case options.BackendTerminal:
		return runTerminal(ctx, logger, opts, program, random)
	case options.BackendWindow:
		return runWindow(ctx, logger, opts, program, random)
	default:
		return nil, fmt.Errorf("unsupported backend '%s'", opts.Backend)
	}
}

func runHeadless(ctx context.Context, logger *log.Logger, opts options.Program,
	program []byte, random cpu.RandomSource) (*pipeline.Pipeline, error) {

	backend := headless.New()
	p, err := createPipeline(logger, opts, program, cpu.Devices{
		Presenter: backend,
		Input:     backend,
		Random:    random,
	}, audio.Silent{})
	if err != nil {
		return nil, err
	}

	if opts.Script == "" {
		return p, p.Run(ctx)
	}

	runner := script.New(logger, p, backend)
	defer runner.Close()
	if err := runner.LoadFile(opts.Script); err != nil {
		return p, err
	}
	return p, runner.Run(ctx)
}

func runTerminal(ctx context.Context, logger *log.Logger, opts options.Program,
	program []byte, random cpu.RandomSource) (*pipeline.Pipeline, error) {

	term := terminal.NewStdio()
	beeper, closeBeeper := openBeeper(logger)
	defer closeBeeper()

	p, err := createPipeline(logger, opts, program, cpu.Devices{
		Presenter: term,
		Input:     term,
		Random:    random,
	}, beeper)
	if err != nil {
		return nil, err
	}

	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("starting terminal: %w", err)
	}
	defer term.Stop()

	return p, p.Run(ctx)
}

func runWindow(ctx context.Context, logger *log.Logger, opts options.Program,
	program []byte, random cpu.RandomSource) (*pipeline.Pipeline, error) {

	win := window.New(logger, opts.Scale)
	beeper, closeBeeper := openBeeper(logger)
	defer closeBeeper()

	p, err := createPipeline(logger, opts, program, cpu.Devices{
		Presenter: win,
		Input:     win,
		Random:    random,
	}, beeper)
	if err != nil {
		return nil, err
	}

	return p, win.Run(ctx, p)
}

// createPipeline creates the pipeline and loads the program.
func createPipeline(logger *log.Logger, opts options.Program, program []byte,
	devices cpu.Devices, beeper pipeline.Beeper) (*pipeline.Pipeline, error) {

	p, err := pipeline.New(logger, opts.Pipeline(), devices, beeper)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}
	if err := p.Load(program); err != nil {
		return nil, err
	}
	return p, nil
}

// openBeeper opens the audio output, a silent beeper is returned if no
// audio device is available.
func openBeeper(logger *log.Logger) (pipeline.Beeper, func()) {
	beeper, err := audio.New(audio.DefaultSampleRate)
	if err != nil {
		logger.Warn("Audio output is not available", log.Err(err))
		return audio.Silent{}, func() {}
	}
	return beeper, func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
