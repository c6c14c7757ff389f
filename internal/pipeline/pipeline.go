// Package pipeline drives the fetch, decode and execute cycle of the virtual machine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrHalted is returned by Cycle after a fatal error stopped the pipeline.
	ErrHalted = errors.New("pipeline halted")
	// ErrCycleLimit is returned when the configured cycle limit is reached.
	ErrCycleLimit = errors.New("cycle limit reached")
)

// Beeper plays a tone while the sound timer is active.
type Beeper interface {
	SetTone(on bool)
}

// Pipeline owns the machine state and advances it one instruction per cycle.
type Pipeline struct {
	logger *log.Logger
	cfg    Config
	cpu    *cpu.CPU
	beeper Beeper

	cycles         uint64
	cyclesPerFrame int
	halted         error
	toneOn         bool
}

// New creates a new pipeline with freshly initialized memory, stack and display.
// The beeper is optional.
func New(logger *log.Logger, cfg Config, devices cpu.Devices, beeper Beeper) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mem := memory.New()
	stack := memory.NewStack(cfg.StackSize)
	disp := display.New(cfg.Wrap)

	return &Pipeline{
		logger:         logger,
		cfg:            cfg,
		cpu:            cpu.New(mem, stack, disp, devices),
		beeper:         beeper,
		cyclesPerFrame: cfg.cyclesPerFrame(),
	}, nil
}

// Load copies the program into memory at the program start address.
func (p *Pipeline) Load(program []byte) error {
	if err := p.cpu.Memory().Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	p.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("address", memory.ProgramStart))
	return nil
}

// CPU returns the machine state.
func (p *Pipeline) CPU() *cpu.CPU { return p.cpu }

// Config returns the configuration of the pipeline.
func (p *Pipeline) Config() Config { return p.cfg }

// Cycles returns the number of completed cycles.
func (p *Pipeline) Cycles() uint64 { return p.cycles }

// Halted returns the fatal error that stopped the pipeline, or nil.
func (p *Pipeline) Halted() error { return p.halted }

// Fetch reads the instruction word at PC and advances PC by 2.
func (p *Pipeline) Fetch() (uint16, error) {
	pc := p.cpu.PC
	word, err := p.cpu.Memory().ReadU16(pc)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction at $%04X: %w", pc, err)
	}
	p.cpu.PC = pc + 2
	return word, nil
}

// Decode splits the instruction word into its opcode identifier and arguments.
func (p *Pipeline) Decode(word uint16) cpu.Instruction {
	return cpu.Decode(word)
}

// Execute runs the decoded instruction. Unknown opcodes are skipped when
// the skip policy is configured.
func (p *Pipeline) Execute(ins cpu.Instruction) error {
	err := p.cpu.Execute(ins)
	if err == nil {
		return nil
	}
	if errors.Is(err, cpu.ErrUnknownOpcode) && p.cfg.UnknownOpcode == UnknownOpcodeSkip {
		p.logger.Warn("Skipping unknown opcode",
			log.Hex("pc", p.cpu.PC-2),
			log.Hex("opcode", ins.Word))
		return nil
	}
	return err
}

// UpdateTimers decrements the delay and sound timers, saturating at 0, and
// switches the tone of the beeper.
func (p *Pipeline) UpdateTimers() {
	p.cpu.DecrementTimers()

	on := p.cpu.ST > 0
	if on == p.toneOn {
		return
	}
	p.toneOn = on
	if p.beeper != nil {
		p.beeper.SetTone(on)
	}
}

// Cycle processes a single cycle. While a key wait is pending and no key is
// pressed the cycle completes without fetching an instruction.
func (p *Pipeline) Cycle(ctx context.Context) error {
	if p.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, p.halted)
	}
	if p.cfg.MaxCycles > 0 && p.cycles >= p.cfg.MaxCycles {
		return ErrCycleLimit
	}

	waiting, err := p.resolveKeyWait(ctx)
	if err != nil {
		return err
	}

	if !waiting {
		if err := p.step(); err != nil {
			p.halted = err
			return err
		}
	}

	p.cycles++
	if p.cfg.TimerDivider > 0 && p.cycles%uint64(p.cfg.TimerDivider) == 0 {
		p.UpdateTimers()
	}
	return nil
}

// step runs fetch, decode and execute for one instruction.
func (p *Pipeline) step() error {
	pc := p.cpu.PC
	word, err := p.Fetch()
	if err != nil {
		return err
	}

	ins := p.Decode(word)
	if p.cfg.Trace {
		p.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", disasm.Format(word)),
			log.Bool("skip", disasm.IsSkip(word)))
	}
	return p.Execute(ins)
}

// resolveKeyWait stores the pressed key in the register of a pending key wait.
// It returns whether the wait is still pending.
func (p *Pipeline) resolveKeyWait(ctx context.Context) (bool, error) {
	if _, ok := p.cpu.WaitingForKey(); !ok {
		return false, nil
	}

	input := p.cpu.Input()
	if waiter, ok := input.(cpu.KeyWaiter); ok {
		key, err := waiter.WaitForKey(ctx)
		if err != nil {
			return true, fmt.Errorf("waiting for key: %w", err)
		}
		p.cpu.ResolveKeyWait(key)
		return false, nil
	}

	for key := range uint8(cpu.NumKeys) {
		if input.IsKeyDown(key) {
			p.cpu.ResolveKeyWait(key)
			return false, nil
		}
	}
	return true, nil
}

// Step processes n cycles.
func (p *Pipeline) Step(ctx context.Context, n int) error {
	for range n {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stepping: %w", err)
		}
		if err := p.Cycle(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Frame processes the cycles of one 60 Hz frame and decrements the timers
// once if they are frame driven.
func (p *Pipeline) Frame(ctx context.Context) error {
	if err := p.Step(ctx, p.cyclesPerFrame); err != nil {
		return err
	}
	if p.cfg.TimerDivider == 0 {
		p.UpdateTimers()
	}
	return nil
}

// Run processes frames until the input device requests termination, the
// context is canceled, the cycle limit is reached or a fatal error occurs.
func (p *Pipeline) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if p.cfg.ClockHz > 0 {
		ticker := time.NewTicker(time.Second / FrameRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	input := p.cpu.Input()
	for {
		if !input.PollEvents() {
			return nil
		}

		if err := p.Frame(ctx); err != nil {
			if errors.Is(err, ErrCycleLimit) || ctx.Err() != nil || !input.PollEvents() {
				return nil
			}
			return err
		}

		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
		}
	}
}
