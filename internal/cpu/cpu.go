// Package cpu implements the CHIP-8 register file and instruction set.
package cpu

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
)

// ErrUnknownOpcode is returned when no handler is registered for a decoded opcode identifier.
var ErrUnknownOpcode = errors.New("unknown opcode")

// NumKeys is the number of keys of the hex keypad.
const NumKeys = 16

// Presenter shows the display buffer to the user.
type Presenter interface {
	// ClearScreen blanks the presented screen.
	ClearScreen()
	// Present shows the packed display rows. The rows must not be retained
	// or modified after returning.
	Present(rows []display.Row)
}

// Input is the hex keypad.
type Input interface {
	// IsKeyDown returns whether the key 0-F is currently held down.
	IsKeyDown(key uint8) bool
	// PollEvents processes pending input events and returns false when the
	// program should terminate.
	PollEvents() bool
}

// KeyWaiter is implemented by input devices that can block until a key is pressed.
type KeyWaiter interface {
	WaitForKey(ctx context.Context) (uint8, error)
}

// RandomSource supplies the random bytes for the RND instruction.
type RandomSource interface {
	NextByte() uint8
}

// Devices are the external collaborators of the CPU. Nil devices are
// replaced by implementations that ignore all calls.
type Devices struct {
	Presenter Presenter
	Input     Input
	Random    RandomSource
}

// CPU holds the state of the virtual machine and executes decoded instructions.
type CPU struct {
	Registers

	mem     *memory.Memory
	stack   *memory.Stack
	display *display.Buffer

	presenter Presenter
	input     Input
	random    RandomSource

	keyWait int // register waiting for a key press, -1 if not waiting
}

// New returns a new CPU operating on the given memory, stack and display.
func New(mem *memory.Memory, stack *memory.Stack, disp *display.Buffer, devices Devices) *CPU {
	c := &CPU{
		mem:       mem,
		stack:     stack,
		display:   disp,
		presenter: devices.Presenter,
		input:     devices.Input,
		random:    devices.Random,
		keyWait:   -1,
	}
	if c.presenter == nil {
		c.presenter = nullPresenter{}
	}
	if c.input == nil {
		c.input = nullInput{}
	}
	if c.random == nil {
		c.random = NewMathRandom(0)
	}
	c.Registers.Reset()
	return c
}

// Memory returns the address space of the CPU.
func (c *CPU) Memory() *memory.Memory { return c.mem }

// Stack returns the call stack of the CPU.
func (c *CPU) Stack() *memory.Stack { return c.stack }

// Display returns the display buffer of the CPU.
func (c *CPU) Display() *display.Buffer { return c.display }

// Input returns the input device of the CPU.
func (c *CPU) Input() Input { return c.input }

// Execute runs the handler registered for the decoded instruction.
// Handlers check all bounds before mutating any state, a failed instruction
// leaves the machine unchanged.
func (c *CPU) Execute(ins Instruction) error {
	h, ok := isa[ins.ID]
	if !ok {
		return fmt.Errorf("%w: $%04X", ErrUnknownOpcode, ins.Word)
	}
	if err := h.exec(c, ins.Args); err != nil {
		return fmt.Errorf("executing %s ($%04X): %w", h.name, ins.Word, err)
	}
	return nil
}

// WaitingForKey returns the register that receives the next key press if a
// key wait instruction is pending.
func (c *CPU) WaitingForKey() (uint8, bool) {
	if c.keyWait < 0 {
		return 0, false
	}
	return uint8(c.keyWait), true
}

// ResolveKeyWait stores the pressed key in the waiting register and ends the wait.
func (c *CPU) ResolveKeyWait(key uint8) {
	if c.keyWait < 0 {
		return
	}
	c.V[c.keyWait] = key & 0xF
	c.keyWait = -1
}

type nullPresenter struct{}

func (nullPresenter) ClearScreen()         {}
func (nullPresenter) Present([]display.Row) {}

type nullInput struct{}

func (nullInput) IsKeyDown(uint8) bool { return false }
func (nullInput) PollEvents() bool     { return true }
