// Package script drives headless runs with Lua scripts.
//
// A script may define the global function on_frame(frame), it is called
// before every frame and stops the run by returning false. The functions
// press(key), release(key), reg(index), peek(address), pc(), index(),
// cycles(), pixel(x, y), disasm(start, end) and stop() give access to the
// machine.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

const frameHook = "on_frame"

// Keypad is the input device the script presses keys on.
type Keypad interface {
	Press(key uint8)
	Release(key uint8)
}

// Runner executes a Lua script against a pipeline.
type Runner struct {
	logger   *log.Logger
	state    *lua.LState
	pipeline *pipeline.Pipeline
	keypad   Keypad

	frame   int
	stopped bool
}

// New returns a runner with the machine functions registered.
func New(logger *log.Logger, p *pipeline.Pipeline, keypad Keypad) *Runner {
	r := &Runner{
		logger:   logger,
		state:    lua.NewState(),
		pipeline: p,
		keypad:   keypad,
	}
	r.register()
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.state.Close()
}

// LoadFile executes the script file.
func (r *Runner) LoadFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// LoadString executes the script source.
func (r *Runner) LoadString(source string) error {
	if err := r.state.DoString(source); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// Frames returns the number of processed frames.
func (r *Runner) Frames() int { return r.frame }

// Run processes frames until the script stops, the input device requests
// termination, the cycle limit is reached or an error occurs.
func (r *Runner) Run(ctx context.Context) error {
	r.state.SetContext(ctx)
	input := r.pipeline.CPU().Input()

	for !r.stopped && input.PollEvents() {
		if err := r.callFrameHook(); err != nil {
			return err
		}
		if r.stopped {
			break
		}

		if err := r.pipeline.Frame(ctx); err != nil {
			if errors.Is(err, pipeline.ErrCycleLimit) {
				break
			}
			return fmt.Errorf("running frame %d: %w", r.frame, err)
		}
		r.frame++
	}

	r.logger.Debug("Script finished",
		log.Int("frames", r.frame),
		log.Int("cycles", int(r.pipeline.Cycles())))
	return nil
}

// callFrameHook calls on_frame if the script defines it.
func (r *Runner) callFrameHook() error {
	fn := r.state.GetGlobal(frameHook)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	err := r.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(r.frame))
	if err != nil {
		return fmt.Errorf("calling %s in frame %d: %w", frameHook, r.frame, err)
	}

	ret := r.state.Get(-1)
	r.state.Pop(1)
	if ret == lua.LFalse {
		r.stopped = true
	}
	return nil
}

func (r *Runner) register() {
	functions := map[string]lua.LGFunction{
		"press":   r.press,
		"release": r.release,
		"reg":     r.reg,
		"peek":    r.peek,
		"pc":      r.pc,
		"index":   r.index,
		"cycles":  r.cycles,
		"pixel":   r.pixel,
		"disasm":  r.disasm,
		"stop":    r.stop,
	}
	for name, fn := range functions {
		r.state.SetGlobal(name, r.state.NewFunction(fn))
	}
}

func (r *Runner) checkKey(L *lua.LState) uint8 {
	key := L.CheckInt(1)
	if key < 0 || key > 0xF {
		L.ArgError(1, "key out of range")
	}
	return uint8(key)
}

func (r *Runner) press(L *lua.LState) int {
	r.keypad.Press(r.checkKey(L))
	return 0
}

func (r *Runner) release(L *lua.LState) int {
	r.keypad.Release(r.checkKey(L))
	return 0
}

func (r *Runner) reg(L *lua.LState) int {
	index := L.CheckInt(1)
	c := r.pipeline.CPU()
	if index < 0 || index >= len(c.V) {
		L.ArgError(1, "register out of range")
	}
	L.Push(lua.LNumber(c.V[index]))
	return 1
}

func (r *Runner) peek(L *lua.LState) int {
	address := L.CheckInt(1)
	if address < 0 || address > 0xFFFF {
		L.ArgError(1, "address out of range")
	}
	value, err := r.pipeline.CPU().Memory().ReadU8(uint16(address))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(value))
	return 1
}

func (r *Runner) pc(L *lua.LState) int {
	L.Push(lua.LNumber(r.pipeline.CPU().PC))
	return 1
}

func (r *Runner) index(L *lua.LState) int {
	L.Push(lua.LNumber(r.pipeline.CPU().I))
	return 1
}

func (r *Runner) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(r.pipeline.Cycles()))
	return 1
}

func (r *Runner) pixel(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	rows := r.pipeline.CPU().Display().Rows()
	L.Push(lua.LBool(display.Pixel(rows, x, y)))
	return 1
}

// disasm returns a table with the instruction texts of the memory range [start, end).
func (r *Runner) disasm(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	if start < 0 || end < start || end > 0xFFFF {
		L.ArgError(2, "invalid address range")
	}

	lines, err := disasm.Program(r.pipeline.CPU().Memory(), uint16(start), uint16(end))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}

	table := L.NewTable()
	for _, line := range lines {
		table.Append(lua.LString(line.Text))
	}
	L.Push(table)
	return 1
}

func (r *Runner) stop(_ *lua.LState) int {
	r.stopped = true
	return 0
}
