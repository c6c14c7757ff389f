package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/memory"
)

// NumRegisters is the number of general purpose registers V0-VF.
const NumRegisters = 16

// VF is the index of the flag register.
const VF = 0xF

// Registers is the CHIP-8 register file.
type Registers struct {
	V  [NumRegisters]uint8 // general purpose registers, VF doubles as flag output
	I  uint16              // index register
	PC uint16              // program counter
	DT uint8               // delay timer
	ST uint8               // sound timer
}

// Reset sets all registers to their power on state.
func (r *Registers) Reset() {
	*r = Registers{PC: memory.ProgramStart}
}

// DecrementTimers counts both timers down by one, saturating at zero.
func (r *Registers) DecrementTimers() {
	if r.DT > 0 {
		r.DT--
	}
	if r.ST > 0 {
		r.ST--
	}
}

// String returns a formatted dump of the registers.
func (r Registers) String() string {
	return fmt.Sprintf("V: [% 02X] I: %04X PC: %04X DT: %02X ST: %02X", r.V, r.I, r.PC, r.DT, r.ST)
}
