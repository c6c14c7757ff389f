// Package disasm formats CHIP-8 instruction words as assembly text.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Identify returns the instruction matching the instruction word.
func Identify(word uint16) (*chip8.Instruction, bool) {
	opcodes := chip8.Opcodes[int(word>>12)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction, op.Instruction != nil
		}
	}
	return nil, false
}

// Format returns the assembly text of an instruction word. Words that do not
// encode an instruction are formatted as a data word.
func Format(word uint16) string {
	ins, ok := Identify(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}
	if params := formatParams(word); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatParams formats the operands of an instruction word by its encoding.
func formatParams(word uint16) string {
	x := registerX(word)
	y := registerY(word)

	switch word & 0xF000 {
	case 0x0000:
		if word == 0x00E0 || word == 0x00EE {
			return ""
		}
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		if n := word & 0x000F; n == 0x6 || n == 0xE {
			return fmt.Sprintf("V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", word&0x0FFF)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	case 0xF000:
		return formatMisc(word, x)
	}
	return ""
}

// formatMisc formats the operands of the FX__ timer, key and memory instructions.
func formatMisc(word, x uint16) string {
	switch word & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return fmt.Sprintf("V%X", x)
}

func registerX(word uint16) uint16 {
	return (word & 0x0F00) >> 8
}

func registerY(word uint16) uint16 {
	return (word & 0x00F0) >> 4
}

// IsSkip returns whether the instruction word conditionally skips the next instruction.
func IsSkip(word uint16) bool {
	ins, ok := Identify(word)
	return ok && chip8.SkipInstructions.Contains(ins.Name)
}

// IsControlFlow returns whether the instruction word transfers control
// unconditionally, which ends a linear code block.
func IsControlFlow(word uint16) bool {
	ins, ok := Identify(word)
	if !ok {
		return false
	}
	return ins == chip8.Jp || ins == chip8.Ret
}
