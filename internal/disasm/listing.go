package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/memory"
)

// Line is a single disassembled instruction word.
type Line struct {
	Address uint16
	Data    []byte
	Text    string
}

// String returns the line formatted with address and hex bytes.
func (l Line) String() string {
	if len(l.Data) == 1 {
		return fmt.Sprintf("$%03X  %02X     %s", l.Address, l.Data[0], l.Text)
	}
	return fmt.Sprintf("$%03X  %02X %02X  %s", l.Address, l.Data[0], l.Data[1], l.Text)
}

// Listing disassembles the program image that is loaded at the base address.
// A trailing odd byte is emitted as a data byte.
func Listing(program []byte, base uint16) []Line {
	lines := make([]Line, 0, len(program)/2+1)
	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])
		lines = append(lines, Line{
			Address: base + uint16(i),
			Data:    program[i : i+2],
			Text:    Format(word),
		})
	}
	if len(program)%2 != 0 {
		last := len(program) - 1
		lines = append(lines, Line{
			Address: base + uint16(last),
			Data:    program[last:],
			Text:    fmt.Sprintf(".byte $%02X", program[last]),
		})
	}
	return lines
}

// Program disassembles the memory range [start, end).
func Program(mem *memory.Memory, start, end uint16) ([]Line, error) {
	data, err := mem.Range(start, end)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return Listing(data, start), nil
}

// EndsBlock returns whether the line is an unconditional jump or return.
func (l Line) EndsBlock() bool {
	if len(l.Data) != 2 {
		return false
	}
	return IsControlFlow(uint16(l.Data[0])<<8 | uint16(l.Data[1]))
}

// Write writes the listing of the program to the writer. Code blocks are
// separated by an empty line after every jump or return.
func Write(w io.Writer, program []byte, base uint16) error {
	lines := Listing(program, base)
	for i, line := range lines {
		text := line.String()
		if line.EndsBlock() && i < len(lines)-1 {
			text += "\n"
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
