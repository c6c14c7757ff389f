// Package memory provides the CHIP-8 address space and call stack.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: font glyphs (16 glyphs of 5 bytes)
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFE: program and scratch data
const (
	// Size is the capacity of the address space in bytes.
	Size = 0xFFF

	// ProgramStart is the address the program is loaded to and execution starts at.
	ProgramStart = 0x200

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrOutOfBounds is returned when an address or address range exceeds the memory capacity.
	ErrOutOfBounds = errors.New("address out of bounds")
	// ErrProgramTooLarge is returned when a program does not fit into the program area.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidGlyph is returned when a font glyph outside of 0-F is requested.
	ErrInvalidGlyph = errors.New("invalid font glyph")
)

// Font contains the 16 built-in hexadecimal digit sprites 0-F.
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte addressable CHIP-8 address space.
type Memory struct {
	data [Size]byte
}

// New returns a new address space with the font glyphs loaded.
func New() *Memory {
	m := &Memory{}
	copy(m.data[FontStart:], Font[:])
	return m
}

// Load copies a raw program image to the program start address.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d bytes available", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

// ReadU8 returns the byte at the given address.
func (m *Memory) ReadU8(addr uint16) (uint8, error) {
	if int(addr) >= Size {
		return 0, fmt.Errorf("%w: reading $%04X", ErrOutOfBounds, addr)
	}
	return m.data[addr], nil
}

// WriteU8 sets the byte at the given address.
func (m *Memory) WriteU8(addr uint16, value uint8) error {
	if int(addr) >= Size {
		return fmt.Errorf("%w: writing $%04X", ErrOutOfBounds, addr)
	}
	m.data[addr] = value
	return nil
}

// ReadU16 returns the big-endian word at the given address.
func (m *Memory) ReadU16(addr uint16) (uint16, error) {
	if int(addr)+1 >= Size {
		return 0, fmt.Errorf("%w: reading word at $%04X", ErrOutOfBounds, addr)
	}
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1]), nil
}

// FontGlyphAddress returns the address of the font glyph for the hex digit.
func (m *Memory) FontGlyphAddress(digit uint8) (uint16, error) {
	if digit > 0xF {
		return 0, fmt.Errorf("%w: $%02X", ErrInvalidGlyph, digit)
	}
	return FontStart + uint16(digit)*GlyphSize, nil
}

// SpriteSlice returns n consecutive bytes starting at addr.
// The returned slice aliases the memory and must not be modified.
func (m *Memory) SpriteSlice(addr uint16, n uint8) ([]byte, error) {
	end := int(addr) + int(n)
	if end > Size {
		return nil, fmt.Errorf("%w: sprite $%04X-$%04X", ErrOutOfBounds, addr, end-1)
	}
	return m.data[addr:end], nil
}

// WriteRange copies data to memory starting at addr. Nothing is written if
// the range exceeds the memory capacity.
func (m *Memory) WriteRange(addr uint16, data []byte) error {
	end := int(addr) + len(data)
	if end > Size {
		return fmt.Errorf("%w: writing $%04X-$%04X", ErrOutOfBounds, addr, end-1)
	}
	copy(m.data[addr:end], data)
	return nil
}

// Range returns a copy of the bytes in [start, end).
func (m *Memory) Range(start, end uint16) ([]byte, error) {
	if start > end || int(end) > Size {
		return nil, fmt.Errorf("%w: range $%04X-$%04X", ErrOutOfBounds, start, end)
	}
	buf := make([]byte, end-start)
	copy(buf, m.data[start:end])
	return buf, nil
}
