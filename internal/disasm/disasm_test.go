package disasm

import (
	"bytes"
	"testing"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, chip8.Cls.Name},
		{"return", 0x00EE, chip8.Ret.Name},
		{"jump", 0x1234, chip8.Jp.Name + " $234"},
		{"call", 0x2300, chip8.Call.Name + " $300"},
		{"skip equal byte", 0x3234, chip8.Se.Name + " V2, $34"},
		{"skip not equal register", 0x9AB0, chip8.Sne.Name + " VA, VB"},
		{"load index", 0xA234, chip8.Ld.Name + " I, $234"},
		{"add byte", 0x7105, chip8.Add.Name + " V1, $05"},
		{"xor", 0x8453, chip8.Xor.Name + " V4, V5"},
		{"shift right", 0x8306, chip8.Shr.Name + " V3"},
		{"random", 0xC10F, chip8.Rnd.Name + " V1, $0F"},
		{"draw", 0xD125, chip8.Drw.Name + " V1, V2, $5"},
		{"skip key", 0xE39E, chip8.Skp.Name + " V3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.word))
		})
	}
}

func TestFormatUnknown(t *testing.T) {
	_, ok := Identify(0xFFFF)
	assert.False(t, ok)
	assert.Equal(t, ".word $FFFF", Format(0xFFFF))
}

func TestIsSkip(t *testing.T) {
	assert.True(t, IsSkip(0x3234))
	assert.True(t, IsSkip(0xE39E))
	assert.False(t, IsSkip(0x1234))
}

func TestIsControlFlow(t *testing.T) {
	assert.True(t, IsControlFlow(0x1234))
	assert.True(t, IsControlFlow(0x00EE))
	assert.False(t, IsControlFlow(0x6001))
}

func TestListing(t *testing.T) {
	program := []byte{0x00, 0xE0, 0x12, 0x00, 0xAB}
	lines := Listing(program, 0x200)
	assert.Len(t, lines, 3)

	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, chip8.Cls.Name, lines[0].Text)
	assert.Equal(t, uint16(0x202), lines[1].Address)
	assert.Equal(t, chip8.Jp.Name+" $200", lines[1].Text)
	assert.Equal(t, uint16(0x204), lines[2].Address)
	assert.Equal(t, ".byte $AB", lines[2].Text)
	assert.False(t, lines[0].EndsBlock())
	assert.True(t, lines[1].EndsBlock())
	assert.False(t, lines[2].EndsBlock())

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, program, 0x200))
	assert.Contains(t, buf.String(), "$202  12 00  "+chip8.Jp.Name+" $200\n\n$204")
	assert.Contains(t, buf.String(), "$204  AB     .byte $AB\n")
}

func TestProgram(t *testing.T) {
	mem := memory.New()
	assert.NoError(t, mem.Load([]byte{0xA2, 0x34, 0xD1, 0x25}))

	lines, err := Program(mem, memory.ProgramStart, memory.ProgramStart+4)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, chip8.Ld.Name+" I, $234", lines[0].Text)
	assert.Equal(t, chip8.Drw.Name+" V1, V2, $5", lines[1].Text)

	_, err = Program(mem, 0xFF0, 0x1000)
	assert.Error(t, err)
}
