package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		id   uint16
		name string
	}{
		{0x00E0, 0x00E0, "CLS"},
		{0x00EE, 0x00EE, "RET"},
		{0x0000, 0x0000, "SYS"},
		{0x1234, 0x1000, "JP"},
		{0x2ABC, 0x2000, "CALL"},
		{0x3A12, 0x3000, "SE_BYTE"},
		{0x4A12, 0x4000, "SNE_BYTE"},
		{0x5AB0, 0x5000, "SE_REG"},
		{0x6A12, 0x6000, "LD_BYTE"},
		{0x7A12, 0x7000, "ADD_BYTE"},
		{0x8AB0, 0x8000, "LD"},
		{0x8AB1, 0x8001, "OR"},
		{0x8AB2, 0x8002, "AND"},
		{0x8AB3, 0x8003, "XOR"},
		{0x8AB4, 0x8004, "ADD"},
		{0x8AB5, 0x8005, "SUB"},
		{0x8AB6, 0x8006, "SHR"},
		{0x8AB7, 0x8007, "SUBN"},
		{0x8ABE, 0x800E, "SHL"},
		{0x9AB0, 0x9000, "SNE_REG"},
		{0xA123, 0xA000, "LD_I"},
		{0xB123, 0xB000, "LD_V0"},
		{0xCA12, 0xC000, "RND"},
		{0xDAB5, 0xD000, "DRW"},
		{0xEA9E, 0xE09E, "SKP"},
		{0xEAA1, 0xE0A1, "SKNP"},
		{0xFA07, 0xF007, "LD_VX_DT"},
		{0xFA0A, 0xF00A, "W_KEY"},
		{0xFA15, 0xF015, "LD_DT_VX"},
		{0xFA18, 0xF018, "LD_ST_VX"},
		{0xFA1E, 0xF01E, "ADD_I_VX"},
		{0xFA29, 0xF029, "LD_F_VX"},
		{0xFA33, 0xF033, "LD_B_VX"},
		{0xFA55, 0xF055, "LD_I_VX"},
		{0xFA65, 0xF065, "LD_VX_I"},
	}

	assert.Equal(t, len(tests), OpcodeIDs())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Decode(tt.word)
			assert.Equal(t, tt.word, ins.Word)
			assert.Equal(t, tt.id, ins.ID)

			name, ok := HandlerName(ins.ID)
			assert.True(t, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x8AB8, 0x8ABF, 0xE000, 0xF0FF, 0xF100} {
		_, ok := HandlerName(Decode(word).ID)
		assert.False(t, ok)
	}
}

func TestNibbles(t *testing.T) {
	n := SplitNibbles(0xD1A5)
	assert.Equal(t, Nibbles{0xD, 0x1, 0xA, 0x5}, n)
	assert.Equal(t, uint8(0x1), n.X())
	assert.Equal(t, uint8(0xA), n.Y())
	assert.Equal(t, uint8(0x5), n.N())
	assert.Equal(t, uint8(0xA5), n.Byte())
	assert.Equal(t, uint16(0x1A5), n.Addr())
}
