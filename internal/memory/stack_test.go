package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack(DefaultStackSize)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, DefaultStackSize, s.Cap())

	assert.NoError(t, s.Push(0x202))
	assert.NoError(t, s.Push(0x304))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []uint16{0x202, 0x304}, s.Entries())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), addr)

	addr, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), addr)

	_, err = s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestStackOverflow(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
	}{
		{"default stack", DefaultStackSize},
		{"large stack", LargeStackSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(tt.capacity)
			for i := 0; i < tt.capacity; i++ {
				assert.NoError(t, s.Push(uint16(i)))
			}

			err := s.Push(0xFFF)
			assert.True(t, errors.Is(err, ErrStackOverflow))
			assert.Equal(t, tt.capacity, s.Len())

			addr, err := s.Pop()
			assert.NoError(t, err)
			assert.Equal(t, uint16(tt.capacity-1), addr)
		})
	}
}
