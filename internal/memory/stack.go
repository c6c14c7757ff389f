package memory

import (
	"errors"
	"fmt"
)

// Supported call stack capacities.
const (
	DefaultStackSize = 16
	LargeStackSize   = 32
)

var (
	// ErrStackOverflow is returned when pushing to a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when popping from an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is a bounded stack of return addresses.
type Stack struct {
	entries []uint16
	top     int // index of the last pushed entry, -1 when empty
}

// NewStack returns an empty stack with the given capacity.
func NewStack(capacity int) *Stack {
	return &Stack{
		entries: make([]uint16, capacity),
		top:     -1,
	}
}

// Push stores a return address on the stack.
func (s *Stack) Push(addr uint16) error {
	if s.top+1 >= len(s.entries) {
		return fmt.Errorf("%w: pushing $%04X with %d entries", ErrStackOverflow, addr, len(s.entries))
	}
	s.top++
	s.entries[s.top] = addr
	return nil
}

// Pop removes and returns the last pushed return address.
func (s *Stack) Pop() (uint16, error) {
	if s.top < 0 {
		return 0, ErrStackUnderflow
	}
	addr := s.entries[s.top]
	s.top--
	return addr, nil
}

// Len returns the number of entries on the stack.
func (s *Stack) Len() int {
	return s.top + 1
}

// Cap returns the capacity of the stack.
func (s *Stack) Cap() int {
	return len(s.entries)
}

// Entries returns a copy of the stack contents, bottom first.
func (s *Stack) Entries() []uint16 {
	out := make([]uint16, s.Len())
	copy(out, s.entries[:s.Len()])
	return out
}
