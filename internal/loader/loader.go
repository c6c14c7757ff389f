// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/memory"
)

var errEmptyProgram = errors.New("empty program")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file and returns the program image.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return program, nil
}

// Read reads a headerless ROM image from the reader and checks that it
// fits into memory.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	// one byte past the limit is enough to detect an oversized image
	program, err := io.ReadAll(io.LimitReader(reader, memory.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(program) == 0:
		return nil, errEmptyProgram
	case len(program) > memory.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes",
			memory.ErrProgramTooLarge, memory.MaxProgramSize)
	}
	return program, nil
}
