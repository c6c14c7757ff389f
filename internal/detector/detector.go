// Package detector handles ROM system detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// inesMagic starts every NES ROM in iNES format.
var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector handles system detection from file headers and extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system a ROM was made for. CHIP-8 ROMs have no
// header, so any file that is not recognized as a different system is
// considered a CHIP-8 ROM.
func (d *Detector) Detect(filename string, data []byte) arch.System {
	system := d.detectFromHeader(data)
	if system == "" {
		system = d.detectFromFile(filename)
	}
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// detectFromHeader determines the system type based on a file header.
func (d *Detector) detectFromHeader(data []byte) arch.System {
	if bytes.HasPrefix(data, inesMagic) {
		return arch.NES
	}
	return ""
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
