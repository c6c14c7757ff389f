// Package audio plays the tone of the sound timer.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	// DefaultSampleRate is the output sample rate in Hz.
	DefaultSampleRate = 44100
	// DefaultFrequency is the frequency of the tone in Hz.
	DefaultFrequency = 440

	amplitude  = 0.2
	sampleSize = 4 // float32
)

// SquareWave is an endless mono float32 little endian square wave that is
// silent while the tone is off.
type SquareWave struct {
	on         atomic.Bool
	halfPeriod int
	position   int
}

// NewSquareWave returns a square wave of the given frequency.
func NewSquareWave(sampleRate, frequency int) *SquareWave {
	return &SquareWave{
		halfPeriod: max(sampleRate/frequency/2, 1),
	}
}

// SetTone switches the tone on or off.
func (w *SquareWave) SetTone(on bool) {
	w.on.Store(on)
}

// Read fills p with whole samples.
func (w *SquareWave) Read(p []byte) (int, error) {
	on := w.on.Load()
	n := len(p) / sampleSize * sampleSize

	for i := 0; i < n; i += sampleSize {
		var sample float32
		if on {
			sample = amplitude
			if (w.position/w.halfPeriod)%2 == 1 {
				sample = -amplitude
			}
			w.position = (w.position + 1) % (2 * w.halfPeriod)
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
	}
	return n, nil
}

// Silent is a beeper without output.
type Silent struct{}

// SetTone does nothing.
func (Silent) SetTone(bool) {}
