//go:build headless

package audio

// Beeper discards the tone in builds without audio support.
type Beeper struct {
	wave *SquareWave
}

// New returns a beeper without audio output.
func New(sampleRate int) (*Beeper, error) {
	return &Beeper{wave: NewSquareWave(sampleRate, DefaultFrequency)}, nil
}

// SetTone switches the tone on or off.
func (b *Beeper) SetTone(on bool) {
	b.wave.SetTone(on)
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
