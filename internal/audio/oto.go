//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a square wave on the default audio device while the tone is on.
type Beeper struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	wave   *SquareWave
}

// New opens the audio device and starts the silent player.
func New(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	wave := NewSquareWave(sampleRate, DefaultFrequency)
	player := ctx.NewPlayer(wave)
	player.Play()

	return &Beeper{
		ctx:    ctx,
		player: player,
		wave:   wave,
	}, nil
}

// SetTone switches the tone on or off.
func (b *Beeper) SetTone(on bool) {
	b.wave.SetTone(on)
}

// Close stops the playback.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
