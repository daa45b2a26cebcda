package sound

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/multiclock/internal/logger"
)

// Player plays the notification sound through the system audio device
// via oto. When path is empty the built-in synthesized chime is used;
// otherwise the WAV file at path is loaded on every playback, so it
// can be swapped while the program runs.
type Player struct {
	path string
	log  *logger.Logger

	// oto allows one context per process, created for the format of
	// the first asset played.
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
}

// NewPlayer creates a player for the WAV file at path, or for the
// built-in chime when path is empty. No device is touched until the
// first playback.
func NewPlayer(path string, log *logger.Logger) *Player {
	return &Player{path: path, log: log}
}

// Play performs one full playback cycle and blocks until the sound
// finishes. Asset and device failures are returned to the caller (the
// ringer logs and drops them); they never wedge the audio system.
func (p *Player) Play() error {
	pcm, format, err := p.loadAsset()
	if err != nil {
		return fmt.Errorf("loading notification sound: %w", err)
	}

	ctx, err := p.audioContext(format)
	if err != nil {
		return fmt.Errorf("initializing audio device: %w", err)
	}

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	p.log.Debug("playing notification chime (%d bytes of PCM)", len(pcm))

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

// loadAsset returns the PCM data and format for this playback.
func (p *Player) loadAsset() ([]byte, format, error) {
	if p.path == "" {
		return builtinChime(), chimeFormat, nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, format{}, err
	}
	return decodeWAV(data)
}

// audioContext returns the process-wide oto context, creating it on
// first use. The context is keyed to the first asset's format; a
// creation failure is sticky and reported on every subsequent play.
func (p *Player) audioContext(f format) (*oto.Context, error) {
	p.ctxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   f.sampleRate,
			ChannelCount: f.channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			p.ctxErr = err
			return
		}
		// Wait for the hardware device to come up.
		<-readyChan
		p.ctx = ctx
		p.log.Debug("audio context initialized (rate=%d, channels=%d)", f.sampleRate, f.channels)
	})
	return p.ctx, p.ctxErr
}
