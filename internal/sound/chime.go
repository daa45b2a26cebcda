package sound

import (
	"encoding/binary"
	"math"
	"sync"
)

// chimeFormat is the format of the built-in chime.
var chimeFormat = format{sampleRate: 44100, channels: 2, bitDepth: 16}

// ChimeDuration is how long the built-in chime plays. Playback is not
// cancellable once started, so this bounds every notification cycle.
const ChimeDuration = 8 // seconds

// The chime is a repeating two-note bell pattern, synthesized once on
// first use. Generating it beats shipping a binary asset and cannot
// fail at runtime.
var (
	chimeOnce sync.Once
	chimePCM  []byte
)

func builtinChime() []byte {
	chimeOnce.Do(func() {
		chimePCM = synthChime()
	})
	return chimePCM
}

// synthChime renders the bell pattern as 16-bit little-endian stereo
// PCM: alternating A5/E5 strikes, one per second, each with an
// exponential decay so they ring like a bell rather than buzz.
func synthChime() []byte {
	const (
		rate    = 44100
		noteHz1 = 880.0 // A5
		noteHz2 = 659.3 // E5
		volume  = 0.35
	)

	samples := rate * ChimeDuration
	pcm := make([]byte, samples*2*2) // stereo, 2 bytes per sample

	for i := 0; i < samples; i++ {
		t := float64(i) / rate

		// One strike per second, alternating between the two notes.
		strike := int(t)
		freq := noteHz1
		if strike%2 == 1 {
			freq = noteHz2
		}
		local := t - float64(strike)

		// Fundamental plus a quieter octave, decaying over the second.
		env := volume * math.Exp(-3.5*local)
		v := env * (math.Sin(2*math.Pi*freq*local) + 0.4*math.Sin(4*math.Pi*freq*local))

		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(sample))   // left
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(sample)) // right
	}
	return pcm
}
