// Package sound implements the notification chime: a single-flight
// ringer in front of an oto-backed player.
package sound

import (
	"sync"

	"github.com/hammamikhairi/multiclock/internal/clock"
	"github.com/hammamikhairi/multiclock/internal/logger"
)

// Compile-time interface check.
var _ clock.Notifier = (*Ringer)(nil)

// PlayFunc performs one full playback cycle: acquire the device, load
// the asset, play for the sound's duration, release. It blocks for
// the duration of the sound.
type PlayFunc func() error

// Ringer guarantees at most one playback cycle runs at a time across
// the whole process. The playing flag has its own mutex, deliberately
// separate from the entry-store lock, so device I/O never happens
// under the store lock.
type Ringer struct {
	play PlayFunc
	log  *logger.Logger

	mu      sync.Mutex
	playing bool
}

// NewRinger creates a ringer around the given playback function.
func NewRinger(play PlayFunc, log *logger.Logger) *Ringer {
	return &Ringer{play: play, log: log}
}

// Trigger requests a playback. Non-blocking: the actual playback runs
// in a detached goroutine, outside the flag's lock. Calls arriving
// while a playback is underway are dropped, not queued, so several
// entries expiring on the same tick collapse into one chime. The
// playing flag is cleared on every exit path, load and device
// failures included.
func (r *Ringer) Trigger() {
	r.mu.Lock()
	if r.playing {
		r.mu.Unlock()
		return
	}
	r.playing = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.playing = false
			r.mu.Unlock()
		}()

		if err := r.play(); err != nil {
			// Never fatal: a missed chime degrades, the clock keeps running.
			r.log.Error("notification playback: %v", err)
		}
	}()
}

// Playing reports whether a playback cycle is currently underway.
func (r *Ringer) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}
