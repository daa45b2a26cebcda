// Package sched runs the three background loops of the clock: the
// countdown pass over timers, the wall-clock scan over alarms, and
// the frame renderer. Each loop has its own ticker and goroutine; the
// only thing they share is the entry store's lock.
package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/multiclock/internal/clock"
	"github.com/hammamikhairi/multiclock/internal/logger"
)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets the period of all three loops. One second in
// normal operation; tests shrink it.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// Supervisor owns the background loops. Start launches them under a
// cancellable child context; Stop tears them down.
type Supervisor struct {
	store    clock.EntryStore
	notifier clock.Notifier
	sink     clock.Sink
	log      *logger.Logger

	tickInterval time.Duration

	// editing pauses the renderer while the user is typing a new
	// entry. Read each render tick without any store synchronization:
	// one extra or missing frame at the edit boundary is acceptable.
	editing atomic.Bool

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a supervisor with the given dependencies and options.
func New(store clock.EntryStore, notifier clock.Notifier, sink clock.Sink, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		store:        store,
		notifier:     notifier,
		sink:         sink,
		log:          log,
		tickInterval: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the countdown, alarm-scan, and render loops.
// Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx, s.countdownPass)
	go s.loop(childCtx, s.alarmPass)
	go s.loop(childCtx, s.renderPass)

	s.log.Info("supervisor started (tick=%s)", s.tickInterval)
}

// Stop shuts the loops down.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("supervisor stopped")
}

// BeginEdit pauses rendering while a prompt is on screen.
func (s *Supervisor) BeginEdit() { s.editing.Store(true) }

// EndEdit resumes rendering. The next render tick picks it up.
func (s *Supervisor) EndEdit() { s.editing.Store(false) }

// loop drives one pass function on the shared tick interval. Passes
// are strictly sequential within a loop; across loops only the store
// lock orders them.
func (s *Supervisor) loop(ctx context.Context, pass func()) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pass()
		}
	}
}

// countdownPass decrements every running timer by one second and
// rings for any that reached zero. The notification fires here, at
// the point of detection, so it is never suppressed by a paused
// renderer; the ringer's single-flight guard keeps simultaneous
// expiries down to one chime.
func (s *Supervisor) countdownPass() {
	if n := s.store.TickTimers(time.Now()); n > 0 {
		s.log.Info("%d timer(s) expired", n)
		s.notifier.Trigger()
	}
}

// alarmPass fires alarms whose target matches the current wall-clock
// second exactly.
func (s *Supervisor) alarmPass() {
	if n := s.store.MatchAlarms(time.Now()); n > 0 {
		s.log.Info("%d alarm(s) fired", n)
		s.notifier.Trigger()
	}
}

// renderPass composes and pushes one frame, unless an entry is being
// edited. The snapshot also reclaims done slots whose grace window
// has elapsed, so reclamation pauses with rendering.
func (s *Supervisor) renderPass() {
	if s.editing.Load() {
		return
	}
	s.sink.Render(composeFrame(s.store.Snapshot(time.Now())))
}
