// Package storage provides the in-memory slot store behind the
// countdown, alarm-scan, and render passes.
package storage

import (
	"sync"
	"time"

	"github.com/hammamikhairi/multiclock/internal/clock"
	"github.com/hammamikhairi/multiclock/internal/logger"
)

// Compile-time interface check.
var _ clock.EntryStore = (*SlotStore)(nil)

// SlotStore holds the fixed timer and alarm collections. One mutex
// guards both, and every pass (create, tick, match, snapshot) holds it
// for its whole duration -- the loops touch both collections and must
// never see a partial update.
type SlotStore struct {
	mu     sync.Mutex
	timers [clock.MaxTimers]clock.Entry
	alarms [clock.MaxAlarms]clock.Entry
	log    *logger.Logger
}

// NewSlotStore creates an empty store.
func NewSlotStore(log *logger.Logger) *SlotStore {
	return &SlotStore{log: log}
}

// AddTimer installs a countdown entry in the first inactive timer
// slot, scanning in ascending order. Returns false (and logs) when all
// slots are occupied; the request is dropped, never queued.
func (s *SlotStore) AddTimer(hours, minutes, seconds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.timers {
		if !s.timers[i].Active {
			s.timers[i] = clock.NewEntry(hours, minutes, seconds)
			s.log.Debug("timer %02d:%02d:%02d installed in slot %d", hours, minutes, seconds, i)
			return true
		}
	}
	s.log.Warn("all %d timer slots occupied, dropping %02d:%02d:%02d", clock.MaxTimers, hours, minutes, seconds)
	return false
}

// AddAlarm installs a time-of-day entry in the first inactive alarm
// slot. Same drop-when-full policy as AddTimer.
func (s *SlotStore) AddAlarm(hours, minutes, seconds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alarms {
		if !s.alarms[i].Active {
			s.alarms[i] = clock.NewEntry(hours, minutes, seconds)
			s.log.Debug("alarm %02d:%02d:%02d installed in slot %d", hours, minutes, seconds, i)
			return true
		}
	}
	s.log.Warn("all %d alarm slots occupied, dropping %02d:%02d:%02d", clock.MaxAlarms, hours, minutes, seconds)
	return false
}

// TickTimers runs one countdown pass. A timer already at 00:00:00 is
// marked done with DoneTime=now; otherwise it loses exactly one second
// with base-60 borrow (seconds from minutes, minutes from hours).
// Hours can never underflow: the zero check fires first. Returns the
// number of timers that newly expired this pass.
func (s *SlotStore) TickTimers(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for i := range s.timers {
		t := &s.timers[i]
		if !t.Active || t.Done {
			continue
		}
		if t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0 {
			t.Done = true
			t.DoneTime = now
			expired++
			s.log.Debug("timer in slot %d expired", i)
			continue
		}
		switch {
		case t.Seconds > 0:
			t.Seconds--
		case t.Minutes > 0:
			t.Minutes--
			t.Seconds = 59
		default:
			t.Hours--
			t.Minutes = 59
			t.Seconds = 59
		}
	}
	return expired
}

// MatchAlarms compares every pending alarm against now's hour, minute,
// and second. The match is exact equality -- an alarm whose second is
// never observed (the process stalled through it) is missed for the
// day, with no catch-up. Returns the number of alarms that newly
// fired.
func (s *SlotStore) MatchAlarms(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	hour, minute, second := now.Clock()
	fired := 0
	for i := range s.alarms {
		a := &s.alarms[i]
		if !a.Active || a.Done {
			continue
		}
		if a.Hours == hour && a.Minutes == minute && a.Seconds == second {
			a.Done = true
			a.DoneTime = now
			fired++
			s.log.Debug("alarm in slot %d fired at %02d:%02d:%02d", i, hour, minute, second)
		}
	}
	return fired
}

// Snapshot returns the render view: every active entry in ascending
// slot order, timers then alarms. Done entries whose grace period has
// elapsed are reclaimed here, as part of the render pass, so they
// disappear from the very frame that freed them.
func (s *SlotStore) Snapshot(now time.Time) clock.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := clock.Snapshot{Now: now}
	snap.Timers = sweep(s.timers[:], now, s.log, "timer")
	snap.Alarms = sweep(s.alarms[:], now, s.log, "alarm")
	return snap
}

// sweep collects the views for one collection, freeing done slots past
// the grace window. Caller holds the store lock.
func sweep(entries []clock.Entry, now time.Time, log *logger.Logger, kind string) []clock.EntryView {
	var views []clock.EntryView
	for i := range entries {
		e := &entries[i]
		if !e.Active {
			continue
		}
		if e.Done && now.Sub(e.DoneTime) >= clock.GracePeriod {
			e.Active = false
			log.Debug("%s slot %d reclaimed after grace period", kind, i)
			continue
		}
		views = append(views, clock.EntryView{
			Hours:   e.Hours,
			Minutes: e.Minutes,
			Seconds: e.Seconds,
			Done:    e.Done,
		})
	}
	return views
}
