package storage

import (
	"testing"
	"time"

	"github.com/hammamikhairi/multiclock/internal/clock"
	"github.com/hammamikhairi/multiclock/internal/logger"
)

func newTestStore() *SlotStore {
	return NewSlotStore(logger.New(logger.LevelOff, nil))
}

func TestCountdownBorrow(t *testing.T) {
	tests := []struct {
		name    string
		h, m, s int
		ticks   int
		wantH   int
		wantM   int
		wantS   int
	}{
		{"simple decrement", 0, 0, 10, 1, 0, 0, 9},
		{"seconds borrow from minutes", 0, 1, 0, 1, 0, 0, 59},
		{"minutes borrow from hours", 1, 0, 0, 1, 0, 59, 59},
		{"full minute elapses", 0, 1, 5, 65, 0, 0, 0},
		{"an hour of ticks", 1, 0, 0, 3600, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			store.AddTimer(tt.h, tt.m, tt.s)

			now := time.Now()
			for i := 0; i < tt.ticks; i++ {
				store.TickTimers(now.Add(time.Duration(i) * time.Second))
			}

			snap := store.Snapshot(now)
			if len(snap.Timers) != 1 {
				t.Fatalf("expected 1 timer in snapshot, got %d", len(snap.Timers))
			}
			got := snap.Timers[0]
			if got.Hours != tt.wantH || got.Minutes != tt.wantM || got.Seconds != tt.wantS {
				t.Errorf("after %d ticks: %02d:%02d:%02d, want %02d:%02d:%02d",
					tt.ticks, got.Hours, got.Minutes, got.Seconds, tt.wantH, tt.wantM, tt.wantS)
			}
			if got.Done {
				t.Error("timer should not be done while time remains")
			}
		})
	}
}

func TestTimerExpiresExactlyOnce(t *testing.T) {
	store := newTestStore()
	store.AddTimer(0, 1, 5) // the "1m5s" scenario

	start := time.Now()
	tick := func(n int) time.Time { return start.Add(time.Duration(n) * time.Second) }

	// 65 ticks bring it to zero without expiring it.
	total := 0
	for i := 0; i < 65; i++ {
		total += store.TickTimers(tick(i))
	}
	if total != 0 {
		t.Fatalf("timer expired %d tick(s) early", total)
	}

	// Tick 66 observes 00:00:00 and marks it done.
	if n := store.TickTimers(tick(65)); n != 1 {
		t.Fatalf("expected 1 expiry on the zero tick, got %d", n)
	}

	// Further ticks must not re-expire it.
	for i := 66; i < 70; i++ {
		if n := store.TickTimers(tick(i)); n != 0 {
			t.Fatalf("timer expired again on tick %d", i)
		}
	}

	snap := store.Snapshot(tick(66))
	if len(snap.Timers) != 1 || !snap.Timers[0].Done {
		t.Fatal("expected one done timer in snapshot")
	}
}

func TestGraceWindowFreesSlot(t *testing.T) {
	store := newTestStore()
	store.AddTimer(0, 0, 0)

	start := time.Now()
	store.TickTimers(start) // marks done, DoneTime = start

	// Within the grace window the entry stays visible.
	for _, dt := range []time.Duration{0, 3 * time.Second, clock.GracePeriod - time.Second} {
		snap := store.Snapshot(start.Add(dt))
		if len(snap.Timers) != 1 || !snap.Timers[0].Done {
			t.Fatalf("expected done timer still visible at +%s", dt)
		}
	}

	// At the grace boundary the slot is reclaimed.
	snap := store.Snapshot(start.Add(clock.GracePeriod))
	if len(snap.Timers) != 0 {
		t.Fatalf("expected slot reclaimed at +%s, got %d timer(s)", clock.GracePeriod, len(snap.Timers))
	}

	// And the slot is reusable.
	if !store.AddTimer(0, 0, 30) {
		t.Fatal("expected reclaimed slot to accept a new timer")
	}
}

func TestCapacityDropsSixthTimer(t *testing.T) {
	store := newTestStore()

	for i := 0; i < clock.MaxTimers; i++ {
		if !store.AddTimer(0, i+1, 0) {
			t.Fatalf("timer %d should have found a slot", i)
		}
	}

	if store.AddTimer(9, 9, 9) {
		t.Fatal("sixth timer should have been dropped")
	}

	// The store is unchanged: same five entries, none overwritten.
	snap := store.Snapshot(time.Now())
	if len(snap.Timers) != clock.MaxTimers {
		t.Fatalf("expected %d timers, got %d", clock.MaxTimers, len(snap.Timers))
	}
	for i, tv := range snap.Timers {
		if tv.Minutes != i+1 {
			t.Errorf("slot %d: got %02d:%02d:%02d, want %02d:00:00", i, tv.Hours, tv.Minutes, tv.Seconds, i+1)
		}
	}
}

func TestAlarmExactMatch(t *testing.T) {
	store := newTestStore()
	store.AddAlarm(8, 30, 0) // the "083000" scenario

	at := func(h, m, s int) time.Time {
		return time.Date(2026, 8, 31, h, m, s, 0, time.Local)
	}

	// Before the target second: nothing fires.
	if n := store.MatchAlarms(at(8, 29, 59)); n != 0 {
		t.Fatalf("alarm fired early: %d", n)
	}

	// The exact second fires it, once.
	if n := store.MatchAlarms(at(8, 30, 0)); n != 1 {
		t.Fatalf("expected 1 alarm to fire, got %d", n)
	}
	if n := store.MatchAlarms(at(8, 30, 0)); n != 0 {
		t.Fatal("alarm fired twice")
	}

	snap := store.Snapshot(at(8, 30, 1))
	if len(snap.Alarms) != 1 || !snap.Alarms[0].Done {
		t.Fatal("expected one done alarm in snapshot")
	}
}

func TestAlarmMissedSecondNeverFires(t *testing.T) {
	store := newTestStore()
	store.AddAlarm(8, 30, 0)

	at := func(h, m, s int) time.Time {
		return time.Date(2026, 8, 31, h, m, s, 0, time.Local)
	}

	// The matching second was never observed; "at or past" must not fire.
	for _, now := range []time.Time{at(8, 30, 1), at(8, 30, 2), at(9, 0, 0)} {
		if n := store.MatchAlarms(now); n != 0 {
			t.Fatalf("alarm fired at %v after its second was missed", now)
		}
	}
}

func TestSnapshotOrdering(t *testing.T) {
	store := newTestStore()
	store.AddTimer(0, 5, 0)
	store.AddTimer(0, 0, 0)
	store.AddAlarm(7, 0, 0)
	store.AddAlarm(8, 0, 0)

	now := time.Now()
	store.TickTimers(now) // slot 1 (00:00:00) goes done, slot 0 ticks down

	snap := store.Snapshot(now)
	if len(snap.Timers) != 2 || len(snap.Alarms) != 2 {
		t.Fatalf("expected 2 timers + 2 alarms, got %d + %d", len(snap.Timers), len(snap.Alarms))
	}

	// Slot order is preserved; the done entry is not segregated.
	if snap.Timers[0].Done {
		t.Error("slot 0 timer should still be running")
	}
	if !snap.Timers[1].Done {
		t.Error("slot 1 timer should be done")
	}
	if snap.Alarms[0].Hours != 7 || snap.Alarms[1].Hours != 8 {
		t.Errorf("alarms out of slot order: %d, %d", snap.Alarms[0].Hours, snap.Alarms[1].Hours)
	}
}

func TestDoneTimeSetOnce(t *testing.T) {
	store := newTestStore()
	store.AddTimer(0, 0, 0)

	first := time.Now()
	store.TickTimers(first)

	store.mu.Lock()
	doneAt := store.timers[0].DoneTime
	store.mu.Unlock()
	if !doneAt.Equal(first) {
		t.Fatalf("DoneTime = %v, want %v", doneAt, first)
	}

	// Later ticks must not touch it.
	store.TickTimers(first.Add(3 * time.Second))
	store.mu.Lock()
	after := store.timers[0].DoneTime
	store.mu.Unlock()
	if !after.Equal(first) {
		t.Fatalf("DoneTime moved from %v to %v", first, after)
	}
}
