// Package clock holds the core types shared by the countdown, alarm,
// and rendering loops: the slot-based Entry model and the ports the
// loops are wired through.
package clock

import "time"

// Capacity of the two slot collections. Fixed at process start; a
// create request with no free slot is dropped.
const (
	MaxTimers = 5
	MaxAlarms = 5
)

// GracePeriod is how long a done entry stays on screen before its
// slot is reclaimed.
const GracePeriod = 7 * time.Second

// Entry is one timer or alarm slot. For a timer the h/m/s fields are
// the remaining duration; for an alarm they are the target time of
// day. The two are structurally identical and live in separate
// collections.
//
// An inactive slot is free for reuse and carries no meaningful
// h/m/s/DoneTime content. A done entry stays active until GracePeriod
// has elapsed since DoneTime.
type Entry struct {
	Hours    int
	Minutes  int
	Seconds  int
	Active   bool
	Done     bool
	DoneTime time.Time
}

// NewEntry returns an active, not-done entry with the given fields.
func NewEntry(hours, minutes, seconds int) Entry {
	return Entry{
		Hours:   hours,
		Minutes: minutes,
		Seconds: seconds,
		Active:  true,
	}
}

// Snapshot is a point-in-time render view of the store: all active
// entries in ascending slot order, timers before alarms.
type Snapshot struct {
	Now    time.Time
	Timers []EntryView
	Alarms []EntryView
}

// EntryView is the render-facing projection of one active slot.
type EntryView struct {
	Hours   int
	Minutes int
	Seconds int
	Done    bool
}
