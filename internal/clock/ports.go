package clock

import "time"

// EntryStore owns the timer and alarm collections. All operations are
// atomic: implementations hold a single lock for the full duration of
// a pass, so the countdown, alarm-scan, and render loops never observe
// a half-applied mutation.
type EntryStore interface {
	// AddTimer installs a countdown entry in the first free timer
	// slot. Returns false when every slot is occupied.
	AddTimer(hours, minutes, seconds int) bool
	// AddAlarm installs a time-of-day entry in the first free alarm
	// slot. Returns false when every slot is occupied.
	AddAlarm(hours, minutes, seconds int) bool
	// TickTimers runs one countdown pass and returns how many timers
	// newly expired.
	TickTimers(now time.Time) int
	// MatchAlarms compares every pending alarm against now's clock
	// fields and returns how many newly fired.
	MatchAlarms(now time.Time) int
	// Snapshot returns the render view and reclaims done slots whose
	// grace period has elapsed.
	Snapshot(now time.Time) Snapshot
}

// Notifier requests the notification sound. Trigger never blocks and
// is a no-op while a playback is already underway.
type Notifier interface {
	Trigger()
}

// Sink is the terminal the renderer pushes frames to. RequestLine
// blocks until the user submits a line; implementations may return an
// error when the prompt is cancelled or the display shuts down.
type Sink interface {
	Render(lines []string)
	RequestLine(prompt string) (string, error)
}
