// multiclock — concurrent countdown timers and alarms in the terminal.
//
// Usage:
//
//	multiclock [-verbose] [-quiet] [-sound jingle.wav]
//
// While running: press 't' to set a timer, 'a' to set an alarm,
// Ctrl+C to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/multiclock/internal/clock"
	"github.com/hammamikhairi/multiclock/internal/display"
	"github.com/hammamikhairi/multiclock/internal/logger"
	"github.com/hammamikhairi/multiclock/internal/parse"
	"github.com/hammamikhairi/multiclock/internal/sched"
	"github.com/hammamikhairi/multiclock/internal/sound"
	"github.com/hammamikhairi/multiclock/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".multiclock/multiclock.log", "file to write logs to (use \"stderr\" to log to console)")
	soundPath := flag.String("sound", os.Getenv("MULTICLOCK_SOUND"), "WAV file for the notification chime (built-in chime when empty)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the live display stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not create log directory %s: %v\n", dir, err)
			}
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libs log through the default log package; keep that
	// out of the terminal too.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	store := storage.NewSlotStore(log)
	player := sound.NewPlayer(*soundPath, log)
	ringer := sound.NewRinger(player.Play, log)
	ui := display.NewUI()
	supervisor := sched.New(store, ringer, ui, log)

	if *soundPath != "" {
		log.Info("notification sound: %s", *soundPath)
	}

	supervisor.Start(ctx)
	defer supervisor.Stop()

	app := &app{
		store:      store,
		ui:         ui,
		supervisor: supervisor,
		log:        log,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Press 't' to set a timer, 'a' to set an alarm, Ctrl+C to quit."))
	fmt.Println()

	// Run the key loop in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type app struct {
	store      clock.EntryStore
	ui         *display.UI
	supervisor *sched.Supervisor
	log        *logger.Logger
}

// run is the foreground input loop: block on the next key press and
// dispatch it. Unrecognised keys are ignored.
func (a *app) run(ctx context.Context) {
	keys := a.ui.Keys()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case key := <-keys:
			switch key {
			case 't':
				a.createTimer()
			case 'a':
				a.createAlarm()
			}
		}
	}
}

// createTimer prompts for a duration and installs a timer. Rendering
// pauses for the duration of the prompt; whatever the user typed is
// parsed best-effort and never rejected.
func (a *app) createTimer() {
	a.supervisor.BeginEdit()
	defer a.supervisor.EndEdit()

	line, err := a.ui.RequestLine("Set timer (e.g., 60s, 1m30s, 2h10s): ")
	if err != nil {
		a.promptAborted("timer", err)
		return
	}

	h, m, s := parse.Duration(line)
	if !a.store.AddTimer(h, m, s) {
		a.log.Warn("timer %q dropped: no free slot", line)
	}
}

// createAlarm prompts for an hhmmss time of day and installs an alarm.
func (a *app) createAlarm() {
	a.supervisor.BeginEdit()
	defer a.supervisor.EndEdit()

	line, err := a.ui.RequestLine("Set alarm (hhmmss): ")
	if err != nil {
		a.promptAborted("alarm", err)
		return
	}

	h, m, s := parse.Clock(line)
	if !a.store.AddAlarm(h, m, s) {
		a.log.Warn("alarm %q dropped: no free slot", line)
	}
}

func (a *app) promptAborted(kind string, err error) {
	if errors.Is(err, display.ErrPromptCancelled) {
		a.log.Debug("%s prompt cancelled", kind)
		return
	}
	a.log.Debug("%s prompt aborted: %v", kind, err)
}
